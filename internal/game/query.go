package game

import (
	"context"

	"gridgames-server/internal/database/repositories"
	"gridgames-server/pkg/models"
)

// QueryService exposes read-only projections of committed state. Queries
// bypass the engine and never take the session lock, so they may observe a
// session at any committed state.
type QueryService interface {
	GetSession(ctx context.Context, sessionID string) (*models.SessionView, error)
	ListSessions(ctx context.Context, filter repositories.SessionFilter) (*models.SessionPage, error)
	Leaderboard(ctx context.Context, metric repositories.LeaderboardMetric, limit int) ([]models.LeaderboardEntry, error)
}

type queryService struct {
	sessions    repositories.SessionRepository
	moves       repositories.MoveRepository
	leaderboard repositories.LeaderboardRepository
}

// NewQueryService creates the read-only query surface.
func NewQueryService(
	sessions repositories.SessionRepository,
	moves repositories.MoveRepository,
	leaderboard repositories.LeaderboardRepository,
) QueryService {
	return &queryService{
		sessions:    sessions,
		moves:       moves,
		leaderboard: leaderboard,
	}
}

func (q *queryService) GetSession(ctx context.Context, sessionID string) (*models.SessionView, error) {
	session, err := q.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	moves, err := q.moves.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	view := models.NewSessionView(session, moves)
	return &view, nil
}

func (q *queryService) ListSessions(ctx context.Context, filter repositories.SessionFilter) (*models.SessionPage, error) {
	sessions, nextCursor, err := q.sessions.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]models.SessionSummary, 0, len(sessions))
	for i := range sessions {
		items = append(items, models.NewSessionSummary(&sessions[i]))
	}
	return &models.SessionPage{Items: items, NextCursor: nextCursor}, nil
}

func (q *queryService) Leaderboard(ctx context.Context, metric repositories.LeaderboardMetric, limit int) ([]models.LeaderboardEntry, error) {
	return q.leaderboard.TopPlayers(ctx, metric, limit)
}
