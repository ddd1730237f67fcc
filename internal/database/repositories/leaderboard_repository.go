package repositories

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"gridgames-server/pkg/models"
)

// LeaderboardMetric selects the leaderboard ranking.
type LeaderboardMetric string

const (
	// MetricWinCount ranks by wins descending (tiebreak: fewer losses,
	// then name).
	MetricWinCount LeaderboardMetric = "win_count"
	// MetricEfficiency ranks by average moves-per-win ascending; players
	// without wins have no efficiency and sort last.
	MetricEfficiency LeaderboardMetric = "efficiency"
)

// LeaderboardRepository aggregates player standings from finished sessions.
type LeaderboardRepository interface {
	TopPlayers(ctx context.Context, metric LeaderboardMetric, limit int) ([]models.LeaderboardEntry, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

// NewLeaderboardRepository creates a GORM-backed LeaderboardRepository.
func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

// playerTally accumulates one player's standings while scanning finished
// sessions.
type playerTally struct {
	id       string
	name     string
	wins     int
	losses   int
	draws    int
	winMoves int // total moves across won sessions
}

func (r *leaderboardRepository) TopPlayers(ctx context.Context, metric LeaderboardMetric, limit int) ([]models.LeaderboardEntry, error) {
	if metric != MetricWinCount && metric != MetricEfficiency {
		return nil, models.NewValidationError(models.CodeInvalidMetric, "unknown leaderboard metric %q", metric)
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		return nil, models.NewValidationError(models.CodeInvalidPaging, "limit must be at most %d", MaxPageSize)
	}

	var sessions []models.Session
	err := r.db.WithContext(ctx).
		Where("status = ?", models.StatusFinished).
		Find(&sessions).Error
	if err != nil {
		return nil, models.NewInternalError(models.CodeStorage, err, "failed to load finished sessions")
	}

	moveCounts, err := r.moveCountsBySession(ctx)
	if err != nil {
		return nil, err
	}

	tallies := make(map[string]*playerTally)
	tally := func(id, name string) *playerTally {
		t, ok := tallies[id]
		if !ok {
			t = &playerTally{id: id, name: name}
			tallies[id] = t
		}
		return t
	}

	for i := range sessions {
		s := &sessions[i]
		if s.GuestID == nil {
			// A finished session always has a full roster; skip rather
			// than crash if the invariant was violated upstream.
			continue
		}
		guestName := ""
		if s.GuestName != nil {
			guestName = *s.GuestName
		}
		host := tally(s.HostID, s.HostName)
		guest := tally(*s.GuestID, guestName)

		switch {
		case s.Draw:
			host.draws++
			guest.draws++
		case s.WinnerID != nil && *s.WinnerID == s.HostID:
			host.wins++
			host.winMoves += moveCounts[s.ID]
			guest.losses++
		case s.WinnerID != nil && *s.WinnerID == *s.GuestID:
			guest.wins++
			guest.winMoves += moveCounts[s.ID]
			host.losses++
		}
	}

	entries := make([]models.LeaderboardEntry, 0, len(tallies))
	for _, t := range tallies {
		entry := models.LeaderboardEntry{
			PlayerID: t.id,
			Name:     t.name,
			Wins:     t.wins,
			Losses:   t.losses,
			Draws:    t.draws,
		}
		if t.wins > 0 {
			eff := float64(t.winMoves) / 2.0 / float64(t.wins)
			entry.Efficiency = &eff
		}
		entries = append(entries, entry)
	}

	sortEntries(entries, metric)

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (r *leaderboardRepository) moveCountsBySession(ctx context.Context) (map[string]int, error) {
	type row struct {
		SessionID string
		N         int
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Move{}).
		Select("session_id, COUNT(*) AS n").
		Group("session_id").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(models.CodeStorage, err, "failed to count moves per session")
	}
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.SessionID] = r.N
	}
	return counts, nil
}

func sortEntries(entries []models.LeaderboardEntry, metric LeaderboardMetric) {
	switch metric {
	case MetricEfficiency:
		sort.SliceStable(entries, func(i, j int) bool {
			a, b := entries[i].Efficiency, entries[j].Efficiency
			if a == nil && b == nil {
				return entries[i].Name < entries[j].Name
			}
			if a == nil {
				return false // nulls last
			}
			if b == nil {
				return true
			}
			if *a != *b {
				return *a < *b
			}
			return entries[i].Name < entries[j].Name
		})
	default: // MetricWinCount
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].Wins != entries[j].Wins {
				return entries[i].Wins > entries[j].Wins
			}
			if entries[i].Losses != entries[j].Losses {
				return entries[i].Losses < entries[j].Losses
			}
			return entries[i].Name < entries[j].Name
		})
	}
}
