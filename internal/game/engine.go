package game

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"gridgames-server/internal/database/repositories"
	"gridgames-server/pkg/models"
)

// AnalyticsProducer sends game events to an external analytics sink.
// Deliveries are fire-and-forget and never affect request outcomes.
type AnalyticsProducer interface {
	SendSessionCreated(ctx context.Context, sessionID, hostID string, gameType models.GameType) error
	SendPlayerJoined(ctx context.Context, sessionID, playerID string) error
	SendMoveMade(ctx context.Context, sessionID, playerID string, row, col, moveNo int) error
	SendSessionFinished(ctx context.Context, sessionID string, winnerID *string, draw bool) error
}

// CreateSessionInput carries the parameters for opening a new session.
// HostName and HostIcon default to the host user's profile when unset.
type CreateSessionInput struct {
	HostID   string
	HostName string
	HostIcon *string
	GameIcon *string
	GameType models.GameType
}

// Engine is the transactional state machine over sessions: create, join,
// and submit move. Every mutation runs with the session row locked, so two
// racing requests on the same session serialize at the store.
type Engine interface {
	CreateSession(ctx context.Context, input CreateSessionInput) (*models.SessionView, error)
	JoinSession(ctx context.Context, sessionID, playerID string) (*models.SessionView, error)
	SubmitMove(ctx context.Context, sessionID, playerID string, row, col int) (*models.SessionView, error)
}

type engine struct {
	db        *gorm.DB
	registry  *Registry
	users     repositories.UserRepository
	sessions  repositories.SessionRepository
	moves     repositories.MoveRepository
	analytics AnalyticsProducer
	logger    *slog.Logger
}

// NewEngine creates the session engine. analytics may be nil.
func NewEngine(
	db *gorm.DB,
	registry *Registry,
	users repositories.UserRepository,
	sessions repositories.SessionRepository,
	moves repositories.MoveRepository,
	analytics AnalyticsProducer,
	logger *slog.Logger,
) Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &engine{
		db:        db,
		registry:  registry,
		users:     users,
		sessions:  sessions,
		moves:     moves,
		analytics: analytics,
		logger:    logger,
	}
}

// CreateSession opens a new WAITING session for the host.
func (e *engine) CreateSession(ctx context.Context, input CreateSessionInput) (*models.SessionView, error) {
	gameType := input.GameType
	if gameType == "" {
		gameType = models.GameTypeTicTacToe
	}
	rules, ok := e.registry.Get(gameType)
	if !ok {
		return nil, models.NewValidationError(models.CodeUnknownGameType, "unknown game type %q (supported: %v)", gameType, e.registry.GameTypes())
	}

	host, err := e.users.GetByID(ctx, input.HostID)
	if err != nil {
		return nil, err
	}

	hostName := input.HostName
	if hostName == "" {
		hostName = host.Name
	}
	hostIcon := input.HostIcon
	if hostIcon == nil {
		hostIcon = host.Icon
	}

	session := &models.Session{
		GameType: gameType,
		GameIcon: input.GameIcon,
		HostID:   host.ID,
		HostName: hostName,
		HostIcon: hostIcon,
		Status:   models.StatusWaiting,
		Board:    rules.InitialBoard(),
	}

	if err := e.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	e.logger.Info("session created",
		"sessionID", session.ID,
		"hostID", host.ID,
		"gameType", gameType,
	)

	if e.analytics != nil {
		go func() {
			if err := e.analytics.SendSessionCreated(context.Background(), session.ID, host.ID, gameType); err != nil {
				e.logger.Warn("failed to send session created event",
					"sessionID", session.ID,
					"error", err,
				)
			}
		}()
	}

	view := models.NewSessionView(session, nil)
	return &view, nil
}

// JoinSession adds playerID as the guest of a WAITING session and activates
// it. A roster member re-joining a non-WAITING session is an idempotent
// success, to tolerate client retries and double-submits.
func (e *engine) JoinSession(ctx context.Context, sessionID, playerID string) (*models.SessionView, error) {
	var view models.SessionView
	var joined bool

	err := repositories.Transaction(ctx, e.db, func(tx *gorm.DB) error {
		session, err := e.sessions.GetByIDForUpdate(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if err := e.checkInvariants(session); err != nil {
			return err
		}

		if !session.IsWaiting() {
			if session.HasPlayer(playerID) {
				moves, err := e.moves.ListBySessionTx(ctx, tx, sessionID)
				if err != nil {
					return err
				}
				view = models.NewSessionView(session, moves)
				return nil
			}
			if session.IsFinished() {
				return models.NewConflictError(models.CodeAlreadyFinished, "session %s is already finished", sessionID)
			}
			return models.NewConflictError(models.CodeAlreadyFull, "session %s already has two players", sessionID)
		}

		if playerID == session.HostID {
			return models.NewConflictError(models.CodeCannotJoinOwnSession, "host cannot join their own session")
		}

		guest, err := e.users.GetByIDTx(ctx, tx, playerID)
		if err != nil {
			return err
		}

		session.GuestID = &guest.ID
		session.GuestName = &guest.Name
		session.GuestIcon = guest.Icon
		session.Status = models.StatusActive
		// Host moves first: deterministic tiebreak.
		hostID := session.HostID
		session.CurrentTurn = &hostID

		if err := e.sessions.Update(ctx, tx, session); err != nil {
			return err
		}

		view = models.NewSessionView(session, nil)
		joined = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if joined {
		e.logger.Info("player joined session",
			"sessionID", sessionID,
			"playerID", playerID,
		)
		if e.analytics != nil {
			go func() {
				if err := e.analytics.SendPlayerJoined(context.Background(), sessionID, playerID); err != nil {
					e.logger.Warn("failed to send player joined event",
						"sessionID", sessionID,
						"error", err,
					)
				}
			}()
		}
	}

	return &view, nil
}

// SubmitMove validates and applies one move under the session row lock:
// load, validate, mutate board, append move, detect terminal state, commit.
func (e *engine) SubmitMove(ctx context.Context, sessionID, playerID string, row, col int) (*models.SessionView, error) {
	var view models.SessionView
	var applied models.Move
	var finished bool

	err := repositories.Transaction(ctx, e.db, func(tx *gorm.DB) error {
		session, err := e.sessions.GetByIDForUpdate(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if err := e.checkInvariants(session); err != nil {
			return err
		}

		if session.IsWaiting() {
			return models.NewConflictError(models.CodeNotActive, "session %s is still waiting for a second player", sessionID)
		}
		if session.IsFinished() {
			return models.NewConflictError(models.CodeAlreadyFinished, "session %s is already finished", sessionID)
		}
		if !session.HasPlayer(playerID) {
			return models.NewValidationError(models.CodeNotInSession, "player %s is not part of session %s", playerID, sessionID)
		}
		if session.CurrentTurn == nil || *session.CurrentTurn != playerID {
			return models.NewConflictError(models.CodeNotYourTurn, "it is not player %s's turn", playerID)
		}

		rules, ok := e.registry.Get(session.GameType)
		if !ok {
			return models.NewInternalError(models.CodeInvariantViolation, nil, "session %s has unregistered game type %q", sessionID, session.GameType)
		}

		// The move log and the board are written together under the row
		// lock; a mismatch means a previous commit was partial.
		moveCount, err := e.moves.CountBySession(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if moveCount != session.Board.FilledCells() {
			e.logger.Error("move log disagrees with board",
				"sessionID", sessionID,
				"moveCount", moveCount,
				"filledCells", session.Board.FilledCells(),
			)
			return models.NewInternalError(models.CodeInvariantViolation, nil, "session %s move log disagrees with board", sessionID)
		}

		switch rules.ValidateMove(session.Board, row, col, playerID) {
		case ViolationNone:
		case ViolationOutOfBounds:
			return models.NewValidationError(models.CodeInvalidCoordinates, "coordinates (%d, %d) are outside the board", row, col)
		default: // cell_occupied, illegal_geometry
			return models.NewConflictError(models.CodeCellOccupied, "cell (%d, %d) cannot be played", row, col)
		}

		session.Board.Place(row, col, playerID)

		move := &models.Move{
			SessionID: sessionID,
			PlayerID:  playerID,
			Row:       row,
			Col:       col,
		}
		if err := e.moves.Append(ctx, tx, move); err != nil {
			return err
		}

		switch {
		case rules.CheckWinner(session.Board, row, col, playerID):
			winnerID := playerID
			session.WinnerID = &winnerID
			session.Status = models.StatusFinished
			session.CurrentTurn = nil
			finished = true
		case rules.CheckDraw(session.Board, move.MoveNo):
			session.Draw = true
			session.Status = models.StatusFinished
			session.CurrentTurn = nil
			finished = true
		default:
			next := session.Opponent(playerID)
			session.CurrentTurn = &next
		}

		if err := e.sessions.Update(ctx, tx, session); err != nil {
			return err
		}

		moves, err := e.moves.ListBySessionTx(ctx, tx, sessionID)
		if err != nil {
			return err
		}

		applied = *move
		view = models.NewSessionView(session, moves)
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("move applied",
		"sessionID", sessionID,
		"playerID", playerID,
		"row", row,
		"col", col,
		"moveNo", applied.MoveNo,
		"finished", finished,
	)

	if e.analytics != nil {
		go func() {
			bg := context.Background()
			if err := e.analytics.SendMoveMade(bg, sessionID, playerID, row, col, applied.MoveNo); err != nil {
				e.logger.Warn("failed to send move made event",
					"sessionID", sessionID,
					"error", err,
				)
			}
			if finished {
				if err := e.analytics.SendSessionFinished(bg, sessionID, view.Winner, view.Draw); err != nil {
					e.logger.Warn("failed to send session finished event",
						"sessionID", sessionID,
						"error", err,
					)
				}
			}
		}()
	}

	return &view, nil
}

// checkInvariants verifies the loaded session is internally consistent.
// A violation indicates a bug, is logged, and surfaces as an internal error.
func (e *engine) checkInvariants(s *models.Session) error {
	ok := true
	switch s.Status {
	case models.StatusWaiting:
		ok = s.GuestID == nil && s.CurrentTurn == nil && s.WinnerID == nil && !s.Draw
	case models.StatusActive:
		ok = s.GuestID != nil && s.CurrentTurn != nil && s.WinnerID == nil && !s.Draw
	case models.StatusFinished:
		ok = s.GuestID != nil && s.CurrentTurn == nil && ((s.WinnerID != nil) != s.Draw)
	default:
		ok = false
	}
	if !ok {
		e.logger.Error("session state invariant violated",
			"sessionID", s.ID,
			"status", s.Status,
		)
		return models.NewInternalError(models.CodeInvariantViolation, nil, "session %s is in an inconsistent state", s.ID)
	}
	return nil
}
