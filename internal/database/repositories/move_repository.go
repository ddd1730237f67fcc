package repositories

import (
	"context"

	"gorm.io/gorm"

	"gridgames-server/pkg/models"
)

// MoveRepository persists the append-only move log.
type MoveRepository interface {
	// Append stores a move within the open transaction, assigning
	// MoveNo = 1 + max existing for the session. The caller must hold the
	// session row lock, which makes the sequence gap-free.
	Append(ctx context.Context, tx *gorm.DB, move *models.Move) error

	// ListBySession returns all moves for a session ordered by MoveNo.
	ListBySession(ctx context.Context, sessionID string) ([]models.Move, error)

	// ListBySessionTx is ListBySession within an open transaction, so the
	// engine can project a session and its moves from one snapshot.
	ListBySessionTx(ctx context.Context, tx *gorm.DB, sessionID string) ([]models.Move, error)

	// CountBySession returns the number of recorded moves for a session.
	CountBySession(ctx context.Context, tx *gorm.DB, sessionID string) (int, error)
}

type moveRepository struct {
	db *gorm.DB
}

// NewMoveRepository creates a GORM-backed MoveRepository.
func NewMoveRepository(db *gorm.DB) MoveRepository {
	return &moveRepository{db: db}
}

func (r *moveRepository) Append(ctx context.Context, tx *gorm.DB, move *models.Move) error {
	var maxNo int
	err := tx.WithContext(ctx).
		Model(&models.Move{}).
		Where("session_id = ?", move.SessionID).
		Select("COALESCE(MAX(move_no), 0)").
		Scan(&maxNo).Error
	if err != nil {
		return models.NewInternalError(models.CodeStorage, err, "failed to determine next move number")
	}

	move.MoveNo = maxNo + 1
	if err := tx.WithContext(ctx).Create(move).Error; err != nil {
		return models.NewInternalError(models.CodeStorage, err, "failed to append move")
	}
	return nil
}

func (r *moveRepository) ListBySession(ctx context.Context, sessionID string) ([]models.Move, error) {
	return listMoves(ctx, r.db, sessionID)
}

func (r *moveRepository) ListBySessionTx(ctx context.Context, tx *gorm.DB, sessionID string) ([]models.Move, error) {
	return listMoves(ctx, tx, sessionID)
}

func listMoves(ctx context.Context, db *gorm.DB, sessionID string) ([]models.Move, error) {
	var moves []models.Move
	err := db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("move_no ASC").
		Find(&moves).Error
	if err != nil {
		return nil, models.NewInternalError(models.CodeStorage, err, "failed to list moves for session %s", sessionID)
	}
	return moves, nil
}

func (r *moveRepository) CountBySession(ctx context.Context, tx *gorm.DB, sessionID string) (int, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Move{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(models.CodeStorage, err, "failed to count moves for session %s", sessionID)
	}
	return int(count), nil
}
