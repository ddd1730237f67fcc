package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gridgames-server/internal/database"
	"gridgames-server/pkg/models"
)

// SessionFilter narrows a session listing. Zero values mean "no filter".
type SessionFilter struct {
	Status models.SessionStatus
	HostID string
	Limit  int
	Cursor string
}

// DefaultPageSize is used when a listing does not specify a limit.
const DefaultPageSize = 20

// MaxPageSize bounds caller-supplied limits.
const MaxPageSize = 100

// SessionRepository persists sessions. Mutations run inside a caller-owned
// transaction so the engine controls the lock -> validate -> mutate ->
// commit window; reads outside a transaction observe committed snapshots.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)

	// GetByIDForUpdate loads the session inside tx holding an exclusive row
	// lock (SELECT ... FOR UPDATE on postgres). The lock is released on
	// commit or rollback and is the sole mechanism serializing concurrent
	// mutations of one session.
	GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Session, error)

	// Update persists the session within the open transaction.
	Update(ctx context.Context, tx *gorm.DB, session *models.Session) error

	// List returns one page of sessions ordered by created_at descending
	// with a stable id tiebreak, plus the cursor for the next page.
	List(ctx context.Context, filter SessionFilter) ([]models.Session, string, error)
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a GORM-backed SessionRepository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return models.NewInternalError(models.CodeStorage, err, "failed to create session")
	}
	return nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError(models.CodeSessionNotFound, "session with id %s not found", id)
	}
	if err != nil {
		return nil, models.NewInternalError(models.CodeStorage, err, "failed to load session %s", id)
	}
	return &session, nil
}

func (r *sessionRepository) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id string) (*models.Session, error) {
	query := tx.WithContext(ctx)
	// SQLite has no FOR UPDATE; its transactions take a database-level
	// write lock instead, which gives the same serialization.
	if database.IsPostgres(tx) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var session models.Session
	err := query.First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError(models.CodeSessionNotFound, "session with id %s not found", id)
	}
	if err != nil {
		return nil, models.NewInternalError(models.CodeStorage, err, "failed to lock session %s", id)
	}
	return &session, nil
}

func (r *sessionRepository) Update(ctx context.Context, tx *gorm.DB, session *models.Session) error {
	if err := tx.WithContext(ctx).Save(session).Error; err != nil {
		return models.NewInternalError(models.CodeStorage, err, "failed to update session %s", session.ID)
	}
	return nil
}

func (r *sessionRepository) List(ctx context.Context, filter SessionFilter) ([]models.Session, string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		return nil, "", models.NewValidationError(models.CodeInvalidPaging, "limit must be at most %d", MaxPageSize)
	}

	query := r.db.WithContext(ctx).Model(&models.Session{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.HostID != "" {
		query = query.Where("host_id = ?", filter.HostID)
	}
	if filter.Cursor != "" {
		createdAt, id, err := decodeCursor(filter.Cursor)
		if err != nil {
			return nil, "", models.NewValidationError(models.CodeInvalidPaging, "malformed cursor")
		}
		query = query.Where("created_at < ? OR (created_at = ? AND id < ?)", createdAt, createdAt, id)
	}

	// Fetch one extra row to learn whether a next page exists.
	var sessions []models.Session
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit + 1).
		Find(&sessions).Error
	if err != nil {
		return nil, "", models.NewInternalError(models.CodeStorage, err, "failed to list sessions")
	}

	nextCursor := ""
	if len(sessions) > limit {
		sessions = sessions[:limit]
		last := sessions[len(sessions)-1]
		nextCursor = encodeCursor(last.CreatedAt, last.ID)
	}
	return sessions, nextCursor, nil
}

// Transaction runs fn inside a database transaction, rolling back on error
// or panic. It is the engine's commit boundary.
func Transaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	err := db.WithContext(ctx).Transaction(fn)
	if err == nil {
		return nil
	}
	if _, ok := models.AsGameError(err); ok {
		return err
	}
	return models.NewInternalError(models.CodeStorage, err, "transaction failed")
}
