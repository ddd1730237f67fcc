package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gridgames-server/pkg/models"
)

// UserRepository persists player identities.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByIDTx is GetByID within an open transaction. Lookups inside a
	// mutation must use the transaction's connection: the sqlite pool
	// holds a single connection, so a pool query under an open
	// transaction deadlocks.
	GetByIDTx(ctx context.Context, tx *gorm.DB, id string) (*models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a GORM-backed UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return models.NewInternalError(models.CodeStorage, err, "failed to create user")
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return getUser(ctx, r.db, id)
}

func (r *userRepository) GetByIDTx(ctx context.Context, tx *gorm.DB, id string) (*models.User, error) {
	return getUser(ctx, tx, id)
}

func getUser(ctx context.Context, db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError(models.CodeUserNotFound, "user with id %s not found", id)
	}
	if err != nil {
		return nil, models.NewInternalError(models.CodeStorage, err, "failed to load user %s", id)
	}
	return &user, nil
}
