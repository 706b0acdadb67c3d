package repository

import (
	"context"
	"fmt"

	"github.com/pageza/recipebox/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository persists registered users
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	if db == nil {
		panic("database connection cannot be nil for UserRepository")
	}
	return &UserRepository{db: db}
}

// FindByUsername returns ErrNotFound when no user has the username
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	res := r.db.WithContext(ctx).Where("username = ?", username).Limit(1).Find(&user)
	if res.Error != nil {
		return nil, fmt.Errorf("find user by username %q: %w", username, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &user, nil
}

// FindByID returns ErrNotFound when no user has the id
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	res := r.db.WithContext(ctx).Limit(1).Find(&user, id)
	if res.Error != nil {
		return nil, fmt.Errorf("find user by id %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &user, nil
}

// Create inserts the user and fills in its id. A taken username yields ErrDuplicateEntry.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEntry
		}
		return fmt.Errorf("create user %q: %w", user.Username, err)
	}
	return nil
}
