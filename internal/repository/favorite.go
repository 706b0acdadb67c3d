package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/pageza/recipebox/backend/internal/models"
	"gorm.io/gorm"
)

// FavoriteRepository links users to the recipes they bookmarked
type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	if db == nil {
		panic("database connection cannot be nil for FavoriteRepository")
	}
	return &FavoriteRepository{db: db}
}

// addFavoriteSQL inserts the pair only while the recipe exists, in a single
// statement so a concurrent delete cannot leave a dangling favorite.
const addFavoriteSQL = `INSERT INTO favorites (user_id, recipe_id, created_at)
SELECT ?, ?, ? WHERE EXISTS (SELECT 1 FROM recipes WHERE id = ?)
ON CONFLICT (user_id, recipe_id) DO NOTHING`

// Add favorites the recipe for the user. Favoriting twice keeps a single row
// and favoriting a missing recipe does nothing. Reports whether a row was added.
func (r *FavoriteRepository) Add(ctx context.Context, userID, recipeID uint) (bool, error) {
	result := r.db.WithContext(ctx).Exec(addFavoriteSQL, userID, recipeID, time.Now(), recipeID)
	if result.Error != nil {
		return false, fmt.Errorf("add favorite (user %d, recipe %d): %w", userID, recipeID, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Remove deletes the pair if present
func (r *FavoriteRepository) Remove(ctx context.Context, userID, recipeID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{}).Error
	if err != nil {
		return fmt.Errorf("remove favorite (user %d, recipe %d): %w", userID, recipeID, err)
	}
	return nil
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, recipeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check favorite (user %d, recipe %d): %w", userID, recipeID, err)
	}
	return count > 0, nil
}

// ListRecipesByUser returns the user's favorite recipes, most recently favorited first
func (r *FavoriteRepository) ListRecipesByUser(ctx context.Context, userID uint) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	err := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Select("recipes.*").
		Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.id DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("list favorites of user %d: %w", userID, err)
	}
	return recipes, nil
}
