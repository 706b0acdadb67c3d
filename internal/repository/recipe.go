package repository

import (
	"context"
	"fmt"

	"github.com/pageza/recipebox/backend/internal/models"
	"gorm.io/gorm"
)

// RecipeRepository reads and writes the recipes table. Lookups of a missing
// recipe return (nil, nil) and mutations of a missing recipe are no-ops.
type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	if db == nil {
		panic("database connection cannot be nil for RecipeRepository")
	}
	return &RecipeRepository{db: db}
}

// List returns every recipe ordered by title, descending
func (r *RecipeRepository) List(ctx context.Context) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	if err := r.db.WithContext(ctx).Order("title DESC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

func (r *RecipeRepository) Get(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	res := r.db.WithContext(ctx).Limit(1).Find(&recipe, id)
	if res.Error != nil {
		return nil, fmt.Errorf("get recipe %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &recipe, nil
}

// Create inserts a recipe. The description is left unset.
func (r *RecipeRepository) Create(ctx context.Context, title, ingredients, method string) (*models.Recipe, error) {
	recipe := &models.Recipe{
		Title:       title,
		Ingredients: ingredients,
		Method:      method,
	}
	if err := r.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	return recipe, nil
}

// Update overwrites title, ingredients and method. Last write wins.
func (r *RecipeRepository) Update(ctx context.Context, id uint, title, ingredients, method string) error {
	err := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":       title,
			"ingredients": ingredients,
			"method":      method,
		}).Error
	if err != nil {
		return fmt.Errorf("update recipe %d: %w", id, err)
	}
	return nil
}

// Delete removes the recipe together with every favorite pointing at it
func (r *RecipeRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Recipe{}).Error
	})
	if err != nil {
		return fmt.Errorf("delete recipe %d: %w", id, err)
	}
	return nil
}

// Random picks one recipe uniformly at random
func (r *RecipeRepository) Random(ctx context.Context) (*models.Recipe, error) {
	var recipe models.Recipe
	res := r.db.WithContext(ctx).Order("RANDOM()").Limit(1).Find(&recipe)
	if res.Error != nil {
		return nil, fmt.Errorf("random recipe: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &recipe, nil
}

func (r *RecipeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Recipe{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count recipes: %w", err)
	}
	return count, nil
}
