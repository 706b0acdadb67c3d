package service

import (
	"context"

	"github.com/pageza/recipebox/backend/internal/models"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

// IRecipeService defines the interface for recipe and favorite operations
type IRecipeService interface {
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, id uint) (*models.Recipe, error)
	RandomRecipe(ctx context.Context) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, title, ingredients, method string) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, id uint, title, ingredients, method string) error
	DeleteRecipe(ctx context.Context, id uint) error
	FavoriteRecipe(ctx context.Context, userID, recipeID uint) error
	UnfavoriteRecipe(ctx context.Context, userID, recipeID uint) error
	IsFavorite(ctx context.Context, userID, recipeID uint) (bool, error)
	GetFavoriteRecipes(ctx context.Context, userID uint) ([]models.Recipe, error)
}

var (
	_ IAuthService   = (*AuthService)(nil)
	_ IRecipeService = (*RecipeService)(nil)
)
