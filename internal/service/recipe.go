package service

import (
	"context"

	"github.com/pageza/recipebox/backend/internal/models"
	"go.uber.org/zap"
)

// RecipeStore is the recipe persistence RecipeService needs
type RecipeStore interface {
	List(ctx context.Context) ([]models.Recipe, error)
	Get(ctx context.Context, id uint) (*models.Recipe, error)
	Create(ctx context.Context, title, ingredients, method string) (*models.Recipe, error)
	Update(ctx context.Context, id uint, title, ingredients, method string) error
	Delete(ctx context.Context, id uint) error
	Random(ctx context.Context) (*models.Recipe, error)
}

// FavoriteStore is the favorite persistence RecipeService needs
type FavoriteStore interface {
	Add(ctx context.Context, userID, recipeID uint) (bool, error)
	Remove(ctx context.Context, userID, recipeID uint) error
	Exists(ctx context.Context, userID, recipeID uint) (bool, error)
	ListRecipesByUser(ctx context.Context, userID uint) ([]models.Recipe, error)
}

type RecipeService struct {
	recipes   RecipeStore
	favorites FavoriteStore
	log       *zap.Logger
}

func NewRecipeService(recipes RecipeStore, favorites FavoriteStore, log *zap.Logger) *RecipeService {
	return &RecipeService{
		recipes:   recipes,
		favorites: favorites,
		log:       log,
	}
}

func (s *RecipeService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	return s.recipes.List(ctx)
}

// GetRecipe returns (nil, nil) for an unknown id
func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	return s.recipes.Get(ctx, id)
}

func (s *RecipeService) RandomRecipe(ctx context.Context) (*models.Recipe, error) {
	return s.recipes.Random(ctx)
}

func (s *RecipeService) CreateRecipe(ctx context.Context, title, ingredients, method string) (*models.Recipe, error) {
	recipe, err := s.recipes.Create(ctx, title, ingredients, method)
	if err != nil {
		return nil, err
	}
	s.log.Info("Recipe created", zap.Uint("recipe_id", recipe.ID))
	return recipe, nil
}

func (s *RecipeService) UpdateRecipe(ctx context.Context, id uint, title, ingredients, method string) error {
	return s.recipes.Update(ctx, id, title, ingredients, method)
}

// DeleteRecipe removes the recipe and any favorites of it
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uint) error {
	if err := s.recipes.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("Recipe deleted", zap.Uint("recipe_id", id))
	return nil
}

// FavoriteRecipe is a no-op for a recipe that does not exist or is already a favorite
func (s *RecipeService) FavoriteRecipe(ctx context.Context, userID, recipeID uint) error {
	added, err := s.favorites.Add(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if added {
		s.log.Debug("Recipe favorited", zap.Uint("user_id", userID), zap.Uint("recipe_id", recipeID))
	}
	return nil
}

func (s *RecipeService) UnfavoriteRecipe(ctx context.Context, userID, recipeID uint) error {
	return s.favorites.Remove(ctx, userID, recipeID)
}

func (s *RecipeService) IsFavorite(ctx context.Context, userID, recipeID uint) (bool, error) {
	return s.favorites.Exists(ctx, userID, recipeID)
}

func (s *RecipeService) GetFavoriteRecipes(ctx context.Context, userID uint) ([]models.Recipe, error) {
	return s.favorites.ListRecipesByUser(ctx, userID)
}
