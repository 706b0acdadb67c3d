// Package seed fills a database with generated recipes for local development.
package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/pageza/recipebox/backend/internal/models"
	"go.uber.org/zap"
)

// RecipeCreator is the part of the recipe repository the seeder writes through
type RecipeCreator interface {
	Create(ctx context.Context, title, ingredients, method string) (*models.Recipe, error)
}

// RecipeDraft is a generated recipe before it is stored
type RecipeDraft struct {
	Title       string
	Ingredients string
	Method      string
}

var dishes = []func() string{
	gofakeit.Breakfast,
	gofakeit.Lunch,
	gofakeit.Dinner,
	gofakeit.Dessert,
}

// NewRecipeDraft builds a recipe with one ingredient and one step per line
func NewRecipeDraft() RecipeDraft {
	title := dishes[gofakeit.Number(0, len(dishes)-1)]()

	ingredients := make([]string, gofakeit.Number(3, 8))
	for i := range ingredients {
		item := gofakeit.Vegetable()
		if gofakeit.Bool() {
			item = gofakeit.Fruit()
		}
		ingredients[i] = fmt.Sprintf("%d %s", gofakeit.Number(1, 4), strings.ToLower(item))
	}

	steps := make([]string, gofakeit.Number(2, 6))
	for i := range steps {
		steps[i] = gofakeit.Sentence(gofakeit.Number(6, 12))
	}

	return RecipeDraft{
		Title:       title,
		Ingredients: strings.Join(ingredients, "\n"),
		Method:      strings.Join(steps, "\n"),
	}
}

// Recipes stores n generated recipes
func Recipes(ctx context.Context, repo RecipeCreator, n int, log *zap.Logger) error {
	for i := 0; i < n; i++ {
		draft := NewRecipeDraft()
		recipe, err := repo.Create(ctx, draft.Title, draft.Ingredients, draft.Method)
		if err != nil {
			return fmt.Errorf("failed to seed recipe %q: %w", draft.Title, err)
		}
		log.Debug("Seeded recipe", zap.Uint("recipe_id", recipe.ID), zap.String("title", recipe.Title))
	}
	return nil
}
