package api

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/session"
	"github.com/pageza/recipebox/backend/internal/view"
	"go.uber.org/zap"
)

// RecipeHandler serves recipe pages, recipe mutations and favorites
type RecipeHandler struct {
	recipes              service.IRecipeService
	renderer             view.Renderer
	log                  *zap.Logger
	requireAuthForWrites bool
}

func NewRecipeHandler(recipes service.IRecipeService, renderer view.Renderer, log *zap.Logger, requireAuthForWrites bool) *RecipeHandler {
	return &RecipeHandler{
		recipes:              recipes,
		renderer:             renderer,
		log:                  log,
		requireAuthForWrites: requireAuthForWrites,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	writeGuard := []gin.HandlerFunc{}
	if h.requireAuthForWrites {
		writeGuard = append(writeGuard, middleware.RequireAuth(loginPath))
	}
	guarded := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, writeGuard...), handler)
	}

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/random", h.RandomRecipe)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", guarded(h.CreateRecipe)...)
		recipes.POST("/:id/edit", guarded(h.UpdateRecipe)...)
		recipes.POST("/:id/delete", guarded(h.DeleteRecipe)...)
		recipes.POST("/:id/favorite", middleware.RequireAuth(loginPath), h.FavoriteRecipe)
		recipes.POST("/:id/unfavorite", middleware.RequireAuth(loginPath), h.UnfavoriteRecipe)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.ListRecipes(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.renderer.Render(c, http.StatusOK, view.Recipes, gin.H{"recipes": recipes})
}

// GetRecipe renders the detail view. An unknown id renders with no recipe.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	var recipe *models.Recipe
	if id, ok := recipeIDParam(c); ok {
		var err error
		recipe, err = h.recipes.GetRecipe(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(err)
			return
		}
	}
	h.renderRecipe(c, recipe)
}

func (h *RecipeHandler) RandomRecipe(c *gin.Context) {
	recipe, err := h.recipes.RandomRecipe(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.renderRecipe(c, recipe)
}

func (h *RecipeHandler) renderRecipe(c *gin.Context, recipe *models.Recipe) {
	favorited := false
	if identity, ok := session.CurrentUser(c); ok && recipe != nil {
		var err error
		favorited, err = h.recipes.IsFavorite(c.Request.Context(), identity.ID, recipe.ID)
		if err != nil {
			_ = c.Error(err)
			return
		}
	}
	h.renderer.Render(c, http.StatusOK, view.Recipe, gin.H{
		"recipe":    recipe,
		"favorited": favorited,
	})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var form RecipeForm
	if err := c.ShouldBind(&form); err != nil {
		h.log.Debug("Unreadable recipe form", zap.Error(err))
	}

	if _, err := h.recipes.CreateRecipe(c.Request.Context(), form.Title, form.Ingredients, form.Method); err != nil {
		_ = c.Error(err)
		return
	}
	c.Redirect(http.StatusFound, "/recipes")
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var form RecipeForm
	if err := c.ShouldBind(&form); err != nil {
		h.log.Debug("Unreadable recipe form", zap.Error(err))
	}

	if id, ok := recipeIDParam(c); ok {
		if err := h.recipes.UpdateRecipe(c.Request.Context(), id, form.Title, form.Ingredients, form.Method); err != nil {
			_ = c.Error(err)
			return
		}
	}
	c.Redirect(http.StatusFound, recipePath(c))
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	if id, ok := recipeIDParam(c); ok {
		if err := h.recipes.DeleteRecipe(c.Request.Context(), id); err != nil {
			_ = c.Error(err)
			return
		}
	}
	c.Redirect(http.StatusFound, "/recipes")
}

func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	identity, _ := session.CurrentUser(c)
	if id, ok := recipeIDParam(c); ok {
		if err := h.recipes.FavoriteRecipe(c.Request.Context(), identity.ID, id); err != nil {
			_ = c.Error(err)
			return
		}
	}
	c.Redirect(http.StatusFound, recipePath(c))
}

func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	identity, _ := session.CurrentUser(c)
	if id, ok := recipeIDParam(c); ok {
		if err := h.recipes.UnfavoriteRecipe(c.Request.Context(), identity.ID, id); err != nil {
			_ = c.Error(err)
			return
		}
	}
	c.Redirect(http.StatusFound, recipePath(c))
}

func recipePath(c *gin.Context) string {
	return "/recipes/" + url.PathEscape(c.Param("id"))
}
