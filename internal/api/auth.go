package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebox/backend/internal/middleware"
	"github.com/pageza/recipebox/backend/internal/repository"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/session"
	"github.com/pageza/recipebox/backend/internal/view"
	"go.uber.org/zap"
)

const (
	loginPath   = "/login"
	profilePath = "/profile"
)

// AuthHandler serves registration, login, logout and the profile page
type AuthHandler struct {
	auth     service.IAuthService
	recipes  service.IRecipeService
	sessions *session.Manager
	renderer view.Renderer
	log      *zap.Logger
}

func NewAuthHandler(
	auth service.IAuthService,
	recipes service.IRecipeService,
	sessions *session.Manager,
	renderer view.Renderer,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		recipes:  recipes,
		sessions: sessions,
		renderer: renderer,
		log:      log,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/register", h.ShowRegister)
	router.POST("/register", h.Register)
	router.GET(loginPath, h.ShowLogin)
	router.POST(loginPath, h.Login)
	router.POST("/logout", h.Logout)
	router.GET(profilePath, middleware.RequireAuth(loginPath), h.Profile)
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	h.renderer.Render(c, http.StatusOK, view.Register, gin.H{})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form CredentialsForm
	if err := c.ShouldBind(&form); err != nil {
		h.log.Debug("Unreadable register form", zap.Error(err))
	}

	user, err := h.auth.Register(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		h.renderFormError(c, view.Register, form, err)
		return
	}

	if err := h.sessions.Establish(c, session.Identity{ID: user.ID, Username: user.Username}); err != nil {
		_ = c.Error(err)
		return
	}
	c.Redirect(http.StatusFound, profilePath)
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	h.renderer.Render(c, http.StatusOK, view.Login, gin.H{})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form CredentialsForm
	if err := c.ShouldBind(&form); err != nil {
		h.log.Debug("Unreadable login form", zap.Error(err))
	}

	user, err := h.auth.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		h.renderFormError(c, view.Login, form, err)
		return
	}

	if err := h.sessions.Establish(c, session.Identity{ID: user.ID, Username: user.Username}); err != nil {
		_ = c.Error(err)
		return
	}
	c.Redirect(http.StatusFound, profilePath)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Destroy(c); err != nil {
		_ = c.Error(err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Profile(c *gin.Context) {
	identity, _ := session.CurrentUser(c)
	ctx := c.Request.Context()

	user, err := h.auth.GetUserByID(ctx, identity.ID)
	if errors.Is(err, repository.ErrNotFound) {
		// session outlived its user
		if err := h.sessions.Destroy(c); err != nil {
			_ = c.Error(err)
			return
		}
		c.Redirect(http.StatusFound, loginPath)
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	favorites, err := h.recipes.GetFavoriteRecipes(ctx, user.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.renderer.Render(c, http.StatusOK, view.Profile, gin.H{
		"user":      user,
		"favorites": favorites,
	})
}

// renderFormError re-renders the form with a message for expected failures
// and hands anything else to the error middleware.
func (h *AuthHandler) renderFormError(c *gin.Context, name string, form CredentialsForm, err error) {
	msg, ok := formError(err)
	if !ok {
		_ = c.Error(err)
		return
	}
	h.renderer.Render(c, http.StatusOK, name, gin.H{
		"error":    msg,
		"username": form.Username,
	})
}
