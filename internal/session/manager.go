package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	identityKey = "session_identity"
	tokenKey    = "session_token"
)

// Options configures the session cookie
type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Manager attaches sessions to requests. The identity of a request lives on
// its gin context only.
type Manager struct {
	store Store
	opts  Options
	log   *zap.Logger
}

func NewManager(store Store, opts Options, log *zap.Logger) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "recipebox_session"
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	return &Manager{store: store, opts: opts, log: log}
}

// Middleware resolves the session cookie and slides its expiration forward.
// Unknown or expired tokens are cleared and the request continues anonymously.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(m.opts.CookieName)
		if err != nil || cookie == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		identity, err := m.store.Load(ctx, cookie)
		if errors.Is(err, ErrNotFound) {
			m.clearCookie(c)
			c.Next()
			return
		}
		if err != nil {
			m.log.Error("Failed to load session", zap.Error(err))
			_ = c.Error(err)
			c.Abort()
			return
		}

		token, err := m.store.Save(ctx, cookie, identity, m.opts.TTL)
		if err != nil {
			m.log.Error("Failed to refresh session", zap.Error(err))
			_ = c.Error(err)
			c.Abort()
			return
		}
		m.setCookie(c, token)

		c.Set(identityKey, identity)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// Establish binds a fresh session to the identity. Any session the request
// already carried is discarded first.
func (m *Manager) Establish(c *gin.Context, identity Identity) error {
	ctx := c.Request.Context()
	if old := m.token(c); old != "" {
		if err := m.store.Destroy(ctx, old); err != nil {
			return err
		}
	}

	token, err := m.store.Save(ctx, "", identity, m.opts.TTL)
	if err != nil {
		return err
	}
	m.setCookie(c, token)

	c.Set(identityKey, identity)
	c.Set(tokenKey, token)
	m.log.Debug("Session established", zap.Uint("user_id", identity.ID))
	return nil
}

// Destroy ends the request's session. Calling it without a session is a no-op.
func (m *Manager) Destroy(c *gin.Context) error {
	token := m.token(c)
	if token == "" {
		return nil
	}
	if err := m.store.Destroy(c.Request.Context(), token); err != nil {
		return err
	}
	m.clearCookie(c)

	c.Set(identityKey, nil)
	c.Set(tokenKey, "")
	return nil
}

// token prefers the token resolved by Middleware and falls back to the raw cookie
func (m *Manager) token(c *gin.Context) string {
	if token := c.GetString(tokenKey); token != "" {
		return token
	}
	if _, resolved := c.Get(tokenKey); resolved {
		return ""
	}
	cookie, err := c.Cookie(m.opts.CookieName)
	if err != nil {
		return ""
	}
	return cookie
}

func (m *Manager) setCookie(c *gin.Context, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.opts.TTL.Seconds()),
		Expires:  time.Now().Add(m.opts.TTL),
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) clearCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// CurrentUser returns the identity bound to the request, if any
func CurrentUser(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := v.(Identity)
	return identity, ok
}
