package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebox/backend/internal/api"
	"github.com/pageza/recipebox/backend/internal/repository"
	"github.com/pageza/recipebox/backend/internal/router"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/session"
	"github.com/pageza/recipebox/backend/internal/testhelpers"
	"github.com/pageza/recipebox/backend/internal/view"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const cookieName = "recipebox_session"

type testApp struct {
	router  *gin.Engine
	recipes *service.RecipeService
	store   *session.MemoryStore
}

type appOptions struct {
	requireAuthForWrites bool
	checks               map[string]api.CheckFunc
}

func setupApp(t *testing.T, opts appOptions) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDatabase(t)
	log := zap.NewNop()

	store := session.NewMemoryStore(time.Minute, log)
	t.Cleanup(store.Close)
	sessions := session.NewManager(store, session.Options{CookieName: cookieName, TTL: time.Hour}, log)

	auth := service.NewAuthService(repository.NewUserRepository(db), bcrypt.MinCost, log)
	recipes := service.NewRecipeService(repository.NewRecipeRepository(db), repository.NewFavoriteRepository(db), log)
	renderer := view.JSONRenderer{}

	checks := opts.checks
	if checks == nil {
		checks = map[string]api.CheckFunc{"database": func(context.Context) error { return nil }}
	}

	r := router.SetupRouter(router.Dependencies{
		Log:           log,
		Renderer:      renderer,
		Sessions:      sessions,
		AuthHandler:   api.NewAuthHandler(auth, recipes, sessions, renderer, log),
		RecipeHandler: api.NewRecipeHandler(recipes, renderer, log, opts.requireAuthForWrites),
		HealthHandler: api.NewHealthHandler(checks, log),
	})
	return &testApp{router: r, recipes: recipes, store: store}
}

// client carries the session cookie between requests like a browser would
type client struct {
	app    *testApp
	cookie string
}

func (a *testApp) client() *client {
	return &client{app: a}
}

func (cl *client) do(t *testing.T, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cl.cookie != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: cl.cookie})
	}

	w := httptest.NewRecorder()
	cl.app.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name != cookieName {
			continue
		}
		if c.MaxAge < 0 || c.Value == "" {
			cl.cookie = ""
		} else {
			cl.cookie = c.Value
		}
	}
	return w
}

func (cl *client) get(t *testing.T, path string) *httptest.ResponseRecorder {
	return cl.do(t, http.MethodGet, path, nil)
}

func (cl *client) post(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return cl.do(t, http.MethodPost, path, form)
}

func (cl *client) register(t *testing.T, username, password string) {
	t.Helper()
	w := cl.post(t, "/register", url.Values{"username": {username}, "password": {password}})
	require.Equal(t, http.StatusFound, w.Code)
	require.NotEmpty(t, cl.cookie)
}

type viewResponse struct {
	View   string                     `json:"view"`
	Locals map[string]json.RawMessage `json:"locals"`
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) viewResponse {
	t.Helper()
	var resp viewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func (v viewResponse) local(t *testing.T, key string, out interface{}) {
	t.Helper()
	raw, ok := v.Locals[key]
	require.True(t, ok, "missing local %q", key)
	require.NoError(t, json.Unmarshal(raw, out))
}

func (v viewResponse) str(t *testing.T, key string) string {
	var s string
	v.local(t, key, &s)
	return s
}

var errUnavailable = errors.New("connection refused")
