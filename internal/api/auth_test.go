package api_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndViewProfile(t *testing.T) {
	app := setupApp(t, appOptions{})
	cl := app.client()

	w := cl.post(t, "/register", url.Values{"username": {"alice"}, "password": {"pw1"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile", w.Header().Get("Location"))
	require.NotEmpty(t, cl.cookie)

	w = cl.get(t, "/profile")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeView(t, w)
	assert.Equal(t, view.Profile, resp.View)

	var user models.User
	resp.local(t, "user", &user)
	assert.Equal(t, "alice", user.Username)
	assert.NotContains(t, w.Body.String(), "password")

	var favorites []models.Recipe
	resp.local(t, "favorites", &favorites)
	assert.Empty(t, favorites)
}

func TestRegisterValidation(t *testing.T) {
	app := setupApp(t, appOptions{})

	tests := []struct {
		name    string
		form    url.Values
		message string
	}{
		{"missing password", url.Values{"username": {"alice"}}, "Username and password are required."},
		{"missing username", url.Values{"password": {"pw"}}, "Username and password are required."},
		{"empty body", url.Values{}, "Username and password are required."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cl := app.client()
			w := cl.post(t, "/register", tt.form)
			require.Equal(t, http.StatusOK, w.Code)

			resp := decodeView(t, w)
			assert.Equal(t, view.Register, resp.View)
			assert.Equal(t, tt.message, resp.str(t, "error"))
			assert.Empty(t, cl.cookie)
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	app := setupApp(t, appOptions{})
	app.client().register(t, "alice", "pw1")

	cl := app.client()
	w := cl.post(t, "/register", url.Values{"username": {"alice"}, "password": {"other"}})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeView(t, w)
	assert.Equal(t, view.Register, resp.View)
	assert.Equal(t, "Username already exists.", resp.str(t, "error"))
	assert.Equal(t, "alice", resp.str(t, "username"))
	assert.Empty(t, cl.cookie)
}

func TestLogin(t *testing.T) {
	app := setupApp(t, appOptions{})
	app.client().register(t, "alice", "pw1")

	cl := app.client()
	w := cl.post(t, "/login", url.Values{"username": {"alice"}, "password": {"pw1"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile", w.Header().Get("Location"))
	require.NotEmpty(t, cl.cookie)

	w = cl.get(t, "/profile")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	app := setupApp(t, appOptions{})
	app.client().register(t, "alice", "pw1")

	wrongPassword := app.client().post(t, "/login", url.Values{"username": {"alice"}, "password": {"nope"}})
	unknownUser := app.client().post(t, "/login", url.Values{"username": {"bob"}, "password": {"nope"}})

	require.Equal(t, http.StatusOK, wrongPassword.Code)
	require.Equal(t, wrongPassword.Code, unknownUser.Code)

	a, b := decodeView(t, wrongPassword), decodeView(t, unknownUser)
	assert.Equal(t, view.Login, a.View)
	assert.Equal(t, a.View, b.View)
	assert.Equal(t, "Invalid username or password.", a.str(t, "error"))
	assert.Equal(t, a.str(t, "error"), b.str(t, "error"))
}

func TestLoginMissingFields(t *testing.T) {
	app := setupApp(t, appOptions{})

	w := app.client().post(t, "/login", url.Values{"username": {"alice"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Username and password are required.", decodeView(t, w).str(t, "error"))
}

func TestRegisterAndLoginWithLongPassword(t *testing.T) {
	app := setupApp(t, appOptions{})
	password := strings.Repeat("x", 100)

	cl := app.client()
	w := cl.post(t, "/register", url.Values{"username": {"alice"}, "password": {password}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile", w.Header().Get("Location"))

	other := app.client()
	w = other.post(t, "/login", url.Values{"username": {"alice"}, "password": {password}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile", w.Header().Get("Location"))
	require.NotEmpty(t, other.cookie)

	w = other.get(t, "/profile")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestLoginRotatesSessionToken(t *testing.T) {
	app := setupApp(t, appOptions{})
	cl := app.client()
	cl.register(t, "alice", "pw1")
	first := cl.cookie

	w := cl.post(t, "/login", url.Values{"username": {"alice"}, "password": {"pw1"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.NotEqual(t, first, cl.cookie)

	// the pre-login token no longer authenticates
	stale := app.client()
	stale.cookie = first
	w = stale.get(t, "/profile")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestProfileRequiresSession(t *testing.T) {
	app := setupApp(t, appOptions{})

	w := app.client().get(t, "/profile")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestUnknownSessionCookieIsCleared(t *testing.T) {
	app := setupApp(t, appOptions{})
	cl := app.client()
	cl.cookie = "not-a-session"

	w := cl.get(t, "/profile")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Empty(t, cl.cookie)
}

func TestLogout(t *testing.T) {
	app := setupApp(t, appOptions{})
	cl := app.client()
	cl.register(t, "alice", "pw1")
	token := cl.cookie
	require.Equal(t, 1, app.store.Len())

	w := cl.post(t, "/logout", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Empty(t, cl.cookie)
	assert.Equal(t, 0, app.store.Len())

	replay := app.client()
	replay.cookie = token
	w = replay.get(t, "/profile")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestLogoutWithoutSession(t *testing.T) {
	app := setupApp(t, appOptions{})

	w := app.client().post(t, "/logout", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestAuthPages(t *testing.T) {
	app := setupApp(t, appOptions{})
	cl := app.client()

	for path, name := range map[string]string{
		"/":         view.Home,
		"/register": view.Register,
		"/login":    view.Login,
	} {
		w := cl.get(t, path)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, name, decodeView(t, w).View, path)
	}

	assert.Equal(t, "Recipe App", decodeView(t, cl.get(t, "/")).str(t, "title"))
}
