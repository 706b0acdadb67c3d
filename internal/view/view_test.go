package view

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderView(t *testing.T, r Renderer, name string, data gin.H) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Render(c, http.StatusOK, name, data)
	return w
}

func TestJSONRenderer(t *testing.T) {
	w := renderView(t, JSONRenderer{}, Recipes, gin.H{"recipes": []models.Recipe{{ID: 1, Title: "Soup"}}})

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		View   string `json:"view"`
		Locals struct {
			Recipes []models.Recipe `json:"recipes"`
		} `json:"locals"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, Recipes, body.View)
	require.Len(t, body.Locals.Recipes, 1)
	assert.Equal(t, "Soup", body.Locals.Recipes[0].Title)
}

func TestJSONRendererNilData(t *testing.T) {
	w := renderView(t, JSONRenderer{}, Login, nil)
	assert.JSONEq(t, `{"view":"login","locals":{}}`, w.Body.String())
}

func TestHTMLRendererPages(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	desc := "Warming"
	tests := []struct {
		name     string
		view     string
		data     gin.H
		contains []string
	}{
		{"home", Home, gin.H{"title": "Recipe App"}, []string{"<h1>Recipe App</h1>"}},
		{"empty list", Recipes, gin.H{"recipes": []models.Recipe{}}, []string{"No recipes yet."}},
		{"list", Recipes, gin.H{"recipes": []models.Recipe{{ID: 3, Title: "Soup"}}}, []string{`<a href="/recipes/3">Soup</a>`}},
		{"recipe", Recipe, gin.H{"recipe": &models.Recipe{ID: 3, Title: "Soup", Description: &desc, Ingredients: "Water\nSalt"}},
			[]string{"<h1>Soup</h1>", "<p>Warming</p>", "<li>Salt</li>", `action="/recipes/3/edit"`}},
		{"absent recipe", Recipe, gin.H{"recipe": (*models.Recipe)(nil)}, []string{"Recipe not found"}},
		{"register error", Register, gin.H{"error": "Username already exists."}, []string{"Username already exists."}},
		{"login without data", Login, nil, []string{"<h1>Log in</h1>"}},
		{"profile", Profile, gin.H{"user": gin.H{"Username": "alice"}}, []string{"<h1>alice</h1>", "not favorited any"}},
		{"error", Error, gin.H{}, []string{"could not be completed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := renderView(t, r, tt.view, tt.data)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
			for _, s := range tt.contains {
				assert.Contains(t, w.Body.String(), s)
			}
			assert.NotContains(t, w.Body.String(), "no value")
		})
	}
}

func TestHTMLRendererEscapes(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	w := renderView(t, r, Register, gin.H{"error": "<script>alert(1)</script>"})
	assert.NotContains(t, w.Body.String(), "<script>alert(1)</script>")
	assert.Contains(t, w.Body.String(), "&lt;script&gt;")
}

func TestHTMLRendererUnknownView(t *testing.T) {
	r, err := NewHTMLRenderer()
	require.NoError(t, err)

	w := renderView(t, r, "missing", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestNew(t *testing.T) {
	r, err := New("json")
	require.NoError(t, err)
	assert.IsType(t, JSONRenderer{}, r)

	r, err = New("html")
	require.NoError(t, err)
	assert.IsType(t, &HTMLRenderer{}, r)

	_, err = New("xml")
	assert.Error(t, err)
}
