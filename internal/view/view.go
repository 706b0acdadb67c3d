// Package view turns a view name plus data into a response body.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/session"
)

// View names
const (
	Home     = "home"
	Recipes  = "recipes"
	Recipe   = "recipe"
	Register = "register"
	Login    = "login"
	Profile  = "profile"
	Error    = "error"
)

// Renderer writes the named view. Absent keys in data render as empty.
type Renderer interface {
	Render(c *gin.Context, status int, name string, data gin.H)
}

// New returns the renderer for the configured view mode
func New(mode string) (Renderer, error) {
	switch mode {
	case config.ViewModeJSON:
		return JSONRenderer{}, nil
	case config.ViewModeHTML, "":
		return NewHTMLRenderer()
	default:
		return nil, fmt.Errorf("unknown view mode %q", mode)
	}
}

// JSONRenderer responds with {"view": name, "locals": data}
type JSONRenderer struct{}

func (JSONRenderer) Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	c.JSON(status, gin.H{"view": name, "locals": data})
}

//go:embed templates/*.html
var templateFiles embed.FS

var pages = []string{Home, Recipes, Recipe, Register, Login, Profile, Error}

// HTMLRenderer executes the embedded page templates inside a shared layout
type HTMLRenderer struct {
	templates map[string]*template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	funcs := template.FuncMap{
		"lines": func(s string) []string {
			return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
		},
	}

	r := &HTMLRenderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(
			templateFiles, "templates/layout.html", "templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse view %s: %w", page, err)
		}
		r.templates[page] = tmpl
	}
	return r, nil
}

func (r *HTMLRenderer) Render(c *gin.Context, status int, name string, data gin.H) {
	tmpl, ok := r.templates[name]
	if !ok {
		c.String(http.StatusInternalServerError, "unknown view %q", name)
		return
	}
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["currentUser"]; !ok {
		if identity, ok := session.CurrentUser(c); ok {
			data["currentUser"] = identity.Username
		}
	}
	c.Render(status, render.HTML{Template: tmpl, Name: "layout.html", Data: data})
}
