// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the gallery and the
// admin login page. Templates are embedded and parsed once at startup.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"db3dgallery/internal/markdown"
	"db3dgallery/internal/middleware"
	"db3dgallery/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData holds all data passed to templates.
type PageData struct {
	Title     string // Page title for <title> tag
	Admin     bool   // Elevated session; enables admin affordances
	CSRFToken string // Only rendered for admin pages and forms
	Data      any    // Page-specific data
	Flashes   []Flash
}

// Flash represents a one-time notification message displayed to the user.
type Flash struct {
	Type    string // "success", "error", "warning", "info"
	Message string
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// standaloneTemplates lists templates that render as full HTML pages
// without the base layout.
var standaloneTemplates = map[string]bool{
	"login": true,
}

// New creates a Renderer by parsing all templates from the embedded
// filesystem. Each page template is paired with the base layout.
func New() (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"markdown":  markdown.Render,
			"mediaURL":  MediaURL,
			"isVideo":   isVideo,
			"mainLabel": func(m models.MainCategory) string { return m.Label() },
			"subs":      func(m models.MainCategory) []models.SubCategory { return m.SubCategories() },
			"year":      func() int { return time.Now().Year() },
		},
	}

	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" || !strings.HasSuffix(name, ".html") {
			continue
		}
		tmplName := strings.TrimSuffix(name, ".html")

		var tmpl *template.Template
		var parseErr error
		if standaloneTemplates[tmplName] {
			tmpl, parseErr = template.New(name).Funcs(r.funcMap).ParseFS(
				templateFS, "templates/"+name,
			)
		} else {
			tmpl, parseErr = template.New("base.html").Funcs(r.funcMap).ParseFS(
				templateFS, "templates/base.html", "templates/"+name,
			)
		}
		if parseErr != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, parseErr)
		}

		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Bytes renders a page into memory. The gallery handler uses it to fill
// the page cache.
func (rn *Renderer) Bytes(name string, data *PageData) ([]byte, error) {
	tmpl, ok := rn.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}

	execName := "base.html"
	if standaloneTemplates[name] {
		execName = name + ".html"
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, execName, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Page renders a full page to w. The admin flag and CSRF token are taken
// from the request context.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	rn.PageStatus(w, r, http.StatusOK, name, data)
}

// PageStatus is Page with an explicit status code.
func (rn *Renderer) PageStatus(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())
	data.Admin = middleware.IsAdmin(r.Context())

	out, err := rn.Bytes(name, data)
	if err != nil {
		slog.Error("template render failed", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	Write(w, status, out)
}

// Write sends pre-rendered HTML.
func Write(w http.ResponseWriter, status int, html []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(html)
}

// isVideo reports whether a media source should be shown in a <video>.
func isVideo(s string) bool {
	return strings.HasPrefix(s, "data:video/") || strings.HasSuffix(s, ".mp4") || strings.HasSuffix(s, ".webm")
}

// MediaURL marks a media source as safe for src attributes. Data URIs are
// only allowed for image and video payloads; anything else that is not a
// web or site-relative URL is replaced with "#".
func MediaURL(s string) template.URL {
	switch {
	case strings.HasPrefix(s, "data:image/"), strings.HasPrefix(s, "data:video/"):
		return template.URL(s)
	case strings.HasPrefix(s, "https://"), strings.HasPrefix(s, "http://"):
		return template.URL(s)
	case strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//"):
		return template.URL(s)
	default:
		return template.URL("#")
	}
}
