// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handler groups of the gallery: the
// public gallery page, the admin mode login flow and the admin mutations.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"db3dgallery/internal/admin"
	"db3dgallery/internal/cache"
	"db3dgallery/internal/middleware"
	"db3dgallery/internal/models"
	"db3dgallery/internal/render"
)

// PageCache stores rendered gallery pages for visitors in normal mode.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, html []byte)
	Invalidate(ctx context.Context, key string)
}

// Gallery serves the public gallery page.
type Gallery struct {
	renderer *render.Renderer
	engine   *admin.Engine
	pages    PageCache
}

// NewGallery creates a new Gallery handler group. pages may be nil.
func NewGallery(renderer *render.Renderer, engine *admin.Engine, pages PageCache) *Gallery {
	return &Gallery{
		renderer: renderer,
		engine:   engine,
		pages:    pages,
	}
}

// Index renders the gallery filtered by the "main" and "sub" query
// parameters. Normal-mode pages are served from the page cache; admin
// pages carry per-session affordances and are always rendered fresh.
func (g *Gallery) Index(w http.ResponseWriter, r *http.Request) {
	main, sub := render.NormalizeCategory(
		models.MainCategory(r.URL.Query().Get("main")),
		models.SubCategory(r.URL.Query().Get("sub")),
	)

	if middleware.IsAdmin(r.Context()) {
		g.renderer.Page(w, r, "gallery", &render.PageData{
			Title: main.Label(),
			Data:  render.NewGalleryData(g.engine.View(), main, sub),
		})
		return
	}

	key := cache.GalleryKey(main, sub)
	if g.pages != nil {
		if html, ok := g.pages.Get(r.Context(), key); ok {
			w.Header().Set("X-Cache", "HIT")
			render.Write(w, http.StatusOK, html)
			return
		}
	}

	view := g.engine.View()
	html, err := g.renderer.Bytes("gallery", &render.PageData{
		Title: main.Label(),
		Data:  render.NewGalleryData(view, main, sub),
	})
	if err != nil {
		slog.Error("gallery render failed", "main", main, "sub", sub, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if g.pages != nil {
		g.store(r.Context(), key, html, view.Generation)
	}
	w.Header().Set("X-Cache", "MISS")
	render.Write(w, http.StatusOK, html)
}

// store caches html rendered from generation gen. A mutation bumps the
// generation before dropping cached pages, so a page that raced with one is
// either skipped here or removed by the check after the write.
func (g *Gallery) store(ctx context.Context, key string, html []byte, gen uint64) {
	if g.engine.Generation() != gen {
		return
	}
	g.pages.Set(ctx, key, html)
	if g.engine.Generation() != gen {
		g.pages.Invalidate(ctx, key)
		slog.Debug("stale gallery page dropped", "key", key)
	}
}
