// Package router sets up all HTTP routes and middleware chains for the
// gallery. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"db3dgallery/internal/handlers"
	"db3dgallery/internal/metrics"
	"db3dgallery/internal/middleware"
)

// Options carries the non-handler settings of the router.
type Options struct {
	// Static is the filesystem served under /static/.
	Static fs.FS

	// ImagesDir holds the catalog's bundled images, served under /images/.
	// Empty disables the route.
	ImagesDir string

	// SecureCookies marks the CSRF cookie HTTPS-only.
	SecureCookies bool
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessions middleware.SessionGetter, gallery *handlers.Gallery, auth *handlers.Auth, admin *handlers.Admin, collector *metrics.Collector, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check and metrics: no session, no CSRF.
	r.Get("/health", healthHandler)
	r.Get("/metrics", metricsHandler(collector))

	if opts.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(opts.Static))))
	}
	if opts.ImagesDir != "" {
		r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(opts.ImagesDir))))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.LoadSession(sessions))
		r.Use(middleware.NewCSRF(opts.SecureCookies))

		r.Get("/", gallery.Index)

		r.Route("/admin", func(r chi.Router) {
			// Entry into and exit from admin mode. Logging out of an
			// expired session still succeeds.
			r.Get("/login", auth.LoginPage)
			r.Post("/login", auth.LoginSubmit)
			r.Post("/logout", auth.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Post("/media/{key}", admin.UpdateMedia)

				r.Route("/assets", func(r chi.Router) {
					r.Post("/", admin.AddAsset)
					r.Post("/batch", admin.BatchAdd)
					r.Delete("/{id}", admin.DeleteAsset)
				})

				r.Get("/export", admin.Export)
				r.Post("/reset", admin.Reset)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// metricsHandler refreshes the gallery gauges before each scrape.
func metricsHandler(collector *metrics.Collector) http.HandlerFunc {
	h := promhttp.Handler()
	return func(w http.ResponseWriter, r *http.Request) {
		if collector != nil {
			collector.UpdateMetrics()
		}
		h.ServeHTTP(w, r)
	}
}
