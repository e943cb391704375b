// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Sessions and the page cache run on miniredis; durable storage is the
// in-memory backend.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"db3dgallery/internal/admin"
	"db3dgallery/internal/cache"
	"db3dgallery/internal/catalog"
	"db3dgallery/internal/durable"
	"db3dgallery/internal/middleware"
	"db3dgallery/internal/render"
	"db3dgallery/internal/session"
	"db3dgallery/internal/store"
)

const testPassword = "db3ddb3dd5assetd5kit3d"

// testEnv bundles the handler groups and their backends.
type testEnv struct {
	Gallery *Gallery
	Auth    *Auth
	Admin   *Admin

	engine   *admin.Engine
	renderer *render.Renderer
	backend  *durable.Memory
	pages    *cache.PageCache
	mr       *miniredis.Miniredis
	router   http.Handler
}

// newTestEnv wires the handlers the same way the router does, without
// CSRF protection.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	ctx := context.Background()
	defaults := catalog.Builtin()
	backend := durable.NewMemory(0)
	sessions := session.NewStore(client, time.Hour, false)
	pages := cache.NewPageCache(client, time.Minute)

	engine := admin.New(
		admin.Config{Password: testPassword, Defaults: defaults},
		sessions,
		store.LoadOverrides(ctx, backend),
		store.LoadStructure(ctx, backend, defaults.Assets),
		pages,
	)

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	env := &testEnv{
		Gallery:  NewGallery(renderer, engine, pages),
		Auth:     NewAuth(renderer, engine),
		Admin:    NewAdmin(engine, 8<<20),
		engine:   engine,
		renderer: renderer,
		backend:  backend,
		pages:    pages,
		mr:       mr,
	}

	r := chi.NewRouter()
	r.Use(middleware.LoadSession(sessions))
	r.Get("/", env.Gallery.Index)
	r.Get("/admin/login", env.Auth.LoginPage)
	r.Post("/admin/login", env.Auth.LoginSubmit)
	r.Post("/admin/logout", env.Auth.Logout)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Post("/admin/media/{key}", env.Admin.UpdateMedia)
		r.Post("/admin/assets", env.Admin.AddAsset)
		r.Post("/admin/assets/batch", env.Admin.BatchAdd)
		r.Delete("/admin/assets/{id}", env.Admin.DeleteAsset)
		r.Get("/admin/export", env.Admin.Export)
		r.Post("/admin/reset", env.Admin.Reset)
	})
	env.router = r

	return env
}

// do sends req through the router with the given cookies.
func (env *testEnv) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// login elevates a fresh session and returns its cookie.
func (env *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()

	rec := env.do(formRequest(http.MethodPost, "/admin/login", url.Values{"password": {testPassword}}))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login: got status %d, want 303", rec.Code)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// multipartFile is one file part of a multipart request.
type multipartFile struct {
	field string
	name  string
	data  []byte
}

func multipartRequest(t *testing.T, target string, fields map[string]string, files ...multipartFile) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.name)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		part.Write(f.data)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func pngBytes(t *testing.T, side int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	img.Set(0, 0, color.RGBA{R: 9, G: 8, B: 7, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func decodeResult(t *testing.T, body io.Reader) Result {
	t.Helper()
	var res Result
	if err := json.NewDecoder(body).Decode(&res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	return res
}
