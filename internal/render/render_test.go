package render

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"db3dgallery/internal/admin"
	"db3dgallery/internal/middleware"
	"db3dgallery/internal/models"
	"db3dgallery/internal/session"
)

// testView returns a small merged view with one data URI asset.
func testView() *admin.View {
	return &admin.View{
		Assets: []models.Asset{
			{ID: "brick-db3d-01", Title: "Brick-DB3D_01", MainCategory: models.MainMaterials, SubCategory: models.SubExterior, ImageURL: "/images/Brick-DB3D_01.png", Description: "D5 Render **Exterior** Material"},
			{ID: "custom-1", Title: "New Item", MainCategory: models.MainMaterials, SubCategory: models.SubExterior, ImageURL: "data:image/png;base64,AAAA"},
			{ID: "sofa-1", Title: "Sofa One", MainCategory: models.MainModels, SubCategory: models.SubSofa, ImageURL: "/images/sofa.png"},
		},
		Logo:          "https://placehold.co/100x100/3e2723/ffffff?text=DB",
		OverrideCount: 2,
	}
}

// requestAs builds a request whose context carries the admin flag.
func requestAs(isAdmin bool) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if isAdmin {
		ctx := context.WithValue(req.Context(), middleware.SessionKey, &session.Data{IsAdmin: true})
		req = req.WithContext(ctx)
	}
	return req
}

func TestNew(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	for _, name := range []string{"gallery", "login"} {
		if _, ok := rn.templates[name]; !ok {
			t.Errorf("expected template %q to be parsed", name)
		}
	}
	if _, ok := rn.templates["base"]; ok {
		t.Error("base.html should not be registered as a separate template")
	}
}

func TestGalleryPublic(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	w := httptest.NewRecorder()
	data := NewGalleryData(testView(), models.MainMaterials, models.SubExterior)
	rn.Page(w, requestAs(false), "gallery", &PageData{Title: "Gallery", Data: data})

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type: %q", ct)
	}

	body := w.Body.String()
	for _, want := range []string{
		"Brick-DB3D_01",
		`src="data:image/png;base64,AAAA"`,
		"<strong>Exterior</strong>",
		`href="/admin/login"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body should contain %q", want)
		}
	}
	for _, unwanted := range []string{"Sofa One", "data-upload", "admin.js", "data-action=\"delete\""} {
		if strings.Contains(body, unwanted) {
			t.Errorf("public page should not contain %q", unwanted)
		}
	}
}

func TestGalleryAdmin(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	w := httptest.NewRecorder()
	data := NewGalleryData(testView(), models.MainMaterials, models.SubExterior)
	rn.Page(w, requestAs(true), "gallery", &PageData{Title: "Gallery", Data: data})

	body := w.Body.String()
	for _, want := range []string{
		`data-upload="/admin/media/site_logo"`,
		`data-upload="/admin/media/hero_video"`,
		`data-upload="/admin/media/custom-1"`,
		`data-id="brick-db3d-01"`,
		`data-batch="/admin/assets/batch"`,
		`href="/admin/export"`,
		`data-action="reset"`,
		`data-action="logout"`,
		"2 個修改",
		"/static/js/admin.js",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("admin page should contain %q", want)
		}
	}
}

func TestLoginPage(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	w := httptest.NewRecorder()
	rn.PageStatus(w, requestAs(false), http.StatusUnauthorized, "login", &PageData{
		Title:   "Admin Login",
		Flashes: []Flash{{Type: "error", Message: "密碼錯誤"}},
	})

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "密碼錯誤") {
		t.Error("login page should show the flash message")
	}
	if !strings.Contains(body, `name="password" value=""`) {
		t.Error("password input must be rendered empty")
	}
	if strings.Contains(body, "site-footer") {
		t.Error("login is standalone and must not use the base layout")
	}
}

func TestMissingTemplate(t *testing.T) {
	rn, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	w := httptest.NewRecorder()
	rn.Page(w, requestAs(false), "nonexistent", &PageData{})
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", w.Code)
	}

	if _, err := rn.Bytes("nonexistent", &PageData{}); err == nil {
		t.Error("Bytes should fail for unknown template")
	}
}

func TestNewGalleryDataFallbacks(t *testing.T) {
	v := testView()

	tests := []struct {
		name     string
		main     models.MainCategory
		sub      models.SubCategory
		wantMain models.MainCategory
		wantSub  models.SubCategory
		wantN    int
	}{
		{"defaults", "", "", models.MainMaterials, models.SubExterior, 2},
		{"models", models.MainModels, "", models.MainModels, models.SubSofa, 1},
		{"sub from other main", models.MainModels, models.SubStone, models.MainModels, models.SubSofa, 1},
		{"unknown main", "FOOD", models.SubSofa, models.MainMaterials, models.SubExterior, 2},
		{"empty sub", models.MainMaterials, models.SubTiles, models.MainMaterials, models.SubTiles, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewGalleryData(v, tt.main, tt.sub)
			if d.Main != tt.wantMain || d.Sub != tt.wantSub {
				t.Errorf("got %s/%s, want %s/%s", d.Main, d.Sub, tt.wantMain, tt.wantSub)
			}
			if len(d.Assets) != tt.wantN {
				t.Errorf("assets: got %d, want %d", len(d.Assets), tt.wantN)
			}
		})
	}
}

func TestMediaURL(t *testing.T) {
	tests := []struct {
		in   string
		want template.URL
	}{
		{"data:image/png;base64,AAAA", "data:image/png;base64,AAAA"},
		{"data:video/mp4;base64,AAAA", "data:video/mp4;base64,AAAA"},
		{"https://placehold.co/1080x1080", "https://placehold.co/1080x1080"},
		{"/images/Brick-DB3D_01.png", "/images/Brick-DB3D_01.png"},
		{"data:text/html;base64,PHNjcmlwdD4=", "#"},
		{"javascript:alert(1)", "#"},
		{"//evil.example/x.png", "#"},
		{"", "#"},
	}
	for _, tt := range tests {
		if got := MediaURL(tt.in); got != tt.want {
			t.Errorf("MediaURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
