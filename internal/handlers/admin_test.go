package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"db3dgallery/internal/admin"
	"db3dgallery/internal/models"
)

func TestUpdateMediaAsset(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	req := multipartRequest(t, "/admin/media/brick-db3d-01", nil,
		multipartFile{field: "file", name: "new.jpg", data: pngBytes(t, 4)})
	rec := env.do(req, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	res := decodeResult(t, rec.Body)
	if !res.OK || !res.Reload || len(res.Warnings) != 0 {
		t.Errorf("result: got %+v", res)
	}

	v := env.engine.View()
	if !strings.HasPrefix(v.Assets[0].ImageURL, "data:image/png;base64,") {
		t.Errorf("asset image: got %.40q, want sniffed png data URI", v.Assets[0].ImageURL)
	}
	if v.OverrideCount != 1 {
		t.Errorf("override count: got %d, want 1", v.OverrideCount)
	}
}

func TestUpdateMediaSiteLogo(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	rec := env.do(multipartRequest(t, "/admin/media/"+models.KeySiteLogo, nil,
		multipartFile{field: "file", name: "logo.png", data: pngBytes(t, 2)}), cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if !strings.HasPrefix(env.engine.View().Logo, "data:image/png;base64,") {
		t.Error("logo should be replaced by the uploaded image")
	}
}

func TestUpdateMediaErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		file   *multipartFile
		want   int
	}{
		{"unknown asset", "/admin/media/missing", &multipartFile{"file", "a.png", nil}, http.StatusNotFound},
		{"no file", "/admin/media/brick-db3d-01", nil, http.StatusBadRequest},
		{"not an image", "/admin/media/brick-db3d-01", &multipartFile{"file", "a.txt", []byte("plain text")}, http.StatusUnsupportedMediaType},
		{"image for video slot", "/admin/media/" + models.KeyHeroVideo, &multipartFile{"file", "a.png", nil}, http.StatusUnsupportedMediaType},
		{"corrupt png", "/admin/media/brick-db3d-01", &multipartFile{"file", "a.png", append([]byte("\x89PNG\r\n\x1a\n"), 0, 0, 0)}, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			cookie := env.login(t)

			var files []multipartFile
			if tt.file != nil {
				f := *tt.file
				if f.data == nil {
					f.data = pngBytes(t, 2)
				}
				files = append(files, f)
			}
			rec := env.do(multipartRequest(t, tt.target, nil, files...), cookie)
			if rec.Code != tt.want {
				t.Fatalf("status: got %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
			if res := decodeResult(t, rec.Body); res.OK || res.Error == "" {
				t.Errorf("expected error result, got %+v", res)
			}
			if env.engine.View().OverrideCount != 0 {
				t.Error("failed upload must not create an override")
			}
		})
	}
}

func TestUpdateMediaBodyTooLarge(t *testing.T) {
	env := newTestEnv(t)
	h := NewAdmin(env.engine, 1024)

	req := multipartRequest(t, "/admin/media/brick-db3d-01", nil,
		multipartFile{field: "file", name: "big.png", data: bytes.Repeat([]byte{0}, 4096)})
	rec := httptest.NewRecorder()
	if h.parseUpload(rec, req) {
		t.Fatal("parseUpload accepted an oversized body")
	}

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status: got %d, want 413", rec.Code)
	}
}

func TestUpdateMediaStorageFullWarns(t *testing.T) {
	env := newTestEnv(t)
	env.backend.SetQuota(64)
	cookie := env.login(t)

	rec := env.do(multipartRequest(t, "/admin/media/brick-db3d-01", nil,
		multipartFile{field: "file", name: "a.png", data: pngBytes(t, 8)}), cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	res := decodeResult(t, rec.Body)
	if !res.OK || len(res.Warnings) != 1 || res.Warnings[0].Code != admin.WarnStorageFull {
		t.Errorf("expected storage_full warning, got %+v", res)
	}
	if env.engine.View().OverrideCount != 1 {
		t.Error("override should still apply for this session")
	}
}

func TestAddAsset(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	rec := env.do(formRequest(http.MethodPost, "/admin/assets", url.Values{
		"main": {string(models.MainModels)},
		"sub":  {string(models.SubSofa)},
	}), cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	res := decodeResult(t, rec.Body)
	if len(res.Added) != 1 || !strings.HasPrefix(res.Added[0], "custom-") {
		t.Fatalf("added: got %v", res.Added)
	}

	v := env.engine.View()
	sofas := v.InCategory(models.MainModels, models.SubSofa)
	if len(sofas) != 1 || sofas[0].ID != res.Added[0] || sofas[0].ImageURL != admin.Placeholder {
		t.Errorf("sofa tab: got %+v", sofas)
	}
	if !v.HasStructureChanges {
		t.Error("expected structure changes")
	}
}

func TestAddAssetInvalidCategory(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	rec := env.do(formRequest(http.MethodPost, "/admin/assets", url.Values{
		"main": {string(models.MainModels)},
		"sub":  {string(models.SubExterior)},
	}), cookie)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestBatchAdd(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	fields := map[string]string{"main": string(models.MainMaterials), "sub": string(models.SubStone)}
	rec := env.do(multipartRequest(t, "/admin/assets/batch", fields,
		multipartFile{field: "files", name: "a.png", data: pngBytes(t, 2)},
		multipartFile{field: "files", name: "b.png", data: pngBytes(t, 3)},
	), cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	res := decodeResult(t, rec.Body)
	if len(res.Added) != 2 || !res.Reload {
		t.Fatalf("result: got %+v", res)
	}

	stones := env.engine.View().InCategory(models.MainMaterials, models.SubStone)
	if len(stones) != 2 {
		t.Fatalf("stone tab: got %d assets, want 2", len(stones))
	}
	for i, a := range stones {
		if a.ID != res.Added[i] || a.Title != "New Item" || a.Description != "Batch Uploaded" {
			t.Errorf("asset %d: got %+v", i, a)
		}
	}
}

func TestBatchAddNoFiles(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	fields := map[string]string{"main": string(models.MainMaterials), "sub": string(models.SubStone)}
	rec := env.do(multipartRequest(t, "/admin/assets/batch", fields), cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	res := decodeResult(t, rec.Body)
	if !res.OK || res.Reload || len(res.Added) != 0 {
		t.Errorf("result: got %+v", res)
	}
}

func TestBatchAddDecodeFailureAddsNothing(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	fields := map[string]string{"main": string(models.MainMaterials), "sub": string(models.SubStone)}
	rec := env.do(multipartRequest(t, "/admin/assets/batch", fields,
		multipartFile{field: "files", name: "a.png", data: pngBytes(t, 2)},
		multipartFile{field: "files", name: "b.png", data: []byte("\x89PNG\r\n\x1a\nbroken")},
	), cookie)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d, want 422", rec.Code)
	}
	if res := decodeResult(t, rec.Body); res.Error != "讀取圖片失敗" {
		t.Errorf("error: got %q", res.Error)
	}
	if n := len(env.engine.View().Assets); n != 62 {
		t.Errorf("assets: got %d, want 62", n)
	}
}

func TestDeleteAsset(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	rec := env.do(httptest.NewRequest(http.MethodDelete, "/admin/assets/brick-db3d-05", nil), cookie)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unconfirmed delete: got %d, want 400", rec.Code)
	}

	rec = env.do(httptest.NewRequest(http.MethodDelete, "/admin/assets/brick-db3d-05?confirm=true", nil), cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("confirmed delete: got %d", rec.Code)
	}
	for _, a := range env.engine.View().Assets {
		if a.ID == "brick-db3d-05" {
			t.Fatal("asset still present after delete")
		}
	}

	rec = env.do(httptest.NewRequest(http.MethodDelete, "/admin/assets/brick-db3d-05?confirm=true", nil), cookie)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete: got %d, want 404", rec.Code)
	}
}

func TestExport(t *testing.T) {
	env := newTestEnv(t)
	env.Admin.now = func() time.Time { return time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC) }
	cookie := env.login(t)

	env.do(multipartRequest(t, "/admin/media/"+models.KeySiteLogo, nil,
		multipartFile{field: "file", name: "logo.png", data: pngBytes(t, 2)}), cookie)

	rec := httptest.NewRecorder()
	env.Admin.Export(rec, httptest.NewRequest(http.MethodGet, "/admin/export", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	want := `attachment; filename="db3d-config-2026-03-04.json"`
	if got := rec.Header().Get("Content-Disposition"); got != want {
		t.Errorf("Content-Disposition: got %q, want %q", got, want)
	}
	if !strings.Contains(rec.Body.String(), "\n  \"assets\": [") {
		t.Error("export should be indented by two spaces")
	}

	var doc models.ExportDocument
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if len(doc.Assets) != 62 || doc.Overrides[models.KeySiteLogo] == "" {
		t.Errorf("export: %d assets, overrides %v", len(doc.Assets), len(doc.Overrides))
	}
	if doc.Note != models.ExportNote {
		t.Errorf("note: got %q", doc.Note)
	}
}

func TestReset(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)

	env.do(formRequest(http.MethodPost, "/admin/assets", url.Values{
		"main": {string(models.MainModels)},
		"sub":  {string(models.SubBed)},
	}), cookie)

	rec := env.do(formRequest(http.MethodPost, "/admin/reset", nil), cookie)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unconfirmed reset: got %d, want 400", rec.Code)
	}
	if !env.engine.View().HasStructureChanges {
		t.Fatal("unconfirmed reset must not discard edits")
	}

	rec = env.do(formRequest(http.MethodPost, "/admin/reset", url.Values{"confirm": {"true"}}), cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset: got %d", rec.Code)
	}
	v := env.engine.View()
	if v.HasStructureChanges || v.OverrideCount != 0 || len(v.Assets) != 62 {
		t.Errorf("after reset: changes=%v overrides=%d assets=%d", v.HasStructureChanges, v.OverrideCount, len(v.Assets))
	}
}
