// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"db3dgallery/internal/admin"
	"db3dgallery/internal/media"
	"db3dgallery/internal/models"
)

const (
	// multipartMemory is how much of a multipart body is kept in memory
	// before spilling to temporary files.
	multipartMemory = 32 << 20

	// DefaultMaxUpload bounds a request body when no limit is configured.
	DefaultMaxUpload = 256 << 20
)

// Admin groups the handlers behind admin mode. Every mutation answers with
// a Result; warnings never turn a success into an error.
type Admin struct {
	engine    *admin.Engine
	maxUpload int64
	now       func() time.Time
}

// NewAdmin creates a new Admin handler group. maxUpload caps the request
// body of upload endpoints.
func NewAdmin(engine *admin.Engine, maxUpload int64) *Admin {
	if maxUpload <= 0 {
		maxUpload = DefaultMaxUpload
	}
	return &Admin{
		engine:    engine,
		maxUpload: maxUpload,
		now:       time.Now,
	}
}

// UpdateMedia replaces the image of an asset, the site logo or the hero
// video. The file arrives as the "file" multipart field.
func (a *Admin) UpdateMedia(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	if !a.parseUpload(w, r) {
		return
	}
	_, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Result{Error: "未選擇檔案。"})
		return
	}

	warnings, err := a.engine.UpdateMedia(r.Context(), key, media.FromFileHeader(header))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, warnings)
}

// AddAsset appends a placeholder asset to the category named by the "main"
// and "sub" form fields.
func (a *Admin) AddAsset(w http.ResponseWriter, r *http.Request) {
	main, sub := categoryFromForm(r)

	asset, warnings, err := a.engine.AddAsset(r.Context(), main, sub)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Result{
		OK:       true,
		Warnings: warnings,
		Added:    []string{asset.ID},
		Reload:   true,
	})
}

// BatchAdd creates one asset per file of the "files" multipart field.
func (a *Admin) BatchAdd(w http.ResponseWriter, r *http.Request) {
	if !a.parseUpload(w, r) {
		return
	}
	main, sub := categoryFromForm(r)

	var headers []*multipart.FileHeader
	if r.MultipartForm != nil {
		headers = r.MultipartForm.File["files"]
	}
	uploads := make([]media.Upload, len(headers))
	for i, fh := range headers {
		uploads[i] = media.FromFileHeader(fh)
	}

	added, warnings, err := a.engine.BatchAddAssets(r.Context(), main, sub, uploads)
	if err != nil {
		writeError(w, r, err)
		return
	}

	ids := make([]string, len(added))
	for i, asset := range added {
		ids[i] = asset.ID
	}
	writeJSON(w, http.StatusOK, Result{
		OK:       true,
		Warnings: warnings,
		Added:    ids,
		Reload:   len(added) > 0,
	})
}

// DeleteAsset removes an asset. The request must carry confirm=true.
func (a *Admin) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	warnings, err := a.engine.DeleteAsset(r.Context(), id, confirmed(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, warnings)
}

// Export downloads the current catalog and overrides as a JSON file.
func (a *Admin) Export(w http.ResponseWriter, r *http.Request) {
	now := a.now()
	doc := a.engine.Export(now)

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+models.ExportFilename(now)+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(body)

	slog.Info("configuration exported", "assets", len(doc.Assets), "overrides", len(doc.Overrides))
}

// Reset discards every edit. The request must carry confirm=true.
func (a *Admin) Reset(w http.ResponseWriter, r *http.Request) {
	if err := a.engine.Reset(r.Context(), confirmed(r)); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, nil)
}

// parseUpload bounds and parses a multipart body. On failure it writes the
// response and returns false.
func (a *Admin) parseUpload(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, a.maxUpload)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		slog.Warn("upload rejected", "path", r.URL.Path, "error", err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, Result{
				Error: "檔案過大，上限為 " + models.HumanSize(a.maxUpload) + "。",
			})
			return false
		}
		writeJSON(w, http.StatusBadRequest, Result{Error: "上傳格式錯誤。"})
		return false
	}
	return true
}

func categoryFromForm(r *http.Request) (models.MainCategory, models.SubCategory) {
	return models.MainCategory(r.FormValue("main")), models.SubCategory(r.FormValue("sub"))
}

func confirmed(r *http.Request) bool {
	ok, _ := strconv.ParseBool(r.FormValue("confirm"))
	return ok
}
