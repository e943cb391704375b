package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"db3dgallery/internal/admin"
	"db3dgallery/internal/media"
	"db3dgallery/internal/models"
)

// Result is the JSON body of every admin mutation.
type Result struct {
	OK       bool            `json:"ok"`
	Warnings []admin.Warning `json:"warnings,omitempty"`
	Added    []string        `json:"added,omitempty"`
	Reload   bool            `json:"reload"`
	Error    string          `json:"error,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeOK reports a successful mutation. The page always reloads so the
// admin sees the merged view.
func writeOK(w http.ResponseWriter, warnings []admin.Warning) {
	writeJSON(w, http.StatusOK, Result{OK: true, Warnings: warnings, Reload: true})
}

// writeError maps an engine error to a status code and user-facing message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := http.StatusInternalServerError, "操作失敗，請稍後再試。"
	switch {
	case errors.Is(err, models.ErrInvalidCategory):
		status, msg = http.StatusBadRequest, "分類無效。"
	case errors.Is(err, admin.ErrNotConfirmed):
		status, msg = http.StatusBadRequest, "需要確認。"
	case errors.Is(err, admin.ErrAssetNotFound):
		status, msg = http.StatusNotFound, "找不到項目。"
	case errors.Is(err, media.ErrUnsupportedType):
		status, msg = http.StatusUnsupportedMediaType, "不支援的檔案格式。"
	case errors.Is(err, media.ErrDecode), errors.Is(err, media.ErrEmpty):
		status, msg = http.StatusUnprocessableEntity, "讀取圖片失敗"
	}

	if status == http.StatusInternalServerError {
		slog.Error("admin request failed", "path", r.URL.Path, "error", err)
	} else {
		slog.Warn("admin request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, Result{Error: msg})
}
