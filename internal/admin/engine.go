// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package admin implements the gallery's admin mode: a two-state machine
// (normal and elevated) gated by a shared secret, plus every mutation an
// elevated visitor can make. Mutations are serialised by a single mutex,
// update memory first and write through to durable storage on a best-effort
// basis. Persistence failures become warnings, never errors.
package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"db3dgallery/internal/catalog"
	"db3dgallery/internal/media"
	"db3dgallery/internal/metrics"
	"db3dgallery/internal/models"
	"db3dgallery/internal/session"
	"db3dgallery/internal/store"
)

const (
	// Placeholder is the image shown for a freshly added asset.
	Placeholder = "https://placehold.co/1080x1080/e7e5e4/292524?text=Click+Upload"

	newTitle         = "New Item"
	newDescription   = "New Description"
	batchDescription = "Batch Uploaded"
)

var (
	// ErrInvalidPassword is returned by Login for a wrong secret. There is
	// no lockout: the caller may retry immediately.
	ErrInvalidPassword = errors.New("invalid admin password")

	// ErrNotConfirmed is returned by destructive operations called without
	// confirmation.
	ErrNotConfirmed = errors.New("confirmation required")

	// ErrAssetNotFound is returned for ids that are not in the catalog.
	ErrAssetNotFound = errors.New("asset not found")
)

// Sessions is the session flag backend.
type Sessions interface {
	Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error)
	Get(ctx context.Context, r *http.Request) (*session.Data, error)
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// PageInvalidator drops rendered pages after a mutation.
type PageInvalidator interface {
	InvalidateAll(ctx context.Context)
}

// Config carries the engine's fixed settings.
type Config struct {
	Password string
	Defaults catalog.Defaults

	// BatchLimit bounds concurrent decodes in a batch upload (0 = GOMAXPROCS).
	BatchLimit int
}

// Engine owns the admin state machine and all gallery mutations.
type Engine struct {
	mu sync.Mutex

	// generation is bumped by every mutation before cached pages are
	// dropped.
	generation atomic.Uint64

	sessions   Sessions
	overrides  *store.OverrideStore
	structure  *store.StructureStore
	pages      PageInvalidator
	password   string
	defaults   catalog.Defaults
	batchLimit int

	newID func() string
}

// New creates an Engine. pages may be nil.
func New(cfg Config, sessions Sessions, overrides *store.OverrideStore, structure *store.StructureStore, pages PageInvalidator) *Engine {
	return &Engine{
		sessions:   sessions,
		overrides:  overrides,
		structure:  structure,
		pages:      pages,
		password:   cfg.Password,
		defaults:   cfg.Defaults,
		batchLimit: cfg.BatchLimit,
		newID:      uuid.NewString,
	}
}

// Login elevates the current browser session when password matches the
// configured secret exactly.
func (e *Engine) Login(ctx context.Context, w http.ResponseWriter, password string) error {
	if subtle.ConstantTimeCompare([]byte(password), []byte(e.password)) != 1 {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		slog.Warn("admin login failed")
		return ErrInvalidPassword
	}

	if _, err := e.sessions.Create(ctx, w, &session.Data{IsAdmin: true}); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	slog.Info("admin mode enabled")
	return nil
}

// Logout returns the browser session to normal mode.
func (e *Engine) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if err := e.sessions.Destroy(ctx, w, r); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	slog.Info("admin mode disabled")
	return nil
}

// UpdateMedia replaces the media shown for key, which is an asset id or one
// of the reserved singleton keys. Files above the class threshold are still
// accepted with an oversize warning.
func (e *Engine) UpdateMedia(ctx context.Context, key string, u media.Upload) ([]Warning, error) {
	class := models.ClassifyKey(key)

	var warnings []Warning
	if class.Oversize(u.Size) {
		warnings = append(warnings, oversizeWarning(class, u.Size))
	}

	payload, err := media.Encode(u, class)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !models.IsReservedKey(key) {
		if _, ok := e.structure.Find(key); !ok {
			return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, key)
		}
	}

	if err := e.overrides.Set(ctx, key, payload); err != nil {
		if !errors.Is(err, store.ErrNotPersisted) {
			return nil, err
		}
		metrics.PersistenceWarningsTotal.WithLabelValues("overrides").Inc()
		warnings = append(warnings, storageFullOverride)
	}

	metrics.MediaUpdatesTotal.WithLabelValues(string(class)).Inc()
	slog.Info("media updated", "key", key, "class", class, "size", models.HumanSize(u.Size))
	e.invalidate(ctx)
	return warnings, nil
}

// AddAsset appends a placeholder asset to the given category.
func (e *Engine) AddAsset(ctx context.Context, main models.MainCategory, sub models.SubCategory) (models.Asset, []Warning, error) {
	if err := models.ValidateCategory(main, sub); err != nil {
		return models.Asset{}, nil, err
	}

	a := models.Asset{
		ID:           "custom-" + e.newID(),
		Title:        newTitle,
		MainCategory: main,
		SubCategory:  sub,
		ImageURL:     Placeholder,
		Description:  newDescription,
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var warnings []Warning
	if err := e.structure.Append(ctx, a); err != nil {
		if !errors.Is(err, store.ErrNotPersisted) {
			return models.Asset{}, nil, err
		}
		metrics.PersistenceWarningsTotal.WithLabelValues("structure").Inc()
		warnings = append(warnings, storageFullStructure)
	}

	metrics.AssetsAddedTotal.WithLabelValues("single").Inc()
	slog.Info("asset added", "id", a.ID, "main", main, "sub", sub)
	e.invalidate(ctx)
	return a, warnings, nil
}

// BatchAddAssets decodes every upload and appends one asset per decoded
// file, in upload order, as a single catalog mutation. Oversized files are
// skipped with a warning. If any file fails to decode nothing is added.
func (e *Engine) BatchAddAssets(ctx context.Context, main models.MainCategory, sub models.SubCategory, uploads []media.Upload) ([]models.Asset, []Warning, error) {
	if err := models.ValidateCategory(main, sub); err != nil {
		return nil, nil, err
	}

	res, err := media.DecodeBatch(ctx, uploads, e.batchLimit)
	if err != nil {
		slog.Error("batch decode failed", "files", len(uploads), "error", err)
		return nil, nil, err
	}

	var warnings []Warning
	for _, name := range res.Skipped {
		warnings = append(warnings, skippedWarning(name))
	}
	metrics.BatchSkippedFilesTotal.Add(float64(len(res.Skipped)))

	if len(res.Payloads) == 0 {
		return nil, warnings, nil
	}

	batchID := e.newID()
	added := make([]models.Asset, len(res.Payloads))
	for i, payload := range res.Payloads {
		added[i] = models.Asset{
			ID:           fmt.Sprintf("custom-%s-%d", batchID, i),
			Title:        newTitle,
			MainCategory: main,
			SubCategory:  sub,
			ImageURL:     payload,
			Description:  batchDescription,
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.structure.BatchAppend(ctx, added); err != nil {
		if !errors.Is(err, store.ErrNotPersisted) {
			return nil, warnings, err
		}
		metrics.PersistenceWarningsTotal.WithLabelValues("structure").Inc()
		warnings = append(warnings, batchStorageFull(len(added)))
	}

	metrics.AssetsAddedTotal.WithLabelValues("batch").Add(float64(len(added)))
	slog.Info("batch assets added", "count", len(added), "skipped", len(res.Skipped), "main", main, "sub", sub)
	e.invalidate(ctx)
	return added, warnings, nil
}

// DeleteAsset removes an asset and any override keyed by its id.
func (e *Engine) DeleteAsset(ctx context.Context, id string, confirmed bool) ([]Warning, error) {
	if !confirmed {
		return nil, ErrNotConfirmed
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var warnings []Warning
	removed, err := e.structure.Remove(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrNotPersisted) {
			return nil, err
		}
		metrics.PersistenceWarningsTotal.WithLabelValues("structure").Inc()
		warnings = append(warnings, storageFullStructure)
	}
	if !removed {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}

	pruned := e.overrides.Remove(ctx, id)

	metrics.AssetsDeletedTotal.Inc()
	slog.Info("asset deleted", "id", id, "override_pruned", pruned)
	e.invalidate(ctx)
	return warnings, nil
}

// Export returns the current catalog and overrides as a portable document.
func (e *Engine) Export(now time.Time) *models.ExportDocument {
	e.mu.Lock()
	defer e.mu.Unlock()

	return &models.ExportDocument{
		Assets:      e.structure.Assets(),
		Overrides:   e.overrides.All(),
		GeneratedAt: now.UTC(),
		Note:        models.ExportNote,
	}
}

// Reset discards every edit and restores the compiled-in defaults.
func (e *Engine) Reset(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var errs []error
	if err := e.overrides.Clear(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := e.structure.Reset(ctx); err != nil {
		errs = append(errs, err)
	}

	metrics.ResetsTotal.Inc()
	e.invalidate(ctx)

	if err := errors.Join(errs...); err != nil {
		slog.Error("reset did not clear durable storage", "error", err)
		return fmt.Errorf("reset: %w", err)
	}
	slog.Info("gallery reset to defaults")
	return nil
}

// Generation identifies the current state. It changes on every mutation.
func (e *Engine) Generation() uint64 {
	return e.generation.Load()
}

// invalidate bumps the generation and drops cached pages. Callers hold e.mu.
func (e *Engine) invalidate(ctx context.Context) {
	e.generation.Add(1)
	if e.pages != nil {
		e.pages.InvalidateAll(ctx)
	}
}
