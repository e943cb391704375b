// Package metrics exposes Prometheus counters for admin activity and
// gauges describing the current gallery state.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "db3d"
)

var (
	// LoginAttemptsTotal counts admin logins by result (success, failure).
	LoginAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Admin login attempts by result",
		},
		[]string{"result"},
	)

	// PersistenceWarningsTotal counts edits kept in memory only, by store.
	PersistenceWarningsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_warnings_total",
			Help:      "Edits applied in memory but not written to durable storage",
		},
		[]string{"store"},
	)

	// MediaUpdatesTotal counts media replacements by class.
	MediaUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "media_updates_total",
			Help:      "Media overrides written, by media class",
		},
		[]string{"class"},
	)

	// AssetsAddedTotal counts new catalog entries by mode (single, batch).
	AssetsAddedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assets_added_total",
			Help:      "Assets appended to the catalog",
		},
		[]string{"mode"},
	)

	// BatchSkippedFilesTotal counts oversized files dropped from batch uploads.
	BatchSkippedFilesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_skipped_files_total",
			Help:      "Files skipped during batch uploads for exceeding the size threshold",
		},
	)

	// AssetsDeletedTotal counts catalog deletions.
	AssetsDeletedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assets_deleted_total",
			Help:      "Assets removed from the catalog",
		},
	)

	// ResetsTotal counts full resets to defaults.
	ResetsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resets_total",
			Help:      "Resets of the gallery to its defaults",
		},
	)

	// CatalogAssets tracks the number of assets in the catalog.
	CatalogAssets = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_assets",
			Help:      "Number of assets currently in the catalog",
		},
	)

	// OverridesActive tracks the number of media overrides.
	OverridesActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "overrides_active",
			Help:      "Number of media overrides currently in effect",
		},
	)
)

func init() {
	prometheus.MustRegister(LoginAttemptsTotal)
	prometheus.MustRegister(PersistenceWarningsTotal)
	prometheus.MustRegister(MediaUpdatesTotal)
	prometheus.MustRegister(AssetsAddedTotal)
	prometheus.MustRegister(BatchSkippedFilesTotal)
	prometheus.MustRegister(AssetsDeletedTotal)
	prometheus.MustRegister(ResetsTotal)
	prometheus.MustRegister(CatalogAssets)
	prometheus.MustRegister(OverridesActive)
}

// Snapshot is the gallery state reported by the gauges.
type Snapshot struct {
	Assets    int
	Overrides int
}

// Source reports the current gallery state.
type Source interface {
	Snapshot(ctx context.Context) Snapshot
}

// Collector refreshes gauges from a Source.
type Collector struct {
	source Source
}

// NewCollector creates a new metrics collector.
func NewCollector(source Source) *Collector {
	return &Collector{source: source}
}

// UpdateMetrics refreshes all gauges. It is called on each /metrics scrape.
func (c *Collector) UpdateMetrics() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s := c.source.Snapshot(ctx)
	CatalogAssets.Set(float64(s.Assets))
	OverridesActive.Set(float64(s.Overrides))
}
