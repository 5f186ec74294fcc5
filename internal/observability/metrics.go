package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "medialane_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ContentCreated counts created content by kind (article, video, ads, story, playlist).
	ContentCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "medialane_content_created_total",
		Help: "Total number of content items created",
	}, []string{"kind"})

	// Reactions counts engagement events by kind (like, bookmark, share, rate, comment).
	Reactions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "medialane_reactions_total",
		Help: "Total number of engagement events",
	}, []string{"kind"})
)

const startedAtKey = "medialane:query_started_at"

// RegisterGormMetrics installs GORM callbacks that observe every query's
// latency in DatabaseQueryLatency.
func RegisterGormMetrics(db *gorm.DB) error {
	type hook struct {
		operation string
		before    func(string, func(*gorm.DB)) error
		after     func(string, func(*gorm.DB)) error
	}

	cb := db.Callback()
	hooks := []hook{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
	}

	for _, h := range hooks {
		operation := h.operation
		if err := h.before("metrics:before_"+operation, func(tx *gorm.DB) {
			tx.InstanceSet(startedAtKey, time.Now())
		}); err != nil {
			return err
		}
		if err := h.after("metrics:after_"+operation, func(tx *gorm.DB) {
			started, ok := tx.InstanceGet(startedAtKey)
			if !ok {
				return
			}
			table := tx.Statement.Table
			if table == "" {
				table = "unknown"
			}
			DatabaseQueryLatency.WithLabelValues(operation, table).
				Observe(time.Since(started.(time.Time)).Seconds())
		}); err != nil {
			return err
		}
	}
	return nil
}
