package metrics

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

var (
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	echantillonsCreesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "echantillons_crees_total",
			Help: "Total number of echantillons registered at reception",
		},
	)

	stageTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "echantillon_stage_transitions_total",
			Help: "Total number of echantillon stage transitions",
		},
		[]string{"stage"},
	)

	essaiTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "essai_transitions_total",
			Help: "Total number of essai lifecycle operations",
		},
		[]string{"action"}, // start, complete, accept, reject
	)

	approvalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "approvals_total",
			Help: "Total number of approval chain operations",
		},
		[]string{"action"},
	)

	echantillonsByStage = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "echantillons_by_stage",
			Help: "Number of echantillons by pipeline stage",
		},
		[]string{"stage"},
	)

	databaseConnectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_active",
			Help: "Number of active database connections",
		},
	)

	databaseConnectionsIdle = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	databaseConnectionsMax = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_max",
			Help: "Maximum number of database connections",
		},
	)
)

var once sync.Once

func init() {
	prometheus.MustRegister(apiRequestsTotal)
	prometheus.MustRegister(apiRequestDuration)
	prometheus.MustRegister(echantillonsCreesTotal)
	prometheus.MustRegister(stageTransitionsTotal)
	prometheus.MustRegister(essaiTransitionsTotal)
	prometheus.MustRegister(approvalsTotal)
	prometheus.MustRegister(echantillonsByStage)
	prometheus.MustRegister(databaseConnectionsActive)
	prometheus.MustRegister(databaseConnectionsIdle)
	prometheus.MustRegister(databaseConnectionsMax)

	once.Do(func() {
		// runtime collectors may already be registered by another package
		_ = prometheus.Register(prometheus.NewGoCollector())
		_ = prometheus.Register(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	})
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAPIRequest records one HTTP request.
func RecordAPIRequest(method, path string, status int, duration float64) {
	statusText := http.StatusText(status)
	if statusText == "" {
		statusText = fmt.Sprintf("%d", status)
	}
	apiRequestsTotal.WithLabelValues(method, path, statusText).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordEchantillonCree records an echantillon registration.
func RecordEchantillonCree() {
	echantillonsCreesTotal.Inc()
}

// RecordStageTransition records an echantillon entering a stage.
func RecordStageTransition(stage string) {
	stageTransitionsTotal.WithLabelValues(stage).Inc()
}

// RecordEssaiTransition records an essai lifecycle operation.
func RecordEssaiTransition(action string) {
	essaiTransitionsTotal.WithLabelValues(action).Inc()
}

// RecordApproval records an approval chain verdict.
func RecordApproval(action string) {
	approvalsTotal.WithLabelValues(action).Inc()
}

// UpdateEchantillonsByStage refreshes the per-stage gauge.
func UpdateEchantillonsByStage(stage string, count float64) {
	echantillonsByStage.WithLabelValues(stage).Set(count)
}

// UpdateDatabaseConnections refreshes the connection pool gauges.
func UpdateDatabaseConnections(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	stats := sqlDB.Stats()
	databaseConnectionsActive.Set(float64(stats.OpenConnections - stats.Idle))
	databaseConnectionsIdle.Set(float64(stats.Idle))
	databaseConnectionsMax.Set(float64(stats.MaxOpenConnections))

	return nil
}
