package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор prometheus-коллекторов сервиса
type Metrics struct {
	registry *prometheus.Registry

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration      *prometheus.HistogramVec
	DBQueryErrors        *prometheus.CounterVec
	DBOpenConnections    *prometheus.GaugeVec
	DBInUseConnections   *prometheus.GaugeVec
	DBIdleConnections    *prometheus.GaugeVec
	DBWaitCount          *prometheus.GaugeVec
	DBWaitDurationSecond *prometheus.GaugeVec

	// Бизнес-метрики
	BookingsCreated      *prometheus.CounterVec
	BookingStatusChanges *prometheus.CounterVec
	SlotUpdates          *prometheus.CounterVec
	SyncRuns             *prometheus.CounterVec
	CleanupRemoved       *prometheus.CounterVec
	Notifications        *prometheus.CounterVec
}

// New создает коллекторы и регистрирует их в собственном реестре
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: prometheus.NewRegistry(),

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBWaitDurationSecond: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_duration_seconds",
			Help:        "Total time blocked waiting for a new connection",
			ConstLabels: constLabels,
		}, []string{"db"}),

		BookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of created bookings",
			ConstLabels: constLabels,
		}, []string{"service_id"}),

		BookingStatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_status_changes_total",
			Help:        "Total number of booking status transitions",
			ConstLabels: constLabels,
		}, []string{"status"}),

		SlotUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_updates_total",
			Help:        "Total number of slot availability writes",
			ConstLabels: constLabels,
		}, []string{"available"}),

		SyncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_sync_runs_total",
			Help:        "Total number of slot synchronization runs",
			ConstLabels: constLabels,
		}, []string{"kind", "result"}),

		CleanupRemoved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "cleanup_items_total",
			Help:        "Total number of items touched by maintenance sweeps",
			ConstLabels: constLabels,
		}, []string{"sweep"}),

		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_total",
			Help:        "Total number of e-mail notifications",
			ConstLabels: constLabels,
		}, []string{"kind", "result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.DBWaitDurationSecond,
		m.BookingsCreated,
		m.BookingStatusChanges,
		m.SlotUpdates,
		m.SyncRuns,
		m.CleanupRemoved,
		m.Notifications,
	)

	return m
}

// Handler возвращает HTTP handler для эндпоинта /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTP записывает метрики одного HTTP запроса
func (m *Metrics) ObserveHTTP(method, route, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// Ниже методы бизнес-метрик; безопасны для nil-получателя (метрики выключены)

func (m *Metrics) IncBookingCreated(serviceID string) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(serviceID).Inc()
}

func (m *Metrics) IncStatusChange(status string) {
	if m == nil {
		return
	}
	m.BookingStatusChanges.WithLabelValues(status).Inc()
}

func (m *Metrics) IncSlotUpdate(available bool) {
	if m == nil {
		return
	}
	label := "false"
	if available {
		label = "true"
	}
	m.SlotUpdates.WithLabelValues(label).Inc()
}

func (m *Metrics) IncSyncRun(kind string, err error) {
	if m == nil {
		return
	}
	m.SyncRuns.WithLabelValues(kind, resultLabel(err)).Inc()
}

func (m *Metrics) AddCleanup(sweep string, count int) {
	if m == nil {
		return
	}
	m.CleanupRemoved.WithLabelValues(sweep).Add(float64(count))
}

func (m *Metrics) IncNotification(kind string, err error) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(kind, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
