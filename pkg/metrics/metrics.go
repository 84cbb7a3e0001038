package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics prometheus collectors of the service.
// All methods are safe to call on a nil receiver (metrics disabled).
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbQueryErrors   *prometheus.CounterVec
	dbOpenConns     prometheus.Gauge
	dbInUseConns    prometheus.Gauge
	dbIdleConns     prometheus.Gauge
	dbWaitCount     prometheus.Gauge

	bookingsCreated    prometheus.Counter
	capacityRejections *prometheus.CounterVec
	roomAssignments    *prometheus.CounterVec
	invoicesIssued     prometheus.Counter
	eventDeliveries    *prometheus.CounterVec
}

// New registers collectors in the default prometheus registry.
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers collectors in reg.
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),
		dbQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Database query errors",
			ConstLabels: labels,
		}, []string{"operation"}),
		dbOpenConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open database connections",
			ConstLabels: labels,
		}),
		dbInUseConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Database connections in use",
			ConstLabels: labels,
		}),
		dbIdleConns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle database connections",
			ConstLabels: labels,
		}),
		dbWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),
		bookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Bookings created",
			ConstLabels: labels,
		}),
		capacityRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_capacity_rejections_total",
			Help:        "Bookings rejected because the category is sold out",
			ConstLabels: labels,
		}, []string{"category_id"}),
		roomAssignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "room_assignments_total",
			Help:        "Room assignment attempts by mode and outcome",
			ConstLabels: labels,
		}, []string{"mode", "outcome"}),
		invoicesIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "invoices_issued_total",
			Help:        "Invoices issued",
			ConstLabels: labels,
		}),
		eventDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "event_deliveries_total",
			Help:        "Domain event deliveries by sink and outcome",
			ConstLabels: labels,
		}, []string{"sink", "outcome"}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.dbQueryDuration,
		m.dbQueryErrors,
		m.dbOpenConns,
		m.dbInUseConns,
		m.dbIdleConns,
		m.dbWaitCount,
		m.bookingsCreated,
		m.capacityRejections,
		m.roomAssignments,
		m.invoicesIssued,
		m.eventDeliveries,
	)

	return m
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil && err != sql.ErrNoRows {
		m.dbQueryErrors.WithLabelValues(operation).Inc()
	}
}

func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbOpenConns.Set(float64(stats.OpenConnections))
	m.dbInUseConns.Set(float64(stats.InUse))
	m.dbIdleConns.Set(float64(stats.Idle))
	m.dbWaitCount.Set(float64(stats.WaitCount))
}

func (m *Metrics) BookingCreated() {
	if m == nil {
		return
	}
	m.bookingsCreated.Inc()
}

func (m *Metrics) CapacityRejected(categoryID int64) {
	if m == nil {
		return
	}
	m.capacityRejections.WithLabelValues(strconv.FormatInt(categoryID, 10)).Inc()
}

// RoomAssignment mode: manual, auto, bulk. outcome: assigned, noop, failed.
func (m *Metrics) RoomAssignment(mode, outcome string) {
	if m == nil {
		return
	}
	m.roomAssignments.WithLabelValues(mode, outcome).Inc()
}

func (m *Metrics) InvoiceIssued() {
	if m == nil {
		return
	}
	m.invoicesIssued.Inc()
}

// EventDelivered outcome: delivered or failed
func (m *Metrics) EventDelivered(sink string, err error) {
	if m == nil {
		return
	}
	outcome := "delivered"
	if err != nil {
		outcome = "failed"
	}
	m.eventDeliveries.WithLabelValues(sink, outcome).Inc()
}
