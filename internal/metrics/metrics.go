// Package metrics содержит Prometheus-метрики сервиса синхронизации.
// Все методы допускают nil-получатель, чтобы компоненты работали без метрик.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	namespace = "deltasync"
)

// Результаты операций для меток
const (
	ResultOK       = "ok"
	ResultFailed   = "failed"
	ResultFallback = "fallback"
	ResultInvalid  = "invalid"
)

// Metrics набор коллекторов, зарегистрированных в одном реестре.
type Metrics struct {
	syncRequests        *prometheus.CounterVec
	syncDuration        *prometheus.HistogramVec
	deltasEmitted       prometheus.Counter
	deltaTruncations    prometheus.Counter
	queueDepth          prometheus.Gauge
	queueOperations     *prometheus.CounterVec
	qualityScore        prometheus.Histogram
	clientsInFallback   prometheus.Gauge
	fallbackTransitions *prometheus.CounterVec
	alerts              *prometheus.CounterVec
	eventsDropped       prometheus.Counter
	bandwidthReduction  prometheus.Histogram
	broadcastDeltas     *prometheus.CounterVec
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
	wsConnections       prometheus.Gauge
	wsMessages          *prometheus.CounterVec
}

// New registers every collector in reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		syncRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sync",
				Name:      "requests_total",
				Help:      "Total number of sync requests by operation and result",
			},
			[]string{"operation", "result"},
		),
		syncDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "sync",
				Name:      "duration_seconds",
				Help:      "Duration of sync operations in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"operation"},
		),
		deltasEmitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "deltas_emitted_total",
			Help:      "Total number of state deltas returned to clients",
		}),
		deltaTruncations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "delta_truncations_total",
			Help:      "Total number of delta lists truncated to the size limit",
		}),
		queueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "depth",
			Help:      "Number of operations waiting in the batch queue",
		}),
		queueOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "queue",
				Name:      "operations_total",
				Help:      "Total number of queued operations by result",
			},
			[]string{"result"},
		),
		qualityScore: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "quality",
			Name:      "score",
			Help:      "Distribution of connection quality scores",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		clientsInFallback: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "fallback",
			Name:      "clients",
			Help:      "Number of clients using polling fallback",
		}),
		fallbackTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "fallback",
				Name:      "transitions_total",
				Help:      "Total number of fallback activations and deactivations",
			},
			[]string{"direction"},
		),
		alerts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "quality",
				Name:      "alerts_total",
				Help:      "Total number of quality alerts by type and severity",
			},
			[]string{"type", "severity"},
		),
		eventsDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "quality",
			Name:      "events_dropped_total",
			Help:      "Total number of events dropped because a subscriber was full",
		}),
		bandwidthReduction: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "bandwidth",
			Name:      "reduction_percent",
			Help:      "Bandwidth reduction achieved by delta sync",
			Buckets:   []float64{0, 25, 50, 75, 80, 85, 87, 90, 95, 99, 100},
		}),
		broadcastDeltas: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "broadcast",
				Name:      "deltas_total",
				Help:      "Total number of broadcast deltas by result",
			},
			[]string{"result"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		wsConnections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ws",
			Name:      "connections",
			Help:      "Number of open WebSocket connections",
		}),
		wsMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ws",
				Name:      "messages_total",
				Help:      "Total number of WebSocket delta messages by result",
			},
			[]string{"result"},
		),
	}
}

// ObserveSync records one sync operation
func (m *Metrics) ObserveSync(operation, result string, seconds float64) {
	if m == nil {
		return
	}
	m.syncRequests.WithLabelValues(operation, result).Inc()
	m.syncDuration.WithLabelValues(operation).Observe(seconds)
}

// AddDeltas counts emitted deltas
func (m *Metrics) AddDeltas(n int) {
	if m == nil {
		return
	}
	m.deltasEmitted.Add(float64(n))
}

// IncTruncations counts truncated delta lists
func (m *Metrics) IncTruncations() {
	if m == nil {
		return
	}
	m.deltaTruncations.Inc()
}

// SetQueueDepth sets the current queue depth
func (m *Metrics) SetQueueDepth(depth int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(depth))
}

// IncQueueOperation counts a finished queued operation
func (m *Metrics) IncQueueOperation(result string) {
	if m == nil {
		return
	}
	m.queueOperations.WithLabelValues(result).Inc()
}

// ObserveQualityScore records a computed quality score
func (m *Metrics) ObserveQualityScore(score float64) {
	if m == nil {
		return
	}
	m.qualityScore.Observe(score)
}

// SetClientsInFallback sets the number of degraded clients
func (m *Metrics) SetClientsInFallback(n int) {
	if m == nil {
		return
	}
	m.clientsInFallback.Set(float64(n))
}

// IncFallbackTransition counts activation ("activate") or deactivation ("deactivate")
func (m *Metrics) IncFallbackTransition(direction string) {
	if m == nil {
		return
	}
	m.fallbackTransitions.WithLabelValues(direction).Inc()
}

// IncAlert counts a raised alert
func (m *Metrics) IncAlert(alertType, severity string) {
	if m == nil {
		return
	}
	m.alerts.WithLabelValues(alertType, severity).Inc()
}

// IncEventsDropped counts events a subscriber could not accept
func (m *Metrics) IncEventsDropped() {
	if m == nil {
		return
	}
	m.eventsDropped.Inc()
}

// ObserveBandwidthReduction records the reduction percent of one sync
func (m *Metrics) ObserveBandwidthReduction(percent float64) {
	if m == nil {
		return
	}
	m.bandwidthReduction.Observe(percent)
}

// IncBroadcast counts a broadcast delta by result
func (m *Metrics) IncBroadcast(result string) {
	if m == nil {
		return
	}
	m.broadcastDeltas.WithLabelValues(result).Inc()
}

// ObserveHTTP records one HTTP request
func (m *Metrics) ObserveHTTP(method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, status).Inc()
	m.httpDuration.WithLabelValues(method).Observe(seconds)
}

// SetWSConnections sets the number of open WebSocket connections
func (m *Metrics) SetWSConnections(n int) {
	if m == nil {
		return
	}
	m.wsConnections.Set(float64(n))
}

// IncWSMessage counts a delta message: sent, pending or dropped
func (m *Metrics) IncWSMessage(result string) {
	if m == nil {
		return
	}
	m.wsMessages.WithLabelValues(result).Inc()
}
