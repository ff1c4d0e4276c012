// Package quality оценивает качество соединения клиентов по скользящим окнам
// задержек, потерь и трафика, хранящимся в ключевом хранилище.
package quality

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/EagleChen/mapmutex"

	"github.com/iudanet/deltasync/internal/keystore"
	"github.com/iudanet/deltasync/internal/metrics"
	"github.com/iudanet/deltasync/internal/models"
)

var (
	// ErrInvalidInput returned for an empty client id or an impossible sample
	ErrInvalidInput = errors.New("invalid input")

	// ErrBusy returned when the per-client lock could not be taken in time
	ErrBusy = errors.New("client metrics are busy")
)

// Поля хэшей
const (
	fieldLatencySum    = "latencySumMicros"
	fieldLatencyCount  = "latencyCount"
	fieldConnectedAt   = "connectedAt"
	fieldReconnections = "reconnections"
	fieldLastSeen      = "lastSeen"
	fieldBytesSent     = "bytesSent"
	fieldBytesReceived = "bytesReceived"
	fieldMessages      = "messages"
)

const (
	historyTTL      = 24 * time.Hour
	maxDisconnects  = 20
	maxReasons      = 20
	utilizationSpan = time.Minute
	metricsPrefix   = "quality:metrics:"
	alertsKey       = "quality:alerts"
)

func latencyKey(c string) string     { return "quality:latency:" + c }
func lossKey(c string) string        { return "quality:loss:" + c }
func bandwidthKey(c string) string   { return "quality:bw:" + c }
func totalsKey(c string) string      { return "quality:totals:" + c }
func historyKey(c string) string     { return "quality:hist:" + c }
func connKey(c string) string        { return "quality:conn:" + c }
func disconnectsKey(c string) string { return "quality:disc:" + c }
func thresholdsKey(c string) string  { return "quality:thresholds:" + c }

// MetricsKey returns the keystore key of the client's current metrics
func MetricsKey(clientID string) string { return metricsPrefix + clientID }

type lossEvent struct {
	Lost      int64 `json:"lost"`
	Sent      int64 `json:"sent"`
	Timestamp int64 `json:"ts"`
}

type bandwidthEvent struct {
	Sent      int64 `json:"sent"`
	Received  int64 `json:"received"`
	Timestamp int64 `json:"ts"`
}

// Totals накопленный трафик клиента.
type Totals struct {
	BytesSent     int64 `json:"bytes_sent"`
	BytesReceived int64 `json:"bytes_received"`
	Messages      int64 `json:"messages"`
}

// Diagnosis причины перехода клиента на опрос.
type Diagnosis struct {
	Metrics    *models.ConnectionQualityMetrics
	Thresholds models.AdaptiveThresholds
	Reasons    []string
	// Severe хотя бы одно жесткое условие сработало независимо от оценки
	Severe bool
}

// Monitor ведет метрики качества соединения клиентов.
type Monitor struct {
	kv        keystore.Store
	runtime   RuntimeProvider
	bus       *Bus
	metrics   *metrics.Metrics
	logger    *slog.Logger
	locks     *mapmutex.Mutex
	lastAlert map[string]time.Time
	now       func() time.Time
	cfg       Config
	alertMu   sync.Mutex
}

// NewMonitor creates a monitor. It fails with ErrInvalidWeights when the
// weights do not sum to 1. runtime, bus and m may be nil.
func NewMonitor(kv keystore.Store, runtime RuntimeProvider, bus *Bus, m *metrics.Metrics, logger *slog.Logger, cfg Config) (*Monitor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create quality monitor: %w", err)
	}
	if bus == nil {
		bus = NewBus(m)
	}

	return &Monitor{
		kv:        kv,
		runtime:   runtime,
		bus:       bus,
		metrics:   m,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
		lastAlert: make(map[string]time.Time),
		locks:     mapmutex.NewCustomizedMapMutex(200, 50_000_000, 1000, 1.5, 0.2),
	}, nil
}

// Bus returns the event bus of the monitor
func (m *Monitor) Bus() *Bus { return m.bus }

// Config returns the monitor settings
func (m *Monitor) Config() Config { return m.cfg }

// RecordLatency appends a latency sample and recomputes the client's metrics
func (m *Monitor) RecordLatency(ctx context.Context, clientID string, latencyMs float64) (*models.ConnectionQualityMetrics, error) {
	if clientID == "" || latencyMs < 0 || math.IsNaN(latencyMs) || math.IsInf(latencyMs, 0) {
		return nil, ErrInvalidInput
	}

	key := latencyKey(clientID)
	err := m.kv.Pipelined(ctx, func(p keystore.Pipeliner) error {
		p.LPush(key, []byte(strconv.FormatFloat(latencyMs, 'f', -1, 64)))
		p.LTrim(key, 0, int64(m.cfg.LatencyWindow-1))
		p.Expire(key, m.cfg.WindowTTL)
		p.HIncrBy(historyKey(clientID), fieldLatencySum, int64(math.Round(latencyMs*1000)))
		p.HIncrBy(historyKey(clientID), fieldLatencyCount, 1)
		p.Expire(historyKey(clientID), historyTTL)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record latency: %w", err)
	}

	return m.refresh(ctx, clientID)
}

// RecordPacketLoss appends a packet-loss observation and recomputes the metrics
func (m *Monitor) RecordPacketLoss(ctx context.Context, clientID string, lost, sent int64) (*models.ConnectionQualityMetrics, error) {
	if clientID == "" || sent <= 0 || lost < 0 || lost > sent {
		return nil, ErrInvalidInput
	}

	data, err := json.Marshal(lossEvent{Lost: lost, Sent: sent, Timestamp: m.now().UnixMilli()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal loss event: %w", err)
	}

	key := lossKey(clientID)
	err = m.kv.Pipelined(ctx, func(p keystore.Pipeliner) error {
		p.LPush(key, data)
		p.LTrim(key, 0, int64(m.cfg.LossWindow-1))
		p.Expire(key, m.cfg.WindowTTL)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record packet loss: %w", err)
	}

	return m.refresh(ctx, clientID)
}

// RecordBandwidthUsage appends a traffic event and updates the totals.
// The score is not recomputed; utilization is picked up on the next sample.
func (m *Monitor) RecordBandwidthUsage(ctx context.Context, clientID string, bytesSent, bytesReceived int64) error {
	if clientID == "" || bytesSent < 0 || bytesReceived < 0 {
		return ErrInvalidInput
	}

	data, err := json.Marshal(bandwidthEvent{Sent: bytesSent, Received: bytesReceived, Timestamp: m.now().UnixMilli()})
	if err != nil {
		return fmt.Errorf("failed to marshal bandwidth event: %w", err)
	}

	key := bandwidthKey(clientID)
	err = m.kv.Pipelined(ctx, func(p keystore.Pipeliner) error {
		p.LPush(key, data)
		p.LTrim(key, 0, int64(m.cfg.BandwidthWindow-1))
		p.Expire(key, m.cfg.WindowTTL)
		p.HIncrBy(totalsKey(clientID), fieldBytesSent, bytesSent)
		p.HIncrBy(totalsKey(clientID), fieldBytesReceived, bytesReceived)
		p.HIncrBy(totalsKey(clientID), fieldMessages, 1)
		p.Expire(totalsKey(clientID), m.cfg.MetricsTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record bandwidth usage: %w", err)
	}
	return nil
}

// Totals returns the cumulative traffic of the client
func (m *Monitor) Totals(ctx context.Context, clientID string) (Totals, error) {
	fields, err := m.kv.HGetAll(ctx, totalsKey(clientID))
	if err != nil {
		return Totals{}, fmt.Errorf("failed to get totals: %w", err)
	}
	return Totals{
		BytesSent:     fields[fieldBytesSent],
		BytesReceived: fields[fieldBytesReceived],
		Messages:      fields[fieldMessages],
	}, nil
}

// RecordConnection marks a (re)connection. The first connection starts the
// uptime; later ones count as reconnections.
func (m *Monitor) RecordConnection(ctx context.Context, clientID string) error {
	if clientID == "" {
		return ErrInvalidInput
	}

	fields, err := m.kv.HGetAll(ctx, connKey(clientID))
	if err != nil {
		return fmt.Errorf("failed to get connection record: %w", err)
	}

	_, seen := fields[fieldConnectedAt]
	err = m.kv.Pipelined(ctx, func(p keystore.Pipeliner) error {
		if seen {
			p.HIncrBy(connKey(clientID), fieldReconnections, 1)
		} else {
			p.HSet(connKey(clientID), fieldConnectedAt, m.now().UnixMilli())
		}
		p.Expire(connKey(clientID), historyTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record connection: %w", err)
	}

	m.logger.Debug("Client connected", "client_id", clientID, "reconnect", seen)
	return nil
}

// RecordDisconnection remembers the disconnect time for the flapping check
func (m *Monitor) RecordDisconnection(ctx context.Context, clientID string) error {
	if clientID == "" {
		return ErrInvalidInput
	}

	key := disconnectsKey(clientID)
	err := m.kv.Pipelined(ctx, func(p keystore.Pipeliner) error {
		p.LPush(key, []byte(strconv.FormatInt(m.now().UnixMilli(), 10)))
		p.LTrim(key, 0, maxDisconnects-1)
		p.Expire(key, 2*m.cfg.DisconnectWindow)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record disconnection: %w", err)
	}
	return nil
}

// Touch records client activity that carries no quality sample, such as a
// sync or a queued delivery. The stored metrics are kept alive with it.
func (m *Monitor) Touch(ctx context.Context, clientID string) error {
	if clientID == "" {
		return ErrInvalidInput
	}

	err := m.kv.Pipelined(ctx, func(p keystore.Pipeliner) error {
		p.HSet(connKey(clientID), fieldLastSeen, m.now().UnixMilli())
		p.Expire(connKey(clientID), historyTTL)
		p.Expire(MetricsKey(clientID), m.cfg.MetricsTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

// GetQualityMetrics returns the current metrics or nil when the client has none
func (m *Monitor) GetQualityMetrics(ctx context.Context, clientID string) (*models.ConnectionQualityMetrics, error) {
	return m.loadMetrics(ctx, clientID)
}

// GetAdaptiveThresholds returns the client's thresholds, recomputing them
// when the cached copy has expired.
func (m *Monitor) GetAdaptiveThresholds(ctx context.Context, clientID string) (models.AdaptiveThresholds, error) {
	var th models.AdaptiveThresholds

	data, err := m.kv.Get(ctx, thresholdsKey(clientID))
	switch {
	case err == nil:
		if json.Unmarshal(data, &th) == nil && th.ClientID == clientID {
			return th, nil
		}
	case !errors.Is(err, keystore.ErrKeyNotFound):
		return th, fmt.Errorf("failed to get thresholds: %w", err)
	}

	hist, err := m.kv.HGetAll(ctx, historyKey(clientID))
	if err != nil {
		return th, fmt.Errorf("failed to get latency history: %w", err)
	}
	var histAvg float64
	if n := hist[fieldLatencyCount]; n > 0 {
		histAvg = float64(hist[fieldLatencySum]) / 1000 / float64(n)
	}

	qm, err := m.loadMetrics(ctx, clientID)
	if err != nil {
		return th, err
	}
	score := -1.0
	if qm != nil {
		score = qm.QualityScore
	}

	th = m.cfg.AdaptiveThresholds(clientID, score, histAvg, m.now())
	if data, err := json.Marshal(th); err == nil {
		if err := m.kv.Set(ctx, thresholdsKey(clientID), data, m.cfg.ThresholdsTTL); err != nil {
			m.logger.Warn("Failed to cache thresholds", "client_id", clientID, "error", err)
		}
	}
	return th, nil
}

// Diagnose collects the reasons why the client should be served by polling
func (m *Monitor) Diagnose(ctx context.Context, clientID string) (Diagnosis, error) {
	qm, err := m.loadMetrics(ctx, clientID)
	if err != nil || qm == nil {
		return Diagnosis{}, err
	}

	th, err := m.GetAdaptiveThresholds(ctx, clientID)
	if err != nil {
		return Diagnosis{}, err
	}

	disconnects, err := m.recentDisconnects(ctx, clientID)
	if err != nil {
		return Diagnosis{}, err
	}

	reasons, severe := m.cfg.FallbackReasons(*qm, th, disconnects)
	return Diagnosis{Metrics: qm, Thresholds: th, Reasons: reasons, Severe: severe}, nil
}

// ShouldUsePollingFallback reports whether push delivery should not be
// trusted for the client. Storage failures are logged and yield false.
func (m *Monitor) ShouldUsePollingFallback(ctx context.Context, clientID string) bool {
	d, err := m.Diagnose(ctx, clientID)
	if err != nil {
		m.logger.Error("Failed to diagnose connection", "client_id", clientID, "error", err)
		return false
	}
	return len(d.Reasons) > 0
}

// MarkFallback switches the fallback flag in the stored metrics. Activating
// an already degraded client only appends the new reasons. changed reports
// whether the mode actually flipped.
func (m *Monitor) MarkFallback(ctx context.Context, clientID string, active bool, reasons []string) (bool, *models.ConnectionQualityMetrics, error) {
	if clientID == "" {
		return false, nil, ErrInvalidInput
	}
	if !m.locks.TryLock(clientID) {
		return false, nil, ErrBusy
	}
	defer m.locks.Unlock(clientID)

	qm, err := m.loadMetrics(ctx, clientID)
	if err != nil {
		return false, nil, err
	}
	if qm == nil {
		if !active {
			return false, nil, nil
		}
		if qm, err = m.compute(ctx, clientID); err != nil {
			return false, nil, err
		}
	}

	changed := qm.UsingPollingFallback != active
	switch {
	case active:
		qm.UsingPollingFallback = true
		if changed {
			qm.FallbackReasons = nil
		}
		qm.FallbackReasons = appendReasons(qm.FallbackReasons, reasons)
	case changed:
		qm.UsingPollingFallback = false
		qm.FallbackReasons = nil
	default:
		return false, qm, nil
	}

	if err := m.saveMetrics(ctx, qm); err != nil {
		return false, nil, err
	}
	return changed, qm, nil
}

func appendReasons(dst, reasons []string) []string {
	for _, r := range reasons {
		dup := false
		for _, have := range dst {
			if have == r {
				dup = true
				break
			}
		}
		if !dup && len(dst) < maxReasons {
			dst = append(dst, r)
		}
	}
	return dst
}

// ListClients returns the ids of clients with stored metrics
func (m *Monitor) ListClients(ctx context.Context) ([]string, error) {
	keys, err := m.kv.ScanPrefix(ctx, metricsPrefix, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to scan metrics: %w", err)
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, metricsPrefix))
	}
	return ids, nil
}

// AllMetrics returns the metrics of every known client
func (m *Monitor) AllMetrics(ctx context.Context) ([]models.ConnectionQualityMetrics, error) {
	ids, err := m.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.ConnectionQualityMetrics, 0, len(ids))
	for _, id := range ids {
		qm, err := m.loadMetrics(ctx, id)
		if err != nil {
			return nil, err
		}
		// запись могла истечь между SCAN и GET
		if qm != nil {
			out = append(out, *qm)
		}
	}
	return out, nil
}

// CleanupClient removes every record kept for the client
func (m *Monitor) CleanupClient(ctx context.Context, clientID string) error {
	err := m.kv.Delete(ctx,
		latencyKey(clientID),
		lossKey(clientID),
		bandwidthKey(clientID),
		totalsKey(clientID),
		historyKey(clientID),
		connKey(clientID),
		disconnectsKey(clientID),
		thresholdsKey(clientID),
		MetricsKey(clientID),
	)
	if err != nil {
		return fmt.Errorf("failed to cleanup client: %w", err)
	}

	m.alertMu.Lock()
	prefix := clientID + "|"
	for k := range m.lastAlert {
		if strings.HasPrefix(k, prefix) {
			delete(m.lastAlert, k)
		}
	}
	m.alertMu.Unlock()
	return nil
}

// PruneInactive removes clients with neither a metrics update nor recorded
// activity for maxIdle and returns their ids. Clients on polling fallback
// are kept: they leave DEGRADED only through deactivation.
func (m *Monitor) PruneInactive(ctx context.Context, maxIdle time.Duration) ([]string, error) {
	all, err := m.AllMetrics(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := m.now().Add(-maxIdle).UnixMilli()
	var pruned []string
	for _, qm := range all {
		if qm.UsingPollingFallback {
			continue
		}
		last, err := m.lastActivity(ctx, qm)
		if err != nil {
			return pruned, err
		}
		if last >= cutoff {
			continue
		}
		if err := m.CleanupClient(ctx, qm.ClientID); err != nil {
			return pruned, err
		}
		pruned = append(pruned, qm.ClientID)
	}

	if len(pruned) > 0 {
		m.logger.Info("Pruned inactive clients", "count", len(pruned))
	}
	return pruned, nil
}

// lastActivity последний замер или последняя синхронизация клиента
func (m *Monitor) lastActivity(ctx context.Context, qm models.ConnectionQualityMetrics) (int64, error) {
	conn, err := m.kv.HGetAll(ctx, connKey(qm.ClientID))
	if err != nil {
		return 0, fmt.Errorf("failed to get connection record: %w", err)
	}
	return max(qm.LastUpdated, conn[fieldLastSeen]), nil
}

func (m *Monitor) refresh(ctx context.Context, clientID string) (*models.ConnectionQualityMetrics, error) {
	if !m.locks.TryLock(clientID) {
		return nil, ErrBusy
	}

	prev, err := m.loadMetrics(ctx, clientID)
	if err != nil {
		m.locks.Unlock(clientID)
		return nil, err
	}
	qm, err := m.compute(ctx, clientID)
	if err != nil {
		m.locks.Unlock(clientID)
		return nil, err
	}
	if prev != nil {
		qm.UsingPollingFallback = prev.UsingPollingFallback
		qm.FallbackReasons = prev.FallbackReasons
	}
	err = m.saveMetrics(ctx, qm)
	m.locks.Unlock(clientID)
	if err != nil {
		return nil, err
	}

	m.metrics.ObserveQualityScore(qm.QualityScore)
	snapshot := *qm
	m.bus.Publish(Event{
		Type:      EventQualityUpdated,
		ClientID:  clientID,
		Metrics:   &snapshot,
		Timestamp: qm.LastUpdated,
	})
	m.checkAlerts(ctx, qm)
	return qm, nil
}

func (m *Monitor) compute(ctx context.Context, clientID string) (*models.ConnectionQualityMetrics, error) {
	now := m.now()

	latencies, err := m.floatWindow(ctx, latencyKey(clientID))
	if err != nil {
		return nil, err
	}
	n := min(len(latencies), m.cfg.JitterSamples)
	recent := make([]float64, 0, n)
	for i := n - 1; i >= 0; i-- {
		recent = append(recent, latencies[i])
	}

	loss, err := m.packetLossRate(ctx, clientID)
	if err != nil {
		return nil, err
	}

	conn, err := m.kv.HGetAll(ctx, connKey(clientID))
	if err != nil {
		return nil, fmt.Errorf("failed to get connection record: %w", err)
	}
	var uptime int64
	if at, ok := conn[fieldConnectedAt]; ok {
		uptime = max(0, now.UnixMilli()-at)
	}
	reconnections := conn[fieldReconnections]

	utilization, err := m.utilization(ctx, clientID, now)
	if err != nil {
		return nil, err
	}

	avg := mean(latencies)
	jitter := Jitter(recent)
	stability := Stability(reconnections, float64(uptime)/float64(time.Minute.Milliseconds()))

	return &models.ConnectionQualityMetrics{
		ClientID:             clientID,
		AvgLatency:           avg,
		PacketLoss:           loss,
		Jitter:               jitter,
		BandwidthUtilization: utilization,
		ConnectionStability:  stability,
		QualityScore:         m.cfg.Score(avg, loss, jitter, stability),
		ReconnectionAttempts: reconnections,
		Uptime:               uptime,
		LastUpdated:          now.UnixMilli(),
	}, nil
}

// floatWindow читает окно числовых замеров, новые первыми
func (m *Monitor) floatWindow(ctx context.Context, key string) ([]float64, error) {
	raw, err := m.kv.LRange(ctx, key, 0, -1)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	out := make([]float64, 0, len(raw))
	for _, r := range raw {
		v, err := strconv.ParseFloat(string(r), 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (m *Monitor) packetLossRate(ctx context.Context, clientID string) (float64, error) {
	raw, err := m.kv.LRange(ctx, lossKey(clientID), 0, -1)
	if err != nil {
		return 0, fmt.Errorf("failed to read loss window: %w", err)
	}

	var lost, sent int64
	for _, r := range raw {
		var ev lossEvent
		if json.Unmarshal(r, &ev) != nil {
			continue
		}
		lost += ev.Lost
		sent += ev.Sent
	}
	if sent == 0 {
		return 0, nil
	}
	return float64(lost) / float64(sent), nil
}

func (m *Monitor) utilization(ctx context.Context, clientID string, now time.Time) (float64, error) {
	raw, err := m.kv.LRange(ctx, bandwidthKey(clientID), 0, -1)
	if err != nil {
		return 0, fmt.Errorf("failed to read bandwidth window: %w", err)
	}

	cutoff := now.Add(-utilizationSpan).UnixMilli()
	var bytes int64
	for _, r := range raw {
		var ev bandwidthEvent
		if json.Unmarshal(r, &ev) != nil || ev.Timestamp < cutoff {
			continue
		}
		bytes += ev.Sent + ev.Received
	}

	perSecond := float64(bytes) / utilizationSpan.Seconds()
	return clamp(perSecond/m.cfg.LinkCapacity*100, 0, 100), nil
}

func (m *Monitor) recentDisconnects(ctx context.Context, clientID string) (int, error) {
	raw, err := m.kv.LRange(ctx, disconnectsKey(clientID), 0, -1)
	if err != nil {
		return 0, fmt.Errorf("failed to read disconnects: %w", err)
	}

	cutoff := m.now().Add(-m.cfg.DisconnectWindow).UnixMilli()
	count := 0
	for _, r := range raw {
		ts, err := strconv.ParseInt(string(r), 10, 64)
		if err == nil && ts >= cutoff {
			count++
		}
	}
	return count, nil
}

// loadMetrics возвращает nil без ошибки для отсутствующей или поврежденной записи
func (m *Monitor) loadMetrics(ctx context.Context, clientID string) (*models.ConnectionQualityMetrics, error) {
	data, err := m.kv.Get(ctx, MetricsKey(clientID))
	if err != nil {
		if errors.Is(err, keystore.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get metrics: %w", err)
	}

	var qm models.ConnectionQualityMetrics
	if err := json.Unmarshal(data, &qm); err != nil || qm.ClientID != clientID {
		m.logger.Warn("Corrupted quality metrics removed", "client_id", clientID, "error", err)
		if err := m.kv.Delete(ctx, MetricsKey(clientID)); err != nil {
			m.logger.Error("Failed to delete corrupted metrics", "client_id", clientID, "error", err)
		}
		return nil, nil
	}
	return &qm, nil
}

func (m *Monitor) saveMetrics(ctx context.Context, qm *models.ConnectionQualityMetrics) error {
	data, err := json.Marshal(qm)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}
	if err := m.kv.Set(ctx, MetricsKey(qm.ClientID), data, m.cfg.MetricsTTL); err != nil {
		return fmt.Errorf("failed to save metrics: %w", err)
	}
	return nil
}
