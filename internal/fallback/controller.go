// Package fallback переключает клиентов между push-доставкой дельт (NORMAL)
// и опросом (DEGRADED) по оценке качества соединения.
package fallback

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/iudanet/deltasync/internal/keystore"
	"github.com/iudanet/deltasync/internal/metrics"
	"github.com/iudanet/deltasync/internal/models"
	"github.com/iudanet/deltasync/internal/quality"
)

// State режим доставки клиента.
type State string

// Режимы доставки
const (
	StateNormal   State = "NORMAL"
	StateDegraded State = "DEGRADED"
)

// Значения по умолчанию
const (
	DefaultRecoveryInterval = 30 * time.Second
	DefaultHistoryCap       = 100
	DefaultHistoryTTL       = 24 * time.Hour
)

// Направления переходов для метрик
const (
	directionActivated   = "activated"
	directionDeactivated = "deactivated"
)

//go:generate moq -out monitor_mock.go . Monitor

// Monitor часть монитора качества, нужная контроллеру.
type Monitor interface {
	Diagnose(ctx context.Context, clientID string) (quality.Diagnosis, error)
	MarkFallback(ctx context.Context, clientID string, active bool, reasons []string) (bool, *models.ConnectionQualityMetrics, error)
	GetQualityMetrics(ctx context.Context, clientID string) (*models.ConnectionQualityMetrics, error)
	ListClients(ctx context.Context) ([]string, error)
	RaiseAlert(ctx context.Context, clientID, alertType string, severity models.AlertSeverity, message string)
}

// Config параметры контроллера.
type Config struct {
	RecoveryInterval time.Duration `yaml:"recovery_interval"`
	HistoryCap       int           `yaml:"history_cap"`
	HistoryTTL       time.Duration `yaml:"history_ttl"`
}

// DefaultConfig returns the default controller settings
func DefaultConfig() Config {
	return Config{
		RecoveryInterval: DefaultRecoveryInterval,
		HistoryCap:       DefaultHistoryCap,
		HistoryTTL:       DefaultHistoryTTL,
	}
}

// Transition запись истории переключений режима.
type Transition struct {
	ClientID     string   `json:"client_id"`
	From         State    `json:"from"`
	To           State    `json:"to"`
	Reasons      []string `json:"reasons,omitempty"`
	QualityScore float64  `json:"quality_score"`
	Timestamp    int64    `json:"timestamp"`
	Manual       bool     `json:"manual"`
}

func historyKey(clientID string) string { return "quality:events:" + clientID }

// Controller ведет машину состояний NORMAL -> DEGRADED -> NORMAL.
// Состояние хранится в метриках качества клиента (UsingPollingFallback),
// поэтому переживает перезапуск процесса при постоянном хранилище.
type Controller struct {
	monitor Monitor
	kv      keystore.Store
	bus     *quality.Bus
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
	cfg     Config
}

// New creates a controller. bus and m may be nil.
func New(monitor Monitor, kv keystore.Store, bus *quality.Bus, m *metrics.Metrics, logger *slog.Logger, cfg Config) *Controller {
	def := DefaultConfig()
	if cfg.RecoveryInterval <= 0 {
		cfg.RecoveryInterval = def.RecoveryInterval
	}
	if cfg.HistoryCap <= 0 {
		cfg.HistoryCap = def.HistoryCap
	}
	if cfg.HistoryTTL <= 0 {
		cfg.HistoryTTL = def.HistoryTTL
	}

	return &Controller{
		monitor: monitor,
		kv:      kv,
		bus:     bus,
		metrics: m,
		logger:  logger,
		cfg:     cfg,
		now:     time.Now,
	}
}

// State returns the client's delivery mode and the recorded reasons
func (c *Controller) State(ctx context.Context, clientID string) (State, []string, error) {
	qm, err := c.monitor.GetQualityMetrics(ctx, clientID)
	if err != nil {
		return StateNormal, nil, err
	}
	if qm == nil || !qm.UsingPollingFallback {
		return StateNormal, nil, nil
	}
	return StateDegraded, qm.FallbackReasons, nil
}

// Evaluate checks the fallback triggers and degrades the client when any
// holds. It reports whether the client is served by polling afterwards.
// A degraded client stays degraded until deactivated.
func (c *Controller) Evaluate(ctx context.Context, clientID string) (bool, error) {
	d, err := c.monitor.Diagnose(ctx, clientID)
	if err != nil {
		return false, fmt.Errorf("failed to diagnose client: %w", err)
	}
	if d.Metrics == nil {
		return false, nil
	}

	if len(d.Reasons) > 0 {
		if _, err := c.Activate(ctx, clientID, d.Reasons...); err != nil {
			return true, err
		}
		return true, nil
	}
	return d.Metrics.UsingPollingFallback, nil
}

// Activate moves the client to DEGRADED. Repeated activation only appends
// reasons and reports false.
func (c *Controller) Activate(ctx context.Context, clientID string, reasons ...string) (bool, error) {
	changed, qm, err := c.monitor.MarkFallback(ctx, clientID, true, reasons)
	if err != nil {
		return false, fmt.Errorf("failed to activate fallback: %w", err)
	}
	if !changed {
		return false, nil
	}

	c.logger.Warn("Polling fallback activated",
		"client_id", clientID,
		"reasons", reasons,
		"quality_score", qm.QualityScore,
	)
	c.monitor.RaiseAlert(ctx, clientID, models.AlertFallbackActivated, models.SeverityWarning,
		"polling fallback activated: "+strings.Join(reasons, "; "))
	c.metrics.IncFallbackTransition(directionActivated)
	c.record(ctx, Transition{
		ClientID:     clientID,
		From:         StateNormal,
		To:           StateDegraded,
		Reasons:      reasons,
		QualityScore: qm.QualityScore,
		Timestamp:    c.now().UnixMilli(),
	}, quality.EventFallbackActivated, qm)
	return true, nil
}

// Deactivate returns the client to NORMAL; manual marks an operator action
func (c *Controller) Deactivate(ctx context.Context, clientID, reason string, manual bool) (bool, error) {
	changed, qm, err := c.monitor.MarkFallback(ctx, clientID, false, nil)
	if err != nil {
		return false, fmt.Errorf("failed to deactivate fallback: %w", err)
	}
	if !changed {
		return false, nil
	}

	c.logger.Info("Polling fallback deactivated",
		"client_id", clientID,
		"reason", reason,
		"manual", manual,
		"quality_score", qm.QualityScore,
	)
	c.monitor.RaiseAlert(ctx, clientID, models.AlertFallbackDeactivated, models.SeverityInfo,
		"polling fallback deactivated: "+reason)
	c.metrics.IncFallbackTransition(directionDeactivated)
	c.record(ctx, Transition{
		ClientID:     clientID,
		From:         StateDegraded,
		To:           StateNormal,
		Reasons:      []string{reason},
		QualityScore: qm.QualityScore,
		Timestamp:    c.now().UnixMilli(),
		Manual:       manual,
	}, quality.EventFallbackDeactivated, qm)
	return true, nil
}

// RecoverOnce deactivates degraded clients whose score reached the recovery
// threshold with no severe symptom left. It returns the recovered ids.
func (c *Controller) RecoverOnce(ctx context.Context) ([]string, error) {
	ids, err := c.monitor.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	var recovered []string
	degraded := 0
	for _, id := range ids {
		d, err := c.monitor.Diagnose(ctx, id)
		if err != nil {
			c.logger.Error("Failed to diagnose client for recovery", "client_id", id, "error", err)
			continue
		}
		if d.Metrics == nil || !d.Metrics.UsingPollingFallback {
			continue
		}

		if d.Severe || d.Metrics.QualityScore < d.Thresholds.RecoveryScore {
			degraded++
			continue
		}

		reason := fmt.Sprintf("quality score %.1f reached %.0f", d.Metrics.QualityScore, d.Thresholds.RecoveryScore)
		if _, err := c.Deactivate(ctx, id, reason, false); err != nil {
			c.logger.Error("Failed to recover client", "client_id", id, "error", err)
			degraded++
			continue
		}
		recovered = append(recovered, id)
	}

	c.metrics.SetClientsInFallback(degraded)
	return recovered, nil
}

// Run executes RecoverOnce every RecoveryInterval until ctx is done
func (c *Controller) Run(ctx context.Context) {
	ticker := time.NewTicker(c.cfg.RecoveryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := c.RecoverOnce(ctx); err != nil {
				c.logger.Error("Fallback recovery pass failed", "error", err)
			}
		}
	}
}

// History returns the client's transitions, newest first
func (c *Controller) History(ctx context.Context, clientID string) ([]Transition, error) {
	raw, err := c.kv.LRange(ctx, historyKey(clientID), 0, -1)
	if err != nil {
		return nil, fmt.Errorf("failed to read fallback history: %w", err)
	}

	out := make([]Transition, 0, len(raw))
	for _, r := range raw {
		var tr Transition
		if json.Unmarshal(r, &tr) == nil {
			out = append(out, tr)
		}
	}
	return out, nil
}

// Forget drops the client's transition history
func (c *Controller) Forget(ctx context.Context, clientID string) error {
	return c.kv.Delete(ctx, historyKey(clientID))
}

func (c *Controller) record(ctx context.Context, tr Transition, evType quality.EventType, qm *models.ConnectionQualityMetrics) {
	data, err := json.Marshal(tr)
	if err == nil {
		key := historyKey(tr.ClientID)
		err = c.kv.Pipelined(ctx, func(p keystore.Pipeliner) error {
			p.LPush(key, data)
			p.LTrim(key, 0, int64(c.cfg.HistoryCap-1))
			p.Expire(key, c.cfg.HistoryTTL)
			return nil
		})
	}
	if err != nil {
		c.logger.Error("Failed to record fallback transition", "client_id", tr.ClientID, "error", err)
	}

	if c.bus != nil {
		snapshot := *qm
		c.bus.Publish(quality.Event{
			Type:      evType,
			ClientID:  tr.ClientID,
			Metrics:   &snapshot,
			Reasons:   tr.Reasons,
			Timestamp: tr.Timestamp,
		})
	}
}
