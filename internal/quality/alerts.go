package quality

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/deltasync/internal/keystore"
	"github.com/iudanet/deltasync/internal/models"
)

// RaiseAlert appends an alert to the capped log and publishes it. Repeated
// alerts of the same type for a client are suppressed for AlertCooldown.
func (m *Monitor) RaiseAlert(ctx context.Context, clientID, alertType string, severity models.AlertSeverity, message string) {
	qm, err := m.loadMetrics(ctx, clientID)
	if err != nil {
		m.logger.Debug("Alert without metrics snapshot", "client_id", clientID, "error", err)
	}
	m.raise(ctx, clientID, alertType, severity, message, qm)
}

func (m *Monitor) raise(ctx context.Context, clientID, alertType string, severity models.AlertSeverity, message string, qm *models.ConnectionQualityMetrics) {
	now := m.now()
	if !m.allowAlert(clientID, alertType, now) {
		return
	}

	alert := models.ConnectionQualityAlert{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		AlertType: alertType,
		Severity:  severity,
		Message:   message,
		Timestamp: now.UnixMilli(),
	}
	if qm != nil {
		snapshot := *qm
		alert.Metrics = &snapshot
	}

	attrs := []any{
		"client_id", clientID,
		"alert_type", alertType,
		"severity", severity,
		"message", message,
	}
	if severity == models.SeverityCritical {
		m.logger.Error("Connection quality alert", attrs...)
	} else {
		m.logger.Warn("Connection quality alert", attrs...)
	}
	m.metrics.IncAlert(alertType, string(severity))

	data, err := json.Marshal(alert)
	if err == nil {
		err = m.kv.Pipelined(ctx, func(p keystore.Pipeliner) error {
			p.LPush(alertsKey, data)
			p.LTrim(alertsKey, 0, int64(m.cfg.AlertCap-1))
			p.Expire(alertsKey, m.cfg.AlertTTL)
			return nil
		})
	}
	if err != nil {
		m.logger.Error("Failed to store alert", "client_id", clientID, "error", err)
	}

	m.bus.Publish(Event{
		Type:      EventAlert,
		ClientID:  clientID,
		Alert:     &alert,
		Timestamp: alert.Timestamp,
	})
}

func (m *Monitor) allowAlert(clientID, alertType string, now time.Time) bool {
	m.alertMu.Lock()
	defer m.alertMu.Unlock()

	key := clientID + "|" + alertType
	if last, ok := m.lastAlert[key]; ok && now.Sub(last) < m.cfg.AlertCooldown {
		return false
	}
	m.lastAlert[key] = now
	return true
}

// GetAlerts returns alerts newer than since, newest first. An empty clientID
// returns alerts of every client.
func (m *Monitor) GetAlerts(ctx context.Context, clientID string, since time.Time) ([]models.ConnectionQualityAlert, error) {
	raw, err := m.kv.LRange(ctx, alertsKey, 0, -1)
	if err != nil {
		return nil, fmt.Errorf("failed to read alerts: %w", err)
	}

	cutoff := since.UnixMilli()
	out := make([]models.ConnectionQualityAlert, 0)
	for _, r := range raw {
		var a models.ConnectionQualityAlert
		if json.Unmarshal(r, &a) != nil {
			continue
		}
		if a.Timestamp < cutoff || (clientID != "" && a.ClientID != clientID) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// checkAlerts поднимает алерты по порогам клиента после пересчета метрик
func (m *Monitor) checkAlerts(ctx context.Context, qm *models.ConnectionQualityMetrics) {
	th, err := m.GetAdaptiveThresholds(ctx, qm.ClientID)
	if err != nil {
		m.logger.Warn("Skipping alert check", "client_id", qm.ClientID, "error", err)
		return
	}
	c := qm.ClientID

	if qm.AvgLatency > th.LatencyThreshold || qm.AvgLatency > m.cfg.FallbackLatencyMs {
		severity := models.SeverityWarning
		if qm.AvgLatency > m.cfg.FallbackLatencyMs {
			severity = models.SeverityCritical
		}
		m.raise(ctx, c, models.AlertHighLatency, severity,
			fmt.Sprintf("average latency %.0fms exceeds %.0fms", qm.AvgLatency, th.LatencyThreshold), qm)
	}

	if qm.PacketLoss > th.PacketLossLimit {
		m.raise(ctx, c, models.AlertPacketLoss, models.SeverityCritical,
			fmt.Sprintf("packet loss %.1f%% exceeds %.1f%%", qm.PacketLoss*100, th.PacketLossLimit*100), qm)
	} else if qm.PacketLoss > th.PacketLossLimit/2 {
		m.raise(ctx, c, models.AlertPacketLoss, models.SeverityWarning,
			fmt.Sprintf("packet loss %.1f%% approaching limit", qm.PacketLoss*100), qm)
	}

	if qm.Jitter > th.JitterThreshold {
		m.raise(ctx, c, models.AlertHighJitter, models.SeverityWarning,
			fmt.Sprintf("jitter %.1fms exceeds %.0fms", qm.Jitter, th.JitterThreshold), qm)
	}

	if qm.ConnectionStability < th.StabilityMinimum {
		m.raise(ctx, c, models.AlertLowStability, models.SeverityWarning,
			fmt.Sprintf("connection stability %.2f below %.2f", qm.ConnectionStability, th.StabilityMinimum), qm)
	}

	if qm.QualityScore < th.FallbackScore {
		severity := models.SeverityWarning
		if qm.QualityScore < veryPoorScore {
			severity = models.SeverityCritical
		}
		m.raise(ctx, c, models.AlertLowQuality, severity,
			fmt.Sprintf("quality score %.1f below %.0f", qm.QualityScore, th.FallbackScore), qm)
	}
}
