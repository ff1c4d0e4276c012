package statesync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/deltasync/internal/crdt"
	"github.com/iudanet/deltasync/internal/fallback"
	"github.com/iudanet/deltasync/internal/metrics"
	"github.com/iudanet/deltasync/internal/models"
	"github.com/iudanet/deltasync/internal/quality"
	"github.com/iudanet/deltasync/internal/validation"
)

// QualityReport сводка по соединению клиента.
type QualityReport struct {
	Metrics    *models.ConnectionQualityMetrics  `json:"metrics"`
	Bandwidth  *models.BandwidthValidationResult `json:"bandwidth,omitempty"`
	Errors     *models.ClientErrorStats          `json:"errors,omitempty"`
	Thresholds models.AdaptiveThresholds         `json:"thresholds"`
	Mode       fallback.State                    `json:"mode"`
	Totals     quality.Totals                    `json:"totals"`
}

func clientInput(clientID string) error {
	if err := validation.ValidateClientID(clientID); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// RecordLatency records a latency sample and re-evaluates the delivery mode
func (s *Service) RecordLatency(ctx context.Context, clientID string, latencyMs float64) (*models.ConnectionQualityMetrics, error) {
	if err := clientInput(clientID); err != nil {
		return nil, err
	}

	qm, err := s.monitor.RecordLatency(ctx, clientID, latencyMs)
	return s.afterRecord(ctx, clientID, qm, err)
}

// RecordPacketLoss records a packet loss report and re-evaluates the delivery mode
func (s *Service) RecordPacketLoss(ctx context.Context, clientID string, lost, sent int64) (*models.ConnectionQualityMetrics, error) {
	if err := clientInput(clientID); err != nil {
		return nil, err
	}

	qm, err := s.monitor.RecordPacketLoss(ctx, clientID, lost, sent)
	return s.afterRecord(ctx, clientID, qm, err)
}

// RecordBandwidthUsage adds traffic reported by the transport
func (s *Service) RecordBandwidthUsage(ctx context.Context, clientID string, bytesSent, bytesReceived int64) error {
	if err := clientInput(clientID); err != nil {
		return err
	}

	err := s.monitor.RecordBandwidthUsage(ctx, clientID, bytesSent, bytesReceived)
	if errors.Is(err, quality.ErrInvalidInput) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err != nil {
		s.logger.Error("Failed to record bandwidth usage", "client_id", clientID, "error", err)
		s.stats.recordError(clientID, opQuality, err, s.now())
	}
	return nil
}

// RecordConnection notes a (re)connection of the client's push channel
func (s *Service) RecordConnection(ctx context.Context, clientID string) {
	if err := s.monitor.RecordConnection(ctx, clientID); err != nil {
		s.logger.Warn("Failed to record connection", "client_id", clientID, "error", err)
	}
}

// RecordDisconnection notes a lost push channel and re-evaluates the delivery mode
func (s *Service) RecordDisconnection(ctx context.Context, clientID string) {
	if err := s.monitor.RecordDisconnection(ctx, clientID); err != nil {
		s.logger.Warn("Failed to record disconnection", "client_id", clientID, "error", err)
		return
	}
	if _, err := s.fallback.Evaluate(ctx, clientID); err != nil {
		s.logger.Warn("Failed to evaluate fallback", "client_id", clientID, "error", err)
	}
}

func (s *Service) afterRecord(ctx context.Context, clientID string, qm *models.ConnectionQualityMetrics, err error) (*models.ConnectionQualityMetrics, error) {
	if errors.Is(err, quality.ErrInvalidInput) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err != nil {
		s.logger.Error("Failed to record quality sample", "client_id", clientID, "error", err)
		s.stats.recordError(clientID, opQuality, err, s.now())
		return nil, nil
	}

	if _, err := s.fallback.Evaluate(ctx, clientID); err != nil {
		s.logger.Warn("Failed to evaluate fallback", "client_id", clientID, "error", err)
		return qm, nil
	}

	// Evaluate мог пометить клиента, отдаем актуальную запись
	if fresh, err := s.monitor.GetQualityMetrics(ctx, clientID); err == nil && fresh != nil {
		return fresh, nil
	}
	return qm, nil
}

// PingInterval returns the client's adaptive keep-alive interval
func (s *Service) PingInterval(ctx context.Context, clientID string) time.Duration {
	th, err := s.monitor.GetAdaptiveThresholds(ctx, clientID)
	if err != nil || th.PingIntervalMs <= 0 {
		return quality.DefaultPingInterval
	}
	return time.Duration(th.PingIntervalMs) * time.Millisecond
}

// DeliveryMode returns NORMAL or DEGRADED; unknown clients are NORMAL
func (s *Service) DeliveryMode(ctx context.Context, clientID string) fallback.State {
	st, _, err := s.fallback.State(ctx, clientID)
	if err != nil {
		s.logger.Warn("Failed to load delivery mode", "client_id", clientID, "error", err)
		return fallback.StateNormal
	}
	return st
}

// GetQualityMetrics returns the client's current metrics or nil
func (s *Service) GetQualityMetrics(ctx context.Context, clientID string) (*models.ConnectionQualityMetrics, error) {
	if err := clientInput(clientID); err != nil {
		return nil, err
	}

	qm, err := s.monitor.GetQualityMetrics(ctx, clientID)
	if err != nil {
		s.logger.Error("Failed to load quality metrics", "client_id", clientID, "error", err)
		return nil, nil
	}
	return qm, nil
}

// QualityReport collects everything known about the client's connection
func (s *Service) QualityReport(ctx context.Context, clientID string) (QualityReport, error) {
	if err := clientInput(clientID); err != nil {
		return QualityReport{}, err
	}

	report := QualityReport{Mode: fallback.StateNormal}

	qm, err := s.monitor.GetQualityMetrics(ctx, clientID)
	if err != nil {
		s.logger.Error("Failed to load quality metrics", "client_id", clientID, "error", err)
	}
	report.Metrics = qm
	if qm != nil && qm.UsingPollingFallback {
		report.Mode = fallback.StateDegraded
	}

	if th, err := s.monitor.GetAdaptiveThresholds(ctx, clientID); err == nil {
		report.Thresholds = th
	}
	if totals, err := s.monitor.Totals(ctx, clientID); err == nil {
		report.Totals = totals
	}
	if bw, err := s.bandwidth.Last(ctx, clientID); err == nil {
		report.Bandwidth = &bw
	}
	if st, ok := s.stats.get(clientID); ok {
		report.Errors = &st
	}
	return report, nil
}

// GetSystemHealthMetrics aggregates the metrics of every known client
func (s *Service) GetSystemHealthMetrics(ctx context.Context) (models.SystemHealthMetrics, error) {
	h, err := s.monitor.SystemHealth(ctx)
	if err != nil {
		s.logger.Error("Failed to collect system health", "error", err)
		return models.SystemHealthMetrics{Timestamp: s.now().UnixMilli()}, nil
	}
	return h, nil
}

// GetAlerts returns alerts newer than since; empty clientID means every client
func (s *Service) GetAlerts(ctx context.Context, clientID string, since time.Time) ([]models.ConnectionQualityAlert, error) {
	if clientID != "" {
		if err := clientInput(clientID); err != nil {
			return nil, err
		}
	}

	alerts, err := s.monitor.GetAlerts(ctx, clientID, since)
	if err != nil {
		s.logger.Error("Failed to load alerts", "client_id", clientID, "error", err)
		return []models.ConnectionQualityAlert{}, nil
	}
	return alerts, nil
}

// FallbackHistory returns the client's delivery mode transitions, newest first
func (s *Service) FallbackHistory(ctx context.Context, clientID string) ([]fallback.Transition, error) {
	if err := clientInput(clientID); err != nil {
		return nil, err
	}

	h, err := s.fallback.History(ctx, clientID)
	if err != nil {
		s.logger.Error("Failed to load fallback history", "client_id", clientID, "error", err)
		return []fallback.Transition{}, nil
	}
	return h, nil
}

// DeactivateFallback returns the client to push delivery by operator request
func (s *Service) DeactivateFallback(ctx context.Context, clientID, reason string) (bool, error) {
	if err := clientInput(clientID); err != nil {
		return false, err
	}
	if reason == "" {
		reason = "manual deactivation"
	}

	changed, err := s.fallback.Deactivate(ctx, clientID, reason, true)
	if err != nil {
		s.logger.Error("Failed to deactivate fallback", "client_id", clientID, "error", err)
		return false, nil
	}
	return changed, nil
}

// InvalidateEntityCache drops cached snapshots so the next delta for them
// is a full creation. Empty id covers the whole type.
func (s *Service) InvalidateEntityCache(entityType models.EntityType, id string) (int, error) {
	if err := validation.ValidateEntityType(entityType); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validation.ValidateEntityID(id); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.entities.InvalidateEntityCache(entityType, id), nil
}

// ResolveConflict selects the last writer among concurrent versions
func (s *Service) ResolveConflict(conflictType string, states []models.VersionedState) (*models.Resolution, error) {
	res, err := crdt.Resolve(conflictType, states)
	if err != nil {
		if errors.Is(err, crdt.ErrNoStates) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, err
	}

	s.logger.Debug("Conflict resolved",
		"conflict_type", conflictType,
		"states", len(states),
		"winner", res.WinnerNodeID,
	)
	return res, nil
}

// CleanupClient releases every piece of state kept for the client. Failures
// of individual stores are logged; the rest is still released.
func (s *Service) CleanupClient(ctx context.Context, clientID string) error {
	if err := clientInput(clientID); err != nil {
		return err
	}

	start := s.now()
	result := metrics.ResultOK

	steps := []struct {
		fn   func(context.Context, string) error
		name string
	}{
		{name: "clocks", fn: s.clocks.DeleteClient},
		{name: "quality", fn: s.monitor.CleanupClient},
		{name: "fallback", fn: s.fallback.Forget},
		{name: "bandwidth", fn: s.bandwidth.Forget},
	}
	for _, step := range steps {
		if err := step.fn(ctx, clientID); err != nil {
			result = metrics.ResultFailed
			s.logger.Error("Failed to release client state",
				"client_id", clientID,
				"store", step.name,
				"error", err,
			)
		}
	}

	s.entities.ForgetClient(clientID)
	s.stats.forget(clientID)

	s.metrics.ObserveSync(opCleanup, result, time.Since(start).Seconds())
	s.logger.Info("Client cleaned up", "client_id", clientID)
	return nil
}
