package quality

import (
	"context"
	"time"

	"github.com/iudanet/deltasync/internal/models"
)

// SystemHealth aggregates the metrics of every known client. Runtime
// figures come from the injected provider; their failure only sets
// Runtime.CollectionFailed.
func (m *Monitor) SystemHealth(ctx context.Context) (models.SystemHealthMetrics, error) {
	now := m.now()
	health := models.SystemHealthMetrics{Timestamp: now.UnixMilli()}

	all, err := m.AllMetrics(ctx)
	if err != nil {
		return health, err
	}

	activeCutoff := now.Add(-m.cfg.ActiveWindow).UnixMilli()
	var scoreSum float64
	for _, qm := range all {
		health.TotalClients++
		scoreSum += qm.QualityScore
		if qm.LastUpdated >= activeCutoff {
			health.ActiveConnections++
		}
		if qm.UsingPollingFallback {
			health.ClientsInFallback++
		}
	}
	if health.TotalClients > 0 {
		health.AverageQualityScore = scoreSum / float64(health.TotalClients)
	}
	m.metrics.SetClientsInFallback(health.ClientsInFallback)

	alerts, err := m.GetAlerts(ctx, "", now.Add(-time.Hour))
	if err != nil {
		return health, err
	}
	health.AlertsLastHour = len(alerts)

	if m.runtime != nil {
		stats, err := m.runtime.Stats(ctx)
		if err != nil {
			m.logger.Warn("Runtime stats incomplete", "error", err)
			stats.CollectionFailed = true
		}
		health.Runtime = stats
	}
	return health, nil
}
