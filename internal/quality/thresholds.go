package quality

import (
	"fmt"
	"math"
	"time"

	"github.com/iudanet/deltasync/internal/models"
)

// Параметры адаптивных порогов
const (
	baseFallbackScore   = 60.0
	strictFallbackScore = 70.0
	recoveryMargin      = 15.0
	veryPoorScore       = 40.0
	excellentScore      = 90.0
	historyFactor       = 1.2

	minPingInterval = 10 * time.Second
	maxPingInterval = 60 * time.Second
)

// DefaultPingInterval интервал keep-alive клиента без истории
const DefaultPingInterval = 30 * time.Second

// AdaptiveThresholds derives the client's thresholds from its historical
// average latency and current score. score < 0 means no score yet.
func (c Config) AdaptiveThresholds(clientID string, score, historicalAvg float64, now time.Time) models.AdaptiveThresholds {
	fallback := baseFallbackScore
	if score >= 0 && score < veryPoorScore {
		fallback = strictFallbackScore
	}

	ping := DefaultPingInterval
	switch {
	case score >= excellentScore:
		ping /= 2
	case score >= 0 && score < veryPoorScore:
		ping *= 2
	}
	ping = min(max(ping, minPingInterval), maxPingInterval)

	return models.AdaptiveThresholds{
		ClientID:          clientID,
		LatencyThreshold:  math.Max(c.Latency.Excellent, historyFactor*historicalAvg),
		PacketLossLimit:   c.FallbackPacketLoss,
		JitterThreshold:   c.Jitter.Poor,
		StabilityMinimum:  c.FallbackStability,
		FallbackScore:     fallback,
		RecoveryScore:     fallback + recoveryMargin,
		PingIntervalMs:    ping.Milliseconds(),
		MinPingIntervalMs: minPingInterval.Milliseconds(),
		MaxPingIntervalMs: maxPingInterval.Milliseconds(),
		ComputedAt:        now.UnixMilli(),
	}
}

// FallbackReasons lists every fallback trigger that holds. severe is true
// when a trigger other than the composite score fired.
func (c Config) FallbackReasons(qm models.ConnectionQualityMetrics, th models.AdaptiveThresholds, recentDisconnects int) ([]string, bool) {
	var reasons []string
	severe := false

	if qm.QualityScore < th.FallbackScore {
		reasons = append(reasons, fmt.Sprintf("quality score %.1f below %.0f", qm.QualityScore, th.FallbackScore))
	}
	if qm.AvgLatency > c.FallbackLatencyMs {
		reasons = append(reasons, fmt.Sprintf("average latency %.0fms above %.0fms", qm.AvgLatency, c.FallbackLatencyMs))
		severe = true
	}
	if qm.PacketLoss > c.FallbackPacketLoss {
		reasons = append(reasons, fmt.Sprintf("packet loss %.1f%% above %.1f%%", qm.PacketLoss*100, c.FallbackPacketLoss*100))
		severe = true
	}
	if qm.ConnectionStability < c.FallbackStability {
		reasons = append(reasons, fmt.Sprintf("connection stability %.2f below %.2f", qm.ConnectionStability, c.FallbackStability))
		severe = true
	}
	if recentDisconnects > c.MaxDisconnects {
		reasons = append(reasons, fmt.Sprintf("%d disconnects in %s", recentDisconnects, c.DisconnectWindow))
		severe = true
	}
	return reasons, severe
}
