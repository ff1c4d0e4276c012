package quality

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidWeights returned when the score weights do not sum to 1
var ErrInvalidWeights = errors.New("quality weights must sum to 1.0")

// weightTolerance допустимое отклонение суммы весов от 1
const weightTolerance = 0.01

// Ladder трехступенчатая шкала порогов метрики.
type Ladder struct {
	Excellent float64 `yaml:"excellent"`
	Good      float64 `yaml:"good"`
	Poor      float64 `yaml:"poor"`
}

// Weights веса составляющих оценки качества.
type Weights struct {
	Latency    float64 `yaml:"latency"`
	PacketLoss float64 `yaml:"packet_loss"`
	Jitter     float64 `yaml:"jitter"`
	Stability  float64 `yaml:"stability"`
}

// Sum returns the total of the weights
func (w Weights) Sum() float64 {
	return w.Latency + w.PacketLoss + w.Jitter + w.Stability
}

// Config параметры монитора качества.
type Config struct {
	Weights   Weights `yaml:"weights"`
	Latency   Ladder  `yaml:"latency"`   // Latency пороги задержки, мс (меньше - лучше)
	Jitter    Ladder  `yaml:"jitter"`    // Jitter пороги джиттера, мс (меньше - лучше)
	Stability Ladder  `yaml:"stability"` // Stability пороги стабильности (больше - лучше)

	// Жесткие условия перехода на опрос
	FallbackLatencyMs  float64       `yaml:"fallback_latency_ms"`
	FallbackPacketLoss float64       `yaml:"fallback_packet_loss"`
	FallbackStability  float64       `yaml:"fallback_stability"`
	MaxDisconnects     int           `yaml:"max_disconnects"`
	DisconnectWindow   time.Duration `yaml:"disconnect_window"`

	LatencyWindow   int           `yaml:"latency_window"`
	LossWindow      int           `yaml:"loss_window"`
	BandwidthWindow int           `yaml:"bandwidth_window"`
	JitterSamples   int           `yaml:"jitter_samples"`
	WindowTTL       time.Duration `yaml:"window_ttl"`
	MetricsTTL      time.Duration `yaml:"metrics_ttl"`
	ThresholdsTTL   time.Duration `yaml:"thresholds_ttl"`

	AlertCap      int           `yaml:"alert_cap"`
	AlertTTL      time.Duration `yaml:"alert_ttl"`
	AlertCooldown time.Duration `yaml:"alert_cooldown"`

	// ActiveWindow клиент считается активным, если обновлялся за это время
	ActiveWindow time.Duration `yaml:"active_window"`

	// LinkCapacity пропускная способность канала клиента, байт/с
	LinkCapacity float64 `yaml:"link_capacity"`
}

// DefaultConfig returns the default monitor settings
func DefaultConfig() Config {
	return Config{
		Weights:   Weights{Latency: 0.35, PacketLoss: 0.25, Jitter: 0.20, Stability: 0.20},
		Latency:   Ladder{Excellent: 50, Good: 100, Poor: 200},
		Jitter:    Ladder{Excellent: 10, Good: 30, Poor: 50},
		Stability: Ladder{Excellent: 0.95, Good: 0.8, Poor: 0.5},

		FallbackLatencyMs:  200,
		FallbackPacketLoss: 0.10,
		FallbackStability:  0.5,
		MaxDisconnects:     3,
		DisconnectWindow:   5 * time.Minute,

		LatencyWindow:   200,
		LossWindow:      50,
		BandwidthWindow: 1000,
		JitterSamples:   20,
		WindowTTL:       10 * time.Minute,
		MetricsTTL:      time.Hour,
		ThresholdsTTL:   5 * time.Minute,

		AlertCap:      1000,
		AlertTTL:      24 * time.Hour,
		AlertCooldown: time.Minute,

		ActiveWindow: 2 * time.Minute,
		LinkCapacity: 1_250_000,
	}
}

// Validate checks the weights and the ladders
func (c Config) Validate() error {
	if math.Abs(c.Weights.Sum()-1) > weightTolerance {
		return fmt.Errorf("%w: got %.3f", ErrInvalidWeights, c.Weights.Sum())
	}
	for _, w := range []float64{c.Weights.Latency, c.Weights.PacketLoss, c.Weights.Jitter, c.Weights.Stability} {
		if w < 0 {
			return fmt.Errorf("%w: negative weight %.3f", ErrInvalidWeights, w)
		}
	}

	if !(c.Latency.Excellent < c.Latency.Good && c.Latency.Good < c.Latency.Poor) {
		return errors.New("latency ladder must be strictly increasing")
	}
	if !(c.Jitter.Excellent < c.Jitter.Good && c.Jitter.Good < c.Jitter.Poor) {
		return errors.New("jitter ladder must be strictly increasing")
	}
	if !(c.Stability.Excellent > c.Stability.Good && c.Stability.Good > c.Stability.Poor && c.Stability.Poor > 0) {
		return errors.New("stability ladder must be strictly decreasing and positive")
	}
	if c.LatencyWindow <= 0 || c.LossWindow <= 0 || c.BandwidthWindow <= 0 || c.JitterSamples < 2 {
		return errors.New("window sizes must be positive")
	}
	if c.AlertCap <= 0 {
		return errors.New("alert cap must be positive")
	}
	return nil
}
