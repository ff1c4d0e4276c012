package quality

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/deltasync/internal/models"
)

func TestLadderScores(t *testing.T) {
	latency := DefaultConfig().Latency
	stability := DefaultConfig().Stability

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{name: "latency excellent", got: lowerIsBetter(45, latency), want: 100},
		{name: "latency excellent boundary", got: lowerIsBetter(50, latency), want: 100},
		{name: "latency mid good", got: lowerIsBetter(75, latency), want: 90},
		{name: "latency good boundary", got: lowerIsBetter(100, latency), want: 80},
		{name: "latency mid poor", got: lowerIsBetter(150, latency), want: 60},
		{name: "latency poor boundary", got: lowerIsBetter(200, latency), want: 40},
		{name: "latency beyond poor", got: lowerIsBetter(250, latency), want: 30},
		{name: "latency far beyond poor", got: lowerIsBetter(5000, latency), want: 0},
		{name: "stability perfect", got: higherIsBetter(1, stability), want: 100},
		{name: "stability good boundary", got: higherIsBetter(0.8, stability), want: 80},
		{name: "stability poor boundary", got: higherIsBetter(0.5, stability), want: 40},
		{name: "stability zero", got: higherIsBetter(0, stability), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.got, 1e-9)
		})
	}
}

func TestPacketLossScore(t *testing.T) {
	assert.Equal(t, 100.0, PacketLossScore(0))
	assert.InDelta(t, 90.0, PacketLossScore(0.005), 1e-9)
	assert.InDelta(t, 0.0, PacketLossScore(0.05), 1e-9)
	assert.Equal(t, 0.0, PacketLossScore(1))
}

func TestStability(t *testing.T) {
	assert.Equal(t, 1.0, Stability(0, 0))
	assert.InDelta(t, 0.9, Stability(1, 10), 1e-9)
	// меньше минуты аптайма считается одной минутой
	assert.Equal(t, 0.0, Stability(2, 0.5))
	assert.Equal(t, 0.0, Stability(100, 10))
}

func TestJitter(t *testing.T) {
	assert.Equal(t, 0.0, Jitter(nil))
	assert.Equal(t, 0.0, Jitter([]float64{42}))
	assert.Equal(t, 0.0, Jitter([]float64{45, 45, 45, 45}))
	// разности одинаковы - джиттер нулевой
	assert.Equal(t, 0.0, Jitter([]float64{10, 20, 10, 20}))
	// разности 10 и 20 - стандартное отклонение 5
	assert.InDelta(t, 5.0, Jitter([]float64{0, 10, 30}), 1e-9)
}

func TestScore_Bounds(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		latency := rng.Float64() * 2000
		loss := rng.Float64()
		jitter := rng.Float64() * 500
		stability := rng.Float64()

		score := cfg.Score(latency, loss, jitter, stability)
		require.GreaterOrEqual(t, score, 0.0)
		require.LessOrEqual(t, score, 100.0)
	}

	assert.InDelta(t, 100.0, cfg.Score(10, 0, 0, 1), 1e-9)
	assert.InDelta(t, 0.0, cfg.Score(10000, 1, 10000, 0), 1e-9)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{
			name:   "within tolerance",
			mutate: func(c *Config) { c.Weights.Latency = 0.355 },
		},
		{
			name:    "sum too large",
			mutate:  func(c *Config) { c.Weights.Latency = 0.5 },
			wantErr: ErrInvalidWeights,
		},
		{
			name:    "negative weight",
			mutate:  func(c *Config) { c.Weights = Weights{Latency: 1.2, PacketLoss: -0.2} },
			wantErr: ErrInvalidWeights,
		},
		{
			name:    "unordered ladder",
			mutate:  func(c *Config) { c.Latency.Good = 300 },
			wantErr: errors.New("ladder"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			switch {
			case tt.wantErr == nil:
				assert.NoError(t, err)
			case errors.Is(tt.wantErr, ErrInvalidWeights):
				assert.ErrorIs(t, err, ErrInvalidWeights)
			default:
				assert.Error(t, err)
			}
		})
	}
}

func TestConfig_AdaptiveThresholds(t *testing.T) {
	cfg := DefaultConfig()
	now := time.UnixMilli(1_700_000_000_000)

	tests := []struct {
		name         string
		score        float64
		histAvg      float64
		wantLatency  float64
		wantFallback float64
		wantPing     int64
	}{
		{name: "no score yet", score: -1, histAvg: 0, wantLatency: 50, wantFallback: 60, wantPing: 30_000},
		{name: "excellent", score: 95, histAvg: 30, wantLatency: 50, wantFallback: 60, wantPing: 15_000},
		{name: "average", score: 70, histAvg: 100, wantLatency: 120, wantFallback: 60, wantPing: 30_000},
		{name: "very poor", score: 30, histAvg: 400, wantLatency: 480, wantFallback: 70, wantPing: 60_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := cfg.AdaptiveThresholds("c1", tt.score, tt.histAvg, now)
			assert.Equal(t, "c1", th.ClientID)
			assert.InDelta(t, tt.wantLatency, th.LatencyThreshold, 1e-9)
			assert.Equal(t, tt.wantFallback, th.FallbackScore)
			assert.Equal(t, tt.wantFallback+15, th.RecoveryScore)
			assert.Equal(t, tt.wantPing, th.PingIntervalMs)
			assert.GreaterOrEqual(t, th.PingIntervalMs, th.MinPingIntervalMs)
			assert.LessOrEqual(t, th.PingIntervalMs, th.MaxPingIntervalMs)
			assert.Equal(t, now.UnixMilli(), th.ComputedAt)
		})
	}
}

func TestConfig_FallbackReasons(t *testing.T) {
	cfg := DefaultConfig()
	th := cfg.AdaptiveThresholds("c1", 75, 45, time.Now())

	tests := []struct {
		name        string
		metrics     models.ConnectionQualityMetrics
		disconnects int
		wantTrip    bool
		wantSevere  bool
	}{
		{
			name:    "good score no symptoms",
			metrics: models.ConnectionQualityMetrics{QualityScore: 75, AvgLatency: 80, ConnectionStability: 1},
		},
		{
			name:       "latency only",
			metrics:    models.ConnectionQualityMetrics{QualityScore: 75, AvgLatency: 250, ConnectionStability: 1},
			wantTrip:   true,
			wantSevere: true,
		},
		{
			name:     "score below threshold",
			metrics:  models.ConnectionQualityMetrics{QualityScore: 55, AvgLatency: 80, ConnectionStability: 1},
			wantTrip: true,
		},
		{
			name:       "packet loss",
			metrics:    models.ConnectionQualityMetrics{QualityScore: 80, PacketLoss: 0.11, ConnectionStability: 1},
			wantTrip:   true,
			wantSevere: true,
		},
		{
			name:       "unstable",
			metrics:    models.ConnectionQualityMetrics{QualityScore: 80, ConnectionStability: 0.4},
			wantTrip:   true,
			wantSevere: true,
		},
		{
			name:        "flapping",
			metrics:     models.ConnectionQualityMetrics{QualityScore: 90, ConnectionStability: 1},
			disconnects: 4,
			wantTrip:    true,
			wantSevere:  true,
		},
		{
			name:        "three disconnects tolerated",
			metrics:     models.ConnectionQualityMetrics{QualityScore: 90, ConnectionStability: 1},
			disconnects: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reasons, severe := cfg.FallbackReasons(tt.metrics, th, tt.disconnects)
			assert.Equal(t, tt.wantTrip, len(reasons) > 0, "reasons: %v", reasons)
			assert.Equal(t, tt.wantSevere, severe)
		})
	}
}
