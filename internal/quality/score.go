package quality

import (
	"math"
)

// Границы ступеней оценки
const (
	scoreMax  = 100.0
	scoreGood = 80.0
	scorePoor = 40.0
)

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// lowerIsBetter оценивает метрику, для которой меньшее значение лучше (задержка, джиттер)
func lowerIsBetter(v float64, l Ladder) float64 {
	switch {
	case v <= l.Excellent:
		return scoreMax
	case v <= l.Good:
		return scoreMax - (scoreMax-scoreGood)*(v-l.Excellent)/(l.Good-l.Excellent)
	case v <= l.Poor:
		return scoreGood - (scoreGood-scorePoor)*(v-l.Good)/(l.Poor-l.Good)
	default:
		// линейный штраф: при 2*Poor оценка падает до нуля
		return clamp(scorePoor-scorePoor*(v-l.Poor)/l.Poor, 0, scoreMax)
	}
}

// higherIsBetter оценивает метрику, для которой большее значение лучше (стабильность)
func higherIsBetter(v float64, l Ladder) float64 {
	switch {
	case v >= l.Excellent:
		return scoreMax
	case v >= l.Good:
		return scoreMax - (scoreMax-scoreGood)*(l.Excellent-v)/(l.Excellent-l.Good)
	case v >= l.Poor:
		return scoreGood - (scoreGood-scorePoor)*(l.Good-v)/(l.Good-l.Poor)
	default:
		return clamp(scorePoor-scorePoor*(l.Poor-v)/l.Poor, 0, scoreMax)
	}
}

// PacketLossScore returns clamp(100 - rate*2000)
func PacketLossScore(rate float64) float64 {
	return clamp(scoreMax-rate*2000, 0, scoreMax)
}

// Stability returns max(0, 1 - reconnections/max(1, uptimeMinutes))
func Stability(reconnections int64, uptimeMinutes float64) float64 {
	return math.Max(0, 1-float64(reconnections)/math.Max(1, uptimeMinutes))
}

// Score computes the weighted quality score in [0, 100]
func (c Config) Score(avgLatency, packetLoss, jitter, stability float64) float64 {
	score := c.Weights.Latency*lowerIsBetter(avgLatency, c.Latency) +
		c.Weights.PacketLoss*PacketLossScore(packetLoss) +
		c.Weights.Jitter*lowerIsBetter(jitter, c.Jitter) +
		c.Weights.Stability*higherIsBetter(stability, c.Stability)
	if math.IsNaN(score) {
		return 0
	}
	return clamp(score, 0, scoreMax)
}

// Jitter returns the standard deviation of the absolute differences between
// consecutive samples. samples are ordered oldest first.
func Jitter(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}

	diffs := make([]float64, 0, len(samples)-1)
	var sum float64
	for i := 1; i < len(samples); i++ {
		d := math.Abs(samples[i] - samples[i-1])
		diffs = append(diffs, d)
		sum += d
	}

	mean := sum / float64(len(diffs))
	var variance float64
	for _, d := range diffs {
		variance += (d - mean) * (d - mean)
	}
	return math.Sqrt(variance / float64(len(diffs)))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
