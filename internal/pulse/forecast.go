package pulse

import (
	"math"
	"time"
)

// Forecast defaults: one hour ahead at five-minute resolution with 5%
// compounding growth per step.
const (
	DefaultSteps        = 12
	DefaultGrowthFactor = 1.05
)

// Forecaster extrapolates a naive exponential trend from a single observed
// value. Deterministic: no smoothing, no error term, no bounds.
type Forecaster struct {
	clock Clock
}

// NewForecaster creates a forecaster. A nil clock falls back to time.Now.
func NewForecaster(clock Clock) *Forecaster {
	if clock == nil {
		clock = time.Now
	}
	return &Forecaster{clock: clock}
}

// Forecast returns steps rows at now + intervalMinutes*k for k = 1..steps,
// with value latestValue * growthFactor^k. Forecast values are not clamped
// and may leave the historical bounds.
func (f *Forecaster) Forecast(latestValue float64, steps, intervalMinutes int, growthFactor float64) (*ForecastSeries, error) {
	if steps < 1 {
		return nil, invalidParamf("steps must be at least 1, got %d", steps)
	}
	if intervalMinutes < 1 {
		return nil, invalidParamf("interval minutes must be at least 1, got %d", intervalMinutes)
	}
	if math.IsNaN(latestValue) || math.IsInf(latestValue, 0) {
		return nil, invalidParamf("latest value must be finite, got %v", latestValue)
	}
	if math.IsNaN(growthFactor) || math.IsInf(growthFactor, 0) || growthFactor <= 0 {
		return nil, invalidParamf("growth factor must be positive and finite, got %v", growthFactor)
	}

	now := f.clock()
	times := make([]time.Time, steps)
	predicted := make([]float64, steps)
	value := latestValue
	for k := 0; k < steps; k++ {
		times[k] = now.Add(time.Duration(intervalMinutes*(k+1)) * time.Minute)
		value *= growthFactor
		predicted[k] = value
	}

	return &ForecastSeries{Times: times, Predicted: predicted}, nil
}
