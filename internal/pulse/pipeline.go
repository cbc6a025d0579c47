package pulse

import (
	"time"

	"golang.org/x/exp/rand"
)

// Defaults carries the parameter fallbacks the serving surface applies when
// a request leaves a knob unset. Loaded from configuration.
type Defaults struct {
	Count              int
	IntervalMinutes    int
	Steps              int
	GrowthFactor       float64
	SignalCycleSeconds float64
	GreenZoneEffectPct float64
}

// WithFallbacks fills any zero field with the package defaults.
// GreenZoneEffectPct is left untouched: zero is a valid slider position
// ([0,50]), so unset-vs-zero is resolved by whoever loads configuration,
// not here.
func (d Defaults) WithFallbacks() Defaults {
	if d.Count == 0 {
		d.Count = DefaultCount
	}
	if d.IntervalMinutes == 0 {
		d.IntervalMinutes = DefaultIntervalMinutes
	}
	if d.Steps == 0 {
		d.Steps = DefaultSteps
	}
	if d.GrowthFactor == 0 {
		d.GrowthFactor = DefaultGrowthFactor
	}
	if d.SignalCycleSeconds == 0 {
		d.SignalCycleSeconds = DefaultSignalCycleSeconds
	}
	return d
}

// Pipeline bundles the three pipeline stages and the series cache behind
// one handle, shared by every controller that serves or pre-warms tables.
type Pipeline struct {
	Generator  *Generator
	Forecaster *Forecaster
	Cache      *SeriesCache
	Defaults   Defaults
}

// NewPipeline wires the stages together. A seed of 0 selects a time-based
// seed; a nil clock falls back to time.Now for every stage.
func NewPipeline(seed int64, cacheTTL time.Duration, defaults Defaults, clock Clock) *Pipeline {
	var src rand.Source
	if seed != 0 {
		src = rand.NewSource(uint64(seed))
	}

	return &Pipeline{
		Generator:  NewGenerator(src, clock),
		Forecaster: NewForecaster(clock),
		Cache:      NewSeriesCache(cacheTTL, clock),
		Defaults:   defaults.WithFallbacks(),
	}
}

// Historical returns the (possibly cached) historical series for the
// parameters.
func (p *Pipeline) Historical(count, intervalMinutes int) (*HistoricalSeries, error) {
	return p.Cache.GetOrGenerate(p.Generator, count, intervalMinutes)
}
