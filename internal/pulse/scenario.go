package pulse

import (
	"math"
	"time"
)

// ReferenceCycleSeconds is the signal-cycle normalization baseline: a cycle
// of 60 seconds leaves traffic unchanged, shorter cycles amplify it.
const ReferenceCycleSeconds = 60.0

// Scenario slider defaults, matching the dashboard's initial positions.
const (
	DefaultSignalCycleSeconds = 60.0
	DefaultGreenZoneEffectPct = 10.0
)

// Simulate derives the two what-if columns from base:
//
//	simulated traffic[i]     = traffic[i] * (60 / signalCycleSeconds)
//	simulated air quality[i] = airQuality[i] * (1 - greenZoneEffectPct/100)
//
// The result carries copies of the base columns; base is never modified.
// Parameters are taken as given apart from rejecting values the formulas
// are undefined on (non-finite, zero cycle).
func Simulate(base *HistoricalSeries, params ScenarioParams) (*SimulatedSeries, error) {
	if math.IsNaN(params.SignalCycleSeconds) || math.IsInf(params.SignalCycleSeconds, 0) || params.SignalCycleSeconds == 0 {
		return nil, invalidParamf("signal cycle seconds must be finite and non-zero, got %v", params.SignalCycleSeconds)
	}
	if math.IsNaN(params.GreenZoneEffectPct) || math.IsInf(params.GreenZoneEffectPct, 0) {
		return nil, invalidParamf("green zone effect percent must be finite, got %v", params.GreenZoneEffectPct)
	}

	n := base.Len()
	trafficFactor := ReferenceCycleSeconds / params.SignalCycleSeconds
	airFactor := 1 - params.GreenZoneEffectPct/100

	sim := &SimulatedSeries{
		HistoricalSeries: HistoricalSeries{
			Times:          make([]time.Time, n),
			TrafficDensity: make([]float64, n),
			AirQuality:     make([]float64, n),
		},
		SimulatedTraffic:    make([]float64, n),
		SimulatedAirQuality: make([]float64, n),
	}
	copy(sim.Times, base.Times)
	copy(sim.TrafficDensity, base.TrafficDensity)
	copy(sim.AirQuality, base.AirQuality)

	for i := 0; i < n; i++ {
		sim.SimulatedTraffic[i] = base.TrafficDensity[i] * trafficFactor
		sim.SimulatedAirQuality[i] = base.AirQuality[i] * airFactor
	}

	return sim, nil
}
