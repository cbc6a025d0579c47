// Package pulse implements the synthetic urban-sensor pipeline: series
// generation, exponential trend forecasting and scenario simulation.
// Every stage produces a new table from its inputs; nothing is mutated
// after construction.
package pulse

import "time"

// Clock supplies the current time. Injectable so tests can pin "now".
type Clock func() time.Time

// TimePoint is a single row of a historical series.
type TimePoint struct {
	Time           time.Time
	TrafficDensity float64 // vehicles/min
	AirQuality     float64 // PM2.5 µg/m³
}

// HistoricalSeries is a column-aligned table of synthetic sensor readings,
// oldest first. Index i of Times aligns with index i of both measurement
// columns.
type HistoricalSeries struct {
	Times          []time.Time
	TrafficDensity []float64
	AirQuality     []float64
}

// Len returns the number of rows in the series.
func (s *HistoricalSeries) Len() int {
	return len(s.Times)
}

// At returns row i as a TimePoint.
func (s *HistoricalSeries) At(i int) TimePoint {
	return TimePoint{
		Time:           s.Times[i],
		TrafficDensity: s.TrafficDensity[i],
		AirQuality:     s.AirQuality[i],
	}
}

// Latest returns the newest row of the series.
func (s *HistoricalSeries) Latest() TimePoint {
	return s.At(s.Len() - 1)
}

// ForecastSeries is a column-aligned table of predicted values with strictly
// increasing future timestamps.
type ForecastSeries struct {
	Times     []time.Time
	Predicted []float64
}

// Len returns the number of rows in the forecast.
func (f *ForecastSeries) Len() int {
	return len(f.Times)
}

// ScenarioParams holds the user-chosen scalars for a what-if simulation.
// Range enforcement ([30,120] cycle seconds, [0,50] percent) belongs to the
// caller's input surface, not to this package.
type ScenarioParams struct {
	SignalCycleSeconds float64
	GreenZoneEffectPct float64
}

// SimulatedSeries is a HistoricalSeries extended with the two derived
// scenario columns. It owns fresh copies of the base columns; the source
// table is never aliased.
type SimulatedSeries struct {
	HistoricalSeries
	SimulatedTraffic    []float64
	SimulatedAirQuality []float64
}
