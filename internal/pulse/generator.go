package pulse

import (
	"math"
	"sort"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution parameters and hard bounds for the two synthetic streams.
// Out-of-range draws are clamped, not rejected.
const (
	TrafficMean   = 50.0
	TrafficStdDev = 10.0
	TrafficMin    = 20.0
	TrafficMax    = 100.0

	AirQualityMean   = 35.0
	AirQualityStdDev = 8.0
	AirQualityMin    = 10.0
	AirQualityMax    = 80.0

	DefaultCount           = 100
	DefaultIntervalMinutes = 5
)

// Generator produces synthetic historical series. Randomness flows through
// the supplied source so generated tables are reproducible under a fixed
// seed.
type Generator struct {
	traffic    distuv.Normal
	airQuality distuv.Normal
	clock      Clock
}

// NewGenerator creates a generator drawing from the given random source.
// A nil source falls back to a time-seeded one; a nil clock falls back to
// time.Now.
func NewGenerator(src rand.Source, clock Clock) *Generator {
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	if clock == nil {
		clock = time.Now
	}
	return &Generator{
		traffic:    distuv.Normal{Mu: TrafficMean, Sigma: TrafficStdDev, Src: src},
		airQuality: distuv.Normal{Mu: AirQualityMean, Sigma: AirQualityStdDev, Src: src},
		clock:      clock,
	}
}

// Generate produces count rows spaced intervalMinutes apart, stepping back
// from the current clock time and sorted oldest-first. Traffic density is
// drawn from Normal(50,10) clamped to [20,100]; air quality from
// Normal(35,8) clamped to [10,80].
func (g *Generator) Generate(count, intervalMinutes int) (*HistoricalSeries, error) {
	if count <= 0 {
		return nil, invalidParamf("count must be positive, got %d", count)
	}
	if intervalMinutes <= 0 {
		return nil, invalidParamf("interval minutes must be positive, got %d", intervalMinutes)
	}

	now := g.clock()
	times := make([]time.Time, count)
	for i := range times {
		times[i] = now.Add(-time.Duration(intervalMinutes*i) * time.Minute)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	traffic := make([]float64, count)
	airQuality := make([]float64, count)
	for i := 0; i < count; i++ {
		traffic[i] = clamp(g.traffic.Rand(), TrafficMin, TrafficMax)
		airQuality[i] = clamp(g.airQuality.Rand(), AirQualityMin, AirQualityMax)
	}

	return &HistoricalSeries{
		Times:          times,
		TrafficDensity: traffic,
		AirQuality:     airQuality,
	}, nil
}

func clamp(v, min, max float64) float64 {
	return math.Min(math.Max(v, min), max)
}
