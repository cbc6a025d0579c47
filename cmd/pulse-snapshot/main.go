// Command pulse-snapshot runs the full pipeline once and prints the three
// tables as JSON. Useful for inspecting generated data without standing up
// the dashboard server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/urbanpulse/urbanpulse/internal/pulse"
)

type snapshot struct {
	Readings []reading     `json:"readings"`
	Traffic  []prediction  `json:"traffic_forecast"`
	PM25     []prediction  `json:"pm25_forecast"`
	Scenario []scenarioRow `json:"scenario"`
}

type reading struct {
	Time    string  `json:"time"`
	Traffic float64 `json:"traffic"`
	PM25    float64 `json:"pm25"`
}

type prediction struct {
	Time      string  `json:"time"`
	Predicted float64 `json:"predicted"`
}

type scenarioRow struct {
	Time             string  `json:"time"`
	SimulatedTraffic float64 `json:"sim_traffic"`
	SimulatedPM25    float64 `json:"sim_pm25"`
}

func main() {
	count := flag.Int("count", pulse.DefaultCount, "Number of historical rows to generate")
	interval := flag.Int("interval", pulse.DefaultIntervalMinutes, "Minutes between rows")
	steps := flag.Int("steps", pulse.DefaultSteps, "Number of forecast steps")
	growth := flag.Float64("growth", pulse.DefaultGrowthFactor, "Forecast growth factor per step")
	signalCycle := flag.Float64("signal-cycle", pulse.DefaultSignalCycleSeconds, "Signal cycle seconds for the traffic scenario")
	greenZone := flag.Float64("green-zone", pulse.DefaultGreenZoneEffectPct, "Green zone effectiveness percent for the air quality scenario")
	seed := flag.Int64("seed", 0, "Random seed; 0 selects a time-based seed")
	flag.Parse()

	pipeline := pulse.NewPipeline(*seed, 0, pulse.Defaults{}, nil)

	series, err := pipeline.Generator.Generate(*count, *interval)
	if err != nil {
		fatalf("generate: %v", err)
	}

	latest := series.Latest()
	trafficForecast, err := pipeline.Forecaster.Forecast(latest.TrafficDensity, *steps, *interval, *growth)
	if err != nil {
		fatalf("traffic forecast: %v", err)
	}
	pm25Forecast, err := pipeline.Forecaster.Forecast(latest.AirQuality, *steps, *interval, *growth)
	if err != nil {
		fatalf("pm25 forecast: %v", err)
	}

	sim, err := pulse.Simulate(series, pulse.ScenarioParams{
		SignalCycleSeconds: *signalCycle,
		GreenZoneEffectPct: *greenZone,
	})
	if err != nil {
		fatalf("simulate: %v", err)
	}

	out := snapshot{}
	for i := 0; i < series.Len(); i++ {
		out.Readings = append(out.Readings, reading{
			Time:    series.Times[i].Format("2006-01-02 15:04"),
			Traffic: series.TrafficDensity[i],
			PM25:    series.AirQuality[i],
		})
	}
	for k := 0; k < trafficForecast.Len(); k++ {
		out.Traffic = append(out.Traffic, prediction{
			Time:      trafficForecast.Times[k].Format("2006-01-02 15:04"),
			Predicted: trafficForecast.Predicted[k],
		})
		out.PM25 = append(out.PM25, prediction{
			Time:      pm25Forecast.Times[k].Format("2006-01-02 15:04"),
			Predicted: pm25Forecast.Predicted[k],
		})
	}
	for i := 0; i < sim.Len(); i++ {
		out.Scenario = append(out.Scenario, scenarioRow{
			Time:             sim.Times[i].Format("2006-01-02 15:04"),
			SimulatedTraffic: sim.SimulatedTraffic[i],
			SimulatedPM25:    sim.SimulatedAirQuality[i],
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		fatalf("encode: %v", err)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
