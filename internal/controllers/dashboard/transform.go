package dashboard

import "github.com/urbanpulse/urbanpulse/internal/pulse"

// transformReadings converts a historical series to row slices for output
func transformReadings(series *pulse.HistoricalSeries) []*ReadingRow {
	rows := make([]*ReadingRow, 0, series.Len())
	for i := 0; i < series.Len(); i++ {
		rows = append(rows, &ReadingRow{
			Timestamp:      series.Times[i].UnixMilli(),
			TrafficDensity: series.TrafficDensity[i],
			PM25:           series.AirQuality[i],
		})
	}
	return rows
}

// transformForecast converts a forecast series to row slices for output
func transformForecast(forecast *pulse.ForecastSeries) []*ForecastRow {
	rows := make([]*ForecastRow, 0, forecast.Len())
	for k := 0; k < forecast.Len(); k++ {
		rows = append(rows, &ForecastRow{
			Timestamp: forecast.Times[k].UnixMilli(),
			Predicted: forecast.Predicted[k],
		})
	}
	return rows
}

// transformScenario converts a simulated series to row slices for output
func transformScenario(sim *pulse.SimulatedSeries) []*ScenarioRow {
	rows := make([]*ScenarioRow, 0, sim.Len())
	for i := 0; i < sim.Len(); i++ {
		rows = append(rows, &ScenarioRow{
			Timestamp:        sim.Times[i].UnixMilli(),
			TrafficDensity:   sim.TrafficDensity[i],
			PM25:             sim.AirQuality[i],
			SimulatedTraffic: sim.SimulatedTraffic[i],
			SimulatedPM25:    sim.SimulatedAirQuality[i],
		})
	}
	return rows
}
