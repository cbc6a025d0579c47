package dashboard

// ReadingRow is a historical table row for JSON/MessagePack output
type ReadingRow struct {
	Timestamp      int64   `json:"ts"`
	TrafficDensity float64 `json:"traffic"`
	PM25           float64 `json:"pm25"`
}

// ForecastRow is a forecast table row for JSON/MessagePack output
type ForecastRow struct {
	Timestamp int64   `json:"ts"`
	Predicted float64 `json:"predicted"`
}

// ScenarioRow is a simulated table row carrying both the base and the
// derived columns
type ScenarioRow struct {
	Timestamp        int64   `json:"ts"`
	TrafficDensity   float64 `json:"traffic"`
	PM25             float64 `json:"pm25"`
	SimulatedTraffic float64 `json:"sim_traffic"`
	SimulatedPM25    float64 `json:"sim_pm25"`
}

// ForecastResponse wraps forecast rows with the parameters they were
// computed from
type ForecastResponse struct {
	Metric       string         `json:"metric"`
	LatestValue  float64        `json:"latest_value"`
	GrowthFactor float64        `json:"growth_factor"`
	Rows         []*ForecastRow `json:"rows"`
}

// ScenarioResponse wraps scenario rows with the applied parameters
type ScenarioResponse struct {
	SignalCycleSeconds float64        `json:"signal_cycle_seconds"`
	GreenZoneEffectPct float64        `json:"green_zone_effect_pct"`
	Rows               []*ScenarioRow `json:"rows"`
}
