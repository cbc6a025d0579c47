package dashboard

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/urbanpulse/urbanpulse/internal/log"
	"github.com/urbanpulse/urbanpulse/internal/pulse"
	"github.com/urbanpulse/urbanpulse/pkg/responseformat"
)

// Handlers contains all HTTP handlers for the dashboard REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

// GetReadings handles requests for the historical table
func (h *Handlers) GetReadings(w http.ResponseWriter, req *http.Request) {
	count, err := h.intParam(req, "count", h.controller.pipeline.Defaults.Count)
	if err != nil {
		h.formatter.WriteError(w, req, http.StatusBadRequest, err.Error())
		return
	}
	intervalMinutes, err := h.intParam(req, "interval", h.controller.pipeline.Defaults.IntervalMinutes)
	if err != nil {
		h.formatter.WriteError(w, req, http.StatusBadRequest, err.Error())
		return
	}

	series, err := h.controller.pipeline.Historical(count, intervalMinutes)
	if err != nil {
		h.writePipelineError(w, req, err)
		return
	}

	headers := map[string]string{
		"Cache-Control": fmt.Sprintf("max-age=%d", int(h.controller.cacheTTL.Seconds())),
	}
	if err := h.formatter.WriteResponse(w, req, transformReadings(series), headers); err != nil {
		log.Errorf("error encoding readings response: %v", err)
	}
}

// GetLatest handles requests for the newest reading
func (h *Handlers) GetLatest(w http.ResponseWriter, req *http.Request) {
	defaults := h.controller.pipeline.Defaults
	series, err := h.controller.pipeline.Historical(defaults.Count, defaults.IntervalMinutes)
	if err != nil {
		h.writePipelineError(w, req, err)
		return
	}

	latest := series.Latest()
	row := &ReadingRow{
		Timestamp:      latest.Time.UnixMilli(),
		TrafficDensity: latest.TrafficDensity,
		PM25:           latest.AirQuality,
	}
	if err := h.formatter.WriteResponse(w, req, row, nil); err != nil {
		log.Errorf("error encoding latest reading: %v", err)
	}
}

// GetForecast handles requests for the forecast table. The latest observed
// value is taken from the same cached series the readings endpoint serves,
// so the two charts stay aligned.
func (h *Handlers) GetForecast(w http.ResponseWriter, req *http.Request) {
	defaults := h.controller.pipeline.Defaults

	metric := mux.Vars(req)["metric"]
	if metric != "traffic" && metric != "pm25" {
		h.formatter.WriteError(w, req, http.StatusBadRequest, fmt.Sprintf("unknown metric: %s", metric))
		return
	}

	steps, err := h.intParam(req, "steps", defaults.Steps)
	if err != nil {
		h.formatter.WriteError(w, req, http.StatusBadRequest, err.Error())
		return
	}
	growthFactor, err := h.floatParam(req, "growth", defaults.GrowthFactor)
	if err != nil {
		h.formatter.WriteError(w, req, http.StatusBadRequest, err.Error())
		return
	}

	series, err := h.controller.pipeline.Historical(defaults.Count, defaults.IntervalMinutes)
	if err != nil {
		h.writePipelineError(w, req, err)
		return
	}

	latest := series.Latest()
	latestValue := latest.TrafficDensity
	if metric == "pm25" {
		latestValue = latest.AirQuality
	}

	forecast, err := h.controller.pipeline.Forecaster.Forecast(latestValue, steps, defaults.IntervalMinutes, growthFactor)
	if err != nil {
		h.writePipelineError(w, req, err)
		return
	}

	response := &ForecastResponse{
		Metric:       metric,
		LatestValue:  latestValue,
		GrowthFactor: growthFactor,
		Rows:         transformForecast(forecast),
	}
	if err := h.formatter.WriteResponse(w, req, response, nil); err != nil {
		log.Errorf("error encoding forecast response: %v", err)
	}
}

// GetScenario handles requests for the what-if simulation table
func (h *Handlers) GetScenario(w http.ResponseWriter, req *http.Request) {
	defaults := h.controller.pipeline.Defaults

	signalCycle, err := h.floatParam(req, "signal_cycle", defaults.SignalCycleSeconds)
	if err != nil {
		h.formatter.WriteError(w, req, http.StatusBadRequest, err.Error())
		return
	}
	greenZone, err := h.floatParam(req, "green_zone", defaults.GreenZoneEffectPct)
	if err != nil {
		h.formatter.WriteError(w, req, http.StatusBadRequest, err.Error())
		return
	}

	series, err := h.controller.pipeline.Historical(defaults.Count, defaults.IntervalMinutes)
	if err != nil {
		h.writePipelineError(w, req, err)
		return
	}

	sim, err := pulse.Simulate(series, pulse.ScenarioParams{
		SignalCycleSeconds: signalCycle,
		GreenZoneEffectPct: greenZone,
	})
	if err != nil {
		h.writePipelineError(w, req, err)
		return
	}

	response := &ScenarioResponse{
		SignalCycleSeconds: signalCycle,
		GreenZoneEffectPct: greenZone,
		Rows:               transformScenario(sim),
	}
	if err := h.formatter.WriteResponse(w, req, response, nil); err != nil {
		log.Errorf("error encoding scenario response: %v", err)
	}
}

// writePipelineError maps pipeline errors to HTTP statuses
func (h *Handlers) writePipelineError(w http.ResponseWriter, req *http.Request, err error) {
	if errors.Is(err, pulse.ErrInvalidParameter) {
		h.formatter.WriteError(w, req, http.StatusBadRequest, err.Error())
		return
	}
	log.Errorf("pipeline error: %v", err)
	h.formatter.WriteError(w, req, http.StatusInternalServerError, "internal error")
}

func (h *Handlers) intParam(req *http.Request, name string, fallback int) (int, error) {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter: %q", name, raw)
	}
	return v, nil
}

func (h *Handlers) floatParam(req *http.Request, name string, fallback float64) (float64, error) {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter: %q", name, raw)
	}
	return v, nil
}
