package dashboard

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/urbanpulse/urbanpulse/internal/log"
	"github.com/urbanpulse/urbanpulse/internal/pulse"
	"github.com/urbanpulse/urbanpulse/pkg/config"
	"go.uber.org/zap"
)

type stubProvider struct {
	cfg *config.ConfigData
}

func (s *stubProvider) LoadConfig() (*config.ConfigData, error) { return s.cfg, nil }

func (s *stubProvider) GetControllers() ([]config.ControllerData, error) {
	return s.cfg.Controllers, nil
}

func (s *stubProvider) IsReadOnly() bool { return true }

func (s *stubProvider) Close() error { return nil }

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	if err := log.Init(false); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	provider := &stubProvider{cfg: &config.ConfigData{
		Site: config.SiteData{PageTitle: "UrbanPulse"},
		Generator: config.GeneratorData{
			Count:           20,
			IntervalMinutes: 5,
			Seed:            1,
			CacheTTLSeconds: 60,
		},
	}}

	clock := func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) }
	pipeline := pulse.NewPipeline(1, 60*time.Second, pulse.Defaults{Count: 20, IntervalMinutes: 5}, clock)

	var wg sync.WaitGroup
	ctrl, err := NewController(context.Background(), &wg, provider, config.DashboardData{}, pipeline, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("failed to create controller: %v", err)
	}

	return ctrl.setupRouter()
}

func doRequest(t *testing.T, router http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetReadings(t *testing.T) {
	router := testRouter(t)

	rec := doRequest(t, router, "/api/readings")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var rows []ReadingRow
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(rows) != 20 {
		t.Fatalf("expected 20 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if row.TrafficDensity < pulse.TrafficMin || row.TrafficDensity > pulse.TrafficMax {
			t.Errorf("row %d: traffic %.2f outside bounds", i, row.TrafficDensity)
		}
		if row.PM25 < pulse.AirQualityMin || row.PM25 > pulse.AirQualityMax {
			t.Errorf("row %d: pm25 %.2f outside bounds", i, row.PM25)
		}
	}
}

func TestGetReadingsParamOverride(t *testing.T) {
	router := testRouter(t)

	rec := doRequest(t, router, "/api/readings?count=7&interval=10")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var rows []ReadingRow
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(rows) != 7 {
		t.Fatalf("expected 7 rows, got %d", len(rows))
	}
}

func TestGetReadingsInvalidParams(t *testing.T) {
	router := testRouter(t)

	tests := []struct {
		name string
		url  string
	}{
		{"malformed count", "/api/readings?count=abc"},
		{"negative count", "/api/readings?count=-5"},
		{"malformed interval", "/api/readings?interval=x"},
		{"zero interval", "/api/readings?interval=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, tt.url)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestGetLatest(t *testing.T) {
	router := testRouter(t)

	rec := doRequest(t, router, "/api/latest")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var row ReadingRow
	if err := json.Unmarshal(rec.Body.Bytes(), &row); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	wantTS := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC).UnixMilli()
	if row.Timestamp != wantTS {
		t.Errorf("expected newest timestamp %d, got %d", wantTS, row.Timestamp)
	}
}

func TestGetForecast(t *testing.T) {
	router := testRouter(t)

	// Pin the latest value first so the forecast expectation is exact.
	latestRec := doRequest(t, router, "/api/latest")
	var latest ReadingRow
	if err := json.Unmarshal(latestRec.Body.Bytes(), &latest); err != nil {
		t.Fatalf("failed to decode latest: %v", err)
	}

	rec := doRequest(t, router, "/api/forecast/traffic?steps=3&growth=1.05")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp ForecastResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Metric != "traffic" {
		t.Errorf("expected metric traffic, got %s", resp.Metric)
	}
	if len(resp.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(resp.Rows))
	}

	want := resp.LatestValue
	for k, row := range resp.Rows {
		want *= 1.05
		if math.Abs(row.Predicted-want) > 1e-6 {
			t.Errorf("step %d: expected %v, got %v", k+1, want, row.Predicted)
		}
	}
}

func TestGetForecastUnknownMetric(t *testing.T) {
	router := testRouter(t)

	rec := doRequest(t, router, "/api/forecast/noise")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown metric, got %d", rec.Code)
	}
}

func TestGetForecastInvalidGrowth(t *testing.T) {
	router := testRouter(t)

	rec := doRequest(t, router, "/api/forecast/pm25?growth=-1")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for negative growth, got %d", rec.Code)
	}
}

func TestGetScenario(t *testing.T) {
	router := testRouter(t)

	rec := doRequest(t, router, "/api/scenario?signal_cycle=30&green_zone=50")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp ScenarioResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Rows) != 20 {
		t.Fatalf("expected 20 rows, got %d", len(resp.Rows))
	}

	for i, row := range resp.Rows {
		if math.Abs(row.SimulatedTraffic-row.TrafficDensity*2) > 1e-9 {
			t.Errorf("row %d: expected doubled traffic, got %v from base %v", i, row.SimulatedTraffic, row.TrafficDensity)
		}
		if math.Abs(row.SimulatedPM25-row.PM25/2) > 1e-9 {
			t.Errorf("row %d: expected halved pm25, got %v from base %v", i, row.SimulatedPM25, row.PM25)
		}
	}
}

func TestGetScenarioZeroGreenZoneDefault(t *testing.T) {
	// A configured green-zone default of 0 is a real slider position and
	// must leave air quality untouched when the request omits the param.
	router := testRouter(t)

	rec := doRequest(t, router, "/api/scenario")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp ScenarioResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.GreenZoneEffectPct != 0 {
		t.Fatalf("expected green zone effect 0, got %v", resp.GreenZoneEffectPct)
	}
	for i, row := range resp.Rows {
		if row.SimulatedPM25 != row.PM25 {
			t.Errorf("row %d: zero green zone changed pm25 from %v to %v", i, row.PM25, row.SimulatedPM25)
		}
	}
}

func TestGetScenarioZeroCycle(t *testing.T) {
	router := testRouter(t)

	rec := doRequest(t, router, "/api/scenario?signal_cycle=0")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for zero signal cycle, got %d", rec.Code)
	}
}

func TestScenarioSharesReadingsTable(t *testing.T) {
	router := testRouter(t)

	readings := doRequest(t, router, "/api/readings")
	var rows []ReadingRow
	if err := json.Unmarshal(readings.Body.Bytes(), &rows); err != nil {
		t.Fatalf("failed to decode readings: %v", err)
	}

	scenario := doRequest(t, router, "/api/scenario")
	var resp ScenarioResponse
	if err := json.Unmarshal(scenario.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode scenario: %v", err)
	}

	// Within the cache TTL both endpoints must serve the same base table.
	for i := range rows {
		if rows[i].Timestamp != resp.Rows[i].Timestamp ||
			rows[i].TrafficDensity != resp.Rows[i].TrafficDensity {
			t.Fatalf("row %d: scenario base diverged from readings table", i)
		}
	}
}
