package config

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetControllers() ([]ControllerData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Site        SiteData         `json:"site,omitempty"`
	Generator   GeneratorData    `json:"generator,omitempty"`
	Forecast    ForecastData     `json:"forecast,omitempty"`
	Scenario    ScenarioData     `json:"scenario,omitempty"`
	Controllers []ControllerData `json:"controllers,omitempty"`
}

// SiteData holds dashboard presentation metadata passed through to clients
type SiteData struct {
	PageTitle string `json:"page_title,omitempty"`
}

// GeneratorData holds parameters for synthetic series generation
type GeneratorData struct {
	Count           int   `json:"count,omitempty"`
	IntervalMinutes int   `json:"interval_minutes,omitempty"`
	Seed            int64 `json:"seed,omitempty"`
	CacheTTLSeconds int   `json:"cache_ttl_seconds,omitempty"`
}

// ForecastData holds default parameters for trend forecasting
type ForecastData struct {
	Steps        int     `json:"steps,omitempty"`
	GrowthFactor float64 `json:"growth_factor,omitempty"`
}

// ScenarioData holds default slider positions for scenario simulation.
// GreenZoneEffectPct is a pointer because zero is a valid slider position
// and must be distinguishable from an unset field.
type ScenarioData struct {
	SignalCycleSeconds float64  `json:"signal_cycle_seconds,omitempty"`
	GreenZoneEffectPct *float64 `json:"green_zone_effect_pct,omitempty"`
}

// ControllerData holds the configuration for various controller backends
type ControllerData struct {
	Type      string         `json:"type,omitempty"`
	Dashboard *DashboardData `json:"dashboard,omitempty"`
	Prewarm   *PrewarmData   `json:"prewarm,omitempty"`
}

// DashboardData holds the REST dashboard controller configuration
type DashboardData struct {
	ListenAddr  string `json:"listen_addr,omitempty"`
	Port        int    `json:"port,omitempty"`
	TLSCertPath string `json:"cert,omitempty"`
	TLSKeyPath  string `json:"key,omitempty"`
}

// PrewarmData holds the cache pre-warm controller configuration
type PrewarmData struct {
	// Schedule is a cron expression; empty means refresh once at startup only
	Schedule string `json:"schedule,omitempty"`
}
