package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// YAML-tagged mirror structs for unmarshalling the config file
type siteYAML struct {
	PageTitle string `yaml:"page_title,omitempty"`
}

type generatorYAML struct {
	Count           int   `yaml:"count,omitempty"`
	IntervalMinutes int   `yaml:"interval_minutes,omitempty"`
	Seed            int64 `yaml:"seed,omitempty"`
	CacheTTLSeconds int   `yaml:"cache_ttl_seconds,omitempty"`
}

type forecastYAML struct {
	Steps        int     `yaml:"steps,omitempty"`
	GrowthFactor float64 `yaml:"growth_factor,omitempty"`
}

type scenarioYAML struct {
	SignalCycleSeconds float64  `yaml:"signal_cycle_seconds,omitempty"`
	GreenZoneEffectPct *float64 `yaml:"green_zone_effect_pct,omitempty"`
}

type dashboardYAML struct {
	ListenAddr  string `yaml:"listen_addr,omitempty"`
	Port        int    `yaml:"port,omitempty"`
	TLSCertPath string `yaml:"cert,omitempty"`
	TLSKeyPath  string `yaml:"key,omitempty"`
}

type prewarmYAML struct {
	Schedule string `yaml:"schedule,omitempty"`
}

type controllerYAML struct {
	Type      string         `yaml:"type"`
	Dashboard *dashboardYAML `yaml:"dashboard,omitempty"`
	Prewarm   *prewarmYAML   `yaml:"prewarm,omitempty"`
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	var yamlConfig struct {
		Site        siteYAML         `yaml:"site,omitempty"`
		Generator   generatorYAML    `yaml:"generator,omitempty"`
		Forecast    forecastYAML     `yaml:"forecast,omitempty"`
		Scenario    scenarioYAML     `yaml:"scenario,omitempty"`
		Controllers []controllerYAML `yaml:"controllers,omitempty"`
	}

	err = yaml.Unmarshal(cfgFile, &yamlConfig)
	if err != nil {
		return nil, err
	}

	// Convert to our internal format
	config := &ConfigData{
		Site: SiteData{
			PageTitle: yamlConfig.Site.PageTitle,
		},
		Generator: GeneratorData{
			Count:           yamlConfig.Generator.Count,
			IntervalMinutes: yamlConfig.Generator.IntervalMinutes,
			Seed:            yamlConfig.Generator.Seed,
			CacheTTLSeconds: yamlConfig.Generator.CacheTTLSeconds,
		},
		Forecast: ForecastData{
			Steps:        yamlConfig.Forecast.Steps,
			GrowthFactor: yamlConfig.Forecast.GrowthFactor,
		},
		Scenario: ScenarioData{
			SignalCycleSeconds: yamlConfig.Scenario.SignalCycleSeconds,
			GreenZoneEffectPct: yamlConfig.Scenario.GreenZoneEffectPct,
		},
		Controllers: make([]ControllerData, len(yamlConfig.Controllers)),
	}

	for i, controller := range yamlConfig.Controllers {
		config.Controllers[i] = ControllerData{
			Type: controller.Type,
		}

		if controller.Dashboard != nil {
			config.Controllers[i].Dashboard = &DashboardData{
				ListenAddr:  controller.Dashboard.ListenAddr,
				Port:        controller.Dashboard.Port,
				TLSCertPath: controller.Dashboard.TLSCertPath,
				TLSKeyPath:  controller.Dashboard.TLSKeyPath,
			}
		}

		if controller.Prewarm != nil {
			config.Controllers[i].Prewarm = &PrewarmData{
				Schedule: controller.Prewarm.Schedule,
			}
		}
	}

	y.config = config
	return config, nil
}

// GetControllers returns controller configurations
func (y *YAMLProvider) GetControllers() ([]ControllerData, error) {
	if y.config == nil {
		if _, err := y.LoadConfig(); err != nil {
			return nil, err
		}
	}
	return y.config.Controllers, nil
}

// IsReadOnly returns true: YAML configuration is never written back
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for file-backed configuration
func (y *YAMLProvider) Close() error {
	return nil
}
