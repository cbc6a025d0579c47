package config

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements ConfigProvider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from SQLite database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	config := &ConfigData{}

	if err := s.loadPipelineConfig(config); err != nil {
		return nil, err
	}

	controllers, err := s.GetControllers()
	if err != nil {
		return nil, fmt.Errorf("failed to load controllers: %w", err)
	}
	config.Controllers = controllers

	return config, nil
}

// loadPipelineConfig reads the single-row pipeline configuration
func (s *SQLiteProvider) loadPipelineConfig(config *ConfigData) error {
	query := `
		SELECT page_title,
		       generator_count, generator_interval_minutes, generator_seed, generator_cache_ttl_seconds,
		       forecast_steps, forecast_growth_factor,
		       scenario_signal_cycle_seconds, scenario_green_zone_effect_pct
		FROM configs
		WHERE name = 'default'
	`

	var pageTitle sql.NullString
	var count, intervalMinutes, cacheTTL, steps sql.NullInt64
	var seed sql.NullInt64
	var growthFactor, signalCycle, greenZone sql.NullFloat64

	err := s.db.QueryRow(query).Scan(
		&pageTitle,
		&count, &intervalMinutes, &seed, &cacheTTL,
		&steps, &growthFactor,
		&signalCycle, &greenZone,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			// No pipeline row: all defaults apply
			return nil
		}
		return fmt.Errorf("failed to query pipeline config: %w", err)
	}

	if pageTitle.Valid {
		config.Site.PageTitle = pageTitle.String
	}
	if count.Valid {
		config.Generator.Count = int(count.Int64)
	}
	if intervalMinutes.Valid {
		config.Generator.IntervalMinutes = int(intervalMinutes.Int64)
	}
	if seed.Valid {
		config.Generator.Seed = seed.Int64
	}
	if cacheTTL.Valid {
		config.Generator.CacheTTLSeconds = int(cacheTTL.Int64)
	}
	if steps.Valid {
		config.Forecast.Steps = int(steps.Int64)
	}
	if growthFactor.Valid {
		config.Forecast.GrowthFactor = growthFactor.Float64
	}
	if signalCycle.Valid {
		config.Scenario.SignalCycleSeconds = signalCycle.Float64
	}
	if greenZone.Valid {
		v := greenZone.Float64
		config.Scenario.GreenZoneEffectPct = &v
	}

	return nil
}

// GetControllers returns controller configurations from the database
func (s *SQLiteProvider) GetControllers() ([]ControllerData, error) {
	query := `
		SELECT type, listen_addr, port, tls_cert_path, tls_key_path, schedule
		FROM controllers
		WHERE config_id = (SELECT id FROM configs WHERE name = 'default')
		ORDER BY type
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query controllers: %w", err)
	}
	defer rows.Close()

	var controllers []ControllerData
	for rows.Next() {
		var controller ControllerData
		var listenAddr, tlsCertPath, tlsKeyPath, schedule sql.NullString
		var port sql.NullInt64

		err := rows.Scan(&controller.Type, &listenAddr, &port, &tlsCertPath, &tlsKeyPath, &schedule)
		if err != nil {
			return nil, fmt.Errorf("failed to scan controller row: %w", err)
		}

		switch controller.Type {
		case "dashboard":
			dashboard := &DashboardData{}
			if listenAddr.Valid {
				dashboard.ListenAddr = listenAddr.String
			}
			if port.Valid {
				dashboard.Port = int(port.Int64)
			}
			if tlsCertPath.Valid {
				dashboard.TLSCertPath = tlsCertPath.String
			}
			if tlsKeyPath.Valid {
				dashboard.TLSKeyPath = tlsKeyPath.String
			}
			controller.Dashboard = dashboard
		case "prewarm":
			prewarm := &PrewarmData{}
			if schedule.Valid {
				prewarm.Schedule = schedule.String
			}
			controller.Prewarm = prewarm
		}

		controllers = append(controllers, controller)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating controller rows: %w", err)
	}

	return controllers, nil
}

// IsReadOnly returns false: the SQLite backend supports in-place edits
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
