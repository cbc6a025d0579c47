package managers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/urbanpulse/urbanpulse/internal/controllers/dashboard"
	"github.com/urbanpulse/urbanpulse/internal/controllers/prewarm"
	"github.com/urbanpulse/urbanpulse/internal/pulse"
	"github.com/urbanpulse/urbanpulse/pkg/config"
	"go.uber.org/zap"
)

// ControllerManager interface for the controller manager
type ControllerManager interface {
	StartControllers() error
}

// Controller is an interface that provides standard methods for various controller backends
type Controller interface {
	StartController() error
}

type controllerManager struct {
	ctx            context.Context
	wg             *sync.WaitGroup
	configProvider config.ConfigProvider
	pipeline       *pulse.Pipeline
	logger         *zap.SugaredLogger
	controllers    []Controller
}

// NewControllerManager creates a new controller manager. It builds the
// shared pipeline from configuration so every controller serves and warms
// the same tables.
func NewControllerManager(ctx context.Context, wg *sync.WaitGroup, configProvider config.ConfigProvider, logger *zap.SugaredLogger) (ControllerManager, error) {
	cfgData, err := configProvider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %v", err)
	}

	cm := &controllerManager{
		ctx:            ctx,
		wg:             wg,
		configProvider: configProvider,
		pipeline:       buildPipeline(cfgData),
		logger:         logger,
		controllers:    make([]Controller, 0),
	}

	for _, con := range cfgData.Controllers {
		controller, err := cm.createController(con)
		if err != nil {
			return nil, fmt.Errorf("error creating controller: %v", err)
		}
		cm.controllers = append(cm.controllers, controller)
	}

	return cm, nil
}

func (c *controllerManager) StartControllers() error {
	c.logger.Info("Starting controller manager...")

	for _, controller := range c.controllers {
		err := controller.StartController()
		if err != nil {
			return fmt.Errorf("error starting controller: %v", err)
		}
	}

	c.logger.Infof("Started %d controllers successfully", len(c.controllers))
	return nil
}

// createController creates a controller based on the controller configuration
func (cm *controllerManager) createController(cc config.ControllerData) (Controller, error) {
	switch cc.Type {
	case "dashboard", "rest":
		var dc config.DashboardData
		if cc.Dashboard != nil {
			dc = *cc.Dashboard
		}
		return dashboard.NewController(cm.ctx, cm.wg, cm.configProvider, dc, cm.pipeline, cm.logger)
	case "prewarm":
		var pc config.PrewarmData
		if cc.Prewarm != nil {
			pc = *cc.Prewarm
		}
		return prewarm.NewController(cm.ctx, cm.wg, pc, cm.pipeline, cm.logger)
	default:
		return nil, fmt.Errorf("unknown controller type: %s", cc.Type)
	}
}

// buildPipeline constructs the shared pipeline from the configured
// generation, forecast and scenario defaults
func buildPipeline(cfgData *config.ConfigData) *pulse.Pipeline {
	cacheTTL := time.Duration(cfgData.Generator.CacheTTLSeconds) * time.Second
	if cacheTTL <= 0 {
		cacheTTL = pulse.DefaultCacheTTL
	}

	// An explicit zero is a valid green-zone slider position; only an
	// absent config field falls back to the package default.
	greenZone := pulse.DefaultGreenZoneEffectPct
	if cfgData.Scenario.GreenZoneEffectPct != nil {
		greenZone = *cfgData.Scenario.GreenZoneEffectPct
	}

	defaults := pulse.Defaults{
		Count:              cfgData.Generator.Count,
		IntervalMinutes:    cfgData.Generator.IntervalMinutes,
		Steps:              cfgData.Forecast.Steps,
		GrowthFactor:       cfgData.Forecast.GrowthFactor,
		SignalCycleSeconds: cfgData.Scenario.SignalCycleSeconds,
		GreenZoneEffectPct: greenZone,
	}

	return pulse.NewPipeline(cfgData.Generator.Seed, cacheTTL, defaults, nil)
}
