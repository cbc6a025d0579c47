// Package dashboard provides the REST controller serving the synthetic
// urban-sensor tables to the chart-rendering frontend.
package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/urbanpulse/urbanpulse/internal/log"
	"github.com/urbanpulse/urbanpulse/internal/pulse"
	"github.com/urbanpulse/urbanpulse/pkg/config"
	"go.uber.org/zap"
)

// Controller represents the dashboard REST server controller
type Controller struct {
	ctx            context.Context
	wg             *sync.WaitGroup
	configProvider config.ConfigProvider
	dashConfig     config.DashboardData
	Server         http.Server
	PageTitle      string
	pipeline       *pulse.Pipeline
	cacheTTL       time.Duration
	logger         *zap.SugaredLogger
	handlers       *Handlers
}

// NewController creates a new dashboard REST controller around a shared
// pipeline
func NewController(ctx context.Context, wg *sync.WaitGroup, configProvider config.ConfigProvider, dc config.DashboardData, pipeline *pulse.Pipeline, logger *zap.SugaredLogger) (*Controller, error) {
	if pipeline == nil {
		return nil, fmt.Errorf("dashboard controller requires a pipeline")
	}

	ctrl := &Controller{
		ctx:            ctx,
		wg:             wg,
		configProvider: configProvider,
		dashConfig:     dc,
		pipeline:       pipeline,
		logger:         logger,
	}

	cfgData, err := configProvider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %v", err)
	}

	ctrl.PageTitle = cfgData.Site.PageTitle
	ctrl.cacheTTL = time.Duration(cfgData.Generator.CacheTTLSeconds) * time.Second
	if ctrl.cacheTTL <= 0 {
		ctrl.cacheTTL = pulse.DefaultCacheTTL
	}

	// If a ListenAddr was not provided, listen on all interfaces
	if dc.ListenAddr == "" {
		logger.Info("dashboard.listen_addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		dc.ListenAddr = "0.0.0.0"
	}

	// Set default HTTP port if not specified
	if dc.Port == 0 {
		logger.Info("dashboard.port not provided; defaulting to 8080")
		dc.Port = 8080
	}
	ctrl.dashConfig = dc

	ctrl.handlers = NewHandlers(ctrl)

	router := ctrl.setupRouter()
	ctrl.Server.Addr = fmt.Sprintf("%v:%v", dc.ListenAddr, dc.Port)
	ctrl.Server.Handler = router

	return ctrl, nil
}

// StartController starts the dashboard REST server
func (c *Controller) StartController() error {
	log.Info("Starting dashboard REST controller...")
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if c.dashConfig.TLSCertPath != "" && c.dashConfig.TLSKeyPath != "" {
			if err := c.Server.ListenAndServeTLS(c.dashConfig.TLSCertPath, c.dashConfig.TLSKeyPath); err != http.ErrServerClosed {
				log.Errorf("dashboard server error: %v", err)
			}
		} else {
			if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
				log.Errorf("dashboard server error: %v", err)
			}
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the dashboard server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()

	router.Use(log.RequestLogger)

	router.HandleFunc("/api/readings", c.handlers.GetReadings)
	router.HandleFunc("/api/latest", c.handlers.GetLatest)
	router.HandleFunc("/api/forecast/{metric}", c.handlers.GetForecast)
	router.HandleFunc("/api/scenario", c.handlers.GetScenario)

	return router
}
