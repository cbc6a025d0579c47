// Package prewarm provides a controller that keeps the series cache warm so
// the dashboard never serves a cold first request. It refreshes once at
// startup and thereafter on an optional cron schedule.
package prewarm

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/urbanpulse/urbanpulse/internal/pulse"
	"github.com/urbanpulse/urbanpulse/pkg/config"
	"go.uber.org/zap"
)

// Controller manages the cache refresh lifecycle
type Controller struct {
	ctx      context.Context
	wg       *sync.WaitGroup
	pipeline *pulse.Pipeline
	schedule string
	cron     *cron.Cron
	logger   *zap.SugaredLogger
}

// NewController creates a new pre-warm controller
func NewController(ctx context.Context, wg *sync.WaitGroup, pc config.PrewarmData, pipeline *pulse.Pipeline, logger *zap.SugaredLogger) (*Controller, error) {
	if pipeline == nil {
		return nil, fmt.Errorf("prewarm controller requires a pipeline")
	}

	return &Controller{
		ctx:      ctx,
		wg:       wg,
		pipeline: pipeline,
		schedule: pc.Schedule,
		logger:   logger,
	}, nil
}

// StartController refreshes the cache once, then starts the cron schedule
// if one is configured
func (c *Controller) StartController() error {
	c.logger.Info("Starting cache pre-warm controller...")

	if err := c.refresh(); err != nil {
		return fmt.Errorf("initial cache refresh failed: %w", err)
	}

	if c.schedule == "" {
		c.logger.Debug("No pre-warm schedule configured; cache will refresh lazily on demand")
		return nil
	}

	c.cron = cron.New()
	if _, err := c.cron.AddFunc(c.schedule, func() {
		if err := c.refresh(); err != nil {
			c.logger.Warnf("scheduled cache refresh failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid pre-warm schedule %q: %w", c.schedule, err)
	}
	c.cron.Start()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		<-c.ctx.Done()
		c.logger.Info("Stopping cache pre-warm controller...")
		<-c.cron.Stop().Done()
	}()

	return nil
}

// refresh generates a fresh series for the default parameters and replaces
// the cache entry, regardless of whether the old one has expired
func (c *Controller) refresh() error {
	defaults := c.pipeline.Defaults
	series, err := c.pipeline.Generator.Generate(defaults.Count, defaults.IntervalMinutes)
	if err != nil {
		return err
	}
	c.pipeline.Cache.Put(defaults.Count, defaults.IntervalMinutes, series)
	c.logger.Debugf("Series cache warmed: %d rows at %dm interval", series.Len(), defaults.IntervalMinutes)
	return nil
}
