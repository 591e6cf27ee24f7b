package main

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-capture/internal/domain/gateways"
	"github.com/johnquangdev/meeting-capture/internal/infrastructure/bootstrap"
	"github.com/johnquangdev/meeting-capture/internal/infrastructure/database"
	captureUsecase "github.com/johnquangdev/meeting-capture/internal/usecase/capture"
	"github.com/johnquangdev/meeting-capture/pkg/config"
)

// commandContext lazily opens what a command needs. Tests replace the loaders.
type commandContext struct {
	loadConfig   func() (*config.Config, error)
	openDB       func(*config.Config) (*gorm.DB, error)
	newCapture   func(context.Context, *config.Config, *gorm.DB) (captureUsecase.Service, error)
	newDecisions func(context.Context, *config.Config) (gateways.ContextReader, error)

	dbOnce sync.Once
	db     *gorm.DB
	dbErr  error
}

func newCommandContext() *commandContext {
	return &commandContext{
		loadConfig: config.Load,
		openDB:     database.NewPostgresDB,
		newCapture: func(ctx context.Context, cfg *config.Config, db *gorm.DB) (captureUsecase.Service, error) {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return nil, err
			}
			gws, err := bootstrap.NewGateways(ctx, cfg, logger)
			if err != nil {
				return nil, err
			}
			return bootstrap.NewServices(db, gws, cfg, logger).Capture, nil
		},
		newDecisions: func(ctx context.Context, cfg *config.Config) (gateways.ContextReader, error) {
			gws, err := bootstrap.NewGateways(ctx, cfg, zap.NewNop())
			if err != nil {
				return nil, err
			}
			return gws.Context, nil
		},
	}
}

func (c *commandContext) database() (*config.Config, *gorm.DB, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	c.dbOnce.Do(func() {
		c.db, c.dbErr = c.openDB(cfg)
	})
	return cfg, c.db, c.dbErr
}

func (c *commandContext) captureService(ctx context.Context) (captureUsecase.Service, error) {
	cfg, db, err := c.database()
	if err != nil {
		return nil, err
	}
	return c.newCapture(ctx, cfg, db)
}

func (c *commandContext) decisionReader(ctx context.Context) (gateways.ContextReader, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return c.newDecisions(ctx, cfg)
}
