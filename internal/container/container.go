package container

import (
	"fmt"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/garyjia/approval-chain/internal/application/approval"
	"github.com/garyjia/approval-chain/internal/application/dispatcher"
	"github.com/garyjia/approval-chain/internal/application/middleware"
	"github.com/garyjia/approval-chain/internal/application/validation"
	"github.com/garyjia/approval-chain/internal/config"
)

// Container assembles every chain once from configuration.
// Chains are immutable after Start.
type Container struct {
	config   *config.Config
	logger   *zap.Logger
	registry prometheus.Registerer

	recorder   dispatcher.Recorder
	approval   *dispatcher.Dispatcher[approval.Expense, approval.Approval]
	validation *dispatcher.Dispatcher[validation.Fields, bool]
	middleware *dispatcher.Dispatcher[middleware.Request, middleware.Response]

	ready atomic.Bool
}

// NewContainer creates a new container from configuration.
// It does not build chains - call Start() to assemble them.
func NewContainer(cfg *config.Config, logger *zap.Logger, registry prometheus.Registerer) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Container{
		config:   cfg,
		logger:   logger,
		registry: registry,
	}, nil
}

// Start assembles components in dependency order:
// 1. Metrics recorder
// 2. Approval chain
// 3. Validation chain
// 4. Middleware chain
func (c *Container) Start() error {
	if c.ready.Load() {
		return fmt.Errorf("container already started")
	}

	c.logger.Info("Starting container initialization")

	recorder, err := ProvideRecorder(&c.config.Metrics, c.registry)
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	c.recorder = recorder

	c.approval, err = ProvideApprovalDispatcher(&c.config.Approval, c.logger, c.recorder)
	if err != nil {
		return fmt.Errorf("failed to assemble approval chain: %w", err)
	}

	c.validation, err = ProvideValidationDispatcher(&c.config.Validation, c.logger, c.recorder)
	if err != nil {
		return fmt.Errorf("failed to assemble validation chain: %w", err)
	}

	c.middleware, err = ProvideMiddlewareDispatcher(&c.config.Middleware, c.logger, c.recorder)
	if err != nil {
		return fmt.Errorf("failed to assemble middleware chain: %w", err)
	}

	c.ready.Store(true)
	c.logger.Info("Container started successfully",
		zap.Int("approval_handlers", len(c.approval.ListHandlers())),
		zap.Int("validation_handlers", len(c.validation.ListHandlers())),
		zap.Int("middleware_handlers", len(c.middleware.ListHandlers())),
		zap.Bool("metrics_enabled", c.recorder != nil),
	)

	return nil
}

// IsReady returns true once Start has succeeded
func (c *Container) IsReady() bool {
	return c.ready.Load()
}

// Approval returns the approval chain dispatcher
func (c *Container) Approval() *dispatcher.Dispatcher[approval.Expense, approval.Approval] {
	return c.approval
}

// Validation returns the validation chain dispatcher
func (c *Container) Validation() *dispatcher.Dispatcher[validation.Fields, bool] {
	return c.validation
}

// Middleware returns the middleware chain dispatcher
func (c *Container) Middleware() *dispatcher.Dispatcher[middleware.Request, middleware.Response] {
	return c.middleware
}

// Logger returns the container's logger.
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// Config returns the container's configuration.
func (c *Container) Config() *config.Config {
	return c.config
}
