package container

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/garyjia/approval-chain/internal/application/approval"
	"github.com/garyjia/approval-chain/internal/application/dispatcher"
	"github.com/garyjia/approval-chain/internal/application/middleware"
	"github.com/garyjia/approval-chain/internal/application/validation"
	"github.com/garyjia/approval-chain/internal/config"
	"github.com/garyjia/approval-chain/internal/infrastructure/metrics"
	"github.com/garyjia/approval-chain/pkg/utils"
)

// Chain names used in logs and metrics
const (
	ApprovalChain   = "approval"
	ValidationChain = "validation"
	MiddlewareChain = "middleware"
)

// ProvideRecorder creates the dispatch metrics recorder.
// Returns nil when metrics are disabled.
func ProvideRecorder(cfg *config.MetricsConfig, reg prometheus.Registerer) (dispatcher.Recorder, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if reg == nil {
		return nil, fmt.Errorf("metrics registerer is required when metrics are enabled")
	}

	recorder, err := metrics.NewRecorder(cfg.Namespace, reg)
	if err != nil {
		return nil, err
	}
	return recorder, nil
}

// dispatcherOptions builds the options shared by every chain.
// The dispatcher adds the chain name to its own log lines.
func dispatcherOptions(name string, logger *zap.Logger, recorder dispatcher.Recorder) []dispatcher.Option {
	opts := []dispatcher.Option{
		dispatcher.WithName(name),
		dispatcher.WithLogger(utils.NewKVLogger(logger)),
	}
	if recorder != nil {
		opts = append(opts, dispatcher.WithRecorder(recorder))
	}
	return opts
}

// ProvideApprovalDispatcher creates the approval chain dispatcher
func ProvideApprovalDispatcher(cfg *config.ApprovalConfig, logger *zap.Logger, recorder dispatcher.Recorder) (*dispatcher.Dispatcher[approval.Expense, approval.Approval], error) {
	levels := make([]approval.Level, 0, len(cfg.Levels))
	for _, l := range cfg.Levels {
		levels = append(levels, approval.Level{Role: l.Role, Ceiling: l.Ceiling})
	}

	return approval.NewDispatcher(levels, cfg.CatchAll,
		utils.NewKVLogger(logger),
		dispatcherOptions(ApprovalChain, logger, recorder)...,
	)
}

// ProvideValidationDispatcher creates the validation chain dispatcher
func ProvideValidationDispatcher(cfg *config.ValidationConfig, logger *zap.Logger, recorder dispatcher.Recorder) (*dispatcher.Dispatcher[validation.Fields, bool], error) {
	rules := validation.Rules{
		RequiredFields:    cfg.RequiredFields,
		PasswordMinLength: cfg.PasswordMinLength,
		CheckEmailFormat:  cfg.CheckEmailFormat,
	}

	return validation.NewDispatcher(rules, dispatcherOptions(ValidationChain, logger, recorder)...)
}

// ProvideMiddlewareDispatcher creates the middleware chain dispatcher
func ProvideMiddlewareDispatcher(cfg *config.MiddlewareConfig, logger *zap.Logger, recorder dispatcher.Recorder) (*dispatcher.Dispatcher[middleware.Request, middleware.Response], error) {
	deps := middleware.Deps{
		AuthToken: cfg.AuthToken,
		Logger:    utils.NewKVLogger(logger),
	}

	return middleware.NewDispatcher(cfg.Order, deps, dispatcherOptions(MiddlewareChain, logger, recorder)...)
}
