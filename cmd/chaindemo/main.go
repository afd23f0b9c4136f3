package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/garyjia/approval-chain/internal/application/approval"
	"github.com/garyjia/approval-chain/internal/application/middleware"
	"github.com/garyjia/approval-chain/internal/application/validation"
	"github.com/garyjia/approval-chain/internal/config"
	"github.com/garyjia/approval-chain/internal/container"
	"github.com/garyjia/approval-chain/pkg/utils"
)

// Scenario names accepted by -scenario
const (
	scenarioApproval   = "approval"
	scenarioValidation = "validation"
	scenarioMiddleware = "middleware"
	scenarioAll        = "all"
)

// demoToken is sent when no token is configured, so authentication fails
const demoToken = "valid-token"

var demoAmounts = []float64{500, 2000, 7000, 19000, 50000}

func main() {
	configPath := flag.String("config", "configs/chains.yaml", "path to chain configuration file")
	scenario := flag.String("scenario", scenarioAll, "scenario to run: approval|validation|middleware|all")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, *scenario, logger, prometheus.NewRegistry()); err != nil {
		logger.Error("Demo failed", zap.Error(err))
		os.Exit(1)
	}
}

// run assembles the chains and runs the selected scenarios
func run(cfg *config.Config, scenario string, logger *zap.Logger, reg prometheus.Registerer) error {
	scenarios := map[string]func(*container.Container){
		scenarioApproval:   runApproval,
		scenarioValidation: runValidation,
		scenarioMiddleware: runMiddleware,
	}

	var selected []string
	switch scenario {
	case scenarioAll:
		selected = []string{scenarioApproval, scenarioValidation, scenarioMiddleware}
	case scenarioApproval, scenarioValidation, scenarioMiddleware:
		selected = []string{scenario}
	default:
		return fmt.Errorf("unknown scenario %q", scenario)
	}

	c, err := container.NewContainer(cfg, logger, reg)
	if err != nil {
		return err
	}
	if err := c.Start(); err != nil {
		return err
	}

	for _, name := range selected {
		logger.Info("Running scenario", zap.String("scenario", name))
		scenarios[name](c)
	}
	return nil
}

func runApproval(c *container.Container) {
	d := c.Approval()
	for _, amount := range demoAmounts {
		out := d.Dispatch(approval.Expense{Amount: amount})
		if got, ok := out.Result(); ok {
			c.Logger().Info(got.Message(), zap.String("approver", out.Handler()))
			continue
		}
		c.Logger().Info(approval.NoApproverMessage(amount), zap.String("reason", out.Reason()))
	}
}

func runValidation(c *container.Container) {
	fields := validation.Fields{
		"name":     "João Silva",
		"email":    "joao.silva@example.com",
		"password": "securepassword123",
	}

	if valid, reason := validation.Validate(c.Validation(), fields); valid {
		c.Logger().Info("Todos os dados são válidos.")
	} else {
		c.Logger().Info("Validação falhou", zap.String("reason", reason))
	}
}

func runMiddleware(c *container.Container) {
	token := c.Config().Middleware.AuthToken
	if token == "" {
		token = demoToken
	}

	req := middleware.Request{
		Headers: map[string]string{
			middleware.HeaderAuthorization:  token,
			middleware.HeaderCache:          "miss",
			middleware.HeaderAcceptEncoding: "gzip",
		},
		Body: "Dados da requisição",
	}

	out := c.Middleware().Dispatch(req)
	resp := middleware.ResponseFor(out)
	c.Logger().Info("Resposta final",
		zap.Int("status", resp.Status),
		zap.String("body", resp.Body),
		zap.String("handler_name", out.Handler()),
	)
}
