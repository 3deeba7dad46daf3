package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lone-ranger-roofing/ranger-agent/pkg/agent"
	"github.com/lone-ranger-roofing/ranger-agent/pkg/config"
	"github.com/lone-ranger-roofing/ranger-agent/pkg/leads"
	"github.com/lone-ranger-roofing/ranger-agent/pkg/logger"
	"github.com/lone-ranger-roofing/ranger-agent/pkg/models"
	"github.com/lone-ranger-roofing/ranger-agent/pkg/observability"
	"github.com/lone-ranger-roofing/ranger-agent/pkg/tools"
)

var rootCmd = &cobra.Command{
	Use:           "ranger",
	Short:         "Lone Ranger Roofing lead agent",
	Long:          "Finds and qualifies roofing leads by chaining weather alerts, open property data, and skip tracing behind an LLM agent.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(stormsCmd, leadsCmd, middlemenCmd, chatCmd, testCmd)
}

// app holds everything a command needs after setup.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	runner *agent.Runner
	tracer tools.SkipTracer
}

// newApp builds config, logger, model, tools, and the runner. When
// validateCreds is false the model credential check is skipped so offline
// commands still run.
func newApp(ctx context.Context, validateCreds bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if validateCreds {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	metrics := observability.NewMetrics()

	model, err := models.NewLLMProvider(ctx, cfg.Model.Provider, cfg.Model.Name, agent.SystemPrompt())
	if err != nil {
		return nil, fmt.Errorf("model setup: %w", err)
	}

	toolset, err := tools.NewToolset(tools.ToolsetParams{
		OutputDir:         cfg.Output.Dir,
		SkipTraceProvider: cfg.SkipTrace.Provider,
		BatchAPIKey:       cfg.SkipTrace.BatchAPIKey,
		REISkipKey:        cfg.SkipTrace.REISkipKey,
		Logger:            log,
		Metrics:           metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("tool setup: %w", err)
	}

	ag := agent.New(model, toolset.Catalog, agent.Options{
		MaxTurns: cfg.Model.MaxTurns,
		Logger:   log,
		Metrics:  metrics,
	})

	return &app{
		cfg:    cfg,
		log:    log,
		runner: agent.NewRunner(ag, leads.NewWeightScorer(), toolset.Writer),
		tracer: toolset.Tracer,
	}, nil
}
