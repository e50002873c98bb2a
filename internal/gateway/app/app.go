package app

import (
	"context"
	"errors"
	"fmt"

	"agenthub/internal/agent"
	"agenthub/internal/calendar"
	"agenthub/internal/gateway/config"
	"agenthub/internal/gateway/handler"
	"agenthub/internal/gateway/server"
	"agenthub/internal/gateway/session"
	"agenthub/internal/llm"
	llmclient "agenthub/internal/llmClient"
	"agenthub/internal/logging"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

type App struct {
	server    *server.Server
	generator *llm.Generator
	logger    *zap.Logger
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return NewWithConfig(context.Background(), cfg, logger)
}

// NewWithConfig wires the gateway from an already resolved config.
func NewWithConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Generation
	client, err := llmclient.New(ctx, cfg.LLM.Settings())
	if err != nil {
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	gen := llm.NewGenerator(client, llm.MustNewMetrics(reg),
		llm.WithLogging(logger),
		llm.RateLimit(cfg.LLM.RPS, cfg.LLM.Burst),
	)
	logger.Info("llm client ready",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
		zap.String("client", gen.Name()))

	// Dependencies
	agents := agent.NewAgents(gen, logger)
	store := session.NewStore(agents, cfg.Session.TTL, cfg.Session.Max, logger)

	agentHandler := handler.NewAgentHandler(store, agents, logger)
	agentSocket := handler.NewAgentSocket(store, logger)
	calendarHandler := handler.NewCalendarHandler(calendar.NewExporter())

	// Routing & Server
	mux := server.NewMux(agentHandler, agentSocket, calendarHandler, reg, logger)
	srv := server.New(cfg.Port, mux, logger)

	return &App{
		server:    srv,
		generator: gen,
		logger:    logger,
	}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	if cerr := a.generator.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	_ = a.logger.Sync()
	return err
}
