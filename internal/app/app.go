// Package app wires the application together: configuration, logging,
// tracing, the model and search clients, and the agent itself. Both the CLI
// and the HTTP server build their world through App.
package app

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/agentpay/agentpay/internal/agent"
	"github.com/agentpay/agentpay/internal/config"
	"github.com/agentpay/agentpay/internal/gemini"
	"github.com/agentpay/agentpay/internal/log"
	"github.com/agentpay/agentpay/internal/observability"
	"github.com/agentpay/agentpay/internal/store"
	"github.com/agentpay/agentpay/internal/websearch"
)

// App is the application container.
type App struct {
	Config   *config.Config
	Logger   log.Logger
	Catalog  *store.Catalog
	Sessions *agent.SessionStore
	Agent    *agent.Agent

	traceShutdown func(context.Context) error
}

// New builds the full application from cfg. When the Gemini and search API
// keys are both present the agent runs the model-driven path; otherwise it
// runs rule-based only. Tracing failures never block startup.
func New(ctx context.Context, cfg *config.Config, logger log.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	traceShutdown, err := observability.Setup(ctx, observability.Config{
		AgentHost:   cfg.Datadog.AgentHost,
		Environment: cfg.Datadog.Environment,
		ServiceName: cfg.Datadog.ServiceName,
		Logger:      logger,
	})
	if err != nil {
		logger.Warn("tracing setup failed, continuing without it", "error", err)
		traceShutdown = func(context.Context) error { return nil }
	}

	agentCfg := agent.Config{
		Logger:           logger,
		MaxTurns:         cfg.MaxTurns,
		ThinkingDelayMin: time.Duration(cfg.ThinkingDelayMinMS) * time.Millisecond,
		ThinkingDelayMax: time.Duration(cfg.ThinkingDelayMaxMS) * time.Millisecond,
		CheckoutDelay:    time.Duration(cfg.CheckoutDelayMS) * time.Millisecond,
	}

	if cfg.AIAvailable() {
		limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestBurst)

		model, err := gemini.New(ctx, gemini.Config{
			APIKey:      cfg.GeminiAPIKey,
			Model:       cfg.ModelName,
			Logger:      logger,
			RateLimiter: limiter,
		})
		if err != nil {
			return nil, err
		}

		resolver, err := websearch.New(websearch.Config{
			APIKey:      cfg.TavilyAPIKey,
			Logger:      logger,
			RateLimiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestBurst),
		})
		if err != nil {
			return nil, err
		}

		agentCfg.Model = model
		agentCfg.Resolver = resolver
		logger.Info("model-driven conversation path enabled", "model", cfg.ModelName)
	} else {
		logger.Info("API keys not configured, running rule-based only")
	}

	ag, err := agent.New(agentCfg)
	if err != nil {
		return nil, err
	}

	catalog := store.DefaultCatalog()

	return &App{
		Config:        cfg,
		Logger:        logger,
		Catalog:       catalog,
		Sessions:      agent.NewSessionStore(catalog),
		Agent:         ag,
		traceShutdown: traceShutdown,
	}, nil
}

// Close flushes pending traces.
func (a *App) Close(ctx context.Context) error {
	if a.traceShutdown == nil {
		return nil
	}
	return a.traceShutdown(ctx)
}
