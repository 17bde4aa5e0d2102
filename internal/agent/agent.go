// Package agent implements the conversation engine: intent classification,
// rule-based dispatch, tool execution and the model-driven tool loop. All
// state lives in sessions; the engine itself is stateless and safe for
// concurrent use.
package agent

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/agentpay/agentpay/internal/log"
	"github.com/agentpay/agentpay/internal/store"
	"github.com/agentpay/agentpay/internal/websearch"
)

// ErrNilLogger is returned by New when no logger is supplied.
var ErrNilLogger = errors.New("agent: logger must not be nil")

// DefaultMaxTurns caps model round-trips within a single conversational turn.
const DefaultMaxTurns = 5

// ModelClient generates one model response for a conversation history.
type ModelClient interface {
	Generate(ctx context.Context, history []*genai.Content, system string, tools []*genai.FunctionDeclaration) (*genai.Content, error)
}

// Resolver turns model-recommended product candidates into presentable
// products with purchase links.
type Resolver interface {
	EnrichProducts(ctx context.Context, candidates []websearch.Candidate) []store.Product
}

// Config carries the agent's collaborators and tunables. Model and Resolver
// are optional; when either is missing the agent runs rule-based only.
type Config struct {
	Model    ModelClient
	Resolver Resolver
	Logger   log.Logger

	// MaxTurns bounds model round-trips per turn; zero means DefaultMaxTurns.
	MaxTurns int

	// ThinkingDelayMin/Max bound the simulated thinking pause on the
	// rule-based path. Both zero disables the pause.
	ThinkingDelayMin time.Duration
	ThinkingDelayMax time.Duration

	// CheckoutDelay simulates payment processing between the two checkout
	// messages.
	CheckoutDelay time.Duration
}

// Agent is the conversation engine entry point.
type Agent struct {
	model    ModelClient
	resolver Resolver
	logger   log.Logger
	tracer   trace.Tracer

	maxTurns         int
	thinkingDelayMin time.Duration
	thinkingDelayMax time.Duration
	checkoutDelay    time.Duration
}

// New builds an Agent from cfg.
func New(cfg Config) (*Agent, error) {
	if cfg.Logger == nil {
		return nil, ErrNilLogger
	}
	maxTurns := cfg.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Agent{
		model:            cfg.Model,
		resolver:         cfg.Resolver,
		logger:           cfg.Logger,
		tracer:           otel.Tracer("agentpay/agent"),
		maxTurns:         maxTurns,
		thinkingDelayMin: cfg.ThinkingDelayMin,
		thinkingDelayMax: cfg.ThinkingDelayMax,
		checkoutDelay:    cfg.CheckoutDelay,
	}, nil
}

// AIAvailable reports whether the model-driven path can run.
func (a *Agent) AIAvailable() bool {
	return a.model != nil && a.resolver != nil
}

// Process handles one user turn: it records the user message, runs the
// model-driven path when available (falling back to rule-based dispatch on
// model failure), and returns the messages this turn emitted. Turns on the
// same session are serialized; Process never returns an error for user input
// it cannot make sense of, only for a cancelled context.
func (a *Agent) Process(ctx context.Context, s *Session, text string) ([]store.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := a.tracer.Start(ctx, "agent.turn")
	defer span.End()

	before := s.Messages.Len()
	s.Messages.AddUserMessage(text)
	s.Messages.SetTyping(true)
	defer s.Messages.SetTyping(false)

	if a.AIAvailable() {
		span.SetAttributes(attribute.String("agent.path", "ai"))
		err := a.processWithAI(ctx, s, text)
		if err == nil {
			return a.emitted(s, before), nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		a.logger.Warn("model path failed, falling back to rule-based dispatch",
			"session", s.ID, "error", err)
		span.SetAttributes(attribute.Bool("agent.fallback", true))
		a.dispatchClassified(ctx, s, span, text)
		return a.emitted(s, before), ctx.Err()
	}

	span.SetAttributes(attribute.String("agent.path", "rules"))
	if !a.thinkingPause(ctx) {
		return nil, ctx.Err()
	}
	a.dispatchClassified(ctx, s, span, text)
	return a.emitted(s, before), ctx.Err()
}

func (a *Agent) dispatchClassified(ctx context.Context, s *Session, span trace.Span, text string) {
	intent, query := Classify(text)
	span.SetAttributes(attribute.String("agent.intent", string(intent)))
	a.logger.Debug("dispatching intent", "session", s.ID, "intent", intent, "query", query)
	a.dispatch(ctx, s, intent, query)
}

// emitted returns the transcript entries added since the turn began, minus
// the user message itself.
func (a *Agent) emitted(s *Session, before int) []store.Message {
	all := s.Messages.All()
	if before+1 > len(all) {
		return nil
	}
	return all[before+1:]
}

// thinkingPause sleeps for a random duration in the configured range. It
// reports false when the context was cancelled first.
func (a *Agent) thinkingPause(ctx context.Context) bool {
	if a.thinkingDelayMax <= 0 {
		return true
	}
	spread := a.thinkingDelayMax - a.thinkingDelayMin
	delay := a.thinkingDelayMin
	if spread > 0 {
		delay += rand.N(spread)
	}
	return a.sleep(ctx, delay)
}

// sleep waits for d or until ctx is done, reporting whether the full wait
// completed.
func (a *Agent) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
