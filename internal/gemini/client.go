// Package gemini wraps the Gemini API behind the narrow generate contract the
// agent needs: ordered conversation history in, one candidate turn out.
//
// The client never interprets tool calls; extracting and executing them is
// the orchestrator's job.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/agentpay/agentpay/internal/log"
)

// ErrNoCandidates indicates the model returned an empty candidate list.
var ErrNoCandidates = errors.New("no response candidate from model")

// Config contains all required parameters for the Gemini client.
type Config struct {
	APIKey string
	Model  string // e.g. "gemini-2.5-flash"
	Logger log.Logger

	// RateLimiter is optional; nil uses a default of 10 req/s, burst 30.
	RateLimiter *rate.Limiter
}

// Client is a thin Gemini API client.
//
// Client is safe for concurrent use by multiple goroutines.
type Client struct {
	genai   *genai.Client
	model   string
	limiter *rate.Limiter
	logger  log.Logger
}

// New creates a Gemini client for the Gemini API backend.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("gemini: model is required")
	}
	if cfg.Logger == nil {
		return nil, errors.New("gemini: logger is required")
	}

	limiter := cfg.RateLimiter
	if limiter == nil {
		limiter = rate.NewLimiter(10, 30)
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}

	return &Client{
		genai:   gc,
		model:   cfg.Model,
		limiter: limiter,
		logger:  cfg.Logger,
	}, nil
}

// Generate sends the conversation history, system instruction, and tool
// declarations to the model and returns the first candidate's content.
// The returned content may contain text parts, function-call parts, or both.
func (c *Client) Generate(ctx context.Context, history []*genai.Content, system string, tools []*genai.FunctionDeclaration) (*genai.Content, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("gemini: rate limit wait: %w", err)
	}

	cfg := &genai.GenerateContentConfig{}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if len(tools) > 0 {
		cfg.Tools = []*genai.Tool{{FunctionDeclarations: tools}}
	}

	c.logger.Debug("generating content",
		"model", c.model,
		"history_len", len(history),
		"tools", len(tools))

	resp, err := c.genai.Models.GenerateContent(ctx, c.model, history, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ErrNoCandidates
	}

	return resp.Candidates[0].Content, nil
}
