package agent

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/agentpay/agentpay/internal/store"
)

const systemPrompt = `You are a friendly shopping assistant. You help users discover products, manage their cart, and place orders.

Rules:
- When the user wants products, recommend specific real products via the search_products tool. Never invent search results in plain text.
- Use add_to_cart, view_cart and checkout for cart and order actions instead of describing them.
- Keep replies short and warm. Use markdown bold for product names and prices.
- After a tool returns, summarize the outcome for the user in one or two sentences.`

const fallbackReply = "I'm here to help! Try asking me to search for products."

const completionReply = "I've completed the action. Let me know if you need anything else!"

// processWithAI runs one conversational turn through the model, executing
// tool calls until the model answers in plain text or the round-trip cap is
// reached. Session history and the transcript are updated in place; the
// caller holds the session lock.
func (a *Agent) processWithAI(ctx context.Context, s *Session, text string) error {
	s.history = append(s.history, genai.NewContentFromText(text, genai.RoleUser))
	system := systemPrompt + cartContext(s) + searchContext(s)

	// Rich content from the latest producing tool wins; earlier content in
	// the same turn is overwritten, not accumulated.
	var pending *store.Content

	for i := 0; i < a.maxTurns; i++ {
		content, err := a.model.Generate(ctx, s.history, system, toolDeclarations)
		if err != nil {
			return fmt.Errorf("generate turn: %w", err)
		}
		s.history = append(s.history, content)

		calls := functionCalls(content)
		if len(calls) == 0 {
			reply := textOf(content)
			if strings.TrimSpace(reply) == "" {
				reply = fallbackReply
			}
			s.Messages.AddAgentMessage(reply, pending)
			return nil
		}

		// All responses for this round travel back in a single user turn,
		// in call order.
		parts := make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			res := a.executeTool(ctx, s, call.Name, call.Args)
			if res.rich != nil {
				pending = res.rich
			}
			parts = append(parts, genai.NewPartFromFunctionResponse(call.Name, map[string]any{"result": res.text}))
		}
		s.history = append(s.history, genai.NewContentFromParts(parts, genai.RoleUser))
	}

	a.logger.Warn("tool loop hit round-trip cap", "cap", a.maxTurns, "session", s.ID)
	trace.SpanFromContext(ctx).SetAttributes(attribute.Bool("agent.loop_capped", true))
	s.Messages.AddAgentMessage(completionReply, pending)
	return nil
}

// cartContext renders the live cart for the system prompt so the model never
// has to guess cart state.
func cartContext(s *Session) string {
	items := s.Cart.Items()
	if len(items) == 0 {
		return "\n\nThe user's cart is currently empty."
	}
	var b strings.Builder
	b.WriteString("\n\nThe user's cart currently contains:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- %s x%d (%s each)\n", item.Product.Name, item.Quantity, store.FormatPrice(item.Product.Price))
	}
	fmt.Fprintf(&b, "Cart total: %s", store.FormatPrice(s.Cart.Total()))
	return b.String()
}

// searchContext renders the latest search results so index-based add_to_cart
// calls stay grounded.
func searchContext(s *Session) string {
	if len(s.lastSearch) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\nThe latest search results shown to the user, indexed from 0:\n")
	for i, p := range s.lastSearch {
		fmt.Fprintf(&b, "%d. %s — %s\n", i, p.Name, store.FormatPrice(p.Price))
	}
	return b.String()
}

// functionCalls extracts the function calls from a model response, in order.
func functionCalls(content *genai.Content) []*genai.FunctionCall {
	if content == nil {
		return nil
	}
	var calls []*genai.FunctionCall
	for _, part := range content.Parts {
		if part != nil && part.FunctionCall != nil {
			calls = append(calls, part.FunctionCall)
		}
	}
	return calls
}

// textOf concatenates the text parts of a model response.
func textOf(content *genai.Content) string {
	if content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
