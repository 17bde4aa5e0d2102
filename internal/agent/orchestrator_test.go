package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/agentpay/agentpay/internal/store"
)

func TestAIPlainTextReply(t *testing.T) {
	t.Parallel()
	model := &fakeModel{responses: []*genai.Content{textContent("Happy to help!")}}
	a, s := newAIAgent(t, model)

	msgs, err := a.Process(context.Background(), s, "hello")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Happy to help!", msgs[0].Text)
	assert.Nil(t, msgs[0].Rich)
	assert.Equal(t, 1, model.calls)

	// History holds the user turn and the model turn.
	require.Len(t, s.history, 2)
	assert.Equal(t, genai.RoleUser, s.history[0].Role)
	assert.Equal(t, genai.RoleModel, s.history[1].Role)
}

func TestAIEmptyReplyGetsFallbackText(t *testing.T) {
	t.Parallel()
	model := &fakeModel{responses: []*genai.Content{textContent("  ")}}
	a, s := newAIAgent(t, model)

	msgs, err := a.Process(context.Background(), s, "hmm")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, fallbackReply, msgs[0].Text)
}

func TestAISearchToolRoundTrip(t *testing.T) {
	t.Parallel()
	model := &fakeModel{responses: []*genai.Content{
		callContent(&genai.FunctionCall{
			Name: toolSearchProducts,
			Args: map[string]any{"products": []any{
				map[string]any{"name": "Trail Runner X", "price": 89.99, "category": "Sports"},
				map[string]any{"name": "Road Glide 2", "price": 129.0},
			}},
		}),
		textContent("Here are two great options!"),
	}}
	a, s := newAIAgent(t, model)

	msgs, err := a.Process(context.Background(), s, "recommend running shoes")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Here are two great options!", msgs[0].Text)

	require.NotNil(t, msgs[0].Rich)
	require.Equal(t, store.ContentProducts, msgs[0].Rich.Kind)
	require.Len(t, msgs[0].Rich.Products, 2)
	assert.Equal(t, "Trail Runner X", msgs[0].Rich.Products[0].Name)
	assert.Equal(t, store.SourceWeb, msgs[0].Rich.Products[0].Source)

	// The results are remembered for index-based follow-ups.
	last := s.LastSearch()
	require.Len(t, last, 2)
	assert.Equal(t, "Road Glide 2", last[1].Name)

	// The second model call saw the tool response as a user-role turn.
	require.Equal(t, 2, model.calls)
	second := model.histories[1]
	final := second[len(second)-1]
	assert.Equal(t, genai.RoleUser, final.Role)
	require.Len(t, final.Parts, 1)
	require.NotNil(t, final.Parts[0].FunctionResponse)
	assert.Equal(t, toolSearchProducts, final.Parts[0].FunctionResponse.Name)
}

func TestAIAddToCartByIndex(t *testing.T) {
	t.Parallel()
	model := &fakeModel{responses: []*genai.Content{
		callContent(&genai.FunctionCall{Name: toolAddToCart, Args: map[string]any{"product_index": float64(1)}}),
		textContent("Added!"),
	}}
	a, s := newAIAgent(t, model)
	s.lastSearch = []store.Product{
		{ID: "w1", Name: "Desk Lamp", Price: 30},
		{ID: "w2", Name: "Desk Mat", Price: 18},
	}

	msgs, err := a.Process(context.Background(), s, "add the second one")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.NotNil(t, msgs[0].Rich)
	assert.Equal(t, store.ContentCart, msgs[0].Rich.Kind)

	items := s.Cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Desk Mat", items[0].Product.Name)
}

func TestAIAddToCartIndexZeroIsFirstResult(t *testing.T) {
	t.Parallel()
	model := &fakeModel{responses: []*genai.Content{
		callContent(&genai.FunctionCall{Name: toolAddToCart, Args: map[string]any{"product_index": float64(0)}}),
		textContent("Added!"),
	}}
	a, s := newAIAgent(t, model)
	s.lastSearch = []store.Product{
		{ID: "w1", Name: "Desk Lamp", Price: 30},
		{ID: "w2", Name: "Desk Mat", Price: 18},
	}

	_, err := a.Process(context.Background(), s, "add the first one")
	require.NoError(t, err)

	items := s.Cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Desk Lamp", items[0].Product.Name)
}

func TestAIAddToCartByName(t *testing.T) {
	t.Parallel()
	model := &fakeModel{responses: []*genai.Content{
		callContent(&genai.FunctionCall{Name: toolAddToCart, Args: map[string]any{"product_name": "lamp"}}),
		textContent("Done."),
	}}
	a, s := newAIAgent(t, model)
	s.lastSearch = []store.Product{{ID: "w1", Name: "Desk Lamp", Price: 30}}

	_, err := a.Process(context.Background(), s, "add the lamp")
	require.NoError(t, err)

	items := s.Cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Desk Lamp", items[0].Product.Name)
}

func TestAIAddToCartInvalidIndexExplains(t *testing.T) {
	t.Parallel()
	model := &fakeModel{responses: []*genai.Content{
		callContent(&genai.FunctionCall{Name: toolAddToCart, Args: map[string]any{"product_index": float64(9)}}),
		textContent("That one isn't available."),
	}}
	a, s := newAIAgent(t, model)
	s.lastSearch = []store.Product{{ID: "w1", Name: "Desk Lamp", Price: 30}}

	_, err := a.Process(context.Background(), s, "add number nine")
	require.NoError(t, err)
	assert.Empty(t, s.Cart.Items())

	// The tool response enumerated the valid choices for the model.
	second := model.histories[1]
	final := second[len(second)-1]
	resp := final.Parts[0].FunctionResponse.Response["result"].(string)
	assert.Contains(t, resp, "0. Desk Lamp")
}

func TestAICheckoutTool(t *testing.T) {
	t.Parallel()
	model := &fakeModel{responses: []*genai.Content{
		callContent(&genai.FunctionCall{Name: toolCheckout, Args: map[string]any{}}),
		textContent("Your order is on the way!"),
	}}
	a, s := newAIAgent(t, model)
	s.Cart.AddItem(store.Product{ID: "p1", Name: "Wireless Mouse", Price: 24.99}, 2)

	msgs, err := a.Process(context.Background(), s, "checkout please")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.NotNil(t, msgs[0].Rich)
	assert.Equal(t, store.ContentOrder, msgs[0].Rich.Kind)
	assert.Equal(t, store.OrderConfirmed, msgs[0].Rich.Order.Status)
	assert.Empty(t, s.Cart.Items())
	assert.Equal(t, 1, s.Orders.Count())
}

func TestAIRichContentLastToolWins(t *testing.T) {
	t.Parallel()
	// One model turn issues two calls; the cart view's content must be what
	// the user sees, not the search results.
	model := &fakeModel{responses: []*genai.Content{
		callContent(
			&genai.FunctionCall{
				Name: toolSearchProducts,
				Args: map[string]any{"products": []any{map[string]any{"name": "Desk Lamp", "price": 30.0}}},
			},
			&genai.FunctionCall{Name: toolViewCart, Args: map[string]any{}},
		),
		textContent("Found a lamp; your cart so far is below."),
	}}
	a, s := newAIAgent(t, model)
	s.Cart.AddItem(store.Product{ID: "p1", Name: "Ceramic Mug", Price: 14.99}, 1)

	msgs, err := a.Process(context.Background(), s, "find a lamp and show my cart")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.NotNil(t, msgs[0].Rich)
	assert.Equal(t, store.ContentCart, msgs[0].Rich.Kind)

	// Both responses travelled back in one user-role turn, in call order.
	second := model.histories[1]
	final := second[len(second)-1]
	require.Len(t, final.Parts, 2)
	assert.Equal(t, toolSearchProducts, final.Parts[0].FunctionResponse.Name)
	assert.Equal(t, toolViewCart, final.Parts[1].FunctionResponse.Name)
}

func TestAIIterationCap(t *testing.T) {
	t.Parallel()
	// The model never stops calling tools; the loop must cut it off.
	model := &fakeModel{responses: []*genai.Content{
		callContent(&genai.FunctionCall{Name: toolViewCart, Args: map[string]any{}}),
	}}
	a, s := newAIAgent(t, model)
	s.Cart.AddItem(store.Product{ID: "p1", Name: "Ceramic Mug", Price: 14.99}, 1)

	msgs, err := a.Process(context.Background(), s, "loop forever")
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxTurns, model.calls)
	require.Len(t, msgs, 1)
	assert.Equal(t, completionReply, msgs[0].Text)
	require.NotNil(t, msgs[0].Rich)
	assert.Equal(t, store.ContentCart, msgs[0].Rich.Kind)
}

func TestAISystemPromptCarriesState(t *testing.T) {
	t.Parallel()
	model := &fakeModel{responses: []*genai.Content{textContent("Noted.")}}
	a, s := newAIAgent(t, model)
	s.Cart.AddItem(store.Product{ID: "p1", Name: "Ceramic Mug", Price: 14.99}, 2)
	s.lastSearch = []store.Product{{ID: "w1", Name: "Desk Lamp", Price: 30}}

	_, err := a.Process(context.Background(), s, "thoughts?")
	require.NoError(t, err)

	require.Len(t, model.systems, 1)
	system := model.systems[0]
	assert.Contains(t, system, "Ceramic Mug x2")
	assert.Contains(t, system, "$29.98")
	assert.Contains(t, system, "0. Desk Lamp")
}

func TestAIEmptySearchCandidates(t *testing.T) {
	t.Parallel()
	model := &fakeModel{responses: []*genai.Content{
		callContent(&genai.FunctionCall{Name: toolSearchProducts, Args: map[string]any{"products": []any{}}}),
		textContent("Let me try again."),
	}}
	a, s := newAIAgent(t, model)

	msgs, err := a.Process(context.Background(), s, "find something")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Nil(t, msgs[0].Rich)
	assert.Empty(t, s.LastSearch())
}

func TestAIUnknownTool(t *testing.T) {
	t.Parallel()
	model := &fakeModel{responses: []*genai.Content{
		callContent(&genai.FunctionCall{Name: "teleport", Args: map[string]any{}}),
		textContent("Sorry, I can't do that."),
	}}
	a, s := newAIAgent(t, model)

	_, err := a.Process(context.Background(), s, "teleport me")
	require.NoError(t, err)

	second := model.histories[1]
	final := second[len(second)-1]
	resp := final.Parts[0].FunctionResponse.Response["result"].(string)
	assert.Contains(t, resp, "Unknown tool")
}

func TestAIHistoryAccumulatesAcrossTurns(t *testing.T) {
	t.Parallel()
	model := &fakeModel{responses: []*genai.Content{textContent("First."), textContent("Second.")}}
	a, s := newAIAgent(t, model)

	_, err := a.Process(context.Background(), s, "one")
	require.NoError(t, err)
	_, err = a.Process(context.Background(), s, "two")
	require.NoError(t, err)

	// user, model, user, model
	require.Len(t, s.history, 4)
	assert.Equal(t, "two", s.history[2].Parts[0].Text)
}
