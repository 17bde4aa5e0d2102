package agent

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/genai"

	"github.com/agentpay/agentpay/internal/store"
	"github.com/agentpay/agentpay/internal/websearch"
)

// Tool names exposed to the model.
const (
	toolSearchProducts = "search_products"
	toolAddToCart      = "add_to_cart"
	toolViewCart       = "view_cart"
	toolCheckout       = "checkout"
)

// toolDeclarations describes the four shopping tools the model may call.
// The declarations are immutable; build them once.
var toolDeclarations = []*genai.FunctionDeclaration{
	{
		Name:        toolSearchProducts,
		Description: "Present product recommendations to the user. Supply products you recommend from your own knowledge; each is resolved to a real purchase link.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"products": {
					Type:        genai.TypeArray,
					Description: "Products to recommend, most relevant first.",
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"name":        {Type: genai.TypeString, Description: "Specific product name, e.g. 'Logitech MX Master 3S'."},
							"price":       {Type: genai.TypeNumber, Description: "Estimated price in USD."},
							"description": {Type: genai.TypeString, Description: "One-sentence description."},
							"category":    {Type: genai.TypeString, Description: "Product category."},
						},
						Required: []string{"name"},
					},
				},
			},
			Required: []string{"products"},
		},
	},
	{
		Name:        toolAddToCart,
		Description: "Add a product from the latest search results to the user's cart.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"product_index": {Type: genai.TypeNumber, Description: "0-based index into the latest search results."},
				"product_name":  {Type: genai.TypeString, Description: "Product name, used when the index is not known."},
			},
		},
	},
	{
		Name:        toolViewCart,
		Description: "Show the user the current contents of their cart.",
		Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}},
	},
	{
		Name:        toolCheckout,
		Description: "Place an order for everything in the user's cart.",
		Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}},
	},
}

// toolResult is what a tool hands back: text for the model and, optionally,
// rich content destined for the user.
type toolResult struct {
	text string
	rich *store.Content
}

// executeTool runs one tool call against the session. Tools never fail the
// turn; anything unexpected becomes explanatory text the model can react to.
func (a *Agent) executeTool(ctx context.Context, s *Session, name string, args map[string]any) toolResult {
	ctx, span := a.tracer.Start(ctx, "agent.tool")
	span.SetAttributes(attribute.String("tool.name", name))
	defer span.End()

	switch name {
	case toolSearchProducts:
		return a.toolSearch(ctx, s, args)
	case toolAddToCart:
		return a.toolAddToCart(s, args)
	case toolViewCart:
		return a.toolViewCart(s)
	case toolCheckout:
		return a.toolCheckout(s)
	default:
		return toolResult{text: fmt.Sprintf("Unknown tool: %s", name)}
	}
}

func (a *Agent) toolSearch(ctx context.Context, s *Session, args map[string]any) toolResult {
	candidates := parseCandidates(args["products"])
	if len(candidates) == 0 {
		return toolResult{text: "No product recommendations were provided. Call search_products again with at least one product."}
	}

	products := a.resolver.EnrichProducts(ctx, candidates)
	s.setLastSearch(products)

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d product(s), now shown to the user:\n", len(products))
	for i, p := range products {
		fmt.Fprintf(&b, "%d. %s — %s (%s)", i, p.Name, store.FormatPrice(p.Price), p.Category)
		if p.URL != "" {
			fmt.Fprintf(&b, " — %s", p.URL)
		}
		b.WriteString("\n")
	}
	return toolResult{text: b.String(), rich: store.ProductsContent(products)}
}

func (a *Agent) toolAddToCart(s *Session, args map[string]any) toolResult {
	product, ok := a.resolveCartTarget(s, args)
	if !ok {
		if len(s.lastSearch) == 0 {
			return toolResult{text: "There are no search results to add from. Call search_products first."}
		}
		var b strings.Builder
		b.WriteString("Product not found. Current search results are:\n")
		for i, p := range s.lastSearch {
			fmt.Fprintf(&b, "%d. %s\n", i, p.Name)
		}
		b.WriteString("Call add_to_cart again with a valid product_index.")
		return toolResult{text: b.String()}
	}

	s.Cart.AddItem(product, 1)
	return toolResult{
		text: fmt.Sprintf("Added %s to the cart. The cart now has %d item(s) totaling %s.",
			product.Name, s.Cart.ItemCount(), store.FormatPrice(s.Cart.Total())),
		rich: store.CartContent(s.Cart.Items(), s.Cart.Total()),
	}
}

// resolveCartTarget maps tool arguments to a product: a valid 0-based index
// into the latest search wins, then a name match against the latest search,
// then a name match against items already in the cart.
func (a *Agent) resolveCartTarget(s *Session, args map[string]any) (store.Product, bool) {
	if idx, ok := args["product_index"].(float64); ok {
		i := int(idx)
		if i >= 0 && i < len(s.lastSearch) {
			return s.lastSearch[i], true
		}
	}
	name, _ := args["product_name"].(string)
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return store.Product{}, false
	}
	for _, p := range s.lastSearch {
		if strings.Contains(strings.ToLower(p.Name), name) {
			return p, true
		}
	}
	for _, item := range s.Cart.Items() {
		if strings.Contains(strings.ToLower(item.Product.Name), name) {
			return item.Product, true
		}
	}
	return store.Product{}, false
}

func (a *Agent) toolViewCart(s *Session) toolResult {
	items := s.Cart.Items()
	if len(items) == 0 {
		return toolResult{text: "The cart is empty."}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "The cart has %d item(s) totaling %s:\n", s.Cart.ItemCount(), store.FormatPrice(s.Cart.Total()))
	for _, item := range items {
		fmt.Fprintf(&b, "- %s x%d (%s each)\n", item.Product.Name, item.Quantity, store.FormatPrice(item.Product.Price))
	}
	return toolResult{text: b.String(), rich: store.CartContent(items, s.Cart.Total())}
}

func (a *Agent) toolCheckout(s *Session) toolResult {
	items := s.Cart.Items()
	if len(items) == 0 {
		return toolResult{text: "The cart is empty; there is nothing to check out."}
	}
	order := s.Orders.PlaceOrder(items, s.Cart.Total())
	s.Cart.Clear()
	return toolResult{
		text: fmt.Sprintf("Order %s placed: %d item(s) totaling %s, status %s.",
			order.ID, len(order.Items), store.FormatPrice(order.Total), order.Status),
		rich: store.OrderContent(order),
	}
}

// parseCandidates decodes the model-supplied product array. Malformed entries
// are skipped rather than failing the whole call.
func parseCandidates(raw any) []websearch.Candidate {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	candidates := make([]websearch.Candidate, 0, len(list))
	for _, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		name, _ := m["name"].(string)
		if strings.TrimSpace(name) == "" {
			continue
		}
		c := websearch.Candidate{Name: name}
		if price, ok := m["price"].(float64); ok {
			c.Price = price
		}
		c.Description, _ = m["description"].(string)
		c.Category, _ = m["category"].(string)
		candidates = append(candidates, c)
	}
	return candidates
}
