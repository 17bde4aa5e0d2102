package tui

import (
	"fmt"
	"strings"

	"github.com/agentpay/agentpay/internal/store"
)

// renderContent renders structured message content as indented plain text
// under the agent's reply.
func (t *TUI) renderContent(c *store.Content) string {
	switch c.Kind {
	case store.ContentProducts:
		return t.renderProducts(c.Products)
	case store.ContentCart:
		return t.renderCart(c.Items, c.Total)
	case store.ContentOrder:
		return t.renderOrder(c.Order)
	case store.ContentProcessing:
		return t.styles.System.Render("  ⏳ processing payment...")
	default:
		return ""
	}
}

func (t *TUI) renderProducts(products []store.Product) string {
	var b strings.Builder
	for i, p := range products {
		fmt.Fprintf(&b, "  %d. %s %s — %s",
			i+1, p.Image, t.styles.Highlight.Render(p.Name), store.FormatPrice(p.Price))
		if p.Category != "" {
			fmt.Fprintf(&b, "  [%s]", p.Category)
		}
		b.WriteString("\n")
		if p.Description != "" {
			fmt.Fprintf(&b, "     %s\n", t.styles.System.Render(p.Description))
		}
		if p.URL != "" {
			fmt.Fprintf(&b, "     %s\n", t.styles.System.Render(p.URL))
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (t *TUI) renderCart(items []store.CartItem, total float64) string {
	if len(items) == 0 {
		return t.styles.System.Render("  (cart is empty)")
	}
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "  %s x%d — %s\n",
			t.styles.Highlight.Render(item.Product.Name), item.Quantity,
			store.FormatPrice(item.Product.Price*float64(item.Quantity)))
	}
	fmt.Fprintf(&b, "  Total: %s", t.styles.Highlight.Render(store.FormatPrice(total)))
	return b.String()
}

func (t *TUI) renderOrder(order *store.Order) string {
	if order == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "  Order %s — %s\n",
		t.styles.Highlight.Render(order.ID), string(order.Status))
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  %s x%d\n", item.Product.Name, item.Quantity)
	}
	fmt.Fprintf(&b, "  Total: %s", t.styles.Highlight.Render(store.FormatPrice(order.Total)))
	return b.String()
}

func (t *TUI) renderOrders() string {
	orders := t.session.Orders.All()
	if len(orders) == 0 {
		return "No orders yet."
	}
	var b strings.Builder
	for _, order := range orders {
		fmt.Fprintf(&b, "%s — %s — %d item(s) — %s\n",
			order.ID, string(order.Status), len(order.Items), store.FormatPrice(order.Total))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
