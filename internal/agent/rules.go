package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentpay/agentpay/internal/store"
)

const greetingReply = "Hi there! 👋 I'm your shopping assistant. I can help you search for products, manage your cart, and check out. What are you looking for today?"

const helpReply = `Here's what I can do:

- **Search products** — try "search for headphones" or "show me electronics"
- **Add to cart** — try "add the wireless mouse to cart"
- **View your cart** — try "what's in my cart?"
- **Checkout** — try "checkout" when you're ready
- **Order status** — try "where's my order?"`

const unknownReply = "I'm not sure I understood that. Try asking me to **search for products**, **add something to your cart**, or say **help** to see everything I can do."

// dispatch routes a classified intent to its handler. Every branch emits at
// least one agent message; none of them can fail, so user input never
// produces an error here.
func (a *Agent) dispatch(ctx context.Context, s *Session, intent Intent, query string) {
	switch intent {
	case IntentGreeting:
		s.Messages.AddAgentMessage(greetingReply, nil)
	case IntentHelp:
		s.Messages.AddAgentMessage(helpReply, nil)
	case IntentSearch:
		a.handleSearch(s, query)
	case IntentBrowse:
		a.handleBrowse(s, query)
	case IntentAddToCart:
		a.handleAddToCart(s, query)
	case IntentViewCart:
		a.handleViewCart(s)
	case IntentCheckout:
		a.handleCheckout(ctx, s)
	case IntentOrderStatus:
		a.handleOrderStatus(s)
	default:
		s.Messages.AddAgentMessage(unknownReply, nil)
	}
}

func (a *Agent) handleSearch(s *Session, query string) {
	products := s.Catalog.Find(query)
	if len(products) == 0 {
		s.Messages.AddAgentMessage(fmt.Sprintf("I couldn't find anything matching **%s**. Try a different search, or say \"browse\" to see everything we have.", query), nil)
		return
	}
	s.setLastSearch(products)

	text := fmt.Sprintf("Here's what I found for **%s**:", query)
	if query == "" {
		text = "Here's everything we have in stock:"
	}
	s.Messages.AddAgentMessage(text, store.ProductsContent(products))
}

func (a *Agent) handleBrowse(s *Session, category string) {
	var products []store.Product
	var text string
	if category == "" {
		products = s.Catalog.All()
		text = "Here's our full catalog:"
	} else {
		products = s.Catalog.Find(category)
		text = fmt.Sprintf("Here's what we have in **%s**:", category)
	}
	if len(products) == 0 {
		s.Messages.AddAgentMessage(fmt.Sprintf("Nothing in **%s** right now. Say \"browse\" to see the full catalog.", category), nil)
		return
	}
	s.setLastSearch(products)
	s.Messages.AddAgentMessage(text, store.ProductsContent(products))
}

func (a *Agent) handleAddToCart(s *Session, query string) {
	if strings.TrimSpace(query) == "" {
		s.Messages.AddAgentMessage("What would you like to add? Try something like \"add the wireless mouse to cart\".", nil)
		return
	}
	product, ok := s.Catalog.BestMatch(query)
	if !ok {
		s.Messages.AddAgentMessage(fmt.Sprintf("I couldn't find **%s** in our catalog. Try \"search for %s\" to see what's available.", query, query), nil)
		return
	}
	s.Cart.AddItem(product, 1)

	items := s.Cart.Items()
	s.Messages.AddAgentMessage(
		fmt.Sprintf("Added **%s** to your cart! 🛒 You now have %d item(s) totaling **%s**.",
			product.Name, s.Cart.ItemCount(), store.FormatPrice(s.Cart.Total())),
		store.CartContent(items, s.Cart.Total()),
	)
}

func (a *Agent) handleViewCart(s *Session) {
	items := s.Cart.Items()
	if len(items) == 0 {
		s.Messages.AddAgentMessage("Your cart is empty. Search for products and add something you like!", nil)
		return
	}
	s.Messages.AddAgentMessage(
		fmt.Sprintf("You have %d item(s) in your cart totaling **%s**. Say \"checkout\" when you're ready!",
			s.Cart.ItemCount(), store.FormatPrice(s.Cart.Total())),
		store.CartContent(items, s.Cart.Total()),
	)
}

// handleCheckout emits two messages: an immediate processing notice, then the
// confirmation once the simulated payment delay elapses. The cart is cleared
// only after the order is recorded, so a cancelled context leaves it intact.
func (a *Agent) handleCheckout(ctx context.Context, s *Session) {
	items := s.Cart.Items()
	if len(items) == 0 {
		s.Messages.AddAgentMessage("Your cart is empty — there's nothing to check out yet. Want me to search for something?", nil)
		return
	}

	s.Messages.AddAgentMessage("Processing your order... 💳", store.ProcessingContent())

	if !a.sleep(ctx, a.checkoutDelay) {
		return
	}

	order := s.Orders.PlaceOrder(items, s.Cart.Total())
	s.Cart.Clear()

	s.Messages.AddAgentMessage(
		fmt.Sprintf("🎉 Order **%s** confirmed! Your %d item(s) totaling **%s** are on the way.",
			order.ID, len(order.Items), store.FormatPrice(order.Total)),
		store.OrderContent(order),
	)
}

func (a *Agent) handleOrderStatus(s *Session) {
	order, ok := s.Orders.Latest()
	if !ok {
		s.Messages.AddAgentMessage("You haven't placed any orders yet. Fill your cart and say \"checkout\" to place one!", nil)
		return
	}
	s.Messages.AddAgentMessage(
		fmt.Sprintf("Your latest order **%s** is **%s** — %d item(s) totaling **%s**.",
			order.ID, order.Status, len(order.Items), store.FormatPrice(order.Total)),
		store.OrderContent(order),
	)
}
