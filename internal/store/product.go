// Package store holds the in-memory commerce state for a shopping session:
// the product catalog, the cart, the order history, and the chat transcript.
//
// Each store is safe for concurrent use and is mutated only through its
// exported operations. State lives for the process lifetime; there is no
// persistence layer.
package store

import (
	"fmt"
	"time"
)

// ProductSource tags where a product came from.
type ProductSource string

// Product origins.
const (
	SourceCatalog ProductSource = "catalog" // static demo catalog
	SourceWeb     ProductSource = "web"     // synthesized from a web search
)

// Product is an immutable product description.
// A zero Price means the price is unknown.
type Product struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Image       string        `json:"image"` // display glyph
	Category    string        `json:"category"`
	InStock     bool          `json:"inStock"`
	URL         string        `json:"url,omitempty"`
	Source      ProductSource `json:"source,omitempty"`
}

// CartItem pairs a product with a positive quantity.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// OrderStatus is the lifecycle state of an order.
// Transitions are forward-only: processing → confirmed → delivered.
type OrderStatus string

// Order lifecycle states.
const (
	OrderProcessing OrderStatus = "processing"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderDelivered  OrderStatus = "delivered"
)

// Order is a placed order. Items are a snapshot taken at checkout time and
// never alias the live cart.
type Order struct {
	ID        string      `json:"id"`
	Items     []CartItem  `json:"items"`
	Total     float64     `json:"total"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

// FormatPrice renders a currency amount for user-facing replies.
func FormatPrice(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
