package store

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Orders is the order history, newest first.
//
// Orders is safe for concurrent use by multiple goroutines.
type Orders struct {
	mu     sync.Mutex
	orders []Order
}

// NewOrders creates an empty order history.
func NewOrders() *Orders {
	return &Orders{}
}

// PlaceOrder snapshots the given items into a new confirmed order, assigns a
// short opaque ID, and prepends it to the history. Mutating the source slice
// afterwards does not affect the placed order.
func (o *Orders) PlaceOrder(items []CartItem, total float64) Order {
	snapshot := make([]CartItem, len(items))
	copy(snapshot, items)

	order := Order{
		ID:        newOrderID(),
		Items:     snapshot,
		Total:     total,
		Status:    OrderConfirmed,
		CreatedAt: time.Now(),
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.orders = append([]Order{order}, o.orders...)
	return order
}

// Get returns the order with the given ID.
func (o *Orders) Get(id string) (Order, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, order := range o.orders {
		if order.ID == id {
			return order, true
		}
	}
	return Order{}, false
}

// Latest returns the most recently placed order.
func (o *Orders) Latest() (Order, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.orders) == 0 {
		return Order{}, false
	}
	return o.orders[0], true
}

// All returns a snapshot copy of the history, newest first.
func (o *Orders) All() []Order {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]Order, len(o.orders))
	copy(out, o.orders)
	return out
}

// Count returns the number of placed orders.
func (o *Orders) Count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.orders)
}

// newOrderID derives a short opaque order code from a UUID.
// The first eight characters of a v4 UUID are hex, so the code is
// unambiguous in uppercase.
func newOrderID() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
