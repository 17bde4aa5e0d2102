package store

// ContentKind discriminates the Content union.
type ContentKind string

// Content kinds. Exactly one is active per Content value.
const (
	ContentProducts   ContentKind = "products"   // product list
	ContentCart       ContentKind = "cart"       // cart items + total
	ContentOrder      ContentKind = "order"      // a placed order
	ContentProcessing ContentKind = "processing" // transient payment marker, no payload
)

// Content is the structured payload attached to an agent reply for rich
// rendering. It is a tagged union: Kind selects which payload fields are
// meaningful. Renderers must switch on Kind exhaustively.
type Content struct {
	Kind ContentKind `json:"kind"`

	Products []Product  `json:"products,omitempty"` // ContentProducts
	Items    []CartItem `json:"items,omitempty"`    // ContentCart
	Total    float64    `json:"total,omitempty"`    // ContentCart
	Order    *Order     `json:"order,omitempty"`    // ContentOrder
}

// ProductsContent builds a products payload.
func ProductsContent(products []Product) *Content {
	return &Content{Kind: ContentProducts, Products: products}
}

// CartContent builds a cart payload.
func CartContent(items []CartItem, total float64) *Content {
	return &Content{Kind: ContentCart, Items: items, Total: total}
}

// OrderContent builds an order payload.
func OrderContent(order Order) *Content {
	return &Content{Kind: ContentOrder, Order: &order}
}

// ProcessingContent builds the transient payment-processing marker.
func ProcessingContent() *Content {
	return &Content{Kind: ContentProcessing}
}
