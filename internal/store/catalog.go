package store

import "strings"

// Catalog is a read-only product catalog. Lookup helpers scan products in
// catalog order, which acts as the tie-break whenever several products
// satisfy the same matching tier.
type Catalog struct {
	products []Product
}

// NewCatalog creates a catalog from the given products.
func NewCatalog(products []Product) *Catalog {
	return &Catalog{products: products}
}

// DefaultCatalog returns the built-in demo catalog.
func DefaultCatalog() *Catalog {
	return NewCatalog([]Product{
		{ID: "p1", Name: "Wireless Mouse", Description: "Compact 2.4GHz wireless mouse with silent clicks", Price: 24.99, Image: "🖱️", Category: "Electronics", InStock: true, Source: SourceCatalog},
		{ID: "p2", Name: "Mechanical Keyboard", Description: "Tenkeyless mechanical keyboard with hot-swappable switches", Price: 89.99, Image: "⌨️", Category: "Electronics", InStock: true, Source: SourceCatalog},
		{ID: "p3", Name: "Noise-Cancelling Headphones", Description: "Over-ear wireless headphones with active noise cancelling", Price: 199.99, Image: "🎧", Category: "Electronics", InStock: true, Source: SourceCatalog},
		{ID: "p4", Name: "USB-C Charging Cable", Description: "Braided 2m USB-C to USB-C fast-charging cable", Price: 12.99, Image: "🔌", Category: "Electronics", InStock: true, Source: SourceCatalog},
		{ID: "p5", Name: "Cotton T-Shirt", Description: "Classic-fit crew neck shirt in organic cotton", Price: 19.99, Image: "👕", Category: "Clothing", InStock: true, Source: SourceCatalog},
		{ID: "p6", Name: "Denim Jacket", Description: "Mid-weight denim jacket with button front", Price: 64.99, Image: "🧥", Category: "Clothing", InStock: true, Source: SourceCatalog},
		{ID: "p7", Name: "Running Shoes", Description: "Lightweight road running shoes with cushioned sole", Price: 79.99, Image: "👟", Category: "Clothing", InStock: true, Source: SourceCatalog},
		{ID: "p8", Name: "Organic Coffee Beans", Description: "Single-origin medium roast, 500g whole bean bag", Price: 15.99, Image: "☕", Category: "Food", InStock: true, Source: SourceCatalog},
		{ID: "p9", Name: "Dark Chocolate Bar", Description: "72% cacao dark chocolate, fair trade", Price: 4.99, Image: "🍫", Category: "Food", InStock: true, Source: SourceCatalog},
		{ID: "p10", Name: "Scented Candle", Description: "Soy wax candle with cedar and vanilla notes", Price: 14.99, Image: "🕯️", Category: "Home", InStock: true, Source: SourceCatalog},
		{ID: "p11", Name: "Throw Blanket", Description: "Soft knitted throw blanket for couch or bed", Price: 34.99, Image: "🛋️", Category: "Home", InStock: true, Source: SourceCatalog},
		{ID: "p12", Name: "Ceramic Mug", Description: "Handmade 350ml ceramic mug, dishwasher safe", Price: 11.99, Image: "🍵", Category: "Home", InStock: true, Source: SourceCatalog},
	})
}

// All returns a copy of every product in catalog order.
func (c *Catalog) All() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Find returns products whose name, category, or description contains query
// (case-insensitive). An empty query returns the full catalog.
func (c *Catalog) Find(query string) []Product {
	if query == "" {
		return c.All()
	}

	q := strings.ToLower(query)
	var out []Product
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}

// BestMatch resolves the single best product for an add-to-cart query using a
// three-tier fallback: exact name equality, then name substring, then any
// query token longer than two characters appearing in the name. The first hit
// at each tier wins.
func (c *Catalog) BestMatch(query string) (Product, bool) {
	if query == "" {
		return Product{}, false
	}
	q := strings.ToLower(query)

	for _, p := range c.products {
		if strings.ToLower(p.Name) == q {
			return p, true
		}
	}

	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			return p, true
		}
	}

	var words []string
	for _, w := range strings.Fields(q) {
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	for _, p := range c.products {
		name := strings.ToLower(p.Name)
		for _, w := range words {
			if strings.Contains(name, w) {
				return p, true
			}
		}
	}

	return Product{}, false
}
