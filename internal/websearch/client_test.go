package websearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentpay/agentpay/internal/log"
)

// fakeSearch serves canned results keyed by the "buy <name>" query.
func fakeSearch(t *testing.T, results map[string][]Result, status map[string]int) *httptest.Server {
	t.Helper()
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)

		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		name := strings.TrimPrefix(req.Query, "buy ")

		mu.Lock()
		defer mu.Unlock()
		if code, ok := status[name]; ok {
			w.WriteHeader(code)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(searchResponse{Results: results[name]})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := New(Config{APIKey: "test-key", Logger: log.NewNop(), BaseURL: baseURL})
	require.NoError(t, err)
	return c
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Logger: log.NewNop()})
	assert.Error(t, err, "missing API key")

	_, err = New(Config{APIKey: "key"})
	assert.Error(t, err, "missing logger")
}

func TestClient_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("prefers product pages over listings", func(t *testing.T) {
		t.Parallel()
		srv := fakeSearch(t, map[string][]Result{
			"JBL Vibe Buds": {
				{Title: "wireless earbuds - Amazon.com", URL: "https://www.amazon.com/s?k=earbuds"},
				{Title: "JBL Vibe Buds - Amazon.com", URL: "https://www.amazon.com/dp/B0BXYZ"},
			},
		}, nil)
		c := newTestClient(t, srv.URL)

		hit, err := c.Resolve(context.Background(), "JBL Vibe Buds")
		require.NoError(t, err)
		require.NotNil(t, hit)
		assert.Equal(t, "https://www.amazon.com/dp/B0BXYZ", hit.URL)
	})

	t.Run("falls back to first hit", func(t *testing.T) {
		t.Parallel()
		srv := fakeSearch(t, map[string][]Result{
			"thing": {
				{Title: "thing search - Amazon.com", URL: "https://www.amazon.com/s?k=thing"},
				{Title: "thing listing", URL: "https://www.walmart.com/search?q=thing"},
			},
		}, nil)
		c := newTestClient(t, srv.URL)

		hit, err := c.Resolve(context.Background(), "thing")
		require.NoError(t, err)
		require.NotNil(t, hit)
		assert.Equal(t, "https://www.amazon.com/s?k=thing", hit.URL)
	})

	t.Run("no results", func(t *testing.T) {
		t.Parallel()
		srv := fakeSearch(t, nil, nil)
		c := newTestClient(t, srv.URL)

		hit, err := c.Resolve(context.Background(), "missing")
		require.NoError(t, err)
		assert.Nil(t, hit)
	})

	t.Run("server error", func(t *testing.T) {
		t.Parallel()
		srv := fakeSearch(t, nil, map[string]int{"broken": http.StatusInternalServerError})
		c := newTestClient(t, srv.URL)

		_, err := c.Resolve(context.Background(), "broken")
		assert.Error(t, err)
	})
}

func TestClient_EnrichProducts(t *testing.T) {
	t.Parallel()

	srv := fakeSearch(t, map[string][]Result{
		"JBL Vibe Buds": {{
			Title:   "JBL Vibe Buds True Wireless Earbuds - Amazon.com",
			URL:     "https://www.amazon.com/dp/B0BXYZ",
			Content: "Deep bass earbuds for $49.95 with bluetooth 5.2",
		}},
	}, map[string]int{"Flaky Gadget": http.StatusBadGateway})
	c := newTestClient(t, srv.URL)

	products := c.EnrichProducts(context.Background(), []Candidate{
		{Name: "JBL Vibe Buds"},
		{Name: "Flaky Gadget", Price: 19.99, Category: "Electronics"},
		{Name: "Unknown Widget"},
	})
	require.Len(t, products, 3)

	// Resolved candidate: cleaned title, URL, inferred price and category.
	assert.Equal(t, "JBL Vibe Buds True Wireless Earbuds", products[0].Name)
	assert.Equal(t, "https://www.amazon.com/dp/B0BXYZ", products[0].URL)
	assert.InDelta(t, 49.95, products[0].Price, 1e-9)
	assert.Equal(t, "Audio", products[0].Category)

	// Failed lookup keeps caller-supplied fields and lacks a URL.
	assert.Equal(t, "Flaky Gadget", products[1].Name)
	assert.Empty(t, products[1].URL)
	assert.InDelta(t, 19.99, products[1].Price, 1e-9)
	assert.Equal(t, "Electronics", products[1].Category)

	// Empty result set degrades the same way.
	assert.Equal(t, "Unknown Widget", products[2].Name)
	assert.Empty(t, products[2].URL)
	assert.Equal(t, "General", products[2].Category)

	// Every synthesized product is a distinct in-stock web product.
	ids := map[string]bool{}
	for _, p := range products {
		assert.True(t, p.InStock)
		assert.Contains(t, p.ID, "web-")
		assert.False(t, ids[p.ID], "duplicate product ID %s", p.ID)
		ids[p.ID] = true
	}
}

func TestCleanTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"JBL Vibe Buds - Amazon.com: Electronics", "JBL Vibe Buds"},
		{"Sony WH-1000XM5 | Best Buy", "Sony WH-1000XM5"},
		{"Cozy Blanket (50x60 inch)", "Cozy Blanket"},
		{"Plain Title", "Plain Title"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanTitle(tt.in), "input %q", tt.in)
	}
}

func TestExtractPrice(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 29.99, extractPrice("now only $29.99 shipped"), 1e-9)
	assert.InDelta(t, 1299.00, extractPrice("was $1,299.00 at launch"), 1e-9)
	assert.Zero(t, extractPrice("no price here"))
}

func TestExtractCategory(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Audio", extractCategory("JBL earbuds", ""))
	assert.Equal(t, "Clothing", extractCategory("", "lightweight jacket for travel"))
	assert.Equal(t, "General", extractCategory("mystery", "item"))
}

func TestSnippet(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", snippet("short", 10))
	assert.Equal(t, "abcde", snippet("abcdefgh", 5))
	// Multibyte input truncates by rune count, never mid-character.
	assert.Equal(t, "héllo", snippet("héllo wörld", 5))
}

func TestIsProductPage(t *testing.T) {
	t.Parallel()

	assert.True(t, isProductPage("https://www.amazon.com/dp/B0BXYZ"))
	assert.True(t, isProductPage("https://www.walmart.com/ip/12345"))
	assert.True(t, isProductPage("https://www.jbl.com/true-wireless/VIBEBUDS.html"))
	assert.False(t, isProductPage("https://www.amazon.com/s?k=earbuds"))
	assert.False(t, isProductPage("https://www.target.com/c/headphones"))
}
