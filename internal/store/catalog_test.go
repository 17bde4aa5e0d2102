package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Find(t *testing.T) {
	t.Parallel()

	c := DefaultCatalog()

	t.Run("empty query returns full catalog", func(t *testing.T) {
		t.Parallel()
		assert.Len(t, c.Find(""), c.Len())
	})

	t.Run("matches name case-insensitively", func(t *testing.T) {
		t.Parallel()
		results := c.Find("WIRELESS MOUSE")
		require.Len(t, results, 1)
		assert.Equal(t, "Wireless Mouse", results[0].Name)
	})

	t.Run("matches category", func(t *testing.T) {
		t.Parallel()
		results := c.Find("clothing")
		require.NotEmpty(t, results)
		for _, p := range results {
			assert.Equal(t, "Clothing", p.Category)
		}
	})

	t.Run("matches description", func(t *testing.T) {
		t.Parallel()
		results := c.Find("noise cancelling")
		require.NotEmpty(t, results)
	})

	t.Run("no match returns empty", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, c.Find("xyzzy"))
	})
}

func TestCatalog_BestMatch(t *testing.T) {
	t.Parallel()

	c := DefaultCatalog()

	t.Run("tier 1 exact name", func(t *testing.T) {
		t.Parallel()
		p, ok := c.BestMatch("wireless mouse")
		require.True(t, ok)
		assert.Equal(t, "Wireless Mouse", p.Name)
	})

	t.Run("tier 2 name substring", func(t *testing.T) {
		t.Parallel()
		p, ok := c.BestMatch("keyboard")
		require.True(t, ok)
		assert.Equal(t, "Mechanical Keyboard", p.Name)
	})

	t.Run("tier 3 token match", func(t *testing.T) {
		t.Parallel()
		p, ok := c.BestMatch("some nice headphones please")
		require.True(t, ok)
		assert.Equal(t, "Noise-Cancelling Headphones", p.Name)
	})

	t.Run("tokens of length two or less are ignored", func(t *testing.T) {
		t.Parallel()
		_, ok := c.BestMatch("a to it")
		assert.False(t, ok)
	})

	t.Run("catalog order breaks ties", func(t *testing.T) {
		t.Parallel()
		// "wireless" is a substring of both the mouse and the headphones
		// description, but only a name substring of the mouse, which also
		// comes first in catalog order.
		p, ok := c.BestMatch("wireless")
		require.True(t, ok)
		assert.Equal(t, "p1", p.ID)
	})

	t.Run("empty query never matches", func(t *testing.T) {
		t.Parallel()
		_, ok := c.BestMatch("")
		assert.False(t, ok)
	})
}

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$24.99", FormatPrice(24.99))
	assert.Equal(t, "$0.00", FormatPrice(0))
	assert.Equal(t, "$1234.50", FormatPrice(1234.5))
}
