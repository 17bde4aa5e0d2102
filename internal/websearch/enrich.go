package websearch

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/agentpay/agentpay/internal/store"
)

// maxConcurrentLookups caps the resolution fan-out per batch.
const maxConcurrentLookups = 5

// Candidate is a caller-supplied product descriptor awaiting enrichment.
// Only Name is required.
type Candidate struct {
	Name        string
	Price       float64
	Description string
	Category    string
}

// EnrichProducts resolves a purchase URL for every candidate concurrently and
// synthesizes web-sourced products, preserving candidate order. A failed
// lookup degrades that one candidate: it keeps the caller-supplied fields and
// simply lacks a URL. One candidate's failure never aborts the batch.
func (c *Client) EnrichProducts(ctx context.Context, candidates []Candidate) []store.Product {
	hits := make([]*Result, len(candidates))

	var g errgroup.Group
	g.SetLimit(maxConcurrentLookups)
	for i, cand := range candidates {
		g.Go(func() error {
			hit, err := c.Resolve(ctx, cand.Name)
			if err != nil {
				c.logger.Warn("product resolution failed, degrading candidate",
					"product", cand.Name, "error", err)
				return nil // isolate the failure
			}
			hits[i] = hit
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors

	products := make([]store.Product, len(candidates))
	for i, cand := range candidates {
		products[i] = synthesize(cand, hits[i])
	}
	return products
}

// synthesize merges a candidate with its search hit, preferring caller-supplied
// fields and inferring the rest from the hit.
func synthesize(cand Candidate, hit *Result) store.Product {
	p := store.Product{
		ID:          "web-" + uuid.NewString()[:8],
		Name:        cand.Name,
		Description: cand.Description,
		Price:       cand.Price,
		Image:       "🔍",
		Category:    cand.Category,
		InStock:     true,
		Source:      store.SourceWeb,
	}

	if hit == nil {
		if p.Category == "" {
			p.Category = "General"
		}
		return p
	}

	if title := cleanTitle(hit.Title); title != "" {
		p.Name = title
	}
	if p.Description == "" {
		p.Description = snippet(hit.Content, 150)
	}
	if p.Price == 0 {
		if price := extractPrice(hit.Content); price > 0 {
			p.Price = price
		} else {
			p.Price = extractPrice(hit.Title)
		}
	}
	if p.Category == "" {
		p.Category = extractCategory(hit.Title, hit.Content)
	}
	p.URL = hit.URL
	return p
}

var (
	retailerSuffixRe = regexp.MustCompile(`(?i)\s*[-|:]\s*(Amazon\.com|Amazon|Best Buy|Walmart|Target|eBay|Newegg).*$`)
	parenSuffixRe    = regexp.MustCompile(`\s*\(.*?\)\s*$`)
	priceRe          = regexp.MustCompile(`\$(\d[\d,]*\.?\d{0,2})`)
)

// cleanTitle strips retailer suffixes and trailing parentheticals from a
// search hit title.
func cleanTitle(title string) string {
	title = retailerSuffixRe.ReplaceAllString(title, "")
	title = parenSuffixRe.ReplaceAllString(title, "")
	return strings.TrimSpace(title)
}

// extractPrice pulls the first dollar amount out of free text. Returns 0 when
// none is found.
func extractPrice(text string) float64 {
	m := priceRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	price, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0
	}
	return price
}

// categoryRules maps keyword patterns to category labels, checked in order.
var categoryRules = []struct {
	re       *regexp.Regexp
	category string
}{
	{regexp.MustCompile(`headphone|earbud|speaker|audio|bluetooth`), "Audio"},
	{regexp.MustCompile(`laptop|computer|pc|monitor|keyboard|mouse`), "Electronics"},
	{regexp.MustCompile(`phone|mobile|tablet|ipad`), "Mobile"},
	{regexp.MustCompile(`shirt|dress|shoe|clothing|apparel|jacket|pants`), "Clothing"},
	{regexp.MustCompile(`food|snack|grocery|organic`), "Food & Grocery"},
	{regexp.MustCompile(`home|kitchen|furniture|decor|blanket|candle`), "Home"},
	{regexp.MustCompile(`camera|photo|lens`), "Camera"},
	{regexp.MustCompile(`game|gaming|console|puzzle|toy`), "Toys & Games"},
	{regexp.MustCompile(`book|reading`), "Books"},
	{regexp.MustCompile(`beauty|skincare|makeup|cosmetic`), "Beauty"},
}

// extractCategory guesses a category label from hit text.
func extractCategory(title, content string) string {
	text := strings.ToLower(title + " " + content)
	for _, rule := range categoryRules {
		if rule.re.MatchString(text) {
			return rule.category
		}
	}
	return "General"
}

// productPageRules match URLs of actual product pages at major retailers.
var productPageRules = []*regexp.Regexp{
	regexp.MustCompile(`amazon\.com.*/dp/`),
	regexp.MustCompile(`amazon\.com.*/gp/product/`),
	regexp.MustCompile(`walmart\.com/ip/`),
	regexp.MustCompile(`bestbuy\.com/(site/|product/).*\d`),
	regexp.MustCompile(`target\.com/p/`),
	regexp.MustCompile(`ebay\.com/itm/`),
}

var bigRetailerRe = regexp.MustCompile(`amazon|walmart|bestbuy|target|ebay`)

// isProductPage filters out category, search, and listing pages; for known
// retailers only direct product pages pass, while other domains (e.g. brand
// stores) are accepted as-is.
func isProductPage(url string) bool {
	for _, re := range productPageRules {
		if re.MatchString(url) {
			return true
		}
	}
	return !bigRetailerRe.MatchString(url)
}

// snippet truncates s to at most n runes.
func snippet(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
