package agent

import (
	"regexp"
	"strings"
)

// Intent is the classified purpose of a user utterance.
type Intent string

// Recognized intents.
const (
	IntentGreeting    Intent = "greeting"
	IntentHelp        Intent = "help"
	IntentCheckout    Intent = "checkout"
	IntentViewCart    Intent = "view_cart"
	IntentOrderStatus Intent = "order_status"
	IntentAddToCart   Intent = "add_to_cart"
	IntentSearch      Intent = "search"
	IntentBrowse      Intent = "browse"
	IntentUnknown     Intent = "unknown"
)

var (
	greetingRe    = regexp.MustCompile(`^(hi|hello|hey|howdy|yo|sup|greetings)\b`)
	helpRe        = regexp.MustCompile(`\b(help|what can you do|capabilities|commands)\b`)
	checkoutRe    = regexp.MustCompile(`\b(checkout|pay|purchase|buy now|place order)\b`)
	viewCartRe    = regexp.MustCompile(`\b(my cart|view cart|show cart|what'?s in my cart|cart items)\b`)
	orderStatusRe = regexp.MustCompile(`\b(order|status|tracking|my orders)\b`)
	addRe         = regexp.MustCompile(`\badd\b`)
	searchVerbRe  = regexp.MustCompile(`\b(search|find|look for|looking for)\b`)
	browseRe      = regexp.MustCompile(`\b(browse|show|products|shop|catalog|what do you have|categories|all items)\b`)

	toCartRe   = regexp.MustCompile(`\bto\s*(my\s*)?cart\b`)
	forRe      = regexp.MustCompile(`\bfor\b`)
	categoryRe = regexp.MustCompile(`\b(electronics|clothing|food|grocery|home)\b`)
)

// intentRule pairs a predicate pattern with an optional query extractor.
// Rules are evaluated in order; the first match wins and later rules are
// never consulted.
type intentRule struct {
	intent  Intent
	match   *regexp.Regexp
	extract func(lower string) string
}

// intentRules is the classification priority list. Order is load-bearing:
// e.g. "buy products" must classify as checkout, not browse.
var intentRules = []intentRule{
	{intent: IntentGreeting, match: greetingRe},
	{intent: IntentHelp, match: helpRe},
	{intent: IntentCheckout, match: checkoutRe},
	{intent: IntentViewCart, match: viewCartRe},
	{intent: IntentOrderStatus, match: orderStatusRe},
	{intent: IntentAddToCart, match: addRe, extract: func(lower string) string {
		q := replaceFirst(addRe, lower)
		return strings.TrimSpace(replaceFirst(toCartRe, q))
	}},
	{intent: IntentSearch, match: searchVerbRe, extract: func(lower string) string {
		q := replaceFirst(searchVerbRe, lower)
		return strings.TrimSpace(replaceFirst(forRe, q))
	}},
	{intent: IntentBrowse, match: browseRe, extract: func(lower string) string {
		return categoryRe.FindString(lower)
	}},
}

// Classify maps free text to an intent and an extracted query fragment.
// It is total: every input yields a result, and unmatched text classifies as
// IntentUnknown with an empty query. Classification is case-insensitive and
// ignores surrounding whitespace.
func Classify(text string) (Intent, string) {
	lower := strings.ToLower(strings.TrimSpace(text))

	for _, rule := range intentRules {
		if !rule.match.MatchString(lower) {
			continue
		}
		var query string
		if rule.extract != nil {
			// Stripping verbs can leave doubled spaces; Fields collapses them.
			query = strings.Join(strings.Fields(rule.extract(lower)), " ")
		}
		return rule.intent, query
	}
	return IntentUnknown, ""
}

// replaceFirst removes the first occurrence of re from s.
func replaceFirst(re *regexp.Regexp, s string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + s[loc[1]:]
}
