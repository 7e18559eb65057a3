package sanitize

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultAllowed is the inline tag subset Telegram accepts in HTML parse mode.
var DefaultAllowed = []string{"b", "i", "a"}

// Sanitize reduces an HTML fragment to the allowed tag set. Elements outside
// the set are removed together with their children, not unwrapped. Text
// outside removed elements keeps its relative order. Malformed markup is
// handled leniently by the underlying parser.
func Sanitize(fragment string, allowed []string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("parse html fragment: %w", err)
	}

	keep := make(map[string]bool, len(allowed))
	for _, tag := range allowed {
		keep[tag] = true
	}

	// removing a node drops its subtree, removed descendants are no-ops
	doc.Find("body *").Each(func(_ int, sel *goquery.Selection) {
		if !keep[goquery.NodeName(sel)] {
			sel.Remove()
		}
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("serialize sanitized fragment: %w", err)
	}
	return out, nil
}
