package article

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// htmlFields are the display fields whose values commonly arrive as HTML
// fragments from feed parsers.
var htmlFields = []string{FieldDescription, FieldSummary}

// DeriveFullFields populates "<name>::full" shadow variants for HTML-bearing
// fields that lack one, stripping markup down to plain text.
//
// Filter matching runs against the full variant, so a feed that ships
// "<p>Breaking: <b>foo</b></p>" is matched as "Breaking: foo" rather than
// against tag soup. Fields that already carry a full variant are left alone.
// The input article is not mutated.
func DeriveFullFields(a Article) Article {
	out := a.Clone()
	for _, field := range htmlFields {
		if _, ok := out[field+FullSuffix]; ok {
			continue
		}
		v, ok := out[field]
		if !ok || !strings.ContainsRune(v, '<') {
			continue
		}
		text, err := stripHTML(v)
		if err != nil {
			// Unparseable markup: match against the raw value as-is.
			continue
		}
		out[field+FullSuffix] = text
	}
	return out
}

// stripHTML reduces an HTML fragment to its text content with collapsed
// whitespace.
func stripHTML(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(doc.Text()), " "), nil
}
