package article

import (
	"strings"
	"time"
)

// Canonical field names used by the engine.
const (
	FieldID          = "id"
	FieldTitle       = "title"
	FieldDate        = "date"
	FieldDescription = "description"
	FieldSummary     = "summary"
	FieldAuthor      = "author"
	FieldTags        = "tags"
)

// FullSuffix marks the raw, unescaped shadow variant of a display field.
// When present, matching resolves "<name>::full" instead of "<name>".
const FullSuffix = "::full"

// dateLayouts are tried in order when parsing the date field.
// Feeds are inconsistent; RFC3339 is canonical but RFC1123 variants
// survive in the wild.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02",
}

// Article is a mapping from placeholder name to value.
//
// Arbitrary additional fields (description, summary, author, tags, or any
// "other:<name>") act as filter categories. Values are stored as strings;
// "tags" is newline-delimited.
type Article map[string]string

// ID returns the article's stable identifier, or "" if absent.
func (a Article) ID() string {
	return strings.TrimSpace(a[FieldID])
}

// Title returns the article's title, or "" if absent.
func (a Article) Title() string {
	return a[FieldTitle]
}

// Date parses the article's date field.
//
// Returns ok=false when the field is absent, empty, or unparseable.
// Malformed dates are indistinguishable from missing ones - callers decide
// what "no date" means (the classifier blocks when date checking is on).
func (a Article) Date() (time.Time, bool) {
	raw := strings.TrimSpace(a[FieldDate])
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Field resolves the value to match a filter category against.
//
// The raw "<category>::full" shadow variant wins over the display variant
// so matching never runs against display-formatted text. Returns ok=false
// when neither variant exists or the value is blank.
func (a Article) Field(category string) (string, bool) {
	if v, ok := a[category+FullSuffix]; ok && strings.TrimSpace(v) != "" {
		return v, true
	}
	v, ok := a[category]
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// FieldValues resolves a filter category to the list of values it should be
// evaluated against.
//
// Most categories yield a single value. "tags" is split on newlines so each
// tag is matched independently. Blank elements are dropped.
func (a Article) FieldValues(category string) []string {
	v, ok := a.Field(category)
	if !ok {
		return nil
	}
	if category != FieldTags {
		return []string{v}
	}
	var values []string
	for _, tag := range strings.Split(v, "\n") {
		if tag = strings.TrimSpace(tag); tag != "" {
			values = append(values, tag)
		}
	}
	return values
}

// Clone returns a shallow copy of the article.
// Used by callers that derive shadow fields without mutating their input.
func (a Article) Clone() Article {
	out := make(Article, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
