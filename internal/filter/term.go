package filter

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Kind distinguishes how a term's text is matched against a field value.
type Kind int

const (
	// KindExact matches the text as a standalone word or phrase bounded by
	// whitespace or string edges.
	KindExact Kind = iota

	// KindBroad matches the text as a substring anywhere in the value.
	KindBroad
)

// Term is a single parsed filter term.
//
// Terms are parsed once up front so the sigil/escape rules live in exactly
// one place and matching never re-inspects the raw string.
type Term struct {
	// Raw is the term as configured, sigils included. Used in match
	// results so explanations show what the operator actually wrote.
	Raw string

	// Text is the match text with sigils stripped and one leading escape
	// pair consumed.
	Text string

	Kind    Kind
	Negated bool

	// pattern is the compiled word/phrase-boundary pattern for exact terms.
	pattern *regexp.Regexp
}

// ParseTerm parses a raw filter term.
//
// Sigils are consumed left-to-right: a leading "!" negates, then a leading
// "~" selects broad matching. After sigil stripping, a leading "\!" or "\~"
// is unescaped to its literal character. At most one escape pair is
// consumed.
//
// Returns ok=false for terms that are empty or whitespace-only after
// parsing; such terms are configuration noise and must be ignored rather
// than treated as a literal-space filter.
func ParseTerm(raw string) (Term, bool) {
	text := raw

	negated := strings.HasPrefix(text, "!")
	if negated {
		text = text[1:]
	}

	kind := KindExact
	if strings.HasPrefix(text, "~") {
		kind = KindBroad
		text = text[1:]
	}

	if strings.HasPrefix(text, `\!`) || strings.HasPrefix(text, `\~`) {
		text = text[1:]
	}

	if strings.TrimSpace(text) == "" {
		return Term{}, false
	}

	t := Term{
		Raw:     raw,
		Text:    normText(text),
		Kind:    kind,
		Negated: negated,
	}
	if kind == KindExact {
		// All metacharacters in the term are escaped; only the boundary
		// groups are live pattern syntax.
		t.pattern = regexp.MustCompile(`(?i)(\s|^)` + regexp.QuoteMeta(t.Text) + `(\s|$)`)
	}
	return t, true
}

// Matches reports whether the term's text matches the given field value.
// Matching is case-insensitive. Negation is not applied here - callers
// record the outcome against the positive or negated clause themselves.
func (t Term) Matches(value string) bool {
	value = normText(value)
	switch t.Kind {
	case KindBroad:
		return strings.Contains(strings.ToLower(value), strings.ToLower(t.Text))
	default:
		return t.pattern.MatchString(value)
	}
}

// normText applies NFC normalization so visually identical values compare
// equal regardless of how the feed encoded them.
func normText(s string) string {
	return norm.NFC.String(s)
}
