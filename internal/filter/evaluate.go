package filter

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/roach88/newsgate/internal/article"
)

// RegexPrefix marks a filter-set category as raw-regex mode. The category
// "regex:title" evaluates its single configured pattern against the
// article's title field.
const RegexPrefix = "regex:"

// FilterSet maps a category name (article field) to its configured terms.
//
// In raw-regex mode (key prefixed with RegexPrefix) the term list holds a
// single pattern string. Empty lists are equivalent to no filter for that
// category.
type FilterSet map[string][]string

// Empty reports whether the set configures no terms at all.
func (fs FilterSet) Empty() bool {
	for _, terms := range fs {
		for _, t := range terms {
			if strings.TrimSpace(t) != "" {
				return false
			}
		}
	}
	return true
}

// MatchResult is the structured outcome of evaluating a filter set against
// one article.
type MatchResult struct {
	// Passed is the aggregate decision: regular clause AND inverted clause.
	Passed bool

	// Matches maps category to the positive terms that matched, in
	// configuration order. Raw term text, sigils included.
	Matches map[string][]string

	// NegatedMatches maps category to the negated terms that matched.
	NegatedMatches map[string][]string
}

// Matched reports whether any positive term matched.
func (r MatchResult) Matched() bool {
	return len(r.Matches) > 0
}

// Blocked reports whether any negated term matched.
func (r MatchResult) Blocked() bool {
	return len(r.NegatedMatches) > 0
}

// Evaluate tests an article's fields against a filter set.
//
// Categories resolve through the article's raw "::full" shadow variants;
// a category with no article data contributes to neither clause and never
// blocks by itself. The "tags" category is evaluated per tag.
//
// Evaluation is pure and never fails: malformed raw-regex patterns are
// skipped per-term with a warning. An empty filter set passes any article.
func Evaluate(fs FilterSet, a article.Article) MatchResult {
	result := MatchResult{
		Matches:        make(map[string][]string),
		NegatedMatches: make(map[string][]string),
	}

	var positiveConfigured, positiveMatched bool

	for category, terms := range fs {
		if rawCategory, ok := strings.CutPrefix(category, RegexPrefix); ok {
			matched, configured := evaluateRawRegex(fs, category, rawCategory, a, &result)
			positiveConfigured = positiveConfigured || configured
			positiveMatched = positiveMatched || matched
			continue
		}

		values := a.FieldValues(category)
		for _, raw := range terms {
			term, ok := ParseTerm(raw)
			if !ok {
				continue
			}
			if !term.Negated {
				positiveConfigured = true
			}

			matched := false
			for _, value := range values {
				if term.Matches(value) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
			if term.Negated {
				result.NegatedMatches[category] = append(result.NegatedMatches[category], term.Raw)
			} else {
				result.Matches[category] = append(result.Matches[category], term.Raw)
				positiveMatched = true
			}
		}
	}

	// Positive terms OR together; the clause defaults to pass when none are
	// configured. Negated terms AND together: any match fails the clause.
	regularClause := !positiveConfigured || positiveMatched
	invertedClause := len(result.NegatedMatches) == 0

	result.Passed = regularClause && invertedClause
	return result
}

// evaluateRawRegex handles a raw-regex category. The configured term list is
// a single pattern compiled case-insensitively; a match contributes the
// matched substring as the term. Reports whether the pattern matched and
// whether a usable pattern was configured.
func evaluateRawRegex(fs FilterSet, category, rawCategory string, a article.Article, result *MatchResult) (matched, configured bool) {
	terms := fs[category]
	if len(terms) == 0 || strings.TrimSpace(terms[0]) == "" {
		return false, false
	}
	pattern := terms[0]

	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		// Filter content is user-controlled; a broken pattern skips the
		// term rather than aborting evaluation.
		slog.Warn("skipping unparseable filter regex",
			"category", category,
			"pattern", pattern,
			"error", err,
		)
		return false, false
	}

	for _, value := range a.FieldValues(rawCategory) {
		if m := re.FindString(normText(value)); m != "" {
			result.Matches[category] = append(result.Matches[category], m)
			return true, true
		}
	}
	return false, true
}
