// Package filter implements the filter-expression evaluator for article
// delivery decisions.
//
// A filter set maps category names (article fields) to lists of terms.
// Term syntax:
//   - "foo"   exact: matches "foo" as a standalone word/phrase
//   - "~foo"  broad: matches "foo" anywhere in the value
//   - "!foo"  negated: a match blocks delivery instead of allowing it
//   - "!~foo" negated broad
//   - "\!foo" literal leading "!" (one escape pair is consumed)
//
// A category key prefixed with "regex:" switches that category to raw-regex
// mode: the configured value is a single pattern compiled case-insensitively,
// and the matched substring is reported as the term.
//
// Aggregation across the whole set:
//   - no terms configured anywhere: pass
//   - positive terms use OR semantics (any match passes the regular clause)
//   - negated terms use AND semantics (any match fails the inverted clause)
//   - a clause with no terms configured defaults to pass
//   - final result is regular AND inverted
//
// Evaluation is pure and best-effort: unparseable raw regex patterns and
// blank terms are skipped, never fatal. Filter content is user-controlled
// and must not be able to abort evaluation.
package filter
