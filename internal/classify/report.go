package classify

import (
	"fmt"
	"sort"
	"strings"
)

// Report renders a human-readable breakdown of a classification run.
//
// It is a read-only view over the Result: bucket counts and, per article,
// the captured decision with the specific terms responsible. It never
// re-runs the evaluator, so the explanation is guaranteed to describe the
// decision that was actually made.
type Report struct {
	result Result
}

// NewReport wraps a classification result for rendering.
func NewReport(result Result) *Report {
	return &Report{result: result}
}

// Summary renders the per-bucket counts.
func (r *Report) Summary() string {
	b := r.result.Buckets
	var sb strings.Builder
	fmt.Fprintf(&sb, "articles: %d\n", len(r.result.Decisions))
	fmt.Fprintf(&sb, "  old:               %d\n", len(b.Old))
	fmt.Fprintf(&sb, "  blocked by title:  %d\n", len(b.BlockedByTitle))
	fmt.Fprintf(&sb, "  blocked by date:   %d\n", len(b.BlockedByDate))
	fmt.Fprintf(&sb, "  blocked by filter: %d\n", len(b.BlockedByFilter))
	fmt.Fprintf(&sb, "  deliverable:       %d\n", len(b.Deliverable))
	if errs := r.result.Errs(); len(errs) > 0 {
		fmt.Fprintf(&sb, "  invalid:           %d\n", len(errs))
	}
	return sb.String()
}

// Explain renders the decision detail for one article id.
//
// Blocked outcomes always carry an attributable cause: the duplicate source,
// the date and cutoff, or the exact filter categories and terms that fired.
func (r *Report) Explain(id string) (string, error) {
	d, ok := r.result.Decision(id)
	if !ok {
		return "", fmt.Errorf("no decision recorded for article %q", id)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "article %s\n", d.ID)
	if d.Title != "" {
		fmt.Fprintf(&sb, "  title:   %s\n", d.Title)
	}
	fmt.Fprintf(&sb, "  outcome: %s\n", d.Outcome)
	if d.Reason != "" {
		fmt.Fprintf(&sb, "  reason:  %s\n", d.Reason)
	}

	if d.Match != nil {
		writeTermLines(&sb, "matched", d.Match.Matches)
		writeTermLines(&sb, "negated match", d.Match.NegatedMatches)
	}
	return sb.String(), nil
}

// writeTermLines renders a category-to-terms map in sorted category order
// for stable output.
func writeTermLines(sb *strings.Builder, label string, byCategory map[string][]string) {
	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		fmt.Fprintf(sb, "  %s [%s]: %s\n", label, category, strings.Join(byCategory[category], ", "))
	}
}
