package classify

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/roach88/newsgate/internal/article"
	"github.com/roach88/newsgate/internal/filter"
)

// Outcome identifies the bucket an article was placed in.
type Outcome string

const (
	// OutcomeOld marks articles already present in the reference set, or
	// repeated ids within the batch.
	OutcomeOld Outcome = "old"

	// OutcomeBlockedTitle marks duplicate titles or duplicate custom
	// comparison values.
	OutcomeBlockedTitle Outcome = "blocked_title"

	// OutcomeBlockedDate marks undated or stale articles.
	OutcomeBlockedDate Outcome = "blocked_date"

	// OutcomeBlockedFilter marks articles rejected by the feed's filters.
	OutcomeBlockedFilter Outcome = "blocked_filter"

	// OutcomeDeliverable marks articles eligible for delivery.
	OutcomeDeliverable Outcome = "deliverable"

	// OutcomeInvalid marks articles that could not be classified at all
	// (contract violation, e.g. missing id).
	OutcomeInvalid Outcome = "invalid"
)

// Options carries the resolved per-feed classification settings.
//
// Layered resolution (feed override, server default, built-in default)
// happens in the config layer; the classifier only ever sees final values.
type Options struct {
	// CheckTitle enables duplicate-title suppression, both against the
	// reference set and within the batch.
	CheckTitle bool

	// CheckDate enables staleness checks. Undated articles are blocked
	// when this is on.
	CheckDate bool

	// StaleCutoff is the maximum article age when CheckDate is on.
	StaleCutoff time.Duration

	// CompareFields lists custom fields whose retained reference-set
	// values suppress duplicates the way titles do.
	CompareFields []string

	// Filters is the feed's filter set. Empty passes everything.
	Filters filter.FilterSet

	// Now anchors staleness checks. Zero means time.Now(); tests and the
	// diagnostic CLI pass a fixed instant for reproducible runs.
	Now time.Time
}

// Buckets holds the five disjoint, ordered id lists produced by one
// classification run. The union equals the batch; an id appears in at most
// one bucket. Buckets are never persisted - only deliverable identities are
// merged into the reference set, and only after confirmed delivery.
type Buckets struct {
	Old             []string `json:"old"`
	BlockedByTitle  []string `json:"blocked_by_title"`
	BlockedByDate   []string `json:"blocked_by_date"`
	BlockedByFilter []string `json:"blocked_by_filter"`
	Deliverable     []string `json:"deliverable"`
}

// Decision records why a single article landed in its bucket.
type Decision struct {
	// ID is the article id ("" for invalid articles).
	ID string `json:"id"`

	// Title is kept for display; may be empty.
	Title string `json:"title,omitempty"`

	Outcome Outcome `json:"outcome"`

	// Reason is a short human-readable cause for blocked outcomes.
	Reason string `json:"reason,omitempty"`

	// Match is the filter evaluation captured during classification, nil
	// when the filters were never reached for this article. The reporter
	// reuses it verbatim so explanations match the real decision.
	Match *filter.MatchResult `json:"match,omitempty"`

	// Err is set for contract violations. The article is excluded from
	// all buckets; the rest of the batch is unaffected.
	Err error `json:"-"`
}

// Result is the full outcome of one classification run.
type Result struct {
	Buckets Buckets

	// Decisions holds one entry per batch article, in batch order.
	Decisions []Decision
}

// Errs returns the per-article contract violations, if any.
func (r Result) Errs() []error {
	var errs []error
	for _, d := range r.Decisions {
		if d.Err != nil {
			errs = append(errs, d.Err)
		}
	}
	return errs
}

// Decision returns the decision for an article id.
func (r Result) Decision(id string) (Decision, bool) {
	for _, d := range r.Decisions {
		if d.ID == id {
			return d, true
		}
	}
	return Decision{}, false
}

// Classify partitions a batch of freshly fetched articles against a
// reference-set snapshot.
//
// Articles are processed in batch order exactly once each, with per-check
// precedence: known id, duplicate title, stale date, filters. Duplicate
// titles within the batch are suppressed via a seenTitles set accumulated as
// the run goes, so two same-titled articles in one batch can never both be
// deliverable.
//
// Bootstrap: an empty reference set with a batch of exactly one article is
// an uninitialized feed - everything classifies as old to avoid flooding
// delivery on first fetch. Larger first batches classify normally.
//
// Malformed or absent dates are "no date": blocked when CheckDate is on,
// permissive when off. A single bad article never aborts the rest.
func Classify(batch []article.Article, ref *article.ReferenceSet, opts Options) Result {
	result := Result{Decisions: make([]Decision, 0, len(batch))}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	if ref == nil {
		ref = article.NewReferenceSet()
	}

	// Uninitialized-feed bootstrap: suppress the singleton first fetch.
	if ref.Len() == 0 && len(batch) == 1 {
		a := batch[0]
		if a.ID() == "" {
			result.Decisions = append(result.Decisions, invalidDecision(0, a))
			return result
		}
		result.Buckets.Old = append(result.Buckets.Old, a.ID())
		result.Decisions = append(result.Decisions, Decision{
			ID:      a.ID(),
			Title:   a.Title(),
			Outcome: OutcomeOld,
			Reason:  "first fetch of an uninitialized feed",
		})
		return result
	}

	seenIDs := make(map[string]struct{}, len(batch))
	seenTitles := make(map[string]struct{})

	for i, a := range batch {
		if a.ID() == "" {
			result.Decisions = append(result.Decisions, invalidDecision(i, a))
			continue
		}
		d := classifyOne(a, ref, opts, now, seenIDs, seenTitles)
		result.Decisions = append(result.Decisions, d)

		switch d.Outcome {
		case OutcomeOld:
			result.Buckets.Old = append(result.Buckets.Old, d.ID)
		case OutcomeBlockedTitle:
			result.Buckets.BlockedByTitle = append(result.Buckets.BlockedByTitle, d.ID)
		case OutcomeBlockedDate:
			result.Buckets.BlockedByDate = append(result.Buckets.BlockedByDate, d.ID)
		case OutcomeBlockedFilter:
			result.Buckets.BlockedByFilter = append(result.Buckets.BlockedByFilter, d.ID)
		case OutcomeDeliverable:
			result.Buckets.Deliverable = append(result.Buckets.Deliverable, d.ID)
		}

		slog.Debug("article classified",
			"id", d.ID,
			"outcome", d.Outcome,
			"reason", d.Reason,
		)
	}

	return result
}

// classifyOne decides the bucket for a single article, accumulating the
// within-run seen sets as a side effect.
func classifyOne(
	a article.Article,
	ref *article.ReferenceSet,
	opts Options,
	now time.Time,
	seenIDs map[string]struct{},
	seenTitles map[string]struct{},
) Decision {
	id := a.ID()
	d := Decision{ID: id, Title: a.Title()}

	// Known identity: reference set, or a repeat of the same id earlier in
	// this batch (same id collapses to one identity).
	if ref.HasID(id) {
		d.Outcome = OutcomeOld
		return d
	}
	if _, ok := seenIDs[id]; ok {
		d.Outcome = OutcomeOld
		d.Reason = "duplicate id within batch"
		return d
	}
	seenIDs[id] = struct{}{}

	title := strings.ToLower(strings.TrimSpace(a.Title()))
	if opts.CheckTitle && title != "" {
		if ref.HasTitle(title) {
			d.Outcome = OutcomeBlockedTitle
			d.Reason = "title already seen for this feed"
			return d
		}
		if _, ok := seenTitles[title]; ok {
			d.Outcome = OutcomeBlockedTitle
			d.Reason = "duplicate title within batch"
			return d
		}
	}
	for _, field := range opts.CompareFields {
		v, ok := a.Field(field)
		if ok && ref.HasComparison(field, v) {
			d.Outcome = OutcomeBlockedTitle
			d.Reason = fmt.Sprintf("%s value already seen for this feed", field)
			return d
		}
	}

	if opts.CheckDate {
		date, ok := a.Date()
		if !ok {
			d.Outcome = OutcomeBlockedDate
			d.Reason = "no usable date"
			return d
		}
		if cutoff := now.Add(-opts.StaleCutoff); date.Before(cutoff) {
			d.Outcome = OutcomeBlockedDate
			d.Reason = fmt.Sprintf("dated %s, older than cutoff %s", date.Format(time.RFC3339), opts.StaleCutoff)
			return d
		}
	}

	if opts.CheckTitle && title != "" {
		seenTitles[title] = struct{}{}
	}

	match := filter.Evaluate(opts.Filters, a)
	d.Match = &match
	if !match.Passed {
		d.Outcome = OutcomeBlockedFilter
		d.Reason = "rejected by feed filters"
		return d
	}

	d.Outcome = OutcomeDeliverable
	return d
}

// invalidDecision builds the per-article error decision for a contract
// violation. The index disambiguates untitled articles in the message.
func invalidDecision(index int, a article.Article) Decision {
	return Decision{
		Title:   a.Title(),
		Outcome: OutcomeInvalid,
		Reason:  "missing id",
		Err:     fmt.Errorf("batch[%d]: article has no id (title %q): cannot deduplicate", index, a.Title()),
	}
}
