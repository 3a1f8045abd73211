package classify

import (
	"github.com/roach88/newsgate/internal/article"
	"github.com/roach88/newsgate/internal/filter"
)

// Subscriber is a configured recipient (role or user subscription) with an
// optional filter set narrowing which deliverable articles mention it.
type Subscriber struct {
	ID      string           `json:"id" yaml:"id"`
	Name    string           `json:"name,omitempty" yaml:"name,omitempty"`
	Filters filter.FilterSet `json:"filters,omitempty" yaml:"filters,omitempty"`
}

// MatchSubscribers determines which subscribers should be notified for a
// deliverable article.
//
// A subscriber with no filter set always matches. Input order is preserved
// so downstream mention ordering stays deterministic.
func MatchSubscribers(a article.Article, subscribers []Subscriber) []Subscriber {
	var matched []Subscriber
	for _, sub := range subscribers {
		if len(sub.Filters) == 0 || sub.Filters.Empty() {
			matched = append(matched, sub)
			continue
		}
		if filter.Evaluate(sub.Filters, a).Passed {
			matched = append(matched, sub)
		}
	}
	return matched
}
