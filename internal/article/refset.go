package article

import "strings"

// ReferenceSet is the durable record of articles already recognized from a
// feed, keyed by id. Titles and optional custom-comparison field values are
// retained so duplicate detection does not rely solely on id.
//
// The engine treats a ReferenceSet as an immutable snapshot per invocation;
// the persistence layer owns durability and merging.
type ReferenceSet struct {
	ids    map[string]struct{}
	titles map[string]struct{}

	// compare holds retained values per custom comparison field,
	// lower-cased for case-insensitive lookups.
	compare map[string]map[string]struct{}
}

// NewReferenceSet creates an empty reference set.
func NewReferenceSet() *ReferenceSet {
	return &ReferenceSet{
		ids:     make(map[string]struct{}),
		titles:  make(map[string]struct{}),
		compare: make(map[string]map[string]struct{}),
	}
}

// Add records an article identity: its id, title, and the values of the
// given comparison fields.
func (r *ReferenceSet) Add(a Article, compareFields ...string) {
	if id := a.ID(); id != "" {
		r.ids[id] = struct{}{}
	}
	if title := strings.TrimSpace(a.Title()); title != "" {
		r.titles[strings.ToLower(title)] = struct{}{}
	}
	for _, field := range compareFields {
		v, ok := a.Field(field)
		if !ok {
			continue
		}
		r.AddComparison(field, v)
	}
}

// AddComparison records a single retained comparison value for a field.
func (r *ReferenceSet) AddComparison(field, value string) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return
	}
	set, ok := r.compare[field]
	if !ok {
		set = make(map[string]struct{})
		r.compare[field] = set
	}
	set[value] = struct{}{}
}

// HasID reports whether the id has been seen before.
func (r *ReferenceSet) HasID(id string) bool {
	_, ok := r.ids[id]
	return ok
}

// HasTitle reports whether the title has been seen before.
// Comparison is case-insensitive.
func (r *ReferenceSet) HasTitle(title string) bool {
	_, ok := r.titles[strings.ToLower(strings.TrimSpace(title))]
	return ok
}

// HasComparison reports whether the value of a custom comparison field has
// been seen before. Comparison is case-insensitive.
func (r *ReferenceSet) HasComparison(field, value string) bool {
	set, ok := r.compare[field]
	if !ok {
		return false
	}
	_, ok = set[strings.ToLower(strings.TrimSpace(value))]
	return ok
}

// Len returns the number of distinct ids in the set.
func (r *ReferenceSet) Len() int {
	return len(r.ids)
}
