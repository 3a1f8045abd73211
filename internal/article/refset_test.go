package article

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferenceSet_AddAndLookup(t *testing.T) {
	ref := NewReferenceSet()
	ref.Add(Article{"id": "a1", "title": "Old News"})

	assert.True(t, ref.HasID("a1"))
	assert.False(t, ref.HasID("a2"))
	assert.True(t, ref.HasTitle("Old News"))
	assert.True(t, ref.HasTitle("old news"), "title lookup is case-insensitive")
	assert.False(t, ref.HasTitle("Fresh"))
	assert.Equal(t, 1, ref.Len())
}

func TestReferenceSet_ComparisonFields(t *testing.T) {
	ref := NewReferenceSet()
	ref.Add(Article{"id": "a1", "author": "Alice"}, "author")

	assert.True(t, ref.HasComparison("author", "alice"))
	assert.False(t, ref.HasComparison("author", "bob"))
	assert.False(t, ref.HasComparison("link", "anything"), "unknown field never matches")
}

func TestReferenceSet_BlankValuesIgnored(t *testing.T) {
	ref := NewReferenceSet()
	ref.Add(Article{"id": "a1", "title": "  "})
	ref.AddComparison("author", "   ")

	assert.False(t, ref.HasTitle(""))
	assert.False(t, ref.HasComparison("author", ""))
}
