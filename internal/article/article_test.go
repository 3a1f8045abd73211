package article

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticle_ID(t *testing.T) {
	assert.Equal(t, "a1", Article{"id": "a1"}.ID())
	assert.Equal(t, "a1", Article{"id": "  a1  "}.ID(), "id should be trimmed")
	assert.Equal(t, "", Article{}.ID())
}

func TestArticle_Date(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		ok   bool
		want time.Time
	}{
		{"rfc3339", "2026-08-20T10:30:00Z", true, time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC)},
		{"rfc1123z", "Thu, 20 Aug 2026 10:30:00 +0000", true, time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC)},
		{"date only", "2026-08-20", true, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)},
		{"absent", "", false, time.Time{}},
		{"malformed", "next tuesday", false, time.Time{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := Article{"id": "a1"}
			if tc.raw != "" {
				a["date"] = tc.raw
			}
			got, ok := a.Date()
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.True(t, got.Equal(tc.want), "got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestArticle_FieldPrefersFullVariant(t *testing.T) {
	a := Article{
		"description":       "truncated display text...",
		"description::full": "the complete raw text",
	}

	v, ok := a.Field("description")
	require.True(t, ok)
	assert.Equal(t, "the complete raw text", v)
}

func TestArticle_FieldAbsentOrBlank(t *testing.T) {
	a := Article{"title": "   "}

	_, ok := a.Field("title")
	assert.False(t, ok, "whitespace-only value is no data")

	_, ok = a.Field("author")
	assert.False(t, ok, "missing field is no data")
}

func TestArticle_FieldValues_SplitsTags(t *testing.T) {
	a := Article{"tags": "go\n\n  databases  \nnews"}

	assert.Equal(t, []string{"go", "databases", "news"}, a.FieldValues("tags"))
}

func TestArticle_FieldValues_SingleValue(t *testing.T) {
	a := Article{"title": "hello world"}

	assert.Equal(t, []string{"hello world"}, a.FieldValues("title"))
	assert.Nil(t, a.FieldValues("author"))
}

func TestArticle_CloneDoesNotAlias(t *testing.T) {
	a := Article{"id": "a1", "title": "one"}
	b := a.Clone()
	b["title"] = "two"

	assert.Equal(t, "one", a.Title())
	assert.Equal(t, "two", b.Title())
}
