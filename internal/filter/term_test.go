package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTerm_Sigils(t *testing.T) {
	testCases := []struct {
		name    string
		raw     string
		text    string
		kind    Kind
		negated bool
	}{
		{"exact", "foo", "foo", KindExact, false},
		{"broad", "~foo", "foo", KindBroad, false},
		{"negated", "!foo", "foo", KindExact, true},
		{"negated broad", "!~foo", "foo", KindBroad, true},
		{"escaped bang", `\!foo`, "!foo", KindExact, false},
		{"escaped tilde", `\~foo`, "~foo", KindExact, false},
		{"negated escaped bang", `!\!foo`, "!foo", KindExact, true},
		{"only one escape pair", `\!\!foo`, `!\!foo`, KindExact, false},
		{"tilde after broad is literal", "~!foo", "!foo", KindBroad, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			term, ok := ParseTerm(tc.raw)
			require.True(t, ok)
			assert.Equal(t, tc.text, term.Text)
			assert.Equal(t, tc.kind, term.Kind)
			assert.Equal(t, tc.negated, term.Negated)
			assert.Equal(t, tc.raw, term.Raw)
		})
	}
}

func TestParseTerm_BlankTermsIgnored(t *testing.T) {
	for _, raw := range []string{"", "   ", "!", "~", "! ", "!~  "} {
		_, ok := ParseTerm(raw)
		assert.False(t, ok, "term %q should be ignored", raw)
	}
}

func TestTerm_ExactMatchesWholePhrase(t *testing.T) {
	term, ok := ParseTerm("foo")
	require.True(t, ok)

	assert.True(t, term.Matches("a foo b"))
	assert.True(t, term.Matches("foo"))
	assert.True(t, term.Matches("ends with foo"))
	assert.False(t, term.Matches("foobar"), "exact terms need word boundaries")
	assert.False(t, term.Matches("xfoo"))
}

func TestTerm_BroadMatchesSubstring(t *testing.T) {
	term, ok := ParseTerm("~foo")
	require.True(t, ok)

	assert.True(t, term.Matches("foobar"))
	assert.True(t, term.Matches("a foo b"))
	assert.False(t, term.Matches("fob"))
}

func TestTerm_CaseInsensitive(t *testing.T) {
	exact, _ := ParseTerm("HELLO")
	broad, _ := ParseTerm("~HELLO")

	assert.True(t, exact.Matches("hello world"))
	assert.True(t, broad.Matches("say helloworld"))
}

func TestTerm_MetacharactersAreLiteral(t *testing.T) {
	term, ok := ParseTerm("c++ (beta)")
	require.True(t, ok)

	assert.True(t, term.Matches("new c++ (beta) release"))
	assert.False(t, term.Matches("new c release"))
}

func TestTerm_MultiWordPhrase(t *testing.T) {
	term, ok := ParseTerm("breaking news")
	require.True(t, ok)

	assert.True(t, term.Matches("some breaking news today"))
	assert.False(t, term.Matches("breaking the news"))
}
