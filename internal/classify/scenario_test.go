package classify

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/newsgate/internal/article"
	"github.com/roach88/newsgate/internal/filter"
)

// scenario is a declarative classification test case loaded from
// testdata/scenarios. Scenarios pin the engine's observable behavior for a
// whole run: reference set in, batch in, buckets out.
type scenario struct {
	Name        string              `yaml:"name"`
	Description string              `yaml:"description,omitempty"`
	Reference   []map[string]string `yaml:"reference,omitempty"`
	Batch       []map[string]string `yaml:"batch"`
	Options     scenarioOptions     `yaml:"options"`
	Expect      scenarioBuckets     `yaml:"expect"`
}

type scenarioOptions struct {
	CheckTitle    bool                `yaml:"check_title"`
	CheckDate     bool                `yaml:"check_date"`
	StaleCutoff   string              `yaml:"stale_cutoff,omitempty"`
	CompareFields []string            `yaml:"compare_fields,omitempty"`
	Filters       map[string][]string `yaml:"filters,omitempty"`
}

type scenarioBuckets struct {
	Old             []string `yaml:"old,omitempty"`
	BlockedByTitle  []string `yaml:"blocked_by_title,omitempty"`
	BlockedByDate   []string `yaml:"blocked_by_date,omitempty"`
	BlockedByFilter []string `yaml:"blocked_by_filter,omitempty"`
	Deliverable     []string `yaml:"deliverable,omitempty"`
}

// loadScenario parses a scenario file with strict field validation, the
// same way the production config loader rejects typo'd keys.
func loadScenario(t *testing.T, path string) scenario {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var s scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	require.NoError(t, decoder.Decode(&s), "scenario %s", path)
	require.NotEmpty(t, s.Name, "scenario %s needs a name", path)
	return s
}

func (s scenario) options(t *testing.T) Options {
	t.Helper()

	opts := Options{
		CheckTitle:    s.Options.CheckTitle,
		CheckDate:     s.Options.CheckDate,
		CompareFields: s.Options.CompareFields,
		Now:           fixedNow,
	}
	if s.Options.StaleCutoff != "" {
		d, err := time.ParseDuration(s.Options.StaleCutoff)
		require.NoError(t, err, "scenario %s stale_cutoff", s.Name)
		opts.StaleCutoff = d
	}
	if s.Options.Filters != nil {
		opts.Filters = filter.FilterSet(s.Options.Filters)
	}
	return opts
}

func toArticles(raw []map[string]string) []article.Article {
	out := make([]article.Article, len(raw))
	for i, m := range raw {
		out[i] = article.Article(m)
	}
	return out
}

func TestScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths, "no scenario files found")

	for _, path := range paths {
		s := loadScenario(t, path)
		t.Run(s.Name, func(t *testing.T) {
			ref := article.NewReferenceSet()
			for _, a := range toArticles(s.Reference) {
				ref.Add(a, s.Options.CompareFields...)
			}

			result := Classify(toArticles(s.Batch), ref, s.options(t))

			assert.Equal(t, s.Expect.Old, result.Buckets.Old, "old")
			assert.Equal(t, s.Expect.BlockedByTitle, result.Buckets.BlockedByTitle, "blocked_by_title")
			assert.Equal(t, s.Expect.BlockedByDate, result.Buckets.BlockedByDate, "blocked_by_date")
			assert.Equal(t, s.Expect.BlockedByFilter, result.Buckets.BlockedByFilter, "blocked_by_filter")
			assert.Equal(t, s.Expect.Deliverable, result.Buckets.Deliverable, "deliverable")
		})
	}
}
