package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/newsgate/internal/article"
)

// loadBatch reads a batch file of article records, as produced by the feed
// fetch collaborator. JSON (".json") and YAML (".yaml"/".yml") are
// supported; the document is a list of flat objects.
//
// List-valued fields (tags) are joined newline-delimited to match the
// engine's canonical representation, and HTML-bearing display fields get
// their raw shadow variants derived before classification.
func loadBatch(path string) ([]article.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch file: %w", err)
	}

	var raw []map[string]any
	switch ext := filepath.Ext(path); ext {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse batch file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse batch file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("batch file %s: unsupported extension %q (want .json, .yaml, or .yml)", path, ext)
	}

	batch := make([]article.Article, 0, len(raw))
	for _, fields := range raw {
		a := make(article.Article, len(fields))
		for name, value := range fields {
			a[name] = flattenValue(value)
		}
		batch = append(batch, article.DeriveFullFields(a))
	}
	return batch, nil
}

// flattenValue renders a decoded field value as the engine's string form.
func flattenValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []any:
		parts := make([]string, 0, len(v))
		for _, elem := range v {
			parts = append(parts, flattenValue(elem))
		}
		return strings.Join(parts, "\n")
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
