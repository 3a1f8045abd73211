package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execExplain(t *testing.T, rootOpts *RootOptions, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewExplainCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestExplainDeliverable(t *testing.T) {
	configPath, batchPath, storePath := classifyFixture(t)

	buf, err := execExplain(t, &RootOptions{Format: "text"},
		batchPath, "a1", "--config", configPath, "--feed", "hn", "--store", storePath)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "article a1")
	assert.Contains(t, output, "outcome: deliverable")
	assert.Contains(t, output, "matched [title]: bitcoin")
}

func TestExplainBlockedByFilter(t *testing.T) {
	configPath, batchPath, storePath := classifyFixture(t)

	buf, err := execExplain(t, &RootOptions{Format: "text"},
		batchPath, "a2", "--config", configPath, "--feed", "hn", "--store", storePath)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "outcome: blocked_filter")
	assert.Contains(t, output, "reason:  rejected by feed filters")
	assert.Contains(t, output, "negated match [title]: !weather")
}

func TestExplainJSON(t *testing.T) {
	configPath, batchPath, storePath := classifyFixture(t)

	buf, err := execExplain(t, &RootOptions{Format: "json"},
		batchPath, "a1", "--config", configPath, "--feed", "hn", "--store", storePath)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var decision map[string]any
	require.NoError(t, json.Unmarshal(data, &decision))
	assert.Equal(t, "a1", decision["id"])
	assert.Equal(t, "deliverable", decision["outcome"])
}

func TestExplainUnknownArticle(t *testing.T) {
	configPath, batchPath, storePath := classifyFixture(t)

	buf, err := execExplain(t, &RootOptions{Format: "text"},
		batchPath, "missing", "--config", configPath, "--feed", "hn", "--store", storePath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "E005")
	assert.Contains(t, buf.String(), "no decision recorded")
}
