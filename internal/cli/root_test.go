package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "newsgate", cmd.Use)
	assert.Contains(t, cmd.Long, "reference sets")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"classify", "explain", "validate", "runs"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestClassifyCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	classifyCmd, _, err := cmd.Find([]string{"classify"})
	require.NoError(t, err)

	configFlag := classifyCmd.Flags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)

	feedFlag := classifyCmd.Flags().Lookup("feed")
	require.NotNil(t, feedFlag)
	// --feed is required, so default is empty
	assert.Equal(t, "", feedFlag.DefValue)

	mergeFlag := classifyCmd.Flags().Lookup("merge")
	require.NotNil(t, mergeFlag)
	assert.Equal(t, "false", mergeFlag.DefValue)

	recordFlag := classifyCmd.Flags().Lookup("record")
	require.NotNil(t, recordFlag)
	assert.Equal(t, "false", recordFlag.DefValue)
}

func TestExplainCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	explainCmd, _, err := cmd.Find([]string{"explain"})
	require.NoError(t, err)

	feedFlag := explainCmd.Flags().Lookup("feed")
	require.NotNil(t, feedFlag)

	storeFlag := explainCmd.Flags().Lookup("store")
	require.NotNil(t, storeFlag)
	assert.Equal(t, "newsgate.db", storeFlag.DefValue)
}

func TestRunsCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	runsCmd, _, err := cmd.Find([]string{"runs"})
	require.NoError(t, err)

	limitFlag := runsCmd.Flags().Lookup("limit")
	require.NotNil(t, limitFlag)
	assert.Equal(t, "20", limitFlag.DefValue)
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--format", "invalid", "validate", "nothing.yaml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
