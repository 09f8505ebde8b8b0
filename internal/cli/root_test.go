package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/quarry/internal/cli/config"
	"github.com/leapstack-labs/quarry/internal/cli/testutil"
)

func TestNewRootCmd_Metadata(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "quarry", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.Equal(t, Version, cmd.Version)

	flags := []string{"config", "stash", "jobs", "indent", "verbose", "output"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"transform", "inspect", "stash", "version", "completion"})
}

func TestRootCmd_UsesProjectConfig(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	projectDir := testutil.SetupTestProject(t)
	docPath := filepath.Join(projectDir, "query.json")

	cmd := NewRootCmd()
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"--config", filepath.Join(projectDir, "quarry.yaml"), "inspect", docPath})

	require.NoError(t, cmd.Execute())

	// The project config selects JSON output.
	assert.Contains(t, out.String(), `"type": "select"`)
	testutil.AssertNoANSI(t, out.String())

	cfg := config.GetCurrentConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, projectDir, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(projectDir, "stash.db"), cfg.StashPath)
}

func TestRootCmd_VerboseLogsToStderr(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	projectDir := testutil.SetupTestProject(t)
	docPath := filepath.Join(projectDir, "query.json")

	cmd := NewRootCmd()
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"--config", filepath.Join(projectDir, "quarry.yaml"), "-v", "inspect", docPath})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, errOut.String(), "inspected documents", "verbose mode should emit debug logs")
}

func TestGetConfig_Fallback(t *testing.T) {
	cfg := GetConfig(context.Background())

	require.NotNil(t, cfg)
	assert.Equal(t, config.DefaultStashFile, cfg.StashPath)
	assert.Equal(t, config.DefaultOutput, cfg.OutputFormat)
}

func TestGetRenderer_Fallback(t *testing.T) {
	r := GetRenderer(context.Background())
	require.NotNil(t, r)
}

func TestNewCompletionCommand_Metadata(t *testing.T) {
	cmd := NewCompletionCommand()

	assert.Equal(t, "completion [bash|zsh|fish|powershell]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.ElementsMatch(t, []string{"bash", "zsh", "fish", "powershell"}, cmd.ValidArgs)
}
