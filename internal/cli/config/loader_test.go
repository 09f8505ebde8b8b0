package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// newTestFlags mirrors the persistent flag set the root command registers.
func newTestFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "")
	flags.String("stash", "", "")
	flags.IntP("jobs", "j", 0, "")
	flags.Bool("indent", false, "")
	flags.BoolP("verbose", "v", false, "")
	flags.StringP("output", "o", "", "")
	return flags
}

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "quarry.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	cfg, err := LoadConfig("", newTestFlags())
	require.NoError(t, err)

	assert.Equal(t, "auto", cfg.OutputFormat)
	assert.Equal(t, runtime.NumCPU(), cfg.Jobs)
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.Indent)
	assert.True(t, filepath.IsAbs(cfg.StashPath), "stash path should be absolute")
	assert.True(t, strings.HasSuffix(cfg.StashPath, filepath.Join(".quarry", "stash.db")))
	assert.NotEmpty(t, cfg.ProjectRoot)
}

func TestLoadConfig_FromFile(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	dir := t.TempDir()
	cfgPath := writeConfigFile(t, dir, "stash_path: custom/stash.db\noutput: json\njobs: 3\n")

	cfg, err := LoadConfig(cfgPath, newTestFlags())
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 3, cfg.Jobs)
	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(dir, "custom", "stash.db"), cfg.StashPath)
	assert.Equal(t, cfgPath, GetConfigFileUsed())
}

func TestLoadConfig_AllKeys(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	doc, err := yaml.Marshal(map[string]any{
		"stash_path": "stash/quarry.db",
		"output":     "markdown",
		"verbose":    true,
		"jobs":       2,
		"indent":     true,
	})
	require.NoError(t, err)

	dir := t.TempDir()
	cfgPath := writeConfigFile(t, dir, string(doc))

	cfg, err := LoadConfig(cfgPath, newTestFlags())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "stash", "quarry.db"), cfg.StashPath)
	assert.Equal(t, "markdown", cfg.OutputFormat)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 2, cfg.Jobs)
	assert.True(t, cfg.Indent)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	dir := t.TempDir()
	cfgPath := writeConfigFile(t, dir, "output: json\n")
	t.Setenv("QUARRY_OUTPUT", "csv")

	cfg, err := LoadConfig(cfgPath, newTestFlags())
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.OutputFormat)
}

func TestLoadConfig_FlagOverridesEnv(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	dir := t.TempDir()
	cfgPath := writeConfigFile(t, dir, "output: json\n")
	t.Setenv("QUARRY_OUTPUT", "csv")

	flags := newTestFlags()
	require.NoError(t, flags.Set("output", "markdown"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, "markdown", cfg.OutputFormat)
}

func TestLoadConfig_StashFlagBridge(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	flags := newTestFlags()
	require.NoError(t, flags.Set("stash", "other.db"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "other.db"), cfg.StashPath,
		"a relative --stash should resolve against the invocation directory")
}

func TestLoadConfig_MemoryStashKeptLiteral(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	dir := t.TempDir()
	cfgPath := writeConfigFile(t, dir, `stash_path: ":memory:"`+"\n")

	cfg, err := LoadConfig(cfgPath, newTestFlags())
	require.NoError(t, err)

	assert.Equal(t, ":memory:", cfg.StashPath)
}

func TestLoadConfig_UnknownKeyFails(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	dir := t.TempDir()
	cfgPath := writeConfigFile(t, dir, "stash_pth: oops.db\n")

	_, err := LoadConfig(cfgPath, newTestFlags())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stash_pth", "error should name the unknown key")
}

func TestLoadConfig_ZeroJobsUsesCPUCount(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	dir := t.TempDir()
	cfgPath := writeConfigFile(t, dir, "jobs: 0\n")

	cfg, err := LoadConfig(cfgPath, newTestFlags())
	require.NoError(t, err)

	assert.Equal(t, runtime.NumCPU(), cfg.Jobs)
}

func TestResetConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfigFile(t, dir, "output: json\n")

	_, err := LoadConfig(cfgPath, newTestFlags())
	require.NoError(t, err)
	require.NotNil(t, GetCurrentConfig())
	require.NotEmpty(t, GetConfigFileUsed())

	ResetConfig()
	assert.Nil(t, GetCurrentConfig())
	assert.Empty(t, GetConfigFileUsed())
}

func TestGetLogger(t *testing.T) {
	logger := GetLogger(context.Background())
	require.NotNil(t, logger, "missing logger should fall back to a discard logger")

	want := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(context.Background(), LoggerKey(), want)
	assert.Same(t, want, GetLogger(ctx))
}
