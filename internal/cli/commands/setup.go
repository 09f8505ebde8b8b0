// Package commands implements the quarry subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/quarry/internal/cli/config"
	"github.com/leapstack-labs/quarry/internal/cli/output"
	"github.com/leapstack-labs/quarry/internal/store"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's environment.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	stashPath := getEnvOrDefault("QUARRY_STASH_PATH", config.DefaultStashFile)
	outputFormat := getEnvOrDefault("QUARRY_OUTPUT", config.DefaultOutput)
	verbose := os.Getenv("QUARRY_VERBOSE") == "true"

	return &config.Config{
		StashPath:    stashPath,
		OutputFormat: outputFormat,
		Verbose:      verbose,
		Jobs:         1,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// openStash opens the stash database named by the configuration and runs
// any pending migrations. The caller closes the returned store.
func openStash(cfg *config.Config) (*store.Store, error) {
	if cfg.StashPath != ":memory:" {
		stashDir := filepath.Dir(cfg.StashPath)
		if stashDir != "." && stashDir != "" {
			if err := os.MkdirAll(stashDir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create stash directory: %w", err)
			}
		}
	}

	s, err := store.Open(cfg.StashPath)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}
