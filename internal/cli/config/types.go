// Package config provides configuration management for the quarry CLI.
//
// Settings come from a quarry.yaml project file, QUARRY_ environment
// variables, and command-line flags, in rising order of precedence.
package config

// Config holds all CLI configuration options.
type Config struct {
	StashPath    string `koanf:"stash_path"`
	OutputFormat string `koanf:"output"`
	Verbose      bool   `koanf:"verbose"`
	Jobs         int    `koanf:"jobs"`
	Indent       bool   `koanf:"indent"`

	// ProjectRoot is derived at load time, never read from a source.
	ProjectRoot string `koanf:"-"`
}

// Default configuration values
const (
	DefaultStashFile = ".quarry/stash.db"
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
