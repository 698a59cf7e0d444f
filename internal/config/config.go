package config

import (
	"os"
	"time"
)

// SuggestAPIKeyEnv names the environment variable holding the suggestion
// service API key
const SuggestAPIKeyEnv = "JOBMATCH_SUGGEST_API_KEY"

// Config represents the application configuration
type Config struct {
	Database  DatabaseConfig  `toml:"database"`
	Recommend RecommendConfig `toml:"recommend"`
	Suggest   SuggestConfig   `toml:"suggest"`
	MCP       MCPConfig       `toml:"mcp"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// RecommendConfig contains ranking settings
type RecommendConfig struct {
	DefaultLimit int    `toml:"default_limit"`
	MaxLimit     int    `toml:"max_limit"`
	Mode         string `toml:"mode"`
}

// ClampLimit substitutes DefaultLimit for a negative (unset) request and caps
// the result at MaxLimit
func (r RecommendConfig) ClampLimit(requested int) int {
	if requested < 0 {
		requested = r.DefaultLimit
	}
	if requested > r.MaxLimit {
		return r.MaxLimit
	}
	return requested
}

// SuggestConfig contains settings for the optional text-generation service
type SuggestConfig struct {
	Enabled        bool   `toml:"enabled"`
	Host           string `toml:"host"`
	Port           int    `toml:"port"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	// API key is read from JOBMATCH_SUGGEST_API_KEY
}

// Timeout returns the request timeout as a duration
func (s SuggestConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// APIKey returns the suggestion service key from the environment
func (s SuggestConfig) APIKey() string {
	return os.Getenv(SuggestAPIKeyEnv)
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "~/.local/share/jobmatch/jobmatch.db",
		},
		Recommend: RecommendConfig{
			DefaultLimit: 10,
			MaxLimit:     100,
			Mode:         "history",
		},
		Suggest: SuggestConfig{
			Enabled:        false,
			Host:           "http://localhost",
			Port:           11434,
			Model:          "llama3.2:1b",
			TimeoutSeconds: 30,
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}
