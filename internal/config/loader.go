package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Load reads and parses the configuration file. A missing file yields the
// defaults so the tool works before 'jobmatch config init' has run.
func Load(path string) (*Config, error) {
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	cfg := Default()

	data, err := os.ReadFile(expandedPath)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", expandedPath, err)
		}
	case os.IsNotExist(err):
		// defaults
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

func (c *Config) expandPaths() error {
	var err error
	c.Database.Path, err = expandPath(c.Database.Path)
	return err
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}

	// Recommend validation
	if c.Recommend.DefaultLimit < 0 || c.Recommend.DefaultLimit > 500 {
		errs = append(errs, errors.New("recommend.default_limit must be between 0 and 500"))
	}
	if c.Recommend.MaxLimit < c.Recommend.DefaultLimit {
		errs = append(errs, fmt.Errorf("recommend.max_limit (%d) must be at least default_limit (%d)",
			c.Recommend.MaxLimit, c.Recommend.DefaultLimit))
	}
	if c.Recommend.Mode != "history" && c.Recommend.Mode != "neutral" {
		errs = append(errs, fmt.Errorf("recommend.mode must be 'history' or 'neutral', got '%s'", c.Recommend.Mode))
	}

	// Suggest validation only matters when the service is used
	if c.Suggest.Enabled {
		if c.Suggest.Host == "" {
			errs = append(errs, errors.New("suggest.host is required when suggest is enabled"))
		}
		if c.Suggest.Port < 1 || c.Suggest.Port > 65535 {
			errs = append(errs, errors.New("suggest.port must be between 1 and 65535"))
		}
		if c.Suggest.Model == "" {
			errs = append(errs, errors.New("suggest.model is required when suggest is enabled"))
		}
		if c.Suggest.TimeoutSeconds < 1 {
			errs = append(errs, errors.New("suggest.timeout_seconds must be at least 1"))
		}
	}

	if c.MCP.Transport != "stdio" {
		errs = append(errs, fmt.Errorf("mcp.transport must be 'stdio', got '%s'", c.MCP.Transport))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// SuggestURL returns the full URL for the suggestion service
func (c *Config) SuggestURL() string {
	return fmt.Sprintf("%s:%d", c.Suggest.Host, c.Suggest.Port)
}

// EnsureDirectories creates the database directory
func (c *Config) EnsureDirectories() error {
	dir := filepath.Dir(c.Database.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
