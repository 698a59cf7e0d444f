package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Dir(configPath)
	dataDir := filepath.Join(home, ".local", "share", "jobmatch")

	// Create directories
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config file already exists at %s\n", configPath)
		fmt.Println("Use 'jobmatch config show' to view current configuration")
		return nil
	}

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configPath)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Add a user:    jobmatch user add --username you --skills \"go, sql\"")
	fmt.Println("  2. Post a job:    jobmatch job add --title \"Backend Engineer\" --company Acme --posted-by <user>")
	fmt.Println("  3. Get matches:   jobmatch recommend --user you")
	fmt.Println()
	fmt.Println("Optional suggestion copy from a local model (set [suggest] enabled = true):")
	fmt.Println("  ollama pull llama3.2:1b")
	fmt.Println("  ollama serve")

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No config file found; built-in defaults are in use. Run 'jobmatch config init' to create one.")
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	fmt.Printf("# Config file: %s\n\n", configPath)
	fmt.Println(string(data))
	return nil
}

const defaultConfig = `# jobmatch configuration

[database]
path = "~/.local/share/jobmatch/jobmatch.db"

[recommend]
default_limit = 10   # recommendations when --limit is not given
max_limit = 100      # hard cap on any request
mode = "history"     # history | neutral

[suggest]
# Optional text-generation service for profile suggestions.
# Scoring never depends on it; fixed copy is used when it is off or failing.
enabled = false
host = "http://localhost"
port = 11434
model = "llama3.2:1b"
timeout_seconds = 30
# API key read from JOBMATCH_SUGGEST_API_KEY (a .env file works too)

[mcp]
enabled = true
transport = "stdio"
`
