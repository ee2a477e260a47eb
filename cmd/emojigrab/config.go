package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"emojigrab/pkg/config"
	"emojigrab/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage Emoji Grab configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables
  - Configuration file
  - Default values (lowest priority)`,
}

// initCmd represents the config init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options.

The file will be created in the current directory as 'emojigrab.yaml'
unless a different path is specified with the --config flag.`,
	Run: runConfigInit,
}

// showCmd represents the config show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the current configuration including values from all sources:
  - Command line flags
  - Environment variables
  - Configuration file
  - Default values

Sensitive values like credentials will be masked for security.`,
	Run: runConfigShow,
}

// validateCmd represents the config validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate a configuration file for syntax errors and invalid values.

This command checks:
  - YAML syntax
  - Required fields
  - Value types and ranges
  - Path accessibility`,
	Run: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(validateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) {
	// Determine config file path
	configPath := configFile
	if configPath == "" {
		configPath = "emojigrab.yaml"
	}

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		ui.PrintError("Configuration file already exists", configPath)
		fmt.Println("\nTo overwrite, first remove the existing file:")
		fmt.Printf("  rm %s\n", configPath)
		os.Exit(1)
	}

	// Create example configuration
	exampleConfig := `# Emoji Grab Configuration File
#
# This file contains all available configuration options.
# You can also use environment variables prefixed with EMOJIGRAB_
# For example: EMOJIGRAB_EMAIL, EMOJIGRAB_PASSWORD

# Discord account
discord:
  # Account email (prefer 'emojigrab auth login' over writing it here)
  email: ""

  # Account password (prefer 'emojigrab auth login' over writing it here)
  password: ""

  # User agent string (optional)
  # Leave empty to use default
  user_agent: ""

# Browser automation
browser:
  # Run the browser without a visible window
  headless: true

  # How long to wait for page loads and login to complete
  page_load_timeout: 45s

  # Slow every browser action down, useful when debugging selectors
  slow_motion: 0s

# Emoji picker scrolling
collector:
  # Hard cap on scroll rounds per server section
  max_scroll_rounds: 50

  # Pixels scrolled per round
  scroll_increment: 200

  # Wait after each scroll for lazily rendered rows to appear
  settle_delay: 1500ms

  # Stop after this many rounds without new emojis
  stagnant_rounds: 3

# Image normalization
image:
  # Asset size requested from the CDN, also the fit-inside bound
  # for re-encoding. Emojis are never upscaled.
  emoji_size: 512

  # Lossy WebP quality for static emojis
  # Range: 1-100
  webp_quality: 80

# Output
output:
  # Base directory, one folder per server is created inside it
  base_directory: "emojis"

# Servers to extract. The folder is derived from the name when omitted.
collections:
  - name: "My Server"
  - name: "Another Server"
    folder: "another"

# DOM selectors the browser session relies on. Discord rotates its
# hashed class names between releases, override these when a run
# reports missing picker structure. Defaults are built in.
#selectors:
#  picker_scroller: 'div[class*="emojiPicker"] div[class*="scroller"]'
#  section: 'div[class*="categorySection"]'
#  emoji_image: 'li[class*="emojiItem"] img'

# Logging configuration
logging:
  # Log level: debug, info, warn, error
  level: "info"

  # Log format: console, json
  format: "console"

  # Log file path (optional)
  # Leave empty to log to stdout only
  file: ""

  # Maximum log file size in MB
  max_size: 100

  # Maximum number of old log files to keep
  max_backups: 3

  # Maximum age of log files in days
  max_age: 7
`

	// Write configuration file
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
		ui.PrintError("Failed to create configuration file", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess("Configuration file created: " + configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("1. Edit the configuration file and list the servers to extract")
	fmt.Println("2. Run 'emojigrab auth login' to store your Discord credentials")
	fmt.Println("3. Run 'emojigrab config validate' to check the configuration")
	fmt.Println("4. Start extracting with 'emojigrab grab'")
}

func runConfigShow(cmd *cobra.Command, args []string) {
	// Load configuration
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	// Create a sanitized version for display
	displayCfg := *cfg

	// Mask sensitive values
	if displayCfg.Discord.Password != "" {
		displayCfg.Discord.Password = "********"
	}

	// Convert to YAML for display
	data, err := yaml.Marshal(&displayCfg)
	if err != nil {
		ui.PrintError("Failed to format configuration", err.Error())
		os.Exit(1)
	}

	ui.PrintHighlight("Current Configuration")
	fmt.Println()
	fmt.Print(string(data))

	// Show configuration sources
	fmt.Println("\nConfiguration sources (in order of priority):")
	fmt.Println("1. Command line flags")
	fmt.Println("2. Environment variables (EMOJIGRAB_*)")
	if configFile != "" {
		fmt.Printf("3. Configuration file: %s\n", configFile)
	} else {
		fmt.Println("3. Configuration file: (not specified)")
	}
	fmt.Println("4. Default values")
}

func runConfigValidate(cmd *cobra.Command, args []string) {
	// Check if config file is specified
	if configFile == "" {
		// Try to find config file in common locations
		possiblePaths := []string{
			"emojigrab.yaml",
			"emojigrab.yml",
			".emojigrab.yaml",
			".emojigrab.yml",
			filepath.Join(os.Getenv("HOME"), ".emojigrab.yaml"),
			filepath.Join(os.Getenv("HOME"), ".config", "emojigrab", "config.yaml"),
		}

		for _, path := range possiblePaths {
			if _, err := os.Stat(path); err == nil {
				configFile = path
				break
			}
		}

		if configFile == "" {
			ui.PrintError("No configuration file found", "Specify a file with --config flag")
			os.Exit(1)
		}
	}

	ui.PrintInfo("Validating configuration", configFile)

	// Try to load and validate configuration
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Configuration validation failed", err.Error())
		os.Exit(1)
	}

	// Perform additional validation checks
	warnings := []string{}
	errors := []string{}

	// Check credentials
	if cfg.Discord.Email == "" || cfg.Discord.Password == "" {
		warnings = append(warnings, "Discord credentials not configured, run 'emojigrab auth login'")
	}

	// Check collections
	if len(cfg.Collections) == 0 {
		warnings = append(warnings, "No collections configured, pass server names on the command line")
	}

	// A short settle delay tends to miss lazily rendered picker rows
	if cfg.Collector.SettleDelay < 500*time.Millisecond {
		warnings = append(warnings, "settle_delay below 500ms may miss lazily rendered emoji rows")
	}

	// Check paths
	if cfg.Output.BaseDirectory != "" {
		if err := os.MkdirAll(cfg.Output.BaseDirectory, 0755); err != nil {
			errors = append(errors, fmt.Sprintf("Cannot create output directory: %v", err))
		}
	}

	// Check logging file path
	if cfg.Logging.File != "" {
		dir := filepath.Dir(cfg.Logging.File)
		if err := os.MkdirAll(dir, 0755); err != nil {
			errors = append(errors, fmt.Sprintf("Cannot create log directory: %v", err))
		}
	}

	// Display results
	if len(errors) > 0 {
		ui.PrintError("Configuration has errors", "")
		for _, err := range errors {
			fmt.Printf("  - %s\n", err)
		}
		os.Exit(1)
	}

	if len(warnings) > 0 {
		ui.PrintWarning("Configuration warnings", "")
		for _, warn := range warnings {
			fmt.Printf("  - %s\n", warn)
		}
		fmt.Println()
	}

	ui.PrintSuccess("Configuration is valid")

	// Show summary
	fmt.Println("\nConfiguration summary:")
	fmt.Printf("  Output directory: %s\n", cfg.Output.BaseDirectory)
	fmt.Printf("  Emoji size: %dpx\n", cfg.Image.EmojiSize)
	fmt.Printf("  Max scroll rounds: %d\n", cfg.Collector.MaxScrollRounds)
	fmt.Printf("  Collections: %d\n", len(cfg.Collections))
	fmt.Printf("  Log level: %s\n", cfg.Logging.Level)
}
