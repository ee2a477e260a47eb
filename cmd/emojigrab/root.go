package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"emojigrab/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile    string
	logLevel      string
	noColor       bool
	notifications bool
	quiet         bool
	verbose       bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "emojigrab",
	Short: "Extract custom emojis from Discord servers into local folders",
	Long: `Emoji Grab is a command-line tool for extracting custom emojis from Discord servers.

It drives a real browser session, scrolls each server's section of the emoji
picker, and saves every custom emoji at full resolution. Static emojis are
re-encoded as WebP, animated ones keep their GIF frames.

Features:
  - Secure credential storage using system keychain
  - Full-size source assets instead of picker thumbnails
  - Per-server output folders with sanitized file names
  - Desktop notifications when a run finishes
  - Interactive terminal dashboard with real-time progress

For more information and examples, visit: https://github.com/yourusername/emojigrab`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Verbose bumps the log level unless one was given explicitly
		if verbose && logLevel == "info" {
			logLevel = "debug"
		}

		// Set quiet mode if requested or log level is error
		if quiet || logLevel == "error" {
			ui.SetQuietMode(true)
		}

		if noColor {
			ui.SetColorEnabled(false)
		}
		if !notifications {
			ui.SetNotificationsEnabled(false)
		}

		// Don't show logo for certain commands
		if cmd.Name() != "version" && cmd.Name() != "help" && cmd.Name() != "completion" {
			ui.PrintLogo()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is $HOME/.emojigrab.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&notifications, "notifications", true, "enable desktop notifications")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show debug logs")

	// Version template
	rootCmd.SetVersionTemplate(`Emoji Grab {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
