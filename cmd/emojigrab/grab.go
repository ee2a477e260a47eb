package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"emojigrab/pkg/auth"
	"emojigrab/pkg/config"
	"emojigrab/pkg/logger"
	"emojigrab/pkg/scraper"
	"emojigrab/pkg/ui"
	"emojigrab/pkg/ui/tui"
)

var (
	// Grab command flags
	outputDir    string
	accountEmail string
	emojiSize    int
	scrollRounds int
	headful      bool
	useTUI       bool
)

// grabCmd represents the grab command
var grabCmd = &cobra.Command{
	Use:   "grab [server]...",
	Short: "Extract custom emojis from Discord servers",
	Long: `Extract every custom emoji from one or more Discord servers.

Server names passed as arguments override the collections configured in the
config file. Each server gets its own folder under the output directory,
named after the server unless a folder is configured explicitly.

This command requires valid Discord credentials configured through:
  - Stored credentials (use 'emojigrab auth login' to store)
  - Environment variables (EMOJIGRAB_EMAIL and EMOJIGRAB_PASSWORD)
  - Configuration file`,
	Example: `  # Extract the collections listed in the config file
  emojigrab grab

  # Extract specific servers
  emojigrab grab "My Server" "Another Server"

  # Extract to a specific directory with a smaller asset size
  emojigrab grab "My Server" --output ./assets --size 128

  # Use a specific stored account
  emojigrab grab "My Server" --account me@example.com

  # Watch the run in the interactive dashboard
  emojigrab grab "My Server" --tui

  # Debug selector problems with a visible browser
  emojigrab grab "My Server" --headful --log-level debug`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runGrab(cmd, args)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(grabCmd)

	// Local flags for grab command
	grabCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory for emoji folders (default: emojis)")
	grabCmd.Flags().StringVarP(&accountEmail, "account", "a", "", "use specific stored account")
	grabCmd.Flags().IntVar(&emojiSize, "size", 512, "emoji asset size in pixels")
	grabCmd.Flags().IntVar(&scrollRounds, "rounds", 50, "maximum picker scroll rounds per server")
	grabCmd.Flags().BoolVar(&headful, "headful", false, "run the browser with a visible window")
	grabCmd.Flags().BoolVar(&useTUI, "tui", false, "use interactive terminal UI with real-time progress")

	// Also add these flags to the root command so 'emojigrab <server>' works
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory for emoji folders (default: emojis)")
	rootCmd.Flags().StringVarP(&accountEmail, "account", "a", "", "use specific stored account")
	rootCmd.Flags().IntVar(&emojiSize, "size", 512, "emoji asset size in pixels")
	rootCmd.Flags().BoolVar(&headful, "headful", false, "run the browser with a visible window")
	rootCmd.Flags().BoolVar(&useTUI, "tui", false, "use interactive terminal UI with real-time progress")
}

func runGrab(cmd *cobra.Command, args []string) {
	// Set quiet mode if log level is error
	if logLevel == "error" {
		ui.SetQuietMode(true)
	}

	// Build flags map from command line
	flags := make(map[string]interface{})
	if outputDir != "" {
		flags["output"] = outputDir
	}
	if emojiSize != 512 {
		flags["size"] = emojiSize
	}
	if scrollRounds != 50 {
		flags["rounds"] = scrollRounds
	}
	if headful {
		flags["headful"] = true
	}
	// Pass log level to config
	if logLevel != "info" {
		flags["log-level"] = logLevel
	}
	if len(args) > 0 {
		collections := make([]string, 0, len(args))
		for _, arg := range args {
			if name := strings.TrimSpace(arg); name != "" {
				collections = append(collections, name)
			}
		}
		flags["collections"] = collections
	}

	// Load configuration
	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	// Initialize logger
	logger.Initialize(&cfg.Logging)
	logger.WithField("version", version).Info("Emoji Grab starting")

	if len(cfg.Collections) == 0 {
		ui.PrintError("No servers specified", "")
		fmt.Println("\nPass server names as arguments:")
		fmt.Println("  emojigrab grab \"My Server\"")
		fmt.Println("\nOr configure collections in the config file:")
		fmt.Println("  emojigrab config init")
		os.Exit(1)
	}

	if !useTUI {
		names := make([]string, len(cfg.Collections))
		for i, collection := range cfg.Collections {
			names[i] = collection.Name
		}
		ui.PrintInfo("Target Servers", strings.Join(names, ", "))
	}

	// Handle credentials
	credManager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager", err.Error())
		os.Exit(1)
	}

	var account *auth.Account

	// Try to get credentials from various sources
	if accountEmail != "" {
		// Use specific account
		account, err = credManager.Retrieve(accountEmail)
		if err != nil {
			ui.PrintError("Account not found", accountEmail)
			ui.PrintInfo("Available accounts", "Use 'emojigrab auth list' to see stored accounts")
			os.Exit(1)
		}
	} else if cfg.Discord.Email != "" && cfg.Discord.Password != "" {
		// Use credentials from config/env
		logger.Info("Using credentials from configuration")
	} else {
		// Try to get default account from credential manager
		account, err = credManager.RetrieveDefault()
		if err != nil {
			// No credentials found anywhere
			logger.Error("No credentials found")
			ui.PrintError("No Discord credentials found", "")
			fmt.Println("\nTo store credentials securely, run:")
			fmt.Println("  emojigrab auth login")
			fmt.Println("\nYou can also set environment variables:")
			fmt.Println("  export EMOJIGRAB_EMAIL=you@example.com")
			fmt.Println("  export EMOJIGRAB_PASSWORD=your_password")
			os.Exit(1)
		}
	}

	// If we got an account from the credential manager, update config
	if account != nil {
		cfg.Discord.Email = account.Email
		cfg.Discord.Password = account.Password
		if account.UserAgent != "" {
			cfg.Discord.UserAgent = account.UserAgent
		}
		logger.WithField("account", account.Email).Info("Using stored credentials")
		ui.PrintInfo("Using account", account.Email)
	}

	// Final credential validation
	if cfg.Discord.Email == "" || cfg.Discord.Password == "" {
		logger.Error("Missing Discord credentials")
		ui.PrintError("Missing Discord credentials", "Run 'emojigrab auth login' to store credentials")
		os.Exit(1)
	}

	// Cancel the run on Ctrl-C so the browser session closes cleanly
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Warn("Interrupt received, stopping extraction")
		cancel()
	}()

	logger.WithField("collections", len(cfg.Collections)).Info("Starting extraction run")

	// Create and run scraper
	if useTUI {
		// Create TUI
		terminal := tui.NewTUI()

		// Run scraper in a goroutine
		scraperDone := make(chan error)
		go func() {
			s, err := scraper.New(cfg)
			if err != nil {
				scraperDone <- err
				return
			}

			// Set the TUI on the scraper
			s.SetTUI(terminal)

			scraperDone <- s.Run(ctx)
		}()

		// Run TUI in main thread
		tuiDone := make(chan error)
		go func() {
			tuiDone <- terminal.Start()
		}()

		// Wait for either to finish
		select {
		case err := <-scraperDone:
			terminal.Stop()
			<-tuiDone // Wait for TUI to finish
			if err != nil {
				logger.WithError(err).Error("Extraction failed")
				os.Exit(1)
			}
		case err := <-tuiDone:
			if err != nil {
				logger.WithError(err).Error("TUI failed")
				os.Exit(1)
			}
		}

		logger.Info("Extraction completed successfully")
	} else {
		// Plain console flow
		s, err := scraper.New(cfg)
		if err != nil {
			ui.PrintError("Failed to initialize scraper", err.Error())
			os.Exit(1)
		}

		if err := s.Run(ctx); err != nil {
			logger.WithError(err).Error("Extraction failed")
			ui.PrintError("EXTRACTION FAILED", err.Error())
			os.Exit(1)
		}

		logger.Info("Extraction completed successfully")
	}
}

// Make grab the default command when no subcommand is specified
func init() {
	origRunE := rootCmd.RunE
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if origRunE != nil {
			return origRunE(cmd, args)
		}
		if len(args) > 0 && !isKnownCommand(args[0]) {
			// A bare server name works without the "grab" subcommand
			return grabCmd.RunE(grabCmd, args)
		}
		// Otherwise show help
		return cmd.Help()
	}

	rootCmd.Args = cobra.ArbitraryArgs
}

func isKnownCommand(arg string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == arg || cmd.HasAlias(arg) {
			return true
		}
	}
	return false
}
