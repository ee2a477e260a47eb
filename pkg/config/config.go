package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the emoji grabber
type Config struct {
	// Discord account settings
	Discord DiscordConfig `yaml:"discord" json:"discord"`

	// Browser automation settings
	Browser BrowserConfig `yaml:"browser" json:"browser"`

	// Picker scroll collection settings
	Collector CollectorConfig `yaml:"collector" json:"collector"`

	// Image normalization settings
	Image ImageConfig `yaml:"image" json:"image"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Servers whose emojis get collected
	Collections []Collection `yaml:"collections" json:"collections"`

	// DOM selectors, overridable because Discord renames its class hashes
	Selectors SelectorConfig `yaml:"selectors" json:"selectors"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// DiscordConfig holds Discord-specific configuration
type DiscordConfig struct {
	Email     string `yaml:"email" json:"email"`
	Password  string `yaml:"password" json:"password"`
	UserAgent string `yaml:"user_agent" json:"user_agent"`
}

// BrowserConfig holds browser automation configuration
type BrowserConfig struct {
	Headless        bool          `yaml:"headless" json:"headless"`
	PageLoadTimeout time.Duration `yaml:"page_load_timeout" json:"page_load_timeout"`
	SlowMotion      time.Duration `yaml:"slow_motion" json:"slow_motion"`
}

// CollectorConfig holds the scroll harvest parameters
type CollectorConfig struct {
	MaxScrollRounds int           `yaml:"max_scroll_rounds" json:"max_scroll_rounds"`
	ScrollIncrement int           `yaml:"scroll_increment" json:"scroll_increment"`
	SettleDelay     time.Duration `yaml:"settle_delay" json:"settle_delay"`
	StagnantRounds  int           `yaml:"stagnant_rounds" json:"stagnant_rounds"`
}

// ImageConfig holds image normalization configuration
type ImageConfig struct {
	EmojiSize   int `yaml:"emoji_size" json:"emoji_size"`
	WebPQuality int `yaml:"webp_quality" json:"webp_quality"`
}

// OutputConfig holds output directory configuration
type OutputConfig struct {
	BaseDirectory string `yaml:"base_directory" json:"base_directory"`
}

// Collection names one server to collect and the folder its emojis land in
type Collection struct {
	Name   string `yaml:"name" json:"name"`
	Folder string `yaml:"folder" json:"folder"`
}

// FolderName returns the folder to write into, deriving one from the
// collection name when none is configured.
func (c Collection) FolderName() string {
	if c.Folder != "" {
		return c.Folder
	}
	folder := strings.ToLower(strings.TrimSpace(c.Name))
	var b strings.Builder
	for _, r := range folder {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// SelectorConfig holds the DOM selectors the browser session relies on.
// Discord ships hashed class names that rotate between releases, so every
// lookup the session performs can be repointed from the config file.
type SelectorConfig struct {
	LoginEmail     string `yaml:"login_email" json:"login_email"`
	LoginPassword  string `yaml:"login_password" json:"login_password"`
	LoginSubmit    string `yaml:"login_submit" json:"login_submit"`
	TOTPInput      string `yaml:"totp_input" json:"totp_input"`
	GuildSidebar   string `yaml:"guild_sidebar" json:"guild_sidebar"`
	GuildItem      string `yaml:"guild_item" json:"guild_item"`
	ChannelItem    string `yaml:"channel_item" json:"channel_item"`
	EmojiButton    string `yaml:"emoji_button" json:"emoji_button"`
	PickerScroller string `yaml:"picker_scroller" json:"picker_scroller"`
	Section        string `yaml:"section" json:"section"`
	SectionHeader  string `yaml:"section_header" json:"section_header"`
	EmojiImage     string `yaml:"emoji_image" json:"emoji_image"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `yaml:"level" json:"level"`
	Format     string `yaml:"format" json:"format"`
	File       string `yaml:"file" json:"file"`
	MaxSize    int    `yaml:"max_size" json:"max_size"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	MaxAge     int    `yaml:"max_age" json:"max_age"`
	Compress   bool   `yaml:"compress" json:"compress"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Discord: DiscordConfig{
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
		},
		Browser: BrowserConfig{
			Headless:        true,
			PageLoadTimeout: 45 * time.Second,
			SlowMotion:      0,
		},
		Collector: CollectorConfig{
			MaxScrollRounds: 50,
			ScrollIncrement: 200,
			SettleDelay:     1500 * time.Millisecond,
			StagnantRounds:  3,
		},
		Image: ImageConfig{
			EmojiSize:   512,
			WebPQuality: 80,
		},
		Output: OutputConfig{
			BaseDirectory: "emojis",
		},
		Selectors: SelectorConfig{
			LoginEmail:     `input[name="email"]`,
			LoginPassword:  `input[name="password"]`,
			LoginSubmit:    `button[type="submit"]`,
			TOTPInput:      `input[autocomplete="one-time-code"]`,
			GuildSidebar:   `nav[aria-label="Servers sidebar"]`,
			GuildItem:      `div[data-list-item-id^="guildsnav___"]`,
			ChannelItem:    `a[data-list-item-id^="channels___"]`,
			EmojiButton:    `button[aria-label="Select emoji"]`,
			PickerScroller: `div[class*="emojiPicker"] div[class*="scroller"]`,
			Section:        `div[class*="categorySection"]`,
			SectionHeader:  `div[class*="categoryHeader"]`,
			EmojiImage:     `li[class*="emojiItem"] img`,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			File:       "",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     7,
			Compress:   false,
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	// Discord credentials
	if email := os.Getenv("EMOJIGRAB_EMAIL"); email != "" {
		c.Discord.Email = email
	}
	if password := os.Getenv("EMOJIGRAB_PASSWORD"); password != "" {
		c.Discord.Password = password
	}
	if userAgent := os.Getenv("EMOJIGRAB_USER_AGENT"); userAgent != "" {
		c.Discord.UserAgent = userAgent
	}

	// Browser
	if headless := os.Getenv("EMOJIGRAB_HEADLESS"); headless != "" {
		c.Browser.Headless = strings.ToLower(headless) != "false"
	}

	// Collector
	if rounds := os.Getenv("EMOJIGRAB_MAX_SCROLL_ROUNDS"); rounds != "" {
		var val int
		fmt.Sscanf(rounds, "%d", &val)
		if val > 0 {
			c.Collector.MaxScrollRounds = val
		}
	}
	if increment := os.Getenv("EMOJIGRAB_SCROLL_INCREMENT"); increment != "" {
		var val int
		fmt.Sscanf(increment, "%d", &val)
		if val > 0 {
			c.Collector.ScrollIncrement = val
		}
	}

	// Image
	if size := os.Getenv("EMOJIGRAB_EMOJI_SIZE"); size != "" {
		var val int
		fmt.Sscanf(size, "%d", &val)
		if val > 0 {
			c.Image.EmojiSize = val
		}
	}

	// Output directory
	if outputDir := os.Getenv("EMOJIGRAB_OUTPUT_DIR"); outputDir != "" {
		c.Output.BaseDirectory = outputDir
	}

	// Collections, comma separated server names
	if collections := os.Getenv("EMOJIGRAB_COLLECTIONS"); collections != "" {
		c.Collections = c.Collections[:0]
		for _, name := range strings.Split(collections, ",") {
			if name = strings.TrimSpace(name); name != "" {
				c.Collections = append(c.Collections, Collection{Name: name})
			}
		}
	}

	// Logging level
	if logLevel := os.Getenv("EMOJIGRAB_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	// Check in order of precedence
	locations := []string{
		".emojigrab.yaml",
		".emojigrab.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "emojigrab", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "emojigrab", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".emojigrab.yaml"),
		filepath.Join(os.Getenv("HOME"), ".emojigrab.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	// Validate collector settings
	if c.Collector.MaxScrollRounds <= 0 {
		errs = append(errs, errors.New("max scroll rounds must be positive"))
	}
	if c.Collector.ScrollIncrement <= 0 {
		errs = append(errs, errors.New("scroll increment must be positive"))
	}
	if c.Collector.SettleDelay < 0 {
		errs = append(errs, errors.New("settle delay cannot be negative"))
	}
	if c.Collector.StagnantRounds <= 0 {
		errs = append(errs, errors.New("stagnant rounds must be positive"))
	}

	// Validate image settings
	if c.Image.EmojiSize <= 0 {
		errs = append(errs, errors.New("emoji size must be positive"))
	}
	if c.Image.WebPQuality < 1 || c.Image.WebPQuality > 100 {
		errs = append(errs, errors.New("webp quality must be between 1 and 100"))
	}

	// Validate browser settings
	if c.Browser.PageLoadTimeout <= 0 {
		errs = append(errs, errors.New("page load timeout must be positive"))
	}

	// Validate output settings
	if c.Output.BaseDirectory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}

	// Collections must carry a name when configured
	for i, col := range c.Collections {
		if strings.TrimSpace(col.Name) == "" {
			errs = append(errs, fmt.Errorf("collection %d has no name", i))
		}
	}

	// Validate logging
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if email, ok := flags["email"].(string); ok && email != "" {
		c.Discord.Email = email
	}
	if password, ok := flags["password"].(string); ok && password != "" {
		c.Discord.Password = password
	}
	if outputDir, ok := flags["output"].(string); ok && outputDir != "" {
		c.Output.BaseDirectory = outputDir
	}
	if size, ok := flags["size"].(int); ok && size > 0 {
		c.Image.EmojiSize = size
	}
	if rounds, ok := flags["rounds"].(int); ok && rounds > 0 {
		c.Collector.MaxScrollRounds = rounds
	}
	if headful, ok := flags["headful"].(bool); ok && headful {
		c.Browser.Headless = false
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
	if collections, ok := flags["collections"].([]string); ok && len(collections) > 0 {
		c.Collections = c.Collections[:0]
		for _, name := range collections {
			c.Collections = append(c.Collections, Collection{Name: name})
		}
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".env"))
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".emojigrab.env"))

	// Start with defaults
	config := DefaultConfig()

	// Load from config file
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Override with command line flags
	config.MergeCommandLineFlags(flags)

	// Validate final configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
