// Package logger provides a structured logging interface for the emoji grabber.
//
// It wraps the zerolog library to provide a clean, easy-to-use API with support for:
// - Multiple log levels (Debug, Info, Warn, Error, Fatal)
// - Structured logging with fields
// - Pretty console output with colors, or raw JSON with Format: "json"
// - Rotating file output through lumberjack
// - Context support for request tracing
// - Global logger instance for easy access
//
// Basic Usage:
//
//	import "emojigrab/pkg/logger"
//
//	// Initialize the global logger
//	cfg := &config.LoggingConfig{
//	    Level: "info",
//	    File: "/var/log/emojigrab.log",
//	}
//	err := logger.Initialize(cfg)
//
//	// Use the global logger
//	logger.Info("Application started")
//	logger.WithField("collection", "gaming-hub").Info("Collecting emojis")
//	logger.WithError(err).Error("Failed to download emoji")
//
// Advanced Usage:
//
//	// Create a logger instance with fields
//	log := logger.GetLogger().
//	    WithField("component", "pipeline").
//	    WithField("collection", "gaming-hub")
//
//	// Use structured logging
//	log.InfoWithFields("Emoji saved", map[string]interface{}{
//	    "file": "party_parrot.webp",
//	    "size": 14203,
//	})
//
// The logger supports the following configuration options:
// - Level: Log level (debug, info, warn, error, fatal)
// - Format: "console" (default) or "json"
// - File: Path to log file (empty for console only)
// - MaxSize: Maximum size in MB before rotation
// - MaxBackups: Number of old log files to keep
// - MaxAge: Maximum age in days for log files
// - Compress: Whether to compress old log files
package logger
