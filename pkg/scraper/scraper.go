package scraper

import (
	"context"
	"fmt"
	"time"

	"emojigrab/internal/pipeline"
	"emojigrab/pkg/config"
	"emojigrab/pkg/discord"
	"emojigrab/pkg/errors"
	"emojigrab/pkg/logger"
	"emojigrab/pkg/ui"
)

const (
	// fetchTimeout bounds one CDN asset download
	fetchTimeout = 30 * time.Second
)

// Scraper orchestrates the emoji extraction run: it opens the browser
// session, walks the configured collections, and hands each collected
// batch to the pipeline.
type Scraper struct {
	session   EmojiSession
	collector *Collector
	pipeline  EmojiPipeline
	notifier  *ui.Notifier
	config    *config.Config
	logger    logger.Logger
	tui       ui.TUI
}

// New creates a new Scraper instance
func New(cfg *config.Config) (*Scraper, error) {
	log := logger.GetLogger()

	client := discord.NewClient(fetchTimeout, log)
	if cfg.Discord.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.Discord.UserAgent)
	}

	return &Scraper{
		session:   discord.NewSession(cfg, log),
		collector: NewCollector(cfg, log),
		pipeline:  pipeline.New(client, cfg, log),
		notifier:  ui.NewNotifier(),
		config:    cfg,
		logger:    log,
	}, nil
}

// SetTUI sets the terminal UI for the scraper and its pipeline
func (s *Scraper) SetTUI(tui ui.TUI) {
	s.tui = tui
	if p, ok := s.pipeline.(*pipeline.Pipeline); ok {
		p.SetTUI(tui)
	}
}

// Run extracts every configured collection. Authentication and navigation
// failures abort the run; a collection that cannot be located is logged
// and skipped so the remaining collections still get processed.
func (s *Scraper) Run(ctx context.Context) error {
	if len(s.config.Collections) == 0 {
		return fmt.Errorf("no collections configured")
	}

	if s.tui == nil {
		ui.PrintHighlight("\n[INITIATING EXTRACTION SEQUENCE]\n")
	} else {
		s.tui.LogInfo("Initiating extraction sequence for %d collections", len(s.config.Collections))
	}

	s.logger.InfoWithFields("Starting emoji extraction run", map[string]interface{}{
		"collections": len(s.config.Collections),
		"output_dir":  s.config.Output.BaseDirectory,
		"action":      "run_start",
	})

	if err := s.session.Open(ctx); err != nil {
		s.logger.WithError(err).Error("Failed to open browser session")
		return fmt.Errorf("failed to open browser session: %w", err)
	}
	defer s.session.Close()

	if err := s.session.Login(ctx, s.config.Discord.Email, s.config.Discord.Password); err != nil {
		s.logger.WithError(err).Error("Failed to log in to Discord")
		return fmt.Errorf("failed to log in: %w", err)
	}

	var saved, failed, skipped int
	for _, collection := range s.config.Collections {
		select {
		case <-ctx.Done():
			s.logger.WarnWithFields("Run cancelled", map[string]interface{}{
				"collection": collection.Name,
			})
			return ctx.Err()
		default:
		}

		summary, err := s.runCollection(ctx, collection)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			skipped++
			s.logger.WithError(err).WithField("collection", collection.Name).Error("Collection skipped")
			if s.tui != nil {
				s.tui.LogError("Collection %s skipped: %v", collection.Name, err)
			} else {
				ui.PrintError(fmt.Sprintf("\nCollection %s skipped", collection.Name), err)
			}
			continue
		}
		saved += summary.Saved
		failed += summary.Failed
	}

	s.logger.InfoWithFields("Emoji extraction run completed", map[string]interface{}{
		"saved":               saved,
		"failed":              failed,
		"collections_skipped": skipped,
		"action":              "run_complete",
	})

	s.notifier.SendSuccess("EXTRACTION COMPLETE", fmt.Sprintf("%d emojis saved, %d skipped", saved, failed))
	if s.tui == nil {
		ui.PrintSuccess("\n[EXTRACTION COMPLETED SUCCESSFULLY]\n")
	} else {
		s.tui.LogSuccess("Extraction completed: %d saved, %d skipped", saved, failed)
	}
	return nil
}

// runCollection opens one collection in the picker, collects its emojis
// and runs them through the pipeline.
func (s *Scraper) runCollection(ctx context.Context, collection config.Collection) (pipeline.Summary, error) {
	s.logger.InfoWithFields("Processing collection", map[string]interface{}{
		"collection": collection.Name,
		"folder":     collection.FolderName(),
	})

	if err := s.session.OpenCollection(ctx, collection.Name); err != nil {
		return pipeline.Summary{}, fmt.Errorf("failed to open collection: %w", err)
	}

	emojis, partial, err := s.collector.Collect(s.session, collection.Name)
	if err != nil {
		if errors.TypeOf(err) == errors.ErrorTypeStructure {
			// The picker did not render what the selectors expect. Not
			// retried, the next collection gets a fresh attempt.
			return pipeline.Summary{}, err
		}
		return pipeline.Summary{}, fmt.Errorf("failed to collect emojis: %w", err)
	}

	if partial {
		if s.tui != nil {
			s.tui.LogWarning("Collection %s may be incomplete, scroll cap reached", collection.Name)
		} else {
			ui.PrintWarning(fmt.Sprintf("\nCollection %s may be incomplete, scroll cap reached\n", collection.Name))
		}
	}

	summary := s.pipeline.Run(emojis, collection)

	s.logger.InfoWithFields("Collection processed", map[string]interface{}{
		"collection": collection.Name,
		"collected":  len(emojis),
		"saved":      summary.Saved,
		"failed":     summary.Failed,
		"partial":    partial,
	})

	return summary, nil
}
