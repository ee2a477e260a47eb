package pipeline

import (
	"fmt"
	"path/filepath"
	"time"

	"emojigrab/pkg/config"
	"emojigrab/pkg/discord"
	"emojigrab/pkg/errors"
	"emojigrab/pkg/imaging"
	"emojigrab/pkg/logger"
	"emojigrab/pkg/storage"
	"emojigrab/pkg/ui"
)

// EmojiFetcher downloads raw emoji data from the CDN
type EmojiFetcher interface {
	FetchEmoji(url string) ([]byte, error)
}

// Result represents the outcome of a single emoji
type Result struct {
	Emoji    discord.Emoji
	Name     string
	Path     string
	Size     int
	Success  bool
	Warning  error
	Error    error
	Duration time.Duration
}

// Summary aggregates one collection's pass through the pipeline
type Summary struct {
	Total    int
	Saved    int
	Failed   int
	Warnings int
	Bytes    int64
}

// Pipeline turns collected emoji descriptors into files on disk. Items
// are processed strictly in order, one at a time; a failing item is
// logged and skipped without aborting the rest.
type Pipeline struct {
	fetcher EmojiFetcher
	config  *config.Config
	logger  logger.Logger
	tui     ui.TUI
}

// New creates a pipeline backed by the given fetcher
func New(fetcher EmojiFetcher, cfg *config.Config, log logger.Logger) *Pipeline {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Pipeline{
		fetcher: fetcher,
		config:  cfg,
		logger:  log,
	}
}

// SetTUI routes per-emoji events to a terminal UI instead of the
// default progress bar
func (p *Pipeline) SetTUI(t ui.TUI) {
	p.tui = t
}

// Run processes every item for the target collection and reports what
// happened. The returned summary always accounts for every input item.
func (p *Pipeline) Run(items []discord.Emoji, target config.Collection) Summary {
	summary := Summary{Total: len(items)}

	if len(items) == 0 {
		p.logger.WithField("collection", target.Name).Info("No emojis to process")
		return summary
	}

	dir := filepath.Join(p.config.Output.BaseDirectory, target.FolderName())
	manager, err := storage.NewManager(dir)
	if err != nil {
		p.logger.WithError(err).WithFields(map[string]interface{}{
			"collection": target.Name,
			"directory":  dir,
		}).Error("Failed to create collection directory")
		summary.Failed = len(items)
		return summary
	}

	p.logger.InfoWithFields("Processing collection", map[string]interface{}{
		"collection": target.Name,
		"directory":  dir,
		"emojis":     len(items),
	})

	var progress *ui.CollectionProgress
	if p.tui != nil {
		p.tui.StartCollection(target.Name, len(items))
	} else {
		progress = ui.NewCollectionProgress(target.Name, len(items))
	}

	for i, item := range items {
		p.waitWhilePaused()

		name := item.FileBase(i)
		if p.tui != nil {
			p.tui.StartEmoji(name)
		}

		result := p.processItem(manager, item, i)

		if result.Success {
			summary.Saved++
			summary.Bytes += int64(result.Size)
			if result.Warning != nil {
				summary.Warnings++
			}
			logger.LogItemSaved(item.Collection, name, result.Path, result.Size)
			if p.tui != nil {
				p.tui.CompleteEmoji(name, int64(result.Size))
			} else {
				progress.EmojiSaved(name, result.Size)
			}
		} else {
			summary.Failed++
			logger.LogItemFailure(item.Collection, name, i, result.Error)
			if p.tui != nil {
				p.tui.FailEmoji(name, result.Error)
			} else {
				progress.EmojiFailed(name)
			}
		}
	}

	if progress != nil {
		progress.Finish()
	}
	if p.tui != nil {
		p.tui.CompleteCollection(target.Name, summary.Saved, summary.Failed)
	}

	p.logger.InfoWithFields("Collection finished", map[string]interface{}{
		"collection": target.Name,
		"saved":      summary.Saved,
		"failed":     summary.Failed,
		"warnings":   summary.Warnings,
		"bytes":      summary.Bytes,
	})

	return summary
}

// processItem runs one emoji through fetch, decode, resize, encode,
// save and verify
func (p *Pipeline) processItem(manager *storage.Manager, item discord.Emoji, index int) Result {
	start := time.Now()
	result := Result{Emoji: item, Name: item.FileBase(index)}

	p.logger.DebugWithFields("Processing emoji", map[string]interface{}{
		"collection": item.Collection,
		"name":       result.Name,
		"index":      index,
		"url":        item.SourceURL,
	})

	// Fetch
	data, err := p.fetcher.FetchEmoji(item.SourceURL)
	if err != nil {
		result.Error = fmt.Errorf("fetch failed: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	// A 200 with an empty body still counts as a failed fetch
	if len(data) == 0 {
		result.Error = &errors.Error{
			Type:    errors.ErrorTypeEmptyPayload,
			Message: "fetched zero bytes",
		}
		result.Duration = time.Since(start)
		return result
	}

	// Decode
	asset, err := imaging.Decode(data)
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		return result
	}

	// Resize to fit the configured box, never upscaling
	asset = imaging.FitInside(asset, p.config.Image.EmojiSize)

	// Re-encode
	encoded, ext, err := imaging.Encode(asset, p.config.Image.WebPQuality)
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		return result
	}
	if len(encoded) == 0 {
		result.Error = &errors.Error{
			Type:    errors.ErrorTypeEmptyOutput,
			Message: "encoder produced zero bytes",
		}
		result.Duration = time.Since(start)
		return result
	}

	// Save, overwriting any previous version
	path, err := manager.SaveEmoji(result.Name, ext, encoded)
	if err != nil {
		result.Error = fmt.Errorf("save failed: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	result.Path = path
	result.Size = len(encoded)
	result.Success = true

	// Verify what landed on disk. A mismatch is only a warning, the
	// file stays.
	if err := manager.VerifySize(path, len(encoded)); err != nil {
		result.Warning = err
		p.logger.WithError(err).WithFields(map[string]interface{}{
			"collection": item.Collection,
			"name":       result.Name,
			"path":       path,
		}).Warn("Saved emoji failed size verification")
	}

	result.Duration = time.Since(start)

	p.logger.DebugWithFields("Emoji saved", map[string]interface{}{
		"collection": item.Collection,
		"name":       result.Name,
		"path":       path,
		"animated":   asset.Animated(),
		"size":       result.Size,
		"duration":   result.Duration,
	})

	return result
}

// waitWhilePaused blocks between items while the TUI has extraction paused
func (p *Pipeline) waitWhilePaused() {
	for p.tui != nil && p.tui.IsPaused() {
		time.Sleep(200 * time.Millisecond)
	}
}
