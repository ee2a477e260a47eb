package scraper

import (
	"fmt"

	"emojigrab/pkg/config"
	"emojigrab/pkg/discord"
	"emojigrab/pkg/logger"
)

// Collector walks one collection's section of the emoji picker and
// gathers normalized emoji descriptors. It only reads and scrolls, the
// pipeline does the downloading.
type Collector struct {
	config *config.Config
	logger logger.Logger
}

// NewCollector creates a collector bound to the given configuration
func NewCollector(cfg *config.Config, log logger.Logger) *Collector {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Collector{
		config: cfg,
		logger: log,
	}
}

// Collect scrolls through the named collection's section and returns its
// emojis in first-seen order, deduplicated by source URL. The partial
// flag reports that the scroll round cap was hit before the collection's
// end came into view, so the returned list may be incomplete.
//
// The scan ends cleanly when the next section header scrolls into view or
// when no new emojis appear for several consecutive rounds, which also
// covers empty collections.
func (c *Collector) Collect(session PickerSession, collectionName string) ([]discord.Emoji, bool, error) {
	region, err := session.ScrollRegion()
	if err != nil {
		return nil, false, err
	}
	section, err := session.Section(region, collectionName)
	if err != nil {
		return nil, false, err
	}

	c.logger.InfoWithFields("Scanning collection", map[string]interface{}{
		"collection": collectionName,
		"max_rounds": c.config.Collector.MaxScrollRounds,
	})

	var (
		emojis   []discord.Emoji
		seen     = make(map[string]bool)
		stagnant int
		partial  bool
		rounds   int
	)

	for round := 1; ; round++ {
		rounds = round

		thumbs, err := session.Thumbnails(section)
		if err != nil {
			return nil, false, fmt.Errorf("failed to scan emoji thumbnails: %w", err)
		}

		added := 0
		for _, thumb := range thumbs {
			sourceURL, animated, err := discord.NormalizeEmojiURL(thumb.URL, c.config.Image.EmojiSize)
			if err != nil {
				c.logger.DebugWithFields("Skipping thumbnail with unusable URL", map[string]interface{}{
					"collection": collectionName,
					"url":        thumb.URL,
					"error":      err.Error(),
				})
				continue
			}
			if seen[sourceURL] {
				continue
			}
			seen[sourceURL] = true

			emojis = append(emojis, discord.Emoji{
				Name:       discord.SanitizeEmojiName(thumb.Label),
				SourceURL:  sourceURL,
				Animated:   animated,
				Collection: collectionName,
			})
			added++
		}

		logger.LogCollectRound(collectionName, round, len(thumbs), added)

		boundary, err := session.NextSectionVisible(section)
		if err != nil {
			// Probe failures mean the DOM is mid-render, treat as no boundary.
			c.logger.WithError(err).Debug("Boundary probe failed, continuing scan")
			boundary = false
		}
		if boundary {
			break
		}

		if added == 0 {
			stagnant++
			if stagnant >= c.config.Collector.StagnantRounds {
				break
			}
		} else {
			stagnant = 0
		}

		if round >= c.config.Collector.MaxScrollRounds {
			partial = true
			c.logger.WarnWithFields("Scroll round cap reached before collection end", map[string]interface{}{
				"collection": collectionName,
				"rounds":     round,
				"collected":  len(emojis),
			})
			break
		}

		if err := session.ScrollBy(region, c.config.Collector.ScrollIncrement); err != nil {
			return nil, false, fmt.Errorf("failed to scroll emoji picker: %w", err)
		}
		session.Wait(c.config.Collector.SettleDelay)
	}

	c.logger.InfoWithFields("Collection scan finished", map[string]interface{}{
		"collection": collectionName,
		"emojis":     len(emojis),
		"rounds":     rounds,
		"partial":    partial,
	})

	return emojis, partial, nil
}
