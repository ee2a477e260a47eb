package scraper

import (
	"context"
	"time"

	"emojigrab/internal/pipeline"
	"emojigrab/pkg/config"
	"emojigrab/pkg/discord"
)

// PickerSession defines the picker operations the collector drives. It is
// the browser-facing slice of discord.Session, narrow enough to fake in
// tests.
type PickerSession interface {
	ScrollRegion() (discord.Region, error)
	Section(region discord.Region, name string) (discord.Region, error)
	Thumbnails(region discord.Region) ([]discord.Thumbnail, error)
	NextSectionVisible(region discord.Region) (bool, error)
	ScrollBy(region discord.Region, deltaY int) error
	Wait(d time.Duration)
}

// EmojiSession adds the navigation operations the orchestrator needs on
// top of the picker operations. *discord.Session implements it.
type EmojiSession interface {
	PickerSession
	Open(ctx context.Context) error
	Login(ctx context.Context, email, password string) error
	OpenCollection(ctx context.Context, name string) error
	Close()
}

// EmojiPipeline materializes collected emojis on disk and reports the
// per-collection outcome.
type EmojiPipeline interface {
	Run(items []discord.Emoji, target config.Collection) pipeline.Summary
}
