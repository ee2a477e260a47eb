package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// CollectionProgress renders a single-line progress bar while one
// collection's emojis move through the pipeline.
type CollectionProgress struct {
	bar        *progressbar.ProgressBar
	collection string
	startTime  time.Time
	saved      int
	failed     int
	bytes      int64
}

// NewCollectionProgress creates a progress bar sized for the collection.
// In quiet mode the bar renders nothing but still tracks totals.
func NewCollectionProgress(collection string, total int) *CollectionProgress {
	p := &CollectionProgress{
		collection: collection,
		startTime:  time.Now(),
	}
	if IsQuietMode() {
		return p
	}

	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(Cyan(collection)),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
	)
	return p
}

// EmojiSaved advances the bar for a successfully written emoji
func (p *CollectionProgress) EmojiSaved(name string, size int) {
	p.saved++
	p.bytes += int64(size)
	p.step(name)
}

// EmojiFailed advances the bar for a skipped emoji
func (p *CollectionProgress) EmojiFailed(name string) {
	p.failed++
	p.step(name)
}

func (p *CollectionProgress) step(name string) {
	if p.bar == nil {
		return
	}
	if name != "" {
		p.bar.Describe(fmt.Sprintf("%s %s", Cyan(p.collection), Dim(name)))
	}
	_ = p.bar.Add(1)
}

// Finish completes the bar and prints the collection summary line
func (p *CollectionProgress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
	if IsQuietMode() {
		return
	}

	elapsed := time.Since(p.startTime)
	line := fmt.Sprintf("%s %d emojis (%s) in %s",
		Green("✓"),
		p.saved,
		FormatBytes(p.bytes),
		formatDuration(elapsed),
	)
	if p.failed > 0 {
		line += fmt.Sprintf(" %s", Red(fmt.Sprintf("• %d skipped", p.failed)))
	}
	fmt.Println(line)
}

// FormatBytes formats bytes in a human-readable way
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	} else if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
