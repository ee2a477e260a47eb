package discord

import "fmt"

// Thumbnail is one rendered emoji cell as scraped from the picker, before
// any normalization happens.
type Thumbnail struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

// Emoji describes a collected custom emoji, normalized and ready for
// download. Name may be empty when the picker label sanitized away to
// nothing; the pipeline substitutes a positional name at persist time.
type Emoji struct {
	Name       string `json:"name"`
	SourceURL  string `json:"source_url"`
	Animated   bool   `json:"animated"`
	Collection string `json:"collection"`
}

// FileBase returns the filename stem for the emoji. position is the
// emoji's 0-based slot in the collected slice and only matters for the
// fallback name.
func (e Emoji) FileBase(position int) string {
	if e.Name != "" {
		return e.Name
	}
	return fmt.Sprintf("emoji_%d", position+1)
}
