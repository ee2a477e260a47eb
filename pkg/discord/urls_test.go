package discord

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmojiURL(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		size         int
		wantURL      string
		wantAnimated bool
		wantErr      bool
	}{
		{
			name:    "small static thumbnail upgraded",
			raw:     "https://cdn.discordapp.com/emojis/1234.webp?size=64&quality=lossless",
			size:    512,
			wantURL: "https://cdn.discordapp.com/emojis/1234.webp?quality=lossless&size=512",
		},
		{
			name:    "no size parameter gains one",
			raw:     "https://cdn.discordapp.com/emojis/1234.webp",
			size:    512,
			wantURL: "https://cdn.discordapp.com/emojis/1234.webp?size=512",
		},
		{
			name:         "gif path marks animated and survives",
			raw:          "https://cdn.discordapp.com/emojis/5678.gif?size=48",
			size:         512,
			wantURL:      "https://cdn.discordapp.com/emojis/5678.gif?size=512",
			wantAnimated: true,
		},
		{
			name:         "animated query parameter survives the rewrite",
			raw:          "https://cdn.discordapp.com/emojis/5678.webp?size=44&animated=true",
			size:         512,
			wantURL:      "https://cdn.discordapp.com/emojis/5678.webp?animated=true&size=512",
			wantAnimated: true,
		},
		{
			name:    "custom target size",
			raw:     "https://cdn.discordapp.com/emojis/1234.webp?size=64",
			size:    256,
			wantURL: "https://cdn.discordapp.com/emojis/1234.webp?size=256",
		},
		{
			name:    "fragment noise dropped",
			raw:     "https://cdn.discordapp.com/emojis/1234.webp?size=64#frag",
			size:    512,
			wantURL: "https://cdn.discordapp.com/emojis/1234.webp?size=512",
		},
		{
			name:    "relative URL rejected",
			raw:     "/emojis/1234.webp?size=64",
			size:    512,
			wantErr: true,
		},
		{
			name:    "garbage rejected",
			raw:     "ht tp://\x7f",
			size:    512,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, animated, err := NormalizeEmojiURL(tt.raw, tt.size)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, got)
			assert.Equal(t, tt.wantAnimated, animated)

			// Result must stay parseable
			_, err = url.Parse(got)
			assert.NoError(t, err)
		})
	}
}

func TestIsCustomEmojiURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"guild emoji", "https://cdn.discordapp.com/emojis/1234.webp?size=48", true},
		{"animated guild emoji", "https://cdn.discordapp.com/emojis/1234.gif", true},
		{"case insensitive host", "https://CDN.DISCORDAPP.COM/emojis/1.webp", true},
		{"unicode sprite asset", "https://discord.com/assets/twemoji/1f600.svg", false},
		{"avatar on the CDN", "https://cdn.discordapp.com/avatars/1/abc.webp", false},
		{"other host entirely", "https://example.com/emojis/1234.webp", false},
		{"unparseable", "ht tp://\x7f", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCustomEmojiURL(tt.raw))
		})
	}
}

func TestSanitizeEmojiName(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"plain colon wrapped label", ":party_parrot:", "party_parrot"},
		{"no delimiters", "party_parrot", "party_parrot"},
		{"only one leading and trailing stripped", "::drum::", "_drum_"},
		{"inner punctuation replaced", ":he:llo!:", "he_llo_"},
		{"spaces replaced", "cool emoji", "cool_emoji"},
		{"unicode replaced per character", ":héllo:", "h_llo"},
		{"digits and dashes kept", ":abc-123:", "abc-123"},
		{"single colon becomes empty", ":", ""},
		{"double colon becomes empty", "::", ""},
		{"triple colon leaves one underscore", ":::", "_"},
		{"empty label stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeEmojiName(tt.label))
		})
	}
}

func TestEmojiFileBase(t *testing.T) {
	tests := []struct {
		name     string
		emoji    Emoji
		position int
		want     string
	}{
		{"named emoji keeps its name", Emoji{Name: "party_parrot"}, 4, "party_parrot"},
		{"empty name falls back to position", Emoji{Name: ""}, 0, "emoji_1"},
		{"fallback is one-based", Emoji{Name: ""}, 6, "emoji_7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.emoji.FileBase(tt.position))
		})
	}
}

func TestGetLoginURL(t *testing.T) {
	assert.Equal(t, "https://discord.com/login", GetLoginURL())
	assert.Equal(t, "https://discord.com/channels/@me", GetAppURL())
}

func BenchmarkNormalizeEmojiURL(b *testing.B) {
	for i := 0; i < b.N; i++ {
		NormalizeEmojiURL("https://cdn.discordapp.com/emojis/1234.webp?size=64&quality=lossless", 512)
	}
}

func BenchmarkSanitizeEmojiName(b *testing.B) {
	for i := 0; i < b.N; i++ {
		SanitizeEmojiName(":party_parrot_2024!:")
	}
}
