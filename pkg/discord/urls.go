package discord

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	// BaseURL is the base URL for the Discord web client
	BaseURL = "https://discord.com"

	// LoginPath is the path of the login form
	LoginPath = "/login"

	// AppPath is the path of the app shell once authenticated
	AppPath = "/channels/@me"

	// CDNHost serves guild emoji assets
	CDNHost = "cdn.discordapp.com"

	// EmojiPathPrefix is the CDN path prefix for custom emojis
	EmojiPathPrefix = "/emojis/"
)

// GetLoginURL returns the URL of the login form
func GetLoginURL() string {
	return BaseURL + LoginPath
}

// GetAppURL returns the URL of the authenticated app shell
func GetAppURL() string {
	return BaseURL + AppPath
}

// NormalizeEmojiURL rewrites a picker thumbnail URL into the download URL.
// The size query parameter is forced to size so the CDN serves a full
// render instead of the tiny picker sprite. Every other part of the asset
// reference stays intact, so an animation marker (a .gif path or an
// animated=true parameter) survives the rewrite. The reported boolean is
// whether the asset is animated.
func NormalizeEmojiURL(raw string, size int) (string, bool, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false, fmt.Errorf("failed to parse emoji URL %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", false, fmt.Errorf("emoji URL %q is not absolute", raw)
	}

	q := u.Query()
	animated := strings.HasSuffix(strings.ToLower(u.Path), ".gif") ||
		strings.EqualFold(q.Get("animated"), "true")

	q.Set("size", strconv.Itoa(size))
	u.RawQuery = q.Encode()
	u.Fragment = ""

	return u.String(), animated, nil
}

// IsCustomEmojiURL reports whether the URL points at a guild emoji asset on
// the Discord CDN. The picker also renders bundled unicode sprites, which
// live elsewhere and are not collected.
func IsCustomEmojiURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, CDNHost) && strings.HasPrefix(u.Path, EmojiPathPrefix)
}

// SanitizeEmojiName turns a picker label like ":party_parrot:" into a safe
// filename stem. Exactly one leading and one trailing colon are stripped,
// then every character outside [A-Za-z0-9_-] becomes an underscore.
func SanitizeEmojiName(label string) string {
	if strings.HasPrefix(label, ":") {
		label = label[1:]
	}
	if strings.HasSuffix(label, ":") {
		label = label[:len(label)-1]
	}

	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
