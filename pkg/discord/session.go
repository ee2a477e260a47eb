package discord

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"emojigrab/pkg/config"
	"emojigrab/pkg/errors"
	"emojigrab/pkg/logger"
)

// Region identifies a DOM subtree the collector works inside. Sessions hand
// these out so callers never touch browser elements directly.
type Region struct {
	el *rod.Element
}

// Session drives the Discord web client in an automated Chromium instance.
// It owns the browser lifecycle and exposes the picker primitives the
// collector consumes.
type Session struct {
	cfg      *config.Config
	logger   logger.Logger
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page

	// promptCode reads a one-time code from the operator when Discord
	// asks for a second factor. Replaceable so logins can be scripted.
	promptCode func(prompt string) (string, error)
}

// NewSession creates a session from the browser and selector configuration.
// Nothing is launched until Open is called.
func NewSession(cfg *config.Config, log logger.Logger) *Session {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Session{
		cfg:        cfg,
		logger:     log,
		promptCode: stdinPrompt,
	}
}

// Open launches the browser and loads the Discord login page. The browser
// lives until Close; cancelling ctx tears down every pending operation.
func (s *Session) Open(ctx context.Context) error {
	l := launcher.New().
		Headless(s.cfg.Browser.Headless).
		Set("disable-blink-features", "AutomationControlled")

	controlURL, err := l.Launch()
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}
	s.launcher = l

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if s.cfg.Browser.SlowMotion > 0 {
		browser = browser.SlowMotion(s.cfg.Browser.SlowMotion)
	}
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("failed to connect to browser: %w", err)
	}
	s.browser = browser

	page, err := browser.Page(proto.TargetCreateTarget{URL: GetLoginURL()})
	if err != nil {
		return fmt.Errorf("failed to open login page: %w", err)
	}
	if ua := s.cfg.Discord.UserAgent; ua != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: ua}); err != nil {
			return fmt.Errorf("failed to set user agent: %w", err)
		}
	}
	s.page = page

	if err := s.timeout().WaitLoad(); err != nil {
		return fmt.Errorf("failed to load login page: %w", err)
	}

	s.logger.InfoWithFields("browser session opened", map[string]interface{}{
		"headless": s.cfg.Browser.Headless,
	})
	return nil
}

// Close tears the browser down. Safe to call on a session that never opened.
func (s *Session) Close() {
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			s.logger.WithError(err).Warn("failed to close browser cleanly")
		}
		s.browser = nil
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher.Cleanup()
		s.launcher = nil
	}
}

// Login signs into Discord with the given credentials. A restored session
// that is already inside the app short-circuits. When Discord asks for a
// TOTP code the session prompts the operator for it.
func (s *Session) Login(ctx context.Context, email, password string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.loggedIn() {
		s.logger.Info("existing session still valid, skipping login")
		return nil
	}

	sel := s.cfg.Selectors

	emailEl, err := s.timeout().Element(sel.LoginEmail)
	if err != nil {
		return structuralErr("login email field", sel.LoginEmail)
	}
	if err := emailEl.Input(email); err != nil {
		return fmt.Errorf("failed to enter email: %w", err)
	}

	passEl, err := s.timeout().Element(sel.LoginPassword)
	if err != nil {
		return structuralErr("login password field", sel.LoginPassword)
	}
	if err := passEl.Input(password); err != nil {
		return fmt.Errorf("failed to enter password: %w", err)
	}

	submit, err := s.timeout().Element(sel.LoginSubmit)
	if err != nil {
		return structuralErr("login submit button", sel.LoginSubmit)
	}
	if err := submit.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("failed to submit login form: %w", err)
	}

	s.logger.WithField("email", maskEmail(email)).Info("login submitted")

	// Wait for either the app shell or a second-factor prompt.
	deadline := time.Now().Add(s.cfg.Browser.PageLoadTimeout)
	totpHandled := false
	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.loggedIn() {
			s.logger.Info("login completed")
			return nil
		}
		if !totpHandled {
			if has, totpEl, err := s.page.Has(sel.TOTPInput); err == nil && has {
				if err := s.enterTOTP(totpEl); err != nil {
					return err
				}
				totpHandled = true
				deadline = time.Now().Add(s.cfg.Browser.PageLoadTimeout)
			}
		}
		time.Sleep(time.Second)
	}

	return &errors.Error{
		Type:    errors.ErrorTypeAuth,
		Message: "login did not reach the app shell, check credentials",
	}
}

// enterTOTP prompts for a one-time code and submits it
func (s *Session) enterTOTP(input *rod.Element) error {
	code, err := s.promptCode("Enter your Discord 2FA code: ")
	if err != nil {
		return &errors.Error{
			Type:    errors.ErrorTypeAuth,
			Message: fmt.Sprintf("failed to read 2FA code: %v", err),
		}
	}
	if err := input.Input(strings.TrimSpace(code)); err != nil {
		return fmt.Errorf("failed to enter 2FA code: %w", err)
	}

	submit, err := s.timeout().Element(s.cfg.Selectors.LoginSubmit)
	if err != nil {
		return structuralErr("2FA submit button", s.cfg.Selectors.LoginSubmit)
	}
	if err := submit.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("failed to submit 2FA code: %w", err)
	}

	s.logger.Info("2FA code submitted")
	return nil
}

// OpenCollection clicks through to the named server, opens a text channel
// and brings up the emoji picker. After it returns the picker is on screen
// and ready for the collector.
func (s *Session) OpenCollection(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sel := s.cfg.Selectors

	sidebar, err := s.timeout().Element(sel.GuildSidebar)
	if err != nil {
		return structuralErr("server sidebar", sel.GuildSidebar)
	}

	guild, err := s.findGuild(sidebar, name)
	if err != nil {
		return err
	}
	if err := guild.ScrollIntoView(); err != nil {
		return fmt.Errorf("failed to scroll server into view: %w", err)
	}
	if err := guild.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("failed to open server %q: %w", name, err)
	}

	// First text channel in the list is good enough, the picker content
	// does not depend on which channel is open.
	channel, err := s.timeout().Element(sel.ChannelItem)
	if err != nil {
		return structuralErr("text channel list", sel.ChannelItem)
	}
	if err := channel.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}

	picker, err := s.timeout().Element(sel.EmojiButton)
	if err != nil {
		return structuralErr("emoji picker button", sel.EmojiButton)
	}
	if err := picker.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("failed to open emoji picker: %w", err)
	}

	if _, err := s.timeout().Element(sel.PickerScroller); err != nil {
		return structuralErr("emoji picker panel", sel.PickerScroller)
	}

	// Give the virtualized list a moment to render its first window.
	time.Sleep(500 * time.Millisecond)

	s.logger.WithField("collection", name).Info("emoji picker opened")
	return nil
}

// findGuild scans the sidebar for the server whose accessible label starts
// with name. Discord suffixes unread counts onto the label, so an exact
// match would be too brittle.
func (s *Session) findGuild(sidebar *rod.Element, name string) (*rod.Element, error) {
	items, err := sidebar.Elements(s.cfg.Selectors.GuildItem)
	if err != nil || len(items) == 0 {
		return nil, structuralErr("server entries in sidebar", s.cfg.Selectors.GuildItem)
	}

	for _, item := range items {
		label, err := item.Attribute("aria-label")
		if err != nil || label == nil {
			continue
		}
		got := strings.TrimSpace(strings.SplitN(*label, ",", 2)[0])
		if strings.EqualFold(got, name) {
			return item, nil
		}
	}

	return nil, structuralErr(fmt.Sprintf("server %q in sidebar", name), s.cfg.Selectors.GuildItem)
}

// ScrollRegion locates the picker's scrollable emoji list
func (s *Session) ScrollRegion() (Region, error) {
	el, err := s.timeout().Element(s.cfg.Selectors.PickerScroller)
	if err != nil {
		return Region{}, structuralErr("emoji picker scroll region", s.cfg.Selectors.PickerScroller)
	}
	return Region{el: el}, nil
}

// Section locates the named collection's section inside the scroll region
func (s *Session) Section(region Region, name string) (Region, error) {
	headers, err := region.el.Elements(s.cfg.Selectors.SectionHeader)
	if err != nil {
		return Region{}, structuralErr("picker section headers", s.cfg.Selectors.SectionHeader)
	}

	for _, header := range headers {
		text, err := header.Text()
		if err != nil {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(text), name) {
			section, err := header.Parent()
			if err != nil {
				return Region{}, structuralErr(fmt.Sprintf("section block for %q", name), s.cfg.Selectors.Section)
			}
			return Region{el: section}, nil
		}
	}

	return Region{}, structuralErr(fmt.Sprintf("collection section %q", name), s.cfg.Selectors.SectionHeader)
}

// Thumbnails returns the currently rendered emoji cells inside the region.
// Unicode sprite images are filtered out, only CDN-hosted guild emojis
// count. A cell without a usable source URL is skipped.
func (s *Session) Thumbnails(region Region) ([]Thumbnail, error) {
	imgs, err := region.el.Elements(s.cfg.Selectors.EmojiImage)
	if err != nil {
		return nil, fmt.Errorf("failed to list emoji thumbnails: %w", err)
	}

	thumbs := make([]Thumbnail, 0, len(imgs))
	for _, img := range imgs {
		src, err := img.Attribute("src")
		if err != nil || src == nil || *src == "" {
			continue
		}
		if !IsCustomEmojiURL(*src) {
			continue
		}

		label := ""
		if alt, err := img.Attribute("alt"); err == nil && alt != nil {
			label = *alt
		}
		if label == "" {
			if aria, err := img.Attribute("aria-label"); err == nil && aria != nil {
				label = *aria
			}
		}

		thumbs = append(thumbs, Thumbnail{URL: *src, Label: label})
	}

	return thumbs, nil
}

// NextSectionVisible reports whether the element following the section is
// another section block, meaning the current collection has been fully
// rendered and scrolling has moved past its end.
func (s *Session) NextSectionVisible(region Region) (bool, error) {
	sibling, err := region.el.Next()
	if err != nil {
		// No rendered sibling yet, the list may still be growing.
		return false, nil
	}
	match, err := sibling.Matches(s.cfg.Selectors.Section)
	if err != nil {
		return false, nil
	}
	return match, nil
}

// ScrollBy scrolls the region vertically by deltaY pixels
func (s *Session) ScrollBy(region Region, deltaY int) error {
	_, err := region.el.Eval(`(dy) => { this.scrollTop = this.scrollTop + dy; }`, deltaY)
	if err != nil {
		return fmt.Errorf("failed to scroll picker: %w", err)
	}
	return nil
}

// Wait blocks for the given settle delay
func (s *Session) Wait(d time.Duration) {
	time.Sleep(d)
}

// timeout returns the page bound to the configured per-operation deadline
func (s *Session) timeout() *rod.Page {
	return s.page.Timeout(s.cfg.Browser.PageLoadTimeout)
}

// loggedIn checks whether the page has reached the authenticated app shell
func (s *Session) loggedIn() bool {
	info, err := s.page.Info()
	if err != nil {
		return false
	}
	return strings.Contains(info.URL, "/channels/")
}

// structuralErr builds the error for an expected UI element that is not
// there. These are fatal for the current collection and never retried.
func structuralErr(what, selector string) error {
	return &errors.Error{
		Type:    errors.ErrorTypeStructure,
		Message: fmt.Sprintf("%s not found (selector %q)", what, selector),
	}
}

// stdinPrompt reads one line from the terminal
func stdinPrompt(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// maskEmail hides most of an address for log output
func maskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 1 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}
