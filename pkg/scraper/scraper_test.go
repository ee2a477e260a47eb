package scraper

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"emojigrab/internal/pipeline"
	"emojigrab/pkg/config"
	"emojigrab/pkg/discord"
	"emojigrab/pkg/errors"
	"emojigrab/pkg/logger"
	"emojigrab/pkg/ui"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	ui.SetQuietMode(true)
	os.Exit(m.Run())
}

// fakePickerSession scripts the picker DOM round by round. Regions are
// opaque to callers, so the fake keys everything off its own scan counter.
type fakePickerSession struct {
	rounds     [][]discord.Thumbnail // per-scan batches, the last one repeats
	boundaryAt int                   // scan count at which the next section shows, 0 = never

	scrollRegionErr error
	sectionErrs     map[string]error
	thumbnailsErr   error

	scans   int
	scrolls []int
	waits   []time.Duration
}

func (f *fakePickerSession) ScrollRegion() (discord.Region, error) {
	if f.scrollRegionErr != nil {
		return discord.Region{}, f.scrollRegionErr
	}
	return discord.Region{}, nil
}

func (f *fakePickerSession) Section(region discord.Region, name string) (discord.Region, error) {
	if err := f.sectionErrs[name]; err != nil {
		return discord.Region{}, err
	}
	return discord.Region{}, nil
}

func (f *fakePickerSession) Thumbnails(region discord.Region) ([]discord.Thumbnail, error) {
	if f.thumbnailsErr != nil {
		return nil, f.thumbnailsErr
	}
	f.scans++
	if len(f.rounds) == 0 {
		return nil, nil
	}
	idx := f.scans - 1
	if idx >= len(f.rounds) {
		idx = len(f.rounds) - 1
	}
	return f.rounds[idx], nil
}

func (f *fakePickerSession) NextSectionVisible(region discord.Region) (bool, error) {
	return f.boundaryAt > 0 && f.scans >= f.boundaryAt, nil
}

func (f *fakePickerSession) ScrollBy(region discord.Region, deltaY int) error {
	f.scrolls = append(f.scrolls, deltaY)
	return nil
}

func (f *fakePickerSession) Wait(d time.Duration) {
	f.waits = append(f.waits, d)
}

func thumb(id, label string) discord.Thumbnail {
	return discord.Thumbnail{
		URL:   fmt.Sprintf("https://cdn.discordapp.com/emojis/%s.png?size=64", id),
		Label: label,
	}
}

func collectorConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Collector.MaxScrollRounds = 50
	cfg.Collector.StagnantRounds = 3
	return cfg
}

func TestCollectorDedupsAcrossRounds(t *testing.T) {
	session := &fakePickerSession{
		rounds: [][]discord.Thumbnail{
			{thumb("100", ":alpha:"), thumb("200", ":beta:")},
			{thumb("200", ":beta:"), thumb("300", ":gamma:")},
		},
		boundaryAt: 2,
	}

	collector := NewCollector(collectorConfig(), logger.NewNopLogger())
	emojis, partial, err := collector.Collect(session, "My Server")

	require.NoError(t, err)
	assert.False(t, partial)
	require.Len(t, emojis, 3)

	// First-seen order survives the overlap between rounds
	assert.Equal(t, "alpha", emojis[0].Name)
	assert.Equal(t, "beta", emojis[1].Name)
	assert.Equal(t, "gamma", emojis[2].Name)
	for _, e := range emojis {
		assert.Equal(t, "My Server", e.Collection)
	}
}

func TestCollectorDedupsDifferentRenderSizes(t *testing.T) {
	// The same emoji rendered with different picker size params must
	// normalize to one download URL and count once.
	small := thumb("100", ":alpha:")
	large := discord.Thumbnail{
		URL:   "https://cdn.discordapp.com/emojis/100.png?size=48",
		Label: ":alpha:",
	}

	session := &fakePickerSession{
		rounds:     [][]discord.Thumbnail{{small}, {large}},
		boundaryAt: 2,
	}

	collector := NewCollector(collectorConfig(), logger.NewNopLogger())
	emojis, _, err := collector.Collect(session, "Server")

	require.NoError(t, err)
	require.Len(t, emojis, 1)
	assert.Contains(t, emojis[0].SourceURL, "size=512")
}

func TestCollectorBoundaryStopsScan(t *testing.T) {
	session := &fakePickerSession{
		rounds:     [][]discord.Thumbnail{{thumb("100", ":alpha:")}},
		boundaryAt: 1,
	}

	collector := NewCollector(collectorConfig(), logger.NewNopLogger())
	emojis, partial, err := collector.Collect(session, "Server")

	require.NoError(t, err)
	assert.False(t, partial)
	assert.Len(t, emojis, 1)
	assert.Equal(t, 1, session.scans)
	assert.Empty(t, session.scrolls, "boundary must stop before the next scroll")
}

func TestCollectorStagnationStopsScan(t *testing.T) {
	// The same single emoji stays rendered forever; after three rounds
	// with nothing new the scan ends cleanly.
	session := &fakePickerSession{
		rounds: [][]discord.Thumbnail{{thumb("100", ":alpha:")}},
	}

	collector := NewCollector(collectorConfig(), logger.NewNopLogger())
	emojis, partial, err := collector.Collect(session, "Server")

	require.NoError(t, err)
	assert.False(t, partial)
	assert.Len(t, emojis, 1)
	assert.Equal(t, 4, session.scans, "one productive round plus three stagnant ones")
}

func TestCollectorEmptyCollection(t *testing.T) {
	session := &fakePickerSession{}

	collector := NewCollector(collectorConfig(), logger.NewNopLogger())
	emojis, partial, err := collector.Collect(session, "Empty Server")

	require.NoError(t, err)
	assert.False(t, partial)
	assert.Empty(t, emojis)
	assert.Equal(t, 3, session.scans)
}

func TestCollectorRoundCapFlagsPartial(t *testing.T) {
	// Every round surfaces a fresh emoji, so neither boundary nor
	// stagnation ever fires.
	var rounds [][]discord.Thumbnail
	for i := 0; i < 10; i++ {
		rounds = append(rounds, []discord.Thumbnail{
			thumb(fmt.Sprintf("%d", 1000+i), fmt.Sprintf(":emoji%d:", i)),
		})
	}

	session := &fakePickerSession{rounds: rounds}
	cfg := collectorConfig()
	cfg.Collector.MaxScrollRounds = 5

	collector := NewCollector(cfg, logger.NewNopLogger())
	emojis, partial, err := collector.Collect(session, "Big Server")

	require.NoError(t, err)
	assert.True(t, partial)
	assert.Len(t, emojis, 5)
	assert.Equal(t, 5, session.scans)
}

func TestCollectorScrollParameters(t *testing.T) {
	session := &fakePickerSession{
		rounds: [][]discord.Thumbnail{{thumb("100", ":alpha:")}},
	}
	cfg := collectorConfig()
	cfg.Collector.ScrollIncrement = 250
	cfg.Collector.SettleDelay = 42 * time.Millisecond

	collector := NewCollector(cfg, logger.NewNopLogger())
	_, _, err := collector.Collect(session, "Server")
	require.NoError(t, err)

	require.NotEmpty(t, session.scrolls)
	for _, delta := range session.scrolls {
		assert.Equal(t, 250, delta)
	}
	for _, wait := range session.waits {
		assert.Equal(t, 42*time.Millisecond, wait)
	}
	assert.Len(t, session.waits, len(session.scrolls))
}

func TestCollectorSkipsUnusableURLs(t *testing.T) {
	session := &fakePickerSession{
		rounds: [][]discord.Thumbnail{
			{
				{URL: "/emojis/relative.png", Label: ":broken:"},
				thumb("100", ":alpha:"),
			},
		},
		boundaryAt: 1,
	}

	collector := NewCollector(collectorConfig(), logger.NewNopLogger())
	emojis, _, err := collector.Collect(session, "Server")

	require.NoError(t, err)
	require.Len(t, emojis, 1)
	assert.Equal(t, "alpha", emojis[0].Name)
}

func TestCollectorNormalizesDescriptors(t *testing.T) {
	session := &fakePickerSession{
		rounds: [][]discord.Thumbnail{
			{
				{URL: "https://cdn.discordapp.com/emojis/100.png?size=64", Label: ":blob wave:"},
				{URL: "https://cdn.discordapp.com/emojis/200.gif?size=64&animated=true", Label: ":party_parrot:"},
			},
		},
		boundaryAt: 1,
	}

	collector := NewCollector(collectorConfig(), logger.NewNopLogger())
	emojis, _, err := collector.Collect(session, "Server")

	require.NoError(t, err)
	require.Len(t, emojis, 2)

	assert.Equal(t, "blob_wave", emojis[0].Name)
	assert.False(t, emojis[0].Animated)
	assert.Contains(t, emojis[0].SourceURL, "size=512")

	assert.Equal(t, "party_parrot", emojis[1].Name)
	assert.True(t, emojis[1].Animated)
	assert.Contains(t, emojis[1].SourceURL, ".gif")
	assert.Contains(t, emojis[1].SourceURL, "size=512")
}

func TestCollectorStructuralFailures(t *testing.T) {
	structural := &errors.Error{
		Type:    errors.ErrorTypeStructure,
		Message: "emoji picker scroll region not found",
	}

	tests := []struct {
		name    string
		session *fakePickerSession
	}{
		{
			name:    "missing scroll region",
			session: &fakePickerSession{scrollRegionErr: structural},
		},
		{
			name: "missing section",
			session: &fakePickerSession{
				sectionErrs: map[string]error{"Server": structural},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector := NewCollector(collectorConfig(), logger.NewNopLogger())
			_, _, err := collector.Collect(tt.session, "Server")

			require.Error(t, err)
			assert.Equal(t, errors.ErrorTypeStructure, errors.TypeOf(err))
		})
	}
}

// fakeEmojiSession extends the picker fake with the navigation surface the
// orchestrator drives.
type fakeEmojiSession struct {
	fakePickerSession

	openErr        error
	loginErr       error
	collectionErrs map[string]error

	opened            bool
	closed            bool
	logins            []string
	openedCollections []string
}

func (f *fakeEmojiSession) Open(ctx context.Context) error {
	if f.openErr != nil {
		return f.openErr
	}
	f.opened = true
	return nil
}

func (f *fakeEmojiSession) Login(ctx context.Context, email, password string) error {
	f.logins = append(f.logins, email)
	return f.loginErr
}

func (f *fakeEmojiSession) OpenCollection(ctx context.Context, name string) error {
	if err := f.collectionErrs[name]; err != nil {
		return err
	}
	f.openedCollections = append(f.openedCollections, name)
	// Opening a collection re-renders the picker from the top.
	f.scans = 0
	return nil
}

func (f *fakeEmojiSession) Close() {
	f.closed = true
}

// fakePipeline records batches instead of downloading them
type fakePipeline struct {
	batches [][]discord.Emoji
	targets []config.Collection
}

func (f *fakePipeline) Run(items []discord.Emoji, target config.Collection) pipeline.Summary {
	f.batches = append(f.batches, items)
	f.targets = append(f.targets, target)
	return pipeline.Summary{Total: len(items), Saved: len(items)}
}

func newTestScraper(cfg *config.Config, session EmojiSession) (*Scraper, *fakePipeline) {
	pipe := &fakePipeline{}
	return &Scraper{
		session:   session,
		collector: NewCollector(cfg, logger.NewNopLogger()),
		pipeline:  pipe,
		notifier:  ui.NewNotifier(),
		config:    cfg,
		logger:    logger.NewNopLogger(),
	}, pipe
}

func TestNew(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Discord.UserAgent = "test_agent"

	s, err := New(cfg)
	require.NoError(t, err)
	assert.NotNil(t, s)
	assert.NotNil(t, s.session)
	assert.NotNil(t, s.collector)
	assert.NotNil(t, s.pipeline)
	assert.NotNil(t, s.notifier)
	assert.Equal(t, cfg, s.config)
}

func TestRunProcessesAllCollections(t *testing.T) {
	cfg := collectorConfig()
	cfg.Discord.Email = "user@example.com"
	cfg.Discord.Password = "secret"
	cfg.Collections = []config.Collection{
		{Name: "First Server"},
		{Name: "Second Server"},
	}

	session := &fakeEmojiSession{
		fakePickerSession: fakePickerSession{
			rounds:     [][]discord.Thumbnail{{thumb("100", ":alpha:"), thumb("200", ":beta:")}},
			boundaryAt: 1,
		},
	}

	s, pipe := newTestScraper(cfg, session)
	err := s.Run(context.Background())

	require.NoError(t, err)
	assert.True(t, session.opened)
	assert.True(t, session.closed)
	assert.Equal(t, []string{"user@example.com"}, session.logins)
	assert.Equal(t, []string{"First Server", "Second Server"}, session.openedCollections)

	require.Len(t, pipe.batches, 2)
	assert.Len(t, pipe.batches[0], 2)
	assert.Len(t, pipe.batches[1], 2)
	assert.Equal(t, "First Server", pipe.targets[0].Name)
	assert.Equal(t, "Second Server", pipe.targets[1].Name)
}

func TestRunSkipsUnopenableCollection(t *testing.T) {
	cfg := collectorConfig()
	cfg.Collections = []config.Collection{
		{Name: "Gone Server"},
		{Name: "Live Server"},
	}

	session := &fakeEmojiSession{
		fakePickerSession: fakePickerSession{
			rounds:     [][]discord.Thumbnail{{thumb("100", ":alpha:")}},
			boundaryAt: 1,
		},
		collectionErrs: map[string]error{
			"Gone Server": fmt.Errorf("server not in sidebar"),
		},
	}

	s, pipe := newTestScraper(cfg, session)
	err := s.Run(context.Background())

	// One broken collection never fails the run
	require.NoError(t, err)
	require.Len(t, pipe.batches, 1)
	assert.Equal(t, "Live Server", pipe.targets[0].Name)
}

func TestRunSkipsStructurallyBrokenCollection(t *testing.T) {
	cfg := collectorConfig()
	cfg.Collections = []config.Collection{
		{Name: "Broken Server"},
		{Name: "Live Server"},
	}

	session := &fakeEmojiSession{
		fakePickerSession: fakePickerSession{
			rounds:     [][]discord.Thumbnail{{thumb("100", ":alpha:")}},
			boundaryAt: 1,
			sectionErrs: map[string]error{
				"Broken Server": &errors.Error{
					Type:    errors.ErrorTypeStructure,
					Message: "collection section not found",
				},
			},
		},
	}

	s, pipe := newTestScraper(cfg, session)
	err := s.Run(context.Background())

	require.NoError(t, err)
	require.Len(t, pipe.batches, 1)
	assert.Equal(t, "Live Server", pipe.targets[0].Name)
}

func TestRunLoginFailureAborts(t *testing.T) {
	cfg := collectorConfig()
	cfg.Collections = []config.Collection{{Name: "Server"}}

	session := &fakeEmojiSession{
		loginErr: fmt.Errorf("captcha required"),
	}

	s, pipe := newTestScraper(cfg, session)
	err := s.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to log in")
	assert.Empty(t, pipe.batches)
	assert.True(t, session.closed, "session must be torn down on abort")
}

func TestRunNoCollectionsConfigured(t *testing.T) {
	cfg := collectorConfig()
	cfg.Collections = nil

	session := &fakeEmojiSession{}
	s, _ := newTestScraper(cfg, session)
	err := s.Run(context.Background())

	require.Error(t, err)
	assert.False(t, session.opened, "browser must not launch without work")
}

func TestRunHonorsCancellation(t *testing.T) {
	cfg := collectorConfig()
	cfg.Collections = []config.Collection{{Name: "Server"}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session := &fakeEmojiSession{}
	s, pipe := newTestScraper(cfg, session)
	err := s.Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, pipe.batches)
	assert.True(t, session.closed)
}

func TestSetTUI(t *testing.T) {
	cfg := collectorConfig()
	s, _ := newTestScraper(cfg, &fakeEmojiSession{})

	stub := &stubTUI{}
	s.SetTUI(stub)
	assert.Equal(t, ui.TUI(stub), s.tui)
}

// stubTUI satisfies ui.TUI with no-ops
type stubTUI struct{}

func (s *stubTUI) StartCollection(name string, total int)            {}
func (s *stubTUI) StartEmoji(name string)                            {}
func (s *stubTUI) CompleteEmoji(name string, size int64)             {}
func (s *stubTUI) FailEmoji(name string, err error)                  {}
func (s *stubTUI) CompleteCollection(name string, saved, failed int) {}
func (s *stubTUI) LogInfo(format string, args ...interface{})        {}
func (s *stubTUI) LogSuccess(format string, args ...interface{})     {}
func (s *stubTUI) LogWarning(format string, args ...interface{})     {}
func (s *stubTUI) LogError(format string, args ...interface{})       {}
func (s *stubTUI) IsPaused() bool                                    { return false }
