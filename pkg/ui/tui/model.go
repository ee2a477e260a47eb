package tui

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// EmojiState represents the state of an emoji in the pipeline
type EmojiState int

const (
	EmojiActive EmojiState = iota
	EmojiSaved
	EmojiFailed
)

// EmojiItem represents a single emoji moving through the pipeline
type EmojiItem struct {
	Name       string
	Collection string
	Size       int64
	State      EmojiState
	Error      error
}

// CollectionRun tracks one collection's pass through the pipeline
type CollectionRun struct {
	Name      string
	Total     int
	Saved     int
	Failed    int
	StartTime time.Time
	Done      bool
}

// Model represents the TUI model
type Model struct {
	// UI components
	spinner  spinner.Model
	progress progress.Model

	// Extraction state
	current      *CollectionRun
	finished     []*CollectionRun
	currentEmoji string
	recent       []EmojiItem
	maxRecent    int

	// Stats
	totalSaved       int
	totalFailed      int
	totalBytes       int64
	sessionStartTime time.Time

	// UI state
	width          int
	height         int
	showHelp       bool
	isPaused       bool
	logMessages    []LogMessage
	maxLogMessages int

	// Mutex for thread safety
	mu sync.RWMutex
}

// LogMessage represents a log entry
type LogMessage struct {
	Time    time.Time
	Level   string
	Message string
	Color   lipgloss.Color
}

// NewModel creates a new TUI model
func NewModel() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(neonCyan)

	p := progress.New(progress.WithDefaultGradient())
	p.Width = 40

	return Model{
		spinner:          s,
		progress:         p,
		recent:           []EmojiItem{},
		maxRecent:        8,
		sessionStartTime: time.Now(),
		logMessages:      []LogMessage{},
		maxLogMessages:   50,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// StartCollection begins tracking a new collection
func (m *Model) StartCollection(name string, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = &CollectionRun{
		Name:      name,
		Total:     total,
		StartTime: time.Now(),
	}
	m.currentEmoji = ""
}

// StartEmoji marks the emoji currently in the pipeline
func (m *Model) StartEmoji(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.currentEmoji = name
}

// CompleteEmoji records a saved emoji
func (m *Model) CompleteEmoji(name string, size int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalSaved++
	m.totalBytes += size
	if m.current != nil {
		m.current.Saved++
	}
	m.pushRecent(EmojiItem{
		Name:       name,
		Collection: m.collectionName(),
		Size:       size,
		State:      EmojiSaved,
	})
	m.currentEmoji = ""
}

// FailEmoji records a skipped emoji
func (m *Model) FailEmoji(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalFailed++
	if m.current != nil {
		m.current.Failed++
	}
	m.pushRecent(EmojiItem{
		Name:       name,
		Collection: m.collectionName(),
		State:      EmojiFailed,
		Error:      err,
	})
	m.currentEmoji = ""
}

// CompleteCollection closes out the current collection
func (m *Model) CompleteCollection(name string, saved, failed int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		m.current.Saved = saved
		m.current.Failed = failed
		m.current.Done = true
		m.finished = append(m.finished, m.current)
	}
	m.current = nil
	m.currentEmoji = ""
}

// AddLogMessage adds a log message
func (m *Model) AddLogMessage(level, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	color := dimWhite
	switch level {
	case "ERROR":
		color = lipgloss.Color("#FF0000")
	case "WARN":
		color = neonOrange
	case "SUCCESS":
		color = neonGreen
	case "INFO":
		color = neonCyan
	}

	m.logMessages = append(m.logMessages, LogMessage{
		Time:    time.Now(),
		Level:   level,
		Message: message,
		Color:   color,
	})

	// Keep only the last N messages
	if len(m.logMessages) > m.maxLogMessages {
		m.logMessages = m.logMessages[len(m.logMessages)-m.maxLogMessages:]
	}
}

// pushRecent appends to the recent results ring, newest last
func (m *Model) pushRecent(item EmojiItem) {
	m.recent = append(m.recent, item)
	if len(m.recent) > m.maxRecent {
		m.recent = m.recent[len(m.recent)-m.maxRecent:]
	}
}

// collectionName returns the active collection's name, if any
func (m *Model) collectionName() string {
	if m.current == nil {
		return ""
	}
	return m.current.Name
}

// CurrentProgress returns the completed fraction of the active collection
func (m *Model) CurrentProgress() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil || m.current.Total == 0 {
		return 0
	}
	done := m.current.Saved + m.current.Failed
	p := float64(done) / float64(m.current.Total)
	if p > 1.0 {
		p = 1.0
	}
	return p
}

// GetStats returns the session rate in emojis per minute and an ETA for
// the active collection
func (m *Model) GetStats() (rate float64, eta time.Duration) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	processed := m.totalSaved + m.totalFailed
	elapsed := time.Since(m.sessionStartTime)
	if elapsed > 0 && processed > 0 {
		rate = float64(processed) / elapsed.Minutes()
	}

	if m.current != nil && rate > 0 {
		remaining := m.current.Total - m.current.Saved - m.current.Failed
		if remaining > 0 {
			eta = time.Duration(float64(remaining)/rate*60) * time.Second
		}
	}

	return rate, eta
}

// FormatBytes formats bytes to human readable format
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

// FormatRate formats a per-minute processing rate
func FormatRate(perMinute float64) string {
	return fmt.Sprintf("%.1f/min", perMinute)
}
