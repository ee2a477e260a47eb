package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Message types for the TUI

// CollectionStartMsg is sent when a collection enters the pipeline
type CollectionStartMsg struct {
	Name  string
	Total int
}

// EmojiStartMsg is sent when an emoji starts processing
type EmojiStartMsg struct {
	Name string
}

// EmojiCompleteMsg is sent when an emoji has been written to disk
type EmojiCompleteMsg struct {
	Name string
	Size int64
}

// EmojiErrorMsg is sent when an emoji fails and is skipped
type EmojiErrorMsg struct {
	Name  string
	Error error
}

// CollectionCompleteMsg is sent when a collection finishes
type CollectionCompleteMsg struct {
	Name   string
	Saved  int
	Failed int
}

// LogMsg is sent to add a log message
type LogMsg struct {
	Level   string
	Message string
}

// TickMsg is sent periodically to update the UI
type TickMsg time.Time

// Update handles all messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case TickMsg:
		// Regular UI update tick
		return m, tea.Batch(
			tickCmd(),
			m.spinner.Tick,
		)

	case CollectionStartMsg:
		m.StartCollection(msg.Name, msg.Total)
		m.AddLogMessage("INFO", "Processing collection: "+msg.Name)
		return m, nil

	case EmojiStartMsg:
		m.StartEmoji(msg.Name)
		return m, nil

	case EmojiCompleteMsg:
		m.CompleteEmoji(msg.Name, msg.Size)
		return m, nil

	case EmojiErrorMsg:
		m.FailEmoji(msg.Name, msg.Error)
		m.AddLogMessage("ERROR", "Skipped: "+msg.Name+" - "+msg.Error.Error())
		return m, nil

	case CollectionCompleteMsg:
		m.CompleteCollection(msg.Name, msg.Saved, msg.Failed)
		m.AddLogMessage("SUCCESS", "Finished collection: "+msg.Name)
		return m, nil

	case LogMsg:
		m.AddLogMessage(msg.Level, msg.Message)
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		return m, tea.Quit

	case "p", "P":
		m.mu.Lock()
		m.isPaused = !m.isPaused
		paused := m.isPaused
		m.mu.Unlock()
		if paused {
			m.AddLogMessage("WARN", "Extraction paused by user")
		} else {
			m.AddLogMessage("INFO", "Extraction resumed by user")
		}
		return m, nil

	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "ctrl+l":
		// Clear logs
		m.mu.Lock()
		m.logMessages = []LogMessage{}
		m.mu.Unlock()
		return m, nil
	}

	return m, nil
}

// Commands

// tickCmd returns a command that sends a tick message
func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Helper functions for external use

// SendCollectionStart creates a message announcing a new collection
func SendCollectionStart(name string, total int) tea.Msg {
	return CollectionStartMsg{Name: name, Total: total}
}

// SendEmojiStart creates a message for an emoji entering the pipeline
func SendEmojiStart(name string) tea.Msg {
	return EmojiStartMsg{Name: name}
}

// SendEmojiComplete creates a message for a saved emoji
func SendEmojiComplete(name string, size int64) tea.Msg {
	return EmojiCompleteMsg{Name: name, Size: size}
}

// SendEmojiError creates a message for a skipped emoji
func SendEmojiError(name string, err error) tea.Msg {
	return EmojiErrorMsg{Name: name, Error: err}
}

// SendCollectionComplete creates a message closing out a collection
func SendCollectionComplete(name string, saved, failed int) tea.Msg {
	return CollectionCompleteMsg{Name: name, Saved: saved, Failed: failed}
}

// SendLog creates a log message
func SendLog(level, message string) tea.Msg {
	return LogMsg{Level: level, Message: message}
}
