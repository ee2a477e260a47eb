package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TUI represents the terminal user interface
type TUI struct {
	program *tea.Program
	model   *Model
}

// NewTUI creates a new TUI instance
func NewTUI() *TUI {
	model := NewModel()
	program := tea.NewProgram(&model, tea.WithAltScreen())

	return &TUI{
		program: program,
		model:   &model,
	}
}

// Start starts the TUI
func (t *TUI) Start() error {
	go func() {
		// Send initial tick to start the spinner
		time.Sleep(100 * time.Millisecond)
		t.program.Send(TickMsg(time.Now()))
	}()

	_, err := t.program.Run()
	return err
}

// Stop stops the TUI gracefully
func (t *TUI) Stop() {
	t.program.Quit()
}

// Send sends a message to the TUI
func (t *TUI) Send(msg tea.Msg) {
	if t.program != nil {
		t.program.Send(msg)
	}
}

// StartCollection notifies the TUI that a collection entered the pipeline
func (t *TUI) StartCollection(name string, total int) {
	t.Send(SendCollectionStart(name, total))
}

// StartEmoji notifies the TUI that an emoji started processing
func (t *TUI) StartEmoji(name string) {
	t.Send(SendEmojiStart(name))
}

// CompleteEmoji notifies the TUI that an emoji was written to disk
func (t *TUI) CompleteEmoji(name string, size int64) {
	t.Send(SendEmojiComplete(name, size))
}

// FailEmoji notifies the TUI that an emoji failed and was skipped
func (t *TUI) FailEmoji(name string, err error) {
	t.Send(SendEmojiError(name, err))
}

// CompleteCollection notifies the TUI that a collection finished
func (t *TUI) CompleteCollection(name string, saved, failed int) {
	t.Send(SendCollectionComplete(name, saved, failed))
}

// Log sends a log message to the TUI
func (t *TUI) Log(level, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	t.Send(SendLog(level, message))
}

// LogInfo logs an info message
func (t *TUI) LogInfo(format string, args ...interface{}) {
	t.Log("INFO", format, args...)
}

// LogSuccess logs a success message
func (t *TUI) LogSuccess(format string, args ...interface{}) {
	t.Log("SUCCESS", format, args...)
}

// LogWarning logs a warning message
func (t *TUI) LogWarning(format string, args ...interface{}) {
	t.Log("WARN", format, args...)
}

// LogError logs an error message
func (t *TUI) LogError(format string, args ...interface{}) {
	t.Log("ERROR", format, args...)
}

// IsPaused returns whether extraction is paused
func (t *TUI) IsPaused() bool {
	t.model.mu.RLock()
	defer t.model.mu.RUnlock()
	return t.model.isPaused
}
