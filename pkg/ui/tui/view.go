package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// View renders the entire TUI
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	// Build the UI layout
	var sections []string

	// Logo
	sections = append(sections, m.renderLogo())

	// Main content area with two columns
	leftColumn := m.renderLeftColumn()
	rightColumn := m.renderRightColumn()

	mainContent := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftColumn,
		"  ", // spacing
		rightColumn,
	)
	sections = append(sections, mainContent)

	// Help
	if m.showHelp {
		sections = append(sections, m.renderHelp())
	} else {
		sections = append(sections, helpStyle.Render("Press ? for help"))
	}

	// Join all sections vertically
	return baseStyle.Width(m.width).Height(m.height).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
}

// renderLogo renders the cyberpunk logo
func (m *Model) renderLogo() string {
	logo := `
╔════════════════════════════════════════════════════════════════════════════╗
║ ███████╗███╗   ███╗ ██████╗      ██╗██╗     ██████╗ ██████╗  █████╗ ██████╗  ║
║ ██╔════╝████╗ ████║██╔═══██╗     ██║██║    ██╔════╝ ██╔══██╗██╔══██╗██╔══██╗ ║
║ █████╗  ██╔████╔██║██║   ██║     ██║██║    ██║  ███╗██████╔╝███████║██████╔╝ ║
║ ██╔══╝  ██║╚██╔╝██║██║   ██║██   ██║██║    ██║   ██║██╔══██╗██╔══██║██╔══██╗ ║
║ ███████╗██║ ╚═╝ ██║╚██████╔╝╚█████╔╝██║    ╚██████╔╝██║  ██║██║  ██║██████╔╝ ║
║ ╚══════╝╚═╝     ╚═╝ ╚═════╝  ╚════╝ ╚═╝     ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝  ║
║           NETRUNNER EDITION - EMOJI EXTRACTION UTILITY v1.0                  ║
╚════════════════════════════════════════════════════════════════════════════╝`

	return logoStyle.Width(m.width).Render(logo)
}

// renderLeftColumn renders the left side of the UI
func (m *Model) renderLeftColumn() string {
	width := (m.width - 4) / 2

	var sections []string

	// Stats panel
	sections = append(sections, m.renderStatsPanel(width))

	// Current collection panel
	sections = append(sections, m.renderCurrentPanel(width))

	// Recent results panel
	sections = append(sections, m.renderRecentPanel(width))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderRightColumn renders the right side of the UI
func (m *Model) renderRightColumn() string {
	width := (m.width - 4) / 2

	var sections []string

	// Collections panel
	sections = append(sections, m.renderCollectionsPanel(width))

	// Logs panel
	sections = append(sections, m.renderLogsPanel(width))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStatsPanel renders the statistics panel
func (m *Model) renderStatsPanel(width int) string {
	title := titleStyle.Render(" SYSTEM STATS ")

	m.mu.RLock()
	elapsed := time.Since(m.sessionStartTime)
	saved := m.totalSaved
	failed := m.totalFailed
	bytes := m.totalBytes
	paused := m.isPaused
	m.mu.RUnlock()

	rate, eta := m.GetStats()

	stats := []string{
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Session Time:"), statsValueStyle.Render(formatDuration(elapsed))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Emojis Saved:"), statsValueStyle.Render(fmt.Sprintf("%d", saved))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Emojis Skipped:"), statsValueStyle.Render(fmt.Sprintf("%d", failed))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Total Size:"), statsValueStyle.Render(FormatBytes(bytes))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Rate:"), rateStyle.Render(FormatRate(rate))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("ETA:"), statsValueStyle.Render(formatDuration(eta))),
	}

	if paused {
		stats = append(stats, warningStyle.Render("⏸  PAUSED"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, stats...)

	return panelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, content),
	)
}

// renderCurrentPanel renders the collection currently in the pipeline
func (m *Model) renderCurrentPanel(width int) string {
	title := titleStyle.Render(" CURRENT COLLECTION ")

	m.mu.RLock()
	current := m.current
	emoji := m.currentEmoji
	m.mu.RUnlock()

	if current == nil {
		content := lipgloss.NewStyle().Foreground(dimWhite).Render("Waiting for collection...")
		return panelStyle.Width(width).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, content),
		)
	}

	m.progress.Width = width - 8
	bar := m.progress.ViewAs(m.CurrentProgress())

	var lines []string
	lines = append(lines, emojiActiveStyle.Render(current.Name))
	lines = append(lines, fmt.Sprintf("%s %d/%d  %s %d",
		statsLabelStyle.Render("Processed:"),
		current.Saved+current.Failed,
		current.Total,
		errorStyle.Render("✗"),
		current.Failed,
	))
	lines = append(lines, bar)
	if emoji != "" {
		lines = append(lines, fmt.Sprintf("%s %s %s", m.spinner.View(), statsLabelStyle.Render("Now:"), statsValueStyle.Render(emoji)))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)

	return panelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, content),
	)
}

// renderRecentPanel renders the last handful of processed emojis
func (m *Model) renderRecentPanel(width int) string {
	title := titleStyle.Render(" RECENT EMOJIS ")

	m.mu.RLock()
	recent := make([]EmojiItem, len(m.recent))
	copy(recent, m.recent)
	m.mu.RUnlock()

	if len(recent) == 0 {
		content := lipgloss.NewStyle().Foreground(dimWhite).Render("Nothing processed yet")
		return panelStyle.Width(width).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, content),
		)
	}

	var items []string
	// Newest first
	for i := len(recent) - 1; i >= 0; i-- {
		item := recent[i]
		if item.State == EmojiSaved {
			items = append(items, emojiSavedStyle.Render(fmt.Sprintf("✓ %s (%s)", item.Name, FormatBytes(item.Size))))
		} else {
			items = append(items, errorStyle.Render(fmt.Sprintf("✗ %s", item.Name)))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, items...)

	return panelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, content),
	)
}

// renderCollectionsPanel renders finished collections with their counts
func (m *Model) renderCollectionsPanel(width int) string {
	title := titleStyle.Render(" COLLECTIONS ")

	m.mu.RLock()
	finished := make([]*CollectionRun, len(m.finished))
	copy(finished, m.finished)
	m.mu.RUnlock()

	var items []string
	for _, run := range finished {
		line := fmt.Sprintf("✓ %s: %d saved", run.Name, run.Saved)
		if run.Failed > 0 {
			line += fmt.Sprintf(", %d skipped", run.Failed)
		}
		items = append(items, collectionDoneStyle.Render(line))
	}

	if len(items) == 0 {
		items = append(items, lipgloss.NewStyle().Foreground(dimWhite).Render("No collections finished yet"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, items...)

	return panelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, content),
	)
}

// renderLogsPanel renders the logs panel
func (m *Model) renderLogsPanel(width int) string {
	title := titleStyle.Render(" SYSTEM LOGS ")

	m.mu.RLock()
	// Get recent logs
	start := len(m.logMessages) - 10
	if start < 0 {
		start = 0
	}
	logsCopy := make([]LogMessage, len(m.logMessages[start:]))
	copy(logsCopy, m.logMessages[start:])
	m.mu.RUnlock()

	var logs []string
	for _, log := range logsCopy {
		timestamp := logTimestampStyle.Render(log.Time.Format("15:04:05"))
		level := lipgloss.NewStyle().Foreground(log.Color).Bold(true).Render(fmt.Sprintf("[%-7s]", log.Level))
		message := logMessageStyle.Render(log.Message)

		// Truncate message if too long
		maxMsgLen := width - 25
		if maxMsgLen > 3 && len(message) > maxMsgLen {
			message = message[:maxMsgLen-3] + "..."
		}

		logs = append(logs, fmt.Sprintf("%s %s %s", timestamp, level, message))
	}

	content := strings.Join(logs, "\n")
	if content == "" {
		content = lipgloss.NewStyle().Foreground(dimWhite).Render("No logs yet...")
	}

	// Calculate height for logs panel to fill remaining space
	logsHeight := m.height - 35
	if logsHeight < 5 {
		logsHeight = 5
	}

	return panelStyle.Width(width).Height(logsHeight).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, content),
	)
}

// renderHelp renders the help panel
func (m *Model) renderHelp() string {
	help := `
  Navigation:
    q/Q      - Quit the application
    p/P      - Pause/Resume extraction
    ?        - Toggle this help

  Status Indicators:
    ` + successStyle.Render("Green") + `    - Saved/Healthy
    ` + warningStyle.Render("Orange") + `   - Warning/Paused
    ` + errorStyle.Render("Red") + `      - Skipped/Error

  Icons:
    ✓        - Saved emoji
    ✗        - Skipped emoji
    ⏸        - Paused
    █        - Progress indicator
`

	return panelStyle.Width(m.width).Render(help)
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d < 0 {
		return "00:00:00"
	}

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
