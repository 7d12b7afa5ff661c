package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/casedesk/internal/store"
)

// Color palette
var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorSecondary = lipgloss.Color("#2EC4B6")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorError     = lipgloss.Color("#E74C3C")
	colorInfo      = lipgloss.Color("#3498DB")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")
)

// Styles
var (
	// Tabs
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	// Panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(1, 2)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(0, 2)

	cardValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorHighlight)

	// Timer
	timerRunningStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorSuccess)

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	// Header/footer
	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	// List items
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	badgeStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

func badge(text string, c lipgloss.Color) string {
	return badgeStyle.Foreground(c).Render("[" + text + "]")
}

func caseStatusBadge(s store.CaseStatus) string {
	switch s {
	case store.CaseOpen:
		return badge(string(s), colorInfo)
	case store.CaseInProgress:
		return badge(string(s), colorWarning)
	case store.CasePending:
		return badge(string(s), colorSecondary)
	}
	return badge(string(s), colorMuted)
}

func casePriorityBadge(p store.CasePriority) string {
	switch p {
	case store.CasePriorityUrgent:
		return badge(string(p), colorError)
	case store.CasePriorityHigh:
		return badge(string(p), colorWarning)
	case store.CasePriorityMedium:
		return badge(string(p), colorInfo)
	}
	return badge(string(p), colorMuted)
}

func entryStatusBadge(s store.EntryStatus) string {
	switch s {
	case store.EntrySubmitted:
		return badge(string(s), colorInfo)
	case store.EntryApproved:
		return badge(string(s), colorSuccess)
	case store.EntryInvoiced:
		return badge(string(s), colorFg)
	}
	return badge(string(s), colorMuted)
}

func taskStatusBadge(s store.TaskStatus) string {
	switch s {
	case store.TaskCompleted:
		return badge(string(s), colorSuccess)
	case store.TaskInProgress:
		return badge(string(s), colorWarning)
	}
	return badge(string(s), colorMuted)
}
