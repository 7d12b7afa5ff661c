package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/casedesk/internal/report"
	"github.com/sadopc/casedesk/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewCases
	viewClients
	viewTime
	viewCalendar
	viewReports
)

var viewNames = []string{"Dashboard", "Cases", "Clients", "Time", "Calendar", "Reports"}

// --- Messages ---

// storeChangedMsg carries the working set after a mutation (or on startup).
// fromFeed marks messages produced by changeFeed.wait, which must be
// re-armed once handled.
type storeChangedMsg struct {
	change   store.Change
	fromFeed bool
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// openCaseMsg asks the root model to show a case's details.
type openCaseMsg struct {
	caseID string
}

// startTimerMsg is sent by the start-timer form once it is submitted.
type startTimerMsg struct {
	caseID      string
	memberID    string
	description string
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errorCmd(format string, args ...any) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: fmt.Sprintf(format, args...), isError: true} }
}

// --- Lookups ---

// lookup indexes a snapshot for rendering joins. Missing references render
// as report.Unknown.
type lookup struct {
	clients map[string]store.Client
	cases   map[string]store.Case
	members map[string]store.TeamMember
}

func newLookup(snap store.Snapshot) lookup {
	l := lookup{
		clients: make(map[string]store.Client, len(snap.Clients)),
		cases:   make(map[string]store.Case, len(snap.Cases)),
		members: make(map[string]store.TeamMember, len(snap.TeamMembers)),
	}
	for _, c := range snap.Clients {
		l.clients[c.ID] = c
	}
	for _, c := range snap.Cases {
		l.cases[c.ID] = c
	}
	for _, m := range snap.TeamMembers {
		l.members[m.ID] = m
	}
	return l
}

func (l lookup) clientName(id string) string {
	if c, ok := l.clients[id]; ok {
		return c.Name
	}
	return report.Unknown
}

func (l lookup) caseTitle(id string) string {
	if c, ok := l.cases[id]; ok {
		return c.Title
	}
	return report.Unknown
}

func (l lookup) memberName(id string) string {
	if m, ok := l.members[id]; ok {
		return m.Name
	}
	return report.Unknown
}

func (l lookup) memberNames(ids []string) string {
	if len(ids) == 0 {
		return "Unassigned"
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = l.memberName(id)
	}
	return strings.Join(names, ", ")
}

// --- Helpers ---

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatHours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

func formatMoney(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func formatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

func formatDate(t time.Time) string {
	return t.Format("Jan 02, 2006")
}

func formatDateTime(t time.Time) string {
	return t.Format("Jan 02, 2006 15:04")
}

// formatRelative renders a time as "in 3 days" or "2 weeks ago".
func formatRelative(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
