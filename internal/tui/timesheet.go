package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/casedesk/internal/report"
	"github.com/sadopc/casedesk/internal/store"
)

// timesheetModel is the Time tab: every time entry, the running totals and
// the stopwatch.
type timesheetModel struct {
	store  *store.Store
	logger *slog.Logger
	width  int
	height int

	all     []store.TimeEntry
	cases   []store.Case
	members []store.TeamMember
	lookup  lookup

	entries []store.TimeEntry
	totals  report.EntryTotals
	cursor  int
	search  searchBox
	status  store.EntryStatus

	form  formHost
	timer timerModel
}

func newTimesheetModel(s *store.Store, logger *slog.Logger, now func() time.Time) timesheetModel {
	return timesheetModel{
		store:  s,
		logger: logger,
		search: newSearchBox("case or description"),
		timer:  newTimerModel(now),
	}
}

func (m *timesheetModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *timesheetModel) setData(snap store.Snapshot) {
	m.all = snap.TimeEntries
	m.cases = snap.Cases
	m.members = snap.TeamMembers
	m.lookup = newLookup(snap)
	m.applyFilter()
}

func (m *timesheetModel) applyFilter() {
	m.entries = report.FilterEntries(m.all, m.cases, m.search.value(), m.status)
	m.totals = report.Totals(m.entries)
	m.cursor = clamp(m.cursor, 0, max(0, len(m.entries)-1))
}

// capturing reports whether the view wants every key, global ones included.
func (m timesheetModel) capturing() bool {
	return m.form.active() || m.search.active
}

func (m timesheetModel) selected() (store.TimeEntry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return store.TimeEntry{}, false
	}
	return m.entries[m.cursor], true
}

func (m timesheetModel) update(msg tea.Msg) (timesheetModel, tea.Cmd) {
	if msg, ok := msg.(startTimerMsg); ok {
		return m, m.startTimer(msg)
	}

	if m.form.active() {
		return m, m.form.update(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.search.active {
		cmd := m.search.update(keyMsg)
		m.applyFilter()
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, keys.Up):
		m.cursor = moveCursor(m.cursor, len(m.entries), true)
	case key.Matches(keyMsg, keys.Down):
		m.cursor = moveCursor(m.cursor, len(m.entries), false)
	case key.Matches(keyMsg, keys.Search):
		return m, m.search.focus()
	case key.Matches(keyMsg, keys.Filter):
		m.status = nextStatus(m.status, store.EntryStatuses())
		m.applyFilter()
	case key.Matches(keyMsg, keys.New):
		return m, m.openEntryForm()
	case key.Matches(keyMsg, keys.Advance):
		return m, m.advance()
	case key.Matches(keyMsg, keys.Delete):
		return m, m.confirmDelete()
	case key.Matches(keyMsg, keys.Start):
		return m, m.openStartForm()
	case key.Matches(keyMsg, keys.Stop):
		return m, m.stopTimer()
	case key.Matches(keyMsg, keys.Pause):
		if !m.timer.running() {
			return m, statusCmd("No timer running")
		}
		m.timer.toggle()
		if m.timer.paused() {
			return m, statusCmd("Timer paused")
		}
		return m, statusCmd("Timer resumed")
	}
	return m, nil
}

type entryValues struct {
	caseID      string
	memberID    string
	description string
	hours       string
	date        string
	billable    bool
	rate        string
	status      store.EntryStatus
}

func (m *timesheetModel) openEntryForm() tea.Cmd {
	if len(m.cases) == 0 {
		return errorCmd("Add a case before logging time")
	}
	if len(m.members) == 0 {
		return errorCmd("No team members to log time for")
	}

	v := &entryValues{
		date:     m.timer.now().Format(dateLayout),
		billable: true,
		status:   store.EntryDraft,
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Case").
				Options(caseOptions(m.cases)...).
				Value(&v.caseID).
				Validate(requiredChoice("case")),
			huh.NewSelect[string]().Title("Team member").
				Options(memberOptions(m.members)...).
				Value(&v.memberID).
				Validate(requiredChoice("team member")),
			huh.NewInput().Title("Description").
				Value(&v.description).
				Validate(required("description")),
		),
		huh.NewGroup(
			huh.NewInput().Title("Hours").Placeholder("1.5").
				Value(&v.hours).
				Validate(validHours),
			huh.NewInput().Title("Date").Placeholder(dateLayout).
				Value(&v.date).
				Validate(validDate),
			huh.NewConfirm().Title("Billable?").Value(&v.billable),
			huh.NewInput().Title("Hourly rate").
				Description("Leave empty to use the member's rate").
				Value(&v.rate).
				Validate(validOptionalAmount),
			huh.NewSelect[store.EntryStatus]().Title("Status").
				Options(enumOptions(store.EntryStatuses())...).
				Value(&v.status),
		),
	)

	s, l, logger := m.store, m.lookup, m.logger
	return m.form.open("New Time Entry", form, func() tea.Cmd {
		rate := parseOptionalFloat(v.rate)
		if rate == nil {
			if mem, ok := l.members[v.memberID]; ok {
				rate = mem.HourlyRate
			}
		}
		e := s.AddTimeEntry(store.TimeEntryInput{
			CaseID:      v.caseID,
			UserID:      v.memberID,
			Description: strings.TrimSpace(v.description),
			Hours:       parseFloat(v.hours),
			Date:        parseDate(v.date),
			Billable:    v.billable,
			HourlyRate:  rate,
			Status:      v.status,
		})
		logger.Info("time entry added", "id", e.ID, "case_id", e.CaseID, "hours", e.Hours)
		return statusCmd(fmt.Sprintf("Logged %s on %s", formatHours(e.Hours), l.caseTitle(e.CaseID)))
	})
}

func (m *timesheetModel) advance() tea.Cmd {
	e, ok := m.selected()
	if !ok {
		return nil
	}
	next := e.Status.Next()
	if next == e.Status {
		return statusCmd("Entry is already invoiced")
	}
	m.store.UpdateTimeEntry(e.ID, store.TimeEntryPatch{Status: &next})
	return statusCmd("Entry marked " + string(next))
}

func (m *timesheetModel) confirmDelete() tea.Cmd {
	e, ok := m.selected()
	if !ok {
		return nil
	}
	confirmed := new(bool)
	question := fmt.Sprintf("Delete %s on %s?", formatHours(e.Hours), m.lookup.caseTitle(e.CaseID))
	s := m.store
	return m.form.open("Delete Time Entry", confirmForm(question, confirmed), func() tea.Cmd {
		if !*confirmed {
			return nil
		}
		s.DeleteTimeEntry(e.ID)
		return statusCmd("Time entry deleted")
	})
}

func (m *timesheetModel) openStartForm() tea.Cmd {
	if m.timer.running() {
		return errorCmd("Timer already running on %s", m.timer.caseTitle)
	}
	if len(m.cases) == 0 {
		return errorCmd("Add a case before starting the timer")
	}
	if len(m.members) == 0 {
		return errorCmd("No team members to time")
	}

	v := &startTimerMsg{}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Case").
				Options(caseOptions(m.cases)...).
				Value(&v.caseID).
				Validate(requiredChoice("case")),
			huh.NewSelect[string]().Title("Team member").
				Options(memberOptions(m.members)...).
				Value(&v.memberID).
				Validate(requiredChoice("team member")),
			huh.NewInput().Title("Working on").
				Value(&v.description).
				Validate(required("description")),
		),
	)
	return m.form.open("Start Timer", form, func() tea.Cmd {
		msg := *v
		return func() tea.Msg { return msg }
	})
}

func (m *timesheetModel) startTimer(msg startTimerMsg) tea.Cmd {
	if m.timer.running() {
		return errorCmd("Timer already running on %s", m.timer.caseTitle)
	}
	title := m.lookup.caseTitle(msg.caseID)
	m.timer.start(msg.caseID, title, msg.memberID, strings.TrimSpace(msg.description))
	m.logger.Info("timer started", "case_id", msg.caseID, "member_id", msg.memberID)
	return statusCmd("Timer started on " + title)
}

// stopTimer books the measured time as a draft billable entry.
func (m *timesheetModel) stopTimer() tea.Cmd {
	started := m.timer.startTime
	elapsed, ok := m.timer.stop()
	if !ok {
		return statusCmd("No timer running")
	}

	var rate *float64
	if mem, ok := m.lookup.members[m.timer.memberID]; ok {
		rate = mem.HourlyRate
	}
	hours := billedHours(elapsed)
	e := m.store.AddTimeEntry(store.TimeEntryInput{
		CaseID:      m.timer.caseID,
		UserID:      m.timer.memberID,
		Description: m.timer.description,
		Hours:       hours,
		Date:        time.Date(started.Year(), started.Month(), started.Day(), 0, 0, 0, 0, time.Local),
		Billable:    true,
		HourlyRate:  rate,
		Status:      store.EntryDraft,
	})
	m.logger.Info("timer stopped", "id", e.ID, "case_id", e.CaseID, "elapsed", elapsed, "hours", hours)
	return statusCmd(fmt.Sprintf("Logged %s on %s", formatHours(hours), m.timer.caseTitle))
}

// timerIndicator is the footer badge shown on every tab while timing.
func (m timesheetModel) timerIndicator() string {
	if !m.timer.running() {
		return ""
	}
	label := formatDuration(m.timer.currentElapsed()) + " " + truncate(m.timer.caseTitle, 24)
	if m.timer.paused() {
		return warningStyle.Render("⏸ " + label)
	}
	return timerRunningStyle.Render("● " + label)
}

func (m timesheetModel) view() string {
	w := m.width - 4
	if m.form.active() {
		return m.form.view(w)
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			mutedStyle.Render("Total Hours"),
			cardValueStyle.Render(formatHours(m.totals.Hours)))),
		cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			mutedStyle.Render("Billable Hours"),
			cardValueStyle.Render(fmt.Sprintf("%s (%.0f%%)", formatHours(m.totals.BillableHours), m.totals.BillableShare())))),
		cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			mutedStyle.Render("Revenue"),
			cardValueStyle.Render(formatMoney(m.totals.Revenue)))),
	)

	var timerLine string
	if m.timer.running() {
		timerLine = m.timer.view()
	} else {
		timerLine = mutedStyle.Render("Timer idle · s to start")
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Time Entries"), "  ",
		mutedStyle.Render("status: "+filterLabel(m.status)),
	)

	rows := []string{header, timerLine}
	if sv := m.search.view(); sv != "" {
		rows = append(rows, sv)
	}
	rows = append(rows, "", m.renderList(w))
	rows = append(rows, "", mutedStyle.Render("n: new  a: advance  d: delete  s/x: start/stop  p: pause  /: search  f: filter"))

	return lipgloss.JoinVertical(lipgloss.Left, cards, panelStyle.Width(w).Render(strings.Join(rows, "\n")))
}

func (m timesheetModel) renderList(w int) string {
	if len(m.entries) == 0 {
		return mutedStyle.Render("  No time entries match")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %-24s %-16s %-20s %6s %10s  %s",
		"Date", "Case", "Member", "Description", "Hours", "Amount", "Status")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", clamp(w-6, 10, 110))))

	start, end := visibleRange(m.cursor, len(m.entries), m.height-18)
	for i := start; i < end; i++ {
		e := m.entries[i]
		prefix, render := cursorPrefix(i == m.cursor)
		billable := " "
		if e.Billable {
			billable = "$"
		}
		line := fmt.Sprintf("%-12s %-24s %-16s %-20s %6.1f %10s %s",
			e.Date.Format("2006-01-02"),
			truncate(m.lookup.caseTitle(e.CaseID), 24),
			truncate(m.lookup.memberName(e.UserID), 16),
			truncate(e.Description, 20),
			e.Hours,
			formatMoney(report.Amount(e)),
			billable,
		)
		rows = append(rows, render(prefix+line)+" "+entryStatusBadge(e.Status))
	}
	return strings.Join(rows, "\n")
}
