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

// calendarModel lists hearings around the current moment and counts down to
// the next one.
type calendarModel struct {
	store  *store.Store
	logger *slog.Logger
	width  int
	height int
	now    func() time.Time

	clock    time.Time
	all      []store.CourtDate
	cases    []store.Case
	lookup   lookup
	upcoming []store.CourtDate
	past     []store.CourtDate
	cursor   int

	form formHost
}

func newCalendarModel(s *store.Store, logger *slog.Logger, now func() time.Time) calendarModel {
	if now == nil {
		now = time.Now
	}
	return calendarModel{store: s, logger: logger, now: now, clock: now()}
}

func (m *calendarModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *calendarModel) setData(snap store.Snapshot) {
	m.all = snap.CourtDates
	m.cases = snap.Cases
	m.lookup = newLookup(snap)
	m.partition()
}

// partition re-reads the clock, so a hearing moves to the past list once
// its time has come.
func (m *calendarModel) partition() {
	m.clock = m.now()
	m.upcoming, m.past = report.PartitionCourtDates(m.all, m.clock)
	m.cursor = clamp(m.cursor, 0, max(0, m.rows()-1))
}

func (m calendarModel) rows() int { return len(m.upcoming) + len(m.past) }

// at maps the cursor onto the upcoming list followed by the past list.
func (m calendarModel) at(i int) (store.CourtDate, bool) {
	switch {
	case i < 0:
		return store.CourtDate{}, false
	case i < len(m.upcoming):
		return m.upcoming[i], true
	case i < m.rows():
		return m.past[i-len(m.upcoming)], true
	}
	return store.CourtDate{}, false
}

func (m calendarModel) capturing() bool { return m.form.active() }

func (m calendarModel) update(msg tea.Msg) (calendarModel, tea.Cmd) {
	if _, ok := msg.(tickMsg); ok {
		m.partition()
		return m, nil
	}

	if m.form.active() {
		return m, m.form.update(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Up):
		m.cursor = moveCursor(m.cursor, m.rows(), true)
	case key.Matches(keyMsg, keys.Down):
		m.cursor = moveCursor(m.cursor, m.rows(), false)
	case key.Matches(keyMsg, keys.New):
		return m, scheduleCourtDate(&m.form, m.store, m.logger, m.cases, "")
	case key.Matches(keyMsg, keys.Reminder):
		return m, m.toggleReminder()
	case key.Matches(keyMsg, keys.Delete):
		if cd, ok := m.at(m.cursor); ok {
			return m, deleteCourtDate(&m.form, m.store, cd)
		}
	}
	return m, nil
}

func (m *calendarModel) toggleReminder() tea.Cmd {
	cd, ok := m.at(m.cursor)
	if !ok {
		return nil
	}
	sent := !cd.ReminderSent
	m.store.UpdateCourtDate(cd.ID, store.CourtDatePatch{ReminderSent: &sent})
	if sent {
		return statusCmd("Reminder marked sent for " + cd.Title)
	}
	return statusCmd("Reminder cleared for " + cd.Title)
}

type courtDateValues struct {
	caseID   string
	title    string
	date     string
	clock    string
	location string
	judge    string
	notes    string
}

// scheduleCourtDate opens the court date form on host. A non-empty caseID
// fixes the case and hides the picker.
func scheduleCourtDate(host *formHost, s *store.Store, logger *slog.Logger, cases []store.Case, caseID string) tea.Cmd {
	if caseID == "" && len(cases) == 0 {
		return errorCmd("Add a case before scheduling a court date")
	}

	v := &courtDateValues{caseID: caseID, clock: "09:00"}
	var fields []huh.Field
	if caseID == "" {
		fields = append(fields, huh.NewSelect[string]().Title("Case").
			Options(caseOptions(cases)...).
			Value(&v.caseID).
			Validate(requiredChoice("case")))
	}
	fields = append(fields,
		huh.NewInput().Title("Title").Placeholder("Preliminary Hearing").
			Value(&v.title).
			Validate(required("title")),
		huh.NewInput().Title("Date").Placeholder(dateLayout).
			Value(&v.date).
			Validate(validDate),
		huh.NewInput().Title("Time").Placeholder(clockLayout).
			Value(&v.clock).
			Validate(validClock),
		huh.NewInput().Title("Location").
			Value(&v.location).
			Validate(required("location")),
		huh.NewInput().Title("Judge").Description("Optional").
			Value(&v.judge),
		huh.NewText().Title("Notes").Description("Optional").
			Value(&v.notes),
	)

	return host.open("Schedule Court Date", huh.NewForm(huh.NewGroup(fields...)), func() tea.Cmd {
		cd := s.AddCourtDate(store.CourtDateInput{
			CaseID:   v.caseID,
			Title:    strings.TrimSpace(v.title),
			Date:     parseDateClock(v.date, v.clock),
			Location: strings.TrimSpace(v.location),
			Judge:    optionalString(v.judge),
			Notes:    optionalString(v.notes),
		})
		logger.Info("court date scheduled", "id", cd.ID, "case_id", cd.CaseID, "date", cd.Date)
		return statusCmd(fmt.Sprintf("%s scheduled for %s", cd.Title, formatDateTime(cd.Date)))
	})
}

func deleteCourtDate(host *formHost, s *store.Store, cd store.CourtDate) tea.Cmd {
	confirmed := new(bool)
	question := fmt.Sprintf("Delete %s on %s?", cd.Title, formatDateTime(cd.Date))
	return host.open("Delete Court Date", confirmForm(question, confirmed), func() tea.Cmd {
		if !*confirmed {
			return nil
		}
		s.DeleteCourtDate(cd.ID)
		return statusCmd("Court date deleted")
	})
}

func (m calendarModel) view() string {
	w := m.width - 4
	if m.form.active() {
		return m.form.view(w)
	}

	rows := []string{titleStyle.Render("Court Calendar"), m.renderCountdown(), ""}

	rows = append(rows, subtitleStyle.Render(fmt.Sprintf("Upcoming (%d)", len(m.upcoming))))
	if len(m.upcoming) == 0 {
		rows = append(rows, mutedStyle.Render("  Nothing scheduled"))
	}
	for i, cd := range m.upcoming {
		rows = append(rows, m.renderRow(cd, i == m.cursor)...)
	}

	rows = append(rows, "", subtitleStyle.Render(fmt.Sprintf("Past (%d)", len(m.past))))
	if len(m.past) == 0 {
		rows = append(rows, mutedStyle.Render("  No past court dates"))
	}
	for i, cd := range m.past {
		rows = append(rows, m.renderRow(cd, len(m.upcoming)+i == m.cursor)...)
	}

	rows = append(rows, "", mutedStyle.Render("n: schedule  r: reminder sent  d: delete"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m calendarModel) renderCountdown() string {
	if len(m.upcoming) == 0 {
		return mutedStyle.Render("No upcoming hearings")
	}
	next := m.upcoming[0]
	left := next.Date.Sub(m.clock)
	var countdown string
	if left < 24*time.Hour {
		countdown = formatDuration(left)
	} else {
		countdown = formatRelative(next.Date, m.clock)
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom,
		mutedStyle.Render("Next: "),
		highlightStyle.Render(next.Title),
		mutedStyle.Render(" · "+m.lookup.caseTitle(next.CaseID)+" · "),
		timerRunningStyle.Render(countdown),
	)
}

func (m calendarModel) renderRow(cd store.CourtDate, selected bool) []string {
	prefix, render := cursorPrefix(selected)
	reminder := mutedStyle.Render("reminder pending")
	if cd.ReminderSent {
		reminder = successStyle.Render("reminder sent")
	}
	line := fmt.Sprintf("%-20s %-28s %-28s",
		formatDateTime(cd.Date),
		truncate(cd.Title, 28),
		truncate(m.lookup.caseTitle(cd.CaseID), 28),
	)
	out := []string{render(prefix+line) + " " + reminder}

	details := []string{cd.Location}
	if cd.Judge != nil {
		details = append(details, *cd.Judge)
	}
	if cd.Notes != nil {
		details = append(details, *cd.Notes)
	}
	out = append(out, mutedStyle.Render("    "+truncate(strings.Join(details, " · "), max(10, m.width-12))))
	return out
}
