package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/casedesk/internal/report"
	"github.com/sadopc/casedesk/internal/store"
)

type casesModel struct {
	store  *store.Store
	logger *slog.Logger
	width  int
	height int

	snap    store.Snapshot
	lookup  lookup
	visible []store.Case
	cursor  int
	search  searchBox
	status  store.CaseStatus

	form formHost

	showDetail bool
	detail     caseDetailModel
}

func newCasesModel(s *store.Store, logger *slog.Logger, currentUser string) casesModel {
	return casesModel{
		store:  s,
		logger: logger,
		search: newSearchBox("title or case number"),
		detail: newCaseDetailModel(s, logger, currentUser),
	}
}

func (m *casesModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.detail.setSize(w, h)
}

func (m *casesModel) setData(snap store.Snapshot) {
	m.snap = snap
	m.lookup = newLookup(snap)
	m.applyFilter()
	m.detail.setData(snap)
}

func (m *casesModel) applyFilter() {
	m.visible = report.FilterCases(m.snap.Cases, m.search.value(), m.status)
	m.cursor = clamp(m.cursor, 0, max(0, len(m.visible)-1))
}

func (m casesModel) capturing() bool {
	if m.showDetail {
		return m.detail.capturing()
	}
	return m.form.active() || m.search.active
}

func (m casesModel) selected() (store.Case, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return store.Case{}, false
	}
	return m.visible[m.cursor], true
}

// openCase jumps straight to a case's details.
func (m *casesModel) openCase(id string) {
	m.showDetail = true
	m.detail.show(id, m.snap)
}

func (m casesModel) update(msg tea.Msg) (casesModel, tea.Cmd) {
	if m.showDetail {
		if km, ok := msg.(tea.KeyMsg); ok && !m.detail.capturing() && key.Matches(km, keys.Back) {
			m.showDetail = false
			return m, nil
		}
		var cmd tea.Cmd
		m.detail, cmd = m.detail.update(msg)
		return m, cmd
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
		m.cursor = moveCursor(m.cursor, len(m.visible), true)
	case key.Matches(keyMsg, keys.Down):
		m.cursor = moveCursor(m.cursor, len(m.visible), false)
	case key.Matches(keyMsg, keys.Search):
		return m, m.search.focus()
	case key.Matches(keyMsg, keys.Filter):
		m.status = nextStatus(m.status, store.CaseStatuses())
		m.applyFilter()
	case key.Matches(keyMsg, keys.Enter):
		if c, ok := m.selected(); ok {
			m.openCase(c.ID)
		}
	case key.Matches(keyMsg, keys.New):
		return m, m.openNewForm()
	case key.Matches(keyMsg, keys.Edit):
		if c, ok := m.selected(); ok {
			return m, m.openEditForm(c)
		}
	case key.Matches(keyMsg, keys.Delete):
		return m, m.confirmDelete()
	}
	return m, nil
}

type caseValues struct {
	clientID     string
	title        string
	caseNumber   string
	practiceArea string
	description  string
	status       store.CaseStatus
	priority     store.CasePriority
	assigned     []string
	courtDate    string
	estimated    string
}

func (m *casesModel) caseForm(v *caseValues) *huh.Form {
	fields := []huh.Field{
		huh.NewSelect[string]().Title("Client").
			Options(clientOptions(m.snap.Clients)...).
			Value(&v.clientID).
			Validate(requiredChoice("client")),
		huh.NewInput().Title("Title").
			Value(&v.title).
			Validate(required("title")),
		huh.NewInput().Title("Case number").Placeholder("CV-2024-001").
			Value(&v.caseNumber).
			Validate(required("case number")),
		huh.NewInput().Title("Practice area").Placeholder("Corporate Law").
			Value(&v.practiceArea),
	}
	details := []huh.Field{
		huh.NewText().Title("Description").
			Value(&v.description),
		huh.NewSelect[store.CaseStatus]().Title("Status").
			Options(enumOptions(store.CaseStatuses())...).
			Value(&v.status),
		huh.NewSelect[store.CasePriority]().Title("Priority").
			Options(enumOptions(store.CasePriorities())...).
			Value(&v.priority),
	}
	if len(m.snap.TeamMembers) > 0 {
		details = append(details, huh.NewMultiSelect[string]().Title("Assigned to").
			Options(memberOptions(m.snap.TeamMembers)...).
			Value(&v.assigned))
	}
	details = append(details,
		huh.NewInput().Title("Court date").Placeholder(dateLayout).
			Description("Optional").
			Value(&v.courtDate).
			Validate(validOptionalDate),
		huh.NewInput().Title("Estimated value").
			Description("Optional").
			Value(&v.estimated).
			Validate(validOptionalAmount),
	)
	return huh.NewForm(huh.NewGroup(fields...), huh.NewGroup(details...))
}

func (m *casesModel) openNewForm() tea.Cmd {
	if len(m.snap.Clients) == 0 {
		return errorCmd("Add a client before opening a case")
	}
	v := &caseValues{status: store.CaseOpen, priority: store.CasePriorityMedium}
	if c, ok := m.selected(); ok {
		v.clientID = c.ClientID
	}

	s, logger := m.store, m.logger
	return m.form.open("New Case", m.caseForm(v), func() tea.Cmd {
		c := s.AddCase(store.CaseInput{
			ClientID:       v.clientID,
			Title:          strings.TrimSpace(v.title),
			CaseNumber:     strings.TrimSpace(v.caseNumber),
			Status:         v.status,
			Priority:       v.priority,
			PracticeArea:   strings.TrimSpace(v.practiceArea),
			Description:    strings.TrimSpace(v.description),
			AssignedTo:     v.assigned,
			CourtDate:      parseOptionalDate(v.courtDate),
			EstimatedValue: parseOptionalFloat(v.estimated),
		})
		logger.Info("case added", "id", c.ID, "case_number", c.CaseNumber)
		return statusCmd("Case " + c.CaseNumber + " created")
	})
}

func (m *casesModel) openEditForm(c store.Case) tea.Cmd {
	v := &caseValues{
		clientID:     c.ClientID,
		title:        c.Title,
		caseNumber:   c.CaseNumber,
		practiceArea: c.PracticeArea,
		description:  c.Description,
		status:       c.Status,
		priority:     c.Priority,
		assigned:     c.AssignedTo,
		courtDate:    formatDateInput(c.CourtDate),
		estimated:    formatFloatInput(c.EstimatedValue),
	}

	s := m.store
	return m.form.open("Edit Case "+c.CaseNumber, m.caseForm(v), func() tea.Cmd {
		assigned := v.assigned
		if assigned == nil {
			assigned = []string{}
		}
		title := strings.TrimSpace(v.title)
		number := strings.TrimSpace(v.caseNumber)
		area := strings.TrimSpace(v.practiceArea)
		desc := strings.TrimSpace(v.description)
		ok := s.UpdateCase(c.ID, store.CasePatch{
			ClientID:       &v.clientID,
			Title:          &title,
			CaseNumber:     &number,
			Status:         &v.status,
			Priority:       &v.priority,
			PracticeArea:   &area,
			Description:    &desc,
			AssignedTo:     assigned,
			CourtDate:      parseOptionalDate(v.courtDate),
			EstimatedValue: parseOptionalFloat(v.estimated),
		})
		if !ok {
			return errorCmd("Case %s no longer exists", c.CaseNumber)
		}
		return statusCmd("Case " + number + " updated")
	})
}

func (m *casesModel) confirmDelete() tea.Cmd {
	c, ok := m.selected()
	if !ok {
		return nil
	}
	confirmed := new(bool)
	s, logger := m.store, m.logger
	question := fmt.Sprintf("Delete case %s %q? Its entries, tasks and notes are kept.", c.CaseNumber, c.Title)
	return m.form.open("Delete Case", confirmForm(question, confirmed), func() tea.Cmd {
		if !*confirmed {
			return nil
		}
		s.DeleteCase(c.ID)
		logger.Info("case deleted", "id", c.ID)
		return statusCmd("Case " + c.CaseNumber + " deleted")
	})
}

func (m casesModel) view() string {
	if m.showDetail {
		return m.detail.view()
	}
	w := m.width - 4
	if m.form.active() {
		return m.form.view(w)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Cases"), "  ",
		mutedStyle.Render(fmt.Sprintf("%d of %d  status: %s", len(m.visible), len(m.snap.Cases), filterLabel(m.status))),
	)
	rows := []string{header}
	if sv := m.search.view(); sv != "" {
		rows = append(rows, sv)
	}
	rows = append(rows, "", m.renderList(w))
	rows = append(rows, "", mutedStyle.Render("enter: details  n: new  e: edit  d: delete  /: search  f: filter"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m casesModel) renderList(w int) string {
	if len(m.visible) == 0 {
		if len(m.snap.Cases) == 0 {
			return mutedStyle.Render("  No cases yet. Press n to open one.")
		}
		return mutedStyle.Render("  No cases match")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-14s %-32s %-20s %-18s %s",
		"Number", "Title", "Client", "Practice Area", "Status / Priority")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", clamp(w-6, 10, 110))))

	start, end := visibleRange(m.cursor, len(m.visible), m.height-12)
	for i := start; i < end; i++ {
		c := m.visible[i]
		prefix, render := cursorPrefix(i == m.cursor)
		line := fmt.Sprintf("%-14s %-32s %-20s %-18s",
			truncate(c.CaseNumber, 14),
			truncate(c.Title, 32),
			truncate(m.lookup.clientName(c.ClientID), 20),
			truncate(c.PracticeArea, 18),
		)
		rows = append(rows, render(prefix+line)+" "+caseStatusBadge(c.Status)+casePriorityBadge(c.Priority))
	}
	return strings.Join(rows, "\n")
}
