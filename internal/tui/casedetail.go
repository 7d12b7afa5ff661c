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

type detailTab int

const (
	detailOverview detailTab = iota
	detailTime
	detailTasks
	detailCourt
	detailNotes
)

var detailTabNames = []string{"Overview", "Time", "Tasks", "Court", "Notes"}

// caseDetailModel shows one case and everything recorded against it.
type caseDetailModel struct {
	store       *store.Store
	logger      *slog.Logger
	currentUser string
	width       int
	height      int

	caseID  string
	found   bool
	c       store.Case
	lookup  lookup
	cases   []store.Case
	members []store.TeamMember

	documents  []store.Document
	entries    []store.TimeEntry
	tasks      []store.Task
	courtDates []store.CourtDate
	notes      []store.Note
	summary    report.CaseSummary

	tab    detailTab
	cursor int
	form   formHost
}

func newCaseDetailModel(s *store.Store, logger *slog.Logger, currentUser string) caseDetailModel {
	return caseDetailModel{store: s, logger: logger, currentUser: currentUser}
}

func (m *caseDetailModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *caseDetailModel) show(caseID string, snap store.Snapshot) {
	if m.caseID != caseID {
		m.tab = detailOverview
		m.cursor = 0
	}
	m.caseID = caseID
	m.setData(snap)
}

func (m *caseDetailModel) setData(snap store.Snapshot) {
	m.lookup = newLookup(snap)
	m.cases = snap.Cases
	m.members = snap.TeamMembers
	m.documents = ofCase(snap.Documents, m.caseID, func(d store.Document) string { return d.CaseID })
	m.entries = ofCase(snap.TimeEntries, m.caseID, func(e store.TimeEntry) string { return e.CaseID })
	m.tasks = ofCase(snap.Tasks, m.caseID, func(t store.Task) string { return t.CaseID })
	m.courtDates = ofCase(snap.CourtDates, m.caseID, func(cd store.CourtDate) string { return cd.CaseID })
	m.notes = ofCase(snap.Notes, m.caseID, func(n store.Note) string { return n.CaseID })
	m.refresh()
}

func (m *caseDetailModel) refresh() {
	m.c, m.found = m.lookup.cases[m.caseID]
	m.summary = report.SummarizeCase(m.entries, m.tasks)
	m.cursor = clamp(m.cursor, 0, max(0, m.rows()-1))
}

func ofCase[T any](items []T, caseID string, key func(T) string) []T {
	var out []T
	for _, v := range items {
		if key(v) == caseID {
			out = append(out, v)
		}
	}
	return out
}

func (m caseDetailModel) rows() int {
	switch m.tab {
	case detailOverview:
		return len(m.documents)
	case detailTime:
		return len(m.entries)
	case detailTasks:
		return len(m.tasks)
	case detailCourt:
		return len(m.courtDates)
	case detailNotes:
		return len(m.notes)
	}
	return 0
}

func (m caseDetailModel) capturing() bool { return m.form.active() }

func (m caseDetailModel) update(msg tea.Msg) (caseDetailModel, tea.Cmd) {
	if m.form.active() {
		return m, m.form.update(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.found {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Left):
		m.tab = (m.tab + detailTab(len(detailTabNames)) - 1) % detailTab(len(detailTabNames))
		m.cursor = 0
	case key.Matches(keyMsg, keys.Right):
		m.tab = (m.tab + 1) % detailTab(len(detailTabNames))
		m.cursor = 0
	case key.Matches(keyMsg, keys.Up):
		m.cursor = moveCursor(m.cursor, m.rows(), true)
	case key.Matches(keyMsg, keys.Down):
		m.cursor = moveCursor(m.cursor, m.rows(), false)
	case key.Matches(keyMsg, keys.Toggle):
		if m.tab == detailTasks {
			return m, m.toggleTask()
		}
	case key.Matches(keyMsg, keys.New):
		return m, m.openNewForm()
	case key.Matches(keyMsg, keys.Delete):
		return m, m.confirmDelete()
	}
	return m, nil
}

func (m *caseDetailModel) toggleTask() tea.Cmd {
	if m.cursor >= len(m.tasks) {
		return nil
	}
	t := m.tasks[m.cursor]
	next := store.TaskCompleted
	if t.Status == store.TaskCompleted {
		next = store.TaskInProgress
	}
	m.store.UpdateTask(t.ID, store.TaskPatch{Status: &next})
	return statusCmd(t.Title + " → " + string(next))
}

func (m *caseDetailModel) openNewForm() tea.Cmd {
	switch m.tab {
	case detailOverview:
		return m.openDocumentForm()
	case detailTasks:
		return m.openTaskForm()
	case detailCourt:
		return scheduleCourtDate(&m.form, m.store, m.logger, m.cases, m.caseID)
	case detailNotes:
		return m.openNoteForm()
	}
	return statusCmd("Log time for this case from the Time tab")
}

type documentValues struct {
	name       string
	fileType   string
	size       string
	url        string
	uploadedBy string
	category   store.DocumentCategory
}

func (m *caseDetailModel) openDocumentForm() tea.Cmd {
	v := &documentValues{size: "0", uploadedBy: m.currentUser, category: store.DocOther}
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Name").Placeholder("Complaint.pdf").
			Value(&v.name).
			Validate(required("name")),
		huh.NewInput().Title("Type").Placeholder("application/pdf").
			Value(&v.fileType).
			Validate(required("type")),
		huh.NewInput().Title("Size (bytes)").
			Value(&v.size).
			Validate(validSize),
		huh.NewSelect[store.DocumentCategory]().Title("Category").
			Options(enumOptions(store.DocumentCategories())...).
			Value(&v.category),
		huh.NewInput().Title("Location").Description("Optional URL or path").
			Value(&v.url),
		huh.NewInput().Title("Uploaded by").
			Value(&v.uploadedBy).
			Validate(required("uploader")),
	))

	s, caseID := m.store, m.caseID
	return m.form.open("Add Document", form, func() tea.Cmd {
		d := s.AddDocument(store.DocumentInput{
			CaseID:     caseID,
			Name:       strings.TrimSpace(v.name),
			Type:       strings.TrimSpace(v.fileType),
			Size:       parseInt(v.size),
			UploadedBy: strings.TrimSpace(v.uploadedBy),
			URL:        strings.TrimSpace(v.url),
			Category:   v.category,
		})
		return statusCmd("Document " + d.Name + " added")
	})
}

type taskValues struct {
	title       string
	description string
	assignedTo  string
	status      store.TaskStatus
	priority    store.TaskPriority
	dueDate     string
}

func (m *caseDetailModel) openTaskForm() tea.Cmd {
	v := &taskValues{status: store.TaskTodo, priority: store.TaskPriorityMedium}
	if len(m.c.AssignedTo) > 0 {
		v.assignedTo = m.c.AssignedTo[0]
	}
	members := m.members
	fields := []huh.Field{
		huh.NewInput().Title("Title").
			Value(&v.title).
			Validate(required("title")),
		huh.NewText().Title("Description").
			Value(&v.description),
	}
	if len(members) > 0 {
		fields = append(fields, huh.NewSelect[string]().Title("Assigned to").
			Options(memberOptions(members)...).
			Value(&v.assignedTo))
	}
	fields = append(fields,
		huh.NewSelect[store.TaskPriority]().Title("Priority").
			Options(enumOptions(store.TaskPriorities())...).
			Value(&v.priority),
		huh.NewSelect[store.TaskStatus]().Title("Status").
			Options(enumOptions(store.TaskStatuses())...).
			Value(&v.status),
		huh.NewInput().Title("Due date").Placeholder(dateLayout).
			Description("Optional").
			Value(&v.dueDate).
			Validate(validOptionalDate),
	)

	s, caseID := m.store, m.caseID
	return m.form.open("Add Task", huh.NewForm(huh.NewGroup(fields...)), func() tea.Cmd {
		t := s.AddTask(store.TaskInput{
			CaseID:      caseID,
			Title:       strings.TrimSpace(v.title),
			Description: strings.TrimSpace(v.description),
			AssignedTo:  v.assignedTo,
			Status:      v.status,
			Priority:    v.priority,
			DueDate:     parseOptionalDate(v.dueDate),
		})
		return statusCmd("Task " + t.Title + " added")
	})
}

func (m *caseDetailModel) openNoteForm() tea.Cmd {
	content := new(string)
	form := huh.NewForm(huh.NewGroup(
		huh.NewText().Title("Note").
			Value(content).
			Validate(required("note")),
	))

	s, caseID, author := m.store, m.caseID, m.currentUser
	return m.form.open("Add Note", form, func() tea.Cmd {
		s.AddNote(store.NoteInput{
			CaseID:    caseID,
			Content:   strings.TrimSpace(*content),
			CreatedBy: author,
		})
		return statusCmd("Note added")
	})
}

func (m *caseDetailModel) confirmDelete() tea.Cmd {
	if m.cursor >= m.rows() {
		return nil
	}
	s := m.store
	confirmed := new(bool)

	var question string
	var del func()
	switch m.tab {
	case detailOverview:
		d := m.documents[m.cursor]
		question, del = "Delete document "+d.Name+"?", func() { s.DeleteDocument(d.ID) }
	case detailTime:
		e := m.entries[m.cursor]
		question = fmt.Sprintf("Delete %s by %s?", formatHours(e.Hours), m.lookup.memberName(e.UserID))
		del = func() { s.DeleteTimeEntry(e.ID) }
	case detailTasks:
		t := m.tasks[m.cursor]
		question, del = "Delete task "+t.Title+"?", func() { s.DeleteTask(t.ID) }
	case detailCourt:
		return deleteCourtDate(&m.form, s, m.courtDates[m.cursor])
	case detailNotes:
		n := m.notes[m.cursor]
		question, del = "Delete note by "+n.CreatedBy+"?", func() { s.DeleteNote(n.ID) }
	}

	return m.form.open("Delete", confirmForm(question, confirmed), func() tea.Cmd {
		if !*confirmed {
			return nil
		}
		del()
		return statusCmd("Deleted")
	})
}

func (m caseDetailModel) view() string {
	w := m.width - 4
	if !m.found {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			errorStyle.Render("This case no longer exists."),
			mutedStyle.Render("esc: back to cases"),
		))
	}
	if m.form.active() {
		return m.form.view(w)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render(m.c.Title), "  ",
		mutedStyle.Render(m.c.CaseNumber), " ",
		caseStatusBadge(m.c.Status), casePriorityBadge(m.c.Priority),
	)

	var tabs []string
	for i, name := range detailTabNames {
		if detailTab(i) == m.tab {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	var body string
	switch m.tab {
	case detailOverview:
		body = m.renderOverview()
	case detailTime:
		body = m.renderEntries()
	case detailTasks:
		body = m.renderTasks()
	case detailCourt:
		body = m.renderCourt()
	case detailNotes:
		body = m.renderNotes()
	}

	help := mutedStyle.Render("←/→: section  n: add  d: delete  space: toggle task  esc: back")
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...),
		"",
		body,
		"",
		help,
	))
}

func (m caseDetailModel) renderOverview() string {
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			mutedStyle.Render("Billable Hours"),
			cardValueStyle.Render(formatHours(m.summary.BillableHours)))),
		cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			mutedStyle.Render("Revenue"),
			cardValueStyle.Render(formatMoney(m.summary.Revenue)))),
		cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			mutedStyle.Render("Tasks"),
			cardValueStyle.Render(fmt.Sprintf("%d/%d (%.0f%%)", m.summary.TasksDone, m.summary.TasksTotal, m.summary.Completion*100)))),
	)

	field := func(label, value string) string {
		return mutedStyle.Render(fmt.Sprintf("%-16s", label)) + value
	}
	courtDate := "Not set"
	if m.c.CourtDate != nil {
		courtDate = formatDate(*m.c.CourtDate)
	}
	estimate := "Not set"
	if m.c.EstimatedValue != nil {
		estimate = formatMoney(*m.c.EstimatedValue)
	}
	details := []string{
		field("Client", m.lookup.clientName(m.c.ClientID)),
		field("Practice area", m.c.PracticeArea),
		field("Assigned", m.lookup.memberNames(m.c.AssignedTo)),
		field("Court date", courtDate),
		field("Est. value", estimate),
		field("Opened", formatDate(m.c.CreatedAt)),
		field("Updated", formatDateTime(m.c.UpdatedAt)),
	}
	if m.c.Description != "" {
		details = append(details, "", m.c.Description)
	}

	docs := []string{subtitleStyle.Render(fmt.Sprintf("Documents (%d)", len(m.documents)))}
	if len(m.documents) == 0 {
		docs = append(docs, mutedStyle.Render("  No documents"))
	}
	for i, d := range m.documents {
		prefix, render := cursorPrefix(i == m.cursor)
		docs = append(docs, render(fmt.Sprintf("%s%-32s %-14s %10s  %s  %s",
			prefix,
			truncate(d.Name, 32),
			string(d.Category),
			formatSize(d.Size),
			truncate(d.UploadedBy, 18),
			formatDate(d.UploadedAt),
		)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, cards, "", strings.Join(details, "\n"), "", strings.Join(docs, "\n"))
}

func (m caseDetailModel) renderEntries() string {
	if len(m.entries) == 0 {
		return mutedStyle.Render("  No time logged on this case")
	}
	var rows []string
	for i, e := range m.entries {
		prefix, render := cursorPrefix(i == m.cursor)
		line := fmt.Sprintf("%s%-12s %-18s %-32s %6.1f %10s",
			prefix,
			e.Date.Format("2006-01-02"),
			truncate(m.lookup.memberName(e.UserID), 18),
			truncate(e.Description, 32),
			e.Hours,
			formatMoney(report.Amount(e)),
		)
		rows = append(rows, render(line)+" "+entryStatusBadge(e.Status))
	}
	return strings.Join(rows, "\n")
}

func (m caseDetailModel) renderTasks() string {
	if len(m.tasks) == 0 {
		return mutedStyle.Render("  No tasks. Press n to add one.")
	}
	var rows []string
	for i, t := range m.tasks {
		prefix, render := cursorPrefix(i == m.cursor)
		check := "[ ]"
		if t.Status == store.TaskCompleted {
			check = "[x]"
		}
		due := ""
		if t.DueDate != nil {
			due = "due " + formatDate(*t.DueDate)
		}
		line := fmt.Sprintf("%s%s %-36s %-18s %-8s %s",
			prefix, check,
			truncate(t.Title, 36),
			truncate(m.lookup.memberName(t.AssignedTo), 18),
			string(t.Priority),
			due,
		)
		rows = append(rows, render(line)+" "+taskStatusBadge(t.Status))
	}
	return strings.Join(rows, "\n")
}

func (m caseDetailModel) renderCourt() string {
	if len(m.courtDates) == 0 {
		return mutedStyle.Render("  No court dates. Press n to schedule one.")
	}
	var rows []string
	for i, cd := range m.courtDates {
		prefix, render := cursorPrefix(i == m.cursor)
		rows = append(rows, render(fmt.Sprintf("%s%-20s %-30s %s",
			prefix,
			formatDateTime(cd.Date),
			truncate(cd.Title, 30),
			truncate(cd.Location, 40),
		)))
		if cd.Judge != nil {
			rows = append(rows, mutedStyle.Render("    "+*cd.Judge))
		}
	}
	return strings.Join(rows, "\n")
}

func (m caseDetailModel) renderNotes() string {
	if len(m.notes) == 0 {
		return mutedStyle.Render("  No notes. Press n to add one.")
	}
	var rows []string
	for i, n := range m.notes {
		prefix, render := cursorPrefix(i == m.cursor)
		rows = append(rows,
			render(prefix+n.CreatedBy+" · "+n.CreatedAt.Format(time.DateTime)),
			"    "+truncate(n.Content, max(10, m.width-12)),
		)
	}
	return strings.Join(rows, "\n")
}
