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

type clientsModel struct {
	store  *store.Store
	logger *slog.Logger
	width  int
	height int

	snap    store.Snapshot
	visible []store.Client
	byCase  map[string][]store.Case
	cursor  int
	search  searchBox

	form formHost

	// client details
	showDetail bool
	detailID   string
	caseCursor int
}

func newClientsModel(s *store.Store, logger *slog.Logger) clientsModel {
	return clientsModel{
		store:  s,
		logger: logger,
		search: newSearchBox("name or email"),
	}
}

func (m *clientsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *clientsModel) setData(snap store.Snapshot) {
	m.snap = snap
	m.byCase = make(map[string][]store.Case, len(snap.Clients))
	for _, c := range snap.Cases {
		m.byCase[c.ClientID] = append(m.byCase[c.ClientID], c)
	}
	m.applyFilter()
	m.caseCursor = clamp(m.caseCursor, 0, max(0, len(m.byCase[m.detailID])-1))
}

func (m *clientsModel) applyFilter() {
	m.visible = report.FilterClients(m.snap.Clients, m.search.value())
	m.cursor = clamp(m.cursor, 0, max(0, len(m.visible)-1))
}

func (m clientsModel) capturing() bool {
	return m.form.active() || m.search.active
}

func (m clientsModel) selected() (store.Client, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return store.Client{}, false
	}
	return m.visible[m.cursor], true
}

func (m clientsModel) update(msg tea.Msg) (clientsModel, tea.Cmd) {
	if m.form.active() {
		return m, m.form.update(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.showDetail {
		cases := m.byCase[m.detailID]
		switch {
		case key.Matches(keyMsg, keys.Back):
			m.showDetail = false
		case key.Matches(keyMsg, keys.Up):
			m.caseCursor = moveCursor(m.caseCursor, len(cases), true)
		case key.Matches(keyMsg, keys.Down):
			m.caseCursor = moveCursor(m.caseCursor, len(cases), false)
		case key.Matches(keyMsg, keys.Enter):
			if m.caseCursor < len(cases) {
				id := cases[m.caseCursor].ID
				return m, func() tea.Msg { return openCaseMsg{caseID: id} }
			}
		}
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
	case key.Matches(keyMsg, keys.Enter):
		if c, ok := m.selected(); ok {
			m.showDetail = true
			m.detailID = c.ID
			m.caseCursor = 0
		}
	case key.Matches(keyMsg, keys.New):
		return m, m.openForm(nil)
	case key.Matches(keyMsg, keys.Edit):
		if c, ok := m.selected(); ok {
			return m, m.openForm(&c)
		}
	case key.Matches(keyMsg, keys.Delete):
		return m, m.confirmDelete()
	}
	return m, nil
}

type clientValues struct {
	name    string
	email   string
	phone   string
	company string
	address string
}

// openForm creates a client, or edits existing when it is non-nil.
func (m *clientsModel) openForm(existing *store.Client) tea.Cmd {
	v := &clientValues{}
	title := "New Client"
	if existing != nil {
		title = "Edit Client"
		v = &clientValues{
			name:    existing.Name,
			email:   existing.Email,
			phone:   existing.Phone,
			company: deref(existing.Company),
			address: deref(existing.Address),
		}
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Name").
			Value(&v.name).
			Validate(required("name")),
		huh.NewInput().Title("Email").
			Value(&v.email).
			Validate(required("email")),
		huh.NewInput().Title("Phone").
			Value(&v.phone).
			Validate(required("phone")),
		huh.NewInput().Title("Company").Description("Optional").
			Value(&v.company),
		huh.NewText().Title("Address").Description("Optional").
			Value(&v.address),
	))

	s, logger := m.store, m.logger
	return m.form.open(title, form, func() tea.Cmd {
		name := strings.TrimSpace(v.name)
		email := strings.TrimSpace(v.email)
		phone := strings.TrimSpace(v.phone)
		if existing == nil {
			c := s.AddClient(store.ClientInput{
				Name:    name,
				Email:   email,
				Phone:   phone,
				Company: optionalString(v.company),
				Address: optionalString(v.address),
			})
			logger.Info("client added", "id", c.ID)
			return statusCmd("Client " + c.Name + " added")
		}
		if !s.UpdateClient(existing.ID, store.ClientPatch{
			Name:    &name,
			Email:   &email,
			Phone:   &phone,
			Company: optionalString(v.company),
			Address: optionalString(v.address),
		}) {
			return errorCmd("Client %s no longer exists", existing.Name)
		}
		return statusCmd("Client " + name + " updated")
	})
}

func (m *clientsModel) confirmDelete() tea.Cmd {
	c, ok := m.selected()
	if !ok {
		return nil
	}
	question := fmt.Sprintf("Delete client %s?", c.Name)
	if n := len(m.byCase[c.ID]); n > 0 {
		question = fmt.Sprintf("Delete client %s? Their %d case(s) are kept.", c.Name, n)
	}
	confirmed := new(bool)
	s, logger := m.store, m.logger
	return m.form.open("Delete Client", confirmForm(question, confirmed), func() tea.Cmd {
		if !*confirmed {
			return nil
		}
		s.DeleteClient(c.ID)
		logger.Info("client deleted", "id", c.ID)
		return statusCmd("Client " + c.Name + " deleted")
	})
}

func (m clientsModel) view() string {
	w := m.width - 4
	if m.form.active() {
		return m.form.view(w)
	}
	if m.showDetail {
		return m.renderDetail(w)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Clients"), "  ",
		mutedStyle.Render(fmt.Sprintf("%d of %d", len(m.visible), len(m.snap.Clients))),
	)
	rows := []string{header}
	if sv := m.search.view(); sv != "" {
		rows = append(rows, sv)
	}
	rows = append(rows, "", m.renderList(w))
	rows = append(rows, "", mutedStyle.Render("enter: details  n: new  e: edit  d: delete  /: search"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m clientsModel) renderList(w int) string {
	if len(m.visible) == 0 {
		if len(m.snap.Clients) == 0 {
			return mutedStyle.Render("  No clients yet. Press n to add one.")
		}
		return mutedStyle.Render("  No clients match")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-24s %-28s %-16s %-20s %s",
		"Name", "Email", "Phone", "Company", "Cases (active)")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", clamp(w-6, 10, 110))))

	start, end := visibleRange(m.cursor, len(m.visible), m.height-12)
	for i := start; i < end; i++ {
		c := m.visible[i]
		cases := m.byCase[c.ID]
		prefix, render := cursorPrefix(i == m.cursor)
		rows = append(rows, render(fmt.Sprintf("%s%-24s %-28s %-16s %-20s %d (%d)",
			prefix,
			truncate(c.Name, 24),
			truncate(c.Email, 28),
			truncate(c.Phone, 16),
			truncate(deref(c.Company), 20),
			len(cases),
			len(report.ActiveCases(cases)),
		)))
	}
	return strings.Join(rows, "\n")
}

func (m clientsModel) renderDetail(w int) string {
	var client store.Client
	found := false
	for _, c := range m.snap.Clients {
		if c.ID == m.detailID {
			client, found = c, true
			break
		}
	}
	if !found {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			errorStyle.Render("This client no longer exists."),
			mutedStyle.Render("esc: back to clients"),
		))
	}

	cases := m.byCase[client.ID]
	sum := report.SummarizeClient(cases, m.snap.TimeEntries)

	card := func(label, value string) string {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, mutedStyle.Render(label), cardValueStyle.Render(value)))
	}
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Cases", fmt.Sprintf("%d (%d active)", sum.TotalCases, sum.ActiveCases)),
		card("Billable Hours", formatHours(sum.BillableHours)),
		card("Revenue", formatMoney(sum.Revenue)),
	)

	contact := []string{
		mutedStyle.Render("Email    ") + client.Email,
		mutedStyle.Render("Phone    ") + client.Phone,
	}
	if client.Company != nil {
		contact = append(contact, mutedStyle.Render("Company  ")+*client.Company)
	}
	if client.Address != nil {
		contact = append(contact, mutedStyle.Render("Address  ")+*client.Address)
	}
	contact = append(contact, mutedStyle.Render("Since    ")+formatDate(client.CreatedAt))

	list := []string{subtitleStyle.Render("Cases")}
	if len(cases) == 0 {
		list = append(list, mutedStyle.Render("  No cases for this client"))
	}
	for i, c := range cases {
		prefix, render := cursorPrefix(i == m.caseCursor)
		list = append(list, render(fmt.Sprintf("%s%-14s %-36s", prefix, truncate(c.CaseNumber, 14), truncate(c.Title, 36)))+
			" "+caseStatusBadge(c.Status))
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(client.Name),
		cards,
		"",
		strings.Join(contact, "\n"),
		"",
		strings.Join(list, "\n"),
		"",
		mutedStyle.Render("enter: open case  esc: back"),
	))
}
