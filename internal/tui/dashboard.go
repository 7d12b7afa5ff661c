package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/casedesk/internal/report"
	"github.com/sadopc/casedesk/internal/store"
)

type dashboardModel struct {
	width  int
	height int
	now    func() time.Time

	recentLimit   int
	upcomingLimit int

	stats      report.DashboardStats
	courtDates []store.CourtDate
	upcoming   []store.CourtDate
	recent   []store.Case
	lookup   lookup
}

func newDashboardModel(recentLimit, upcomingLimit int) dashboardModel {
	return dashboardModel{
		now:           time.Now,
		recentLimit:   recentLimit,
		upcomingLimit: upcomingLimit,
	}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d *dashboardModel) setData(snap store.Snapshot) {
	d.stats = report.Dashboard(snap)
	d.courtDates = snap.CourtDates
	d.tick()
	d.recent = report.RecentCases(snap.Cases, d.recentLimit)
	d.lookup = newLookup(snap)
}

// tick drops hearings whose time has come from the upcoming panel.
func (d *dashboardModel) tick() {
	d.upcoming = report.UpcomingCourtDates(d.courtDates, d.now(), d.upcomingLimit)
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	return lipgloss.JoinVertical(lipgloss.Left,
		d.renderCards(),
		d.renderUpcomingPanel(contentWidth),
		d.renderRecentPanel(contentWidth),
	)
}

func (d dashboardModel) renderCards() string {
	card := func(label, value string) string {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			mutedStyle.Render(label),
			cardValueStyle.Render(value),
		))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Active Cases", fmt.Sprintf("%d of %d", d.stats.ActiveCases, d.stats.TotalCases)),
		card("Clients", fmt.Sprintf("%d", d.stats.TotalClients)),
		card("Billable Hours", formatHours(d.stats.BillableHours)),
		card("Revenue", formatMoney(d.stats.Revenue)),
	)
}

func (d dashboardModel) renderUpcomingPanel(w int) string {
	title := titleStyle.Render("Upcoming Court Dates")
	if len(d.upcoming) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No upcoming court dates"),
		)
		return panelStyle.Width(w).Render(content)
	}

	now := d.now()
	var rows []string
	rows = append(rows, title)
	for _, cd := range d.upcoming {
		row := fmt.Sprintf("  %s  %-28s %s",
			highlightStyle.Render(formatDateTime(cd.Date)),
			truncate(cd.Title, 28),
			mutedStyle.Render(d.lookup.caseTitle(cd.CaseID)+" · "+formatRelative(cd.Date, now)),
		)
		rows = append(rows, row)
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderRecentPanel(w int) string {
	title := titleStyle.Render("Recent Cases")
	if len(d.recent) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No cases yet. Press 2 to open Cases."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for _, c := range d.recent {
		row := fmt.Sprintf("  %-32s %-20s %s %s",
			truncate(c.Title, 32),
			truncate(d.lookup.clientName(c.ClientID), 20),
			caseStatusBadge(c.Status),
			casePriorityBadge(c.Priority),
		)
		rows = append(rows, row)
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
