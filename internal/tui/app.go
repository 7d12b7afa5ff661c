package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/casedesk/internal/config"
	"github.com/sadopc/casedesk/internal/export"
	"github.com/sadopc/casedesk/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	cfg    config.Config
	logger *slog.Logger
	feed   *changeFeed
	now    func() time.Time

	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	dashboard dashboardModel
	cases     casesModel
	clients   clientsModel
	timesheet timesheetModel
	calendar  calendarModel
	reports   reportsModel

	help        help.Model
	status      string
	statusError bool
}

// NewApp builds the UI over s. Call Close once the program has exited.
func NewApp(s *store.Store, cfg config.Config, logger *slog.Logger) App {
	return newApp(s, cfg, logger, time.Now)
}

func newApp(s *store.Store, cfg config.Config, logger *slog.Logger, now func() time.Time) App {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("component", "tui")

	h := help.New()
	h.ShowAll = false

	dashboard := newDashboardModel(cfg.UI.RecentCases, cfg.UI.UpcomingCourtDates)
	dashboard.now = now

	return App{
		store:      s,
		cfg:        cfg,
		logger:     logger,
		feed:       newChangeFeed(s),
		now:        now,
		activeView: viewDashboard,
		dashboard:  dashboard,
		cases:      newCasesModel(s, logger, cfg.UI.CurrentUser),
		clients:    newClientsModel(s, logger),
		timesheet:  newTimesheetModel(s, logger, now),
		calendar:   newCalendarModel(s, logger, now),
		reports:    newReportsModel(),
		help:       h,
	}
}

// Close stops listening to the store.
func (a App) Close() {
	a.feed.close()
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		loadCmd(a.store),
		a.feed.wait(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.cases.setSize(a.width, contentHeight)
		a.clients.setSize(a.width, contentHeight)
		a.timesheet.setSize(a.width, contentHeight)
		a.calendar.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		return a, nil

	case storeChangedMsg:
		a.setData(msg.change.State)
		var cmds []tea.Cmd
		if msg.fromFeed {
			cmds = append(cmds, a.feed.wait())
		}
		if !msg.change.Applied {
			a.logger.Warn("change not applied", "kind", msg.change.Kind, "op", msg.change.Op, "id", msg.change.ID)
			cmds = append(cmds, errorCmd("That %s no longer exists", kindLabel(msg.change.Kind)))
		}
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.capturing() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewCases
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewClients
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewTime
			return a, nil
		case key.Matches(msg, keys.Tab5):
			a.activeView = viewCalendar
			return a, nil
		case key.Matches(msg, keys.Tab6):
			a.activeView = viewReports
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, nil
		}

	case tickMsg:
		a.dashboard.tick()
		var cmd tea.Cmd
		a.calendar, cmd = a.calendar.update(msg)
		return a, tea.Batch(tickCmd(), cmd)

	case statusMsg:
		a.status = msg.text
		a.statusError = msg.isError
		return a, nil

	case openCaseMsg:
		a.activeView = viewCases
		a.cases.openCase(msg.caseID)
		return a, nil

	case startTimerMsg:
		var cmd tea.Cmd
		a.timesheet, cmd = a.timesheet.update(msg)
		return a, cmd

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusError = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a *App) setData(snap store.Snapshot) {
	a.dashboard.setData(snap)
	a.cases.setData(snap)
	a.clients.setData(snap)
	a.timesheet.setData(snap)
	a.calendar.setData(snap)
	a.reports.setData(snap)
}

func kindLabel(k store.Kind) string {
	switch k {
	case store.KindTimeEntry:
		return "time entry"
	case store.KindCourtDate:
		return "court date"
	case "":
		return "record"
	}
	return string(k)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewCases:
		a.cases, cmd = a.cases.update(msg)
	case viewClients:
		a.clients, cmd = a.clients.update(msg)
	case viewTime:
		a.timesheet, cmd = a.timesheet.update(msg)
	case viewCalendar:
		a.calendar, cmd = a.calendar.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	}
	return a, cmd
}

func (a App) capturing() bool {
	switch a.activeView {
	case viewCases:
		return a.cases.capturing()
	case viewClients:
		return a.clients.capturing()
	case viewTime:
		return a.timesheet.capturing()
	case viewCalendar:
		return a.calendar.capturing()
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewCases:
		content = a.cases.view()
	case viewClients:
		content = a.clients.view()
	case viewTime:
		content = a.timesheet.view()
	case viewCalendar:
		content = a.calendar.view()
	case viewReports:
		content = a.reports.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render(a.cfg.UI.Title)
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		if a.statusError {
			status = errorStyle.Render(" " + a.status)
		} else {
			status = mutedStyle.Render(" " + a.status)
		}
	}

	timerInfo := ""
	if ind := a.timesheet.timerIndicator(); ind != "" {
		timerInfo = " " + ind
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, mutedStyle.Render("  to "+a.cfg.Export.Dir))
	rows = append(rows, "")
	for i, f := range export.Formats() {
		prefix, render := cursorPrefix(i == a.exportCursor)
		rows = append(rows, render(prefix+f.String()))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	formats := export.Formats()
	switch {
	case key.Matches(msg, keys.Up):
		a.exportCursor = moveCursor(a.exportCursor, len(formats), true)
	case key.Matches(msg, keys.Down):
		a.exportCursor = moveCursor(a.exportCursor, len(formats), false)
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(formats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(f export.Format) tea.Cmd {
	s, dir, logger, now := a.store, a.cfg.Export.Dir, a.logger, a.now
	return func() tea.Msg {
		path := export.Path(dir, f, now())
		if err := export.Write(context.Background(), f, s.Snapshot(), path); err != nil {
			logger.Error("export failed", "format", f.String(), "path", path, "error", err)
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		logger.Info("exported", "format", f.String(), "path", path)
		return exportDoneMsg{path: path}
	}
}
