package tui

import (
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/casedesk/internal/config"
	"github.com/sadopc/casedesk/internal/export"
	"github.com/sadopc/casedesk/internal/store"
)

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

type testClock struct{ t time.Time }

func newTestClock() *testClock {
	return &testClock{t: time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) now() time.Time          { return c.t }
func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func discardLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func seededStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(nil)
	store.Seed(s)
	return s
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Export: config.ExportConfig{Dir: t.TempDir()},
		UI: config.UIConfig{
			Title:              "casedesk",
			CurrentUser:        "Tester",
			RecentCases:        5,
			UpcomingCourtDates: 3,
		},
	}
}

func newTestApp(t *testing.T, s *store.Store, clk *testClock) App {
	t.Helper()
	app := newApp(s, testConfig(t), nil, clk.now)
	t.Cleanup(app.Close)
	app, _ = step(app, tea.WindowSizeMsg{Width: 120, Height: 40})
	app, _ = step(app, loadCmd(s)())
	return app
}

func step(a App, msg tea.Msg) (App, tea.Cmd) {
	m, cmd := a.Update(msg)
	return m.(App), cmd
}

func findCase(t *testing.T, snap store.Snapshot, number string) store.Case {
	t.Helper()
	for _, c := range snap.Cases {
		if c.CaseNumber == number {
			return c
		}
	}
	t.Fatalf("case %s not found", number)
	return store.Case{}
}

func findMember(t *testing.T, snap store.Snapshot, name string) store.TeamMember {
	t.Helper()
	for _, m := range snap.TeamMembers {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("member %s not found", name)
	return store.TeamMember{}
}

// ============================================================
// Timer model
// ============================================================

func TestTimerStartStop(t *testing.T) {
	clk := newTestClock()
	tm := newTimerModel(clk.now)
	if tm.running() {
		t.Fatal("timer should start stopped")
	}

	tm.start("case-1", "Contract Dispute", "member-1", "Drafting")
	if !tm.running() {
		t.Fatal("timer should be running after start")
	}
	if tm.paused() {
		t.Fatal("timer should not be paused")
	}
	if tm.caseID != "case-1" || tm.caseTitle != "Contract Dispute" || tm.memberID != "member-1" {
		t.Fatal("case info not set")
	}

	clk.advance(42 * time.Minute)
	elapsed, ok := tm.stop()
	if !ok {
		t.Fatal("stop should report a running timer")
	}
	if elapsed != 42*time.Minute {
		t.Fatalf("expected 42m, got %v", elapsed)
	}
	if tm.running() {
		t.Fatal("timer should be stopped")
	}
}

func TestTimerStopWhenStopped(t *testing.T) {
	tm := newTimerModel(newTestClock().now)
	if _, ok := tm.stop(); ok {
		t.Fatal("stop on stopped timer should report nothing")
	}
}

func TestTimerPauseResume(t *testing.T) {
	clk := newTestClock()
	tm := newTimerModel(clk.now)
	tm.start("c", "Case", "m", "")

	clk.advance(30 * time.Minute)
	tm.pause()
	if !tm.paused() {
		t.Fatal("timer should be paused")
	}

	clk.advance(10 * time.Minute)
	if got := tm.currentElapsed(); got != 30*time.Minute {
		t.Fatalf("paused time should not count, got %v", got)
	}

	tm.resume()
	if tm.paused() {
		t.Fatal("timer should be running after resume")
	}
	clk.advance(15 * time.Minute)
	elapsed, _ := tm.stop()
	if elapsed != 45*time.Minute {
		t.Fatalf("expected 45m, got %v", elapsed)
	}
}

func TestTimerToggle(t *testing.T) {
	tm := newTimerModel(newTestClock().now)
	tm.toggle()
	if tm.running() {
		t.Fatal("toggle should not start a stopped timer")
	}

	tm.start("c", "Case", "m", "")
	tm.toggle()
	if !tm.paused() {
		t.Fatal("toggle should pause a running timer")
	}
	tm.toggle()
	if tm.paused() {
		t.Fatal("toggle should resume a paused timer")
	}
}

func TestTimerFollowsClock(t *testing.T) {
	clk := newTestClock()
	tm := newTimerModel(clk.now)
	if tm.currentElapsed() != 0 {
		t.Fatal("stopped timer should read zero")
	}

	tm.start("c", "Case", "m", "")
	clk.advance(5 * time.Second)
	if got := tm.currentElapsed(); got != 5*time.Second {
		t.Fatalf("expected 5s, got %v", got)
	}
	if !strings.Contains(tm.view(), "00:00:05") {
		t.Fatalf("view should show the elapsed time, got %q", tm.view())
	}
}

func TestBilledHours(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want float64
	}{
		{0, 0.1},
		{time.Second, 0.1},
		{45 * time.Minute, 0.8},
		{61 * time.Minute, 1.1},
		{90 * time.Minute, 1.5},
	}
	for _, tt := range tests {
		if got := billedHours(tt.d); got != tt.want {
			t.Errorf("billedHours(%v) = %v, want %v", tt.d, got, tt.want)
		}
	}
}

// ============================================================
// Helpers
// ============================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{90 * time.Second, "00:01:30"},
		{2*time.Hour + 5*time.Minute + 7*time.Second, "02:05:07"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatMoneyAndHours(t *testing.T) {
	if got := formatMoney(1675); got != "$1,675.00" {
		t.Errorf("formatMoney(1675) = %q", got)
	}
	if got := formatHours(6.5); got != "6.5h" {
		t.Errorf("formatHours(6.5) = %q", got)
	}
	if got := formatSize(-1); got != "0 B" {
		t.Errorf("formatSize(-1) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s    string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 6, "hello…"},
		{"hello", 1, "…"},
		{"hello", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.s, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	l := newLookup(store.Snapshot{})
	if l.caseTitle("missing") != "Unknown" {
		t.Fatal("missing case should render Unknown")
	}
	if l.memberNames(nil) != "Unassigned" {
		t.Fatal("empty assignment should render Unassigned")
	}
}

func TestNextStatusCycles(t *testing.T) {
	all := store.EntryStatuses()
	var s store.EntryStatus
	var seen []string
	for range len(all) + 1 {
		s = nextStatus(s, all)
		seen = append(seen, filterLabel(s))
	}
	want := "draft submitted approved invoiced all"
	if got := strings.Join(seen, " "); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestVisibleRange(t *testing.T) {
	if s, e := visibleRange(3, 5, 10); s != 0 || e != 5 {
		t.Fatalf("short list should be fully visible, got %d..%d", s, e)
	}
	if s, e := visibleRange(0, 50, 10); s != 0 || e != 10 {
		t.Fatalf("top of list, got %d..%d", s, e)
	}
	if s, e := visibleRange(49, 50, 10); s != 40 || e != 50 {
		t.Fatalf("bottom of list, got %d..%d", s, e)
	}
	s, e := visibleRange(25, 50, 10)
	if 25 < s || 25 >= e {
		t.Fatalf("cursor 25 outside %d..%d", s, e)
	}
}

// ============================================================
// Forms
// ============================================================

func TestValidators(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(string) error
		input string
		ok    bool
	}{
		{"required empty", required("title"), "  ", false},
		{"required set", required("title"), "x", true},
		{"choice empty", requiredChoice("case"), "", false},
		{"hours", validHours, "1.5", true},
		{"hours zero", validHours, "0", false},
		{"hours text", validHours, "abc", false},
		{"amount empty", validOptionalAmount, "", true},
		{"amount negative", validOptionalAmount, "-1", false},
		{"size", validSize, "2048", true},
		{"size fraction", validSize, "1.5", false},
		{"date", validDate, "2024-06-01", true},
		{"date bad", validDate, "06/01/2024", false},
		{"optional date empty", validOptionalDate, "", true},
		{"clock", validClock, "09:30", true},
		{"clock bad", validClock, "9.30", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(tt.input)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestParsers(t *testing.T) {
	got := parseDateClock("2024-07-01", "14:30")
	if got.Year() != 2024 || got.Month() != time.July || got.Day() != 1 || got.Hour() != 14 || got.Minute() != 30 {
		t.Fatalf("parseDateClock = %v", got)
	}
	if parseOptionalFloat(" ") != nil {
		t.Fatal("empty amount should be nil")
	}
	if v := parseOptionalFloat("250"); v == nil || *v != 250 {
		t.Fatal("amount should parse")
	}
	if optionalString("  ") != nil {
		t.Fatal("blank string should be nil")
	}
	if formatFloatInput(store.Ptr(350.0)) != "350" {
		t.Fatal("rate should round-trip into the input")
	}
}

func TestFormHostEscCancels(t *testing.T) {
	var h formHost
	submitted := false
	confirmed := new(bool)
	h.open("Delete", confirmForm("Sure?", confirmed), func() tea.Cmd {
		submitted = true
		return nil
	})
	if !h.active() {
		t.Fatal("form should be active after open")
	}

	cmd := h.update(escKey)
	if h.active() {
		t.Fatal("esc should close the form")
	}
	if submitted {
		t.Fatal("cancelled form must not submit")
	}
	if msg, ok := cmd().(statusMsg); !ok || msg.text != "Cancelled" {
		t.Fatalf("expected Cancelled status, got %#v", cmd())
	}
}

// ============================================================
// Change feed
// ============================================================

func TestChangeFeedCoalesces(t *testing.T) {
	s := store.New(nil)
	f := newChangeFeed(s)
	defer f.close()

	s.AddClient(store.ClientInput{Name: "A", Email: "a@x", Phone: "1"})
	s.AddClient(store.ClientInput{Name: "B", Email: "b@x", Phone: "2"})

	msg, ok := f.wait()().(storeChangedMsg)
	if !ok {
		t.Fatal("wait should yield storeChangedMsg")
	}
	if !msg.fromFeed {
		t.Fatal("feed messages must be marked fromFeed")
	}
	if len(msg.change.State.Clients) != 2 {
		t.Fatalf("latest state should hold both clients, got %d", len(msg.change.State.Clients))
	}
	if len(f.ch) != 0 {
		t.Fatal("older change should have been replaced")
	}
}

func TestChangeFeedClose(t *testing.T) {
	s := store.New(nil)
	f := newChangeFeed(s)
	f.close()
	f.close()

	s.AddClient(store.ClientInput{Name: "A", Email: "a@x", Phone: "1"})
	if len(f.ch) != 0 {
		t.Fatal("closed feed should not receive changes")
	}
}

func TestLoadCmd(t *testing.T) {
	s := seededStore(t)
	msg := loadCmd(s)().(storeChangedMsg)
	if msg.fromFeed {
		t.Fatal("initial load is not a feed message")
	}
	if !msg.change.Applied || len(msg.change.State.Cases) != 2 {
		t.Fatal("initial load should carry the working set")
	}
}

// ============================================================
// Time view
// ============================================================

func TestTimesheetStopBooksDraftEntry(t *testing.T) {
	s := seededStore(t)
	snap := s.Snapshot()
	c := findCase(t, snap, "CASE-2024-002")
	sarah := findMember(t, snap, "Sarah Johnson")

	clk := newTestClock()
	ts := newTimesheetModel(s, discardLogger(), clk.now)
	ts.setData(snap)

	ts, _ = ts.update(startTimerMsg{caseID: c.ID, memberID: sarah.ID, description: "Site inspection"})
	if !ts.timer.running() {
		t.Fatal("start message should start the timer")
	}
	clk.advance(61 * time.Minute)
	ts, _ = ts.update(runes("x"))
	if ts.timer.running() {
		t.Fatal("x should stop the timer")
	}

	entries := s.TimeEntriesByCase(c.ID)
	if len(entries) != 1 {
		t.Fatalf("expected one entry on the case, got %d", len(entries))
	}
	e := entries[0]
	if e.Hours != 1.1 || !e.Billable || e.Status != store.EntryDraft {
		t.Fatalf("unexpected entry %+v", e)
	}
	if e.HourlyRate == nil || *e.HourlyRate != 350 {
		t.Fatal("entry should carry the member's rate")
	}
	if e.UserID != sarah.ID || e.Description != "Site inspection" {
		t.Fatal("entry should record who and what")
	}
}

func TestTimesheetPauseKey(t *testing.T) {
	s := seededStore(t)
	snap := s.Snapshot()
	ts := newTimesheetModel(s, discardLogger(), newTestClock().now)
	ts.setData(snap)

	ts, _ = ts.update(startTimerMsg{caseID: snap.Cases[0].ID, memberID: snap.TeamMembers[0].ID, description: "x"})
	ts, _ = ts.update(runes("p"))
	if !ts.timer.paused() {
		t.Fatal("p should pause")
	}
	ts, _ = ts.update(runes("p"))
	if ts.timer.paused() {
		t.Fatal("p should resume")
	}
}

func TestTimesheetAdvanceStatus(t *testing.T) {
	s := store.New(nil)
	cl := s.AddClient(store.ClientInput{Name: "A", Email: "a@x", Phone: "1"})
	c := s.AddCase(store.CaseInput{ClientID: cl.ID, Title: "Matter", CaseNumber: "M-1"})
	e := s.AddTimeEntry(store.TimeEntryInput{CaseID: c.ID, UserID: "u", Hours: 1, Status: store.EntryApproved})

	ts := newTimesheetModel(s, discardLogger(), newTestClock().now)
	ts.setData(s.Snapshot())
	ts, _ = ts.update(runes("a"))

	got, _ := s.GetTimeEntry(e.ID)
	if got.Status != store.EntryInvoiced {
		t.Fatalf("expected invoiced, got %s", got.Status)
	}

	ts.setData(s.Snapshot())
	_, cmd := ts.update(runes("a"))
	got, _ = s.GetTimeEntry(e.ID)
	if got.Status != store.EntryInvoiced {
		t.Fatal("invoiced is terminal")
	}
	if msg := cmd().(statusMsg); !strings.Contains(msg.text, "invoiced") {
		t.Fatalf("unexpected status %q", msg.text)
	}
}

func TestTimesheetFilterAndSearch(t *testing.T) {
	s := seededStore(t)
	ts := newTimesheetModel(s, discardLogger(), newTestClock().now)
	ts.setData(s.Snapshot())
	if len(ts.entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(ts.entries))
	}
	if ts.totals.Revenue != 1675 {
		t.Fatalf("expected revenue 1675, got %v", ts.totals.Revenue)
	}

	ts, _ = ts.update(runes("f"))
	if ts.status != store.EntryDraft || len(ts.entries) != 0 {
		t.Fatal("draft filter should hide approved entries")
	}
	ts, _ = ts.update(runes("f"))
	ts, _ = ts.update(runes("f"))
	if ts.status != store.EntryApproved || len(ts.entries) != 2 {
		t.Fatal("approved filter should show both entries")
	}

	ts, _ = ts.update(runes("/"))
	if !ts.capturing() {
		t.Fatal("search should capture keys")
	}
	ts, _ = ts.update(runes("research"))
	ts, _ = ts.update(enterKey)
	if ts.capturing() {
		t.Fatal("enter should release the keyboard")
	}
	if len(ts.entries) != 1 || ts.entries[0].Hours != 4 {
		t.Fatalf("search should match the research entry, got %d", len(ts.entries))
	}
}

func TestTimesheetNewNeedsCases(t *testing.T) {
	ts := newTimesheetModel(store.New(nil), discardLogger(), newTestClock().now)
	ts.setData(store.Snapshot{})
	ts, cmd := ts.update(runes("n"))
	if ts.form.active() {
		t.Fatal("form should not open without cases")
	}
	if msg := cmd().(statusMsg); !msg.isError {
		t.Fatal("expected an error status")
	}
}

func TestTimesheetDeleteAsksFirst(t *testing.T) {
	s := seededStore(t)
	ts := newTimesheetModel(s, discardLogger(), newTestClock().now)
	ts.setData(s.Snapshot())

	ts, _ = ts.update(runes("d"))
	if !ts.form.active() {
		t.Fatal("d should open a confirmation")
	}
	ts, _ = ts.update(escKey)
	if ts.form.active() {
		t.Fatal("esc should close the confirmation")
	}
	if len(s.ListTimeEntries()) != 2 {
		t.Fatal("nothing should be deleted")
	}
}

// ============================================================
// Cases and case details
// ============================================================

func TestCasesFilter(t *testing.T) {
	s := seededStore(t)
	m := newCasesModel(s, discardLogger(), "Tester")
	m.setSize(120, 40)
	m.setData(s.Snapshot())
	if len(m.visible) != 2 {
		t.Fatalf("expected 2 cases, got %d", len(m.visible))
	}

	m, _ = m.update(runes("f"))
	if m.status != store.CaseOpen || len(m.visible) != 1 || m.visible[0].CaseNumber != "CASE-2024-002" {
		t.Fatal("open filter should leave only the open case")
	}
}

func TestCaseDetailTabsAndTaskToggle(t *testing.T) {
	s := seededStore(t)
	snap := s.Snapshot()
	c := findCase(t, snap, "CASE-2024-001")

	m := newCasesModel(s, discardLogger(), "Tester")
	m.setSize(120, 40)
	m.setData(snap)
	m.openCase(c.ID)
	if !m.showDetail || !m.detail.found {
		t.Fatal("case details should be showing")
	}
	if m.detail.summary.Revenue != 1675 || m.detail.summary.TasksTotal != 2 {
		t.Fatalf("unexpected summary %+v", m.detail.summary)
	}

	m, _ = m.update(runes("l"))
	m, _ = m.update(runes("l"))
	if m.detail.tab != detailTasks {
		t.Fatalf("expected tasks tab, got %d", m.detail.tab)
	}

	task := m.detail.tasks[0]
	if task.Status != store.TaskCompleted {
		t.Fatal("seeded first task should be completed")
	}
	m, _ = m.update(runes(" "))
	got, _ := s.GetTask(task.ID)
	if got.Status != store.TaskInProgress {
		t.Fatalf("toggle should reopen the task, got %s", got.Status)
	}

	m.setData(s.Snapshot())
	m, _ = m.update(runes(" "))
	got, _ = s.GetTask(task.ID)
	if got.Status != store.TaskCompleted {
		t.Fatalf("toggle should complete the task, got %s", got.Status)
	}

	m, _ = m.update(escKey)
	if m.showDetail {
		t.Fatal("esc should return to the list")
	}
}

func TestCaseDetailDeletedCase(t *testing.T) {
	s := seededStore(t)
	c := findCase(t, s.Snapshot(), "CASE-2024-002")

	m := newCasesModel(s, discardLogger(), "Tester")
	m.setSize(120, 40)
	m.setData(s.Snapshot())
	m.openCase(c.ID)

	s.DeleteCase(c.ID)
	m.setData(s.Snapshot())
	if m.detail.found {
		t.Fatal("deleted case should not be found")
	}
	if !strings.Contains(m.view(), "no longer exists") {
		t.Fatal("view should explain the case is gone")
	}
}

// ============================================================
// Clients, calendar, reports
// ============================================================

func TestClientDetailOpensCase(t *testing.T) {
	s := seededStore(t)
	m := newClientsModel(s, discardLogger())
	m.setSize(120, 40)
	m.setData(s.Snapshot())

	m, _ = m.update(enterKey)
	if !m.showDetail || m.detailID != m.visible[0].ID {
		t.Fatal("enter should open the client")
	}
	if !strings.Contains(m.view(), "Contract Dispute") {
		t.Fatal("client details should list the client's case")
	}

	_, cmd := m.update(enterKey)
	msg, ok := cmd().(openCaseMsg)
	if !ok || msg.caseID != findCase(t, s.Snapshot(), "CASE-2024-001").ID {
		t.Fatal("enter on a case should ask to open it")
	}
}

func TestClientsSearch(t *testing.T) {
	s := seededStore(t)
	m := newClientsModel(s, discardLogger())
	m.setData(s.Snapshot())

	m, _ = m.update(runes("/"))
	m, _ = m.update(runes("jane"))
	if len(m.visible) != 1 || m.visible[0].Name != "Jane Smith" {
		t.Fatal("search should match by name")
	}
	m, _ = m.update(escKey)
	if len(m.visible) != 2 {
		t.Fatal("esc should clear the search")
	}
}

func TestCalendarPartitionAndReminder(t *testing.T) {
	s := seededStore(t)
	c := findCase(t, s.Snapshot(), "CASE-2024-001")
	hearing := s.AddCourtDate(store.CourtDateInput{
		CaseID:   c.ID,
		Title:    "Trial",
		Date:     time.Date(2024, time.July, 1, 9, 0, 0, 0, time.UTC),
		Location: "Room 1",
	})

	clk := newTestClock()
	m := newCalendarModel(s, discardLogger(), clk.now)
	m.setSize(120, 40)
	m.setData(s.Snapshot())
	if len(m.upcoming) != 1 || len(m.past) != 1 {
		t.Fatalf("expected 1 upcoming and 1 past, got %d/%d", len(m.upcoming), len(m.past))
	}

	m, _ = m.update(runes("r"))
	got, _ := s.GetCourtDate(hearing.ID)
	if !got.ReminderSent {
		t.Fatal("r should mark the reminder sent")
	}

	clk.advance(31 * 24 * time.Hour)
	m, _ = m.update(tickMsg(clk.now()))
	if len(m.upcoming) != 0 || len(m.past) != 2 {
		t.Fatal("the hearing should move to the past once its time comes")
	}
}

func TestReportsModeSwitch(t *testing.T) {
	s := seededStore(t)
	r := newReportsModel()
	r.setSize(120, 40)
	r.setData(s.Snapshot())

	if len(r.rows) != 1 || r.rows[0].Hours != 6.5 {
		t.Fatalf("by case should hold one 6.5h row, got %+v", r.rows)
	}
	r, _ = r.update(runes("m"))
	if r.mode != reportByMember || len(r.rows) != 2 {
		t.Fatal("m should switch to members")
	}
	if r.rows[0].Label != "Michael Chen" {
		t.Fatalf("largest member first, got %s", r.rows[0].Label)
	}
	if !strings.Contains(r.view(), "$1,675.00") {
		t.Fatal("table should show the revenue total")
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	app := newApp(store.New(nil), testConfig(t), nil, newTestClock().now)
	defer app.Close()

	if app.activeView != viewDashboard {
		t.Fatal("default view should be dashboard")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
	if app.capturing() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppLoadingState(t *testing.T) {
	app := newApp(store.New(nil), testConfig(t), nil, newTestClock().now)
	defer app.Close()
	if out := app.View(); out != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", out)
	}
}

func TestAppTabSwitching(t *testing.T) {
	app := newTestApp(t, seededStore(t), newTestClock())

	for i, k := range []string{"1", "2", "3", "4", "5", "6"} {
		app, _ = step(app, runes(k))
		if app.activeView != viewState(i) {
			t.Fatalf("key %s: expected view %d, got %d", k, i, app.activeView)
		}
		if app.View() == "" {
			t.Fatalf("view %d rendered empty", i)
		}
	}

	app, _ = step(app, tea.KeyMsg{Type: tea.KeyTab})
	if app.activeView != viewDashboard {
		t.Fatal("tab should wrap around to the dashboard")
	}
}

func TestAppHeaderContainsAllTabs(t *testing.T) {
	app := newTestApp(t, store.New(nil), newTestClock())
	header := app.renderHeader()
	if !strings.Contains(header, "casedesk") {
		t.Fatal("header should show the configured title")
	}
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppDashboardShowsSeed(t *testing.T) {
	app := newTestApp(t, seededStore(t), newTestClock())
	out := app.View()
	for _, want := range []string{"Contract Dispute", "$1,675.00", "6.5h"} {
		if !strings.Contains(out, want) {
			t.Fatalf("dashboard missing %q", want)
		}
	}
}

func TestAppTickRefreshesDashboardHearings(t *testing.T) {
	s := seededStore(t)
	c := findCase(t, s.Snapshot(), "CASE-2024-001")
	s.AddCourtDate(store.CourtDateInput{
		CaseID:   c.ID,
		Title:    "Status Conference",
		Date:     time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC),
		Location: "Room 2",
	})

	clk := newTestClock()
	app := newTestApp(t, s, clk)
	if len(app.dashboard.upcoming) != 1 {
		t.Fatalf("expected one upcoming hearing, got %d", len(app.dashboard.upcoming))
	}

	clk.advance(2 * time.Hour)
	app, _ = step(app, tickMsg(clk.now()))
	if len(app.dashboard.upcoming) != 0 {
		t.Fatal("a hearing whose time has passed should leave the dashboard on the next tick")
	}
	if !strings.Contains(app.View(), "No upcoming court dates") {
		t.Fatal("dashboard should render the empty upcoming panel")
	}
}

func TestAppStoreChangeRefreshesViews(t *testing.T) {
	s := seededStore(t)
	app := newTestApp(t, s, newTestClock())

	s.AddClient(store.ClientInput{Name: "Globex", Email: "g@x", Phone: "3"})
	msg := app.feed.wait()().(storeChangedMsg)
	app, cmd := step(app, msg)
	if cmd == nil {
		t.Fatal("feed message should re-arm the wait")
	}
	if len(app.clients.visible) != 3 {
		t.Fatalf("clients view should see the new client, got %d", len(app.clients.visible))
	}
	if app.dashboard.stats.TotalClients != 3 {
		t.Fatal("dashboard should see the new client")
	}
}

func TestAppReportsMissingRecord(t *testing.T) {
	s := seededStore(t)
	app := newTestApp(t, s, newTestClock())

	_, cmd := step(app, storeChangedMsg{change: store.Change{
		Kind:    store.KindCase,
		Op:      store.OpDelete,
		ID:      "missing",
		Applied: false,
		State:   s.Snapshot(),
	}})
	if cmd == nil {
		t.Fatal("a change that was not applied should surface a status")
	}
}

func TestAppSearchCapturesGlobalKeys(t *testing.T) {
	app := newTestApp(t, seededStore(t), newTestClock())
	app, _ = step(app, runes("2"))
	app, _ = step(app, runes("/"))
	app, _ = step(app, runes("q"))
	app, _ = step(app, runes("1"))

	if app.activeView != viewCases {
		t.Fatal("typing in search must not switch tabs")
	}
	if app.cases.search.value() != "q1" {
		t.Fatalf("search should hold the typed text, got %q", app.cases.search.value())
	}
}

func TestAppOpenCaseMsg(t *testing.T) {
	s := seededStore(t)
	app := newTestApp(t, s, newTestClock())
	c := findCase(t, s.Snapshot(), "CASE-2024-002")

	app, _ = step(app, openCaseMsg{caseID: c.ID})
	if app.activeView != viewCases || !app.cases.showDetail {
		t.Fatal("open case should jump to the case details")
	}
	if !strings.Contains(app.View(), "Personal Injury Claim") {
		t.Fatal("details should render the case")
	}
}

func TestAppTimerInFooter(t *testing.T) {
	s := seededStore(t)
	snap := s.Snapshot()
	app := newTestApp(t, s, newTestClock())

	app, _ = step(app, startTimerMsg{caseID: snap.Cases[0].ID, memberID: snap.TeamMembers[0].ID, description: "Review"})
	if !app.timesheet.timer.running() {
		t.Fatal("start message should reach the time view from any tab")
	}
	if !strings.Contains(app.renderFooter(), "●") {
		t.Fatal("footer should show the running timer")
	}
}

func TestAppStatusMessage(t *testing.T) {
	app := newTestApp(t, store.New(nil), newTestClock())
	app, _ = step(app, statusMsg{text: "test status"})
	if !strings.Contains(app.renderFooter(), "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppExport(t *testing.T) {
	s := seededStore(t)
	app := newTestApp(t, s, newTestClock())

	app, _ = step(app, runes("E"))
	if !app.exportPicking {
		t.Fatal("E should open the export picker")
	}
	if !strings.Contains(app.View(), export.FormatSQLite.String()) {
		t.Fatal("picker should list every format")
	}

	app, _ = step(app, escKey)
	if app.exportPicking {
		t.Fatal("esc should close the picker")
	}

	app, _ = step(app, runes("E"))
	app, cmd := step(app, enterKey)
	if cmd == nil {
		t.Fatal("enter should start the export")
	}
	done, ok := cmd().(exportDoneMsg)
	if !ok {
		t.Fatal("export should succeed")
	}
	if !strings.HasPrefix(done.path, app.cfg.Export.Dir) || !strings.HasSuffix(done.path, ".csv") {
		t.Fatalf("unexpected export path %s", done.path)
	}
	if _, err := os.Stat(done.path); err != nil {
		t.Fatalf("export file missing: %v", err)
	}

	app, _ = step(app, done)
	if !strings.Contains(app.status, "Exported") {
		t.Fatal("status should report the export")
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	bindings := keys.ShortHelp()
	if len(bindings) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test, just verify they don't panic)
// ============================================================

func TestBadgesRender(t *testing.T) {
	for _, s := range store.CaseStatuses() {
		if !strings.Contains(caseStatusBadge(s), string(s)) {
			t.Fatalf("badge missing %s", s)
		}
	}
	for _, p := range store.CasePriorities() {
		if !strings.Contains(casePriorityBadge(p), string(p)) {
			t.Fatalf("badge missing %s", p)
		}
	}
	for _, s := range store.EntryStatuses() {
		if !strings.Contains(entryStatusBadge(s), string(s)) {
			t.Fatalf("badge missing %s", s)
		}
	}
	for _, s := range store.TaskStatuses() {
		if !strings.Contains(taskStatusBadge(s), string(s)) {
			t.Fatalf("badge missing %s", s)
		}
	}
}
