package export

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/casedesk/internal/store"
)

func seededSnapshot(t *testing.T) store.Snapshot {
	t.Helper()
	s := store.New(nil)
	store.Seed(s)
	return s.Snapshot()
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	return records
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	snap := seededSnapshot(t)
	path := filepath.Join(t.TempDir(), "test.csv")

	err := ToCSV(snap.TimeEntries, casesByID(snap.Cases), membersByID(snap.TeamMembers), path)
	if err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	records := readCSV(t, path)

	// header + 2 data rows
	if len(records) != 3 {
		t.Fatalf("expected 3 rows (1 header + 2 data), got %d", len(records))
	}

	expectedHeader := []string{"Date", "Case Number", "Case", "Member", "Description", "Hours", "Billable", "Rate", "Amount", "Status"}
	for i, h := range expectedHeader {
		if records[0][i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}

	row := records[1]
	want := []string{
		"2024-03-01", "CASE-2024-001", "Contract Dispute - Vendor Agreement", "Sarah Johnson",
		"Initial client consultation and case review", "2.5", "true", "350.00", "875.00", "approved",
	}
	for i, v := range want {
		if row[i] != v {
			t.Errorf("row[%d] = %q, want %q", i, row[i], v)
		}
	}
	if records[2][8] != "800.00" {
		t.Fatalf("second amount = %q, want 800.00", records[2][8])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := ToCSV(nil, nil, nil, path); err != nil {
		t.Fatal(err)
	}

	if records := readCSV(t, path); len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVUnknownReferences(t *testing.T) {
	entries := []store.TimeEntry{
		{ID: "e1", CaseID: "gone", UserID: "nobody", Hours: 1, Date: time.Now()},
	}
	path := filepath.Join(t.TempDir(), "unknown.csv")

	if err := ToCSV(entries, map[string]store.Case{}, map[string]store.TeamMember{}, path); err != nil {
		t.Fatal(err)
	}

	records := readCSV(t, path)
	if records[1][2] != "Unknown" {
		t.Fatalf("expected 'Unknown' for missing case, got %q", records[1][2])
	}
	if records[1][3] != "Unknown" {
		t.Fatalf("expected 'Unknown' for missing member, got %q", records[1][3])
	}
	if records[1][7] != "" || records[1][8] != "0.00" {
		t.Fatalf("rateless entry: rate %q amount %q", records[1][7], records[1][8])
	}
}

func TestToCSVNonBillableHasNoAmount(t *testing.T) {
	entries := []store.TimeEntry{
		{ID: "e1", CaseID: "k1", Hours: 2, Date: time.Now(), Billable: false, HourlyRate: store.Ptr(250.0), Status: store.EntryApproved},
	}
	path := filepath.Join(t.TempDir(), "nonbillable.csv")

	if err := ToCSV(entries, nil, nil, path); err != nil {
		t.Fatal(err)
	}

	records := readCSV(t, path)
	if records[1][6] != "false" || records[1][7] != "250.00" {
		t.Fatalf("billable %q rate %q", records[1][6], records[1][7])
	}
	if records[1][8] != "0.00" {
		t.Fatalf("non-billable amount = %q, want 0.00", records[1][8])
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(nil, nil, nil, "/nonexistent/dir/file.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	entries := []store.TimeEntry{
		{ID: "e1", CaseID: "k1", Date: time.Now(), Description: `call with "opposing" counsel, again`},
	}
	cases := map[string]store.Case{"k1": {ID: "k1", Title: `Smith v. "Jones"`}}
	path := filepath.Join(t.TempDir(), "special.csv")

	if err := ToCSV(entries, cases, nil, path); err != nil {
		t.Fatal(err)
	}

	records := readCSV(t, path)
	if records[1][2] != `Smith v. "Jones"` {
		t.Fatalf("case title mangled: %q", records[1][2])
	}
	if records[1][4] != `call with "opposing" counsel, again` {
		t.Fatalf("description mangled: %q", records[1][4])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	snap := seededSnapshot(t)
	path := filepath.Join(t.TempDir(), "test.json")

	if err := ToJSON(snap, path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}
	if result.Counts.Cases != 2 || result.Counts.TeamMembers != 3 || result.Counts.Notes != 0 {
		t.Fatalf("counts = %+v", result.Counts)
	}
	if len(result.Cases) != 2 {
		t.Fatalf("cases = %d, want 2", len(result.Cases))
	}
	if result.Cases[0].CaseNumber != "CASE-2024-001" {
		t.Fatalf("case number = %q", result.Cases[0].CaseNumber)
	}
	if got := result.Cases[0].AssignedTo; len(got) != 2 || got[0] != snap.TeamMembers[0].ID {
		t.Fatalf("assigned_to = %v", got)
	}
	if !result.TimeEntries[1].Date.Equal(snap.TimeEntries[1].Date) {
		t.Fatalf("date = %v, want %v", result.TimeEntries[1].Date, snap.TimeEntries[1].Date)
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	if err := ToJSON(store.Snapshot{}, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	if result.Counts != (jsonCounts{}) {
		t.Fatalf("counts = %+v, want zero", result.Counts)
	}
	if result.Clients != nil {
		t.Fatal("clients should be nil/null for empty export")
	}
}

func TestToJSONBadPath(t *testing.T) {
	if err := ToJSON(store.Snapshot{}, "/nonexistent/dir/file.json"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	ToJSON(store.Snapshot{}, path)

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "\n  \"counts\"") {
		t.Fatal("JSON should be indented with two spaces")
	}
}

// ============================================================
// SQLite
// ============================================================

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestToSQLite(t *testing.T) {
	snap := seededSnapshot(t)
	path := filepath.Join(t.TempDir(), "out", "test.db")

	if err := ToSQLite(context.Background(), snap, path); err != nil {
		t.Fatalf("ToSQLite: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	want := map[string]int{
		"team_members":     3,
		"clients":          2,
		"cases":            2,
		"case_assignments": 3,
		"time_entries":     2,
		"tasks":            2,
		"court_dates":      1,
		"documents":        0,
		"notes":            0,
	}
	for table, n := range want {
		if got := countRows(t, db, table); got != n {
			t.Errorf("%s rows = %d, want %d", table, got, n)
		}
	}

	var company, address sql.NullString
	db.QueryRow("SELECT company, address FROM clients WHERE name = ?", "Jane Smith").Scan(&company, &address)
	if company.Valid {
		t.Fatalf("company should be NULL, got %q", company.String)
	}
	if address.String != "456 Residential Ave, Los Angeles, CA 90001" {
		t.Fatalf("address = %q", address.String)
	}

	var revenue float64
	db.QueryRow("SELECT SUM(hours * hourly_rate) FROM time_entries WHERE billable = 1").Scan(&revenue)
	if revenue != 1675 {
		t.Fatalf("revenue = %v, want 1675", revenue)
	}
}

func TestToSQLiteReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	if err := ToSQLite(ctx, seededSnapshot(t), path); err != nil {
		t.Fatal(err)
	}
	if err := ToSQLite(ctx, store.Snapshot{}, path); err != nil {
		t.Fatalf("second export: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if n := countRows(t, db, "cases"); n != 0 {
		t.Fatalf("cases = %d, want 0 after re-export", n)
	}
}

// ============================================================
// Formats
// ============================================================

func TestPath(t *testing.T) {
	now := time.Date(2024, 6, 1, 14, 30, 5, 0, time.UTC)
	tests := []struct {
		f    Format
		want string
	}{
		{FormatCSV, "casedesk-export-2024-06-01-143005.csv"},
		{FormatJSON, "casedesk-export-2024-06-01-143005.json"},
		{FormatSQLite, "casedesk-export-2024-06-01-143005.db"},
	}
	for _, tt := range tests {
		if got := Path("/tmp", tt.f, now); got != filepath.Join("/tmp", tt.want) {
			t.Errorf("Path(%v) = %q, want %q", tt.f, got, tt.want)
		}
	}
}

func TestWriteDispatches(t *testing.T) {
	snap := seededSnapshot(t)
	dir := t.TempDir()
	now := time.Now()

	for _, f := range Formats() {
		path := Path(dir, f, now)
		if err := Write(context.Background(), f, snap, path); err != nil {
			t.Fatalf("Write(%v): %v", f, err)
		}
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Fatalf("Write(%v) produced no file", f)
		}
	}

	if err := Write(context.Background(), Format(99), snap, filepath.Join(dir, "x")); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestWriteCreatesMissingDirectory(t *testing.T) {
	snap := seededSnapshot(t)
	dir := filepath.Join(t.TempDir(), "firm", "exports")
	now := time.Now()

	for _, f := range Formats() {
		path := Path(dir, f, now)
		if err := Write(context.Background(), f, snap, path); err != nil {
			t.Fatalf("Write(%v) into missing dir: %v", f, err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("Write(%v) produced no file: %v", f, err)
		}
	}
}

func TestFormatString(t *testing.T) {
	if len(Formats()) != 3 {
		t.Fatalf("expected 3 formats, got %d", len(Formats()))
	}
	for _, f := range Formats() {
		if f.String() == "" || strings.HasPrefix(f.String(), "Format(") {
			t.Errorf("format %d has no name", int(f))
		}
	}
}
