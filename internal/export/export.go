// Package export writes the working set to files the firm can take
// elsewhere: a CSV timesheet, a JSON dump and a SQLite database.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sadopc/casedesk/internal/store"
)

type Format int

const (
	FormatCSV Format = iota
	FormatJSON
	FormatSQLite
)

// Formats lists every format in picker order.
func Formats() []Format {
	return []Format{FormatCSV, FormatJSON, FormatSQLite}
}

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "CSV (time entries)"
	case FormatJSON:
		return "JSON (everything)"
	case FormatSQLite:
		return "SQLite (everything)"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

func (f Format) ext() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatSQLite:
		return "db"
	}
	return "csv"
}

// Path names the export file for format f inside dir.
func Path(dir string, f Format, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("casedesk-export-%s.%s", now.Format("2006-01-02-150405"), f.ext()))
}

// Write exports snap to path in format f, creating the directory first.
func Write(ctx context.Context, f Format, snap store.Snapshot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	switch f {
	case FormatCSV:
		return ToCSV(snap.TimeEntries, casesByID(snap.Cases), membersByID(snap.TeamMembers), path)
	case FormatJSON:
		return ToJSON(snap, path)
	case FormatSQLite:
		return ToSQLite(ctx, snap, path)
	}
	return fmt.Errorf("unknown export format %d", int(f))
}

func casesByID(cases []store.Case) map[string]store.Case {
	m := make(map[string]store.Case, len(cases))
	for _, c := range cases {
		m[c.ID] = c
	}
	return m
}

func membersByID(members []store.TeamMember) map[string]store.TeamMember {
	m := make(map[string]store.TeamMember, len(members))
	for _, tm := range members {
		m[tm.ID] = tm
	}
	return m
}
