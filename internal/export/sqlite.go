package export

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/sadopc/casedesk/internal/store"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE team_members (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	email       TEXT NOT NULL,
	role        TEXT NOT NULL,
	hourly_rate REAL
);

CREATE TABLE clients (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	phone      TEXT NOT NULL,
	company    TEXT,
	address    TEXT,
	created_at TEXT NOT NULL
);

CREATE TABLE cases (
	id              TEXT PRIMARY KEY,
	client_id       TEXT NOT NULL,
	title           TEXT NOT NULL,
	case_number     TEXT NOT NULL,
	status          TEXT NOT NULL,
	priority        TEXT NOT NULL,
	practice_area   TEXT NOT NULL,
	description     TEXT NOT NULL,
	created_at      TEXT NOT NULL,
	updated_at      TEXT NOT NULL,
	court_date      TEXT,
	estimated_value REAL
);

CREATE TABLE case_assignments (
	case_id   TEXT NOT NULL,
	member_id TEXT NOT NULL,
	position  INTEGER NOT NULL,
	PRIMARY KEY (case_id, position)
);

CREATE TABLE time_entries (
	id          TEXT PRIMARY KEY,
	case_id     TEXT NOT NULL,
	user_id     TEXT NOT NULL,
	description TEXT NOT NULL,
	hours       REAL NOT NULL,
	date        TEXT NOT NULL,
	billable    INTEGER NOT NULL,
	hourly_rate REAL,
	status      TEXT NOT NULL
);

CREATE TABLE documents (
	id          TEXT PRIMARY KEY,
	case_id     TEXT NOT NULL,
	name        TEXT NOT NULL,
	type        TEXT NOT NULL,
	size        INTEGER NOT NULL,
	uploaded_by TEXT NOT NULL,
	uploaded_at TEXT NOT NULL,
	url         TEXT NOT NULL,
	category    TEXT NOT NULL
);

CREATE TABLE tasks (
	id          TEXT PRIMARY KEY,
	case_id     TEXT NOT NULL,
	title       TEXT NOT NULL,
	description TEXT NOT NULL,
	assigned_to TEXT NOT NULL,
	status      TEXT NOT NULL,
	priority    TEXT NOT NULL,
	due_date    TEXT,
	created_at  TEXT NOT NULL
);

CREATE TABLE court_dates (
	id            TEXT PRIMARY KEY,
	case_id       TEXT NOT NULL,
	title         TEXT NOT NULL,
	date          TEXT NOT NULL,
	location      TEXT NOT NULL,
	judge         TEXT,
	notes         TEXT,
	reminder_sent INTEGER NOT NULL
);

CREATE TABLE notes (
	id         TEXT PRIMARY KEY,
	case_id    TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_by TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX idx_cases_client        ON cases(client_id);
CREATE INDEX idx_time_entries_case   ON time_entries(case_id);
CREATE INDEX idx_documents_case      ON documents(case_id);
CREATE INDEX idx_tasks_case          ON tasks(case_id);
CREATE INDEX idx_court_dates_case    ON court_dates(case_id);
CREATE INDEX idx_notes_case          ON notes(case_id);
`

// ToSQLite writes snap into a new SQLite database at path, replacing any
// file already there. References are stored as plain ids without foreign
// keys, so dangling references survive the export.
func ToSQLite(ctx context.Context, snap store.Snapshot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove old export: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := insertAll(ctx, tx, snap); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertAll(ctx context.Context, tx *sql.Tx, snap store.Snapshot) error {
	for _, m := range snap.TeamMembers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO team_members (id, name, email, role, hourly_rate) VALUES (?, ?, ?, ?, ?)`,
			m.ID, m.Name, m.Email, string(m.Role), opt(m.HourlyRate),
		); err != nil {
			return fmt.Errorf("insert team member %s: %w", m.ID, err)
		}
	}

	for _, c := range snap.Clients {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO clients (id, name, email, phone, company, address, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.Name, c.Email, c.Phone, opt(c.Company), opt(c.Address), ts(c.CreatedAt),
		); err != nil {
			return fmt.Errorf("insert client %s: %w", c.ID, err)
		}
	}

	for _, c := range snap.Cases {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO cases (id, client_id, title, case_number, status, priority, practice_area, description, created_at, updated_at, court_date, estimated_value)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.ClientID, c.Title, c.CaseNumber, string(c.Status), string(c.Priority), c.PracticeArea, c.Description,
			ts(c.CreatedAt), ts(c.UpdatedAt), optionalTS(c.CourtDate), opt(c.EstimatedValue),
		); err != nil {
			return fmt.Errorf("insert case %s: %w", c.ID, err)
		}
		for i, memberID := range c.AssignedTo {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO case_assignments (case_id, member_id, position) VALUES (?, ?, ?)`,
				c.ID, memberID, i,
			); err != nil {
				return fmt.Errorf("insert assignment for case %s: %w", c.ID, err)
			}
		}
	}

	for _, e := range snap.TimeEntries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO time_entries (id, case_id, user_id, description, hours, date, billable, hourly_rate, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.CaseID, e.UserID, e.Description, e.Hours, ts(e.Date), e.Billable, opt(e.HourlyRate), string(e.Status),
		); err != nil {
			return fmt.Errorf("insert time entry %s: %w", e.ID, err)
		}
	}

	for _, d := range snap.Documents {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO documents (id, case_id, name, type, size, uploaded_by, uploaded_at, url, category) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			d.ID, d.CaseID, d.Name, d.Type, d.Size, d.UploadedBy, ts(d.UploadedAt), d.URL, string(d.Category),
		); err != nil {
			return fmt.Errorf("insert document %s: %w", d.ID, err)
		}
	}

	for _, t := range snap.Tasks {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tasks (id, case_id, title, description, assigned_to, status, priority, due_date, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.CaseID, t.Title, t.Description, t.AssignedTo, string(t.Status), string(t.Priority), optionalTS(t.DueDate), ts(t.CreatedAt),
		); err != nil {
			return fmt.Errorf("insert task %s: %w", t.ID, err)
		}
	}

	for _, cd := range snap.CourtDates {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO court_dates (id, case_id, title, date, location, judge, notes, reminder_sent) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			cd.ID, cd.CaseID, cd.Title, ts(cd.Date), cd.Location, opt(cd.Judge), opt(cd.Notes), cd.ReminderSent,
		); err != nil {
			return fmt.Errorf("insert court date %s: %w", cd.ID, err)
		}
	}

	for _, n := range snap.Notes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO notes (id, case_id, content, created_by, created_at) VALUES (?, ?, ?, ?, ?)`,
			n.ID, n.CaseID, n.Content, n.CreatedBy, ts(n.CreatedAt),
		); err != nil {
			return fmt.Errorf("insert note %s: %w", n.ID, err)
		}
	}
	return nil
}

func ts(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// opt turns a nil pointer into SQL NULL.
func opt[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func optionalTS(t *time.Time) any {
	if t == nil {
		return nil
	}
	return ts(*t)
}
