// Package store holds the firm's working set in memory: clients, cases and
// everything hanging off a case. It is the single source of truth for the
// UI. Mutators never fail; lookups report absence with a boolean.
package store

import (
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Store struct {
	mu     sync.RWMutex
	logger *slog.Logger

	now   func() time.Time
	newID func() string

	clients     []Client
	cases       []Case
	timeEntries []TimeEntry
	documents   []Document
	tasks       []Task
	courtDates  []CourtDate
	teamMembers []TeamMember
	notes       []Note

	subs *subscribers
}

// New returns an empty store. A nil logger discards log output.
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		logger: logger.With("component", "store"),
		now:    time.Now,
		newID:  uuid.NewString,
		subs:   newSubscribers(),
	}
}

// Snapshot is a deep copy of every collection, in insertion order.
type Snapshot struct {
	Clients     []Client     `json:"clients"`
	Cases       []Case       `json:"cases"`
	TimeEntries []TimeEntry  `json:"time_entries"`
	Documents   []Document   `json:"documents"`
	Tasks       []Task       `json:"tasks"`
	CourtDates  []CourtDate  `json:"court_dates"`
	TeamMembers []TeamMember `json:"team_members"`
	Notes       []Note       `json:"notes"`
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Clients:     cloneAll(s.clients, Client.clone),
		Cases:       cloneAll(s.cases, Case.clone),
		TimeEntries: cloneAll(s.timeEntries, TimeEntry.clone),
		Documents:   cloneAll(s.documents, Document.clone),
		Tasks:       cloneAll(s.tasks, Task.clone),
		CourtDates:  cloneAll(s.courtDates, CourtDate.clone),
		TeamMembers: cloneAll(s.teamMembers, TeamMember.clone),
		Notes:       cloneAll(s.notes, Note.clone),
	}
}

// uniqueID draws ids until one is free in the target collection.
func (s *Store) uniqueID(taken func(id string) bool) string {
	for {
		id := s.newID()
		if !taken(id) {
			return id
		}
		s.logger.Warn("id collision, drawing again", "id", id)
	}
}

// unlockAndEmit releases s.mu, which the caller must hold for writing, and
// fans the change out to subscribers. State is captured before the lock is
// released, so it reflects exactly this mutation.
func (s *Store) unlockAndEmit(kind Kind, op Op, id string, applied bool) {
	var state Snapshot
	notify := !s.subs.empty()
	if notify {
		state = s.snapshotLocked()
	}
	s.mu.Unlock()

	if applied {
		s.logger.Debug("mutation", "kind", kind, "op", op, "id", id)
	} else {
		s.logger.Debug("mutation ignored: unknown id", "kind", kind, "op", op, "id", id)
	}
	if !notify {
		return
	}
	s.subs.publish(Change{
		Kind:    kind,
		Op:      op,
		ID:      id,
		Applied: applied,
		State:   state,
	})
}

func indexByID[T any](items []T, id string, key func(T) string) int {
	return slices.IndexFunc(items, func(v T) bool { return key(v) == id })
}

func getByID[T any](items []T, id string, key func(T) string, clone func(T) T) (T, bool) {
	if i := indexByID(items, id, key); i >= 0 {
		return clone(items[i]), true
	}
	var zero T
	return zero, false
}

func cloneAll[T any](items []T, clone func(T) T) []T {
	if len(items) == 0 {
		return nil
	}
	out := make([]T, len(items))
	for i, v := range items {
		out[i] = clone(v)
	}
	return out
}

func filterBy[T any](items []T, match func(T) bool, clone func(T) T) []T {
	var out []T
	for _, v := range items {
		if match(v) {
			out = append(out, clone(v))
		}
	}
	return out
}

func clientKey(c Client) string        { return c.ID }
func caseKey(c Case) string            { return c.ID }
func entryKey(e TimeEntry) string      { return e.ID }
func documentKey(d Document) string    { return d.ID }
func taskKey(t Task) string            { return t.ID }
func courtDateKey(cd CourtDate) string { return cd.ID }
func memberKey(m TeamMember) string    { return m.ID }
func noteKey(n Note) string            { return n.ID }

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func setOptional[T any](dst **T, src *T) {
	if src != nil {
		*dst = clonePtr(src)
	}
}
