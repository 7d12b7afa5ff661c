// Package report derives the figures the views show from store data:
// billable hours and revenue, hearing schedules, task progress, filtered
// listings and per-group breakdowns. Everything here is a pure function
// over slices returned by the store.
package report

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/sadopc/casedesk/internal/store"
)

// EntryFilter narrows the entries counted by BillableHours and Revenue.
// A nil Status counts every billable entry.
type EntryFilter struct {
	Status *store.EntryStatus
}

// ApprovedOnly counts approved billable entries, the firm's booked figures.
func ApprovedOnly() EntryFilter {
	s := store.EntryApproved
	return EntryFilter{Status: &s}
}

func (f EntryFilter) counts(e store.TimeEntry) bool {
	if !e.Billable {
		return false
	}
	return f.Status == nil || e.Status == *f.Status
}

// Amount is hours times rate. Non-billable entries and entries without a
// rate are worth nothing.
func Amount(e store.TimeEntry) float64 {
	if !e.Billable || e.HourlyRate == nil {
		return 0
	}
	return e.Hours * *e.HourlyRate
}

func BillableHours(entries []store.TimeEntry, f EntryFilter) float64 {
	var sum float64
	for _, e := range entries {
		if f.counts(e) {
			sum += e.Hours
		}
	}
	return sum
}

func Revenue(entries []store.TimeEntry, f EntryFilter) float64 {
	var sum float64
	for _, e := range entries {
		if f.counts(e) {
			sum += Amount(e)
		}
	}
	return sum
}

// TotalHours sums every entry, billable or not.
func TotalHours(entries []store.TimeEntry) float64 {
	var sum float64
	for _, e := range entries {
		sum += e.Hours
	}
	return sum
}

// PartitionCourtDates splits dates around now. Upcoming dates (strictly
// after now) come soonest first; past dates, including one exactly at now,
// come most recent first.
func PartitionCourtDates(dates []store.CourtDate, now time.Time) (upcoming, past []store.CourtDate) {
	for _, cd := range dates {
		if cd.Date.After(now) {
			upcoming = append(upcoming, cd)
		} else {
			past = append(past, cd)
		}
	}
	slices.SortStableFunc(upcoming, func(a, b store.CourtDate) int { return a.Date.Compare(b.Date) })
	slices.SortStableFunc(past, func(a, b store.CourtDate) int { return b.Date.Compare(a.Date) })
	return upcoming, past
}

// UpcomingCourtDates returns at most limit upcoming dates, soonest first.
func UpcomingCourtDates(dates []store.CourtDate, now time.Time, limit int) []store.CourtDate {
	upcoming, _ := PartitionCourtDates(dates, now)
	return head(upcoming, limit)
}

// TaskCompletion reports completed over total. The ratio is 0 when there
// are no tasks.
func TaskCompletion(tasks []store.Task) (done, total int, ratio float64) {
	for _, t := range tasks {
		if t.Status == store.TaskCompleted {
			done++
		}
	}
	total = len(tasks)
	if total > 0 {
		ratio = float64(done) / float64(total)
	}
	return done, total, ratio
}

// ActiveCases keeps every case that is not closed.
func ActiveCases(cases []store.Case) []store.Case {
	var out []store.Case
	for _, c := range cases {
		if c.Status != store.CaseClosed {
			out = append(out, c)
		}
	}
	return out
}

// RecentCases returns at most limit cases, most recently updated first.
func RecentCases(cases []store.Case, limit int) []store.Case {
	sorted := slices.Clone(cases)
	slices.SortStableFunc(sorted, func(a, b store.Case) int { return b.UpdatedAt.Compare(a.UpdatedAt) })
	return head(sorted, limit)
}

// FilterCases matches search against title or case number, ignoring case.
// An empty status keeps every status.
func FilterCases(cases []store.Case, search string, status store.CaseStatus) []store.Case {
	var out []store.Case
	for _, c := range cases {
		if status != "" && c.Status != status {
			continue
		}
		if contains(c.Title, search) || contains(c.CaseNumber, search) {
			out = append(out, c)
		}
	}
	return out
}

// FilterClients matches search against name or email, ignoring case.
func FilterClients(clients []store.Client, search string) []store.Client {
	var out []store.Client
	for _, c := range clients {
		if contains(c.Name, search) || contains(c.Email, search) {
			out = append(out, c)
		}
	}
	return out
}

// FilterEntries matches search against the entry's case title or its own
// description and returns the result newest first. An empty status keeps
// every status.
func FilterEntries(entries []store.TimeEntry, cases []store.Case, search string, status store.EntryStatus) []store.TimeEntry {
	titles := make(map[string]string, len(cases))
	for _, c := range cases {
		titles[c.ID] = c.Title
	}

	var out []store.TimeEntry
	for _, e := range entries {
		if status != "" && e.Status != status {
			continue
		}
		title, known := titles[e.CaseID]
		if (known && contains(title, search)) || contains(e.Description, search) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b store.TimeEntry) int { return b.Date.Compare(a.Date) })
	return out
}

func contains(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func head[T any](items []T, limit int) []T {
	if limit >= 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

// byDesc orders breakdown rows by hours, then label.
func byDesc(a, b Breakdown) int {
	if c := cmp.Compare(b.Hours, a.Hours); c != 0 {
		return c
	}
	return cmp.Compare(a.Label, b.Label)
}
