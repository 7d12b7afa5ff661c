package report

import (
	"slices"

	"github.com/sadopc/casedesk/internal/store"
)

// EntryTotals are the running figures shown above the time entry list.
type EntryTotals struct {
	Hours         float64
	BillableHours float64
	Revenue       float64
}

// BillableShare is billable hours as a percentage of all hours.
func (t EntryTotals) BillableShare() float64 {
	if t.Hours == 0 {
		return 0
	}
	return t.BillableHours / t.Hours * 100
}

func Totals(entries []store.TimeEntry) EntryTotals {
	return EntryTotals{
		Hours:         TotalHours(entries),
		BillableHours: BillableHours(entries, EntryFilter{}),
		Revenue:       Revenue(entries, EntryFilter{}),
	}
}

type CaseSummary struct {
	BillableHours float64
	Revenue       float64
	TasksDone     int
	TasksTotal    int
	Completion    float64
}

// SummarizeCase expects the case's own entries and tasks.
func SummarizeCase(entries []store.TimeEntry, tasks []store.Task) CaseSummary {
	done, total, ratio := TaskCompletion(tasks)
	return CaseSummary{
		BillableHours: BillableHours(entries, EntryFilter{}),
		Revenue:       Revenue(entries, EntryFilter{}),
		TasksDone:     done,
		TasksTotal:    total,
		Completion:    ratio,
	}
}

type ClientSummary struct {
	TotalCases    int
	ActiveCases   int
	BillableHours float64
	Revenue       float64
}

// SummarizeClient totals a client's cases and the entries booked against
// them. entries may hold every entry in the store; only those on one of
// cases are counted.
func SummarizeClient(cases []store.Case, entries []store.TimeEntry) ClientSummary {
	ids := make(map[string]bool, len(cases))
	for _, c := range cases {
		ids[c.ID] = true
	}
	var own []store.TimeEntry
	for _, e := range entries {
		if ids[e.CaseID] {
			own = append(own, e)
		}
	}
	return ClientSummary{
		TotalCases:    len(cases),
		ActiveCases:   len(ActiveCases(cases)),
		BillableHours: BillableHours(own, EntryFilter{}),
		Revenue:       Revenue(own, EntryFilter{}),
	}
}

type DashboardStats struct {
	ActiveCases   int
	TotalCases    int
	TotalClients  int
	BillableHours float64
	Revenue       float64
}

// Dashboard reports booked figures: hours and revenue count approved
// billable entries only.
func Dashboard(snap store.Snapshot) DashboardStats {
	return DashboardStats{
		ActiveCases:   len(ActiveCases(snap.Cases)),
		TotalCases:    len(snap.Cases),
		TotalClients:  len(snap.Clients),
		BillableHours: BillableHours(snap.TimeEntries, ApprovedOnly()),
		Revenue:       Revenue(snap.TimeEntries, ApprovedOnly()),
	}
}

// Breakdown is one bar of the reports chart.
type Breakdown struct {
	ID      string
	Label   string
	Hours   float64
	Revenue float64
}

// Unknown labels rows whose case or member no longer exists.
const Unknown = "Unknown"

// HoursByCase groups billable hours and revenue by case, largest first.
func HoursByCase(entries []store.TimeEntry, cases []store.Case) []Breakdown {
	labels := make(map[string]string, len(cases))
	for _, c := range cases {
		labels[c.ID] = c.Title
	}
	return group(entries, func(e store.TimeEntry) string { return e.CaseID }, labels)
}

// HoursByMember groups billable hours and revenue by team member, largest
// first.
func HoursByMember(entries []store.TimeEntry, members []store.TeamMember) []Breakdown {
	labels := make(map[string]string, len(members))
	for _, m := range members {
		labels[m.ID] = m.Name
	}
	return group(entries, func(e store.TimeEntry) string { return e.UserID }, labels)
}

func group(entries []store.TimeEntry, key func(store.TimeEntry) string, labels map[string]string) []Breakdown {
	idx := map[string]int{}
	var rows []Breakdown
	for _, e := range entries {
		if !e.Billable {
			continue
		}
		k := key(e)
		i, ok := idx[k]
		if !ok {
			label, known := labels[k]
			if !known {
				label = Unknown
			}
			i = len(rows)
			idx[k] = i
			rows = append(rows, Breakdown{ID: k, Label: label})
		}
		rows[i].Hours += e.Hours
		rows[i].Revenue += Amount(e)
	}
	slices.SortStableFunc(rows, byDesc)
	return rows
}
