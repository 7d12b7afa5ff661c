package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/casedesk/internal/store"
)

type jsonExport struct {
	ExportedAt string     `json:"exported_at"`
	Counts     jsonCounts `json:"counts"`
	store.Snapshot
}

type jsonCounts struct {
	Clients     int `json:"clients"`
	Cases       int `json:"cases"`
	TimeEntries int `json:"time_entries"`
	Documents   int `json:"documents"`
	Tasks       int `json:"tasks"`
	CourtDates  int `json:"court_dates"`
	TeamMembers int `json:"team_members"`
	Notes       int `json:"notes"`
}

// ToJSON writes the whole working set with a header of per-collection
// counts.
func ToJSON(snap store.Snapshot, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Counts: jsonCounts{
			Clients:     len(snap.Clients),
			Cases:       len(snap.Cases),
			TimeEntries: len(snap.TimeEntries),
			Documents:   len(snap.Documents),
			Tasks:       len(snap.Tasks),
			CourtDates:  len(snap.CourtDates),
			TeamMembers: len(snap.TeamMembers),
			Notes:       len(snap.Notes),
		},
		Snapshot: snap,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
