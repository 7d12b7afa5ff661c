package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sadopc/casedesk/internal/report"
	"github.com/sadopc/casedesk/internal/store"
)

// ToCSV writes one timesheet row per entry. Entries whose case or member is
// gone are labelled Unknown.
func ToCSV(entries []store.TimeEntry, cases map[string]store.Case, members map[string]store.TeamMember, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "Case Number", "Case", "Member", "Description", "Hours", "Billable", "Rate", "Amount", "Status"}); err != nil {
		return err
	}

	for _, e := range entries {
		caseNumber, caseTitle := "", report.Unknown
		if c, ok := cases[e.CaseID]; ok {
			caseNumber, caseTitle = c.CaseNumber, c.Title
		}
		member := report.Unknown
		if m, ok := members[e.UserID]; ok {
			member = m.Name
		}
		rate := ""
		if e.HourlyRate != nil {
			rate = money(*e.HourlyRate)
		}

		row := []string{
			e.Date.Format("2006-01-02"),
			caseNumber,
			caseTitle,
			member,
			e.Description,
			strconv.FormatFloat(e.Hours, 'f', -1, 64),
			strconv.FormatBool(e.Billable),
			rate,
			money(report.Amount(e)),
			string(e.Status),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
