package store

import "time"

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// Seed loads the example roster and matter history the application starts
// with: three team members, two clients with one case each, and the first
// case's time entries, tasks and hearing. Records keep their historical
// timestamps. Seed expects an empty store and does not notify subscribers;
// call it before subscribing.
func Seed(s *Store) {
	sarah := s.addTeamMember(TeamMember{
		Name: "Sarah Johnson", Email: "sarah.johnson@lawfirm.com",
		Role: RoleAttorney, HourlyRate: Ptr(350.0),
	})
	michael := s.addTeamMember(TeamMember{
		Name: "Michael Chen", Email: "michael.chen@lawfirm.com",
		Role: RoleParalegal, HourlyRate: Ptr(200.0),
	})
	s.addTeamMember(TeamMember{
		Name: "Emily Davis", Email: "emily.davis@lawfirm.com",
		Role: RoleAttorney, HourlyRate: Ptr(400.0),
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	acme := Client{
		ID:        s.newID(),
		Name:      "Acme Corporation",
		Email:     "legal@acme.com",
		Phone:     "+1 (555) 123-4567",
		Company:   Ptr("Acme Corporation"),
		Address:   Ptr("123 Business St, New York, NY 10001"),
		CreatedAt: day(2024, time.January, 15),
	}
	jane := Client{
		ID:        s.newID(),
		Name:      "Jane Smith",
		Email:     "jane.smith@email.com",
		Phone:     "+1 (555) 987-6543",
		Address:   Ptr("456 Residential Ave, Los Angeles, CA 90001"),
		CreatedAt: day(2024, time.February, 20),
	}
	s.clients = append(s.clients, acme, jane)

	contract := Case{
		ID:             s.newID(),
		ClientID:       acme.ID,
		Title:          "Contract Dispute - Vendor Agreement",
		CaseNumber:     "CASE-2024-001",
		Status:         CaseInProgress,
		Priority:       CasePriorityHigh,
		PracticeArea:   "Contract Law",
		Description:    "Dispute over vendor agreement terms and payment schedule",
		AssignedTo:     []string{sarah.ID, michael.ID},
		CreatedAt:      day(2024, time.January, 20),
		UpdatedAt:      day(2024, time.March, 10),
		CourtDate:      Ptr(day(2024, time.April, 15)),
		EstimatedValue: Ptr(250000.0),
	}
	injury := Case{
		ID:             s.newID(),
		ClientID:       jane.ID,
		Title:          "Personal Injury Claim",
		CaseNumber:     "CASE-2024-002",
		Status:         CaseOpen,
		Priority:       CasePriorityMedium,
		PracticeArea:   "Personal Injury",
		Description:    "Slip and fall accident at commercial property",
		AssignedTo:     []string{sarah.ID},
		CreatedAt:      day(2024, time.February, 25),
		UpdatedAt:      day(2024, time.March, 5),
		EstimatedValue: Ptr(75000.0),
	}
	s.cases = append(s.cases, contract, injury)

	s.timeEntries = append(s.timeEntries,
		TimeEntry{
			ID:          s.newID(),
			CaseID:      contract.ID,
			UserID:      sarah.ID,
			Description: "Initial client consultation and case review",
			Hours:       2.5,
			Date:        day(2024, time.March, 1),
			Billable:    true,
			HourlyRate:  Ptr(350.0),
			Status:      EntryApproved,
		},
		TimeEntry{
			ID:          s.newID(),
			CaseID:      contract.ID,
			UserID:      michael.ID,
			Description: "Legal research on contract law precedents",
			Hours:       4,
			Date:        day(2024, time.March, 3),
			Billable:    true,
			HourlyRate:  Ptr(200.0),
			Status:      EntryApproved,
		},
	)

	s.tasks = append(s.tasks,
		Task{
			ID:          s.newID(),
			CaseID:      contract.ID,
			Title:       "Review vendor contract documents",
			Description: "Analyze all contract documents and identify breach points",
			AssignedTo:  michael.ID,
			Status:      TaskCompleted,
			Priority:    TaskPriorityHigh,
			DueDate:     Ptr(day(2024, time.March, 5)),
			CreatedAt:   day(2024, time.March, 1),
		},
		Task{
			ID:          s.newID(),
			CaseID:      contract.ID,
			Title:       "Prepare motion for discovery",
			Description: "Draft motion to compel discovery of financial records",
			AssignedTo:  sarah.ID,
			Status:      TaskInProgress,
			Priority:    TaskPriorityHigh,
			DueDate:     Ptr(day(2024, time.March, 20)),
			CreatedAt:   day(2024, time.March, 10),
		},
	)

	s.courtDates = append(s.courtDates, CourtDate{
		ID:       s.newID(),
		CaseID:   contract.ID,
		Title:    "Preliminary Hearing",
		Date:     day(2024, time.April, 15),
		Location: "Superior Court, Room 304",
		Judge:    Ptr("Hon. Michael Rodriguez"),
		Notes:    Ptr("Bring all contract documentation"),
	})

	s.logger.Info("seeded store",
		"clients", len(s.clients),
		"cases", len(s.cases),
		"time_entries", len(s.timeEntries),
		"tasks", len(s.tasks),
		"court_dates", len(s.courtDates),
		"team_members", len(s.teamMembers),
	)
}
