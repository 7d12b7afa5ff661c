package store

import "slices"

// AddCourtDate schedules a hearing. New court dates always start with no
// reminder sent.
func (s *Store) AddCourtDate(in CourtDateInput) CourtDate {
	s.mu.Lock()
	cd := CourtDate{
		ID: s.uniqueID(func(id string) bool {
			return indexByID(s.courtDates, id, courtDateKey) >= 0
		}),
		CaseID:   in.CaseID,
		Title:    in.Title,
		Date:     in.Date,
		Location: in.Location,
		Judge:    clonePtr(in.Judge),
		Notes:    clonePtr(in.Notes),
	}
	s.courtDates = append(s.courtDates, cd)
	out := cd.clone()
	s.unlockAndEmit(KindCourtDate, OpAdd, cd.ID, true)
	return out
}

func (s *Store) GetCourtDate(id string) (CourtDate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getByID(s.courtDates, id, courtDateKey, CourtDate.clone)
}

func (s *Store) ListCourtDates() []CourtDate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.courtDates, CourtDate.clone)
}

func (s *Store) CourtDatesByCase(caseID string) []CourtDate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterBy(s.courtDates, func(cd CourtDate) bool { return cd.CaseID == caseID }, CourtDate.clone)
}

func (s *Store) UpdateCourtDate(id string, p CourtDatePatch) bool {
	s.mu.Lock()
	i := indexByID(s.courtDates, id, courtDateKey)
	if i >= 0 {
		cd := &s.courtDates[i]
		setIf(&cd.CaseID, p.CaseID)
		setIf(&cd.Title, p.Title)
		setIf(&cd.Date, p.Date)
		setIf(&cd.Location, p.Location)
		setOptional(&cd.Judge, p.Judge)
		setOptional(&cd.Notes, p.Notes)
		setIf(&cd.ReminderSent, p.ReminderSent)
	}
	s.unlockAndEmit(KindCourtDate, OpUpdate, id, i >= 0)
	return i >= 0
}

func (s *Store) DeleteCourtDate(id string) bool {
	s.mu.Lock()
	i := indexByID(s.courtDates, id, courtDateKey)
	if i >= 0 {
		s.courtDates = slices.Delete(s.courtDates, i, i+1)
	}
	s.unlockAndEmit(KindCourtDate, OpDelete, id, i >= 0)
	return i >= 0
}
