package store

import "slices"

func (s *Store) AddTimeEntry(in TimeEntryInput) TimeEntry {
	s.mu.Lock()
	e := TimeEntry{
		ID: s.uniqueID(func(id string) bool {
			return indexByID(s.timeEntries, id, entryKey) >= 0
		}),
		CaseID:      in.CaseID,
		UserID:      in.UserID,
		Description: in.Description,
		Hours:       in.Hours,
		Date:        in.Date,
		Billable:    in.Billable,
		HourlyRate:  clonePtr(in.HourlyRate),
		Status:      in.Status,
	}
	s.timeEntries = append(s.timeEntries, e)
	out := e.clone()
	s.unlockAndEmit(KindTimeEntry, OpAdd, e.ID, true)
	return out
}

func (s *Store) GetTimeEntry(id string) (TimeEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getByID(s.timeEntries, id, entryKey, TimeEntry.clone)
}

func (s *Store) ListTimeEntries() []TimeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.timeEntries, TimeEntry.clone)
}

func (s *Store) TimeEntriesByCase(caseID string) []TimeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterBy(s.timeEntries, func(e TimeEntry) bool { return e.CaseID == caseID }, TimeEntry.clone)
}

func (s *Store) UpdateTimeEntry(id string, p TimeEntryPatch) bool {
	s.mu.Lock()
	i := indexByID(s.timeEntries, id, entryKey)
	if i >= 0 {
		e := &s.timeEntries[i]
		setIf(&e.CaseID, p.CaseID)
		setIf(&e.UserID, p.UserID)
		setIf(&e.Description, p.Description)
		setIf(&e.Hours, p.Hours)
		setIf(&e.Date, p.Date)
		setIf(&e.Billable, p.Billable)
		setOptional(&e.HourlyRate, p.HourlyRate)
		setIf(&e.Status, p.Status)
	}
	s.unlockAndEmit(KindTimeEntry, OpUpdate, id, i >= 0)
	return i >= 0
}

func (s *Store) DeleteTimeEntry(id string) bool {
	s.mu.Lock()
	i := indexByID(s.timeEntries, id, entryKey)
	if i >= 0 {
		s.timeEntries = slices.Delete(s.timeEntries, i, i+1)
	}
	s.unlockAndEmit(KindTimeEntry, OpDelete, id, i >= 0)
	return i >= 0
}
