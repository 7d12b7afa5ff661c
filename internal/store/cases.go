package store

import (
	"slices"
	"time"
)

func (s *Store) AddCase(in CaseInput) Case {
	s.mu.Lock()
	now := s.now()
	c := Case{
		ID: s.uniqueID(func(id string) bool {
			return indexByID(s.cases, id, caseKey) >= 0
		}),
		ClientID:       in.ClientID,
		Title:          in.Title,
		CaseNumber:     in.CaseNumber,
		Status:         in.Status,
		Priority:       in.Priority,
		PracticeArea:   in.PracticeArea,
		Description:    in.Description,
		AssignedTo:     slices.Clone(in.AssignedTo),
		CreatedAt:      now,
		UpdatedAt:      now,
		CourtDate:      clonePtr(in.CourtDate),
		EstimatedValue: clonePtr(in.EstimatedValue),
	}
	s.cases = append(s.cases, c)
	out := c.clone()
	s.unlockAndEmit(KindCase, OpAdd, c.ID, true)
	return out
}

func (s *Store) GetCase(id string) (Case, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getByID(s.cases, id, caseKey, Case.clone)
}

func (s *Store) ListCases() []Case {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.cases, Case.clone)
}

// CasesByClient returns the client's cases in insertion order.
func (s *Store) CasesByClient(clientID string) []Case {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterBy(s.cases, func(c Case) bool { return c.ClientID == clientID }, Case.clone)
}

// UpdateCase merges p into the case and moves UpdatedAt forward.
func (s *Store) UpdateCase(id string, p CasePatch) bool {
	s.mu.Lock()
	i := indexByID(s.cases, id, caseKey)
	if i >= 0 {
		c := &s.cases[i]
		setIf(&c.ClientID, p.ClientID)
		setIf(&c.Title, p.Title)
		setIf(&c.CaseNumber, p.CaseNumber)
		setIf(&c.Status, p.Status)
		setIf(&c.Priority, p.Priority)
		setIf(&c.PracticeArea, p.PracticeArea)
		setIf(&c.Description, p.Description)
		if p.AssignedTo != nil {
			c.AssignedTo = slices.Clone(p.AssignedTo)
		}
		setOptional(&c.CourtDate, p.CourtDate)
		setOptional(&c.EstimatedValue, p.EstimatedValue)
		c.UpdatedAt = s.after(c.UpdatedAt)
	}
	s.unlockAndEmit(KindCase, OpUpdate, id, i >= 0)
	return i >= 0
}

// DeleteCase removes the case only. Time entries, documents, tasks, court
// dates and notes pointing at it stay in place.
func (s *Store) DeleteCase(id string) bool {
	s.mu.Lock()
	i := indexByID(s.cases, id, caseKey)
	if i >= 0 {
		s.cases = slices.Delete(s.cases, i, i+1)
	}
	s.unlockAndEmit(KindCase, OpDelete, id, i >= 0)
	return i >= 0
}

// after returns the current time, bumped past prev when the clock has not
// advanced since.
func (s *Store) after(prev time.Time) time.Time {
	now := s.now()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}
