package store

import "slices"

func (s *Store) AddNote(in NoteInput) Note {
	s.mu.Lock()
	n := Note{
		ID: s.uniqueID(func(id string) bool {
			return indexByID(s.notes, id, noteKey) >= 0
		}),
		CaseID:    in.CaseID,
		Content:   in.Content,
		CreatedBy: in.CreatedBy,
		CreatedAt: s.now(),
	}
	s.notes = append(s.notes, n)
	s.unlockAndEmit(KindNote, OpAdd, n.ID, true)
	return n
}

func (s *Store) GetNote(id string) (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getByID(s.notes, id, noteKey, Note.clone)
}

func (s *Store) ListNotes() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.notes, Note.clone)
}

func (s *Store) NotesByCase(caseID string) []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterBy(s.notes, func(n Note) bool { return n.CaseID == caseID }, Note.clone)
}

func (s *Store) UpdateNote(id string, p NotePatch) bool {
	s.mu.Lock()
	i := indexByID(s.notes, id, noteKey)
	if i >= 0 {
		n := &s.notes[i]
		setIf(&n.CaseID, p.CaseID)
		setIf(&n.Content, p.Content)
		setIf(&n.CreatedBy, p.CreatedBy)
	}
	s.unlockAndEmit(KindNote, OpUpdate, id, i >= 0)
	return i >= 0
}

func (s *Store) DeleteNote(id string) bool {
	s.mu.Lock()
	i := indexByID(s.notes, id, noteKey)
	if i >= 0 {
		s.notes = slices.Delete(s.notes, i, i+1)
	}
	s.unlockAndEmit(KindNote, OpDelete, id, i >= 0)
	return i >= 0
}
