package store

import "slices"

func (s *Store) AddDocument(in DocumentInput) Document {
	s.mu.Lock()
	d := Document{
		ID: s.uniqueID(func(id string) bool {
			return indexByID(s.documents, id, documentKey) >= 0
		}),
		CaseID:     in.CaseID,
		Name:       in.Name,
		Type:       in.Type,
		Size:       in.Size,
		UploadedBy: in.UploadedBy,
		UploadedAt: s.now(),
		URL:        in.URL,
		Category:   in.Category,
	}
	s.documents = append(s.documents, d)
	s.unlockAndEmit(KindDocument, OpAdd, d.ID, true)
	return d
}

func (s *Store) GetDocument(id string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getByID(s.documents, id, documentKey, Document.clone)
}

func (s *Store) ListDocuments() []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.documents, Document.clone)
}

func (s *Store) DocumentsByCase(caseID string) []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterBy(s.documents, func(d Document) bool { return d.CaseID == caseID }, Document.clone)
}

func (s *Store) UpdateDocument(id string, p DocumentPatch) bool {
	s.mu.Lock()
	i := indexByID(s.documents, id, documentKey)
	if i >= 0 {
		d := &s.documents[i]
		setIf(&d.CaseID, p.CaseID)
		setIf(&d.Name, p.Name)
		setIf(&d.Type, p.Type)
		setIf(&d.Size, p.Size)
		setIf(&d.UploadedBy, p.UploadedBy)
		setIf(&d.URL, p.URL)
		setIf(&d.Category, p.Category)
	}
	s.unlockAndEmit(KindDocument, OpUpdate, id, i >= 0)
	return i >= 0
}

func (s *Store) DeleteDocument(id string) bool {
	s.mu.Lock()
	i := indexByID(s.documents, id, documentKey)
	if i >= 0 {
		s.documents = slices.Delete(s.documents, i, i+1)
	}
	s.unlockAndEmit(KindDocument, OpDelete, id, i >= 0)
	return i >= 0
}
