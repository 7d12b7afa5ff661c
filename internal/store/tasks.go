package store

import "slices"

func (s *Store) AddTask(in TaskInput) Task {
	s.mu.Lock()
	t := Task{
		ID: s.uniqueID(func(id string) bool {
			return indexByID(s.tasks, id, taskKey) >= 0
		}),
		CaseID:      in.CaseID,
		Title:       in.Title,
		Description: in.Description,
		AssignedTo:  in.AssignedTo,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     clonePtr(in.DueDate),
		CreatedAt:   s.now(),
	}
	s.tasks = append(s.tasks, t)
	out := t.clone()
	s.unlockAndEmit(KindTask, OpAdd, t.ID, true)
	return out
}

func (s *Store) GetTask(id string) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getByID(s.tasks, id, taskKey, Task.clone)
}

func (s *Store) ListTasks() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.tasks, Task.clone)
}

func (s *Store) TasksByCase(caseID string) []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterBy(s.tasks, func(t Task) bool { return t.CaseID == caseID }, Task.clone)
}

func (s *Store) UpdateTask(id string, p TaskPatch) bool {
	s.mu.Lock()
	i := indexByID(s.tasks, id, taskKey)
	if i >= 0 {
		t := &s.tasks[i]
		setIf(&t.CaseID, p.CaseID)
		setIf(&t.Title, p.Title)
		setIf(&t.Description, p.Description)
		setIf(&t.AssignedTo, p.AssignedTo)
		setIf(&t.Status, p.Status)
		setIf(&t.Priority, p.Priority)
		setOptional(&t.DueDate, p.DueDate)
	}
	s.unlockAndEmit(KindTask, OpUpdate, id, i >= 0)
	return i >= 0
}

func (s *Store) DeleteTask(id string) bool {
	s.mu.Lock()
	i := indexByID(s.tasks, id, taskKey)
	if i >= 0 {
		s.tasks = slices.Delete(s.tasks, i, i+1)
	}
	s.unlockAndEmit(KindTask, OpDelete, id, i >= 0)
	return i >= 0
}
