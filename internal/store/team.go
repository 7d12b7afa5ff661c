package store

// The team roster is fixed for the session; members are only loaded by Seed.

func (s *Store) ListTeamMembers() []TeamMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.teamMembers, TeamMember.clone)
}

func (s *Store) GetTeamMember(id string) (TeamMember, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getByID(s.teamMembers, id, memberKey, TeamMember.clone)
}

func (s *Store) addTeamMember(m TeamMember) TeamMember {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = s.uniqueID(func(id string) bool {
		return indexByID(s.teamMembers, id, memberKey) >= 0
	})
	m.HourlyRate = clonePtr(m.HourlyRate)
	s.teamMembers = append(s.teamMembers, m)
	return m.clone()
}
