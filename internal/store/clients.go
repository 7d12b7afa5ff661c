package store

import "slices"

func (s *Store) AddClient(in ClientInput) Client {
	s.mu.Lock()
	c := Client{
		ID: s.uniqueID(func(id string) bool {
			return indexByID(s.clients, id, clientKey) >= 0
		}),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Company:   clonePtr(in.Company),
		Address:   clonePtr(in.Address),
		CreatedAt: s.now(),
	}
	s.clients = append(s.clients, c)
	out := c.clone()
	s.unlockAndEmit(KindClient, OpAdd, c.ID, true)
	return out
}

func (s *Store) GetClient(id string) (Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getByID(s.clients, id, clientKey, Client.clone)
}

func (s *Store) ListClients() []Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.clients, Client.clone)
}

// UpdateClient merges the non-nil fields of p into the client. It reports
// whether a client with that id existed.
func (s *Store) UpdateClient(id string, p ClientPatch) bool {
	s.mu.Lock()
	i := indexByID(s.clients, id, clientKey)
	if i >= 0 {
		c := &s.clients[i]
		setIf(&c.Name, p.Name)
		setIf(&c.Email, p.Email)
		setIf(&c.Phone, p.Phone)
		setOptional(&c.Company, p.Company)
		setOptional(&c.Address, p.Address)
	}
	s.unlockAndEmit(KindClient, OpUpdate, id, i >= 0)
	return i >= 0
}

// DeleteClient removes the client. Cases that reference it are kept.
func (s *Store) DeleteClient(id string) bool {
	s.mu.Lock()
	i := indexByID(s.clients, id, clientKey)
	if i >= 0 {
		s.clients = slices.Delete(s.clients, i, i+1)
	}
	s.unlockAndEmit(KindClient, OpDelete, id, i >= 0)
	return i >= 0
}
