package store

import "sync"

// Kind names the collection a change touched.
type Kind string

const (
	KindClient    Kind = "client"
	KindCase      Kind = "case"
	KindTimeEntry Kind = "time_entry"
	KindDocument  Kind = "document"
	KindTask      Kind = "task"
	KindCourtDate Kind = "court_date"
	KindNote      Kind = "note"
)

type Op string

const (
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Change is delivered to every subscriber after a mutation. Applied is false
// when an update or delete named an id that does not exist; State is the
// full working set as of the notification.
type Change struct {
	Kind    Kind
	Op      Op
	ID      string
	Applied bool
	State   Snapshot
}

type Listener func(Change)

type subscriber struct {
	id int
	fn Listener
}

type subscribers struct {
	mu     sync.RWMutex
	nextID int
	list   []subscriber
}

func newSubscribers() *subscribers {
	return &subscribers{}
}

func (s *subscribers) add(fn Listener) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.list = append(s.list, subscriber{id: s.nextID, fn: fn})
	return s.nextID
}

func (s *subscribers) remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.list {
		if sub.id == id {
			s.list = append(s.list[:i:i], s.list[i+1:]...)
			return
		}
	}
}

func (s *subscribers) empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.list) == 0
}

// publish calls listeners in registration order on the caller's goroutine.
func (s *subscribers) publish(c Change) {
	s.mu.RLock()
	list := make([]subscriber, len(s.list))
	copy(list, s.list)
	s.mu.RUnlock()

	for _, sub := range list {
		sub.fn(c)
	}
}

// Subscribe registers fn to run after every mutation, before the mutator
// returns. The returned func unregisters it and is safe to call twice.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	id := s.subs.add(fn)
	var once sync.Once
	return func() {
		once.Do(func() { s.subs.remove(id) })
	}
}
