package net

import "sync"

// SessionStore is the shared client table. The accept goroutine adds, the
// tick goroutine reads and removes; the mutex covers only map access, never
// socket I/O (sends are buffered, not blocking writes).
type SessionStore struct {
	mu       sync.Mutex
	sessions map[uint64]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[uint64]*Session, 64),
	}
}

func (st *SessionStore) Add(s *Session) {
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
}

func (st *SessionStore) Remove(id uint64) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

func (st *SessionStore) Get(id uint64) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sessions[id]
}

func (st *SessionStore) Count() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// ForEach calls fn for every session. The snapshot is taken under the lock;
// fn runs outside it.
func (st *SessionStore) ForEach(fn func(*Session)) {
	st.mu.Lock()
	snapshot := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		snapshot = append(snapshot, s)
	}
	st.mu.Unlock()
	for _, s := range snapshot {
		fn(s)
	}
}
