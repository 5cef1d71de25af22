// SPDX-License-Identifier: EPL-2.0

package bridge

import "sync"

// Handle is an opaque token for a Session. The zero Handle never refers to
// a session and is what callers get back on failure.
type Handle uint64

// Table maps handles to sessions, so foreign callers never hold Go
// pointers. The zero value is ready to use.
type Table struct {
	mu       sync.Mutex
	last     Handle
	sessions map[Handle]*Session
}

// Put stores s and returns its handle. A nil session gets the zero Handle.
func (t *Table) Put(s *Session) Handle {
	if s == nil {
		return 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.sessions == nil {
		t.sessions = make(map[Handle]*Session)
	}

	t.last++
	t.sessions[t.last] = s

	return t.last
}

// Get returns the session behind h. Unknown and zero handles are rejected.
func (t *Table) Get(h Handle) (*Session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sessions[h]

	return s, ok
}

// Delete removes h and returns its session, or nil when h is unknown. The
// session is not closed.
func (t *Table) Delete(h Handle) *Session {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sessions[h]
	if !ok {
		return nil
	}

	delete(t.sessions, h)

	return s
}

// Len is the number of live handles.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.sessions)
}
