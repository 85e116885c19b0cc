package chat

import "sync"

// sessionLocks serializes engine turns per session. Concurrent requests for
// one session (double-clicks, retried calls) would otherwise both read the
// same conversation state and race to write it back; holding the session's
// lock for the whole read-transition-write sequence closes that gap.
// Different sessions never contend.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

// Acquire blocks until the session's lock is held and returns the release
// function. Entries are dropped once the last holder releases.
func (s *sessionLocks) Acquire(sessionID string) func() {
	s.mu.Lock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sessionLock{}
		s.locks[sessionID] = lock
	}
	lock.refs++
	s.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		s.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(s.locks, sessionID)
		}
		s.mu.Unlock()
	}
}
