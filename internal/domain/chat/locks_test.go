package chat

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionLocksSerializeSameSession(t *testing.T) {
	locks := newSessionLocks()

	var mu sync.Mutex
	active := 0
	maxActive := 0

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := locks.Acquire("session-a")
			defer release()

			mu.Lock()
			active++
			if active > maxActive {
				maxActive = active
			}
			mu.Unlock()

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxActive)
}

func TestSessionLocksDropEntriesWhenIdle(t *testing.T) {
	locks := newSessionLocks()

	release := locks.Acquire("session-b")
	locks.mu.Lock()
	assert.Len(t, locks.locks, 1)
	locks.mu.Unlock()

	release()
	locks.mu.Lock()
	assert.Empty(t, locks.locks)
	locks.mu.Unlock()
}

func TestSessionLocksIndependentSessions(t *testing.T) {
	locks := newSessionLocks()

	releaseA := locks.Acquire("session-a")
	defer releaseA()

	done := make(chan struct{})
	go func() {
		releaseB := locks.Acquire("session-b")
		releaseB()
		close(done)
	}()

	<-done
}
