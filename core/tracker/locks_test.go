package tracker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatLocksMutualExclusion(t *testing.T) {
	locks := newChatLocks()

	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock(1)
			counter++
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 64, counter)
}

func TestChatLocksReleaseDropsEntry(t *testing.T) {
	locks := newChatLocks()

	unlock := locks.lock(5)
	locks.mu.Lock()
	assert.Len(t, locks.held, 1)
	locks.mu.Unlock()

	unlock()
	locks.mu.Lock()
	assert.Empty(t, locks.held)
	locks.mu.Unlock()
}

func TestChatLocksIndependentChats(t *testing.T) {
	locks := newChatLocks()

	unlockA := locks.lock(1)
	done := make(chan struct{})
	go func() {
		unlockB := locks.lock(2)
		unlockB()
		close(done)
	}()

	// Chat 2 must not wait on chat 1.
	<-done
	unlockA()
}
