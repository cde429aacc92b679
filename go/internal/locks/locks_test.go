package locks

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockSerializesSameKey(t *testing.T) {
	m := NewManager()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := m.Lock(OwnerKey("1"))
			defer unlock()

			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Equal(t, 0, m.Size(), "entries are released once unused")
}

func TestLockOppositeOrderDoesNotDeadlock(t *testing.T) {
	m := NewManager()

	done := make(chan struct{})
	go func() {
		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				unlock := m.Lock(OwnerKey("a"), OwnerKey("b"))
				unlock()
			}()
			go func() {
				defer wg.Done()
				unlock := m.Lock(OwnerKey("b"), OwnerKey("a"))
				unlock()
			}()
		}
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("lock acquisition deadlocked")
	}
}

func TestLockDuplicateKeys(t *testing.T) {
	m := NewManager()

	unlock := m.Lock(PlayerKey("ZIM"), PlayerKey("ZIM"), OwnerKey("1"))
	require.Equal(t, 2, m.Size())
	unlock()
	unlock() // second call is a no-op
	assert.Equal(t, 0, m.Size())
}

func TestDedupeSorts(t *testing.T) {
	assert.Equal(t, []string{"owner:1", "owner:2", "player:ZIM"},
		dedupe([]string{"player:ZIM", "owner:2", "owner:1", "owner:2"}))
}
