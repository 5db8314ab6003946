package sequence

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextIsOneBasedAndMonotonic(t *testing.T) {
	s := New()
	assert.Equal(t, uint64(0), s.Current())
	assert.Equal(t, uint64(1), s.Next())
	assert.Equal(t, uint64(2), s.Next())
	assert.Equal(t, uint64(2), s.Current())
}

func TestConcurrentNextNeverRepeats(t *testing.T) {
	s := New()
	const n = 100

	ids := make([]uint64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = s.Next()
		}(i)
	}
	wg.Wait()

	seen := make(map[uint64]bool, n)
	for _, id := range ids {
		assert.False(t, seen[id], "id %d issued twice", id)
		seen[id] = true
	}
	assert.Equal(t, uint64(n), s.Current())
}
