package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSynced_RejectsNonPositiveCapacity(t *testing.T) {
	s, err := NewSynced(Config[string, int]{Capacity: 0})
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestSynced_Operations(t *testing.T) {
	s, err := NewSynced(Config[string, int]{Capacity: 2})
	require.NoError(t, err)

	s.Set("a", 1)
	s.Set("b", 2)
	v, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	evicted, ok := s.Set("c", 3)
	require.True(t, ok)
	assert.Equal(t, "b", evicted.Key)

	assert.Equal(t, []string{"a", "c"}, s.Keys())
	assert.Equal(t, []Entry[string, int]{{"a", 1}, {"c", 3}}, s.Entries())
	assert.True(t, s.Contains("c"))

	_, err = s.Fetch("b")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Remove("b"), ErrNotFound)
	require.NoError(t, s.Remove("a"))

	v, ok = s.Peek("c")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 2, s.Cap())
	assert.Equal(t, "lru{capacity=2 size=1 hits=1 misses=1}", s.String())

	s.Purge()
	assert.Equal(t, 0, s.Len())
}

func TestSynced_ConcurrentAccess(t *testing.T) {
	s, err := NewSynced(Config[int, int]{Capacity: 100})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Set(i, i*10)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		wg.Add(4)
		go func(i int) {
			defer wg.Done()
			s.Set(i+100, i)
		}(i)
		go func(i int) {
			defer wg.Done()
			s.Get(i)
		}(i)
		go func(i int) {
			defer wg.Done()
			_ = s.Remove(i + 50)
		}(i)
		go func() {
			defer wg.Done()
			_ = s.Keys()
			_ = s.Stats()
		}()
	}
	wg.Wait()

	require.LessOrEqual(t, s.Len(), 100)
	st := s.Stats()
	assert.Equal(t, uint64(50), st.Hits+st.Misses)
	assert.Len(t, s.Keys(), s.Len())
}
