package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dheirav/SaleSnipe-sub001/internal/api"
)

func TestSearchCache_Empty(t *testing.T) {
	c := NewSearchCache()
	assert.Nil(t, c.Last())
}

func TestSearchCache_LatestSearchWins(t *testing.T) {
	c := NewSearchCache()

	first := c.Begin()
	second := c.Begin()

	// The newer search responds first.
	assert.True(t, c.Put(second, "laptop", []api.Product{{ID: "p2", Title: "Laptop"}}))
	// The older search straggles in afterwards and must be dropped.
	assert.False(t, c.Put(first, "lapt", []api.Product{{ID: "p1", Title: "Lapt?"}}))

	last := c.Last()
	require.NotNil(t, last)
	assert.Equal(t, "laptop", last.Query)
	require.Len(t, last.Products, 1)
	assert.Equal(t, "p2", last.Products[0].ID)
}

func TestSearchCache_InOrderWrites(t *testing.T) {
	c := NewSearchCache()

	assert.True(t, c.Put(c.Begin(), "a", nil))
	assert.True(t, c.Put(c.Begin(), "b", []api.Product{{ID: "p1"}}))

	last := c.Last()
	require.NotNil(t, last)
	assert.Equal(t, "b", last.Query)
}

func TestSearchCache_ClearKeepsSequence(t *testing.T) {
	c := NewSearchCache()
	seqBeforeClear := c.Begin()
	require.True(t, c.Put(seqBeforeClear, "old", nil))

	inFlight := c.Begin()
	c.Clear()
	assert.Nil(t, c.Last())

	// A search begun before the clear may still land.
	assert.True(t, c.Put(inFlight, "new", []api.Product{{ID: "p3"}}))
	last := c.Last()
	require.NotNil(t, last)
	assert.Equal(t, "new", last.Query)
}

func TestSearchCache_LastReturnsCopy(t *testing.T) {
	c := NewSearchCache()
	require.True(t, c.Put(c.Begin(), "q", []api.Product{{ID: "p1"}}))

	got := c.Last()
	got.Products[0].ID = "mutated"

	again := c.Last()
	assert.Equal(t, "p1", again.Products[0].ID)
}

func TestSearchCache_ConcurrentPuts(t *testing.T) {
	c := NewSearchCache()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		seq := c.Begin()
		wg.Add(1)
		go func(seq uint64) {
			defer wg.Done()
			c.Put(seq, "q", nil)
		}(seq)
	}
	wg.Wait()

	require.NotNil(t, c.Last())
}
