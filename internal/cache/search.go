// Package cache keeps the most recent search results for the lifetime of a
// client session, so views can re-render without refetching.
package cache

import (
	"sync"

	"github.com/Dheirav/SaleSnipe-sub001/internal/api"
)

// SearchResult is a completed search snapshot.
type SearchResult struct {
	Query    string
	Products []api.Product
}

// SearchCache stores the last completed search. Concurrent searches may
// complete out of order; each search takes a sequence number at start via
// Begin, and Put ignores any write older than the latest one stored. The
// newest search always wins, regardless of which response arrived last.
type SearchCache struct {
	mu      sync.Mutex
	nextSeq uint64
	lastSeq uint64
	result  *SearchResult
}

func NewSearchCache() *SearchCache {
	return &SearchCache{}
}

// Begin issues the sequence number for a search that is about to start.
func (c *SearchCache) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSeq++
	return c.nextSeq
}

// Put stores the result for the search identified by seq. It reports whether
// the write was accepted; a write for a superseded search is dropped.
func (c *SearchCache) Put(seq uint64, query string, products []api.Product) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq <= c.lastSeq {
		return false
	}
	c.lastSeq = seq
	c.result = &SearchResult{Query: query, Products: products}
	return true
}

// Last returns the most recent accepted search, or nil when none completed
// yet (or the cache was cleared).
func (c *SearchCache) Last() *SearchResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil {
		return nil
	}
	out := *c.result
	out.Products = append([]api.Product(nil), c.result.Products...)
	return &out
}

// Clear drops the stored result. Sequence numbers keep increasing so that
// in-flight searches begun before the clear can still land.
func (c *SearchCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result = nil
}
