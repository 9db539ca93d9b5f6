package products

import (
	"context"
	"sync"
)

// Searcher is the search half of Service.
type Searcher interface {
	SearchProducts(ctx context.Context, query string) []Product
}

// LatestSearch runs at most one live search per key. Starting a new search
// cancels the previous one for the same key, and only the newest search
// reports its result as current.
type LatestSearch struct {
	searcher Searcher

	mu       sync.Mutex
	seq      uint64
	inflight map[string]searchSlot
}

type searchSlot struct {
	gen    uint64
	cancel context.CancelFunc
}

func NewLatestSearch(s Searcher) *LatestSearch {
	return &LatestSearch{searcher: s, inflight: make(map[string]searchSlot)}
}

// Do searches on behalf of key. current is false when a newer search for the
// same key started before this one finished; its result must be discarded.
func (l *LatestSearch) Do(ctx context.Context, key, query string) (results []Product, current bool) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.mu.Lock()
	l.seq++
	gen := l.seq
	if prev, ok := l.inflight[key]; ok {
		prev.cancel()
	}
	l.inflight[key] = searchSlot{gen: gen, cancel: cancel}
	l.mu.Unlock()

	results = l.searcher.SearchProducts(ctx, query)

	l.mu.Lock()
	defer l.mu.Unlock()
	slot, ok := l.inflight[key]
	if !ok || slot.gen != gen {
		return nil, false
	}
	delete(l.inflight, key)
	return results, true
}

// Pending reports the number of keys with a search in flight.
func (l *LatestSearch) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.inflight)
}
