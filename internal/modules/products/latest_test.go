package products

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingSearcher blocks the query "slow" until its context is cancelled.
type blockingSearcher struct {
	started chan string
}

func (b *blockingSearcher) SearchProducts(ctx context.Context, q string) []Product {
	b.started <- q
	if q == "slow" {
		<-ctx.Done()
		return []Product{}
	}
	return []Product{{SKU: q}}
}

func TestLatestSearchDiscardsSupersededResult(t *testing.T) {
	bs := &blockingSearcher{started: make(chan string, 2)}
	ls := NewLatestSearch(bs)

	type res struct {
		items   []Product
		current bool
	}
	first := make(chan res, 1)
	go func() {
		items, cur := ls.Do(context.Background(), "session-1", "slow")
		first <- res{items, cur}
	}()
	require.Equal(t, "slow", <-bs.started)

	items, cur := ls.Do(context.Background(), "session-1", "fast")
	<-bs.started
	assert.True(t, cur)
	assert.Equal(t, []Product{{SKU: "fast"}}, items)

	select {
	case r := <-first:
		assert.False(t, r.current)
		assert.Nil(t, r.items)
	case <-time.After(2 * time.Second):
		t.Fatal("superseded search was not cancelled")
	}
	assert.Equal(t, 0, ls.Pending())
}

func TestLatestSearchKeysAreIndependent(t *testing.T) {
	bs := &blockingSearcher{started: make(chan string, 4)}
	ls := NewLatestSearch(bs)

	_, curA := ls.Do(context.Background(), "a", "gauze")
	_, curB := ls.Do(context.Background(), "b", "gloves")
	assert.True(t, curA)
	assert.True(t, curB)
}
