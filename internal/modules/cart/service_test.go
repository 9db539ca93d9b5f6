package cart

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medisupply.com/portal/internal/modules/products"
)

func product(sku, warehouse string, price string, stock int) products.Product {
	return products.Product{SKU: sku, Name: "P-" + sku, Warehouse: warehouse, UnitValue: decimal.RequireFromString(price), Stock: stock}
}

func TestAddMergesSameLine(t *testing.T) {
	ctx := context.Background()
	s := NewService(NewMemoryStore(time.Hour), nil)
	p := product("a", "w1", "3.10", 10)

	require.NoError(t, s.Add(ctx, "sess", p, 2))
	require.NoError(t, s.Add(ctx, "sess", p, 3))

	items := s.Items(ctx, "sess")
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, "15.5", items[0].Subtotal.String())
}

func TestAddSeparatesWarehouses(t *testing.T) {
	ctx := context.Background()
	s := NewService(NewMemoryStore(time.Hour), nil)

	require.NoError(t, s.Add(ctx, "sess", product("a", "w1", "1", 5), 1))
	require.NoError(t, s.Add(ctx, "sess", product("a", "w2", "1", 5), 1))
	assert.Len(t, s.Items(ctx, "sess"), 2)
	assert.Equal(t, 2, s.ItemCount(ctx, "sess"))
}

func TestAddRejectsInvalidQuantities(t *testing.T) {
	ctx := context.Background()
	s := NewService(NewMemoryStore(time.Hour), nil)
	p := product("a", "w1", "2", 4)

	assert.ErrorIs(t, s.Add(ctx, "sess", p, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, s.Add(ctx, "sess", p, -1), ErrInvalidQuantity)

	var se *StockError
	err := s.Add(ctx, "sess", p, 5)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 4, se.Stock)
	assert.Equal(t, 0, se.InCart)

	require.NoError(t, s.Add(ctx, "sess", p, 3))
	err = s.Add(ctx, "sess", p, 2)
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 1, se.Remaining())
	assert.Equal(t, 3, s.ItemCount(ctx, "sess"))
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	s := NewService(NewMemoryStore(time.Hour), nil)
	require.NoError(t, s.Add(ctx, "sess", product("a", "w1", "2.50", 10), 1))

	removed, err := s.UpdateQuantity(ctx, "sess", "a", "w1", 4)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, "10", s.Total(ctx, "sess").String())

	_, err = s.UpdateQuantity(ctx, "sess", "a", "w1", 11)
	var se *StockError
	assert.True(t, errors.As(err, &se))

	_, err = s.UpdateQuantity(ctx, "sess", "zzz", "w1", 1)
	assert.ErrorIs(t, err, ErrNotInCart)

	removed, err = s.UpdateQuantity(ctx, "sess", "a", "w1", 0)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, s.Items(ctx, "sess"))
}

func TestRemoveClearAndTotals(t *testing.T) {
	ctx := context.Background()
	s := NewService(NewMemoryStore(time.Hour), nil)
	require.NoError(t, s.Add(ctx, "sess", product("a", "w1", "1.10", 10), 2))
	require.NoError(t, s.Add(ctx, "sess", product("b", "w1", "0.35", 10), 3))

	assert.Equal(t, "3.25", s.Total(ctx, "sess").String())

	require.NoError(t, s.Remove(ctx, "sess", "a", "w1"))
	_, ok := s.Get(ctx, "sess", "a", "w1")
	assert.False(t, ok)
	it, ok := s.Get(ctx, "sess", "b", "w1")
	assert.True(t, ok)
	assert.Equal(t, 3, it.Quantity)

	require.NoError(t, s.Clear(ctx, "sess"))
	assert.Equal(t, 0, s.ItemCount(ctx, "sess"))
	assert.True(t, s.Total(ctx, "sess").IsZero())
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := NewService(NewMemoryStore(time.Hour), nil)
	require.NoError(t, s.Add(ctx, "one", product("a", "w1", "1", 10), 1))
	assert.Empty(t, s.Items(ctx, "two"))
}

func TestRedisStoreRoundTrip(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	store, err := NewRedisStoreFromURL(url, time.Minute)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	s := NewService(store, nil)
	key := "test-" + time.Now().Format("150405.000000")
	require.NoError(t, s.Add(ctx, key, product("a", "w1", "4.20", 3), 2))
	assert.Equal(t, "8.4", s.Total(ctx, key).String())
	require.NoError(t, s.Clear(ctx, key))
	assert.Empty(t, s.Items(ctx, key))
}

func TestLocksAreReleased(t *testing.T) {
	ctx := context.Background()
	s := NewService(NewMemoryStore(time.Hour), nil)
	p := product("a", "w1", "1", 10)

	for _, key := range []string{"one", "two", "three"} {
		require.NoError(t, s.Add(ctx, key, p, 1))
		_, err := s.UpdateQuantity(ctx, key, "a", "w1", 2)
		require.NoError(t, err)
		require.NoError(t, s.Clear(ctx, key))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Empty(t, s.locks)
}

func TestConcurrentAddsShareOneLock(t *testing.T) {
	ctx := context.Background()
	s := NewService(NewMemoryStore(time.Hour), nil)
	p := product("a", "w1", "1", 100)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Add(ctx, "sess", p, 1))
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, s.ItemCount(ctx, "sess"))
	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Empty(t, s.locks)
}

func TestMemoryStoreExpiresCarts(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	s := NewService(store, nil)

	require.NoError(t, s.Add(ctx, "old", product("a", "w1", "1", 5), 1))
	now = now.Add(45 * time.Minute)
	require.NoError(t, s.Add(ctx, "fresh", product("a", "w1", "1", 5), 1))
	now = now.Add(30 * time.Minute)

	assert.Empty(t, s.Items(ctx, "old"))
	assert.Equal(t, 1, s.ItemCount(ctx, "fresh"))

	n, err := store.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, store.Len())
}

func TestPurgeOnceDropsExpiredCarts(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	store.now = func() time.Time { return time.Now().Add(-time.Hour) }
	require.NoError(t, store.Save(ctx, "stale", []Item{{Quantity: 1}}))

	PurgeOnce(ctx, store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Equal(t, 0, store.Len())
}
