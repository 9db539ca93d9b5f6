package cart

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"medisupply.com/portal/internal/modules/products"
)

// Service applies the cart rules on top of a Store. Updates for the same key
// are serialised in-process.
type Service struct {
	store  Store
	logger *slog.Logger

	mu    sync.Mutex
	locks map[string]*keyLock
}

// keyLock is dropped from the map once no caller holds or waits on it.
type keyLock struct {
	sync.Mutex
	refs int
}

func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger, locks: make(map[string]*keyLock)}
}

func (s *Service) lock(key string) func() {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &keyLock{}
		s.locks[key] = l
	}
	l.refs++
	s.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		s.mu.Lock()
		if l.refs--; l.refs == 0 {
			delete(s.locks, key)
		}
		s.mu.Unlock()
	}
}

// Add puts qty units of p in the cart, merging with an existing line for the
// same SKU and warehouse. The merged quantity may not exceed p.Stock.
func (s *Service) Add(ctx context.Context, key string, p products.Product, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	if qty > p.Stock {
		return &StockError{SKU: p.SKU, Stock: p.Stock}
	}

	defer s.lock(key)()
	items, err := s.store.Load(ctx, key)
	if err != nil {
		return err
	}

	for i, it := range items {
		if !it.matches(p.SKU, p.Warehouse) {
			continue
		}
		next := it.Quantity + qty
		if next > p.Stock {
			return &StockError{SKU: p.SKU, Stock: p.Stock, InCart: it.Quantity}
		}
		items[i] = Item{Product: p, Quantity: next, Subtotal: lineTotal(p, next)}
		return s.store.Save(ctx, key, items)
	}

	items = append(items, Item{Product: p, Quantity: qty, Subtotal: lineTotal(p, qty)})
	return s.store.Save(ctx, key, items)
}

// UpdateQuantity sets the quantity of a line. A quantity of zero or less
// removes the line and reports removed.
func (s *Service) UpdateQuantity(ctx context.Context, key, sku, warehouse string, qty int) (removed bool, err error) {
	defer s.lock(key)()
	items, err := s.store.Load(ctx, key)
	if err != nil {
		return false, err
	}

	idx := -1
	for i, it := range items {
		if it.matches(sku, warehouse) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, ErrNotInCart
	}
	if qty <= 0 {
		items = append(items[:idx], items[idx+1:]...)
		return true, s.store.Save(ctx, key, items)
	}

	it := items[idx]
	if qty > it.Product.Stock {
		return false, &StockError{SKU: sku, Stock: it.Product.Stock}
	}
	items[idx] = Item{Product: it.Product, Quantity: qty, Subtotal: lineTotal(it.Product, qty)}
	return false, s.store.Save(ctx, key, items)
}

func (s *Service) Remove(ctx context.Context, key, sku, warehouse string) error {
	defer s.lock(key)()
	items, err := s.store.Load(ctx, key)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if !it.matches(sku, warehouse) {
			kept = append(kept, it)
		}
	}
	return s.store.Save(ctx, key, kept)
}

func (s *Service) Clear(ctx context.Context, key string) error {
	defer s.lock(key)()
	return s.store.Delete(ctx, key)
}

// Items returns the cart lines; an unreadable cart reads as empty.
func (s *Service) Items(ctx context.Context, key string) []Item {
	items, err := s.store.Load(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "cart_load_failed", slog.String("err", err.Error()))
		return []Item{}
	}
	if items == nil {
		return []Item{}
	}
	return items
}

func (s *Service) Get(ctx context.Context, key, sku, warehouse string) (Item, bool) {
	for _, it := range s.Items(ctx, key) {
		if it.matches(sku, warehouse) {
			return it, true
		}
	}
	return Item{}, false
}

// ItemCount is the number of units across all lines.
func (s *Service) ItemCount(ctx context.Context, key string) int {
	n := 0
	for _, it := range s.Items(ctx, key) {
		n += it.Quantity
	}
	return n
}

func (s *Service) Total(ctx context.Context, key string) decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.Items(ctx, key) {
		total = total.Add(it.Subtotal)
	}
	return total
}
