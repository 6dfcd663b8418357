package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

type cartRecord struct {
	cart  domain.Cart
	order []string
	items map[string]domain.CartItem
}

// CartRepo keeps carts in process memory. A single mutex serializes every
// operation, so concurrent adjustments of one item never interleave.
type CartRepo struct {
	mu    sync.Mutex
	carts map[string]*cartRecord
	now   func() time.Time
}

func NewCartRepo() *CartRepo {
	return &CartRepo{
		carts: make(map[string]*cartRecord),
		now:   time.Now,
	}
}

func (r *CartRepo) FindOrCreate(ctx context.Context, id string) (domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec, ok := r.carts[id]; ok {
		return rec.cart, nil
	}

	now := r.now()
	rec := &cartRecord{
		cart:  domain.Cart{ID: id, CreatedAt: now, UpdatedAt: now},
		items: make(map[string]domain.CartItem),
	}
	r.carts[id] = rec
	return rec.cart, nil
}

func (r *CartRepo) Get(ctx context.Context, id string) (domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.carts[id]
	if !ok {
		return domain.Cart{}, app.ErrCartNotFound
	}
	return rec.cart, nil
}

func (r *CartRepo) ListItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.carts[cartID]
	if !ok {
		return []domain.CartItem{}, nil
	}

	items := make([]domain.CartItem, 0, len(rec.order))
	for _, id := range rec.order {
		items = append(items, rec.items[id])
	}
	return items, nil
}

func (r *CartRepo) UpsertItem(ctx context.Context, cartID string, item domain.CartItem, incrementBy int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.carts[cartID]
	if !ok {
		return app.ErrCartNotFound
	}

	now := r.now()
	if existing, ok := rec.items[item.ItemID]; ok {
		existing.Quantity += incrementBy
		existing.UpdatedAt = now
		rec.items[item.ItemID] = existing
	} else {
		item.CartID = cartID
		item.Quantity = incrementBy
		item.CreatedAt = now
		item.UpdatedAt = now
		rec.items[item.ItemID] = item
		rec.order = append(rec.order, item.ItemID)
	}
	rec.cart.UpdatedAt = now
	return nil
}

func (r *CartRepo) AdjustQuantity(ctx context.Context, cartID, itemID string, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.carts[cartID]
	if !ok {
		return app.ErrItemNotFound
	}
	item, ok := rec.items[itemID]
	if !ok {
		return app.ErrItemNotFound
	}

	now := r.now()
	item.Quantity += delta
	if item.Quantity <= 0 {
		rec.remove(itemID)
	} else {
		item.UpdatedAt = now
		rec.items[itemID] = item
	}
	rec.cart.UpdatedAt = now
	return nil
}

func (r *CartRepo) DeleteItem(ctx context.Context, cartID, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.carts[cartID]
	if !ok {
		return app.ErrItemNotFound
	}
	if _, ok := rec.items[itemID]; !ok {
		return app.ErrItemNotFound
	}

	rec.remove(itemID)
	rec.cart.UpdatedAt = r.now()
	return nil
}

func (c *cartRecord) remove(itemID string) {
	delete(c.items, itemID)
	for i, id := range c.order {
		if id == itemID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
