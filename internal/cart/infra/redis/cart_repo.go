package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/redis/go-redis/v9"
)

// maxTxAttempts bounds optimistic retries. A WATCH only fails when another
// writer committed in between, so this is also the contention budget.
const maxTxAttempts = 64

var ErrContention = errors.New("cart item is under heavy contention")

// CartRepo stores each cart as a header hash, a sorted set of item ids
// scored by a per-cart insertion counter, and one hash per item. Item mutations run as
// WATCH/MULTI transactions on the item hash.
type CartRepo struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

func NewCartRepo(client redis.UniversalClient) *CartRepo {
	return &CartRepo{
		client: client,
		prefix: "cart",
		now:    time.Now,
	}
}

func (r *CartRepo) cartKey(id string) string  { return r.prefix + ":" + id }
func (r *CartRepo) itemsKey(id string) string { return r.prefix + ":" + id + ":items" }
func (r *CartRepo) seqKey(id string) string   { return r.prefix + ":" + id + ":seq" }
func (r *CartRepo) itemKey(cartID, itemID string) string {
	return r.prefix + ":" + cartID + ":item:" + itemID
}

func (r *CartRepo) FindOrCreate(ctx context.Context, id string) (domain.Cart, error) {
	now := strconv.FormatInt(r.now().UnixNano(), 10)
	key := r.cartKey(id)

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSetNX(ctx, key, "created_at", now)
		pipe.HSetNX(ctx, key, "updated_at", now)
		return nil
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("create cart %s: %w", id, err)
	}
	return r.Get(ctx, id)
}

func (r *CartRepo) Get(ctx context.Context, id string) (domain.Cart, error) {
	vals, err := r.client.HGetAll(ctx, r.cartKey(id)).Result()
	if err != nil {
		return domain.Cart{}, fmt.Errorf("get cart %s: %w", id, err)
	}
	if len(vals) == 0 {
		return domain.Cart{}, app.ErrCartNotFound
	}

	return domain.Cart{
		ID:        id,
		CreatedAt: parseTime(vals["created_at"]),
		UpdatedAt: parseTime(vals["updated_at"]),
	}, nil
}

func (r *CartRepo) ListItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	ids, err := r.client.ZRange(ctx, r.itemsKey(cartID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, r.itemKey(cartID, id))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}

	items := make([]domain.CartItem, 0, len(ids))
	for i, cmd := range cmds {
		vals := cmd.Val()
		// deleted between ZRANGE and HGETALL
		if len(vals) == 0 {
			continue
		}
		items = append(items, decodeItem(cartID, ids[i], vals))
	}
	return items, nil
}

func (r *CartRepo) UpsertItem(ctx context.Context, cartID string, item domain.CartItem, incrementBy int64) error {
	cartKey := r.cartKey(cartID)
	itemKey := r.itemKey(cartID, item.ItemID)

	return r.watch(ctx, func(tx *redis.Tx) error {
		cartExists, err := tx.Exists(ctx, cartKey).Result()
		if err != nil {
			return err
		}
		if cartExists == 0 {
			return app.ErrCartNotFound
		}

		exists, err := tx.Exists(ctx, itemKey).Result()
		if err != nil {
			return err
		}

		// Retried transactions may leave gaps; only the order of scores matters.
		var seq int64
		if exists == 0 {
			if seq, err = tx.Incr(ctx, r.seqKey(cartID)).Result(); err != nil {
				return err
			}
		}

		now := r.now().UnixNano()
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if exists == 0 {
				pipe.HSet(ctx, itemKey, encodeItem(item, incrementBy, now))
				pipe.ZAdd(ctx, r.itemsKey(cartID), redis.Z{Score: float64(seq), Member: item.ItemID})
			} else {
				pipe.HIncrBy(ctx, itemKey, "quantity", incrementBy)
				pipe.HSet(ctx, itemKey, "updated_at", now)
			}
			pipe.HSet(ctx, cartKey, "updated_at", now)
			return nil
		})
		return err
	}, itemKey)
}

func (r *CartRepo) AdjustQuantity(ctx context.Context, cartID, itemID string, delta int64) error {
	itemKey := r.itemKey(cartID, itemID)

	return r.watch(ctx, func(tx *redis.Tx) error {
		qty, err := tx.HGet(ctx, itemKey, "quantity").Int64()
		if errors.Is(err, redis.Nil) {
			return app.ErrItemNotFound
		}
		if err != nil {
			return err
		}

		qty += delta
		now := r.now().UnixNano()
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if qty <= 0 {
				pipe.Del(ctx, itemKey)
				pipe.ZRem(ctx, r.itemsKey(cartID), itemID)
			} else {
				pipe.HSet(ctx, itemKey, "quantity", qty, "updated_at", now)
			}
			pipe.HSet(ctx, r.cartKey(cartID), "updated_at", now)
			return nil
		})
		return err
	}, itemKey)
}

func (r *CartRepo) DeleteItem(ctx context.Context, cartID, itemID string) error {
	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, r.itemKey(cartID, itemID))
		pipe.ZRem(ctx, r.itemsKey(cartID), itemID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete cart item %s: %w", itemID, err)
	}
	if del.Val() == 0 {
		return app.ErrItemNotFound
	}

	now := r.now().UnixNano()
	if err := r.client.HSet(ctx, r.cartKey(cartID), "updated_at", now).Err(); err != nil {
		return fmt.Errorf("touch cart %s: %w", cartID, err)
	}
	return nil
}

func (r *CartRepo) watch(ctx context.Context, fn func(tx *redis.Tx) error, keys ...string) error {
	for i := 0; i < maxTxAttempts; i++ {
		err := r.client.Watch(ctx, fn, keys...)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return ErrContention
}

func encodeItem(item domain.CartItem, quantity, now int64) map[string]any {
	fields := map[string]any{
		"name":       item.Name,
		"price":      item.Price,
		"quantity":   quantity,
		"created_at": now,
		"updated_at": now,
	}
	if item.Description != nil {
		fields["description"] = *item.Description
	}
	if item.Image != nil {
		fields["image"] = *item.Image
	}
	return fields
}

func decodeItem(cartID, itemID string, vals map[string]string) domain.CartItem {
	it := domain.CartItem{
		ItemID:    itemID,
		CartID:    cartID,
		Name:      vals["name"],
		Price:     parseInt(vals["price"]),
		Quantity:  parseInt(vals["quantity"]),
		CreatedAt: parseTime(vals["created_at"]),
		UpdatedAt: parseTime(vals["updated_at"]),
	}
	if v, ok := vals["description"]; ok {
		it.Description = &v
	}
	if v, ok := vals["image"]; ok {
		it.Image = &v
	}
	return it
}

func parseInt(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

func parseTime(s string) time.Time {
	n := parseInt(s)
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}
