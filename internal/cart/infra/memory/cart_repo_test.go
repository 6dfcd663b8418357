package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/app/apptest"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

func TestCartRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("find or create is idempotent", func(t *testing.T) {
		r := NewCartRepo()
		first, err := r.FindOrCreate(ctx, "c1")
		if err != nil {
			t.Fatalf("FindOrCreate: %v", err)
		}
		second, err := r.FindOrCreate(ctx, "c1")
		if err != nil {
			t.Fatalf("FindOrCreate: %v", err)
		}
		if first.ID != "c1" || !first.CreatedAt.Equal(second.CreatedAt) {
			t.Fatalf("expected same cart, got %+v and %+v", first, second)
		}
	})

	t.Run("get unknown cart", func(t *testing.T) {
		r := NewCartRepo()
		if _, err := r.Get(ctx, "nope"); !errors.Is(err, app.ErrCartNotFound) {
			t.Fatalf("expected ErrCartNotFound, got %v", err)
		}
	})

	t.Run("upsert keeps first attributes", func(t *testing.T) {
		r := NewCartRepo()
		_, _ = r.FindOrCreate(ctx, "c1")

		if err := r.UpsertItem(ctx, "c1", domain.CartItem{ItemID: "sku1", Name: "Mug", Price: 500}, 2); err != nil {
			t.Fatalf("UpsertItem: %v", err)
		}
		if err := r.UpsertItem(ctx, "c1", domain.CartItem{ItemID: "sku1", Name: "Other", Price: 999}, 1); err != nil {
			t.Fatalf("UpsertItem: %v", err)
		}

		items, _ := r.ListItems(ctx, "c1")
		if len(items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(items))
		}
		if items[0].Quantity != 3 || items[0].Price != 500 || items[0].Name != "Mug" {
			t.Fatalf("got %+v", items[0])
		}
	})

	t.Run("adjust to zero deletes", func(t *testing.T) {
		r := NewCartRepo()
		_, _ = r.FindOrCreate(ctx, "c1")
		_ = r.UpsertItem(ctx, "c1", domain.CartItem{ItemID: "a", Name: "A", Price: 1}, 1)
		_ = r.UpsertItem(ctx, "c1", domain.CartItem{ItemID: "b", Name: "B", Price: 1}, 1)

		if err := r.AdjustQuantity(ctx, "c1", "a", -1); err != nil {
			t.Fatalf("AdjustQuantity: %v", err)
		}
		items, _ := r.ListItems(ctx, "c1")
		if len(items) != 1 || items[0].ItemID != "b" {
			t.Fatalf("expected only b, got %+v", items)
		}
		if err := r.DeleteItem(ctx, "c1", "a"); !errors.Is(err, app.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("missing item", func(t *testing.T) {
		r := NewCartRepo()
		if err := r.AdjustQuantity(ctx, "c1", "a", 1); !errors.Is(err, app.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
		if err := r.UpsertItem(ctx, "c1", domain.CartItem{ItemID: "a"}, 1); !errors.Is(err, app.ErrCartNotFound) {
			t.Fatalf("expected ErrCartNotFound, got %v", err)
		}
	})

	t.Run("items keep insertion order", func(t *testing.T) {
		r := NewCartRepo()
		_, _ = r.FindOrCreate(ctx, "c1")
		for _, id := range []string{"x", "y", "z"} {
			_ = r.UpsertItem(ctx, "c1", domain.CartItem{ItemID: id, Name: id}, 1)
		}
		_ = r.UpsertItem(ctx, "c1", domain.CartItem{ItemID: "x", Name: "x"}, 1)

		items, _ := r.ListItems(ctx, "c1")
		got := make([]string, 0, len(items))
		for _, it := range items {
			got = append(got, it.ItemID)
		}
		if len(got) != 3 || got[0] != "x" || got[1] != "y" || got[2] != "z" {
			t.Fatalf("got order %v", got)
		}
	})
}

func TestCartRepoContract(t *testing.T) {
	apptest.RunCartRepoContract(t, func(t *testing.T) app.CartRepo {
		return NewCartRepo()
	})
}
