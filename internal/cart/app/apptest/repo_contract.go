// Package apptest holds a behavioural suite every app.CartRepo adapter runs
// in its own tests.
package apptest

import (
	"context"
	"errors"
	"testing"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Concurrency is the number of goroutines used by the race cases.
const Concurrency = 20

func strPtr(s string) *string { return &s }

func RunCartRepoContract(t *testing.T, newRepo func(t *testing.T) app.CartRepo) {
	t.Run("find or create returns the same cart", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		id := uuid.NewString()

		if _, err := repo.Get(ctx, id); !errors.Is(err, app.ErrCartNotFound) {
			t.Fatalf("expected ErrCartNotFound before create, got %v", err)
		}

		first, err := repo.FindOrCreate(ctx, id)
		if err != nil {
			t.Fatalf("FindOrCreate: %v", err)
		}
		second, err := repo.FindOrCreate(ctx, id)
		if err != nil {
			t.Fatalf("FindOrCreate again: %v", err)
		}
		if first.ID != id || second.ID != id {
			t.Fatalf("unexpected ids %q %q", first.ID, second.ID)
		}

		items, err := repo.ListItems(ctx, id)
		if err != nil {
			t.Fatalf("ListItems: %v", err)
		}
		if len(items) != 0 {
			t.Fatalf("expected empty cart, got %d items", len(items))
		}
	})

	t.Run("upsert sets attributes once and increments", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		id := mustCart(t, repo)

		first := domain.CartItem{ItemID: "sku1", Name: "Mug", Description: strPtr("Blue"), Price: 500}
		if err := repo.UpsertItem(ctx, id, first, 2); err != nil {
			t.Fatalf("UpsertItem: %v", err)
		}
		second := domain.CartItem{ItemID: "sku1", Name: "Renamed", Image: strPtr("x.png"), Price: 999}
		if err := repo.UpsertItem(ctx, id, second, 1); err != nil {
			t.Fatalf("UpsertItem: %v", err)
		}

		it := mustItem(t, repo, id, "sku1")
		if it.Quantity != 3 || it.Price != 500 || it.Name != "Mug" {
			t.Fatalf("got %+v", it)
		}
		if it.Description == nil || *it.Description != "Blue" {
			t.Fatalf("expected description Blue, got %v", it.Description)
		}
		if it.Image != nil {
			t.Fatalf("expected no image, got %q", *it.Image)
		}
	})

	t.Run("adjust applies delta and deletes at zero", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		id := mustCart(t, repo)

		if err := repo.UpsertItem(ctx, id, domain.CartItem{ItemID: "a", Name: "A", Price: 100}, 1); err != nil {
			t.Fatalf("UpsertItem: %v", err)
		}
		if err := repo.AdjustQuantity(ctx, id, "a", 1); err != nil {
			t.Fatalf("AdjustQuantity +1: %v", err)
		}
		if it := mustItem(t, repo, id, "a"); it.Quantity != 2 {
			t.Fatalf("expected quantity 2, got %d", it.Quantity)
		}
		if err := repo.AdjustQuantity(ctx, id, "a", -5); err != nil {
			t.Fatalf("AdjustQuantity -5: %v", err)
		}

		items, err := repo.ListItems(ctx, id)
		if err != nil {
			t.Fatalf("ListItems: %v", err)
		}
		if len(items) != 0 {
			t.Fatalf("expected item deleted, got %+v", items)
		}
		if err := repo.AdjustQuantity(ctx, id, "a", 1); !errors.Is(err, app.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("delete missing item", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		id := mustCart(t, repo)

		if err := repo.DeleteItem(ctx, id, "ghost"); !errors.Is(err, app.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
		if err := repo.UpsertItem(ctx, id, domain.CartItem{ItemID: "a", Name: "A"}, 1); err != nil {
			t.Fatalf("UpsertItem: %v", err)
		}
		if err := repo.DeleteItem(ctx, id, "a"); err != nil {
			t.Fatalf("DeleteItem: %v", err)
		}
		if err := repo.DeleteItem(ctx, id, "a"); !errors.Is(err, app.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound on second delete, got %v", err)
		}
	})

	t.Run("concurrent find or create yields one cart", func(t *testing.T) {
		repo := newRepo(t)
		id := uuid.NewString()

		g, ctx := errgroup.WithContext(context.Background())
		for i := 0; i < Concurrency; i++ {
			g.Go(func() error {
				cart, err := repo.FindOrCreate(ctx, id)
				if err != nil {
					return err
				}
				if cart.ID != id {
					return errors.New("unexpected cart id " + cart.ID)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			t.Fatalf("concurrent FindOrCreate failed: %v", err)
		}
	})

	t.Run("concurrent increments and decrements", func(t *testing.T) {
		repo := newRepo(t)
		id := mustCart(t, repo)
		item := domain.CartItem{ItemID: "hot", Name: "Hot", Price: 10}

		g, ctx := errgroup.WithContext(context.Background())
		for i := 0; i < Concurrency; i++ {
			g.Go(func() error {
				return repo.UpsertItem(ctx, id, item, 1)
			})
		}
		if err := g.Wait(); err != nil {
			t.Fatalf("concurrent UpsertItem failed: %v", err)
		}
		if it := mustItem(t, repo, id, "hot"); it.Quantity != Concurrency {
			t.Fatalf("expected quantity=%d, got=%d", Concurrency, it.Quantity)
		}

		g, ctx = errgroup.WithContext(context.Background())
		for i := 0; i < Concurrency; i++ {
			g.Go(func() error {
				return repo.AdjustQuantity(ctx, id, "hot", -1)
			})
		}
		if err := g.Wait(); err != nil {
			t.Fatalf("concurrent AdjustQuantity failed: %v", err)
		}

		items, err := repo.ListItems(context.Background(), id)
		if err != nil {
			t.Fatalf("ListItems: %v", err)
		}
		if len(items) != 0 {
			t.Fatalf("expected item removed after %d decrements, got %+v", Concurrency, items)
		}
	})
}

func mustCart(t *testing.T, repo app.CartRepo) string {
	t.Helper()
	id := uuid.NewString()
	if _, err := repo.FindOrCreate(context.Background(), id); err != nil {
		t.Fatalf("FindOrCreate: %v", err)
	}
	return id
}

func mustItem(t *testing.T, repo app.CartRepo, cartID, itemID string) domain.CartItem {
	t.Helper()
	items, err := repo.ListItems(context.Background(), cartID)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	for _, it := range items {
		if it.ItemID == itemID {
			return it
		}
	}
	t.Fatalf("item %s not found in cart %s", itemID, cartID)
	return domain.CartItem{}
}
