package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/internal/cart/infra/memory"
)

func newService() *app.Service {
	return app.NewService(memory.NewCartRepo(), "USD")
}

func TestGetCart(t *testing.T) {
	svc := newService()

	t.Run("unknown id creates an empty cart", func(t *testing.T) {
		cart, err := svc.GetCart(context.Background(), "new-cart")
		if err != nil {
			t.Fatalf("GetCart: %v", err)
		}
		if cart.ID != "new-cart" || cart.TotalItems != 0 || cart.SubTotal.Amount != 0 {
			t.Fatalf("got %+v", cart)
		}
		if cart.SubTotal.Formatted != "$0.00" {
			t.Fatalf("got formatted %q", cart.SubTotal.Formatted)
		}
	})

	t.Run("blank id is rejected", func(t *testing.T) {
		if _, err := svc.GetCart(context.Background(), "  "); !errors.Is(err, app.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("second add keeps first price", func(t *testing.T) {
		svc := newService()
		if _, err := svc.AddItem(ctx, "c1", domain.CartItem{ItemID: "sku1", Name: "Mug", Price: 500}, 2); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		cart, err := svc.AddItem(ctx, "c1", domain.CartItem{ItemID: "sku1", Name: "Mug", Price: 999}, 1)
		if err != nil {
			t.Fatalf("AddItem: %v", err)
		}

		if len(cart.Items) != 1 {
			t.Fatalf("expected 1 line, got %d", len(cart.Items))
		}
		it := cart.Items[0]
		if it.Quantity != 3 || it.Price != 500 || it.LineTotal.Amount != 1500 || it.UnitTotal.Amount != 500 {
			t.Fatalf("got %+v", it)
		}
		if cart.TotalItems != 3 || cart.SubTotal.Amount != 1500 || cart.SubTotal.Formatted != "$15.00" {
			t.Fatalf("got totals %d %+v", cart.TotalItems, cart.SubTotal)
		}
	})

	t.Run("quantity defaults to one", func(t *testing.T) {
		svc := newService()
		cart, err := svc.AddItem(ctx, "c1", domain.CartItem{ItemID: "sku1", Name: "Mug", Price: 250}, 0)
		if err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		if cart.TotalItems != 1 || cart.SubTotal.Amount != 250 {
			t.Fatalf("got %+v", cart)
		}
	})

	t.Run("validation", func(t *testing.T) {
		svc := newService()
		cases := map[string]struct {
			cartID string
			item   domain.CartItem
			qty    int64
		}{
			"empty cart id":     {"", domain.CartItem{ItemID: "a", Name: "A"}, 1},
			"empty item id":     {"c1", domain.CartItem{Name: "A"}, 1},
			"empty name":        {"c1", domain.CartItem{ItemID: "a"}, 1},
			"negative price":    {"c1", domain.CartItem{ItemID: "a", Name: "A", Price: -1}, 1},
			"negative quantity": {"c1", domain.CartItem{ItemID: "a", Name: "A"}, -2},
		}
		for name, tc := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := svc.AddItem(ctx, tc.cartID, tc.item, tc.qty)
				if !errors.Is(err, app.ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
			})
		}
	})
}

func TestAdjustAndRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("decrease at one removes the item", func(t *testing.T) {
		svc := newService()
		if _, err := svc.AddItem(ctx, "c1", domain.CartItem{ItemID: "sku1", Name: "Mug", Price: 500}, 1); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		cart, err := svc.DecreaseItem(ctx, "c1", "sku1")
		if err != nil {
			t.Fatalf("DecreaseItem: %v", err)
		}
		if len(cart.Items) != 0 || cart.TotalItems != 0 {
			t.Fatalf("expected empty cart, got %+v", cart)
		}
		if _, err := svc.RemoveItem(ctx, "c1", "sku1"); !errors.Is(err, app.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
	})

	t.Run("sub total follows every mutation", func(t *testing.T) {
		svc := newService()
		steps := []func() (app.View, error){
			func() (app.View, error) {
				return svc.AddItem(ctx, "c1", domain.CartItem{ItemID: "a", Name: "A", Price: 300}, 2)
			},
			func() (app.View, error) {
				return svc.AddItem(ctx, "c1", domain.CartItem{ItemID: "b", Name: "B", Price: 125}, 0)
			},
			func() (app.View, error) { return svc.IncreaseItem(ctx, "c1", "b") },
			func() (app.View, error) { return svc.DecreaseItem(ctx, "c1", "a") },
			func() (app.View, error) { return svc.IncreaseItem(ctx, "c1", "a") },
			func() (app.View, error) { return svc.RemoveItem(ctx, "c1", "b") },
		}
		for i, step := range steps {
			cart, err := step()
			if err != nil {
				t.Fatalf("step %d: %v", i, err)
			}
			var want, wantQty int64
			for _, it := range cart.Items {
				want += it.Price * it.Quantity
				wantQty += it.Quantity
			}
			if cart.SubTotal.Amount != want || cart.TotalItems != wantQty {
				t.Fatalf("step %d: got %d/%d, want %d/%d", i, cart.SubTotal.Amount, cart.TotalItems, want, wantQty)
			}
		}
	})

	t.Run("missing item", func(t *testing.T) {
		svc := newService()
		if _, err := svc.IncreaseItem(ctx, "c1", "nope"); !errors.Is(err, app.ErrItemNotFound) {
			t.Fatalf("expected ErrItemNotFound, got %v", err)
		}
		if _, err := svc.DecreaseItem(ctx, "c1", ""); !errors.Is(err, app.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestLookup(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	if _, err := svc.Lookup(ctx, "missing"); !errors.Is(err, app.ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}
	if _, err := svc.AddItem(ctx, "c1", domain.CartItem{ItemID: "a", Name: "A", Price: 1}, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	cart, err := svc.Lookup(ctx, "c1")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(cart.Items))
	}
}
