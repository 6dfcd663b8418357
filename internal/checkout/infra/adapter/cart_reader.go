package adapter

import (
	"context"
	"errors"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
)

type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

// GetCart never creates a cart; an unknown id is reported as ErrInvalidCart.
func (r *CartServiceReader) GetCart(ctx context.Context, cartID string) ([]checkoutapp.CartItem, error) {
	cart, err := r.svc.Lookup(ctx, cartID)
	if errors.Is(err, cartapp.ErrCartNotFound) {
		return nil, checkoutapp.ErrInvalidCart
	}
	if err != nil {
		return nil, err
	}

	items := make([]checkoutapp.CartItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		item := checkoutapp.CartItem{
			ItemID:   it.ItemID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		}
		if it.Description != nil {
			item.Description = *it.Description
		}
		if it.Image != nil {
			item.Image = *it.Image
		}
		items = append(items, item)
	}
	return items, nil
}
