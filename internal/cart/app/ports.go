package app

import (
	"context"
	"errors"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrItemNotFound = errors.New("cart item not found")
	ErrInvalidInput = errors.New("invalid input")
)

// CartRepo persists carts and their items. Implementations must keep at most
// one item per (itemID, cartID) and never store a quantity below one.
type CartRepo interface {
	// FindOrCreate returns the cart with id, creating an empty one if needed.
	// FindOrCreate and Get return the cart header; items come from ListItems.
	FindOrCreate(ctx context.Context, id string) (domain.Cart, error)
	// Get returns ErrCartNotFound when no cart has this id.
	Get(ctx context.Context, id string) (domain.Cart, error)
	ListItems(ctx context.Context, cartID string) ([]domain.CartItem, error)
	// UpsertItem inserts item with quantity incrementBy, or adds incrementBy
	// to the stored quantity. Item attributes are only written on insert.
	UpsertItem(ctx context.Context, cartID string, item domain.CartItem, incrementBy int64) error
	// AdjustQuantity deletes the item when the new quantity drops to zero or below.
	AdjustQuantity(ctx context.Context, cartID, itemID string, delta int64) error
	DeleteItem(ctx context.Context, cartID, itemID string) error
}
