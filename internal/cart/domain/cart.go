package domain

import "time"

// CartItem is one product line in a cart, unique per (ItemID, CartID).
type CartItem struct {
	ItemID      string
	CartID      string
	Name        string
	Description *string
	Image       *string
	Price       int64
	Quantity    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Cart struct {
	ID        string
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}
