package domain

import (
	"strings"
	"time"
)

type Money struct {
	Currency string
	Amount   int64
}

// Product is a sellable listing. Slug is unique and used in storefront URLs.
type Product struct {
	ID          string
	Slug        string
	Name        string
	Price       Money
	Description string
	Image       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Matches reports whether query occurs in the name, ignoring case.
// An empty query matches every product.
func (p Product) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q)
}
