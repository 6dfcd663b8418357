package graph

import (
	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	checkoutdomain "github.com/dwikikusuma/storefront/internal/checkout/domain"
)

type Money struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}

type CartItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Quantity    int64   `json:"quantity"`
	UnitTotal   Money   `json:"unitTotal"`
	LineTotal   Money   `json:"lineTotal"`
}

type Cart struct {
	ID         string     `json:"id"`
	TotalItems int64      `json:"totalItems"`
	SubTotal   Money      `json:"subTotal"`
	Items      []CartItem `json:"items"`
}

type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type Product struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Price       Money  `json:"price"`
}

type ProductPage struct {
	Items      []Product `json:"items"`
	NextCursor *string   `json:"nextCursor"`
}

func toMoney(m cartdomain.Money) Money {
	return Money{Amount: m.Amount, Currency: m.Currency, Formatted: m.Formatted}
}

func toCart(v cartapp.View) Cart {
	items := make([]CartItem, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, CartItem{
			ID:          it.ItemID,
			Name:        it.Name,
			Description: it.Description,
			Image:       it.Image,
			Quantity:    it.Quantity,
			UnitTotal:   toMoney(it.UnitTotal),
			LineTotal:   toMoney(it.LineTotal),
		})
	}

	return Cart{
		ID:         v.ID,
		TotalItems: v.TotalItems,
		SubTotal:   toMoney(v.SubTotal),
		Items:      items,
	}
}

func toSession(s checkoutdomain.Session) CheckoutSession {
	return CheckoutSession{ID: s.ID, URL: s.URL}
}

func toProduct(p catalogdomain.Product) Product {
	return Product{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Price:       toMoney(cartdomain.NewMoney(p.Price.Amount, p.Price.Currency)),
	}
}
