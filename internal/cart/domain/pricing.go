package domain

import "github.com/Rhymond/go-money"

// DefaultCurrency is used when a Money is built without a currency code.
const DefaultCurrency = "USD"

// Money is an amount in minor units plus its display string. It is derived
// from item state on every read and never stored.
type Money struct {
	Amount    int64
	Currency  string
	Formatted string
}

func NewMoney(amount int64, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{
		Amount:    amount,
		Currency:  currency,
		Formatted: money.New(amount, currency).Display(),
	}
}

func UnitTotal(item CartItem, currency string) Money {
	return NewMoney(item.Price, currency)
}

func LineTotal(item CartItem, currency string) Money {
	return NewMoney(item.Price*item.Quantity, currency)
}

func SubTotal(items []CartItem, currency string) Money {
	var amount int64
	for _, it := range items {
		amount += it.Price * it.Quantity
	}
	return NewMoney(amount, currency)
}

func TotalItems(items []CartItem) int64 {
	var n int64
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
