package app

import (
	"context"
	"errors"
	"strings"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
)

// SessionIDPlaceholder is substituted by the payment provider on redirect.
const SessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"

type CartReader interface {
	// GetCart returns ErrInvalidCart when the cart does not exist.
	GetCart(ctx context.Context, cartID string) ([]CartItem, error)
}

type CartItem struct {
	ItemID      string
	Name        string
	Description string
	Image       string
	Price       int64
	Quantity    int64
}

type PaymentGateway interface {
	CreateSession(ctx context.Context, req domain.SessionRequest) (domain.Session, error)
}

type Options struct {
	Currency   string
	SuccessURL string
	CancelURL  string
}

type Service struct {
	Cart     CartReader
	Payments PaymentGateway

	opts Options
}

func NewService(cart CartReader, payments PaymentGateway, opts Options) *Service {
	if opts.Currency == "" {
		opts.Currency = "USD"
	}

	return &Service{
		Cart:     cart,
		Payments: payments,
		opts:     opts,
	}
}

var (
	ErrInvalidCart = errors.New("Invalid cart")
	ErrEmptyCart   = errors.New("Cart is empty")
)

// CreateSession opens a hosted payment session for the current cart
// contents. Nothing is reserved: calling it twice opens two sessions.
func (s *Service) CreateSession(ctx context.Context, cartID string) (domain.Session, error) {
	if strings.TrimSpace(cartID) == "" {
		return domain.Session{}, ErrInvalidCart
	}

	items, err := s.Cart.GetCart(ctx, cartID)
	if err != nil {
		return domain.Session{}, err
	}

	if len(items) == 0 {
		return domain.Session{}, ErrEmptyCart
	}

	lines := make([]domain.LineItem, 0, len(items))
	for _, it := range items {
		line := domain.LineItem{
			Quantity: it.Quantity,
			UnitPrice: domain.Money{
				Currency: s.opts.Currency,
				Amount:   it.Price,
			},
			Name:        it.Name,
			Description: it.Description,
		}
		if it.Image != "" {
			line.Images = []string{it.Image}
		}
		lines = append(lines, line)
	}

	return s.Payments.CreateSession(ctx, domain.SessionRequest{
		LineItems:  lines,
		SuccessURL: s.opts.SuccessURL,
		CancelURL:  s.opts.CancelURL,
		Metadata:   map[string]string{"cartId": cartID},
	})
}
