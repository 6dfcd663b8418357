package stripe

import (
	"context"
	"fmt"
	"strings"

	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
)

// Gateway opens Stripe Checkout sessions in payment mode.
type Gateway struct {
	sessions session.Client
}

// NewGateway uses the default Stripe API backend when backend is nil.
func NewGateway(secretKey string, backend stripe.Backend) *Gateway {
	if backend == nil {
		backend = stripe.GetBackend(stripe.APIBackend)
	}
	return &Gateway{sessions: session.Client{B: backend, Key: secretKey}}
}

func (g *Gateway) CreateSession(ctx context.Context, req domain.SessionRequest) (domain.Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		LineItems:  make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.LineItems)),
	}
	params.Context = ctx

	for _, line := range req.LineItems {
		product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(line.Name),
		}
		// Stripe rejects empty strings here.
		if line.Description != "" {
			product.Description = stripe.String(line.Description)
		}
		if len(line.Images) > 0 {
			product.Images = stripe.StringSlice(line.Images)
		}

		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(line.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(strings.ToLower(line.UnitPrice.Currency)),
				UnitAmount:  stripe.Int64(line.UnitPrice.Amount),
				ProductData: product,
			},
		})
	}

	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := g.sessions.New(params)
	if err != nil {
		return domain.Session{}, fmt.Errorf("create checkout session: %w", err)
	}

	return domain.Session{ID: s.ID, URL: s.URL}, nil
}
