package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

// View is a cart with its derived totals.
type View struct {
	ID         string
	Items      []ItemView
	TotalItems int64
	SubTotal   domain.Money
}

type ItemView struct {
	domain.CartItem
	UnitTotal domain.Money
	LineTotal domain.Money
}

type Service struct {
	repo     CartRepo
	currency string
}

func NewService(repo CartRepo, currency string) *Service {
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	return &Service{
		repo:     repo,
		currency: currency,
	}
}

func (s *Service) Currency() string {
	return s.currency
}

func (s *Service) GetCart(ctx context.Context, id string) (View, error) {
	if strings.TrimSpace(id) == "" {
		return View{}, fmt.Errorf("%w: cart id is required", ErrInvalidInput)
	}

	cart, err := s.repo.FindOrCreate(ctx, id)
	if err != nil {
		return View{}, err
	}

	cart.Items, err = s.repo.ListItems(ctx, cart.ID)
	if err != nil {
		return View{}, err
	}
	return s.view(cart), nil
}

// Lookup returns the stored cart without creating it.
func (s *Service) Lookup(ctx context.Context, id string) (domain.Cart, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Cart{}, ErrCartNotFound
	}

	cart, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Cart{}, err
	}

	cart.Items, err = s.repo.ListItems(ctx, cart.ID)
	if err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

// AddItem adds quantity units of item; a quantity of zero means one.
func (s *Service) AddItem(ctx context.Context, cartID string, item domain.CartItem, quantity int64) (View, error) {
	if strings.TrimSpace(cartID) == "" {
		return View{}, fmt.Errorf("%w: cart id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(item.ItemID) == "" {
		return View{}, fmt.Errorf("%w: item id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(item.Name) == "" {
		return View{}, fmt.Errorf("%w: item name is required", ErrInvalidInput)
	}
	if item.Price < 0 {
		return View{}, fmt.Errorf("%w: price cannot be negative, got %d", ErrInvalidInput, item.Price)
	}
	if quantity < 0 {
		return View{}, fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidInput, quantity)
	}
	if quantity == 0 {
		quantity = 1
	}

	if _, err := s.repo.FindOrCreate(ctx, cartID); err != nil {
		return View{}, err
	}

	item.CartID = cartID
	if err := s.repo.UpsertItem(ctx, cartID, item, quantity); err != nil {
		return View{}, err
	}

	return s.GetCart(ctx, cartID)
}

func (s *Service) RemoveItem(ctx context.Context, cartID, itemID string) (View, error) {
	if err := validateKey(cartID, itemID); err != nil {
		return View{}, err
	}
	if err := s.repo.DeleteItem(ctx, cartID, itemID); err != nil {
		return View{}, err
	}
	return s.GetCart(ctx, cartID)
}

func (s *Service) IncreaseItem(ctx context.Context, cartID, itemID string) (View, error) {
	return s.adjust(ctx, cartID, itemID, 1)
}

// DecreaseItem removes the item once its quantity reaches zero.
func (s *Service) DecreaseItem(ctx context.Context, cartID, itemID string) (View, error) {
	return s.adjust(ctx, cartID, itemID, -1)
}

func (s *Service) adjust(ctx context.Context, cartID, itemID string, delta int64) (View, error) {
	if err := validateKey(cartID, itemID); err != nil {
		return View{}, err
	}
	if err := s.repo.AdjustQuantity(ctx, cartID, itemID, delta); err != nil {
		return View{}, err
	}
	return s.GetCart(ctx, cartID)
}

func (s *Service) view(cart domain.Cart) View {
	items := make([]ItemView, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, ItemView{
			CartItem:  it,
			UnitTotal: domain.UnitTotal(it, s.currency),
			LineTotal: domain.LineTotal(it, s.currency),
		})
	}

	return View{
		ID:         cart.ID,
		Items:      items,
		TotalItems: domain.TotalItems(cart.Items),
		SubTotal:   domain.SubTotal(cart.Items, s.currency),
	}
}

func validateKey(cartID, itemID string) error {
	if strings.TrimSpace(cartID) == "" {
		return fmt.Errorf("%w: cart id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(itemID) == "" {
		return fmt.Errorf("%w: item id is required", ErrInvalidInput)
	}
	return nil
}
