package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrDuplicate    = errors.New("product already exists")
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

type NewProduct struct {
	ID          string
	Slug        string
	Name        string
	Description string
	Image       string
	Currency    string
	Amount      int64
}

// CreateProduct derives the slug from the name and generates an id when
// either is left empty.
func (s *Service) CreateProduct(ctx context.Context, in NewProduct) (domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))

	if name == "" || currency == "" || in.Amount <= 0 {
		return domain.Product{}, ErrInvalidInput
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = uuid.NewString()
	}

	productSlug := slug.Make(strings.TrimSpace(in.Slug))
	if productSlug == "" {
		productSlug = slug.Make(name)
	}
	if productSlug == "" {
		return domain.Product{}, ErrInvalidInput
	}

	now := time.Now().UTC()
	p := domain.Product{
		ID:          id,
		Slug:        productSlug,
		Name:        name,
		Description: in.Description,
		Image:       in.Image,
		Price: domain.Money{
			Currency: currency,
			Amount:   in.Amount,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	product, err := s.repo.Create(ctx, p)
	if err != nil {
		return domain.Product{}, err
	}

	return product, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) GetProductBySlug(ctx context.Context, productSlug string) (domain.Product, error) {
	if strings.TrimSpace(productSlug) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.GetBySlug(ctx, productSlug)
}

func (s *Service) ListProducts(ctx context.Context, query string, limit int, cursor string) ([]domain.Product, string, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, strings.TrimSpace(query), limit, strings.TrimSpace(cursor))
}
