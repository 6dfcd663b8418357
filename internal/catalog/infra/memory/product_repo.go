package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

type ProductRepo struct {
	mu     sync.RWMutex
	byID   map[string]domain.Product
	bySlug map[string]string
}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{
		byID:   make(map[string]domain.Product),
		bySlug: make(map[string]string),
	}
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.ID]; ok {
		return domain.Product{}, app.ErrDuplicate
	}
	if _, ok := r.bySlug[p.Slug]; ok {
		return domain.Product{}, app.ErrDuplicate
	}

	r.byID[p.ID] = p
	r.bySlug[p.Slug] = p.ID
	return p, nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return domain.Product{}, app.ErrNotFound
	}
	return p, nil
}

func (r *ProductRepo) GetBySlug(ctx context.Context, slug string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.bySlug[slug]
	if !ok {
		return domain.Product{}, app.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *ProductRepo) List(ctx context.Context, query string, limit int, cursor string) ([]domain.Product, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Product, 0, limit)
	for _, p := range r.byID {
		if cursor != "" && p.ID <= cursor {
			continue
		}
		if !p.Matches(query) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	if len(out) > limit {
		out = out[:limit]
	}

	var nextCursor string
	if len(out) == limit {
		nextCursor = out[len(out)-1].ID
	}
	return out, nextCursor, nil
}
