package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

type seedProduct struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Currency    string `json:"currency"`
	Price       int64  `json:"price"`
}

// SeedFromFile creates every product listed in a JSON array file. Products
// that already exist are skipped, so seeding can run on every start.
func (s *Service) SeedFromFile(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var products []seedProduct
	if err := json.Unmarshal(raw, &products); err != nil {
		return 0, fmt.Errorf("decode seed file %s: %w", path, err)
	}

	created := 0
	for i, p := range products {
		_, err := s.CreateProduct(ctx, NewProduct{
			ID:          p.ID,
			Slug:        p.Slug,
			Name:        p.Name,
			Description: p.Description,
			Image:       p.Image,
			Currency:    p.Currency,
			Amount:      p.Price,
		})
		if errors.Is(err, ErrDuplicate) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("seed product %d (%s): %w", i, p.Name, err)
		}
		created++
	}
	return created, nil
}
