package mongo

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	pkgmongo "github.com/dwikikusuma/storefront/pkg/mongo"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestListFilter(t *testing.T) {
	if got := listFilter("", ""); len(got) != 0 {
		t.Fatalf("expected empty filter, got %v", got)
	}

	got := listFilter("t.shirt", "p1")
	if len(got) != 2 || got[0].Key != "name" || got[1].Key != "_id" {
		t.Fatalf("unexpected filter %v", got)
	}
	regex := got[0].Value.(bson.D)
	if regex[0].Value != `t\.shirt` {
		t.Fatalf("query must be escaped, got %v", regex[0].Value)
	}
}

func TestProductRepo(t *testing.T) {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	ctx := context.Background()
	db, err := pkgmongo.Open(ctx, uri, "storefront_test_"+uuid.NewString()[:8])
	if err != nil {
		t.Fatalf("open mongo: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = db.Client().Disconnect(context.Background())
	})

	repo := NewProductRepo(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}
	svc := app.NewService(repo)

	created, err := svc.CreateProduct(ctx, app.NewProduct{Name: "Canvas Tote", Currency: "USD", Amount: 1800})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if _, err := svc.CreateProduct(ctx, app.NewProduct{Name: "Canvas Tote", Currency: "USD", Amount: 1}); !errors.Is(err, app.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate on slug, got %v", err)
	}

	got, err := svc.GetProductBySlug(ctx, "canvas-tote")
	if err != nil || got.ID != created.ID {
		t.Fatalf("GetProductBySlug: %+v %v", got, err)
	}

	page, _, err := svc.ListProducts(ctx, "tote", 10, "")
	if err != nil || len(page) != 1 {
		t.Fatalf("ListProducts: %+v %v", page, err)
	}
}
