package graph

import (
	"context"
	"encoding/json"
	"testing"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartmemory "github.com/dwikikusuma/storefront/internal/cart/infra/memory"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	catalogmemory "github.com/dwikikusuma/storefront/internal/catalog/infra/memory"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	"github.com/dwikikusuma/storefront/internal/checkout/infra/adapter"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type fakePayments struct {
	last domain.SessionRequest
}

func (f *fakePayments) CreateSession(ctx context.Context, req domain.SessionRequest) (domain.Session, error) {
	f.last = req
	return domain.Session{ID: "cs_test", URL: "https://pay.example.com/cs_test"}, nil
}

func newTestRegistry(t *testing.T) (*Registry, *fakePayments) {
	t.Helper()
	cartSvc := cartapp.NewService(cartmemory.NewCartRepo(), "USD")
	payments := &fakePayments{}
	checkoutSvc := checkoutapp.NewService(adapter.NewCartServiceReader(cartSvc), payments, checkoutapp.Options{
		Currency:   "USD",
		SuccessURL: "http://localhost:3000/thankyou?session_id=" + checkoutapp.SessionIDPlaceholder,
		CancelURL:  "http://localhost:3000/cart",
	})
	catalogSvc := catalogapp.NewService(catalogmemory.NewProductRepo())
	if _, err := catalogSvc.CreateProduct(context.Background(), catalogapp.NewProduct{ID: "p1", Name: "Classic Tee", Currency: "USD", Amount: 2500}); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	reg := NewRegistry()
	NewResolver(cartSvc, checkoutSvc, catalogSvc).Register(reg)
	return reg, payments
}

func run[T any](t *testing.T, reg *Registry, op, vars string) T {
	t.Helper()
	data, err := reg.Execute(context.Background(), op, json.RawMessage(vars))
	if err != nil {
		t.Fatalf("%s: %v", op, err)
	}
	if len(data) != 1 {
		t.Fatalf("%s: expected one field, got %v", op, data)
	}
	for _, v := range data {
		out, ok := v.(T)
		if !ok {
			t.Fatalf("%s: unexpected result type %T", op, v)
		}
		return out
	}
	panic("unreachable")
}

func runErr(t *testing.T, reg *Registry, op, vars string) *status.Status {
	t.Helper()
	_, err := reg.Execute(context.Background(), op, json.RawMessage(vars))
	if err == nil {
		t.Fatalf("%s: expected error", op)
	}
	st, ok := status.FromError(err)
	if !ok {
		t.Fatalf("%s: expected status error, got %v", op, err)
	}
	return st
}

func TestCartOperations(t *testing.T) {
	reg, _ := newTestRegistry(t)

	cart := run[Cart](t, reg, "cart", `{"id":"c1"}`)
	if cart.ID != "c1" || cart.TotalItems != 0 || cart.SubTotal.Amount != 0 || len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", cart)
	}

	run[Cart](t, reg, "addItem", `{"input":{"cartId":"c1","id":"sku1","name":"Mug","price":500,"quantity":2}}`)
	cart = run[Cart](t, reg, "AddToCart", `{"input":{"cartId":"c1","id":"sku1","name":"Mug","price":999,"quantity":1}}`)
	if len(cart.Items) != 1 {
		t.Fatalf("expected one line, got %+v", cart.Items)
	}
	it := cart.Items[0]
	if it.Quantity != 3 || it.UnitTotal.Amount != 500 || it.LineTotal.Amount != 1500 || it.LineTotal.Formatted != "$15.00" {
		t.Fatalf("got %+v", it)
	}

	cart = run[Cart](t, reg, "increaseCartItem", `{"input":{"cartId":"c1","id":"sku1"}}`)
	if cart.TotalItems != 4 || cart.SubTotal.Amount != 2000 {
		t.Fatalf("got %+v", cart)
	}

	run[Cart](t, reg, "decreaseCartItem", `{"input":{"cartId":"c1","id":"sku1"}}`)
	run[Cart](t, reg, "decreaseCartItem", `{"input":{"cartId":"c1","id":"sku1"}}`)
	run[Cart](t, reg, "decreaseCartItem", `{"input":{"cartId":"c1","id":"sku1"}}`)
	cart = run[Cart](t, reg, "decreaseCartItem", `{"input":{"cartId":"c1","id":"sku1"}}`)
	if len(cart.Items) != 0 || cart.SubTotal.Amount != 0 {
		t.Fatalf("expected empty cart, got %+v", cart)
	}

	if st := runErr(t, reg, "removeItem", `{"input":{"cartId":"c1","id":"sku1"}}`); st.Code() != codes.NotFound {
		t.Fatalf("expected NotFound, got %v", st)
	}
}

func TestAddItemDefaultsAndValidation(t *testing.T) {
	reg, _ := newTestRegistry(t)

	cart := run[Cart](t, reg, "addItem", `{"input":{"cartId":"c1","id":"sku1","name":"Mug","description":"Blue","price":500}}`)
	if cart.TotalItems != 1 || *cart.Items[0].Description != "Blue" || cart.Items[0].Image != nil {
		t.Fatalf("got %+v", cart)
	}

	cases := map[string]string{
		"zero quantity":   `{"input":{"cartId":"c1","id":"sku1","name":"Mug","price":500,"quantity":0}}`,
		"missing name":    `{"input":{"cartId":"c1","id":"sku1","price":500}}`,
		"missing cart id": `{"input":{"id":"sku1","name":"Mug","price":500}}`,
		"bad json":        `{"input":`,
		"wrong type":      `{"input":{"cartId":"c1","id":"sku1","name":"Mug","price":"five"}}`,
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			if st := runErr(t, reg, "addItem", vars); st.Code() != codes.InvalidArgument {
				t.Fatalf("expected InvalidArgument, got %v", st)
			}
		})
	}
}

func TestCheckoutOperation(t *testing.T) {
	reg, payments := newTestRegistry(t)

	st := runErr(t, reg, "createCheckoutSession", `{"input":{"cartId":"ghost"}}`)
	if st.Code() != codes.FailedPrecondition || st.Message() != "Invalid cart" {
		t.Fatalf("got %v", st)
	}

	run[Cart](t, reg, "cart", `{"id":"c1"}`)
	st = runErr(t, reg, "createCheckoutSession", `{"input":{"cartId":"c1"}}`)
	if st.Code() != codes.FailedPrecondition || st.Message() != "Cart is empty" {
		t.Fatalf("got %v", st)
	}

	run[Cart](t, reg, "addItem", `{"input":{"cartId":"c1","id":"sku1","name":"Mug","price":1000,"quantity":2}}`)
	session := run[CheckoutSession](t, reg, "createCheckoutSession", `{"input":{"cartId":"c1"}}`)
	if session.ID != "cs_test" || session.URL != "https://pay.example.com/cs_test" {
		t.Fatalf("got %+v", session)
	}
	if len(payments.last.LineItems) != 1 || payments.last.LineItems[0].Quantity != 2 || payments.last.LineItems[0].UnitPrice.Amount != 1000 {
		t.Fatalf("got request %+v", payments.last)
	}
}

func TestCatalogOperations(t *testing.T) {
	reg, _ := newTestRegistry(t)

	page := run[ProductPage](t, reg, "products", `{}`)
	if len(page.Items) != 1 || page.Items[0].Price.Formatted != "$25.00" || page.NextCursor != nil {
		t.Fatalf("got %+v", page)
	}

	p := run[Product](t, reg, "product", `{"slug":"classic-tee"}`)
	if p.ID != "p1" {
		t.Fatalf("got %+v", p)
	}

	if st := runErr(t, reg, "product", `{"id":"nope"}`); st.Code() != codes.NotFound {
		t.Fatalf("expected NotFound, got %v", st)
	}
	if st := runErr(t, reg, "product", `{}`); st.Code() != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", st)
	}
}

func TestUnknownOperation(t *testing.T) {
	reg, _ := newTestRegistry(t)
	if st := runErr(t, reg, "dropTables", `{}`); st.Code() != codes.Unimplemented {
		t.Fatalf("expected Unimplemented, got %v", st)
	}

	if _, err := reg.Execute(context.Background(), "cart", nil); status.Code(err) != codes.InvalidArgument {
		t.Fatalf("nil variables should decode as empty and fail validation, got %v", err)
	}
}

func TestFields(t *testing.T) {
	reg, _ := newTestRegistry(t)
	got := reg.Fields()
	want := []string{"addItem", "cart", "createCheckoutSession", "decreaseCartItem", "increaseCartItem", "product", "products", "removeItem"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
