package graph

import (
	"context"
	"encoding/json"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Resolver holds the services behind every operation.
type Resolver struct {
	Cart     *cartapp.Service
	Checkout *checkoutapp.Service
	Catalog  *catalogapp.Service
}

func NewResolver(cart *cartapp.Service, checkout *checkoutapp.Service, catalog *catalogapp.Service) *Resolver {
	return &Resolver{Cart: cart, Checkout: checkout, Catalog: catalog}
}

// Register adds every storefront operation, plus the operation names the
// web client sends, to reg.
func (r *Resolver) Register(reg *Registry) {
	reg.Register("cart", r.cart)
	reg.Register("addItem", r.addItem)
	reg.Register("removeItem", r.removeItem)
	reg.Register("increaseCartItem", r.increaseCartItem)
	reg.Register("decreaseCartItem", r.decreaseCartItem)
	reg.Register("createCheckoutSession", r.createCheckoutSession)
	reg.Register("products", r.products)
	reg.Register("product", r.product)

	reg.Alias("GetCart", "cart")
	reg.Alias("AddToCart", "addItem")
	reg.Alias("RemoveFromCart", "removeItem")
	reg.Alias("IncreaseCartItem", "increaseCartItem")
	reg.Alias("DecreaseCartItem", "decreaseCartItem")
	reg.Alias("CreateCheckoutSession", "createCheckoutSession")
	reg.Alias("GetProducts", "products")
	reg.Alias("GetProduct", "product")
}

type cartArgs struct {
	ID string `json:"id"`
}

type addItemArgs struct {
	Input struct {
		CartID      string  `json:"cartId"`
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Description *string `json:"description"`
		Image       *string `json:"image"`
		Price       int64   `json:"price"`
		Quantity    *int64  `json:"quantity"`
	} `json:"input"`
}

type cartItemArgs struct {
	Input struct {
		CartID string `json:"cartId"`
		ID     string `json:"id"`
	} `json:"input"`
}

type checkoutArgs struct {
	Input struct {
		CartID string `json:"cartId"`
	} `json:"input"`
}

type productsArgs struct {
	Query  string `json:"query"`
	Limit  int    `json:"limit"`
	Cursor string `json:"cursor"`
}

type productArgs struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

func (r *Resolver) cart(ctx context.Context, raw json.RawMessage) (any, error) {
	var args cartArgs
	if err := decode(raw, &args); err != nil {
		return nil, err
	}

	v, err := r.Cart.GetCart(ctx, args.ID)
	if err != nil {
		return nil, err
	}
	return toCart(v), nil
}

func (r *Resolver) addItem(ctx context.Context, raw json.RawMessage) (any, error) {
	var args addItemArgs
	if err := decode(raw, &args); err != nil {
		return nil, err
	}
	in := args.Input

	var qty int64
	if in.Quantity != nil {
		qty = *in.Quantity
		if qty == 0 {
			return nil, status.Error(codes.InvalidArgument, "quantity must be positive")
		}
	}

	v, err := r.Cart.AddItem(ctx, in.CartID, domain.CartItem{
		ItemID:      in.ID,
		Name:        in.Name,
		Description: in.Description,
		Image:       in.Image,
		Price:       in.Price,
	}, qty)
	if err != nil {
		return nil, err
	}
	return toCart(v), nil
}

func (r *Resolver) removeItem(ctx context.Context, raw json.RawMessage) (any, error) {
	return r.mutateItem(ctx, raw, r.Cart.RemoveItem)
}

func (r *Resolver) increaseCartItem(ctx context.Context, raw json.RawMessage) (any, error) {
	return r.mutateItem(ctx, raw, r.Cart.IncreaseItem)
}

func (r *Resolver) decreaseCartItem(ctx context.Context, raw json.RawMessage) (any, error) {
	return r.mutateItem(ctx, raw, r.Cart.DecreaseItem)
}

func (r *Resolver) mutateItem(ctx context.Context, raw json.RawMessage, fn func(ctx context.Context, cartID, itemID string) (cartapp.View, error)) (any, error) {
	var args cartItemArgs
	if err := decode(raw, &args); err != nil {
		return nil, err
	}

	v, err := fn(ctx, args.Input.CartID, args.Input.ID)
	if err != nil {
		return nil, err
	}
	return toCart(v), nil
}

func (r *Resolver) createCheckoutSession(ctx context.Context, raw json.RawMessage) (any, error) {
	var args checkoutArgs
	if err := decode(raw, &args); err != nil {
		return nil, err
	}

	s, err := r.Checkout.CreateSession(ctx, args.Input.CartID)
	if err != nil {
		return nil, err
	}
	return toSession(s), nil
}

func (r *Resolver) products(ctx context.Context, raw json.RawMessage) (any, error) {
	var args productsArgs
	if err := decode(raw, &args); err != nil {
		return nil, err
	}

	items, next, err := r.Catalog.ListProducts(ctx, args.Query, args.Limit, args.Cursor)
	if err != nil {
		return nil, err
	}

	page := ProductPage{Items: make([]Product, 0, len(items))}
	for _, p := range items {
		page.Items = append(page.Items, toProduct(p))
	}
	if next != "" {
		page.NextCursor = &next
	}
	return page, nil
}

func (r *Resolver) product(ctx context.Context, raw json.RawMessage) (any, error) {
	var args productArgs
	if err := decode(raw, &args); err != nil {
		return nil, err
	}

	var (
		p   catalogdomain.Product
		err error
	)
	if args.ID != "" {
		p, err = r.Catalog.GetProduct(ctx, args.ID)
	} else {
		p, err = r.Catalog.GetProductBySlug(ctx, args.Slug)
	}
	if err != nil {
		return nil, err
	}
	return toProduct(p), nil
}
