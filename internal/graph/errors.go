package graph

import (
	"context"
	"errors"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toStatus(field string, err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, cartapp.ErrItemNotFound):
		return status.Error(codes.NotFound, "cart item not found")
	case errors.Is(err, cartapp.ErrCartNotFound):
		return status.Error(codes.NotFound, "cart not found")
	case errors.Is(err, catalogapp.ErrNotFound):
		return status.Error(codes.NotFound, "product not found")
	case errors.Is(err, checkoutapp.ErrInvalidCart):
		return status.Error(codes.FailedPrecondition, checkoutapp.ErrInvalidCart.Error())
	case errors.Is(err, checkoutapp.ErrEmptyCart):
		return status.Error(codes.FailedPrecondition, checkoutapp.ErrEmptyCart.Error())
	case errors.Is(err, cartapp.ErrInvalidInput), errors.Is(err, catalogapp.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%s timed out", field)
	case errors.Is(err, context.Canceled):
		return status.Errorf(codes.Canceled, "%s canceled", field)
	default:
		return status.Errorf(codes.Internal, "%s failed: %v", field, err)
	}
}
