// Package graph maps named storefront operations onto the cart, checkout and
// catalog services. Dispatch is by operation name; the query document a
// GraphQL client sends alongside is not interpreted.
package graph

import (
	"context"
	"encoding/json"
	"sort"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Handler decodes its variables and returns the value stored under the
// operation's field name in the response data.
type Handler func(ctx context.Context, vars json.RawMessage) (any, error)

type Registry struct {
	handlers map[string]Handler
	aliases  map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
		aliases:  make(map[string]string),
	}
}

func (r *Registry) Register(field string, h Handler) {
	r.handlers[field] = h
}

// Alias lets a client operation name (e.g. "GetCart") select a field.
func (r *Registry) Alias(operation, field string) {
	r.aliases[operation] = field
}

func (r *Registry) resolve(operation string) (string, Handler, bool) {
	field := operation
	if f, ok := r.aliases[operation]; ok {
		field = f
	}
	h, ok := r.handlers[field]
	return field, h, ok
}

// Execute runs one operation and returns its response data. Errors are
// gRPC status errors.
func (r *Registry) Execute(ctx context.Context, operation string, vars json.RawMessage) (map[string]any, error) {
	field, h, ok := r.resolve(operation)
	if !ok {
		return nil, status.Errorf(codes.Unimplemented, "unknown operation %q", operation)
	}

	if len(vars) == 0 || string(vars) == "null" {
		vars = json.RawMessage("{}")
	}

	out, err := h(ctx, vars)
	if err != nil {
		return nil, toStatus(field, err)
	}
	return map[string]any{field: out}, nil
}

func (r *Registry) Fields() []string {
	out := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func decode(vars json.RawMessage, dst any) error {
	if err := json.Unmarshal(vars, dst); err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid variables: %v", err)
	}
	return nil
}
