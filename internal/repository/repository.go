package repository

import (
	"context"
	"errors"

	"github.com/RuneterraShadow/site-encomendas-patos/internal/domain"
)

var ErrCartNotFound = errors.New("cart not found")

// CartRepository defines durable cart storage. The cart is stored as a
// single serialized blob per cart id; it is read once when a cart is
// first touched and rewritten on every mutation.
type CartRepository interface {
	Load(ctx context.Context, cartID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, cartID string) error
}
