package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/RuneterraShadow/site-encomendas-patos/internal/domain"
)

// keyPrefix versions the blob format, like the original cart_v1 key.
const keyPrefix = "cart_v1:"

type RedisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func (r *RedisRepository) Load(ctx context.Context, cartID string) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, cartKey(cartID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}

	return &cart, nil
}

func (r *RedisRepository) Save(ctx context.Context, cart *domain.Cart) error {
	cart.UpdatedAt = time.Now()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = cart.UpdatedAt
	}

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	// No TTL: the cart must survive until the user clears it or an
	// order succeeds.
	if err := r.client.Set(ctx, cartKey(cart.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, cartID string) error {
	if err := r.client.Del(ctx, cartKey(cartID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}

	return nil
}

func cartKey(cartID string) string {
	return keyPrefix + cartID
}
