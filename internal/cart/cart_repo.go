package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const cartKeyPrefix = "cart:"

// Carts outlive sessions but not forever, abandoned guests expire.
const cartTTL = 30 * 24 * time.Hour

//go:generate mockgen -source=cart_repo.go -destination=../mock/cart/cart_repo_mock.go -package=mock
type Repository interface {
	Get(ctx context.Context, userID string) (Cart, error)
	Save(ctx context.Context, userID string, c Cart) error
	Delete(ctx context.Context, userID string) error
}

type redisRepository struct {
	rdb *redis.Client
}

func NewRepository(rdb *redis.Client) Repository {
	return &redisRepository{rdb: rdb}
}

func (r *redisRepository) Get(ctx context.Context, userID string) (Cart, error) {
	raw, err := r.rdb.Get(ctx, cartKeyPrefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Cart{}, nil
		}
		return Cart{}, err
	}

	var c Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		// A corrupt entry must not brick the cart forever, start fresh.
		return Cart{}, nil
	}
	return c, nil
}

func (r *redisRepository) Save(ctx context.Context, userID string, c Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, cartKeyPrefix+userID, raw, cartTTL).Err()
}

func (r *redisRepository) Delete(ctx context.Context, userID string) error {
	return r.rdb.Del(ctx, cartKeyPrefix+userID).Err()
}
