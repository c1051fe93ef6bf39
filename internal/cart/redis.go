package cart

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const cartKeyPrefix = "cart:"

var ErrQuantityRequired = errors.New("quantity must be at least 1")

type Store interface {
	Get(ctx context.Context, userID string) (*Cart, error)
	AddLine(ctx context.Context, userID, productID string, quantity int) error
	SetLineQuantity(ctx context.Context, userID, productID string, quantity int) error
	RemoveLine(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
}

// RedisStore keeps each cart as a hash of product id -> quantity.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, userID string) (*Cart, error) {
	fields, err := s.client.HGetAll(ctx, cartKeyPrefix+userID).Result()
	if err != nil {
		return nil, err
	}
	c := &Cart{UserID: userID}
	for pid, raw := range fields {
		qty, err := strconv.Atoi(raw)
		if err != nil || qty < 1 {
			continue
		}
		c.Lines = append(c.Lines, Line{ProductID: pid, Quantity: qty})
	}
	// HGetAll ordering is unspecified; keep output stable
	sort.Slice(c.Lines, func(i, j int) bool { return c.Lines[i].ProductID < c.Lines[j].ProductID })
	return c, nil
}

// AddLine increments the quantity for the product, creating the line if
// it does not exist yet.
func (s *RedisStore) AddLine(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 1 {
		return ErrQuantityRequired
	}
	return s.client.HIncrBy(ctx, cartKeyPrefix+userID, productID, int64(quantity)).Err()
}

// SetLineQuantity replaces the line's quantity. Zero or below removes the
// line rather than persisting a non-positive value.
func (s *RedisStore) SetLineQuantity(ctx context.Context, userID, productID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveLine(ctx, userID, productID)
	}
	return s.client.HSet(ctx, cartKeyPrefix+userID, productID, quantity).Err()
}

func (s *RedisStore) RemoveLine(ctx context.Context, userID, productID string) error {
	return s.client.HDel(ctx, cartKeyPrefix+userID, productID).Err()
}

func (s *RedisStore) Clear(ctx context.Context, userID string) error {
	return s.client.Del(ctx, cartKeyPrefix+userID).Err()
}
