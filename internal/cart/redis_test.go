package cart

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func getRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestAddLine_AccumulatesQuantity(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	store := NewRedisStore(client)
	userID := uuid.NewString()
	defer store.Clear(ctx, userID)

	if err := store.AddLine(ctx, userID, "prod-1", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.AddLine(ctx, userID, "prod-1", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, err := store.Get(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Lines) != 1 || c.Lines[0].Quantity != 5 {
		t.Fatalf("lines = %+v, want one line with quantity 5", c.Lines)
	}
}

func TestAddLine_RejectsNonPositiveQuantity(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	store := NewRedisStore(client)
	if err := store.AddLine(context.Background(), uuid.NewString(), "prod-1", 0); err != ErrQuantityRequired {
		t.Fatalf("err = %v, want ErrQuantityRequired", err)
	}
}

func TestSetLineQuantity_ZeroRemovesLine(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	store := NewRedisStore(client)
	userID := uuid.NewString()
	defer store.Clear(ctx, userID)

	if err := store.AddLine(ctx, userID, "prod-1", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.SetLineQuantity(ctx, userID, "prod-1", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, err := store.Get(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Empty() {
		t.Fatalf("line should be removed, got %+v", c.Lines)
	}
}

func TestSetLineQuantity_Replaces(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	store := NewRedisStore(client)
	userID := uuid.NewString()
	defer store.Clear(ctx, userID)

	store.AddLine(ctx, userID, "prod-1", 2)
	if err := store.SetLineQuantity(ctx, userID, "prod-1", 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, _ := store.Get(ctx, userID)
	if len(c.Lines) != 1 || c.Lines[0].Quantity != 7 {
		t.Fatalf("lines = %+v, want quantity 7", c.Lines)
	}
}

func TestClear(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	store := NewRedisStore(client)
	userID := uuid.NewString()

	store.AddLine(ctx, userID, "prod-1", 1)
	store.AddLine(ctx, userID, "prod-2", 1)
	if err := store.Clear(ctx, userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, _ := store.Get(ctx, userID)
	if !c.Empty() {
		t.Fatalf("cart should be empty, got %+v", c.Lines)
	}
}

func TestGet_UnknownUserIsEmptyCart(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	store := NewRedisStore(client)
	c, err := store.Get(context.Background(), uuid.NewString())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Empty() {
		t.Fatalf("expected empty cart, got %+v", c.Lines)
	}
}
