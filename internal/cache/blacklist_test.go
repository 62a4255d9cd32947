package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestRedisBlacklist(t *testing.T) {
	client := testRedisClient(t)
	blacklist := NewRedisBlacklist(client)
	ctx := context.Background()

	listed, err := blacklist.Contains(ctx, "unknown-jti")
	if err != nil {
		t.Fatalf("Contains failed: %v", err)
	}
	if listed {
		t.Error("Unknown jti reported as blacklisted")
	}

	if err := blacklist.Add(ctx, "revoked-jti", time.Hour); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	listed, err = blacklist.Contains(ctx, "revoked-jti")
	if err != nil {
		t.Fatalf("Contains failed: %v", err)
	}
	if !listed {
		t.Error("Revoked jti not reported as blacklisted")
	}
}

func TestMemoryBlacklist(t *testing.T) {
	blacklist := NewMemoryBlacklist()
	ctx := context.Background()

	if err := blacklist.Add(ctx, "jti-1", time.Hour); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	listed, err := blacklist.Contains(ctx, "jti-1")
	if err != nil {
		t.Fatalf("Contains failed: %v", err)
	}
	if !listed {
		t.Error("Expected jti-1 to be blacklisted")
	}

	t.Run("ExpiredEntryDropped", func(t *testing.T) {
		if err := blacklist.Add(ctx, "jti-2", -time.Second); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		listed, err := blacklist.Contains(ctx, "jti-2")
		if err != nil {
			t.Fatalf("Contains failed: %v", err)
		}
		if listed {
			t.Error("Expired entry still reported as blacklisted")
		}
	})
}

func TestCacheHelper(t *testing.T) {
	client := testRedisClient(t)
	helper := NewCacheHelper(client, "test")
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	t.Run("SetAndGet", func(t *testing.T) {
		if err := helper.Set(ctx, "item", payload{Name: "alpha", Count: 3}, time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		var got payload
		if err := helper.Get(ctx, "item", &got); err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Name != "alpha" || got.Count != 3 {
			t.Errorf("Unexpected payload: %+v", got)
		}
	})

	t.Run("MissReturnsNotFound", func(t *testing.T) {
		var got payload
		if err := helper.Get(ctx, "absent", &got); err != ErrCacheNotFound {
			t.Fatalf("Expected ErrCacheNotFound, got %v", err)
		}
	})

	t.Run("CacheOrExecuteFillsOnMiss", func(t *testing.T) {
		calls := 0
		fetch := func() (interface{}, error) {
			calls++
			return payload{Name: "beta", Count: 1}, nil
		}

		var first payload
		if err := helper.CacheOrExecute(ctx, "read-through", &first, time.Minute, fetch); err != nil {
			t.Fatalf("CacheOrExecute failed: %v", err)
		}
		var second payload
		if err := helper.CacheOrExecute(ctx, "read-through", &second, time.Minute, fetch); err != nil {
			t.Fatalf("CacheOrExecute failed: %v", err)
		}

		if calls != 1 {
			t.Errorf("Expected one loader call, got %d", calls)
		}
		if second.Name != "beta" {
			t.Errorf("Unexpected cached payload: %+v", second)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := helper.Set(ctx, "doomed", payload{Name: "x"}, time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := helper.Delete(ctx, "doomed"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		var got payload
		if err := helper.Get(ctx, "doomed", &got); err != ErrCacheNotFound {
			t.Fatalf("Expected ErrCacheNotFound after delete, got %v", err)
		}
	})

	t.Run("PrefixesAreNamespaced", func(t *testing.T) {
		career := NewCacheHelper(client, "career")
		careers := NewCacheHelper(client, "careers")

		if err := career.Set(ctx, "1", payload{Name: "one"}, time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := careers.Set(ctx, "1", payload{Name: "other"}, time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		var got payload
		if err := career.Get(ctx, "1", &got); err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Name != "one" {
			t.Errorf("Prefixes collided: got %+v", got)
		}
	})

	t.Run("NilClientDegrades", func(t *testing.T) {
		disabled := NewCacheHelper(nil, "test")
		var got payload
		if err := disabled.Get(ctx, "anything", &got); err != ErrCacheNotAvailable {
			t.Fatalf("Expected ErrCacheNotAvailable, got %v", err)
		}
		if err := disabled.Set(ctx, "anything", payload{}, time.Minute); err != nil {
			t.Fatalf("Set on nil client must be a no-op, got %v", err)
		}
	})
}
