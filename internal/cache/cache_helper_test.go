package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type cachedStats struct {
	Users   int `json:"users"`
	Classes int `json:"classes"`
}

func newTestHelper(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCacheHelper(client, "stats:"), mr
}

func TestCacheHelper_SetAndGet(t *testing.T) {
	ctx := context.Background()
	helper, mr := newTestHelper(t)

	stored := cachedStats{Users: 12, Classes: 3}
	if err := helper.Set(ctx, "dashboard", stored, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var loaded cachedStats
	if err := helper.Get(ctx, "dashboard", &loaded); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if loaded != stored {
		t.Errorf("expected %+v, got %+v", stored, loaded)
	}

	t.Run("missing key", func(t *testing.T) {
		var out cachedStats
		if err := helper.Get(ctx, "nothing", &out); err != ErrCacheNotFound {
			t.Errorf("expected ErrCacheNotFound, got %v", err)
		}
	})

	t.Run("expired key", func(t *testing.T) {
		mr.FastForward(2 * time.Minute)
		var out cachedStats
		if err := helper.Get(ctx, "dashboard", &out); err != ErrCacheNotFound {
			t.Errorf("expected ErrCacheNotFound after expiry, got %v", err)
		}
	})
}

func TestCacheHelper_CacheOrExecute(t *testing.T) {
	ctx := context.Background()
	helper, _ := newTestHelper(t)

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return cachedStats{Users: 7, Classes: 2}, nil
	}

	var result cachedStats
	if err := helper.CacheOrExecute(ctx, "summary", &result, time.Minute, fetch); err != nil {
		t.Fatalf("CacheOrExecute failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 fetch on cache miss, got %d", calls)
	}
	if result.Users != 7 {
		t.Errorf("expected fetched value, got %+v", result)
	}

	t.Run("cache hit skips fetch", func(t *testing.T) {
		if err := helper.Set(ctx, "warm", cachedStats{Users: 99}, time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		var out cachedStats
		fetched := false
		err := helper.CacheOrExecute(ctx, "warm", &out, time.Minute, func() (interface{}, error) {
			fetched = true
			return cachedStats{}, nil
		})
		if err != nil {
			t.Fatalf("CacheOrExecute failed: %v", err)
		}
		if fetched {
			t.Error("fetch should not run on a cache hit")
		}
		if out.Users != 99 {
			t.Errorf("expected cached value, got %+v", out)
		}
	})
}

func TestCacheHelper_NilClient(t *testing.T) {
	ctx := context.Background()
	helper := NewCacheHelper(nil, "")

	if err := helper.Set(ctx, "key", "value", time.Minute); err != nil {
		t.Errorf("Set without a client should degrade gracefully: %v", err)
	}

	var out string
	if err := helper.Get(ctx, "key", &out); err != ErrCacheNotAvailable {
		t.Errorf("expected ErrCacheNotAvailable, got %v", err)
	}

	// CacheOrExecute must fall through to the fetch
	var result cachedStats
	err := helper.CacheOrExecute(ctx, "key", &result, time.Minute, func() (interface{}, error) {
		return cachedStats{Users: 4}, nil
	})
	if err != nil {
		t.Fatalf("CacheOrExecute without a client failed: %v", err)
	}
	if result.Users != 4 {
		t.Errorf("expected fetched value, got %+v", result)
	}
}

func TestCacheHelper_InvalidatePattern(t *testing.T) {
	ctx := context.Background()
	helper, _ := newTestHelper(t)

	for _, key := range []string{"class:1", "class:2", "course:1"} {
		if err := helper.Set(ctx, key, "v", time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	if err := helper.InvalidatePattern(ctx, "class:*"); err != nil {
		t.Fatalf("InvalidatePattern failed: %v", err)
	}

	var out string
	if err := helper.Get(ctx, "class:1", &out); err != ErrCacheNotFound {
		t.Errorf("class:1 should be invalidated, got %v", err)
	}
	if err := helper.Get(ctx, "course:1", &out); err != nil {
		t.Errorf("course:1 should survive, got %v", err)
	}
}
