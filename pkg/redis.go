package pkg

import (
	"fmt"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a redis client from a URL such as
// redis://:password@localhost:6379/0. An empty URL returns nil and the
// service runs without caching.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	return redis.NewClient(opts), nil
}
