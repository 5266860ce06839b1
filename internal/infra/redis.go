package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis parses a redis:// URL and returns a connected client. Redis backs
// the dashboard cache and the alert job queue, so an unreachable instance is
// a startup failure, not something to discover on the first request.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}
