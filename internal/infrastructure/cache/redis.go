package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// OpenRedis connects and pings. An empty addr means Redis is not configured:
// the client is nil and so is the error.
func OpenRedis(ctx context.Context, addr string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}
	r := redis.NewClient(&redis.Options{
		Addr:         addr,
		DB:           db,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	logrus.WithFields(logrus.Fields{"addr": addr, "db": db}).Info("redis: connected")
	return r, nil
}
