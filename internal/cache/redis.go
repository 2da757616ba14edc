// Package cache provides an optional Redis read cache in front of the
// product catalog. When REDIS_HOST is not set the storefront runs
// without it.
package cache

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Connect dials Redis using REDIS_HOST / REDIS_PASSWORD. Returns
// (nil, nil) when REDIS_HOST is unset so callers can skip caching.
func Connect(ctx context.Context) (*redis.Client, error) {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         host,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	logrus.Info("Connected to Redis")
	return client, nil
}

func productListKey(category string) string {
	if category == "" {
		category = "all"
	}
	return fmt.Sprintf("products:list:%s", category)
}

func productKey(productID string) string {
	return fmt.Sprintf("products:id:%s", productID)
}

const categoriesKey = "products:categories"
