package config

// Redis is an optional backing store for login sessions; deployments
// that run several replicas, or want sessions to survive restarts,
// point the app at a server via REDIS_ADDR (or REDIS_HOST/REDIS_PORT).
// When nothing is configured, or the server cannot be reached at
// startup, the constructor returns nil and the caller falls back to
// the in-process store.

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a Redis client from the environment. Supported
// variables:
//
//	REDIS_ADDR     - host:port (takes precedence)
//	REDIS_HOST and REDIS_PORT - assembled into host:port
//	REDIS_PASSWORD - optional password
//	REDIS_DB       - database number (default 0)
//
// Returns nil when Redis is not configured or the ping fails.
func NewRedisClient() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
			addr = host + ":" + port
		}
	}
	if addr == "" {
		return nil
	}

	dbNum := 0
	if s := os.Getenv("REDIS_DB"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			dbNum = n
		}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       dbNum,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unreachable at %s, using in-memory sessions: %v", addr, err)
		_ = client.Close()
		return nil
	}
	return client
}
