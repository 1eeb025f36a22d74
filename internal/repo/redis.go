// Package repo holds the optional Redis-backed helpers around the core.
package repo

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"ClassVault/config"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// InitRedis connects to Redis. Unlike the record store this dependency is
// optional: on failure nil is returned and callers degrade to in-process
// throttling.
func InitRedis(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Printf("redis unavailable, login throttle degrades to in-process: %v", err)
		return nil
	}
	log.Println("init redis success")
	return client
}

const (
	throttleMaxFailures = 10
	throttleWindow      = 10 * time.Minute
)

// LoginThrottle counts failed login attempts per team. With Redis the count
// lives in a TTL key and survives restarts; without it a per-team rate
// limiter applies instead.
type LoginThrottle struct {
	rdb *redis.Client

	mu       sync.Mutex
	limiters map[int]*rate.Limiter
}

// NewLoginThrottle builds a throttle over an optional Redis client.
func NewLoginThrottle(rdb *redis.Client) *LoginThrottle {
	return &LoginThrottle{
		rdb:      rdb,
		limiters: make(map[int]*rate.Limiter),
	}
}

func throttleKey(teamNumber int) string {
	return fmt.Sprintf("login_fail:%d", teamNumber)
}

func (t *LoginThrottle) limiter(teamNumber int) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()
	limiter, ok := t.limiters[teamNumber]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(throttleWindow/throttleMaxFailures), throttleMaxFailures)
		t.limiters[teamNumber] = limiter
	}
	return limiter
}

// Allow reports whether another login attempt for the team is permitted.
func (t *LoginThrottle) Allow(ctx context.Context, teamNumber int) bool {
	if t.rdb == nil {
		return t.limiter(teamNumber).Allow()
	}
	count, err := t.rdb.Get(ctx, throttleKey(teamNumber)).Int()
	if err != nil {
		// Missing key or a Redis hiccup both mean "do not lock out".
		return true
	}
	return count < throttleMaxFailures
}

// Fail records a failed attempt.
func (t *LoginThrottle) Fail(ctx context.Context, teamNumber int) {
	if t.rdb == nil {
		return
	}
	key := throttleKey(teamNumber)
	if err := t.rdb.Incr(ctx, key).Err(); err != nil {
		log.Printf("record login failure: %v", err)
		return
	}
	_ = t.rdb.Expire(ctx, key, throttleWindow).Err()
}

// Reset clears the failure count after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, teamNumber int) {
	if t.rdb == nil {
		return
	}
	_ = t.rdb.Del(ctx, throttleKey(teamNumber)).Err()
}
