package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/oumacavin/smartlearn-backend/internal/domain"
	"github.com/oumacavin/smartlearn-backend/internal/platform/logger"
)

const (
	userCacheKeyPrefix = "user:info:"
	userCacheTTL       = 24 * time.Hour
)

// UserCache mirrors full user rows in Redis. The cached value is the JSON
// encoding of the whole domain.User struct so every relational column,
// updated_at included, survives the round trip; a partial mirror would
// silently diverge from the source of truth.
type UserCache struct {
	rdb *goredis.Client
	log *logger.Logger
}

// NewUserCacheFromEnv returns (nil, nil) when REDIS_ADDR is unset: the cache
// is optional and callers fall through to the relational store.
func NewUserCacheFromEnv(baseLog *logger.Logger) (*UserCache, error) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, nil
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewUserCache(rdb, baseLog), nil
}

func NewUserCache(rdb *goredis.Client, baseLog *logger.Logger) *UserCache {
	return &UserCache{rdb: rdb, log: baseLog.With("cache", "UserCache")}
}

func (c *UserCache) Enabled() bool { return c != nil && c.rdb != nil }

func (c *UserCache) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if !c.Enabled() {
		return nil, nil
	}
	raw, err := c.rdb.Get(ctx, userCacheKeyPrefix+id.String()).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("user cache get: %w", err)
	}
	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("user cache decode: %w", err)
	}
	return &u, nil
}

func (c *UserCache) Set(ctx context.Context, u *domain.User) error {
	if !c.Enabled() || u == nil {
		return nil
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("user cache encode: %w", err)
	}
	if err := c.rdb.Set(ctx, userCacheKeyPrefix+u.ID.String(), raw, userCacheTTL).Err(); err != nil {
		return fmt.Errorf("user cache set: %w", err)
	}
	return nil
}

func (c *UserCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	if !c.Enabled() {
		return nil
	}
	if err := c.rdb.Del(ctx, userCacheKeyPrefix+id.String()).Err(); err != nil {
		return fmt.Errorf("user cache invalidate: %w", err)
	}
	return nil
}

func (c *UserCache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Close()
}
