// File: utils/cache.go
package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vetcare/config"
	"vetcare/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheClient is the generic cache client.
var CacheClient *redis.Client

// InitCache initializes the Redis cache client and checks it answers.
func InitCache() error {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := CacheClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis (cache): %w", err)
	}
	return nil
}

const sessionListKey = "vetcare:sessions:all"

// SessionListCache keeps the full ordered session listing in Redis.
// Cache failures are logged and treated as misses; the database stays the source of truth.
type SessionListCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewSessionListCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *SessionListCache {
	return &SessionListCache{client: client, ttl: ttl, logger: logger}
}

func (c *SessionListCache) GetSessions(ctx context.Context) ([]models.Session, bool) {
	raw, err := c.client.Get(ctx, sessionListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("session cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var sessions []models.Session
	if err := json.Unmarshal(raw, &sessions); err != nil {
		c.logger.Warn("session cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return sessions, true
}

func (c *SessionListCache) SetSessions(ctx context.Context, sessions []models.Session) {
	raw, err := json.Marshal(sessions)
	if err != nil {
		c.logger.Warn("session cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, sessionListKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("session cache write failed", zap.Error(err))
	}
}

func (c *SessionListCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, sessionListKey).Err(); err != nil {
		c.logger.Warn("session cache invalidation failed", zap.Error(err))
	}
}
