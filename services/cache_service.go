// services/cache_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/configs/configsredis"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	cacheKeyPrefix = "cache:"
	publicCardTTL  = 5 * time.Minute
	cacheOpTimeout = 2 * time.Second
)

// ICacheService public kart çözümlemesi için kısa ömürlü cache arayüzü.
// Redis yoksa tüm çağrılar sessizce miss/no-op olur.
type ICacheService interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CacheService ICacheService'in Redis implementasyonu.
type CacheService struct {
	client *redis.Client
}

// NewCacheService global Redis client'ı ile cache servisi oluşturur.
func NewCacheService() ICacheService {
	return &CacheService{client: configsredis.GetClient()}
}

// NewCacheServiceWithClient test için client enjekte eder.
func NewCacheServiceWithClient(client *redis.Client) ICacheService {
	return &CacheService{client: client}
}

// PublicCardCacheKey public kart cache anahtarını üretir.
func PublicCardCacheKey(username, slug string) string {
	return fmt.Sprintf("public_card:%s:%s", username, slug)
}

func (c *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()

	val, err := c.client.Get(ctx, cacheKeyPrefix+key).Result()
	if err != nil {
		return false, nil // Cache miss veya Redis hatası; her iki durumda da miss say
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		configslog.Log.Warn("Cache verisi çözümlenemedi, kayıt siliniyor", zap.String("key", key), zap.Error(err))
		_ = c.Delete(ctx, key)
		return false, nil
	}
	return true, nil
}

func (c *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()
	return c.client.Set(ctx, cacheKeyPrefix+key, data, ttl).Err()
}

func (c *CacheService) Delete(ctx context.Context, key string) error {
	if c.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	defer cancel()
	return c.client.Del(ctx, cacheKeyPrefix+key).Err()
}

var _ ICacheService = (*CacheService)(nil)
