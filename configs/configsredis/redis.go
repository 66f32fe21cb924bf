package configsredis

import (
	"context"
	"os"
	"time"

	"kartvizit.link/configs/configslog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var client *redis.Client

// InitRedis Redis bağlantısını açar. Public kart cache'i ve tıklama rate limit'i
// için kullanılır; bağlantı kurulamazsa uygulama Redis'siz (degrade modda) çalışır.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		configslog.Log.Warn("Redis bağlantısı kurulamadı, cache ve rate limit devre dışı", zap.String("addr", addr), zap.Error(err))
		client = nil
		return
	}
	configslog.SLog.Info("Redis bağlantısı başarıyla kuruldu.")
}

// GetClient aktif Redis client'ını döndürür. Redis yoksa nil döner;
// çağıran taraf nil kontrolü yapmalıdır.
func GetClient() *redis.Client {
	return client
}

// SetClient test ortamında client enjekte etmek için kullanılır.
func SetClient(c *redis.Client) {
	client = c
}

// CloseRedis bağlantıyı kapatır.
func CloseRedis() {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		configslog.Log.Error("Redis bağlantısı kapatılamadı", zap.Error(err))
	}
}
