package middlewares

import (
	"fmt"
	"time"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/configs/configsredis"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	clickRateLimitWindow = time.Minute
	clickRateLimitMax    = 30
)

// ClickRateLimit public tıklama beacon'larını IP + rota bazında sınırlar.
// Sabit pencereli sayaç Redis'te tutulur; Redis yoksa sınırlama yapılmadan
// geçilir (sayaçlar kritik veri değildir).
func ClickRateLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		client := configsredis.GetClient()
		if client == nil {
			return c.Next()
		}

		key := fmt.Sprintf("ratelimit:click:%s:%s:%s", c.IP(), c.Params("username"), c.Params("slug"))
		ctx := c.UserContext()

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			configslog.Log.Warn("Rate limit sayacı artırılamadı", zap.String("key", key), zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			if err := client.Expire(ctx, key, clickRateLimitWindow).Err(); err != nil {
				configslog.Log.Warn("Rate limit TTL ayarlanamadı", zap.String("key", key), zap.Error(err))
			}
		}
		if count > clickRateLimitMax {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Çok fazla istek, lütfen bekleyin"})
		}
		return c.Next()
	}
}
