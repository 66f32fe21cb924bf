package middlewares

import (
	"kartvizit.link/configs/configslog"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthMiddleware oturum açmamış istekleri reddeder. Router, session'daki
// kimlik bilgilerini Locals'a koyar; burada sadece varlığı kontrol edilir.
func AuthMiddleware(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Bu işlem için giriş yapmalısınız"})
	}
	return c.Next()
}

// GuestMiddleware oturum açmış kullanıcıyı login/register uçlarından uzak tutar.
func GuestMiddleware(c *fiber.Ctx) error {
	if userID, ok := c.Locals("userID").(uint); ok && userID != 0 {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Zaten giriş yapmış durumdasınız"})
	}
	return c.Next()
}

// StatusMiddleware hesabı pasife alınmış kullanıcının isteklerini keser.
// Bayrak her istekte veritabanından okunur; pasifleştirme anında etkili olur.
func StatusMiddleware(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Bu işlem için giriş yapmalısınız"})
	}
	user, err := services.NewUserService().GetProfile(c.UserContext(), userID)
	if err != nil {
		configslog.Log.Warn("StatusMiddleware: kullanıcı okunamadı", zap.Uint("userID", userID), zap.Error(err))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Oturum bilgileri geçersiz"})
	}
	if !user.IsActive {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Hesabınız pasif durumda"})
	}
	return c.Next()
}

// RequireUser sadece normal kullanıcılara (IsSystem == false) izin verir.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isSystem, ok := c.Locals("isSystem").(bool); !ok || isSystem {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Bu alan kullanıcı hesapları içindir"})
		}
		return c.Next()
	}
}

// RequireSystem sadece yönetici hesaplara (IsSystem == true) izin verir.
func RequireSystem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isSystem, ok := c.Locals("isSystem").(bool); !ok || !isSystem {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Bu alan yönetici hesapları içindir"})
		}
		return c.Next()
	}
}
