package configs

import (
	"os"
	"time"

	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"

	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// LoadEnv .env dosyasını yükler. Dosya yoksa ortam değişkenleriyle devam edilir.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		configslog.SLog.Info(".env dosyası bulunamadı, ortam değişkenleri kullanılacak.")
	}
}

// GetEnv ortam değişkenini okur, boşsa fallback döner.
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetDB aktif veritabanı bağlantısını döndürür (configsdatabase'e delegasyon).
func GetDB() *gorm.DB {
	return configsdatabase.GetDB()
}

// AppBaseURL Stripe success/cancel yönlendirmeleri için uygulamanın dış adresi.
func AppBaseURL() string {
	return GetEnv("APP_BASE_URL", "http://localhost:3000")
}

var sessionStore *session.Store

// SetupSession cookie tabanlı session store'u oluşturur. Tek instance kullanılır.
func SetupSession() *session.Store {
	if sessionStore != nil {
		return sessionStore
	}
	sessionStore = session.New(session.Config{
		CookieName:     "kartvizit_session",
		Expiration:     72 * time.Hour,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		CookieSecure:   os.Getenv("APP_ENV") == "production",
	})
	return sessionStore
}
