package main

import (
	"os"
	"os/signal"
	"syscall"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/configs/configsredis"
	"kartvizit.link/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func main() {
	configs.LoadEnv()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	configsredis.InitRedis()
	defer configsredis.CloseRedis()

	stripe.Key = configs.GetEnv("STRIPE_SECRET_KEY", "")
	if stripe.Key == "" {
		configslog.SLog.Warn("STRIPE_SECRET_KEY tanımlı değil, ödeme uçları çalışmayacak.")
	}

	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		Views:        engine,
		AppName:      "kartvizit.link",
		ErrorHandler: appErrorHandler,
	})

	routes.SetupRoutes(app)

	// Graceful shutdown: sinyal gelince dinleyici kapatılır, açık istekler biter.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		configslog.SLog.Info("Kapatma sinyali alındı, sunucu durduruluyor...")
		if err := app.Shutdown(); err != nil {
			configslog.Log.Error("Sunucu kapatılırken hata", zap.Error(err))
		}
	}()

	addr := ":" + configs.GetEnv("APP_PORT", "3000")
	configslog.SLog.Infof("Sunucu %s adresinde dinliyor", addr)
	if err := app.Listen(addr); err != nil {
		configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}

	configslog.SLog.Info("Sunucu durduruldu.")
}

// appErrorHandler yakalanmamış hataları içerik tipine göre yanıtlar.
func appErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	configslog.Log.Error("İşlenmemiş istek hatası", zap.Int("status", code), zap.String("path", c.Path()), zap.Error(err))

	if c.Accepts("application/json", "text/html") == "application/json" {
		return c.Status(code).JSON(fiber.Map{"error": "Beklenmeyen bir hata oluştu"})
	}
	return c.Status(code).Render("errors/500", fiber.Map{"Title": "Bir Hata Oluştu"}, "layouts/main")
}
