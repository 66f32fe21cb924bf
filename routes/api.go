package routes

import (
	api_handlers "kartvizit.link/handlers/api"
	"kartvizit.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerAPIRoutes /api altındaki ödeme, slogan ve yükleme rotalarını tanımlar.
// Webhook uçları oturum yerine sağlayıcı imzasıyla doğrulanır.
func registerAPIRoutes(app *fiber.App) {
	paymentHandler := api_handlers.NewPaymentHandler()
	taglineHandler := api_handlers.NewTaglineHandler()
	uploadHandler := api_handlers.NewUploadHandler()

	apiGroup := app.Group("/api")

	// --- Public uçlar ---
	apiGroup.Get("/plans", paymentHandler.ListPlans)               // GET /api/plans
	apiGroup.Post("/stripe/webhook", paymentHandler.StripeWebhook) // POST /api/stripe/webhook
	apiGroup.Post("/paypal/webhook", paymentHandler.PayPalWebhook) // POST /api/paypal/webhook

	// --- Oturum gerektiren uçlar ---
	userRoutes := apiGroup.Group("")
	userRoutes.Use(
		middlewares.AuthMiddleware,
		middlewares.StatusMiddleware,
		middlewares.RequireUser(),
	)
	userRoutes.Post("/stripe/create-checkout-session", paymentHandler.CreateCheckoutSession) // POST /api/stripe/create-checkout-session
	userRoutes.Post("/paypal/create-order", paymentHandler.CreatePayPalOrder)                // POST /api/paypal/create-order
	userRoutes.Post("/tagline", taglineHandler.GenerateTagline)                              // POST /api/tagline
	userRoutes.Post("/uploads", uploadHandler.UploadImage)                                   // POST /api/uploads
}
