package routes

import (
	public_handlers "kartvizit.link/handlers/public"
	"kartvizit.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerPublicRoutes public kart rotalarını tanımlar. Oturum gerektirmez.
// /:username/:slug deseni geniş olduğu için bu fonksiyon diğer tüm rota
// gruplarından sonra çağrılmalıdır.
func registerPublicRoutes(app *fiber.App) {
	cardHandler := public_handlers.NewPublicCardHandler()

	app.Get("/:username/:slug", cardHandler.Show)                                       // GET /{username}/{slug}
	app.Get("/:username/:slug/vcard", cardHandler.DownloadVCard)                        // GET /{username}/{slug}/vcard
	app.Post("/:username/:slug/click", middlewares.ClickRateLimit(), cardHandler.Click) // POST /{username}/{slug}/click
}
