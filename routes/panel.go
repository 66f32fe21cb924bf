package routes

import (
	panel_handlers "kartvizit.link/handlers/panel"
	"kartvizit.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerPanelRoutes /panel altındaki rotaları ve middleware'leri tanımlar.
// Sadece normal kullanıcıların (IsSystem == false) erişimine izin verilir.
func registerPanelRoutes(app *fiber.App) {
	panelHomeHandler := panel_handlers.NewPanelHomeHandler()
	cardHandler := panel_handlers.NewPanelCardHandler()

	panelGroup := app.Group("/panel")
	panelGroup.Use(
		middlewares.AuthMiddleware,   // 1. Giriş yapmış mı?
		middlewares.StatusMiddleware, // 2. Hesap aktif mi?
		middlewares.RequireUser(),    // 3. Normal kullanıcı mı?
	)

	// --- Panel Ana Sayfa ---
	panelGroup.Get("/home", panelHomeHandler.Home) // GET /panel/home

	// --- Kullanıcının Kendi Kartvizitleri ---
	panelGroup.Get("/cards", cardHandler.ListCards)              // GET /panel/cards
	panelGroup.Post("/cards", cardHandler.CreateCard)            // POST /panel/cards
	panelGroup.Get("/cards/:id", cardHandler.GetCard)            // GET /panel/cards/{id}
	panelGroup.Put("/cards/:id", cardHandler.UpdateCard)         // PUT /panel/cards/{id}
	panelGroup.Delete("/cards/:id", cardHandler.DeleteCard)      // DELETE /panel/cards/{id}
	panelGroup.Get("/cards/:id/stats", cardHandler.GetCardStats) // GET /panel/cards/{id}/stats
}
