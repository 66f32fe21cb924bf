package routes

import (
	dashboard_handlers "kartvizit.link/handlers/dashboard"
	"kartvizit.link/middlewares"

	"github.com/gofiber/fiber/v2"
)

// registerDashboardRoutes /dashboard altındaki yönetici rotalarını tanımlar.
// Sadece yönetici hesapların (IsSystem == true) erişimine izin verilir.
func registerDashboardRoutes(app *fiber.App) {
	homeHandler := dashboard_handlers.NewDashboardHomeHandler()
	cardHandler := dashboard_handlers.NewDashboardCardHandler()

	dashboardGroup := app.Group("/dashboard")
	dashboardGroup.Use(
		middlewares.AuthMiddleware,
		middlewares.StatusMiddleware,
		middlewares.RequireSystem(),
	)

	// --- Dashboard Ana Sayfa ---
	dashboardGroup.Get("/home", homeHandler.Home) // GET /dashboard/home

	// --- Tüm Kartvizitler ---
	dashboardGroup.Get("/cards", cardHandler.ListCards)              // GET /dashboard/cards
	dashboardGroup.Get("/cards/:id", cardHandler.GetCard)            // GET /dashboard/cards/{id}
	dashboardGroup.Put("/cards/:id", cardHandler.UpdateCard)         // PUT /dashboard/cards/{id}
	dashboardGroup.Delete("/cards/:id", cardHandler.DeleteCard)      // DELETE /dashboard/cards/{id}
	dashboardGroup.Get("/cards/:id/stats", cardHandler.GetCardStats) // GET /dashboard/cards/{id}/stats
}
