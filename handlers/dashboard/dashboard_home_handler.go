package handlers // handlers/dashboard paketi

import (
	"kartvizit.link/configs/configslog"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DashboardHomeHandler yönetici ana sayfa özeti için handler.
type DashboardHomeHandler struct {
	cardService services.ICardService
}

// NewDashboardHomeHandler yeni bir DashboardHomeHandler örneği oluşturur.
func NewDashboardHomeHandler() *DashboardHomeHandler {
	return &DashboardHomeHandler{cardService: services.NewCardService()}
}

// Home sistem geneli özet sayıları döner.
func (h *DashboardHomeHandler) Home(c *fiber.Ctx) error {
	totalCards, err := h.cardService.GetTotalCardCount(c.UserContext())
	if err != nil {
		configslog.Log.Error("Dashboard - Home Error", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Özet bilgileri alınamadı"})
	}
	return c.JSON(fiber.Map{"totalCards": totalCards})
}
