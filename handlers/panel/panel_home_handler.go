package handlers // handlers/panel paketi

import (
	"kartvizit.link/configs/configslog"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelHomeHandler panel ana sayfa özeti için handler.
type PanelHomeHandler struct {
	cardService services.ICardService
}

// NewPanelHomeHandler yeni bir PanelHomeHandler örneği oluşturur.
func NewPanelHomeHandler() *PanelHomeHandler {
	return &PanelHomeHandler{cardService: services.NewCardService()}
}

// Home kullanıcının kartvizit sayısını içeren özet döner.
func (h *PanelHomeHandler) Home(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	userName, _ := c.Locals("userName").(string)

	cardCount, err := h.cardService.GetCardCountForUser(c.UserContext(), userID)
	if err != nil {
		configslog.Log.Error("Panel - Home Error", zap.Uint("userID", userID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Özet bilgileri alınamadı"})
	}
	return c.JSON(fiber.Map{
		"username":  userName,
		"cardCount": cardCount,
	})
}
