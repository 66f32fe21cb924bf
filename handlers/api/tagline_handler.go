package handlers // handlers/api paketi

import (
	"errors"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TaglineHandler kart formundaki slogan önerisi ucu için handler.
type TaglineHandler struct {
	taglineService services.ITaglineService
}

// NewTaglineHandler yeni bir TaglineHandler örneği oluşturur.
func NewTaglineHandler() *TaglineHandler {
	return &TaglineHandler{taglineService: services.NewTaglineService()}
}

// GenerateTagline meslek/işletme bilgisinden tek cümlelik slogan üretir.
func (h *TaglineHandler) GenerateTagline(c *fiber.Ctx) error {
	var input services.TaglineInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz istek gövdesi"})
	}

	tagline, err := h.taglineService.GenerateTagline(c.UserContext(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaglineInputMissing):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrTaglineNotConfigured):
			return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": err.Error()})
		default:
			configslog.Log.Error("Slogan üretilemedi", zap.Error(err))
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Slogan üretilemedi"})
		}
	}
	return c.JSON(fiber.Map{"tagline": tagline})
}
