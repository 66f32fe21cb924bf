package handlers // handlers/dashboard paketi

import (
	"errors"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/queryparams"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DashboardCardHandler tüm kartvizitler üzerinde yönetici işlemleri için handler.
type DashboardCardHandler struct {
	cardService  services.ICardService
	statsService services.IStatsService
}

// NewDashboardCardHandler yeni bir DashboardCardHandler örneği oluşturur.
func NewDashboardCardHandler() *DashboardCardHandler {
	return &DashboardCardHandler{
		cardService:  services.NewCardService(),
		statsService: services.NewStatsService(),
	}
}

// AdminCardInput yönetici güncelleme isteğinin gövdesi. IsActive nil
// bırakılırsa bayrak değiştirilmez.
type AdminCardInput struct {
	Detail   models.CardDetail `json:"detail"`
	IsActive *bool             `json:"isActive"`
}

// ListCards sistemdeki tüm kartvizitleri sayfalayarak listeler.
func (h *DashboardCardHandler) ListCards(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		configslog.Log.Warn("Dashboard ListCards: Query parse error", zap.Error(err))
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	result, err := h.cardService.GetAllCardsPaginated(c.UserContext(), params)
	if err != nil {
		configslog.Log.Error("Dashboard - ListCards Error", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Kartvizitler listelenemedi"})
	}
	return c.JSON(result)
}

// GetCard tek bir kartviziti detayıyla döner.
func (h *DashboardCardHandler) GetCard(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	cardID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz kart ID"})
	}

	card, err := h.cardService.GetCardByID(c.UserContext(), cardID, userID)
	if err != nil {
		return cardErrorResponse(c, cardID, userID, err, "Dashboard - GetCard Error")
	}
	return c.JSON(card)
}

// UpdateCard kart detaylarını ve istenirse aktiflik bayrağını günceller.
// Bayrağı elle değiştirmek aboneliği beklemeyen istisnai durumlar içindir.
func (h *DashboardCardHandler) UpdateCard(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	cardID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz kart ID"})
	}

	var input AdminCardInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz istek gövdesi"})
	}

	if err := h.cardService.UpdateCard(c.UserContext(), cardID, userID, input.Detail, input.IsActive); err != nil {
		if errors.Is(err, services.ErrCrdInvalidInput) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		return cardErrorResponse(c, cardID, userID, err, "Dashboard - UpdateCard Error")
	}
	return c.JSON(fiber.Map{"message": "Kartvizit güncellendi"})
}

// DeleteCard kartviziti siler.
func (h *DashboardCardHandler) DeleteCard(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	cardID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz kart ID"})
	}

	if err := h.cardService.DeleteCard(c.UserContext(), cardID, userID); err != nil {
		return cardErrorResponse(c, cardID, userID, err, "Dashboard - DeleteCard Error")
	}
	return c.JSON(fiber.Map{"message": "Kartvizit silindi"})
}

// GetCardStats herhangi bir kartın sayaçlarını döner (yönetici görünümü).
func (h *DashboardCardHandler) GetCardStats(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	cardID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz kart ID"})
	}

	stats, err := h.statsService.GetCardStats(c.UserContext(), cardID, userID)
	if err != nil {
		return cardErrorResponse(c, cardID, userID, err, "Dashboard - GetCardStats Error")
	}
	return c.JSON(stats)
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, errors.New("geçersiz ID parametresi")
	}
	return uint(id), nil
}

func cardErrorResponse(c *fiber.Ctx, cardID, userID uint, err error, logMsg string) error {
	switch {
	case errors.Is(err, services.ErrCardNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrCardForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	default:
		configslog.Log.Error(logMsg, zap.Uint("cardID", cardID), zap.Uint("userID", userID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "İşlem gerçekleştirilemedi"})
	}
}
