package handlers // handlers/panel paketi

import (
	"errors"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/queryparams"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelCardHandler kullanıcının kendi kartvizitleri için handler.
type PanelCardHandler struct {
	cardService  services.ICardService
	statsService services.IStatsService
}

// NewPanelCardHandler yeni bir PanelCardHandler örneği oluşturur.
func NewPanelCardHandler() *PanelCardHandler {
	return &PanelCardHandler{
		cardService:  services.NewCardService(),
		statsService: services.NewStatsService(),
	}
}

// CardInput kart oluşturma/güncelleme isteğinin gövdesi. Slug sadece
// oluşturmada dikkate alınır; boş bırakılırsa otomatik üretilir.
type CardInput struct {
	Slug   string            `json:"cardSlug"`
	Detail models.CardDetail `json:"detail"`
}

// ListCards kullanıcının kendi kartvizitlerini sayfalayarak listeler.
func (h *PanelCardHandler) ListCards(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		configslog.Log.Warn("Panel ListCards: Query parse error", zap.Error(err))
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	result, err := h.cardService.GetCardsForUserPaginated(c.UserContext(), userID, params)
	if err != nil {
		configslog.Log.Error("Panel - ListCards Error", zap.Uint("userID", userID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Kartvizitler listelenemedi"})
	}
	return c.JSON(result)
}

// CreateCard yeni kartvizit oluşturur.
func (h *PanelCardHandler) CreateCard(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	var input CardInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz istek gövdesi"})
	}

	card, err := h.cardService.CreateCard(c.UserContext(), userID, input.Detail, input.Slug)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCardSlugTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrCardSlugInvalid), errors.Is(err, services.ErrCrdInvalidInput):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		default:
			configslog.Log.Error("Panel - CreateCard Error", zap.Uint("creatorUserID", userID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Kartvizit oluşturulamadı"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(card)
}

// GetCard tek bir kartviziti detayıyla döner.
func (h *PanelCardHandler) GetCard(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	cardID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz kart ID"})
	}

	card, err := h.cardService.GetCardByID(c.UserContext(), cardID, userID)
	if err != nil {
		return cardErrorResponse(c, cardID, userID, err, "Panel - GetCard Error")
	}
	return c.JSON(card)
}

// UpdateCard kartvizit detaylarını günceller. Panel akışında aktiflik bayrağı
// değiştirilemez; o alan aboneliğin ve yöneticinin kontrolündedir.
func (h *PanelCardHandler) UpdateCard(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	cardID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz kart ID"})
	}

	var input CardInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz istek gövdesi"})
	}

	if err := h.cardService.UpdateCard(c.UserContext(), cardID, userID, input.Detail, nil); err != nil {
		if errors.Is(err, services.ErrCrdInvalidInput) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
		return cardErrorResponse(c, cardID, userID, err, "Panel - UpdateCard Error")
	}
	return c.JSON(fiber.Map{"message": "Kartvizit güncellendi"})
}

// DeleteCard kartviziti siler.
func (h *PanelCardHandler) DeleteCard(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	cardID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz kart ID"})
	}

	if err := h.cardService.DeleteCard(c.UserContext(), cardID, userID); err != nil {
		return cardErrorResponse(c, cardID, userID, err, "Panel - DeleteCard Error")
	}
	return c.JSON(fiber.Map{"message": "Kartvizit silindi"})
}

// GetCardStats kartın görüntülenme ve tıklama sayaçlarını döner.
func (h *PanelCardHandler) GetCardStats(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	cardID, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz kart ID"})
	}

	stats, err := h.statsService.GetCardStats(c.UserContext(), cardID, userID)
	if err != nil {
		return cardErrorResponse(c, cardID, userID, err, "Panel - GetCardStats Error")
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

// cardErrorResponse kart servis hatalarını HTTP durum kodlarına çevirir.
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
