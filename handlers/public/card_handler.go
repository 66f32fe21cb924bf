package handlers // handlers/public paketi

import (
	"errors"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/pkg/vcardgen"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PublicCardHandler public kart sayfası, vCard indirme ve tıklama beacon'ı
// için handler. Bu uçlar oturum gerektirmez.
type PublicCardHandler struct {
	cardService  services.ICardService
	statsService services.IStatsService
}

// NewPublicCardHandler yeni bir PublicCardHandler örneği oluşturur.
func NewPublicCardHandler() *PublicCardHandler {
	return &PublicCardHandler{
		cardService:  services.NewCardService(),
		statsService: services.NewStatsService(),
	}
}

// Show kart sayfasını render eder ve görüntülenme sayacını artırır.
// Sayaç artırımı sayfanın sunulmasını asla engellemez.
func (h *PublicCardHandler) Show(c *fiber.Ctx) error {
	username := c.Params("username")
	slug := c.Params("slug")

	card, err := h.cardService.ResolvePublicCard(c.UserContext(), username, slug)
	if err != nil {
		if errors.Is(err, services.ErrCardInactive) {
			return c.Status(fiber.StatusNotFound).Render("public/card_inactive", fiber.Map{
				"Title": "Kartvizit Pasif",
			}, "layouts/main")
		}
		if errors.Is(err, services.ErrCardNotFound) {
			return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
				"Title": "Kartvizit Bulunamadı",
			}, "layouts/main")
		}
		configslog.Log.Error("Public kart çözümlenemedi", zap.String("username", username), zap.String("slug", slug), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).Render("errors/500", fiber.Map{
			"Title": "Bir Hata Oluştu",
		}, "layouts/main")
	}

	h.statsService.RecordView(c.UserContext(), card.CardID)

	detail := card.Detail
	return c.Render("public/card_view", fiber.Map{
		"Title":    detail.FirstName + " " + detail.LastName,
		"Card":     card,
		"Detail":   detail,
		"VCardURL": "/" + card.Username + "/" + card.Slug + "/vcard",
	}, "layouts/main")
}

// DownloadVCard kartın kişi bilgilerini VCF dosyası olarak indirir.
func (h *PublicCardHandler) DownloadVCard(c *fiber.Ctx) error {
	username := c.Params("username")
	slug := c.Params("slug")

	card, err := h.cardService.ResolvePublicCard(c.UserContext(), username, slug)
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) || errors.Is(err, services.ErrCardInactive) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Kartvizit bulunamadı"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Kartvizit bilgileri alınamadı"})
	}

	data, err := vcardgen.Generate(&card.Detail)
	if err != nil {
		configslog.Log.Error("vCard üretilemedi", zap.Uint("cardID", card.CardID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "vCard üretilemedi"})
	}

	c.Set(fiber.HeaderContentType, "text/vcard; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+vcardgen.FileName(&card.Detail)+`"`)
	return c.Send(data)
}

// Click tıklama beacon'ını işler. Aksiyon anahtarı gövdede gelir.
func (h *PublicCardHandler) Click(c *fiber.Ctx) error {
	username := c.Params("username")
	slug := c.Params("slug")

	var input struct {
		Action string `json:"action"`
	}
	if err := c.BodyParser(&input); err != nil || input.Action == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Aksiyon belirtilmedi"})
	}

	if err := h.statsService.RecordClick(c.UserContext(), username, slug, input.Action); err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownAction):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrCardNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Tıklama kaydedilemedi"})
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}
