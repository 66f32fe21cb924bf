package handlers // handlers/api paketi

import (
	"errors"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// PaymentHandler plan listesi, checkout ve sağlayıcı webhook uçları için handler.
type PaymentHandler struct {
	paymentService services.IPaymentService
	webhookSecret  string
}

// NewPaymentHandler yeni bir PaymentHandler örneği oluşturur.
func NewPaymentHandler() *PaymentHandler {
	return &PaymentHandler{
		paymentService: services.NewPaymentService(),
		webhookSecret:  configs.GetEnv("STRIPE_WEBHOOK_SECRET", ""),
	}
}

// ListPlans abonelik planlarını döner. Oturum gerektirmez.
func (h *PaymentHandler) ListPlans(c *fiber.Ctx) error {
	plans, err := h.paymentService.ListPlans(c.UserContext())
	if err != nil {
		configslog.Log.Error("Planlar listelenemedi", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Planlar listelenemedi"})
	}
	return c.JSON(plans)
}

// CreateCheckoutSession seçilen plan için Stripe checkout URL'i döner.
func (h *PaymentHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	var input struct {
		CardID  uint   `json:"cardId"`
		PriceID string `json:"priceId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz istek gövdesi"})
	}

	checkoutSession, err := h.paymentService.CreateCheckoutSession(c.UserContext(), userID, input.CardID, input.PriceID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPlanNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrPaymentCardInvalid):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		default:
			configslog.Log.Error("Checkout oturumu açılamadı", zap.Uint("userID", userID), zap.Uint("cardID", input.CardID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Ödeme oturumu oluşturulamadı"})
		}
	}
	return c.JSON(checkoutSession)
}

// StripeWebhook imzalı Stripe olaylarını işler. İmza doğrulanamayan istekler
// reddedilir; doğrulanmış ama eksik veriyle gelen olaylar 200 ile kapatılır
// (sağlayıcının tekrar denemesinin faydası yoktur).
func (h *PaymentHandler) StripeWebhook(c *fiber.Ctx) error {
	if h.webhookSecret == "" {
		configslog.Log.Error("STRIPE_WEBHOOK_SECRET tanımlı değil, webhook reddedildi")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Webhook yapılandırılmamış"})
	}

	event, err := webhook.ConstructEvent(c.Body(), c.Get("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		configslog.Log.Warn("Webhook imzası doğrulanamadı", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz webhook imzası"})
	}

	if err := h.paymentService.HandleStripeEvent(c.UserContext(), event); err != nil {
		// Kalıcı olmayan hata: sağlayıcı olayı tekrar denesin.
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Olay işlenemedi"})
	}
	return c.JSON(fiber.Map{"received": true})
}

// CreatePayPalOrder PayPal siparişi oluşturur. Entegrasyon henüz etkin değil.
func (h *PaymentHandler) CreatePayPalOrder(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	var input struct {
		CardID uint `json:"cardId"`
		PlanID uint `json:"planId"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz istek gövdesi"})
	}

	url, err := h.paymentService.CreatePayPalOrder(c.UserContext(), userID, input.CardID, input.PlanID)
	if err != nil {
		if errors.Is(err, services.ErrPayPalUnsupported) {
			return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Sipariş oluşturulamadı"})
	}
	return c.JSON(fiber.Map{"url": url})
}

// PayPalWebhook PayPal olaylarını işler. Entegrasyon henüz etkin değil.
func (h *PaymentHandler) PayPalWebhook(c *fiber.Ctx) error {
	if err := h.paymentService.HandlePayPalEvent(c.UserContext(), c.Body()); err != nil {
		if errors.Is(err, services.ErrPayPalUnsupported) {
			return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Olay işlenemedi"})
	}
	return c.JSON(fiber.Map{"received": true})
}
