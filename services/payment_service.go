// services/payment_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/repositories"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PaymentServiceError özel servis hataları
type PaymentServiceError string

func (e PaymentServiceError) Error() string { return string(e) }

const (
	ErrPlanNotFound       PaymentServiceError = "abonelik planı bulunamadı"
	ErrCheckoutFailed     PaymentServiceError = "ödeme oturumu oluşturulamadı"
	ErrPayPalUnsupported  PaymentServiceError = "paypal entegrasyonu henüz etkin değil"
	ErrWebhookProcessing  PaymentServiceError = "webhook olayı işlenemedi"
	ErrPaymentCardInvalid PaymentServiceError = "ödeme yapılacak kart geçerli değil"
)

// Webhook metadata anahtarları. Checkout oturumuna hem oturum hem abonelik
// seviyesinde yazılır; olay işleyicisi hangisi gelirse onu okur.
const (
	metadataKeyUserUID = "firebaseUid"
	metadataKeyCardID  = "cardId"
)

// CheckoutSession panele dönen checkout oturumu özeti.
type CheckoutSession struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// IPaymentService abonelik ödemeleri için arayüz.
type IPaymentService interface {
	ListPlans(ctx context.Context) ([]models.Plan, error)
	// CreateCheckoutSession plan ve kart doğrulaması sonrası Stripe checkout
	// oturumunu açar. Kullanıcı dönen URL'e yönlendirilir.
	CreateCheckoutSession(ctx context.Context, userID, cardID uint, priceID string) (*CheckoutSession, error)
	// HandleStripeEvent imzası doğrulanmış bir Stripe olayını işler.
	// Aynı olay kimliği ikinci kez geldiğinde sessizce atlanır.
	HandleStripeEvent(ctx context.Context, event stripe.Event) error
	CreatePayPalOrder(ctx context.Context, userID, cardID uint, planID uint) (string, error)
	HandlePayPalEvent(ctx context.Context, payload []byte) error
}

// PaymentService IPaymentService arayüzünü uygular.
type PaymentService struct {
	cardRepo    repositories.ICardRepository
	userRepo    repositories.IUserRepository
	planRepo    repositories.IPlanRepository
	subRepo     repositories.ISubscriptionRepository
	webhookRepo repositories.IWebhookEventRepository
	cache       ICacheService

	// createSession testte sahte oturum dönecek şekilde değiştirilebilir.
	createSession func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// NewPaymentService yeni bir PaymentService örneği oluşturur.
func NewPaymentService() IPaymentService {
	return NewPaymentServiceWithDB(configs.GetDB(), NewCacheService())
}

// NewPaymentServiceWithDB test için bağımlılıkları enjekte eder.
func NewPaymentServiceWithDB(db *gorm.DB, cache ICacheService) *PaymentService {
	return &PaymentService{
		cardRepo:      repositories.NewCardRepositoryWithDB(db),
		userRepo:      repositories.NewUserRepositoryWithDB(db),
		planRepo:      repositories.NewPlanRepositoryWithDB(db),
		subRepo:       repositories.NewSubscriptionRepositoryWithDB(db),
		webhookRepo:   repositories.NewWebhookEventRepositoryWithDB(db),
		cache:         cache,
		createSession: session.New,
	}
}

// ListPlans mevcut abonelik planlarını fiyat sırasıyla döner.
func (s *PaymentService) ListPlans(ctx context.Context) ([]models.Plan, error) {
	return s.planRepo.GetAll(ctx)
}

// CreateCheckoutSession fiyat kimliğini plan tablosunda, kartı da sahiplikte
// doğruladıktan sonra abonelik modunda bir checkout oturumu açar. Kullanıcı
// UID'si ve kart ID'si metadata olarak hem oturuma hem aboneliğe yazılır ki
// sonraki fatura olayları karta geri bağlanabilsin.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, userID, cardID uint, priceID string) (*CheckoutSession, error) {
	plan, err := s.planRepo.FindByStripePriceID(ctx, priceID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrPaymentCardInvalid
	}
	card, err := s.cardRepo.GetCardByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPaymentCardInvalid
		}
		return nil, err
	}
	if card.CreatorUserID != userID {
		return nil, ErrPaymentCardInvalid
	}

	metadata := map[string]string{
		metadataKeyUserUID: user.UID,
		metadataKeyCardID:  strconv.FormatUint(uint64(card.ID), 10),
	}
	baseURL := configs.AppBaseURL()
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(plan.StripePriceID),
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(user.Email),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: metadata,
		},
		SuccessURL: stripe.String(fmt.Sprintf("%s/panel/cards/%d?checkout=success", baseURL, card.ID)),
		CancelURL:  stripe.String(fmt.Sprintf("%s/panel/cards/%d?checkout=cancelled", baseURL, card.ID)),
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	checkoutSession, err := s.createSession(params)
	if err != nil {
		configslog.Log.Error("Stripe checkout oturumu açılamadı",
			zap.Uint("userID", userID), zap.Uint("cardID", cardID), zap.String("priceID", priceID), zap.Error(err))
		return nil, ErrCheckoutFailed
	}
	configslog.SLog.Infof("Checkout oturumu açıldı: kart %d, plan %s", card.ID, plan.Name)
	return &CheckoutSession{SessionID: checkoutSession.ID, URL: checkoutSession.URL}, nil
}

// stripeObjectMetadata olay nesnelerinden metadata çıkarmak için ortak şema.
// Checkout oturumu ve abonelik nesneleri metadata'yı doğrudan taşır; fatura
// nesnelerinde metadata subscription_details altındadır.
type stripeObjectMetadata struct {
	ID                  string            `json:"id"`
	Metadata            map[string]string `json:"metadata"`
	Subscription        string            `json:"subscription"`
	SubscriptionDetails *struct {
		Metadata map[string]string `json:"metadata"`
	} `json:"subscription_details"`
}

func (m *stripeObjectMetadata) lookup(key string) string {
	if v, ok := m.Metadata[key]; ok && v != "" {
		return v
	}
	if m.SubscriptionDetails != nil {
		return m.SubscriptionDetails.Metadata[key]
	}
	return ""
}

// HandleStripeEvent olay türüne göre kartın aktiflik bayrağını günceller.
// Tanınmayan olay türleri ve metadata'sız olaylar loglanıp başarıyla geçilir;
// sağlayıcının aynı olayı tekrar denemesinin bir faydası yoktur.
func (s *PaymentService) HandleStripeEvent(ctx context.Context, event stripe.Event) error {
	firstTime, err := s.webhookRepo.Record(ctx, "stripe", event.ID, string(event.Type))
	if err != nil {
		configslog.Log.Error("Webhook olayı kaydedilemedi", zap.String("eventID", event.ID), zap.Error(err))
		return ErrWebhookProcessing
	}
	if !firstTime {
		configslog.SLog.Infof("Webhook olayı zaten işlenmiş, atlanıyor: %s", event.ID)
		return nil
	}

	var active bool
	var status string
	switch event.Type {
	case "checkout.session.completed", "invoice.payment_succeeded":
		active, status = true, models.SubscriptionStatusActive
	case "invoice.payment_failed":
		active, status = false, models.SubscriptionStatusPastDue
	case "customer.subscription.deleted":
		active, status = false, models.SubscriptionStatusCanceled
	default:
		configslog.SLog.Infof("İşlenmeyen webhook olay türü: %s", event.Type)
		return nil
	}

	var object stripeObjectMetadata
	if err := json.Unmarshal(event.Data.Raw, &object); err != nil {
		configslog.Log.Error("Webhook olay nesnesi çözümlenemedi", zap.String("eventID", event.ID), zap.Error(err))
		return ErrWebhookProcessing
	}
	uid := object.lookup(metadataKeyUserUID)
	cardIDRaw := object.lookup(metadataKeyCardID)
	if uid == "" || cardIDRaw == "" {
		configslog.Log.Warn("Webhook olayında metadata eksik, yazma yapılmadı",
			zap.String("eventID", event.ID), zap.String("type", string(event.Type)))
		return nil
	}
	cardID, err := strconv.ParseUint(cardIDRaw, 10, 64)
	if err != nil {
		configslog.Log.Warn("Webhook metadata'sındaki kart ID geçersiz",
			zap.String("eventID", event.ID), zap.String("cardId", cardIDRaw))
		return nil
	}

	providerSubID := object.Subscription
	if providerSubID == "" && event.Type == "customer.subscription.deleted" {
		providerSubID = object.ID
	}
	return s.applySubscriptionState(ctx, uid, uint(cardID), active, status, providerSubID)
}

// applySubscriptionState kart bayrağını ve yerel abonelik kaydını günceller.
func (s *PaymentService) applySubscriptionState(ctx context.Context, uid string, cardID uint, active bool, status, providerSubID string) error {
	user, err := s.userRepo.FindByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			configslog.Log.Warn("Webhook metadata'sındaki kullanıcı bulunamadı", zap.String("uid", uid))
			return nil
		}
		return ErrWebhookProcessing
	}
	card, err := s.cardRepo.GetCardByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			configslog.Log.Warn("Webhook metadata'sındaki kart bulunamadı", zap.Uint("cardID", cardID))
			return nil
		}
		return ErrWebhookProcessing
	}
	if card.CreatorUserID != user.ID {
		configslog.Log.Warn("Webhook metadata'sı kart sahibiyle uyuşmuyor",
			zap.String("uid", uid), zap.Uint("cardID", cardID))
		return nil
	}

	if err := s.cardRepo.SetActive(ctx, card.ID, active); err != nil {
		configslog.Log.Error("Kart aktiflik bayrağı güncellenemedi", zap.Uint("cardID", card.ID), zap.Error(err))
		return ErrWebhookProcessing
	}
	sub := models.Subscription{
		CardID:                 card.ID,
		UserID:                 user.ID,
		Provider:               "stripe",
		ProviderSubscriptionID: providerSubID,
		Status:                 status,
	}
	if err := s.subRepo.Upsert(ctx, &sub); err != nil {
		configslog.Log.Error("Abonelik kaydı güncellenemedi", zap.Uint("cardID", card.ID), zap.Error(err))
		return ErrWebhookProcessing
	}

	if err := s.cache.Delete(ctx, PublicCardCacheKey(user.Username, card.Slug)); err != nil {
		configslog.Log.Warn("Public kart cache kaydı silinemedi", zap.Uint("cardID", card.ID), zap.Error(err))
	}
	configslog.SLog.Infof("Abonelik durumu uygulandı: kart %d, aktif=%t, durum=%s", card.ID, active, status)
	return nil
}

// CreatePayPalOrder henüz desteklenmiyor. Arayüz, sağlayıcı eklenirken
// handler tarafının değişmemesi için şimdiden tanımlı.
func (s *PaymentService) CreatePayPalOrder(ctx context.Context, userID, cardID uint, planID uint) (string, error) {
	return "", ErrPayPalUnsupported
}

// HandlePayPalEvent henüz desteklenmiyor.
func (s *PaymentService) HandlePayPalEvent(ctx context.Context, payload []byte) error {
	return ErrPayPalUnsupported
}

var _ IPaymentService = (*PaymentService)(nil)
