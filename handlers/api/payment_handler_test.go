package handlers

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/services"

	sqlite "github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testWebhookSecret = "whsec_test_anahtari"

func TestMain(m *testing.M) {
	configslog.InitLogger()
	os.Exit(m.Run())
}

func setupWebhookTest(t *testing.T) (*fiber.App, *gorm.DB, *models.User, *models.Card) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("in-memory veritabanı açılamadı: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("veritabanı pool erişimi başarısız: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{}, &models.Card{}, &models.CardDetail{}, &models.CardClick{},
		&models.Plan{}, &models.Subscription{}, &models.WebhookEvent{},
	); err != nil {
		t.Fatalf("test şeması oluşturulamadı: %v", err)
	}
	configsdatabase.SetDB(db)
	t.Cleanup(func() { configsdatabase.SetDB(nil) })
	t.Setenv("STRIPE_WEBHOOK_SECRET", testWebhookSecret)

	user := models.User{
		UID:          uuid.NewString(),
		Username:     "ayse",
		Email:        "ayse@example.com",
		PasswordHash: "hash",
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("test kullanıcısı oluşturulamadı: %v", err)
	}

	cardService := services.NewCardServiceWithDB(db, services.NewCacheServiceWithClient(nil))
	card, err := cardService.CreateCard(context.Background(), user.ID, models.CardDetail{FirstName: "Ayşe", LastName: "Yılmaz"}, "tasarim")
	if err != nil {
		t.Fatalf("test kartı oluşturulamadı: %v", err)
	}
	if err := db.Model(&models.Card{}).Where("id = ?", card.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("kart pasifleştirilemedi: %v", err)
	}

	app := fiber.New()
	handler := NewPaymentHandler()
	app.Post("/api/stripe/webhook", handler.StripeWebhook)
	return app, db, &user, card
}

// signStripePayload Stripe'ın imza şemasıyla (t=..., v1=HMAC-SHA256) başlık üretir.
func signStripePayload(secret string, payload []byte) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func webhookPayload(eventID, eventType string, object map[string]interface{}) []byte {
	payload, _ := json.Marshal(map[string]interface{}{
		"id":          eventID,
		"type":        eventType,
		"api_version": stripe.APIVersion,
		"data":        map[string]interface{}{"object": object},
	})
	return payload
}

func TestStripeWebhookActivatesCard(t *testing.T) {
	app, db, user, card := setupWebhookTest(t)

	payload := webhookPayload("evt_h1", "checkout.session.completed", map[string]interface{}{
		"id":           "cs_test_1",
		"subscription": "sub_123",
		"metadata": map[string]string{
			"firebaseUid": user.UID,
			"cardId":      fmt.Sprintf("%d", card.ID),
		},
	})

	req := httptest.NewRequest(fiber.MethodPost, "/api/stripe/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", signStripePayload(testWebhookSecret, payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("istek başarısız: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("200 bekleniyordu, %d geldi", resp.StatusCode)
	}

	var active bool
	if err := db.Model(&models.Card{}).Where("id = ?", card.ID).Pluck("is_active", &active).Error; err != nil {
		t.Fatalf("kart bayrağı okunamadı: %v", err)
	}
	if !active {
		t.Error("webhook kartı aktifleştirmeliydi")
	}
}

func TestStripeWebhookRejectsBadSignature(t *testing.T) {
	app, db, user, card := setupWebhookTest(t)

	payload := webhookPayload("evt_h2", "checkout.session.completed", map[string]interface{}{
		"metadata": map[string]string{
			"firebaseUid": user.UID,
			"cardId":      fmt.Sprintf("%d", card.ID),
		},
	})

	req := httptest.NewRequest(fiber.MethodPost, "/api/stripe/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", signStripePayload("whsec_yanlis_anahtar", payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("istek başarısız: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("400 bekleniyordu, %d geldi", resp.StatusCode)
	}

	var active bool
	if err := db.Model(&models.Card{}).Where("id = ?", card.ID).Pluck("is_active", &active).Error; err != nil {
		t.Fatalf("kart bayrağı okunamadı: %v", err)
	}
	if active {
		t.Error("imzasız istek kartı değiştirmemeliydi")
	}
}

func TestStripeWebhookAcceptsEventWithoutMetadata(t *testing.T) {
	app, db, _, card := setupWebhookTest(t)

	payload := webhookPayload("evt_h3", "invoice.payment_succeeded", map[string]interface{}{
		"id": "in_test_1",
	})

	req := httptest.NewRequest(fiber.MethodPost, "/api/stripe/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", signStripePayload(testWebhookSecret, payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("istek başarısız: %v", err)
	}
	// Metadata'sız olay yazma yapmadan 200 ile kapatılır.
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("200 bekleniyordu, %d geldi", resp.StatusCode)
	}

	var active bool
	if err := db.Model(&models.Card{}).Where("id = ?", card.ID).Pluck("is_active", &active).Error; err != nil {
		t.Fatalf("kart bayrağı okunamadı: %v", err)
	}
	if active {
		t.Error("metadata'sız olay kartı değiştirmemeliydi")
	}
}
