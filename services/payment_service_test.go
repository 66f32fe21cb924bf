package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"kartvizit.link/models"

	"github.com/stripe/stripe-go/v76"
	"gorm.io/gorm"
)

func createTestPlan(t *testing.T, db *gorm.DB, name, priceID string) *models.Plan {
	t.Helper()
	plan := models.Plan{Name: name, Price: 30000, Duration: "1 ay", StripePriceID: priceID}
	if err := db.Create(&plan).Error; err != nil {
		t.Fatalf("test planı oluşturulamadı: %v", err)
	}
	return &plan
}

func stripeTestEvent(id, eventType string, object map[string]interface{}) stripe.Event {
	raw, _ := json.Marshal(object)
	return stripe.Event{
		ID:   id,
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: raw},
	}
}

func cardIsActive(t *testing.T, db *gorm.DB, cardID uint) bool {
	t.Helper()
	var active bool
	if err := db.Model(&models.Card{}).Where("id = ?", cardID).Pluck("is_active", &active).Error; err != nil {
		t.Fatalf("kart bayrağı okunamadı: %v", err)
	}
	return active
}

func TestCreateCheckoutSession(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ayse", "ayse@example.com", false)
	card := createTestCard(t, db, user.ID, "tasarim")
	createTestPlan(t, db, "Aylık", "price_monthly_test")
	svc := NewPaymentServiceWithDB(db, NewCacheServiceWithClient(nil))

	var gotParams *stripe.CheckoutSessionParams
	svc.createSession = func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		gotParams = params
		return &stripe.CheckoutSession{ID: "cs_test_99", URL: "https://checkout.stripe.com/pay/test"}, nil
	}

	result, err := svc.CreateCheckoutSession(context.Background(), user.ID, card.ID, "price_monthly_test")
	if err != nil {
		t.Fatalf("CreateCheckoutSession hata döndü: %v", err)
	}
	if result.SessionID != "cs_test_99" {
		t.Errorf("beklenmeyen oturum kimliği: %q", result.SessionID)
	}
	if result.URL != "https://checkout.stripe.com/pay/test" {
		t.Errorf("beklenmeyen URL: %q", result.URL)
	}
	if gotParams == nil {
		t.Fatal("oturum parametreleri iletilmedi")
	}
	if mode := stripe.StringValue(gotParams.Mode); mode != string(stripe.CheckoutSessionModeSubscription) {
		t.Errorf("abonelik modu bekleniyordu, %q geldi", mode)
	}
	if gotParams.Metadata["firebaseUid"] != user.UID {
		t.Errorf("oturum metadata'sında kullanıcı UID'si eksik: %v", gotParams.Metadata)
	}
	if gotParams.Metadata["cardId"] != fmt.Sprintf("%d", card.ID) {
		t.Errorf("oturum metadata'sında kart ID eksik: %v", gotParams.Metadata)
	}
	if gotParams.SubscriptionData == nil || gotParams.SubscriptionData.Metadata["cardId"] != fmt.Sprintf("%d", card.ID) {
		t.Error("abonelik metadata'sı eksik")
	}
	if len(gotParams.LineItems) != 1 || stripe.StringValue(gotParams.LineItems[0].Price) != "price_monthly_test" {
		t.Errorf("beklenmeyen satır kalemleri: %+v", gotParams.LineItems)
	}
}

func TestCreateCheckoutSessionValidation(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ayse", "ayse@example.com", false)
	stranger := createTestUser(t, db, "mehmet", "mehmet@example.com", false)
	card := createTestCard(t, db, user.ID, "tasarim")
	createTestPlan(t, db, "Aylık", "price_monthly_test")
	svc := NewPaymentServiceWithDB(db, NewCacheServiceWithClient(nil))
	svc.createSession = func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		t.Fatal("geçersiz istek için oturum açılmamalıydı")
		return nil, nil
	}

	if _, err := svc.CreateCheckoutSession(context.Background(), user.ID, card.ID, "price_yok"); !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("ErrPlanNotFound bekleniyordu, %v geldi", err)
	}
	if _, err := svc.CreateCheckoutSession(context.Background(), stranger.ID, card.ID, "price_monthly_test"); !errors.Is(err, ErrPaymentCardInvalid) {
		t.Errorf("başkasının kartı için ErrPaymentCardInvalid bekleniyordu, %v geldi", err)
	}
	if _, err := svc.CreateCheckoutSession(context.Background(), user.ID, 9999, "price_monthly_test"); !errors.Is(err, ErrPaymentCardInvalid) {
		t.Errorf("bilinmeyen kart için ErrPaymentCardInvalid bekleniyordu, %v geldi", err)
	}
}

func TestHandleStripeEventActivatesCard(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ayse", "ayse@example.com", false)
	card := createTestCard(t, db, user.ID, "tasarim")
	if err := db.Model(&models.Card{}).Where("id = ?", card.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("kart pasifleştirilemedi: %v", err)
	}
	svc := NewPaymentServiceWithDB(db, NewCacheServiceWithClient(nil))

	event := stripeTestEvent("evt_1", "checkout.session.completed", map[string]interface{}{
		"id":           "cs_test_1",
		"subscription": "sub_123",
		"metadata": map[string]string{
			"firebaseUid": user.UID,
			"cardId":      fmt.Sprintf("%d", card.ID),
		},
	})
	if err := svc.HandleStripeEvent(context.Background(), event); err != nil {
		t.Fatalf("HandleStripeEvent hata döndü: %v", err)
	}
	if !cardIsActive(t, db, card.ID) {
		t.Error("kart aktifleşmeliydi")
	}

	var sub models.Subscription
	if err := db.Where("card_id = ?", card.ID).First(&sub).Error; err != nil {
		t.Fatalf("abonelik kaydı bulunamadı: %v", err)
	}
	if sub.Status != models.SubscriptionStatusActive || sub.ProviderSubscriptionID != "sub_123" {
		t.Errorf("beklenmeyen abonelik kaydı: %+v", sub)
	}
}

func TestHandleStripeEventIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ayse", "ayse@example.com", false)
	card := createTestCard(t, db, user.ID, "tasarim")
	svc := NewPaymentServiceWithDB(db, NewCacheServiceWithClient(nil))

	event := stripeTestEvent("evt_tekrar", "checkout.session.completed", map[string]interface{}{
		"metadata": map[string]string{
			"firebaseUid": user.UID,
			"cardId":      fmt.Sprintf("%d", card.ID),
		},
	})
	if err := svc.HandleStripeEvent(context.Background(), event); err != nil {
		t.Fatalf("ilk teslim hata döndü: %v", err)
	}

	// Kart elle pasifleştirilir; aynı olayın tekrar teslimi bayrağı geri açmamalı.
	if err := db.Model(&models.Card{}).Where("id = ?", card.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("kart pasifleştirilemedi: %v", err)
	}
	if err := svc.HandleStripeEvent(context.Background(), event); err != nil {
		t.Fatalf("tekrar teslim hata döndü: %v", err)
	}
	if cardIsActive(t, db, card.ID) {
		t.Error("tekrar teslim edilen olay yeniden işlenmemeliydi")
	}
}

func TestHandleStripeEventPaymentFailure(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ayse", "ayse@example.com", false)
	card := createTestCard(t, db, user.ID, "tasarim")
	svc := NewPaymentServiceWithDB(db, NewCacheServiceWithClient(nil))

	// Fatura olaylarında metadata subscription_details altında gelir.
	event := stripeTestEvent("evt_fail", "invoice.payment_failed", map[string]interface{}{
		"id":           "in_test_1",
		"subscription": "sub_123",
		"subscription_details": map[string]interface{}{
			"metadata": map[string]string{
				"firebaseUid": user.UID,
				"cardId":      fmt.Sprintf("%d", card.ID),
			},
		},
	})
	if err := svc.HandleStripeEvent(context.Background(), event); err != nil {
		t.Fatalf("HandleStripeEvent hata döndü: %v", err)
	}
	if cardIsActive(t, db, card.ID) {
		t.Error("ödeme başarısız olunca kart pasifleşmeliydi")
	}

	var sub models.Subscription
	if err := db.Where("card_id = ?", card.ID).First(&sub).Error; err != nil {
		t.Fatalf("abonelik kaydı bulunamadı: %v", err)
	}
	if sub.Status != models.SubscriptionStatusPastDue {
		t.Errorf("past_due bekleniyordu, %q geldi", sub.Status)
	}
}

func TestHandleStripeEventSubscriptionDeleted(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ayse", "ayse@example.com", false)
	card := createTestCard(t, db, user.ID, "tasarim")
	svc := NewPaymentServiceWithDB(db, NewCacheServiceWithClient(nil))

	event := stripeTestEvent("evt_del", "customer.subscription.deleted", map[string]interface{}{
		"id": "sub_123",
		"metadata": map[string]string{
			"firebaseUid": user.UID,
			"cardId":      fmt.Sprintf("%d", card.ID),
		},
	})
	if err := svc.HandleStripeEvent(context.Background(), event); err != nil {
		t.Fatalf("HandleStripeEvent hata döndü: %v", err)
	}
	if cardIsActive(t, db, card.ID) {
		t.Error("abonelik silinince kart pasifleşmeliydi")
	}

	var sub models.Subscription
	if err := db.Where("card_id = ?", card.ID).First(&sub).Error; err != nil {
		t.Fatalf("abonelik kaydı bulunamadı: %v", err)
	}
	if sub.Status != models.SubscriptionStatusCanceled || sub.ProviderSubscriptionID != "sub_123" {
		t.Errorf("beklenmeyen abonelik kaydı: %+v", sub)
	}
}

func TestHandleStripeEventTolerantCases(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ayse", "ayse@example.com", false)
	other := createTestUser(t, db, "mehmet", "mehmet@example.com", false)
	card := createTestCard(t, db, user.ID, "tasarim")
	if err := db.Model(&models.Card{}).Where("id = ?", card.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("kart pasifleştirilemedi: %v", err)
	}
	svc := NewPaymentServiceWithDB(db, NewCacheServiceWithClient(nil))

	cases := []struct {
		name  string
		event stripe.Event
	}{
		{"metadata eksik", stripeTestEvent("evt_a", "checkout.session.completed", map[string]interface{}{"id": "cs_1"})},
		{"bilinmeyen olay türü", stripeTestEvent("evt_b", "customer.created", map[string]interface{}{"id": "cus_1"})},
		{"bilinmeyen kullanıcı", stripeTestEvent("evt_c", "checkout.session.completed", map[string]interface{}{
			"metadata": map[string]string{"firebaseUid": "yok-boyle-uid", "cardId": fmt.Sprintf("%d", card.ID)},
		})},
		{"sahip uyuşmazlığı", stripeTestEvent("evt_d", "checkout.session.completed", map[string]interface{}{
			"metadata": map[string]string{"firebaseUid": other.UID, "cardId": fmt.Sprintf("%d", card.ID)},
		})},
		{"geçersiz kart ID", stripeTestEvent("evt_e", "checkout.session.completed", map[string]interface{}{
			"metadata": map[string]string{"firebaseUid": user.UID, "cardId": "sayı-değil"},
		})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.HandleStripeEvent(context.Background(), tc.event); err != nil {
				t.Errorf("tolere edilmesi gereken olay hata döndürdü: %v", err)
			}
		})
	}
	if cardIsActive(t, db, card.ID) {
		t.Error("hiçbir tolere edilen olay kartı aktifleştirmemeliydi")
	}
}

func TestPayPalStubs(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentServiceWithDB(db, NewCacheServiceWithClient(nil))

	if _, err := svc.CreatePayPalOrder(context.Background(), 1, 1, 1); !errors.Is(err, ErrPayPalUnsupported) {
		t.Errorf("ErrPayPalUnsupported bekleniyordu, %v geldi", err)
	}
	if err := svc.HandlePayPalEvent(context.Background(), []byte("{}")); !errors.Is(err, ErrPayPalUnsupported) {
		t.Errorf("ErrPayPalUnsupported bekleniyordu, %v geldi", err)
	}
}
