package services

import (
	"context"
	"errors"
	"testing"

	"kartvizit.link/models"
	"kartvizit.link/models/helpers"
	"kartvizit.link/pkg/queryparams"
	"kartvizit.link/utils"
)

func TestCreateCardGeneratesSlugAndZeroCounters(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ayse", "ayse@example.com", false)
	svc := NewCardServiceWithDB(db, NewCacheServiceWithClient(nil))

	card, err := svc.CreateCard(context.Background(), user.ID, validTestDetail(), "")
	if err != nil {
		t.Fatalf("CreateCard hata döndü: %v", err)
	}
	if len(card.Slug) != utils.SlugLength {
		t.Errorf("slug uzunluğu %d bekleniyordu, %d geldi (%q)", utils.SlugLength, len(card.Slug), card.Slug)
	}
	if !card.IsActive {
		t.Error("yeni kart aktif olmalı")
	}
	if card.Detail.FirstName != "Ayşe" {
		t.Errorf("detay kaydedilmedi: %+v", card.Detail)
	}

	var clickCount int64
	if err := db.Model(&models.CardClick{}).Where("card_id = ?", card.ID).Count(&clickCount).Error; err != nil {
		t.Fatalf("sayaç satırları okunamadı: %v", err)
	}
	if clickCount != int64(len(models.ClickableActions)) {
		t.Errorf("%d sayaç satırı bekleniyordu, %d bulundu", len(models.ClickableActions), clickCount)
	}
}

func TestCreateCardWithCustomSlug(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ayse", "ayse@example.com", false)
	svc := NewCardServiceWithDB(db, NewCacheServiceWithClient(nil))

	card, err := svc.CreateCard(context.Background(), user.ID, validTestDetail(), "tasarim-karti")
	if err != nil {
		t.Fatalf("CreateCard hata döndü: %v", err)
	}
	if card.Slug != "tasarim-karti" {
		t.Errorf("slug 'tasarim-karti' bekleniyordu, %q geldi", card.Slug)
	}

	// Aynı kullanıcıda aynı slug ikinci kez kullanılamaz.
	if _, err := svc.CreateCard(context.Background(), user.ID, validTestDetail(), "tasarim-karti"); !errors.Is(err, ErrCardSlugTaken) {
		t.Errorf("ErrCardSlugTaken bekleniyordu, %v geldi", err)
	}

	// Başka kullanıcı aynı slug'ı kullanabilir.
	other := createTestUser(t, db, "mehmet", "mehmet@example.com", false)
	if _, err := svc.CreateCard(context.Background(), other.ID, validTestDetail(), "tasarim-karti"); err != nil {
		t.Errorf("farklı kullanıcıda aynı slug kabul edilmeliydi: %v", err)
	}
}

func TestCreateCardRejectsInvalidInput(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ayse", "ayse@example.com", false)
	svc := NewCardServiceWithDB(db, NewCacheServiceWithClient(nil))

	t.Run("geçersiz slug formatı", func(t *testing.T) {
		if _, err := svc.CreateCard(context.Background(), user.ID, validTestDetail(), "Büyük Harf!"); !errors.Is(err, ErrCardSlugInvalid) {
			t.Errorf("ErrCardSlugInvalid bekleniyordu, %v geldi", err)
		}
	})

	t.Run("zorunlu isim alanı eksik", func(t *testing.T) {
		detail := validTestDetail()
		detail.FirstName = ""
		if _, err := svc.CreateCard(context.Background(), user.ID, detail, ""); !errors.Is(err, ErrCrdInvalidInput) {
			t.Errorf("ErrCrdInvalidInput bekleniyordu, %v geldi", err)
		}
	})

	t.Run("ikiden fazla birincil aksiyon", func(t *testing.T) {
		detail := validTestDetail()
		detail.PrimaryActions = helpers.ActionList{
			{Type: "call", Label: "Ara", Value: "1"},
			{Type: "email", Label: "E-posta", Value: "2"},
			{Type: "website", Label: "Site", Value: "3"},
		}
		if _, err := svc.CreateCard(context.Background(), user.ID, detail, ""); !errors.Is(err, ErrCrdInvalidInput) {
			t.Errorf("ErrCrdInvalidInput bekleniyordu, %v geldi", err)
		}
	})

	t.Run("tanımsız sosyal platform", func(t *testing.T) {
		detail := validTestDetail()
		detail.SecondaryActions = helpers.SocialLinkList{{Platform: "myspace", URL: "https://example.com"}}
		if _, err := svc.CreateCard(context.Background(), user.ID, detail, ""); !errors.Is(err, ErrCrdInvalidInput) {
			t.Errorf("ErrCrdInvalidInput bekleniyordu, %v geldi", err)
		}
	})
}

func TestResolvePublicCard(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ayse", "ayse@example.com", false)
	card := createTestCard(t, db, user.ID, "tasarim")
	svc := NewCardServiceWithDB(db, NewCacheServiceWithClient(nil))

	public, err := svc.ResolvePublicCard(context.Background(), "ayse", "tasarim")
	if err != nil {
		t.Fatalf("ResolvePublicCard hata döndü: %v", err)
	}
	if public.CardID != card.ID || public.Username != "ayse" || public.Slug != "tasarim" {
		t.Errorf("beklenmeyen public kart: %+v", public)
	}
	if public.Detail.FirstName != "Ayşe" {
		t.Errorf("detay eksik: %+v", public.Detail)
	}

	if _, err := svc.ResolvePublicCard(context.Background(), "ayse", "yok-boyle-slug"); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("bilinmeyen slug için ErrCardNotFound bekleniyordu, %v geldi", err)
	}
	if _, err := svc.ResolvePublicCard(context.Background(), "kimse", "tasarim"); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("bilinmeyen kullanıcı için ErrCardNotFound bekleniyordu, %v geldi", err)
	}

	// Pasif kartın verisi dışarı çıkmaz.
	if err := db.Model(&models.Card{}).Where("id = ?", card.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("kart pasifleştirilemedi: %v", err)
	}
	if _, err := svc.ResolvePublicCard(context.Background(), "ayse", "tasarim"); !errors.Is(err, ErrCardInactive) {
		t.Errorf("pasif kart için ErrCardInactive bekleniyordu, %v geldi", err)
	}
}

func TestUpdateCardAuthorization(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "ayse", "ayse@example.com", false)
	stranger := createTestUser(t, db, "mehmet", "mehmet@example.com", false)
	admin := createTestUser(t, db, "sistem", "sistem@example.com", true)
	card := createTestCard(t, db, owner.ID, "tasarim")
	svc := NewCardServiceWithDB(db, NewCacheServiceWithClient(nil))

	updated := validTestDetail()
	updated.JobTitle = "Sanat Yönetmeni"

	// Sahip güncelleyebilir.
	if err := svc.UpdateCard(context.Background(), card.ID, owner.ID, updated, nil); err != nil {
		t.Fatalf("sahibin güncellemesi başarısız: %v", err)
	}
	reloaded, err := svc.GetCardByID(context.Background(), card.ID, owner.ID)
	if err != nil {
		t.Fatalf("kart okunamadı: %v", err)
	}
	if reloaded.Detail.JobTitle != "Sanat Yönetmeni" {
		t.Errorf("detay güncellenmedi: %q", reloaded.Detail.JobTitle)
	}
	if reloaded.Slug != "tasarim" {
		t.Errorf("slug değişmemeliydi: %q", reloaded.Slug)
	}

	// Başkası güncelleyemez.
	if err := svc.UpdateCard(context.Background(), card.ID, stranger.ID, updated, nil); !errors.Is(err, ErrCardForbidden) {
		t.Errorf("yabancı için ErrCardForbidden bekleniyordu, %v geldi", err)
	}

	// Normal kullanıcı aktiflik bayrağına dokunamaz.
	active := false
	if err := svc.UpdateCard(context.Background(), card.ID, owner.ID, updated, &active); !errors.Is(err, ErrCardForbidden) {
		t.Errorf("bayrak değişikliği için ErrCardForbidden bekleniyordu, %v geldi", err)
	}

	// Yönetici bayrağı değiştirebilir.
	if err := svc.UpdateCard(context.Background(), card.ID, admin.ID, updated, &active); err != nil {
		t.Fatalf("yönetici güncellemesi başarısız: %v", err)
	}
	reloaded, err = svc.GetCardByID(context.Background(), card.ID, admin.ID)
	if err != nil {
		t.Fatalf("kart okunamadı: %v", err)
	}
	if reloaded.IsActive {
		t.Error("yönetici pasifleştirmesi uygulanmadı")
	}
}

func TestDeleteCard(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "ayse", "ayse@example.com", false)
	stranger := createTestUser(t, db, "mehmet", "mehmet@example.com", false)
	card := createTestCard(t, db, owner.ID, "")
	svc := NewCardServiceWithDB(db, NewCacheServiceWithClient(nil))

	if err := svc.DeleteCard(context.Background(), card.ID, stranger.ID); !errors.Is(err, ErrCardForbidden) {
		t.Errorf("yabancı için ErrCardForbidden bekleniyordu, %v geldi", err)
	}

	if err := svc.DeleteCard(context.Background(), card.ID, owner.ID); err != nil {
		t.Fatalf("silme başarısız: %v", err)
	}
	if _, err := svc.GetCardByID(context.Background(), card.ID, owner.ID); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("silinen kart için ErrCardNotFound bekleniyordu, %v geldi", err)
	}
	if err := svc.DeleteCard(context.Background(), card.ID, owner.ID); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("ikinci silmede ErrCardNotFound bekleniyordu, %v geldi", err)
	}
}

func TestGetCardsForUserPaginated(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ayse", "ayse@example.com", false)
	other := createTestUser(t, db, "mehmet", "mehmet@example.com", false)
	svc := NewCardServiceWithDB(db, NewCacheServiceWithClient(nil))

	for i := 0; i < 3; i++ {
		createTestCard(t, db, user.ID, "")
	}
	createTestCard(t, db, other.ID, "")

	params := queryparams.DefaultListParams("created_at")
	params.PerPage = 2
	result, err := svc.GetCardsForUserPaginated(context.Background(), user.ID, params)
	if err != nil {
		t.Fatalf("listeleme başarısız: %v", err)
	}
	if result.Meta.TotalItems != 3 {
		t.Errorf("3 kart bekleniyordu, %d bulundu", result.Meta.TotalItems)
	}
	if result.Meta.TotalPages != 2 {
		t.Errorf("2 sayfa bekleniyordu, %d bulundu", result.Meta.TotalPages)
	}
	cards, ok := result.Data.([]models.Card)
	if !ok {
		t.Fatalf("beklenmeyen veri tipi: %T", result.Data)
	}
	if len(cards) != 2 {
		t.Errorf("sayfada 2 kart bekleniyordu, %d bulundu", len(cards))
	}

	count, err := svc.GetCardCountForUser(context.Background(), user.ID)
	if err != nil || count != 3 {
		t.Errorf("kart sayısı 3 bekleniyordu, %d (%v) geldi", count, err)
	}
}
