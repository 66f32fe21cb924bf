package services

import (
	"context"
	"errors"
	"testing"

	"kartvizit.link/models"
)

func TestRecordViewIncrementsCounter(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ayse", "ayse@example.com", false)
	card := createTestCard(t, db, user.ID, "tasarim")
	svc := NewStatsServiceWithDB(db)

	for i := 0; i < 3; i++ {
		svc.RecordView(context.Background(), card.ID)
	}

	var views int64
	if err := db.Model(&models.Card{}).Where("id = ?", card.ID).Pluck("views", &views).Error; err != nil {
		t.Fatalf("görüntülenme sayacı okunamadı: %v", err)
	}
	if views != 3 {
		t.Errorf("3 görüntülenme bekleniyordu, %d bulundu", views)
	}
}

func TestRecordClick(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ayse", "ayse@example.com", false)
	card := createTestCard(t, db, user.ID, "tasarim")
	svc := NewStatsServiceWithDB(db)

	if err := svc.RecordClick(context.Background(), "ayse", "tasarim", "whatsapp"); err != nil {
		t.Fatalf("RecordClick hata döndü: %v", err)
	}
	if err := svc.RecordClick(context.Background(), "ayse", "tasarim", "whatsapp"); err != nil {
		t.Fatalf("RecordClick hata döndü: %v", err)
	}
	if err := svc.RecordClick(context.Background(), "ayse", "tasarim", "linkedin"); err != nil {
		t.Fatalf("RecordClick hata döndü: %v", err)
	}

	stats, err := svc.GetCardStats(context.Background(), card.ID, user.ID)
	if err != nil {
		t.Fatalf("GetCardStats hata döndü: %v", err)
	}
	if stats.Clicks["whatsapp"] != 2 {
		t.Errorf("whatsapp sayacı 2 bekleniyordu, %d bulundu", stats.Clicks["whatsapp"])
	}
	if stats.Clicks["linkedin"] != 1 {
		t.Errorf("linkedin sayacı 1 bekleniyordu, %d bulundu", stats.Clicks["linkedin"])
	}
	if stats.Clicks["call"] != 0 {
		t.Errorf("dokunulmamış sayaç 0 olmalı, %d bulundu", stats.Clicks["call"])
	}
	if len(stats.Clicks) != len(models.ClickableActions) {
		t.Errorf("%d sayaç anahtarı bekleniyordu, %d bulundu", len(models.ClickableActions), len(stats.Clicks))
	}
}

func TestRecordClickRejectsUnknownAction(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ayse", "ayse@example.com", false)
	createTestCard(t, db, user.ID, "tasarim")
	svc := NewStatsServiceWithDB(db)

	if err := svc.RecordClick(context.Background(), "ayse", "tasarim", "myspace"); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("ErrUnknownAction bekleniyordu, %v geldi", err)
	}
	if err := svc.RecordClick(context.Background(), "ayse", "yok-boyle", "whatsapp"); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("ErrCardNotFound bekleniyordu, %v geldi", err)
	}
}

func TestGetCardStatsAuthorization(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "ayse", "ayse@example.com", false)
	stranger := createTestUser(t, db, "mehmet", "mehmet@example.com", false)
	admin := createTestUser(t, db, "sistem", "sistem@example.com", true)
	card := createTestCard(t, db, owner.ID, "")
	svc := NewStatsServiceWithDB(db)

	if _, err := svc.GetCardStats(context.Background(), card.ID, stranger.ID); !errors.Is(err, ErrCardForbidden) {
		t.Errorf("yabancı için ErrCardForbidden bekleniyordu, %v geldi", err)
	}
	if _, err := svc.GetCardStats(context.Background(), card.ID, owner.ID); err != nil {
		t.Errorf("sahip sayaçları okuyabilmeli: %v", err)
	}
	if _, err := svc.GetCardStats(context.Background(), card.ID, admin.ID); err != nil {
		t.Errorf("yönetici sayaçları okuyabilmeli: %v", err)
	}
}
