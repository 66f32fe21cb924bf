package services

import (
	"context"
	"errors"
	"testing"
)

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ayse", "ayse@example.com", false)
	svc := NewUserServiceWithDB(db, NewCacheServiceWithClient(nil))

	input := ProfileInput{Username: "ayse_tasarim", BookmarkImage: "https://cdn.example.com/ayse.png"}
	if err := svc.UpdateProfile(context.Background(), user.ID, input); err != nil {
		t.Fatalf("UpdateProfile hata döndü: %v", err)
	}

	profile, err := svc.GetProfile(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("GetProfile hata döndü: %v", err)
	}
	if profile.Username != "ayse_tasarim" {
		t.Errorf("kullanıcı adı güncellenmedi: %q", profile.Username)
	}
	if profile.BookmarkImage != "https://cdn.example.com/ayse.png" {
		t.Errorf("bookmark görseli güncellenmedi: %q", profile.BookmarkImage)
	}
}

func TestUpdateProfileRejectsTakenUsername(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ayse", "ayse@example.com", false)
	createTestUser(t, db, "mehmet", "mehmet@example.com", false)
	svc := NewUserServiceWithDB(db, NewCacheServiceWithClient(nil))

	if err := svc.UpdateProfile(context.Background(), user.ID, ProfileInput{Username: "mehmet"}); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("ErrUsernameTaken bekleniyordu, %v geldi", err)
	}

	// Kendi adını korumak çakışma sayılmaz.
	if err := svc.UpdateProfile(context.Background(), user.ID, ProfileInput{Username: "ayse"}); err != nil {
		t.Errorf("mevcut ad korunabilmeliydi: %v", err)
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "ayse", "ayse@example.com", false)
	svc := NewUserServiceWithDB(db, NewCacheServiceWithClient(nil))

	if err := svc.UpdateProfile(context.Background(), user.ID, ProfileInput{Username: "Geçersiz Ad"}); !errors.Is(err, ErrUsernameInvalid) {
		t.Errorf("ErrUsernameInvalid bekleniyordu, %v geldi", err)
	}
	if err := svc.UpdateProfile(context.Background(), user.ID, ProfileInput{Username: "ayse", BookmarkImage: "url-degil"}); !errors.Is(err, ErrCrdInvalidInput) {
		t.Errorf("ErrCrdInvalidInput bekleniyordu, %v geldi", err)
	}
	if err := svc.UpdateProfile(context.Background(), 9999, ProfileInput{Username: "birisi"}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("ErrUserNotFound bekleniyordu, %v geldi", err)
	}
}
