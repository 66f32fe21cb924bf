package seeders

import (
	"errors"
	"os"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedSystemUser yönetici hesabı oluşturur veya şifresini günceller.
// Kimlik bilgileri ortam değişkenlerinden okunur; eksikse seed atlanır.
func SeedSystemUser(db *gorm.DB) error {
	email := os.Getenv("SYSTEM_USER_EMAIL")
	password := os.Getenv("SYSTEM_USER_PASSWORD")
	username := os.Getenv("SYSTEM_USER_NAME")
	if username == "" {
		username = "sistem"
	}
	if email == "" || password == "" {
		configslog.SLog.Warn("SYSTEM_USER_EMAIL veya SYSTEM_USER_PASSWORD tanımlı değil, sistem kullanıcısı seed edilmiyor.")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Sistem kullanıcısı şifresi hash'lenemedi", zap.Error(err))
		return err
	}

	var existing models.User
	result := db.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		// Mevcut hesabın şifresi ve bayrakları güncel tutulur.
		updates := map[string]interface{}{
			"password_hash": string(hash),
			"is_active":     true,
			"is_system":     true,
		}
		if err := db.Model(&existing).Updates(updates).Error; err != nil {
			configslog.Log.Error("Sistem kullanıcısı güncellenemedi", zap.Uint("id", existing.ID), zap.Error(err))
			return err
		}
		configslog.SLog.Infof("Sistem kullanıcısı güncellendi (ID: %d).", existing.ID)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Sistem kullanıcısı kontrol edilirken veritabanı hatası", zap.Error(result.Error))
		return result.Error
	}

	user := models.User{
		UID:          uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
		IsSystem:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		configslog.Log.Error("Sistem kullanıcısı oluşturulamadı", zap.String("email", email), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Sistem kullanıcısı oluşturuldu (ID: %d, kullanıcı adı: %s).", user.ID, user.Username)
	return nil
}
