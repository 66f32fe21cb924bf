// services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserServiceError özel servis hataları
type UserServiceError string

func (e UserServiceError) Error() string { return string(e) }

const (
	ErrUserNotFound        UserServiceError = "kullanıcı bulunamadı"
	ErrProfileUpdateFailed UserServiceError = "profil güncellenemedi"
)

// ProfileInput profil formu verisi.
type ProfileInput struct {
	Username      string `json:"username"`
	BookmarkImage string `json:"bookmarkImage" validate:"omitempty,url"`
}

// IUserService profil işlemleri için arayüz.
type IUserService interface {
	GetProfile(ctx context.Context, userID uint) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, input ProfileInput) error
}

// UserService IUserService arayüzünü uygular.
type UserService struct {
	userRepo repositories.IUserRepository
	cache    ICacheService
	db       *gorm.DB
}

// NewUserService yeni bir UserService örneği oluşturur.
func NewUserService() IUserService {
	return NewUserServiceWithDB(configs.GetDB(), NewCacheService())
}

// NewUserServiceWithDB test için bağımlılıkları enjekte eder.
func NewUserServiceWithDB(db *gorm.DB, cache ICacheService) IUserService {
	return &UserService{
		userRepo: repositories.NewUserRepositoryWithDB(db),
		cache:    cache,
		db:       db,
	}
}

// GetProfile kullanıcının profil bilgilerini getirir.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile kullanıcı adını ve bookmark görselini günceller. Kullanıcı adı
// değişiyorsa global benzersizlik ön kontrolü yapılır; yarış durumunda unique
// index aynı hataya çevrilir. Eski kullanıcı adı altındaki public kart
// cache'leri düşürülür (kartlar yeni URL'den sunulur).
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input ProfileInput) error {
	if userID == 0 {
		return fmt.Errorf("%w: geçersiz kullanıcı ID", ErrCrdInvalidInput)
	}
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", ErrCrdInvalidInput, err)
	}
	if !usernamePattern.MatchString(input.Username) {
		return ErrUsernameInvalid
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	oldUsername := user.Username
	if input.Username != oldUsername {
		taken, checkErr := s.userRepo.UsernameExists(ctx, input.Username, userID)
		if checkErr != nil {
			return ErrProfileUpdateFailed
		}
		if taken {
			return ErrUsernameTaken
		}
	}

	data := map[string]interface{}{
		"username":       input.Username,
		"bookmark_image": input.BookmarkImage,
	}
	if err := s.userRepo.Update(ctx, userID, data, userID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUsernameTaken
		}
		configslog.Log.Error("Profil güncellenirken hata", zap.Uint("userID", userID), zap.Error(err))
		return ErrProfileUpdateFailed
	}

	if input.Username != oldUsername {
		s.dropPublicCachesForUsername(ctx, userID, oldUsername)
	}
	configslog.SLog.Infof("Profil güncellendi: kullanıcı ID %d", userID)
	return nil
}

// dropPublicCachesForUsername kullanıcı adı değişince eski ada bakan public
// kart cache kayıtlarını temizler. Hata sadece loglanır, TTL kısa.
func (s *UserService) dropPublicCachesForUsername(ctx context.Context, userID uint, oldUsername string) {
	var slugs []string
	if err := s.db.WithContext(ctx).Model(&models.Card{}).
		Where("creator_user_id = ?", userID).
		Pluck("slug", &slugs).Error; err != nil {
		configslog.Log.Warn("Cache temizliği için slug listesi alınamadı", zap.Uint("userID", userID), zap.Error(err))
		return
	}
	for _, slug := range slugs {
		if err := s.cache.Delete(ctx, PublicCardCacheKey(oldUsername, slug)); err != nil {
			configslog.Log.Warn("Public kart cache kaydı silinemedi", zap.String("username", oldUsername), zap.String("slug", slug), zap.Error(err))
		}
	}
}

var _ IUserService = (*UserService)(nil)
