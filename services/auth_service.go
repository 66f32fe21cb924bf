// services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthServiceError özel servis hataları
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrInvalidCredentials AuthServiceError = "e-posta veya şifre hatalı"
	ErrUserInactive       AuthServiceError = "hesabınız pasif durumda"
	ErrEmailTaken         AuthServiceError = "bu e-posta adresi zaten kayıtlı"
	ErrUsernameTaken      AuthServiceError = "bu kullanıcı adı zaten kullanımda"
	ErrUsernameInvalid    AuthServiceError = "kullanıcı adı 3-50 karakter olmalı ve sadece küçük harf, rakam, alt çizgi içerebilir"
	ErrPasswordTooShort   AuthServiceError = "şifre en az 8 karakter olmalı"
	ErrRegistrationFailed AuthServiceError = "kayıt oluşturulamadı"
	ErrAuthUserNotFound   AuthServiceError = "kullanıcı bulunamadı"
)

// Kullanıcı adı public URL'de geçtiği için dar tutulur.
var usernamePattern = regexp.MustCompile(`^[a-z0-9_]{3,50}$`)

// RegisterInput kayıt formu verisi.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
}

// IAuthService kayıt/giriş işlemleri için arayüz.
type IAuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

// AuthService IAuthService arayüzünü uygular.
type AuthService struct {
	userRepo repositories.IUserRepository
}

// NewAuthService yeni bir AuthService örneği oluşturur.
func NewAuthService() IAuthService {
	return NewAuthServiceWithDB(configs.GetDB())
}

// NewAuthServiceWithDB test için bağlantı enjekte eder.
func NewAuthServiceWithDB(db *gorm.DB) IAuthService {
	return &AuthService{userRepo: repositories.NewUserRepositoryWithDB(db)}
}

// Register yeni kullanıcı oluşturur. UID harici sistemlere (ödeme metadata'sı)
// verilen sabit kimliktir ve kayıtta üretilir.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCrdInvalidInput, err)
	}
	if !usernamePattern.MatchString(input.Username) {
		return nil, ErrUsernameInvalid
	}
	if len(input.Password) < 8 {
		return nil, ErrPasswordTooShort
	}

	// Dostane ön kontroller; asıl garanti unique index'lerdir.
	if _, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	}
	if taken, err := s.userRepo.UsernameExists(ctx, input.Username, 0); err != nil {
		return nil, ErrRegistrationFailed
	} else if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Şifre hash'lenemedi", zap.Error(err))
		return nil, ErrRegistrationFailed
	}

	user := models.User{
		UID:          uuid.NewString(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		configslog.Log.Error("Kullanıcı kaydı oluşturulamadı", zap.String("email", input.Email), zap.Error(err))
		return nil, ErrRegistrationFailed
	}

	configslog.SLog.Infof("Yeni kullanıcı kaydı: ID %d, kullanıcı adı %s", user.ID, user.Username)
	return &user, nil
}

// Authenticate e-posta + şifre doğrular.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return user, nil
}

var _ IAuthService = (*AuthService)(nil)
