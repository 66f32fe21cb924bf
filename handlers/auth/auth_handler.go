package handlers // handlers/auth paketi

import (
	"errors"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/services"
	"kartvizit.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler kayıt, giriş ve profil uçları için handler.
type AuthHandler struct {
	authService services.IAuthService
	userService services.IUserService
}

// NewAuthHandler yeni bir AuthHandler örneği oluşturur.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{
		authService: services.NewAuthService(),
		userService: services.NewUserService(),
	}
}

// Register yeni kullanıcı kaydı oluşturur ve oturumu başlatır.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz istek gövdesi"})
	}

	user, err := h.authService.Register(c.UserContext(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken),
			errors.Is(err, services.ErrUsernameTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrUsernameInvalid),
			errors.Is(err, services.ErrPasswordTooShort):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrRegistrationFailed):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}
	}

	sess, sessErr := utils.SessionStart(c)
	if sessErr == nil {
		if err := utils.SetUserSession(sess, user.ID, user.IsSystem, user.Username); err != nil {
			configslog.Log.Error("Kayıt sonrası session yazılamadı", zap.Uint("userID", user.ID), zap.Error(err))
		}
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// Login e-posta ve şifre ile oturum açar.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz istek gövdesi"})
	}

	user, err := h.authService.Authenticate(c.UserContext(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, services.ErrUserInactive) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("Login hatası", zap.String("email", input.Email), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Giriş yapılamadı"})
	}

	sess, sessErr := utils.SessionStart(c)
	if sessErr != nil {
		configslog.Log.Error("Login: session açılamadı", zap.Error(sessErr))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Oturum başlatılamadı"})
	}
	if err := utils.SetUserSession(sess, user.ID, user.IsSystem, user.Username); err != nil {
		configslog.Log.Error("Login: session yazılamadı", zap.Uint("userID", user.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Oturum başlatılamadı"})
	}

	return c.JSON(fiber.Map{
		"id":       user.ID,
		"username": user.Username,
		"isSystem": user.IsSystem,
	})
}

// Logout oturumu sonlandırır.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := utils.SessionStart(c)
	if err == nil {
		if destroyErr := utils.DestroySession(sess); destroyErr != nil {
			configslog.Log.Warn("Logout: session silinemedi", zap.Error(destroyErr))
		}
	}
	return c.JSON(fiber.Map{"message": "Çıkış yapıldı"})
}

// Profile oturum açmış kullanıcının profil bilgilerini döner.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	user, err := h.userService.GetProfile(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Profil bilgileri alınamadı"})
	}
	return c.JSON(fiber.Map{
		"id":            user.ID,
		"username":      user.Username,
		"email":         user.Email,
		"bookmarkImage": user.BookmarkImage,
		"isActive":      user.IsActive,
	})
}

// UpdateProfile kullanıcı adını ve bookmark görselini günceller.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)

	var input services.ProfileInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz istek gövdesi"})
	}

	if err := h.userService.UpdateProfile(c.UserContext(), userID, input); err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrUsernameInvalid), errors.Is(err, services.ErrCrdInvalidInput):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		default:
			configslog.Log.Error("Profil güncelleme hatası", zap.Uint("userID", userID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Profil güncellenemedi"})
		}
	}

	// Kullanıcı adı session'da da tutulur; güncel hali yazılır.
	if sess, sessErr := utils.SessionStart(c); sessErr == nil {
		isSystem, _ := c.Locals("isSystem").(bool)
		_ = utils.SetUserSession(sess, userID, isSystem, input.Username)
	}
	return c.JSON(fiber.Map{"message": "Profil güncellendi"})
}
