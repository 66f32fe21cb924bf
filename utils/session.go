package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Session anahtarları.
const (
	SessionKeyUserID   = "user_id"
	SessionKeyIsSystem = "is_system"
	SessionKeyUserName = "user_name"
)

// SessionStart istekten session'ı açar. Store router tarafından Locals'a konur.
func SessionStart(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals("session_store").(*session.Store)
	if !ok || store == nil {
		return nil, errors.New("session store bulunamadı")
	}
	return store.Get(c)
}

// GetUserIDFromSession session'daki kullanıcı ID'sini okur.
func GetUserIDFromSession(sess *session.Session) (uint, error) {
	userID, ok := sess.Get(SessionKeyUserID).(uint)
	if !ok || userID == 0 {
		return 0, errors.New("session'da kullanıcı ID yok")
	}
	return userID, nil
}

// GetIsSystemFromSession session'daki yönetici bayrağını okur.
func GetIsSystemFromSession(sess *session.Session) (bool, error) {
	isSystem, ok := sess.Get(SessionKeyIsSystem).(bool)
	if !ok {
		return false, errors.New("session'da yönetici bilgisi yok")
	}
	return isSystem, nil
}

// SetUserSession login sonrası session'a kimlik bilgilerini yazar.
func SetUserSession(sess *session.Session, userID uint, isSystem bool, userName string) error {
	sess.Set(SessionKeyUserID, userID)
	sess.Set(SessionKeyIsSystem, isSystem)
	sess.Set(SessionKeyUserName, userName)
	return sess.Save()
}

// DestroySession logout'ta session'ı yok eder.
func DestroySession(sess *session.Session) error {
	return sess.Destroy()
}
