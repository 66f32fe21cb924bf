package models

import (
	"time"

	"gorm.io/gorm"
)

type contextKey string

// ContextUserIDKey işlemi yapan kullanıcının ID'sini context üzerinden
// BaseModel hook'larına taşır (CreatedBy/UpdatedBy alanları için).
const ContextUserIDKey contextKey = "user_id"

// BaseModel tüm tabloların ortak alanlarını içerir. Soft delete kullanılır,
// audit alanları (CreatedBy vb.) hook'lar tarafından context'ten doldurulur.
type BaseModel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy *uint          `json:"-"`
	UpdatedBy *uint          `json:"-"`
	DeletedBy *uint          `json:"-"`
}

// BeforeCreate context'te user_id varsa CreatedBy/UpdatedBy alanlarını doldurur.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if userID, ok := userIDFromContext(tx); ok {
		m.CreatedBy = &userID
		m.UpdatedBy = &userID
	}
	return nil
}

// BeforeUpdate context'te user_id varsa UpdatedBy alanını günceller.
func (m *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if userID, ok := userIDFromContext(tx); ok {
		m.UpdatedBy = &userID
	}
	return nil
}

func userIDFromContext(tx *gorm.DB) (uint, bool) {
	if tx.Statement == nil || tx.Statement.Context == nil {
		return 0, false
	}
	userID, ok := tx.Statement.Context.Value(ContextUserIDKey).(uint)
	return userID, ok && userID != 0
}
