package models

// Plan abonelik planıdır. Stripe fiyat kimliği checkout oturumu açarken kullanılır.
type Plan struct {
	BaseModel
	Name          string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Price         int64  `gorm:"not null" json:"price"` // Kuruş cinsinden
	Duration      string `gorm:"type:varchar(20);not null" json:"duration"`
	Features      string `gorm:"type:text" json:"features"` // Satır başına bir özellik
	StripePriceID string `gorm:"type:varchar(100);uniqueIndex;not null" json:"stripePriceId"`
}
