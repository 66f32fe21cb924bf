package models

// Abonelik durumları. Webhook işleyicisi sağlayıcı olaylarını bu durumlara çevirir.
const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusCanceled = "canceled"
)

// Subscription bir kartın abonelik durumunun yereldeki yansımasıdır.
// Kart başına tek kayıt tutulur; webhook olayları durumu üzerine yazar.
type Subscription struct {
	BaseModel
	CardID                 uint   `gorm:"uniqueIndex;not null" json:"cardId"`
	UserID                 uint   `gorm:"index;not null" json:"userId"`
	Provider               string `gorm:"type:varchar(20);not null;default:stripe" json:"provider"`
	ProviderSubscriptionID string `gorm:"type:varchar(100);index" json:"-"`
	Status                 string `gorm:"type:varchar(20);not null" json:"status"`

	Card Card `gorm:"foreignKey:CardID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
