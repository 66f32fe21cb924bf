package models

// Card dijital kartvizitin ana kaydıdır. Slug kullanıcı bazında benzersizdir
// ((creator_user_id, slug) composite unique index) ve oluşturulduktan sonra
// değiştirilemez. IsActive abonelik webhook'ları tarafından yönetilir.
type Card struct {
	BaseModel
	CreatorUserID uint   `gorm:"not null;uniqueIndex:idx_cards_user_slug" json:"userId"`
	Slug          string `gorm:"type:varchar(64);not null;uniqueIndex:idx_cards_user_slug" json:"cardSlug"`
	IsActive      bool   `gorm:"default:true;index" json:"isActive"`
	Views         int64  `gorm:"not null;default:0" json:"views"`

	// GORM İlişkileri
	Creator User       `gorm:"foreignKey:CreatorUserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Detail  CardDetail `gorm:"foreignKey:CardID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"detail"`
}
