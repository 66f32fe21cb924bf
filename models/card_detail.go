package models

import (
	helpers "kartvizit.link/models/helpers"
)

// CardDetail dijital kartvizitin detaylarını içerir. Alan seti form şemasıyla
// birebir aynıdır; validate tag'leri servis katmanında kontrol edilir.
type CardDetail struct {
	BaseModel
	CardID uint `gorm:"uniqueIndex;not null" json:"-"` // cards.id FK

	// Kişisel ve İşletme Bilgileri
	FirstName           string `gorm:"type:varchar(100);not null" json:"firstName" validate:"required"`
	LastName            string `gorm:"type:varchar(100);not null" json:"lastName" validate:"required"`
	JobTitle            string `gorm:"type:varchar(100)" json:"jobTitle"`
	Tagline             string `gorm:"type:varchar(200)" json:"tagline"`
	BusinessName        string `gorm:"type:varchar(150)" json:"businessName"`
	BusinessAddress     string `gorm:"type:text" json:"businessAddress"`
	City                string `gorm:"type:varchar(100)" json:"city"`
	State               string `gorm:"type:varchar(100)" json:"state"`
	PostalCode          string `gorm:"type:varchar(20)" json:"postalCode"`
	Country             string `gorm:"type:varchar(100)" json:"country"`
	BusinessDescription string `gorm:"type:varchar(500)" json:"businessDescription" validate:"max=500"`

	// Görseller
	HeaderImageURL   string `gorm:"type:varchar(500)" json:"headerImageUrl" validate:"omitempty,url"`
	CoverImageURL    string `gorm:"type:varchar(500)" json:"coverImageUrl" validate:"omitempty,url"`
	BrandImageURL    string `gorm:"type:varchar(500)" json:"brandImageUrl" validate:"omitempty,url"`
	HeadshotImageURL string `gorm:"type:varchar(500)" json:"headshotImageUrl" validate:"omitempty,url"`

	// Aksiyonlar (en fazla 2 birincil) ve öne çıkan içerik
	PrimaryActions   helpers.ActionList       `gorm:"type:jsonb" json:"primaryActions" validate:"max=2,dive"`
	SecondaryActions helpers.SocialLinkList   `gorm:"type:jsonb" json:"secondaryActions" validate:"dive"`
	FeaturedContent  helpers.FeaturedItemList `gorm:"type:jsonb" json:"featuredContent" validate:"dive"`

	// Özelleştirme
	HeaderBackgroundColor          string `gorm:"type:varchar(7)" json:"headerBackgroundColor" validate:"omitempty,hexcolor"`
	BodyBackgroundColor            string `gorm:"type:varchar(7)" json:"bodyBackgroundColor" validate:"omitempty,hexcolor"`
	ButtonBackgroundColor          string `gorm:"type:varchar(7)" json:"buttonBackgroundColor" validate:"omitempty,hexcolor"`
	ButtonStyle                    string `gorm:"type:varchar(20)" json:"buttonStyle" validate:"omitempty,oneof=solid outline gradient"`
	FeaturedContentBackgroundColor string `gorm:"type:varchar(7)" json:"featuredContentBackgroundColor" validate:"omitempty,hexcolor"`
	TextColor                      string `gorm:"type:varchar(7)" json:"textColor" validate:"omitempty,hexcolor"`

	// Alt Bilgi
	CustomFooterText  string `gorm:"type:varchar(200)" json:"customFooterText"`
	CustomFooterLink  string `gorm:"type:varchar(500)" json:"customFooterLink" validate:"omitempty,url"`
	ShowDefaultFooter bool   `gorm:"default:true" json:"showDefaultFooter"`
}
