// models/helpers paketindeki tipler JSONB sütunlarına serileştirilen
// yapıları içerir. Hepsi driver.Valuer ve sql.Scanner uygular; böylece
// GORM bunları tek bir jsonb sütununda saklayabilir.
package helpers

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// ActionButton kartın birincil aksiyon butonu (ara, whatsapp, e-posta vb.).
type ActionButton struct {
	Type  string `json:"type" validate:"required,oneof=call whatsapp email website booking location store_name"`
	Label string `json:"label" validate:"required"`
	Value string `json:"value" validate:"required"`
}

// SocialLink ikincil aksiyon: sosyal medya platformu + profil URL'si.
type SocialLink struct {
	Platform string `json:"platform" validate:"required,oneof=linkedin facebook twitter github instagram youtube tiktok threads behance dribbble cashapp paypal"`
	URL      string `json:"url" validate:"required,url"`
}

// FeaturedItem kartta öne çıkarılan içerik (medya, ürün, CTA, video veya link).
type FeaturedItem struct {
	Type        string `json:"type" validate:"required,oneof=media product cta video link"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty" validate:"omitempty,url"`
	LinkURL     string `json:"linkUrl,omitempty" validate:"omitempty,url"`
	ButtonText  string `json:"buttonText,omitempty"`
	VideoURL    string `json:"videoUrl,omitempty" validate:"omitempty,url"`
}

type ActionList []ActionButton

type SocialLinkList []SocialLink

type FeaturedItemList []FeaturedItem

func (l ActionList) Value() (driver.Value, error)       { return jsonbValue(l) }
func (l *ActionList) Scan(src interface{}) error        { return jsonbScan(src, l) }
func (l SocialLinkList) Value() (driver.Value, error)   { return jsonbValue(l) }
func (l *SocialLinkList) Scan(src interface{}) error    { return jsonbScan(src, l) }
func (l FeaturedItemList) Value() (driver.Value, error) { return jsonbValue(l) }
func (l *FeaturedItemList) Scan(src interface{}) error  { return jsonbScan(src, l) }

func jsonbValue(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("jsonb serileştirme hatası: %w", err)
	}
	return string(data), nil
}

func jsonbScan(src interface{}, dest interface{}) error {
	if src == nil {
		return nil
	}
	var data []byte
	switch s := src.(type) {
	case []byte:
		data = s
	case string:
		data = []byte(s)
	default:
		return errors.New("jsonb sütunu için beklenmeyen kaynak tipi")
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dest)
}
