package models

// User uygulama kullanıcısının ana kaydıdır. UID harici sistemlere (ödeme
// sağlayıcı metadata'sı gibi) verilen sabit kimliktir; Username public kart
// URL'lerinde kullanılır ve global olarak benzersizdir (değiştirilebilir).
type User struct {
	BaseModel
	UID           string `gorm:"type:varchar(36);uniqueIndex;not null" json:"uid"`
	Username      string `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email         string `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash  string `gorm:"type:varchar(100);not null" json:"-"`
	BookmarkImage string `gorm:"type:varchar(500)" json:"bookmarkImage"`
	IsActive      bool   `gorm:"default:true;index" json:"isActive"`
	IsSystem      bool   `gorm:"default:false" json:"-"` // Yönetici (dashboard) yetkisi
}
