package models

// CardClick kart üzerindeki tek bir aksiyon türünün tıklanma sayacıdır.
// (card_id, action) benzersizdir; artırımlar tek satırlık atomik upsert'tür.
type CardClick struct {
	BaseModel
	CardID uint   `gorm:"not null;uniqueIndex:idx_card_clicks_card_action" json:"-"`
	Action string `gorm:"type:varchar(30);not null;uniqueIndex:idx_card_clicks_card_action" json:"action"`
	Count  int64  `gorm:"not null;default:0" json:"count"`
}

// ClickableActions hem birincil aksiyon tiplerini hem sosyal platformları
// kapsar. Yeni kart oluşturulduğunda her anahtar için sıfır sayaç açılır.
var ClickableActions = []string{
	"call", "whatsapp", "email", "website", "booking", "location", "store_name",
	"linkedin", "facebook", "twitter", "github", "instagram", "youtube",
	"tiktok", "threads", "behance", "dribbble", "cashapp", "paypal",
}

// IsClickableAction verilen aksiyonun sayılabilir olup olmadığını söyler.
func IsClickableAction(action string) bool {
	for _, a := range ClickableActions {
		if a == action {
			return true
		}
	}
	return false
}
