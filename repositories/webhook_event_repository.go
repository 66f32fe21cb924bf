package repositories

import (
	"context"
	"errors"

	"kartvizit.link/configs"
	"kartvizit.link/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IWebhookEventRepository işlenmiş sağlayıcı olaylarının kaydı için arayüz.
type IWebhookEventRepository interface {
	// Record olayı kaydeder. Olay daha önce işlendiyse (false, nil) döner.
	Record(ctx context.Context, provider, eventID, eventType string) (bool, error)
}

type WebhookEventRepository struct {
	db *gorm.DB
}

func NewWebhookEventRepository() IWebhookEventRepository {
	return &WebhookEventRepository{db: configs.GetDB()}
}

func NewWebhookEventRepositoryWithDB(db *gorm.DB) IWebhookEventRepository {
	return &WebhookEventRepository{db: db}
}

// Record (provider, event_id) unique index'ine dayanarak tekrar teslimleri
// yakalar: INSERT ... ON CONFLICT DO NOTHING sıfır satır etkilediyse olay
// daha önce işlenmiştir.
func (r *WebhookEventRepository) Record(ctx context.Context, provider, eventID, eventType string) (bool, error) {
	if provider == "" || eventID == "" {
		return false, errors.New("geçersiz webhook olay kimliği")
	}
	event := models.WebhookEvent{Provider: provider, EventID: eventID, Type: eventType}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "provider"}, {Name: "event_id"}},
		DoNothing: true,
	}).Create(&event)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

var _ IWebhookEventRepository = (*WebhookEventRepository)(nil)
