package models

// WebhookEvent işlenmiş sağlayıcı olaylarının kaydıdır. (provider, event_id)
// benzersizdir; aynı olayın tekrar teslim edilmesi ikinci kez uygulanmaz.
type WebhookEvent struct {
	BaseModel
	Provider string `gorm:"type:varchar(20);not null;uniqueIndex:idx_webhook_events_provider_event" json:"provider"`
	EventID  string `gorm:"type:varchar(100);not null;uniqueIndex:idx_webhook_events_provider_event" json:"eventId"`
	Type     string `gorm:"type:varchar(60);not null" json:"type"`
}
