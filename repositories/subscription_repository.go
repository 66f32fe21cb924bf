package repositories

import (
	"context"
	"errors"

	"kartvizit.link/configs"
	"kartvizit.link/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ISubscriptionRepository kart aboneliklerinin yerel yansıması için arayüz.
type ISubscriptionRepository interface {
	Upsert(ctx context.Context, sub *models.Subscription) error
	FindByCardID(ctx context.Context, cardID uint) (*models.Subscription, error)
}

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository() ISubscriptionRepository {
	return &SubscriptionRepository{db: configs.GetDB()}
}

func NewSubscriptionRepositoryWithDB(db *gorm.DB) ISubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Upsert kart başına tek abonelik kaydını günceller veya oluşturur.
// Webhook olayları aynı kart için durumu üzerine yazar.
func (r *SubscriptionRepository) Upsert(ctx context.Context, sub *models.Subscription) error {
	if sub == nil || sub.CardID == 0 {
		return errors.New("geçersiz abonelik kaydı")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "card_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "provider", "provider_subscription_id", "updated_at"}),
	}).Create(sub).Error
}

// FindByCardID kartın abonelik kaydını bulur.
func (r *SubscriptionRepository) FindByCardID(ctx context.Context, cardID uint) (*models.Subscription, error) {
	if cardID == 0 {
		return nil, errors.New("geçersiz kart ID")
	}
	var sub models.Subscription
	err := r.db.WithContext(ctx).Where("card_id = ?", cardID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

var _ ISubscriptionRepository = (*SubscriptionRepository)(nil)
