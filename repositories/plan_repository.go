package repositories

import (
	"context"
	"errors"

	"kartvizit.link/configs"
	"kartvizit.link/models"

	"gorm.io/gorm"
)

// IPlanRepository abonelik planları için arayüz.
type IPlanRepository interface {
	GetAll(ctx context.Context) ([]models.Plan, error)
	FindByStripePriceID(ctx context.Context, priceID string) (*models.Plan, error)
}

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository() IPlanRepository {
	return &PlanRepository{db: configs.GetDB()}
}

func NewPlanRepositoryWithDB(db *gorm.DB) IPlanRepository {
	return &PlanRepository{db: db}
}

// GetAll planları fiyat sırasına göre listeler.
func (r *PlanRepository) GetAll(ctx context.Context) ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.WithContext(ctx).Order("price asc").Find(&plans).Error
	return plans, err
}

// FindByStripePriceID checkout isteğindeki fiyat kimliğini doğrulamak için kullanılır.
func (r *PlanRepository) FindByStripePriceID(ctx context.Context, priceID string) (*models.Plan, error) {
	if priceID == "" {
		return nil, errors.New("aranacak fiyat kimliği boş olamaz")
	}
	var plan models.Plan
	err := r.db.WithContext(ctx).Where("stripe_price_id = ?", priceID).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

var _ IPlanRepository = (*PlanRepository)(nil)
