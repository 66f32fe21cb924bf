// services/stats_service.go
package services

import (
	"context"
	"errors"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StatsServiceError özel servis hataları
type StatsServiceError string

func (e StatsServiceError) Error() string { return string(e) }

const (
	ErrUnknownAction StatsServiceError = "bilinmeyen aksiyon türü"
)

// CardStats kart sahibine gösterilen sayaç özeti.
type CardStats struct {
	CardID uint             `json:"cardId"`
	Views  int64            `json:"views"`
	Clicks map[string]int64 `json:"clicks"`
}

// IStatsService görüntülenme/tıklama sayaçları için arayüz.
type IStatsService interface {
	// RecordView best-effort çalışır: hata loglanır ama isteği düşürmez.
	RecordView(ctx context.Context, cardID uint)
	RecordClick(ctx context.Context, username, slug, action string) error
	GetCardStats(ctx context.Context, cardID uint, requestingUserID uint) (*CardStats, error)
}

// StatsService IStatsService arayüzünü uygular.
type StatsService struct {
	cardRepo repositories.ICardRepository
	userRepo repositories.IUserRepository
}

// NewStatsService yeni bir StatsService örneği oluşturur.
func NewStatsService() IStatsService {
	return NewStatsServiceWithDB(configs.GetDB())
}

// NewStatsServiceWithDB test için bağlantı enjekte eder.
func NewStatsServiceWithDB(db *gorm.DB) IStatsService {
	return &StatsService{
		cardRepo: repositories.NewCardRepositoryWithDB(db),
		userRepo: repositories.NewUserRepositoryWithDB(db),
	}
}

// RecordView public görüntülenme sayacını artırır. Fire-and-forget:
// artırım başarısız olsa da kart sayfası sunulmaya devam eder.
func (s *StatsService) RecordView(ctx context.Context, cardID uint) {
	if cardID == 0 {
		return
	}
	if err := s.cardRepo.IncrementViews(ctx, cardID); err != nil {
		configslog.Log.Warn("Görüntülenme sayacı artırılamadı", zap.Uint("cardID", cardID), zap.Error(err))
	}
}

// RecordClick public tıklama beacon'ını işler. Her istek bağımsız sayılır;
// hızlı tekrar tıklamalar tekilleştirilmez (rate limit middleware'i hariç).
func (s *StatsService) RecordClick(ctx context.Context, username, slug, action string) error {
	if !models.IsClickableAction(action) {
		return ErrUnknownAction
	}
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCardNotFound
		}
		return err
	}
	card, err := s.cardRepo.FindBySlug(ctx, user.ID, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCardNotFound
		}
		return err
	}
	if err := s.cardRepo.IncrementClick(ctx, card.ID, action); err != nil {
		configslog.Log.Error("Tıklama sayacı artırılamadı", zap.Uint("cardID", card.ID), zap.String("action", action), zap.Error(err))
		return err
	}
	return nil
}

// GetCardStats kart sahibine (veya yöneticiye) sayaçları döner.
func (s *StatsService) GetCardStats(ctx context.Context, cardID uint, requestingUserID uint) (*CardStats, error) {
	card, err := s.cardRepo.GetCardByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}

	requestingUser, userErr := s.userRepo.FindByID(ctx, requestingUserID)
	if userErr != nil {
		return nil, ErrCardForbidden
	}
	if !requestingUser.IsSystem && card.CreatorUserID != requestingUserID {
		return nil, ErrCardForbidden
	}

	clicks, err := s.cardRepo.GetClicks(ctx, cardID)
	if err != nil {
		configslog.Log.Error("Tıklama sayaçları okunamadı", zap.Uint("cardID", cardID), zap.Error(err))
		return nil, err
	}
	return &CardStats{CardID: card.ID, Views: card.Views, Clicks: clicks}, nil
}

var _ IStatsService = (*StatsService)(nil)
