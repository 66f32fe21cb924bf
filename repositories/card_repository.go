package repositories

import (
	"context"
	"errors"
	"strings"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ICardRepository kartvizit veritabanı işlemleri için arayüz.
type ICardRepository interface {
	CreateCard(ctx context.Context, card *models.Card) error
	GetCardByID(ctx context.Context, id uint) (*models.Card, error)
	FindBySlug(ctx context.Context, userID uint, slug string) (*models.Card, error)
	SlugExists(ctx context.Context, userID uint, slug string) (bool, error)
	UpdateCard(ctx context.Context, card *models.Card) error
	UpdateDetail(ctx context.Context, detail *models.CardDetail) error
	SetActive(ctx context.Context, id uint, active bool) error
	DeleteCard(ctx context.Context, id uint) error
	GetAllCardsPaginated(params queryparams.ListParams) ([]models.Card, int64, error)
	FindAllCardsByUserIDPaginated(userID uint, params queryparams.ListParams) ([]models.Card, int64, error)
	CountCardsByUserID(ctx context.Context, userID uint) (int64, error)
	IncrementViews(ctx context.Context, id uint) error
	IncrementClick(ctx context.Context, id uint, action string) error
	GetClicks(ctx context.Context, id uint) (map[string]int64, error)
	GetCardCount() (int64, error)
}

// CardRepository ICardRepository arayüzünü uygular.
type CardRepository struct {
	base *BaseRepository[models.Card]
	db   *gorm.DB
}

// NewCardRepository yeni bir CardRepository örneği oluşturur.
func NewCardRepository() ICardRepository {
	return NewCardRepositoryWithDB(configs.GetDB())
}

// NewCardRepositoryWithDB verilen bağlantı (veya transaction) üzerinde çalışır.
func NewCardRepositoryWithDB(db *gorm.DB) ICardRepository {
	base := NewBaseRepository[models.Card](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "is_active", "views", "slug"})
	return &CardRepository{base: base, db: db}
}

// CreateCard kartı ve detayını oluşturur, tüm aksiyonlar için sıfır tıklama
// sayaçlarını açar. Transaction yönetimi servis katmanındadır.
func (r *CardRepository) CreateCard(ctx context.Context, card *models.Card) error {
	if card == nil {
		return errors.New("oluşturulacak kartvizit nil olamaz")
	}
	if err := r.db.WithContext(ctx).Create(card).Error; err != nil {
		return err
	}

	clicks := make([]models.CardClick, 0, len(models.ClickableActions))
	for _, action := range models.ClickableActions {
		clicks = append(clicks, models.CardClick{CardID: card.ID, Action: action, Count: 0})
	}
	return r.db.WithContext(ctx).Create(&clicks).Error
}

// GetCardByID kartviziti detayıyla birlikte bulur.
func (r *CardRepository) GetCardByID(ctx context.Context, id uint) (*models.Card, error) {
	if id == 0 {
		return nil, errors.New("geçersiz kart ID")
	}
	var card models.Card
	err := r.db.WithContext(ctx).Preload("Detail").First(&card, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		configslog.Log.Error("CardRepository.GetCardByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &card, nil
}

// FindBySlug kullanıcıya ait slug ile kartviziti bulur (limit 1, public çözümleme).
func (r *CardRepository) FindBySlug(ctx context.Context, userID uint, slug string) (*models.Card, error) {
	if userID == 0 || slug == "" {
		return nil, errors.New("geçersiz kullanıcı ID veya slug")
	}
	var card models.Card
	err := r.db.WithContext(ctx).
		Preload("Detail").
		Where("creator_user_id = ? AND slug = ?", userID, slug).
		Limit(1).
		First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		configslog.Log.Error("CardRepository.FindBySlug: DB error", zap.Uint("user_id", userID), zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	return &card, nil
}

// SlugExists slug'ın aynı kullanıcıda zaten var olup olmadığını kontrol eder.
// Dostane ön kontroldür; asıl garanti (creator_user_id, slug) unique index'idir.
func (r *CardRepository) SlugExists(ctx context.Context, userID uint, slug string) (bool, error) {
	if userID == 0 || slug == "" {
		return false, errors.New("geçersiz kullanıcı ID veya slug")
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Card{}).
		Where("creator_user_id = ? AND slug = ?", userID, slug).
		Count(&count).Error
	if err != nil {
		configslog.Log.Error("CardRepository.SlugExists: DB error", zap.Uint("user_id", userID), zap.String("slug", slug), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// UpdateCard ana kaydı Save ile günceller (hook'lar çalışır).
func (r *CardRepository) UpdateCard(ctx context.Context, card *models.Card) error {
	if card == nil || card.ID == 0 {
		return errors.New("güncellenecek kartvizit geçerli değil")
	}
	return r.db.WithContext(ctx).Omit("Detail", "Creator").Save(card).Error
}

// UpdateDetail detay kaydını Save ile günceller.
func (r *CardRepository) UpdateDetail(ctx context.Context, detail *models.CardDetail) error {
	if detail == nil || detail.ID == 0 {
		return errors.New("güncellenecek kart detayı geçerli değil")
	}
	return r.db.WithContext(ctx).Save(detail).Error
}

// SetActive webhook akışının kullandığı tek alanlık bayrak güncellemesidir.
// Bayrak ataması doğası gereği idempotenttir.
func (r *CardRepository) SetActive(ctx context.Context, id uint, active bool) error {
	if id == 0 {
		return errors.New("geçersiz kart ID")
	}
	result := r.db.WithContext(ctx).Model(&models.Card{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := r.db.Model(&models.Card{}).Where("id = ?", id).Count(&exists).Error; err == nil && exists == 0 {
			return ErrNotFound
		}
	}
	return nil
}

// DeleteCard kartviziti siler (soft delete). Detay ve sayaçlar da silinir.
func (r *CardRepository) DeleteCard(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("geçersiz kart ID")
	}
	result := r.db.WithContext(ctx).Delete(&models.Card{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	if err := r.db.WithContext(ctx).Where("card_id = ?", id).Delete(&models.CardDetail{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("card_id = ?", id).Delete(&models.CardClick{}).Error
}

// GetAllCardsPaginated tüm kartları listeler (dashboard). İsim filtresi için
// card_details tablosuna JOIN yapılır.
func (r *CardRepository) GetAllCardsPaginated(params queryparams.ListParams) ([]models.Card, int64, error) {
	return r.listPaginated(params, 0)
}

// FindAllCardsByUserIDPaginated kullanıcıya ait kartları listeler (panel).
func (r *CardRepository) FindAllCardsByUserIDPaginated(userID uint, params queryparams.ListParams) ([]models.Card, int64, error) {
	if userID == 0 {
		return nil, 0, errors.New("geçersiz kullanıcı ID")
	}
	return r.listPaginated(params, userID)
}

func (r *CardRepository) listPaginated(params queryparams.ListParams, userID uint) ([]models.Card, int64, error) {
	var results []models.Card
	var totalCount int64

	query := r.db.Model(&models.Card{}).
		Joins("JOIN card_details ON card_details.card_id = cards.id")
	if userID != 0 {
		query = query.Where("cards.creator_user_id = ?", userID)
	}

	if params.Name != "" {
		searchValue := "%" + strings.ToLower(params.Name) + "%"
		query = query.Where(
			r.db.Where("LOWER(card_details.first_name) LIKE ?", searchValue).
				Or("LOWER(card_details.last_name) LIKE ?", searchValue).
				Or("LOWER(card_details.business_name) LIKE ?", searchValue),
		)
	}
	switch params.Status {
	case "active":
		query = query.Where("cards.is_active = ?", true)
	case "inactive":
		query = query.Where("cards.is_active = ?", false)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return results, 0, nil
	}

	orderBy := strings.ToLower(params.OrderBy)
	if orderBy != "asc" && orderBy != "desc" {
		orderBy = queryparams.DefaultOrderBy
	}
	allowedSortColumns := map[string]string{
		"id":         "cards.id",
		"created_at": "cards.created_at",
		"is_active":  "cards.is_active",
		"views":      "cards.views",
		"slug":       "cards.slug",
		"first_name": "card_details.first_name",
		"last_name":  "card_details.last_name",
	}
	orderColumn := "cards.created_at"
	if dbCol, ok := allowedSortColumns[params.SortBy]; ok {
		orderColumn = dbCol
	}

	err := query.
		Order(orderColumn + " " + orderBy).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Select("cards.*").
		Preload("Detail").
		Find(&results).Error
	return results, totalCount, err
}

// CountCardsByUserID kullanıcıya ait kart sayısını alır.
func (r *CardRepository) CountCardsByUserID(ctx context.Context, userID uint) (int64, error) {
	if userID == 0 {
		return 0, errors.New("geçersiz kullanıcı ID")
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Card{}).Where("creator_user_id = ?", userID).Count(&count).Error
	return count, err
}

// IncrementViews görüntülenme sayacını atomik olarak bir artırır.
func (r *CardRepository) IncrementViews(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("geçersiz kart ID")
	}
	return r.db.WithContext(ctx).Model(&models.Card{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// IncrementClick aksiyon sayacını atomik upsert ile bir artırır. Kart
// oluşturulurken tüm aksiyonlar sıfırla açıldığı için normalde UPDATE yoluna
// düşer; eski kartlar için eksik satır burada oluşur.
func (r *CardRepository) IncrementClick(ctx context.Context, id uint, action string) error {
	if id == 0 || action == "" {
		return errors.New("geçersiz kart ID veya aksiyon")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "card_id"}, {Name: "action"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("card_clicks.count + 1")}),
	}).Create(&models.CardClick{CardID: id, Action: action, Count: 1}).Error
}

// GetClicks kartın tıklama sayaçlarını aksiyon -> sayaç map'i olarak döner.
func (r *CardRepository) GetClicks(ctx context.Context, id uint) (map[string]int64, error) {
	if id == 0 {
		return nil, errors.New("geçersiz kart ID")
	}
	var clicks []models.CardClick
	if err := r.db.WithContext(ctx).Where("card_id = ?", id).Find(&clicks).Error; err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(clicks))
	for _, c := range clicks {
		result[c.Action] = c.Count
	}
	return result, nil
}

// GetCardCount toplam kart sayısını alır.
func (r *CardRepository) GetCardCount() (int64, error) {
	return r.base.GetCount()
}

// Arayüz uyumluluğu kontrolü
var _ ICardRepository = (*CardRepository)(nil)
