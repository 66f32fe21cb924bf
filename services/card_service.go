// services/card_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/queryparams"
	"kartvizit.link/repositories"
	"kartvizit.link/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CardServiceError özel servis hataları
type CardServiceError string

func (e CardServiceError) Error() string { return string(e) }

const (
	ErrCardNotFound       CardServiceError = "kartvizit bulunamadı"
	ErrCardInactive       CardServiceError = "kartvizit şu anda pasif"
	ErrCardSlugTaken      CardServiceError = "bu slug zaten kullanımda"
	ErrCardSlugInvalid    CardServiceError = "slug sadece küçük harf, rakam ve tire içerebilir (en az 3 karakter)"
	ErrCardCreationFailed CardServiceError = "kartvizit oluşturulamadı"
	ErrCardUpdateFailed   CardServiceError = "kartvizit güncellenemedi"
	ErrCardDeletionFailed CardServiceError = "kartvizit silinemedi"
	ErrCardForbidden      CardServiceError = "bu işlem için yetkiniz yok"
	ErrCrdInvalidInput    CardServiceError = "geçersiz girdi verisi"
)

// Kullanıcının elle verdiği slug'lar için format kuralı. Otomatik üretilen
// slug'lar (12 haneli alfanümerik) bu kurala tabi değildir.
var slugPattern = regexp.MustCompile(`^[a-z0-9-]{3,64}$`)

var validate = validator.New()

// PublicCard public çözümlemenin döndürdüğü (ve cache'lenen) veri.
type PublicCard struct {
	CardID   uint              `json:"cardId"`
	Username string            `json:"username"`
	Slug     string            `json:"cardSlug"`
	Detail   models.CardDetail `json:"detail"`
}

// ICardService kartvizit işlemleri için arayüz.
type ICardService interface {
	CreateCard(ctx context.Context, creatorUserID uint, detail models.CardDetail, slug string) (*models.Card, error)
	GetCardByID(ctx context.Context, id uint, requestingUserID uint) (*models.Card, error)
	GetCardsForUserPaginated(ctx context.Context, creatorUserID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetAllCardsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateCard(ctx context.Context, id uint, updatingUserID uint, detail models.CardDetail, isActive *bool) error
	DeleteCard(ctx context.Context, id uint, deletingUserID uint) error
	ResolvePublicCard(ctx context.Context, username, slug string) (*PublicCard, error)
	GetCardCountForUser(ctx context.Context, creatorUserID uint) (int64, error)
	GetTotalCardCount(ctx context.Context) (int64, error)
}

// CardService ICardService arayüzünü uygular.
type CardService struct {
	repo     repositories.ICardRepository
	userRepo repositories.IUserRepository
	cache    ICacheService
	db       *gorm.DB
}

// NewCardService yeni bir CardService örneği oluşturur.
func NewCardService() ICardService {
	return NewCardServiceWithDB(configs.GetDB(), NewCacheService())
}

// NewCardServiceWithDB bağımlılıkları enjekte ederek servis oluşturur (test için).
func NewCardServiceWithDB(db *gorm.DB, cache ICacheService) ICardService {
	return &CardService{
		repo:     repositories.NewCardRepositoryWithDB(db),
		userRepo: repositories.NewUserRepositoryWithDB(db),
		cache:    cache,
		db:       db,
	}
}

// ValidateCardDetail form şemasını kontrol eder (zorunlu isim alanları,
// aksiyon/platform enum'ları, en fazla 2 birincil aksiyon, renk ve URL formatları).
func ValidateCardDetail(detail models.CardDetail) error {
	if err := validate.Struct(detail); err != nil {
		return err
	}
	return nil
}

func contextWithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, models.ContextUserIDKey, userID)
}

// CreateCard yeni kartviziti, detayını ve sıfır tıklama sayaçlarını TEK BİR
// TRANSACTION içinde oluşturur. Slug verilmemişse 12 haneli alfanümerik anahtar
// üretilir; ön kontrol + (creator_user_id, slug) unique index'i çakışmayı engeller.
func (s *CardService) CreateCard(ctx context.Context, creatorUserID uint, detail models.CardDetail, slug string) (*models.Card, error) {
	if creatorUserID == 0 {
		return nil, fmt.Errorf("%w: geçersiz oluşturan kullanıcı ID", ErrCrdInvalidInput)
	}
	if err := ValidateCardDetail(detail); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCrdInvalidInput, err)
	}
	if slug != "" && !slugPattern.MatchString(slug) {
		return nil, ErrCardSlugInvalid
	}

	var createdCard *models.Card

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := contextWithUserID(ctx, creatorUserID)
		cardRepoTx := repositories.NewCardRepositoryWithDB(tx)

		// a. Slug belirle: verilmişse benzersizliğini kontrol et, verilmemişse
		//    çakışma olmayana kadar üret (sınırlı deneme).
		cardSlug := slug
		if cardSlug == "" {
			maxAttempts := 5
			for i := 0; i < maxAttempts; i++ {
				candidate, genErr := utils.GenerateSecureRandomString(utils.SlugLength)
				if genErr != nil {
					return ErrCardCreationFailed
				}
				exists, checkErr := cardRepoTx.SlugExists(txCtx, creatorUserID, candidate)
				if checkErr != nil {
					return ErrCardCreationFailed
				}
				if !exists {
					cardSlug = candidate
					break
				}
				configslog.Log.Warn("Slug çakışması, yeniden deneniyor...", zap.String("slug", candidate))
			}
			if cardSlug == "" {
				return ErrCardCreationFailed
			}
		} else {
			exists, checkErr := cardRepoTx.SlugExists(txCtx, creatorUserID, cardSlug)
			if checkErr != nil {
				return ErrCardCreationFailed
			}
			if exists {
				return ErrCardSlugTaken
			}
		}

		// b. Card + Detail + sıfır sayaçlar
		card := models.Card{
			CreatorUserID: creatorUserID,
			Slug:          cardSlug,
			IsActive:      true, // Yeni kart varsayılan olarak aktif
			Views:         0,
			Detail:        detail,
		}
		if err := cardRepoTx.CreateCard(txCtx, &card); err != nil {
			// Ön kontrol ile commit arasında yarışan ikinci yazar unique
			// index'e takılır; aynı validasyon hatasına çevrilir.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrCardSlugTaken
			}
			configslog.Log.Error("Kartvizit oluşturulamadı", zap.Uint("creatorUserID", creatorUserID), zap.Error(err))
			return ErrCardCreationFailed
		}

		createdCard = &card
		return nil
	})

	if txErr != nil {
		return nil, txErr
	}

	configslog.SLog.Infof("Kartvizit başarıyla oluşturuldu: CardID %d, Slug: %s", createdCard.ID, createdCard.Slug)
	return createdCard, nil
}

// GetCardByID belirli bir kartviziti ID ve kullanıcı yetkisine göre getirir.
func (s *CardService) GetCardByID(ctx context.Context, id uint, requestingUserID uint) (*models.Card, error) {
	card, err := s.repo.GetCardByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		configslog.Log.Error("GetCardByID: Repo error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	requestingUser, userErr := s.userRepo.FindByID(ctx, requestingUserID)
	if userErr != nil {
		return nil, ErrCardForbidden
	}
	if !requestingUser.IsSystem && card.CreatorUserID != requestingUserID {
		configslog.Log.Warn("Yetkisiz kartvizit erişim denemesi", zap.Uint("cardID", id), zap.Uint("userID", requestingUserID))
		return nil, ErrCardForbidden
	}
	return card, nil
}

// ResolvePublicCard (username, slug) ikilisini public kart verisine çözer.
// Aktif kartlar kısa süreli cache'lenir; pasif kart ErrCardInactive döner.
func (s *CardService) ResolvePublicCard(ctx context.Context, username, slug string) (*PublicCard, error) {
	if username == "" || slug == "" {
		return nil, ErrCardNotFound
	}

	cacheKey := PublicCardCacheKey(username, slug)
	var cached PublicCard
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	// 1. Kullanıcıyı bul (limit 1)
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		configslog.Log.Error("ResolvePublicCard: FindByUsername error", zap.String("username", username), zap.Error(err))
		return nil, err
	}

	// 2. Kullanıcının kartını slug ile bul (limit 1)
	card, err := s.repo.FindBySlug(ctx, user.ID, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		configslog.Log.Error("ResolvePublicCard: FindBySlug error", zap.String("username", username), zap.String("slug", slug), zap.Error(err))
		return nil, err
	}

	// 3. Abonelik bayrağı: pasif kartın verisi dışarı çıkmaz.
	if !card.IsActive {
		configslog.Log.Info("Pasif kartvizit erişim denemesi", zap.String("username", username), zap.String("slug", slug))
		return nil, ErrCardInactive
	}

	result := &PublicCard{
		CardID:   card.ID,
		Username: username,
		Slug:     card.Slug,
		Detail:   card.Detail,
	}
	if err := s.cache.Set(ctx, cacheKey, result, publicCardTTL); err != nil {
		configslog.Log.Warn("Public kart cache'e yazılamadı", zap.String("key", cacheKey), zap.Error(err))
	}
	return result, nil
}

// GetCardsForUserPaginated kullanıcıya ait kartvizitleri sayfalayarak getirir.
func (s *CardService) GetCardsForUserPaginated(ctx context.Context, creatorUserID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if creatorUserID == 0 {
		return nil, errors.New("geçersiz kullanıcı ID")
	}
	params.Validate()
	if params.SortBy == "" {
		params.SortBy = "created_at"
	}

	cards, totalCount, err := s.repo.FindAllCardsByUserIDPaginated(creatorUserID, params)
	if err != nil {
		configslog.Log.Error("Kullanıcı kartvizitleri alınırken hata", zap.Uint("creatorUserID", creatorUserID), zap.Error(err))
		return nil, err
	}
	return paginated(cards, totalCount, params), nil
}

// GetAllCardsPaginated tüm kartları listeler (dashboard).
func (s *CardService) GetAllCardsPaginated(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	if params.SortBy == "" {
		params.SortBy = "created_at"
	}
	cards, totalCount, err := s.repo.GetAllCardsPaginated(params)
	if err != nil {
		configslog.Log.Error("Kartvizitler listelenirken hata", zap.Error(err))
		return nil, err
	}
	return paginated(cards, totalCount, params), nil
}

func paginated(data interface{}, totalCount int64, params queryparams.ListParams) *queryparams.PaginatedResult {
	return &queryparams.PaginatedResult{
		Data: data,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page, PerPage: params.PerPage,
			TotalItems: totalCount, TotalPages: queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}
}

// UpdateCard mevcut bir kartviziti ve detaylarını günceller. Slug değiştirilemez.
// isActive sadece dashboard (yönetici) akışından gelir; panel nil geçer.
func (s *CardService) UpdateCard(ctx context.Context, id uint, updatingUserID uint, detail models.CardDetail, isActive *bool) error {
	if id == 0 || updatingUserID == 0 {
		return fmt.Errorf("%w: geçersiz ID veya güncelleyen kullanıcı ID", ErrCrdInvalidInput)
	}
	if err := ValidateCardDetail(detail); err != nil {
		return fmt.Errorf("%w: %v", ErrCrdInvalidInput, err)
	}

	var ownerID uint
	var cardSlug string

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := contextWithUserID(ctx, updatingUserID)
		cardRepoTx := repositories.NewCardRepositoryWithDB(tx)
		userRepoTx := repositories.NewUserRepositoryWithDB(tx)

		// a. Mevcut kaydı kilitli olarak al
		var existingCard models.Card
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Detail").First(&existingCard, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCardNotFound
			}
			configslog.Log.Error("UpdateCard: kayıt alınamadı", zap.Uint("id", id), zap.Error(err))
			return err
		}

		// b. Yetki kontrolü
		requestingUser, userErr := userRepoTx.FindByID(txCtx, updatingUserID)
		if userErr != nil {
			return ErrCardForbidden
		}
		if !requestingUser.IsSystem && existingCard.CreatorUserID != updatingUserID {
			return ErrCardForbidden
		}
		if isActive != nil && !requestingUser.IsSystem {
			// Aktiflik abonelik webhook'larının ve yöneticinin alanıdır.
			return ErrCardForbidden
		}

		ownerID = existingCard.CreatorUserID
		cardSlug = existingCard.Slug

		// c. Detay alanlarını kopyala (ID ve CardID korunur)
		existingDetail := existingCard.Detail
		detailID, detailCardID := existingDetail.ID, existingDetail.CardID
		createdAt, createdBy := existingDetail.CreatedAt, existingDetail.CreatedBy
		existingDetail = detail
		existingDetail.ID = detailID
		existingDetail.CardID = detailCardID
		existingDetail.CreatedAt = createdAt
		existingDetail.CreatedBy = createdBy

		if err := cardRepoTx.UpdateDetail(txCtx, &existingDetail); err != nil {
			configslog.Log.Error("Kartvizit detayı güncellenirken hata", zap.Uint("detailID", existingDetail.ID), zap.Error(err))
			return ErrCardUpdateFailed
		}

		// d. Ana kayıt (isActive sadece yönetici akışında değişir)
		if isActive != nil {
			existingCard.IsActive = *isActive
		}
		existingCard.Detail = models.CardDetail{}
		if err := cardRepoTx.UpdateCard(txCtx, &existingCard); err != nil {
			configslog.Log.Error("Kartvizit güncellenirken hata", zap.Uint("id", id), zap.Error(err))
			return ErrCardUpdateFailed
		}
		return nil
	})

	if txErr != nil {
		return txErr
	}

	s.invalidatePublicCache(ctx, ownerID, cardSlug)
	configslog.SLog.Infof("Kartvizit başarıyla güncellendi: ID %d", id)
	return nil
}

// DeleteCard bir kartviziti siler.
func (s *CardService) DeleteCard(ctx context.Context, id uint, deletingUserID uint) error {
	if id == 0 || deletingUserID == 0 {
		return fmt.Errorf("%w: geçersiz ID veya silen kullanıcı ID", ErrCrdInvalidInput)
	}

	var ownerID uint
	var cardSlug string

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := contextWithUserID(ctx, deletingUserID)
		cardRepoTx := repositories.NewCardRepositoryWithDB(tx)
		userRepoTx := repositories.NewUserRepositoryWithDB(tx)

		var cardToDelete models.Card
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&cardToDelete, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCardNotFound
			}
			configslog.Log.Error("DeleteCard: kayıt alınamadı", zap.Uint("id", id), zap.Error(err))
			return err
		}

		requestingUser, userErr := userRepoTx.FindByID(txCtx, deletingUserID)
		if userErr != nil {
			return ErrCardForbidden
		}
		if !requestingUser.IsSystem && cardToDelete.CreatorUserID != deletingUserID {
			return ErrCardForbidden
		}

		ownerID = cardToDelete.CreatorUserID
		cardSlug = cardToDelete.Slug

		if err := cardRepoTx.DeleteCard(txCtx, id); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrCardNotFound
			}
			configslog.Log.Error("Kartvizit silinirken hata", zap.Uint("id", id), zap.Error(err))
			return ErrCardDeletionFailed
		}
		return nil
	})

	if txErr != nil {
		return txErr
	}

	s.invalidatePublicCache(ctx, ownerID, cardSlug)
	configslog.SLog.Infof("Kartvizit başarıyla silindi: ID %d", id)
	return nil
}

// GetCardCountForUser kullanıcıya ait kartvizit sayısını alır.
func (s *CardService) GetCardCountForUser(ctx context.Context, creatorUserID uint) (int64, error) {
	count, err := s.repo.CountCardsByUserID(ctx, creatorUserID)
	if err != nil {
		configslog.Log.Error("Kullanıcı kartvizit sayısı alınırken hata", zap.Uint("creatorUserID", creatorUserID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// GetTotalCardCount sistemdeki toplam kartvizit sayısını alır (dashboard).
func (s *CardService) GetTotalCardCount(ctx context.Context) (int64, error) {
	count, err := s.repo.GetCardCount()
	if err != nil {
		configslog.Log.Error("Toplam kartvizit sayısı alınırken hata", zap.Error(err))
		return 0, err
	}
	return count, nil
}

// invalidatePublicCache kart sahibinin kullanıcı adını bulup public cache
// kaydını düşürür. Başarısızlık sadece loglanır; TTL zaten kısa.
func (s *CardService) invalidatePublicCache(ctx context.Context, ownerID uint, slug string) {
	if ownerID == 0 || slug == "" {
		return
	}
	owner, err := s.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		return
	}
	if err := s.cache.Delete(ctx, PublicCardCacheKey(owner.Username, slug)); err != nil {
		configslog.Log.Warn("Public kart cache kaydı silinemedi", zap.Uint("ownerID", ownerID), zap.String("slug", slug), zap.Error(err))
	}
}

var _ ICardService = (*CardService)(nil)
