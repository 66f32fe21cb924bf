package repositories

import (
	"context"
	"errors"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IUserRepository kullanıcı veritabanı işlemleri için arayüz.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUID(ctx context.Context, uid string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string, excludeUserID uint) (bool, error)
	Update(ctx context.Context, id uint, data map[string]interface{}, updatedByUserID uint) error
}

// UserRepository IUserRepository arayüzünü uygular.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository yeni bir UserRepository örneği oluşturur.
func NewUserRepository() IUserRepository {
	return &UserRepository{db: configs.GetDB()}
}

// NewUserRepositoryWithDB test veya transaction için bağlantı enjekte eder.
func NewUserRepositoryWithDB(db *gorm.DB) IUserRepository {
	return &UserRepository{db: db}
}

// Arayüz uyumluluğu kontrolü
var _ IUserRepository = (*UserRepository)(nil)

// Create yeni kullanıcı kaydı oluşturur.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("oluşturulacak kullanıcı nil olamaz")
	}
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID ID ile kullanıcıyı bulur.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if id == 0 {
		return nil, errors.New("geçersiz kullanıcı ID")
	}
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		configslog.Log.Error("UserRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// FindByUID harici kimlik (uid) ile kullanıcıyı bulur. Webhook metadata'sındaki
// kimlik bu alana karşılık gelir.
func (r *UserRepository) FindByUID(ctx context.Context, uid string) (*models.User, error) {
	if uid == "" {
		return nil, errors.New("aranacak uid boş olamaz")
	}
	var user models.User
	err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		configslog.Log.Error("UserRepository.FindByUID: DB error", zap.String("uid", uid), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// FindByEmail e-posta ile kullanıcıyı bulur (login için).
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, errors.New("aranacak e-posta boş olamaz")
	}
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername public çözümleme için kullanıcıyı bulur (limit 1).
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, errors.New("aranacak kullanıcı adı boş olamaz")
	}
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).Limit(1).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		configslog.Log.Error("UserRepository.FindByUsername: DB error", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// UsernameExists kullanıcı adının başka bir kullanıcıda olup olmadığını kontrol
// eder. excludeUserID profil güncellemesinde mevcut kullanıcıyı hariç tutar.
// Bu ön kontrol dostane bir validasyon hatası içindir; asıl garanti
// users.username üzerindeki unique index'tir.
func (r *UserRepository) UsernameExists(ctx context.Context, username string, excludeUserID uint) (bool, error) {
	if username == "" {
		return false, errors.New("kontrol edilecek kullanıcı adı boş olamaz")
	}
	var count int64
	query := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username)
	if excludeUserID != 0 {
		query = query.Where("id <> ?", excludeUserID)
	}
	if err := query.Count(&count).Error; err != nil {
		configslog.Log.Error("UserRepository.UsernameExists: DB error", zap.String("username", username), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// Update map ile verilen alanları günceller.
func (r *UserRepository) Update(ctx context.Context, id uint, data map[string]interface{}, updatedByUserID uint) error {
	if id == 0 {
		return errors.New("güncellenecek kullanıcı ID'si geçersiz")
	}
	if len(data) == 0 {
		return errors.New("güncellenecek veri boş olamaz")
	}
	ctxWithUser := context.WithValue(ctx, models.ContextUserIDKey, updatedByUserID)

	result := r.db.WithContext(ctxWithUser).Model(&models.User{}).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := r.db.Model(&models.User{}).Where("id = ?", id).Count(&exists).Error; err == nil && exists == 0 {
			return ErrNotFound
		}
	}
	return nil
}
