package seeders

import (
	"errors"
	"os"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedPlans abonelik planlarını oluşturur. Stripe fiyat kimlikleri ortam
// değişkenlerinden okunur; kimliği tanımsız plan atlanır.
func SeedPlans(db *gorm.DB) error {
	plansToSeed := []models.Plan{
		{
			Name:          "Aylık",
			Price:         30000, // Kuruş
			Duration:      "1 ay",
			Features:      "Aktif kartvizit\nGörüntülenme ve tıklama istatistikleri",
			StripePriceID: os.Getenv("STRIPE_PRICE_MONTHLY"),
		},
		{
			Name:          "6 Aylık",
			Price:         160000,
			Duration:      "6 ay",
			Features:      "Aktif kartvizit\nGörüntülenme ve tıklama istatistikleri\n%11 indirim",
			StripePriceID: os.Getenv("STRIPE_PRICE_SEMIANNUAL"),
		},
		{
			Name:          "Yıllık",
			Price:         360000,
			Duration:      "12 ay",
			Features:      "Aktif kartvizit\nGörüntülenme ve tıklama istatistikleri\n2 ay ücretsiz",
			StripePriceID: os.Getenv("STRIPE_PRICE_YEARLY"),
		},
	}

	var createdCount int64
	var errorOccurred bool

	configslog.SLog.Info("Abonelik planları seed işlemi başlıyor...")

	for _, planToSeed := range plansToSeed {
		if planToSeed.StripePriceID == "" {
			configslog.SLog.Warnf("Plan '%s' için Stripe fiyat kimliği tanımsız, atlanıyor.", planToSeed.Name)
			continue
		}

		var existingPlan models.Plan
		result := db.Where("name = ?", planToSeed.Name).First(&existingPlan)

		if result.Error == nil {
			configslog.SLog.Debugf("Plan '%s' zaten mevcut, oluşturma atlanıyor.", planToSeed.Name)
			continue
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			configslog.Log.Error("Plan kontrol edilirken veritabanı hatası",
				zap.String("plan_name", planToSeed.Name),
				zap.Error(result.Error),
			)
			errorOccurred = true
			continue
		}

		configslog.SLog.Infof("Plan '%s' oluşturuluyor...", planToSeed.Name)

		if err := db.Create(&planToSeed).Error; err != nil {
			configslog.Log.Error("Plan oluşturulamadı",
				zap.String("plan_name", planToSeed.Name),
				zap.Error(err),
			)
			errorOccurred = true
			continue
		}

		configslog.SLog.Infof("Plan '%s' başarıyla oluşturuldu (ID: %d).", planToSeed.Name, planToSeed.ID)
		createdCount++
	}

	if createdCount > 0 {
		configslog.SLog.Infof("%d adet yeni plan başarıyla seed edildi.", createdCount)
	} else if !errorOccurred {
		configslog.SLog.Info("Tüm planlar zaten mevcut, yeni ekleme yapılmadı.")
	}

	if errorOccurred {
		return errors.New("planlar seed edilirken en az bir hata oluştu")
	}

	configslog.SLog.Info("Abonelik planları seed işlemi başarıyla tamamlandı.")
	return nil
}
