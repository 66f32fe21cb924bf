package migrations

import (
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateCardsTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating cards, card_details & card_clicks tables...")
	err := db.AutoMigrate(&models.Card{}, &models.CardDetail{}, &models.CardClick{})
	if err != nil {
		configslog.Log.Error("Failed to migrate cards, card_details & card_clicks tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Cards, card_details & card_clicks tables migrated successfully")
	return nil
}
