package migrations

import (
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateBillingTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating plans, subscriptions & webhook_events tables...")
	err := db.AutoMigrate(&models.Plan{}, &models.Subscription{}, &models.WebhookEvent{})
	if err != nil {
		configslog.Log.Error("Failed to migrate plans, subscriptions & webhook_events tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Plans, subscriptions & webhook_events tables migrated successfully")
	return nil
}
