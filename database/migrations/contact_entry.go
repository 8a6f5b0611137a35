package migrations

import (
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateContactEntriesTables(db *gorm.DB) error {
	configslog.SLog.Info("Migrating contact_entries & card_hidden_defaults tables...")
	err := db.AutoMigrate(&models.ContactEntry{}, &models.CardHiddenDefault{})
	if err != nil {
		configslog.Log.Error("Failed to migrate contact_entries & card_hidden_defaults tables", zap.Error(err))
		return err
	}
	configslog.SLog.Info("ContactEntries & card_hidden_defaults tables migrated successfully")
	return nil
}
