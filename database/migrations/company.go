package migrations

import (
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateCompaniesTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating companies table...")
	err := db.AutoMigrate(&models.Company{})
	if err != nil {
		configslog.Log.Error("Failed to migrate companies table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Companies table migrated successfully")
	return nil
}
