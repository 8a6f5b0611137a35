package migrations

import (
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func MigrateJobsTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrating jobs table...")
	err := db.AutoMigrate(&models.Job{})
	if err != nil {
		configslog.Log.Error("Failed to migrate jobs table", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Jobs table migrated successfully")
	return nil
}
