package configsdatabase

import (
	"time"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB PostgreSQL bağlantısını kurar ve bağlantı havuzunu ayarlar.
func InitDB() *gorm.DB {
	gormLogLevel := gormlogger.Warn
	if !configs.Cfg.IsProduction() {
		gormLogLevel = gormlogger.Info
	}

	conn, err := gorm.Open(postgres.Open(configs.Cfg.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		configslog.Log.Fatal("Veritabanı bağlantısı kurulamadı", zap.Error(err))
	}

	sqlDB, err := conn.DB()
	if err != nil {
		configslog.Log.Fatal("Veritabanı bağlantı havuzu alınamadı", zap.Error(err))
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	db = conn
	configslog.SLog.Infof("Veritabanı bağlantısı kuruldu: %s/%s", configs.Cfg.DBHost, configs.Cfg.DBName)
	return db
}

// GetDB mevcut veritabanı bağlantısını döndürür.
func GetDB() *gorm.DB {
	return db
}

// SetDB bağlantıyı dışarıdan atar. Testlerde in-memory SQLite vermek için kullanılır.
func SetDB(conn *gorm.DB) {
	db = conn
}

// CloseDB bağlantıyı kapatır.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}
