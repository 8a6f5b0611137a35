package seeders

import (
	"context"
	"errors"
	"os"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	defaultSystemEmail    = "system@kartvizit.link"
	defaultSystemPassword = "ChangeMe_123!"
)

// SeedSystemUser sistem kullanıcısını oluşturur; varsa dokunmaz. Parola
// SYSTEM_USER_PASSWORD ortam değişkeni ile değiştirilebilir.
func SeedSystemUser(db *gorm.DB) error {
	configslog.SLog.Info("Sistem kullanıcısı seed işlemi başlıyor...")

	var existing models.User
	result := db.Where("email = ?", defaultSystemEmail).First(&existing)
	if result.Error == nil {
		configslog.SLog.Info("Sistem kullanıcısı zaten mevcut, oluşturma atlanıyor.")
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Sistem kullanıcısı kontrol edilirken veritabanı hatası", zap.Error(result.Error))
		return result.Error
	}

	password := os.Getenv("SYSTEM_USER_PASSWORD")
	if password == "" {
		password = defaultSystemPassword
		configslog.SLog.Warn("SYSTEM_USER_PASSWORD tanımlı değil, varsayılan parola kullanılıyor.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		configslog.Log.Error("Sistem kullanıcısı parolası hashlenemedi", zap.Error(err))
		return err
	}

	user := models.User{
		Email:        defaultSystemEmail,
		Name:         "Sistem",
		PasswordHash: string(hash),
		IsSystem:     true,
		IsEnabled:    true,
	}

	ctx := models.ContextWithUserID(context.Background(), 1)
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		configslog.Log.Error("Sistem kullanıcısı oluşturulamadı", zap.Error(err))
		return err
	}

	configslog.SLog.Infof("Sistem kullanıcısı başarıyla oluşturuldu (ID: %d).", user.ID)
	return nil
}
