package seeders

import (
	"context"
	"errors"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/models/helpers"
	"kartvizit.link/pkg/cardfields"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const demoCompanyName = "Demo Firma"

// SeedDemoCompany demo firmayı, şablonunu ve birkaç firma varsayılanı
// iletişim kaydını oluşturur. Firma varsa işlem atlanır.
func SeedDemoCompany(db *gorm.DB) error {
	configslog.SLog.Info("Demo firma seed işlemi başlıyor...")

	var existing models.Company
	result := db.Where("name = ?", demoCompanyName).First(&existing)
	if result.Error == nil {
		configslog.SLog.Info("Demo firma zaten mevcut, oluşturma atlanıyor.")
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Demo firma kontrol edilirken veritabanı hatası", zap.Error(result.Error))
		return result.Error
	}

	ctx := models.ContextWithUserID(context.Background(), 1)

	company := models.Company{Name: demoCompanyName, IsEnabled: true}
	if err := db.WithContext(ctx).Create(&company).Error; err != nil {
		configslog.Log.Error("Demo firma oluşturulamadı", zap.Error(err))
		return err
	}

	template := models.Template{
		CompanyID:    company.ID,
		SectionOrder: helpers.StringArray(cardfields.DefaultSectionOrder),
	}
	if err := db.WithContext(ctx).Create(&template).Error; err != nil {
		configslog.Log.Error("Demo firma şablonu oluşturulamadı", zap.Error(err))
		return err
	}

	defaults := []models.ContactEntry{
		{
			CompanyID: company.ID,
			ListType:  models.ListTypePhoneNumbers,
			Label:     "Head Office",
			LabelDE:   "Zentrale",
			Value:     "+49 30 1234567",
			SortIndex: 0,
		},
		{
			CompanyID: company.ID,
			ListType:  models.ListTypeWebsites,
			Label:     "Website",
			Value:     "https://kartvizit.link",
			SortIndex: 0,
		},
	}
	for i := range defaults {
		if err := db.WithContext(ctx).Create(&defaults[i]).Error; err != nil {
			configslog.Log.Error("Demo iletişim kaydı oluşturulamadı",
				zap.String("list_type", defaults[i].ListType), zap.Error(err))
			return err
		}
	}

	configslog.SLog.Infof("Demo firma başarıyla oluşturuldu (ID: %d).", company.ID)
	return nil
}
