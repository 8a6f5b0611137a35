package services

import (
	"context"
	"errors"
	"fmt"

	"kartvizit.link/cache"
	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/models/helpers"
	"kartvizit.link/pkg/cardfields"
	"kartvizit.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TemplateServiceError şablon servisi hataları.
type TemplateServiceError string

func (e TemplateServiceError) Error() string { return string(e) }

const (
	ErrTemplateNotFound     TemplateServiceError = "firma şablonu bulunamadı"
	ErrTemplateUpdateFailed TemplateServiceError = "şablon güncellenemedi"
	ErrInvalidSectionSet    TemplateServiceError = "bölüm sırası bilinen beş bölümün bir permütasyonu olmalıdır"
	ErrTplInvalidInput      TemplateServiceError = "geçersiz girdi verisi"
)

// TemplatePatch şablon güncellemesinde değişen alanları taşır. nil alanlar
// dokunulmadan bırakılır.
type TemplatePatch struct {
	BackgroundColor  *string `json:"background_color"`
	NameTextColor    *string `json:"name_text_color"`
	CompanyTextColor *string `json:"company_text_color"`
	PhoneTextColor   *string `json:"phone_text_color"`
	EmailTextColor   *string `json:"email_text_color"`
	WebsiteTextColor *string `json:"website_text_color"`
	AddressTextColor *string `json:"address_text_color"`
	ButtonTextColor  *string `json:"button_text_color"`
	ButtonBgColor    *string `json:"button_bg_color"`
	BannerURL        *string `json:"banner_url"`

	SaveContactLabel   *string `json:"save_contact_label"`
	SaveContactLabelDE *string `json:"save_contact_label_de"`
	WalletLabel        *string `json:"wallet_label"`
	WalletLabelDE      *string `json:"wallet_label_de"`

	WalletBgColor   *string `json:"wallet_bg_color"`
	WalletTextColor *string `json:"wallet_text_color"`
	WalletLogoURL   *string `json:"wallet_logo_url"`
}

// ITemplateService şablon işlemleri için arayüz.
type ITemplateService interface {
	GetOrCreateTemplate(ctx context.Context, companyID uint, userID uint) (*models.Template, error)
	UpdateTemplate(ctx context.Context, companyID uint, userID uint, patch TemplatePatch) (*models.Template, error)
	GetSectionOrder(ctx context.Context, companyID uint) ([]string, error)
	SetSectionOrder(ctx context.Context, companyID uint, userID uint, order []string) error
}

// TemplateService ITemplateService arayüzünü uygular.
type TemplateService struct {
	repo repositories.ITemplateRepository
	db   *gorm.DB
}

// NewTemplateService yeni bir TemplateService örneği oluşturur.
func NewTemplateService() ITemplateService {
	return &TemplateService{
		repo: repositories.NewTemplateRepository(),
		db:   configsdatabase.GetDB(),
	}
}

// GetOrCreateTemplate firmanın şablonunu getirir; yoksa varsayılanlarla
// lazy olarak oluşturur (ilk kayıtta yaratma davranışı).
func (s *TemplateService) GetOrCreateTemplate(ctx context.Context, companyID uint, userID uint) (*models.Template, error) {
	if companyID == 0 {
		return nil, fmt.Errorf("%w: geçersiz firma ID", ErrTplInvalidInput)
	}

	template, err := s.repo.FindByCompanyID(ctx, companyID)
	if err == nil {
		return template, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		configslog.Log.Error("GetOrCreateTemplate: Repo hatası", zap.Uint("companyID", companyID), zap.Error(err))
		return nil, err
	}

	created := &models.Template{
		CompanyID:    companyID,
		SectionOrder: helpers.StringArray(cardfields.DefaultSectionOrder),
	}
	txCtx := models.ContextWithUserID(ctx, userID)
	if err := s.repo.Create(txCtx, created); err != nil {
		configslog.Log.Error("Şablon oluşturulamadı", zap.Uint("companyID", companyID), zap.Error(err))
		return nil, ErrTemplateUpdateFailed
	}
	configslog.SLog.Infof("Firma şablonu lazy oluşturuldu: CompanyID %d", companyID)
	return created, nil
}

// UpdateTemplate şablonun dolu gelen alanlarını günceller.
func (s *TemplateService) UpdateTemplate(ctx context.Context, companyID uint, userID uint, patch TemplatePatch) (*models.Template, error) {
	if companyID == 0 || userID == 0 {
		return nil, fmt.Errorf("%w: geçersiz firma veya kullanıcı ID", ErrTplInvalidInput)
	}

	var updated *models.Template
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, userID)
		repoTx := repositories.NewTemplateRepositoryTx(tx)

		template, err := repoTx.FindByCompanyID(txCtx, companyID)
		if errors.Is(err, repositories.ErrNotFound) {
			template = &models.Template{
				CompanyID:    companyID,
				SectionOrder: helpers.StringArray(cardfields.DefaultSectionOrder),
			}
			if err := repoTx.Create(txCtx, template); err != nil {
				return ErrTemplateUpdateFailed
			}
		} else if err != nil {
			return err
		}

		applyPatch(template, patch)
		if err := repoTx.Save(txCtx, template); err != nil {
			configslog.Log.Error("Şablon kaydedilemedi", zap.Uint("companyID", companyID), zap.Error(err))
			return ErrTemplateUpdateFailed
		}
		updated = template
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return updated, nil
}

func applyPatch(t *models.Template, p TemplatePatch) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&t.BackgroundColor, p.BackgroundColor)
	set(&t.NameTextColor, p.NameTextColor)
	set(&t.CompanyTextColor, p.CompanyTextColor)
	set(&t.PhoneTextColor, p.PhoneTextColor)
	set(&t.EmailTextColor, p.EmailTextColor)
	set(&t.WebsiteTextColor, p.WebsiteTextColor)
	set(&t.AddressTextColor, p.AddressTextColor)
	set(&t.ButtonTextColor, p.ButtonTextColor)
	set(&t.ButtonBgColor, p.ButtonBgColor)
	set(&t.BannerURL, p.BannerURL)
	set(&t.SaveContactLabel, p.SaveContactLabel)
	set(&t.SaveContactLabelDE, p.SaveContactLabelDE)
	set(&t.WalletLabel, p.WalletLabel)
	set(&t.WalletLabelDE, p.WalletLabelDE)
	set(&t.WalletBgColor, p.WalletBgColor)
	set(&t.WalletTextColor, p.WalletTextColor)
	set(&t.WalletLogoURL, p.WalletLogoURL)
}

// GetSectionOrder bölüm sırasını döndürür: önce cache, sonra DB; şablon
// yoksa veya sıra boşsa varsayılan sıra döner.
func (s *TemplateService) GetSectionOrder(ctx context.Context, companyID uint) ([]string, error) {
	if companyID == 0 {
		return nil, fmt.Errorf("%w: geçersiz firma ID", ErrTplInvalidInput)
	}

	if order, ok := cache.GetSectionOrder(ctx, companyID); ok {
		return order, nil
	}

	template, err := s.repo.FindByCompanyID(ctx, companyID)
	if errors.Is(err, repositories.ErrNotFound) {
		return append([]string(nil), cardfields.DefaultSectionOrder...), nil
	}
	if err != nil {
		return nil, err
	}

	order := []string(template.SectionOrder)
	if len(order) == 0 {
		order = append([]string(nil), cardfields.DefaultSectionOrder...)
	}
	cache.SetSectionOrder(ctx, companyID, order)
	return order, nil
}

// SetSectionOrder bölüm sırasını doğrular ve kalıcılaştırır. Geçersiz
// kümelerde saklanan sıra değişmez ve ErrInvalidSectionSet döner.
func (s *TemplateService) SetSectionOrder(ctx context.Context, companyID uint, userID uint, order []string) error {
	if companyID == 0 || userID == 0 {
		return fmt.Errorf("%w: geçersiz firma veya kullanıcı ID", ErrTplInvalidInput)
	}
	if !cardfields.IsValidSectionOrder(order) {
		return ErrInvalidSectionSet
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, userID)
		repoTx := repositories.NewTemplateRepositoryTx(tx)

		var template models.Template
		err := tx.Where("company_id = ?", companyID).First(&template).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			template = models.Template{CompanyID: companyID, SectionOrder: helpers.StringArray(order)}
			return repoTx.Create(txCtx, &template)
		}
		if err != nil {
			return err
		}

		template.SectionOrder = helpers.StringArray(order)
		return repoTx.Save(txCtx, &template)
	})
	if txErr != nil {
		configslog.Log.Error("Bölüm sırası kaydedilemedi", zap.Uint("companyID", companyID), zap.Error(txErr))
		return ErrTemplateUpdateFailed
	}

	cache.InvalidateSectionOrder(ctx, companyID)
	configslog.SLog.Infof("Bölüm sırası güncellendi: CompanyID %d", companyID)
	return nil
}

var _ ITemplateService = (*TemplateService)(nil)
