package services

import (
	"context"
	"errors"
	"fmt"

	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/models/helpers"
	"kartvizit.link/pkg/cardfields"
	"kartvizit.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompanyServiceError firma servisi hataları.
type CompanyServiceError string

func (e CompanyServiceError) Error() string { return string(e) }

const (
	ErrCompanyNotFound       CompanyServiceError = "firma bulunamadı"
	ErrCompanyAlreadyExists  CompanyServiceError = "bu isimde bir firma zaten mevcut"
	ErrCompanyCreationFailed CompanyServiceError = "firma oluşturulamadı"
	ErrCompanyUpdateFailed   CompanyServiceError = "firma güncellenemedi"
	ErrCmpInvalidInput       CompanyServiceError = "geçersiz girdi verisi"
)

// ICompanyService firma işlemleri için arayüz.
type ICompanyService interface {
	CreateCompany(ctx context.Context, name string, userID uint) (*models.Company, error)
	GetCompanyByID(ctx context.Context, id uint) (*models.Company, error)
	UpdateCompany(ctx context.Context, id uint, userID uint, name string, isEnabled bool) error
}

// CompanyService ICompanyService arayüzünü uygular.
type CompanyService struct {
	repo repositories.ICompanyRepository
	db   *gorm.DB
}

// NewCompanyService yeni bir CompanyService örneği oluşturur.
func NewCompanyService() ICompanyService {
	return &CompanyService{
		repo: repositories.NewCompanyRepository(),
		db:   configsdatabase.GetDB(),
	}
}

// CreateCompany firmayı ve boş şablonunu birlikte oluşturur. Şablon kart
// çözümlemesi için zorunludur, firma onsuz var olamaz.
func (s *CompanyService) CreateCompany(ctx context.Context, name string, userID uint) (*models.Company, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: firma adı boş olamaz", ErrCmpInvalidInput)
	}

	var created *models.Company
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, userID)
		repoTx := repositories.NewCompanyRepositoryTx(tx)

		if existing, err := repoTx.FindByName(txCtx, name); err == nil && existing != nil {
			return ErrCompanyAlreadyExists
		} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		company := models.Company{Name: name, IsEnabled: true}
		if err := repoTx.Create(txCtx, &company); err != nil {
			configslog.Log.Error("Firma oluşturulamadı", zap.String("name", name), zap.Error(err))
			return ErrCompanyCreationFailed
		}

		tpl := models.Template{
			CompanyID:    company.ID,
			SectionOrder: helpers.StringArray(cardfields.DefaultSectionOrder),
		}
		tplRepoTx := repositories.NewTemplateRepositoryTx(tx)
		if err := tplRepoTx.Create(txCtx, &tpl); err != nil {
			configslog.Log.Error("Firma şablonu oluşturulamadı", zap.Uint("companyID", company.ID), zap.Error(err))
			return ErrCompanyCreationFailed
		}
		company.Template = &tpl
		created = &company
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	configslog.SLog.Infof("Firma oluşturuldu: %s (ID %d)", created.Name, created.ID)
	return created, nil
}

// GetCompanyByID firmayı şablonu ile getirir.
func (s *CompanyService) GetCompanyByID(ctx context.Context, id uint) (*models.Company, error) {
	company, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return company, nil
}

// UpdateCompany firma adını ve aktiflik durumunu günceller.
func (s *CompanyService) UpdateCompany(ctx context.Context, id uint, userID uint, name string, isEnabled bool) error {
	if id == 0 || name == "" {
		return fmt.Errorf("%w: geçersiz ID veya firma adı", ErrCmpInvalidInput)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, userID)
		repoTx := repositories.NewCompanyRepositoryTx(tx)

		company, err := repoTx.FindByID(txCtx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrCompanyNotFound
			}
			return err
		}

		company.Name = name
		company.IsEnabled = isEnabled
		if err := repoTx.Save(txCtx, company); err != nil {
			configslog.Log.Error("Firma güncellenemedi", zap.Uint("companyID", id), zap.Error(err))
			return ErrCompanyUpdateFailed
		}
		return nil
	})
}

var _ ICompanyService = (*CompanyService)(nil)
