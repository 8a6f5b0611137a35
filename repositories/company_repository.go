package repositories

import (
	"context"
	"errors"

	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/models"

	"gorm.io/gorm"
)

// ICompanyRepository firma veritabanı işlemleri için arayüz.
type ICompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	FindByID(ctx context.Context, id uint) (*models.Company, error)
	FindByName(ctx context.Context, name string) (*models.Company, error)
	Save(ctx context.Context, company *models.Company) error
}

// CompanyRepository ICompanyRepository arayüzünü uygular.
type CompanyRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.Company]
}

// NewCompanyRepository yeni bir CompanyRepository örneği oluşturur.
func NewCompanyRepository() ICompanyRepository {
	db := configsdatabase.GetDB()
	return &CompanyRepository{db: db, base: NewBaseRepository[models.Company](db)}
}

// NewCompanyRepositoryTx transaction üzerinde çalışan örnek üretir.
func NewCompanyRepositoryTx(tx *gorm.DB) ICompanyRepository {
	return &CompanyRepository{db: tx, base: NewBaseRepository[models.Company](tx)}
}

func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	return r.base.Create(ctx, company)
}

func (r *CompanyRepository) FindByID(ctx context.Context, id uint) (*models.Company, error) {
	if id == 0 {
		return nil, errors.New("geçersiz firma ID")
	}
	var company models.Company
	err := r.db.WithContext(ctx).Preload("Template").First(&company, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) FindByName(ctx context.Context, name string) (*models.Company, error) {
	var company models.Company
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) Save(ctx context.Context, company *models.Company) error {
	return r.base.Save(ctx, company)
}

var _ ICompanyRepository = (*CompanyRepository)(nil)
