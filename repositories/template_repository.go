package repositories

import (
	"context"
	"errors"

	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/models"

	"gorm.io/gorm"
)

// ITemplateRepository firma şablonu veritabanı işlemleri için arayüz.
type ITemplateRepository interface {
	FindByCompanyID(ctx context.Context, companyID uint) (*models.Template, error)
	Create(ctx context.Context, template *models.Template) error
	Save(ctx context.Context, template *models.Template) error
}

// TemplateRepository ITemplateRepository arayüzünü uygular.
type TemplateRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.Template]
}

// NewTemplateRepository yeni bir TemplateRepository örneği oluşturur.
func NewTemplateRepository() ITemplateRepository {
	db := configsdatabase.GetDB()
	return &TemplateRepository{db: db, base: NewBaseRepository[models.Template](db)}
}

// NewTemplateRepositoryTx transaction üzerinde çalışan örnek üretir.
func NewTemplateRepositoryTx(tx *gorm.DB) ITemplateRepository {
	return &TemplateRepository{db: tx, base: NewBaseRepository[models.Template](tx)}
}

// FindByCompanyID firmanın şablonunu bulur. Şablon henüz oluşturulmamışsa
// ErrNotFound döner; lazy oluşturma servis katmanının işidir.
func (r *TemplateRepository) FindByCompanyID(ctx context.Context, companyID uint) (*models.Template, error) {
	if companyID == 0 {
		return nil, errors.New("geçersiz firma ID")
	}
	var template models.Template
	err := r.db.WithContext(ctx).Where("company_id = ?", companyID).First(&template).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *TemplateRepository) Create(ctx context.Context, template *models.Template) error {
	return r.base.Create(ctx, template)
}

func (r *TemplateRepository) Save(ctx context.Context, template *models.Template) error {
	return r.base.Save(ctx, template)
}

var _ ITemplateRepository = (*TemplateRepository)(nil)
