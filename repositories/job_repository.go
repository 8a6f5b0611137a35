package repositories

import (
	"context"
	"errors"

	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/models"

	"gorm.io/gorm"
)

// IJobRepository arka plan işi durum kayıtları için arayüz.
type IJobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	FindByBatchID(ctx context.Context, batchID string) (*models.Job, error)
	FindRunningByCompany(ctx context.Context, companyID uint, kind string) ([]models.Job, error)
	FindRecentByCompany(ctx context.Context, companyID uint, kind string, limit int) ([]models.Job, error)
	Save(ctx context.Context, job *models.Job) error
}

// JobRepository IJobRepository arayüzünü uygular.
type JobRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.Job]
}

// NewJobRepository yeni bir JobRepository örneği oluşturur.
func NewJobRepository() IJobRepository {
	db := configsdatabase.GetDB()
	return &JobRepository{db: db, base: NewBaseRepository[models.Job](db)}
}

// NewJobRepositoryTx transaction üzerinde çalışan örnek üretir.
func NewJobRepositoryTx(tx *gorm.DB) IJobRepository {
	return &JobRepository{db: tx, base: NewBaseRepository[models.Job](tx)}
}

func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	return r.base.Create(ctx, job)
}

func (r *JobRepository) FindByBatchID(ctx context.Context, batchID string) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).Where("batch_id = ?", batchID).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// FindRunningByCompany bekleyen/çalışan işleri döndürür (polling için).
func (r *JobRepository) FindRunningByCompany(ctx context.Context, companyID uint, kind string) ([]models.Job, error) {
	var jobs []models.Job
	query := r.db.WithContext(ctx).
		Where("company_id = ? AND status IN ?", companyID, []string{models.JobStatusPending, models.JobStatusRunning})
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	err := query.Order("created_at desc").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepository) FindRecentByCompany(ctx context.Context, companyID uint, kind string, limit int) ([]models.Job, error) {
	if limit <= 0 {
		limit = 20
	}
	var jobs []models.Job
	query := r.db.WithContext(ctx).Where("company_id = ?", companyID)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	err := query.Order("created_at desc").Limit(limit).Find(&jobs).Error
	return jobs, err
}

func (r *JobRepository) Save(ctx context.Context, job *models.Job) error {
	return r.base.Save(ctx, job)
}

var _ IJobRepository = (*JobRepository)(nil)
