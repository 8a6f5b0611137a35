package services

import (
	"context"
	"errors"
	"fmt"

	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/configs/configsmq"
	"kartvizit.link/models"
	"kartvizit.link/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// JobServiceError arka plan işi servisi hataları.
type JobServiceError string

func (e JobServiceError) Error() string { return string(e) }

const (
	ErrJobNotFound       JobServiceError = "iş kaydı bulunamadı"
	ErrJobAlreadyRunning JobServiceError = "bu firma için devam eden bir iş zaten var"
	ErrJobTriggerFailed  JobServiceError = "iş başlatılamadı"
	ErrJobInvalidInput   JobServiceError = "geçersiz girdi verisi"
)

// JobStatus UI'ın polling ile okuduğu durum özeti.
type JobStatus struct {
	HasRunningJob bool         `json:"hasRunningJob"`
	SyncedItems   int          `json:"synced_items"`
	TotalItems    int          `json:"total_items"`
	Jobs          []models.Job `json:"jobs"`
}

// jobMessage kuyruğa yazılan mesaj gövdesi.
type jobMessage struct {
	BatchID   string `json:"batch_id"`
	CompanyID uint   `json:"company_id"`
	Kind      string `json:"kind"`
}

// IJobService arka plan işleri için arayüz. İşler kuyruğa yazılır, dışarıdaki
// worker'lar durum kaydını günceller.
type IJobService interface {
	TriggerWalletSync(ctx context.Context, companyID uint, userID uint, totalItems int) (*models.Job, error)
	TriggerBulkEmail(ctx context.Context, companyID uint, userID uint, totalItems int) (*models.Job, error)
	GetJobStatus(ctx context.Context, companyID uint) (*JobStatus, error)
	UpdateProgress(ctx context.Context, batchID string, processed int, status string, lastError string) error
}

// JobService IJobService arayüzünü uygular.
type JobService struct {
	repo repositories.IJobRepository
	db   *gorm.DB
}

// NewJobService yeni bir JobService örneği oluşturur.
func NewJobService() IJobService {
	return &JobService{
		repo: repositories.NewJobRepository(),
		db:   configsdatabase.GetDB(),
	}
}

// trigger iş kaydını oluşturur ve mesajı kuyruğa yazar. Aynı firma için
// devam eden bir iş varken yenisi başlatılamaz.
func (s *JobService) trigger(ctx context.Context, companyID uint, userID uint, kind string, routingKey string, totalItems int) (*models.Job, error) {
	if companyID == 0 || userID == 0 {
		return nil, fmt.Errorf("%w: geçersiz firma veya kullanıcı ID", ErrJobInvalidInput)
	}

	var job *models.Job
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, userID)
		repoTx := repositories.NewJobRepositoryTx(tx)

		running, err := repoTx.FindRunningByCompany(txCtx, companyID, kind)
		if err != nil {
			return err
		}
		if len(running) > 0 {
			return ErrJobAlreadyRunning
		}

		j := models.Job{
			CompanyID:  companyID,
			BatchID:    uuid.NewString(),
			Kind:       kind,
			Status:     models.JobStatusPending,
			TotalItems: totalItems,
		}
		if err := repoTx.Create(txCtx, &j); err != nil {
			configslog.Log.Error("İş kaydı oluşturulamadı", zap.Uint("companyID", companyID), zap.Error(err))
			return ErrJobTriggerFailed
		}
		job = &j
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	msg := jobMessage{BatchID: job.BatchID, CompanyID: companyID, Kind: kind}
	if err := configsmq.Publish(routingKey, msg); err != nil {
		// Kuyruk mesajı gitmezse kayıt askıda kalmasın diye başarısız işaretlenir.
		configslog.Log.Error("İş mesajı kuyruğa yazılamadı", zap.String("batchID", job.BatchID), zap.Error(err))
		job.Status = models.JobStatusFailed
		job.LastError = "kuyruk yayını başarısız"
		if saveErr := s.repo.Save(ctx, job); saveErr != nil {
			configslog.Log.Error("İş kaydı güncellenemedi", zap.String("batchID", job.BatchID), zap.Error(saveErr))
		}
		return nil, ErrJobTriggerFailed
	}

	configslog.SLog.Infof("İş başlatıldı: %s (%s)", job.BatchID, kind)
	return job, nil
}

// TriggerWalletSync cüzdan kartviziti senkronizasyon işini başlatır.
func (s *JobService) TriggerWalletSync(ctx context.Context, companyID uint, userID uint, totalItems int) (*models.Job, error) {
	return s.trigger(ctx, companyID, userID, models.JobKindWalletSync, configsmq.RoutingKeyWalletSync, totalItems)
}

// TriggerBulkEmail toplu e-posta gönderim işini başlatır.
func (s *JobService) TriggerBulkEmail(ctx context.Context, companyID uint, userID uint, totalItems int) (*models.Job, error) {
	return s.trigger(ctx, companyID, userID, models.JobKindBulkEmail, configsmq.RoutingKeyBulkEmail, totalItems)
}

// GetJobStatus firmanın iş durumunu polling cevabı olarak döner.
func (s *JobService) GetJobStatus(ctx context.Context, companyID uint) (*JobStatus, error) {
	jobs, err := s.repo.FindRecentByCompany(ctx, companyID, "", 20)
	if err != nil {
		return nil, err
	}

	status := &JobStatus{Jobs: jobs}
	for i := range jobs {
		j := &jobs[i]
		if j.IsRunning() {
			status.HasRunningJob = true
			status.SyncedItems = j.ProcessedItems
			status.TotalItems = j.TotalItems
			break
		}
	}
	return status, nil
}

// UpdateProgress worker'ların ilerleme bildirimi için kullanılır.
func (s *JobService) UpdateProgress(ctx context.Context, batchID string, processed int, status string, lastError string) error {
	job, err := s.repo.FindByBatchID(ctx, batchID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrJobNotFound
		}
		return err
	}
	job.ProcessedItems = processed
	if status != "" {
		job.Status = status
	} else if job.Status == models.JobStatusPending {
		job.Status = models.JobStatusRunning
	}
	job.LastError = lastError
	return s.repo.Save(ctx, job)
}

var _ IJobService = (*JobService)(nil)
