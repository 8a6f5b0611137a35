package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kartvizit.link/models"
)

// Testlerde RabbitMQ bağlantısı açılmaz; publish her zaman başarısız olur.
// Bu, "kuyruk gitmezse kayıt askıda kalmaz" davranışını doğrulamak için yeterlidir.

func TestTriggerMarksJobFailedWhenQueueUnavailable(t *testing.T) {
	newTestDB(t)
	svc := NewJobService()
	ctx := context.Background()

	company := newTestCompany(t, "Kuyruk AŞ")

	_, err := svc.TriggerWalletSync(ctx, company.ID, 1, 10)
	assert.ErrorIs(t, err, ErrJobTriggerFailed)

	status, err := svc.GetJobStatus(ctx, company.ID)
	require.NoError(t, err)
	require.Len(t, status.Jobs, 1)
	assert.Equal(t, models.JobStatusFailed, status.Jobs[0].Status)
	assert.Equal(t, "kuyruk yayını başarısız", status.Jobs[0].LastError)
	assert.False(t, status.HasRunningJob)
}

func TestTriggerRejectsConcurrentJob(t *testing.T) {
	conn := newTestDB(t)
	svc := NewJobService()
	ctx := context.Background()

	company := newTestCompany(t, "Eşzamanlı AŞ")

	// Devam eden bir iş varmış gibi doğrudan kayıt açılır.
	running := models.Job{
		CompanyID: company.ID,
		BatchID:   "batch-running",
		Kind:      models.JobKindWalletSync,
		Status:    models.JobStatusRunning,
	}
	require.NoError(t, conn.Create(&running).Error)

	_, err := svc.TriggerWalletSync(ctx, company.ID, 1, 10)
	assert.ErrorIs(t, err, ErrJobAlreadyRunning)

	// Farklı türde iş etkilenmez (kuyruk yine kapalı olduğundan trigger
	// publish aşamasında düşer, ama çakışma hatası dönmez).
	_, err = svc.TriggerBulkEmail(ctx, company.ID, 1, 5)
	assert.ErrorIs(t, err, ErrJobTriggerFailed)
}

func TestGetJobStatusReportsRunningJob(t *testing.T) {
	conn := newTestDB(t)
	svc := NewJobService()
	ctx := context.Background()

	company := newTestCompany(t, "Durum AŞ")
	job := models.Job{
		CompanyID:      company.ID,
		BatchID:        "batch-1",
		Kind:           models.JobKindWalletSync,
		Status:         models.JobStatusRunning,
		TotalItems:     50,
		ProcessedItems: 20,
	}
	require.NoError(t, conn.Create(&job).Error)

	status, err := svc.GetJobStatus(ctx, company.ID)
	require.NoError(t, err)
	assert.True(t, status.HasRunningJob)
	assert.Equal(t, 20, status.SyncedItems)
	assert.Equal(t, 50, status.TotalItems)
}

func TestUpdateProgress(t *testing.T) {
	conn := newTestDB(t)
	svc := NewJobService()
	ctx := context.Background()

	company := newTestCompany(t, "İlerleme AŞ")
	job := models.Job{
		CompanyID:  company.ID,
		BatchID:    "batch-1",
		Kind:       models.JobKindBulkEmail,
		Status:     models.JobStatusPending,
		TotalItems: 100,
	}
	require.NoError(t, conn.Create(&job).Error)

	// Durum verilmezse pending iş running'e geçer.
	require.NoError(t, svc.UpdateProgress(ctx, "batch-1", 30, "", ""))

	var got models.Job
	require.NoError(t, conn.Where("batch_id = ?", "batch-1").First(&got).Error)
	assert.Equal(t, models.JobStatusRunning, got.Status)
	assert.Equal(t, 30, got.ProcessedItems)

	require.NoError(t, svc.UpdateProgress(ctx, "batch-1", 100, models.JobStatusFinished, ""))
	require.NoError(t, conn.Where("batch_id = ?", "batch-1").First(&got).Error)
	assert.Equal(t, models.JobStatusFinished, got.Status)

	assert.ErrorIs(t, svc.UpdateProgress(ctx, "boyle-batch-yok", 1, "", ""), ErrJobNotFound)
}
