package models

// İş türleri ve durumları. İşin kendisi kuyruğa yazılır, worker dışarıdadır;
// bu tablo yalnızca UI'ın polling ile okuduğu durumu tutar.
const (
	JobKindWalletSync = "wallet_sync"
	JobKindBulkEmail  = "bulk_email"

	JobStatusPending  = "pending"
	JobStatusRunning  = "running"
	JobStatusFinished = "finished"
	JobStatusFailed   = "failed"
)

// Job bir arka plan işinin durum kaydıdır.
type Job struct {
	BaseModel
	CompanyID uint   `gorm:"index;not null" json:"company_id"`
	BatchID   string `gorm:"type:varchar(36);uniqueIndex;not null" json:"batch_id"`
	Kind      string `gorm:"type:varchar(20);index;not null" json:"kind"`
	Status    string `gorm:"type:varchar(20);index;not null;default:'pending'" json:"status"`

	TotalItems     int    `gorm:"default:0" json:"total_items"`
	ProcessedItems int    `gorm:"default:0" json:"processed_items"`
	LastError      string `gorm:"type:text" json:"last_error,omitempty"`
}

// IsRunning işin hâlâ devam edip etmediğini söyler.
func (j *Job) IsRunning() bool {
	return j.Status == JobStatusPending || j.Status == JobStatusRunning
}
