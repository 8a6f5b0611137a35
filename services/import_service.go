package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"kartvizit.link/cache"
	"kartvizit.link/configs"
	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/csvimport"
	"kartvizit.link/pkg/imagestore"
	"kartvizit.link/repositories"
	"kartvizit.link/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ImportServiceError içe aktarma servisi hataları.
type ImportServiceError string

func (e ImportServiceError) Error() string { return string(e) }

const (
	ErrImportBatchNotFound ImportServiceError = "içe aktarma oturumu bulunamadı veya süresi doldu"
	ErrImportForbidden     ImportServiceError = "bu oturum üzerinde yetkiniz yok"
	ErrImportCommitFailed  ImportServiceError = "içe aktarma tamamlanamadı"
	ErrImportNoValidRows   ImportServiceError = "içe aktarılacak geçerli satır yok"
)

// ImportCommitResult başarılı bir içe aktarmanın özeti.
type ImportCommitResult struct {
	CreatedCards int `json:"created_cards"`
	SkippedRows  int `json:"skipped_rows"`
}

// IImportService CSV içe aktarma sihirbazı için arayüz. Oturum durumu
// adımlar arasında redis üzerinde saklanır.
type IImportService interface {
	Upload(ctx context.Context, companyID uint, r io.Reader) (*csvimport.Batch, error)
	GetBatch(ctx context.Context, batchID string, companyID uint) (*csvimport.Batch, error)
	SetMapping(ctx context.Context, batchID string, companyID uint, mapping map[string]string) (*csvimport.Batch, error)
	AdvanceToValidation(ctx context.Context, batchID string, companyID uint) (*csvimport.Batch, error)
	PatchRow(ctx context.Context, batchID string, companyID uint, rowNo int, field, value string) (*csvimport.Batch, error)
	AdvanceToConfirm(ctx context.Context, batchID string, companyID uint) (*csvimport.Batch, csvimport.Summary, error)
	Back(ctx context.Context, batchID string, companyID uint) (*csvimport.Batch, error)
	Commit(ctx context.Context, batchID string, companyID uint, userID uint, images map[string][]byte) (*ImportCommitResult, error)
	Cancel(ctx context.Context, batchID string, companyID uint) error
}

// ImportService IImportService arayüzünü uygular.
type ImportService struct {
	store    cache.IBatchStore
	images   imagestore.IImageStore
	cardRepo repositories.ICardRepository
	db       *gorm.DB
}

// NewImportService yeni bir ImportService örneği oluşturur.
func NewImportService(images imagestore.IImageStore) IImportService {
	return &ImportService{
		store:    cache.NewBatchStore(),
		images:   images,
		cardRepo: repositories.NewCardRepository(),
		db:       configsdatabase.GetDB(),
	}
}

func (s *ImportService) ttl() time.Duration {
	minutes := configs.Cfg.ImportBatchTTLMinutes
	if minutes <= 0 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}

// Upload CSV dosyasını ayrıştırır ve yeni bir sihirbaz oturumu başlatır.
func (s *ImportService) Upload(ctx context.Context, companyID uint, r io.Reader) (*csvimport.Batch, error) {
	batch, err := csvimport.Parse(uuid.NewString(), companyID, r)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, batch, s.ttl()); err != nil {
		configslog.Log.Error("İçe aktarma oturumu kaydedilemedi", zap.String("batchID", batch.ID), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("İçe aktarma oturumu açıldı: %s (%d satır)", batch.ID, len(batch.Rows))
	return batch, nil
}

// load oturumu firma kapsamı kontrolü ile getirir.
func (s *ImportService) load(ctx context.Context, batchID string, companyID uint) (*csvimport.Batch, error) {
	batch, err := s.store.Get(ctx, batchID)
	if err != nil {
		if errors.Is(err, cache.ErrBatchNotFound) {
			return nil, ErrImportBatchNotFound
		}
		return nil, err
	}
	if batch.CompanyID != companyID {
		return nil, ErrImportForbidden
	}
	return batch, nil
}

// GetBatch oturumun güncel durumunu döner.
func (s *ImportService) GetBatch(ctx context.Context, batchID string, companyID uint) (*csvimport.Batch, error) {
	return s.load(ctx, batchID, companyID)
}

// mutate oturumu yükler, değişikliği uygular ve geri yazar.
func (s *ImportService) mutate(ctx context.Context, batchID string, companyID uint, fn func(*csvimport.Batch) error) (*csvimport.Batch, error) {
	batch, err := s.load(ctx, batchID, companyID)
	if err != nil {
		return nil, err
	}
	if err := fn(batch); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, batch, s.ttl()); err != nil {
		return nil, err
	}
	return batch, nil
}

// SetMapping sütun eşlemelerini günceller.
func (s *ImportService) SetMapping(ctx context.Context, batchID string, companyID uint, mapping map[string]string) (*csvimport.Batch, error) {
	return s.mutate(ctx, batchID, companyID, func(b *csvimport.Batch) error {
		for header, field := range mapping {
			if err := b.SetMapping(header, field); err != nil {
				return err
			}
		}
		return nil
	})
}

// AdvanceToValidation eşlemeyi doğrular ve satır denetimini çalıştırır.
func (s *ImportService) AdvanceToValidation(ctx context.Context, batchID string, companyID uint) (*csvimport.Batch, error) {
	return s.mutate(ctx, batchID, companyID, func(b *csvimport.Batch) error {
		return b.AdvanceToValidation()
	})
}

// PatchRow doğrulama adımında tek bir hücreyi düzeltir ve satırı yeniden
// denetler.
func (s *ImportService) PatchRow(ctx context.Context, batchID string, companyID uint, rowNo int, field, value string) (*csvimport.Batch, error) {
	return s.mutate(ctx, batchID, companyID, func(b *csvimport.Batch) error {
		return b.PatchRow(rowNo, field, value)
	})
}

// AdvanceToConfirm onay adımına geçer ve özet döner.
func (s *ImportService) AdvanceToConfirm(ctx context.Context, batchID string, companyID uint) (*csvimport.Batch, csvimport.Summary, error) {
	batch, err := s.mutate(ctx, batchID, companyID, func(b *csvimport.Batch) error {
		return b.AdvanceToConfirm()
	})
	if err != nil {
		return nil, csvimport.Summary{}, err
	}
	return batch, batch.Summarize(), nil
}

// Back sihirbazda bir adım geri gider.
func (s *ImportService) Back(ctx context.Context, batchID string, companyID uint) (*csvimport.Batch, error) {
	return s.mutate(ctx, batchID, companyID, func(b *csvimport.Batch) error {
		return b.Back()
	})
}

// Commit hatasız satırlardan kartları tek transaction içinde oluşturur.
// Transaction başarısız olursa oturum silinmez; kullanıcı düzeltip yeniden
// deneyebilir.
func (s *ImportService) Commit(ctx context.Context, batchID string, companyID uint, userID uint, images map[string][]byte) (*ImportCommitResult, error) {
	batch, err := s.load(ctx, batchID, companyID)
	if err != nil {
		return nil, err
	}
	if batch.Stage != csvimport.StageConfirm {
		return nil, csvimport.ErrWrongStage
	}

	payloads := batch.CommitPayload(images)
	if len(payloads) == 0 {
		return nil, ErrImportNoValidRows
	}

	created := 0
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, userID)
		repoTx := repositories.NewCardRepositoryTx(tx)

		for _, row := range payloads {
			detail, err := s.detailFromRow(row)
			if err != nil {
				return err
			}
			linkKey, err := generateLinkKeyWith(txCtx, repoTx)
			if err != nil {
				return err
			}
			serial, err := utils.GenerateSerialCode()
			if err != nil {
				return ErrImportCommitFailed
			}

			card := models.Card{
				CompanyID:  companyID,
				SerialCode: serial,
				LinkKey:    linkKey,
				IsEnabled:  true,
				IsAssigned: detail.FirstName != "" || detail.LastName != "",
				Detail:     detail,
			}
			if err := repoTx.Create(txCtx, &card); err != nil {
				configslog.Log.Error("İçe aktarma kartı oluşturulamadı",
					zap.String("batchID", batchID), zap.Error(err))
				return ErrImportCommitFailed
			}
			if err := s.createRowEntries(txCtx, tx, &card, row); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	_ = batch.MarkCommitted()
	if err := s.store.Delete(ctx, batchID); err != nil {
		configslog.Log.Warn("İçe aktarma oturumu silinemedi", zap.String("batchID", batchID), zap.Error(err))
	}

	summary := batch.Summarize()
	configslog.SLog.Infof("İçe aktarma tamamlandı: %s, %d kart", batchID, created)
	return &ImportCommitResult{
		CreatedCards: created,
		SkippedRows:  summary.ExcludedRows,
	}, nil
}

// Cancel oturumu kaydetmeden kapatır.
func (s *ImportService) Cancel(ctx context.Context, batchID string, companyID uint) error {
	if _, err := s.load(ctx, batchID, companyID); err != nil {
		return err
	}
	return s.store.Delete(ctx, batchID)
}

// createRowEntries telefon, web sitesi ve adres sütunlarını karta özel
// iletişim kayıtlarına dönüştürür.
func (s *ImportService) createRowEntries(ctx context.Context, tx *gorm.DB, card *models.Card, row csvimport.RowPayload) error {
	repoTx := repositories.NewContactEntryRepositoryTx(tx)

	listFields := []struct {
		field    string
		listType string
	}{
		{"phone_number", models.ListTypePhoneNumbers},
		{"website", models.ListTypeWebsites},
		{"address", models.ListTypeAddresses},
	}
	for _, lf := range listFields {
		value := row.Fields[lf.field]
		if value == "" {
			continue
		}
		entry := models.ContactEntry{
			CompanyID: card.CompanyID,
			CardID:    &card.ID,
			ListType:  lf.listType,
			Value:     value,
		}
		if err := repoTx.Create(ctx, &entry); err != nil {
			configslog.Log.Error("İçe aktarma kaydı oluşturulamadı",
				zap.Uint("cardID", card.ID), zap.String("field", lf.field), zap.Error(err))
			return ErrImportCommitFailed
		}
	}
	return nil
}

// detailFromRow satır verisini kart detayına dönüştürür ve varsa profil
// görselini diske yazar.
func (s *ImportService) detailFromRow(row csvimport.RowPayload) (models.CardDetail, error) {
	detail := models.CardDetail{
		FirstName:    row.Fields["first_name"],
		LastName:     row.Fields["last_name"],
		Email:        row.Fields["email"],
		Title:        row.Fields["title"],
		TitleDE:      row.Fields["title_de"],
		Position:     row.Fields["position"],
		PositionDE:   row.Fields["position_de"],
		Department:   row.Fields["department"],
		DepartmentDE: row.Fields["department_de"],
	}
	if row.ImageName != "" && row.ImageBase64 != "" && s.images != nil {
		data, err := base64.StdEncoding.DecodeString(row.ImageBase64)
		if err != nil {
			return detail, fmt.Errorf("%w: görsel çözülemedi (%s)", ErrImportCommitFailed, row.ImageName)
		}
		url, err := s.images.Save(row.ImageName, data)
		if err != nil {
			configslog.Log.Error("Profil görseli kaydedilemedi", zap.String("image", row.ImageName), zap.Error(err))
			return detail, ErrImportCommitFailed
		}
		detail.ProfileImageURL = url
	}
	return detail, nil
}

// generateLinkKeyWith çakışma kontrolü ile benzersiz bir public anahtar üretir.
func generateLinkKeyWith(ctx context.Context, repo repositories.ICardRepository) (string, error) {
	const maxAttempts = 5
	for i := 0; i < maxAttempts; i++ {
		key, err := utils.GenerateSecureRandomString(linkKeyLength)
		if err != nil {
			return "", ErrCrdKeyGeneration
		}
		exists, err := repo.LinkKeyExists(ctx, key)
		if err != nil {
			return "", err
		}
		if !exists {
			return key, nil
		}
	}
	return "", ErrCrdKeyGeneration
}

var _ IImportService = (*ImportService)(nil)
