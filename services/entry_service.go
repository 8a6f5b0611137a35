package services

import (
	"context"
	"errors"
	"fmt"

	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/cardfields"
	"kartvizit.link/pkg/ownership"
	"kartvizit.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EntryServiceError iletişim kaydı servisi hataları.
type EntryServiceError string

func (e EntryServiceError) Error() string { return string(e) }

const (
	ErrEntryNotFound        EntryServiceError = "iletişim kaydı bulunamadı"
	ErrEntryCreationFailed  EntryServiceError = "iletişim kaydı oluşturulamadı"
	ErrEntryUpdateFailed    EntryServiceError = "iletişim kaydı güncellenemedi"
	ErrEntryDeletionFailed  EntryServiceError = "iletişim kaydı silinemedi"
	ErrEntryForbidden       EntryServiceError = "bu kayıt üzerinde yetkiniz yok"
	ErrEntryInvalidList     EntryServiceError = "geçersiz liste tipi"
	ErrEntryInvalidValue    EntryServiceError = "geçersiz kayıt değeri"
	ErrEntryNotDefault      EntryServiceError = "kayıt bir firma varsayılanı değil"
	ErrEntryInvalidInput    EntryServiceError = "geçersiz girdi verisi"
	ErrEntryLimitExceeded   EntryServiceError = "liste için kayıt sınırı aşıldı"
	ErrEntryOwnershipDenied EntryServiceError = "firma varsayılanı kart üzerinden değiştirilemez"
)

// EntryInput yeni veya güncellenen bir iletişim kaydının alanları.
type EntryInput struct {
	ListType        string
	Label           string
	LabelDE         string
	Value           string
	Note            string
	IsHidden        bool
	TextColor       string
	BackgroundColor string
}

// IEntryService iletişim kayıtları için arayüz. Mode, isteğin şablon
// düzenleme ekranından mı (firma varsayılanları) yoksa kart düzenleme
// ekranından mı geldiğini belirtir ve sahiplik kurallarını yönlendirir.
type IEntryService interface {
	CreateEntry(ctx context.Context, companyID uint, cardID *uint, userID uint, mode ownership.Mode, input EntryInput) (*models.ContactEntry, error)
	UpdateEntry(ctx context.Context, entryID uint, companyID uint, userID uint, mode ownership.Mode, input EntryInput) error
	DeleteEntry(ctx context.Context, entryID uint, companyID uint, userID uint, mode ownership.Mode) error
	HideDefaultForCard(ctx context.Context, entryID uint, cardID uint, companyID uint, userID uint) error
	UnhideDefaultForCard(ctx context.Context, entryID uint, cardID uint, companyID uint) error
	GetCompanyDefaults(ctx context.Context, companyID uint) ([]models.ContactEntry, error)
	GetEntriesForCard(ctx context.Context, companyID uint, cardID uint) ([]models.ContactEntry, error)
}

// EntryService IEntryService arayüzünü uygular.
type EntryService struct {
	repo     repositories.IContactEntryRepository
	cardRepo repositories.ICardRepository
	db       *gorm.DB
}

// NewEntryService yeni bir EntryService örneği oluşturur.
func NewEntryService() IEntryService {
	return &EntryService{
		repo:     repositories.NewContactEntryRepository(),
		cardRepo: repositories.NewCardRepository(),
		db:       configsdatabase.GetDB(),
	}
}

// validateInput liste tipini ve değerin formatını doğrular.
func validateInput(input EntryInput) error {
	if !cardfields.IsKnownListType(input.ListType) {
		return fmt.Errorf("%w: %s", ErrEntryInvalidList, input.ListType)
	}
	if input.Value == "" {
		return fmt.Errorf("%w: değer boş olamaz", ErrEntryInvalidValue)
	}
	kind := cardfields.ValidKindForList(input.ListType)
	if !cardfields.Validate(kind, input.Value) {
		return fmt.Errorf("%w: %s", ErrEntryInvalidValue, input.Value)
	}
	return nil
}

// CreateEntry yeni bir kayıt oluşturur. cardID nil ise firma varsayılanı,
// dolu ise karta özel kayıt üretilir. Kart kipi kardinalite sınırına tabidir.
func (s *EntryService) CreateEntry(ctx context.Context, companyID uint, cardID *uint, userID uint, mode ownership.Mode, input EntryInput) (*models.ContactEntry, error) {
	if companyID == 0 || userID == 0 {
		return nil, fmt.Errorf("%w: geçersiz firma veya kullanıcı ID", ErrEntryInvalidInput)
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if mode == ownership.ModeTemplate && cardID != nil {
		return nil, fmt.Errorf("%w: şablon kipinde karta özel kayıt oluşturulamaz", ErrEntryInvalidInput)
	}

	var created *models.ContactEntry
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, userID)
		repoTx := repositories.NewContactEntryRepositoryTx(tx)

		if cardID != nil {
			cardRepoTx := repositories.NewCardRepositoryTx(tx)
			card, err := cardRepoTx.FindByID(txCtx, *cardID)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return ErrCardNotFound
				}
				return err
			}
			if card.CompanyID != companyID {
				return ErrEntryForbidden
			}
		}

		count, err := repoTx.CountForList(txCtx, companyID, cardID, input.ListType)
		if err != nil {
			return err
		}
		if err := ownership.EnforceCardinality(int(count), input.ListType, ownership.Context{Mode: mode}); err != nil {
			return fmt.Errorf("%w: %s", ErrEntryLimitExceeded, input.ListType)
		}

		sortIndex, err := repoTx.NextSortIndex(txCtx, companyID, cardID, input.ListType)
		if err != nil {
			return err
		}

		entry := models.ContactEntry{
			CompanyID:       companyID,
			CardID:          cardID,
			ListType:        input.ListType,
			Label:           input.Label,
			LabelDE:         input.LabelDE,
			Value:           input.Value,
			Note:            input.Note,
			IsHidden:        input.IsHidden,
			TextColor:       input.TextColor,
			BackgroundColor: input.BackgroundColor,
			SortIndex:       sortIndex,
		}
		if err := repoTx.Create(txCtx, &entry); err != nil {
			configslog.Log.Error("İletişim kaydı oluşturulamadı", zap.Uint("companyID", companyID), zap.Error(err))
			return ErrEntryCreationFailed
		}
		created = &entry
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return created, nil
}

// findScoped kaydı firma kapsamı kontrolü ile getirir.
func (s *EntryService) findScoped(ctx context.Context, repo repositories.IContactEntryRepository, entryID uint, companyID uint) (*models.ContactEntry, error) {
	entry, err := repo.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	if entry.CompanyID != companyID {
		return nil, ErrEntryForbidden
	}
	return entry, nil
}

// UpdateEntry kaydın değerini ve görünümünü günceller. Firma varsayılanının
// değeri yalnızca şablon kipinde değiştirilebilir.
func (s *EntryService) UpdateEntry(ctx context.Context, entryID uint, companyID uint, userID uint, mode ownership.Mode, input EntryInput) error {
	if entryID == 0 || companyID == 0 || userID == 0 {
		return fmt.Errorf("%w: geçersiz ID", ErrEntryInvalidInput)
	}
	if err := validateInput(input); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, userID)
		repoTx := repositories.NewContactEntryRepositoryTx(tx)

		entry, err := s.findScoped(txCtx, repoTx, entryID, companyID)
		if err != nil {
			return err
		}

		if !ownership.CanEditValue(entry, ownership.Context{Mode: mode}) {
			return ErrEntryOwnershipDenied
		}
		if entry.ListType != input.ListType {
			return fmt.Errorf("%w: liste tipi değiştirilemez", ErrEntryInvalidInput)
		}

		entry.Label = input.Label
		entry.LabelDE = input.LabelDE
		entry.Value = input.Value
		entry.Note = input.Note
		entry.IsHidden = input.IsHidden
		entry.TextColor = input.TextColor
		entry.BackgroundColor = input.BackgroundColor

		if err := repoTx.Save(txCtx, entry); err != nil {
			configslog.Log.Error("İletişim kaydı güncellenemedi", zap.Uint("entryID", entryID), zap.Error(err))
			return ErrEntryUpdateFailed
		}
		return nil
	})
}

// DeleteEntry kaydı siler. Firma varsayılanları yalnızca şablon kipinde
// silinebilir; kart kipinde gizleme kullanılır.
func (s *EntryService) DeleteEntry(ctx context.Context, entryID uint, companyID uint, userID uint, mode ownership.Mode) error {
	if entryID == 0 || companyID == 0 || userID == 0 {
		return fmt.Errorf("%w: geçersiz ID", ErrEntryInvalidInput)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, userID)
		repoTx := repositories.NewContactEntryRepositoryTx(tx)

		entry, err := s.findScoped(txCtx, repoTx, entryID, companyID)
		if err != nil {
			return err
		}

		if !ownership.CanDelete(entry, ownership.Context{Mode: mode}) {
			return ErrEntryOwnershipDenied
		}

		if entry.CardID == nil {
			// Varsayılan silinince kart bazlı gizleme kayıtları da temizlenir.
			if err := tx.Where("entry_id = ?", entryID).Delete(&models.CardHiddenDefault{}).Error; err != nil {
				return ErrEntryDeletionFailed
			}
		}
		if err := repoTx.Delete(txCtx, entryID); err != nil {
			configslog.Log.Error("İletişim kaydı silinemedi", zap.Uint("entryID", entryID), zap.Error(err))
			return ErrEntryDeletionFailed
		}
		return nil
	})
}

// HideDefaultForCard bir firma varsayılanını tek bir kart için gizler.
// Varsayılanın kendisi değişmez, diğer kartlarda görünmeye devam eder.
func (s *EntryService) HideDefaultForCard(ctx context.Context, entryID uint, cardID uint, companyID uint, userID uint) error {
	entry, err := s.findScoped(ctx, s.repo, entryID, companyID)
	if err != nil {
		return err
	}
	if entry.CardID != nil {
		return ErrEntryNotDefault
	}
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCardNotFound
		}
		return err
	}
	if card.CompanyID != companyID {
		return ErrEntryForbidden
	}
	return s.repo.HideDefaultForCard(ctx, cardID, entryID, userID)
}

// UnhideDefaultForCard gizleme kaydını kaldırır; varsayılan kartta yeniden
// görünür olur.
func (s *EntryService) UnhideDefaultForCard(ctx context.Context, entryID uint, cardID uint, companyID uint) error {
	entry, err := s.findScoped(ctx, s.repo, entryID, companyID)
	if err != nil {
		return err
	}
	if entry.CardID != nil {
		return ErrEntryNotDefault
	}
	return s.repo.UnhideDefaultForCard(ctx, cardID, entryID)
}

// GetCompanyDefaults firmanın varsayılan kayıtlarını listeler.
func (s *EntryService) GetCompanyDefaults(ctx context.Context, companyID uint) ([]models.ContactEntry, error) {
	return s.repo.FindCompanyDefaults(ctx, companyID)
}

// GetEntriesForCard kartın görebileceği tüm kayıtları (varsayılanlar + karta
// özel) listeler.
func (s *EntryService) GetEntriesForCard(ctx context.Context, companyID uint, cardID uint) ([]models.ContactEntry, error) {
	return s.repo.FindForCard(ctx, companyID, cardID)
}

var _ IEntryService = (*EntryService)(nil)
