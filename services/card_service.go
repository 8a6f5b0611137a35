package services

import (
	"context"
	"errors"
	"fmt"

	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/merge"
	"kartvizit.link/pkg/queryparams"
	"kartvizit.link/repositories"
	"kartvizit.link/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CardServiceError kart servisi hataları.
type CardServiceError string

func (e CardServiceError) Error() string { return string(e) }

const (
	ErrCardNotFound       CardServiceError = "kart bulunamadı"
	ErrCardCreationFailed CardServiceError = "kart oluşturulamadı"
	ErrCardUpdateFailed   CardServiceError = "kart güncellenemedi"
	ErrCardDeletionFailed CardServiceError = "kart silinemedi"
	ErrCardForbidden      CardServiceError = "bu işlem için yetkiniz yok"
	ErrCrdInvalidInput    CardServiceError = "geçersiz girdi verisi"
	ErrCrdKeyGeneration   CardServiceError = "kart için link anahtarı üretilemedi"
)

const linkKeyLength = 12

// ICardService kart işlemleri için arayüz.
type ICardService interface {
	CreateCard(ctx context.Context, companyID uint, userID uint, detail models.CardDetail) (*models.Card, error)
	GetCardByID(ctx context.Context, id uint, companyID uint) (*models.Card, error)
	GetCardByLinkKey(ctx context.Context, key string) (*models.Card, error)
	GetCardsForCompanyPaginated(ctx context.Context, companyID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateCard(ctx context.Context, id uint, companyID uint, userID uint, detail models.CardDetail, isEnabled bool) error
	DeleteCard(ctx context.Context, id uint, companyID uint, userID uint) error
	ResolveCard(ctx context.Context, id uint, companyID uint) (*merge.ResolvedCard, error)
	ResolvePublicCard(ctx context.Context, key string) (*merge.ResolvedCard, error)
	ResolveTemplatePreview(ctx context.Context, companyID uint) (*merge.ResolvedCard, error)
}

// CardService ICardService arayüzünü uygular.
type CardService struct {
	repo        repositories.ICardRepository
	entryRepo   repositories.IContactEntryRepository
	companyRepo repositories.ICompanyRepository
	tplService  ITemplateService
	db          *gorm.DB
}

// NewCardService yeni bir CardService örneği oluşturur.
func NewCardService() ICardService {
	return &CardService{
		repo:        repositories.NewCardRepository(),
		entryRepo:   repositories.NewContactEntryRepository(),
		companyRepo: repositories.NewCompanyRepository(),
		tplService:  NewTemplateService(),
		db:          configsdatabase.GetDB(),
	}
}

// CreateCard yeni bir kartı seri kodu ve link anahtarı ile tek
// transaction içinde oluşturur. Detail boş gelirse kart atanmamış sayılır.
func (s *CardService) CreateCard(ctx context.Context, companyID uint, userID uint, detail models.CardDetail) (*models.Card, error) {
	if companyID == 0 || userID == 0 {
		return nil, fmt.Errorf("%w: geçersiz firma veya kullanıcı ID", ErrCrdInvalidInput)
	}

	var created *models.Card
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, userID)
		repoTx := repositories.NewCardRepositoryTx(tx)

		linkKey, err := generateLinkKeyWith(txCtx, repoTx)
		if err != nil {
			return err
		}
		serial, err := utils.GenerateSerialCode()
		if err != nil {
			configslog.Log.Error("Seri kodu üretilemedi", zap.Error(err))
			return ErrCardCreationFailed
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
			configslog.Log.Error("Kart oluşturulamadı", zap.Uint("companyID", companyID), zap.Error(err))
			return ErrCardCreationFailed
		}
		created = &card
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	configslog.SLog.Infof("Kart oluşturuldu: ID %d, Seri %s", created.ID, created.SerialCode)
	return created, nil
}

// GetCardByID kartı firma kapsamı kontrolü ile getirir.
func (s *CardService) GetCardByID(ctx context.Context, id uint, companyID uint) (*models.Card, error) {
	card, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	if card.CompanyID != companyID {
		configslog.Log.Warn("Firma dışı kart erişim denemesi", zap.Uint("cardID", id), zap.Uint("companyID", companyID))
		return nil, ErrCardForbidden
	}
	return card, nil
}

// GetCardByLinkKey public anahtar ile kartı getirir; pasif kartlar yokmuş
// gibi davranılır.
func (s *CardService) GetCardByLinkKey(ctx context.Context, key string) (*models.Card, error) {
	card, err := s.repo.FindByLinkKey(ctx, key)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	if !card.IsEnabled || !card.Company.IsEnabled {
		configslog.Log.Info("Pasif kart erişim denemesi", zap.String("key", key), zap.Uint("cardID", card.ID))
		return nil, ErrCardNotFound
	}
	return card, nil
}

// GetCardsForCompanyPaginated firmanın kartlarını sayfalayarak listeler.
func (s *CardService) GetCardsForCompanyPaginated(ctx context.Context, companyID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if companyID == 0 {
		return nil, fmt.Errorf("%w: geçersiz firma ID", ErrCrdInvalidInput)
	}
	params.Validate()
	if params.SortBy == "" {
		params.SortBy = "created_at"
	}

	cards, totalCount, err := s.repo.FindAllByCompanyPaginated(ctx, companyID, params)
	if err != nil {
		configslog.Log.Error("Firma kartları listelenemedi", zap.Uint("companyID", companyID), zap.Error(err))
		return nil, err
	}

	return &queryparams.PaginatedResult{
		Data: cards,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// UpdateCard kart detayını ve aktiflik durumunu günceller.
func (s *CardService) UpdateCard(ctx context.Context, id uint, companyID uint, userID uint, detail models.CardDetail, isEnabled bool) error {
	if id == 0 || companyID == 0 || userID == 0 {
		return fmt.Errorf("%w: geçersiz ID", ErrCrdInvalidInput)
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, userID)
		repoTx := repositories.NewCardRepositoryTx(tx)

		existing, err := repoTx.FindByID(txCtx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrCardNotFound
			}
			return err
		}
		if existing.CompanyID != companyID {
			return ErrCardForbidden
		}

		existing.IsEnabled = isEnabled
		existing.IsAssigned = detail.FirstName != "" || detail.LastName != ""

		existingDetail := existing.Detail
		detail.BaseModel = existingDetail.BaseModel
		detail.CardID = existing.ID

		if err := repoTx.SaveDetail(txCtx, &detail); err != nil {
			configslog.Log.Error("Kart detayı kaydedilemedi", zap.Uint("cardID", id), zap.Error(err))
			return ErrCardUpdateFailed
		}
		existing.Detail = detail
		if err := repoTx.Save(txCtx, existing); err != nil {
			configslog.Log.Error("Kart kaydedilemedi", zap.Uint("cardID", id), zap.Error(err))
			return ErrCardUpdateFailed
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	configslog.SLog.Infof("Kart güncellendi: ID %d", id)
	return nil
}

// DeleteCard kartı, karta özel iletişim kayıtlarını ve gizleme kayıtlarını
// tek transaction içinde siler.
func (s *CardService) DeleteCard(ctx context.Context, id uint, companyID uint, userID uint) error {
	if id == 0 || companyID == 0 || userID == 0 {
		return fmt.Errorf("%w: geçersiz ID", ErrCrdInvalidInput)
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		txCtx := models.ContextWithUserID(ctx, userID)
		repoTx := repositories.NewCardRepositoryTx(tx)

		existing, err := repoTx.FindByID(txCtx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrCardNotFound
			}
			return err
		}
		if existing.CompanyID != companyID {
			return ErrCardForbidden
		}

		if err := tx.Where("card_id = ?", id).Delete(&models.ContactEntry{}).Error; err != nil {
			return ErrCardDeletionFailed
		}
		if err := tx.Where("card_id = ?", id).Delete(&models.CardHiddenDefault{}).Error; err != nil {
			return ErrCardDeletionFailed
		}
		if err := repoTx.Delete(txCtx, id); err != nil {
			configslog.Log.Error("Kart silinemedi", zap.Uint("cardID", id), zap.Error(err))
			return ErrCardDeletionFailed
		}
		return nil
	})
	if txErr != nil {
		return txErr
	}

	configslog.SLog.Infof("Kart silindi: ID %d", id)
	return nil
}

// resolve kart + şablon + kayıtları merge motoruna taşır.
func (s *CardService) resolve(ctx context.Context, card *models.Card) (*merge.ResolvedCard, error) {
	company, err := s.companyRepo.FindByID(ctx, card.CompanyID)
	if err != nil {
		return nil, err
	}
	template, err := s.tplService.GetOrCreateTemplate(ctx, card.CompanyID, card.CreatedBy)
	if err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.FindForCard(ctx, card.CompanyID, card.ID)
	if err != nil {
		return nil, err
	}
	hidden, err := s.entryRepo.HiddenEntryIDsForCard(ctx, card.ID)
	if err != nil {
		return nil, err
	}

	return merge.Resolve(merge.Input{
		CompanyName:    company.Name,
		Template:       template,
		Card:           card,
		Entries:        entries,
		HiddenEntryIDs: hidden,
	})
}

// ResolveCard panel önizlemesi için çözülmüş modeli üretir.
func (s *CardService) ResolveCard(ctx context.Context, id uint, companyID uint) (*merge.ResolvedCard, error) {
	card, err := s.GetCardByID(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, card)
}

// ResolvePublicCard public kart sayfası için çözülmüş modeli üretir.
func (s *CardService) ResolvePublicCard(ctx context.Context, key string) (*merge.ResolvedCard, error) {
	card, err := s.GetCardByLinkKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, card)
}

// ResolveTemplatePreview kart seçilmeden şablon önizlemesi üretir:
// yalnızca şablon değerleri ve firma varsayılanı kayıtlar görünür.
func (s *CardService) ResolveTemplatePreview(ctx context.Context, companyID uint) (*merge.ResolvedCard, error) {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	template, err := s.tplService.GetOrCreateTemplate(ctx, companyID, 0)
	if err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.FindCompanyDefaults(ctx, companyID)
	if err != nil {
		return nil, err
	}

	return merge.Resolve(merge.Input{
		CompanyName: company.Name,
		Template:    template,
		Entries:     entries,
	})
}

var _ ICardService = (*CardService)(nil)
