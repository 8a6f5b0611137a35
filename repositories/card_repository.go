package repositories

import (
	"context"
	"errors"
	"strings"

	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ICardRepository kart veritabanı işlemleri için arayüz.
type ICardRepository interface {
	Create(ctx context.Context, card *models.Card) error
	FindByID(ctx context.Context, id uint) (*models.Card, error)
	FindByLinkKey(ctx context.Context, key string) (*models.Card, error)
	FindBySerialCode(ctx context.Context, code string) (*models.Card, error)
	FindAllByCompanyPaginated(ctx context.Context, companyID uint, params queryparams.ListParams) ([]models.Card, int64, error)
	FindAllByCompany(ctx context.Context, companyID uint) ([]models.Card, error)
	Save(ctx context.Context, card *models.Card) error
	SaveDetail(ctx context.Context, detail *models.CardDetail) error
	Delete(ctx context.Context, id uint) error
	CountByCompany(ctx context.Context, companyID uint) (int64, error)
	LinkKeyExists(ctx context.Context, key string) (bool, error)
}

// CardRepository ICardRepository arayüzünü uygular.
type CardRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.Card]
}

// NewCardRepository yeni bir CardRepository örneği oluşturur.
func NewCardRepository() ICardRepository {
	db := configsdatabase.GetDB()
	return &CardRepository{db: db, base: NewBaseRepository[models.Card](db)}
}

// NewCardRepositoryTx transaction üzerinde çalışan örnek üretir.
func NewCardRepositoryTx(tx *gorm.DB) ICardRepository {
	return &CardRepository{db: tx, base: NewBaseRepository[models.Card](tx)}
}

func (r *CardRepository) Create(ctx context.Context, card *models.Card) error {
	if card == nil || card.CompanyID == 0 {
		return errors.New("firma bilgisi olmayan kart oluşturulamaz")
	}
	return r.db.WithContext(ctx).Create(card).Error // Detail cascade ile yazılır
}

// FindByID kartı Detail ve Company ilişkileriyle bulur.
func (r *CardRepository) FindByID(ctx context.Context, id uint) (*models.Card, error) {
	if id == 0 {
		return nil, errors.New("geçersiz kart ID")
	}
	var card models.Card
	err := r.db.WithContext(ctx).Preload("Detail").Preload("Company").First(&card, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		configslog.Log.Error("CardRepository.FindByID: DB hatası", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &card, nil
}

// FindByLinkKey public link anahtarı ile kartı bulur.
func (r *CardRepository) FindByLinkKey(ctx context.Context, key string) (*models.Card, error) {
	if key == "" {
		return nil, ErrNotFound
	}
	var card models.Card
	err := r.db.WithContext(ctx).Preload("Detail").Preload("Company").
		Where("link_key = ?", key).First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		configslog.Log.Error("CardRepository.FindByLinkKey: DB hatası", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return &card, nil
}

func (r *CardRepository) FindBySerialCode(ctx context.Context, code string) (*models.Card, error) {
	var card models.Card
	err := r.db.WithContext(ctx).Preload("Detail").Where("serial_code = ?", code).First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// FindAllByCompanyPaginated firmanın kartlarını sayfalayarak listeler.
// İsim filtresi için card_details tablosuna JOIN yapılır.
func (r *CardRepository) FindAllByCompanyPaginated(ctx context.Context, companyID uint, params queryparams.ListParams) ([]models.Card, int64, error) {
	if companyID == 0 {
		return nil, 0, errors.New("geçersiz firma ID")
	}
	var results []models.Card
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&models.Card{}).
		Joins("LEFT JOIN card_details ON card_details.card_id = cards.id AND card_details.deleted_at IS NULL").
		Where("cards.company_id = ?", companyID)

	if params.Name != "" {
		search := "%" + strings.ToLower(params.Name) + "%"
		query = query.Where(
			"LOWER(card_details.first_name) LIKE ? OR LOWER(card_details.last_name) LIKE ? OR LOWER(cards.serial_code) LIKE ?",
			search, search, search,
		)
	}
	if params.Status == "assigned" {
		query = query.Where("cards.is_assigned = ?", true)
	} else if params.Status == "unassigned" {
		query = query.Where("cards.is_assigned = ?", false)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return results, 0, nil
	}

	allowedSortColumns := map[string]string{
		"id":          "cards.id",
		"created_at":  "cards.created_at",
		"is_enabled":  "cards.is_enabled",
		"is_assigned": "cards.is_assigned",
		"serial_code": "cards.serial_code",
		"first_name":  "card_details.first_name",
		"last_name":   "card_details.last_name",
	}
	orderColumn := "cards.created_at"
	if dbCol, ok := allowedSortColumns[params.SortBy]; ok {
		orderColumn = dbCol
	}
	orderBy := strings.ToLower(params.OrderBy)
	if orderBy != "asc" && orderBy != "desc" {
		orderBy = queryparams.DefaultOrderBy
	}

	err := query.Order(orderColumn + " " + orderBy).
		Limit(params.PerPage).Offset(params.CalculateOffset()).
		Preload("Detail").
		Select("cards.*").Find(&results).Error

	return results, totalCount, err
}

// FindAllByCompany firmanın tüm kartlarını sayfalamadan listeler (CSV export).
func (r *CardRepository) FindAllByCompany(ctx context.Context, companyID uint) ([]models.Card, error) {
	var cards []models.Card
	err := r.db.WithContext(ctx).Preload("Detail").
		Where("company_id = ?", companyID).
		Order("created_at asc").Find(&cards).Error
	return cards, err
}

func (r *CardRepository) Save(ctx context.Context, card *models.Card) error {
	return r.base.Save(ctx, card)
}

func (r *CardRepository) SaveDetail(ctx context.Context, detail *models.CardDetail) error {
	return r.db.WithContext(ctx).Save(detail).Error
}

// Delete kartı siler; Detail cascade ile silinir, iletişim kayıtlarının
// temizliği servis katmanının transaction'ındadır.
func (r *CardRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

func (r *CardRepository) CountByCompany(ctx context.Context, companyID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Card{}).
		Where("company_id = ?", companyID).Count(&count).Error
	return count, err
}

// LinkKeyExists anahtarın kullanımda olup olmadığını kontrol eder.
func (r *CardRepository) LinkKeyExists(ctx context.Context, key string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Card{}).
		Where("link_key = ?", key).Count(&count).Error
	return count > 0, err
}

var _ ICardRepository = (*CardRepository)(nil)
