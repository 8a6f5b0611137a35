package repositories

import (
	"context"
	"errors"

	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/models"

	"gorm.io/gorm"
)

// IContactEntryRepository iletişim kaydı veritabanı işlemleri için arayüz.
type IContactEntryRepository interface {
	Create(ctx context.Context, entry *models.ContactEntry) error
	FindByID(ctx context.Context, id uint) (*models.ContactEntry, error)
	FindCompanyDefaults(ctx context.Context, companyID uint) ([]models.ContactEntry, error)
	FindForCard(ctx context.Context, companyID, cardID uint) ([]models.ContactEntry, error)
	CountForList(ctx context.Context, companyID uint, cardID *uint, listType string) (int64, error)
	NextSortIndex(ctx context.Context, companyID uint, cardID *uint, listType string) (int, error)
	Save(ctx context.Context, entry *models.ContactEntry) error
	Delete(ctx context.Context, id uint) error

	HiddenEntryIDsForCard(ctx context.Context, cardID uint) (map[uint]bool, error)
	HideDefaultForCard(ctx context.Context, cardID, entryID, userID uint) error
	UnhideDefaultForCard(ctx context.Context, cardID, entryID uint) error
}

// ContactEntryRepository IContactEntryRepository arayüzünü uygular.
type ContactEntryRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.ContactEntry]
}

// NewContactEntryRepository yeni bir ContactEntryRepository örneği oluşturur.
func NewContactEntryRepository() IContactEntryRepository {
	db := configsdatabase.GetDB()
	return &ContactEntryRepository{db: db, base: NewBaseRepository[models.ContactEntry](db)}
}

// NewContactEntryRepositoryTx transaction üzerinde çalışan örnek üretir.
func NewContactEntryRepositoryTx(tx *gorm.DB) IContactEntryRepository {
	return &ContactEntryRepository{db: tx, base: NewBaseRepository[models.ContactEntry](tx)}
}

func (r *ContactEntryRepository) Create(ctx context.Context, entry *models.ContactEntry) error {
	if entry == nil || entry.CompanyID == 0 {
		return errors.New("firma bilgisi olmayan iletişim kaydı oluşturulamaz")
	}
	return r.base.Create(ctx, entry)
}

func (r *ContactEntryRepository) FindByID(ctx context.Context, id uint) (*models.ContactEntry, error) {
	return r.base.FindByID(ctx, id)
}

// FindCompanyDefaults firmanın kart bağımsız varsayılan kayıtlarını döndürür.
func (r *ContactEntryRepository) FindCompanyDefaults(ctx context.Context, companyID uint) ([]models.ContactEntry, error) {
	var entries []models.ContactEntry
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND card_id IS NULL", companyID).
		Order("sort_index asc, id asc").Find(&entries).Error
	return entries, err
}

// FindForCard kartın kendi kayıtlarını ve firma varsayılanlarını birlikte
// döndürür; merge motoru ayrıştırmayı kendisi yapar.
func (r *ContactEntryRepository) FindForCard(ctx context.Context, companyID, cardID uint) ([]models.ContactEntry, error) {
	var entries []models.ContactEntry
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND (card_id IS NULL OR card_id = ?)", companyID, cardID).
		Order("sort_index asc, id asc").Find(&entries).Error
	return entries, err
}

// CountForList kardinalite kontrolü için tek bir listenin kayıt sayısını
// verir. cardID nil ise firma varsayılanları sayılır.
func (r *ContactEntryRepository) CountForList(ctx context.Context, companyID uint, cardID *uint, listType string) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ContactEntry{}).
		Where("company_id = ? AND list_type = ?", companyID, listType)
	if cardID != nil {
		query = query.Where("card_id = ?", *cardID)
	} else {
		query = query.Where("card_id IS NULL")
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

// NextSortIndex liste içindeki bir sonraki ekleme sırasını üretir.
func (r *ContactEntryRepository) NextSortIndex(ctx context.Context, companyID uint, cardID *uint, listType string) (int, error) {
	query := r.db.WithContext(ctx).Model(&models.ContactEntry{}).
		Where("company_id = ? AND list_type = ?", companyID, listType)
	if cardID != nil {
		query = query.Where("card_id = ?", *cardID)
	} else {
		query = query.Where("card_id IS NULL")
	}
	var maxIndex *int
	if err := query.Select("MAX(sort_index)").Scan(&maxIndex).Error; err != nil {
		return 0, err
	}
	if maxIndex == nil {
		return 0, nil
	}
	return *maxIndex + 1, nil
}

func (r *ContactEntryRepository) Save(ctx context.Context, entry *models.ContactEntry) error {
	return r.base.Save(ctx, entry)
}

func (r *ContactEntryRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

// HiddenEntryIDsForCard kart için gizlenmiş firma varsayılanlarının ID
// kümesini döndürür.
func (r *ContactEntryRepository) HiddenEntryIDsForCard(ctx context.Context, cardID uint) (map[uint]bool, error) {
	var rows []models.CardHiddenDefault
	if err := r.db.WithContext(ctx).Where("card_id = ?", cardID).Find(&rows).Error; err != nil {
		return nil, err
	}
	hidden := make(map[uint]bool, len(rows))
	for _, row := range rows {
		hidden[row.EntryID] = true
	}
	return hidden, nil
}

// HideDefaultForCard firma varsayılanını tek bir kartta gizler; kayıt zaten
// gizliyse sessizce başarılı olur.
func (r *ContactEntryRepository) HideDefaultForCard(ctx context.Context, cardID, entryID, userID uint) error {
	var existing models.CardHiddenDefault
	err := r.db.WithContext(ctx).
		Where("card_id = ? AND entry_id = ?", cardID, entryID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	row := models.CardHiddenDefault{CardID: cardID, EntryID: entryID, CreatedBy: userID}
	return r.db.WithContext(ctx).Create(&row).Error
}

// UnhideDefaultForCard gizleme kaydını kaldırır.
func (r *ContactEntryRepository) UnhideDefaultForCard(ctx context.Context, cardID, entryID uint) error {
	return r.db.WithContext(ctx).
		Where("card_id = ? AND entry_id = ?", cardID, entryID).
		Delete(&models.CardHiddenDefault{}).Error
}

var _ IContactEntryRepository = (*ContactEntryRepository)(nil)
