package services

import (
	"bytes"
	"context"
	"encoding/csv"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/cardfields"
	"kartvizit.link/pkg/merge"
	"kartvizit.link/pkg/vcard"
	"kartvizit.link/pkg/walletpass"
	"kartvizit.link/repositories"

	"go.uber.org/zap"
)

// ExportServiceError dışa aktarma servisi hataları.
type ExportServiceError string

func (e ExportServiceError) Error() string { return string(e) }

const (
	ErrExportFailed ExportServiceError = "dışa aktarma başarısız oldu"
)

// VCardFile indirilebilir vCard çıktısı.
type VCardFile struct {
	FileName string
	Content  string
}

// IExportService kart dışa aktarma işlemleri için arayüz.
type IExportService interface {
	RenderVCard(ctx context.Context, linkKey string, locale merge.Locale) (*VCardFile, error)
	ProjectWalletPass(ctx context.Context, cardID uint, companyID uint) (*walletpass.WalletProjection, error)
	ExportCompanyCSV(ctx context.Context, companyID uint) ([]byte, error)
}

// ExportService IExportService arayüzünü uygular.
type ExportService struct {
	cardService CardResolver
	cardRepo    repositories.ICardRepository
	entryRepo   repositories.IContactEntryRepository
}

// CardResolver dışa aktarma için gereken çözümleme alt kümesi.
type CardResolver interface {
	ResolveCard(ctx context.Context, id uint, companyID uint) (*merge.ResolvedCard, error)
	ResolvePublicCard(ctx context.Context, key string) (*merge.ResolvedCard, error)
}

// NewExportService yeni bir ExportService örneği oluşturur.
func NewExportService(cards CardResolver) IExportService {
	return &ExportService{
		cardService: cards,
		cardRepo:    repositories.NewCardRepository(),
		entryRepo:   repositories.NewContactEntryRepository(),
	}
}

// RenderVCard public anahtar ile kartın vCard 3.0 çıktısını üretir.
func (s *ExportService) RenderVCard(ctx context.Context, linkKey string, locale merge.Locale) (*VCardFile, error) {
	resolved, err := s.cardService.ResolvePublicCard(ctx, linkKey)
	if err != nil {
		return nil, err
	}
	return &VCardFile{
		FileName: vcard.FileName(resolved),
		Content:  vcard.Render(resolved, locale),
	}, nil
}

// ProjectWalletPass kartın cüzdan kartviziti izdüşümünü üretir.
func (s *ExportService) ProjectWalletPass(ctx context.Context, cardID uint, companyID uint) (*walletpass.WalletProjection, error) {
	resolved, err := s.cardService.ResolveCard(ctx, cardID, companyID)
	if err != nil {
		return nil, err
	}
	projection := walletpass.Project(resolved, configs.Cfg.PublicBaseURL)
	return &projection, nil
}

// ExportCompanyCSV firmanın tüm kartlarını CSV olarak dışa aktarır. Sütun
// başlıkları içe aktarma formatı ile birebir aynıdır, başa seri kodu eklenir.
func (s *ExportService) ExportCompanyCSV(ctx context.Context, companyID uint) ([]byte, error) {
	cards, err := s.cardRepo.FindAllByCompany(ctx, companyID)
	if err != nil {
		configslog.Log.Error("CSV dışa aktarma için kartlar okunamadı", zap.Uint("companyID", companyID), zap.Error(err))
		return nil, ErrExportFailed
	}

	fieldNames := cardfields.FieldNames()
	header := append([]string{"serial_code"}, fieldNames...)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, ErrExportFailed
	}

	for i := range cards {
		card := &cards[i]
		row, err := s.csvRow(ctx, card, fieldNames)
		if err != nil {
			return nil, err
		}
		if err := w.Write(row); err != nil {
			return nil, ErrExportFailed
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, ErrExportFailed
	}
	return buf.Bytes(), nil
}

// csvRow tek bir kartın dışa aktarma satırını üretir. Liste alanlarında
// karta özel ilk kayıt yazılır.
func (s *ExportService) csvRow(ctx context.Context, card *models.Card, fieldNames []string) ([]string, error) {
	d := card.Detail
	scalars := map[string]string{
		"first_name":         d.FirstName,
		"last_name":          d.LastName,
		"email":              d.Email,
		"title":              d.Title,
		"title_de":           d.TitleDE,
		"position":           d.Position,
		"position_de":        d.PositionDE,
		"department":         d.Department,
		"department_de":      d.DepartmentDE,
		"profile_image_name": d.ProfileImageURL,
	}

	listFields := map[string]string{
		"phone_number": models.ListTypePhoneNumbers,
		"website":      models.ListTypeWebsites,
		"address":      models.ListTypeAddresses,
	}

	entries, err := s.entryRepo.FindForCard(ctx, card.CompanyID, card.ID)
	if err != nil {
		return nil, ErrExportFailed
	}

	row := make([]string, 0, len(fieldNames)+1)
	row = append(row, card.SerialCode)
	for _, name := range fieldNames {
		if value, ok := scalars[name]; ok {
			row = append(row, value)
			continue
		}
		listType, ok := listFields[name]
		if !ok {
			row = append(row, "")
			continue
		}
		row = append(row, firstCardEntry(entries, card.ID, listType))
	}
	return row, nil
}

// firstCardEntry kartın ilgili listedeki ilk karta özel kaydını döner.
func firstCardEntry(entries []models.ContactEntry, cardID uint, listType string) string {
	for _, e := range entries {
		if e.CardID != nil && *e.CardID == cardID && e.ListType == listType {
			return e.Value
		}
	}
	return ""
}

var _ IExportService = (*ExportService)(nil)
