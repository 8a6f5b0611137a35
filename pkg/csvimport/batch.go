package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"kartvizit.link/pkg/cardfields"
)

// CSV import sihirbazının durum makinesi:
// Upload -> Mapping -> Validation -> Confirm -> Committed.
// Adımlar sırayla ileri/geri gezilebilir, atlama yoktur. Batch durumu
// oturum kapsamındadır (redis'te TTL ile saklanır) ve commit ile tüketilir.

// Stage sihirbaz adımıdır.
type Stage string

const (
	StageUpload     Stage = "upload"
	StageMapping    Stage = "mapping"
	StageValidation Stage = "validation"
	StageConfirm    Stage = "confirm"
	StageCommitted  Stage = "committed"
)

// Issue bir satır/alan için üretilen uyarı veya hatadır.
type Issue struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
	Issue string `json:"issue"`
	Value string `json:"value"`
}

// Batch tek bir import oturumunun tüm durumudur. JSON'a serileştirilip
// redis'te saklanabilir.
type Batch struct {
	ID        string `json:"id"`
	CompanyID uint   `json:"company_id"`
	Stage     Stage  `json:"stage"`

	Headers []string            `json:"headers"`
	Rows    []map[string]string `json:"rows"` // CSV başlığı -> ham değer

	// ColumnMapping CSV başlığını alan adına bağlar; boş string eşlenmemiş demektir.
	ColumnMapping map[string]string `json:"column_mapping"`

	Warnings []Issue `json:"warnings"`
	Errors   []Issue `json:"errors"`
}

// RowPayload commit edilen tek bir satırdır: alan adlarıyla değerler ve
// eşleşen profil görseli (base64).
type RowPayload struct {
	Fields      map[string]string `json:"fields"`
	ImageName   string            `json:"image_name,omitempty"`
	ImageBase64 string            `json:"image_base64,omitempty"`
}

// Summary commit öncesi gösterilen toplam sayılardır.
type Summary struct {
	TotalRows    int `json:"total_rows"`
	ValidRows    int `json:"valid_rows"`
	WarnedRows   int `json:"warned_rows"`
	ExcludedRows int `json:"excluded_rows"`
}

// Pipeline hataları.

// MissingColumnsError zorunlu alanlar CSV başlıklarında yoksa döner.
type MissingColumnsError struct {
	Fields []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// MappingError eşleme adımından Validation'a geçişi engelleyen hatadır.
type MappingError string

func (e MappingError) Error() string { return string(e) }

const (
	// ErrDuplicateMapping iki başlık aynı alana eşlendiğinde döner.
	ErrDuplicateMapping MappingError = "iki sütun aynı alana eşlenemez"
	// ErrMissingRequiredField zorunlu bir alan eşlenmemişse döner.
	ErrMissingRequiredField MappingError = "zorunlu alanların tümü eşlenmelidir"
)

// StageError yanlış adımda yapılan bir işlemi bildirir.
type StageError string

func (e StageError) Error() string { return string(e) }

// ErrWrongStage işlem mevcut adımda geçerli değilse döner.
const ErrWrongStage StageError = "bu işlem mevcut adımda yapılamaz"

// Parse CSV'yi okuyup yeni bir batch üretir. Zorunlu alanlar başlıklar
// arasında (büyük/küçük harf duyarsız) yoksa MissingColumnsError döner ve
// batch Upload adımında kalır (nil döner, durum oluşmaz).
func Parse(id string, companyID uint, r io.Reader) (*Batch, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("CSV dosyası okunamadı: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV dosyası boş")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	if missing := missingRequiredHeaders(headers); len(missing) > 0 {
		return nil, &MissingColumnsError{Fields: missing}
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = normalizeCell(record[i])
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}

	b := &Batch{
		ID:        id,
		CompanyID: companyID,
		Stage:     StageMapping,
		Headers:   headers,
		Rows:      rows,
	}
	b.autoMap()
	return b, nil
}

// normalizeCell hücre çevresindeki boşlukları kırpar. Yalnızca boşluktan
// oluşan değerler olduğu gibi bırakılır; boş ile boşluk dolu hücre ayrımı
// validasyonda yapılır (ilki uyarı, ikincisi hata üretir).
func normalizeCell(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" && raw != "" {
		return raw
	}
	return trimmed
}

func missingRequiredHeaders(headers []string) []string {
	var missing []string
	for _, required := range cardfields.RequiredFieldNames() {
		found := false
		for _, h := range headers {
			if strings.EqualFold(h, required) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, required)
		}
	}
	return missing
}

// autoMap başlıkları alan adlarına büyük/küçük harf duyarsız birebir
// eşler; eşleşmeyenler boş kalır.
func (b *Batch) autoMap() {
	b.ColumnMapping = make(map[string]string, len(b.Headers))
	for _, h := range b.Headers {
		b.ColumnMapping[h] = ""
		for _, name := range cardfields.FieldNames() {
			if strings.EqualFold(h, name) {
				b.ColumnMapping[h] = name
				break
			}
		}
	}
}

// SetMapping kullanıcı eliyle tek bir başlık eşlemesini değiştirir.
func (b *Batch) SetMapping(header, field string) error {
	if b.Stage != StageMapping {
		return ErrWrongStage
	}
	if _, ok := b.ColumnMapping[header]; !ok {
		return fmt.Errorf("bilinmeyen sütun: %s", header)
	}
	if field != "" {
		if _, ok := cardfields.DefinitionFor(field); !ok {
			return fmt.Errorf("bilinmeyen alan: %s", field)
		}
	}
	b.ColumnMapping[header] = field
	return nil
}

// AdvanceToValidation eşlemeyi doğrulayıp Validation adımına geçer.
func (b *Batch) AdvanceToValidation() error {
	if b.Stage != StageMapping {
		return ErrWrongStage
	}

	mapped := make(map[string]string) // alan -> başlık
	for header, field := range b.ColumnMapping {
		if field == "" {
			continue
		}
		if _, dup := mapped[field]; dup {
			return ErrDuplicateMapping
		}
		mapped[field] = header
	}
	for _, required := range cardfields.RequiredFieldNames() {
		if _, ok := mapped[required]; !ok {
			return ErrMissingRequiredField
		}
	}

	b.Stage = StageValidation
	b.Revalidate()
	return nil
}

// Back bir adım geri gider; Upload'dan ve Committed'dan geri dönülmez.
func (b *Batch) Back() error {
	switch b.Stage {
	case StageValidation:
		b.Stage = StageMapping
	case StageConfirm:
		b.Stage = StageValidation
	default:
		return ErrWrongStage
	}
	return nil
}

// AdvanceToConfirm Validation'dan Confirm adımına geçer.
func (b *Batch) AdvanceToConfirm() error {
	if b.Stage != StageValidation {
		return ErrWrongStage
	}
	b.Stage = StageConfirm
	return nil
}

// MarkCommitted batch'i terminal duruma alır.
func (b *Batch) MarkCommitted() error {
	if b.Stage != StageConfirm {
		return ErrWrongStage
	}
	b.Stage = StageCommitted
	return nil
}

// headerFor verilen alana eşlenmiş başlığı döndürür.
func (b *Batch) headerFor(field string) (string, bool) {
	for header, f := range b.ColumnMapping {
		if f == field {
			return header, true
		}
	}
	return "", false
}

// valueAt satırın eşlenmiş alan değerini döndürür.
func (b *Batch) valueAt(rowIdx int, field string) string {
	header, ok := b.headerFor(field)
	if !ok {
		return ""
	}
	return b.Rows[rowIdx][header]
}
