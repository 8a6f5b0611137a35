package csvimport

import (
	"encoding/base64"
	"fmt"
	"strings"

	"kartvizit.link/pkg/cardfields"
)

// Satır validasyonu: her satır x her alan tanımı için.
//   - zorunlu alan boşsa        -> uyarı (satır yine de import edilir)
//   - format kuralı bozuksa     -> hata (satır commit dışı kalır)
// Yalnızca boşluktan oluşan bir değer boş sayılmaz; nonEmpty/email/phone
// kuralına takılır ve hata üretir. Kurallar cardfields kayıtlarından gelir;
// burada kural tanımlanmaz.

const (
	issueMissingRequired = "zorunlu değer eksik"
	issueInvalidValue    = "geçersiz değer"
)

// Revalidate tüm satırları baştan doğrular; Warnings ve Errors yenilenir.
func (b *Batch) Revalidate() {
	b.Warnings = nil
	b.Errors = nil

	for rowIdx := range b.Rows {
		rowNo := rowIdx + 1 // kullanıcıya 1 tabanlı satır numarası gösterilir
		for _, def := range cardfields.Definitions() {
			if _, mapped := b.headerFor(def.Name); !mapped {
				continue
			}
			value := b.valueAt(rowIdx, def.Name)

			if value == "" {
				if def.Required {
					b.Warnings = append(b.Warnings, Issue{Row: rowNo, Field: def.Name, Issue: issueMissingRequired, Value: value})
				}
				continue
			}
			if !cardfields.Validate(def.Validate, value) {
				b.Errors = append(b.Errors, Issue{Row: rowNo, Field: def.Name, Issue: issueInvalidValue, Value: value})
			}
		}
	}
}

// PatchRow satırdaki tek bir alanı düzeltir ve satırları yeniden doğrular.
// rowNo 1 tabanlıdır.
func (b *Batch) PatchRow(rowNo int, field, value string) error {
	if b.Stage != StageValidation && b.Stage != StageConfirm {
		return ErrWrongStage
	}
	if rowNo < 1 || rowNo > len(b.Rows) {
		return fmt.Errorf("geçersiz satır numarası: %d", rowNo)
	}
	header, ok := b.headerFor(field)
	if !ok {
		return fmt.Errorf("eşlenmemiş alan: %s", field)
	}
	b.Rows[rowNo-1][header] = strings.TrimSpace(value)
	b.Revalidate()
	return nil
}

// rowHasError satırın en az bir hata içerip içermediğini söyler.
func (b *Batch) rowHasError(rowNo int) bool {
	for _, issue := range b.Errors {
		if issue.Row == rowNo {
			return true
		}
	}
	return false
}

func (b *Batch) rowHasWarning(rowNo int) bool {
	for _, issue := range b.Warnings {
		if issue.Row == rowNo {
			return true
		}
	}
	return false
}

// Summarize commit öncesi toplamları üretir.
func (b *Batch) Summarize() Summary {
	s := Summary{TotalRows: len(b.Rows)}
	for rowIdx := range b.Rows {
		rowNo := rowIdx + 1
		switch {
		case b.rowHasError(rowNo):
			s.ExcludedRows++
		case b.rowHasWarning(rowNo):
			s.WarnedRows++
			s.ValidRows++
		default:
			s.ValidRows++
		}
	}
	return s
}

// CommitPayload hatasız satırları alan adlarıyla paketler. images anahtarı
// dosya adıdır; profile_image_name değeri ile büyük/küçük harf duyarsız
// eşleştirilir ve eşleşen görseller base64 olarak taşınır.
func (b *Batch) CommitPayload(images map[string][]byte) []RowPayload {
	payload := make([]RowPayload, 0, len(b.Rows))

	for rowIdx := range b.Rows {
		rowNo := rowIdx + 1
		if b.rowHasError(rowNo) {
			continue
		}

		fields := make(map[string]string)
		for _, def := range cardfields.Definitions() {
			if _, mapped := b.headerFor(def.Name); !mapped {
				continue
			}
			// Boşluklardan ibaret isteğe bağlı değerler burada boşa iner.
			fields[def.Name] = strings.TrimSpace(b.valueAt(rowIdx, def.Name))
		}

		row := RowPayload{Fields: fields}
		if imageName := fields["profile_image_name"]; imageName != "" {
			for name, data := range images {
				if strings.EqualFold(name, imageName) {
					row.ImageName = name
					row.ImageBase64 = base64.StdEncoding.EncodeToString(data)
					break
				}
			}
		}
		payload = append(payload, row)
	}

	return payload
}
