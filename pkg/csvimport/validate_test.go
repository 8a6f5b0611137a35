package csvimport

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationBatch(t *testing.T, raw string) *Batch {
	t.Helper()
	b := parsedBatch(t, raw)
	require.NoError(t, b.AdvanceToValidation())
	return b
}

func TestRevalidateClassifiesIssues(t *testing.T) {
	raw := "first_name,last_name,email,phone_number\n" +
		"Ayşe,Yılmaz,ayse@example.com,+491234567\n" + // temiz
		"Mehmet,Demir,,+902121234567\n" + // zorunlu değer boş -> uyarı
		"Zeynep,Kaya,bozuk-eposta,+493210\n" // format bozuk -> hata
	b := validationBatch(t, raw)

	require.Len(t, b.Warnings, 1)
	assert.Equal(t, 2, b.Warnings[0].Row)
	assert.Equal(t, "email", b.Warnings[0].Field)
	assert.Equal(t, issueMissingRequired, b.Warnings[0].Issue)

	require.Len(t, b.Errors, 1)
	assert.Equal(t, 3, b.Errors[0].Row)
	assert.Equal(t, "email", b.Errors[0].Field)
	assert.Equal(t, issueInvalidValue, b.Errors[0].Issue)
	assert.Equal(t, "bozuk-eposta", b.Errors[0].Value)
}

func TestRevalidateRejectsBlankRequiredValue(t *testing.T) {
	// Yalnızca boşluktan oluşan zorunlu değer boş sayılmaz: format hatasıdır
	// ve satır commit dışında kalır.
	raw := "first_name,last_name,email,phone_number\n" +
		"\"   \",Yılmaz,ayse@example.com,+491234567\n" +
		"Mehmet,Demir,mehmet@example.com,+902121234567\n"
	b := validationBatch(t, raw)

	assert.Empty(t, b.Warnings)
	require.Len(t, b.Errors, 1)
	assert.Equal(t, 1, b.Errors[0].Row)
	assert.Equal(t, "first_name", b.Errors[0].Field)
	assert.Equal(t, issueInvalidValue, b.Errors[0].Issue)

	s := b.Summarize()
	assert.Equal(t, 1, s.ExcludedRows)
	assert.Equal(t, 1, s.ValidRows)

	payload := b.CommitPayload(nil)
	require.Len(t, payload, 1)
	assert.Equal(t, "Mehmet", payload[0].Fields["first_name"])
}

func TestRevalidateIgnoresUnmappedColumns(t *testing.T) {
	// "notlar" hiçbir alana eşlenmedi; içeriği doğrulanmaz.
	raw := "first_name,last_name,email,phone_number,notlar\n" +
		"Ayşe,Yılmaz,ayse@example.com,+491234567,serbest metin\n"
	b := validationBatch(t, raw)

	assert.Empty(t, b.Warnings)
	assert.Empty(t, b.Errors)
}

func TestPatchRowFixesError(t *testing.T) {
	raw := "first_name,last_name,email,phone_number\n" +
		"Ayşe,Yılmaz,bozuk,+491234567\n"
	b := validationBatch(t, raw)
	require.Len(t, b.Errors, 1)

	require.NoError(t, b.PatchRow(1, "email", "  ayse@example.com  "))
	assert.Empty(t, b.Errors)
	assert.Equal(t, "ayse@example.com", b.Rows[0]["email"])
}

func TestPatchRowGuards(t *testing.T) {
	b := parsedBatch(t, validCSV)

	// Mapping adımında satır düzeltilemez.
	assert.ErrorIs(t, b.PatchRow(1, "email", "a@b.co"), ErrWrongStage)

	require.NoError(t, b.AdvanceToValidation())
	assert.Error(t, b.PatchRow(0, "email", "a@b.co"))
	assert.Error(t, b.PatchRow(99, "email", "a@b.co"))
	assert.Error(t, b.PatchRow(1, "department", "X")) // eşlenmemiş alan

	// Confirm adımında düzeltmeye izin verilir.
	require.NoError(t, b.AdvanceToConfirm())
	require.NoError(t, b.PatchRow(1, "email", "yeni@example.com"))
}

func TestSummarize(t *testing.T) {
	raw := "first_name,last_name,email,phone_number\n" +
		"Ayşe,Yılmaz,ayse@example.com,+491234567\n" +
		"Mehmet,Demir,,+902121234567\n" +
		"Zeynep,Kaya,bozuk,+493210\n"
	b := validationBatch(t, raw)

	s := b.Summarize()
	assert.Equal(t, 3, s.TotalRows)
	assert.Equal(t, 2, s.ValidRows) // uyarılı satır geçerli sayılır
	assert.Equal(t, 1, s.WarnedRows)
	assert.Equal(t, 1, s.ExcludedRows)
}

func TestCommitPayloadSkipsErrorRows(t *testing.T) {
	raw := "first_name,last_name,email,phone_number\n" +
		"Ayşe,Yılmaz,ayse@example.com,+491234567\n" +
		"Zeynep,Kaya,bozuk,+493210\n"
	b := validationBatch(t, raw)

	payload := b.CommitPayload(nil)
	require.Len(t, payload, 1)
	assert.Equal(t, "Ayşe", payload[0].Fields["first_name"])
	assert.Equal(t, "ayse@example.com", payload[0].Fields["email"])
}

func TestCommitPayloadMatchesImages(t *testing.T) {
	raw := "first_name,last_name,email,phone_number,profile_image_name\n" +
		"Ayşe,Yılmaz,ayse@example.com,+491234567,AYSE.JPG\n" +
		"Mehmet,Demir,mehmet@example.com,+902121234567,yok.png\n"
	b := validationBatch(t, raw)

	imgData := []byte{0xFF, 0xD8, 0xFF}
	payload := b.CommitPayload(map[string][]byte{"ayse.jpg": imgData})
	require.Len(t, payload, 2)

	// Görsel adı büyük/küçük harf duyarsız eşleşir.
	assert.Equal(t, "ayse.jpg", payload[0].ImageName)
	assert.Equal(t, base64.StdEncoding.EncodeToString(imgData), payload[0].ImageBase64)

	// Eşleşmeyen görsel adı boş kalır, satır yine de taşınır.
	assert.Empty(t, payload[1].ImageName)
	assert.Empty(t, payload[1].ImageBase64)
}

func TestParseTrimsCellWhitespace(t *testing.T) {
	raw := "first_name,last_name,email,phone_number\n" +
		" Ayşe , Yılmaz , ayse@example.com ,+491234567\n"
	b := parsedBatch(t, raw)
	assert.Equal(t, "Ayşe", b.Rows[0]["first_name"])
	assert.False(t, strings.Contains(b.Rows[0]["last_name"], " "))
}
