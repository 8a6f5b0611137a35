package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kartvizit.link/models"
	"kartvizit.link/pkg/csvimport"
	"kartvizit.link/pkg/queryparams"
)

const importCSV = `first_name,last_name,email,phone_number,website
Ayşe,Yılmaz,ayse@example.com,+491234567,https://example.com
Mehmet,Demir,bozuk-eposta,+902121234567,
Zeynep,Kaya,zeynep@example.com,+493334455,
`

func TestImportWizardFullFlow(t *testing.T) {
	newTestDB(t)
	svc := NewImportService(nil)
	cardSvc := NewCardService()
	ctx := context.Background()

	company := newTestCompany(t, "İçe Aktarma AŞ")

	batch, err := svc.Upload(ctx, company.ID, strings.NewReader(importCSV))
	require.NoError(t, err)
	assert.Equal(t, csvimport.StageMapping, batch.Stage)

	batch, err = svc.AdvanceToValidation(ctx, batch.ID, company.ID)
	require.NoError(t, err)
	require.Len(t, batch.Errors, 1) // bozuk e-posta

	// Hatalı hücre düzeltilir.
	batch, err = svc.PatchRow(ctx, batch.ID, company.ID, 2, "email", "mehmet@example.com")
	require.NoError(t, err)
	assert.Empty(t, batch.Errors)

	_, summary, err := svc.AdvanceToConfirm(ctx, batch.ID, company.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalRows)
	assert.Equal(t, 3, summary.ValidRows)

	result, err := svc.Commit(ctx, batch.ID, company.ID, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, result.CreatedCards)
	assert.Zero(t, result.SkippedRows)

	// Oturum commit ile tüketilir.
	_, err = svc.GetBatch(ctx, batch.ID, company.ID)
	assert.ErrorIs(t, err, ErrImportBatchNotFound)

	// Kartlar gerçekten oluştu ve liste sütunları karta özel kayıt oldu.
	listed, err := cardSvc.GetCardsForCompanyPaginated(ctx, company.ID, queryparams.ListParams{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, listed.Meta.TotalItems)

	cards := listed.Data.([]models.Card)
	var ayse *models.Card
	for i := range cards {
		if cards[i].Detail.FirstName == "Ayşe" {
			ayse = &cards[i]
		}
	}
	require.NotNil(t, ayse)

	entries, err := NewEntryService().GetEntriesForCard(ctx, company.ID, ayse.ID)
	require.NoError(t, err)
	values := make(map[string]string)
	for _, e := range entries {
		values[e.ListType] = e.Value
	}
	assert.Equal(t, "+491234567", values[models.ListTypePhoneNumbers])
	assert.Equal(t, "https://example.com", values[models.ListTypeWebsites])
}

func TestImportCommitSkipsErrorRows(t *testing.T) {
	newTestDB(t)
	svc := NewImportService(nil)
	ctx := context.Background()

	company := newTestCompany(t, "Atlama AŞ")

	batch, err := svc.Upload(ctx, company.ID, strings.NewReader(importCSV))
	require.NoError(t, err)
	_, err = svc.AdvanceToValidation(ctx, batch.ID, company.ID)
	require.NoError(t, err)
	_, _, err = svc.AdvanceToConfirm(ctx, batch.ID, company.ID)
	require.NoError(t, err)

	// Hatalı satır düzeltilmeden commit: satır dışarıda bırakılır.
	result, err := svc.Commit(ctx, batch.ID, company.ID, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.CreatedCards)
	assert.Equal(t, 1, result.SkippedRows)
}

func TestImportCommitRequiresConfirmStage(t *testing.T) {
	newTestDB(t)
	svc := NewImportService(nil)
	ctx := context.Background()

	company := newTestCompany(t, "Adım AŞ")

	batch, err := svc.Upload(ctx, company.ID, strings.NewReader(importCSV))
	require.NoError(t, err)

	_, err = svc.Commit(ctx, batch.ID, company.ID, 1, nil)
	assert.ErrorIs(t, err, csvimport.ErrWrongStage)

	// Başarısız commit oturumu tüketmez.
	_, err = svc.GetBatch(ctx, batch.ID, company.ID)
	require.NoError(t, err)
}

func TestImportBatchCompanyScoping(t *testing.T) {
	newTestDB(t)
	svc := NewImportService(nil)
	ctx := context.Background()

	a := newTestCompany(t, "Firma A")
	b := newTestCompany(t, "Firma B")

	batch, err := svc.Upload(ctx, a.ID, strings.NewReader(importCSV))
	require.NoError(t, err)

	_, err = svc.GetBatch(ctx, batch.ID, b.ID)
	assert.ErrorIs(t, err, ErrImportForbidden)

	_, err = svc.GetBatch(ctx, "boyle-bir-oturum-yok", a.ID)
	assert.ErrorIs(t, err, ErrImportBatchNotFound)
}

func TestImportCancel(t *testing.T) {
	newTestDB(t)
	svc := NewImportService(nil)
	ctx := context.Background()

	company := newTestCompany(t, "İptal AŞ")

	batch, err := svc.Upload(ctx, company.ID, strings.NewReader(importCSV))
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(ctx, batch.ID, company.ID))

	_, err = svc.GetBatch(ctx, batch.ID, company.ID)
	assert.ErrorIs(t, err, ErrImportBatchNotFound)
}

func TestImportBackFromValidation(t *testing.T) {
	newTestDB(t)
	svc := NewImportService(nil)
	ctx := context.Background()

	company := newTestCompany(t, "Geri AŞ")

	batch, err := svc.Upload(ctx, company.ID, strings.NewReader(importCSV))
	require.NoError(t, err)
	_, err = svc.AdvanceToValidation(ctx, batch.ID, company.ID)
	require.NoError(t, err)

	batch, err = svc.Back(ctx, batch.ID, company.ID)
	require.NoError(t, err)
	assert.Equal(t, csvimport.StageMapping, batch.Stage)

	// Eşleme değişikliği yalnızca Mapping adımında kabul edilir.
	_, err = svc.SetMapping(ctx, batch.ID, company.ID, map[string]string{"website": ""})
	require.NoError(t, err)
}
