package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kartvizit.link/models"
	"kartvizit.link/pkg/ownership"
)

func TestCreateEntryValidation(t *testing.T) {
	newTestDB(t)
	svc := NewEntryService()
	ctx := context.Background()

	company := newTestCompany(t, "Girdi AŞ")

	_, err := svc.CreateEntry(ctx, company.ID, nil, 1, ownership.ModeTemplate, EntryInput{
		ListType: "faxNumbers", Value: "+491234567",
	})
	assert.ErrorIs(t, err, ErrEntryInvalidList)

	_, err = svc.CreateEntry(ctx, company.ID, nil, 1, ownership.ModeTemplate, EntryInput{
		ListType: models.ListTypeEmails, Value: "",
	})
	assert.ErrorIs(t, err, ErrEntryInvalidValue)

	_, err = svc.CreateEntry(ctx, company.ID, nil, 1, ownership.ModeTemplate, EntryInput{
		ListType: models.ListTypeEmails, Value: "bozuk-eposta",
	})
	assert.ErrorIs(t, err, ErrEntryInvalidValue)

	_, err = svc.CreateEntry(ctx, company.ID, nil, 1, ownership.ModeTemplate, EntryInput{
		ListType: models.ListTypeWebsites, Value: "ftp://example.com",
	})
	assert.ErrorIs(t, err, ErrEntryInvalidValue)
}

func TestCreateEntrySortIndex(t *testing.T) {
	newTestDB(t)
	svc := NewEntryService()
	ctx := context.Background()

	company := newTestCompany(t, "Sıra AŞ")

	first, err := svc.CreateEntry(ctx, company.ID, nil, 1, ownership.ModeTemplate, EntryInput{
		ListType: models.ListTypePhoneNumbers, Value: "+491111111",
	})
	require.NoError(t, err)
	second, err := svc.CreateEntry(ctx, company.ID, nil, 1, ownership.ModeTemplate, EntryInput{
		ListType: models.ListTypePhoneNumbers, Value: "+492222222",
	})
	require.NoError(t, err)

	assert.Less(t, first.SortIndex, second.SortIndex)
}

func TestCreateEntryCardScoping(t *testing.T) {
	newTestDB(t)
	cardSvc := NewCardService()
	svc := NewEntryService()
	ctx := context.Background()

	a := newTestCompany(t, "Firma A")
	b := newTestCompany(t, "Firma B")
	card, err := cardSvc.CreateCard(ctx, a.ID, 1, models.CardDetail{FirstName: "Ayşe"})
	require.NoError(t, err)

	// Başka firmanın kimliğiyle karta kayıt eklenemez.
	_, err = svc.CreateEntry(ctx, b.ID, &card.ID, 1, ownership.ModeCard, EntryInput{
		ListType: models.ListTypePhoneNumbers, Value: "+491234567",
	})
	assert.ErrorIs(t, err, ErrEntryForbidden)

	// Şablon kipinde karta özel kayıt açılamaz.
	_, err = svc.CreateEntry(ctx, a.ID, &card.ID, 1, ownership.ModeTemplate, EntryInput{
		ListType: models.ListTypePhoneNumbers, Value: "+491234567",
	})
	assert.ErrorIs(t, err, ErrEntryInvalidInput)
}

func TestCreateEntryCardinality(t *testing.T) {
	newTestDB(t)
	cardSvc := NewCardService()
	svc := NewEntryService()
	ctx := context.Background()

	company := newTestCompany(t, "Limit AŞ")
	card, err := cardSvc.CreateCard(ctx, company.ID, 1, models.CardDetail{FirstName: "Ayşe"})
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err := svc.CreateEntry(ctx, company.ID, &card.ID, 1, ownership.ModeCard, EntryInput{
			ListType: models.ListTypePhoneNumbers, Value: "+4912345678",
		})
		require.NoError(t, err)
	}
	_, err = svc.CreateEntry(ctx, company.ID, &card.ID, 1, ownership.ModeCard, EntryInput{
		ListType: models.ListTypePhoneNumbers, Value: "+4912345678",
	})
	assert.ErrorIs(t, err, ErrEntryLimitExceeded)

	// Şablon kipi sınırdan muaftır.
	for i := 0; i < 6; i++ {
		_, err := svc.CreateEntry(ctx, company.ID, nil, 1, ownership.ModeTemplate, EntryInput{
			ListType: models.ListTypePhoneNumbers, Value: "+4912345678",
		})
		require.NoError(t, err)
	}
}

func TestUpdateEntryOwnership(t *testing.T) {
	newTestDB(t)
	svc := NewEntryService()
	ctx := context.Background()

	company := newTestCompany(t, "Sahiplik AŞ")
	def, err := svc.CreateEntry(ctx, company.ID, nil, 1, ownership.ModeTemplate, EntryInput{
		ListType: models.ListTypePhoneNumbers, Label: "Merkez", Value: "+902120000000",
	})
	require.NoError(t, err)

	// Kart kipi paylaşılan varsayılanı değiştiremez.
	err = svc.UpdateEntry(ctx, def.ID, company.ID, 1, ownership.ModeCard, EntryInput{
		ListType: models.ListTypePhoneNumbers, Value: "+905550000000",
	})
	assert.ErrorIs(t, err, ErrEntryOwnershipDenied)

	// Şablon kipi değiştirebilir.
	err = svc.UpdateEntry(ctx, def.ID, company.ID, 1, ownership.ModeTemplate, EntryInput{
		ListType: models.ListTypePhoneNumbers, Label: "Zentrale", Value: "+905550000000",
	})
	require.NoError(t, err)

	defaults, err := svc.GetCompanyDefaults(ctx, company.ID)
	require.NoError(t, err)
	require.Len(t, defaults, 1)
	assert.Equal(t, "+905550000000", defaults[0].Value)
	assert.Equal(t, "Zentrale", defaults[0].Label)
}

func TestUpdateEntryListTypeImmutable(t *testing.T) {
	newTestDB(t)
	svc := NewEntryService()
	ctx := context.Background()

	company := newTestCompany(t, "Tip AŞ")
	def, err := svc.CreateEntry(ctx, company.ID, nil, 1, ownership.ModeTemplate, EntryInput{
		ListType: models.ListTypeWebsites, Value: "https://example.com",
	})
	require.NoError(t, err)

	err = svc.UpdateEntry(ctx, def.ID, company.ID, 1, ownership.ModeTemplate, EntryInput{
		ListType: models.ListTypeButtons, Value: "https://example.com/x",
	})
	assert.ErrorIs(t, err, ErrEntryInvalidInput)
}

func TestDeleteEntryOwnership(t *testing.T) {
	newTestDB(t)
	cardSvc := NewCardService()
	svc := NewEntryService()
	ctx := context.Background()

	company := newTestCompany(t, "Silme AŞ")
	card, err := cardSvc.CreateCard(ctx, company.ID, 1, models.CardDetail{FirstName: "Ayşe"})
	require.NoError(t, err)

	def, err := svc.CreateEntry(ctx, company.ID, nil, 1, ownership.ModeTemplate, EntryInput{
		ListType: models.ListTypePhoneNumbers, Value: "+902120000000",
	})
	require.NoError(t, err)
	owned, err := svc.CreateEntry(ctx, company.ID, &card.ID, 1, ownership.ModeCard, EntryInput{
		ListType: models.ListTypePhoneNumbers, Value: "+491234567",
	})
	require.NoError(t, err)

	// Kart kipi varsayılanı silemez; kendi kaydını silebilir.
	assert.ErrorIs(t, svc.DeleteEntry(ctx, def.ID, company.ID, 1, ownership.ModeCard), ErrEntryOwnershipDenied)
	require.NoError(t, svc.DeleteEntry(ctx, owned.ID, company.ID, 1, ownership.ModeCard))

	// Şablon kipi varsayılanı silebilir.
	require.NoError(t, svc.DeleteEntry(ctx, def.ID, company.ID, 1, ownership.ModeTemplate))

	defaults, err := svc.GetCompanyDefaults(ctx, company.ID)
	require.NoError(t, err)
	assert.Empty(t, defaults)
}

func TestDeleteDefaultCleansHideRows(t *testing.T) {
	conn := newTestDB(t)
	cardSvc := NewCardService()
	svc := NewEntryService()
	ctx := context.Background()

	company := newTestCompany(t, "Temizlik AŞ")
	card, err := cardSvc.CreateCard(ctx, company.ID, 1, models.CardDetail{FirstName: "Ayşe"})
	require.NoError(t, err)

	def, err := svc.CreateEntry(ctx, company.ID, nil, 1, ownership.ModeTemplate, EntryInput{
		ListType: models.ListTypeWebsites, Value: "https://example.com",
	})
	require.NoError(t, err)
	require.NoError(t, svc.HideDefaultForCard(ctx, def.ID, card.ID, company.ID, 1))

	require.NoError(t, svc.DeleteEntry(ctx, def.ID, company.ID, 1, ownership.ModeTemplate))

	var hiddenCount int64
	conn.Model(&models.CardHiddenDefault{}).Where("entry_id = ?", def.ID).Count(&hiddenCount)
	assert.Zero(t, hiddenCount)
}

func TestHideDefaultGuards(t *testing.T) {
	newTestDB(t)
	cardSvc := NewCardService()
	svc := NewEntryService()
	ctx := context.Background()

	a := newTestCompany(t, "Firma A")
	b := newTestCompany(t, "Firma B")
	card, err := cardSvc.CreateCard(ctx, a.ID, 1, models.CardDetail{FirstName: "Ayşe"})
	require.NoError(t, err)

	owned, err := svc.CreateEntry(ctx, a.ID, &card.ID, 1, ownership.ModeCard, EntryInput{
		ListType: models.ListTypePhoneNumbers, Value: "+491234567",
	})
	require.NoError(t, err)

	// Karta özel kayıt gizlenemez, yalnızca varsayılanlar gizlenir.
	assert.ErrorIs(t, svc.HideDefaultForCard(ctx, owned.ID, card.ID, a.ID, 1), ErrEntryNotDefault)

	def, err := svc.CreateEntry(ctx, a.ID, nil, 1, ownership.ModeTemplate, EntryInput{
		ListType: models.ListTypeWebsites, Value: "https://example.com",
	})
	require.NoError(t, err)

	// Başka firmanın kimliğiyle gizleme yapılamaz.
	assert.ErrorIs(t, svc.HideDefaultForCard(ctx, def.ID, card.ID, b.ID, 1), ErrEntryForbidden)
	assert.ErrorIs(t, svc.HideDefaultForCard(ctx, def.ID, 9999, a.ID, 1), ErrCardNotFound)
}

func TestHideDefaultRecordsActingUser(t *testing.T) {
	conn := newTestDB(t)
	cardSvc := NewCardService()
	svc := NewEntryService()
	ctx := context.Background()

	company := newTestCompany(t, "Denetim AŞ")
	card, err := cardSvc.CreateCard(ctx, company.ID, 1, models.CardDetail{FirstName: "Ayşe"})
	require.NoError(t, err)

	def, err := svc.CreateEntry(ctx, company.ID, nil, 1, ownership.ModeTemplate, EntryInput{
		ListType: models.ListTypeWebsites, Value: "https://example.com",
	})
	require.NoError(t, err)
	require.NoError(t, svc.HideDefaultForCard(ctx, def.ID, card.ID, company.ID, 7))

	var row models.CardHiddenDefault
	require.NoError(t, conn.Where("card_id = ? AND entry_id = ?", card.ID, def.ID).First(&row).Error)
	assert.Equal(t, uint(7), row.CreatedBy)

	// Tekrarlanan gizleme sessizce başarılıdır ve ilk kaydı ezmez.
	require.NoError(t, svc.HideDefaultForCard(ctx, def.ID, card.ID, company.ID, 9))
	require.NoError(t, conn.Where("card_id = ? AND entry_id = ?", card.ID, def.ID).First(&row).Error)
	assert.Equal(t, uint(7), row.CreatedBy)
}

func TestGetEntriesForCardIncludesDefaults(t *testing.T) {
	newTestDB(t)
	cardSvc := NewCardService()
	svc := NewEntryService()
	ctx := context.Background()

	company := newTestCompany(t, "Görünüm AŞ")
	card, err := cardSvc.CreateCard(ctx, company.ID, 1, models.CardDetail{FirstName: "Ayşe"})
	require.NoError(t, err)
	other, err := cardSvc.CreateCard(ctx, company.ID, 1, models.CardDetail{FirstName: "Mehmet"})
	require.NoError(t, err)

	_, err = svc.CreateEntry(ctx, company.ID, nil, 1, ownership.ModeTemplate, EntryInput{
		ListType: models.ListTypePhoneNumbers, Value: "+902120000000",
	})
	require.NoError(t, err)
	_, err = svc.CreateEntry(ctx, company.ID, &card.ID, 1, ownership.ModeCard, EntryInput{
		ListType: models.ListTypePhoneNumbers, Value: "+491234567",
	})
	require.NoError(t, err)
	_, err = svc.CreateEntry(ctx, company.ID, &other.ID, 1, ownership.ModeCard, EntryInput{
		ListType: models.ListTypePhoneNumbers, Value: "+499999999",
	})
	require.NoError(t, err)

	entries, err := svc.GetEntriesForCard(ctx, company.ID, card.ID)
	require.NoError(t, err)

	// Varsayılan + kendi kaydı görünür; diğer kartın kaydı görünmez.
	assert.Len(t, entries, 2)
	for _, e := range entries {
		if e.CardID != nil {
			assert.Equal(t, card.ID, *e.CardID)
		}
	}
}
