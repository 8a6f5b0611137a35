package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kartvizit.link/models"
	"kartvizit.link/pkg/ownership"
	"kartvizit.link/pkg/queryparams"
)

func TestCreateCard(t *testing.T) {
	newTestDB(t)
	svc := NewCardService()
	ctx := context.Background()

	company := newTestCompany(t, "Kart AŞ")

	card, err := svc.CreateCard(ctx, company.ID, 1, models.CardDetail{
		FirstName: "Ayşe",
		LastName:  "Yılmaz",
		Email:     "ayse@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, card.SerialCode)
	assert.Len(t, card.LinkKey, linkKeyLength)
	assert.True(t, card.IsEnabled)
	assert.True(t, card.IsAssigned)
	assert.Equal(t, "Ayşe", card.Detail.FirstName)
}

func TestCreateCardUnassigned(t *testing.T) {
	newTestDB(t)
	svc := NewCardService()

	company := newTestCompany(t, "Boş Kart AŞ")

	// Detay boş: kart basılmış ama henüz kimseye atanmamış.
	card, err := svc.CreateCard(context.Background(), company.ID, 1, models.CardDetail{})
	require.NoError(t, err)
	assert.False(t, card.IsAssigned)
	assert.NotEmpty(t, card.LinkKey)
}

func TestGetCardByIDScoping(t *testing.T) {
	newTestDB(t)
	svc := NewCardService()
	ctx := context.Background()

	a := newTestCompany(t, "Firma A")
	b := newTestCompany(t, "Firma B")
	card, err := svc.CreateCard(ctx, a.ID, 1, models.CardDetail{FirstName: "Ayşe"})
	require.NoError(t, err)

	got, err := svc.GetCardByID(ctx, card.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, card.ID, got.ID)

	_, err = svc.GetCardByID(ctx, card.ID, b.ID)
	assert.ErrorIs(t, err, ErrCardForbidden)

	_, err = svc.GetCardByID(ctx, 9999, a.ID)
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestGetCardByLinkKeyHidesDisabled(t *testing.T) {
	newTestDB(t)
	svc := NewCardService()
	ctx := context.Background()

	company := newTestCompany(t, "Pasif AŞ")
	card, err := svc.CreateCard(ctx, company.ID, 1, models.CardDetail{FirstName: "Ayşe"})
	require.NoError(t, err)

	got, err := svc.GetCardByLinkKey(ctx, card.LinkKey)
	require.NoError(t, err)
	assert.Equal(t, card.ID, got.ID)

	// Pasif kart yokmuş gibi davranılır.
	require.NoError(t, svc.UpdateCard(ctx, card.ID, company.ID, 1, card.Detail, false))
	_, err = svc.GetCardByLinkKey(ctx, card.LinkKey)
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestGetCardByLinkKeyHidesDisabledCompany(t *testing.T) {
	newTestDB(t)
	svc := NewCardService()
	companySvc := NewCompanyService()
	ctx := context.Background()

	company := newTestCompany(t, "Kapalı AŞ")
	card, err := svc.CreateCard(ctx, company.ID, 1, models.CardDetail{FirstName: "Ayşe"})
	require.NoError(t, err)

	require.NoError(t, companySvc.UpdateCompany(ctx, company.ID, 1, company.Name, false))
	_, err = svc.GetCardByLinkKey(ctx, card.LinkKey)
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestGetCardsForCompanyPaginated(t *testing.T) {
	newTestDB(t)
	svc := NewCardService()
	ctx := context.Background()

	company := newTestCompany(t, "Liste AŞ")
	for i := 0; i < 3; i++ {
		_, err := svc.CreateCard(ctx, company.ID, 1, models.CardDetail{FirstName: "Kişi"})
		require.NoError(t, err)
	}

	result, err := svc.GetCardsForCompanyPaginated(ctx, company.ID, queryparams.ListParams{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, result.Meta.TotalItems)
	assert.Equal(t, 2, result.Meta.TotalPages)

	cards, ok := result.Data.([]models.Card)
	require.True(t, ok)
	assert.Len(t, cards, 2)
}

func TestUpdateCardChangesAssignment(t *testing.T) {
	newTestDB(t)
	svc := NewCardService()
	ctx := context.Background()

	company := newTestCompany(t, "Atama AŞ")
	card, err := svc.CreateCard(ctx, company.ID, 1, models.CardDetail{})
	require.NoError(t, err)
	assert.False(t, card.IsAssigned)

	require.NoError(t, svc.UpdateCard(ctx, card.ID, company.ID, 1, models.CardDetail{FirstName: "Mehmet"}, true))

	got, err := svc.GetCardByID(ctx, card.ID, company.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAssigned)
	assert.Equal(t, "Mehmet", got.Detail.FirstName)

	// Seri kodu ve link anahtarı güncellemede değişmez.
	assert.Equal(t, card.SerialCode, got.SerialCode)
	assert.Equal(t, card.LinkKey, got.LinkKey)
}

func TestDeleteCardCleansOwnedRows(t *testing.T) {
	conn := newTestDB(t)
	svc := NewCardService()
	entrySvc := NewEntryService()
	ctx := context.Background()

	company := newTestCompany(t, "Silme AŞ")
	card, err := svc.CreateCard(ctx, company.ID, 1, models.CardDetail{FirstName: "Ayşe"})
	require.NoError(t, err)

	_, err = entrySvc.CreateEntry(ctx, company.ID, &card.ID, 1, ownership.ModeCard, EntryInput{
		ListType: models.ListTypePhoneNumbers,
		Value:    "+491234567",
	})
	require.NoError(t, err)

	def, err := entrySvc.CreateEntry(ctx, company.ID, nil, 1, ownership.ModeTemplate, EntryInput{
		ListType: models.ListTypeWebsites,
		Value:    "https://example.com",
	})
	require.NoError(t, err)
	require.NoError(t, entrySvc.HideDefaultForCard(ctx, def.ID, card.ID, company.ID, 1))

	require.NoError(t, svc.DeleteCard(ctx, card.ID, company.ID, 1))

	var entryCount, hiddenCount int64
	conn.Model(&models.ContactEntry{}).Where("card_id = ?", card.ID).Count(&entryCount)
	conn.Model(&models.CardHiddenDefault{}).Where("card_id = ?", card.ID).Count(&hiddenCount)
	assert.Zero(t, entryCount)
	assert.Zero(t, hiddenCount)

	// Firma varsayılanı yaşamaya devam eder.
	defaults, err := entrySvc.GetCompanyDefaults(ctx, company.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, defaults)
}

func TestResolveCardMergesTemplate(t *testing.T) {
	newTestDB(t)
	svc := NewCardService()
	tplSvc := NewTemplateService()
	entrySvc := NewEntryService()
	ctx := context.Background()

	company := newTestCompany(t, "Merge AŞ")
	bg := "#222222"
	_, err := tplSvc.UpdateTemplate(ctx, company.ID, 1, TemplatePatch{BackgroundColor: &bg})
	require.NoError(t, err)

	_, err = entrySvc.CreateEntry(ctx, company.ID, nil, 1, ownership.ModeTemplate, EntryInput{
		ListType: models.ListTypePhoneNumbers,
		Label:    "Merkez",
		Value:    "+902120000000",
	})
	require.NoError(t, err)

	card, err := svc.CreateCard(ctx, company.ID, 1, models.CardDetail{
		FirstName:       "Ayşe",
		LastName:        "Yılmaz",
		BackgroundColor: "#ABCDEF",
	})
	require.NoError(t, err)

	_, err = entrySvc.CreateEntry(ctx, company.ID, &card.ID, 1, ownership.ModeCard, EntryInput{
		ListType: models.ListTypePhoneNumbers,
		Label:    "Cep",
		Value:    "+491234567",
	})
	require.NoError(t, err)

	resolved, err := svc.ResolveCard(ctx, card.ID, company.ID)
	require.NoError(t, err)

	assert.Equal(t, "Merge AŞ", resolved.CompanyName)
	assert.Equal(t, "#ABCDEF", resolved.BackgroundColor) // kart şablonu ezer

	phones := resolved.Lists[models.ListTypePhoneNumbers]
	require.Len(t, phones, 2)
	assert.Equal(t, "Cep", phones[0].Label) // karta özel kayıt önce gelir
	assert.Equal(t, "Merkez", phones[1].Label)
}

func TestResolvePublicCardHidesHiddenDefault(t *testing.T) {
	newTestDB(t)
	svc := NewCardService()
	entrySvc := NewEntryService()
	ctx := context.Background()

	company := newTestCompany(t, "Gizleme AŞ")
	card, err := svc.CreateCard(ctx, company.ID, 1, models.CardDetail{FirstName: "Ayşe"})
	require.NoError(t, err)

	def, err := entrySvc.CreateEntry(ctx, company.ID, nil, 1, ownership.ModeTemplate, EntryInput{
		ListType: models.ListTypeWebsites,
		Value:    "https://example.com",
	})
	require.NoError(t, err)
	require.NoError(t, entrySvc.HideDefaultForCard(ctx, def.ID, card.ID, company.ID, 1))

	resolved, err := svc.ResolvePublicCard(ctx, card.LinkKey)
	require.NoError(t, err)
	assert.Empty(t, resolved.Lists[models.ListTypeWebsites])

	require.NoError(t, entrySvc.UnhideDefaultForCard(ctx, def.ID, card.ID, company.ID))
	resolved, err = svc.ResolvePublicCard(ctx, card.LinkKey)
	require.NoError(t, err)
	assert.Len(t, resolved.Lists[models.ListTypeWebsites], 1)
}

func TestResolveTemplatePreview(t *testing.T) {
	newTestDB(t)
	svc := NewCardService()
	entrySvc := NewEntryService()
	ctx := context.Background()

	company := newTestCompany(t, "Önizleme AŞ")
	_, err := entrySvc.CreateEntry(ctx, company.ID, nil, 1, ownership.ModeTemplate, EntryInput{
		ListType: models.ListTypeEmails,
		Value:    "info@example.com",
	})
	require.NoError(t, err)

	// Önizlemeye karta özel kayıtlar sızmamalı.
	card, err := svc.CreateCard(ctx, company.ID, 1, models.CardDetail{FirstName: "Ayşe"})
	require.NoError(t, err)
	_, err = entrySvc.CreateEntry(ctx, company.ID, &card.ID, 1, ownership.ModeCard, EntryInput{
		ListType: models.ListTypeEmails,
		Value:    "ayse@example.com",
	})
	require.NoError(t, err)

	resolved, err := svc.ResolveTemplatePreview(ctx, company.ID)
	require.NoError(t, err)
	assert.Empty(t, resolved.SerialCode)
	require.Len(t, resolved.Lists[models.ListTypeEmails], 1)
	assert.Equal(t, "info@example.com", resolved.Lists[models.ListTypeEmails][0].Value)
}
