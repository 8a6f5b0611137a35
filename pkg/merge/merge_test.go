package merge

import (
	"testing"

	"kartvizit.link/models"
	"kartvizit.link/pkg/cardfields"
	"kartvizit.link/pkg/ownership"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func testCard() *models.Card {
	return &models.Card{
		BaseModel:  models.BaseModel{ID: 10},
		CompanyID:  1,
		SerialCode: "KV-TEST1",
		LinkKey:    "abcdef123456",
		Detail: models.CardDetail{
			FirstName: "Ayşe",
			LastName:  "Yılmaz",
			Title:     "Engineer",
			TitleDE:   "Ingenieurin",
			Email:     "ayse@example.com",
		},
	}
}

func TestResolveRequiresTemplate(t *testing.T) {
	_, err := Resolve(Input{CompanyName: "Acme", Card: testCard()})
	assert.ErrorIs(t, err, ErrMissingTemplate)
}

func TestResolveScalarPrecedence(t *testing.T) {
	tpl := &models.Template{
		BackgroundColor: "#111111",
		NameTextColor:   "#222222",
	}
	card := testCard()
	card.Detail.BackgroundColor = "#ABCDEF" // kart değeri şablonu ezmeli

	resolved, err := Resolve(Input{CompanyName: "Acme", Template: tpl, Card: card})
	require.NoError(t, err)

	assert.Equal(t, "#ABCDEF", resolved.BackgroundColor)
	assert.Equal(t, "#222222", resolved.NameTextColor)
	// Ne kartta ne şablonda değer var: statik varsayılan geçer.
	assert.Equal(t, DefaultCompanyTextColor, resolved.CompanyTextColor)
	assert.Equal(t, DefaultSaveContactLabel, resolved.SaveContactLabel)
	assert.Equal(t, DefaultSaveContactLabelDE, resolved.SaveContactLabelDE)
}

func TestResolveCopiesCardIdentity(t *testing.T) {
	resolved, err := Resolve(Input{CompanyName: "Acme", Template: &models.Template{}, Card: testCard()})
	require.NoError(t, err)

	assert.Equal(t, "Acme", resolved.CompanyName)
	assert.Equal(t, "KV-TEST1", resolved.SerialCode)
	assert.Equal(t, "abcdef123456", resolved.LinkKey)
	assert.Equal(t, "Ayşe", resolved.FirstName)
	assert.Equal(t, "Ingenieurin", resolved.TitleDE)
}

func TestResolveListConcatenation(t *testing.T) {
	tpl := &models.Template{}
	card := testCard()
	entries := []models.ContactEntry{
		// firma varsayılanı
		{BaseModel: models.BaseModel{ID: 1}, CompanyID: 1, ListType: cardfields.SectionPhoneNumbers, Value: "+49 30 1111111", SortIndex: 0},
		// karta özel
		{BaseModel: models.BaseModel{ID: 2}, CompanyID: 1, CardID: uintPtr(10), ListType: cardfields.SectionPhoneNumbers, Value: "+49 170 2222222", SortIndex: 1},
		// karta özel, önce gelmeli
		{BaseModel: models.BaseModel{ID: 3}, CompanyID: 1, CardID: uintPtr(10), ListType: cardfields.SectionPhoneNumbers, Value: "+49 170 3333333", SortIndex: 0},
		// başka kartın kaydı
		{BaseModel: models.BaseModel{ID: 4}, CompanyID: 1, CardID: uintPtr(99), ListType: cardfields.SectionPhoneNumbers, Value: "+49 170 4444444"},
	}

	resolved, err := Resolve(Input{CompanyName: "Acme", Template: tpl, Card: card, Entries: entries})
	require.NoError(t, err)

	phones := resolved.Lists[cardfields.SectionPhoneNumbers]
	require.Len(t, phones, 3)

	// Karta özel kayıtlar sort_index sırasıyla önce, varsayılanlar sonra.
	assert.Equal(t, "+49 170 3333333", phones[0].Value)
	assert.Equal(t, ownership.ScopeCardSpecific, phones[0].Scope)
	assert.Equal(t, "+49 170 2222222", phones[1].Value)
	assert.Equal(t, "+49 30 1111111", phones[2].Value)
	assert.Equal(t, ownership.ScopeCompanyDefault, phones[2].Scope)
}

func TestResolveHiddenDefaults(t *testing.T) {
	entries := []models.ContactEntry{
		{BaseModel: models.BaseModel{ID: 1}, ListType: cardfields.SectionEmails, Value: "a@example.com"},
		{BaseModel: models.BaseModel{ID: 2}, ListType: cardfields.SectionEmails, Value: "b@example.com"},
		{BaseModel: models.BaseModel{ID: 3}, ListType: cardfields.SectionEmails, Value: "c@example.com", IsHidden: true},
	}

	resolved, err := Resolve(Input{
		CompanyName:    "Acme",
		Template:       &models.Template{},
		Card:           testCard(),
		Entries:        entries,
		HiddenEntryIDs: map[uint]bool{2: true},
	})
	require.NoError(t, err)

	emails := resolved.Lists[cardfields.SectionEmails]
	require.Len(t, emails, 1)
	assert.Equal(t, "a@example.com", emails[0].Value)
}

func TestResolveEntryColorFallback(t *testing.T) {
	tpl := &models.Template{PhoneTextColor: "#010101", ButtonBgColor: "#020202"}
	entries := []models.ContactEntry{
		{BaseModel: models.BaseModel{ID: 1}, ListType: cardfields.SectionPhoneNumbers, Value: "+49 30 1111111"},
		{BaseModel: models.BaseModel{ID: 2}, ListType: cardfields.SectionPhoneNumbers, Value: "+49 30 2222222", TextColor: "#FF0000"},
	}

	resolved, err := Resolve(Input{CompanyName: "Acme", Template: tpl, Card: testCard(), Entries: entries})
	require.NoError(t, err)

	phones := resolved.Lists[cardfields.SectionPhoneNumbers]
	require.Len(t, phones, 2)
	assert.Equal(t, "#010101", phones[0].TextColor) // şablonun tür rengi
	assert.Equal(t, "#020202", phones[0].BackgroundColor)
	assert.Equal(t, "#FF0000", phones[1].TextColor) // kaydın kendi rengi kazanır
}

func TestResolveSectionOrder(t *testing.T) {
	custom := []string{
		cardfields.SectionButtons,
		cardfields.SectionAddresses,
		cardfields.SectionWebsites,
		cardfields.SectionEmails,
		cardfields.SectionPhoneNumbers,
	}
	tpl := &models.Template{SectionOrder: custom}

	resolved, err := Resolve(Input{CompanyName: "Acme", Template: tpl, Card: testCard()})
	require.NoError(t, err)
	assert.Equal(t, custom, resolved.SectionOrder)

	// Geçersiz sıra saklanmışsa varsayılan sıra geçer.
	tpl.SectionOrder = []string{"videos"}
	resolved, err = Resolve(Input{CompanyName: "Acme", Template: tpl, Card: testCard()})
	require.NoError(t, err)
	assert.Equal(t, cardfields.DefaultSectionOrder, resolved.SectionOrder)
}

func TestResolveTemplatePreviewWithoutCard(t *testing.T) {
	entries := []models.ContactEntry{
		{BaseModel: models.BaseModel{ID: 1}, ListType: cardfields.SectionWebsites, Value: "https://kartvizit.link"},
		{BaseModel: models.BaseModel{ID: 2}, CardID: uintPtr(10), ListType: cardfields.SectionWebsites, Value: "https://personal.example"},
	}

	resolved, err := Resolve(Input{CompanyName: "Acme", Template: &models.Template{}, Entries: entries})
	require.NoError(t, err)

	assert.Empty(t, resolved.FirstName)
	assert.Empty(t, resolved.SerialCode)
	// Kart yokken karta özel kayıtlar görünmez.
	websites := resolved.Lists[cardfields.SectionWebsites]
	require.Len(t, websites, 1)
	assert.Equal(t, "https://kartvizit.link", websites[0].Value)
}

func TestSampleEntry(t *testing.T) {
	sample := SampleEntry(cardfields.SectionPhoneNumbers)
	assert.True(t, sample.IsSample)
	assert.NotEmpty(t, sample.Value)
	assert.Equal(t, cardfields.SectionPhoneNumbers, sample.ListType)
}

func TestLocalize(t *testing.T) {
	resolved := &ResolvedCard{
		Title:              "Engineer",
		TitleDE:            "Ingenieurin",
		Position:           "Lead",
		PositionDE:         "",
		SaveContactLabel:   "Save contact",
		SaveContactLabelDE: "Kontakt speichern",
		Lists: map[string][]ResolvedEntry{
			cardfields.SectionPhoneNumbers: {
				{Label: "Office", LabelDE: "Büro", Value: "+49 30 1111111"},
			},
		},
		SectionOrder: cardfields.DefaultSectionOrder,
	}

	de := Localize(resolved, LocaleGerman)
	assert.Equal(t, "Ingenieurin", de.Title)
	assert.Equal(t, "Lead", de.Position) // Almanca ikiz boşsa temel değer
	assert.Equal(t, "Kontakt speichern", de.SaveContactLabel)
	assert.Equal(t, "Büro", de.Lists[cardfields.SectionPhoneNumbers][0].Label)

	en := Localize(resolved, LocaleDefault)
	assert.Equal(t, "Engineer", en.Title)
	assert.Equal(t, "Office", en.Lists[cardfields.SectionPhoneNumbers][0].Label)
}
