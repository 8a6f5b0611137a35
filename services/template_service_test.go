package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kartvizit.link/pkg/cardfields"
)

func TestGetOrCreateTemplateLazy(t *testing.T) {
	conn := newTestDB(t)
	svc := NewTemplateService()
	ctx := context.Background()

	// Firma satırı olmadan da şablon lazy oluşur.
	created, err := svc.GetOrCreateTemplate(ctx, 42, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(42), created.CompanyID)
	assert.Equal(t, cardfields.DefaultSectionOrder, []string(created.SectionOrder))

	// İkinci çağrı aynı kaydı döndürür.
	again, err := svc.GetOrCreateTemplate(ctx, 42, 1)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	var count int64
	conn.Table("templates").Where("company_id = ?", 42).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestUpdateTemplatePartialPatch(t *testing.T) {
	newTestDB(t)
	svc := NewTemplateService()
	ctx := context.Background()

	company := newTestCompany(t, "Patch AŞ")

	bg := "#101820"
	label := "Kontakt speichern"
	updated, err := svc.UpdateTemplate(ctx, company.ID, 1, TemplatePatch{
		BackgroundColor:    &bg,
		SaveContactLabelDE: &label,
	})
	require.NoError(t, err)
	assert.Equal(t, "#101820", updated.BackgroundColor)
	assert.Equal(t, "Kontakt speichern", updated.SaveContactLabelDE)

	// nil alanlar dokunulmadan kalır.
	name := "#FFEE00"
	updated, err = svc.UpdateTemplate(ctx, company.ID, 1, TemplatePatch{NameTextColor: &name})
	require.NoError(t, err)
	assert.Equal(t, "#FFEE00", updated.NameTextColor)
	assert.Equal(t, "#101820", updated.BackgroundColor)
}

func TestSectionOrderRoundTrip(t *testing.T) {
	newTestDB(t)
	svc := NewTemplateService()
	ctx := context.Background()

	company := newTestCompany(t, "Sıralama AŞ")

	order, err := svc.GetSectionOrder(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, cardfields.DefaultSectionOrder, order)

	custom := []string{"buttons", "addresses", "websites", "emails", "phoneNumbers"}
	require.NoError(t, svc.SetSectionOrder(ctx, company.ID, 1, custom))

	order, err = svc.GetSectionOrder(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, custom, order)
}

func TestSetSectionOrderRejectsInvalidSet(t *testing.T) {
	newTestDB(t)
	svc := NewTemplateService()
	ctx := context.Background()

	company := newTestCompany(t, "Geçersiz AŞ")
	custom := []string{"emails", "phoneNumbers", "websites", "addresses", "buttons"}
	require.NoError(t, svc.SetSectionOrder(ctx, company.ID, 1, custom))

	cases := [][]string{
		{"emails", "phoneNumbers"},                                            // eksik bölüm
		{"emails", "emails", "websites", "addresses", "buttons"},              // tekrar
		{"emails", "phoneNumbers", "websites", "addresses", "socialLinks"},    // sıralanamaz bölüm
		{"emails", "phoneNumbers", "websites", "addresses", "bilinmeyenShey"}, // bilinmeyen
	}
	for _, bad := range cases {
		assert.ErrorIs(t, svc.SetSectionOrder(ctx, company.ID, 1, bad), ErrInvalidSectionSet)
	}

	// Reddedilen çağrılar saklanan sırayı değiştirmez.
	order, err := svc.GetSectionOrder(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, custom, order)
}

func TestGetSectionOrderWithoutTemplate(t *testing.T) {
	newTestDB(t)
	svc := NewTemplateService()

	order, err := svc.GetSectionOrder(context.Background(), 999)
	require.NoError(t, err)
	assert.Equal(t, cardfields.DefaultSectionOrder, order)
}
