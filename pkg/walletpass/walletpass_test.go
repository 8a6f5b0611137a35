package walletpass

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kartvizit.link/pkg/cardfields"
	"kartvizit.link/pkg/merge"
)

func resolvedFixture() *merge.ResolvedCard {
	return &merge.ResolvedCard{
		CompanyName:     "Demo Firma",
		SerialCode:      "KV-2024-0001",
		LinkKey:         "a1b2c3d4e5f6",
		FirstName:       "Ayşe",
		LastName:        "Yılmaz",
		Title:           "Engineer",
		Email:           "ayse@example.com",
		WalletBgColor:   "#1A1A2E",
		WalletTextColor: "#FFFFFF",
		WalletLogoURL:   "https://cdn.example.com/logo.png",
		WalletLabel:     "Add to Wallet",
		WalletLabelDE:   "Zu Wallet hinzufügen",
		Lists: map[string][]merge.ResolvedEntry{
			cardfields.SectionPhoneNumbers: {
				{Value: "+491234567", ListType: cardfields.SectionPhoneNumbers},
				{Value: "+499876543", ListType: cardfields.SectionPhoneNumbers},
			},
		},
	}
}

func TestProject(t *testing.T) {
	proj := Project(resolvedFixture(), "https://kartvizit.link")

	assert.Equal(t, "KV-2024-0001", proj.SerialCode)
	assert.Equal(t, "Ayşe Yılmaz", proj.FullName)
	assert.Equal(t, "Demo Firma", proj.CompanyName)
	assert.Equal(t, "Engineer", proj.Title)
	assert.Equal(t, "+491234567", proj.PrimaryPhone)
	assert.Equal(t, "ayse@example.com", proj.PrimaryEmail)
	assert.Equal(t, "https://kartvizit.link/a1b2c3d4e5f6", proj.QRPayload)
	assert.Equal(t, "#1A1A2E", proj.BackgroundColor)
	assert.Equal(t, "Add to Wallet", proj.Label)
	assert.Equal(t, "Zu Wallet hinzufügen", proj.LabelDE)
}

func TestProjectTrimsBaseURLSlash(t *testing.T) {
	proj := Project(resolvedFixture(), "https://kartvizit.link/")
	assert.Equal(t, "https://kartvizit.link/a1b2c3d4e5f6", proj.QRPayload)
}

func TestProjectSkipsSamplePhone(t *testing.T) {
	r := resolvedFixture()
	r.Lists[cardfields.SectionPhoneNumbers][0].IsSample = true

	proj := Project(r, "https://kartvizit.link")
	assert.Empty(t, proj.PrimaryPhone)
}

func TestProjectEmailFallbackFromList(t *testing.T) {
	r := resolvedFixture()
	r.Email = ""
	r.Lists[cardfields.SectionEmails] = []merge.ResolvedEntry{
		{Value: "info@example.com", ListType: cardfields.SectionEmails},
	}

	proj := Project(r, "https://kartvizit.link")
	assert.Equal(t, "info@example.com", proj.PrimaryEmail)
}

func TestProjectSingleName(t *testing.T) {
	r := resolvedFixture()
	r.LastName = ""

	proj := Project(r, "https://kartvizit.link")
	assert.Equal(t, "Ayşe", proj.FullName)
}
