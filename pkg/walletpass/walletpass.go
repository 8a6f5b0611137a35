package walletpass

import (
	"strings"

	"kartvizit.link/pkg/cardfields"
	"kartvizit.link/pkg/merge"
)

// Wallet pass projeksiyonu: pass binary'sini üreten dış servisin ihtiyaç
// duyduğu alt kümeyi çözülmüş modelden seçer. Dosya üretimi bu projede
// değildir; kuyruktaki wallet_sync işi bu projeksiyonu taşır.

// WalletProjection dış wallet servisine gönderilen alan kümesidir.
type WalletProjection struct {
	SerialCode string `json:"serial_code"`

	FullName    string `json:"full_name"`
	CompanyName string `json:"company_name"`
	Title       string `json:"title,omitempty"`

	PrimaryPhone string `json:"primary_phone,omitempty"`
	PrimaryEmail string `json:"primary_email,omitempty"`

	// QRPayload public kart sayfasının tam URL'sidir.
	QRPayload string `json:"qr_payload"`

	BackgroundColor string `json:"background_color"`
	TextColor       string `json:"text_color"`
	LogoURL         string `json:"logo_url,omitempty"`

	Label   string `json:"label"`
	LabelDE string `json:"label_de"`
}

// Project çözülmüş modelden wallet projeksiyonunu üretir. Saf fonksiyondur.
func Project(resolved *merge.ResolvedCard, publicBaseURL string) WalletProjection {
	proj := WalletProjection{
		SerialCode:      resolved.SerialCode,
		FullName:        strings.TrimSpace(resolved.FirstName + " " + resolved.LastName),
		CompanyName:     resolved.CompanyName,
		Title:           resolved.Title,
		PrimaryEmail:    resolved.Email,
		QRPayload:       strings.TrimRight(publicBaseURL, "/") + "/" + resolved.LinkKey,
		BackgroundColor: resolved.WalletBgColor,
		TextColor:       resolved.WalletTextColor,
		LogoURL:         resolved.WalletLogoURL,
		Label:           resolved.WalletLabel,
		LabelDE:         resolved.WalletLabelDE,
	}

	if phones := resolved.Lists[cardfields.SectionPhoneNumbers]; len(phones) > 0 && !phones[0].IsSample {
		proj.PrimaryPhone = phones[0].Value
	}
	if proj.PrimaryEmail == "" {
		if emails := resolved.Lists[cardfields.SectionEmails]; len(emails) > 0 && !emails[0].IsSample {
			proj.PrimaryEmail = emails[0].Value
		}
	}

	return proj
}
