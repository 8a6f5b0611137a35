package models

import "kartvizit.link/models/helpers"

// Template firma düzeyindeki kart şablonudur: renkler, banner, buton
// etiketleri, cüzdan görünümü ve bölüm sırası. Her firmanın en fazla bir
// şablonu vardır; ilk kayıtta lazy olarak oluşturulur.
type Template struct {
	BaseModel
	CompanyID uint `gorm:"uniqueIndex;not null" json:"company_id"`

	// Görünüm
	BackgroundColor  string `gorm:"type:varchar(7);default:'#FFFFFF'" json:"background_color"`
	NameTextColor    string `gorm:"type:varchar(7);default:'#1F2937'" json:"name_text_color"`
	CompanyTextColor string `gorm:"type:varchar(7);default:'#6B7280'" json:"company_text_color"`
	PhoneTextColor   string `gorm:"type:varchar(7)" json:"phone_text_color"`
	EmailTextColor   string `gorm:"type:varchar(7)" json:"email_text_color"`
	WebsiteTextColor string `gorm:"type:varchar(7)" json:"website_text_color"`
	AddressTextColor string `gorm:"type:varchar(7)" json:"address_text_color"`
	ButtonTextColor  string `gorm:"type:varchar(7)" json:"button_text_color"`
	ButtonBgColor    string `gorm:"type:varchar(7)" json:"button_bg_color"`
	BannerURL        string `gorm:"type:varchar(500)" json:"banner_url"`

	// İki dilli buton etiketleri
	SaveContactLabel   string `gorm:"type:varchar(100)" json:"save_contact_label"`
	SaveContactLabelDE string `gorm:"type:varchar(100)" json:"save_contact_label_de"`
	WalletLabel        string `gorm:"type:varchar(100)" json:"wallet_label"`
	WalletLabelDE      string `gorm:"type:varchar(100)" json:"wallet_label_de"`

	// Cüzdan (wallet pass) görünüm alanları; pass dosyasını dış servis üretir
	WalletBgColor   string `gorm:"type:varchar(7)" json:"wallet_bg_color"`
	WalletTextColor string `gorm:"type:varchar(7)" json:"wallet_text_color"`
	WalletLogoURL   string `gorm:"type:varchar(500)" json:"wallet_logo_url"`

	// Bölüm sırası; boşsa cardfields.DefaultSectionOrder geçerlidir
	SectionOrder helpers.StringArray `gorm:"type:text" json:"section_order"`
}
