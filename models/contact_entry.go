package models

// Liste türleri. Bölüm sırası yalnızca ilk beşini kapsar; socialLinks
// sabit konumda gösterilir.
const (
	ListTypePhoneNumbers = "phoneNumbers"
	ListTypeEmails       = "emails"
	ListTypeWebsites     = "websites"
	ListTypeAddresses    = "addresses"
	ListTypeButtons      = "buttons"
	ListTypeSocialLinks  = "socialLinks"
)

// ContactEntry bir iletişim listesi kaydıdır (telefon, e-posta, adres,
// website, sosyal medya, buton). CardID null ise firma varsayılanıdır ve
// firmanın tüm kartlarında görünür; doluysa karta özeldir.
// Sahiplik kayıt oluşturulduktan sonra asla değişmez: bir firma
// varsayılanını "ezmek" yeni bir kart kaydı açmak demektir, paylaşılan
// kaydı değiştirmek değil.
type ContactEntry struct {
	BaseModel
	CompanyID uint  `gorm:"index;not null" json:"company_id"`
	CardID    *uint `gorm:"index" json:"card_id"`

	ListType string `gorm:"type:varchar(20);index;not null" json:"list_type"`

	Label   string `gorm:"type:varchar(100)" json:"label"`
	LabelDE string `gorm:"type:varchar(100)" json:"label_de"`
	Value   string `gorm:"type:varchar(500)" json:"value"`
	// Note butonlarda vCard NOTE satırına, adreslerde ek satıra karşılık gelir.
	Note string `gorm:"type:text" json:"note"`

	// IsHidden firma varsayılanını tüm kartlardan gizler.
	IsHidden bool `gorm:"default:false" json:"is_hidden"`

	// Boşsa şablon renkleri geçerlidir.
	TextColor       string `gorm:"type:varchar(7)" json:"text_color"`
	BackgroundColor string `gorm:"type:varchar(7)" json:"background_color"`

	// SortIndex liste içi ekleme sırasını korur.
	SortIndex int `gorm:"default:0" json:"sort_index"`
}

// CardHiddenDefault bir firma varsayılanının tek bir kartta gizlenmesini
// temsil eder. Paylaşılan kayıt değişmeden kart görünümünden düşer.
// Soft delete kullanılmaz; gizleme kaldırıldığında satır gerçekten silinir
// ki unique index yeniden gizlemeye izin versin.
type CardHiddenDefault struct {
	ID        uint `gorm:"primarykey" json:"id"`
	CardID    uint `gorm:"index:idx_card_hidden,unique;not null" json:"card_id"`
	EntryID   uint `gorm:"index:idx_card_hidden,unique;not null" json:"entry_id"`
	CreatedBy uint `gorm:"index" json:"-"`
}
