package models

// Card fiziksel/NFC olarak basılan tek bir kimliği temsil eder.
// Atanmamış (boş) olabilir; atandığında Detail kişisel bilgileri taşır.
type Card struct {
	BaseModel
	CompanyID uint `gorm:"index;not null" json:"company_id"`

	// SerialCode kartın değişmez seri kodudur (NFC baskısında kullanılır).
	SerialCode string `gorm:"type:varchar(20);uniqueIndex;not null" json:"serial_code"`
	// LinkKey public kart sayfasının URL anahtarıdır.
	LinkKey string `gorm:"type:varchar(24);uniqueIndex;not null" json:"link_key"`

	IsEnabled  bool `gorm:"default:true;index" json:"is_enabled"`
	IsAssigned bool `gorm:"default:false;index" json:"is_assigned"`

	// GORM İlişkileri
	Company Company    `gorm:"foreignKey:CompanyID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Detail  CardDetail `gorm:"foreignKey:CardID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"detail"`
}
