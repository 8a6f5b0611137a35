package models

// Company platformdaki bir kiracıyı (firmayı) temsil eder.
// Kartlar, şablon ve firma varsayılanı iletişim kayıtları firmaya bağlıdır.
type Company struct {
	BaseModel
	Name      string `gorm:"type:varchar(150);not null" json:"name"`
	IsEnabled bool   `gorm:"default:true;index" json:"is_enabled"`

	// GORM İlişkileri
	Template *Template `gorm:"foreignKey:CompanyID" json:"template,omitempty"`
	Cards    []Card    `gorm:"foreignKey:CompanyID" json:"-"`
}
