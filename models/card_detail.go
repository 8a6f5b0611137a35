package models

// CardDetail kartın kişisel alanlarını ve kart düzeyindeki görünüm
// override'larını içerir. *_de alanları Almanca ikizlerdir; hangisinin
// gösterileceğine merge değil sunum katmanı karar verir.
type CardDetail struct {
	BaseModel
	CardID uint `gorm:"uniqueIndex;not null" json:"card_id"`

	// Kişisel bilgiler
	FirstName    string `gorm:"type:varchar(100)" json:"first_name"`
	LastName     string `gorm:"type:varchar(100)" json:"last_name"`
	Title        string `gorm:"type:varchar(100)" json:"title"`
	TitleDE      string `gorm:"type:varchar(100)" json:"title_de"`
	Position     string `gorm:"type:varchar(100)" json:"position"`
	PositionDE   string `gorm:"type:varchar(100)" json:"position_de"`
	Department   string `gorm:"type:varchar(100)" json:"department"`
	DepartmentDE string `gorm:"type:varchar(100)" json:"department_de"`

	Email           string `gorm:"type:varchar(100);index" json:"email"`
	ProfileImageURL string `gorm:"type:varchar(500)" json:"profile_image_url"`

	// Şablon değerlerini ezen kart düzeyi görünüm alanları (boşsa şablon geçerli)
	BackgroundColor  string `gorm:"type:varchar(7)" json:"background_color"`
	NameTextColor    string `gorm:"type:varchar(7)" json:"name_text_color"`
	CompanyTextColor string `gorm:"type:varchar(7)" json:"company_text_color"`
	BannerURL        string `gorm:"type:varchar(500)" json:"banner_url"`
}
