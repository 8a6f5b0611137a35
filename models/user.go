package models

// User panel kullanıcısıdır. Kimlik doğrulama dış servistedir (SSO);
// buradaki kayıt yalnızca firma ilişkisini ve audit kolonlarını besler.
type User struct {
	BaseModel
	Email        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Name         string `gorm:"type:varchar(150)" json:"name"`
	PasswordHash string `gorm:"type:varchar(255)" json:"-"`
	CompanyID    *uint  `gorm:"index" json:"company_id"`
	IsSystem     bool   `gorm:"default:false" json:"is_system"`
	IsEnabled    bool   `gorm:"default:true" json:"is_enabled"`
}
