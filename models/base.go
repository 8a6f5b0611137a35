package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type contextKey string

// ContextUserIDKey işlemi yapan kullanıcının ID'sini context üzerinden
// BaseModel hook'larına taşır.
const ContextUserIDKey contextKey = "user_id"

// ContextWithUserID context'e işlemi yapan kullanıcıyı ekler.
func ContextWithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, ContextUserIDKey, userID)
}

// BaseModel tüm tablolarda ortak olan alanları ve audit kolonlarını içerir.
type BaseModel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CreatedBy uint `gorm:"index" json:"-"`
	UpdatedBy uint `gorm:"index" json:"-"`
}

func userIDFromContext(tx *gorm.DB) uint {
	if tx.Statement == nil || tx.Statement.Context == nil {
		return 0
	}
	if id, ok := tx.Statement.Context.Value(ContextUserIDKey).(uint); ok {
		return id
	}
	return 0
}

// BeforeCreate audit kolonlarını context'teki kullanıcı ile doldurur.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if id := userIDFromContext(tx); id != 0 {
		m.CreatedBy = id
		m.UpdatedBy = id
	}
	return nil
}

// BeforeUpdate güncelleyen kullanıcıyı kaydeder.
func (m *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if id := userIDFromContext(tx); id != 0 {
		m.UpdatedBy = id
	}
	return nil
}
