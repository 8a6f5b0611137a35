package helpers

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringArray JSON olarak saklanan string dizisi kolonudur.
// Hem PostgreSQL hem de testlerdeki SQLite ile çalışır.
type StringArray []string

// Value GORM yazarken diziyi JSON'a çevirir.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan veritabanından okunan JSON'u diziye çevirir.
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return errors.New("StringArray: desteklenmeyen kolon tipi")
	}
}
