package imagestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Profil görselleri için basit depolama sınırı. Import sihirbazı base64
// taşınan görselleri buraya yazar ve karta URL olarak bağlar. Üretimde bu
// arayüzün arkasına nesne depolama (S3 benzeri) konabilir.

// IImageStore görsel depolama arayüzü.
type IImageStore interface {
	Save(name string, data []byte) (string, error)
}

// LocalImageStore görselleri yerel diske yazar ve public URL yolu döndürür.
type LocalImageStore struct {
	Dir     string // ör: ./uploads
	BaseURL string // ör: /uploads
}

// NewLocalImageStore dizini oluşturup depoyu hazırlar.
func NewLocalImageStore(dir, baseURL string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("görsel dizini oluşturulamadı: %w", err)
	}
	return &LocalImageStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save görseli güvenli bir dosya adıyla yazar.
func (s *LocalImageStore) Save(name string, data []byte) (string, error) {
	safe := filepath.Base(name)
	if safe == "." || safe == "/" || safe == "" {
		return "", fmt.Errorf("geçersiz görsel adı: %q", name)
	}
	path := filepath.Join(s.Dir, safe)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("görsel yazılamadı: %w", err)
	}
	return s.BaseURL + "/" + safe, nil
}

var _ IImageStore = (*LocalImageStore)(nil)
