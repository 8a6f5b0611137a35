package utils

import (
	"crypto/rand"
	"math/big"
)

const keyAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateSecureRandomString kriptografik olarak güvenli, URL'de
// kullanılabilir rastgele bir anahtar üretir (public link key'leri için).
func GenerateSecureRandomString(length int) (string, error) {
	result := make([]byte, length)
	max := big.NewInt(int64(len(keyAlphabet)))
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		result[i] = keyAlphabet[n.Int64()]
	}
	return string(result), nil
}
