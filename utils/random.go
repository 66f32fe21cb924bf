package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const alphanumericCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// SlugLength otomatik üretilen kart slug'larının uzunluğu.
const SlugLength = 12

// GenerateSecureRandomString crypto/rand ile alfanümerik rastgele string üretir.
// Kart slug'ları ve benzeri public anahtarlar için kullanılır.
func GenerateSecureRandomString(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("uzunluk pozitif olmalı")
	}
	max := big.NewInt(int64(len(alphanumericCharset)))
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		result[i] = alphanumericCharset[n.Int64()]
	}
	return string(result), nil
}
