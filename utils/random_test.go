package utils

import (
	"strings"
	"testing"
)

func TestGenerateSecureRandomString(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		s, err := GenerateSecureRandomString(SlugLength)
		if err != nil {
			t.Fatalf("üretim hatası: %v", err)
		}
		if len(s) != SlugLength {
			t.Fatalf("uzunluk %d bekleniyordu, %d geldi (%q)", SlugLength, len(s), s)
		}
		for _, r := range s {
			if !strings.ContainsRune(alphanumericCharset, r) {
				t.Fatalf("karakter seti dışında karakter: %q", r)
			}
		}
		if seen[s] {
			t.Fatalf("tekrar eden değer üretildi: %q", s)
		}
		seen[s] = true
	}
}

func TestGenerateSecureRandomStringRejectsInvalidLength(t *testing.T) {
	if _, err := GenerateSecureRandomString(0); err == nil {
		t.Error("sıfır uzunluk için hata bekleniyordu")
	}
	if _, err := GenerateSecureRandomString(-5); err == nil {
		t.Error("negatif uzunluk için hata bekleniyordu")
	}
}
