package vcardgen

import (
	"errors"
	"strings"
	"testing"

	"kartvizit.link/models"
	"kartvizit.link/models/helpers"
)

func TestGenerate(t *testing.T) {
	detail := &models.CardDetail{
		FirstName:    "Ayşe",
		LastName:     "Yılmaz",
		JobTitle:     "Grafik Tasarımcı",
		BusinessName: "Yılmaz Tasarım",
		Tagline:      "Markanızın görsel sesi",
		City:         "İzmir",
		Country:      "Türkiye",
		PrimaryActions: helpers.ActionList{
			{Type: "call", Label: "Ara", Value: "+905551112233"},
			{Type: "email", Label: "E-posta", Value: "ayse@example.com"},
		},
		SecondaryActions: helpers.SocialLinkList{
			{Platform: "linkedin", URL: "https://linkedin.com/in/ayseyilmaz"},
		},
	}

	data, err := Generate(detail)
	if err != nil {
		t.Fatalf("Generate hata döndü: %v", err)
	}
	out := string(data)

	checks := []string{
		"BEGIN:VCARD",
		"END:VCARD",
		"FN:Ayşe Yılmaz",
		"TITLE:Grafik Tasarımcı",
		"ORG:Yılmaz Tasarım",
		"NOTE:Markanızın görsel sesi",
		"+905551112233",
		"ayse@example.com",
		"https://linkedin.com/in/ayseyilmaz",
		"İzmir",
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("çıktıda %q bekleniyordu:\n%s", want, out)
		}
	}
}

func TestGenerateRequiresDetail(t *testing.T) {
	if _, err := Generate(nil); !errors.Is(err, ErrDetailMissing) {
		t.Errorf("ErrDetailMissing bekleniyordu, %v geldi", err)
	}
}

func TestFileName(t *testing.T) {
	detail := &models.CardDetail{FirstName: "Ayşe", LastName: "Yılmaz"}
	if got := FileName(detail); got != "ayşe-yılmaz.vcf" {
		t.Errorf("beklenmeyen dosya adı: %q", got)
	}
	if got := FileName(nil); got != "kartvizit.vcf" {
		t.Errorf("varsayılan dosya adı bekleniyordu: %q", got)
	}
	if got := FileName(&models.CardDetail{}); got != "kartvizit.vcf" {
		t.Errorf("boş detay için varsayılan ad bekleniyordu: %q", got)
	}
}
