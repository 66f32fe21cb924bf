// pkg/vcardgen kart detayından indirilebilir vCard (VCF) üretir.
package vcardgen

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"kartvizit.link/models"

	"github.com/emersion/go-vcard"
)

// ErrDetailMissing kart detayı olmadan vCard üretilemez.
var ErrDetailMissing = errors.New("vCard için kart detayı gerekli")

// Generate kart detayını vCard 4.0 formatında serileştirir. Telefon,
// e-posta ve web sitesi ayrı alan olarak tutulmadığından aksiyon
// butonlarından türetilir.
func Generate(detail *models.CardDetail) ([]byte, error) {
	if detail == nil {
		return nil, ErrDetailMissing
	}

	card := vcard.Card{}
	fullName := strings.TrimSpace(detail.FirstName + " " + detail.LastName)
	card.SetValue(vcard.FieldFormattedName, fullName)
	card.AddName(&vcard.Name{
		FamilyName: detail.LastName,
		GivenName:  detail.FirstName,
	})

	if detail.JobTitle != "" {
		card.SetValue(vcard.FieldTitle, detail.JobTitle)
	}
	if detail.BusinessName != "" {
		card.SetValue(vcard.FieldOrganization, detail.BusinessName)
	}
	if note := noteText(detail); note != "" {
		card.SetValue(vcard.FieldNote, note)
	}
	if detail.HeadshotImageURL != "" {
		card.SetValue(vcard.FieldPhoto, detail.HeadshotImageURL)
	}

	if hasAddress(detail) {
		card.AddAddress(&vcard.Address{
			StreetAddress: detail.BusinessAddress,
			Locality:      detail.City,
			Region:        detail.State,
			PostalCode:    detail.PostalCode,
			Country:       detail.Country,
		})
	}

	for _, action := range detail.PrimaryActions {
		switch action.Type {
		case "call", "whatsapp":
			card.Add(vcard.FieldTelephone, &vcard.Field{
				Value:  action.Value,
				Params: vcard.Params{vcard.ParamType: {vcard.TypeWork}},
			})
		case "email":
			card.Add(vcard.FieldEmail, &vcard.Field{
				Value:  action.Value,
				Params: vcard.Params{vcard.ParamType: {vcard.TypeWork}},
			})
		case "website":
			card.AddValue(vcard.FieldURL, action.Value)
		}
	}
	for _, link := range detail.SecondaryActions {
		card.AddValue(vcard.FieldURL, link.URL)
	}

	vcard.ToV4(card)

	var buf bytes.Buffer
	if err := vcard.NewEncoder(&buf).Encode(card); err != nil {
		return nil, fmt.Errorf("vCard serileştirilemedi: %w", err)
	}
	return buf.Bytes(), nil
}

// FileName indirme başlığında kullanılacak dosya adını üretir.
func FileName(detail *models.CardDetail) string {
	if detail == nil {
		return "kartvizit.vcf"
	}
	name := strings.TrimSpace(detail.FirstName + "-" + detail.LastName)
	name = strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	if name == "" || name == "-" {
		return "kartvizit.vcf"
	}
	return name + ".vcf"
}

func noteText(detail *models.CardDetail) string {
	if detail.Tagline != "" {
		return detail.Tagline
	}
	return detail.BusinessDescription
}

func hasAddress(detail *models.CardDetail) bool {
	return detail.BusinessAddress != "" || detail.City != "" || detail.State != "" ||
		detail.PostalCode != "" || detail.Country != ""
}
