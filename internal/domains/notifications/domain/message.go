package domain

import (
	"fmt"

	"github.com/Apurer/pizzeria-console/internal/shared/result"
)

// Email subjects.
const (
	SubjectReceipt      = "Заказ получен"
	SubjectConfirmation = "Заказ подтвержден"
	SubjectRejection    = "Заказ отклонен"
)

// ErrNoOrder is returned when there is no order to write an email for.
var ErrNoOrder = fmt.Errorf("%w: no order to notify", result.ErrValidation)

// Message is one outbound email as handed to a sink.
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

// Branding is the footer and signature shared by every email.
type Branding struct {
	ShopName  string
	LogoURL   string
	Phone     string
	PhoneLink string
	Hours     string
	Signature string
	Tagline   string
}

// DefaultBranding returns the pizzeria's own footer.
func DefaultBranding() Branding {
	return Branding{
		ShopName:  "Pizzeria No.161",
		LogoURL:   "https://firebasestorage.googleapis.com/v0/b/pizzeria-161.firebasestorage.app/o/pizzeria_161-playstore%20-%20round%20-%20200-200.png?alt=media&token=428b17a3-d7c1-4ae2-a124-f751f4d1a2f2",
		Phone:     "+7 (903) 739-77-00",
		PhoneLink: "+79037397700",
		Hours:     "с 12:00 до 16:00",
		Signature: "Paolo Pizzaiolo",
		Tagline:   "Pizzeria Numero 161 - Vera Pizza Italiana",
	}
}

// Merge fills the blank fields of b from fallback.
func (b Branding) Merge(fallback Branding) Branding {
	pick := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	return Branding{
		ShopName:  pick(b.ShopName, fallback.ShopName),
		LogoURL:   pick(b.LogoURL, fallback.LogoURL),
		Phone:     pick(b.Phone, fallback.Phone),
		PhoneLink: pick(b.PhoneLink, fallback.PhoneLink),
		Hours:     pick(b.Hours, fallback.Hours),
		Signature: pick(b.Signature, fallback.Signature),
		Tagline:   pick(b.Tagline, fallback.Tagline),
	}
}
