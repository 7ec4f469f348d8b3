package catalog

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultWhatsappNumber is used when the whatsapp_number setting is empty.
const DefaultWhatsappNumber = "655596702"

var frenchPrinter = message.NewPrinter(language.French) //nolint:gochecknoglobals

// FormatNumber groups thousands the French way with plain spaces, e.g. 15 000.
func FormatNumber(v float64) string {
	s := frenchPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(0)))

	return strings.NewReplacer("\u00a0", " ", "\u202f", " ").Replace(s)
}

// FormatPrice returns e.g. 15 000 FCFA.
func FormatPrice(price float64) string {
	return FormatNumber(price) + " FCFA"
}

// InterestLink returns the wa.me link opening a chat about p.
// Non digits are stripped from phone.
func InterestLink(p Product, phone string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}

		return -1
	}, phone)
	if digits == "" {
		digits = DefaultWhatsappNumber
	}

	msg := fmt.Sprintf("Bonjour \n\nJe suis intéressé(e) par ce produit :\n\n *%s*\n Prix : %s\n Catégorie : %s\n\n"+
		" Description :\n%s\n\nPouvez-vous me fournir plus d'informations ?",
		p.Name, FormatPrice(p.Price), p.Category, p.Description)

	return "https://wa.me/" + digits + "?text=" + strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
}

// PriceRangeLabel describes a price range of the listing filter, e.g.
// "10 000 - 50 000 FCFA" or "Plus de 100 000 FCFA". Unparsable ranges
// are returned as is.
func PriceRangeLabel(s string) string {
	minPrice, maxPrice, above, ok := ParsePriceRange(s)

	switch {
	case !ok:
		return s
	case above:
		return "Plus de " + FormatPrice(minPrice)
	default:
		return FormatNumber(minPrice) + " - " + FormatPrice(maxPrice)
	}
}
