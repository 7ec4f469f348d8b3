package settings

import "github.com/labrocante/brocante/internal/db/models"

// Keys read by the storefront.
const (
	KeyContactEmail    = "contact_email"
	KeyContactPhone    = "contact_phone"
	KeyContactAddress  = "contact_address"
	KeyLocation        = "brocante_location"
	KeyWhatsappNumber  = "whatsapp_number"
	KeySiteTitle       = "site_title"
	KeySiteName        = "site_name"
	KeySiteLogo        = "site_logo"
	KeyHeroTitle       = "hero_title"
	KeyHeroSubtitle    = "hero_subtitle"
	KeyHeroImage       = "hero_image"
	KeyOpeningHours    = "opening_hours"
	KeyAboutText       = "about_text"
	KeyFooterText      = "footer_text"
	KeyContactTitle    = "contact_title"
	KeyContactSubtitle = "contact_subtitle"
)

// Fallback is the snapshot published when the settings can not be fetched.
func Fallback() map[string]any {
	return map[string]any{
		KeyContactTitle:       "Contactez-nous",
		KeyContactSubtitle:    "Une question ? Écrivez-nous !",
		"contact_form_title":  "Envoyez-nous un message",
		"name_label":          "Nom",
		"name_placeholder":    "Votre nom",
		"email_label":         "Email",
		"email_placeholder":   "votre@email.com",
		"message_label":       "Message",
		"message_placeholder": "Votre message...",
		"send_message":        "Envoyer le message",
		KeyContactEmail:       "contact@labrocante.fr",
		KeyContactPhone:       "+33 1 23 45 67 89",
		KeyContactAddress:     "123 Rue des Antiquités, 75001 Paris",
		"opening_hours_title": "Horaires d'ouverture",
		"address_title":       "Notre adresse",
	}
}

// Grouping labels of the settings rows, in admin tab order.
const (
	GroupHero        = "hero"
	GroupHeader      = "header"
	GroupProducts    = "products"
	GroupContact     = "contact"
	GroupContactInfo = "contact_info"
	GroupButtons     = "buttons"
	GroupSEO         = "seo"
	GroupLocation    = "location"
)

// GroupLabels names the grouping labels in the back office.
var GroupLabels = map[string]string{ //nolint:gochecknoglobals
	GroupHero:        "Page Accueil",
	GroupHeader:      "Navigation",
	GroupProducts:    "Page Produits",
	GroupContact:     "Page Contact",
	GroupContactInfo: "Infos Contact",
	GroupButtons:     "Boutons",
	GroupSEO:         "SEO",
	GroupLocation:    "Localisation",
}

// DefaultRows are the settings a fresh database is seeded with.
func DefaultRows() []models.SiteSetting {
	text := models.SettingTypeText

	return []models.SiteSetting{
		{Key: KeyHeroTitle, Value: "Trésors d'hier, bonheur d'aujourd'hui", Type: text, Category: GroupHero,
			Description: "Titre principal de la page d'accueil"},
		{Key: KeyHeroSubtitle, Value: "Meubles, vaisselle, déco et objets de collection à petits prix",
			Type: text, Category: GroupHero, Description: "Sous-titre de la page d'accueil"},
		{Key: KeyHeroImage, Type: models.SettingTypeImage, Category: GroupHero,
			Description: "Image de fond de la page d'accueil"},
		{Key: KeyAboutText, Value: "Une brocante familiale au cœur de Yaoundé.", Type: models.SettingTypeHTML,
			Category: GroupHero, Description: "Présentation de la brocante"},
		{Key: KeySiteName, Value: "La Brocante", Type: text, Category: GroupHeader, Description: "Nom du site"},
		{Key: KeySiteLogo, Type: models.SettingTypeImage, Category: GroupHeader, Description: "Logo du site"},
		{Key: KeyContactTitle, Value: "Contactez-nous", Type: text, Category: GroupContact,
			Description: "Titre de la page contact"},
		{Key: KeyContactSubtitle, Value: "Une question ? Écrivez-nous !", Type: text, Category: GroupContact,
			Description: "Sous-titre de la page contact"},
		{Key: KeyContactEmail, Value: "contact@labrocante.fr", Type: text, Category: GroupContactInfo,
			Description: "Email de contact"},
		{Key: KeyContactPhone, Value: "+237 655 59 67 02", Type: text, Category: GroupContactInfo,
			Description: "Téléphone"},
		{Key: KeyContactAddress, Value: "Tropicana, Yaoundé, Cameroun", Type: text, Category: GroupContactInfo,
			Description: "Adresse postale"},
		{Key: KeyWhatsappNumber, Value: "237655596702", Type: text, Category: GroupContactInfo,
			Description: "Numéro WhatsApp des demandes produit"},
		{Key: KeyOpeningHours, Type: models.SettingTypeJSON, Category: GroupContactInfo,
			Value:       `{"lundi":"8h - 18h","mardi":"8h - 18h","mercredi":"8h - 18h","jeudi":"8h - 18h","vendredi":"8h - 18h","samedi":"8h - 18h","dimanche":"Fermé"}`,
			Description: "Horaires d'ouverture (JSON jour -> horaires)"},
		{Key: KeyFooterText, Value: "Des objets qui ont une histoire.", Type: text, Category: GroupSEO,
			Description: "Texte du pied de page"},
		{Key: KeySiteTitle, Value: "La Brocante - Objets anciens à Yaoundé", Type: text, Category: GroupSEO,
			Description: "Titre des pages"},
		{Key: KeyLocation, Type: models.SettingTypeJSON, Category: GroupLocation,
			Value:       `{"lat":3.848,"lng":11.5021,"address":"Tropicana, Yaoundé, Cameroun"}`,
			Description: "Position de la brocante (JSON lat, lng, address)"},
	}
}
