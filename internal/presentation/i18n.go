package presentation

import "strings"

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"

	DefaultLanguage = LanguageEnglish
	LanguageCookie  = "language"
)

var translations = map[Language]map[string]string{
	LanguageEnglish: {
		"nav.home":       "Home",
		"nav.robot":      "Meet the Robot",
		"nav.mission":    "Mission",
		"nav.team":       "Our Team",
		"nav.outreach":   "Outreach",
		"nav.statistics": "Statistics",
		"nav.history":    "History",
		"nav.gallery":    "Gallery",
		"nav.blog":       "News",
		"nav.sponsors":   "Sponsors",
		"nav.join":       "Join Us",
		"nav.contact":    "Contact",
	},
	LanguageSpanish: {
		"nav.home":       "Inicio",
		"nav.robot":      "Conoce el Robot",
		"nav.mission":    "Misión",
		"nav.team":       "Nuestro Equipo",
		"nav.outreach":   "Alcance",
		"nav.statistics": "Estadísticas",
		"nav.history":    "Historia",
		"nav.gallery":    "Galería",
		"nav.blog":       "Noticias",
		"nav.sponsors":   "Patrocinadores",
		"nav.join":       "Únete",
		"nav.contact":    "Contacto",
	},
}

// navOrder is the menu order; the key suffix doubles as the section anchor.
var navOrder = []string{
	"home", "robot", "mission", "team", "outreach", "statistics",
	"history", "gallery", "blog", "sponsors", "join", "contact",
}

type NavItem struct {
	Key   string `json:"key"`
	Href  string `json:"href"`
	Label string `json:"label"`
}

// ParseLanguage accepts "en" or "es" in any case. ok is false for anything
// else and the default language is returned.
func ParseLanguage(raw string) (Language, bool) {
	switch Language(strings.ToLower(strings.TrimSpace(raw))) {
	case LanguageEnglish:
		return LanguageEnglish, true
	case LanguageSpanish:
		return LanguageSpanish, true
	default:
		return DefaultLanguage, false
	}
}

// Translate falls back to English, then to the key itself.
func Translate(lang Language, key string) string {
	if label, ok := translations[lang][key]; ok {
		return label
	}
	if label, ok := translations[DefaultLanguage][key]; ok {
		return label
	}
	return key
}

func Navigation(lang Language) []NavItem {
	items := make([]NavItem, 0, len(navOrder))
	for _, section := range navOrder {
		key := "nav." + section
		items = append(items, NavItem{Key: key, Href: "#" + section, Label: Translate(lang, key)})
	}
	return items
}
