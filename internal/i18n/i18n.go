// Package i18n holds the translation tables for user-facing messages.
// A Translator is an explicit value handed to the packages that need it;
// language selection happens at construction, not through global state.
package i18n

import "fmt"

const DefaultLanguage = "de"

var translations = map[string]map[string]string{
	"de": {
		"auth.email_invalid":        "Ungültige E-Mail-Adresse",
		"auth.password_too_short":   "Passwort muss mindestens %d Zeichen lang sein",
		"auth.password_complexity":  "Passwort braucht Groß-/Kleinbuchstaben, Zahl und Sonderzeichen",
		"auth.username_required":    "Benutzername darf nicht leer sein",
		"auth.invalid_credentials":  "E-Mail oder Passwort falsch",
		"field.empty":               "%s darf nicht leer sein",
		"field.too_long":            "%s darf maximal %d Zeichen lang sein",
		"field.too_short":           "%s muss mindestens %d Zeichen lang sein",
		"search.limit_reached":      "Maximal %d Suchaufträge erlaubt",
		"search.duplicate_name":     "Ein Suchauftrag mit dem Namen '%s' existiert bereits",
		"search.name":               "Name",
		"post.headline":             "Überschrift",
		"post.description":          "Beschreibung",
		"post.location":             "Ortsangabe",
		"comment.text":              "Kommentar",
		"profile.display_name":      "Anzeigename",
	},
	"en": {
		"auth.email_invalid":        "Invalid email address",
		"auth.password_too_short":   "Password must be at least %d characters",
		"auth.password_complexity":  "Password needs upper/lower case, a digit and a special character",
		"auth.username_required":    "Username must not be empty",
		"auth.invalid_credentials":  "Wrong email or password",
		"field.empty":               "%s must not be empty",
		"field.too_long":            "%s may be at most %d characters",
		"field.too_short":           "%s must be at least %d characters",
		"search.limit_reached":      "At most %d saved searches allowed",
		"search.duplicate_name":     "A saved search named '%s' already exists",
		"search.name":               "Name",
		"post.headline":             "Headline",
		"post.description":          "Description",
		"post.location":             "Location",
		"comment.text":              "Comment",
		"profile.display_name":      "Display name",
	},
}

type Translator struct {
	lang string
}

func New(lang string) *Translator {
	if _, ok := translations[lang]; !ok {
		lang = DefaultLanguage
	}
	return &Translator{lang: lang}
}

// WithLanguage returns a translator for another language; the receiver is
// left untouched.
func (t *Translator) WithLanguage(lang string) *Translator {
	return New(lang)
}

func (t *Translator) Language() string {
	return t.lang
}

// T resolves a message key, formatting args into the template. Unknown keys
// fall back to the key itself so a missing entry never hides a message.
func (t *Translator) T(key string, args ...any) string {
	msg, ok := translations[t.lang][key]
	if !ok {
		msg, ok = translations[DefaultLanguage][key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// Available lists the language codes the table knows about.
func Available() []string {
	langs := make([]string, 0, len(translations))
	for code := range translations {
		langs = append(langs, code)
	}
	return langs
}
