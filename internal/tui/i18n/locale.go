package i18n

import (
	"os"
	"slices"
	"strings"
)

// SupportedLocales lists the embedded locales.
var SupportedLocales = []string{"ar", "en"}

// LocaleDisplayNames maps locale codes to their names in that locale.
var LocaleDisplayNames = map[string]string{
	"ar": "العربية",
	"en": "English",
}

// LocaleDisplayName returns the name of locale, or the code itself.
func LocaleDisplayName(locale string) string {
	if name, ok := LocaleDisplayNames[locale]; ok {
		return name
	}
	return locale
}

func IsValidLocale(locale string) bool {
	return slices.Contains(SupportedLocales, locale)
}

// IsRTL reports whether locale is written right to left.
func IsRTL(locale string) bool { return locale == "ar" }

// PluralForm returns the CLDR plural category of count in locale. Arabic
// uses zero, one, two, few (n%100 in 3..10), many (n%100 in 11..99) and
// other; every other locale uses one and other.
func PluralForm(locale string, count int) string {
	n := max(count, -count)
	if locale != "ar" {
		if n == 1 {
			return "one"
		}
		return "other"
	}

	switch r := n % 100; {
	case n <= 2:
		return [...]string{"zero", "one", "two"}[n]
	case r >= 3 && r <= 10:
		return "few"
	case r >= 11:
		return "many"
	}
	return "other"
}

// DetectSystemLocale returns the supported locale named by LANGUAGE,
// LC_ALL, LC_MESSAGES or LANG, checked in that order, or DefaultLocale.
func DetectSystemLocale() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		if locale := matchLocale(os.Getenv(env)); locale != "" {
			return locale
		}
	}
	return DefaultLocale
}

// matchLocale maps values like "ar_SA.UTF-8", "en-US" or "ar:en" to a
// supported locale; the first supported entry of a list wins.
func matchLocale(value string) string {
	for _, entry := range strings.Split(value, ":") {
		entry = strings.ToLower(entry)
		entry, _, _ = strings.Cut(entry, ".")
		entry, _, _ = strings.Cut(entry, "@")
		lang, _, _ := strings.Cut(strings.ReplaceAll(entry, "_", "-"), "-")
		if IsValidLocale(entry) {
			return entry
		}
		if IsValidLocale(lang) {
			return lang
		}
	}
	return ""
}

// ResolveLocale picks the flag locale, then the configured one, then the
// system locale.
func ResolveLocale(flagLocale, configLocale string) string {
	for _, locale := range []string{flagLocale, configLocale} {
		if IsValidLocale(locale) {
			return locale
		}
	}
	return DetectSystemLocale()
}
