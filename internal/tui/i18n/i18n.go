// Package i18n holds the Arabic and English translations of the admin
// console. Locale files are YAML with nested keys, addressed in dot
// notation. Values are text/template strings; keys missing from the
// active locale are looked up in English.
package i18n

import (
	"strings"
	"sync"
	"text/template"
)

const (
	// DefaultLocale is the locale used when none is configured.
	DefaultLocale = "ar"

	// FallbackLocale is consulted for keys missing from the active locale.
	FallbackLocale = "en"
)

// I18n translates keys into the active locale. It is safe for
// concurrent use.
type I18n struct {
	mu       sync.RWMutex
	locale   string
	fallback string
	dir      string
	catalogs map[string]catalog
}

// Option configures an I18n.
type Option func(*I18n)

func WithLocale(locale string) Option { return func(i *I18n) { i.locale = locale } }

func WithFallback(locale string) Option { return func(i *I18n) { i.fallback = locale } }

// WithDirectory adds a directory searched for locales that are not
// embedded.
func WithDirectory(dir string) Option { return func(i *I18n) { i.dir = dir } }

// New creates an I18n. A locale that cannot be loaded leaves the
// fallback active.
func New(opts ...Option) *I18n {
	i := &I18n{
		locale:   DefaultLocale,
		fallback: FallbackLocale,
		catalogs: make(map[string]catalog),
	}
	for _, opt := range opts {
		opt(i)
	}

	_ = i.load(i.fallback)
	if err := i.load(i.locale); err != nil {
		i.locale = i.fallback
	}
	return i
}

// SetLocale switches to locale, loading it first.
func (i *I18n) SetLocale(locale string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.load(locale); err != nil {
		return err
	}
	i.locale = locale
	return nil
}

func (i *I18n) Locale() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.locale
}

// RTL reports whether the active locale is written right to left.
func (i *I18n) RTL() bool { return IsRTL(i.Locale()) }

// T translates key. Arguments are a map[string]any or key, value pairs.
// A missing key translates to itself.
func (i *I18n) T(key string, args ...any) string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	for _, locale := range i.chain() {
		if s, ok := i.catalogs[locale][key]; ok {
			return render(s, templateData(args))
		}
	}
	return key
}

// TPlural translates key with the plural form of count, trying key.<form>,
// key.other and key itself in each locale. The template sees the count
// as .count.
func (i *I18n) TPlural(key string, count int, args ...any) string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	data := templateData(args)
	data["count"] = count
	for _, locale := range i.chain() {
		c := i.catalogs[locale]
		for _, k := range [...]string{key + "." + PluralForm(locale, count), key + ".other", key} {
			if s, ok := c[k]; ok {
				return render(s, data)
			}
		}
	}
	return key
}

// Has reports whether key is translated in the active or fallback locale.
func (i *I18n) Has(key string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	for _, locale := range i.chain() {
		if _, ok := i.catalogs[locale][key]; ok {
			return true
		}
	}
	return false
}

func (i *I18n) chain() []string {
	if i.locale == i.fallback {
		return []string{i.locale}
	}
	return []string{i.locale, i.fallback}
}

// render executes s as a template over data. Plain strings and
// templates that fail are returned as they are.
func render(s string, data map[string]any) string {
	if len(data) == 0 || !strings.Contains(s, "{{") {
		return s
	}
	tmpl, err := template.New("").Parse(s)
	if err != nil {
		return s
	}
	var b strings.Builder
	if tmpl.Execute(&b, data) != nil {
		return s
	}
	return b.String()
}

func templateData(args []any) map[string]any {
	data := make(map[string]any, len(args)/2+1)
	if len(args) == 1 {
		if m, ok := args[0].(map[string]any); ok {
			for k, v := range m {
				data[k] = v
			}
			return data
		}
	}
	for j := 0; j+1 < len(args); j += 2 {
		if k, ok := args[j].(string); ok {
			data[k] = args[j+1]
		}
	}
	return data
}

var (
	globalMu sync.RWMutex
	global   *I18n
)

// Global returns the process-wide translations, created on first use
// with the default locale.
func Global() *I18n {
	globalMu.RLock()
	g := global
	globalMu.RUnlock()
	if g != nil {
		return g
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		global = New()
	}
	return global
}

// SetGlobal replaces the process-wide translations.
func SetGlobal(i *I18n) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = i
}

// T translates with Global.
func T(key string, args ...any) string { return Global().T(key, args...) }

// TPlural translates with Global.
func TPlural(key string, count int, args ...any) string {
	return Global().TPlural(key, count, args...)
}
