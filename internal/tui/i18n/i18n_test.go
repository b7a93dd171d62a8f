package i18n

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	i := New()
	if i.Locale() != DefaultLocale {
		t.Errorf("expected locale %s, got %s", DefaultLocale, i.Locale())
	}
	if !i.RTL() {
		t.Error("expected the default locale to be right to left")
	}
}

func TestNew_UnknownLocaleFallsBack(t *testing.T) {
	i := New(WithLocale("fr"))
	if i.Locale() != FallbackLocale {
		t.Errorf("expected fallback locale %s, got %s", FallbackLocale, i.Locale())
	}
}

func TestSetLocale(t *testing.T) {
	tests := []struct {
		locale    string
		expectErr bool
	}{
		{"ar", false},
		{"en", false},
		{"de", true},
		{"invalid", true},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			i := New()
			err := i.SetLocale(tt.locale)
			if tt.expectErr && err == nil {
				t.Errorf("expected error for locale %s", tt.locale)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected error for locale %s: %v", tt.locale, err)
			}
			if tt.expectErr && i.Locale() != DefaultLocale {
				t.Errorf("failed SetLocale changed the locale to %s", i.Locale())
			}
		})
	}
}

func TestTranslation(t *testing.T) {
	tests := []struct {
		locale   string
		key      string
		expected string
	}{
		{"ar", "tabs.requests", "طلبات الالتحاق"},
		{"en", "tabs.requests", "Requests"},
		{"ar", "actions.view_questions", "عرض الأسئلة"},
		{"en", "actions.unpublish", "Disable"},
		{"ar", "common.none", "-"},
	}

	for _, tt := range tests {
		t.Run(tt.locale+"_"+tt.key, func(t *testing.T) {
			i := New(WithLocale(tt.locale))
			if result := i.T(tt.key); result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestTranslation_MissingKey(t *testing.T) {
	i := New()
	if result := i.T("nonexistent.key"); result != "nonexistent.key" {
		t.Errorf("expected key to be returned for missing translation, got %q", result)
	}
	if i.Has("nonexistent.key") {
		t.Error("expected Has to report a missing key")
	}
	if !i.Has("table.showing") {
		t.Error("expected Has('table.showing') to return true")
	}
}

func TestTranslation_FallbackLocale(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "xx.yaml"), []byte("app:\n  title: \"XX\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	i := New(WithLocale("xx"), WithDirectory(dir))
	if i.Locale() != "xx" {
		t.Fatalf("expected locale xx from directory, got %s", i.Locale())
	}
	if got := i.T("app.title"); got != "XX" {
		t.Errorf("expected own translation, got %q", got)
	}
	if got := i.T("tabs.exams"); got != "Exams" {
		t.Errorf("expected English fallback, got %q", got)
	}
}

func TestInterpolation(t *testing.T) {
	i := New()

	result := i.T("table.showing", map[string]any{"start": 11, "end": 20, "total": 23})
	if result != "عرض 11–20 من 23" {
		t.Errorf("unexpected map interpolation %q", result)
	}

	i = New(WithLocale("en"))
	result = i.T("table.showing", "start", 1, "end", 10, "total", 12)
	if result != "Showing 1–10 of 12" {
		t.Errorf("unexpected pair interpolation %q", result)
	}
}

func TestPluralForm(t *testing.T) {
	tests := []struct {
		locale string
		count  int
		want   string
	}{
		{"ar", 0, "zero"},
		{"ar", 1, "one"},
		{"ar", 2, "two"},
		{"ar", 3, "few"},
		{"ar", 10, "few"},
		{"ar", 11, "many"},
		{"ar", 99, "many"},
		{"ar", 100, "other"},
		{"ar", 102, "other"},
		{"ar", 103, "few"},
		{"ar", 111, "many"},
		{"ar", -2, "two"},
		{"en", 0, "other"},
		{"en", 1, "one"},
		{"en", 2, "other"},
	}

	for _, tt := range tests {
		if got := PluralForm(tt.locale, tt.count); got != tt.want {
			t.Errorf("PluralForm(%s, %d) = %q, want %q", tt.locale, tt.count, got, tt.want)
		}
	}
}

func TestTPlural(t *testing.T) {
	ar := New()
	en := New(WithLocale("en"))

	tests := []struct {
		i     *I18n
		key   string
		count int
		want  string
	}{
		{ar, "table.selected", 0, "لم يتم تحديد أي صف"},
		{ar, "table.selected", 1, "تم تحديد صف واحد"},
		{ar, "table.selected", 2, "تم تحديد صفين"},
		{ar, "table.selected", 5, "تم تحديد 5 صفوف"},
		{ar, "table.selected", 11, "تم تحديد 11 صفاً"},
		{ar, "table.selected", 100, "تم تحديد 100 صف"},
		{ar, "messages.bulk_done", 0, "تم تنفيذ الإجراء على 0 صف"},
		{en, "table.selected", 1, "1 row selected"},
		{en, "table.selected", 3, "3 rows selected"},
	}

	for _, tt := range tests {
		if got := tt.i.TPlural(tt.key, tt.count); got != tt.want {
			t.Errorf("TPlural(%s, %d) in %s = %q, want %q", tt.key, tt.count, tt.i.Locale(), got, tt.want)
		}
	}
}

func loadFlat(t *testing.T, locale string) catalog {
	t.Helper()
	i := New(WithLocale(locale))
	return i.catalogs[locale]
}

func TestLocales_SameKeys(t *testing.T) {
	ar := loadFlat(t, "ar")
	en := loadFlat(t, "en")

	for key := range en {
		if _, ok := ar[key]; !ok {
			t.Errorf("ar is missing %q", key)
		}
	}

	arabicOnly := []string{".zero", ".two", ".few", ".many"}
	for key := range ar {
		skip := false
		for _, suffix := range arabicOnly {
			if strings.HasSuffix(key, suffix) {
				skip = true
			}
		}
		if _, ok := en[key]; !ok && !skip {
			t.Errorf("en is missing %q", key)
		}
	}
}

func TestIsValidLocale(t *testing.T) {
	tests := map[string]bool{
		"ar":    true,
		"en":    true,
		"de":    false,
		"ar-SA": false,
		"":      false,
	}
	for locale, valid := range tests {
		if got := IsValidLocale(locale); got != valid {
			t.Errorf("IsValidLocale(%q) = %v, want %v", locale, got, valid)
		}
	}
}

func TestLocaleDisplayName(t *testing.T) {
	if LocaleDisplayName("ar") != "العربية" {
		t.Errorf("unexpected ar display name %q", LocaleDisplayName("ar"))
	}
	if LocaleDisplayName("xx") != "xx" {
		t.Errorf("unknown locales should display as their code")
	}
}

func TestMatchLocale(t *testing.T) {
	tests := []struct {
		sysLocale string
		expected  string
	}{
		{"ar", "ar"},
		{"ar_SA", "ar"},
		{"ar_SA.UTF-8", "ar"},
		{"ar_EG.UTF-8@latin", "ar"},
		{"en_US.UTF-8", "en"},
		{"en-GB", "en"},
		{"de_DE:en_US", "en"},
		{"C", ""},
		{"POSIX", ""},
		{"fr_FR.UTF-8", ""},
	}

	for _, tt := range tests {
		t.Run(tt.sysLocale, func(t *testing.T) {
			if result := matchLocale(tt.sysLocale); result != tt.expected {
				t.Errorf("matchLocale(%q): expected %q, got %q", tt.sysLocale, tt.expected, result)
			}
		})
	}
}

func TestDetectSystemLocale(t *testing.T) {
	for _, v := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		t.Setenv(v, "")
	}

	if result := DetectSystemLocale(); result != DefaultLocale {
		t.Errorf("with no env vars, expected %q, got %q", DefaultLocale, result)
	}

	t.Setenv("LANG", "en_US.UTF-8")
	if result := DetectSystemLocale(); result != "en" {
		t.Errorf("with LANG=en_US.UTF-8, expected 'en', got %q", result)
	}

	t.Setenv("LC_ALL", "ar_SA.UTF-8")
	if result := DetectSystemLocale(); result != "ar" {
		t.Errorf("with LC_ALL=ar_SA.UTF-8, expected 'ar', got %q", result)
	}
}

func TestResolveLocale(t *testing.T) {
	for _, v := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		t.Setenv(v, "")
	}

	tests := []struct {
		name         string
		flagLocale   string
		configLocale string
		expected     string
	}{
		{"flag takes priority", "en", "ar", "en"},
		{"config when no flag", "", "en", "en"},
		{"invalid flag falls to config", "fr", "en", "en"},
		{"both empty uses system", "", "", DefaultLocale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := ResolveLocale(tt.flagLocale, tt.configLocale); result != tt.expected {
				t.Errorf("ResolveLocale(%q, %q): expected %q, got %q",
					tt.flagLocale, tt.configLocale, tt.expected, result)
			}
		})
	}
}

func TestGlobal(t *testing.T) {
	prev := Global()
	t.Cleanup(func() { SetGlobal(prev) })

	en := New(WithLocale("en"))
	SetGlobal(en)
	if Global() != en {
		t.Fatal("SetGlobal did not replace the instance")
	}
	if T("tabs.exams") != "Exams" {
		t.Errorf("unexpected global translation %q", T("tabs.exams"))
	}
	if TPlural("table.selected", 1) != "1 row selected" {
		t.Errorf("unexpected global plural %q", TPlural("table.selected", 1))
	}
}
