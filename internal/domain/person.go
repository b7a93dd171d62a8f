package domain

import (
	"strings"
	"time"
)

// DateLayout is the display layout for dates: day/month/year.
const DateLayout = "02/01/2006"

// FormatDate renders t as dd/mm/yyyy in t's location. The zero time
// renders as "-".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(DateLayout)
}

// ParseDate parses a dd/mm/yyyy date or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Gender is a person's gender as stored: "M" or "F".
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// IsValid checks if the gender is valid.
func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// Label returns the display label. Anything other than male is shown as
// female.
func (g Gender) Label() string {
	if g == GenderMale {
		return "ذكر"
	}
	return "أنثى"
}

// Name is a person's first and last name.
type Name struct {
	First string `json:"first_name" yaml:"first_name"`
	Last  string `json:"last_name" yaml:"last_name"`
}

// Full returns "First Last", trimmed.
func (n Name) Full() string {
	return strings.TrimSpace(n.First + " " + n.Last)
}

// IsEmpty reports whether both parts are blank.
func (n Name) IsEmpty() bool {
	return strings.TrimSpace(n.First) == "" && strings.TrimSpace(n.Last) == ""
}

func validPhone(phone string) bool {
	if phone == "" {
		return true
	}
	digits := 0
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == ' ' || r == '-':
		default:
			return false
		}
	}
	return digits >= 7
}

func validEmail(email string) bool {
	if email == "" {
		return true
	}
	at := strings.IndexByte(email, '@')
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}
