package datatable

// BadgeClass is the style class of a status badge.
type BadgeClass string

const (
	BadgeWarning   BadgeClass = "bg-warning"
	BadgeSuccess   BadgeClass = "bg-success"
	BadgeDanger    BadgeClass = "bg-danger"
	BadgeSecondary BadgeClass = "bg-secondary"
	BadgeInfo      BadgeClass = "bg-info"
)

var statusBadges = map[string]BadgeClass{
	"قيد المراجعة": BadgeWarning,
	"مقبول":        BadgeSuccess,
	"مرفوض":        BadgeDanger,
	"نشطة":         BadgeSuccess,
	"مكتملة":       BadgeSecondary,
	"قريباً":       BadgeInfo,
}

// StatusBadgeClass maps a status label to its badge class. Unknown labels
// map to BadgeSecondary.
func StatusBadgeClass(status string) BadgeClass {
	if class, ok := statusBadges[status]; ok {
		return class
	}
	return BadgeSecondary
}
