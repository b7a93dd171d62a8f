package themes

// Icons used by the table and the shell
var (
	IconCheck    = "✓"
	IconCross    = "✗"
	IconWarning  = "⚠"
	IconBullet   = "•"
	IconEllipsis = "…"

	// Checkbox cells
	IconBoxChecked = "[x]"
	IconBoxEmpty   = "[ ]"
	IconBoxPartial = "[-]"

	// Sort indicators
	IconSortAsc  = "▲"
	IconSortDesc = "▼"
	IconSortNone = "↕"

	// Pagination
	IconPagePrev = "‹"
	IconPageNext = "›"

	// Row cursor
	IconCursor = "▌"

	// Row actions
	IconDelete    = "⌫"
	IconPublish   = "↑"
	IconUnpublish = "↓"
	IconOpen      = "→"
)
