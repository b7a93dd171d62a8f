package themes

import (
	"os"
	"strings"
)

// unicodeTerms are terminal names known to draw Unicode
var unicodeTerms = []string{
	"xterm-256color",
	"screen-256color",
	"tmux-256color",
	"alacritty",
	"kitty",
	"wezterm",
	"iterm",
	"vscode",
}

// DetectUnicode reports whether the terminal likely draws Unicode. A
// locale that names a non-UTF-8 charset wins over the terminal name.
func DetectUnicode() bool {
	for _, name := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		v := strings.ToLower(os.Getenv(name))
		if v == "" {
			continue
		}
		if strings.Contains(v, "utf-8") || strings.Contains(v, "utf8") {
			return true
		}
		if v == "c" || v == "posix" || strings.Contains(v, ".") {
			return false
		}
	}

	term := strings.ToLower(os.Getenv("TERM"))
	program := strings.ToLower(os.Getenv("TERM_PROGRAM"))
	for _, t := range unicodeTerms {
		if strings.Contains(term, t) || strings.Contains(program, t) {
			return true
		}
	}

	// Windows Terminal
	if os.Getenv("WT_SESSION") != "" {
		return true
	}

	return term != "dumb" && term != "linux"
}

// UseASCIIIcons replaces the icons with plain ASCII for terminals that
// cannot draw Unicode.
func UseASCIIIcons() {
	IconCheck = "v"
	IconCross = "x"
	IconWarning = "!"
	IconBullet = "*"
	IconEllipsis = "..."

	IconSortAsc = "^"
	IconSortDesc = "v"
	IconSortNone = "-"

	IconPagePrev = "<"
	IconPageNext = ">"

	IconCursor = ">"

	IconDelete = "x"
	IconPublish = "+"
	IconUnpublish = "-"
	IconOpen = ">"
}
