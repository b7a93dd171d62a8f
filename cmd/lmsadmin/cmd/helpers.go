package cmd

import (
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	clierrors "lmsadmin/internal/cli/errors"
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// confirm asks a yes/no question. Without a terminal on stdin the
// question cannot be asked and confirm fails; assumeYes skips it.
func confirm(in io.Reader, title, description string, assumeYes bool) error {
	if assumeYes {
		return nil
	}
	if !isTerminal(in) {
		return clierrors.New(clierrors.CodeUserCancelled, title).
			WithSuggestions("Use '--yes' to confirm without a prompt")
	}

	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("Cancel").
				Value(&ok),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return clierrors.UserCancelled().WithCause(err)
	}
	if !ok {
		return clierrors.UserCancelled()
	}
	return nil
}

// isCancelled reports whether err is a declined confirmation.
func isCancelled(err error) bool {
	rich := clierrors.AsRich(err)
	return rich != nil && rich.Code == clierrors.CodeUserCancelled
}
