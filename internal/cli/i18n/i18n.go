// Package i18n translates the command tree of the CLI.
//
// Commands carry translation keys instead of strings:
//
//	cmd := &cobra.Command{
//	    Use:         "seed",
//	    Short:       "seed.short",
//	    Annotations: i18n.MarkForTranslation(),
//	}
//
// Once the locale is known, TranslateCommands replaces every key found
// under "cmd." in the locale files:
//
//	i18n.TranslateCommands(rootCmd, tr)
//
// Keys follow the command path: cmd.<path>.short, cmd.<path>.long,
// cmd.<path>.example and cmd.<path>.flags.<flag>. Nested commands use
// dots, as in cmd.db.migrate.short.
package i18n

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	tuii18n "lmsadmin/internal/tui/i18n"
)

// AnnotationKey marks commands for translation.
const AnnotationKey = "i18n"

// TranslateCommands translates cmd and its children that carry the i18n
// annotation. A nil tr uses the global instance.
func TranslateCommands(cmd *cobra.Command, tr *tuii18n.I18n) {
	if tr == nil {
		tr = tuii18n.Global()
	}
	translateCommand(cmd, tr)
	for _, child := range cmd.Commands() {
		TranslateCommands(child, tr)
	}
}

func translateCommand(cmd *cobra.Command, tr *tuii18n.I18n) {
	if cmd.Annotations == nil || cmd.Annotations[AnnotationKey] != "true" {
		return
	}

	for _, field := range []*string{&cmd.Short, &cmd.Long, &cmd.Example} {
		if *field == "" {
			continue
		}
		if key := "cmd." + *field; tr.Has(key) {
			*field = tr.T(key)
		}
	}

	translateFlags(cmd, tr)
}

// translateFlags translates flag usage strings. The root command name is
// not part of the key.
func translateFlags(cmd *cobra.Command, tr *tuii18n.I18n) {
	path := commandPath(cmd)

	visit := func(f *pflag.Flag) {
		if key := "cmd." + path + ".flags." + f.Name; tr.Has(key) {
			f.Usage = tr.T(key)
		}
	}
	cmd.Flags().VisitAll(visit)
	cmd.PersistentFlags().VisitAll(visit)
}

// commandPath returns the dotted key path of cmd: "root" for the root
// command, otherwise the names below the root.
func commandPath(cmd *cobra.Command) string {
	if !cmd.HasParent() {
		return "root"
	}
	parts := strings.Fields(cmd.CommandPath())
	return strings.Join(parts[1:], ".")
}

// MarkForTranslation returns a map with the i18n annotation set.
func MarkForTranslation() map[string]string {
	return map[string]string{AnnotationKey: "true"}
}

// MergeAnnotations merges i18n annotation with existing annotations.
func MergeAnnotations(existing map[string]string) map[string]string {
	if existing == nil {
		return MarkForTranslation()
	}
	existing[AnnotationKey] = "true"
	return existing
}
