package cmd

import (
	"github.com/spf13/cobra"

	"lmsadmin/internal/cli/i18n"
	"lmsadmin/internal/cli/output"
	"lmsadmin/internal/version"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "version.short",
	Annotations: i18n.MarkForTranslation(),
	Args:        cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		out := newWriter(cmd)
		if out.Format() != output.FormatTable {
			return out.Write(info)
		}
		out.Printf("lmsadmin %s\n", info.String())
		out.Println(info.Full())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
