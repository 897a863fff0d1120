package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, buildDate string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display dbtgen version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "dbtgen v%s\n", version)
			_, _ = fmt.Fprintf(out, "commit: %s\n", commit)
			_, _ = fmt.Fprintf(out, "built:  %s\n", buildDate)
			_, _ = fmt.Fprintln(out, "dbt project skeleton generator")
		},
	}
}
