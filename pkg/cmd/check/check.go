package check

import (
	"github.com/spf13/cobra"
)

func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "commands to check race files and manifests",
	}

	cmd.AddCommand(NewCheckParseCmd())
	cmd.AddCommand(NewCheckManifestCmd())

	return cmd
}
