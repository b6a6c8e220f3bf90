package cli

import (
	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X".
var Version = "v0.1.0"

// NewVersionCmd builds the `version` command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(Version)
		},
	}
}

// NewRootCmd builds the top–level `prisma-uml` command.
func NewRootCmd() *cobra.Command {
	root := NewGenerateCmd()
	root.AddCommand(NewVersionCmd())
	return root
}
