package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deployo/deployo/pkg/version"
)

// NewVersionCommand defines the 'version' command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Print version information",
		GroupID: "core",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.Info())
		},
	}
}
