package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/deployo/deployo/cmd/deployo/internal/format"
	"github.com/deployo/deployo/pkg/deploy"
)

// NewPluginsCommand defines the 'plugins' command listing registered backends.
func NewPluginsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "plugins",
		Short:   "List registered deployment plugins",
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			outputMode, _ := cmd.Flags().GetString("output")
			f := format.New(os.Stdout, os.Stderr, format.OutputMode(outputMode), false, useColor())

			plugins, err := deploy.InstantiateAll()
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(plugins))
			for _, p := range plugins {
				info := p.Info()
				rows = append(rows, []string{info.Type, info.APIVersion, info.Description})
			}
			return f.PrintTable([]string{"type", "api", "description"}, rows)
		},
	}
}
