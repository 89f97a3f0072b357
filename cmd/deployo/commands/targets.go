package commands

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deployo/deployo/cmd/deployo/internal/format"
)

// NewTargetsCommand defines the 'targets' command listing configured targets.
func NewTargetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "targets",
		Short:   "List configured deployment targets",
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFromCommand(cmd)
			if err != nil {
				return err
			}

			outputMode, _ := cmd.Flags().GetString("output")
			f := format.New(os.Stdout, os.Stderr, format.OutputMode(outputMode), false, useColor())

			rows := make([][]string, 0, len(cfg.Targets))
			for _, t := range cfg.Targets {
				extra := t.Dir
				if t.Type == "batch" {
					extra = strings.Join(t.Targets, ", ")
				}
				rows = append(rows, []string{t.Name, t.Type, extra, t.Description})
			}

			if err := f.PrintTable([]string{"name", "type", "destination", "description"}, rows); err != nil {
				return err
			}
			return f.PrintSummary(strconv.Itoa(len(cfg.Targets)) + " targets configured")
		},
	}
}
