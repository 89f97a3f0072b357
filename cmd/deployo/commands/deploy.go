package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/deployo/deployo/cmd/deployo/internal/format"
	"github.com/deployo/deployo/pkg/deployexec"

	// Register built-in deployment backends.
	_ "github.com/deployo/deployo/pkg/backends/batch"
	_ "github.com/deployo/deployo/pkg/backends/localdir"
	_ "github.com/deployo/deployo/pkg/backends/ziparchive"
)

// NewDeployCommand defines the 'deploy' command.
func NewDeployCommand() *cobra.Command {
	var (
		targetName string
		progress   bool
	)

	cmd := &cobra.Command{
		Use:     "deploy [files...]",
		Short:   "Deploy files to a configured target",
		Long:    `Deploys the given files, in order, to the named target using every plugin matching the target's type.`,
		GroupID: "deploy",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.With().Str("command", "deploy").Logger()

			cfg, err := configFromCommand(cmd)
			if err != nil {
				return err
			}

			outputMode, _ := cmd.Flags().GetString("output")
			f := format.New(os.Stdout, os.Stderr, format.OutputMode(outputMode), false, useColor())

			// Ctrl-C flips the context; the pipeline polls it between files.
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc := deployexec.NewService()
			if progress {
				svc = svc.WithProgressSink(newProgressPrinter(os.Stderr, useColor()))
			}

			logger.Info().Str("target", targetName).Int("files", len(args)).Msg("starting deployment")

			res, runErr := svc.Run(ctx, cfg, deployexec.Params{
				TargetName: targetName,
				Files:      args,
			})
			if runErr != nil {
				logger.Error().Err(runErr).Msg("deployment failed")
				_ = f.PrintDeployFailure(runErr, deployexec.Suggestions(runErr))
				return runErr
			}

			return f.PrintDeploySummary(res)
		},
	}

	cmd.Flags().StringVarP(&targetName, "target", "t", "", "Name of the target to deploy to")
	cmd.Flags().BoolVar(&progress, "progress", false, "Print per-file progress while deploying")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func useColor() bool {
	return isatty.IsTerminal(os.Stdout.Fd())
}
