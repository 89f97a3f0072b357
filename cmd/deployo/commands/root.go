package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/deployo/deployo/pkg/appctx"
	"github.com/deployo/deployo/pkg/config"
	"github.com/deployo/deployo/pkg/logging"
)

const cliExecutable = "deployo"

// NewCommand constructs the top-level deployo CLI command, wiring global
// flags, configuration loading, and logging setup.
func NewCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   cliExecutable,
		Short: "Deployo copies and packages workspace files to configured targets",
		Long: `Deployo deploys an ordered set of workspace files to named targets:
ZIP archives, local directories, or batches that fan out across several
targets at once. Targets are declared in a YAML config file.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")

			manager := config.NewManager()
			sources := config.DefaultSources(configFile, cmd.Flags(), debug)
			if err := manager.Load(sources); err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			cfg := manager.Get()
			if err := logging.ConfigureGlobalLogging(cfg.Log.Level, cfg.Log.Format); err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}
			log.Debug().Str("config", configFile).Int("targets", len(cfg.Targets)).Msg("configuration loaded")

			ctx := appctx.WithConfig(cmd.Context(), manager)
			cmd.SetContext(ctx)
			if root := cmd.Root(); root != nil && root != cmd {
				root.SetContext(ctx)
			}
			return nil
		},
	}

	cmd.SilenceUsage = true

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "deployo.yaml", "Configuration file path")
	cmd.PersistentFlags().String("output", "table", "Output format: table | json | yaml")

	config.BindFlags(cmd.PersistentFlags())

	cmd.AddGroup(&cobra.Group{ID: "deploy", Title: "Deploy Commands"})
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands"})

	cmd.AddCommand(NewDeployCommand())
	cmd.AddCommand(NewTargetsCommand())
	cmd.AddCommand(NewPluginsCommand())
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// configFromCommand extracts the loaded configuration from the command context.
func configFromCommand(cmd *cobra.Command) (config.Config, error) {
	manager, ok := appctx.Config(cmd.Context())
	if !ok {
		return config.Config{}, fmt.Errorf("configuration manager missing from context")
	}
	return manager.Get(), nil
}
