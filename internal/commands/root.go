package commands

import (
	"github.com/spf13/cobra"

	"github.com/bankview/bankview/internal/buildinfo"
	"github.com/bankview/bankview/internal/config"
	"github.com/bankview/bankview/internal/loader"
	"github.com/bankview/bankview/internal/logger"
)

// app holds what subcommands share once the root command has run its setup.
type app struct {
	configPath string
	cfg        *config.Config
	registry   *loader.Registry
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{registry: loader.DefaultRegistry()}

	rootCmd := &cobra.Command{
		Use:     "bankview",
		Short:   "Browse, filter and mask bank transactions",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadOrDefault(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg

			log := logger.New(cmd.ErrOrStderr(), cfg.Log.Level)
			cmd.SetContext(logger.WithContext(cmd.Context(), log))
			log.Debug().Str("config", a.configPath).Str("data_dir", cfg.Data.Dir).Msg("configuration loaded")
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.FileName, "path to config file")

	rootCmd.AddCommand(
		newInitCommand(),
		newShowCommand(a),
		newStatsCommand(a),
		newFilesCommand(a),
		newMaskCommand(),
		newDateCommand(),
		newCardsCommand(),
		newInteractiveCommand(a),
	)

	return rootCmd
}
