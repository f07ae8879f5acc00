package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/config"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/daemon"
	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/logger"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().StringVar(&configPath, "config", "./etc/", "Path to the configuration directory")
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	startCmd.Flags().BoolVar(
		&browseStatic,
		"browse",
		false,
		"Enable static file browsing (for development purposes only)",
	)

	startCmd.Flags().BoolVar(&dumpConfig, "dump-config", false, "Print the effective configuration and exit")

	rootCmd.AddCommand(startCmd)
}

var ( //nolint:gochecknoglobals
	configPath string // Path to the configuration directory

	cfg          config.Config
	devMode      bool
	browseStatic bool
	dumpConfig   bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the Go Accessibility Controls web service",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			var err error

			if cfg, err = config.ReadConfig(configPath); err != nil {
				return err
			}

			if devMode {
				cfg.DevMode = true
			}

			if browseStatic {
				cfg.Webserver.BrowseStatic = true
			}

			return logger.Init(cfg.Log)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dumpConfig {
				out, err := config.DumpConfig(cfg)
				if err != nil {
					return err
				}

				cmd.Print(out)

				return nil
			}

			d, err := daemon.New(&cfg)
			if err != nil {
				log.Error().Err(err).Msg("failed to start daemon")

				return err
			}

			return d.Start()
		},
	}
)
