package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-urlpicker/internal/app"
	"github.com/goliatone/go-urlpicker/internal/logger"
)

func newServeCmd(rt *runtime, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the form page and the link dialog endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			log.Info("configuration loaded", logger.String("config", flags.configPath))

			backend, err := rt.backend(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			a, err := app.New(cfg, log, backend, version)
			if err != nil {
				_ = backend.Close()
				return err
			}
			return a.Run()
		},
	}
}
