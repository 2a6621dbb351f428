package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-urlpicker/internal/app"
	"github.com/goliatone/go-urlpicker/internal/config"
	"github.com/goliatone/go-urlpicker/internal/logger"
	"github.com/goliatone/go-urlpicker/pkg/dialog/prompt"
)

type rootFlags struct {
	configPath string
	logLevel   string
	pretty     bool
}

// runtime holds what the commands reach outside the process.
type runtime struct {
	out io.Writer
	// driver answers the link prompts; nil uses survey on the terminal.
	driver  prompt.PromptDriver
	backend func(ctx context.Context, cfg *config.Config, log logger.Logger) (*app.Backend, error)
}

func defaultRuntime() *runtime {
	return &runtime{out: os.Stdout, backend: app.OpenBackend}
}

func newRootCmd(rt *runtime) *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "urlpicker",
		Short:         "Link field picker server and terminal client",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(rt.out)

	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&flags.pretty, "pretty", false, "Human readable console logs")

	root.AddCommand(
		newServeCmd(rt, flags),
		newPickCmd(rt, flags),
		newResetCmd(rt, flags),
		newShowCmd(rt, flags),
	)
	return root
}

// setup loads configuration, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, flags *rootFlags) (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, nil, err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if cmd.Flags().Changed("pretty") {
		cfg.Log.Pretty = flags.pretty
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}

// withBackend opens the configured store for the duration of fn.
func withBackend(cmd *cobra.Command, rt *runtime, flags *rootFlags, fn func(cfg *config.Config, log logger.Logger, backend *app.Backend) error) error {
	cfg, log, err := setup(cmd, flags)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.Store.Driver != config.DriverRedis {
		log.Warn("store does not outlive this command", logger.String("driver", cfg.Store.Driver))
	}

	backend, err := rt.backend(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Error("store close failed", logger.Error(err))
		}
	}()
	return fn(cfg, log, backend)
}
