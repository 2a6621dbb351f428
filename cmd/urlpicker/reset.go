package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-urlpicker/internal/app"
	"github.com/goliatone/go-urlpicker/internal/config"
	"github.com/goliatone/go-urlpicker/internal/logger"
	"github.com/goliatone/go-urlpicker/pkg/dialog/prompt"
	"github.com/goliatone/go-urlpicker/pkg/picker"
)

func newResetCmd(rt *runtime, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <field>",
		Short: "Clear the stored link of a field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field := args[0]
			return withBackend(cmd, rt, flags, func(cfg *config.Config, log logger.Logger, backend *app.Backend) error {
				// Reset never opens the dialog, so the prompt driver stays idle.
				ctrl, err := newController(cfg, log, backend, prompt.New(), picker.NewNoticeBuffer(0))
				if err != nil {
					return err
				}
				if err := ctrl.Reset(cmd.Context(), field); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s cleared\n", field)
				return err
			})
		},
	}
}
