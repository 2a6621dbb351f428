package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-urlpicker/internal/app"
	"github.com/goliatone/go-urlpicker/internal/config"
	"github.com/goliatone/go-urlpicker/internal/logger"
	"github.com/goliatone/go-urlpicker/pkg/dialog/prompt"
	"github.com/goliatone/go-urlpicker/pkg/link"
	"github.com/goliatone/go-urlpicker/pkg/picker"
	"github.com/goliatone/go-urlpicker/pkg/render"
)

func newPickCmd(rt *runtime, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "pick <field>",
		Short: "Edit a link field through terminal prompts",
		Long: `Ask for the URL, link text and new-tab flag of a field, seeded with its
stored value, and save the answers. The stored value is printed afterwards
in the form encoding a browser would submit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field := args[0]
			return withBackend(cmd, rt, flags, func(cfg *config.Config, log logger.Logger, backend *app.Backend) error {
				ctx := cmd.Context()
				notices := picker.NewNoticeBuffer(0)

				opts := []prompt.Option{prompt.WithLogger(log)}
				if rt.driver != nil {
					opts = append(opts, prompt.WithPromptDriver(rt.driver))
				}
				ctrl, err := newController(cfg, log, backend, prompt.New(opts...), notices)
				if err != nil {
					return err
				}

				current, err := backend.Store.Get(ctx, field)
				if err != nil {
					return fmt.Errorf("load %s: %w", field, err)
				}
				if _, err := ctrl.Open(ctx, field, current); err != nil {
					return err
				}
				if err := firstNotice(notices.Drain(field)); err != nil {
					return err
				}

				stored, err := backend.Store.Get(ctx, field)
				if err != nil {
					return fmt.Errorf("load %s: %w", field, err)
				}
				if stored.Equal(current) {
					log.Info("link unchanged", logger.String("field", field))
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), render.EncodeHiddenFields(link.HiddenFields(field, stored)))
				return err
			})
		},
	}
}

func newController(cfg *config.Config, log logger.Logger, backend *app.Backend, dialog picker.DialogProvider, notices *picker.NoticeBuffer) (*picker.Controller, error) {
	loc := app.Localize(cfg)
	return picker.New(backend.Store, dialog,
		picker.WithLoadTimeout(cfg.Dialog.LoadTimeout),
		picker.WithNotifier(notices),
		picker.WithLogger(log.With(logger.String("component", "picker"))),
		picker.WithLabels(app.PickerLabels(cfg, loc)),
		picker.WithHomeURL(cfg.HomeURL),
	)
}

func firstNotice(notices []picker.Notice) error {
	for _, notice := range notices {
		if notice.Err != nil {
			return notice.Err
		}
		return errors.New(notice.Message)
	}
	return nil
}
