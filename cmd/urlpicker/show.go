package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-urlpicker/internal/app"
	"github.com/goliatone/go-urlpicker/internal/config"
	"github.com/goliatone/go-urlpicker/internal/logger"
	"github.com/goliatone/go-urlpicker/pkg/link"
)

type shownLink struct {
	URL     string `yaml:"url"`
	Anchor  string `yaml:"anchor,omitempty"`
	Blank   bool   `yaml:"blank"`
	Display string `yaml:"display,omitempty"`
}

func newShowCmd(rt *runtime, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show [field...]",
		Short: "Print stored links as YAML",
		Long:  "Print the stored links of the named fields, or of every field the store knows about.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd, rt, flags, func(cfg *config.Config, _ logger.Logger, backend *app.Backend) error {
				ctx := cmd.Context()
				fields := args
				if len(fields) == 0 {
					known, err := backend.Store.Fields(ctx)
					if err != nil {
						return fmt.Errorf("list fields: %w", err)
					}
					fields = known
				}

				out := make(map[string]shownLink, len(fields))
				for _, field := range fields {
					v, err := backend.Store.Get(ctx, field)
					if err != nil {
						return fmt.Errorf("load %s: %w", field, err)
					}
					out[field] = shownLink{
						URL:     v.URL,
						Anchor:  v.AnchorText,
						Blank:   v.OpenInNewTab,
						Display: link.DisplayURL(v, cfg.HomeURL),
					}
				}

				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(out); err != nil {
					return err
				}
				return enc.Close()
			})
		},
	}
}
