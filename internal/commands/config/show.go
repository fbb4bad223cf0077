package config

import (
	"context"
	"fmt"

	"github.com/thomas-vilte/repolens/internal/config"
	"github.com/thomas-vilte/repolens/internal/i18n"
	"github.com/thomas-vilte/repolens/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, effective *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config_show_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			ui.PrintSectionBanner(c.out, t.GetMessage("config_title", 0, nil))
			ui.PrintKeyValue(c.out, t.GetMessage("config_file", 0, nil), c.stored.PathFile)
			_, _ = fmt.Fprintln(c.out)

			for _, pair := range effective.Masked() {
				ui.PrintKeyValue(c.out, pair[0], pair[1])
			}
			return nil
		},
	}
}
