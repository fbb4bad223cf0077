package config

import (
	"context"
	"errors"
	"strings"

	"github.com/thomas-vilte/repolens/internal/config"
	domainErrors "github.com/thomas-vilte/repolens/internal/errors"
	"github.com/thomas-vilte/repolens/internal/i18n"
	"github.com/thomas-vilte/repolens/internal/logger"
	"github.com/thomas-vilte/repolens/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newSetCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     t.GetMessage("config_set_usage", 0, nil),
		ArgsUsage: t.GetMessage("config_set_args_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			if command.Args().Len() < 2 {
				ui.PrintError(c.out, t.GetMessage("config_set_missing_args", 0, nil))
				return domainErrors.ErrConfigInvalid.WithError(errors.New("missing arguments"))
			}

			key := strings.ToLower(command.Args().Get(0))
			value := command.Args().Get(1)

			updated := *c.stored
			if err := updated.Set(key, value); err != nil {
				var appErr *domainErrors.AppError
				if errors.As(err, &appErr) {
					return err
				}
				return domainErrors.ErrConfigInvalid.WithError(err).WithContext("key", key)
			}

			if err := config.SaveConfig(&updated); err != nil {
				return err
			}
			*c.stored = updated

			logger.Info(ctx, "configuration updated", "key", key)
			ui.PrintSuccess(c.out, t.GetMessage("config_saved", 0, map[string]interface{}{"Key": key}))
			return nil
		},
	}
}
