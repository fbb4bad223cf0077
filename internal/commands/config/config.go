package config

import (
	"io"
	"os"

	"github.com/thomas-vilte/repolens/internal/commands/completion_helper"
	"github.com/thomas-vilte/repolens/internal/config"
	"github.com/thomas-vilte/repolens/internal/i18n"
	"github.com/urfave/cli/v3"
)

// ConfigCommandFactory builds "config show" and "config set". Show prints the
// effective configuration it is created with; set edits the stored one, so
// environment overrides are never written to disk.
type ConfigCommandFactory struct {
	stored *config.Config
	out    io.Writer
}

type Option func(*ConfigCommandFactory)

func WithOutput(w io.Writer) Option {
	return func(c *ConfigCommandFactory) {
		c.out = w
	}
}

func NewConfigCommandFactory(stored *config.Config, opts ...Option) *ConfigCommandFactory {
	c := &ConfigCommandFactory{
		stored: stored,
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *ConfigCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:          "config",
		Usage:         t.GetMessage("config_usage", 0, nil),
		ShellComplete: completion_helper.DefaultFlagComplete,
		Commands: []*cli.Command{
			c.newShowCommand(t, cfg),
			c.newSetCommand(t),
		},
	}
}
