package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/thomas-vilte/repolens/internal/ai"
	"github.com/thomas-vilte/repolens/internal/ai/gemini"
	"github.com/thomas-vilte/repolens/internal/commands/analyze"
	configcmd "github.com/thomas-vilte/repolens/internal/commands/config"
	"github.com/thomas-vilte/repolens/internal/commands/registry"
	cfg "github.com/thomas-vilte/repolens/internal/config"
	domainErrors "github.com/thomas-vilte/repolens/internal/errors"
	"github.com/thomas-vilte/repolens/internal/filter"
	"github.com/thomas-vilte/repolens/internal/i18n"
	"github.com/thomas-vilte/repolens/internal/logger"
	"github.com/thomas-vilte/repolens/internal/models"
	"github.com/thomas-vilte/repolens/internal/services"
	"github.com/thomas-vilte/repolens/internal/ui"
	"github.com/thomas-vilte/repolens/internal/vcs/github"
	"github.com/thomas-vilte/repolens/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, translations, err := initializeApp()
	if err != nil {
		ui.HandleAppError(os.Stderr, err, nil)
		os.Exit(1)
	}

	if err := app.Run(ctx, os.Args); err != nil {
		ui.StopActiveSpinner()
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		ui.HandleAppError(os.Stderr, err, translations)
		os.Exit(1)
	}
}

func initializeApp() (*cli.Command, *i18n.Translations, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("could not resolve the home directory: %w", err)
	}

	fileCfg, err := cfg.LoadConfig(homeDir)
	if err != nil {
		return nil, nil, err
	}
	runtimeCfg := fileCfg.WithEnv(os.LookupEnv)

	translations, err := i18n.NewTranslations(runtimeCfg.Language, "")
	if err != nil {
		return nil, nil, domainErrors.ErrConfigInvalid.WithError(err)
	}

	registerCommand := registry.NewRegistry(runtimeCfg, translations)

	if err := registerCommand.Register("analyze", analyze.NewAnalyzeCommand(newAnalyzerProvider(runtimeCfg))); err != nil {
		return nil, nil, err
	}

	if err := registerCommand.Register("config", configcmd.NewConfigCommandFactory(fileCfg)); err != nil {
		return nil, nil, err
	}

	return &cli.Command{
		Name:        "repolens",
		Usage:       translations.GetMessage("app_usage", 0, nil),
		Version:     version.FullVersion(),
		Description: translations.GetMessage("app_description", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: translations.GetMessage("flag_debug_usage", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: translations.GetMessage("flag_verbose_usage", 0, nil),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logger.Initialize(cmd.Bool("debug"), cmd.Bool("verbose"))
			return logger.WithLogger(ctx, logger.FromContext(ctx)), nil
		},
		Commands:              registerCommand.CreateCommands(),
		EnableShellCompletion: true,
	}, translations, nil
}

// newAnalyzerProvider wires the GitHub reader and the Gemini summarizer for
// one run. Flag values override the loaded configuration.
func newAnalyzerProvider(base *cfg.Config) analyze.AnalyzerProvider {
	return func(ctx context.Context, opts analyze.Options) (analyze.Analyzer, error) {
		runCfg := *base
		runCfg.Model = opts.Model
		runCfg.Language = opts.Language

		client := github.NewGitHubClient(runCfg.GitHubToken)

		summarizerProvider := func(ctx context.Context, repo models.RepoRef) (ai.RepoSummarizer, error) {
			summarizer, err := gemini.NewGeminiRepoSummarizer(ctx, &runCfg, gemini.WithRepoName(repo.String()))
			if err != nil {
				return nil, err
			}
			return summarizer, nil
		}

		return services.NewAnalysisService(
			services.WithRepositoryReader(client),
			services.WithRelevanceFilter(filter.New(runCfg.RelevantSuffixes...)),
			services.WithSummarizerProvider(summarizerProvider),
			services.WithOutputPath(opts.OutputPath),
			services.WithConcurrency(opts.Concurrency),
		), nil
	}
}
