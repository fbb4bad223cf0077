package analyze

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/thomas-vilte/repolens/internal/commands/completion_helper"
	cfg "github.com/thomas-vilte/repolens/internal/config"
	domainErrors "github.com/thomas-vilte/repolens/internal/errors"
	"github.com/thomas-vilte/repolens/internal/i18n"
	"github.com/thomas-vilte/repolens/internal/logger"
	"github.com/thomas-vilte/repolens/internal/models"
	"github.com/thomas-vilte/repolens/internal/ui"
	"github.com/urfave/cli/v3"
)

// Analyzer is the part of the analysis service the command depends on.
type Analyzer interface {
	Analyze(ctx context.Context, rawURL string, progress models.ProgressFunc) (models.AnalysisReport, error)
}

// Options are the per-run settings resolved from flags and configuration.
type Options struct {
	OutputPath  string
	Model       cfg.Model
	Language    string
	Concurrency int
}

// AnalyzerProvider builds an Analyzer for one run.
type AnalyzerProvider func(ctx context.Context, opts Options) (Analyzer, error)

type AnalyzeCommand struct {
	provider AnalyzerProvider
	in       io.Reader
	out      io.Writer
	errOut   io.Writer
}

type Option func(*AnalyzeCommand)

// WithIO replaces the standard streams, mainly for tests.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(c *AnalyzeCommand) {
		c.in = in
		c.out = out
		c.errOut = errOut
	}
}

func NewAnalyzeCommand(provider AnalyzerProvider, opts ...Option) *AnalyzeCommand {
	c := &AnalyzeCommand{
		provider: provider,
		in:       os.Stdin,
		out:      os.Stdout,
		errOut:   os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *AnalyzeCommand) CreateCommand(t *i18n.Translations, config *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"a"},
		Usage:     t.GetMessage("analyze_usage", 0, nil),
		ArgsUsage: t.GetMessage("analyze_args_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   t.GetMessage("analyze_output_usage", 0, nil),
				Value:   config.OutputPath,
			},
			&cli.StringFlag{
				Name:    "model",
				Aliases: []string{"m"},
				Usage:   t.GetMessage("analyze_model_usage", 0, nil),
				Value:   string(config.Model),
			},
			&cli.StringFlag{
				Name:    "lang",
				Aliases: []string{"l"},
				Usage:   t.GetMessage("analyze_lang_usage", 0, nil),
				Value:   config.Language,
			},
			&cli.IntFlag{
				Name:    "concurrency",
				Aliases: []string{"c"},
				Usage:   t.GetMessage("analyze_concurrency_usage", 0, nil),
				Value:   1,
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   t.GetMessage("analyze_quiet_usage", 0, nil),
			},
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return c.run(ctx, cmd, t)
		},
	}
}

func (c *AnalyzeCommand) run(ctx context.Context, cmd *cli.Command, t *i18n.Translations) error {
	log := logger.FromContext(ctx)
	start := time.Now()
	quiet := cmd.Bool("quiet")

	opts := Options{
		OutputPath:  cmd.String("output"),
		Model:       cfg.Model(cmd.String("model")),
		Language:    cmd.String("lang"),
		Concurrency: int(cmd.Int("concurrency")),
	}

	if opts.Concurrency < 1 {
		return domainErrors.ErrConfigInvalid.
			WithError(fmt.Errorf("%s", t.GetMessage("invalid_concurrency", 0, map[string]interface{}{"Value": opts.Concurrency})))
	}

	if !cfg.IsSupportedLanguage(opts.Language) {
		return domainErrors.ErrConfigInvalid.
			WithError(fmt.Errorf("unsupported language: %s", opts.Language))
	}

	if !quiet && !cfg.IsKnownModel(cfg.AIGemini, opts.Model) {
		ui.PrintWarning(c.errOut, t.GetMessage("unknown_model_warning", 0, map[string]interface{}{"Model": opts.Model}))
	}

	rawURL := strings.TrimSpace(cmd.Args().First())
	if rawURL == "" {
		var err error
		rawURL, err = c.promptURL(t)
		if err != nil {
			return err
		}
	}

	log.Info("executing analyze command",
		"url", rawURL,
		"model", opts.Model,
		"language", opts.Language,
		"concurrency", opts.Concurrency)

	analyzer, err := c.provider(ctx, opts)
	if err != nil {
		log.Error("failed to create analysis service",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return err
	}

	var spinner *ui.SmartSpinner
	progress := models.ProgressFunc(nil)
	if !quiet {
		spinner = ui.NewSmartSpinner(t.GetMessage("scanning_repo", 0, map[string]interface{}{"Repo": rawURL}))
		spinner.Start()
		progress = c.progressHandler(spinner, t, opts.Model)
	}

	rep, err := analyzer.Analyze(ctx, rawURL, progress)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		log.Error("analysis aborted",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return err
	}

	log.Info("analyze command finished",
		"degraded", rep.Degraded(),
		"duration_ms", time.Since(start).Milliseconds())

	if quiet {
		_, _ = fmt.Fprintln(c.out, strings.TrimRight(rep.Summary.Output, "\n"))
		return nil
	}

	c.printReport(rep, t, time.Since(start))
	return nil
}

func (c *AnalyzeCommand) promptURL(t *i18n.Translations) (string, error) {
	_, _ = fmt.Fprint(c.out, t.GetMessage("prompt_repo_url", 0, nil))

	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", domainErrors.ErrEmptyURL.WithError(err)
	}

	url := strings.TrimSpace(line)
	if url == "" {
		return "", domainErrors.ErrEmptyURL
	}
	return url, nil
}

func (c *AnalyzeCommand) progressHandler(spinner *ui.SmartSpinner, t *i18n.Translations, model cfg.Model) models.ProgressFunc {
	return func(event models.ProgressEvent) {
		switch event.Type {
		case models.ProgressScanStarted:
			spinner.UpdateMessage(t.GetMessage("scanning_repo", 0, map[string]interface{}{"Repo": event.Data["repo"]}))
		case models.ProgressDirectoryListed:
			path, _ := event.Data["path"].(string)
			if path == "" {
				path = "/"
			}
			spinner.UpdateMessage(t.GetMessage("directory_listed", 0, map[string]interface{}{"Path": path}))
		case models.ProgressFilesSelected:
			count, _ := event.Data["count"].(int)
			spinner.Log(t.GetMessage("files_selected", count, map[string]interface{}{
				"Count": count,
				"Total": event.Data["total"],
			}))
		case models.ProgressFileFetched:
			spinner.UpdateMessage(t.GetMessage("fetching_file", 0, map[string]interface{}{
				"Name":  event.Data["name"],
				"Index": event.Data["index"],
				"Total": event.Data["total"],
			}))
		case models.ProgressSummarizing:
			spinner.UpdateMessage(t.GetMessage("summarizing", 0, map[string]interface{}{"Model": model}))
		case models.ProgressResultWritten:
			spinner.UpdateMessage(t.GetMessage("result_written", 0, map[string]interface{}{"Path": event.Data["path"]}))
		default:
			if event.Message != "" {
				spinner.Log(event.Message)
			}
		}
	}
}

func (c *AnalyzeCommand) printReport(rep models.AnalysisReport, t *i18n.Translations, elapsed time.Duration) {
	if rep.Summary.Failure != nil {
		ui.PrintError(c.out, rep.Summary.Output)
		ui.HandleAppError(c.errOut, rep.Summary.Failure, t)
	} else {
		ui.PrintAnalysis(c.out, rep.Summary.Result, t)
		_, _ = fmt.Fprintln(c.out)
		ui.PrintSuccess(c.out, t.GetMessage("result_written", 0, map[string]interface{}{"Path": rep.Summary.OutputPath}))
	}

	ui.PrintDegradations(c.out, rep, t)

	if rep.Summary.Usage != nil {
		_, _ = fmt.Fprintln(c.out)
		ui.PrintTokenUsage(c.out, rep.Summary.Usage, t)
	}

	_, _ = fmt.Fprintln(c.out)
	ui.PrintDuration(c.out, t.GetMessage("analysis_done", 0, nil), elapsed)
}
