package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"ArticleCurator/internal/app"
	"ArticleCurator/internal/config"
	"ArticleCurator/internal/logging"
	"ArticleCurator/internal/preset"
	"ArticleCurator/internal/usecase"
)

type options struct {
	inputs       []string
	preset       string
	criteriaFile string
	strict       bool
	strictSet    bool
	envFile      string
	store        bool
	listPresets  bool
	publishRun   string
	publishURLs  []string
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "articlecurator:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	if _, err := config.LoadEnvFile(opts.envFile); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.strictSet {
		cfg.Filter.Strict = opts.strict
	}

	req := usecase.Request{Preset: opts.preset, Store: opts.store}
	if opts.criteriaFile != "" {
		criteria, err := preset.LoadCriteriaFile(opts.criteriaFile)
		if err != nil {
			return err
		}
		req.Criteria = &criteria
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	application, err := app.New(ctx, cfg, opts.inputs, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := application.Close(); cerr != nil {
			logger.Warn("close application", "error", cerr)
		}
	}()

	if opts.listPresets {
		for _, name := range application.PresetNames() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}

	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")

	if opts.publishRun != "" {
		n, err := application.MarkPublished(ctx, opts.publishRun, opts.publishURLs)
		if err != nil {
			return err
		}
		return encoder.Encode(publishOutput{RunID: opts.publishRun, Published: n})
	}

	result, err := application.Run(ctx, req)
	if err != nil {
		return err
	}
	return encoder.Encode(result)
}

type publishOutput struct {
	RunID     string `json:"run_id"`
	Published int64  `json:"published"`
}

func parseFlags(args []string) (options, error) {
	var opts options
	var inputs, urls string

	fs := flag.NewFlagSet("articlecurator", flag.ContinueOnError)
	fs.StringVar(&inputs, "input", "-", "comma separated JSON batch files, - reads stdin")
	fs.StringVar(&opts.preset, "preset", "", "preset name (default "+usecase.DefaultPreset+")")
	fs.StringVar(&opts.criteriaFile, "criteria", "", "YAML or JSON criteria file; overrides -preset")
	fs.BoolVar(&opts.strict, "strict", false, "drop records with missing or invalid fields")
	fs.StringVar(&opts.envFile, "env", "", "path to a .env file (default .env when present)")
	fs.BoolVar(&opts.store, "store", false, "persist the selection to Postgres")
	fs.BoolVar(&opts.listPresets, "list-presets", false, "print preset names and exit")
	fs.StringVar(&opts.publishRun, "mark-published", "", "run id whose selections to mark published (needs -urls and a database)")
	fs.StringVar(&urls, "urls", "", "comma separated article URLs for -mark-published")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "strict" {
			opts.strictSet = true
		}
	})

	opts.inputs = splitList(inputs)
	if len(opts.inputs) == 0 {
		return options{}, fmt.Errorf("at least one -input is required")
	}

	opts.publishURLs = splitList(urls)
	opts.publishRun = strings.TrimSpace(opts.publishRun)
	if opts.publishRun != "" && len(opts.publishURLs) == 0 {
		return options{}, fmt.Errorf("-mark-published needs at least one URL in -urls")
	}
	if opts.publishRun == "" && len(opts.publishURLs) > 0 {
		return options{}, fmt.Errorf("-urls is only valid with -mark-published")
	}
	if opts.publishRun != "" && opts.store {
		return options{}, fmt.Errorf("-mark-published and -store are mutually exclusive")
	}

	if opts.preset != "" && opts.criteriaFile != "" {
		return options{}, fmt.Errorf("-preset and -criteria are mutually exclusive")
	}
	return opts, nil
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
