package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"keyword-planner/internal/config"
	"keyword-planner/internal/service"
	"keyword-planner/pkg/ads"
	"keyword-planner/pkg/keywords"
	"keyword-planner/pkg/logger"
	"keyword-planner/pkg/storage"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type cliOptions struct {
	customerID   string
	keywordTexts []string
	locationIDs  []string
	languageID   string
	pageURL      string
	configPath   string
	output       string
	debug        bool
}

// ideaFetcher is the part of keywords.Fetcher the CLI drives
type ideaFetcher interface {
	Fetch(ctx context.Context, req keywords.Request) (*keywords.ResultSet, error)
}

// fetcherFactory builds a fetcher from configuration; the returned func
// releases its resources
type fetcherFactory func(ctx context.Context, cfg *config.Config) (ideaFetcher, func(), error)

func main() {
	// Global panic recovery so a crash still ends with a readable message
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "CRITICAL ERROR: application panic recovered: %v\n", r)
			os.Exit(exitFailure)
		}
	}()

	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, newAdsFetcher))
}

func newAdsFetcher(ctx context.Context, cfg *config.Config) (ideaFetcher, func(), error) {
	svc, err := service.NewKeywordService(ctx, cfg, ads.DefaultConnectionConfig())
	if err != nil {
		return nil, nil, err
	}
	return svc.Fetcher, svc.Close, nil
}

// listFlags take one or more values: each word after the flag, up to the
// next flag, is one value
var listFlags = map[string]string{
	"-k":              "keyword_texts",
	"--keyword_texts": "keyword_texts",
	"-l":              "location_ids",
	"--location_ids":  "location_ids",
}

// expandListArgs rewrites every word that follows a list flag into its own
// "--name=word" argument, keeping input order. Words not following a list
// flag stay positional.
func expandListArgs(args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	collecting := ""
	collected := 0

	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...), nil
		}
		if collecting != "" && !strings.HasPrefix(arg, "-") {
			out = append(out, "--"+collecting+"="+arg)
			collected++
			continue
		}
		if collecting != "" && collected == 0 {
			return nil, fmt.Errorf("%w: --%s expects at least one value", keywords.ErrInvalidArgument, collecting)
		}

		collecting, collected = "", 0
		if name, ok := listFlags[arg]; ok {
			collecting = name
			continue
		}
		// "-kword" and "--keyword_texts=word" carry their first value inline
		for flagArg, name := range listFlags {
			if strings.HasPrefix(arg, flagArg+"=") || (len(flagArg) == 2 && strings.HasPrefix(arg, flagArg) && len(arg) > 2) {
				collecting, collected = name, 1
				break
			}
		}
		out = append(out, arg)
	}

	if collecting != "" && collected == 0 {
		return nil, fmt.Errorf("%w: --%s expects at least one value", keywords.ErrInvalidArgument, collecting)
	}
	return out, nil
}

func parseArgs(args []string, stderr io.Writer) (*cliOptions, error) {
	opts := &cliOptions{}

	fs := flag.NewFlagSet("keyword-planner", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr, fs) }

	fs.StringVarP(&opts.customerID, "customer_id", "c", "", "The Google Ads customer ID (required)")
	fs.StringArrayVarP(&opts.keywordTexts, "keyword_texts", "k", nil, "Seed keywords; each word after the flag is one keyword")
	fs.StringSliceVarP(&opts.locationIDs, "location_ids", "l", nil, "Location criterion IDs (default 2392, Japan)")
	fs.StringVarP(&opts.languageID, "language_id", "i", "", "Language criterion ID (default 1005, Japanese)")
	fs.StringVarP(&opts.pageURL, "page_url", "p", "", "A URL of a page related to your business")
	fs.StringVar(&opts.configPath, "config", "", "Path to google-ads.yaml (default $GOOGLE_ADS_CONFIGURATION_FILE_PATH or /app/google-ads.yaml)")
	fs.StringVarP(&opts.output, "output", "o", "", "Write the JSON result to this file instead of stdout")
	fs.BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	expanded, err := expandListArgs(args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(expanded); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", keywords.ErrInvalidArgument, fs.Arg(0))
	}

	opts.customerID = strings.TrimSpace(opts.customerID)
	if opts.customerID == "" {
		return nil, fmt.Errorf("%w: -c/--customer_id is required", keywords.ErrInvalidArgument)
	}
	return opts, nil
}

// run executes one fetch and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer, newFetcher fetcherFactory) int {
	opts, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return exitUsage
	}

	cfg, err := config.NewManager().Load(config.ResolvePath(opts.configPath))
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return exitUsage
	}
	setupLogger(cfg.Logger, opts.debug, stderr)

	log := logger.GetLogger().WithField("component", "main")
	secureLog := logger.GetSecurityLogger()
	secureLog.SafeInfo("Configuration loaded", map[string]interface{}{
		"customer_id":   opts.customerID,
		"keyword_count": len(opts.keywordTexts),
		"location_ids":  strings.Join(opts.locationIDs, ","),
		"language_id":   opts.languageID,
		"page_url":      opts.pageURL,
	})

	fetcher, closeFetcher, err := newFetcher(ctx, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return exitUsage
	}
	defer closeFetcher()

	start := time.Now()
	result, err := fetcher.Fetch(ctx, keywords.Request{
		CustomerID:   opts.customerID,
		KeywordTexts: opts.keywordTexts,
		LocationIDs:  opts.locationIDs,
		LanguageID:   opts.languageID,
		PageURL:      opts.pageURL,
	})
	if err != nil {
		return reportError(stdout, stderr, log, err)
	}

	exporter := storage.NewDataExporter("  ")
	if opts.output != "" {
		err = exporter.ExportFile(opts.output, result)
	} else {
		err = exporter.Write(stdout, result)
	}
	if err != nil {
		log.WithError(err).Error("Failed to write result")
		return exitFailure
	}

	log.WithFields(map[string]interface{}{
		"ideas":    result.Len(),
		"duration": time.Since(start).String(),
	}).Info("Keyword ideas written")
	return exitOK
}

func reportError(stdout, stderr io.Writer, log *logger.Logger, err error) int {
	var fault *ads.Fault
	switch {
	case errors.Is(err, keywords.ErrInvalidArgument):
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return exitUsage
	case errors.As(err, &fault):
		keywords.ReportFault(stdout, fault)
		return exitFailure
	default:
		log.WithError(err).Error("Keyword idea request failed")
		return exitFailure
	}
}

// setupLogger keeps stdout free for the result document
func setupLogger(cfg logger.Config, debug bool, stderr io.Writer) {
	if debug {
		cfg.Level = "debug"
	}
	switch cfg.Output {
	case "", "stdout", "stderr":
		logger.SetLogger(logger.NewWithWriter(cfg, stderr))
	default:
		logger.SetLogger(logger.New(cfg))
	}
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Generates keyword ideas from seed keywords and/or a page URL.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintln(w, "    keyword-planner -c <customer id> [-k keyword ...] [-p page url] [OPTIONS]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "OPTIONS:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "ENVIRONMENT VARIABLES:")
	fmt.Fprintln(w, "    GOOGLE_ADS_CONFIGURATION_FILE_PATH   Location of google-ads.yaml")
	fmt.Fprintln(w, "    GOOGLE_ADS_<KEY>                     Overrides any key of google-ads.yaml")
	fmt.Fprintln(w, "    DEBUG, LOG_LEVEL                     Logging before configuration is read")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "EXAMPLES:")
	fmt.Fprintln(w, "    keyword-planner -c 1234567890 -k shoes boots")
	fmt.Fprintln(w, "    keyword-planner -c 1234567890 -p https://example.com -l 2840 -i 1000")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "EXIT STATUS:")
	fmt.Fprintln(w, "    0 success, 1 Google Ads API fault or other failure, 2 invalid arguments or configuration")
}
