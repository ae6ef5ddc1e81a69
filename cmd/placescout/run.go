package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ammarnisar/placescout/internal/config"
	"github.com/ammarnisar/placescout/internal/export"
	"github.com/ammarnisar/placescout/internal/export/csvfile"
	"github.com/ammarnisar/placescout/internal/export/jsonfile"
	"github.com/ammarnisar/placescout/internal/export/postgres"
	"github.com/ammarnisar/placescout/internal/export/sqlite"
	"github.com/ammarnisar/placescout/internal/export/xlsx"
	"github.com/ammarnisar/placescout/internal/extract"
	"github.com/ammarnisar/placescout/internal/fingerprint"
	"github.com/ammarnisar/placescout/internal/metrics"
	"github.com/ammarnisar/placescout/internal/pipeline"
	"github.com/ammarnisar/placescout/internal/report"
	"github.com/ammarnisar/placescout/internal/scrape"
	"github.com/ammarnisar/placescout/internal/serp"
	"github.com/ammarnisar/placescout/pkg/proxy"
	"github.com/ammarnisar/placescout/pkg/ratelimit"
	"github.com/ammarnisar/placescout/pkg/useragent"
)

var runFlags struct {
	configPath  string
	category    string
	locality    string
	output      string
	format      string
	dsn         string
	limit       int
	timeout     time.Duration
	rps         float64
	jitter      float64
	fp          string
	proxyFile   string
	details     bool
	skipRobots  bool
	summaryMode string
	metricsPort int
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one search-and-export pass",
	Long: `Fetches the result page for "<category> in <locality>", extracts a
record per entry, and writes all records to the configured output. The
output is replaced on every run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd)
	},
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.configPath, "config", "", "path to YAML config file")
	f.StringVar(&runFlags.category, "category", "", "business category to search for")
	f.StringVar(&runFlags.locality, "locality", "", "city or area to search in")
	f.StringVarP(&runFlags.output, "output", "o", "", "output file path (or sqlite path)")
	f.StringVar(&runFlags.format, "format", "", "export format: xlsx, csv, json, sqlite, postgres")
	f.StringVar(&runFlags.dsn, "dsn", "", "postgres connection string (format=postgres)")
	f.IntVar(&runFlags.limit, "limit", 0, "maximum results to request")
	f.DurationVar(&runFlags.timeout, "timeout", 0, "per-request timeout")
	f.Float64Var(&runFlags.rps, "rps", 0, "requests per second")
	f.Float64Var(&runFlags.jitter, "jitter", 0, "random delay fraction added between requests")
	f.StringVar(&runFlags.fp, "fingerprint", "", "TLS fingerprint profile: chrome, firefox, safari, go, random")
	f.StringVar(&runFlags.proxyFile, "proxy-file", "", "file with one proxy URL per line")
	f.BoolVar(&runFlags.details, "details", false, "fetch each result's page for extra details")
	f.BoolVar(&runFlags.skipRobots, "skip-robots", false, "do not consult robots.txt for detail pages")
	f.StringVar(&runFlags.summaryMode, "summary", "text", "run summary format: text or json")
	f.IntVar(&runFlags.metricsPort, "metrics-port", 0, "expose Prometheus metrics on this port")

	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.Default()

	if cfg.MetricsPort > 0 {
		srv := metrics.Start(cfg.MetricsPort)
		defer srv.Stop(context.Background())
		logger.Info("metrics server started", "port", cfg.MetricsPort)
	}

	fetcher, err := buildFetcher(cfg)
	if err != nil {
		return err
	}

	p := &pipeline.Pipeline{
		Provider: serp.NewGoogleScrape(fetcher, logger),
		Strategy: extract.GoogleLocal{},
		Backend:  nil,
		Format:   cfg.Format,
		Logger:   logger,
	}

	if cfg.FetchDetails {
		enricher := &pipeline.Enricher{
			Fetcher:   fetcher,
			UserAgent: "placescout",
			Logger:    logger,
		}
		if cfg.RespectRobots {
			enricher.Auditor = scrape.NewRobotsAuditor(fetcher, logger)
		}
		p.Enricher = enricher
	}

	backend, err := buildBackend(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open export backend: %w", err)
	}
	defer backend.Close()
	p.Backend = backend

	summary, err := p.Run(ctx, serp.Query{
		Category: cfg.Category,
		Locality: cfg.Locality,
		Limit:    cfg.Limit,
	})
	if err != nil {
		logger.Error("run failed", "kind", pipeline.KindOf(err).String(), "err", err)
		return err
	}

	if runFlags.summaryMode == "json" {
		return report.WriteJSON(os.Stdout, summary)
	}
	return report.WriteText(os.Stdout, summary)
}

// loadConfig layers: defaults, then the YAML file when given, then any flag
// the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if runFlags.configPath != "" {
		loaded, err := config.Load(runFlags.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("category") {
		cfg.Category = runFlags.category
	}
	if flags.Changed("locality") {
		cfg.Locality = runFlags.locality
	}
	if flags.Changed("output") {
		cfg.OutputPath = runFlags.output
	}
	if flags.Changed("format") {
		cfg.Format = runFlags.format
	}
	if flags.Changed("dsn") {
		cfg.PostgresDSN = runFlags.dsn
	}
	if flags.Changed("limit") {
		cfg.Limit = runFlags.limit
	}
	if flags.Changed("timeout") {
		cfg.Timeout = runFlags.timeout
	}
	if flags.Changed("rps") {
		cfg.RequestsPerSecond = runFlags.rps
	}
	if flags.Changed("jitter") {
		cfg.Jitter = runFlags.jitter
	}
	if flags.Changed("fingerprint") {
		cfg.Fingerprint = runFlags.fp
	}
	if flags.Changed("proxy-file") {
		cfg.ProxyFile = runFlags.proxyFile
	}
	if flags.Changed("details") {
		cfg.FetchDetails = runFlags.details
	}
	if flags.Changed("skip-robots") {
		cfg.RespectRobots = !runFlags.skipRobots
	}
	if flags.Changed("metrics-port") {
		cfg.MetricsPort = runFlags.metricsPort
	}
	return cfg, nil
}

func buildFetcher(cfg config.Config) (*scrape.Fetcher, error) {
	fc := scrape.FetchConfig{
		Timeout:      cfg.Timeout,
		MaxRedirects: 5,
		UseCookieJar: true,
		UAPool:       useragent.NewPool(cfg.UserAgents),
		Fingerprint:  fingerprint.Profile(cfg.Fingerprint),
	}
	if cfg.RequestsPerSecond > 0 {
		fc.Limiter = ratelimit.NewLimiter(cfg.RequestsPerSecond, cfg.Jitter)
	}
	if cfg.ProxyFile != "" {
		pool := proxy.NewPool(proxy.Config{})
		if err := pool.LoadFile(cfg.ProxyFile); err != nil {
			return nil, fmt.Errorf("load proxies: %w", err)
		}
		fc.ProxyPool = pool
	}
	return scrape.NewFetcher(fc)
}

func buildBackend(ctx context.Context, cfg config.Config) (export.Backend, error) {
	switch cfg.Format {
	case config.FormatXLSX:
		return xlsx.New(cfg.OutputPath), nil
	case config.FormatCSV:
		return csvfile.New(cfg.OutputPath), nil
	case config.FormatJSON:
		return jsonfile.New(cfg.OutputPath), nil
	case config.FormatSQLite:
		return sqlite.New(cfg.OutputPath)
	case config.FormatPostgres:
		return postgres.New(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown format %q", cfg.Format)
	}
}
