package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/designlens/designlens/internal/audit"
	"github.com/designlens/designlens/internal/config"
	"github.com/designlens/designlens/internal/crawler"
	"github.com/designlens/designlens/internal/database"
	"github.com/designlens/designlens/internal/dom"
	"github.com/designlens/designlens/internal/log"
	"github.com/designlens/designlens/internal/model"
	"github.com/designlens/designlens/internal/pipeline"
	"github.com/designlens/designlens/internal/report"
)

// NewAuditCmd creates the audit command.
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit [url]",
		Short: "Audit the visual design system of a website",
		Long: `Audit crawls a website and analyzes every page for:
- Typography inventory (headings, body copy, buttons, links)
- Color palette and where each color is used
- WCAG contrast compliance of text/background pairs
- Accessibility issues (missing alt text, ghost buttons, empty links,
  heading level skips)

Results are merged into a persisted per-domain report, so auditing more
pages of the same site extends the report instead of replacing it.

Examples:
  # Audit a site with the default page limit
  designlens audit https://example.com

  # Audit several sites in one run
  designlens audit example.com example.org

  # Crawl more pages, politely
  designlens audit --max-pages 200 --delay 1s example.com

  # Output a Markdown report to a file
  designlens audit --markdown -o report.md example.com

  # Discard the persisted report and start over
  designlens audit --fresh example.com

Configuration file (.designlens) example:
  sites:
    example.com:
      cookie: "consent=accepted"
      headers:
        Authorization: "Bearer token"
      maxPages: 100
      ignorePatterns:
        - "/admin/*"`,
		Args: cobra.ArbitraryArgs,
		RunE: runAuditCmd,
	}

	// Crawl behavior flags
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for each request")
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		"Maximum number of pages to crawl per site")
	cmd.Flags().DurationP("delay", "d", config.DefaultCrawlDelay,
		"Politeness delay between requests per worker")
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of concurrent page fetches")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .designlens in the current directory, config.yml in the XDG config directory, or .designlens in the home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown and --csv)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json and --csv)")
	cmd.Flags().Bool("csv", false,
		"Output CSV color and contrast rows (mutually exclusive with --json and --markdown)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// Session flags
	cmd.Flags().Bool("fresh", false,
		"Ignore the persisted report and start a new audit session")

	return cmd
}

// runAuditCmd executes the audit command.
func runAuditCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAudit(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.MaxPages, err = cmd.Flags().GetInt("max-pages")
	if err != nil {
		return nil, err
	}

	cfg.CrawlDelay, err = cmd.Flags().GetDuration("delay")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load site-specific configurations from config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.SiteConfigs = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.CSVReport, err = cmd.Flags().GetBool("csv")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Fresh, err = cmd.Flags().GetBool("fresh")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Reports always persist to the XDG data directory
	cfg.DBDir = config.XDGDataDir()

	// Positional arguments are the sites to audit
	cfg.Targets = args

	return cfg, nil
}

// runAudit executes the audit across all configured targets.
func runAudit(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting audit",
		"targets", cfg.Targets,
		"maxPages", cfg.MaxPages,
		"concurrency", cfg.Concurrency,
	)

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()
	logger.Info("database opened", "dir", cfg.DBDir)

	for _, target := range cfg.Targets {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := auditTarget(ctx, cfg, db, target, logger); err != nil {
			logger.Error("audit failed", "target", target, "error", err)
			fmt.Fprintf(os.Stderr, "Audit error for %s: %v\n", target, err)
		}
	}

	return nil
}

// auditTarget crawls and analyzes one site, then renders its report.
func auditTarget(ctx context.Context, cfg *config.Config, db *database.AuditDB, target string, logger *slog.Logger) error {
	startURL, domain, err := normalizeTarget(target)
	if err != nil {
		return err
	}

	siteConfig := cfg.SiteConfigs.GetSiteConfig(domain)

	session := audit.NewSession(domain,
		audit.WithStore(db),
		audit.WithSessionLogger(logger),
	)
	if !cfg.Fresh {
		if err := session.Resume(ctx); err != nil {
			return fmt.Errorf("failed to resume session: %w", err)
		}
	}

	p := pipeline.New(
		pipeline.WithLogger(logger),
		pipeline.WithContinueOnError(true),
	)
	p.AddSteps(
		audit.NewInventoryStep(),
		audit.NewColorContrastStep(),
		audit.NewQualityStep(),
	)

	spider := newSpiderForTarget(cfg, siteConfig, logger)

	fmt.Printf("Auditing %s...\n", domain)
	startTime := time.Now()

	var (
		countMu  sync.Mutex
		analyzed int
		merged   int
	)
	visit := func(ctx context.Context, page *crawler.Page) error {
		doc, err := dom.Parse(bytes.NewReader(page.Body), page.URL)
		if err != nil {
			logger.Warn("unparseable page skipped", "url", page.URL, "error", err)
			return nil
		}

		result := model.NewPageResult(page.URL, page.Path, doc.Title)
		if err := p.Execute(ctx, doc, result); err != nil {
			return err
		}

		already, err := session.MergePage(ctx, result)
		if err != nil {
			return fmt.Errorf("failed to merge page %s: %w", page.URL, err)
		}

		countMu.Lock()
		analyzed++
		if !already {
			merged++
		}
		countMu.Unlock()
		return nil
	}

	if err := spider.Crawl(ctx, startURL, visit); err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	elapsed := time.Since(startTime)
	fmt.Printf("Analyzed %d pages (%d new) in %s\n\n", analyzed, merged, elapsed.Round(time.Millisecond))

	finalReport := session.Report()
	if err := db.SaveSnapshot(ctx, finalReport); err != nil {
		logger.Warn("failed to record audit snapshot", "domain", domain, "error", err)
	}

	return outputReport(cfg, finalReport)
}

// newSpiderForTarget builds a crawler configured from global and
// site-specific settings.
func newSpiderForTarget(cfg *config.Config, siteConfig config.SiteConfig, logger *slog.Logger) *crawler.Spider {
	maxPages := cfg.MaxPages
	if siteConfig.MaxPages > 0 {
		maxPages = siteConfig.MaxPages
	}

	opts := []crawler.SpiderOption{
		crawler.WithMaxPages(maxPages),
		crawler.WithConcurrency(cfg.Concurrency),
		crawler.WithDelay(cfg.CrawlDelay),
		crawler.WithSpiderUserAgent(cfg.UserAgent),
		crawler.WithSpiderMaxBodySize(cfg.MaxBodySize),
		crawler.WithSpiderLogger(logger),
	}
	if siteConfig.Cookie != "" {
		opts = append(opts, crawler.WithCookie(siteConfig.Cookie))
	}
	if len(siteConfig.Headers) > 0 {
		opts = append(opts, crawler.WithHeaders(siteConfig.Headers))
	}
	if len(siteConfig.IgnorePatterns) > 0 {
		opts = append(opts, crawler.WithIgnorePatterns(siteConfig.IgnorePatterns))
	}
	if len(siteConfig.FollowPatterns) > 0 {
		opts = append(opts, crawler.WithFollowPatterns(siteConfig.FollowPatterns))
	}

	client := &http.Client{Timeout: cfg.Timeout}
	return crawler.NewSpider(client, opts...)
}

// normalizeTarget turns a command-line target into a crawlable start URL
// and the domain the report is keyed by.
func normalizeTarget(target string) (startURL, domain string, err error) {
	raw := strings.TrimSpace(target)
	if raw == "" {
		return "", "", fmt.Errorf("empty target")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("invalid target %q: %w", target, err)
	}
	if u.Hostname() == "" {
		return "", "", fmt.Errorf("invalid target %q: no host", target)
	}

	return u.String(), strings.ToLower(u.Hostname()), nil
}

// outputReport renders the report in the requested format.
func outputReport(cfg *config.Config, auditReport *model.AccumulatedReport) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	writer := newReportWriter(cfg, output)
	_, err := writer.Write(auditReport)
	return err
}

// newReportWriter picks the writer matching the configured format.
func newReportWriter(cfg *config.Config, output *os.File) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	case cfg.CSVReport:
		return report.NewCSVWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}
