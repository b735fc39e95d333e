package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These values are chosen for polite crawling of production websites.
const (
	// DefaultTimeout is set to 30 seconds. Most pages respond well within
	// this window; anything slower is better reported as a fetch failure
	// than waited on.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxPages is the maximum number of pages to audit per site.
	// This prevents runaway crawling on large or infinitely-generating
	// sites. Users can override this via the --max-pages CLI flag.
	DefaultMaxPages = 50

	// DefaultConcurrency of 4 concurrent page fetches balances audit speed
	// against load on the target site. Higher values risk rate limiting.
	DefaultConcurrency = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "designlens"

	// DefaultCrawlDelay is the delay between requests during crawling.
	// This is a politeness setting to avoid overwhelming the audited site.
	// Can be adjusted via the --delay CLI flag.
	DefaultCrawlDelay = 500 * time.Millisecond

	// DefaultUserAgent identifies DesignLens in HTTP requests.
	// Using a descriptive User-Agent is good practice and allows operators
	// to identify auditor traffic in their logs.
	DefaultUserAgent = "DesignLens/1.0 (+https://github.com/designlens/designlens)"

	// DefaultMaxBodySize limits the maximum response body size to read.
	// 5MB is sufficient for most HTML pages while preventing memory
	// exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB
)

// Config holds all configuration options for DesignLens.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., CrawlConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
// If the configuration grows significantly, consider refactoring into sub-structs.
type Config struct {
	// Timeout is the HTTP timeout for each page fetch.
	// This applies to individual requests, not the overall audit duration.
	Timeout time.Duration

	// MaxPages is the maximum number of pages to audit per site.
	// This prevents runaway crawling on large or infinitely-generating sites.
	// A value of 0 means use the default (DefaultMaxPages).
	MaxPages int

	// Concurrency is the number of pages fetched and analyzed in parallel.
	// Higher values increase throughput but put more load on the target.
	Concurrency int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches the locations documented on FindConfigFile.
	ConfigFilePath string

	// SiteConfigs holds site-specific configurations loaded from the config file.
	// This is populated by LoadConfigFile and used during crawling.
	SiteConfigs *File

	// JSONReport enables JSON report output instead of human-readable format.
	// When true, outputs the full accumulated report as indented JSON.
	// Mutually exclusive with MarkdownReport and CSVReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of human-readable
	// format, with tables for the palette, inventory, and findings.
	// Mutually exclusive with JSONReport and CSVReport.
	MarkdownReport bool

	// CSVReport enables CSV output of the color usage table, suitable for
	// spreadsheet analysis. Mutually exclusive with the other formats.
	CSVReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// Targets is the list of site URLs to audit.
	// Must contain at least one http or https URL.
	Targets []string

	// DBDir is the directory path for storing the SQLite database.
	// When set, audit results are saved so later runs resume where the
	// previous one stopped.
	// Defaults to the XDG data directory (~/.local/share/designlens on Linux).
	DBDir string

	// Fresh discards any persisted report for the target domain before
	// auditing, forcing every page to be re-analyzed.
	Fresh bool

	// CrawlDelay is the delay between HTTP requests during crawling.
	// This is a "politeness" setting to avoid overwhelming the audited site.
	// Lower values may cause rate limiting or service disruption.
	CrawlDelay time.Duration

	// UserAgent is the User-Agent header sent with HTTP requests.
	// A descriptive User-Agent helps site operators identify auditor traffic.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Responses larger than this are truncated to prevent memory exhaustion.
	// Set to 0 to use the default (5MB).
	MaxBodySize int64
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, page caps).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Timeout:     DefaultTimeout,
		MaxPages:    DefaultMaxPages,
		Concurrency: DefaultConcurrency,
		CrawlDelay:  DefaultCrawlDelay,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// XDGDataDir returns the XDG data directory for DesignLens.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/designlens
// On macOS: ~/Library/Application Support/designlens
// On Windows: %LOCALAPPDATA%\designlens
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for DesignLens.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/designlens
// On macOS: ~/Library/Application Support/designlens
// On Windows: %APPDATA%\designlens
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for DesignLens.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.cache/designlens
// On macOS: ~/Library/Caches/designlens
// On Windows: %LOCALAPPDATA%\designlens\cache
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any auditing begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// We must have at least one site to audit
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}

	// Timeout must be positive; zero timeout would cause immediate failures
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	// Concurrency must be positive; zero would mean no fetching
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	// MaxPages must be positive; zero would audit nothing
	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}

	// At most one report format may be selected
	if err := c.ValidateReportFormat(); err != nil {
		return err
	}

	// CrawlDelay must be non-negative
	if c.CrawlDelay < 0 {
		return ErrInvalidCrawlDelay
	}

	// MaxBodySize must be non-negative if set
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}

// ValidateReportFormat checks that at most one report format is selected.
// Commands that render without crawling (and so have no targets to
// validate) call this instead of Validate.
func (c *Config) ValidateReportFormat() error {
	formats := 0
	for _, enabled := range []bool{c.JSONReport, c.MarkdownReport, c.CSVReport} {
		if enabled {
			formats++
		}
	}
	if formats > 1 {
		return ErrConflictingReportFormats
	}
	return nil
}
