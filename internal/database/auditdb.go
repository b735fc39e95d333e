package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/designlens/designlens/internal/model"
)

// AuditDB provides SQLite-based storage for accumulated audit reports.
// It manages connection pooling and provides methods for CRUD operations.
//
// Design decision: We use a single database file for all audited domains
// rather than one file per domain. This keeps the Domains listing a plain
// query and simplifies backup/restore operations.
type AuditDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures AuditDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates an AuditDB at the specified path.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*AuditDB, error) {
	dbPath := filepath.Join(dbDir, "designlens.db")

	// Check if we should create the database or require it to exist
	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		// Ensure directory exists
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Build connection string
	// We use modernc.org/sqlite which uses a different connection string format.
	// When CreateIfNotExists is false, we use mode=rw to prevent creating new files.
	// When CreateIfNotExists is true, we use mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	// SQLite doesn't benefit from multiple connections for writes,
	// but multiple readers can improve performance
	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	adb := &AuditDB{
		db:     db,
		dbPath: dbPath,
	}

	// Enable WAL mode if requested
	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Create tables
	if err := adb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return adb, nil
}

// Close closes the database connection.
func (adb *AuditDB) Close() error {
	return adb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (adb *AuditDB) createTables() error {
	schema := `
	-- Audit reports store the accumulated report per domain as JSON.
	-- The (domain) uniqueness makes Save an upsert: every merged page
	-- replaces the previous snapshot of the same site.
	CREATE TABLE IF NOT EXISTS audit_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		domain TEXT NOT NULL UNIQUE,
		pages_analyzed INTEGER NOT NULL DEFAULT 0,
		report_json TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_reports_domain ON audit_reports(domain);
	CREATE INDEX IF NOT EXISTS idx_reports_updated ON audit_reports(updated_at);

	-- Audit snapshots keep one row per completed audit run, so a site's
	-- palette and contrast findings can be compared over time.
	CREATE TABLE IF NOT EXISTS audit_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		domain TEXT NOT NULL,
		pages_analyzed INTEGER NOT NULL DEFAULT 0,
		report_json TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_history_domain ON audit_history(domain);
	CREATE INDEX IF NOT EXISTS idx_history_created ON audit_history(created_at);
	`

	_, err := adb.db.ExecContext(context.Background(), schema)
	return err
}

// Save persists the accumulated report, replacing any previous report
// for its domain. It satisfies the audit session's store interface.
func (adb *AuditDB) Save(ctx context.Context, report *model.AccumulatedReport) error {
	if report == nil {
		return errors.New("nil report")
	}

	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	query := `
	INSERT INTO audit_reports (domain, pages_analyzed, report_json)
	VALUES (?, ?, ?)
	ON CONFLICT(domain) DO UPDATE SET
		pages_analyzed = excluded.pages_analyzed,
		report_json = excluded.report_json,
		updated_at = CURRENT_TIMESTAMP
	`

	if _, err := adb.db.ExecContext(ctx, query,
		report.Metadata.Domain,
		len(report.Metadata.PagesAnalyzed),
		string(reportJSON),
	); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// Load retrieves the accumulated report for domain. A domain that has
// never been audited returns (nil, nil), not an error.
func (adb *AuditDB) Load(ctx context.Context, domain string) (*model.AccumulatedReport, error) {
	query := `SELECT report_json FROM audit_reports WHERE domain = ?`

	var reportJSON string
	err := adb.db.QueryRowContext(ctx, query, domain).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	var report model.AccumulatedReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to deserialize report: %w", err)
	}
	return &report, nil
}

// Reset deletes the persisted report for domain. Resetting a domain
// without a report is a no-op. History snapshots are kept.
func (adb *AuditDB) Reset(ctx context.Context, domain string) error {
	if _, err := adb.db.ExecContext(ctx, `DELETE FROM audit_reports WHERE domain = ?`, domain); err != nil {
		return fmt.Errorf("failed to reset report: %w", err)
	}
	return nil
}

// Domains lists every audited domain, most recently updated first.
func (adb *AuditDB) Domains(ctx context.Context) ([]string, error) {
	query := `SELECT domain FROM audit_reports ORDER BY updated_at DESC`

	rows, err := adb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var domains []string
	for rows.Next() {
		var domain string
		if err := rows.Scan(&domain); err != nil {
			return nil, fmt.Errorf("failed to scan domain: %w", err)
		}
		domains = append(domains, domain)
	}
	return domains, rows.Err()
}

// SaveSnapshot appends the report to the domain's audit history.
// Called once per completed run, not per merged page.
func (adb *AuditDB) SaveSnapshot(ctx context.Context, report *model.AccumulatedReport) error {
	if report == nil {
		return errors.New("nil report")
	}

	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	query := `
	INSERT INTO audit_history (domain, pages_analyzed, report_json)
	VALUES (?, ?, ?)
	`

	if _, err := adb.db.ExecContext(ctx, query,
		report.Metadata.Domain,
		len(report.Metadata.PagesAnalyzed),
		string(reportJSON),
	); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// HistoryEntry is one archived audit run for a domain.
type HistoryEntry struct {
	// ID is the snapshot's row id.
	ID int64

	// Domain is the audited site.
	Domain string

	// PagesAnalyzed is the number of pages in the snapshot.
	PagesAnalyzed int

	// CreatedAt is when the snapshot was taken.
	CreatedAt time.Time
}

// History lists the archived runs for domain, newest first. The report
// bodies are not loaded; fetch one with LoadSnapshot when needed.
func (adb *AuditDB) History(ctx context.Context, domain string) ([]HistoryEntry, error) {
	query := `
	SELECT id, domain, pages_analyzed, created_at
	FROM audit_history
	WHERE domain = ?
	ORDER BY created_at DESC, id DESC
	`

	rows, err := adb.db.QueryContext(ctx, query, domain)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var entries []HistoryEntry
	for rows.Next() {
		var entry HistoryEntry
		var created string
		if err := rows.Scan(&entry.ID, &entry.Domain, &entry.PagesAnalyzed, &created); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entry.CreatedAt = parseTimestamp(created)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// LoadSnapshot retrieves one archived report by its history id.
func (adb *AuditDB) LoadSnapshot(ctx context.Context, id int64) (*model.AccumulatedReport, error) {
	query := `SELECT report_json FROM audit_history WHERE id = ?`

	var reportJSON string
	err := adb.db.QueryRowContext(ctx, query, id).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no snapshot with id %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var report model.AccumulatedReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to deserialize snapshot: %w", err)
	}
	return &report, nil
}

// parseTimestamp parses an SQLite datetime string. SQLite stores
// CURRENT_TIMESTAMP in "2006-01-02 15:04:05" UTC form; a failed parse
// returns the zero time rather than an error.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
	} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}
