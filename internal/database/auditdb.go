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

	"github.com/acessolab/a11yscan/internal/model"
)

// AuditDB provides SQLite-based storage for evaluation reports. Keeping
// the history lets the history subcommand show how a site's score and
// issues evolved between audits.
type AuditDB struct {
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures AuditDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better read performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates an AuditDB in the given directory.
// With CreateIfNotExists the directory and database file are created;
// without it a missing database is an error.
func Open(dbDir string, opts Options) (*AuditDB, error) {
	dbPath := filepath.Join(dbDir, "a11yscan.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	adb := &AuditDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

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
	-- Audits store complete evaluation reports as JSON plus the columns
	-- needed to list and compare them without decoding the report.
	CREATE TABLE IF NOT EXISTS audits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		report_id TEXT NOT NULL,
		url TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		score INTEGER NOT NULL,
		total_issues INTEGER NOT NULL,
		severity_summary TEXT,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_audits_url ON audits(url);
	CREATE INDEX IF NOT EXISTS idx_audits_timestamp ON audits(timestamp);
	`

	_, err := adb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveAudit persists a finalized report.
func (adb *AuditDB) SaveAudit(ctx context.Context, report *model.Report) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	summaryJSON, err := json.Marshal(report.SeverityCounts)
	if err != nil {
		return fmt.Errorf("failed to serialize severity summary: %w", err)
	}

	query := `
	INSERT INTO audits (report_id, url, score, total_issues, severity_summary, report_json)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = adb.db.ExecContext(ctx, query,
		report.ID,
		report.URL,
		report.Score,
		report.TotalIssues,
		string(summaryJSON),
		string(reportJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save audit: %w", err)
	}

	return nil
}

// GetLatestAudit retrieves the most recent report for a URL.
// It returns nil without error when the URL was never audited.
func (adb *AuditDB) GetLatestAudit(ctx context.Context, url string) (*model.Report, error) {
	query := `
	SELECT report_json FROM audits
	WHERE url = ?
	ORDER BY id DESC
	LIMIT 1
	`

	var reportJSON string
	err := adb.db.QueryRowContext(ctx, query, url).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get audit: %w", err)
	}

	var report model.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// GetAuditHistory retrieves all reports for a URL, most recent first.
func (adb *AuditDB) GetAuditHistory(ctx context.Context, url string) ([]*model.Report, error) {
	query := `
	SELECT report_json FROM audits
	WHERE url = ?
	ORDER BY id DESC
	`

	rows, err := adb.db.QueryContext(ctx, query, url)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit history: %w", err)
	}
	defer rows.Close()

	var reports []*model.Report
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan audit: %w", err)
		}

		var report model.Report
		if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
			continue // Skip malformed reports
		}
		reports = append(reports, &report)
	}

	return reports, rows.Err()
}

// GetAuditByID retrieves a report by its database row id.
// It returns nil without error when the id does not exist.
func (adb *AuditDB) GetAuditByID(ctx context.Context, id int64) (*model.Report, error) {
	query := `
	SELECT report_json FROM audits
	WHERE id = ?
	`

	var reportJSON string
	err := adb.db.QueryRowContext(ctx, query, id).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get audit: %w", err)
	}

	var report model.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// ListAuditedURLs returns every URL with at least one stored audit.
func (adb *AuditDB) ListAuditedURLs(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT url FROM audits
	ORDER BY url
	`

	rows, err := adb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list audited URLs: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan URL: %w", err)
		}
		urls = append(urls, url)
	}

	return urls, rows.Err()
}

// AuditMetadata summarizes a stored audit without the full report.
type AuditMetadata struct {
	// ID is the database row id of the audit.
	ID int64

	// URL is the audited address.
	URL string

	// Timestamp is when the audit ran.
	Timestamp time.Time

	// Score is the overall score of the audit.
	Score int

	// TotalIssues is the number of issues found.
	TotalIssues int

	// SeveritySummary maps severity names to issue counts.
	SeveritySummary map[string]int
}

// GetAuditMetadata retrieves audit summaries for a URL, most recent
// first. This avoids decoding full reports when only the listing is
// needed.
func (adb *AuditDB) GetAuditMetadata(ctx context.Context, url string) ([]AuditMetadata, error) {
	query := `
	SELECT id, url, timestamp, score, total_issues, severity_summary
	FROM audits
	WHERE url = ?
	ORDER BY id DESC
	`

	rows, err := adb.db.QueryContext(ctx, query, url)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit metadata: %w", err)
	}
	defer rows.Close()

	var results []AuditMetadata
	for rows.Next() {
		var meta AuditMetadata
		var timestamp, summaryJSON string

		if err := rows.Scan(
			&meta.ID,
			&meta.URL,
			&timestamp,
			&meta.Score,
			&meta.TotalIssues,
			&summaryJSON,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit metadata: %w", err)
		}

		meta.Timestamp = parseTimestamp(timestamp)
		if summaryJSON != "" {
			if err := json.Unmarshal([]byte(summaryJSON), &meta.SeveritySummary); err != nil {
				return nil, fmt.Errorf("failed to parse severity summary: %w", err)
			}
		}
		results = append(results, meta)
	}

	return results, rows.Err()
}

// timestampFormats contains the timestamp formats SQLite may return.
// The order matters: more specific formats come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp parses a timestamp string trying each SQLite format.
// If parsing fails with all formats, returns the zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
