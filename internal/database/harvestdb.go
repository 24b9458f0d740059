package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"sirescan/internal/model"
)

// dbFileName is the database file created inside the data directory.
const dbFileName = "sirescan.db"

// HarvestDB stores completed harvest runs and their fee rows.
type HarvestDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures HarvestDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging. Recommended.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HarvestDB inside dbDir.
func Open(dbDir string, opts Options) (*HarvestDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

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

	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports one writer; a single connection avoids lock churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HarvestDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HarvestDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the schema if it doesn't exist.
func (hdb *HarvestDB) createTables() error {
	schema := `
	-- One row per completed harvest run
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL,
		first_page_year INTEGER NOT NULL,
		last_page_year INTEGER NOT NULL
	);

	-- One row per input sire per run, whether or not it resolved
	CREATE TABLE IF NOT EXISTS sires (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id),
		name TEXT NOT NULL,
		sale_year INTEGER,
		stallion_id TEXT,
		slug TEXT,
		strategy TEXT,
		pages_fetched INTEGER NOT NULL DEFAULT 0,
		pages_failed INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_sires_run ON sires(run_id);
	CREATE INDEX IF NOT EXISTS idx_sires_name ON sires(name);

	-- One row per harvested (fact-year, amount) pair
	CREATE TABLE IF NOT EXISTS fees (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sire_id INTEGER NOT NULL REFERENCES sires(id),
		fee_year INTEGER NOT NULL,
		amount INTEGER NOT NULL,
		UNIQUE(sire_id, fee_year)
	);

	CREATE INDEX IF NOT EXISTS idx_fees_sire ON fees(sire_id);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun persists a completed run with all its sires and fee rows in one
// transaction.
func (hdb *HarvestDB) SaveRun(ctx context.Context, run *model.RunReport) error {
	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, finished_at, first_page_year, last_page_year) VALUES (?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.FinishedAt.UTC().Format(time.RFC3339),
		run.FirstPageYear,
		run.LastPageYear,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for _, sire := range run.Sires {
		var stallionID, slug any
		if sire.ResolvedOK() {
			stallionID, slug = sire.Resolved.ID, sire.Resolved.Slug
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO sires (run_id, name, sale_year, stallion_id, slug, strategy, pages_fetched, pages_failed)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, sire.Sire, sire.SaleYear, stallionID, slug, sire.Strategy,
			sire.PagesFetched, sire.PagesFailed,
		)
		if err != nil {
			return fmt.Errorf("failed to insert sire %q: %w", sire.Sire, err)
		}
		sireID, err := res.LastInsertId()
		if err != nil {
			return err
		}

		for _, fee := range sire.Fees {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO fees (sire_id, fee_year, amount) VALUES (?, ?, ?)`,
				sireID, fee.Year, fee.Amount,
			); err != nil {
				return fmt.Errorf("failed to insert fee row for %q: %w", sire.Sire, err)
			}
		}
	}

	return tx.Commit()
}

// StoredFee is one fee row retrieved from history, annotated with the run
// it came from.
type StoredFee struct {
	RunID      int64
	RunStarted time.Time
	FeeYear    int
	Amount     int
}

// History returns every stored fee row for the named sire, newest run
// first, fee-years ascending within a run.
func (hdb *HarvestDB) History(ctx context.Context, sireName string) ([]StoredFee, error) {
	query := `
	SELECT r.id, r.started_at, f.fee_year, f.amount
	FROM fees f
	JOIN sires s ON s.id = f.sire_id
	JOIN runs r ON r.id = s.run_id
	WHERE s.name = ?
	ORDER BY r.id DESC, f.fee_year ASC
	`

	rows, err := hdb.db.QueryContext(ctx, query, sireName)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var fees []StoredFee
	for rows.Next() {
		var fee StoredFee
		var started string
		if err := rows.Scan(&fee.RunID, &started, &fee.FeeYear, &fee.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		fee.RunStarted = parseTimestamp(started)
		fees = append(fees, fee)
	}
	return fees, rows.Err()
}

// LatestFees returns the fee rows recorded for the named sire in the most
// recent run that produced any. It returns sql.ErrNoRows via a nil slice
// when no history exists.
func (hdb *HarvestDB) LatestFees(ctx context.Context, sireName string) ([]model.FactRow, error) {
	query := `
	SELECT f.fee_year, f.amount
	FROM fees f
	JOIN sires s ON s.id = f.sire_id
	WHERE s.name = ? AND s.run_id = (
		SELECT MAX(s2.run_id) FROM sires s2
		JOIN fees f2 ON f2.sire_id = s2.id
		WHERE s2.name = ?
	)
	ORDER BY f.fee_year ASC
	`

	rows, err := hdb.db.QueryContext(ctx, query, sireName, sireName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query latest fees: %w", err)
	}
	defer rows.Close()

	var fees []model.FactRow
	for rows.Next() {
		var fee model.FactRow
		if err := rows.Scan(&fee.Year, &fee.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan fee row: %w", err)
		}
		fees = append(fees, fee)
	}
	return fees, rows.Err()
}

// ListSires returns the distinct sire names with stored history, sorted.
func (hdb *HarvestDB) ListSires(ctx context.Context) ([]string, error) {
	rows, err := hdb.db.QueryContext(ctx,
		`SELECT DISTINCT name FROM sires ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sires: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan sire name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// parseTimestamp handles the timestamp formats SQLite may hand back.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
