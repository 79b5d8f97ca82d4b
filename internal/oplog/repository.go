// Package oplog persists a local, time-ordered history of DNS operations.
//
// Every record mutation (reconcile, status change, delete) is appended here
// with its outcome, so the running log survives restarts. Display is bounded (DisplayLimit); storage is pruned by age.
package oplog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/QsSama-W/aliddns/internal/database"
)

// Repository defines the persistence interface for operation entries.
type Repository interface {
	Save(entry *Entry) error
	List(limit int) ([]Entry, error)
	ListByOperation(operation string, limit int) ([]Entry, error)
	Prune(olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteRepository implements Repository backed by a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// Open creates or opens the operation log at the default path.
func Open() (*SQLiteRepository, error) {
	path, err := database.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("oplog: %w", err)
	}
	return OpenAt(path)
}

// OpenAt creates or opens a SQLite database at the given path.
func OpenAt(path string) (*SQLiteRepository, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("oplog: %w", err)
	}

	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) migrate() error {
	const ddl = `
        CREATE TABLE IF NOT EXISTS op_log (
            id          INTEGER PRIMARY KEY AUTOINCREMENT,
            timestamp   TEXT    NOT NULL,
            operation   TEXT    NOT NULL,
            domain      TEXT    NOT NULL DEFAULT '',
            record_id   TEXT    NOT NULL DEFAULT '',
            record_name TEXT    NOT NULL DEFAULT '',
            outcome     TEXT    NOT NULL DEFAULT '',
            detail      TEXT    NOT NULL DEFAULT '',
            duration_ms INTEGER NOT NULL DEFAULT 0
        );
        CREATE INDEX IF NOT EXISTS idx_op_log_timestamp ON op_log(timestamp);
        CREATE INDEX IF NOT EXISTS idx_op_log_operation ON op_log(operation);
        CREATE INDEX IF NOT EXISTS idx_op_log_domain ON op_log(domain);
    `
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("oplog: migration failed: %w", err)
	}
	return nil
}

// Save inserts a new operation entry.
func (r *SQLiteRepository) Save(entry *Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	result, err := r.db.Exec(`
        INSERT INTO op_log (timestamp, operation, domain, record_id, record_name, outcome, detail, duration_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Timestamp.Format(time.RFC3339Nano), entry.Operation, entry.Domain,
		entry.RecordID, entry.RecordName, entry.Outcome, entry.Detail, entry.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("oplog: insert failed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("oplog: failed to get last insert ID: %w", err)
	}
	entry.ID = id
	return nil
}

// List returns the most recent n entries, newest first.
func (r *SQLiteRepository) List(limit int) ([]Entry, error) {
	rows, err := r.db.Query(`
        SELECT id, timestamp, operation, domain, record_id, record_name, outcome, detail, duration_ms
        FROM op_log ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("oplog: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// ListByOperation returns the most recent n entries for an operation.
func (r *SQLiteRepository) ListByOperation(operation string, limit int) ([]Entry, error) {
	rows, err := r.db.Query(`
        SELECT id, timestamp, operation, domain, record_id, record_name, outcome, detail, duration_ms
        FROM op_log WHERE operation = ? ORDER BY timestamp DESC, id DESC LIMIT ?`, operation, limit)
	if err != nil {
		return nil, fmt.Errorf("oplog: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

// Prune deletes entries older than the given duration.
func (r *SQLiteRepository) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339Nano)
	result, err := r.db.Exec(`DELETE FROM op_log WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("oplog: delete failed: %w", err)
	}
	return result.RowsAffected()
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func scanRows(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var entry Entry
		var timestampStr string
		err := rows.Scan(
			&entry.ID, &timestampStr, &entry.Operation, &entry.Domain,
			&entry.RecordID, &entry.RecordName, &entry.Outcome, &entry.Detail, &entry.DurationMs,
		)
		if err != nil {
			return nil, fmt.Errorf("oplog: scan failed: %w", err)
		}
		entry.Timestamp, _ = time.Parse(time.RFC3339Nano, timestampStr)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
