package database

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/marcboeker/go-duckdb" // DuckDB driver
	_ "github.com/mattn/go-sqlite3"     // SQLite driver

	"github.com/courtdata/querydesk/internal/config"
	"github.com/courtdata/querydesk/internal/errors"
)

// ResultSet is the outcome of running one SQL statement: either an ordered
// row set with column names, or a rows-affected count for write statements.
// NULL values are kept distinct from empty strings (a nil cell).
type ResultSet struct {
	Columns      []string
	Rows         [][]any
	RowsAffected int64
}

// Runner is the database connection capability consumed by the validator and
// the ad-hoc run path: execute one statement, return rows or rows-affected.
type Runner interface {
	Run(ctx context.Context, sqlText string) (*ResultSet, error)
}

// DB wraps a pooled database/sql connection for one local database file
type DB struct {
	conn    *sql.DB
	driver  string
	timeout time.Duration
}

// Open opens the configured database file with pooled connections
func Open(cfg config.DatabaseConfig) (*DB, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeDatabase, "failed to create database directory")
	}

	conn, err := sql.Open(cfg.Driver, cfg.Path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTypeDatabase, "failed to open %s database", cfg.Driver)
	}

	conn.SetMaxOpenConns(cfg.MaxConnections)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)

	if idle, err := time.ParseDuration(cfg.ConnMaxIdleTime); err == nil {
		conn.SetConnMaxIdleTime(idle)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, errors.ErrTypeDatabase, "failed to ping database")
	}

	return &DB{
		conn:    conn,
		driver:  cfg.Driver,
		timeout: cfg.QueryTimeoutDuration(),
	}, nil
}

// New wraps an already-open connection pool
func New(conn *sql.DB, driver string, timeout time.Duration) *DB {
	return &DB{
		conn:    conn,
		driver:  driver,
		timeout: timeout,
	}
}

// Conn exposes the underlying connection pool
func (d *DB) Conn() *sql.DB {
	return d.conn
}

// Driver returns the driver name the connection was opened with
func (d *DB) Driver() string {
	return d.driver
}

// Close closes the connection pool
func (d *DB) Close() error {
	return d.conn.Close()
}

// Run executes one SQL statement. Row-returning statements yield columns and
// rows; everything else yields a rows-affected count.
func (d *DB) Run(ctx context.Context, sqlText string) (*ResultSet, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if returnsRows(sqlText) {
		return d.runQuery(ctx, sqlText)
	}

	result, err := d.conn.ExecContext(ctx, sqlText)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeQueryExecution, "statement failed")
	}

	affected, _ := result.RowsAffected()

	return &ResultSet{RowsAffected: affected}, nil
}

// returnsRows reports whether a statement is expected to produce a row set
func returnsRows(sqlText string) bool {
	upper := strings.ToUpper(strings.TrimSpace(sqlText))

	for _, prefix := range []string{"SELECT", "WITH", "PRAGMA", "EXPLAIN", "SHOW", "DESCRIBE"} {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}

	return false
}

func (d *DB) runQuery(ctx context.Context, sqlText string) (*ResultSet, error) {
	rows, err := d.conn.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeQueryExecution, "query failed")
	}
	defer rows.Close()

	return ScanRows(rows)
}

// ScanRows drains a row set into a ResultSet, normalizing driver byte slices
// to strings and preserving NULL as nil.
func ScanRows(rows *sql.Rows) (*ResultSet, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeQueryExecution, "failed to read result columns")
	}

	rs := &ResultSet{Columns: columns}

	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))

		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Wrap(err, errors.ErrTypeQueryExecution, "failed to scan result row")
		}

		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}

		rs.Rows = append(rs.Rows, values)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeQueryExecution, "result iteration failed")
	}

	return rs, nil
}
