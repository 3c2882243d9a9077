package schema

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/courtdata/querydesk/internal/database"
	"github.com/courtdata/querydesk/internal/errors"
	"github.com/courtdata/querydesk/internal/logging"
)

// identPattern matches a plain SQL identifier. PRAGMA and COUNT statements do
// not support parameterized table names, so names are validated before being
// interpolated.
var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Introspector builds Schema snapshots from a live connection
type Introspector struct {
	db         *database.DB
	sampleRows int
}

// NewIntrospector creates an introspector over the given connection. The
// sample row count bounds the per-table preview fetch.
func NewIntrospector(db *database.DB, sampleRows int) *Introspector {
	return &Introspector{db: db, sampleRows: sampleRows}
}

// Snapshot enumerates all user tables and fetches column metadata, a row
// count, and a bounded sample for each. Per-table failures are captured in
// the table's Error field; only a missing connection or a failed table
// enumeration aborts the snapshot.
func (in *Introspector) Snapshot(ctx context.Context) (*Schema, error) {
	if in.db == nil {
		return nil, errors.NewSchemaUnavailableError("no database connection", nil)
	}

	names, err := in.tableNames(ctx)
	if err != nil {
		return nil, errors.NewSchemaUnavailableError("table enumeration failed", err)
	}

	snapshot := &Schema{
		Tables:  make(map[string]TableInfo, len(names)),
		TakenAt: time.Now(),
	}

	for _, name := range names {
		snapshot.Tables[name] = in.introspectTable(ctx, name)
	}

	logging.WithField("tables", len(snapshot.Tables)).Debug("built schema snapshot")

	return snapshot, nil
}

// tableNames enumerates user tables, excluding system tables
func (in *Introspector) tableNames(ctx context.Context) ([]string, error) {
	var query string

	switch in.db.Driver() {
	case "duckdb":
		query = `SELECT table_name FROM information_schema.tables
			WHERE table_schema = 'main' ORDER BY table_name`
	default:
		query = `SELECT name FROM sqlite_master
			WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`
	}

	rows, err := in.db.Conn().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}

		names = append(names, name)
	}

	return names, rows.Err()
}

func (in *Introspector) introspectTable(ctx context.Context, name string) TableInfo {
	info := TableInfo{Name: name}

	if !identPattern.MatchString(name) {
		info.Error = fmt.Sprintf("unsupported table name: %s", name)
		return info
	}

	columns, err := in.tableColumns(ctx, name)
	if err != nil {
		info.Error = err.Error()
		logging.WithField("table", name).WithError(err).Warn("table introspection failed")

		return info
	}

	info.Columns = columns

	// Count and sample are independent attempts; a failure on one does not
	// suppress the other, and the first error is the one kept.
	count, err := in.rowCount(ctx, name)
	if err != nil {
		info.Error = err.Error()
	} else {
		info.RowCount = count
	}

	sample, err := in.sample(ctx, name)
	if err != nil {
		if info.Error == "" {
			info.Error = err.Error()
		}

		return info
	}

	info.Sample = sample

	return info
}

func (in *Introspector) tableColumns(ctx context.Context, name string) ([]ColumnInfo, error) {
	if in.db.Driver() == "duckdb" {
		return in.duckdbColumns(ctx, name)
	}

	return in.sqliteColumns(ctx, name)
}

func (in *Introspector) sqliteColumns(ctx context.Context, name string) ([]ColumnInfo, error) {
	rows, err := in.db.Conn().QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", name))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []ColumnInfo

	for rows.Next() {
		var (
			cid          int
			col          ColumnInfo
			notNull, pk  int
			defaultValue sql.NullString
		)

		if err := rows.Scan(&cid, &col.Name, &col.Type, &notNull, &defaultValue, &pk); err != nil {
			return nil, err
		}

		col.NotNull = notNull != 0
		col.PrimaryKey = pk > 0

		if defaultValue.Valid {
			col.Default = defaultValue.String
		}

		columns = append(columns, col)
	}

	return columns, rows.Err()
}

func (in *Introspector) duckdbColumns(ctx context.Context, name string) ([]ColumnInfo, error) {
	rows, err := in.db.Conn().QueryContext(ctx, `
		SELECT column_name, data_type, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_name = ?
		ORDER BY ordinal_position`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []ColumnInfo

	for rows.Next() {
		var (
			col          ColumnInfo
			isNullable   string
			defaultValue sql.NullString
		)

		if err := rows.Scan(&col.Name, &col.Type, &isNullable, &defaultValue); err != nil {
			return nil, err
		}

		col.NotNull = strings.EqualFold(isNullable, "NO")

		if defaultValue.Valid {
			col.Default = defaultValue.String
		}

		columns = append(columns, col)
	}

	return columns, rows.Err()
}

func (in *Introspector) rowCount(ctx context.Context, name string) (int64, error) {
	var count int64

	err := in.db.Conn().
		QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %q", name)).
		Scan(&count)

	return count, err
}

func (in *Introspector) sample(ctx context.Context, name string) (*database.ResultSet, error) {
	if in.sampleRows <= 0 {
		return nil, nil
	}

	rows, err := in.db.Conn().
		QueryContext(ctx, fmt.Sprintf("SELECT * FROM %q LIMIT %d", name, in.sampleRows))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return database.ScanRows(rows)
}
