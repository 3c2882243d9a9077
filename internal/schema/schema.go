// Package schema builds point-in-time structural snapshots of the analysis
// database. A snapshot is built atomically per call and replaced wholesale on
// re-analysis, never patched incrementally.
package schema

import (
	"sort"
	"strings"
	"time"

	"github.com/courtdata/querydesk/internal/database"
)

// ColumnInfo describes one column of an introspected table
type ColumnInfo struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	NotNull    bool   `json:"not_null"`
	Default    string `json:"default,omitempty"`
	PrimaryKey bool   `json:"primary_key"`
}

// TableInfo describes one table: ordered columns, a row count, and a small
// sample. Error carries a per-table introspection failure that did not abort
// the snapshot.
type TableInfo struct {
	Name     string              `json:"name"`
	Columns  []ColumnInfo        `json:"columns"`
	RowCount int64               `json:"row_count"`
	Sample   *database.ResultSet `json:"-"`
	Error    string              `json:"error,omitempty"`
}

// HasColumn reports whether the table has a column with the given name,
// compared case-insensitively.
func (t *TableInfo) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if strings.EqualFold(col.Name, name) {
			return true
		}
	}

	return false
}

// Schema is a snapshot of the live database structure
type Schema struct {
	Tables  map[string]TableInfo `json:"tables"`
	TakenAt time.Time            `json:"taken_at"`
}

// Table returns the named table info
func (s *Schema) Table(name string) (TableInfo, bool) {
	info, ok := s.Tables[name]
	return info, ok
}

// TableNames returns all table names in sorted order
func (s *Schema) TableNames() []string {
	names := make([]string, 0, len(s.Tables))
	for name := range s.Tables {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
