// Package testutil provides shared test builders and helpers.
package testutil

import (
	"time"

	"github.com/courtdata/querydesk/internal/library"
	"github.com/courtdata/querydesk/internal/schema"
)

// RecordOption is a functional option for configuring test query records
type RecordOption func(*library.QueryRecord)

// WithTitle sets the record title
func WithTitle(title string) RecordOption {
	return func(r *library.QueryRecord) {
		r.Title = title
	}
}

// WithSQL sets the record SQL text
func WithSQL(sqlText string) RecordOption {
	return func(r *library.QueryRecord) {
		r.SQL = sqlText
		r.Type = library.ClassifyType(sqlText)
	}
}

// WithSection sets the record section
func WithSection(section library.Section) RecordOption {
	return func(r *library.QueryRecord) {
		r.Section = section
	}
}

// WithDescription sets the record description
func WithDescription(desc string) RecordOption {
	return func(r *library.QueryRecord) {
		r.Description = desc
	}
}

// WithUsage sets the usage count
func WithUsage(count int) RecordOption {
	return func(r *library.QueryRecord) {
		r.UsageCount = count
	}
}

// WithLastUsed sets the last-used timestamp
func WithLastUsed(t time.Time) RecordOption {
	return func(r *library.QueryRecord) {
		r.LastUsed = &t
	}
}

// WithFavorite marks the record as a favorite
func WithFavorite() RecordOption {
	return func(r *library.QueryRecord) {
		r.IsFavorite = true
	}
}

// NewTestRecord creates a query record with sensible defaults for testing
func NewTestRecord(opts ...RecordOption) library.QueryRecord {
	rec := library.QueryRecord{
		Title:      "Active Roster",
		SQL:        "SELECT * FROM PARTICIPANT",
		Section:    library.SectionDemographics,
		Type:       library.TypeSelect,
		SourceFile: "demographics.sql",
	}

	for _, opt := range opts {
		opt(&rec)
	}

	if rec.ID == "" {
		rec.ID = library.NewRecordID(rec.Section, rec.Title)
	}

	return rec
}

// NewTestSchema creates a schema snapshot from table name to column names
func NewTestSchema(tables map[string][]string) *schema.Schema {
	s := &schema.Schema{
		Tables:  make(map[string]schema.TableInfo, len(tables)),
		TakenAt: time.Now(),
	}

	for name, columns := range tables {
		info := schema.TableInfo{Name: name}
		for _, col := range columns {
			info.Columns = append(info.Columns, schema.ColumnInfo{Name: col, Type: "TEXT"})
		}

		s.Tables[name] = info
	}

	return s
}
