// Package formatter renders library records, query results, schema snapshots,
// and validation reports for the terminal.
package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/courtdata/querydesk/internal/database"
	"github.com/courtdata/querydesk/internal/errors"
	"github.com/courtdata/querydesk/internal/library"
	"github.com/courtdata/querydesk/internal/schema"
	"github.com/courtdata/querydesk/internal/validate"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatCSV   OutputFormat = "csv"
)

// ParseFormat validates a user-supplied format name
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	}

	return "", errors.Newf(errors.ErrTypeValidation, "unknown output format: %s", s).
		WithSuggestion("Use one of: table, json, csv")
}

// Formatter writes formatted output to a single destination
type Formatter struct {
	w io.Writer
}

// NewFormatter creates a formatter writing to w
func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

// RecordList renders a summary table of query records
func (f *Formatter) RecordList(records []library.QueryRecord, format OutputFormat) error {
	if format == FormatJSON {
		return f.writeJSON(records)
	}

	if len(records) == 0 {
		_, _ = fmt.Fprintln(f.w, "(no queries)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(f.w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Title", "Section", "Type", "Uses", "Last Used"})

	for _, rec := range records {
		title := rec.Title
		if rec.IsFavorite {
			title = "* " + title
		}

		t.AppendRow(table.Row{
			rec.ID, title, string(rec.Section), string(rec.Type),
			rec.UsageCount, humanizeAge(rec.LastUsed),
		})
	}

	t.Render()
	_, _ = fmt.Fprintf(f.w, "(%d queries)\n", len(records))

	return nil
}

// RecordDetail renders one record in long form, SQL included
func (f *Formatter) RecordDetail(rec library.QueryRecord, format OutputFormat) error {
	if format == FormatJSON {
		return f.writeJSON(rec)
	}

	var lines []string

	lines = append(lines, fmt.Sprintf("%s  [%s]", rec.Title, rec.ID))
	lines = append(lines, fmt.Sprintf("Section: %s  Type: %s", rec.Section, rec.Type))

	description := rec.Description
	if description == "" {
		description = "-"
	}

	lines = append(lines, "Description: "+description)
	lines = append(lines, fmt.Sprintf("Source: %s  Uses: %d  Last used: %s",
		rec.SourceFile, rec.UsageCount, humanizeAge(rec.LastUsed)))

	if rec.IsFavorite {
		lines = append(lines, "Favorite: yes")
	}

	lines = append(lines, "", rec.SQL)

	_, _ = fmt.Fprintln(f.w, strings.Join(lines, "\n"))

	return nil
}

// ResultSet renders query output in the requested format
func (f *Formatter) ResultSet(rs *database.ResultSet, format OutputFormat) error {
	if len(rs.Columns) == 0 {
		_, _ = fmt.Fprintf(f.w, "OK (%d rows affected)\n", rs.RowsAffected)
		return nil
	}

	switch format {
	case FormatJSON:
		return f.resultJSON(rs)
	case FormatCSV:
		return f.resultCSV(rs)
	default:
		return f.resultTable(rs)
	}
}

func (f *Formatter) resultTable(rs *database.ResultSet) error {
	if len(rs.Rows) == 0 {
		_, _ = fmt.Fprintln(f.w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(f.w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(rs.Columns))
	for i, col := range rs.Columns {
		header[i] = col
	}

	t.AppendHeader(header)

	for _, row := range rs.Rows {
		out := make(table.Row, len(row))
		for i, v := range row {
			out[i] = formatValue(v)
		}

		t.AppendRow(out)
	}

	t.Render()
	_, _ = fmt.Fprintf(f.w, "(%d rows)\n", len(rs.Rows))

	return nil
}

func (f *Formatter) resultJSON(rs *database.ResultSet) error {
	results := make([]map[string]any, 0, len(rs.Rows))

	for _, row := range rs.Rows {
		out := make(map[string]any, len(rs.Columns))
		for i, col := range rs.Columns {
			out[col] = row[i]
		}

		results = append(results, out)
	}

	return f.writeJSON(results)
}

func (f *Formatter) resultCSV(rs *database.ResultSet) error {
	_, _ = fmt.Fprintln(f.w, strings.Join(rs.Columns, ","))

	for _, row := range rs.Rows {
		values := make([]string, len(row))
		for i, v := range row {
			values[i] = escapeCSV(formatValue(v))
		}

		_, _ = fmt.Fprintln(f.w, strings.Join(values, ","))
	}

	return nil
}

// SchemaView renders a schema snapshot, one column table per database table
func (f *Formatter) SchemaView(s *schema.Schema, format OutputFormat) error {
	if format == FormatJSON {
		return f.writeJSON(s)
	}

	names := s.TableNames()
	if len(names) == 0 {
		_, _ = fmt.Fprintln(f.w, "(no tables)")
		return nil
	}

	for _, name := range names {
		info, _ := s.Table(name)

		if info.Error != "" {
			_, _ = fmt.Fprintf(f.w, "%s: %s\n\n", name, color.RedString(info.Error))
			continue
		}

		_, _ = fmt.Fprintf(f.w, "%s (%d rows)\n", name, info.RowCount)

		t := table.NewWriter()
		t.SetOutputMirror(f.w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Column", "Type", "Nullable", "Default"})

		for _, col := range info.Columns {
			nullable := "YES"
			if col.NotNull {
				nullable = "NO"
			}

			def := col.Default
			if col.PrimaryKey {
				if def != "" {
					def += " "
				}

				def += "(primary key)"
			}

			t.AppendRow(table.Row{col.Name, col.Type, nullable, def})
		}

		t.Render()
		_, _ = fmt.Fprintln(f.w)
	}

	return nil
}

// ValidationReport renders one validation outcome with colored verdict
func (f *Formatter) ValidationReport(title string, report *validate.Report, format OutputFormat) error {
	if format == FormatJSON {
		return f.writeJSON(report)
	}

	verdict := color.GreenString("PASS")
	if !report.Valid {
		verdict = color.RedString("FAIL")
	}

	_, _ = fmt.Fprintf(f.w, "%s  %s\n", verdict, title)

	for _, issue := range report.Issues {
		_, _ = fmt.Fprintf(f.w, "  - %s\n", issue)
	}

	for _, suggestion := range report.Suggestions {
		_, _ = fmt.Fprintf(f.w, "    %s\n", color.YellowString(suggestion))
	}

	return nil
}

// SweepSummary renders the outcome of validating a whole record set
func (f *Formatter) SweepSummary(results []validate.SweepResult, format OutputFormat) error {
	if format == FormatJSON {
		return f.writeJSON(results)
	}

	passed := 0

	for _, r := range results {
		if err := f.ValidationReport(r.Record.Title, r.Report, FormatTable); err != nil {
			return err
		}

		if r.Report.Valid {
			passed++
		}
	}

	_, _ = fmt.Fprintf(f.w, "\n%d/%d queries passed validation\n", passed, len(results))

	return nil
}

func (f *Formatter) writeJSON(v any) error {
	enc := json.NewEncoder(f.w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}

	return fmt.Sprintf("%v", v)
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}

	return s
}

// humanizeAge converts a timestamp to a human-readable age string
func humanizeAge(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "never"
	}

	days := int(time.Since(*t).Hours() / 24)

	switch {
	case days < 1:
		return "today"
	case days == 1:
		return "1 day ago"
	case days < 30:
		return fmt.Sprintf("%d days ago", days)
	case days < 365:
		months := days / 30
		if months == 1 {
			return "1 month ago"
		}

		return fmt.Sprintf("%d months ago", months)
	}

	years := days / 365
	if years == 1 {
		return "1 year ago"
	}

	return fmt.Sprintf("%d years ago", years)
}
