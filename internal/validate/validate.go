// Package validate cross-checks SQL text against a schema snapshot and
// produces pass/fail diagnostics with did-you-mean suggestions.
package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/courtdata/querydesk/internal/database"
	"github.com/courtdata/querydesk/internal/schema"
	"github.com/courtdata/querydesk/internal/sqlref"
)

// Report is the outcome of checking one SQL string against one schema
// snapshot. Valid is governed solely by structural checks and trial-execution
// errors; informational entries in Issues never flip it.
type Report struct {
	Valid       bool     `json:"valid"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

// Validator checks SQL references against a schema snapshot. When a runner is
// present, SELECT statements additionally get a bounded trial execution.
type Validator struct {
	schema        *schema.Schema
	runner        database.Runner
	trialRowLimit int
}

// NewValidator creates a validator. The runner may be nil to skip trial
// execution.
func NewValidator(s *schema.Schema, runner database.Runner, trialRowLimit int) *Validator {
	return &Validator{
		schema:        s,
		runner:        runner,
		trialRowLimit: trialRowLimit,
	}
}

// Validate extracts table and column references from the SQL text, checks
// them against the schema, and optionally trial-executes SELECT statements.
func (v *Validator) Validate(ctx context.Context, sqlText string) *Report {
	report := &Report{Valid: true}

	refs := sqlref.Extract(sqlText)

	for _, table := range refs.Tables {
		if _, ok := v.schema.Table(table); ok {
			continue
		}

		report.Valid = false
		report.Issues = append(report.Issues, fmt.Sprintf("Table '%s' does not exist", table))

		if similar := v.similarTables(table); len(similar) > 0 {
			report.Suggestions = append(report.Suggestions,
				fmt.Sprintf("Did you mean: %s?", strings.Join(similar, ", ")))
		}
	}

	for _, ref := range refs.Columns {
		// Qualified refs through aliases cannot be resolved here; only refs
		// whose qualifier names a known table are checked.
		info, ok := v.schema.Table(ref.Table)
		if !ok {
			continue
		}

		if info.HasColumn(ref.Column) {
			continue
		}

		report.Valid = false
		report.Issues = append(report.Issues,
			fmt.Sprintf("Column '%s' does not exist in table '%s'", ref.Column, ref.Table))

		if similar := similarColumns(info, ref.Column); len(similar) > 0 {
			report.Suggestions = append(report.Suggestions,
				fmt.Sprintf("Available columns in %s: %s", ref.Table, strings.Join(similar, ", ")))
		}
	}

	v.trialExecute(ctx, sqlText, report)

	return report
}

// trialExecute runs a SELECT statement with a row limit appended, purely to
// confirm it does not raise a runtime error. An execution error forces the
// report invalid; a success adds a display-only note.
func (v *Validator) trialExecute(ctx context.Context, sqlText string, report *Report) {
	if v.runner == nil {
		return
	}

	if !strings.HasPrefix(strings.ToUpper(strings.TrimSpace(sqlText)), "SELECT") {
		return
	}

	trimmed := strings.TrimSuffix(strings.TrimSpace(sqlText), ";")
	bounded := fmt.Sprintf("%s LIMIT %d", trimmed, v.trialRowLimit)

	if _, err := v.runner.Run(ctx, bounded); err != nil {
		report.Valid = false
		report.Issues = append(report.Issues, fmt.Sprintf("Query execution failed: %v", err))

		return
	}

	report.Issues = append(report.Issues, "Query executed successfully in trial run")
}

// similarTables finds known tables related to the referenced name by
// case-insensitive substring containment in either direction.
func (v *Validator) similarTables(name string) []string {
	lower := strings.ToLower(name)

	var similar []string

	for _, known := range v.schema.TableNames() {
		knownLower := strings.ToLower(known)
		if strings.Contains(knownLower, lower) || strings.Contains(lower, knownLower) {
			similar = append(similar, known)
		}
	}

	return similar
}

// similarColumns finds columns whose name contains the referenced name
func similarColumns(info schema.TableInfo, name string) []string {
	lower := strings.ToLower(name)

	var similar []string

	for _, col := range info.Columns {
		if strings.Contains(strings.ToLower(col.Name), lower) {
			similar = append(similar, col.Name)
		}
	}

	return similar
}
