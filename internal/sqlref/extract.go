// Package sqlref heuristically extracts table and column references from SQL
// text. It is regex-based, not a parser: results are best-effort and
// documented as approximate, which is sufficient for existence checks and
// did-you-mean suggestions.
package sqlref

import (
	"regexp"
	"strings"
)

// ColumnRef is a qualified table.column reference found in SQL text. Table
// may be an alias rather than a real table name.
type ColumnRef struct {
	Table  string
	Column string
}

// References holds everything extracted from one SQL string. Tables are
// deduplicated in order of first appearance; column refs keep repeats.
type References struct {
	Tables  []string
	Columns []ColumnRef
}

var (
	tableClauseRe  = regexp.MustCompile(`(?i)\b(?:FROM|JOIN|INSERT\s+INTO|UPDATE)\s+([^\s,;]+)`)
	qualifiedRefRe = regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)\.([A-Za-z_][A-Za-z0-9_]*)\b`)
	lineCommentRe  = regexp.MustCompile(`--[^\n]*`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	stringLitRe    = regexp.MustCompile(`'[^']*'`)
)

// Extract scans SQL text for referenced tables (FROM/JOIN/INSERT INTO/UPDATE
// clauses) and qualified column references.
func Extract(sqlText string) References {
	return References{
		Tables:  extractTables(sqlText),
		Columns: extractColumns(sqlText),
	}
}

func extractTables(sqlText string) []string {
	var (
		tables []string
		seen   = make(map[string]bool)
	)

	for _, match := range tableClauseRe.FindAllStringSubmatch(sqlText, -1) {
		name := cleanIdentifier(match[1])
		if name == "" || seen[name] {
			continue
		}

		seen[name] = true
		tables = append(tables, name)
	}

	return tables
}

// cleanIdentifier strips quoting characters and discards tokens that are
// subquery openers rather than table names.
func cleanIdentifier(token string) string {
	// Closing parens glued to the last table of a subquery are noise
	token = strings.TrimRight(token, ")")

	// An opening parenthesis means the clause opens a subquery, not a table
	if strings.Contains(token, "(") {
		return ""
	}

	name := strings.Trim(token, "`\"'[]")
	if name == "" {
		return ""
	}

	if strings.EqualFold(name, "SELECT") {
		return ""
	}

	return name
}

func extractColumns(sqlText string) []ColumnRef {
	sanitized := sanitize(sqlText)

	var refs []ColumnRef

	for _, match := range qualifiedRefRe.FindAllStringSubmatch(sanitized, -1) {
		refs = append(refs, ColumnRef{Table: match[1], Column: match[2]})
	}

	return refs
}

// sanitize blanks comments and string literal contents so their text cannot
// produce false qualified-reference matches. Best-effort, not a full lexer.
func sanitize(sqlText string) string {
	out := blockCommentRe.ReplaceAllString(sqlText, " ")
	out = lineCommentRe.ReplaceAllString(out, " ")
	out = stringLitRe.ReplaceAllString(out, "''")

	return out
}
