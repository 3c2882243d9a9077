// Package script parses annotated, multi-statement SQL script text into
// query records. A line comment with "name:" or "title:" opens a named
// record, "description:" annotates the current one, block comments are
// discarded, and statements close on a trailing semicolon or a blank line.
package script

import (
	"fmt"
	"strings"

	"github.com/courtdata/querydesk/internal/library"
)

// accumulator is the record-in-progress threaded through the parse fold
type accumulator struct {
	id          string
	title       string
	description string
	sqlLines    []string
}

func (a *accumulator) hasSQL() bool {
	return strings.TrimSpace(strings.Join(a.sqlLines, "\n")) != ""
}

func (a *accumulator) finalize(section library.Section, sourceFile string) library.QueryRecord {
	sqlText := strings.TrimSpace(strings.Join(a.sqlLines, "\n"))

	id := a.id
	if id == "" {
		id = library.NewRecordID(section, a.title)
	}

	return library.QueryRecord{
		ID:          id,
		Title:       a.title,
		SQL:         sqlText,
		Section:     section,
		Type:        library.ClassifyType(sqlText),
		Description: a.description,
		SourceFile:  sourceFile,
	}
}

// Parse turns raw script text into an ordered sequence of finalized query
// records. Scripts mixing explicit name: comments and implicit statement
// boundaries are supported; a script with no SQL content yields an empty
// sequence.
func Parse(text string, section library.Section, sourceFile string) []library.QueryRecord {
	var (
		records        []library.QueryRecord
		current        *accumulator
		inBlockComment bool
		inQuery        bool
		opened         int
	)

	push := func() {
		if current != nil && current.hasSQL() {
			records = append(records, current.finalize(section, sourceFile))
		}

		current = nil
		inQuery = false
	}

	for _, rawLine := range strings.Split(text, "\n") {
		line := classifyLine(rawLine, inBlockComment)

		switch line.Kind {
		case LineBlockOpen:
			inBlockComment = true

		case LineBlockClose:
			inBlockComment = false

		case LineInsideBlock, LineBlockOpenAndClose, LineComment:
			// discarded

		case LineNameComment:
			push()

			opened++
			current = &accumulator{
				id:    library.NewRecordID(section, line.Value),
				title: line.Value,
			}
			inQuery = true

		case LineDescComment:
			if current != nil {
				current.description = line.Value
			}

		case LineBlank:
			// A blank line closes an open query with content but does not
			// finalize it; a later line may still reopen parsing state.
			if inQuery && current != nil && current.hasSQL() {
				inQuery = false
			}

		case LineSQL:
			if !inQuery && current != nil && current.hasSQL() {
				push()
			}

			if current == nil {
				opened++
				current = &accumulator{
					title: fmt.Sprintf("Query %d from %s", opened, section),
				}
			}

			inQuery = true
			current.sqlLines = append(current.sqlLines, line.Text)

			if strings.HasSuffix(strings.TrimSpace(line.Text), ";") {
				inQuery = false
			}
		}
	}

	push()

	return records
}
