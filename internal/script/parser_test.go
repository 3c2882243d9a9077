package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtdata/querydesk/internal/library"
)

func TestParseNamedQueries(t *testing.T) {
	text := `-- name: Participant roster
SELECT * FROM PARTICIPANT;

-- name: Gender breakdown
-- description: Counts by gender
SELECT Gender, COUNT(*) FROM PARTICIPANT GROUP BY Gender;
`

	records := Parse(text, library.SectionDemographics, "demographics.sql")
	require.Len(t, records, 2)

	assert.Equal(t, "Participant roster", records[0].Title)
	assert.Equal(t, "SELECT * FROM PARTICIPANT;", records[0].SQL)
	assert.Equal(t, library.TypeSelect, records[0].Type)
	assert.Empty(t, records[0].Description)

	assert.Equal(t, "Gender breakdown", records[1].Title)
	assert.Equal(t, "Counts by gender", records[1].Description)
	assert.Equal(t, "demographics.sql", records[1].SourceFile)

	for _, rec := range records {
		assert.NotEmpty(t, rec.SQL)
		assert.True(t, strings.HasSuffix(rec.SQL, ";"))
		assert.NotEmpty(t, rec.ID)
	}
}

func TestParseTitleKeyword(t *testing.T) {
	text := `-- Title: Uses the title keyword
SELECT 1;
`

	records := Parse(text, library.SectionAnalytics, "analytics.sql")
	require.Len(t, records, 1)
	assert.Equal(t, "Uses the title keyword", records[0].Title)
}

func TestParseImplicitBoundaries(t *testing.T) {
	text := `SELECT * FROM PARTICIPANT;

SELECT * FROM JAIL_DATA;
`

	records := Parse(text, library.SectionPerformance, "performance.sql")
	require.Len(t, records, 2)

	assert.Equal(t, "Query 1 from performance", records[0].Title)
	assert.Equal(t, "Query 2 from performance", records[1].Title)
}

func TestParseMixedStyles(t *testing.T) {
	text := `SELECT COUNT(*) FROM PARTICIPANT;

-- name: Named one
SELECT * FROM MHC_ENROLLMENT;

SELECT 1;
`

	records := Parse(text, library.SectionAnalytics, "analytics.sql")
	require.Len(t, records, 3)
	assert.Equal(t, "Query 1 from analytics", records[0].Title)
	assert.Equal(t, "Named one", records[1].Title)
}

func TestParseMultilineStatement(t *testing.T) {
	text := `-- name: Multi-line
SELECT Participant_ID,
       First_Name,
       Last_Name
FROM PARTICIPANT
ORDER BY Last_Name;
`

	records := Parse(text, library.SectionDemographics, "demographics.sql")
	require.Len(t, records, 1)
	assert.Equal(t, 5, strings.Count(records[0].SQL, "\n")+1)
	assert.True(t, strings.HasSuffix(records[0].SQL, ";"))
}

func TestParseBlockCommentsDiscarded(t *testing.T) {
	text := `/*
This whole header is ignored,
even lines that look like SQL:
SELECT * FROM NOWHERE;
*/
-- name: Real query
SELECT 1;

/* single-line block */
SELECT 2;
`

	records := Parse(text, library.SectionAnalytics, "analytics.sql")
	require.Len(t, records, 2)
	assert.Equal(t, "Real query", records[0].Title)
	assert.NotContains(t, records[0].SQL, "NOWHERE")
	assert.Equal(t, "SELECT 2;", records[1].SQL)
}

func TestParseEmptyAndCommentOnlyScripts(t *testing.T) {
	assert.Empty(t, Parse("", library.SectionDemographics, "demographics.sql"))
	assert.Empty(t, Parse("\n\n\n", library.SectionDemographics, "demographics.sql"))
	assert.Empty(t, Parse("-- just a comment\n/* and a block */\n", library.SectionDemographics, "demographics.sql"))
}

func TestParseFinalStatementWithoutTerminator(t *testing.T) {
	text := `-- name: Unterminated
SELECT * FROM PARTICIPANT`

	records := Parse(text, library.SectionDemographics, "demographics.sql")
	require.Len(t, records, 1)
	assert.Equal(t, "SELECT * FROM PARTICIPANT", records[0].SQL)
}

func TestParseNameCommentFinalizesPreviousQuery(t *testing.T) {
	// No blank line or semicolon between the statements; the name comment
	// alone is the boundary.
	text := `-- name: First
SELECT 1
-- name: Second
SELECT 2;
`

	records := Parse(text, library.SectionAnalytics, "analytics.sql")
	require.Len(t, records, 2)
	assert.Equal(t, "SELECT 1", records[0].SQL)
	assert.Equal(t, "SELECT 2;", records[1].SQL)
}

func TestParseDescriptionBeforeSQL(t *testing.T) {
	text := `-- name: Documented
-- description: Something useful
SELECT 1;
`

	records := Parse(text, library.SectionAnalytics, "analytics.sql")
	require.Len(t, records, 1)
	assert.Equal(t, "Something useful", records[0].Description)
}

func TestParseClassifiesTypes(t *testing.T) {
	text := `-- name: Joined
SELECT p.id FROM PARTICIPANT p JOIN JAIL_DATA j ON p.id = j.id;

-- name: Pragma
PRAGMA table_info(PARTICIPANT);
`

	records := Parse(text, library.SectionAnalytics, "analytics.sql")
	require.Len(t, records, 2)
	assert.Equal(t, library.TypeComplex, records[0].Type)
	assert.Equal(t, library.TypeUtility, records[1].Type)
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		inBlock bool
		kind    LineKind
		value   string
	}{
		{"blank", "   ", false, LineBlank, ""},
		{"sql", "SELECT 1;", false, LineSQL, ""},
		{"plain comment", "-- nothing special", false, LineComment, ""},
		{"name comment", "-- name: My Query", false, LineNameComment, "My Query"},
		{"title comment uppercase", "-- TITLE: Loud", false, LineNameComment, "Loud"},
		{"description comment", "-- description: details here", false, LineDescComment, "details here"},
		{"block open", "/* start", false, LineBlockOpen, ""},
		{"block open and close", "/* whole thing */", false, LineBlockOpenAndClose, ""},
		{"inside block", "SELECT hidden;", true, LineInsideBlock, ""},
		{"block close", "end */", true, LineBlockClose, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyLine(tt.line, tt.inBlock)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, tt.value, got.Value)
		})
	}
}

func TestDemoRecords(t *testing.T) {
	for _, section := range library.Sections() {
		records := DemoRecords(section)
		assert.NotEmpty(t, records, "section %s has no demo records", section)

		for _, rec := range records {
			assert.Equal(t, section, rec.Section)
			assert.Equal(t, "demo", rec.SourceFile)
			assert.NotEmpty(t, rec.SQL)
		}
	}

	assert.Empty(t, DemoRecords(library.SectionManual))
}
