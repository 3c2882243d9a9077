package sqlref

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJoinQuery(t *testing.T) {
	// Regression fixture: alias handling is heuristic, so qualified refs use
	// the alias names while table extraction finds the real table names.
	refs := Extract("SELECT p.name FROM patients p JOIN sessions s ON p.id = s.patient_id")

	assert.ElementsMatch(t, []string{"patients", "sessions"}, refs.Tables)
	assert.Contains(t, refs.Columns, ColumnRef{Table: "p", Column: "name"})
	assert.Contains(t, refs.Columns, ColumnRef{Table: "s", Column: "patient_id"})
}

func TestExtractTables(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		expected []string
	}{
		{
			name:     "simple from",
			sql:      "SELECT * FROM PARTICIPANT",
			expected: []string{"PARTICIPANT"},
		},
		{
			name:     "insert into",
			sql:      "INSERT INTO JAIL_DATA (a, b) VALUES (1, 2)",
			expected: []string{"JAIL_DATA"},
		},
		{
			name:     "update",
			sql:      "UPDATE PARTICIPANT SET Gender = 'F' WHERE id = 1",
			expected: []string{"PARTICIPANT"},
		},
		{
			name:     "lowercase keywords",
			sql:      "select * from participant join jail_data on 1=1",
			expected: []string{"participant", "jail_data"},
		},
		{
			name:     "quoted identifier",
			sql:      `SELECT * FROM "MHC_ENROLLMENT"`,
			expected: []string{"MHC_ENROLLMENT"},
		},
		{
			name:     "deduplicated",
			sql:      "SELECT * FROM t WHERE x IN (SELECT y FROM t)",
			expected: []string{"t"},
		},
		{
			name:     "subquery opener discarded",
			sql:      "SELECT * FROM (SELECT a FROM inner_table) sub",
			expected: []string{"inner_table"},
		},
		{
			name:     "no references",
			sql:      "SELECT 1",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refs := Extract(tt.sql)
			assert.Equal(t, tt.expected, refs.Tables)
		})
	}
}

func TestExtractColumnsIgnoresComments(t *testing.T) {
	sql := `-- fake.reference in a comment
SELECT p.name FROM patients p
/* another block.reference
spanning lines */`

	refs := Extract(sql)

	assert.Equal(t, []ColumnRef{{Table: "p", Column: "name"}}, refs.Columns)
}

func TestExtractColumnsIgnoresStringLiterals(t *testing.T) {
	refs := Extract("SELECT p.name FROM patients p WHERE note = 'see ref.column here'")

	assert.Equal(t, []ColumnRef{{Table: "p", Column: "name"}}, refs.Columns)
}

func TestExtractColumnsKeepsRepeats(t *testing.T) {
	refs := Extract("SELECT p.id FROM patients p WHERE p.id > 0 ORDER BY p.id")

	count := 0
	for _, ref := range refs.Columns {
		if ref == (ColumnRef{Table: "p", Column: "id"}) {
			count++
		}
	}

	assert.Equal(t, 3, count)
}

func TestSanitize(t *testing.T) {
	out := sanitize("SELECT a FROM t -- t.hidden\nWHERE b = 'x.y' /* z.w */")

	assert.NotContains(t, out, "t.hidden")
	assert.NotContains(t, out, "x.y")
	assert.NotContains(t, out, "z.w")
	assert.Contains(t, out, "''")
}
