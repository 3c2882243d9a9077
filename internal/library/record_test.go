package library

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyType(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		expected QueryType
	}{
		{"simple select", "SELECT a FROM t", TypeSelect},
		{"lowercase select", "select * from participant", TypeSelect},
		{"join is complex", "SELECT a FROM t JOIN u ON t.id = u.id", TypeComplex},
		{"union is complex", "SELECT a FROM t UNION SELECT a FROM u", TypeComplex},
		{"cte is complex", "WITH x AS (SELECT 1) SELECT * FROM x", TypeComplex},
		{"case when is complex", "SELECT CASE WHEN a > 1 THEN 'x' ELSE 'y' END FROM t", TypeComplex},
		{"nested select is complex", "SELECT a FROM t WHERE a IN (SELECT b FROM u)", TypeComplex},
		{"insert", "INSERT INTO t (a) VALUES (1)", TypeInsert},
		{"update", "UPDATE t SET a = 1", TypeUpdate},
		{"delete", "DELETE FROM t WHERE a = 1", TypeDelete},
		{"create", "CREATE TABLE t (a INTEGER)", TypeCreate},
		{"drop", "DROP TABLE t", TypeCreate},
		{"alter", "ALTER TABLE t ADD COLUMN b TEXT", TypeCreate},
		{"pragma is utility", "PRAGMA table_info(t)", TypeUtility},
		{"explain is utility", "EXPLAIN QUERY PLAN SELECT a FROM t", TypeUtility},
		{"empty defaults to select", "", TypeSelect},
		{"whitespace defaults to select", "   \n\t", TypeSelect},
		{"unrecognized is other", "VACUUM", TypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyType(tt.sql))
		})
	}
}

func TestNewRecordID(t *testing.T) {
	id := NewRecordID(SectionDemographics, "Participant Roster")

	assert.True(t, strings.HasPrefix(id, "demographics_participant_roster_"))

	// Suffix makes repeated derivation unique
	other := NewRecordID(SectionDemographics, "Participant Roster")
	assert.NotEqual(t, id, other)
}

func TestNewRecordIDEmptyTitle(t *testing.T) {
	id := NewRecordID(SectionManual, "  !!! ")

	assert.True(t, strings.HasPrefix(id, "manual_query_"))
}

func TestSectionRank(t *testing.T) {
	assert.Less(t, SectionDemographics.Rank(), SectionMentalHealth.Rank())
	assert.Less(t, SectionPerformance.Rank(), SectionAnalytics.Rank())
	// Unknown and manual sections sort last
	assert.Greater(t, SectionManual.Rank(), SectionAnalytics.Rank())
	assert.Greater(t, Section("mystery").Rank(), SectionAnalytics.Rank())
}

func TestParseSection(t *testing.T) {
	assert.Equal(t, SectionMentalHealth, ParseSection("  Mental_Health "))
}
