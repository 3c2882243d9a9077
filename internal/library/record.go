package library

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Section is a topical grouping tag for query records
type Section string

const (
	SectionDemographics    Section = "demographics"
	SectionMentalHealth    Section = "mental_health"
	SectionCriminalHistory Section = "criminal_history"
	SectionPerformance     Section = "performance"
	SectionAnalytics       Section = "analytics"
	SectionManual          Section = "manual"
)

// sectionOrder is the fixed display order; unknown sections sort last
var sectionOrder = map[Section]int{
	SectionDemographics:    0,
	SectionMentalHealth:    1,
	SectionCriminalHistory: 2,
	SectionPerformance:     3,
	SectionAnalytics:       4,
}

// Sections returns the fixed script-backed sections in display order
func Sections() []Section {
	return []Section{
		SectionDemographics,
		SectionMentalHealth,
		SectionCriminalHistory,
		SectionPerformance,
		SectionAnalytics,
	}
}

// Rank returns the sort position of the section. Sections outside the fixed
// enumeration (including manual) sort after all known ones.
func (s Section) Rank() int {
	if rank, ok := sectionOrder[s]; ok {
		return rank
	}

	return len(sectionOrder)
}

// ParseSection normalizes a user-supplied section name
func ParseSection(s string) Section {
	return Section(strings.ToLower(strings.TrimSpace(s)))
}

// QueryType is the inferred operation kind of a query
type QueryType string

const (
	TypeSelect  QueryType = "select"
	TypeInsert  QueryType = "insert"
	TypeUpdate  QueryType = "update"
	TypeDelete  QueryType = "delete"
	TypeCreate  QueryType = "create"
	TypeUtility QueryType = "utility"
	TypeComplex QueryType = "complex"
	TypeOther   QueryType = "other"
)

// QueryRecord is a stored, reusable analytical query
type QueryRecord struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	SQL         string     `json:"sql"`
	Section     Section    `json:"section"`
	Type        QueryType  `json:"type"`
	Description string     `json:"description,omitempty"`
	UsageCount  int        `json:"usage_count"`
	LastUsed    *time.Time `json:"last_used,omitempty"`
	SourceFile  string     `json:"source_file"`
	IsFavorite  bool       `json:"is_favorite"`
}

// NewRecordID derives a stable identifier from section and title with a random
// suffix to avoid collisions. Uniqueness within one process lifetime is all
// that is required.
func NewRecordID(section Section, title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, slug)
	slug = strings.Trim(slug, "_")

	if slug == "" {
		slug = "query"
	}

	const maxSlugLen = 40
	if len(slug) > maxSlugLen {
		slug = slug[:maxSlugLen]
	}

	suffix := uuid.New().String()[:8]

	return string(section) + "_" + slug + "_" + suffix
}

// ClassifyType infers the operation kind of a query from its SQL text.
// Complexity markers are checked before the simple keyword match so a joined
// SELECT classifies as complex rather than select.
func ClassifyType(sqlText string) QueryType {
	upper := strings.ToUpper(strings.TrimSpace(sqlText))
	if upper == "" {
		return TypeSelect
	}

	if strings.Contains(upper, "JOIN") ||
		strings.Contains(upper, "UNION") ||
		strings.Contains(upper, "WITH") ||
		strings.Contains(upper, "CASE WHEN") ||
		strings.Count(upper, "SELECT") > 1 {
		return TypeComplex
	}

	switch {
	case strings.HasPrefix(upper, "SELECT"):
		return TypeSelect
	case strings.HasPrefix(upper, "INSERT"):
		return TypeInsert
	case strings.HasPrefix(upper, "UPDATE"):
		return TypeUpdate
	case strings.HasPrefix(upper, "DELETE"):
		return TypeDelete
	case strings.HasPrefix(upper, "CREATE"),
		strings.HasPrefix(upper, "DROP"),
		strings.HasPrefix(upper, "ALTER"):
		return TypeCreate
	case strings.HasPrefix(upper, "PRAGMA"),
		strings.HasPrefix(upper, "EXPLAIN"):
		return TypeUtility
	default:
		return TypeOther
	}
}
