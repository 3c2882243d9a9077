package library

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/courtdata/querydesk/internal/errors"
)

// SortKey selects the ordering of filtered record lists
type SortKey string

const (
	SortByName    SortKey = "name"
	SortByType    SortKey = "type"
	SortByUsage   SortKey = "usage"
	SortBySection SortKey = "section"
)

// FilterOptions narrows the record list. Section and Type accept "all" (or
// empty) as a wildcard. Search matches case-insensitively against title, sql,
// description, and section name; any one field matching suffices.
type FilterOptions struct {
	Section string
	Type    string
	Search  string
}

// Index is the in-memory query library. It is mutated only by the single
// active caller context; no locking is required.
type Index struct {
	records []QueryRecord
	byID    map[string]int
}

// NewIndex creates an empty query library index
func NewIndex() *Index {
	return &Index{
		byID: make(map[string]int),
	}
}

// Len returns the number of records in the index
func (ix *Index) Len() int {
	return len(ix.records)
}

// Records returns a copy of all records in load order
func (ix *Index) Records() []QueryRecord {
	out := make([]QueryRecord, len(ix.records))
	copy(out, ix.records)

	return out
}

// Get returns the record with the given id
func (ix *Index) Get(id string) (*QueryRecord, error) {
	pos, ok := ix.byID[id]
	if !ok {
		return nil, errors.NewNotFoundError(id)
	}

	rec := ix.records[pos]

	return &rec, nil
}

// Load appends records parsed from a script source. Records from different
// scripts are kept independently; no cross-source deduplication happens here.
func (ix *Index) Load(records []QueryRecord) {
	for _, rec := range records {
		ix.append(rec)
	}
}

// Merge adds persisted records whose id is not already present. Persisted
// duplicates of in-memory records are silently dropped, so script-sourced
// records win and merging the same set twice is idempotent.
func (ix *Index) Merge(persisted []QueryRecord) int {
	added := 0

	for _, rec := range persisted {
		if _, exists := ix.byID[rec.ID]; exists {
			continue
		}

		ix.append(rec)
		added++
	}

	return added
}

func (ix *Index) append(rec QueryRecord) {
	ix.byID[rec.ID] = len(ix.records)
	ix.records = append(ix.records, rec)
}

// Filter returns the subsequence of records matching all active predicates.
// Section and type narrow the candidate set first; the search text is then
// evaluated against that subset.
func (ix *Index) Filter(opts FilterOptions) []QueryRecord {
	section := string(ParseSection(opts.Section))
	qtype := strings.ToLower(strings.TrimSpace(opts.Type))
	search := strings.ToLower(strings.TrimSpace(opts.Search))

	var out []QueryRecord

	for _, rec := range ix.records {
		if section != "" && section != "all" && string(rec.Section) != section {
			continue
		}

		if qtype != "" && qtype != "all" && string(rec.Type) != qtype {
			continue
		}

		if search != "" && !matchesSearch(rec, search) {
			continue
		}

		out = append(out, rec)
	}

	return out
}

func matchesSearch(rec QueryRecord, search string) bool {
	return strings.Contains(strings.ToLower(rec.Title), search) ||
		strings.Contains(strings.ToLower(rec.SQL), search) ||
		strings.Contains(strings.ToLower(rec.Description), search) ||
		strings.Contains(strings.ToLower(string(rec.Section)), search)
}

// SortRecords orders a record list by the given key. Name and type compare
// lexically, usage sorts descending by usage count, and section follows the
// fixed section order with title as tie-break.
func SortRecords(records []QueryRecord, key SortKey) {
	switch key {
	case SortByName:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Title < records[j].Title
		})
	case SortByType:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Type < records[j].Type
		})
	case SortByUsage:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].UsageCount > records[j].UsageCount
		})
	default: // section
		sort.SliceStable(records, func(i, j int) bool {
			ri, rj := records[i].Section.Rank(), records[j].Section.Rank()
			if ri != rj {
				return ri < rj
			}

			return records[i].Title < records[j].Title
		})
	}
}

// RecordUsage increments the usage counter and stamps the last-used time.
// Unknown ids are ignored.
func (ix *Index) RecordUsage(id string) {
	pos, ok := ix.byID[id]
	if !ok {
		return
	}

	now := time.Now()
	ix.records[pos].UsageCount++
	ix.records[pos].LastUsed = &now
}

// UpsertFromUserEdit replaces title, sql, and description of an existing
// record and recomputes its type from the new sql. The id is never reassigned.
func (ix *Index) UpsertFromUserEdit(id, newTitle, newSQL, newDescription string) (*QueryRecord, error) {
	pos, ok := ix.byID[id]
	if !ok {
		return nil, errors.NewNotFoundError(id)
	}

	rec := &ix.records[pos]
	rec.Title = newTitle
	rec.SQL = newSQL
	rec.Description = newDescription
	rec.Type = ClassifyType(newSQL)

	out := *rec

	return &out, nil
}

// SaveCurrent stores an ad-hoc query as a manual record and returns it
func (ix *Index) SaveCurrent(title, sqlText, description string) (*QueryRecord, error) {
	sqlText = strings.TrimSpace(sqlText)
	if sqlText == "" {
		return nil, errors.New(errors.ErrTypeValidation, "cannot save an empty query")
	}

	if strings.TrimSpace(title) == "" {
		title = "Saved query"
	}

	rec := QueryRecord{
		ID:          NewRecordID(SectionManual, title),
		Title:       title,
		SQL:         sqlText,
		Section:     SectionManual,
		Type:        ClassifyType(sqlText),
		Description: description,
		SourceFile:  "manual_save",
	}

	ix.append(rec)

	return &rec, nil
}

// ToggleFavorite flips the favorite flag and returns the new value
func (ix *Index) ToggleFavorite(id string) (bool, error) {
	pos, ok := ix.byID[id]
	if !ok {
		return false, errors.NewNotFoundError(id)
	}

	ix.records[pos].IsFavorite = !ix.records[pos].IsFavorite

	return ix.records[pos].IsFavorite, nil
}

// Serialize encodes the full record list for the persistence store
func (ix *Index) Serialize() ([]byte, error) {
	data, err := json.MarshalIndent(ix.records, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypePersistence, "failed to serialize library")
	}

	return data, nil
}

// Hydrate decodes a previously serialized record list
func Hydrate(data []byte) ([]QueryRecord, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var records []QueryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(err, errors.ErrTypePersistence, "failed to decode persisted library")
	}

	return records, nil
}
