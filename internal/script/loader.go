package script

import (
	"context"

	"github.com/courtdata/querydesk/internal/library"
	"github.com/courtdata/querydesk/internal/logging"
)

// Loader loads the per-section script files into a library index. Scripts
// are fetched and parsed strictly sequentially so the merged library order
// is deterministic: script load order, then within-script parse order.
type Loader struct {
	source Source
}

// NewLoader creates a loader over the given script source
func NewLoader(source Source) *Loader {
	return &Loader{source: source}
}

// ScriptFilename returns the conventional script filename for a section
func ScriptFilename(section library.Section) string {
	return string(section) + ".sql"
}

// LoadAll parses every section script into the index. A missing or
// unreadable script degrades to the built-in demo record set for that
// section; it never aborts the whole load.
func (l *Loader) LoadAll(ctx context.Context, ix *library.Index) {
	for _, section := range library.Sections() {
		records := l.loadSection(ctx, section)
		ix.Load(records)
	}
}

func (l *Loader) loadSection(ctx context.Context, section library.Section) []library.QueryRecord {
	filename := ScriptFilename(section)

	text, err := l.source.Fetch(ctx, filename)
	if err != nil {
		logging.WithFields(map[string]interface{}{
			"script":  filename,
			"section": string(section),
		}).WithError(err).Warn("script unavailable, using demo queries")

		return DemoRecords(section)
	}

	records := Parse(text, section, filename)
	logging.WithFields(map[string]interface{}{
		"script":  filename,
		"records": len(records),
	}).Debug("parsed script")

	return records
}
