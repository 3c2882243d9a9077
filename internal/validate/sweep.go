package validate

import (
	"context"

	"github.com/courtdata/querydesk/internal/library"
	"github.com/courtdata/querydesk/internal/logging"
)

// SweepResult pairs one library record with its validation report
type SweepResult struct {
	Record library.QueryRecord
	Report *Report
}

// Sweep validates every record in order. Once started the sweep runs to
// completion; the progress callback receives incremental results after each
// record.
func (v *Validator) Sweep(
	ctx context.Context,
	records []library.QueryRecord,
	progress func(done, total int, result SweepResult),
) []SweepResult {
	results := make([]SweepResult, 0, len(records))

	for i, rec := range records {
		result := SweepResult{
			Record: rec,
			Report: v.Validate(ctx, rec.SQL),
		}

		results = append(results, result)

		if progress != nil {
			progress(i+1, len(records), result)
		}
	}

	passed := 0
	for _, r := range results {
		if r.Report.Valid {
			passed++
		}
	}

	logging.WithFields(map[string]interface{}{
		"total":  len(results),
		"passed": passed,
	}).Info("bulk validation sweep complete")

	return results
}
