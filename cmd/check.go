package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/urfave/cli/v3"

	"github.com/courtdata/querydesk/internal/errors"
	"github.com/courtdata/querydesk/internal/formatter"
	"github.com/courtdata/querydesk/internal/library"
	"github.com/courtdata/querydesk/internal/validate"
)

func CheckCommand() *cli.Command {
	return &cli.Command{
		Name:        "check",
		Usage:       "Validate queries against the live database schema",
		Description: `Check one query's table and column references against the current schema, with suggestions for near-miss names. SELECT queries are also trial-executed with a row limit. Pass --sql to check ad-hoc SQL, or --all to sweep the whole library.`,
		ArgsUsage:   " [query-id]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "all",
				Aliases: []string{"a"},
				Usage:   "Validate every query in the library",
			},
			&cli.StringFlag{
				Name:  "sql",
				Usage: "Ad-hoc SQL to validate instead of a library query",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (table, json)",
				Value:   "table",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			all := cmd.Bool("all")
			sqlText := cmd.String("sql")

			selectors := args.Len()
			if all {
				selectors++
			}

			if sqlText != "" {
				selectors++
			}

			if selectors != 1 {
				return fmt.Errorf("expected exactly one of: a query id, --sql, or --all")
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			if all {
				return runCheckAll(ctx, a, cmd.String("format"))
			}

			if sqlText != "" {
				return runCheckSQL(ctx, a, sqlText, cmd.String("format"))
			}

			return runCheck(ctx, a, args.First(), cmd.String("format"))
		},
	}
}

// buildValidator opens the database and snapshots its schema. The close
// function must be called once validation is done.
func buildValidator(ctx context.Context, a *app) (*validate.Validator, func(), error) {
	db, err := a.openDB()
	if err != nil {
		return nil, nil, errors.NewSchemaUnavailableError("cannot open database for validation", err)
	}

	snapshot, err := a.snapshotSchema(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	v := validate.NewValidator(snapshot, db, a.cfg.Database.TrialRowLimit)

	return v, func() { _ = db.Close() }, nil
}

func runCheck(ctx context.Context, a *app, id, formatName string) error {
	format, err := formatter.ParseFormat(formatName)
	if err != nil {
		return err
	}

	ix, _, err := a.openLibrary()
	if err != nil {
		return err
	}

	rec, err := ix.Get(id)
	if err != nil {
		return err
	}

	v, closeDB, err := buildValidator(ctx, a)
	if err != nil {
		return err
	}
	defer closeDB()

	report := v.Validate(ctx, rec.SQL)

	return a.out.ValidationReport(rec.Title, report, format)
}

// runCheckSQL validates SQL that is not in the library
func runCheckSQL(ctx context.Context, a *app, sqlText, formatName string) error {
	format, err := formatter.ParseFormat(formatName)
	if err != nil {
		return err
	}

	v, closeDB, err := buildValidator(ctx, a)
	if err != nil {
		return err
	}
	defer closeDB()

	report := v.Validate(ctx, sqlText)

	return a.out.ValidationReport("ad-hoc query", report, format)
}

func runCheckAll(ctx context.Context, a *app, formatName string) error {
	format, err := formatter.ParseFormat(formatName)
	if err != nil {
		return err
	}

	ix, _, err := a.openLibrary()
	if err != nil {
		return err
	}

	records := ix.Records()
	library.SortRecords(records, library.SortBySection)

	v, closeDB, err := buildValidator(ctx, a)
	if err != nil {
		return err
	}
	defer closeDB()

	var results []validate.SweepResult

	if format == formatter.FormatTable {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.Suffix = fmt.Sprintf(" validating 0/%d queries...", len(records))
		s.Start()

		results = v.Sweep(ctx, records, func(done, total int, _ validate.SweepResult) {
			s.Suffix = fmt.Sprintf(" validating %d/%d queries...", done, total)
		})

		s.Stop()
	} else {
		results = v.Sweep(ctx, records, nil)
	}

	return a.out.SweepSummary(results, format)
}
