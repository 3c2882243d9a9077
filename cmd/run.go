package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/courtdata/querydesk/internal/database"
	"github.com/courtdata/querydesk/internal/errors"
	"github.com/courtdata/querydesk/internal/formatter"
	"github.com/courtdata/querydesk/internal/logging"
)

func RunCommand() *cli.Command {
	return &cli.Command{
		Name:        "run",
		Usage:       "Execute a library query or ad-hoc SQL against the database",
		Description: `Run the query with the given id, print its results, and bump the query's usage count. Pass --sql instead of an id to run ad-hoc SQL without touching the library. Use --output to export the results to a CSV file.`,
		ArgsUsage:   " [query-id]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "sql",
				Usage: "Ad-hoc SQL to run instead of a library query",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (table, json, csv)",
				Value:   "table",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write results to this file as CSV",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			sqlText := cmd.String("sql")

			if (args.Len() == 1) == (sqlText != "") {
				return fmt.Errorf("expected a query id or --sql, not both")
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			if sqlText != "" {
				return runAdhoc(ctx, a, nil, sqlText, cmd.String("format"), cmd.String("output"))
			}

			return runRun(ctx, a, nil, args.First(), cmd.String("format"), cmd.String("output"))
		},
	}
}

func runRun(ctx context.Context, a *app, runner database.Runner, id, formatName, outputPath string) error {
	format, err := formatter.ParseFormat(formatName)
	if err != nil {
		return err
	}

	ix, store, err := a.openLibrary()
	if err != nil {
		return err
	}

	rec, err := ix.Get(id)
	if err != nil {
		return err
	}

	if runner == nil {
		db, err := a.openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		runner = db
	}

	rs, err := runner.Run(ctx, rec.SQL)
	if err != nil {
		return err
	}

	ix.RecordUsage(id)

	if err := a.saveLibrary(ix, store); err != nil {
		logging.WithError(err).Warn("failed to persist usage update")
	}

	if outputPath != "" {
		return exportCSV(rs, outputPath)
	}

	return a.out.ResultSet(rs, format)
}

// runAdhoc executes SQL that is not in the library; nothing is persisted
func runAdhoc(ctx context.Context, a *app, runner database.Runner, sqlText, formatName, outputPath string) error {
	format, err := formatter.ParseFormat(formatName)
	if err != nil {
		return err
	}

	if runner == nil {
		db, err := a.openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		runner = db
	}

	rs, err := runner.Run(ctx, sqlText)
	if err != nil {
		return err
	}

	if outputPath != "" {
		return exportCSV(rs, outputPath)
	}

	return a.out.ResultSet(rs, format)
}

func exportCSV(rs *database.ResultSet, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrTypePersistence, "failed to create export file")
	}
	defer f.Close()

	if err := formatter.NewFormatter(f).ResultSet(rs, formatter.FormatCSV); err != nil {
		return err
	}

	fmt.Printf("Exported %d rows to %s\n", len(rs.Rows), path)

	return nil
}
