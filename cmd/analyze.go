package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/urfave/cli/v3"

	"github.com/courtdata/querydesk/internal/formatter"
	"github.com/courtdata/querydesk/internal/schema"
)

func AnalyzeCommand() *cli.Command {
	return &cli.Command{
		Name:        "analyze",
		Usage:       "Inspect the database schema",
		Description: `Introspect the database and show every table with its columns, row count, and a small data sample. Pass a table name to limit the view to one table.`,
		ArgsUsage:   " [table]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (table, json)",
				Value:   "table",
			},
			&cli.BoolFlag{
				Name:  "sample",
				Usage: "Include sample rows per table",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			return runAnalyze(ctx, a, cmd.Args().First(), cmd.String("format"), cmd.Bool("sample"))
		},
	}
}

func runAnalyze(ctx context.Context, a *app, tableName, formatName string, withSample bool) error {
	format, err := formatter.ParseFormat(formatName)
	if err != nil {
		return err
	}

	db, err := a.openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	var snapshot *schema.Schema

	if format == formatter.FormatTable {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.Suffix = " analyzing schema..."
		s.Start()

		snapshot, err = a.snapshotSchema(ctx, db)

		s.Stop()
	} else {
		snapshot, err = a.snapshotSchema(ctx, db)
	}

	if err != nil {
		return err
	}

	if tableName != "" {
		info, ok := snapshot.Table(tableName)
		if !ok {
			return fmt.Errorf("table '%s' not found", tableName)
		}

		snapshot = &schema.Schema{
			Tables:  map[string]schema.TableInfo{tableName: info},
			TakenAt: snapshot.TakenAt,
		}
	}

	if err := a.out.SchemaView(snapshot, format); err != nil {
		return err
	}

	if withSample && format == formatter.FormatTable {
		return renderSamples(a, snapshot)
	}

	return nil
}

func renderSamples(a *app, snapshot *schema.Schema) error {
	for _, name := range snapshot.TableNames() {
		info, _ := snapshot.Table(name)
		if info.Sample == nil || len(info.Sample.Rows) == 0 {
			continue
		}

		fmt.Printf("Sample of %s:\n", name)

		if err := a.out.ResultSet(info.Sample, formatter.FormatTable); err != nil {
			return err
		}

		fmt.Println()
	}

	return nil
}
