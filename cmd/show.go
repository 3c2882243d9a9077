package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/courtdata/querydesk/internal/formatter"
)

func ShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Display one query in full, SQL included",
		ArgsUsage: " <query-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (table, json)",
				Value:   "table",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() != 1 {
				return fmt.Errorf("expected exactly 1 argument, got %d", args.Len())
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			return runShow(a, args.First(), cmd.String("format"))
		},
	}
}

func runShow(a *app, id, formatName string) error {
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

	return a.out.RecordDetail(*rec, format)
}
