package cmd

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/courtdata/querydesk/internal/formatter"
	"github.com/courtdata/querydesk/internal/library"
)

func ListCommand() *cli.Command {
	return &cli.Command{
		Name:        "list",
		Usage:       "List queries in the library",
		Description: `List library queries, optionally narrowed by section, type, or a free-text search across title, SQL, and description.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "section",
				Aliases: []string{"s"},
				Usage:   "Filter by section (demographics, mental_health, criminal_history, performance, analytics, manual, all)",
				Value:   "all",
			},
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Filter by query type (select, insert, update, delete, create, utility, complex, other, all)",
				Value:   "all",
			},
			&cli.StringFlag{
				Name:  "search",
				Usage: "Case-insensitive search across title, SQL, description, and section",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Sort order (name, type, usage, section)",
				Value: "section",
			},
			&cli.BoolFlag{
				Name:  "favorites",
				Usage: "Show only favorite queries",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (table, json)",
				Value:   "table",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			return runList(a, listOptions{
				section:   cmd.String("section"),
				qtype:     cmd.String("type"),
				search:    cmd.String("search"),
				sortKey:   cmd.String("sort"),
				favorites: cmd.Bool("favorites"),
				format:    cmd.String("format"),
			})
		},
	}
}

type listOptions struct {
	section   string
	qtype     string
	search    string
	sortKey   string
	favorites bool
	format    string
}

func runList(a *app, opts listOptions) error {
	format, err := formatter.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	ix, _, err := a.openLibrary()
	if err != nil {
		return err
	}

	records := ix.Filter(library.FilterOptions{
		Section: string(library.ParseSection(opts.section)),
		Type:    opts.qtype,
		Search:  opts.search,
	})

	if opts.favorites {
		favorites := records[:0]

		for _, rec := range records {
			if rec.IsFavorite {
				favorites = append(favorites, rec)
			}
		}

		records = favorites
	}

	library.SortRecords(records, library.SortKey(opts.sortKey))

	return a.out.RecordList(records, format)
}
