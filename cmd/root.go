package cmd

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"
)

func Root() *cli.Command {
	return &cli.Command{
		Name:  "querydesk",
		Usage: "Browse, run, and validate the court program's SQL query library",
		Description: `querydesk maintains a searchable library of annotated SQL queries for the
mental health court database. Queries are loaded from section scripts, can be
run against the local database, and can be checked against the live schema
before use.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "db-path",
				Usage: "Path to the database file",
			},
			&cli.StringFlag{
				Name:  "db-driver",
				Usage: "Database driver (sqlite3 or duckdb)",
			},
			&cli.StringFlag{
				Name:  "scripts-dir",
				Usage: "Directory containing section query scripts",
			},
			&cli.StringFlag{
				Name:  "library-path",
				Usage: "Path to the persisted query library",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable verbose output",
			},
		},
		Commands: []*cli.Command{
			LoadCommand(),
			ListCommand(),
			ShowCommand(),
			RunCommand(),
			SaveCommand(),
			EditCommand(),
			FavoriteCommand(),
			CheckCommand(),
			AnalyzeCommand(),
			ConfigCommand(),
		},
	}
}

func Execute() error {
	return Root().Run(context.Background(), os.Args)
}
