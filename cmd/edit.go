package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func EditCommand() *cli.Command {
	return &cli.Command{
		Name:        "edit",
		Usage:       "Update a library query in place",
		Description: `Change the title, SQL, or description of an existing query. The query keeps its id; the type is reclassified from the new SQL. Fields not given keep their current value.`,
		ArgsUsage:   " <query-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "title",
				Aliases: []string{"t"},
				Usage:   "New title",
			},
			&cli.StringFlag{
				Name:  "sql",
				Usage: "New SQL text",
			},
			&cli.StringFlag{
				Name:  "sql-file",
				Usage: "Read the new SQL text from this file",
			},
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "New description",
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

			sqlText, err := resolveSQLInput(cmd.String("sql"), cmd.String("sql-file"))
			if err != nil {
				return err
			}

			return runEdit(a, args.First(), cmd.String("title"), sqlText, cmd.String("description"))
		},
	}
}

func runEdit(a *app, id, title, sqlText, description string) error {
	ix, store, err := a.openLibrary()
	if err != nil {
		return err
	}

	current, err := ix.Get(id)
	if err != nil {
		return err
	}

	if title == "" {
		title = current.Title
	}

	if sqlText == "" {
		sqlText = current.SQL
	}

	if description == "" {
		description = current.Description
	}

	rec, err := ix.UpsertFromUserEdit(id, title, sqlText, description)
	if err != nil {
		return err
	}

	if err := a.saveLibrary(ix, store); err != nil {
		return err
	}

	fmt.Printf("Updated '%s' (%s, type %s)\n", rec.Title, rec.ID, rec.Type)

	return nil
}
