package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/courtdata/querydesk/internal/errors"
)

func SaveCommand() *cli.Command {
	return &cli.Command{
		Name:        "save",
		Usage:       "Save an ad-hoc query to the library",
		Description: `Add a query to the library's manual section. The SQL comes from --sql or from a file via --sql-file.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "title",
				Aliases:  []string{"t"},
				Usage:    "Title for the saved query",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "sql",
				Usage: "SQL text to save",
			},
			&cli.StringFlag{
				Name:  "sql-file",
				Usage: "Read the SQL text from this file",
			},
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "Optional description",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			sqlText, err := resolveSQLInput(cmd.String("sql"), cmd.String("sql-file"))
			if err != nil {
				return err
			}

			return runSave(a, cmd.String("title"), sqlText, cmd.String("description"))
		},
	}
}

func resolveSQLInput(sqlText, sqlFile string) (string, error) {
	if sqlText != "" && sqlFile != "" {
		return "", errors.New(errors.ErrTypeValidation, "--sql and --sql-file are mutually exclusive")
	}

	if sqlFile != "" {
		data, err := os.ReadFile(sqlFile)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrTypeValidation, "failed to read SQL file")
		}

		return strings.TrimSpace(string(data)), nil
	}

	return sqlText, nil
}

func runSave(a *app, title, sqlText, description string) error {
	ix, store, err := a.openLibrary()
	if err != nil {
		return err
	}

	rec, err := ix.SaveCurrent(title, sqlText, description)
	if err != nil {
		return err
	}

	if err := a.saveLibrary(ix, store); err != nil {
		return err
	}

	fmt.Printf("Saved '%s' as %s\n", rec.Title, rec.ID)

	return nil
}
