package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func FavoriteCommand() *cli.Command {
	return &cli.Command{
		Name:      "favorite",
		Aliases:   []string{"fav"},
		Usage:     "Toggle a query's favorite flag",
		ArgsUsage: " <query-id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() != 1 {
				return fmt.Errorf("expected exactly 1 argument, got %d", args.Len())
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			return runFavorite(a, args.First())
		},
	}
}

func runFavorite(a *app, id string) error {
	ix, store, err := a.openLibrary()
	if err != nil {
		return err
	}

	favorite, err := ix.ToggleFavorite(id)
	if err != nil {
		return err
	}

	if err := a.saveLibrary(ix, store); err != nil {
		return err
	}

	if favorite {
		fmt.Printf("%s is now a favorite.\n", id)
	} else {
		fmt.Printf("%s is no longer a favorite.\n", id)
	}

	return nil
}
