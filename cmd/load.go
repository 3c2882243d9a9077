package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/courtdata/querydesk/internal/library"
	"github.com/courtdata/querydesk/internal/logging"
	"github.com/courtdata/querydesk/internal/persist"
	"github.com/courtdata/querydesk/internal/script"
)

func LoadCommand() *cli.Command {
	return &cli.Command{
		Name:        "load",
		Usage:       "Load section scripts into the query library",
		Description: `Parse every section script in the scripts directory into query records and merge them with the persisted library. Sections whose script is missing fall back to the built-in query set.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			return runLoad(ctx, a, nil)
		},
	}
}

func runLoad(ctx context.Context, a *app, source script.Source) error {
	if source == nil {
		source = &script.DirSource{Dir: a.cfg.Scripts.Directory}
	}

	ix := library.NewIndex()
	script.NewLoader(source).LoadAll(ctx, ix)

	scripted := ix.Len()

	store := persist.NewFileStore(a.cfg.Library.Path)

	// Script records win over persisted duplicates; anything saved manually
	// or edited earlier survives the reload.
	data, err := store.Load()
	if err != nil {
		return err
	}

	kept := 0

	if data != nil {
		persisted, err := library.Hydrate(data)
		if err != nil {
			return err
		}

		kept = ix.Merge(persisted)
	}

	if err := a.saveLibrary(ix, store); err != nil {
		return err
	}

	logging.WithFields(map[string]interface{}{
		"scripted": scripted,
		"kept":     kept,
	}).Info("library loaded")

	fmt.Printf("Loaded %d queries from scripts (%d kept from previous library).\n", scripted, kept)
	fmt.Printf("Library now holds %d queries.\n", ix.Len())

	return nil
}
