package cmd

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/courtdata/querydesk/internal/config"
	"github.com/courtdata/querydesk/internal/database"
	"github.com/courtdata/querydesk/internal/errors"
	"github.com/courtdata/querydesk/internal/formatter"
	"github.com/courtdata/querydesk/internal/library"
	"github.com/courtdata/querydesk/internal/logging"
	"github.com/courtdata/querydesk/internal/persist"
	"github.com/courtdata/querydesk/internal/schema"
)

// app bundles the loaded configuration and output formatter shared by all
// command actions.
type app struct {
	cfg *config.Config
	out *formatter.Formatter
}

// newApp loads configuration with flag overrides applied and initializes the
// global logger. Every command action goes through here first.
func newApp(cmd *cli.Command) (*app, error) {
	overrides := map[string]interface{}{
		"db-path":      cmd.String("db-path"),
		"db-driver":    cmd.String("db-driver"),
		"scripts-dir":  cmd.String("scripts-dir"),
		"library-path": cmd.String("library-path"),
		"log-level":    cmd.String("log-level"),
		"verbose":      cmd.Bool("verbose"),
	}

	cfg, err := config.LoadConfigWithOverrides(overrides)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeConfig, "failed to load configuration")
	}

	cfg.ExpandAllPaths()

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	if cfg.Debug.Verbose && cfg.Logging.Level != "debug" {
		cfg.Logging.Level = "debug"
	}

	if err := logging.InitializeLogger(cfg.Logging); err != nil {
		logging.SetupFallbackLogger()
	}

	return &app{
		cfg: cfg,
		out: formatter.NewFormatter(os.Stdout),
	}, nil
}

// openLibrary hydrates the persisted query library into a fresh index
func (a *app) openLibrary() (*library.Index, *persist.FileStore, error) {
	store := persist.NewFileStore(a.cfg.Library.Path)

	ix := library.NewIndex()

	data, err := store.Load()
	if err != nil {
		return nil, nil, err
	}

	if data != nil {
		records, err := library.Hydrate(data)
		if err != nil {
			return nil, nil, err
		}

		ix.Merge(records)
	}

	return ix, store, nil
}

// saveLibrary serializes the index back to its store
func (a *app) saveLibrary(ix *library.Index, store *persist.FileStore) error {
	data, err := ix.Serialize()
	if err != nil {
		return err
	}

	return store.Save(data)
}

// openDB opens the configured database connection
func (a *app) openDB() (*database.DB, error) {
	return database.Open(a.cfg.Database)
}

// snapshotSchema introspects the live database schema
func (a *app) snapshotSchema(ctx context.Context, db *database.DB) (*schema.Schema, error) {
	in := schema.NewIntrospector(db, a.cfg.Database.SampleRows)
	return in.Snapshot(ctx)
}
