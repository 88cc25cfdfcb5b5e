// Package migrations embeds the schema so tests and tooling apply exactly the files that ship.
package migrations

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"slices"

	"booking-marketplace/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed *.sql
var files embed.FS

type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Apply runs every embedded migration in file name order. It is not idempotent; run it against an empty database.
func Apply(ctx context.Context, db Execer) error {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return errs.Wrap(err, "list migrations")
	}
	slices.Sort(names)

	for _, name := range names {
		body, err := files.ReadFile(name)
		if err != nil {
			return errs.Wrapf(err, "read migration %s", name)
		}
		if _, err := db.Exec(ctx, string(body)); err != nil {
			return errs.Wrapf(err, "apply migration %s", name)
		}
		slog.Debug("migration applied", "file", name)
	}
	return nil
}
