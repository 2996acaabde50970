package postgres

import (
	"context"
	"embed"
	"io"
	"io/fs"
	"sort"

	ierr "github.com/hanahub/ab-discount-app/internal/errors"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies every embedded migration in file name order. The
// statements are idempotent so reruns are safe.
func (db *DB) Migrate(ctx context.Context) error {
	return db.WithTx(ctx, func(ctx context.Context) error {
		return walkMigrations(func(name, statements string) error {
			db.logger.Infow("applying migration", "name", name)
			if _, err := db.GetQuerier(ctx).ExecContext(ctx, statements); err != nil {
				return ierr.WithError(err).
					WithHintf("Migration %s failed", name).
					Mark(ierr.ErrDatabase)
			}
			return nil
		})
	})
}

// WriteMigrations prints the embedded migrations without running them
func WriteMigrations(w io.Writer) error {
	return walkMigrations(func(name, statements string) error {
		_, err := io.WriteString(w, "-- "+name+"\n"+statements+"\n")
		return err
	})
}

func walkMigrations(fn func(name, statements string) error) error {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrSystem)
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := migrations.ReadFile(name)
		if err != nil {
			return ierr.WithError(err).Mark(ierr.ErrSystem)
		}
		if err := fn(name, string(content)); err != nil {
			return err
		}
	}
	return nil
}
