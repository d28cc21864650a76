package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"edugen/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// oracleObjectExists is raised by CREATE when the table is already there
const oracleObjectExists = "ORA-00955"

// Direction selects which migration files to run
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Migrations lists the embedded files for a direction in the order they run.
// Down migrations run newest first.
func Migrations(dir Direction) ([]string, error) {
	entries, err := fs.ReadDir(migrationFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("could not read migrations: %w", err)
	}

	suffix := "." + string(dir) + ".sql"
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), suffix) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	if dir == Down {
		sort.Sort(sort.Reverse(sort.StringSlice(names)))
	}
	return names, nil
}

// RunMigrations executes every embedded migration for dir. Each file holds a
// single statement. Creating an object that already exists is not an error.
func RunMigrations(ctx context.Context, db *sqlx.DB, dir Direction) error {
	names, err := Migrations(dir)
	if err != nil {
		return err
	}

	l := logger.Get()
	for _, name := range names {
		content, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", name, err)
		}

		stmt := strings.TrimSuffix(strings.TrimSpace(string(content)), ";")
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			if dir == Up && strings.Contains(err.Error(), oracleObjectExists) {
				l.Info("Migration already applied", zap.String("file", name))
				continue
			}
			return fmt.Errorf("could not execute migration %s: %w", name, err)
		}
		l.Info("Executed migration", zap.String("file", name))
	}

	l.Info("Migrations completed successfully", zap.String("direction", string(dir)), zap.Int("files", len(names)))
	return nil
}
