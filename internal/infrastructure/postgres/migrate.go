package postgres

import (
	"context"
	"embed"
	"fmt"
	"path"
	"sort"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// Migrate ejecuta las migraciones embebidas en orden de nombre.
// Los scripts son idempotentes (IF NOT EXISTS / ON CONFLICT), se pueden repetir en cada arranque.
func Migrate(ctx context.Context, db Querier) error {
	entries, err := embeddedMigrations.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read embedded migrations: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".sql" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := embeddedMigrations.ReadFile(path.Join("migrations", name))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if len(content) == 0 {
			continue
		}
		// Sin argumentos pgx usa el protocolo simple: admite varias sentencias por script.
		if _, err := db.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("exec migration %s: %w", name, err)
		}
	}
	return nil
}
