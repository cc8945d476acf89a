// Package migration applies versioned SQL schema changes to a SQLite database.
//
// Migrations are read from an fs.FS (normally an embedded directory) and must
// be named {version}_{description}.sql, e.g. "001_initial_schema.sql". Each
// file runs in its own transaction and is recorded in the schema_migrations
// table, so re-running Apply only executes the files that are still pending.
//
// Example usage:
//
//	applied, err := migration.Apply(ctx, db, migrationFiles, logger)
//	if err != nil {
//		return fmt.Errorf("migrate: %w", err)
//	}
package migration
