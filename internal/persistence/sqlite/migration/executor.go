package migration

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"time"
)

const versionTableSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version TEXT PRIMARY KEY,
	applied_at TEXT NOT NULL,
	execution_time_ms INTEGER NOT NULL
)`

// Apply runs every pending migration found in fsys and returns the versions
// it executed, in order.
func Apply(ctx context.Context, db *sql.DB, fsys fs.FS, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	migrations, err := Scan(fsys)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, versionTableSQL); err != nil {
		return nil, newError("", "schema_migrations", "create version table", err)
	}

	applied, err := AppliedVersions(ctx, db)
	if err != nil {
		return nil, err
	}

	var executed []string
	for _, m := range migrations {
		if _, ok := applied[m.Version]; ok {
			continue
		}

		start := time.Now()
		if err := execute(ctx, db, m, start); err != nil {
			logger.ErrorContext(ctx, "migration failed", "version", m.Version, "file", m.File, "error", err)
			return executed, err
		}
		logger.InfoContext(ctx, "migration applied",
			"version", m.Version,
			"description", m.Description,
			"duration", time.Since(start),
		)
		executed = append(executed, m.Version)
	}

	return executed, nil
}

// AppliedVersions returns the set of versions recorded in schema_migrations.
func AppliedVersions(ctx context.Context, db *sql.DB) (map[string]struct{}, error) {
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, newError("", "schema_migrations", "list applied versions", err)
	}
	defer func() { _ = rows.Close() }()

	applied := make(map[string]struct{})
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, newError("", "schema_migrations", "scan applied version", err)
		}
		applied[version] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, newError("", "schema_migrations", "iterate applied versions", err)
	}
	return applied, nil
}

func execute(ctx context.Context, db *sql.DB, m Migration, start time.Time) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return newError(m.Version, m.File, "begin transaction", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for i, stmt := range splitStatements(m.SQL) {
		if _, execErr := tx.ExecContext(ctx, stmt); execErr != nil {
			return newError(m.Version, m.File, fmt.Sprintf("execute statement %d", i+1), execErr)
		}
	}

	if _, execErr := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, applied_at, execution_time_ms) VALUES (?, ?, ?)`,
		m.Version, time.Now().UTC().Format(time.RFC3339), time.Since(start).Milliseconds(),
	); execErr != nil {
		return newError(m.Version, m.File, "record migration", execErr)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return newError(m.Version, m.File, "commit transaction", commitErr)
	}
	return nil
}
