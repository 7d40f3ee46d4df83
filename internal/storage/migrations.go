package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Veraticus/reviewlens/internal/config"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(tx *sql.Tx, dialect string) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Categories table",
		Up: func(tx *sql.Tx, dialect string) error {
			query := `CREATE TABLE IF NOT EXISTS categories (
				name VARCHAR(255) NOT NULL PRIMARY KEY,
				keywords TEXT NOT NULL,
				sort_order INTEGER NOT NULL
			)`
			if dialect == config.BackendMySQL {
				query += ` CHARACTER SET utf8mb4 COLLATE utf8mb4_bin`
			}
			if _, err := tx.Exec(query); err != nil {
				return fmt.Errorf("failed to create categories table: %w", err)
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Index category order",
		Up: func(tx *sql.Tx, _ string) error {
			if _, err := tx.Exec(`CREATE INDEX idx_categories_sort_order ON categories(sort_order)`); err != nil {
				return fmt.Errorf("failed to create index: %w", err)
			}
			return nil
		},
	},
}

// Migrate applies all pending database migrations. The applied version is
// tracked in a schema_version table so every dialect shares one mechanism.
func (s *SQLBackend) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	currentVersion, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx, s.dialect); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		query, args, buildErr := s.builder.Insert("schema_version").Columns("version").Values(migration.Version).ToSql()
		if buildErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to build version update: %w", buildErr)
		}
		if _, execErr := tx.ExecContext(ctx, query, args...); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	finalVersion, err := s.schemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}

func (s *SQLBackend) schemaVersion(ctx context.Context) (int, error) {
	query, args, err := s.builder.Select("COALESCE(MAX(version), 0)").From("schema_version").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build version query: %w", err)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}
