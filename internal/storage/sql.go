package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/Veraticus/reviewlens/internal/config"
	"github.com/Veraticus/reviewlens/internal/model"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/lib/pq"              // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver
)

const categoriesTable = "categories"

// SQLBackend stores categories in a relational table. One row per category,
// ordered by its sort_order column.
type SQLBackend struct {
	db      *sql.DB
	builder sq.StatementBuilderType
	dialect string
}

// NewSQLBackend opens a database for the given dialect (sqlite, mysql or
// postgres). For sqlite the DSN is a file path or ":memory:".
func NewSQLBackend(dialect, dsn string) (*SQLBackend, error) {
	if err := validateString(dsn, "dsn"); err != nil {
		return nil, err
	}

	var (
		driver  string
		builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
	)

	switch dialect {
	case config.BackendSQLite:
		driver = "sqlite3"
		if dsn != ":memory:" {
			dir := filepath.Dir(dsn)
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		if !strings.Contains(dsn, "?") {
			dsn += "?_journal_mode=WAL&_busy_timeout=5000"
		}
	case config.BackendMySQL:
		driver = "mysql"
	case config.BackendPostgres:
		driver = "postgres"
		builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	default:
		return nil, fmt.Errorf("unsupported SQL dialect %q", dialect)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dialect == config.BackendSQLite {
		db.SetMaxOpenConns(1) // one connection keeps :memory: databases alive
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLBackend{db: db, builder: builder, dialect: dialect}, nil
}

// Close closes the database connection.
func (s *SQLBackend) Close() error {
	return s.db.Close()
}

// Load returns every category in stored order.
func (s *SQLBackend) Load(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query, args, err := s.builder.
		Select("name", "keywords").
		From(categoriesTable).
		OrderBy("sort_order").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.Name, &cat.Keywords); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// Save replaces the stored mapping in a single transaction.
func (s *SQLBackend) Save(ctx context.Context, categories []model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := s.builder.Delete(categoriesTable).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}

	if len(categories) > 0 {
		insert := s.builder.Insert(categoriesTable).Columns("name", "keywords", "sort_order")
		for i, c := range categories {
			insert = insert.Values(c.Name, c.Keywords, i)
		}
		query, args, err = insert.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert categories: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit categories: %w", err)
	}

	slog.Debug("saved categories", "dialect", s.dialect, "count", len(categories))
	return nil
}
