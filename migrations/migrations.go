// Package migrations содержит SQL-схему сервиса и применяет ее к базе
package migrations

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

//go:embed *.sql
var files embed.FS

var ErrMigration = errors.New("migration failed")

const createVersionsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version    TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// TransactionManager запускает функцию в транзакции
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger логгер раннера
type Logger interface {
	Info(format string, v ...interface{})
}

// Runner применяет встроенные миграции по порядку имен файлов
type Runner struct {
	db        dbmetrics.DBExecutor
	txManager TransactionManager
	logger    Logger
	source    fs.FS
}

func NewRunner(db dbmetrics.DBExecutor, txManager TransactionManager, logger Logger) *Runner {
	return &Runner{db: db, txManager: txManager, logger: logger, source: files}
}

// Apply применяет еще не примененные миграции и возвращает их версии
func (r *Runner) Apply(ctx context.Context) ([]string, error) {
	if _, err := r.db.ExecContext(ctx, createVersionsTable); err != nil {
		return nil, fmt.Errorf("%w: Runner.Apply - create versions table: %v", ErrMigration, err)
	}

	applied, err := r.appliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	names, err := fs.Glob(r.source, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("%w: Runner.Apply - list files: %v", ErrMigration, err)
	}
	sort.Strings(names)

	var done []string
	for _, name := range names {
		if applied[name] {
			continue
		}

		body, err := fs.ReadFile(r.source, name)
		if err != nil {
			return done, fmt.Errorf("%w: Runner.Apply - read %s: %v", ErrMigration, name, err)
		}

		if err := r.applyOne(ctx, name, string(body)); err != nil {
			return done, err
		}

		r.logger.Info("Runner.Apply: migration applied version=%s", name)
		done = append(done, name)
	}

	return done, nil
}

func (r *Runner) appliedVersions(ctx context.Context) (map[string]bool, error) {
	query, args, err := psqlbuilder.Select("version").From("schema_migrations").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Runner.appliedVersions - build query: %v", ErrMigration, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Runner.appliedVersions - query: %v", ErrMigration, err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("%w: Runner.appliedVersions - scan: %v", ErrMigration, err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Runner.appliedVersions - rows: %v", ErrMigration, err)
	}

	return applied, nil
}

func (r *Runner) applyOne(ctx context.Context, name, body string) error {
	return r.txManager.Do(ctx, func(ctx context.Context) error {
		executor := dbmetrics.GetExecutor(ctx, r.db)

		if _, err := executor.ExecContext(ctx, body); err != nil {
			return fmt.Errorf("%w: Runner.applyOne - exec %s: %v", ErrMigration, name, err)
		}

		query, args, err := psqlbuilder.Insert("schema_migrations").
			Columns("version").
			Values(name).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: Runner.applyOne - build insert: %v", ErrMigration, err)
		}

		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: Runner.applyOne - record %s: %v", ErrMigration, name, err)
		}

		return nil
	})
}
