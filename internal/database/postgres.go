// File: internal/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	dbdriver "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	src "github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrateInstance 只暴露需要的操作，方便測試替換
type migrateInstance interface {
	Up() error
	Down() error
}

// 以下變數在測試中覆寫
var (
	pgxpoolNew             = pgxpool.New
	sqlOpenDB              = sql.Open
	postgresWithInstanceFn = postgres.WithInstance
	iofsNewFn              = iofs.New
	migrateNewWithInstance = func(sourceName string, sourceDriver src.Driver, databaseName string, databaseDriver dbdriver.Driver) (migrateInstance, error) {
		m, err := migrate.NewWithInstance(sourceName, sourceDriver, databaseName, databaseDriver)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
)

// NewPgxPool 建立連線池，*pgxpool.Pool 直接實作 DB
func NewPgxPool(ctx context.Context, url string) (DB, error) {
	pool, err := pgxpoolNew(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("NewPgxPool: %w", err)
	}
	return pool, nil
}

// RunMigrations 嵌入並執行 SQL migration (up all)，資料表不存在時建立
func RunMigrations(dbURL string) error {
	return withMigrator(dbURL, func(m migrateInstance) error {
		return m.Up()
	})
}

// RollbackAll 退回所有 migration (down to version 0)
func RollbackAll(dbURL string) error {
	return withMigrator(dbURL, func(m migrateInstance) error {
		return m.Down()
	})
}

func withMigrator(dbURL string, fn func(migrateInstance) error) error {
	// 建立 *sql.DB 使用 pgx stdlib driver
	sqlDB, err := sqlOpenDB("pgx", dbURL)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	driver, err := postgresWithInstanceFn(sqlDB, &postgres.Config{})
	if err != nil {
		return err
	}

	sourceDriver, err := iofsNewFn(migrationsFS, "migrations")
	if err != nil {
		return err
	}

	m, err := migrateNewWithInstance("iofs", sourceDriver, "postgres", driver)
	if err != nil {
		return err
	}

	if err := fn(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
