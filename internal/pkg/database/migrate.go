package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// ApplySchema aplica o schema base embutido. É idempotente: o goose registra
// a versão aplicada em goose_db_version.
func ApplySchema(db *sql.DB) error {
	goose.SetLogger(goose.NopLogger())
	return Migrate(db, "up")
}

// Migrate executa um comando do goose (up, down, status, version, reset, ...)
// sobre as migrações embutidas no binário. A saída usa o logger padrão do goose.
func Migrate(db *sql.DB, command string, args ...string) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose: dialeto inválido: %w", err)
	}
	if err := goose.Run(command, db, migrationsDir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}
