// Package sqlite persiste en un archivo local con el driver puro Go
// modernc.org/sqlite. Es el storage por defecto cuando no hay
// Postgres configurado: un hato de un solo dueño no necesita más.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Las fechas se guardan como TEXT con formatos fijos: el orden
// lexicográfico coincide con el cronológico y no dependemos de la
// conversión de tiempos del driver.
const (
	dateLayout = "2006-01-02"
	tsLayout   = "2006-01-02T15:04:05.999999999Z07:00"
)

// Open abre (o crea) el archivo de base de datos.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Un solo writer: sqlite serializa igual, y así evitamos SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema crea las tres tablas si no existen.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS cows (
			cow_id     TEXT PRIMARY KEY,
			notes      TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id           TEXT PRIMARY KEY,
			cow_id       TEXT NOT NULL,
			event_type   TEXT NOT NULL,
			event_date   TEXT NOT NULL,
			source       TEXT NOT NULL,
			descriptions TEXT NOT NULL DEFAULT '',
			days_offset  INTEGER NOT NULL DEFAULT 0,
			meta         TEXT NOT NULL DEFAULT '',
			recorded_at  TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_cow ON events (cow_id)`,
		`CREATE INDEX IF NOT EXISTS idx_events_cow_source ON events (cow_id, source)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
