// Package database хранилище сущностей, срезов и истории загрузок
// поверх sqlite. Мутирующие операции сериализуются: применение результата
// загрузки к хранилищу — один атомарный шаг replace-or-merge.
package database

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// DB обертка над соединением sqlite с сериализацией записи
type DB struct {
	conn    *sql.DB
	writeMu sync.Mutex
}

// Open открывает базу и применяет миграции
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", path, err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close закрывает соединение
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn отдает нижележащее соединение для проверок здоровья
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// migrate создает схему. Миграции идемпотентны и выполняются на каждом
// старте.
func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS assets (
			kind TEXT NOT NULL,
			id TEXT NOT NULL,
			project_id TEXT NOT NULL DEFAULT '',
			business_key TEXT NOT NULL DEFAULT '',
			payload TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (kind, id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_assets_project ON assets(project_id, kind)`,
		`CREATE TABLE IF NOT EXISTS import_runs (
			id TEXT PRIMARY KEY,
			file TEXT NOT NULL,
			source_type TEXT NOT NULL DEFAULT '',
			started_at DATETIME NOT NULL,
			finished_at DATETIME,
			stats TEXT NOT NULL DEFAULT '{}',
			warnings TEXT NOT NULL DEFAULT '[]',
			diff TEXT NOT NULL DEFAULT '{}'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_import_runs_started ON import_runs(started_at DESC)`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL,
			captured_at DATETIME NOT NULL,
			author TEXT NOT NULL DEFAULT '',
			payload TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_project ON snapshots(project_id, captured_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_captured ON snapshots(captured_at)`,
	}

	for _, migration := range migrations {
		if _, err := db.conn.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %s, error: %w", migration, err)
		}
	}
	return nil
}
