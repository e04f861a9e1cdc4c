package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/entities"
)

// Виды активов в таблице assets
const (
	KindProject = "project"
	KindArea    = "area"
	KindCell    = "cell"
	KindRobot   = "robot"
	KindTool    = "tool"
)

// storedAsset контракт записи таблицы assets
type storedAsset interface {
	EntityID() string
	BusinessKey() string
}

// loadAssets читает все активы вида (и проекта, если задан)
func loadAssets[T storedAsset](db *DB, kind, projectID string) ([]T, error) {
	query := `SELECT payload FROM assets WHERE kind = ?`
	args := []interface{}{kind}
	if projectID != "" {
		query += ` AND project_id = ?`
		args = append(args, projectID)
	}
	query += ` ORDER BY id`

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s assets: %w", kind, err)
	}
	defer rows.Close()

	var result []T
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan %s asset: %w", kind, err)
		}
		var entity T
		if err := json.Unmarshal([]byte(payload), &entity); err != nil {
			return nil, fmt.Errorf("failed to decode %s asset: %w", kind, err)
		}
		result = append(result, entity)
	}
	return result, rows.Err()
}

// replaceAssets атомарно заменяет все активы вида для проекта.
// Один транзакционный шаг: конкурентные загрузки не перемежают частичные
// записи по одному проекту.
func replaceAssets[T storedAsset](db *DB, kind, projectID string, items []T) error {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM assets WHERE kind = ? AND project_id = ?`, kind, projectID); err != nil {
		return fmt.Errorf("failed to clear %s assets: %w", kind, err)
	}

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO assets (kind, id, project_id, business_key, payload, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, item := range items {
		payload, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to encode %s asset %s: %w", kind, item.EntityID(), err)
		}
		if _, err := stmt.Exec(kind, item.EntityID(), projectID, item.BusinessKey(), string(payload), now); err != nil {
			return fmt.Errorf("failed to store %s asset %s: %w", kind, item.EntityID(), err)
		}
	}

	return tx.Commit()
}

// LoadProjects все проекты
func (db *DB) LoadProjects() ([]entities.Project, error) {
	return loadAssets[entities.Project](db, KindProject, "")
}

// ReplaceProjects заменяет коллекцию проектов
func (db *DB) ReplaceProjects(items []entities.Project) error {
	return replaceAssets(db, KindProject, "", items)
}

// LoadAreas участки проекта
func (db *DB) LoadAreas(projectID string) ([]entities.Area, error) {
	return loadAssets[entities.Area](db, KindArea, projectID)
}

// ReplaceAreas заменяет участки проекта
func (db *DB) ReplaceAreas(projectID string, items []entities.Area) error {
	return replaceAssets(db, KindArea, projectID, items)
}

// LoadCells станции проекта
func (db *DB) LoadCells(projectID string) ([]entities.Cell, error) {
	return loadAssets[entities.Cell](db, KindCell, projectID)
}

// ReplaceCells заменяет станции проекта
func (db *DB) ReplaceCells(projectID string, items []entities.Cell) error {
	return replaceAssets(db, KindCell, projectID, items)
}

// LoadRobots роботы проекта
func (db *DB) LoadRobots(projectID string) ([]entities.Robot, error) {
	return loadAssets[entities.Robot](db, KindRobot, projectID)
}

// ReplaceRobots заменяет роботов проекта
func (db *DB) ReplaceRobots(projectID string, items []entities.Robot) error {
	return replaceAssets(db, KindRobot, projectID, items)
}

// LoadTools инструменты проекта
func (db *DB) LoadTools(projectID string) ([]entities.Tool, error) {
	return loadAssets[entities.Tool](db, KindTool, projectID)
}

// ReplaceTools заменяет инструменты проекта
func (db *DB) ReplaceTools(projectID string, items []entities.Tool) error {
	return replaceAssets(db, KindTool, projectID, items)
}

// CountAssets количество активов по видам для проекта
func (db *DB) CountAssets(projectID string) (map[string]int, error) {
	rows, err := db.conn.Query(
		`SELECT kind, COUNT(*) FROM assets WHERE project_id = ? GROUP BY kind`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to count assets: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		counts[kind] = count
	}
	return counts, rows.Err()
}

// ErrNotFound запись отсутствует
var ErrNotFound = sql.ErrNoRows

// IsNotFound сообщает, что ошибка означает отсутствие записи
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
