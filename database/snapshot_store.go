package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/snapshots"
)

// CreateSnapshot сохраняет срез. Срезы только добавляются и после
// создания не изменяются.
func (db *DB) CreateSnapshot(snapshot snapshots.DailySnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", snapshot.ID, err)
	}

	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	_, err = db.conn.Exec(
		`INSERT INTO snapshots (id, project_id, captured_at, author, payload) VALUES (?, ?, ?, ?, ?)`,
		snapshot.ID, snapshot.ProjectID, snapshot.CapturedAt.UTC(), snapshot.Author, string(payload))
	if err != nil {
		return fmt.Errorf("failed to store snapshot %s: %w", snapshot.ID, err)
	}
	return nil
}

// GetSnapshot читает срез по id
func (db *DB) GetSnapshot(id string) (snapshots.DailySnapshot, error) {
	var payload string
	err := db.conn.QueryRow(`SELECT payload FROM snapshots WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return snapshots.DailySnapshot{}, fmt.Errorf("snapshot %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return snapshots.DailySnapshot{}, fmt.Errorf("failed to load snapshot %s: %w", id, err)
	}

	var snapshot snapshots.DailySnapshot
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		return snapshots.DailySnapshot{}, fmt.Errorf("failed to decode snapshot %s: %w", id, err)
	}
	return snapshot, nil
}

// ListSnapshots срезы проекта от новых к старым
func (db *DB) ListSnapshots(projectID string) ([]snapshots.DailySnapshot, error) {
	return db.querySnapshots(
		`SELECT payload FROM snapshots WHERE project_id = ? ORDER BY captured_at DESC, id DESC`, projectID)
}

// ListSnapshotsInRange срезы проекта в интервале времени, от новых к старым
func (db *DB) ListSnapshotsInRange(projectID string, from, to time.Time) ([]snapshots.DailySnapshot, error) {
	return db.querySnapshots(
		`SELECT payload FROM snapshots WHERE project_id = ? AND captured_at >= ? AND captured_at <= ?
		 ORDER BY captured_at DESC, id DESC`, projectID, from.UTC(), to.UTC())
}

func (db *DB) querySnapshots(query string, args ...interface{}) ([]snapshots.DailySnapshot, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var result []snapshots.DailySnapshot
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var snapshot snapshots.DailySnapshot
		if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot: %w", err)
		}
		result = append(result, snapshot)
	}
	return result, rows.Err()
}

// DeleteSnapshot удаляет один срез
func (db *DB) DeleteSnapshot(id string) error {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	result, err := db.conn.Exec(`DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", id, err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("snapshot %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteProjectSnapshots каскадно удаляет все срезы проекта
func (db *DB) DeleteProjectSnapshots(projectID string) (int64, error) {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	result, err := db.conn.Exec(`DELETE FROM snapshots WHERE project_id = ?`, projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete snapshots of project %s: %w", projectID, err)
	}
	affected, _ := result.RowsAffected()
	return affected, nil
}
