package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/entities"
)

// ImportRun запись истории загрузок для аудита
type ImportRun struct {
	ID         string             `json:"id"`
	File       string             `json:"file"`
	SourceType string             `json:"source_type"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
	Stats      json.RawMessage    `json:"stats"`
	Warnings   []entities.Warning `json:"warnings"`
	Diff       json.RawMessage    `json:"diff"`
}

// RecordImportRun сохраняет итог прогона загрузки
func (db *DB) RecordImportRun(run ImportRun) error {
	warnings, err := json.Marshal(run.Warnings)
	if err != nil {
		return fmt.Errorf("failed to encode warnings: %w", err)
	}
	stats := run.Stats
	if stats == nil {
		stats = json.RawMessage(`{}`)
	}
	diff := run.Diff
	if diff == nil {
		diff = json.RawMessage(`{}`)
	}

	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	_, err = db.conn.Exec(
		`INSERT INTO import_runs (id, file, source_type, started_at, finished_at, stats, warnings, diff)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.File, run.SourceType, run.StartedAt.UTC(), run.FinishedAt.UTC(),
		string(stats), string(warnings), string(diff))
	if err != nil {
		return fmt.Errorf("failed to record import run %s: %w", run.ID, err)
	}
	return nil
}

// ListImportRuns история загрузок от новых к старым
func (db *DB) ListImportRuns(limit int) ([]ImportRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.conn.Query(
		`SELECT id, file, source_type, started_at, finished_at, stats, warnings, diff
		 FROM import_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list import runs: %w", err)
	}
	defer rows.Close()

	var runs []ImportRun
	for rows.Next() {
		var run ImportRun
		var stats, warnings, diff string
		if err := rows.Scan(&run.ID, &run.File, &run.SourceType, &run.StartedAt, &run.FinishedAt,
			&stats, &warnings, &diff); err != nil {
			return nil, err
		}
		run.Stats = json.RawMessage(stats)
		run.Diff = json.RawMessage(diff)
		if err := json.Unmarshal([]byte(warnings), &run.Warnings); err != nil {
			return nil, fmt.Errorf("failed to decode warnings of run %s: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
