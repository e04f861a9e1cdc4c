// Package services бизнес-логика HTTP-слоя: прием выгрузок, срезы,
// сводка для панели.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/database"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/dedup"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/diffing"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/entities"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/importer"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/server/monitoring"
	apperrors "github.com/GeorgeMcIntyre-Web/SimPilot-sub007/server/errors"
)

// допустимые расширения книг
var allowedExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
}

// DiffSummaries сводки изменений по видам сущностей за один прогон
type DiffSummaries struct {
	Projects diffing.Summary `json:"projects"`
	Areas    diffing.Summary `json:"areas"`
	Cells    diffing.Summary `json:"cells"`
	Robots   diffing.Summary `json:"robots"`
	Tools    diffing.Summary `json:"tools"`
}

// DedupStats статистика слияния по видам сущностей
type DedupStats struct {
	Projects dedup.Stats `json:"projects"`
	Areas    dedup.Stats `json:"areas"`
	Cells    dedup.Stats `json:"cells"`
	Robots   dedup.Stats `json:"robots"`
	Tools    dedup.Stats `json:"tools"`
}

// IngestReport итог одного прогона загрузки
type IngestReport struct {
	ImportRunID string                 `json:"import_run_id"`
	ProjectID   string                 `json:"project_id"`
	Files       []*importer.FileResult `json:"files"`
	Stats       DedupStats             `json:"stats"`
	Diff        DiffSummaries          `json:"diff"`
	Warnings    []entities.Warning     `json:"warnings,omitempty"`
	StartedAt   time.Time              `json:"started_at"`
	FinishedAt  time.Time              `json:"finished_at"`
}

// UploadService принимает книги, прогоняет конвейер загрузки и применяет
// результат к хранилищу
type UploadService struct {
	db          *database.DB
	pipeline    *importer.Pipeline
	metrics     *monitoring.MetricsCollector
	log         *zap.SugaredLogger
	uploadDir   string
	maxSize     int64
	parallelism int
}

// NewUploadService создает сервис загрузки
func NewUploadService(db *database.DB, pipeline *importer.Pipeline, metrics *monitoring.MetricsCollector,
	log *zap.SugaredLogger, uploadDir string, maxSizeMB int64, parallelism int) *UploadService {
	return &UploadService{
		db:          db,
		pipeline:    pipeline,
		metrics:     metrics,
		log:         log,
		uploadDir:   uploadDir,
		maxSize:     maxSizeMB * 1024 * 1024,
		parallelism: parallelism,
	}
}

// SaveUpload проверяет и сохраняет присланный файл во временный каталог.
// Возвращает путь сохраненной копии.
func (us *UploadService) SaveUpload(fileHeader *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		return "", apperrors.NewValidationError(
			fmt.Sprintf("unsupported file type %q, expected .xlsx or .xlsm", ext), nil)
	}
	if fileHeader.Size > us.maxSize {
		return "", apperrors.NewTooLargeError(
			fmt.Sprintf("file %s exceeds size limit of %d bytes", fileHeader.Filename, us.maxSize), nil)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", apperrors.NewInternalError("failed to open uploaded file", err)
	}
	defer src.Close()

	if err := os.MkdirAll(us.uploadDir, 0o755); err != nil {
		return "", apperrors.NewInternalError("failed to create upload directory", err)
	}

	// Имя уникализируется, оригинал сохраняется для происхождения записей
	target := filepath.Join(us.uploadDir,
		uuid.NewString()[:8]+"_"+filepath.Base(fileHeader.Filename))
	dst, err := os.Create(target)
	if err != nil {
		return "", apperrors.NewInternalError("failed to create upload file", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(target)
		return "", apperrors.NewInternalError("failed to save uploaded file", err)
	}
	return target, nil
}

// Ingest прогоняет файлы через конвейер и применяет результат к хранилищу
// проекта. Разбор конкурентный, применение — один последовательный шаг
// на вид сущностей.
func (us *UploadService) Ingest(ctx context.Context, projectID string, paths []string) (*IngestReport, error) {
	if projectID == "" {
		return nil, apperrors.NewValidationError("project_id is required", nil)
	}
	if len(paths) == 0 {
		return nil, apperrors.NewValidationError("no files to ingest", nil)
	}

	report := &IngestReport{
		ImportRunID: "run_" + uuid.NewString(),
		ProjectID:   projectID,
		StartedAt:   time.Now().UTC(),
	}

	start := time.Now()
	report.Files = us.pipeline.ProcessBatch(ctx, paths, us.parallelism)

	var parsed importer.ParsedSheet
	for _, file := range report.Files {
		report.Warnings = append(report.Warnings, file.Warnings...)
		if file.Failed() {
			continue
		}
		parsed.Projects = append(parsed.Projects, file.Parsed.Projects...)
		parsed.Areas = append(parsed.Areas, file.Parsed.Areas...)
		parsed.Cells = append(parsed.Cells, file.Parsed.Cells...)
		parsed.Robots = append(parsed.Robots, file.Parsed.Robots...)
		parsed.Tools = append(parsed.Tools, file.Parsed.Tools...)

		for _, sheet := range file.Sheets {
			us.metrics.RecordImportFile(string(sheet.Category.Category), time.Since(start))
			us.metrics.RecordImportRows(sheet.Profile.RowCount)
		}
	}
	for _, warning := range report.Warnings {
		us.metrics.RecordImportWarning(string(warning.Code))
	}

	if err := us.apply(projectID, parsed, report); err != nil {
		return nil, err
	}

	report.FinishedAt = time.Now().UTC()
	if err := us.record(report); err != nil {
		// История загрузок вторична по отношению к данным: ошибка аудита
		// логируется, но прогон считается успешным
		us.log.Errorw("failed to record import run", "run_id", report.ImportRunID, "error", err)
	}

	us.log.Infow("ingest finished",
		"run_id", report.ImportRunID,
		"project_id", projectID,
		"files", len(report.Files),
		"cells", report.Stats.Cells.Incoming,
		"warnings", len(report.Warnings),
		"duration", time.Since(start))
	return report, nil
}

// apply сливает разобранные сущности с хранилищем и сохраняет результат
func (us *UploadService) apply(projectID string, parsed importer.ParsedSheet, report *IngestReport) error {
	sourceFile := ""
	if len(report.Files) > 0 {
		sourceFile = report.Files[0].File
	}

	// Проекты: отдельная стратегия с поиском семантических дублей
	existingProjects, err := us.db.LoadProjects()
	if err != nil {
		return apperrors.NewInternalError("failed to load projects", err)
	}
	projectResult, projectWarnings := dedup.DeduplicateProjects(existingProjects, parsed.Projects)
	report.Stats.Projects = projectResult.Stats
	report.Warnings = append(report.Warnings, projectWarnings...)
	report.Diff.Projects = diffing.Build(report.ImportRunID, sourceFile, "projects",
		existingProjects, projectResult.Entities).Summary()
	if err := us.db.ReplaceProjects(projectResult.Entities); err != nil {
		return apperrors.NewInternalError("failed to store projects", err)
	}

	if err := applyKind(us.db.LoadAreas, us.db.ReplaceAreas, projectID, parsed.Areas,
		report, "areas", &report.Stats.Areas, &report.Diff.Areas); err != nil {
		return err
	}
	if err := applyKind(us.db.LoadCells, us.db.ReplaceCells, projectID, parsed.Cells,
		report, "cells", &report.Stats.Cells, &report.Diff.Cells); err != nil {
		return err
	}
	if err := applyKind(us.db.LoadRobots, us.db.ReplaceRobots, projectID, parsed.Robots,
		report, "robots", &report.Stats.Robots, &report.Diff.Robots); err != nil {
		return err
	}
	if err := applyKind(us.db.LoadTools, us.db.ReplaceTools, projectID, parsed.Tools,
		report, "tools", &report.Stats.Tools, &report.Diff.Tools); err != nil {
		return err
	}
	return nil
}

// applyKind общий шаг слияния для одного вида сущностей: загрузить,
// слить, сравнить версии, заменить
func applyKind[T interface {
	dedup.Identifiable
	diffing.Keyed
}](
	load func(string) ([]T, error),
	replace func(string, []T) error,
	projectID string,
	incoming []T,
	report *IngestReport,
	kind string,
	stats *dedup.Stats,
	summary *diffing.Summary,
) error {
	existing, err := load(projectID)
	if err != nil {
		return apperrors.NewInternalError("failed to load "+kind, err)
	}

	result := dedup.DeduplicateByID(existing, incoming)
	*stats = result.Stats

	sourceFile := ""
	if len(report.Files) > 0 {
		sourceFile = report.Files[0].File
	}
	*summary = diffing.Build(report.ImportRunID, sourceFile, kind, existing, result.Entities).Summary()

	if err := replace(projectID, result.Entities); err != nil {
		return apperrors.NewInternalError("failed to store "+kind, err)
	}
	return nil
}

// record сохраняет прогон в историю загрузок
func (us *UploadService) record(report *IngestReport) error {
	stats, err := json.Marshal(report.Stats)
	if err != nil {
		return err
	}
	diff, err := json.Marshal(report.Diff)
	if err != nil {
		return err
	}

	files := make([]string, 0, len(report.Files))
	for _, f := range report.Files {
		files = append(files, f.File)
	}

	return us.db.RecordImportRun(database.ImportRun{
		ID:         report.ImportRunID,
		File:       strings.Join(files, ", "),
		SourceType: "workbook",
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Stats:      stats,
		Warnings:   report.Warnings,
		Diff:       diff,
	})
}

// ListImportRuns история загрузок
func (us *UploadService) ListImportRuns(limit int) ([]database.ImportRun, error) {
	runs, err := us.db.ListImportRuns(limit)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list import runs", err)
	}
	return runs, nil
}
