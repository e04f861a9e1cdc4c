package services

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/database"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/entities"
	apperrors "github.com/GeorgeMcIntyre-Web/SimPilot-sub007/server/errors"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/server/monitoring"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/snapshots"
)

// SnapshotService срезы состояния проекта и журналы изменений между ними.
// Срезы неизменяемы, поэтому журнал изменений пары срезов кэшируется.
type SnapshotService struct {
	db        *database.DB
	metrics   *monitoring.MetricsCollector
	log       *zap.SugaredLogger
	diffCache *gocache.Cache
}

// NewSnapshotService создает сервис срезов
func NewSnapshotService(db *database.DB, metrics *monitoring.MetricsCollector,
	log *zap.SugaredLogger, diffCacheTTL time.Duration) *SnapshotService {
	return &SnapshotService{
		db:        db,
		metrics:   metrics,
		log:       log,
		diffCache: gocache.New(diffCacheTTL, 2*diffCacheTTL),
	}
}

// CreateFromStore захватывает срез текущего состояния проекта в хранилище
func (ss *SnapshotService) CreateFromStore(projectID, author string) (snapshots.DailySnapshot, error) {
	if projectID == "" {
		return snapshots.DailySnapshot{}, apperrors.NewValidationError("project_id is required", nil)
	}

	cells, err := ss.db.LoadCells(projectID)
	if err != nil {
		return snapshots.DailySnapshot{}, apperrors.NewInternalError("failed to load cells", err)
	}
	if len(cells) == 0 {
		return snapshots.DailySnapshot{}, apperrors.NewUnprocessableError(
			fmt.Sprintf("project %s has no cells to snapshot", projectID), nil)
	}

	cellSnapshots := make([]snapshots.CellSnapshot, 0, len(cells))
	var flags []entities.Flag
	for _, cell := range cells {
		cellSnapshots = append(cellSnapshots, snapshots.CellFromEntity(cell))
		flags = append(flags, cell.Flags...)
	}

	snapshot := snapshots.NewSnapshot(projectID, author, time.Now().UTC(), cellSnapshots, flags)
	if err := ss.db.CreateSnapshot(snapshot); err != nil {
		return snapshots.DailySnapshot{}, apperrors.NewInternalError("failed to store snapshot", err)
	}

	ss.metrics.RecordSnapshotCreated()
	ss.log.Infow("snapshot created",
		"snapshot_id", snapshot.ID,
		"project_id", projectID,
		"cells", len(cellSnapshots),
		"avg_completion", snapshot.Stats.AvgCompletion)
	return snapshot, nil
}

// Get читает срез по id
func (ss *SnapshotService) Get(id string) (snapshots.DailySnapshot, error) {
	snapshot, err := ss.db.GetSnapshot(id)
	if err != nil {
		if database.IsNotFound(err) {
			return snapshots.DailySnapshot{}, apperrors.NewNotFoundError(
				fmt.Sprintf("snapshot %s not found", id), err)
		}
		return snapshots.DailySnapshot{}, apperrors.NewInternalError("failed to load snapshot", err)
	}
	return snapshot, nil
}

// List срезы проекта от новых к старым, при заданном интервале — внутри него
func (ss *SnapshotService) List(projectID string, from, to *time.Time) ([]snapshots.DailySnapshot, error) {
	if projectID == "" {
		return nil, apperrors.NewValidationError("project_id is required", nil)
	}

	var (
		list []snapshots.DailySnapshot
		err  error
	)
	if from != nil && to != nil {
		list, err = ss.db.ListSnapshotsInRange(projectID, *from, *to)
	} else {
		list, err = ss.db.ListSnapshots(projectID)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list snapshots", err)
	}
	return list, nil
}

// Delete удаляет один срез
func (ss *SnapshotService) Delete(id string) error {
	if err := ss.db.DeleteSnapshot(id); err != nil {
		if database.IsNotFound(err) {
			return apperrors.NewNotFoundError(fmt.Sprintf("snapshot %s not found", id), err)
		}
		return apperrors.NewInternalError("failed to delete snapshot", err)
	}
	return nil
}

// DeleteProject каскадно удаляет все срезы проекта
func (ss *SnapshotService) DeleteProject(projectID string) (int64, error) {
	deleted, err := ss.db.DeleteProjectSnapshots(projectID)
	if err != nil {
		return 0, apperrors.NewInternalError("failed to delete project snapshots", err)
	}
	ss.log.Infow("project snapshots deleted", "project_id", projectID, "count", deleted)
	return deleted, nil
}

// Diff строит журнал изменений между двумя срезами одного проекта
func (ss *SnapshotService) Diff(oldID, newID string) (snapshots.SnapshotDiff, error) {
	cacheKey := oldID + "|" + newID
	if cached, ok := ss.diffCache.Get(cacheKey); ok {
		return cached.(snapshots.SnapshotDiff), nil
	}

	oldSnapshot, err := ss.Get(oldID)
	if err != nil {
		return snapshots.SnapshotDiff{}, err
	}
	newSnapshot, err := ss.Get(newID)
	if err != nil {
		return snapshots.SnapshotDiff{}, err
	}
	if oldSnapshot.ProjectID != newSnapshot.ProjectID {
		return snapshots.SnapshotDiff{}, apperrors.NewValidationError(
			"snapshots belong to different projects", nil)
	}

	diff := snapshots.Diff(oldSnapshot, newSnapshot)
	ss.diffCache.Set(cacheKey, diff, gocache.DefaultExpiration)
	return diff, nil
}

// DiffLatest журнал изменений между двумя последними срезами проекта
func (ss *SnapshotService) DiffLatest(projectID string) (snapshots.SnapshotDiff, error) {
	list, err := ss.List(projectID, nil, nil)
	if err != nil {
		return snapshots.SnapshotDiff{}, err
	}
	if len(list) < 2 {
		return snapshots.SnapshotDiff{}, apperrors.NewUnprocessableError(
			fmt.Sprintf("project %s has %d snapshot(s), need at least 2 to compare", projectID, len(list)), nil)
	}
	// Список упорядочен от новых к старым
	return ss.Diff(list[1].ID, list[0].ID)
}

// Describe человекочитаемый журнал изменений между срезами
func (ss *SnapshotService) Describe(oldID, newID string) ([]string, string, error) {
	diff, err := ss.Diff(oldID, newID)
	if err != nil {
		return nil, "", err
	}

	lines := make([]string, 0, len(diff.Cells))
	for _, cell := range diff.Cells {
		lines = append(lines, snapshots.DescribeCellDelta(cell)...)
	}
	return lines, snapshots.DescribeDiffSummary(diff), nil
}
