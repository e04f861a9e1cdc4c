package services

import (
	"time"

	"go.uber.org/zap"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/database"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/entities"
	apperrors "github.com/GeorgeMcIntyre-Web/SimPilot-sub007/server/errors"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/snapshots"
)

// ProjectOverview сводка по одному проекту для панели
type ProjectOverview struct {
	Project        entities.Project         `json:"project"`
	AssetCounts    map[string]int           `json:"asset_counts"`
	LatestSnapshot *snapshots.DailySnapshot `json:"latest_snapshot,omitempty"`
	AtRiskCells    []snapshots.CellSnapshot `json:"at_risk_cells,omitempty"`
}

// DashboardSummary общая сводка для главной страницы панели
type DashboardSummary struct {
	Projects    []ProjectOverview    `json:"projects"`
	RecentRuns  []database.ImportRun `json:"recent_runs"`
	GeneratedAt time.Time            `json:"generated_at"`
}

// DashboardService агрегирует данные хранилища для панели
type DashboardService struct {
	db  *database.DB
	log *zap.SugaredLogger
}

// NewDashboardService создает сервис панели
func NewDashboardService(db *database.DB, log *zap.SugaredLogger) *DashboardService {
	return &DashboardService{db: db, log: log}
}

// Summary строит сводку по всем проектам и последним загрузкам
func (ds *DashboardService) Summary() (*DashboardSummary, error) {
	projects, err := ds.db.LoadProjects()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load projects", err)
	}

	summary := &DashboardSummary{GeneratedAt: time.Now().UTC()}
	for _, project := range projects {
		overview, err := ds.ProjectOverview(project)
		if err != nil {
			return nil, err
		}
		summary.Projects = append(summary.Projects, overview)
	}

	runs, err := ds.db.ListImportRuns(10)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list import runs", err)
	}
	summary.RecentRuns = runs

	return summary, nil
}

// ProjectOverview сводка одного проекта: количества активов, последний
// срез и проблемные станции
func (ds *DashboardService) ProjectOverview(project entities.Project) (ProjectOverview, error) {
	overview := ProjectOverview{Project: project}

	counts, err := ds.db.CountAssets(project.ID)
	if err != nil {
		return overview, apperrors.NewInternalError("failed to count assets", err)
	}
	overview.AssetCounts = counts

	list, err := ds.db.ListSnapshots(project.ID)
	if err != nil {
		return overview, apperrors.NewInternalError("failed to list snapshots", err)
	}
	if len(list) > 0 {
		latest := list[0]
		overview.LatestSnapshot = &latest
		for _, cell := range latest.Cells {
			if cell.FinalDeliverables < 50 && len(cell.Flags) > 0 {
				overview.AtRiskCells = append(overview.AtRiskCells, cell)
			}
		}
	}

	return overview, nil
}
