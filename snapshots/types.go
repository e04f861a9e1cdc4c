// Package snapshots хранит неизменяемые срезы состояния проекта и строит
// журналы изменений между двумя срезами.
package snapshots

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/entities"
)

// CellSnapshot состояние одной станции в момент среза
type CellSnapshot struct {
	StationKey           string             `json:"station_key"`
	Name                 string             `json:"name,omitempty"`
	SimulationEngineer   string             `json:"simulation_engineer,omitempty"`
	ToolSimLead          string             `json:"tool_sim_lead,omitempty"`
	TeamLead             string             `json:"team_lead,omitempty"`
	FirstStageCompletion float64            `json:"first_stage_completion"`
	FinalDeliverables    float64            `json:"final_deliverables"`
	Metrics              map[string]float64 `json:"metrics,omitempty"`
	Flags                []entities.Flag    `json:"flags,omitempty"`
	RobotCount           int                `json:"robot_count"`
	ToolCount            int                `json:"tool_count"`
	WeldGunCount         int                `json:"weld_gun_count"`
	RiserCount           int                `json:"riser_count"`
}

// Owner ответственный за станцию: инженер моделирования предпочитается
// лидам инструментального уровня, первый заполненный побеждает
func (c CellSnapshot) Owner() string {
	for _, candidate := range []string{c.SimulationEngineer, c.ToolSimLead, c.TeamLead} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return ""
}

// SnapshotStats агрегаты среза
type SnapshotStats struct {
	CellCount     int     `json:"cell_count"`
	AvgCompletion float64 `json:"avg_completion"`
	AtRiskCount   int     `json:"at_risk_count"`
}

// DailySnapshot неизменяемый срез полного состояния проекта.
// Срезы только добавляются и упорядочены по времени захвата;
// хранилище отдает их от новых к старым.
type DailySnapshot struct {
	ID         string          `json:"id"`
	ProjectID  string          `json:"project_id"`
	CapturedAt time.Time       `json:"captured_at"`
	Author     string          `json:"author"`
	Cells      []CellSnapshot  `json:"cells"`
	Flags      []entities.Flag `json:"flags,omitempty"`
	Stats      SnapshotStats   `json:"stats"`
}

// NewSnapshotID генерирует id среза: snap_<проект>_<время base36>_<случайные 6>
func NewSnapshotID(projectID string, capturedAt time.Time) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return "snap_" + projectID + "_" + strconv.FormatInt(capturedAt.UnixMilli(), 36) + "_" + random
}

// atRiskThreshold станция с финальной готовностью ниже порога и хотя бы
// одним флагом считается проблемной
const atRiskThreshold = 50.0

// ComputeStats пересчитывает агрегаты по списку станций
func ComputeStats(cells []CellSnapshot) SnapshotStats {
	stats := SnapshotStats{CellCount: len(cells)}
	if len(cells) == 0 {
		return stats
	}

	var sum float64
	for _, cell := range cells {
		sum += cell.FinalDeliverables
		if cell.FinalDeliverables < atRiskThreshold && len(cell.Flags) > 0 {
			stats.AtRiskCount++
		}
	}
	stats.AvgCompletion = sum / float64(len(cells))
	return stats
}

// NewSnapshot собирает срез из состояния станций проекта
func NewSnapshot(projectID, author string, capturedAt time.Time, cells []CellSnapshot, flags []entities.Flag) DailySnapshot {
	return DailySnapshot{
		ID:         NewSnapshotID(projectID, capturedAt),
		ProjectID:  projectID,
		CapturedAt: capturedAt,
		Author:     author,
		Cells:      cells,
		Flags:      flags,
		Stats:      ComputeStats(cells),
	}
}

// CellFromEntity переводит станцию в запись среза
func CellFromEntity(cell entities.Cell) CellSnapshot {
	return CellSnapshot{
		StationKey:           cell.BusinessKey(),
		Name:                 cell.Name,
		SimulationEngineer:   cell.SimulationEngineer,
		ToolSimLead:          cell.ToolSimLead,
		TeamLead:             cell.TeamLead,
		FirstStageCompletion: cell.FirstStageCompletion,
		FinalDeliverables:    cell.FinalDeliverables,
		Metrics:              cell.StatusFields,
		Flags:                cell.Flags,
		RobotCount:           cell.RobotCount,
		ToolCount:            cell.ToolCount,
		WeldGunCount:         cell.WeldGunCount,
		RiserCount:           cell.RiserCount,
	}
}
