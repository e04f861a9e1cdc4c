package snapshots

import (
	"sort"
	"strings"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/entities"
)

// CellDeltaStatus судьба станции между двумя срезами
type CellDeltaStatus string

const (
	CellAdded    CellDeltaStatus = "added"
	CellRemoved  CellDeltaStatus = "removed"
	CellModified CellDeltaStatus = "modified"
)

// MetricDelta изменение одной процентной метрики
type MetricDelta struct {
	Name   string  `json:"name"`
	Before float64 `json:"before"`
	After  float64 `json:"after"`
}

// Delta арифметическая разница метрики
func (m MetricDelta) Delta() float64 { return m.After - m.Before }

// CellDelta изменения одной станции между срезами. Выводится по
// требованию, не сохраняется.
type CellDelta struct {
	StationKey        string          `json:"station_key"`
	Status            CellDeltaStatus `json:"status"`
	Metrics           []MetricDelta   `json:"metrics,omitempty"`
	OwnerBefore       string          `json:"owner_before,omitempty"`
	OwnerAfter        string          `json:"owner_after,omitempty"`
	FirstStage        *MetricDelta    `json:"first_stage,omitempty"`
	FinalDeliverables *MetricDelta    `json:"final_deliverables,omitempty"`
	FlagsAdded        []entities.Flag `json:"flags_added,omitempty"`
	FlagsRemoved      []entities.Flag `json:"flags_removed,omitempty"`
	RobotCountDelta   int             `json:"robot_count_delta,omitempty"`
	ToolCountDelta    int             `json:"tool_count_delta,omitempty"`
	WeldGunCountDelta int             `json:"weld_gun_count_delta,omitempty"`
	RiserCountDelta   int             `json:"riser_count_delta,omitempty"`
}

// DiffSummary агрегаты журнала изменений
type DiffSummary struct {
	CellsAdded         int     `json:"cells_added"`
	CellsRemoved       int     `json:"cells_removed"`
	CellsModified      int     `json:"cells_modified"`
	CellsUnchanged     int     `json:"cells_unchanged"`
	MetricsImproved    int     `json:"metrics_improved"`
	MetricsRegressed   int     `json:"metrics_regressed"`
	AvgCompletionDelta float64 `json:"avg_completion_delta"`
	FlagsNew           int     `json:"flags_new"`
	FlagsResolved      int     `json:"flags_resolved"`
}

// SnapshotDiff журнал изменений между двумя срезами одного проекта.
// Разреженный: станции без единого изменения в список не попадают.
type SnapshotDiff struct {
	ProjectID  string      `json:"project_id"`
	OldID      string      `json:"old_id"`
	NewID      string      `json:"new_id"`
	Cells      []CellDelta `json:"cells"`
	Summary    DiffSummary `json:"summary"`
}

// metricKeywords признаки метрикоподобного поля статуса
var metricKeywords = []string{"stage", "completion", "configured", "confirmed", "check", "percent", "%"}

// IsMetricField сообщает, выглядит ли имя сырого поля статуса как метрика
func IsMetricField(name string) bool {
	lowered := strings.ToLower(name)
	for _, keyword := range metricKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// Diff сравнивает два среза, упорядоченные от старого к новому.
// Ключи станций объединяются и сортируются для детерминизма.
func Diff(old, new DailySnapshot) SnapshotDiff {
	diff := SnapshotDiff{
		ProjectID: new.ProjectID,
		OldID:     old.ID,
		NewID:     new.ID,
	}

	oldCells := indexCells(old.Cells)
	newCells := indexCells(new.Cells)

	keys := make([]string, 0, len(oldCells)+len(newCells))
	seen := make(map[string]struct{})
	for key := range oldCells {
		keys = append(keys, key)
		seen[key] = struct{}{}
	}
	for key := range newCells {
		if _, ok := seen[key]; !ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		oldCell, inOld := oldCells[key]
		newCell, inNew := newCells[key]

		switch {
		case !inOld:
			diff.Cells = append(diff.Cells, addedDelta(newCell))
			diff.Summary.CellsAdded++
			diff.Summary.FlagsNew += len(newCell.Flags)
		case !inNew:
			diff.Cells = append(diff.Cells, removedDelta(oldCell))
			diff.Summary.CellsRemoved++
			diff.Summary.FlagsResolved += len(oldCell.Flags)
		default:
			delta, changed := compareCells(oldCell, newCell)
			if !changed {
				continue
			}
			diff.Cells = append(diff.Cells, delta)
			diff.Summary.CellsModified++
			diff.Summary.FlagsNew += len(delta.FlagsAdded)
			diff.Summary.FlagsResolved += len(delta.FlagsRemoved)
			for _, m := range delta.Metrics {
				if m.After > m.Before {
					diff.Summary.MetricsImproved++
				} else if m.After < m.Before {
					diff.Summary.MetricsRegressed++
				}
			}
		}
	}

	// Неизмененные станции считаются от старого среза и не уходят в минус
	unchanged := len(old.Cells) - diff.Summary.CellsRemoved - diff.Summary.CellsModified
	if unchanged < 0 {
		unchanged = 0
	}
	diff.Summary.CellsUnchanged = unchanged
	diff.Summary.AvgCompletionDelta = new.Stats.AvgCompletion - old.Stats.AvgCompletion

	return diff
}

func indexCells(cells []CellSnapshot) map[string]CellSnapshot {
	index := make(map[string]CellSnapshot, len(cells))
	for _, cell := range cells {
		index[cell.StationKey] = cell
	}
	return index
}

// addedDelta полная дельта для появившейся станции: количества активов
// становятся приростами
func addedDelta(cell CellSnapshot) CellDelta {
	return CellDelta{
		StationKey:        cell.StationKey,
		Status:            CellAdded,
		OwnerAfter:        cell.Owner(),
		FlagsAdded:        cell.Flags,
		RobotCountDelta:   cell.RobotCount,
		ToolCountDelta:    cell.ToolCount,
		WeldGunCountDelta: cell.WeldGunCount,
		RiserCountDelta:   cell.RiserCount,
	}
}

// removedDelta дельта для исчезнувшей станции с отрицательными количествами
func removedDelta(cell CellSnapshot) CellDelta {
	return CellDelta{
		StationKey:        cell.StationKey,
		Status:            CellRemoved,
		OwnerBefore:       cell.Owner(),
		FlagsRemoved:      cell.Flags,
		RobotCountDelta:   -cell.RobotCount,
		ToolCountDelta:    -cell.ToolCount,
		WeldGunCountDelta: -cell.WeldGunCount,
		RiserCountDelta:   -cell.RiserCount,
	}
}

// compareCells строит дельту станции, присутствующей в обоих срезах.
// Станция без единого изменения не попадает в журнал вовсе.
func compareCells(old, new CellSnapshot) (CellDelta, bool) {
	delta := CellDelta{StationKey: new.StationKey, Status: CellModified}
	changed := false

	// Метрики: любые сырые поля статуса с метрикоподобными именами
	metricNames := make(map[string]struct{})
	for name := range old.Metrics {
		if IsMetricField(name) {
			metricNames[name] = struct{}{}
		}
	}
	for name := range new.Metrics {
		if IsMetricField(name) {
			metricNames[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(metricNames))
	for name := range metricNames {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		before := old.Metrics[name]
		after := new.Metrics[name]
		if before != after {
			delta.Metrics = append(delta.Metrics, MetricDelta{Name: name, Before: before, After: after})
			changed = true
		}
	}

	if old.Owner() != new.Owner() {
		delta.OwnerBefore = old.Owner()
		delta.OwnerAfter = new.Owner()
		changed = true
	}

	if old.FirstStageCompletion != new.FirstStageCompletion {
		delta.FirstStage = &MetricDelta{Name: "First stage", Before: old.FirstStageCompletion, After: new.FirstStageCompletion}
		changed = true
	}
	if old.FinalDeliverables != new.FinalDeliverables {
		delta.FinalDeliverables = &MetricDelta{Name: "Final deliverables", Before: old.FinalDeliverables, After: new.FinalDeliverables}
		changed = true
	}

	added, removed := diffFlags(old.Flags, new.Flags)
	if len(added) > 0 || len(removed) > 0 {
		delta.FlagsAdded = added
		delta.FlagsRemoved = removed
		changed = true
	}

	delta.RobotCountDelta = new.RobotCount - old.RobotCount
	delta.ToolCountDelta = new.ToolCount - old.ToolCount
	delta.WeldGunCountDelta = new.WeldGunCount - old.WeldGunCount
	delta.RiserCountDelta = new.RiserCount - old.RiserCount
	if delta.RobotCountDelta != 0 || delta.ToolCountDelta != 0 ||
		delta.WeldGunCountDelta != 0 || delta.RiserCountDelta != 0 {
		changed = true
	}

	return delta, changed
}

// diffFlags сравнивает наборы флагов по кортежу идентичности
func diffFlags(old, new []entities.Flag) (added, removed []entities.Flag) {
	oldKeys := make(map[string]struct{}, len(old))
	for _, f := range old {
		oldKeys[f.Key()] = struct{}{}
	}
	newKeys := make(map[string]struct{}, len(new))
	for _, f := range new {
		newKeys[f.Key()] = struct{}{}
	}

	for _, f := range new {
		if _, ok := oldKeys[f.Key()]; !ok {
			added = append(added, f)
		}
	}
	for _, f := range old {
		if _, ok := newKeys[f.Key()]; !ok {
			removed = append(removed, f)
		}
	}
	return added, removed
}
