package importer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/entities"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/matching"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/profiling"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/snapshots"
)

// parseSimulationStatus разбирает лист статуса моделирования: по строке на
// станцию с метриками готовности, ответственными и флагами
func parseSimulationStatus(ctx *sheetContext) ParsedSheet {
	parsed := ParsedSheet{Category: matching.CategorySimulationStatus}

	stationCol, ok := ctx.requireField("station", &parsed.Warnings)
	if !ok {
		return parsed
	}

	optional := map[string]int{}
	for _, fieldID := range []string{
		"project_id", "area", "line", "application", "station_name",
		"simulation_engineer", "tool_sim_lead", "team_lead",
		"first_stage_completion", "final_deliverables", "percent_complete",
		"status", "robot_number", "flag_type",
		"robot_count", "tool_count", "weld_gun_count", "riser_count",
	} {
		if col, found := ctx.column(fieldID, &parsed.Warnings); found {
			optional[fieldID] = col
		}
	}

	text := func(row int, fieldID string) string {
		if col, found := optional[fieldID]; found {
			return ctx.textAt(row, col)
		}
		return ""
	}
	count := func(row int, fieldID string) int {
		if col, found := optional[fieldID]; found {
			return int(ctx.numberAt(row, col))
		}
		return 0
	}

	seen := make(map[string]struct{})
	areas := make(map[string]entities.Area)

	for row := 0; row < ctx.dataRowCount(); row++ {
		if ctx.rowEmpty(row) {
			continue
		}

		station := strings.TrimSpace(ctx.textAt(row, stationCol))
		if station == "" {
			parsed.Warnings = append(parsed.Warnings, entities.Warning{
				Code: entities.WarnRowSkipped, File: ctx.source, Sheet: ctx.sheet.Name,
				Row: ctx.provenance(row).RowIndex, Details: "station cell is empty",
			})
			continue
		}

		robotNumber := strings.TrimSpace(text(row, "robot_number"))
		dupKey := strings.ToLower(station + "|" + robotNumber)
		if _, dup := seen[dupKey]; dup {
			parsed.Warnings = append(parsed.Warnings, entities.Warning{
				Code: entities.WarnDuplicateEntry, File: ctx.source, Sheet: ctx.sheet.Name,
				Row:     ctx.provenance(row).RowIndex,
				Details: fmt.Sprintf("station %s robot %s already seen in this file, keeping first", station, robotNumber),
			})
			continue
		}
		seen[dupKey] = struct{}{}

		project := strings.TrimSpace(text(row, "project_id"))
		area := strings.TrimSpace(text(row, "area"))
		location := entities.LocationKey{
			Project: project,
			Area:    area,
			Line:    strings.TrimSpace(text(row, "line")),
			Station: station,
		}

		cell := entities.Cell{
			ID:                 entities.StableID("cell", project, station),
			StationID:          station,
			Name:               text(row, "station_name"),
			Location:           location,
			Application:        text(row, "application"),
			SimulationEngineer: text(row, "simulation_engineer"),
			ToolSimLead:        text(row, "tool_sim_lead"),
			TeamLead:           text(row, "team_lead"),
			Status:             text(row, "status"),
			RobotCount:         count(row, "robot_count"),
			ToolCount:          count(row, "tool_count"),
			WeldGunCount:       count(row, "weld_gun_count"),
			RiserCount:         count(row, "riser_count"),
			Metadata:           ctx.unmappedMetadata(row),
			Provenance:         ctx.provenance(row),
		}
		if col, found := optional["first_stage_completion"]; found {
			cell.FirstStageCompletion = ctx.numberAt(row, col)
		}
		if col, found := optional["final_deliverables"]; found {
			cell.FinalDeliverables = ctx.numberAt(row, col)
		}
		if col, found := optional["percent_complete"]; found {
			cell.PercentComplete = ctx.numberAt(row, col)
		}

		// Сырые поля статуса: все колонки с метрикоподобными заголовками,
		// включая несопоставленные — по ним строятся дельты срезов
		for _, result := range ctx.results {
			header := result.Column.NormalizedHeader
			if header == "" || !snapshots.IsMetricField(header) {
				continue
			}
			value := ctx.cellAt(row, result.Column.ColumnIndex)
			if value.Kind == profiling.CellNumber {
				if cell.StatusFields == nil {
					cell.StatusFields = make(map[string]float64)
				}
				cell.StatusFields[header] = value.Num
			}
		}

		if flagType := strings.TrimSpace(text(row, "flag_type")); flagType != "" {
			cell.Flags = append(cell.Flags, entities.Flag{
				Type:    flagType,
				Station: station,
				Robot:   robotNumber,
			})
		}

		parsed.Cells = append(parsed.Cells, cell)

		if robotNumber != "" {
			parsed.Robots = append(parsed.Robots, entities.Robot{
				ID:          entities.StableID("robot", station, robotNumber),
				Number:      robotNumber,
				Application: cell.Application,
				Location:    location,
				Provenance:  ctx.provenance(row),
			})
		}

		if area != "" {
			areaID := entities.StableID("area", project, area)
			if _, exists := areas[areaID]; !exists {
				areas[areaID] = entities.Area{
					ID:         areaID,
					Name:       area,
					Location:   entities.LocationKey{Project: project, Area: area},
					Provenance: ctx.provenance(row),
				}
			}
		}
	}

	for _, area := range areas {
		parsed.Areas = append(parsed.Areas, area)
	}
	sort.Slice(parsed.Areas, func(i, j int) bool { return parsed.Areas[i].ID < parsed.Areas[j].ID })
	return parsed
}

// parseGunForce разбирает список усилий сварочных клещей
func parseGunForce(ctx *sheetContext) ParsedSheet {
	parsed := ParsedSheet{Category: matching.CategoryGunForce}

	stationCol, ok := ctx.requireField("station", &parsed.Warnings)
	if !ok {
		return parsed
	}
	forceCol, hasForce := ctx.column("gun_force_kn", &parsed.Warnings)
	forceNCol, hasForceN := ctx.column("gun_force_n", &parsed.Warnings)
	if !hasForce && !hasForceN {
		parsed.Warnings = append(parsed.Warnings, entities.Warning{
			Code: entities.WarnRequiredColumnMissing, File: ctx.source, Sheet: ctx.sheet.Name,
			Details: "required field gun_force_kn has no column mapping",
		})
		return parsed
	}

	gunCol, hasGun := ctx.column("gun_name", &parsed.Warnings)
	typeCol, hasType := ctx.column("gun_type", &parsed.Warnings)
	robotCol, hasRobot := ctx.column("robot_number", &parsed.Warnings)

	seen := make(map[string]struct{})
	for row := 0; row < ctx.dataRowCount(); row++ {
		if ctx.rowEmpty(row) {
			continue
		}

		station := strings.TrimSpace(ctx.textAt(row, stationCol))
		if station == "" {
			parsed.Warnings = append(parsed.Warnings, entities.Warning{
				Code: entities.WarnRowSkipped, File: ctx.source, Sheet: ctx.sheet.Name,
				Row: ctx.provenance(row).RowIndex, Details: "station cell is empty",
			})
			continue
		}

		gunName := ""
		if hasGun {
			gunName = strings.TrimSpace(ctx.textAt(row, gunCol))
		}
		dupKey := strings.ToLower(station + "|" + gunName)
		if _, dup := seen[dupKey]; dup {
			parsed.Warnings = append(parsed.Warnings, entities.Warning{
				Code: entities.WarnDuplicateEntry, File: ctx.source, Sheet: ctx.sheet.Name,
				Row:     ctx.provenance(row).RowIndex,
				Details: fmt.Sprintf("gun %s at station %s already seen in this file", gunName, station),
			})
			continue
		}
		seen[dupKey] = struct{}{}

		// Усилие храним в кН; колонка в ньютонах пересчитывается
		var forceKN float64
		if hasForce {
			forceKN = ctx.numberAt(row, forceCol)
		} else {
			forceKN = ctx.numberAt(row, forceNCol) / 1000
		}

		tool := entities.Tool{
			ID:         entities.StableID("tool", station, gunName),
			Number:     gunName,
			GunName:    gunName,
			ForceKN:    forceKN,
			Location:   entities.LocationKey{Station: station},
			Metadata:   ctx.unmappedMetadata(row),
			Provenance: ctx.provenance(row),
		}
		if hasType {
			tool.GunType = ctx.textAt(row, typeCol)
		}
		if hasRobot {
			if robot := strings.TrimSpace(ctx.textAt(row, robotCol)); robot != "" {
				tool.Metadata = ensureMeta(tool.Metadata)
				tool.Metadata["robot"] = entities.MetaStr(robot)
			}
		}
		parsed.Tools = append(parsed.Tools, tool)
	}
	return parsed
}

// parseRobotList разбирает реестр роботов
func parseRobotList(ctx *sheetContext) ParsedSheet {
	parsed := ParsedSheet{Category: matching.CategoryRobotList}

	numberCol, ok := ctx.requireField("robot_number", &parsed.Warnings)
	if !ok {
		return parsed
	}

	cols := map[string]int{}
	for _, fieldID := range []string{"robot_name", "robot_type", "e_number", "application", "station", "area"} {
		if col, found := ctx.column(fieldID, &parsed.Warnings); found {
			cols[fieldID] = col
		}
	}
	text := func(row int, fieldID string) string {
		if col, found := cols[fieldID]; found {
			return strings.TrimSpace(ctx.textAt(row, col))
		}
		return ""
	}

	for row := 0; row < ctx.dataRowCount(); row++ {
		if ctx.rowEmpty(row) {
			continue
		}
		number := strings.TrimSpace(ctx.textAt(row, numberCol))
		if number == "" {
			parsed.Warnings = append(parsed.Warnings, entities.Warning{
				Code: entities.WarnRowSkipped, File: ctx.source, Sheet: ctx.sheet.Name,
				Row: ctx.provenance(row).RowIndex, Details: "robot number cell is empty",
			})
			continue
		}

		station := text(row, "station")
		parsed.Robots = append(parsed.Robots, entities.Robot{
			ID:          entities.StableID("robot", station, number),
			Number:      number,
			Name:        text(row, "robot_name"),
			Type:        text(row, "robot_type"),
			ENumber:     text(row, "e_number"),
			Application: text(row, "application"),
			Location:    entities.LocationKey{Area: text(row, "area"), Station: station},
			Metadata:    ctx.unmappedMetadata(row),
			Provenance:  ctx.provenance(row),
		})
	}
	return parsed
}

// parseToolList разбирает реестр инструментов
func parseToolList(ctx *sheetContext) ParsedSheet {
	parsed := ParsedSheet{Category: matching.CategoryToolList}

	numberCol, ok := ctx.requireField("tool_number", &parsed.Warnings)
	if !ok {
		return parsed
	}

	cols := map[string]int{}
	for _, fieldID := range []string{"tool_type", "supplier", "station", "area"} {
		if col, found := ctx.column(fieldID, &parsed.Warnings); found {
			cols[fieldID] = col
		}
	}
	text := func(row int, fieldID string) string {
		if col, found := cols[fieldID]; found {
			return strings.TrimSpace(ctx.textAt(row, col))
		}
		return ""
	}

	for row := 0; row < ctx.dataRowCount(); row++ {
		if ctx.rowEmpty(row) {
			continue
		}
		number := strings.TrimSpace(ctx.textAt(row, numberCol))
		if number == "" {
			parsed.Warnings = append(parsed.Warnings, entities.Warning{
				Code: entities.WarnRowSkipped, File: ctx.source, Sheet: ctx.sheet.Name,
				Row: ctx.provenance(row).RowIndex, Details: "tool number cell is empty",
			})
			continue
		}

		station := text(row, "station")
		parsed.Tools = append(parsed.Tools, entities.Tool{
			ID:         entities.StableID("tool", station, number),
			Number:     number,
			Type:       text(row, "tool_type"),
			Supplier:   text(row, "supplier"),
			Location:   entities.LocationKey{Area: text(row, "area"), Station: station},
			Metadata:   ctx.unmappedMetadata(row),
			Provenance: ctx.provenance(row),
		})
	}
	return parsed
}

// parseProjectList разбирает реестр проектов
func parseProjectList(ctx *sheetContext) ParsedSheet {
	parsed := ParsedSheet{Category: matching.CategoryProjectList}

	nameCol, hasName := ctx.column("project_name", &parsed.Warnings)
	idCol, hasID := ctx.column("project_id", &parsed.Warnings)
	if !hasName && !hasID {
		parsed.Warnings = append(parsed.Warnings, entities.Warning{
			Code: entities.WarnRequiredColumnMissing, File: ctx.source, Sheet: ctx.sheet.Name,
			Details: "required field project_name has no column mapping",
		})
		return parsed
	}

	cols := map[string]int{}
	for _, fieldID := range []string{"customer", "plant", "carline"} {
		if col, found := ctx.column(fieldID, &parsed.Warnings); found {
			cols[fieldID] = col
		}
	}
	text := func(row int, fieldID string) string {
		if col, found := cols[fieldID]; found {
			return strings.TrimSpace(ctx.textAt(row, col))
		}
		return ""
	}

	for row := 0; row < ctx.dataRowCount(); row++ {
		if ctx.rowEmpty(row) {
			continue
		}

		var name, code string
		if hasName {
			name = strings.TrimSpace(ctx.textAt(row, nameCol))
		}
		if hasID {
			code = strings.TrimSpace(ctx.textAt(row, idCol))
		}
		if name == "" && code == "" {
			parsed.Warnings = append(parsed.Warnings, entities.Warning{
				Code: entities.WarnRowSkipped, File: ctx.source, Sheet: ctx.sheet.Name,
				Row: ctx.provenance(row).RowIndex, Details: "project name and code are both empty",
			})
			continue
		}
		if name == "" {
			name = code
		}

		customer := text(row, "customer")
		id := entities.StableID("project", customer, name)
		if code != "" {
			id = entities.StableID("project", code)
		}

		parsed.Projects = append(parsed.Projects, entities.Project{
			ID:         id,
			Name:       name,
			Customer:   customer,
			Plant:      text(row, "plant"),
			Carline:    text(row, "carline"),
			Metadata:   ctx.unmappedMetadata(row),
			Provenance: ctx.provenance(row),
		})
	}
	return parsed
}

func ensureMeta(meta entities.MetaMap) entities.MetaMap {
	if meta == nil {
		return make(entities.MetaMap)
	}
	return meta
}
