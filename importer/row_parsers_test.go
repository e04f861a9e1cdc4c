package importer

import (
	"context"
	"testing"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/entities"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/logging"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/matching"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/profiling"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/registry"
)

func newTestPipeline() *Pipeline {
	return NewPipeline(registry.New(), matching.DefaultScoringConfig(), logging.NewNop())
}

// gridSheet строит сетку листа из строковых значений, как это делает
// чтение книги на границе excelize
func gridSheet(name string, rows [][]string) profiling.RawSheet {
	grid := make([][]profiling.CellValue, len(rows))
	for i, row := range rows {
		cells := make([]profiling.CellValue, len(row))
		for j, raw := range row {
			cells[j] = profiling.CellFromString(raw)
		}
		grid[i] = cells
	}
	return profiling.RawSheet{Name: name, Rows: grid}
}

func processOne(t *testing.T, sheet profiling.RawSheet) (SheetResult, ParsedSheet) {
	t.Helper()
	p := newTestPipeline()
	var parsed ParsedSheet
	result := p.processSheet("wb_test", "test.xlsx", 0, sheet, &parsed)
	return result, parsed
}

func warningCodes(warnings []entities.Warning) map[entities.WarningCode]int {
	counts := make(map[entities.WarningCode]int)
	for _, w := range warnings {
		counts[w.Code]++
	}
	return counts
}

func simulationStatusSheet() profiling.RawSheet {
	return gridSheet("Simulation Status", [][]string{
		{"Project", "Area", "Station", "Robot Number", "Application", "Simulation Engineer", "First Stage Completion [%]", "Final Deliverables [%]", "Paint Color"},
		{"X50", "Underbody", "S010", "R01", "Spot", "Ivanov", "80%", "45%", "RAL 7035"},
		{"X50", "Underbody", "S010", "R02", "Spot", "Ivanov", "80%", "45%", ""},
		{"X50", "Sidewall", "S020", "R03", "Stud", "Petrov", "30", "10", ""},
	})
}

func TestProcessSheetSimulationStatus(t *testing.T) {
	result, parsed := processOne(t, simulationStatusSheet())

	if result.Category.Category != matching.CategorySimulationStatus {
		t.Fatalf("Category = %s (балл %d), want SIMULATION_STATUS",
			result.Category.Category, result.Category.Score)
	}

	// Уникальность строк считается по паре станция+робот
	if len(parsed.Cells) != 3 {
		t.Fatalf("len(Cells) = %d, want 3", len(parsed.Cells))
	}
	if len(parsed.Robots) != 3 {
		t.Errorf("len(Robots) = %d, want 3", len(parsed.Robots))
	}

	first := parsed.Cells[0]
	if first.StationID != "S010" {
		t.Errorf("StationID = %q, want S010", first.StationID)
	}
	if first.Location.Project != "X50" || first.Location.Area != "Underbody" {
		t.Errorf("Location = %+v", first.Location)
	}
	if first.SimulationEngineer != "Ivanov" {
		t.Errorf("SimulationEngineer = %q", first.SimulationEngineer)
	}
	// "80%" разбирается как число 80
	if first.FirstStageCompletion != 80 {
		t.Errorf("FirstStageCompletion = %v, want 80", first.FirstStageCompletion)
	}
	if first.FinalDeliverables != 45 {
		t.Errorf("FinalDeliverables = %v, want 45", first.FinalDeliverables)
	}
	if first.ID != entities.StableID("cell", "X50", "S010") {
		t.Errorf("ID = %q не детерминирован", first.ID)
	}

	// Несопоставленная колонка уходит в метаданные под нормализованным заголовком
	if got, ok := first.Metadata["paint color"]; !ok || got != entities.MetaStr("RAL 7035") {
		t.Errorf("Metadata = %+v, want paint color -> RAL 7035", first.Metadata)
	}

	// Области дедуплицируются: Underbody встречается дважды
	if len(parsed.Areas) != 2 {
		t.Errorf("len(Areas) = %d, want 2", len(parsed.Areas))
	}
}

func TestProcessSheetSimulationStatusDuplicateRow(t *testing.T) {
	sheet := gridSheet("Status", [][]string{
		{"Station", "Robot Number", "First Stage Completion [%]"},
		{"S010", "R01", "50"},
		{"S010", "R01", "60"},
	})

	_, parsed := processOne(t, sheet)

	if len(parsed.Cells) != 1 {
		t.Fatalf("len(Cells) = %d, дубль должен быть отброшен", len(parsed.Cells))
	}
	// Первая версия побеждает внутри файла
	if parsed.Cells[0].FirstStageCompletion != 50 {
		t.Errorf("FirstStageCompletion = %v, want 50", parsed.Cells[0].FirstStageCompletion)
	}
	if warningCodes(parsed.Warnings)[entities.WarnDuplicateEntry] != 1 {
		t.Errorf("warnings = %+v, want один DUPLICATE_ENTRY", parsed.Warnings)
	}
}

func TestProcessSheetSimulationStatusEmptyStation(t *testing.T) {
	sheet := gridSheet("Status", [][]string{
		{"Station", "Robot Number", "First Stage Completion [%]"},
		{"", "R01", "50"},
		{"S020", "R02", "60"},
	})

	_, parsed := processOne(t, sheet)

	if len(parsed.Cells) != 1 {
		t.Fatalf("len(Cells) = %d, want 1", len(parsed.Cells))
	}
	if warningCodes(parsed.Warnings)[entities.WarnRowSkipped] != 1 {
		t.Errorf("warnings = %+v, want один ROW_SKIPPED", parsed.Warnings)
	}
}

func TestProcessSheetSimulationStatusJunkRowsAboveHeader(t *testing.T) {
	sheet := gridSheet("Status", [][]string{
		{"WELD SIMULATION STATUS"},
		{},
		{"Station", "Robot Number", "Simulation Engineer", "First Stage Completion [%]"},
		{"S010", "R01", "Ivanov", "50"},
	})

	result, parsed := processOne(t, sheet)

	if result.Profile.HeaderRowIndex != 2 {
		t.Fatalf("HeaderRowIndex = %d, want 2", result.Profile.HeaderRowIndex)
	}
	if len(parsed.Cells) != 1 || parsed.Cells[0].StationID != "S010" {
		t.Fatalf("Cells = %+v", parsed.Cells)
	}
	// Происхождение указывает на строку исходной сетки, с единицы
	if got := parsed.Cells[0].Provenance.RowIndex; got != 4 {
		t.Errorf("Provenance.RowIndex = %d, want 4", got)
	}
}

func TestProcessSheetGunForceKN(t *testing.T) {
	sheet := gridSheet("Gun Force", [][]string{
		{"Station", "Gun Name", "Gun Type", "Gun Force (kN)"},
		{"S010", "GUN_A", "X-Gun", "3,5"},
		{"S010", "GUN_B", "C-Gun", "2.2"},
	})

	result, parsed := processOne(t, sheet)

	if result.Category.Category != matching.CategoryGunForce {
		t.Fatalf("Category = %s, want GUN_FORCE", result.Category.Category)
	}
	if len(parsed.Tools) != 2 {
		t.Fatalf("len(Tools) = %d, want 2", len(parsed.Tools))
	}
	// Десятичная запятая из немецкой выгрузки
	if parsed.Tools[0].ForceKN != 3.5 {
		t.Errorf("ForceKN = %v, want 3.5", parsed.Tools[0].ForceKN)
	}
	if parsed.Tools[0].GunType != "X-Gun" {
		t.Errorf("GunType = %q", parsed.Tools[0].GunType)
	}
}

func TestProcessSheetGunForceNewtonsConverted(t *testing.T) {
	sheet := gridSheet("Gun Force", [][]string{
		{"Station", "Gun Name", "Gun Type", "Force N"},
		{"S010", "GUN_A", "X-Gun", "3500"},
	})

	_, parsed := processOne(t, sheet)

	if len(parsed.Tools) != 1 {
		t.Fatalf("Tools = %+v", parsed.Tools)
	}
	// Ньютоны пересчитываются в килоньютоны
	if parsed.Tools[0].ForceKN != 3.5 {
		t.Errorf("ForceKN = %v, want 3.5", parsed.Tools[0].ForceKN)
	}
}

func TestProcessSheetGunForceDuplicateGun(t *testing.T) {
	sheet := gridSheet("Gun Force", [][]string{
		{"Station", "Gun Name", "Gun Type", "Gun Force (kN)"},
		{"S010", "GUN_A", "X-Gun", "3.5"},
		{"S010", "GUN_A", "X-Gun", "4.0"},
	})

	_, parsed := processOne(t, sheet)

	if len(parsed.Tools) != 1 {
		t.Fatalf("len(Tools) = %d, дубль клещей должен быть отброшен", len(parsed.Tools))
	}
	if warningCodes(parsed.Warnings)[entities.WarnDuplicateEntry] != 1 {
		t.Errorf("warnings = %+v", parsed.Warnings)
	}
}

func TestProcessSheetProjectList(t *testing.T) {
	sheet := gridSheet("Projects", [][]string{
		{"Project", "Project Name", "Customer", "Plant"},
		{"X50", "Body Shop X50", "ACME", "Plant 1"},
		{"", "", "ACME", "Plant 2"},
	})

	result, parsed := processOne(t, sheet)

	if result.Category.Category != matching.CategoryProjectList {
		t.Fatalf("Category = %s, want PROJECT_LIST", result.Category.Category)
	}
	if len(parsed.Projects) != 1 {
		t.Fatalf("len(Projects) = %d, want 1", len(parsed.Projects))
	}
	p := parsed.Projects[0]
	if p.Name != "Body Shop X50" || p.Customer != "ACME" || p.Plant != "Plant 1" {
		t.Errorf("Project = %+v", p)
	}
	// Код проекта задан, id выводится из него
	if p.ID != entities.StableID("project", "X50") {
		t.Errorf("ID = %q", p.ID)
	}
	// Строка без имени и кода пропускается
	if warningCodes(parsed.Warnings)[entities.WarnRowSkipped] != 1 {
		t.Errorf("warnings = %+v", parsed.Warnings)
	}
}

func TestProcessSheetUnknownCategory(t *testing.T) {
	sheet := gridSheet("Notes", [][]string{
		{"Alpha", "Beta", "Gamma"},
		{"1", "2", "3"},
	})

	result, parsed := processOne(t, sheet)

	if result.Category.Category != matching.CategoryUnknown {
		t.Fatalf("Category = %s, want UNKNOWN", result.Category.Category)
	}
	if len(parsed.Cells)+len(parsed.Robots)+len(parsed.Tools)+len(parsed.Projects) != 0 {
		t.Error("нераспознанный лист не должен давать сущностей")
	}
	if warningCodes(parsed.Warnings)[entities.WarnUnknownFileType] != 1 {
		t.Errorf("warnings = %+v, want UNKNOWN_FILE_TYPE", parsed.Warnings)
	}
}

func TestProcessSheetStatusFieldsCollected(t *testing.T) {
	sheet := gridSheet("Status", [][]string{
		{"Station", "Robot Number", "First Stage Completion [%]", "Robot Configured [%]"},
		{"S010", "R01", "80", "55"},
	})

	_, parsed := processOne(t, sheet)

	if len(parsed.Cells) != 1 {
		t.Fatalf("Cells = %+v", parsed.Cells)
	}
	fields := parsed.Cells[0].StatusFields
	// Метрикоподобные колонки попадают в сырые поля статуса
	if fields["first stage completion"] != 80 {
		t.Errorf("StatusFields = %+v, want first stage completion -> 80", fields)
	}
	if fields["robot configured"] != 55 {
		t.Errorf("StatusFields = %+v, want robot configured -> 55", fields)
	}
}

func TestProcessFileUnreadableWorkbook(t *testing.T) {
	p := newTestPipeline()

	result := p.ProcessFile("/nonexistent/missing.xlsx")

	if !result.Failed() {
		t.Fatal("нечитаемый файл должен быть помечен ошибкой")
	}
	if warningCodes(result.Warnings)[entities.WarnParserError] != 1 {
		t.Errorf("warnings = %+v, want PARSER_ERROR", result.Warnings)
	}
}

func TestProcessBatchPreservesOrder(t *testing.T) {
	p := newTestPipeline()

	paths := []string{"/nonexistent/a.xlsx", "/nonexistent/b.xlsx", "/nonexistent/c.xlsx"}
	results := p.ProcessBatch(context.Background(), paths, 2)

	if len(results) != len(paths) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(paths))
	}
	for i, want := range []string{"a.xlsx", "b.xlsx", "c.xlsx"} {
		if results[i].File != want {
			t.Errorf("results[%d].File = %q, want %q", i, results[i].File, want)
		}
		if !results[i].Failed() {
			t.Errorf("results[%d] должен быть ошибочным", i)
		}
	}
}
