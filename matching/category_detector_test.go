package matching

import (
	"testing"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/profiling"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/registry"
)

func matchHeaders(t *testing.T, headers ...string) []FieldMatchResult {
	t.Helper()
	m := newTestMatcher()

	results := make([]FieldMatchResult, 0, len(headers))
	for i, header := range headers {
		results = append(results, m.MatchColumn(profiling.ProfileColumn("wb", "sheet", i, header, nil)))
	}
	return results
}

func TestDetectCategorySimulationStatus(t *testing.T) {
	reg := registry.New()
	results := matchHeaders(t,
		"Proyect", "Area", "Station", "Robotnumber (E-Number)",
		"Application", "First Stage Completion [%]", "Simulation Engineer")

	got := DetectCategory(reg, results)
	if got.Category != CategorySimulationStatus {
		t.Fatalf("Category = %s (балл %d, поля %v), want SIMULATION_STATUS",
			got.Category, got.Score, got.MatchedFields)
	}
	if got.Score < minimumCategoryScore {
		t.Errorf("Score = %d ниже порога %d", got.Score, minimumCategoryScore)
	}
}

func TestDetectCategoryGunForce(t *testing.T) {
	reg := registry.New()
	results := matchHeaders(t, "Station", "Gun Name", "Gun Type", "Gun Force (kN)")

	got := DetectCategory(reg, results)
	if got.Category != CategoryGunForce {
		t.Fatalf("Category = %s (балл %d, поля %v), want GUN_FORCE",
			got.Category, got.Score, got.MatchedFields)
	}
}

func TestDetectCategoryProjectList(t *testing.T) {
	reg := registry.New()
	results := matchHeaders(t, "Project", "Project Name", "Customer", "Plant")

	got := DetectCategory(reg, results)
	if got.Category != CategoryProjectList {
		t.Fatalf("Category = %s (балл %d, поля %v), want PROJECT_LIST",
			got.Category, got.Score, got.MatchedFields)
	}
}

func TestDetectCategoryUnknownBelowThreshold(t *testing.T) {
	reg := registry.New()
	// Одинокая колонка заказчика не дает уверенного распознавания
	results := matchHeaders(t, "Customer")

	got := DetectCategory(reg, results)
	if got.Category != CategoryUnknown {
		t.Fatalf("Category = %s, want UNKNOWN", got.Category)
	}
}

func TestDetectCategoryEmptySheet(t *testing.T) {
	reg := registry.New()

	got := DetectCategory(reg, nil)
	if got.Category != CategoryUnknown {
		t.Fatalf("Category = %s, want UNKNOWN для пустого листа", got.Category)
	}
	if got.Score != 0 {
		t.Errorf("Score = %d, want 0", got.Score)
	}
}

func TestDetectCategoryDeterministicTieBreak(t *testing.T) {
	reg := registry.New()
	results := matchHeaders(t,
		"Proyect", "Area", "Station", "Robotnumber (E-Number)",
		"Application", "First Stage Completion [%]", "Simulation Engineer")

	first := DetectCategory(reg, results)
	second := DetectCategory(reg, results)
	if first.Category != second.Category || first.Score != second.Score {
		t.Error("распознавание категории должно быть детерминированным")
	}
}
