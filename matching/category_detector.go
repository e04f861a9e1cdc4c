package matching

import (
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/registry"
)

// Category распознанный вид листа
type Category string

const (
	CategorySimulationStatus Category = "SIMULATION_STATUS"
	CategoryGunForce         Category = "GUN_FORCE"
	CategoryRobotList        Category = "ROBOT_LIST"
	CategoryToolList         Category = "TOOL_LIST"
	CategoryProjectList      Category = "PROJECT_LIST"
	CategoryUnknown          Category = "UNKNOWN"
)

// categorySignature сигнатура категории: упорядоченный список ожидаемых полей
type categorySignature struct {
	category Category
	fieldIDs []string
}

// categoryTable таблица сигнатур. Порядок объявления значим: при равных
// баллах побеждает категория, объявленная раньше. Это задокументированное
// детерминированное разрешение ничьей, а не случайность.
var categoryTable = []categorySignature{
	{CategorySimulationStatus, []string{
		"area", "station", "robot_number", "application",
		"first_stage_completion", "final_deliverables", "percent_complete",
		"status", "simulation_engineer",
	}},
	{CategoryGunForce, []string{
		"gun_name", "gun_force_kn", "gun_force_n", "gun_type", "gun_stroke",
		"station", "robot_number",
	}},
	{CategoryRobotList, []string{
		"robot_number", "robot_name", "robot_type", "e_number", "application",
		"station", "area",
	}},
	{CategoryToolList, []string{
		"tool_number", "tool_type", "supplier", "station", "area",
	}},
	{CategoryProjectList, []string{
		"project_id", "project_name", "customer", "plant", "carline",
	}},
}

// minimumCategoryScore минимальный абсолютный балл для присвоения категории
const minimumCategoryScore = 6

// CategoryResult результат распознавания категории листа
type CategoryResult struct {
	Category      Category `json:"category"`
	Score         int      `json:"score"`
	MatchedFields []string `json:"matched_fields"`
}

// DetectCategory агрегирует лучшие совпадения колонок листа в категорию.
// Балл — сумма по полям сигнатуры, найденным среди лучших совпадений:
// поле высокой важности дает 2, остальные 1. Ниже порога — UNKNOWN.
func DetectCategory(reg *registry.Registry, results []FieldMatchResult) CategoryResult {
	matched := make(map[string]struct{})
	for _, r := range results {
		if r.Best != nil {
			matched[r.Best.FieldID] = struct{}{}
		}
	}

	best := CategoryResult{Category: CategoryUnknown}
	for _, signature := range categoryTable {
		score := 0
		var fields []string
		for _, fieldID := range signature.fieldIDs {
			if _, ok := matched[fieldID]; !ok {
				continue
			}
			weight := 1
			if d, found := reg.ByID(fieldID); found && d.Importance == registry.ImportanceHigh {
				weight = 2
			}
			score += weight
			fields = append(fields, fieldID)
		}
		// Строгое "больше": при равенстве остается ранее объявленная категория
		if score > best.Score {
			best = CategoryResult{Category: signature.category, Score: score, MatchedFields: fields}
		}
	}

	if best.Score < minimumCategoryScore {
		return CategoryResult{Category: CategoryUnknown, Score: best.Score, MatchedFields: best.MatchedFields}
	}
	return best
}
