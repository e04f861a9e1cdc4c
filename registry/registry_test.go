package registry

import "testing"

func TestNewCatalogLoads(t *testing.T) {
	reg := New()

	if len(reg.Fields()) < 30 {
		t.Fatalf("в каталоге %d полей, ожидалось не меньше 30", len(reg.Fields()))
	}

	for _, id := range []string{"station", "robot_number", "gun_force_kn", "comment", "project_id"} {
		if _, ok := reg.ByID(id); !ok {
			t.Errorf("поле %q отсутствует в каталоге", id)
		}
	}
}

func TestByIDUnknown(t *testing.T) {
	reg := New()
	if _, ok := reg.ByID("no_such_field"); ok {
		t.Error("ByID не должен находить несуществующее поле")
	}
}

func TestByImportance(t *testing.T) {
	reg := New()

	high := reg.ByImportance(ImportanceHigh)
	if len(high) == 0 {
		t.Fatal("ожидались поля высокой важности")
	}
	for _, d := range high {
		if d.Importance != ImportanceHigh {
			t.Errorf("поле %s имеет важность %v", d.ID, d.Importance)
		}
	}
}

func TestByType(t *testing.T) {
	reg := New()

	percentages := reg.ByType(TypePercentage)
	if len(percentages) == 0 {
		t.Fatal("ожидались процентные поля")
	}
	ids := make(map[string]bool)
	for _, d := range percentages {
		ids[d.ID] = true
	}
	if !ids["first_stage_completion"] || !ids["final_deliverables"] {
		t.Errorf("среди процентных полей нет метрик готовности: %v", ids)
	}
}

func TestSearchSynonymsStemming(t *testing.T) {
	reg := New()

	tests := []struct {
		query   string
		wantID  string
	}{
		// Стемминг: множественное число находит поле в единственном
		{"comments", "comment"},
		{"Robots", "robot_number"},
		{"stations", "station"},
	}

	for _, tt := range tests {
		results := reg.SearchSynonyms(tt.query)
		found := false
		for _, d := range results {
			if d.ID == tt.wantID {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("SearchSynonyms(%q) не нашел %s, результаты: %v", tt.query, tt.wantID, ids(results))
		}
	}
}

func TestSearchSynonymsDeterministicOrder(t *testing.T) {
	reg := New()

	first := ids(reg.SearchSynonyms("force"))
	second := ids(reg.SearchSynonyms("force"))

	if len(first) == 0 {
		t.Fatal("ожидались результаты поиска")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("порядок результатов недетерминирован: %v vs %v", first, second)
		}
	}
	for i := 1; i < len(first); i++ {
		if first[i-1] >= first[i] {
			t.Fatalf("результаты не отсортированы по id: %v", first)
		}
	}
}

func TestSearchSynonymsEmptyQuery(t *testing.T) {
	reg := New()
	if results := reg.SearchSynonyms(""); results != nil {
		t.Errorf("пустой запрос должен давать nil, получено %v", ids(results))
	}
}

func ids(descriptors []FieldDescriptor) []string {
	result := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		result = append(result, d.ID)
	}
	return result
}
