package profiling

import (
	"reflect"
	"testing"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Gun Force [N]", "gun force"},
		{"Robotnumber (E-Number)", "robotnumber"},
		{"  Simulation   Engineer ", "simulation engineer"},
		{"1st Stage Completion [%]", "1st stage completion"},
		{"Café {note}", "cafe"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeHeader(tt.raw); got != tt.want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestTokenizeHeader(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"Gun Force [N]", []string{"gun", "force"}},
		{"Robotnumber (E-Number)", []string{"robotnumber"}},
		{"PercentComplete", []string{"percent", "complete"}},
		{"tool_sim_lead", []string{"tool", "sim", "lead"}},
		{"1st Stage Completion [%]", []string{"1st", "stage", "completion"}},
		{"", nil},
		{"[only brackets]", nil},
	}

	for _, tt := range tests {
		got := TokenizeHeader(tt.raw)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("TokenizeHeader(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestProfileColumnIdentifier(t *testing.T) {
	values := []CellValue{
		StringCell("S010"), StringCell("S020"), StringCell("S030"),
		StringCell("S040"), StringCell("S050"),
	}

	profile := ProfileColumn("wb", "sheet", 2, "Station", values)

	if profile.DominantType != ColumnTypeString {
		t.Errorf("DominantType = %v, want string", profile.DominantType)
	}
	if !profile.LikelyIdentifier {
		t.Error("колонка с уникальными значениями должна считаться идентификатором")
	}
	if profile.LikelyCategory {
		t.Error("уникальные значения не категория")
	}
	if profile.DistinctCount != 5 {
		t.Errorf("DistinctCount = %d, want 5", profile.DistinctCount)
	}
}

func TestProfileColumnCategory(t *testing.T) {
	var values []CellValue
	for i := 0; i < 12; i++ {
		switch i % 3 {
		case 0:
			values = append(values, StringCell("SPOT"))
		case 1:
			values = append(values, StringCell("SEALING"))
		default:
			values = append(values, StringCell("HANDLING"))
		}
	}

	profile := ProfileColumn("wb", "sheet", 4, "Application", values)

	if !profile.LikelyCategory {
		t.Error("малое число повторяющихся значений должно считаться категорией")
	}
	if profile.LikelyIdentifier {
		t.Error("повторяющиеся значения не идентификатор")
	}
}

func TestProfileColumnInteger(t *testing.T) {
	values := []CellValue{NumberCell(1), NumberCell(2), NumberCell(3)}
	profile := ProfileColumn("wb", "sheet", 0, "Robots", values)

	if profile.DominantType != ColumnTypeInteger {
		t.Errorf("DominantType = %v, want integer", profile.DominantType)
	}
	if profile.Ratios.Number != 1 || profile.Ratios.Integer != 1 {
		t.Errorf("Ratios = %+v, ожидались единичные доли чисел", profile.Ratios)
	}
}

func TestProfileColumnMixed(t *testing.T) {
	values := []CellValue{
		StringCell("a"), StringCell("b"),
		NumberCell(1), NumberCell(2),
		BoolCell(true),
	}
	profile := ProfileColumn("wb", "sheet", 0, "Mixed", values)

	if profile.DominantType != ColumnTypeMixed {
		t.Errorf("DominantType = %v, want mixed", profile.DominantType)
	}
}

func TestProfileColumnEmpty(t *testing.T) {
	values := []CellValue{EmptyCell(), EmptyCell(), EmptyCell()}
	profile := ProfileColumn("wb", "sheet", 0, "Empty", values)

	if profile.DominantType != ColumnTypeEmpty {
		t.Errorf("DominantType = %v, want empty", profile.DominantType)
	}
	if profile.NonEmptyCount != 0 {
		t.Errorf("NonEmptyCount = %d, want 0", profile.NonEmptyCount)
	}
	if profile.Ratios.Empty != 1 {
		t.Errorf("Ratios.Empty = %v, want 1", profile.Ratios.Empty)
	}
}

func TestProfileColumnSampleLimit(t *testing.T) {
	var values []CellValue
	for i := 0; i < 50; i++ {
		values = append(values, NumberCell(float64(i)))
	}
	profile := ProfileColumn("wb", "sheet", 0, "Many", values)

	if len(profile.Samples) != maxSampleValues {
		t.Errorf("len(Samples) = %d, want %d", len(profile.Samples), maxSampleValues)
	}
	if profile.DistinctCount != 50 {
		t.Errorf("DistinctCount = %d, want 50", profile.DistinctCount)
	}
}
