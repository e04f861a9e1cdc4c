package profiling

import "testing"

// sheetFromStrings собирает лист из строковых сеток, как после чтения файла
func sheetFromStrings(name string, rows [][]string) RawSheet {
	sheet := RawSheet{Name: name}
	for _, row := range rows {
		cells := make([]CellValue, len(row))
		for i, raw := range row {
			cells[i] = CellFromString(raw)
		}
		sheet.Rows = append(sheet.Rows, cells)
	}
	return sheet
}

func TestDetectHeaderRowWithJunkRows(t *testing.T) {
	sheet := sheetFromStrings("Status", [][]string{
		{"ACME Body Shop - Tracking"},
		{},
		{"Project", "Area", "Station", "Robot Number", "Application", "Simulation Engineer"},
		{"P1", "UB1", "S010", "R01", "SPOT", "Alice"},
		{"P1", "UB1", "S020", "R02", "SPOT", "Bob"},
	})

	if got := DetectHeaderRow(sheet.Rows); got != 2 {
		t.Errorf("DetectHeaderRow = %d, want 2", got)
	}
}

func TestDetectHeaderRowFirstRow(t *testing.T) {
	sheet := sheetFromStrings("Guns", [][]string{
		{"Station", "Gun Name", "Gun Type", "Force"},
		{"S010", "GUN_A", "X-Gun", "3,5"},
	})

	if got := DetectHeaderRow(sheet.Rows); got != 0 {
		t.Errorf("DetectHeaderRow = %d, want 0", got)
	}
}

func TestProfileSheet(t *testing.T) {
	sheet := sheetFromStrings("Status", [][]string{
		{"Project", "Station", "First Stage Completion"},
		{"P1", "S010", "80"},
		{"P1", "S020", "50"},
		// Рваная строка: недостающие ячейки считаются пустыми
		{"P1"},
	})

	profile := ProfileSheet("wb1", 0, sheet)

	if profile.HeaderRowIndex != 0 {
		t.Fatalf("HeaderRowIndex = %d, want 0", profile.HeaderRowIndex)
	}
	if profile.ColumnCount != 3 {
		t.Errorf("ColumnCount = %d, want 3", profile.ColumnCount)
	}
	if len(profile.Columns) != 3 {
		t.Fatalf("len(Columns) = %d, want 3", len(profile.Columns))
	}
	if profile.Columns[1].NormalizedHeader != "station" {
		t.Errorf("NormalizedHeader = %q, want %q", profile.Columns[1].NormalizedHeader, "station")
	}
	// В колонке метрики две из трех строк данных заполнены
	if profile.Columns[2].NonEmptyCount != 2 {
		t.Errorf("NonEmptyCount = %d, want 2", profile.Columns[2].NonEmptyCount)
	}
	if profile.Quality.OverallScore <= 0 || profile.Quality.OverallScore > 100 {
		t.Errorf("OverallScore = %v, вне диапазона 0-100", profile.Quality.OverallScore)
	}
}

func TestProfileSheetEmpty(t *testing.T) {
	profile := ProfileSheet("wb1", 0, RawSheet{Name: "Empty"})

	if profile.RowCount != 0 {
		t.Errorf("RowCount = %d, want 0", profile.RowCount)
	}
	if len(profile.Columns) != 0 {
		t.Errorf("len(Columns) = %d, want 0", len(profile.Columns))
	}
	if profile.Quality.OverallScore != 0 {
		t.Errorf("OverallScore = %v, want 0", profile.Quality.OverallScore)
	}
}

func TestProfileSheetHeaderOverride(t *testing.T) {
	override := 1
	sheet := sheetFromStrings("Status", [][]string{
		{"junk", "junk", "junk"},
		{"Project", "Station", "Status"},
		{"P1", "S010", "ok"},
	})
	sheet.HeaderRowOverride = &override

	profile := ProfileSheet("wb1", 0, sheet)
	if profile.HeaderRowIndex != 1 {
		t.Errorf("HeaderRowIndex = %d, want 1 (override)", profile.HeaderRowIndex)
	}
}

func TestProfileSheetHeaderOverrideOutOfRange(t *testing.T) {
	override := 10
	sheet := sheetFromStrings("Status", [][]string{
		{"Project", "Station", "Status"},
		{"P1", "S010", "ok"},
	})
	sheet.HeaderRowOverride = &override

	profile := ProfileSheet("wb1", 0, sheet)
	if profile.HeaderRowIndex != 0 {
		t.Errorf("HeaderRowIndex = %d, want 0 (автоопределение)", profile.HeaderRowIndex)
	}
	if !profile.HeaderOverrideIgnored {
		t.Error("HeaderOverrideIgnored = false, want true")
	}
	if len(profile.Columns) != 3 {
		t.Errorf("len(Columns) = %d, want 3", len(profile.Columns))
	}
}

func TestProfileSheetHeaderOverrideNegative(t *testing.T) {
	override := -1
	sheet := sheetFromStrings("Status", [][]string{
		{"Project", "Station", "Status"},
		{"P1", "S010", "ok"},
	})
	sheet.HeaderRowOverride = &override

	profile := ProfileSheet("wb1", 0, sheet)
	if profile.HeaderRowIndex != 0 {
		t.Errorf("HeaderRowIndex = %d, want 0 (автоопределение)", profile.HeaderRowIndex)
	}
	if !profile.HeaderOverrideIgnored {
		t.Error("HeaderOverrideIgnored = false, want true")
	}
}

func TestQualityPerfectSheet(t *testing.T) {
	sheet := sheetFromStrings("Full", [][]string{
		{"Station", "Status"},
		{"S010", "done"},
		{"S020", "open"},
	})

	profile := ProfileSheet("wb1", 0, sheet)
	if profile.Quality.OverallScore != 100 {
		t.Errorf("OverallScore = %v, want 100 для полностью заполненного листа", profile.Quality.OverallScore)
	}
}
