package profiling

import "strings"

// headerScanLimit сколько первых строк рассматриваем как кандидаты в заголовок
const headerScanLimit = 20

// headerKeywords слова, часто встречающиеся в заголовках выгрузок
var headerKeywords = map[string]struct{}{
	"name": {}, "station": {}, "robot": {}, "area": {}, "line": {},
	"project": {}, "comment": {}, "status": {}, "tool": {}, "gun": {},
	"force": {}, "date": {}, "type": {}, "id": {}, "code": {},
	"supplier": {}, "application": {}, "cell": {}, "number": {},
	"stage": {}, "completion": {}, "engineer": {}, "plant": {},
}

// QualityMetrics интегральная оценка качества листа, 0-100.
// Четыре компонента по 25 баллов каждый.
type QualityMetrics struct {
	RowFillRate       float64 `json:"row_fill_rate"`
	AvgColumnFillRate float64 `json:"avg_column_fill_rate"`
	StrongColumnRatio float64 `json:"strong_column_ratio"`
	DataDensity       float64 `json:"data_density"`
	OverallScore      float64 `json:"overall_score"`
}

// SheetProfile профиль листа: найденная строка заголовков, профили всех
// колонок и метрики качества. Пересчитывается на каждый проход загрузки,
// не сохраняется.
type SheetProfile struct {
	WorkbookID            string          `json:"workbook_id"`
	SheetName             string          `json:"sheet_name"`
	SheetIndex            int             `json:"sheet_index"`
	HeaderRowIndex        int             `json:"header_row_index"`
	HeaderOverrideIgnored bool            `json:"header_override_ignored,omitempty"`
	RowCount              int             `json:"row_count"`
	ColumnCount           int             `json:"column_count"`
	Columns               []ColumnProfile `json:"columns"`
	Quality               QualityMetrics  `json:"quality"`
}

// ProfileSheet профилирует сырой лист. Пустой лист дает корректный профиль
// с нулевым качеством, а не ошибку.
func ProfileSheet(workbookID string, sheetIndex int, sheet RawSheet) SheetProfile {
	profile := SheetProfile{
		WorkbookID: workbookID,
		SheetName:  sheet.Name,
		SheetIndex: sheetIndex,
		RowCount:   len(sheet.Rows),
	}

	if len(sheet.Rows) == 0 {
		return profile
	}

	// Ширина листа — максимальная ширина строки: рваные строки допустимы,
	// недостающие ячейки считаются пустыми
	for _, row := range sheet.Rows {
		if len(row) > profile.ColumnCount {
			profile.ColumnCount = len(row)
		}
	}

	// Переопределение строки заголовков приходит от вызывающего кода и
	// может указывать за пределы листа; такое значение игнорируется, а не
	// роняет профилирование
	switch {
	case sheet.HeaderRowOverride == nil:
		profile.HeaderRowIndex = DetectHeaderRow(sheet.Rows)
	case *sheet.HeaderRowOverride >= 0 && *sheet.HeaderRowOverride < len(sheet.Rows):
		profile.HeaderRowIndex = *sheet.HeaderRowOverride
	default:
		profile.HeaderOverrideIgnored = true
		profile.HeaderRowIndex = DetectHeaderRow(sheet.Rows)
	}

	headerRow := sheet.Rows[profile.HeaderRowIndex]
	dataRows := sheet.Rows[profile.HeaderRowIndex+1:]

	profile.Columns = make([]ColumnProfile, 0, profile.ColumnCount)
	for col := 0; col < profile.ColumnCount; col++ {
		header := ""
		if col < len(headerRow) {
			header = headerRow[col].Text()
		}

		values := make([]CellValue, len(dataRows))
		for i, row := range dataRows {
			if col < len(row) {
				values[i] = row[col]
			} else {
				values[i] = EmptyCell()
			}
		}

		profile.Columns = append(profile.Columns, ProfileColumn(workbookID, sheet.Name, col, header, values))
	}

	profile.Quality = computeQuality(profile, dataRows)
	return profile
}

// DetectHeaderRow находит строку заголовков среди первых строк листа.
// Побеждает строка с максимальным баллом, при равенстве — более ранняя.
func DetectHeaderRow(rows [][]CellValue) int {
	limit := len(rows)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}

	bestRow := 0
	bestScore := -1 << 30
	for i := 0; i < limit; i++ {
		score := scoreHeaderCandidate(rows, i)
		if score > bestScore {
			bestScore = score
			bestRow = i
		}
	}
	return bestRow
}

// scoreHeaderCandidate оценивает строку как кандидата в заголовок
func scoreHeaderCandidate(rows [][]CellValue, index int) int {
	row := rows[index]
	if len(row) == 0 {
		return -100
	}

	nonEmpty := 0
	stringCells := 0
	numericCells := 0
	keywordHits := 0
	for _, cell := range row {
		if cell.IsEmpty() {
			continue
		}
		nonEmpty++
		switch cell.Kind {
		case CellString:
			stringCells++
			for _, token := range TokenizeHeader(cell.Str) {
				if _, ok := headerKeywords[token]; ok {
					keywordHits++
					break
				}
			}
		case CellNumber:
			numericCells++
		}
	}

	if nonEmpty == 0 {
		return -100
	}

	score := 0
	fillRate := float64(nonEmpty) / float64(len(row))
	if fillRate > 0.3 {
		score += 10
	}
	if fillRate > 0.6 {
		score += 10
	}
	if float64(stringCells)/float64(nonEmpty) > 0.7 {
		score += 20
	}
	// Ограничиваем вклад ключевых слов, чтобы широкий лист не перевесил все
	if keywordHits > 6 {
		keywordHits = 6
	}
	score += keywordHits * 5
	// Заголовки редко бывают числовыми
	if float64(numericCells)/float64(nonEmpty) > 0.5 {
		score -= 15
	}
	// Строка, наполовину совпадающая со следующей, скорее данные
	if index+1 < len(rows) && rowOverlap(row, rows[index+1]) > 0.5 {
		score -= 10
	}
	// Небольшой бонус за близость к началу листа
	score += headerScanLimit - index

	return score
}

// rowOverlap доля позиций с одинаковыми значениями в двух строках
func rowOverlap(a, b []CellValue) float64 {
	width := len(a)
	if len(b) > width {
		width = len(b)
	}
	if width == 0 {
		return 0
	}

	same := 0
	for i := 0; i < width; i++ {
		var av, bv string
		if i < len(a) {
			av = a[i].Text()
		}
		if i < len(b) {
			bv = b[i].Text()
		}
		if av != "" && av == bv {
			same++
		}
	}
	return float64(same) / float64(width)
}

// computeQuality вычисляет метрики качества листа.
// Каждый компонент дает не больше 25 баллов.
func computeQuality(profile SheetProfile, dataRows [][]CellValue) QualityMetrics {
	var q QualityMetrics
	if len(dataRows) == 0 || profile.ColumnCount == 0 {
		return q
	}

	filledRows := 0
	nonEmptyCells := 0
	for _, row := range dataRows {
		rowNonEmpty := 0
		for _, cell := range row {
			if !cell.IsEmpty() {
				rowNonEmpty++
			}
		}
		nonEmptyCells += rowNonEmpty
		if rowNonEmpty > 0 {
			filledRows++
		}
	}

	q.RowFillRate = float64(filledRows) / float64(len(dataRows))

	var fillSum float64
	strongColumns := 0
	for _, col := range profile.Columns {
		var fill float64
		if col.TotalCount > 0 {
			fill = float64(col.NonEmptyCount) / float64(col.TotalCount)
		}
		fillSum += fill
		if fill > 0.5 && strings.TrimSpace(col.RawHeader) != "" {
			strongColumns++
		}
	}
	q.AvgColumnFillRate = fillSum / float64(len(profile.Columns))
	q.StrongColumnRatio = float64(strongColumns) / float64(len(profile.Columns))
	q.DataDensity = float64(nonEmptyCells) / float64(len(dataRows)*profile.ColumnCount)

	q.OverallScore = 25*q.RowFillRate + 25*q.AvgColumnFillRate + 25*q.StrongColumnRatio + 25*q.DataDensity
	return q
}
