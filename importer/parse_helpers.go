package importer

import (
	"fmt"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/entities"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/matching"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/profiling"
)

// ParsedSheet результат разбора одного листа: коллекции сущностей по видам
// и накопленные предупреждения
type ParsedSheet struct {
	Category matching.Category  `json:"category"`
	Projects []entities.Project `json:"projects,omitempty"`
	Areas    []entities.Area    `json:"areas,omitempty"`
	Cells    []entities.Cell    `json:"cells,omitempty"`
	Robots   []entities.Robot   `json:"robots,omitempty"`
	Tools    []entities.Tool    `json:"tools,omitempty"`
	Warnings []entities.Warning `json:"warnings,omitempty"`
}

// merge добавляет содержимое другого разобранного листа
func (p *ParsedSheet) merge(other ParsedSheet) {
	p.Projects = append(p.Projects, other.Projects...)
	p.Areas = append(p.Areas, other.Areas...)
	p.Cells = append(p.Cells, other.Cells...)
	p.Robots = append(p.Robots, other.Robots...)
	p.Tools = append(p.Tools, other.Tools...)
	p.Warnings = append(p.Warnings, other.Warnings...)
}

// sheetContext все, что нужно построчному парсеру: сетка, профиль,
// сопоставление колонок и источник для происхождения записей
type sheetContext struct {
	source    string
	sheet     profiling.RawSheet
	profile   profiling.SheetProfile
	results   []matching.FieldMatchResult
	fieldCols map[string][]int
}

// dataRowOffset индекс первой строки данных в исходной сетке
func (c *sheetContext) dataRowOffset() int {
	return c.profile.HeaderRowIndex + 1
}

// column возвращает индекс колонки поля и предупреждает о неоднозначном
// сопоставлении: если на поле претендует несколько колонок, берется первая,
// но это всегда всплывает наружу, а не разрешается молча
func (c *sheetContext) column(fieldID string, warnings *[]entities.Warning) (int, bool) {
	cols, ok := c.fieldCols[fieldID]
	if !ok || len(cols) == 0 {
		return 0, false
	}
	if len(cols) > 1 && warnings != nil {
		*warnings = append(*warnings, entities.Warning{
			Code:    entities.WarnAmbiguousMatch,
			File:    c.source,
			Sheet:   c.sheet.Name,
			Details: fmt.Sprintf("field %s matched columns %v, using first", fieldID, cols),
		})
	}
	return cols[0], true
}

// cellAt значение ячейки строки данных; за пределами рваной строки — пусто
func (c *sheetContext) cellAt(dataRow, col int) profiling.CellValue {
	rowIndex := c.dataRowOffset() + dataRow
	if rowIndex >= len(c.sheet.Rows) {
		return profiling.EmptyCell()
	}
	row := c.sheet.Rows[rowIndex]
	if col >= len(row) {
		return profiling.EmptyCell()
	}
	return row[col]
}

// textAt строковое значение ячейки
func (c *sheetContext) textAt(dataRow, col int) string {
	return c.cellAt(dataRow, col).Text()
}

// numberAt числовое значение ячейки; нечисловое значение дает 0
func (c *sheetContext) numberAt(dataRow, col int) float64 {
	cell := c.cellAt(dataRow, col)
	if cell.Kind == profiling.CellNumber {
		return cell.Num
	}
	return 0
}

// dataRowCount количество строк данных
func (c *sheetContext) dataRowCount() int {
	n := len(c.sheet.Rows) - c.dataRowOffset()
	if n < 0 {
		return 0
	}
	return n
}

// rowEmpty сообщает, пуста ли строка данных целиком
func (c *sheetContext) rowEmpty(dataRow int) bool {
	rowIndex := c.dataRowOffset() + dataRow
	if rowIndex >= len(c.sheet.Rows) {
		return true
	}
	for _, cell := range c.sheet.Rows[rowIndex] {
		if !cell.IsEmpty() {
			return false
		}
	}
	return true
}

// provenance происхождение записи; номер строки — по исходной сетке, с единицы
func (c *sheetContext) provenance(dataRow int) entities.Provenance {
	return entities.Provenance{
		SourceFile: c.source,
		Sheet:      c.sheet.Name,
		RowIndex:   c.dataRowOffset() + dataRow + 1,
	}
}

// unmappedMetadata собирает значения несопоставленных колонок строки в
// сумку метаданных. Ключ — нормализованный заголовок колонки.
func (c *sheetContext) unmappedMetadata(dataRow int) entities.MetaMap {
	var meta entities.MetaMap
	for _, result := range c.results {
		if result.Best != nil {
			continue
		}
		key := result.Column.NormalizedHeader
		if key == "" {
			continue
		}
		cell := c.cellAt(dataRow, result.Column.ColumnIndex)
		if cell.IsEmpty() {
			continue
		}
		if meta == nil {
			meta = make(entities.MetaMap)
		}
		switch cell.Kind {
		case profiling.CellNumber:
			meta[key] = entities.MetaNum(cell.Num)
		case profiling.CellBool:
			meta[key] = entities.MetaBoolVal(cell.Bool)
		default:
			meta[key] = entities.MetaStr(cell.Text())
		}
	}
	return meta
}

// requireField проверяет наличие обязательного поля на листе
func (c *sheetContext) requireField(fieldID string, warnings *[]entities.Warning) (int, bool) {
	col, ok := c.column(fieldID, warnings)
	if !ok {
		*warnings = append(*warnings, entities.Warning{
			Code:    entities.WarnRequiredColumnMissing,
			File:    c.source,
			Sheet:   c.sheet.Name,
			Details: fmt.Sprintf("required field %s has no column mapping", fieldID),
		})
	}
	return col, ok
}
