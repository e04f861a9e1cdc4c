// Package importer превращает файлы выгрузок в согласованные коллекции
// сущностей: чтение книги, профилирование листов, сопоставление колонок,
// построчный разбор и агрегация предупреждений.
package importer

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/profiling"
)

// ReadWorkbook читает книгу xlsx и отдает сетки значений по листам.
// Значения приходят от excelize строками и приводятся к CellValue здесь,
// на границе чтения. Нечитаемый файл — ошибка этого файла, а не пакета.
func ReadWorkbook(path string) ([]profiling.RawSheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheetNames := f.GetSheetList()
	if len(sheetNames) == 0 {
		return nil, fmt.Errorf("workbook %s contains no sheets", path)
	}

	sheets := make([]profiling.RawSheet, 0, len(sheetNames))
	for _, name := range sheetNames {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", name, err)
		}

		grid := make([][]profiling.CellValue, len(rows))
		for i, row := range rows {
			cells := make([]profiling.CellValue, len(row))
			for j, raw := range row {
				cells[j] = profiling.CellFromString(raw)
			}
			grid[i] = cells
		}

		sheets = append(sheets, profiling.RawSheet{Name: name, Rows: grid})
	}

	return sheets, nil
}
