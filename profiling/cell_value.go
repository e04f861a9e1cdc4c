package profiling

import (
	"strconv"
	"strings"
	"time"
)

// CellKind тип значения ячейки после приведения на границе чтения
type CellKind int

const (
	CellEmpty CellKind = iota
	CellString
	CellNumber
	CellBool
	CellDate
)

// String возвращает строковое имя типа ячейки
func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellString:
		return "string"
	case CellNumber:
		return "number"
	case CellBool:
		return "boolean"
	case CellDate:
		return "date"
	default:
		return "unknown"
	}
}

// CellValue размеченное объединение для значения ячейки таблицы.
// Читатель файлов отдает значения без фиксированного порядка типов,
// поэтому приводим их к закрытому варианту один раз на входе.
type CellValue struct {
	Kind CellKind
	Str  string
	Num  float64
	Bool bool
	Date time.Time
}

// EmptyCell пустая ячейка
func EmptyCell() CellValue {
	return CellValue{Kind: CellEmpty}
}

// StringCell строковая ячейка
func StringCell(s string) CellValue {
	return CellValue{Kind: CellString, Str: s}
}

// NumberCell числовая ячейка
func NumberCell(n float64) CellValue {
	return CellValue{Kind: CellNumber, Num: n}
}

// BoolCell логическая ячейка
func BoolCell(b bool) CellValue {
	return CellValue{Kind: CellBool, Bool: b}
}

// DateCell ячейка с датой
func DateCell(t time.Time) CellValue {
	return CellValue{Kind: CellDate, Date: t}
}

// dateLayouts форматы дат, встречающиеся в выгрузках разных заводов
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02.01.2006",
	"02/01/2006",
}

// boolLiterals литералы, которые трактуем как логическое значение
var boolLiterals = map[string]bool{
	"yes": true, "y": true, "true": true,
	"no": false, "n": false, "false": false,
}

// CellFromString приводит сырую строку из читателя файлов к CellValue.
// Числовые и датоподобные строки распознаются здесь, чтобы профилировщик
// работал только с размеченным вариантом.
func CellFromString(raw string) CellValue {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return EmptyCell()
	}

	if b, ok := boolLiterals[strings.ToLower(trimmed)]; ok {
		return BoolCell(b)
	}

	// Числа: допускаем запятую как десятичный разделитель и знак процента
	numeric := strings.TrimSuffix(trimmed, "%")
	numeric = strings.ReplaceAll(numeric, ",", ".")
	if n, err := strconv.ParseFloat(numeric, 64); err == nil {
		return NumberCell(n)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return DateCell(t)
		}
	}

	return StringCell(trimmed)
}

// IsEmpty сообщает, пустая ли ячейка
func (v CellValue) IsEmpty() bool {
	return v.Kind == CellEmpty
}

// IsInteger сообщает, является ли числовая ячейка целым числом
func (v CellValue) IsInteger() bool {
	return v.Kind == CellNumber && v.Num == float64(int64(v.Num))
}

// Text возвращает строковое представление значения для сэмплов и метаданных
func (v CellValue) Text() string {
	switch v.Kind {
	case CellString:
		return v.Str
	case CellNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case CellBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case CellDate:
		return v.Date.Format("2006-01-02")
	default:
		return ""
	}
}

// RawSheet входной контракт с библиотекой чтения файлов:
// имя листа и двумерная сетка значений. HeaderRowOverride позволяет
// вызывающему коду указать строку заголовков заранее.
type RawSheet struct {
	Name              string
	Rows              [][]CellValue
	HeaderRowOverride *int
}
