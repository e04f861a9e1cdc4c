package entities

import "fmt"

// WarningCode код структурного предупреждения. Все проблемы данных
// нефатальны: они накапливаются и отдаются вместе с результатом загрузки,
// а не прерывают обработку пакета файлов.
type WarningCode string

const (
	WarnUnknownFileType       WarningCode = "UNKNOWN_FILE_TYPE"
	WarnNoHeaderFound         WarningCode = "NO_HEADER_FOUND"
	WarnRequiredColumnMissing WarningCode = "REQUIRED_COLUMN_MISSING"
	WarnAmbiguousMatch        WarningCode = "AMBIGUOUS_MATCH"
	WarnRowSkipped            WarningCode = "ROW_SKIPPED"
	WarnDuplicateEntry        WarningCode = "DUPLICATE_ENTRY"
	WarnLinkingAmbiguous      WarningCode = "LINKING_AMBIGUOUS"
	WarnLinkingMissingTarget  WarningCode = "LINKING_MISSING_TARGET"
	WarnParserError           WarningCode = "PARSER_ERROR"
)

// Warning структурное предупреждение с контекстом, достаточным для
// разбора без повторного открытия исходного файла
type Warning struct {
	Code    WarningCode `json:"code"`
	File    string      `json:"file,omitempty"`
	Sheet   string      `json:"sheet,omitempty"`
	Row     int         `json:"row,omitempty"`
	Details string      `json:"details,omitempty"`
}

// String человекочитаемое представление предупреждения
func (w Warning) String() string {
	location := w.File
	if w.Sheet != "" {
		location += "/" + w.Sheet
	}
	if w.Row > 0 {
		location += fmt.Sprintf(":%d", w.Row)
	}
	if location != "" {
		return fmt.Sprintf("[%s] %s: %s", w.Code, location, w.Details)
	}
	return fmt.Sprintf("[%s] %s", w.Code, w.Details)
}
