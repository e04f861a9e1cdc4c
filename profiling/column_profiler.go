package profiling

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxSampleValues ограничение на количество сэмплов в профиле колонки
const maxSampleValues = 10

// ColumnType доминирующий тип колонки
type ColumnType string

const (
	ColumnTypeString  ColumnType = "string"
	ColumnTypeNumber  ColumnType = "number"
	ColumnTypeInteger ColumnType = "integer"
	ColumnTypeDate    ColumnType = "date"
	ColumnTypeBoolean ColumnType = "boolean"
	ColumnTypeEmpty   ColumnType = "empty"
	ColumnTypeMixed   ColumnType = "mixed"
)

// TypeRatios доли типов среди непустых значений колонки
type TypeRatios struct {
	String  float64 `json:"string"`
	Number  float64 `json:"number"`
	Integer float64 `json:"integer"`
	Date    float64 `json:"date"`
	Boolean float64 `json:"boolean"`
	Empty   float64 `json:"empty"`
}

// ColumnProfile статистический профиль одной колонки листа.
// Неизменяем после вычисления, один на пару (лист, колонка).
type ColumnProfile struct {
	WorkbookID       string     `json:"workbook_id"`
	SheetName        string     `json:"sheet_name"`
	ColumnIndex      int        `json:"column_index"`
	RawHeader        string     `json:"raw_header"`
	NormalizedHeader string     `json:"normalized_header"`
	HeaderTokens     []string   `json:"header_tokens"`
	TotalCount       int        `json:"total_count"`
	NonEmptyCount    int        `json:"non_empty_count"`
	Ratios           TypeRatios `json:"ratios"`
	DistinctCount    int        `json:"distinct_count"`
	DominantType     ColumnType `json:"dominant_type"`
	Samples          []string   `json:"samples"`
	LikelyIdentifier bool       `json:"likely_identifier"`
	LikelyCategory   bool       `json:"likely_category"`
}

// bracketedRe вырезает содержимое скобок целиком: "Gun Force [N]" -> "Gun Force"
var bracketedRe = regexp.MustCompile(`\[[^\]]*\]|\([^)]*\)|\{[^}]*\}`)

// diacriticsFold убирает диакритику: NFD -> удаление комбинируемых знаков -> NFC.
// Немецкие умляуты и французские акценты в заголовках приводятся к латинице.
var diacriticsFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeHeader нормализует заголовок колонки: нижний регистр,
// без скобочных фрагментов, без диакритики, одинарные пробелы.
func NormalizeHeader(header string) string {
	s := bracketedRe.ReplaceAllString(header, " ")
	s = strings.ToLower(strings.TrimSpace(s))
	if folded, _, err := transform.String(diacriticsFold, s); err == nil {
		s = folded
	}
	return strings.Join(strings.Fields(s), " ")
}

// TokenizeHeader разбивает заголовок на токены: нижний регистр, скобочные
// фрагменты отбрасываются целиком, разделители — пробелы, подчеркивания,
// дефисы и границы camelCase. Пустые токены не попадают в результат.
func TokenizeHeader(header string) []string {
	s := bracketedRe.ReplaceAllString(header, " ")
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	// Разрываем границы camelCase до приведения к нижнему регистру
	var expanded strings.Builder
	prevLower := false
	for _, r := range s {
		if unicode.IsUpper(r) && prevLower {
			expanded.WriteRune(' ')
		}
		prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		expanded.WriteRune(r)
	}

	lowered := strings.ToLower(expanded.String())
	if folded, _, err := transform.String(diacriticsFold, lowered); err == nil {
		lowered = folded
	}

	fields := strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// ProfileColumn строит профиль одной колонки по заголовку и значениям.
// Никогда не возвращает ошибку: полностью пустая колонка — валидный вход
// для последующего сопоставления.
func ProfileColumn(workbookID, sheetName string, columnIndex int, header string, values []CellValue) ColumnProfile {
	profile := ColumnProfile{
		WorkbookID:       workbookID,
		SheetName:        sheetName,
		ColumnIndex:      columnIndex,
		RawHeader:        header,
		NormalizedHeader: NormalizeHeader(header),
		HeaderTokens:     TokenizeHeader(header),
		TotalCount:       len(values),
	}

	var stringCount, numberCount, integerCount, dateCount, boolCount int
	distinct := make(map[string]struct{})

	for _, v := range values {
		switch v.Kind {
		case CellEmpty:
			continue
		case CellString:
			stringCount++
		case CellNumber:
			numberCount++
			if v.IsInteger() {
				integerCount++
			}
		case CellDate:
			dateCount++
		case CellBool:
			boolCount++
		}

		profile.NonEmptyCount++

		text := v.Text()
		if _, seen := distinct[text]; !seen {
			distinct[text] = struct{}{}
			if len(profile.Samples) < maxSampleValues {
				profile.Samples = append(profile.Samples, text)
			}
		}
	}

	profile.DistinctCount = len(distinct)

	if profile.TotalCount > 0 {
		profile.Ratios.Empty = float64(profile.TotalCount-profile.NonEmptyCount) / float64(profile.TotalCount)
	}
	if profile.NonEmptyCount > 0 {
		n := float64(profile.NonEmptyCount)
		profile.Ratios.String = float64(stringCount) / n
		profile.Ratios.Number = float64(numberCount) / n
		profile.Ratios.Integer = float64(integerCount) / n
		profile.Ratios.Date = float64(dateCount) / n
		profile.Ratios.Boolean = float64(boolCount) / n
	}

	profile.DominantType = dominantType(stringCount, numberCount, integerCount, dateCount, boolCount, profile.NonEmptyCount)

	// Эвристики кардинальности: почти уникальные значения — вероятный
	// идентификатор, малое число повторяющихся значений — вероятная категория
	if profile.NonEmptyCount > 0 {
		ratio := float64(profile.DistinctCount) / float64(profile.NonEmptyCount)
		profile.LikelyIdentifier = ratio >= 0.95 && profile.DistinctCount > 1
		profile.LikelyCategory = profile.DistinctCount >= 2 && profile.DistinctCount < 20 && ratio < 0.5
	}

	return profile
}

// dominantType выбирает доминирующий тип колонки. Тип должен покрывать
// больше 50% непустых значений, иначе при нескольких типах колонка mixed.
func dominantType(stringCount, numberCount, integerCount, dateCount, boolCount, nonEmpty int) ColumnType {
	if nonEmpty == 0 {
		return ColumnTypeEmpty
	}

	type share struct {
		kind  ColumnType
		count int
	}
	shares := []share{
		{ColumnTypeString, stringCount},
		{ColumnTypeNumber, numberCount},
		{ColumnTypeDate, dateCount},
		{ColumnTypeBoolean, boolCount},
	}

	best := shares[0]
	typesPresent := 0
	for _, s := range shares {
		if s.count > 0 {
			typesPresent++
		}
		if s.count > best.count {
			best = s
		}
	}

	if float64(best.count)/float64(nonEmpty) > 0.5 {
		if best.kind == ColumnTypeNumber && integerCount == numberCount {
			return ColumnTypeInteger
		}
		return best.kind
	}
	if typesPresent > 1 {
		return ColumnTypeMixed
	}
	return best.kind
}
