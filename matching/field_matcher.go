package matching

import (
	"fmt"
	"sort"
	"strings"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/profiling"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/registry"
)

// FieldMatch кандидат сопоставления: поле, суммарный балл и причины
type FieldMatch struct {
	FieldID string   `json:"field_id"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

// FieldMatchResult профиль колонки со всеми кандидатами, отсортированными
// по убыванию балла, и выбранным лучшим совпадением (может отсутствовать)
type FieldMatchResult struct {
	Column     profiling.ColumnProfile `json:"column"`
	Candidates []FieldMatch            `json:"candidates"`
	Best       *FieldMatch             `json:"best,omitempty"`
}

// Matcher сопоставляет профили колонок с каталогом канонических полей.
// Чистая функция над неизменяемым реестром: одинаковый вход всегда дает
// побитово одинаковый результат.
type Matcher struct {
	registry *registry.Registry
	cfg      ScoringConfig
}

// NewMatcher создает сопоставитель с заданной конфигурацией скоринга
func NewMatcher(reg *registry.Registry, cfg ScoringConfig) *Matcher {
	return &Matcher{registry: reg, cfg: cfg}
}

// MatchColumn оценивает одну колонку против всех дескрипторов каталога
func (m *Matcher) MatchColumn(column profiling.ColumnProfile) FieldMatchResult {
	result := FieldMatchResult{Column: column}

	for _, descriptor := range m.registry.Fields() {
		match, ok := m.scoreDescriptor(column, &descriptor)
		if ok && match.Score >= m.cfg.MinimumMatchScore {
			result.Candidates = append(result.Candidates, match)
		}
	}

	// Сортировка: балл по убыванию, при равенстве — id поля по алфавиту.
	// Стабильный порядок — часть контракта детерминизма.
	sort.Slice(result.Candidates, func(i, j int) bool {
		if result.Candidates[i].Score != result.Candidates[j].Score {
			return result.Candidates[i].Score > result.Candidates[j].Score
		}
		return result.Candidates[i].FieldID < result.Candidates[j].FieldID
	})

	if len(result.Candidates) > 0 {
		best := result.Candidates[0]
		result.Best = &best
	}
	return result
}

// MatchSheet оценивает все колонки профиля листа
func (m *Matcher) MatchSheet(sheet profiling.SheetProfile) []FieldMatchResult {
	results := make([]FieldMatchResult, 0, len(sheet.Columns))
	for _, column := range sheet.Columns {
		results = append(results, m.MatchColumn(column))
	}
	return results
}

// FieldColumnMap строит отображение id поля -> индексы колонок по лучшим
// совпадениям. Это выходной контракт для построчных парсеров.
func FieldColumnMap(results []FieldMatchResult) map[string][]int {
	mapping := make(map[string][]int)
	for _, r := range results {
		if r.Best != nil {
			mapping[r.Best.FieldID] = append(mapping[r.Best.FieldID], r.Column.ColumnIndex)
		}
	}
	return mapping
}

// scoreDescriptor считает балл одного дескриптора для колонки.
// Дескриптор с нулевым лексическим баллом пропускается целиком: на него не
// тратится ни скоринг регулярных выражений, ни проверка типов. Это жесткое
// правило отсечения шума, а не оптимизация.
func (m *Matcher) scoreDescriptor(column profiling.ColumnProfile, d *registry.FieldDescriptor) (FieldMatch, bool) {
	match := FieldMatch{FieldID: d.ID}

	lexical, lexicalReasons := m.lexicalScore(column, d)
	if lexical == 0 {
		return match, false
	}
	match.Score = lexical
	match.Reasons = lexicalReasons

	// Регулярные выражения: заголовок один раз, первый совпавший шаблон
	for _, re := range d.HeaderPatterns {
		if re.MatchString(column.NormalizedHeader) || re.MatchString(column.RawHeader) {
			match.Score += m.cfg.HeaderRegexBonus
			match.Reasons = append(match.Reasons, "header regex")
			break
		}
	}

	if len(d.ValuePatterns) > 0 && len(column.Samples) > 0 {
		bonus := 0.0
		for _, sample := range column.Samples {
			for _, re := range d.ValuePatterns {
				if re.MatchString(sample) {
					bonus += m.cfg.ValueRegexBonus
					break
				}
			}
		}
		if bonus > m.cfg.ValueRegexBonusCap {
			bonus = m.cfg.ValueRegexBonusCap
		}
		if bonus > 0 {
			match.Score += bonus
			match.Reasons = append(match.Reasons, "value regex")
		}
	}

	// Совместимость типов; пустые и смешанные колонки не штрафуются
	switch typeCompatibility(column, d.Type) {
	case typeCompatible:
		match.Score += m.cfg.TypeCompatibleBonus
		match.Reasons = append(match.Reasons, "type compatible")
	case typeIncompatible:
		match.Score += m.cfg.TypeIncompatiblePenalty
		match.Reasons = append(match.Reasons, "type incompatible")
	}

	// Бонус важности только для пограничных кандидатов: при нескольких
	// слабых претендентах предпочитаем критичное для бизнеса поле
	if d.Importance == registry.ImportanceHigh && lexical < m.cfg.StrongMatchThreshold {
		match.Score += m.cfg.ImportanceBonus
		match.Reasons = append(match.Reasons, "high importance")
	}

	return match, true
}

// lexicalScore лексическая часть скоринга с короткими замыканиями
func (m *Matcher) lexicalScore(column profiling.ColumnProfile, d *registry.FieldDescriptor) (float64, []string) {
	header := column.NormalizedHeader
	if header == "" {
		return 0, nil
	}

	canonical := strings.ToLower(d.Name)
	if header == canonical {
		return m.cfg.ExactNameScore, []string{"exact canonical name"}
	}

	for _, synonym := range d.Synonyms {
		if header == synonym {
			return m.cfg.ExactSynonymScore, []string{fmt.Sprintf("exact synonym %q", synonym)}
		}
	}

	if strings.Contains(header, canonical) {
		return m.cfg.ContainsNameScore, []string{"contains canonical name"}
	}

	for _, synonym := range d.Synonyms {
		if len(synonym) >= 3 && strings.Contains(header, synonym) {
			return m.cfg.ContainsSynonymScore, []string{fmt.Sprintf("contains synonym %q", synonym)}
		}
	}

	overlap := 0
	var matched []string
	for _, token := range column.HeaderTokens {
		if len(token) < 2 {
			continue
		}
		if d.HasToken(token) {
			overlap++
			matched = append(matched, token)
		}
	}
	if overlap == 0 {
		return 0, nil
	}
	return float64(overlap) * m.cfg.TokenOverlapScore,
		[]string{fmt.Sprintf("token overlap: %s", strings.Join(matched, ", "))}
}

type typeVerdict int

const (
	typeNeutral typeVerdict = iota
	typeCompatible
	typeIncompatible
)

// typeCompatibility сверяет доминирующий тип колонки с ожидаемым типом поля
func typeCompatibility(column profiling.ColumnProfile, expected registry.FieldType) typeVerdict {
	dominant := column.DominantType
	if dominant == profiling.ColumnTypeEmpty || dominant == profiling.ColumnTypeMixed {
		return typeNeutral
	}

	switch expected {
	case registry.TypeString, registry.TypeIdentifier:
		if dominant == profiling.ColumnTypeString {
			return typeCompatible
		}
		// Идентификаторы бывают и числовыми, строковое поле числом — тоже не криминал
		return typeNeutral
	case registry.TypeNumber:
		if dominant == profiling.ColumnTypeNumber || dominant == profiling.ColumnTypeInteger {
			return typeCompatible
		}
		if dominant == profiling.ColumnTypeDate || dominant == profiling.ColumnTypeBoolean {
			return typeIncompatible
		}
	case registry.TypeInteger:
		if dominant == profiling.ColumnTypeInteger {
			return typeCompatible
		}
		if dominant == profiling.ColumnTypeDate || dominant == profiling.ColumnTypeBoolean {
			return typeIncompatible
		}
	case registry.TypePercentage:
		// Проценты приходят и числом, и строкой вида "80%"
		if dominant == profiling.ColumnTypeNumber || dominant == profiling.ColumnTypeInteger || dominant == profiling.ColumnTypeString {
			return typeCompatible
		}
	case registry.TypeDate:
		if column.Ratios.Date >= 0.5 {
			return typeCompatible
		}
		return typeIncompatible
	case registry.TypeBoolean:
		if dominant == profiling.ColumnTypeBoolean {
			return typeCompatible
		}
		if dominant == profiling.ColumnTypeDate || dominant == profiling.ColumnTypeNumber {
			return typeIncompatible
		}
	}
	return typeNeutral
}
