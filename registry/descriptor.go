package registry

import (
	"regexp"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/profiling"
)

// FieldType ожидаемый тип значений канонического поля
type FieldType string

const (
	TypeString     FieldType = "string"
	TypeNumber     FieldType = "number"
	TypeInteger    FieldType = "integer"
	TypePercentage FieldType = "percentage"
	TypeDate       FieldType = "date"
	TypeBoolean    FieldType = "boolean"
	TypeIdentifier FieldType = "identifier"
)

// Importance важность поля для бизнеса; участвует в разрешении
// пограничных совпадений при сопоставлении колонок
type Importance int

const (
	ImportanceLow Importance = iota
	ImportanceMedium
	ImportanceHigh
)

// String возвращает имя уровня важности
func (i Importance) String() string {
	switch i {
	case ImportanceHigh:
		return "high"
	case ImportanceMedium:
		return "medium"
	default:
		return "low"
	}
}

// FieldDescriptor запись каталога канонических полей. Неизменяема после
// загрузки каталога; два дескриптора никогда не делят один id.
type FieldDescriptor struct {
	ID             string
	Name           string
	Synonyms       []string
	Type           FieldType
	Unit           string
	HeaderPatterns []*regexp.Regexp
	ValuePatterns  []*regexp.Regexp
	Importance     Importance

	// tokenSet объединение токенов канонического имени и всех синонимов,
	// токены короче 2 символов отброшены. Заполняется при загрузке каталога.
	tokenSet map[string]struct{}
}

// buildTokenSet собирает множество токенов дескриптора
func (d *FieldDescriptor) buildTokenSet() {
	d.tokenSet = make(map[string]struct{})
	add := func(text string) {
		for _, token := range profiling.TokenizeHeader(text) {
			if len(token) >= 2 {
				d.tokenSet[token] = struct{}{}
			}
		}
	}
	add(d.Name)
	for _, syn := range d.Synonyms {
		add(syn)
	}
}

// HasToken сообщает, содержит ли дескриптор данный токен
func (d *FieldDescriptor) HasToken(token string) bool {
	_, ok := d.tokenSet[token]
	return ok
}

// headerRe компилирует регулярное выражение заголовка один раз при
// объявлении каталога; выражения нечувствительны к регистру
func headerRe(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + pattern)
}
