package entities

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// MetaKind тип значения в сумке метаданных
type MetaKind int

const (
	MetaNull MetaKind = iota
	MetaString
	MetaNumber
	MetaBool
)

// MetaValue значение несопоставленной колонки. Закрытый вариант
// (строка | число | булево | null) вместо открытого динамического типа,
// чтобы поиск и сравнение по метаданным оставались детерминированными.
type MetaValue struct {
	Kind MetaKind
	Str  string
	Num  float64
	Bool bool
}

// MetaNullValue null-значение
func MetaNullValue() MetaValue { return MetaValue{Kind: MetaNull} }

// MetaStr строковое значение
func MetaStr(s string) MetaValue { return MetaValue{Kind: MetaString, Str: s} }

// MetaNum числовое значение
func MetaNum(n float64) MetaValue { return MetaValue{Kind: MetaNumber, Num: n} }

// MetaBoolVal логическое значение
func MetaBoolVal(b bool) MetaValue { return MetaValue{Kind: MetaBool, Bool: b} }

// Text строковое представление значения
func (v MetaValue) Text() string {
	switch v.Kind {
	case MetaString:
		return v.Str
	case MetaNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case MetaBool:
		return strconv.FormatBool(v.Bool)
	default:
		return ""
	}
}

// MarshalJSON сериализует вариант в нативный JSON-скаляр
func (v MetaValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case MetaString:
		return json.Marshal(v.Str)
	case MetaNumber:
		return json.Marshal(v.Num)
	case MetaBool:
		return json.Marshal(v.Bool)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON восстанавливает вариант из JSON-скаляра
func (v *MetaValue) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch value := raw.(type) {
	case nil:
		*v = MetaNullValue()
	case string:
		*v = MetaStr(value)
	case float64:
		*v = MetaNum(value)
	case bool:
		*v = MetaBoolVal(value)
	default:
		return fmt.Errorf("metadata: unsupported value %T", raw)
	}
	return nil
}

// MetaMap сумка метаданных сущности: ключ колонки -> скалярное значение
type MetaMap map[string]MetaValue
