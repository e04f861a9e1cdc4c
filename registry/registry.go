package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kljensen/snowball"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/profiling"
)

// Registry каталог канонических полей. Загружается один раз на старте
// процесса, после этого только читается, поэтому свободно разделяется
// между конкурентными операциями сопоставления без блокировок.
type Registry struct {
	fields []FieldDescriptor
	byID   map[string]*FieldDescriptor
}

// New собирает реестр из статического каталога.
// Дублирующийся id — ошибка программиста, падаем сразу.
func New() *Registry {
	return newFromCatalog(defaultCatalog)
}

func newFromCatalog(catalog []FieldDescriptor) *Registry {
	r := &Registry{
		fields: make([]FieldDescriptor, len(catalog)),
		byID:   make(map[string]*FieldDescriptor, len(catalog)),
	}
	copy(r.fields, catalog)

	for i := range r.fields {
		d := &r.fields[i]
		if _, exists := r.byID[d.ID]; exists {
			panic(fmt.Sprintf("registry: duplicate field id %q", d.ID))
		}
		d.buildTokenSet()
		r.byID[d.ID] = d
	}
	return r
}

// Fields возвращает все дескрипторы в порядке объявления каталога
func (r *Registry) Fields() []FieldDescriptor {
	return r.fields
}

// ByID ищет дескриптор по id
func (r *Registry) ByID(id string) (*FieldDescriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// ByImportance возвращает дескрипторы заданного уровня важности
func (r *Registry) ByImportance(importance Importance) []FieldDescriptor {
	var result []FieldDescriptor
	for _, d := range r.fields {
		if d.Importance == importance {
			result = append(result, d)
		}
	}
	return result
}

// ByType возвращает дескрипторы с заданным ожидаемым типом
func (r *Registry) ByType(fieldType FieldType) []FieldDescriptor {
	var result []FieldDescriptor
	for _, d := range r.fields {
		if d.Type == fieldType {
			result = append(result, d)
		}
	}
	return result
}

// SearchSynonyms свободный поиск по каноническим именам и синонимам.
// Токены запроса стеммируются, поэтому "comments" находит поле comment.
// Результат отсортирован по id для детерминизма.
func (r *Registry) SearchSynonyms(query string) []FieldDescriptor {
	queryTokens := stemTokens(profiling.TokenizeHeader(query))
	if len(queryTokens) == 0 {
		return nil
	}

	seen := make(map[string]struct{})
	var result []FieldDescriptor
	for _, d := range r.fields {
		if _, ok := seen[d.ID]; ok {
			continue
		}
		if descriptorMatchesTokens(&d, queryTokens) {
			seen[d.ID] = struct{}{}
			result = append(result, d)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// descriptorMatchesTokens проверяет пересечение стеммированных токенов
// запроса с именем или синонимами дескриптора
func descriptorMatchesTokens(d *FieldDescriptor, queryTokens []string) bool {
	candidates := append([]string{d.Name}, d.Synonyms...)
	for _, candidate := range candidates {
		candidateTokens := stemTokens(profiling.TokenizeHeader(candidate))
		for _, ct := range candidateTokens {
			for _, qt := range queryTokens {
				if ct == qt {
					return true
				}
			}
		}
	}
	return false
}

// stemTokens стеммирует токены; не-английские слова остаются как есть
func stemTokens(tokens []string) []string {
	stemmed := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = strings.ToLower(token)
		if s, err := snowball.Stem(token, "english", true); err == nil && s != "" {
			stemmed = append(stemmed, s)
			continue
		}
		stemmed = append(stemmed, token)
	}
	return stemmed
}
