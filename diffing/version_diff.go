// Package diffing классифицирует изменения коллекций сущностей между
// двумя прогонами загрузки: создано, изменено, удалено, переименовано,
// неоднозначно.
package diffing

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Keyed контракт сущности для сравнения версий: сырой id и стабильный
// бизнес-ключ, по которому распознаются переименования
type Keyed interface {
	EntityID() string
	BusinessKey() string
}

// Update изменение сущности с явным списком изменившихся полей
type Update[T Keyed] struct {
	Before        T        `json:"before"`
	After         T        `json:"after"`
	ChangedFields []string `json:"changed_fields"`
}

// Rename сущность с прежним бизнес-ключом, но новым сырым id
type Rename[T Keyed] struct {
	Before T `json:"before"`
	After  T `json:"after"`
}

// Ambiguity входящая сущность, для которой нашлось несколько кандидатов
// по бизнес-ключу. Система не гадает: такие случаи никогда молча не
// попадают в создания или удаления.
type Ambiguity[T Keyed] struct {
	Incoming   T      `json:"incoming"`
	Candidates []T    `json:"candidates"`
	Reason     string `json:"reason"`
}

// Summary итоговые счетчики по корзинам изменений
type Summary struct {
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Deleted   int `json:"deleted"`
	Renamed   int `json:"renamed"`
	Ambiguous int `json:"ambiguous"`
}

// Result пять непересекающихся корзин изменений одного прогона загрузки.
// Вычисляется один раз за прогон и дальше не меняется.
type Result[T Keyed] struct {
	ImportRunID string         `json:"import_run_id"`
	SourceFile  string         `json:"source_file"`
	SourceType  string         `json:"source_type"`
	Created     []T            `json:"created"`
	Updated     []Update[T]    `json:"updated"`
	Deleted     []T            `json:"deleted"`
	Renamed     []Rename[T]    `json:"renamed"`
	Ambiguous   []Ambiguity[T] `json:"ambiguous"`
}

// Summary всегда пересчитывается из фактических длин корзин —
// это инвариант, а не кэшированное значение
func (r Result[T]) Summary() Summary {
	return Summary{
		Created:   len(r.Created),
		Updated:   len(r.Updated),
		Deleted:   len(r.Deleted),
		Renamed:   len(r.Renamed),
		Ambiguous: len(r.Ambiguous),
	}
}

// Build сравнивает коллекции одного вида сущностей до и после прогона.
// Совпадение сначала ищется по сырому id, затем по бизнес-ключу:
// единственный кандидат с тем же ключом и другим id — переименование,
// несколько кандидатов — неоднозначность.
func Build[T Keyed](importRunID, sourceFile, sourceType string, before, after []T) Result[T] {
	result := Result[T]{
		ImportRunID: importRunID,
		SourceFile:  sourceFile,
		SourceType:  sourceType,
	}

	oldByID := make(map[string]T, len(before))
	oldByKey := make(map[string][]T)
	for _, e := range before {
		oldByID[e.EntityID()] = e
		oldByKey[e.BusinessKey()] = append(oldByKey[e.BusinessKey()], e)
	}

	consumed := make(map[string]bool)

	for _, incoming := range after {
		if old, ok := oldByID[incoming.EntityID()]; ok {
			consumed[old.EntityID()] = true
			changed := changedFields(old, incoming)
			if len(changed) > 0 {
				result.Updated = append(result.Updated, Update[T]{Before: old, After: incoming, ChangedFields: changed})
			}
			continue
		}

		candidates := unconsumed(oldByKey[incoming.BusinessKey()], consumed)
		switch len(candidates) {
		case 0:
			result.Created = append(result.Created, incoming)
		case 1:
			consumed[candidates[0].EntityID()] = true
			result.Renamed = append(result.Renamed, Rename[T]{Before: candidates[0], After: incoming})
		default:
			// Кандидаты изымаются и из удалений: мы не знаем, какой из них
			// переименован, решение остается за оператором
			for _, c := range candidates {
				consumed[c.EntityID()] = true
			}
			result.Ambiguous = append(result.Ambiguous, Ambiguity[T]{
				Incoming:   incoming,
				Candidates: candidates,
				Reason:     fmt.Sprintf("%d existing entities share business key %q", len(candidates), incoming.BusinessKey()),
			})
		}
	}

	for _, old := range before {
		if !consumed[old.EntityID()] {
			result.Deleted = append(result.Deleted, old)
		}
	}

	return result
}

// unconsumed отфильтровывает уже сопоставленные кандидаты
func unconsumed[T Keyed](candidates []T, consumed map[string]bool) []T {
	var free []T
	for _, c := range candidates {
		if !consumed[c.EntityID()] {
			free = append(free, c)
		}
	}
	return free
}

// changedFields сравнивает сущности пополево через JSON-представление.
// Происхождение записи не считается изменением: повторная выгрузка той же
// строки из нового файла не должна помечать всю коллекцию измененной.
func changedFields[T Keyed](before, after T) []string {
	beforeMap := toFieldMap(before)
	afterMap := toFieldMap(after)

	changed := make(map[string]struct{})
	for key, bv := range beforeMap {
		if av, ok := afterMap[key]; !ok || av != bv {
			changed[key] = struct{}{}
		}
	}
	for key := range afterMap {
		if _, ok := beforeMap[key]; !ok {
			changed[key] = struct{}{}
		}
	}

	fields := make([]string, 0, len(changed))
	for key := range changed {
		fields = append(fields, key)
	}
	sort.Strings(fields)
	return fields
}

// toFieldMap плоское представление сущности: поле -> каноническая строка
func toFieldMap[T Keyed](entity T) map[string]string {
	raw, err := json.Marshal(entity)
	if err != nil {
		return nil
	}
	var generic map[string]json.RawMessage
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil
	}
	delete(generic, "provenance")

	fields := make(map[string]string, len(generic))
	for key, value := range generic {
		fields[key] = string(value)
	}
	return fields
}
