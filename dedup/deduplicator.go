// Package dedup сливает свежеразобранные сущности в существующую коллекцию,
// разрешая коллизии идентификаторов и семантические дубли.
package dedup

import "reflect"

// ConflictType тип обнаруженного конфликта
type ConflictType string

const (
	// ConflictExact входящая запись побайтово совпала с существующей
	ConflictExact ConflictType = "exact"
	// ConflictIDCollision тот же id, но другое содержимое
	ConflictIDCollision ConflictType = "id_collision"
	// ConflictSemantic тот же бизнес-ключ при разных id
	ConflictSemantic ConflictType = "semantic"
)

// Identifiable минимальный контракт сущности для дедупликации по id
type Identifiable interface {
	EntityID() string
}

// DuplicateDetection зафиксированный дубль: существующая и входящая версии
type DuplicateDetection[T Identifiable] struct {
	Existing T            `json:"existing"`
	Incoming T            `json:"incoming"`
	Conflict ConflictType `json:"conflict"`
}

// Stats агрегированная статистика слияния. Замены не проглатываются:
// оператор должен видеть "N записей обновлено из последней выгрузки".
type Stats struct {
	Incoming        int `json:"incoming"`
	Added           int `json:"added"`
	Replaced        int `json:"replaced"`
	ExactDuplicates int `json:"exact_duplicates"`
	Collisions      int `json:"collisions"`
}

// Result результат дедупликации одной коллекции
type Result[T Identifiable] struct {
	Entities   []T                      `json:"entities"`
	Duplicates []DuplicateDetection[T]  `json:"duplicates"`
	Stats      Stats                    `json:"stats"`
}

// DeduplicateByID сливает входящие сущности в существующую коллекцию.
// Новый id добавляется; глубокое совпадение фиксируется как exact и
// существующая версия остается; одинаковый id с другим содержимым —
// id_collision, и сохраненное значение заменяется входящим.
//
// Политика "последняя выгрузка побеждает" сознательно не сравнивает
// метки времени: свежесть данных коррелирует с моментом загрузки. При
// загрузке файлов не по порядку победит последний загруженный, а не
// последний измененный — это известное свойство, не ошибка.
func DeduplicateByID[T Identifiable](existing, incoming []T) Result[T] {
	result := Result[T]{
		Entities: make([]T, len(existing)),
	}
	result.Stats.Incoming = len(incoming)
	copy(result.Entities, existing)

	index := make(map[string]int, len(existing))
	for i, e := range result.Entities {
		index[e.EntityID()] = i
	}

	for _, in := range incoming {
		id := in.EntityID()
		pos, exists := index[id]
		if !exists {
			index[id] = len(result.Entities)
			result.Entities = append(result.Entities, in)
			result.Stats.Added++
			continue
		}

		current := result.Entities[pos]
		if reflect.DeepEqual(current, in) {
			result.Stats.ExactDuplicates++
			result.Duplicates = append(result.Duplicates, DuplicateDetection[T]{
				Existing: current,
				Incoming: in,
				Conflict: ConflictExact,
			})
			continue
		}

		// Коллизия id: входящая версия замещает сохраненную
		result.Stats.Collisions++
		result.Stats.Replaced++
		result.Duplicates = append(result.Duplicates, DuplicateDetection[T]{
			Existing: current,
			Incoming: in,
			Conflict: ConflictIDCollision,
		})
		result.Entities[pos] = in
	}

	return result
}
