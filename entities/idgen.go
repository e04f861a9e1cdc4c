package entities

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// StableID детерминированно выводит идентификатор сущности из бизнес-ключа.
// Повторная загрузка той же логической строки дает тот же id. Единый путь
// через FNV-1a 64 для всех видов сущностей, без запасных вариантов.
func StableID(kind string, keyParts ...string) string {
	h := fnv.New64a()
	h.Write([]byte(kind))
	for _, part := range keyParts {
		h.Write([]byte{0})
		h.Write([]byte(strings.ToLower(strings.TrimSpace(part))))
	}
	return fmt.Sprintf("%s_%016x", kind, h.Sum64())
}
