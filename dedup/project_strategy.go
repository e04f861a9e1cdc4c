package dedup

import (
	"fmt"
	"sort"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/entities"
)

// DeduplicateProjects специализированная стратегия для проектов: помимо
// слияния по id находит семантические дубли — одинаковая пара
// (заказчик, имя) при разных id. Обе версии сохраняются, автоматическое
// слияние разных id рискует потерять происхождение записей, поэтому
// конфликт отдается предупреждением для ручного разбора.
func DeduplicateProjects(existing, incoming []entities.Project) (Result[entities.Project], []entities.Warning) {
	result := DeduplicateByID(existing, incoming)

	byKey := make(map[string][]entities.Project)
	for _, p := range result.Entities {
		key := p.BusinessKey()
		if key == "|" {
			continue
		}
		byKey[key] = append(byKey[key], p)
	}

	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var warnings []entities.Warning
	for _, key := range keys {
		group := byKey[key]
		if len(group) < 2 {
			continue
		}
		first := group[0]
		for _, other := range group[1:] {
			result.Duplicates = append(result.Duplicates, DuplicateDetection[entities.Project]{
				Existing: first,
				Incoming: other,
				Conflict: ConflictSemantic,
			})
			warnings = append(warnings, entities.Warning{
				Code: entities.WarnLinkingAmbiguous,
				File: other.Provenance.SourceFile,
				Details: fmt.Sprintf(
					"projects %q and %q share customer/name key %q; kept both, resolve manually",
					first.ID, other.ID, first.BusinessKey()),
			})
		}
	}

	return result, warnings
}
