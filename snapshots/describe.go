package snapshots

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/entities"
)

// DescribeCellDelta переводит дельту станции в короткие фразы для
// журнала изменений. Порядок фиксирован и закреплен снапшот-тестами:
// судьба станции, владелец, этапы готовности, метрики, флаги.
func DescribeCellDelta(delta CellDelta) []string {
	var lines []string

	switch delta.Status {
	case CellAdded:
		lines = append(lines, "Station added")
	case CellRemoved:
		lines = append(lines, "Station removed")
	}

	if delta.OwnerBefore != delta.OwnerAfter && (delta.OwnerBefore != "" || delta.OwnerAfter != "") {
		switch {
		case delta.Status != CellModified:
			// Для появившихся и исчезнувших станций владелец очевиден из судьбы
		case delta.OwnerBefore == "":
			lines = append(lines, fmt.Sprintf("Owner assigned: %s", delta.OwnerAfter))
		case delta.OwnerAfter == "":
			lines = append(lines, fmt.Sprintf("Owner removed (was %s)", delta.OwnerBefore))
		default:
			lines = append(lines, fmt.Sprintf("Owner changed from %s to %s", delta.OwnerBefore, delta.OwnerAfter))
		}
	}

	if delta.FirstStage != nil {
		lines = append(lines, describeMetric("First stage", *delta.FirstStage))
	}
	if delta.FinalDeliverables != nil {
		lines = append(lines, describeMetric("Final deliverables", *delta.FinalDeliverables))
	}

	var completed, improved, regressed []string
	for _, m := range delta.Metrics {
		switch {
		case m.After >= 100 && m.Before < 100:
			completed = append(completed, m.Name)
		case m.After > m.Before:
			improved = append(improved, m.Name)
		case m.After < m.Before:
			regressed = append(regressed, m.Name)
		}
	}
	if len(completed) > 0 {
		lines = append(lines, "Completed: "+strings.Join(completed, ", "))
	}
	if len(improved) > 0 {
		lines = append(lines, "Improved: "+strings.Join(improved, ", "))
	}
	if len(regressed) > 0 {
		lines = append(lines, "Regressed: "+strings.Join(regressed, ", "))
	}

	if n := len(delta.FlagsAdded); n > 0 {
		lines = append(lines, fmt.Sprintf("%d new %s: %s", n, plural(n, "flag", "flags"), flagTypes(delta.FlagsAdded)))
	}
	if n := len(delta.FlagsRemoved); n > 0 {
		lines = append(lines, fmt.Sprintf("%d %s resolved: %s", n, plural(n, "flag", "flags"), flagTypes(delta.FlagsRemoved)))
	}

	return lines
}

// describeMetric формат "First stage: +8% (72% → 80%)"
func describeMetric(label string, m MetricDelta) string {
	return fmt.Sprintf("%s: %s (%s → %s)", label, signedPercent(m.Delta()), percent(m.Before), percent(m.After))
}

// DescribeDiffSummary сводка журнала изменений одной строкой
func DescribeDiffSummary(diff SnapshotDiff) string {
	s := diff.Summary
	parts := []string{
		fmt.Sprintf("%d added", s.CellsAdded),
		fmt.Sprintf("%d removed", s.CellsRemoved),
		fmt.Sprintf("%d modified", s.CellsModified),
		fmt.Sprintf("%d unchanged", s.CellsUnchanged),
	}
	if s.MetricsImproved > 0 || s.MetricsRegressed > 0 {
		parts = append(parts, fmt.Sprintf("metrics %d up / %d down", s.MetricsImproved, s.MetricsRegressed))
	}
	if s.AvgCompletionDelta != 0 {
		parts = append(parts, fmt.Sprintf("avg completion %s", signedPercent(s.AvgCompletionDelta)))
	}
	if s.FlagsNew > 0 || s.FlagsResolved > 0 {
		parts = append(parts, fmt.Sprintf("flags %d new / %d resolved", s.FlagsNew, s.FlagsResolved))
	}
	return "Stations: " + strings.Join(parts, ", ")
}

// flagTypes перечисляет типы флагов без повторов, сохраняя порядок
func flagTypes(flags []entities.Flag) string {
	seen := make(map[string]struct{}, len(flags))
	var types []string
	for _, f := range flags {
		if _, ok := seen[f.Type]; ok {
			continue
		}
		seen[f.Type] = struct{}{}
		types = append(types, f.Type)
	}
	return strings.Join(types, ", ")
}

// percent форматирует значение метрики без лишних нулей
func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// signedPercent форматирует дельту со знаком
func signedPercent(v float64) string {
	if v >= 0 {
		return "+" + percent(v)
	}
	return percent(v)
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
