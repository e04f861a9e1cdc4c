package snapshots

import (
	"reflect"
	"testing"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/entities"
)

func TestDescribeCellDeltaMetricPhrasing(t *testing.T) {
	delta := CellDelta{
		StationKey: "s010",
		Status:     CellModified,
		FirstStage: &MetricDelta{Name: "First stage", Before: 72, After: 80},
	}

	got := DescribeCellDelta(delta)
	want := []string{"First stage: +8% (72% → 80%)"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DescribeCellDelta = %q, want %q", got, want)
	}
}

func TestDescribeCellDeltaNegativeDelta(t *testing.T) {
	delta := CellDelta{
		StationKey:        "s010",
		Status:            CellModified,
		FinalDeliverables: &MetricDelta{Name: "Final deliverables", Before: 60, After: 45.5},
	}

	got := DescribeCellDelta(delta)
	want := []string{"Final deliverables: -14.5% (60% → 45.5%)"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DescribeCellDelta = %q, want %q", got, want)
	}
}

func TestDescribeCellDeltaOwnerLines(t *testing.T) {
	tests := []struct {
		name  string
		delta CellDelta
		want  string
	}{
		{
			"assigned",
			CellDelta{Status: CellModified, OwnerAfter: "Ivanov"},
			"Owner assigned: Ivanov",
		},
		{
			"removed",
			CellDelta{Status: CellModified, OwnerBefore: "Ivanov"},
			"Owner removed (was Ivanov)",
		},
		{
			"changed",
			CellDelta{Status: CellModified, OwnerBefore: "Ivanov", OwnerAfter: "Petrov"},
			"Owner changed from Ivanov to Petrov",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DescribeCellDelta(tt.delta)
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("DescribeCellDelta = %q, want [%q]", got, tt.want)
			}
		})
	}
}

func TestDescribeCellDeltaStationFate(t *testing.T) {
	added := DescribeCellDelta(CellDelta{Status: CellAdded, OwnerAfter: "Ivanov"})
	if len(added) != 1 || added[0] != "Station added" {
		t.Errorf("added = %q, владелец очевиден из судьбы станции", added)
	}

	removed := DescribeCellDelta(CellDelta{Status: CellRemoved, OwnerBefore: "Ivanov"})
	if len(removed) != 1 || removed[0] != "Station removed" {
		t.Errorf("removed = %q", removed)
	}
}

func TestDescribeCellDeltaMetricBuckets(t *testing.T) {
	delta := CellDelta{
		Status: CellModified,
		Metrics: []MetricDelta{
			{Name: "1st Stage Completion", Before: 90, After: 100},
			{Name: "Robot Configured", Before: 40, After: 55},
			{Name: "Final Check", Before: 70, After: 60},
		},
	}

	got := DescribeCellDelta(delta)
	want := []string{
		"Completed: 1st Stage Completion",
		"Improved: Robot Configured",
		"Regressed: Final Check",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DescribeCellDelta = %q, want %q", got, want)
	}
}

func TestDescribeCellDeltaFlagLines(t *testing.T) {
	delta := CellDelta{
		Status: CellModified,
		FlagsAdded: []entities.Flag{
			{Type: "collision", Station: "s010"},
			{Type: "collision", Station: "s010", Robot: "R01"},
			{Type: "reach", Station: "s010"},
		},
		FlagsRemoved: []entities.Flag{{Type: "cycle_time", Station: "s010"}},
	}

	got := DescribeCellDelta(delta)
	want := []string{
		"3 new flags: collision, reach",
		"1 flag resolved: cycle_time",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DescribeCellDelta = %q, want %q", got, want)
	}
}

func TestDescribeCellDeltaLineOrder(t *testing.T) {
	delta := CellDelta{
		Status:      CellModified,
		OwnerBefore: "Ivanov",
		OwnerAfter:  "Petrov",
		FirstStage:  &MetricDelta{Name: "First stage", Before: 50, After: 60},
		Metrics:     []MetricDelta{{Name: "Robot Configured", Before: 10, After: 20}},
		FlagsAdded:  []entities.Flag{{Type: "collision", Station: "s010"}},
	}

	got := DescribeCellDelta(delta)
	want := []string{
		"Owner changed from Ivanov to Petrov",
		"First stage: +10% (50% → 60%)",
		"Improved: Robot Configured",
		"1 new flag: collision",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("порядок строк нарушен:\n got %q\nwant %q", got, want)
	}
}

func TestDescribeDiffSummary(t *testing.T) {
	diff := SnapshotDiff{
		Summary: DiffSummary{
			CellsAdded:         1,
			CellsRemoved:       0,
			CellsModified:      2,
			CellsUnchanged:     5,
			MetricsImproved:    3,
			MetricsRegressed:   1,
			AvgCompletionDelta: 4.5,
			FlagsNew:           2,
			FlagsResolved:      1,
		},
	}

	got := DescribeDiffSummary(diff)
	want := "Stations: 1 added, 0 removed, 2 modified, 5 unchanged, metrics 3 up / 1 down, avg completion +4.5%, flags 2 new / 1 resolved"
	if got != want {
		t.Errorf("DescribeDiffSummary =\n %q, want\n %q", got, want)
	}
}

func TestDescribeDiffSummaryQuietDay(t *testing.T) {
	got := DescribeDiffSummary(SnapshotDiff{Summary: DiffSummary{CellsUnchanged: 12}})
	want := "Stations: 0 added, 0 removed, 0 modified, 12 unchanged"
	if got != want {
		t.Errorf("DescribeDiffSummary = %q, want %q", got, want)
	}
}
