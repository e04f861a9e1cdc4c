package database

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/entities"
	"github.com/GeorgeMcIntyre-Web/SimPilot-sub007/snapshots"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestEntityRoundTrip(t *testing.T) {
	db := openTestDB(t)

	cells := []entities.Cell{
		{
			ID:                   "cell_1",
			StationID:            "S010",
			SimulationEngineer:   "Ivanov",
			FirstStageCompletion: 80,
			StatusFields:         map[string]float64{"first stage completion": 80},
			Metadata:             entities.MetaMap{"paint color": entities.MetaStr("RAL 7035")},
			Provenance:           entities.Provenance{SourceFile: "status.xlsx", Sheet: "Status", RowIndex: 4},
		},
		{ID: "cell_2", StationID: "S020"},
	}
	if err := db.ReplaceCells("p1", cells); err != nil {
		t.Fatalf("ReplaceCells: %v", err)
	}

	loaded, err := db.LoadCells("p1")
	if err != nil {
		t.Fatalf("LoadCells: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("len(loaded) = %d, want 2", len(loaded))
	}
	got := loaded[0]
	if got.StationID != "S010" || got.FirstStageCompletion != 80 {
		t.Errorf("loaded[0] = %+v", got)
	}
	if got.Metadata["paint color"] != entities.MetaStr("RAL 7035") {
		t.Errorf("Metadata = %+v", got.Metadata)
	}
	if got.Provenance.RowIndex != 4 {
		t.Errorf("Provenance = %+v", got.Provenance)
	}
}

func TestReplaceIsAtomicPerProject(t *testing.T) {
	db := openTestDB(t)

	if err := db.ReplaceCells("p1", []entities.Cell{{ID: "a", StationID: "S010"}, {ID: "b", StationID: "S020"}}); err != nil {
		t.Fatal(err)
	}
	if err := db.ReplaceCells("p2", []entities.Cell{{ID: "c", StationID: "S030"}}); err != nil {
		t.Fatal(err)
	}

	// Повторная замена p1 не задевает p2
	if err := db.ReplaceCells("p1", []entities.Cell{{ID: "d", StationID: "S040"}}); err != nil {
		t.Fatal(err)
	}

	p1, err := db.LoadCells("p1")
	if err != nil {
		t.Fatal(err)
	}
	if len(p1) != 1 || p1[0].ID != "d" {
		t.Errorf("p1 = %+v, want только d", p1)
	}

	p2, err := db.LoadCells("p2")
	if err != nil {
		t.Fatal(err)
	}
	if len(p2) != 1 || p2[0].ID != "c" {
		t.Errorf("p2 = %+v, замена чужого проекта его задела", p2)
	}
}

func TestLoadCellsOrderedByID(t *testing.T) {
	db := openTestDB(t)

	if err := db.ReplaceCells("p1", []entities.Cell{
		{ID: "c", StationID: "S030"},
		{ID: "a", StationID: "S010"},
		{ID: "b", StationID: "S020"},
	}); err != nil {
		t.Fatal(err)
	}

	loaded, err := db.LoadCells("p1")
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []string{"a", "b", "c"} {
		if loaded[i].ID != want {
			t.Fatalf("порядок = %+v, want a b c", loaded)
		}
	}
}

func TestProjectsStoredGlobally(t *testing.T) {
	db := openTestDB(t)

	if err := db.ReplaceProjects([]entities.Project{
		{ID: "p1", Name: "Body Shop", Customer: "ACME"},
		{ID: "p2", Name: "Paint Shop", Customer: "ACME"},
	}); err != nil {
		t.Fatal(err)
	}

	loaded, err := db.LoadProjects()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 2 {
		t.Fatalf("len(loaded) = %d, want 2", len(loaded))
	}
}

func TestCountAssets(t *testing.T) {
	db := openTestDB(t)

	if err := db.ReplaceCells("p1", []entities.Cell{{ID: "a", StationID: "S010"}, {ID: "b", StationID: "S020"}}); err != nil {
		t.Fatal(err)
	}
	if err := db.ReplaceRobots("p1", []entities.Robot{{ID: "r1", Number: "R01"}}); err != nil {
		t.Fatal(err)
	}

	counts, err := db.CountAssets("p1")
	if err != nil {
		t.Fatalf("CountAssets: %v", err)
	}
	if counts[KindCell] != 2 || counts[KindRobot] != 1 {
		t.Errorf("counts = %+v, want cell 2 robot 1", counts)
	}
}

func TestSnapshotCRUD(t *testing.T) {
	db := openTestDB(t)

	capturedAt := time.Date(2026, time.August, 25, 6, 0, 0, 0, time.UTC)
	snapshot := snapshots.NewSnapshot("p1", "nightly", capturedAt,
		[]snapshots.CellSnapshot{{StationKey: "s010", FinalDeliverables: 40}}, nil)

	if err := db.CreateSnapshot(snapshot); err != nil {
		t.Fatalf("CreateSnapshot: %v", err)
	}

	got, err := db.GetSnapshot(snapshot.ID)
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	if got.ProjectID != "p1" || got.Author != "nightly" {
		t.Errorf("got = %+v", got)
	}
	if len(got.Cells) != 1 || got.Cells[0].StationKey != "s010" {
		t.Errorf("Cells = %+v", got.Cells)
	}
	if got.Stats.CellCount != 1 {
		t.Errorf("Stats = %+v", got.Stats)
	}

	if err := db.DeleteSnapshot(snapshot.ID); err != nil {
		t.Fatalf("DeleteSnapshot: %v", err)
	}
	if _, err := db.GetSnapshot(snapshot.ID); !IsNotFound(err) {
		t.Errorf("после удаления ожидался ErrNotFound, получено %v", err)
	}
}

func TestSnapshotNotFound(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.GetSnapshot("snap_missing"); !IsNotFound(err) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if err := db.DeleteSnapshot("snap_missing"); !IsNotFound(err) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListSnapshotsNewestFirst(t *testing.T) {
	db := openTestDB(t)

	base := time.Date(2026, time.August, 20, 6, 0, 0, 0, time.UTC)
	var ids []string
	for day := 0; day < 3; day++ {
		s := snapshots.NewSnapshot("p1", "nightly", base.AddDate(0, 0, day), nil, nil)
		if err := db.CreateSnapshot(s); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, s.ID)
	}

	list, err := db.ListSnapshots("p1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("len(list) = %d, want 3", len(list))
	}
	// От новых к старым
	if list[0].ID != ids[2] || list[2].ID != ids[0] {
		t.Errorf("порядок = %s %s %s", list[0].ID, list[1].ID, list[2].ID)
	}
}

func TestListSnapshotsInRange(t *testing.T) {
	db := openTestDB(t)

	base := time.Date(2026, time.August, 20, 6, 0, 0, 0, time.UTC)
	for day := 0; day < 5; day++ {
		s := snapshots.NewSnapshot("p1", "nightly", base.AddDate(0, 0, day), nil, nil)
		if err := db.CreateSnapshot(s); err != nil {
			t.Fatal(err)
		}
	}

	list, err := db.ListSnapshotsInRange("p1", base.AddDate(0, 0, 1), base.AddDate(0, 0, 3))
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Errorf("len(list) = %d, want 3 среза в интервале", len(list))
	}
}

func TestDeleteProjectSnapshots(t *testing.T) {
	db := openTestDB(t)

	base := time.Date(2026, time.August, 20, 6, 0, 0, 0, time.UTC)
	for day := 0; day < 2; day++ {
		if err := db.CreateSnapshot(snapshots.NewSnapshot("p1", "nightly", base.AddDate(0, 0, day), nil, nil)); err != nil {
			t.Fatal(err)
		}
	}
	if err := db.CreateSnapshot(snapshots.NewSnapshot("p2", "nightly", base, nil, nil)); err != nil {
		t.Fatal(err)
	}

	deleted, err := db.DeleteProjectSnapshots("p1")
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	// Чужой проект не задет
	rest, err := db.ListSnapshots("p2")
	if err != nil {
		t.Fatal(err)
	}
	if len(rest) != 1 {
		t.Errorf("p2 = %d срезов, want 1", len(rest))
	}
}

func TestImportRunsHistory(t *testing.T) {
	db := openTestDB(t)

	started := time.Date(2026, time.August, 25, 10, 0, 0, 0, time.UTC)
	run := ImportRun{
		ID:         "run_1",
		File:       "status.xlsx",
		SourceType: "SIMULATION_STATUS",
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
		Stats:      json.RawMessage(`{"cells":3}`),
		Warnings: []entities.Warning{
			{Code: entities.WarnRowSkipped, File: "status.xlsx", Row: 7, Details: "station cell is empty"},
		},
	}
	if err := db.RecordImportRun(run); err != nil {
		t.Fatalf("RecordImportRun: %v", err)
	}

	second := run
	second.ID = "run_2"
	second.StartedAt = started.Add(time.Hour)
	second.FinishedAt = second.StartedAt.Add(time.Second)
	if err := db.RecordImportRun(second); err != nil {
		t.Fatal(err)
	}

	runs, err := db.ListImportRuns(10)
	if err != nil {
		t.Fatalf("ListImportRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len(runs) = %d, want 2", len(runs))
	}
	// От новых к старым
	if runs[0].ID != "run_2" {
		t.Errorf("runs[0] = %s, want run_2", runs[0].ID)
	}
	if len(runs[1].Warnings) != 1 || runs[1].Warnings[0].Code != entities.WarnRowSkipped {
		t.Errorf("Warnings = %+v", runs[1].Warnings)
	}

	limited, err := db.ListImportRuns(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("len(limited) = %d, want 1", len(limited))
	}
}
