package storage

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

func testResult() *sim.Result {
	return &sim.Result{
		Final: sim.Snapshot{
			Step: 10,
			Time: 0.1,
			Bodies: []physics.Body{
				{Name: "sun", Mass: 1},
				{Name: "planet", Mass: 1e-6, Position: r2.Vec{X: 1, Y: 0.1}, Velocity: r2.Vec{X: -0.1, Y: 1}},
			},
		},
		StepsTaken:  10,
		EnergyDrift: 1e-5,
		Metrics: map[string]float64{
			"energy_drift":     1e-5,
			"closest_approach": math.Inf(1),
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	summary := NewSummary("unit-orbit", 1, 0.01, testResult())
	if summary.ID == "" {
		t.Fatal("expected non-empty run id")
	}
	if err := st.Save(summary); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := st.Load(summary.ID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Scenario != "unit-orbit" || loaded.Steps != 10 || loaded.Dt != 0.01 {
		t.Errorf("unexpected summary %+v", loaded)
	}
	if loaded.Metrics["energy_drift"] != 1e-5 {
		t.Errorf("expected energy drift 1e-5, got %v", loaded.Metrics["energy_drift"])
	}
	if _, ok := loaded.Metrics["closest_approach"]; ok {
		t.Error("non-finite metric should not be stored")
	}
	if len(loaded.Final) != 2 || loaded.Final[1].VY != 1 || loaded.Final[1].Name != "planet" {
		t.Errorf("final state not stored: %+v", loaded.Final)
	}
}

func TestStoreLoad_NotFound(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	older := NewSummary("a", 1, 0.1, testResult())
	older.Timestamp = time.Now().Add(-time.Hour)
	newer := NewSummary("b", 1, 0.1, testResult())
	for _, s := range []*RunSummary{older, newer} {
		if err := st.Save(s); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	// Unreadable entries are skipped.
	if err := os.MkdirAll(filepath.Join(tmpDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != newer.ID {
		t.Error("expected newest run first")
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	summary := NewSummary("test", 1, 0.01, testResult())
	if err := st.Save(summary); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(tmpDir, summary.ID))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != summaryFile {
		t.Errorf("expected only %s, got %v", summaryFile, entries)
	}
}

func TestStoreSave_UnencodableLeavesNothing(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	summary := NewSummary("test", 1, 0.01, testResult())
	summary.EnergyDrift = math.Inf(1)
	if err := st.Save(summary); err == nil {
		t.Fatal("expected encode error")
	}

	if _, err := os.Stat(filepath.Join(tmpDir, summary.ID)); !os.IsNotExist(err) {
		t.Errorf("failed save left a run directory: %v", err)
	}
	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}
