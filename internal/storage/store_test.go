package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/orbit"
)

func sampleRun(t *testing.T) (RunMetadata, *orbit.Result) {
	t.Helper()
	reg, err := body.NewRegistry(
		body.Descriptor{Name: "Sun", Size: 5},
		body.Descriptor{Name: "Earth", Size: 1, Distance: 62, Speed: 0.01},
	)
	if err != nil {
		t.Fatal(err)
	}
	sys := orbit.NewSystem(reg, orbit.WithSeed(42))
	drift := orbit.NewRadiusDrift()
	result, err := sys.Run(context.Background(), orbit.RunConfig{Dt: 0.1, Duration: 1}, drift)
	if err != nil {
		t.Fatal(err)
	}
	meta := RunMetadata{
		Body:      "Earth",
		Seed:      42,
		Dt:        0.1,
		Duration:  1,
		TimeScale: sys.TimeScale(),
		Bodies:    reg.Names(),
	}
	return meta, result
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta, result := sampleRun(t)
	runID, err := st.Save(meta, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	got, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Body != "Earth" {
		t.Errorf("expected body 'Earth', got '%s'", got.Body)
	}
	if got.Seed != 42 {
		t.Errorf("expected seed 42, got %d", got.Seed)
	}
	if got.Steps != 10 {
		t.Errorf("expected 10 steps, got %d", got.Steps)
	}
	if _, ok := got.Metrics["radius_drift"]; !ok {
		t.Error("metrics not stored")
	}

	times, angles, err := st.LoadAngles(runID)
	if err != nil {
		t.Fatalf("load angles failed: %v", err)
	}
	if len(times) != 11 {
		t.Errorf("expected 11 samples, got %d", len(times))
	}
	earth := angles["Earth"]
	if len(earth) != 11 {
		t.Fatalf("expected 11 earth angles, got %d", len(earth))
	}
	want := result.Angles["Earth"]
	for i := range earth {
		if d := earth[i] - want[i]; d > 1e-8 || d < -1e-8 {
			t.Fatalf("angle %d: got %v want %v", i, earth[i], want[i])
		}
	}
	for _, a := range angles["Sun"] {
		if a != 0 {
			t.Fatal("the sun should not move")
		}
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	meta, result := sampleRun(t)
	if _, err := st.Save(meta, result); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "nope")).List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected an empty list, got %v, %v", runs, err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta, result := sampleRun(t)
	runID, err := st.Save(meta, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{metadataFile, anglesFile} {
		if _, err := os.Stat(filepath.Join(dir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestLoadAnglesEmpty(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := os.MkdirAll(filepath.Join(dir, "empty"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "empty", anglesFile), []byte("time,Earth\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := st.LoadAngles("empty"); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	meta, result := sampleRun(t)
	runID, err := st.Save(meta, result)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatal(err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatal(err)
	}
	if data.ID != runID || data.Body != "Earth" {
		t.Errorf("unexpected metadata %+v", data.RunMetadata)
	}
	if len(data.Times) != 11 || len(data.Angles["Earth"]) != 11 {
		t.Error("samples missing from export")
	}
}
