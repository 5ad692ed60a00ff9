package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/paramsynth/internal/config"
	"github.com/san-kum/paramsynth/internal/experiment"
	"github.com/san-kum/paramsynth/internal/models"
	"github.com/san-kum/paramsynth/internal/params/interval"
)

func runRing(t *testing.T) (*config.Config, *experiment.Report, *models.System) {
	t.Helper()
	cfg := config.GetPreset("ring", "small")
	e := experiment.New(cfg, experiment.Options{})
	if err := e.Setup(experiment.NewRegistry()); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	report, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return cfg, report, e.System()
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, report, sys := runRing(t)
	runID, err := st.Save(cfg, report, sys)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Model != "ring" {
		t.Errorf("expected model 'ring', got '%s'", meta.Model)
	}
	if meta.States != 8 || meta.Components != 8 {
		t.Errorf("expected 8 states and components, got %d and %d", meta.States, meta.Components)
	}
	if meta.Low != 0 || meta.High != 8 {
		t.Errorf("expected domain (0, 8), got (%v, %v)", meta.Low, meta.High)
	}

	rf, err := st.LoadResult(runID)
	if err != nil {
		t.Fatalf("load result failed: %v", err)
	}
	if len(rf.Components) != 8 {
		t.Errorf("expected 8 components, got %d", len(rf.Components))
	}
	counts := rf.Counts()
	if len(counts) != 1 {
		t.Fatalf("expected 1 level, got %d", len(counts))
	}
	if !counts[0].Equal(report.Result.Counts[0]) {
		t.Errorf("expected %v, got %v", report.Result.Counts[0], counts[0])
	}
	if rf.Levels[0].Attractors != 1 || rf.Levels[0].Volume != 8 {
		t.Errorf("unexpected level %+v", rf.Levels[0])
	}
}

func TestStoreLoadSystem(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, report, sys := runRing(t)
	runID, err := st.Save(cfg, report, sys)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	sv, loaded, err := st.LoadSystem(runID)
	if err != nil {
		t.Fatalf("load system failed: %v", err)
	}
	if low, high := sv.Domain(); low != 0 || high != 8 {
		t.Errorf("expected domain (0, 8), got (%v, %v)", low, high)
	}
	if loaded.NumStates() != sys.NumStates() || loaded.NumEdges() != sys.NumEdges() {
		t.Fatalf("expected %d/%d, got %d/%d", sys.NumStates(), sys.NumEdges(), loaded.NumStates(), loaded.NumEdges())
	}
	for e, v := range sys.Edges() {
		if got := loaded.EdgeParams(e.From, e.To); !got.Equal(v) {
			t.Errorf("edge %v: expected %v, got %v", e, v, got)
		}
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

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

	cfg, report, sys := runRing(t)
	for i := 0; i < 2; i++ {
		if _, err := st.Save(cfg, report, sys); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}
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
	if runs[0].ID == runs[1].ID {
		t.Error("expected distinct run ids")
	}
	if runs[0].Timestamp.Before(runs[1].Timestamp) {
		t.Error("expected newest run first")
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "missing"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.LoadResult("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, report, sys := runRing(t)
	runID, err := st.Save(cfg, report, sys)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	for _, name := range []string{metadataFile, systemFile, resultFile} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestSpans(t *testing.T) {
	x := interval.Set{0, 1, 2.5, 3}
	spans := toSpans(x)
	if len(spans) != 2 || spans[1] != (Span{2.5, 3}) {
		t.Fatalf("unexpected spans %v", spans)
	}
	if back := fromSpans(spans); !back.Equal(x) {
		t.Errorf("expected %v, got %v", x, back)
	}
	if len(toSpans(nil)) != 0 {
		t.Error("expected no spans for the empty set")
	}
}

type closer struct {
	err    error
	closed bool
}

func (c *closer) Close() error {
	c.closed = true
	return c.err
}

func TestCloseFile(t *testing.T) {
	diskFull := errors.New("no space left on device")

	t.Run("close error surfaces", func(t *testing.T) {
		c := &closer{err: diskFull}
		var err error
		closeFile(c, &err)
		if !c.closed {
			t.Fatal("closer not closed")
		}
		if !errors.Is(err, diskFull) {
			t.Errorf("expected close error, got %v", err)
		}
	})

	t.Run("earlier error wins", func(t *testing.T) {
		encode := errors.New("encode failed")
		c := &closer{err: diskFull}
		err := encode
		closeFile(c, &err)
		if !c.closed {
			t.Fatal("closer not closed")
		}
		if err != encode {
			t.Errorf("expected encode error, got %v", err)
		}
	})

	t.Run("clean close", func(t *testing.T) {
		var err error
		closeFile(&closer{}, &err)
		if err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})
}

func TestWriteSystemCloses(t *testing.T) {
	cfg, _, sys := runRing(t)
	path := filepath.Join(t.TempDir(), systemFile)
	if err := WriteSystem(path, sys); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	sv := interval.NewSolver(cfg.Domain.Low, cfg.Domain.High)
	got, err := ReadSystem(path, sv)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(got.States()) != len(sys.States()) {
		t.Errorf("expected %d states, got %d", len(sys.States()), len(got.States()))
	}

	if err := WriteSystem(filepath.Join(t.TempDir(), "missing", systemFile), sys); err == nil {
		t.Error("expected error for missing directory")
	}
}
