// Package storage keeps decomposition runs on disk, one directory per run:
// metadata.json, the transition system in ts.bin and the result in
// result.json.
package storage

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/paramsynth/internal/config"
	"github.com/san-kum/paramsynth/internal/experiment"
	"github.com/san-kum/paramsynth/internal/models"
	"github.com/san-kum/paramsynth/internal/params/interval"
	"github.com/san-kum/paramsynth/internal/ts"
)

const (
	metadataFile = "metadata.json"
	systemFile   = "ts.bin"
	resultFile   = "result.json"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string    `json:"id"`
	Model         string    `json:"model"`
	Timestamp     time.Time `json:"timestamp"`
	Seed          int64     `json:"seed"`
	Low           float64   `json:"low"`
	High          float64   `json:"high"`
	Pivot         string    `json:"pivot"`
	Parallel      bool      `json:"parallel"`
	States        int       `json:"states"`
	Edges         int       `json:"edges"`
	Components    int       `json:"components"`
	MaxAttractors int       `json:"max_attractors"`
	Iterations    int       `json:"iterations"`
	ElapsedMillis float64   `json:"elapsed_ms"`
}

// Save writes a finished run and returns its id.
func (s *Store) Save(cfg *config.Config, report *experiment.Report, sys *models.System) (string, error) {
	runID := fmt.Sprintf("%s_%s", report.Model, uuid.NewString())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:            runID,
		Model:         report.Model,
		Timestamp:     time.Now(),
		Seed:          cfg.Model.Seed,
		Low:           cfg.Domain.Low,
		High:          cfg.Domain.High,
		Pivot:         report.Pivot,
		Parallel:      report.Parallel,
		States:        report.States,
		Edges:         report.Edges,
		Components:    len(report.Result.Components),
		MaxAttractors: len(report.Result.Counts),
		Iterations:    report.Result.Iterations,
		ElapsedMillis: float64(report.Elapsed.Microseconds()) / 1000,
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}

	if err := WriteSystem(filepath.Join(runDir, systemFile), sys); err != nil {
		return "", fmt.Errorf("write system: %w", err)
	}

	sv := interval.NewSolver(cfg.Domain.Low, cfg.Domain.High)
	if err := ExportJSON(filepath.Join(runDir, resultFile), NewResultFile(sv, report.Result)); err != nil {
		return "", fmt.Errorf("write result: %w", err)
	}

	return runID, nil
}

// List returns the stored runs, newest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	var meta RunMetadata
	if err := s.readJSON(runID, metadataFile, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadResult(runID string) (*ResultFile, error) {
	var rf ResultFile
	if err := s.readJSON(runID, resultFile, &rf); err != nil {
		return nil, err
	}
	return &rf, nil
}

// LoadSystem reads the stored transition system together with a solver over
// the run's parameter domain.
func (s *Store) LoadSystem(runID string) (*interval.Solver, *models.System, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	sv := interval.NewSolver(meta.Low, meta.High)
	sys, err := ReadSystem(filepath.Join(s.baseDir, runID, systemFile), sv)
	if err != nil {
		return nil, nil, err
	}
	return sv, sys, nil
}

// ReadSystem reads a binary transition system with integer states and
// interval colors.
func ReadSystem(path string, sv *interval.Solver) (*models.System, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ts.Read[int, interval.Set](bufio.NewReader(file), sv, ts.Int32Codec{}, interval.Codec{})
}

// WriteSystem writes sys in the binary transition system format.
func WriteSystem(path string, sys *models.System) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer closeFile(file, &err)

	w := bufio.NewWriter(file)
	if err := ts.Write[int, interval.Set](w, sys, ts.Int32Codec{}, interval.Codec{}); err != nil {
		return err
	}
	return w.Flush()
}

func (s *Store) readJSON(runID, name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, name))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return err
	}
	return json.Unmarshal(data, v)
}

func writeJSON(path string, v any) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer closeFile(file, &err)

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// closeFile closes c and reports its error through err unless an earlier
// error is already set.
func closeFile(c io.Closer, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("close: %w", cerr)
	}
}
