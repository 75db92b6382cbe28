package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/san-kum/orbitsim/internal/sim"
)

const summaryFile = "summary.json"

// ErrRunNotFound is returned by Load for an unknown run id.
var ErrRunNotFound = errors.New("storage: run not found")

// Store keeps one directory per run holding its summary. Trajectories are
// never written.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type BodyRecord struct {
	Name string  `json:"name,omitempty"`
	Mass float64 `json:"mass"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	VX   float64 `json:"vx"`
	VY   float64 `json:"vy"`
}

type RunSummary struct {
	ID          string             `json:"id"`
	Scenario    string             `json:"scenario"`
	Timestamp   time.Time          `json:"timestamp"`
	G           float64            `json:"g"`
	Dt          float64            `json:"dt"`
	Steps       int                `json:"steps"`
	Time        float64            `json:"time"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
	Final       []BodyRecord       `json:"final"`
}

// NewSummary builds a summary of result under a fresh run id.
func NewSummary(scenario string, g, dt float64, result *sim.Result) *RunSummary {
	final := make([]BodyRecord, len(result.Final.Bodies))
	for i, b := range result.Final.Bodies {
		final[i] = BodyRecord{
			Name: b.Name,
			Mass: b.Mass,
			X:    b.Position.X,
			Y:    b.Position.Y,
			VX:   b.Velocity.X,
			VY:   b.Velocity.Y,
		}
	}

	return &RunSummary{
		ID:          uuid.NewString(),
		Scenario:    scenario,
		Timestamp:   time.Now(),
		G:           g,
		Dt:          dt,
		Steps:       result.Final.Step,
		Time:        result.Final.Time,
		EnergyDrift: result.EnergyDrift,
		Metrics:     finiteMetrics(result.Metrics),
		Final:       final,
	}
}

// JSON has no Inf or NaN, so such metric values are left out.
func finiteMetrics(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		if !math.IsInf(v, 0) && !math.IsNaN(v) {
			out[k] = v
		}
	}
	return out
}

// Save encodes the summary before touching the disk, so a summary that
// cannot be encoded leaves no run directory behind.
func (s *Store) Save(summary *RunSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("encode summary %s: %w", summary.ID, err)
	}

	runDir := filepath.Join(s.baseDir, summary.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(runDir, summaryFile), append(data, '\n'), 0644)
}

// List returns all readable summaries, newest first.
func (s *Store) List() ([]RunSummary, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunSummary{}, nil
		}
		return nil, err
	}

	runs := make([]RunSummary, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		summary, err := s.read(entry.Name())
		if err != nil {
			log.Debug("skipping run directory", "dir", entry.Name(), "err", err)
			continue
		}
		runs = append(runs, *summary)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunSummary, error) {
	summary, err := s.read(runID)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return summary, err
}

func (s *Store) read(runID string) (*RunSummary, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, summaryFile))
	if err != nil {
		return nil, err
	}

	var summary RunSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
