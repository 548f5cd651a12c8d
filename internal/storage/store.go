// Package storage persists simulation runs as a directory of metadata and
// sampled particle frames.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/hmaier/fluidlab/internal/config"
	"github.com/hmaier/fluidlab/internal/sim"
)

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
	ID         string             `json:"id"`
	Preset     string             `json:"preset"`
	Timestamp  time.Time          `json:"timestamp"`
	Particles  int                `json:"particles"`
	Ticks      int                `json:"ticks"`
	Dt         float64            `json:"dt"`
	Metrics    map[string]float64 `json:"metrics"`
	FrameCount int                `json:"frame_count"`
}

// Save writes one run directory: metadata.json plus frames.csv with a row
// per sampled frame (tick, time, then x,y,vx,vy per particle).
func (s *Store) Save(preset string, cfg *config.Config, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", preset, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Preset:     preset,
		Timestamp:  time.Now(),
		Particles:  cfg.Particles,
		Ticks:      result.TicksTaken,
		Dt:         float64(cfg.Physics.Dt),
		Metrics:    result.Metrics,
		FrameCount: len(result.Frames),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Frames) == 0 {
		return runID, nil
	}

	header := []string{"tick", "time"}
	for i := range result.Frames[0].Particles {
		header = append(header,
			fmt.Sprintf("p%d_x", i), fmt.Sprintf("p%d_y", i),
			fmt.Sprintf("p%d_vx", i), fmt.Sprintf("p%d_vy", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, frame := range result.Frames {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(frame.Tick))
		row = append(row, strconv.FormatFloat(frame.Time, 'f', 6, 64))
		for _, p := range frame.Particles {
			row = append(row,
				formatF32(p.Pos.X), formatF32(p.Pos.Y),
				formatF32(p.Vel.X), formatF32(p.Vel.Y))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	if err := w.Error(); err != nil {
		return "", err
	}
	return runID, nil
}

// List returns the metadata of all stored runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.loadMeta(entry.Name())
		if err != nil {
			continue // skip unreadable run dirs
		}
		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) loadMeta(runID string) (RunMetadata, error) {
	var meta RunMetadata
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return meta, err
	}
	err = json.Unmarshal(data, &meta)
	return meta, err
}

func formatF32(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', 6, 32)
}
