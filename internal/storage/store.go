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

	"github.com/san-kum/particlefield/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var frameHeader = []string{"frame", "time", "particles", "connections", "mean_opacity", "escaped"}

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
	ID            string             `json:"id"`
	Effect        string             `json:"effect"`
	Preset        string             `json:"preset,omitempty"`
	Timestamp     time.Time          `json:"timestamp"`
	Seed          int64              `json:"seed"`
	FPS           float64            `json:"fps"`
	Width         float64            `json:"width"`
	Height        float64            `json:"height"`
	ReducedMotion bool               `json:"reduced_motion,omitempty"`
	Frames        int                `json:"frames"`
	Regenerations int                `json:"regenerations"`
	Metrics       map[string]float64 `json:"metrics"`
}

// FrameRecord is one row of frames.csv.
type FrameRecord struct {
	Frame       int     `json:"frame"`
	Time        float64 `json:"time"`
	Particles   int     `json:"particles"`
	Connections int     `json:"connections"`
	MeanOpacity float64 `json:"mean_opacity"`
	Escaped     int     `json:"escaped"`
}

func RecordOf(f sim.FrameInfo) FrameRecord {
	return FrameRecord{
		Frame:       f.Frame,
		Time:        f.Elapsed.Seconds(),
		Particles:   f.Particles,
		Connections: f.Connections,
		MeanOpacity: f.MeanOpacity,
		Escaped:     f.Escaped,
	}
}

// Recorder is a sim.Observer that keeps every frame's stats.
type Recorder struct {
	Frames []FrameRecord
}

func (r *Recorder) OnFrame(f sim.FrameInfo) {
	r.Frames = append(r.Frames, RecordOf(f))
}

// Save writes a run directory and fills in meta.ID, Timestamp, and the
// frame, regeneration and metric totals from result.
func (s *Store) Save(meta RunMetadata, result *sim.Result, frames []FrameRecord) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Effect, now.UnixNano())
	meta.Timestamp = now
	if result != nil {
		meta.Frames = result.Frames
		meta.Regenerations = result.Regenerations
		meta.Metrics = result.Metrics
	}
	if meta.Metrics == nil {
		meta.Metrics = map[string]float64{}
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(frameHeader); err != nil {
		return "", err
	}
	for _, f := range frames {
		row := []string{
			strconv.Itoa(f.Frame),
			strconv.FormatFloat(f.Time, 'f', 6, 64),
			strconv.Itoa(f.Particles),
			strconv.Itoa(f.Connections),
			strconv.FormatFloat(f.MeanOpacity, 'f', 6, 64),
			strconv.Itoa(f.Escaped),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns the saved runs, oldest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads frames.csv back. Malformed rows are skipped.
func (s *Store) LoadFrames(runID string) ([]FrameRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []FrameRecord{}, nil
	}

	frames := make([]FrameRecord, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != len(frameHeader) {
			continue
		}
		f, err := parseFrame(rec)
		if err != nil {
			continue
		}
		frames = append(frames, f)
	}
	return frames, nil
}

func parseFrame(rec []string) (FrameRecord, error) {
	var f FrameRecord
	var err error
	if f.Frame, err = strconv.Atoi(rec[0]); err != nil {
		return f, err
	}
	if f.Time, err = strconv.ParseFloat(rec[1], 64); err != nil {
		return f, err
	}
	if f.Particles, err = strconv.Atoi(rec[2]); err != nil {
		return f, err
	}
	if f.Connections, err = strconv.Atoi(rec[3]); err != nil {
		return f, err
	}
	if f.MeanOpacity, err = strconv.ParseFloat(rec[4], 64); err != nil {
		return f, err
	}
	f.Escaped, err = strconv.Atoi(rec[5])
	return f, err
}

var columns = map[string]func(FrameRecord) float64{
	"particles":    func(f FrameRecord) float64 { return float64(f.Particles) },
	"connections":  func(f FrameRecord) float64 { return float64(f.Connections) },
	"mean_opacity": func(f FrameRecord) float64 { return f.MeanOpacity },
	"escaped":      func(f FrameRecord) float64 { return float64(f.Escaped) },
}

// Column extracts one named series from frames, for plotting.
func Column(frames []FrameRecord, name string) ([]float64, error) {
	get, ok := columns[name]
	if !ok {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = get(f)
	}
	return out, nil
}
