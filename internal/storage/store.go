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

	"github.com/google/uuid"

	"github.com/san-kum/wolfca/internal/automaton"
	"github.com/san-kum/wolfca/internal/sim"
)

const (
	metadataFile    = "metadata.json"
	generationsFile = "generations.csv"

	// maxRuleTag bounds the rule digits in a run ID.
	maxRuleTag = 32
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
	ID          string             `json:"id"`
	Rule        string             `json:"rule"`
	States      int                `json:"states"`
	Neighbors   int                `json:"neighbors"`
	Width       int                `json:"width"`
	Generations int                `json:"generations"`
	Seed        int64              `json:"seed"`
	InitMode    string             `json:"init_mode"`
	Palette     []string           `json:"palette,omitempty"`
	Image       string             `json:"image,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes a run's metadata and history under a fresh run ID. Fields of
// meta that describe the history (ID, width, generations, timestamp,
// metrics) are filled in from result.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("rule%s_%s", ruleTag(meta.Rule), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := s.write(runDir, runID, meta, result); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

// ruleTag shortens long rule numbers for use in a directory name; the full
// rule is kept in the metadata.
func ruleTag(rule string) string {
	if len(rule) <= maxRuleTag {
		return rule
	}
	return rule[:maxRuleTag]
}

func (s *Store) write(runDir, runID string, meta RunMetadata, result *sim.Result) error {
	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Generations = len(result.History)
	meta.Metrics = result.Metrics
	if len(result.History) > 0 {
		meta.Width = len(result.History[0])
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(runDir, generationsFile))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, result.History); err != nil {
		return err
	}

	return nil
}

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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
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

// Delete removes a run and its files.
func (s *Store) Delete(runID string) error {
	if runID == "" || runID == "." || runID == ".." || filepath.Base(runID) != runID {
		return fmt.Errorf("invalid run id: %q", runID)
	}
	return os.RemoveAll(filepath.Join(s.baseDir, runID))
}

// RunDir returns the directory holding a run's files.
func (s *Store) RunDir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

func (s *Store) LoadHistory(runID string) ([]automaton.Generation, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, generationsFile))
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
		return []automaton.Generation{}, nil
	}

	history := make([]automaton.Generation, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 2 {
			continue
		}

		g := make(automaton.Generation, 0, len(record)-1)
		for j := 1; j < len(record); j++ {
			v, err := strconv.ParseUint(record[j], 10, 8)
			if err != nil {
				return nil, fmt.Errorf("%s line %d column %d: %w", generationsFile, i+1, j+1, err)
			}
			g = append(g, automaton.State(v))
		}
		history = append(history, g)
	}

	return history, nil
}
