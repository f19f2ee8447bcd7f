package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

// Store keeps one directory per cycle run holding cycle.json and a
// states.csv table.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

var stateHeader = []string{"name", "phase", "T", "p", "d", "u", "h", "s", "x", "ef"}

// Save writes the record under its ID and returns the ID.
func (s *Store) Save(rec CycleRecord) (string, error) {
	runDir := filepath.Join(s.baseDir, rec.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := ExportJSON(filepath.Join(runDir, "cycle.json"), rec); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(stateHeader); err != nil {
		return "", err
	}
	for _, st := range rec.States {
		x := ""
		if st.X != nil {
			x = formatFloat(*st.X)
		}
		row := []string{
			st.Name, st.Phase,
			formatFloat(st.T), formatFloat(st.P), formatFloat(st.D),
			formatFloat(st.U), formatFloat(st.H), formatFloat(st.S),
			x, formatFloat(st.Ef),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return rec.ID, nil
}

func (s *Store) List() ([]CycleRecord, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []CycleRecord{}, nil
		}
		return nil, err
	}

	runs := make([]CycleRecord, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		rec, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *rec)
	}
	return runs, nil
}

func (s *Store) Load(id string) (*CycleRecord, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "cycle.json"))
	if err != nil {
		return nil, err
	}

	var rec CycleRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// LoadStates reads the state table back as header plus rows.
func (s *Store) LoadStates(id string) ([]string, [][]string, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "states.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, [][]string{}, nil
	}
	return records[0], records[1:], nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
