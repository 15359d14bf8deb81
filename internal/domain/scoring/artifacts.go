package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

const (
	ModelArtifactName  = "salary_model.json"
	ScalerArtifactName = "salary_scaler.json"

	artifactVersion = 1
)

type ModelArtifact struct {
	Version      int       `json:"version"`
	Features     []string  `json:"features"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
	Samples      int       `json:"samples"`
	TrainedAt    time.Time `json:"trained_at"`
}

type ScalerArtifact struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// ArtifactStore persists the regressor and scaler parameter sets.
type ArtifactStore interface {
	Save(model ModelArtifact, scaler ScalerArtifact) error
	// Load reports ok=false when no artifacts exist.
	Load() (model ModelArtifact, scaler ScalerArtifact, ok bool, err error)
}

// FileStore keeps artifacts as JSON files under Dir.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (s *FileStore) Save(model ModelArtifact, scaler ScalerArtifact) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create models dir: %w", err)
	}
	if err := writeJSONAtomic(filepath.Join(s.Dir, ScalerArtifactName), scaler); err != nil {
		return err
	}
	return writeJSONAtomic(filepath.Join(s.Dir, ModelArtifactName), model)
}

func (s *FileStore) Load() (ModelArtifact, ScalerArtifact, bool, error) {
	var model ModelArtifact
	var scaler ScalerArtifact

	ok, err := readJSON(filepath.Join(s.Dir, ModelArtifactName), &model)
	if err != nil || !ok {
		return ModelArtifact{}, ScalerArtifact{}, false, err
	}
	ok, err = readJSON(filepath.Join(s.Dir, ScalerArtifactName), &scaler)
	if err != nil || !ok {
		return ModelArtifact{}, ScalerArtifact{}, false, err
	}
	return model, scaler, true, nil
}

func writeJSONAtomic(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, out any) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return true, nil
}
