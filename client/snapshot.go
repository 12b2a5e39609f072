package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"projectboard/internal/model"
)

// Namespace is the fixed key the snapshot is stored under.
const Namespace = "projects-storage"

// Snapshotter persists the cache between runs. Implementations are
// injected so the cache has no hidden storage coupling.
type Snapshotter interface {
	Save(projects []model.Project) error
	Load() (projects []model.Project, ok bool, err error)
}

// FileSnapshot keeps the snapshot as a JSON file under a state
// directory, the terminal counterpart of browser local storage.
type FileSnapshot struct {
	path string
}

func NewFileSnapshot(dir string) *FileSnapshot {
	return &FileSnapshot{path: filepath.Join(dir, Namespace+".json")}
}

func (s *FileSnapshot) Save(projects []model.Project) error {
	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

func (s *FileSnapshot) Load() ([]model.Project, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var projects []model.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, false, err
	}
	return projects, true, nil
}
