package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"photobooth/internal/domain"

	"go.uber.org/zap"
)

// Collection is the entire persisted state. The store reads and
// rewrites it as one unit; there is no partial update path.
type Collection struct {
	Photos []domain.Photo `json:"photos"`
}

type FileStore struct {
	path   string
	logger *zap.Logger
}

func NewFileStore(path string, logger *zap.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger,
	}
}

// Load reads the full collection. A missing file means the store has
// not been written yet and yields an empty collection; an unreadable
// or corrupt file yields the same, with a warning so the condition is
// at least visible.
func (s *FileStore) Load() Collection {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("data file unreadable, starting empty", zap.String("path", s.path), zap.Error(err))
		}
		return Collection{Photos: []domain.Photo{}}
	}

	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		s.logger.Warn("data file corrupt, starting empty", zap.String("path", s.path), zap.Error(err))
		return Collection{Photos: []domain.Photo{}}
	}

	if c.Photos == nil {
		c.Photos = []domain.Photo{}
	}
	return c
}

// Save replaces the collection atomically: the document is written to
// a temporary file and renamed over the live one, so a concurrent
// reader never observes a truncated file.
func (s *FileStore) Save(c Collection) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding collection: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing data file: %w", err)
	}
	return nil
}
