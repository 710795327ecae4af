package status

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// File names written by FileStore.
const (
	ResponseFile = "status_response.json"
	IconFile     = "server-icon.png"
)

// FileStore writes status responses into Dir.
type FileStore struct {
	Dir string
}

// NewFileStore returns a store writing into dir; "" means the working directory.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.Dir, name)
}

// Save writes the raw JSON and, when present, the decoded icon. It reports
// whether an icon was written.
func (s *FileStore) Save(r *Response) (bool, error) {
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0o755); err != nil {
			return false, fmt.Errorf("create status dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path(ResponseFile), []byte(r.Raw), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", ResponseFile, err)
	}

	png, err := r.Favicon()
	if errors.Is(err, ErrNoFavicon) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(s.path(IconFile), png, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", IconFile, err)
	}
	return true, nil
}
