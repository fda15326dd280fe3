package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/polycollide/internal/scene/formats"
)

// Loader handles loading scenes from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new scene loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all scene files.
// Returns scenes sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Scene, error) {
	var scenes []Scene

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsSceneFile(path) {
			return nil
		}

		s, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}
		scenes = append(scenes, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes, nil
}

// LoadFile loads a single scene file.
func (l *Loader) LoadFile(path string) (Scene, error) {
	return LoadFile(path)
}

// LoadByID loads a specific scene by ID.
func (l *Loader) LoadByID(id string) (Scene, error) {
	scenes, err := l.LoadAll()
	if err != nil {
		return Scene{}, err
	}
	for _, s := range scenes {
		if s.ID == id {
			return s, nil
		}
	}
	return Scene{}, fmt.Errorf("scene not found: %s", id)
}

// ListIDs returns all scene IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	scenes, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(scenes))
	for i, s := range scenes {
		ids[i] = s.ID
	}
	return ids, nil
}

// LoadFile reads and parses one scene file.
func LoadFile(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("reading file %s: %w", path, err)
	}
	s, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Scene{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	s.FilePath = path
	return s, nil
}

// Parse decodes scene data in the format named by ext.
func Parse(data []byte, ext string) (Scene, error) {
	parsed, err := parseByExtension(data, strings.ToLower(ext))
	if err != nil {
		return Scene{}, err
	}
	return Scene{
		ID:          parsed.ID,
		Name:        parsed.Name,
		Description: parsed.Description,
		Gravity:     parsed.Gravity,
		Bodies:      parsed.Bodies,
	}, nil
}

// IsSceneFile reports whether path has a supported scene extension.
func IsSceneFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Scene, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Scene{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
