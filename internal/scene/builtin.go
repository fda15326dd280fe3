package scene

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Builtin parses the scenes shipped with the binary, sorted by ID.
func Builtin() ([]Scene, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("reading built-in scenes: %w", err)
	}

	var scenes []Scene
	for _, e := range entries {
		if e.IsDir() || !IsSceneFile(e.Name()) {
			continue
		}
		name := path.Join("builtin", e.Name())
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		s, err := Parse(data, path.Ext(name))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		scenes = append(scenes, s)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes, nil
}
