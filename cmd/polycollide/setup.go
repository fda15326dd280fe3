package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/polycollide/internal/config"
	"github.com/vovakirdan/polycollide/internal/registry"
	"github.com/vovakirdan/polycollide/internal/scene"
)

// newLogger builds the CLI logger writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "polycollide",
	})
	logger.SetLevel(level)
	return logger, nil
}

// loadConfig loads the engine config and applies --preset. Without --preset
// the loaded step section is kept.
func loadConfig() (config.Engine, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Engine{}, err
	}
	if flagPreset != "" {
		preset, err := config.ParsePreset(flagPreset)
		if err != nil {
			return config.Engine{}, err
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, cfg.Validate()
}

// seed returns --seed, or a time-based seed when unset.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// isScenePath reports whether arg names a scene file rather than a
// registered scene.
func isScenePath(arg string) bool {
	return scene.IsSceneFile(arg) || strings.ContainsRune(arg, filepath.Separator)
}

// resolveScene loads a scene file or creates a registered scene.
func resolveScene(arg string, seed int64) (*scene.Scene, error) {
	if isScenePath(arg) {
		s, err := scene.LoadFile(arg)
		if err != nil {
			return nil, err
		}
		return &s, nil
	}
	if !registry.Exists(arg) {
		return nil, fmt.Errorf("unknown scene %q (run 'polycollide list' to see registered scenes)", arg)
	}
	return registry.Create(arg, seed)
}

// exitErr prints err and exits.
func exitErr(format string, err error) {
	fmt.Fprintf(os.Stderr, format+": %v\n", err)
	os.Exit(1)
}
