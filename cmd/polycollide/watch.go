package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/polycollide/internal/platform/tui"
	"github.com/vovakirdan/polycollide/internal/scene"
	"github.com/vovakirdan/polycollide/internal/sim"
)

var (
	flagReload  bool
	flagLogFile string
)

var watchCmd = &cobra.Command{
	Use:   "watch <scene|file.yaml>",
	Short: "Watch a scene live in the terminal",
	Long: `Step a scene in real time and draw it as ASCII.

Controls:
  Space/P    - Pause
  N          - Step once
  R          - Restart
  +/-        - Zoom
  Arrows     - Pan
  F          - Fit scene
  Ctrl+S     - Screenshot to ~/.polycollide/screenshots
  ?          - More keys
  Q/Ctrl+C   - Quit

With --reload a scene file is rebuilt whenever it changes on disk.

Examples:
  polycollide watch stack
  polycollide watch pyramid --seed 3 --preset precise
  polycollide watch ./scenes/ramp.yaml --reload`,
	Args: cobra.ExactArgs(1),
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&flagReload, "reload", false, "Rebuild when the scene file changes")
	watchCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: discard)")
}

func runWatch(cmd *cobra.Command, args []string) {
	arg := args[0]

	// The viewer owns the terminal, so logs go to a file or nowhere.
	var out io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			exitErr("Error opening log file", err)
		}
		defer f.Close()
		out = f
	}
	logger, err := newLogger(out)
	if err != nil {
		exitErr("Error", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		exitErr("Error loading config", err)
	}

	// Procedural scenes keep their seed across restarts.
	sceneSeed := seed()
	build := func() (*sim.Simulation, error) {
		s, err := resolveScene(arg, sceneSeed)
		if err != nil {
			return nil, err
		}
		return sim.New(s, cfg, logger)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.Options{Width: width, Height: height, Logger: logger}
	if flagReload {
		if !isScenePath(arg) {
			exitErr("Error", fmt.Errorf("--reload needs a scene file, got %q", arg))
		}
		watcher, err := scene.NewWatcher(filepath.Dir(arg))
		if err != nil {
			exitErr("Error watching scene", err)
		}
		defer watcher.Close()

		// Only changes to the watched file trigger a rebuild.
		target, _ := filepath.Abs(arg)
		reload := make(chan string)
		go func() {
			defer close(reload)
			for path := range watcher.Events {
				if abs, _ := filepath.Abs(path); abs == target {
					reload <- path
				}
			}
		}()
		go func() {
			for err := range watcher.Errors {
				logger.Warn("watch error", "error", err)
			}
		}()
		opts.Reload = reload
	}

	if err := tui.Run(build, opts); err != nil {
		exitErr("Error", err)
	}
}
