package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jakecoffman/cp"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/polycollide/internal/sim"
)

var raycastCmd = &cobra.Command{
	Use:   "raycast <scene|file.yaml> <x1> <y1> <x2> <y2>",
	Short: "Cast a ray through a scene",
	Long: `Build a scene and report the nearest body the ray strikes. The ray is
clamped to raycast.max_range from the engine config.

Examples:
  polycollide raycast billiards 0 300 900 300
  polycollide raycast ./scenes/ramp.yaml 100 0 100 800`,
	Args: cobra.ExactArgs(5),
	Run:  runRaycast,
}

func runRaycast(cmd *cobra.Command, args []string) {
	var coords [4]float64
	for i, a := range args[1:] {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			exitErr("Error", fmt.Errorf("invalid coordinate %q", a))
		}
		coords[i] = v
	}

	logger, err := newLogger(os.Stderr)
	if err != nil {
		exitErr("Error", err)
	}
	cfg, err := loadConfig()
	if err != nil {
		exitErr("Error loading config", err)
	}
	s, err := resolveScene(args[0], seed())
	if err != nil {
		exitErr("Error", err)
	}
	simulation, err := sim.New(s, cfg, logger)
	if err != nil {
		exitErr("Error building scene", err)
	}

	start := cp.Vector{X: coords[0], Y: coords[1]}
	end := cp.Vector{X: coords[2], Y: coords[3]}
	hit, ok := simulation.RayTrace(start, end)
	if !ok {
		fmt.Println("No hit.")
		return
	}

	body, err := simulation.World().Body(hit.Body)
	if err != nil {
		exitErr("Error", err)
	}
	fmt.Printf("Body:      %s (%s)\n", body.Name, hit.Body)
	fmt.Printf("Point:     (%.3f, %.3f)\n", hit.Point.X, hit.Point.Y)
	fmt.Printf("Normal:    (%.3f, %.3f)\n", hit.Normal.X, hit.Normal.Y)
	fmt.Printf("Distance:  %.3f\n", hit.Distance)
}
