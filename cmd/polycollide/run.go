package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/polycollide/internal/sim"
	"github.com/vovakirdan/polycollide/internal/storage"
)

var (
	flagSteps   int
	flagSave    bool
	flagProfile string
)

var runCmd = &cobra.Command{
	Use:   "run <scene|file.yaml>",
	Short: "Run a scene headless",
	Long: `Step a scene at the configured tick rate and print a report.

Profiling:
  --profile cpu  - Write cpu.pprof to the current directory
  --profile mem  - Write mem.pprof (allocations) to the current directory

Examples:
  polycollide run stack
  polycollide run rain --seed 7 --steps 2000 --save
  polycollide run ./scenes/ramp.yaml --preset fast --profile cpu`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagSteps, "steps", 0, "Number of steps (0 = step.max_steps from config)")
	runCmd.Flags().BoolVar(&flagSave, "save", false, "Store the report in the run history")
	runCmd.Flags().StringVar(&flagProfile, "profile", "", "Profile the run: cpu or mem")
}

func runRun(cmd *cobra.Command, args []string) {
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

	var prof interface{ Stop() }
	switch flagProfile {
	case "":
	case "cpu":
		prof = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	case "mem":
		prof = profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	default:
		exitErr("Error", fmt.Errorf("unknown profile %q (want cpu or mem)", flagProfile))
	}

	report, runErr := simulation.Run(flagSteps)
	if prof != nil {
		prof.Stop()
	}
	printReport(report)
	if runErr != nil {
		exitErr("Error running scene", runErr)
	}

	if !flagSave {
		return
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		return
	}
	defer store.Close()

	id, err := store.SaveReport(report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save report: %v\n", err)
		return
	}
	fmt.Printf("Saved run %s\n", id)
}

func printReport(r sim.Report) {
	fmt.Printf("Scene:        %s\n", r.SceneID)
	fmt.Printf("Bodies:       %d\n", r.Bodies)
	fmt.Printf("Steps:        %s\n", humanize.Comma(int64(r.Steps)))
	fmt.Printf("Collisions:   %s\n", humanize.Comma(int64(r.Collisions)))
	fmt.Printf("Touches:      %s\n", humanize.Comma(int64(r.Touches)))
	fmt.Printf("Corrections:  %s\n", humanize.Comma(int64(r.Corrections)))
	fmt.Printf("Max depth:    %.4f\n", r.MaxDepth)
	fmt.Printf("Momentum:     %.4f -> %.4f\n", r.MomentumBefore, r.MomentumAfter)
	fmt.Printf("Duration:     %s\n", r.Duration)
}
