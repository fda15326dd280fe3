// polycollide runs and inspects 2D convex polygon collision scenes.
//
// Usage:
//
//	polycollide list                          - List registered scenes
//	polycollide run <scene|file.yaml>         - Run a scene headless and print a report
//	polycollide raycast <scene> x1 y1 x2 y2   - Cast a ray through a scene
//	polycollide watch <scene|file.yaml>       - Live ASCII viewer
//	polycollide history [scene]               - Show stored run reports
//
// Global flags:
//
//	--config <path>     - Engine config YAML
//	--preset <name>     - Precision preset: fast, normal, precise
//	--db <path>         - Run history database (default: ~/.polycollide/runs.db)
//	--seed <value>      - Seed for procedural scenes
//	--log-level <level> - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagPreset   string
	flagDBPath   string
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "polycollide",
	Short: "polycollide - 2D convex polygon collision scenes",
	Long: `polycollide builds scenes of convex polygons and steps them through a
grid broad phase, SAT narrow phase, impulse resolver and speculative
contact pass.

Available commands:
  list     - Show all registered scenes
  run      - Run a scene headless and print a report
  raycast  - Cast a ray through a scene
  watch    - Watch a scene live in the terminal
  history  - View stored run reports

Examples:
  polycollide list
  polycollide run stack --steps 1200 --save
  polycollide run ./my-scene.yaml --preset precise
  polycollide raycast billiards 0 300 900 300
  polycollide watch rain --seed 42
  polycollide history stack`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Precision preset: fast, normal, precise")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.polycollide/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Seed for procedural scenes (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(raycastCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
}
