package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/polycollide/internal/platform/tui"
	"github.com/vovakirdan/polycollide/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [scene]",
	Short: "Show stored run reports",
	Long: `Display the most recent stored runs, optionally for one scene.

Examples:
  polycollide history
  polycollide history stack --limit 5
  polycollide history stack --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the stored runs instead of showing them")
}

func runHistory(cmd *cobra.Command, args []string) {
	sceneID := ""
	if len(args) == 1 {
		sceneID = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitErr("Error opening run history", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(sceneID); err != nil {
			exitErr("Error clearing runs", err)
		}
		fmt.Println("Run history cleared.")
		return
	}

	runs, err := store.RecentRuns(sceneID, flagLimit)
	if err != nil {
		exitErr("Error retrieving runs", err)
	}

	var stats *storage.SceneStats
	if sceneID != "" {
		stats, err = store.SceneStats(sceneID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	fmt.Print(tui.RenderHistory(runs, stats))
}
