package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/polycollide/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered scenes",
	Long:  `Shows every built-in and procedural scene in the registry.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	scenes := registry.List()

	if len(scenes) == 0 {
		fmt.Println("No scenes available.")
		return
	}

	fmt.Println("Available scenes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range scenes {
		if len(s.ID) > maxIDLen {
			maxIDLen = len(s.ID)
		}
	}

	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "ID", "Kind", "Description")
	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "--", "----", "-----------")

	for _, s := range scenes {
		kind := "fixed"
		if s.Procedural {
			kind = "procedural"
		}
		desc := s.Description
		if desc == "" {
			desc = s.Name
		}
		fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, s.ID, kind, desc)
	}

	fmt.Println()
	fmt.Println("Run 'polycollide watch <id>' to watch a scene.")
}
