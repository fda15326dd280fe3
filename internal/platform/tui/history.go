package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/polycollide/internal/storage"
)

// RenderHistory renders stored runs as a static table with an optional
// summary line above it.
func RenderHistory(runs []storage.RunRecord, stats *storage.SceneStats) string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	title := "RUN HISTORY"
	if stats != nil && stats.SceneID != "" {
		title = fmt.Sprintf("RUN HISTORY - %s", stats.SceneID)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if stats != nil && stats.Runs > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%s runs, %s steps, %s collisions, max depth %.3f, avg %s, last %s",
			humanize.Comma(int64(stats.Runs)),
			humanize.Comma(stats.TotalSteps),
			humanize.Comma(stats.TotalCollisions),
			stats.MaxDepth,
			stats.AvgDuration.Round(time.Microsecond),
			humanize.Time(stats.LastRun),
		)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(runs) == 0 {
		b.WriteString(dimStyle.Render("No runs recorded yet."))
		b.WriteString("\n")
		return b.String()
	}

	columns := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Scene", Width: 12},
		{Title: "Steps", Width: 8},
		{Title: "Collisions", Width: 10},
		{Title: "Touches", Width: 8},
		{Title: "Depth", Width: 7},
		{Title: "|p| drift", Width: 10},
		{Title: "Duration", Width: 10},
		{Title: "When", Width: 16},
	}

	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		id := r.ID
		if len(id) > 8 {
			id = id[:8]
		}
		rows[i] = table.Row{
			id,
			r.SceneID,
			humanize.Comma(int64(r.Steps)),
			humanize.Comma(int64(r.Collisions)),
			humanize.Comma(int64(r.Touches)),
			fmt.Sprintf("%.3f", r.MaxDepth),
			fmt.Sprintf("%+.3g", r.MomentumAfter-r.MomentumBefore),
			r.Duration.Round(time.Microsecond).String(),
			humanize.Time(r.CreatedAt),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+2),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	b.WriteString(t.View())
	b.WriteString("\n")
	return b.String()
}
