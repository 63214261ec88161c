package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/discipline-tracker/internal/heatmap"
)

const heatmapCell = "■"

// heatmapWeeks returns how many week columns fit in width, two cells each.
func heatmapWeeks(width int) int {
	weeks := width / 2
	if weeks > heatmap.Weeks {
		weeks = heatmap.Weeks
	}
	if weeks < 1 {
		weeks = 1
	}
	return weeks
}

// renderHeatmap draws the first weeks columns of the grid. Columns run from
// the current week on the left into the past, rows from today downwards.
func renderHeatmap(g *heatmap.Grid, weeks int, title lipgloss.Style) string {
	var cells [heatmap.BucketMax + 1]string
	for b := heatmap.BucketEmpty; b <= heatmap.BucketMax; b++ {
		cells[b] = lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color())).Render(heatmapCell)
	}

	var sb strings.Builder
	sb.WriteString(title.Render(fmt.Sprintf("%d work sessions in the last year", g.Total())))
	for d := 0; d < heatmap.Days; d++ {
		sb.WriteByte('\n')
		for w := 0; w < weeks; w++ {
			if w > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(cells[g[w][d].Bucket])
		}
	}
	return sb.String()
}

// RenderHeatmap draws the grid in as many week columns as fit in width,
// for output outside the interactive view.
func RenderHeatmap(g *heatmap.Grid, width int) string {
	return renderHeatmap(g, heatmapWeeks(width), lipgloss.NewStyle().Bold(true))
}
