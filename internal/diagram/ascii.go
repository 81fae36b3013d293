package diagram

import (
	"fmt"
	"strings"
)

const (
	memberRune  = '·'
	jointRune   = '●'
	supportRune = '▲'
)

// DrawASCIIPlan rasterizes the plan on a character grid of cols x rows.
// Supports are drawn over joints, joints over members.
func DrawASCIIPlan(data PlanData, v View, cols, rows int) string {
	var sb strings.Builder
	h, vert := v.Axes()

	sb.WriteString("\n")
	title := "PLAN VIEW"
	if data.Title != "" {
		title += " - " + data.Title
	}
	sb.WriteString(fmt.Sprintf("  %s (%s-%s)\n", title, h, vert))
	sb.WriteString(fmt.Sprintf("  %s\n\n", strings.Repeat("─", len([]rune(title))+8)))

	lo, hi, ok := data.bounds(v)
	if !ok || cols < 2 || rows < 2 {
		sb.WriteString("  (nothing to draw)\n")
		return sb.String()
	}

	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}
	cell := func(p Point) (int, int) {
		c, r := (cols-1)/2, (rows-1)/2
		if hi.X > lo.X {
			c = int((p.X-lo.X)/(hi.X-lo.X)*float64(cols-1) + 0.5)
		}
		if hi.Y > lo.Y {
			r = rows - 1 - int((p.Y-lo.Y)/(hi.Y-lo.Y)*float64(rows-1)+0.5)
		}
		return c, r
	}

	for _, m := range data.Members {
		c0, r0 := cell(v.Project(m.A))
		c1, r1 := cell(v.Project(m.B))
		n := max(abs(c1-c0), abs(r1-r0))
		for k := 0; k <= n; k++ {
			c, r := c0, r0
			if n > 0 {
				c = c0 + (c1-c0)*k/n
				r = r0 + (r1-r0)*k/n
			}
			grid[r][c] = memberRune
		}
	}
	for _, j := range data.Joints {
		c, r := cell(v.Project(j.Pos))
		grid[r][c] = jointRune
	}
	for _, s := range data.Supports {
		c, r := cell(v.Project(s.Pos))
		grid[r][c] = supportRune
	}

	sb.WriteString(fmt.Sprintf("  ┌%s┐\n", strings.Repeat("─", cols)))
	for _, row := range grid {
		sb.WriteString(fmt.Sprintf("  │%s│\n", string(row)))
	}
	sb.WriteString(fmt.Sprintf("  └%s┘\n", strings.Repeat("─", cols)))
	sb.WriteString(fmt.Sprintf("  %s: %.3f .. %.3f m   %s: %.3f .. %.3f m\n", h, lo.X, hi.X, vert, lo.Y, hi.Y))
	sb.WriteString(fmt.Sprintf("  %c beam  %c connection  %c support\n", memberRune, jointRune, supportRune))
	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
