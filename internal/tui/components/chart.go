package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gridbill/gridbill/internal/tui/tuistyles"
)

// ChartSeries is one plotted line.
type ChartSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// TrajectoryChart plots monthly bill series over the projection years.
type TrajectoryChart struct {
	Title  string
	Series []ChartSeries
	Years  []int
	Width  int
	Height int
}

// NewTrajectoryChart creates an empty chart.
func NewTrajectoryChart(title string) *TrajectoryChart {
	return &TrajectoryChart{
		Title:  title,
		Width:  64,
		Height: 12,
	}
}

// AddSeries appends a line to the chart.
func (c *TrajectoryChart) AddSeries(name string, points []float64, color lipgloss.Color) *TrajectoryChart {
	c.Series = append(c.Series, ChartSeries{Name: name, Points: points, Color: color})
	return c
}

// WithYears sets the x-axis year labels.
func (c *TrajectoryChart) WithYears(years []int) *TrajectoryChart {
	c.Years = years
	return c
}

// WithSize sets the plotting area dimensions.
func (c *TrajectoryChart) WithSize(width, height int) *TrajectoryChart {
	c.Width = width
	c.Height = height
	return c
}

var seriesGlyphs = []rune{'●', '■', '▲', '◆'}

// Render draws the chart: grid, y-axis dollar labels, x-axis years, and
// a legend when more than one series is plotted.
func (c *TrajectoryChart) Render() string {
	if len(c.Series) == 0 {
		return tuistyles.InfoStyle.Render("No trajectories to plot")
	}

	lo, hi := c.bounds()
	if hi == lo {
		hi = lo + 1
	}

	const axisWidth = 8
	plotWidth := c.Width - axisWidth
	if plotWidth < 8 {
		plotWidth = 8
	}

	grid := make([][]rune, c.Height)
	owner := make([][]int, c.Height)
	for i := range grid {
		grid[i] = make([]rune, plotWidth)
		owner[i] = make([]int, plotWidth)
		for j := range grid[i] {
			grid[i][j] = ' '
			owner[i][j] = -1
		}
	}

	for idx, series := range c.Series {
		c.plot(grid, owner, idx, series.Points, lo, hi, plotWidth)
	}

	var out strings.Builder
	if c.Title != "" {
		out.WriteString(tuistyles.TitleStyle.Render(c.Title))
		out.WriteString("\n\n")
	}

	axisStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(axisWidth).Align(lipgloss.Right)
	for row := 0; row < c.Height; row++ {
		yValue := hi - float64(row)/float64(c.Height-1)*(hi-lo)
		out.WriteString(axisStyle.Render(fmt.Sprintf("$%.0f", yValue)))
		out.WriteString(" │")
		out.WriteString(c.renderRow(grid[row], owner[row]))
		out.WriteString("\n")
	}

	out.WriteString(strings.Repeat(" ", axisWidth))
	out.WriteString(" └")
	out.WriteString(strings.Repeat("─", plotWidth))
	out.WriteString("\n")
	out.WriteString(c.renderYearAxis(axisWidth, plotWidth))

	if len(c.Series) > 1 {
		out.WriteString("\n")
		out.WriteString(c.renderLegend())
	}
	return out.String()
}

func (c *TrajectoryChart) bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	pad := (hi - lo) * 0.08
	return lo - pad, hi + pad
}

// plot maps points to grid cells and joins consecutive points with a
// Bresenham walk. Earlier series never get overdrawn, so the baseline
// stays visible under the scenario lines.
func (c *TrajectoryChart) plot(grid [][]rune, owner [][]int, idx int, points []float64, lo, hi float64, plotWidth int) {
	if len(points) == 0 {
		return
	}
	glyph := seriesGlyphs[idx%len(seriesGlyphs)]

	toCell := func(i int, v float64) (int, int) {
		x := 0
		if len(points) > 1 {
			x = int(math.Round(float64(i) / float64(len(points)-1) * float64(plotWidth-1)))
		}
		y := c.Height - 1 - int(math.Round((v-lo)/(hi-lo)*float64(c.Height-1)))
		return x, y
	}

	set := func(x, y int) {
		if x < 0 || x >= plotWidth || y < 0 || y >= c.Height {
			return
		}
		if owner[y][x] == -1 {
			grid[y][x] = glyph
			owner[y][x] = idx
		}
	}

	px, py := toCell(0, points[0])
	set(px, py)
	for i := 1; i < len(points); i++ {
		x, y := toCell(i, points[i])
		dx, dy := abs(x-px), abs(y-py)
		sx, sy := 1, 1
		if px > x {
			sx = -1
		}
		if py > y {
			sy = -1
		}
		err := dx - dy
		cx, cy := px, py
		for {
			set(cx, cy)
			if cx == x && cy == y {
				break
			}
			e2 := 2 * err
			if e2 > -dy {
				err -= dy
				cx += sx
			}
			if e2 < dx {
				err += dx
				cy += sy
			}
		}
		px, py = x, y
	}
}

// renderRow colors each cell with its owning series, batching runs of
// the same owner to keep the escape-code count down.
func (c *TrajectoryChart) renderRow(row []rune, owners []int) string {
	var out strings.Builder
	i := 0
	for i < len(row) {
		own := owners[i]
		j := i
		for j < len(row) && owners[j] == own {
			j++
		}
		segment := string(row[i:j])
		if own >= 0 && own < len(c.Series) {
			out.WriteString(lipgloss.NewStyle().Foreground(c.Series[own].Color).Render(segment))
		} else {
			out.WriteString(segment)
		}
		i = j
	}
	return out.String()
}

func (c *TrajectoryChart) renderYearAxis(axisWidth, plotWidth int) string {
	if len(c.Years) < 2 {
		return ""
	}
	first := fmt.Sprintf("%d", c.Years[0])
	last := fmt.Sprintf("%d", c.Years[len(c.Years)-1])
	gap := plotWidth - len(first) - len(last)
	if gap < 1 {
		gap = 1
	}
	style := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	return strings.Repeat(" ", axisWidth+2) + style.Render(first+strings.Repeat(" ", gap)+last)
}

func (c *TrajectoryChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, s := range c.Series {
		glyph := lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesGlyphs[i%len(seriesGlyphs)]))
		items = append(items, glyph+" "+s.Name)
	}
	return tuistyles.SubtitleStyle.Render(strings.Join(items, "   "))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
