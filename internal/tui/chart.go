package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/bigpi/internal/format"
)

// sparklineWidth is the fixed width the CPU/MEM sparkline labels and
// their reserved gutter take up, subtracted from the panel width to
// size the history ring buffers.
const sparklineWidth = 17

// ChartModel renders the progress bar and CPU/memory sparklines.
type ChartModel struct {
	averageProgress float64
	eta             time.Duration
	done            bool
	doneDuration    time.Duration

	cpuHistory *RingBuffer
	memHistory *RingBuffer

	width  int
	height int
}

// NewChartModel creates a new chart panel.
func NewChartModel() ChartModel {
	return ChartModel{
		cpuHistory: NewRingBuffer(1),
		memHistory: NewRingBuffer(1),
	}
}

// SetSize updates the panel dimensions and resizes the sparkline
// history buffers to fit.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	capacity := w - sparklineWidth
	if capacity < 1 {
		capacity = 1
	}
	c.cpuHistory.Resize(capacity)
	c.memHistory.Resize(capacity)
}

// AddDataPoint records the latest aggregated progress sample.
func (c *ChartModel) AddDataPoint(value, averageProgress float64, eta time.Duration) {
	_ = value
	c.averageProgress = averageProgress
	c.eta = eta
}

// UpdateSysStats appends a CPU/memory utilization sample.
func (c *ChartModel) UpdateSysStats(cpuPercent, memPercent float64) {
	c.cpuHistory.Push(cpuPercent)
	c.memHistory.Push(memPercent)
}

// SetDone records that the computation finished and its duration; View
// does not display either.
func (c *ChartModel) SetDone(duration time.Duration) {
	c.done = true
	c.doneDuration = duration
}

// Reset clears all chart state back to its initial values.
func (c *ChartModel) Reset() {
	c.averageProgress = 0
	c.eta = 0
	c.done = false
	c.doneDuration = 0
	c.cpuHistory.Reset()
	c.memHistory.Reset()
}

// renderProgressBar renders the overall progress bar, or an empty
// string if the panel is too narrow to show one.
func (c ChartModel) renderProgressBar() string {
	barWidth := c.width - 10
	if barWidth < 1 {
		return ""
	}
	filled := int(c.averageProgress * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return fmt.Sprintf("%s %5.1f%%", chartBarStyle.Render(bar), c.averageProgress*100)
}

// View renders the chart panel.
func (c ChartModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Progress Chart"))
	b.WriteString("\n")
	b.WriteString(c.renderProgressBar())
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("ETA: %s", format.FormatETA(c.eta)))

	if c.height >= 10 {
		b.WriteString("\n")
		b.WriteString(cpuSparklineStyle.Render("CPU ") + RenderSparkline(c.cpuHistory.Slice()))
		b.WriteString("\n")
		b.WriteString(memSparklineStyle.Render("MEM ") + RenderSparkline(c.memHistory.Slice()))
	}

	w := c.width - 2
	h := c.height - 2
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return panelStyle.Width(w).Height(h).Render(b.String())
}
