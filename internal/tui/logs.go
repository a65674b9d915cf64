package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/bigpi/internal/config"
	"github.com/agbru/bigpi/internal/format"
	"github.com/agbru/bigpi/internal/orchestration"
)

// logLine is one rendered entry in the scrolling log panel.
type logLine struct {
	timestamp time.Time
	text      string
}

// LogsModel renders a scrolling panel of execution events: the
// resolved configuration, progress samples, comparison results, the
// final value, and any error.
type LogsModel struct {
	algoNames []string
	lines     []logLine
	offset    int
	width     int
	height    int
}

// NewLogsModel creates a logs panel pre-seeded with the names of the
// calculators that will report progress.
func NewLogsModel(algoNames []string) LogsModel {
	return LogsModel{algoNames: algoNames}
}

// SetSize updates the panel dimensions.
func (l *LogsModel) SetSize(w, h int) {
	l.width = w
	l.height = h
}

// Reset clears every logged line and scroll position.
func (l *LogsModel) Reset() {
	l.lines = nil
	l.offset = 0
}

func (l *LogsModel) append(text string) {
	l.lines = append(l.lines, logLine{timestamp: time.Now(), text: text})
}

// AddExecutionConfig logs a summary of the resolved configuration at
// the start of a run.
func (l *LogsModel) AddExecutionConfig(cfg config.AppConfig) {
	l.append(fmt.Sprintf("computing %s digits of pi via %s", format.FormatNumberString(fmt.Sprintf("%d", cfg.Digits)), strings.Join(l.algoNames, ", ")))
}

// AddProgressEntry logs one aggregated progress sample.
func (l *LogsModel) AddProgressEntry(msg ProgressMsg) {
	name := "?"
	if msg.CalculatorIndex >= 0 && msg.CalculatorIndex < len(l.algoNames) {
		name = l.algoNames[msg.CalculatorIndex]
	}
	l.append(fmt.Sprintf("%s: %.1f%%", logAlgoStyle.Render(name), msg.Value*100))
}

// AddResults logs the outcome of every calculator in a comparison run.
func (l *LogsModel) AddResults(results []orchestration.CalculationResult) {
	for _, r := range results {
		if r.Err != nil {
			l.append(fmt.Sprintf("%s failed: %v", r.Name, r.Err))
			continue
		}
		l.append(fmt.Sprintf("%s finished in %s", r.Name, format.FormatExecutionDuration(r.Duration)))
	}
}

// AddFinalResult logs the computed value; a value longer than 40
// characters is shortened to its first 20 and last 17 around "...".
func (l *LogsModel) AddFinalResult(msg FinalResultMsg) {
	value := msg.Result.Value
	if len(value) > 40 {
		value = value[:20] + "..." + value[len(value)-17:]
	}
	l.append(fmt.Sprintf("pi(%d) = %s", msg.N, value))
}

// AddError logs a calculation failure.
func (l *LogsModel) AddError(msg ErrorMsg) {
	l.append(fmt.Sprintf("error after %s: %v", format.FormatExecutionDuration(msg.Duration), msg.Err))
}

// Update handles scroll key messages.
func (l LogsModel) Update(msg tea.KeyMsg) (LogsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap().Up):
		if l.offset > 0 {
			l.offset--
		}
	case key.Matches(msg, DefaultKeyMap().Down):
		if l.offset < l.maxOffset() {
			l.offset++
		}
	case key.Matches(msg, DefaultKeyMap().PageUp):
		l.offset -= l.height
		if l.offset < 0 {
			l.offset = 0
		}
	case key.Matches(msg, DefaultKeyMap().PageDown):
		l.offset += l.height
		if max := l.maxOffset(); l.offset > max {
			l.offset = max
		}
	}
	return l, nil
}

func (l LogsModel) maxOffset() int {
	if len(l.lines) <= l.height {
		return 0
	}
	return len(l.lines) - l.height
}

// renderToHeight renders the logs panel clipped to exactly h lines
// tall, matching the right column's rendered height.
func (l LogsModel) renderToHeight(h int) string {
	visible := h - 2
	if visible < 0 {
		visible = 0
	}

	start := l.offset
	if start > len(l.lines) {
		start = len(l.lines)
	}
	end := start + visible
	if end > len(l.lines) {
		end = len(l.lines)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Logs"))
	for _, line := range l.lines[start:end] {
		b.WriteString("\n")
		b.WriteString(logTimeStyle.Render(line.timestamp.Format("15:04:05")))
		b.WriteString(" ")
		b.WriteString(line.text)
	}

	w := l.width - 2
	if w < 0 {
		w = 0
	}
	return panelStyle.Width(w).Height(h - 2).Render(b.String())
}
