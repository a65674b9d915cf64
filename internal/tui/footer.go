package tui

import "github.com/charmbracelet/lipgloss"

// FooterModel renders the bottom status/help bar.
type FooterModel struct {
	done    bool
	errored bool
	paused  bool
	width   int
}

// NewFooterModel creates a new footer.
func NewFooterModel() FooterModel {
	return FooterModel{}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
}

// SetDone marks the run as finished (successfully or not).
func (f *FooterModel) SetDone(done bool) {
	f.done = done
}

// SetError marks the run as having failed.
func (f *FooterModel) SetError(errored bool) {
	f.errored = errored
}

// SetPaused toggles the paused indicator.
func (f *FooterModel) SetPaused(paused bool) {
	f.paused = paused
}

// View renders the footer.
func (f FooterModel) View() string {
	status := statusRunningStyle.Render("RUNNING")
	switch {
	case f.errored:
		status = statusErrorStyle.Render("ERROR")
	case f.done:
		status = statusDoneStyle.Render("DONE")
	case f.paused:
		status = statusPausedStyle.Render("PAUSED")
	}

	help := footerKeyStyle.Render("q") + footerDescStyle.Render(" quit  ") +
		footerKeyStyle.Render("p") + footerDescStyle.Render(" pause  ") +
		footerKeyStyle.Render("r") + footerDescStyle.Render(" restart")

	row := status + "  " + help
	return lipgloss.NewStyle().Width(f.width).Render(row)
}
