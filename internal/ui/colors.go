package ui

// The functions below expose individual ANSI color codes for call sites
// that compose strings out of many small colored fragments (the REPL
// banner, execution-config summaries, comparison tables) rather than
// styling a single value through Theme. They respect the active theme:
// once NoColorTheme is selected, every one of them returns "".

func noColor() bool {
	return GetCurrentTheme().Name == "none"
}

func ColorRed() string {
	if noColor() {
		return ""
	}
	return "\033[38;5;196m"
}

func ColorGreen() string {
	if noColor() {
		return ""
	}
	return "\033[38;5;82m"
}

func ColorYellow() string {
	if noColor() {
		return ""
	}
	return "\033[38;5;220m"
}

func ColorBlue() string {
	if noColor() {
		return ""
	}
	return "\033[38;5;39m"
}

func ColorMagenta() string {
	if noColor() {
		return ""
	}
	return "\033[38;5;170m"
}

func ColorCyan() string {
	if noColor() {
		return ""
	}
	return "\033[38;5;51m"
}

func ColorBold() string {
	return GetCurrentTheme().Bold
}

func ColorUnderline() string {
	return GetCurrentTheme().Underline
}

func ColorReset() string {
	return GetCurrentTheme().Reset
}
