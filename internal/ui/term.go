package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/javiermolinar/luach/internal/grid"
)

// Color definitions for consistent styling across the UI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)

	// Warnings: conflicts and skipped records
	colorWarn = color.New(color.FgYellow)

	// Stats: green for counts and confirmations
	colorStats = color.New(color.FgGreen)
)

// typeColors follows the Excel palette: exams stand out, the rest recede.
var typeColors = map[grid.EventType]*color.Color{
	grid.TypeOfficialExam: color.New(color.FgRed, color.Bold),
	grid.TypeMockExam:     color.New(color.FgYellow, color.Bold),
	grid.TypeTrip:         color.New(color.FgGreen),
	grid.TypeVacation:     color.New(color.FgBlue),
	grid.TypeHoliday:      color.New(color.FgMagenta),
	grid.TypeGeneral:      color.New(color.FgWhite),
}

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}

func formatStats(s string) string {
	return colorStats.Sprint(s)
}

// formatEvent colours text by its event type.
func formatEvent(t grid.EventType, s string) string {
	if c, ok := typeColors[t]; ok {
		return c.Sprint(s)
	}
	return s
}
