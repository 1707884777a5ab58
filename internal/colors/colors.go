// Package colors provides the terminal color scheme for grove output.
//
// All helpers degrade to plain text on non-color terminals; detection and
// NO_COLOR handling come from the color library.
package colors

import "github.com/fatih/color"

var (
	cyan = color.New(color.FgHiCyan).SprintFunc()
	red  = color.New(color.FgHiRed).SprintFunc()
	gray = color.New(color.FgHiBlack).SprintFunc()
	bold = color.New(color.Bold).SprintFunc()
)

func Cyan(text string) string { return cyan(text) }
func Red(text string) string  { return red(text) }
func Gray(text string) string { return gray(text) }
func Bold(text string) string { return bold(text) }

// Section headers and notice text share one scheme across all commands.
func SectionHeader(text string) string { return bold(text) }
func InfoText(text string) string      { return cyan(text) }
func WarningText(text string) string   { return red(text) }
