package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// stdout receives all user-facing output. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// Terminal palette (256-color codes).
var (
	colorCyan   = lipgloss.Color("37")
	colorGreen  = lipgloss.Color("71")
	colorAmber  = lipgloss.Color("214")
	colorRed    = lipgloss.Color("160")
	colorBlue   = lipgloss.Color("69")
	colorOrange = lipgloss.Color("208")
	colorWhite  = lipgloss.Color("254")
	colorGray   = lipgloss.Color("246")
	colorDim    = lipgloss.Color("241")
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

// Styles shared by inspect, the browser and serve output.
var (
	StyleTitle     = fg(colorCyan).Bold(true)
	StyleHighlight = fg(colorCyan)
	StyleRoot      = fg(colorOrange).Bold(true)
	StyleDim       = fg(colorDim)
	StyleValue     = fg(colorWhite)
)

var (
	styleIconSpinner = fg(colorCyan)
	styleCommand     = fg(colorBlue)
	styleKey         = fg(colorGray).Width(12)
	styleWarnText    = fg(colorAmber)
)

// Cache status labels shown after every layout or render.
const (
	iconCached = "cached"
	iconFresh  = "fresh"
)

// marker is a one-glyph prefix in front of a status line.
type marker struct {
	glyph string
	style lipgloss.Style
}

var (
	markSuccess = marker{"✓", fg(colorGreen)}
	markError   = marker{"✗", fg(colorRed)}
	markWarning = marker{"!", fg(colorAmber)}
	markInfo    = marker{"›", fg(colorGray)}
)

func (m marker) println(msg string) {
	fmt.Fprintln(stdout, m.style.Render(m.glyph)+" "+msg)
}

func printSuccess(format string, args ...any) { markSuccess.println(fmt.Sprintf(format, args...)) }
func printError(format string, args ...any)   { markError.println(fmt.Sprintf(format, args...)) }
func printInfo(format string, args ...any)    { markInfo.println(fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	markWarning.println(styleWarnText.Render(fmt.Sprintf(format, args...)))
}

// printWarnings reports documents or woods that were skipped.
func printWarnings(warnings []string) {
	for _, w := range warnings {
		printWarning("%s", w)
	}
}

// printDetail prints an indented, muted line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprintf(stdout, "  %s %s\n", StyleDim.Render("→"), StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintf(stdout, "%s %s\n", styleKey.Render(key), StyleValue.Render(value))
}

// printStats summarizes a scene as "N woods · N nodes · N edges · status".
// The wood count is only shown for collections; zero counts are omitted.
func printStats(woods, nodeCount, edgeCount int, cached bool) {
	var fields []string
	add := func(n, floor int, unit string) {
		if n > floor {
			fields = append(fields, StyleDim.Render(fmt.Sprintf("%d %s", n, unit)))
		}
	}
	add(woods, 1, "woods")
	add(nodeCount, 0, "nodes")
	add(edgeCount, 0, "edges")

	if cached {
		fields = append(fields, fg(colorGreen).Render(iconCached))
	} else {
		fields = append(fields, fg(colorGray).Render(iconFresh))
	}
	fmt.Fprintln(stdout, "  "+strings.Join(fields, StyleDim.Render(" · ")))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintf(stdout, "%s %s\n", StyleDim.Render(description+":"), styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(stdout) }
