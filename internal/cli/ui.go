package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette shared by status lines, tables and the explorer.
var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorCmd    = lipgloss.Color("75")
	colorText   = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleDim       = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue     = lipgloss.NewStyle().Foreground(colorText)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleCommand     = lipgloss.NewStyle().Foreground(colorCmd)
	styleKey         = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
)

const (
	iconSuccess = "✓"
	iconArrow   = "→"
)

// statusKind selects the icon and color of a status line.
type statusKind int

const (
	statusOK statusKind = iota
	statusFail
	statusWarn
	statusInfo
)

var statusIcons = [...]struct {
	icon  string
	color lipgloss.Color
}{
	statusOK:   {iconSuccess, colorOK},
	statusFail: {"✗", colorFail},
	statusWarn: {"!", colorWarn},
	statusInfo: {"›", colorMuted},
}

// uiOut receives status output. Command results go to cmd.OutOrStdout
// instead so they stay pipeable.
var uiOut io.Writer = os.Stdout

func status(kind statusKind, format string, args ...any) {
	s := statusIcons[kind]
	msg := fmt.Sprintf(format, args...)
	if kind == statusWarn {
		msg = StyleWarning.Render(msg)
	}
	fmt.Fprintln(uiOut, lipgloss.NewStyle().Foreground(s.color).Render(s.icon)+" "+msg)
}

func printSuccess(format string, args ...any) { status(statusOK, format, args...) }
func printError(format string, args ...any)   { status(statusFail, format, args...) }
func printWarning(format string, args ...any) { status(statusWarn, format, args...) }
func printInfo(format string, args ...any)    { status(statusInfo, format, args...) }

// printDetail prints an indented, dimmed line under a status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path of a written artifact.
func printFile(path string) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(uiOut, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints node and edge counts of a rendered trie and whether the
// artifact came from the cache.
func printStats(nodes, edges int, cached bool) {
	fmt.Fprintln(uiOut, "  "+statsLine(nodes, edges, cached))
}

func statsLine(nodes, edges int, cached bool) string {
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d nodes", nodes)),
		StyleDim.Render(fmt.Sprintf("%d edges", edges)),
	}
	if cached {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorOK).Render("cached"))
	} else {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorMuted).Render("fresh"))
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(uiOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(uiOut) }
