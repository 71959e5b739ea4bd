package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Logo printed at the top of interactive runs
const Logo = `
 ╦╔═╗  ╔═╗╔═╗╔═╗╔╦╗╔═╗
 ║║ ╦  ╠═╝║ ║╚═╗ ║ ╚═╗
 ╩╚═╝  ╩  ╚═╝╚═╝ ╩ ╚═╝  profile posts exporter
`

var (
	cyan    = lipgloss.Color("#00FFFF")
	yellow  = lipgloss.Color("#FFFF00")
	red     = lipgloss.Color("#FF3B30")
	green   = lipgloss.Color("#39FF14")
	magenta = lipgloss.Color("#FF00FF")
	dim     = lipgloss.Color("#808080")
)

// Console prints styled status lines. Quiet consoles print nothing but errors.
type Console struct {
	out   io.Writer
	quiet bool
	color bool

	renderer *lipgloss.Renderer
	cyan     lipgloss.Style
	yellow   lipgloss.Style
	red      lipgloss.Style
	green    lipgloss.Style
	magenta  lipgloss.Style
	dim      lipgloss.Style
}

// NewConsole creates a console writing to out. Colors follow the terminal
// capabilities of out unless noColor is set.
func NewConsole(out io.Writer, quiet, noColor bool) *Console {
	if out == nil {
		out = os.Stdout
	}

	r := lipgloss.NewRenderer(out)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Console{
		out:      out,
		quiet:    quiet,
		color:    r.ColorProfile() != termenv.Ascii,
		renderer: r,
		cyan:     r.NewStyle().Foreground(cyan),
		yellow:   r.NewStyle().Foreground(yellow),
		red:      r.NewStyle().Foreground(red).Bold(true),
		green:    r.NewStyle().Foreground(green),
		magenta:  r.NewStyle().Foreground(magenta),
		dim:      r.NewStyle().Foreground(dim),
	}
}

// Writer returns the underlying output
func (c *Console) Writer() io.Writer {
	return c.out
}

// Quiet reports whether non-error output is suppressed
func (c *Console) Quiet() bool {
	return c.quiet
}

// PrintLogo prints the logo
func (c *Console) PrintLogo() {
	if c.quiet {
		return
	}
	fmt.Fprint(c.out, c.cyan.Render(Logo)+"\n")
}

// PrintError prints an error message, even when quiet
func (c *Console) PrintError(msg string, err error) {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	fmt.Fprintln(c.out, c.red.Render(msg))
}

// PrintSuccess prints a success message
func (c *Console) PrintSuccess(msg string) {
	if c.quiet {
		return
	}
	fmt.Fprintln(c.out, c.green.Render(msg))
}

// PrintInfo prints a label and value pair
func (c *Console) PrintInfo(label, value string) {
	if c.quiet {
		return
	}
	fmt.Fprintf(c.out, "%s: %s\n", c.cyan.Render(label), c.yellow.Render(value))
}

// PrintWarning prints a warning message
func (c *Console) PrintWarning(msg string) {
	if c.quiet {
		return
	}
	fmt.Fprintln(c.out, c.yellow.Render(msg))
}

// PrintHighlight prints a highlighted message
func (c *Console) PrintHighlight(msg string) {
	if c.quiet {
		return
	}
	fmt.Fprintln(c.out, c.magenta.Render(msg))
}
