package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	doneStyle    = lipgloss.NewStyle().Faint(true).Strikethrough(true)

	toneStyles = map[string]lipgloss.Style{
		"positive": successStyle,
		"negative": errorStyle,
		"zero":     mutedStyle,
	}

	boxChecked   = "☑"
	boxUnchecked = "☐"
)

// Presenter writes user-facing output. Plain mode drops all styling.
type Presenter struct {
	out    io.Writer
	errOut io.Writer
	plain  bool
}

// NewPresenter creates a presenter writing to out and errOut.
func NewPresenter(out, errOut io.Writer, plain bool) *Presenter {
	return &Presenter{out: out, errOut: errOut, plain: plain}
}

func (p *Presenter) render(style lipgloss.Style, text string) string {
	if p.plain {
		return text
	}
	return style.Render(text)
}

// Printf writes unstyled text.
func (p *Presenter) Printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format, args...)
}

// Line writes one unstyled line.
func (p *Presenter) Line(text string) {
	fmt.Fprintln(p.out, text)
}

func (p *Presenter) Title(text string) {
	fmt.Fprintln(p.out, p.render(titleStyle, text))
}

func (p *Presenter) OK(msg string) {
	fmt.Fprintln(p.out, p.render(successStyle, "✔ "+msg))
}

func (p *Presenter) Pending(msg string) {
	fmt.Fprintln(p.out, p.render(pendingStyle, "… "+msg))
}

func (p *Presenter) Muted(text string) {
	fmt.Fprintln(p.out, p.render(mutedStyle, text))
}

func (p *Presenter) Fail(msg string) {
	fmt.Fprintln(p.errOut, p.render(errorStyle, "✖ "+msg))
}

// Accent styles text inline.
func (p *Presenter) Accent(text string) string {
	return p.render(accentStyle, text)
}

// Tone styles a number by its sign tone.
func (p *Presenter) Tone(tone, text string) string {
	style, ok := toneStyles[tone]
	if !ok {
		return text
	}
	return p.render(style, text)
}

// Check renders a checkbox line; done items are struck through.
func (p *Presenter) Check(done bool, text string) string {
	if done {
		return boxChecked + " " + p.render(doneStyle, text)
	}
	return boxUnchecked + " " + text
}

// Panel writes lines inside a rounded border.
func (p *Presenter) Panel(lines []string) {
	if p.plain {
		for _, line := range lines {
			fmt.Fprintln(p.out, line)
		}
		return
	}
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	fmt.Fprintln(p.out, border.Render(strings.Join(lines, "\n")))
}

func progressBar(done, total, width int) string {
	if total == 0 {
		total = 1
	}
	if width <= 0 {
		width = 20
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf("] %d/%d", done, total)
}
