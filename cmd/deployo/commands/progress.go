package commands

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/deployo/deployo/pkg/deployexec"
)

var (
	fileStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

// progressPrinter renders deployexec progress events as single lines. Events
// arrive strictly sequentially, but the mutex keeps output sane if a sink is
// ever shared.
type progressPrinter struct {
	mu    sync.Mutex
	out   io.Writer
	color bool
}

func newProgressPrinter(out io.Writer, color bool) *progressPrinter {
	return &progressPrinter{out: out, color: color}
}

// OnEvent implements deployexec.ProgressSink.
func (p *progressPrinter) OnEvent(ev deployexec.ProgressEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch ev.Phase {
	case "file":
		p.printFile(ev)
	default:
		p.printPhase(ev)
	}
}

func (p *progressPrinter) printFile(ev deployexec.ProgressEvent) {
	switch ev.Status {
	case "start":
		fmt.Fprintf(p.out, "  %s %s\n", p.style(fileStyle, "→"), p.style(subtleStyle, ev.Destination))
	case "completed":
		fmt.Fprintf(p.out, "  %s %s\n", p.style(successStyle, "✓"), ev.File)
	case "canceled":
		fmt.Fprintf(p.out, "  %s %s\n", p.style(warnStyle, "⚠"), ev.File)
	default:
		fmt.Fprintf(p.out, "  %s %s: %s\n", p.style(errorStyle, "✗"), ev.File, ev.Message)
	}
}

func (p *progressPrinter) printPhase(ev deployexec.ProgressEvent) {
	line := fmt.Sprintf("[%s] %s %s", ev.Phase, ev.Target, ev.Status)
	if ev.Message != "" {
		line += " (" + ev.Message + ")"
	}
	fmt.Fprintln(p.out, p.style(subtleStyle, line))
}

func (p *progressPrinter) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}
