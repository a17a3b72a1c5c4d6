package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/imgajeed76/dataview/internal/ui/styles"
	"golang.org/x/term"
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Spinner provides a simple animated spinner for long operations. It draws
// on stderr so record output on stdout stays clean.
type Spinner struct {
	message string
	out     io.Writer
	done    chan struct{}
	stopped sync.WaitGroup
	once    sync.Once
}

// NewSpinner creates a new spinner with the given message
func NewSpinner(message string) *Spinner {
	return NewSpinnerTo(os.Stderr, message)
}

// NewSpinnerTo creates a spinner drawing on w.
func NewSpinnerTo(w io.Writer, message string) *Spinner {
	return &Spinner{
		message: message,
		out:     w,
		done:    make(chan struct{}),
	}
}

// Start begins the spinner animation in the background
func (s *Spinner) Start() {
	// Accessible mode or non-TTY: just print static message
	if styles.IsAccessible() || !isTerminal(s.out) {
		fmt.Fprintln(s.out, s.message+"...")
		return
	}

	s.stopped.Add(1)
	go func() {
		defer s.stopped.Done()
		frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		style := lipgloss.NewStyle().Foreground(styles.Accent)
		i := 0
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-s.done:
				// Clear the spinner line
				fmt.Fprint(s.out, "\r\033[K")
				return
			case <-ticker.C:
				frame := style.Render(frames[i%len(frames)])
				fmt.Fprintf(s.out, "\r%s %s", frame, s.message)
				i++
			}
		}
	}()
}

// Stop stops the spinner and waits for the line to be cleared
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.done) })
	s.stopped.Wait()
}

// Success stops the spinner and shows a success message
func (s *Spinner) Success(msg string) {
	s.Stop()
	fmt.Fprintln(s.out, styles.SuccessMsg(msg))
}

// Error stops the spinner and shows an error message
func (s *Spinner) Error(msg string) {
	s.Stop()
	fmt.Fprintln(s.out, styles.ErrorMsg(msg))
}

// ══════════════════════════════════════════════════════════════════════════
// Progress bar for operations with known progress
// ══════════════════════════════════════════════════════════════════════════

// Progress represents a progress bar
type Progress struct {
	total   int
	current int
	label   string
	width   int
	out     io.Writer
}

// NewProgress creates a new progress bar on stderr
func NewProgress(label string, total int) *Progress {
	return NewProgressTo(os.Stderr, label, total)
}

// NewProgressTo creates a progress bar drawing on w
func NewProgressTo(w io.Writer, label string, total int) *Progress {
	if total < 1 {
		total = 1
	}
	return &Progress{
		label: label,
		total: total,
		width: 30,
		out:   w,
	}
}

// Update updates the progress and renders
func (p *Progress) Update(current int) {
	p.current = min(current, p.total)
	p.render()
}

// Increment increments progress by 1
func (p *Progress) Increment() {
	p.Update(p.current + 1)
}

func (p *Progress) render() {
	// Accessible mode or non-TTY: print simple text progress
	if styles.IsAccessible() || !isTerminal(p.out) {
		pct := p.current * 100 / p.total
		// Print every 10% to avoid spam
		if pct%10 == 0 && (p.current == 0 || (p.current-1)*100/p.total != pct) {
			fmt.Fprintf(p.out, "%s: %d%% (%d of %d)\n", p.label, pct, p.current, p.total)
		}
		return
	}

	pct := float64(p.current) / float64(p.total)
	filled := int(pct * float64(p.width))
	empty := p.width - filled

	bar := lipgloss.NewStyle().Foreground(styles.Success).Render(
		strings.Repeat("█", filled),
	) + lipgloss.NewStyle().Foreground(styles.Muted).Render(
		strings.Repeat("░", empty),
	)

	fmt.Fprintf(p.out, "\r%s %s %3d%% [%d/%d]", p.label, bar, int(pct*100), p.current, p.total)
}

// Done finishes the progress bar
func (p *Progress) Done() {
	p.current = p.total
	p.render()
	if !styles.IsAccessible() && isTerminal(p.out) {
		fmt.Fprintln(p.out)
	}
}
