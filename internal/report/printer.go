// Package report renders harness output for the console: banners,
// per-operation result lines and the closing timing summary.
package report

import (
	"datebench/internal/bench"
	"datebench/internal/dates"
	"datebench/internal/logging"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const (
	// UsageMessage is printed when the CLI gets anything but one argument.
	UsageMessage = "Usage: datebench <date>\n" +
		"Example:\n" +
		"  datebench \"2025-03-13\""

	// FormatErrorMessage is printed when the argument is not an ISO date.
	FormatErrorMessage = "Error: invalid date format. Use yyyy-MM-dd (for example: 2025-03-13)"
)

var (
	accent = lipgloss.Color("#8BC34A")
	danger = lipgloss.Color("#e53935")
	muted  = lipgloss.Color("#2a3850")
)

var _ bench.Sink = (*Printer)(nil)

// Printer writes human-readable results to w. It implements bench.Sink and
// records every timing it prints so Summary can tabulate them.
type Printer struct {
	w        io.Writer
	color    bool
	recorder *logging.Recorder

	banner  lipgloss.Style
	section lipgloss.Style
	failure lipgloss.Style
	rule    lipgloss.Style
}

// NewPrinter returns a Printer writing to w. With color false every line is
// plain text; with color true styles are applied only if w is a terminal.
func NewPrinter(w io.Writer, color bool) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:        w,
		color:    color,
		recorder: &logging.Recorder{},
		banner:   r.NewStyle().Bold(true).Foreground(accent),
		section:  r.NewStyle().Bold(true),
		failure:  r.NewStyle().Foreground(danger),
		rule:     r.NewStyle().Foreground(muted),
	}
}

// Recorder returns the timings printed so far.
func (p *Printer) Recorder() *logging.Recorder {
	return p.recorder
}

func (p *Printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

func (p *Printer) println(text string) {
	fmt.Fprintln(p.w, text)
}

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Usage prints the usage message.
func (p *Printer) Usage() {
	p.println(UsageMessage)
}

// FormatError prints the malformed-date message.
func (p *Printer) FormatError() {
	p.println(p.style(p.failure, FormatErrorMessage))
}

func (p *Printer) separator() {
	p.println("\n" + p.style(p.rule, strings.Repeat("=", 80)) + "\n")
}

// Opening prints the start-of-run banner.
func (p *Printer) Opening(target dates.Date) {
	p.separator()
	p.println(p.style(p.banner, "STARTED DATE ANALYSIS"))
	p.printf("Search parameter: %s", target)
	p.separator()
	p.println(p.style(p.section, "COMPREHENSIVE ANALYSIS OF ALL DATA STRUCTURES"))
	p.println(strings.Repeat("=", 60))
}

// Section prints a component header.
func (p *Printer) Section(title string) {
	p.println(p.style(p.section, title))
	p.println(strings.Repeat("-", 50))
}

// Between prints the divider between two components.
func (p *Printer) Between() {
	p.println("\n" + p.style(p.rule, strings.Repeat("~", 60)) + "\n")
}

// Closing prints the end-of-run banner.
func (p *Printer) Closing() {
	p.separator()
	p.println(p.style(p.banner, "ANALYSIS COMPLETE"))
	p.separator()
}

// LoadError reports that the input could not be loaded.
func (p *Printer) LoadError(source string, err error) {
	p.println(p.style(p.failure, fmt.Sprintf("Error while loading %s: %v", source, err)))
}

// ComponentError reports a failed component.
func (p *Printer) ComponentError(name string, err error) {
	p.println(p.style(p.failure, fmt.Sprintf("Error while processing %s: %v", name, err)))
}

// Timing prints one timed operation and records it for the summary.
func (p *Printer) Timing(m logging.Measurement) {
	p.recorder.Record(m)
	p.printf("Elapsed time for %s: %d ns", m.Operation, m.Nanoseconds())
}

// Search prints a positional search result.
func (p *Printer) Search(c bench.Container, target dates.Date, r bench.SearchResult) {
	if r.Found {
		p.printf("Element '%s' found in %s at position: %d", target, c, r.Position)
		return
	}
	p.printf("Element '%s' is absent from %s.", target, c)
}

// Membership prints a membership test result.
func (p *Printer) Membership(c bench.Container, target dates.Date, found bool) {
	if found {
		p.printf("Element '%s' found in %s", target, c)
		return
	}
	p.printf("Element '%s' is absent from %s.", target, c)
}

// MinMax prints the extremes of a container.
func (p *Printer) MinMax(c bench.Container, mm bench.MinMax) {
	p.printf("Minimum value in %s: %s", c, mm.Min)
	p.printf("Maximum value in %s: %s", c, mm.Max)
}

// Empty reports an operation skipped because its container had no elements.
func (p *Printer) Empty(c bench.Container) {
	p.printf("%s is empty or not initialized.", c)
}

// QueueHeads prints the peek, poll, peek sequence.
func (p *Printer) QueueHeads(h bench.QueueHeads) {
	p.printf("Queue head (peek): %s", h.Peeked)
	p.printf("Removed queue element (poll): %s", h.Polled)
	if h.HasNext {
		p.printf("New queue head: %s", h.Next)
	} else {
		p.println("New queue head: none (queue is empty)")
	}
}

// SetAnalysis prints the array/set comparison.
func (p *Printer) SetAnalysis(a bench.SetAnalysis) {
	p.printf("Number of elements in array: %d", a.ArrayLen)
	p.printf("Number of elements in %s: %d", bench.ContainerSet, a.SetLen)
	if a.AllPresent {
		p.printf("All array elements are present in %s.", bench.ContainerSet)
	} else {
		p.printf("Not all array elements are present in %s.", bench.ContainerSet)
	}
}

// Saved reports where a sorted array was written.
func (p *Printer) Saved(dest string, count int) {
	p.printf("Sorted array (%d dates) written to %s", count, dest)
}

// Summary prints every recorded timing in execution order.
func (p *Printer) Summary() {
	ms := p.recorder.Measurements()
	if len(ms) == 0 {
		return
	}

	rows := make([][]string, 0, len(ms)+1)
	for _, m := range ms {
		rows = append(rows, []string{string(m.Category), m.Operation, strconv.FormatInt(m.Nanoseconds(), 10)})
	}
	rows = append(rows, []string{"", "total", strconv.FormatInt(p.recorder.Total().Nanoseconds(), 10)})

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("COMPONENT", "OPERATION", "NS").
		Rows(rows...)
	if p.color {
		t = t.BorderStyle(p.rule)
	}

	p.println("")
	p.println(p.style(p.section, "TIMING SUMMARY"))
	p.println(t.String())
}
