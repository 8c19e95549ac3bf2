// Package profile counts executed instructions by opcode and renders
// the result as a bar chart.
package profile

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/thelolagemann/go-8080/internal/cpu"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Profiler records how often each opcode runs and how many cycles it
// accounts for. Its Observe method is a machine observer.
type Profiler struct {
	mu     sync.Mutex
	counts [256]uint64
	cycles [256]uint64
}

// Entry is the profile of a single opcode.
type Entry struct {
	Opcode uint8
	Name   string
	Count  uint64
	Cycles uint64
}

// New returns an empty Profiler.
func New() *Profiler {
	return &Profiler{}
}

// Observe records one executed instruction.
func (p *Profiler) Observe(_ *cpu.CPU, opcode uint8, _ uint16, cycles uint8) {
	p.mu.Lock()
	p.counts[opcode]++
	p.cycles[opcode] += uint64(cycles)
	p.mu.Unlock()
}

// Top returns the n most executed opcodes, most executed first. Ties
// are broken by opcode.
func (p *Profiler) Top(n int) []Entry {
	p.mu.Lock()
	defer p.mu.Unlock()

	entries := make([]Entry, 0, 256)
	for opcode, count := range p.counts {
		if count == 0 {
			continue
		}
		entries = append(entries, Entry{
			Opcode: uint8(opcode),
			Name:   cpu.InstructionSet[opcode].Name(),
			Count:  count,
			Cycles: p.cycles[opcode],
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Opcode < entries[j].Opcode
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// WriteText writes the top n opcodes as a table.
func (p *Profiler) WriteText(w io.Writer, n int) error {
	for _, e := range p.Top(n) {
		if _, err := fmt.Fprintf(w, "%02X  %-12s %10d %12d\n", e.Opcode, e.Name, e.Count, e.Cycles); err != nil {
			return err
		}
	}
	return nil
}

// Plot renders the top n opcodes as a bar chart.
func (p *Profiler) Plot(n int) (*plot.Plot, error) {
	entries := p.Top(n)

	values := make(plotter.Values, len(entries))
	names := make([]string, len(entries))
	for i, e := range entries {
		values[i] = float64(e.Count)
		names[i] = fmt.Sprintf("%02X", e.Opcode)
	}

	pl := plot.New()
	pl.Title.Text = "Instructions executed"
	pl.Y.Label.Text = "Count"
	pl.X.Label.Text = "Opcode"

	if len(values) > 0 {
		bars, err := plotter.NewBarChart(values, vg.Points(12))
		if err != nil {
			return nil, err
		}
		pl.Add(bars)
		pl.NominalX(names...)
	}
	return pl, nil
}

// WritePNG renders the top n opcodes as a PNG bar chart.
func (p *Profiler) WritePNG(w io.Writer, n int) error {
	pl, err := p.Plot(n)
	if err != nil {
		return err
	}
	wt, err := pl.WriterTo(8*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
