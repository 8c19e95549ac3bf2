// Package stats serves a live dashboard of the Go runtime (heap,
// goroutines, GC pauses) while the emulator runs.
package stats

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// DefaultAddress is where the dashboard is served unless told
// otherwise.
const DefaultAddress = "localhost:12600"

const path = "/debug/statsview"

// Launch starts the dashboard on addr in a new goroutine and writes
// its URL to output. The returned function stops it.
func Launch(addr string, output io.Writer) (stop func()) {
	if addr == "" {
		addr = DefaultAddress
	}
	viewer.SetConfiguration(viewer.WithAddr(addr))
	mgr := statsview.New()
	go mgr.Start()

	fmt.Fprintf(output, "stats server available at http://%s%s\n", addr, path)
	return mgr.Stop
}
