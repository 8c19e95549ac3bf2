package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	goio "io"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/bradleyjkemp/memviz"
	"github.com/thelolagemann/go-8080/internal/cpm"
	"github.com/thelolagemann/go-8080/internal/io"
	"github.com/thelolagemann/go-8080/internal/machine"
	"github.com/thelolagemann/go-8080/pkg/console"
	"github.com/thelolagemann/go-8080/pkg/display"
	"github.com/thelolagemann/go-8080/pkg/display/event"
	_ "github.com/thelolagemann/go-8080/pkg/display/fyne"
	_ "github.com/thelolagemann/go-8080/pkg/display/web"
	"github.com/thelolagemann/go-8080/pkg/emu"
	"github.com/thelolagemann/go-8080/pkg/log"
	"github.com/thelolagemann/go-8080/pkg/profile"
	"github.com/thelolagemann/go-8080/pkg/stats"
	"github.com/thelolagemann/go-8080/pkg/utils"
)

var (
	_ display.Emulator = &machine.Machine{}
)

// profileEntries is the number of opcodes in the -profile chart.
const profileEntries = 20

func main() {
	romFile := flag.String("rom", "", "The program image to load (raw, .gz, .zip, .7z or .rar)")
	base := flag.String("base", "0x0000", "The address the program is loaded at")
	entry := flag.String("entry", "", "The address execution starts at, defaults to the load address")
	withCPM := flag.Bool("cpm", false, "Emulate the CP/M BDOS and load at 0x0100 (implied for .com files)")
	state := flag.String("state", "", "A snapshot file, or a snapshot folder to restore the newest snapshot of the program from")
	saveState := flag.String("save-state", "", "The folder to write a snapshot to when the program stops")
	displayDriver := flag.String("driver", "none", "The display driver to use. Can be none or one of "+strings.Join(display.Names(), ", "))
	speed := flag.Float64("speed", 0, "The clock speed in MHz, 0 runs unthrottled")
	maxCycles := flag.Uint64("max-cycles", 0, "Stop after this many cycles, 0 for no limit")
	trace := flag.String("trace", "", "Write an instruction trace to this file, - for stdout")
	profileFile := flag.String("profile", "", "Write an opcode histogram PNG to this file")
	statsView := flag.Bool("stats", false, "Serve a runtime statistics dashboard on "+stats.DefaultAddress)
	memvizFile := flag.String("memviz", "", "Write a dot graph of the machine to this file when the program stops")
	undocumented := flag.Bool("undocumented", false, "Execute undocumented opcodes as their documented aliases")
	strict := flag.Bool("strict", false, "Stop on unsupported BDOS calls")
	raw := flag.Bool("raw", false, "Read console input from the terminal a key at a time")
	debug := flag.Bool("debug", false, "Enable debug logging")
	pprof := flag.String("pprof", "", "Serve pprof on this address")
	var timers []timerFlag
	flag.Func("timer", "Attach an interval timer as port:period:vector, e.g. 0x10:33333:1 for RST 1 every 33333 cycles (repeatable)", func(s string) error {
		t, err := parseTimer(s)
		if err != nil {
			return err
		}
		timers = append(timers, t)
		return nil
	})

	display.RegisterFlags(flag.CommandLine)
	flag.Parse()

	var logOpts []log.Opt
	if *debug {
		logOpts = append(logOpts, log.WithDebug())
	}
	logger := log.New(logOpts...)

	if *pprof != "" {
		go func() {
			if err := http.ListenAndServe(*pprof, nil); err != nil {
				logger.Errorf("pprof: %v", err)
			}
		}()
	}

	var driver display.Driver
	if *displayDriver != "none" {
		if driver = display.GetDriver(*displayDriver); driver == nil {
			logger.Fatal(fmt.Sprintf("invalid display driver %q", *displayDriver))
		}
		if w, ok := driver.(display.LogWrapper); ok {
			logger = w.WrapLogger(logger)
		}
	}

	if *romFile == "" {
		if *displayDriver != "fyne" {
			flag.Usage()
			os.Exit(2)
		}
		file, err := utils.AskForFile("Open 8080 program", ".")
		if err != nil {
			logger.Fatal(fmt.Sprintf("no program selected: %v", err))
		}
		*romFile = file
	}

	image, err := utils.LoadFile(*romFile)
	if err != nil {
		logger.Fatal(err.Error())
	}

	opts := []machine.Opt{machine.WithLogger(logger), machine.Speed(*speed)}
	if *withCPM || strings.EqualFold(filepath.Ext(*romFile), ".com") {
		var cpmOpts []cpm.Opt
		if *strict {
			cpmOpts = append(cpmOpts, cpm.Strict())
		}
		opts = append(opts, machine.WithCPM(cpmOpts...))
	} else {
		addr, err := parseAddress(*base)
		if err != nil {
			logger.Fatal(fmt.Sprintf("-base: %v", err))
		}
		opts = append(opts, machine.WithBase(addr))
	}
	if *entry != "" {
		addr, err := parseAddress(*entry)
		if err != nil {
			logger.Fatal(fmt.Sprintf("-entry: %v", err))
		}
		opts = append(opts, machine.WithEntry(addr))
	}
	if *maxCycles > 0 {
		opts = append(opts, machine.WithMaxCycles(*maxCycles))
	}
	if *undocumented {
		opts = append(opts, machine.WithUndocumented())
	}
	for _, t := range timers {
		opts = append(opts, machine.WithTimer(t.port, t.period, t.vector))
	}

	// console
	consoleOpts := []io.ConsoleOpt{io.StripCarriageReturns()}
	if driver == nil {
		consoleOpts = append(consoleOpts, io.WithMirror(os.Stdout))
	}
	if *raw {
		term, err := console.Open(console.DefaultDevice)
		if err != nil {
			logger.Fatal(err.Error())
		}
		defer term.Close()
		consoleOpts = append(consoleOpts, io.WithInput(term))
	} else {
		consoleOpts = append(consoleOpts, io.WithInput(os.Stdin))
	}
	opts = append(opts, machine.WithConsole(consoleOpts...))

	// observers
	if *trace != "" {
		var w goio.Writer = os.Stdout
		if *trace != "-" {
			f, err := os.Create(*trace)
			if err != nil {
				logger.Fatal(err.Error())
			}
			defer f.Close()
			buf := bufio.NewWriter(f)
			defer buf.Flush()
			w = buf
		}
		opts = append(opts, machine.WithTrace(w))
	}
	var profiler *profile.Profiler
	if *profileFile != "" {
		profiler = profile.New()
		opts = append(opts, machine.WithObserver(profiler.Observe))
	}

	if *state != "" && !isDir(*state) {
		b, err := os.ReadFile(*state)
		if err != nil {
			logger.Fatal(err.Error())
		}
		if b, err = emu.Decode(b); err != nil {
			logger.Fatal(fmt.Sprintf("%s: %v", *state, err))
		}
		opts = append(opts, machine.WithState(b))
	}

	m, err := machine.New(image, opts...)
	if err != nil {
		logger.Fatal(err.Error())
	}
	if *state != "" && isDir(*state) {
		if err := m.LoadLatestSnapshot(*state); err != nil {
			logger.Fatal(err.Error())
		}
	}

	if *statsView {
		defer stats.Launch(stats.DefaultAddress, os.Stderr)()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runErr error
	if driver == nil {
		runErr = m.Run(ctx)
	} else {
		runErr = runWithDriver(ctx, stop, m, driver, logger)
	}

	code := 0
	switch {
	case runErr == nil, errors.Is(runErr, context.Canceled):
	case errors.Is(runErr, machine.ErrCycleLimit):
		logger.Infof("stopped after %d cycles", m.Cycles())
	default:
		logger.Errorf("%v", runErr)
		code = 1
	}
	logger.Debugf("%d instructions in %d cycles, status %s, digest %016x", m.Instructions(), m.Cycles(), m.Status(), m.Digest())

	if *saveState != "" {
		if save, err := m.SaveSnapshot(*saveState); err != nil {
			logger.Errorf("saving snapshot: %v", err)
			code = 1
		} else {
			logger.Infof("saved snapshot to %s", save.Path)
		}
	}
	if profiler != nil {
		if err := writeProfile(*profileFile, profiler); err != nil {
			logger.Errorf("writing profile: %v", err)
			code = 1
		}
		profiler.WriteText(os.Stderr, 10)
	}
	if *memvizFile != "" {
		if err := writeMemviz(*memvizFile, m); err != nil {
			logger.Errorf("writing memviz: %v", err)
			code = 1
		}
	}

	if code != 0 {
		// deferred cleanups would be skipped by os.Exit
		stop()
		os.Exit(code)
	}
}

// runWithDriver runs m in the background while driver presents it.
// It returns once the driver has stopped and the machine with it.
func runWithDriver(ctx context.Context, cancel context.CancelFunc, m *machine.Machine, driver display.Driver, logger log.Logger) error {
	driver.Initialize(m)

	events := make(chan event.Event, 256)
	send := func(e event.Event) {
		select {
		case events <- e:
		default:
		}
	}

	output := make(chan byte, 4096)
	m.Console().Subscribe(func(b byte) {
		select {
		case output <- b:
		default:
		}
	})

	done := make(chan error, 1)
	go func() {
		err := m.Run(ctx)
		send(event.Event{Type: event.Status, Data: m.Status()})
		send(event.Event{Type: event.Title, Data: fmt.Sprintf("go-8080 (%s)", m.Status())})
		done <- err
	}()

	// coalesce console output and report the clock speed
	go func() {
		flush := time.NewTicker(50 * time.Millisecond)
		second := time.NewTicker(time.Second)
		defer flush.Stop()
		defer second.Stop()

		var pending []byte
		last := m.Cycles()
		for {
			select {
			case <-ctx.Done():
				return
			case b := <-output:
				pending = append(pending, b)
			case <-flush.C:
				if len(pending) > 0 {
					send(event.Event{Type: event.Output, Data: pending})
					pending = nil
				}
			case <-second.C:
				cycles := m.Cycles()
				send(event.Event{Type: event.Performance, Data: float64(cycles - last)})
				send(event.Event{Type: event.Status, Data: m.Status()})
				last = cycles
			}
		}
	}()

	if err := driver.Start(events); err != nil {
		logger.Errorf("display driver: %v", err)
	}
	cancel()
	return <-done
}

func parseAddress(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

// timerFlag is a parsed -timer value.
type timerFlag struct {
	port   uint8
	period uint64
	vector uint8
}

// parseTimer parses port:period:vector. Numbers may be decimal or
// prefixed with 0x.
func parseTimer(s string) (timerFlag, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return timerFlag{}, fmt.Errorf("timer %q: want port:period:vector", s)
	}
	port, err := strconv.ParseUint(parts[0], 0, 8)
	if err != nil {
		return timerFlag{}, fmt.Errorf("timer port: %w", err)
	}
	period, err := strconv.ParseUint(parts[1], 0, 64)
	if err != nil || period == 0 {
		return timerFlag{}, fmt.Errorf("timer %q: period must be a positive number of cycles", s)
	}
	vector, err := strconv.ParseUint(parts[2], 0, 8)
	if err != nil || vector > 7 {
		return timerFlag{}, fmt.Errorf("timer %q: vector must be 0-7", s)
	}
	return timerFlag{port: uint8(port), period: period, vector: uint8(vector)}, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func writeProfile(path string, p *profile.Profiler) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := p.WritePNG(f, profileEntries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeMemviz(path string, m *machine.Machine) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	memviz.Map(f, m.Overview())
	return f.Close()
}
