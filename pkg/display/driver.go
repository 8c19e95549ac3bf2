// Package display defines the contract between the emulator and the
// drivers that present it: a fyne debugger and a websocket monitor.
package display

import (
	"flag"
	"fmt"
	"sort"
	"strconv"

	"github.com/thelolagemann/go-8080/internal/cpu"
	"github.com/thelolagemann/go-8080/internal/machine"
	"github.com/thelolagemann/go-8080/pkg/display/event"
	"github.com/thelolagemann/go-8080/pkg/emulator"
	"github.com/thelolagemann/go-8080/pkg/log"
)

// Driver is the interface that wraps the basic methods for a
// display driver.
type Driver interface {
	// Initialize initializes the display driver by attaching it to
	// the emulator that is using it.
	Initialize(emu Emulator)
	// Start the display driver. It blocks until the driver is
	// stopped or an event.Quit is received.
	Start(events <-chan event.Event) error
	// Stop the display driver.
	Stop() error
}

// Emulator is the interface that wraps the basic methods for an
// emulator to implement in order for the driver to be able to
// interact with it. This is used to allow the driver to
// control the emulator. The emulator is passed to the driver
// during initialization.
type Emulator interface {
	// SendCommand sends a command packet to the emulator.
	SendCommand(command emulator.CommandPacket) emulator.ResponsePacket
	// Speed returns the speed of the emulator in MHz, 0 when
	// unthrottled.
	Speed() float64
	// Status returns the status of the emulator.
	Status() emulator.Status

	Registers() cpu.Registers
	Flags() map[string]bool
	Cycles() uint64
	Output() string
	Dump(from, to uint16) []byte
	Disassemble(addr uint16, count int) []machine.Line
}

// LogWrapper is implemented by drivers that take part in logging.
// WrapLogger is called before the emulator is created, and returns the
// logger the emulator logs through.
type LogWrapper interface {
	WrapLogger(next log.Logger) log.Logger
}

var (
	Pause  = emulator.CommandPacket{Command: emulator.CommandPause}
	Resume = emulator.CommandPacket{Command: emulator.CommandResume}
	Step   = emulator.CommandPacket{Command: emulator.CommandStep}
	Reset  = emulator.CommandPacket{Command: emulator.CommandReset}
)

// DriverOption is a display driver option, exposed as a command line
// flag.
type DriverOption struct {
	Name        string // name of the option
	Default     any    // default value of the option
	Value       any    // pointer to the value of the option
	Description string // description of the option
	Type        string // "bool", "string" or "float"
}

// InstalledDriver is a driver registered under a name.
type InstalledDriver struct {
	Name    string
	Options []DriverOption
	Driver
}

// InstalledDrivers holds every driver in installation order. Drivers
// call Install from their init function.
var InstalledDrivers []*InstalledDriver

// GetDriver returns the driver with the given name, or nil if none is
// installed. "auto" selects the first installed driver.
func GetDriver(name string) Driver {
	for _, driver := range InstalledDrivers {
		if driver.Name == name || name == "auto" {
			return driver.Driver
		}
	}

	return nil
}

// Names returns the names of the installed drivers, sorted.
func Names() []string {
	names := make([]string, 0, len(InstalledDrivers))
	for _, driver := range InstalledDrivers {
		names = append(names, driver.Name)
	}
	sort.Strings(names)
	return names
}

// Install registers a display driver with the given name.
func Install(name string, driver Driver, options []DriverOption) {
	InstalledDrivers = append(InstalledDrivers, &InstalledDriver{
		Name:    name,
		Options: options,
		Driver:  driver,
	})
}

// RegisterFlags registers the options of every installed driver with
// fs. An option only one driver has is prefixed with the driver name,
// e.g. -web-addr. An option shared by several drivers is registered
// once, unprefixed, and sets the value of each of them.
func RegisterFlags(fs *flag.FlagSet) {
	shared := make(map[string][]DriverOption)
	var names []string

	for _, driver := range InstalledDrivers {
		for _, opt := range driver.Options {
			if _, ok := shared[opt.Name]; !ok {
				names = append(names, opt.Name)
			}
			shared[opt.Name] = append(shared[opt.Name], opt)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		opts := shared[name]
		if len(opts) < 2 {
			continue
		}
		multi := &multiValue{defaultValue: opts[0].Default}
		for _, opt := range opts {
			multi.values = append(multi.values, opt.Value)
		}
		if err := multi.Set(multi.String()); err != nil {
			panic(fmt.Sprintf("display: option %s: %v", name, err))
		}
		fs.Var(multi, name, opts[0].Description)
	}

	for _, driver := range InstalledDrivers {
		for _, opt := range driver.Options {
			if len(shared[opt.Name]) > 1 {
				continue
			}
			flagName := driver.Name + "-" + opt.Name
			switch opt.Type {
			case "string":
				fs.StringVar(opt.Value.(*string), flagName, opt.Default.(string), opt.Description)
			case "bool":
				fs.BoolVar(opt.Value.(*bool), flagName, opt.Default.(bool), opt.Description)
			case "float":
				fs.Float64Var(opt.Value.(*float64), flagName, opt.Default.(float64), opt.Description)
			default:
				panic(fmt.Sprintf("display: option %s has unknown type %q", flagName, opt.Type))
			}
		}
	}
}

// multiValue is a flag.Value writing to the option values of several
// drivers at once.
type multiValue struct {
	values       []any
	defaultValue any
}

func (m *multiValue) String() string {
	switch v := m.defaultValue.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return ""
	}
}

func (m *multiValue) Set(value string) error {
	for _, ptr := range m.values {
		switch p := ptr.(type) {
		case *string:
			*p = value
		case *bool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return err
			}
			*p = b
		case *float64:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return err
			}
			*p = f
		default:
			return fmt.Errorf("unknown type: %T", ptr)
		}
	}

	return nil
}

func (m *multiValue) IsBoolFlag() bool {
	_, isBool := m.defaultValue.(bool)
	return isBool
}
