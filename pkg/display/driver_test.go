package display

import (
	"flag"
	"testing"

	"github.com/thelolagemann/go-8080/pkg/display/event"
)

type nopDriver struct{}

func (nopDriver) Initialize(Emulator)            {}
func (nopDriver) Start(<-chan event.Event) error { return nil }
func (nopDriver) Stop() error                    { return nil }

// withDrivers replaces the installed drivers for the duration of t.
func withDrivers(t *testing.T) {
	t.Helper()
	saved := InstalledDrivers
	InstalledDrivers = nil
	t.Cleanup(func() { InstalledDrivers = saved })
}

func TestGetDriver(t *testing.T) {
	withDrivers(t)
	a, b := &nopDriver{}, &nopDriver{}
	Install("b", b, nil)
	Install("a", a, nil)

	tests := []struct {
		name string
		want Driver
	}{
		{"a", a},
		{"b", b},
		{"auto", b},
		{"c", nil},
	}
	for _, tt := range tests {
		if got := GetDriver(tt.name); got != tt.want {
			t.Errorf("GetDriver(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
	if names := Names(); len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("expected sorted names, got %v", names)
	}
}

func TestRegisterFlags(t *testing.T) {
	withDrivers(t)

	var (
		webAddr     string
		webCompress bool
		webLevel    float64
		fyneViews   string
		webViews    string
	)
	Install("web", nopDriver{}, []DriverOption{
		{Name: "addr", Default: ":8090", Value: &webAddr, Type: "string"},
		{Name: "compression", Default: true, Value: &webCompress, Type: "bool"},
		{Name: "level", Default: 9.0, Value: &webLevel, Type: "float"},
		{Name: "views", Default: "cpu", Value: &webViews, Type: "string"},
	})
	Install("fyne", nopDriver{}, []DriverOption{
		{Name: "views", Default: "cpu", Value: &fyneViews, Type: "string"},
	})

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	RegisterFlags(fs)

	if webAddr != ":8090" || !webCompress || webLevel != 9 {
		t.Fatalf("expected defaults, got %q %t %g", webAddr, webCompress, webLevel)
	}
	if fyneViews != "cpu" || webViews != "cpu" {
		t.Fatalf("expected shared default, got %q %q", fyneViews, webViews)
	}

	err := fs.Parse([]string{"-web-addr", ":9000", "-web-compression=false", "-web-level", "3", "-views", "memory"})
	if err != nil {
		t.Fatal(err)
	}
	if webAddr != ":9000" {
		t.Errorf("expected addr :9000, got %q", webAddr)
	}
	if webCompress {
		t.Error("expected compression to be disabled")
	}
	if webLevel != 3 {
		t.Errorf("expected level 3, got %g", webLevel)
	}
	if fyneViews != "memory" || webViews != "memory" {
		t.Errorf("expected shared option to set both drivers, got %q %q", fyneViews, webViews)
	}
	if fs.Lookup("web-views") != nil {
		t.Error("shared option should not be prefixed")
	}
}
