package views

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/thelolagemann/go-8080/pkg/display/event"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// performanceSamples is the number of seconds of history plotted.
const performanceSamples = 60

// Performance plots the effective clock speed over the last minute.
type Performance struct {
	WindowedView
	samples []float64
}

func (p *Performance) Title() string {
	return "Performance"
}

func (p *Performance) Run(window fyne.Window, events <-chan event.Event) error {
	p.Window = window
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	c := vgimg.NewWith(vgimg.UseImage(img))

	raster := canvas.NewRasterFromImage(img)
	raster.ScaleMode = canvas.ImageScalePixels
	raster.SetMinSize(fyne.NewSize(640, 480))

	if err := p.draw(c); err != nil {
		return err
	}

	save := widget.NewButton("Save", func() {
		p.savePNG(img, "performance.png")
	})
	window.SetContent(container.NewBorder(nil, container.NewHBox(save), nil, nil, raster))

	go func() {
		for e := range events {
			switch e.Type {
			case event.Quit:
				return
			case event.Performance:
				cycles, ok := e.Data.(float64)
				if !ok {
					continue
				}
				p.add(cycles / 1e6)
				if err := p.draw(c); err != nil {
					p.error(err)
					return
				}
				raster.Refresh()
			}
		}
	}()

	return nil
}

// add records a sample in MHz, dropping the oldest once full.
func (p *Performance) add(mhz float64) {
	p.samples = append(p.samples, mhz)
	if len(p.samples) > performanceSamples {
		p.samples = p.samples[len(p.samples)-performanceSamples:]
	}
}

func (p *Performance) plot() (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = "Clock speed"
	pl.X.Label.Text = "seconds"
	pl.Y.Label.Text = "MHz"
	pl.Y.Min = 0

	xys := make(plotter.XYs, len(p.samples))
	for i, s := range p.samples {
		xys[i].X = float64(i)
		xys[i].Y = s
	}
	if len(xys) == 0 {
		return pl, nil
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	pl.Add(line)
	return pl, nil
}

func (p *Performance) draw(c *vgimg.Canvas) error {
	pl, err := p.plot()
	if err != nil {
		return err
	}
	dc := draw.New(c)
	dc.SetColor(color.White)
	dc.Fill(dc.Rectangle.Path())
	pl.Draw(dc)
	return nil
}
