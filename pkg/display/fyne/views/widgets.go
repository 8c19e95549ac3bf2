package views

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/thelolagemann/go-8080/pkg/display/fyne/themes"
)

func bold(s string) *widget.Label { return widget.NewLabelWithStyle(s, 0, fyne.TextStyle{Bold: true}) }

// mono returns monospaced text in c, used for every register and
// memory value.
func mono(s string, c color.Color) *canvas.Text {
	t := canvas.NewText(s, c)
	t.TextStyle.Monospace = true

	return t
}

// newBadge draws content over a background rectangle.
func newBadge(backgroundColor color.Color, content fyne.CanvasObject) fyne.CanvasObject {
	bgRect := canvas.NewRectangle(backgroundColor)
	bgRect.Resize(content.MinSize())

	return container.NewMax(bgRect, content)
}

// newCard groups content under a titled header.
func newCard(title string, content fyne.CanvasObject) fyne.CanvasObject {
	return newBadge(themeColor(themes.ColorNameBackgroundOnBackground), container.NewVBox(
		newBadge(themeColor(theme.ColorNameInputBackground), container.NewPadded(mono(title, themeColor(theme.ColorNameForeground)))),
		content))
}

// staticCheckbox is a checkbox that displays a value without
// letting the user change it.
type staticCheckbox struct {
	widget.Check
}

func newStaticCheckbox(label string, checked bool) *staticCheckbox {
	cb := &staticCheckbox{}
	cb.Text = label
	cb.Checked = checked
	cb.ExtendBaseWidget(cb)
	return cb
}

func (c *staticCheckbox) CreateRenderer() fyne.WidgetRenderer { return c.Check.CreateRenderer() }
func (c *staticCheckbox) FocusGained()                        {}
func (c *staticCheckbox) MouseIn(_ *desktop.MouseEvent)       {}
func (c *staticCheckbox) MouseOut()                           {}
func (c *staticCheckbox) MouseMoved(_ *desktop.MouseEvent)    {}
func (c *staticCheckbox) Tapped(_ *fyne.PointEvent)           {}

// tappable wraps obj to run a handler when tapped. The CPU view uses
// it to copy register values.
type tappable struct {
	obj fyne.CanvasObject
	widget.BaseWidget
	tapHandler func()
}

func newWrappedTappable(onTap func(), obj fyne.CanvasObject) *tappable {
	if onTap == nil {
		onTap = func() {}
	}
	w := &tappable{obj: obj, tapHandler: onTap}
	w.ExtendBaseWidget(w)
	return w
}

func (t *tappable) CreateRenderer() fyne.WidgetRenderer { return widget.NewSimpleRenderer(t.obj) }
func (t *tappable) Cursor() desktop.Cursor              { return desktop.PointerCursor }
func (t *tappable) Tapped(*fyne.PointEvent)             { t.tapHandler() }
func (t *tappable) TappedSecondary(*fyne.PointEvent)    {}

func themeColor(name fyne.ThemeColorName) color.Color {
	settings := fyne.CurrentApp().Settings()
	return settings.Theme().Color(name, settings.ThemeVariant())
}
