package fyne

import "fyne.io/fyne/v2"

// MenuOption is used to customize the behaviour and properties of a [fyne.MenuItem]
type MenuOption func(*fyne.MenuItem)

// Checked marks the [fyne.MenuItem] with b, flipping the mark and
// calling onChange whenever the item is clicked/tapped.
func Checked(b bool, onChange func()) MenuOption {
	return func(item *fyne.MenuItem) {
		tempFn := item.Action
		item.Action = func() {
			tempFn()
			item.Checked = !item.Checked
			onChange()
		}
		item.Checked = b
	}
}

// Gated disables the [fyne.MenuItem] while disabled is true. The menu
// is rebuilt whenever the condition changes.
func Gated(disabled bool) MenuOption {
	return func(item *fyne.MenuItem) {
		item.Disabled = disabled
	}
}

// NewCustomizedMenuItem creates a [fyne.MenuItem] with the provided label and fn, and applies
// all of the MenuOption(s) to it.
func NewCustomizedMenuItem(label string, fn func(), opts ...MenuOption) *fyne.MenuItem {
	m := fyne.NewMenuItem(label, fn)
	for _, o := range opts {
		o(m)
	}
	return m
}
