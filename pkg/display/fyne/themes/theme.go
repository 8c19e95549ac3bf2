// Package themes holds the colour scheme of the debugger, a dark
// background with phosphor green accents.
package themes

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

type Default struct{}

var (
	phosphor      = color.NRGBA{0x33, 0xff, 0x66, 0xff}
	phosphorDim   = color.NRGBA{0x1f, 0x99, 0x3d, 0xff}
	phosphorPale  = color.NRGBA{0x99, 0xff, 0xb3, 0xff}
	panel         = color.NRGBA{0x10, 0x14, 0x12, 0xff}
	panelRaised   = color.NRGBA{0x1c, 0x24, 0x1f, 0xff}
	panelControl  = color.NRGBA{0x2a, 0x35, 0x2e, 0xff}
	panelHover    = color.NRGBA{0x3a, 0x48, 0x3f, 0xff}
	disabledText  = color.NRGBA{0x6b, 0x7a, 0x70, 0xff}
	disabled      = color.NRGBA{0x23, 0x23, 0x23, 0xff}
	flagSet       = color.NRGBA{0x00, 0xff, 0xff, 0xff}
	flagSetNumber = color.NRGBA{0xff, 0x60, 0xff, 0xff}
)

const (
	ColorNameSecondary              fyne.ThemeColorName = "secondary"
	ColorNameDisabledText           fyne.ThemeColorName = "disabled-text"
	ColorNameBool                   fyne.ThemeColorName = "bool"
	ColorNameBoolNumber             fyne.ThemeColorName = "bool-number"
	ColorNameBackgroundOnBackground fyne.ThemeColorName = "background-on-background"
)

var colorMap = map[fyne.ThemeColorName]color.Color{
	ColorNameBackgroundOnBackground: panelRaised,
	ColorNameSecondary:              phosphorPale,
	ColorNameDisabledText:           disabledText,
	ColorNameBool:                   flagSet,
	ColorNameBoolNumber:             flagSetNumber,
	theme.ColorNamePrimary:          phosphor,
	theme.ColorNameForeground:       phosphor,
	theme.ColorNamePlaceHolder:      phosphorDim,
	theme.ColorNameBackground:       panel,
	theme.ColorNameMenuBackground:   panelControl,
	theme.ColorNameDisabled:         disabled,
	theme.ColorNameButton:           panelControl,
	theme.ColorNameInputBackground:  panelControl,
	theme.ColorNameFocus:            panelRaised,
	theme.ColorNameHover:            panelHover,
}

func (d Default) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	if c, ok := colorMap[name]; ok {
		return c
	}
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

func (d Default) Font(style fyne.TextStyle) fyne.Resource    { return theme.DefaultTheme().Font(style) }
func (d Default) Icon(name fyne.ThemeIconName) fyne.Resource { return theme.DefaultTheme().Icon(name) }
func (d Default) Size(name fyne.ThemeSizeName) float32       { return theme.DefaultTheme().Size(name) }
