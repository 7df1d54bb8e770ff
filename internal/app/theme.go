package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// CardScannerTheme provides a custom theme for the application.
type CardScannerTheme struct{}

var _ fyne.Theme = (*CardScannerTheme)(nil)

func (t *CardScannerTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x6A, G: 0x3D, B: 0x9A, A: 0xFF} // Planeswalker purple
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0xD4, G: 0xAF, B: 0x37, A: 0x80} // Gold for the selected row
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *CardScannerTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *CardScannerTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *CardScannerTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameScrollBar:
		return 16 // Wider scrollbar for easier grabbing
	default:
		return theme.DefaultTheme().Size(name)
	}
}
