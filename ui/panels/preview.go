// Package panels provides the preview and review panes of the main window.
package panels

import (
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	img "github.com/Samtronic789/Card-Scanner-MTG/internal/image"
)

const (
	previewMaxWidth  = 350
	previewMaxHeight = 500
)

// PreviewPanel shows the card image for the currently selected record.
type PreviewPanel struct {
	image     *canvas.Image
	caption   *widget.Label
	container *fyne.Container
}

// NewPreviewPanel creates an empty preview pane.
func NewPreviewPanel() *PreviewPanel {
	p := &PreviewPanel{
		image:   canvas.NewImageFromImage(nil),
		caption: widget.NewLabel("No card selected"),
	}
	p.image.FillMode = canvas.ImageFillContain
	p.image.SetMinSize(fyne.NewSize(previewMaxWidth, previewMaxHeight))
	p.caption.Alignment = fyne.TextAlignCenter
	p.caption.TextStyle = fyne.TextStyle{Italic: true}

	p.container = container.NewBorder(
		nil,       // top
		p.caption, // bottom
		nil,       // left
		nil,       // right
		p.image,   // center
	)
	return p
}

// Container returns the panel's root container.
func (p *PreviewPanel) Container() fyne.CanvasObject {
	return p.container
}

// SetImagePath loads and shows the image at path, scaled down to the
// preview size. A load failure clears the pane and shows the error.
func (p *PreviewPanel) SetImagePath(path string) {
	src, err := img.Load(path)
	if err != nil {
		p.image.Image = nil
		p.image.Refresh()
		p.caption.SetText("Cannot load " + filepath.Base(path))
		return
	}

	p.image.Image = img.Thumbnail(src, previewMaxWidth, previewMaxHeight)
	p.image.Refresh()
	p.caption.SetText(filepath.Base(path))
}

// Clear empties the preview pane.
func (p *PreviewPanel) Clear() {
	p.image.Image = nil
	p.image.Refresh()
	p.caption.SetText("No card selected")
}
