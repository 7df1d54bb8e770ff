package panels

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/Samtronic789/Card-Scanner-MTG/internal/app"
	"github.com/Samtronic789/Card-Scanner-MTG/internal/card"
)

var columnHeaders = []string{"Filename", "Title", "Collector #", "Set", "Status"}

var columnWidths = []float32{180, 220, 100, 70, 120}

// ReviewPanel shows the record table, the edit form for the selected
// record, the raw OCR text, and the processing log.
type ReviewPanel struct {
	state *app.State

	table *widget.Table

	titleEntry     *widget.Entry
	collectorEntry *widget.Entry
	setEntry       *widget.Entry
	updateBtn      *widget.Button

	rawText *widget.Label
	logText *widget.Label
	logData []string

	container *fyne.Container
}

// NewReviewPanel creates the review pane bound to state.
func NewReviewPanel(state *app.State) *ReviewPanel {
	p := &ReviewPanel{
		state:          state,
		titleEntry:     widget.NewEntry(),
		collectorEntry: widget.NewEntry(),
		setEntry:       widget.NewEntry(),
		rawText:        widget.NewLabel(""),
		logText:        widget.NewLabel(""),
	}

	p.table = widget.NewTable(
		func() (int, int) {
			// Row 0 is the header
			return p.state.Records.Len() + 1, len(columnHeaders)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			if id.Row == 0 {
				label.SetText(columnHeaders[id.Col])
				label.TextStyle = fyne.TextStyle{Bold: true}
				return
			}
			label.TextStyle = fyne.TextStyle{}
			rec, err := p.state.Records.At(id.Row - 1)
			if err != nil {
				label.SetText("")
				return
			}
			label.SetText(cellText(rec, id.Col))
		},
	)
	for col, w := range columnWidths {
		p.table.SetColumnWidth(col, w)
	}
	p.table.OnSelected = func(id widget.TableCellID) {
		if id.Row == 0 {
			p.table.UnselectAll()
			return
		}
		_ = p.state.SelectRecord(id.Row - 1)
	}

	p.updateBtn = widget.NewButton("Update Card", p.onUpdate)
	p.updateBtn.Disable()

	form := widget.NewForm(
		widget.NewFormItem("Title", p.titleEntry),
		widget.NewFormItem("Collector #", p.collectorEntry),
		widget.NewFormItem("Set Code", p.setEntry),
	)

	p.rawText.Wrapping = fyne.TextWrapWord
	p.logText.Wrapping = fyne.TextWrapWord

	editCard := widget.NewCard("Edit Card", "",
		container.NewVBox(form, p.updateBtn))
	rawCard := widget.NewCard("Raw OCR Text", "",
		container.NewVScroll(p.rawText))
	logCard := widget.NewCard("Log", "",
		container.NewVScroll(p.logText))

	detail := container.NewVSplit(
		container.NewVBox(editCard),
		container.NewVSplit(rawCard, logCard),
	)
	detail.SetOffset(0.4)

	split := container.NewVSplit(p.table, detail)
	split.SetOffset(0.55)

	p.container = container.NewStack(split)

	p.bindEvents()
	return p
}

// Container returns the panel's root container.
func (p *ReviewPanel) Container() fyne.CanvasObject {
	return p.container
}

func cellText(rec card.Record, col int) string {
	switch col {
	case 0:
		return rec.Filename
	case 1:
		return rec.Title
	case 2:
		return rec.CollectorNumber
	case 3:
		return rec.SetCode
	case 4:
		return rec.Status.String()
	}
	return ""
}

func (p *ReviewPanel) bindEvents() {
	p.state.On(app.EventRecordsReset, func(interface{}) {
		p.table.UnselectAll()
		p.table.Refresh()
		p.clearDetail()
	})
	p.state.On(app.EventRecordAdded, func(interface{}) {
		p.table.Refresh()
	})
	p.state.On(app.EventRecordChanged, func(data interface{}) {
		p.table.Refresh()
		if idx, ok := data.(int); ok && idx == p.state.Selected() {
			p.showRecord(idx)
		}
	})
	p.state.On(app.EventSelectionChanged, func(data interface{}) {
		if idx, ok := data.(int); ok {
			p.showRecord(idx)
		}
	})
	p.state.On(app.EventLog, func(data interface{}) {
		if line, ok := data.(string); ok {
			p.AppendLog(line)
		}
	})
}

// showRecord fills the edit form and raw-text pane from the record at idx.
func (p *ReviewPanel) showRecord(idx int) {
	rec, err := p.state.Records.At(idx)
	if err != nil {
		p.clearDetail()
		return
	}
	p.titleEntry.SetText(rec.Title)
	p.collectorEntry.SetText(rec.CollectorNumber)
	p.setEntry.SetText(rec.SetCode)
	p.rawText.SetText(strings.Join(rec.RawText, "\n"))
	p.updateBtn.Enable()
}

func (p *ReviewPanel) clearDetail() {
	p.titleEntry.SetText("")
	p.collectorEntry.SetText("")
	p.setEntry.SetText("")
	p.rawText.SetText("")
	p.updateBtn.Disable()
}

// onUpdate writes the form fields back to the selected record. Each field
// goes through the same normalization as extraction.
func (p *ReviewPanel) onUpdate() {
	idx := p.state.Selected()
	if idx < 0 {
		return
	}
	_ = p.state.UpdateField(idx, card.FieldTitle, p.titleEntry.Text)
	_ = p.state.UpdateField(idx, card.FieldCollectorNumber, p.collectorEntry.Text)
	_ = p.state.UpdateField(idx, card.FieldSetCode, p.setEntry.Text)

	// Echo the normalized values back into the form
	p.showRecord(idx)
}

// AppendLog adds a line to the processing log, keeping the last 200 lines.
func (p *ReviewPanel) AppendLog(line string) {
	p.logData = append(p.logData, line)
	if len(p.logData) > 200 {
		p.logData = p.logData[len(p.logData)-200:]
	}
	p.logText.SetText(strings.Join(p.logData, "\n"))
}
