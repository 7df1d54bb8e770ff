// Package card defines the card record model and the ordered record store.
package card

// Status tracks how a record's fields were produced.
type Status int

const (
	// StatusPending means the record was enumerated but OCR has not populated it.
	StatusPending Status = iota
	// StatusOCRSucceeded means OCR ran and field extraction was attempted.
	StatusOCRSucceeded
	// StatusOCRFailed means the image could not be read or OCR returned an error.
	StatusOCRFailed
	// StatusManuallyEdited means a reviewer overwrote at least one field.
	StatusManuallyEdited
)

func (s Status) String() string {
	switch s {
	case StatusOCRSucceeded:
		return "ocrSucceeded"
	case StatusOCRFailed:
		return "ocrFailed"
	case StatusManuallyEdited:
		return "manuallyEdited"
	default:
		return "pending"
	}
}

// Field names an editable record field.
type Field string

const (
	FieldTitle           Field = "title"
	FieldCollectorNumber Field = "collectorNumber"
	FieldSetCode         Field = "setCode"
)

// Record holds the extracted data for one scanned card image.
type Record struct {
	Filename        string // base name, unique within a processing run
	Path            string // absolute path of the source image
	Title           string
	CollectorNumber string
	SetCode         string
	Status          Status

	// RawText keeps the recognized lines for the raw-text pane.
	// Not exported to CSV.
	RawText []string
}
