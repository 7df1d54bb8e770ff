// Package ocr provides text recognition for card images via Tesseract.
package ocr

import "github.com/Samtronic789/Card-Scanner-MTG/pkg/geometry"

// Fragment is one piece of recognized text with its position and confidence.
type Fragment struct {
	Text       string
	Bounds     geometry.RectInt
	Confidence float64
}

// Recognizer is the OCR capability. It is optional: when the engine cannot
// be initialized the application runs without it and records stay pending
// for manual entry. Everything outside this package depends only on this
// interface.
type Recognizer interface {
	// Recognize runs OCR on the image at path and returns the recognized
	// fragments in the engine's reading order.
	Recognize(path string) ([]Fragment, error)
	// Close releases engine resources.
	Close() error
}
