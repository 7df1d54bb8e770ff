// Package scan enumerates card images and runs the single-worker
// processing pass: probe, OCR, extract, record.
package scan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"

	"gonum.org/v1/gonum/stat"

	"github.com/Samtronic789/Card-Scanner-MTG/internal/card"
	"github.com/Samtronic789/Card-Scanner-MTG/internal/extract"
	img "github.com/Samtronic789/Card-Scanner-MTG/internal/image"
	"github.com/Samtronic789/Card-Scanner-MTG/internal/ocr"
)

// ErrActive is returned when a processing pass is already running.
var ErrActive = errors.New("a processing pass is already active")

// Progress reports per-image progress during a pass.
type Progress struct {
	Done  int
	Total int
	File  string
}

// Summary describes a completed pass.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Pending   int
	Stopped   bool

	// Confidence statistics over all recognized fragments in the pass.
	// Zero when OCR was unavailable or nothing was recognized.
	ConfMean   float64
	ConfStddev float64
}

// Enumerate lists the supported image files in dir, in directory-listing
// order. Unsupported files are ignored.
func Enumerate(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input folder: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if img.IsSupportedFormat(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Runner processes a folder of images one at a time. At most one Run may
// be in flight per Runner; the owning State enforces the one-pass rule
// across the application.
type Runner struct {
	// Recognizer may be nil: OCR capability absent. Records are then
	// created pending with empty fields for manual entry.
	Recognizer ocr.Recognizer

	// OnRecord is called after each image with its finished record.
	OnRecord func(card.Record)
	// OnProgress is called after each image.
	OnProgress func(Progress)

	stopped atomic.Bool
}

// Stop requests cancellation. It takes effect at the next image boundary;
// the image currently being processed is finished first.
func (r *Runner) Stop() {
	r.stopped.Store(true)
}

// Run processes every supported image in folder, in enumeration order.
// Per-image failures are recorded on the affected record and never abort
// the pass; only an unreadable folder is an error.
func (r *Runner) Run(folder string) (Summary, error) {
	files, err := Enumerate(folder)
	if err != nil {
		return Summary{}, err
	}

	r.stopped.Store(false)
	sum := Summary{Total: len(files)}
	var confidences []float64

	for i, path := range files {
		if r.stopped.Load() {
			sum.Stopped = true
			sum.Total = i
			break
		}

		rec, confs := r.ProcessImage(path)
		confidences = append(confidences, confs...)

		switch rec.Status {
		case card.StatusOCRSucceeded:
			sum.Succeeded++
		case card.StatusOCRFailed:
			sum.Failed++
		default:
			sum.Pending++
		}

		if r.OnRecord != nil {
			r.OnRecord(rec)
		}
		if r.OnProgress != nil {
			r.OnProgress(Progress{Done: i + 1, Total: len(files), File: filepath.Base(path)})
		}
	}

	if len(confidences) > 0 {
		sum.ConfMean = stat.Mean(confidences, nil)
		sum.ConfStddev = stat.StdDev(confidences, nil)
	}
	return sum, nil
}

// ProcessImage produces the record for a single image along with the
// fragment confidences seen. It never returns an error: failures degrade
// to an ocrFailed record so the batch keeps going.
func (r *Runner) ProcessImage(path string) (card.Record, []float64) {
	rec := card.Record{
		Filename: filepath.Base(path),
		Path:     path,
		Status:   card.StatusPending,
	}

	if r.Recognizer == nil {
		return rec, nil
	}

	_, height, err := img.Probe(path)
	if err != nil {
		rec.Status = card.StatusOCRFailed
		rec.RawText = []string{fmt.Sprintf("image read error: %v", err)}
		return rec, nil
	}

	fragments, err := r.Recognizer.Recognize(path)
	if err != nil {
		rec.Status = card.StatusOCRFailed
		rec.RawText = []string{fmt.Sprintf("OCR error: %v", err)}
		return rec, nil
	}

	fields := extract.FromFragments(fragments, height)
	rec.Title = fields.Title
	rec.CollectorNumber = fields.CollectorNumber
	rec.SetCode = fields.SetCode
	rec.Status = card.StatusOCRSucceeded

	confs := make([]float64, 0, len(fragments))
	for _, fr := range fragments {
		rec.RawText = append(rec.RawText, fr.Text)
		confs = append(confs, fr.Confidence)
	}
	return rec, confs
}
