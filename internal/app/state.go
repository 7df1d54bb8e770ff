// Package app provides application state, events, and the review
// operations the GUI binds to.
package app

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Samtronic789/Card-Scanner-MTG/internal/card"
	"github.com/Samtronic789/Card-Scanner-MTG/internal/extract"
	"github.com/Samtronic789/Card-Scanner-MTG/internal/ocr"
	"github.com/Samtronic789/Card-Scanner-MTG/internal/scan"
)

// ErrNoOutputPath is returned when exporting before an output path is set.
var ErrNoOutputPath = errors.New("no output path set")

// EventType identifies different application events.
type EventType int

const (
	EventRecordsReset EventType = iota
	EventRecordAdded
	EventRecordChanged
	EventSelectionChanged
	EventScanStarted
	EventScanProgress
	EventScanFinished
	EventLog
	EventExported
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the session: input/output paths, the record store, the OCR
// capability, and the single processing pass. The record store is mutated
// only from the main interaction loop and the one scan worker.
type State struct {
	mu sync.RWMutex

	// Records is the ordered table under review.
	Records *card.Store

	inputFolder string
	outputPath  string
	selected    int

	recognizer ocr.Recognizer
	runner     *scan.Runner
	scanning   bool

	listeners map[EventType][]EventListener
}

// NewState creates the application state. recognizer may be nil when the
// OCR capability is absent; processing then yields pending records for
// manual entry.
func NewState(recognizer ocr.Recognizer) *State {
	return &State{
		Records:    card.NewStore(),
		recognizer: recognizer,
		selected:   -1,
		listeners:  make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Logf logs through the standard logger and mirrors the line, with a
// timestamp, to the in-UI processing log.
func (s *State) Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	log.Print(msg)
	s.Emit(EventLog, fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), msg))
}

// OCRAvailable reports whether the OCR capability was found at startup.
func (s *State) OCRAvailable() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recognizer != nil
}

// Scanning reports whether a processing pass is active.
func (s *State) Scanning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scanning
}

// SetInputFolder selects the folder to scan. The folder must exist and be
// a directory.
func (s *State) SetInputFolder(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("input folder: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("input folder: %s is not a directory", path)
	}

	s.mu.Lock()
	s.inputFolder = path
	s.mu.Unlock()
	return nil
}

// InputFolder returns the selected input folder, or "".
func (s *State) InputFolder() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inputFolder
}

// SetOutputPath sets the CSV destination.
func (s *State) SetOutputPath(path string) {
	s.mu.Lock()
	s.outputPath = path
	s.mu.Unlock()
}

// OutputPath returns the CSV destination, or "".
func (s *State) OutputPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.outputPath
}

// ProcessAll resets the record store and processes every supported image
// in the input folder on a single background worker. At most one pass is
// active at a time; starting another returns scan.ErrActive.
func (s *State) ProcessAll() error {
	s.mu.Lock()
	if s.scanning {
		s.mu.Unlock()
		return scan.ErrActive
	}
	folder := s.inputFolder
	s.mu.Unlock()

	if folder == "" {
		return errors.New("no input folder selected")
	}
	if _, err := os.Stat(folder); err != nil {
		return fmt.Errorf("input folder: %w", err)
	}

	runner := &scan.Runner{
		Recognizer: s.recognizer,
		OnRecord: func(rec card.Record) {
			idx := s.Records.Append(rec)
			s.Emit(EventRecordAdded, idx)
		},
		OnProgress: func(p scan.Progress) {
			s.Emit(EventScanProgress, p)
		},
	}

	s.mu.Lock()
	s.scanning = true
	s.runner = runner
	s.selected = -1
	s.mu.Unlock()

	s.Records.Reset()
	s.Emit(EventRecordsReset, nil)
	s.Emit(EventScanStarted, nil)
	s.Logf("Processing folder %s", folder)

	go func() {
		sum, err := runner.Run(folder)

		s.mu.Lock()
		s.scanning = false
		s.runner = nil
		s.mu.Unlock()

		if err != nil {
			s.Logf("Processing aborted: %v", err)
		} else if sum.Stopped {
			s.Logf("Processing stopped by user after %d images", sum.Total)
		} else {
			s.Logf("Processing complete: %d images (%d recognized, %d failed, %d pending)",
				sum.Total, sum.Succeeded, sum.Failed, sum.Pending)
			if sum.ConfMean > 0 {
				s.Logf("OCR confidence: mean %.1f, stddev %.1f", sum.ConfMean, sum.ConfStddev)
			}
		}
		s.Emit(EventScanFinished, sum)
	}()

	return nil
}

// StopProcessing requests cancellation of the active pass. Takes effect
// at the next image boundary; a no-op when nothing is running.
func (s *State) StopProcessing() {
	s.mu.RLock()
	runner := s.runner
	s.mu.RUnlock()
	if runner != nil {
		runner.Stop()
	}
}

// ReprocessRecord re-runs OCR and extraction for a single record, keeping
// its position in the table. Used to retry after the user fixes the
// underlying file.
func (s *State) ReprocessRecord(index int) error {
	s.mu.Lock()
	if s.scanning {
		s.mu.Unlock()
		return scan.ErrActive
	}
	s.scanning = true
	s.mu.Unlock()

	rec, err := s.Records.At(index)
	if err != nil {
		s.mu.Lock()
		s.scanning = false
		s.mu.Unlock()
		return err
	}

	go func() {
		runner := &scan.Runner{Recognizer: s.recognizer}
		newRec, _ := runner.ProcessImage(rec.Path)
		if err := s.Records.Replace(index, newRec); err == nil {
			s.Logf("Reprocessed %s", newRec.Filename)
			s.Emit(EventRecordChanged, index)
		}

		s.mu.Lock()
		s.scanning = false
		s.mu.Unlock()
	}()
	return nil
}

// SelectRecord marks the record at index as the current one and notifies
// listeners. Always succeeds for a valid index.
func (s *State) SelectRecord(index int) error {
	if _, err := s.Records.At(index); err != nil {
		return err
	}
	s.mu.Lock()
	s.selected = index
	s.mu.Unlock()
	s.Emit(EventSelectionChanged, index)
	return nil
}

// Selected returns the current record index, or -1 when none is selected.
func (s *State) Selected() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// UpdateField overwrites one field of the record at index and marks it
// manually edited. Collector numbers and set codes are normalized with
// the same rules as extraction, so edits come out as clean as OCR hits.
func (s *State) UpdateField(index int, field card.Field, value string) error {
	switch field {
	case card.FieldCollectorNumber:
		value = extract.NormalizeCollectorNumber(value)
	case card.FieldSetCode:
		value = extract.NormalizeSetCode(value)
	default:
		value = strings.TrimSpace(value)
	}

	if err := s.Records.UpdateField(index, field, value); err != nil {
		return err
	}
	s.Emit(EventRecordChanged, index)
	return nil
}
