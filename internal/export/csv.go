// Package export serializes the record store to CSV and XLSX files.
//
// Both writers stage into a temporary file in the destination directory
// and rename into place, so a failed export never leaves a partial file.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Samtronic789/Card-Scanner-MTG/internal/card"
)

// Columns is the fixed CSV column order.
var Columns = []string{"filename", "title", "collectorNumber", "setCode", "status"}

// WriteCSV writes one header row and one row per record, in store order,
// UTF-8 encoded with standard CSV quoting. Fails only on I/O errors,
// never on record content.
func WriteCSV(path string, records []card.Record) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".card-export-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	tmpPath := tmp.Name()

	w := csv.NewWriter(tmp)
	writeErr := w.Write(Columns)
	if writeErr == nil {
		for _, r := range records {
			if writeErr = w.Write(row(r)); writeErr != nil {
				break
			}
		}
	}
	if writeErr == nil {
		w.Flush()
		writeErr = w.Error()
	}

	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write CSV: %w", writeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move export into place: %w", err)
	}
	return nil
}

func row(r card.Record) []string {
	return []string{r.Filename, r.Title, r.CollectorNumber, r.SetCode, r.Status.String()}
}
