package app

import (
	"github.com/Samtronic789/Card-Scanner-MTG/internal/export"
)

// ExportCSV writes the record store to the configured output path. The
// write is staged and renamed into place, so failure leaves no partial
// file behind.
func (s *State) ExportCSV() error {
	path := s.OutputPath()
	if path == "" {
		return ErrNoOutputPath
	}

	records := s.Records.Snapshot()
	if err := export.WriteCSV(path, records); err != nil {
		s.Logf("Export error: %v", err)
		return err
	}

	s.Logf("Exported %d cards to %s", len(records), path)
	s.Emit(EventExported, path)
	return nil
}

// ExportXLSX writes the record store to an Excel workbook at path.
func (s *State) ExportXLSX(path string) error {
	records := s.Records.Snapshot()
	if err := export.WriteXLSX(path, records); err != nil {
		s.Logf("Export error: %v", err)
		return err
	}

	s.Logf("Exported %d cards to %s", len(records), path)
	s.Emit(EventExported, path)
	return nil
}
