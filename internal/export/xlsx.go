package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/Samtronic789/Card-Scanner-MTG/internal/card"
)

const sheetName = "Cards"

// WriteXLSX writes the records to an Excel workbook with the same columns
// and ordering as the CSV export.
func WriteXLSX(path string, records []card.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	for i, h := range Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for rowIdx, r := range records {
		for colIdx, v := range row(r) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("failed to write row %d: %w", rowIdx+1, err)
			}
		}
	}

	// Widen the text columns
	_ = f.SetColWidth(sheetName, "A", "A", 28) // filename
	_ = f.SetColWidth(sheetName, "B", "B", 36) // title
	_ = f.SetColWidth(sheetName, "C", "D", 14) // collector number, set code
	_ = f.SetColWidth(sheetName, "E", "E", 16) // status

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".card-export-*.xlsx")
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(buf.Bytes())
	if closeErr := tmp.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write XLSX: %w", writeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move export into place: %w", err)
	}
	return nil
}
