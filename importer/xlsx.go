package importer

import (
	"fmt"
	"io"

	"casetrack/domain"

	"github.com/xuri/excelize/v2"
)

// Sheet is the raw cell grid read from an upload: the first row is the
// header row, the rest are data rows. Cells are untyped strings; all
// interpretation happens downstream.
type Sheet struct {
	Headers []string
	Rows    [][]string
}

// ReadWorkbook parses an .xlsx stream and returns the first sheet's grid.
// An empty workbook or a workbook without a header row is a validation error.
func ReadWorkbook(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, domain.NewValidationError("file", "workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, domain.NewValidationError("file", "sheet has no header row")
	}

	return &Sheet{Headers: rows[0], Rows: rows[1:]}, nil
}

// WriteWorkbook renders headers and rows into a new .xlsx stream. Used by
// the export direction of the column mapping.
func WriteWorkbook(w io.Writer, sheetName string, headers []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheetName == "" {
		sheetName = "Sheet1"
	} else {
		f.SetSheetName("Sheet1", sheetName)
	}

	writeRow := func(rowIdx int, cells []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(cells))
		for i, c := range cells {
			values[i] = c
		}
		return f.SetSheetRow(sheetName, cell, &values)
	}

	if err := writeRow(1, headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	for i, row := range rows {
		if err := writeRow(i+2, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
