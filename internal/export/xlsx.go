package export

import (
	"fmt"

	"github.com/piwi3910/SpritePack/internal/model"
	"github.com/xuri/excelize/v2"
)

// xlsxSheet is the worksheet holding the coordinate table.
const xlsxSheet = "Sprites"

var xlsxHeader = []interface{}{"Name", "X", "Y", "Width", "Height"}

// ExportXLSX writes the coordinate table as a spreadsheet: one row per sprite
// sorted by name, followed by a blank row and the canvas size.
func ExportXLSX[T any](path string, result model.Result[T]) error {
	if result.Len() == 0 {
		return fmt.Errorf("no sprites to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), xlsxSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(xlsxSheet, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := 2
	for _, p := range result.Sorted() {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := []interface{}{p.Name, p.StartX, p.StartY, p.Width, p.Height}
		if err := f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row for %q: %w", p.Name, err)
		}
		row++
	}

	w, h := result.Extent()
	cell, err := excelize.CoordinatesToCellName(1, row+1)
	if err != nil {
		return err
	}
	canvas := []interface{}{"Canvas", 0, 0, w, h}
	if err := f.SetSheetRow(xlsxSheet, cell, &canvas); err != nil {
		return fmt.Errorf("failed to write canvas row: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save spreadsheet: %w", err)
	}
	return nil
}
