package reportapp

import (
	"fmt"
	"net/http"

	"github.com/wachdienst/dienstplan/business/domain/reportbus"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Dienstplan"

// writeXLSX renders the table as a workbook straight onto the response
// writer.
func writeXLSX(w http.ResponseWriter, table reportbus.Table, filename string) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	f.SetCellValue(sheetName, "A1", table.Title)

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return fmt.Errorf("title style: %w", err)
	}
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	const headerRow = 3

	for col, header := range table.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, headerRow)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, row := range table.Rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, headerRow+1+rowIdx)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			f.SetCellValue(sheetName, cell, value)
		}
	}

	if len(table.Headers) > 0 {
		first, _ := excelize.ColumnNumberToName(1)
		last, _ := excelize.ColumnNumberToName(len(table.Headers))
		f.SetColWidth(sheetName, first, last, 14)
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	return nil
}
