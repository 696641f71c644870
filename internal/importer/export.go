package importer

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/TobiSchelling/PoCRanker/internal/idea"
)

const exportSheet = "Sheet1"

var exportHeaders = []string{"id", "title", "description", "impact", "effort", "risk", "dataReadiness"}

// WriteXLSX writes ideas to a workbook that ReadFile can load again.
func WriteXLSX(path string, ideas []idea.Idea) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return err
		}
	}

	for r, it := range ideas {
		values := []any{it.ID, it.Title, it.Description, it.Impact, it.Effort, it.Risk, it.DataReadiness}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
