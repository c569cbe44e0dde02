package utils

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"ringback/backend/models"
)

const OptInSheet = "Opt-ins"

var optInHeader = []interface{}{"ID", "Phone Number", "Source IP", "User Agent", "Received At (UTC)"}

var optInWidths = map[string]float64{"B": 18, "D": 48, "E": 24}

// OptInWorkbook renders consent records as a spreadsheet. The caller closes
// the returned file.
func OptInWorkbook(records []models.OptIn) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", OptInSheet); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetSheetRow(OptInSheet, "A1", &optInHeader); err != nil {
		f.Close()
		return nil, err
	}
	for i, r := range records {
		phone := ""
		if r.PhoneNumber != nil {
			phone = *r.PhoneNumber
		}
		row := []interface{}{r.ID, phone, r.SourceIP, r.UserAgent, r.CreatedAt.UTC().Format(time.RFC3339)}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(OptInSheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	for col, width := range optInWidths {
		if err := f.SetColWidth(OptInSheet, col, col, width); err != nil {
			f.Close()
			return nil, fmt.Errorf("set width of column %s: %w", col, err)
		}
	}
	return f, nil
}
