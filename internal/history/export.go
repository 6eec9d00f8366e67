package history

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	exportSheet      = "History"
	exportDateLayout = "2006-01-02 15:04"
	currencyFormat   = "$#,##0.00"
)

var exportHeader = []interface{}{
	"Date", "Title", "Gross Salary", "Tax", "Retirement", "Insurance",
	"Total Deductions", "Net Salary", "Tax %", "Retirement %", "Insurance %",
}

// ExportContentType is the media type of the workbook written by Export.
const ExportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func writeWorkbook(w io.Writer, entries []Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	format := currencyFormat
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return fmt.Errorf("money style: %w", err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetRowStyle(exportSheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, e := range entries {
		row := i + 2
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}

		c := e.Calculation
		values := []interface{}{
			e.CreatedAt.Format(exportDateLayout),
			e.Title(),
			c.GrossSalary.InexactFloat64(),
			c.TaxAmount.InexactFloat64(),
			c.RetirementAmount.InexactFloat64(),
			c.InsuranceAmount.InexactFloat64(),
			c.TotalDeductions.InexactFloat64(),
			c.NetSalary.InexactFloat64(),
			e.DeductionRates.Tax.InexactFloat64(),
			e.DeductionRates.Retirement.InexactFloat64(),
			e.DeductionRates.Insurance.InexactFloat64(),
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
	}

	if len(entries) > 0 {
		last := len(entries) + 1
		if err := f.SetCellStyle(exportSheet, "C2", fmt.Sprintf("H%d", last), moneyStyle); err != nil {
			return fmt.Errorf("style amounts: %w", err)
		}
	}
	if err := f.SetColWidth(exportSheet, "A", "B", 22); err != nil {
		return err
	}
	if err := f.SetColWidth(exportSheet, "C", "K", 16); err != nil {
		return err
	}

	return f.Write(w)
}
