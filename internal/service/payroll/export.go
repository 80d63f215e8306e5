package payroll

import (
	"context"
	"fmt"

	"github.com/madar-hris/hrms-backend-go/internal/domain/payroll"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var exportColumns = []struct {
	title string
	width float64
}{
	{"Code", 12},
	{"Employee", 28},
	{"Base Salary", 16},
	{"Expected Days", 14},
	{"Present Days", 14},
	{"Absent Days", 14},
	{"Daily Rate", 14},
	{"Earned Salary", 16},
	{"Auto Bonus", 14},
	{"Manual Bonus", 14},
	{"Auto Fines", 14},
	{"Manual Deduction", 18},
	{"Net Salary", 16},
	{"Status", 16},
	{"Notes", 30},
}

// ExportMonth implements payroll.PayrollService.
func (s *PayrollServiceImpl) ExportMonth(ctx context.Context, filter payroll.PayrollFilter) (payroll.ExportFile, error) {
	month, err := s.GetMonth(ctx, filter)
	if err != nil {
		return payroll.ExportFile{}, err
	}

	content, err := renderWorkbook(month)
	if err != nil {
		return payroll.ExportFile{}, fmt.Errorf("failed to render payroll workbook: %w", err)
	}

	return payroll.ExportFile{
		Filename:    fmt.Sprintf("payroll-%s.xlsx", month.Month),
		ContentType: xlsxContentType,
		Content:     content,
	}, nil
}

func renderWorkbook(month payroll.MonthResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Payroll " + month.Month
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetCellValue(sheet, cell, col.title); err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, name, name, col.width); err != nil {
			return nil, err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return nil, err
	}

	for r, e := range month.Entries {
		row := []interface{}{
			e.EmployeeCode,
			e.EmployeeName,
			e.BaseSalary.InexactFloat64(),
			e.ExpectedWorkingDays,
			e.PresentDays,
			e.AbsentDays,
			e.DailyRate.InexactFloat64(),
			e.EarnedSalary.InexactFloat64(),
			e.AutoBonus.InexactFloat64(),
			e.ManualBonus.InexactFloat64(),
			e.AutoFines.InexactFloat64(),
			e.ManualDeduction.InexactFloat64(),
			e.NetSalary.InexactFloat64(),
			string(e.Status),
			e.Notes,
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	totalRow := len(month.Entries) + 3
	f.SetCellValue(sheet, fmt.Sprintf("B%d", totalRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("M%d", totalRow), month.Summary.Total.InexactFloat64())
	f.SetCellValue(sheet, fmt.Sprintf("B%d", totalRow+1), "Paid")
	f.SetCellValue(sheet, fmt.Sprintf("M%d", totalRow+1), month.Summary.Paid.InexactFloat64())
	f.SetCellValue(sheet, fmt.Sprintf("B%d", totalRow+2), "Pending")
	f.SetCellValue(sheet, fmt.Sprintf("M%d", totalRow+2), month.Summary.Pending.InexactFloat64())

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
