package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"rentadmin/internal/view"

	"github.com/xuri/excelize/v2"
)

// FileName builds a download name like properties_export_2026-09-01.ext.
func FileName(tableKey, ext string) string {
	return fmt.Sprintf("%s_export_%s.%s", tableKey, time.Now().Format("2006-01-02"), ext)
}

// csvField makes a cell safe for a quoted CSV field. Line breaks are
// stripped, commas become semicolons and embedded quotes are doubled.
func csvField(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, ",", ";")
	s = strings.ReplaceAll(s, `"`, `""`)
	return `"` + s + `"`
}

// WriteCSV writes the header row and every visible row, every field
// quoted, CRLF terminated. Row actions are not data and are left out.
func WriteCSV(w io.Writer, t *view.Table) error {
	if err := writeCSVLine(w, t.Columns); err != nil {
		return err
	}
	for _, row := range t.VisibleRows() {
		fields := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			fields[i] = c.Text
		}
		if err := writeCSVLine(w, fields); err != nil {
			return err
		}
	}
	return nil
}

func writeCSVLine(w io.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = csvField(f)
	}
	_, err := io.WriteString(w, strings.Join(quoted, ",")+"\r\n")
	return err
}

// WriteExcel writes the visible rows as a single-sheet workbook.
func WriteExcel(w io.Writer, t *view.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Title
	if sheet == "" {
		sheet = "Export"
	}
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, col := range t.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, col)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for r, row := range t.VisibleRows() {
		for c, cell := range row.Cells {
			name, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(sheet, name, cell.Text)
		}
	}

	for i := range t.Columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheet, col, col, 20)
	}

	_ = f.DeleteSheet("Sheet1")

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("error writing workbook: %v", err)
	}
	return nil
}
