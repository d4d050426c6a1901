package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelRenderer renders bills as a single-sheet xlsx workbook laid out like
// the printed bill.
type ExcelRenderer struct{}

func (ExcelRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (ExcelRenderer) Extension() string { return ".xlsx" }

func (ExcelRenderer) Render(data *BillExportData) ([]byte, error) {
	if data == nil || len(data.Lines) == 0 {
		return nil, ErrEmptyBill
	}
	return GenerateBillExcel(data)
}

// GenerateBillExcel builds the xlsx workbook for data.
func GenerateBillExcel(data *BillExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := string(data.BillType)
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Bill"
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G"}
	lastCol := columns[len(columns)-1]
	widths := []float64{6, 30, 12, 22, 12, 18, 22}
	for i, c := range columns {
		if err := f.SetColWidth(sheetName, c, c, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", c, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	letterheadStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create letterhead style: %w", err)
	}

	addressStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create address style: %w", err)
	}

	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12, Underline: "single"},
	})
	if err != nil {
		return nil, fmt.Errorf("create label style: %w", err)
	}

	dateStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create date style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6E6"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	bodyStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create body style: %w", err)
	}

	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	wordsStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#FFF9C4"},
			Pattern: 1,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create words style: %w", err)
	}

	signatureStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    []excelize.Border{{Type: "top", Color: "#000000", Style: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("create signature style: %w", err)
	}

	// ── Letterhead (rows 1-2) ───────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge letterhead: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.Letterhead.Name))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", letterheadStyle)

	if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
		return nil, fmt.Errorf("merge address: %w", err)
	}
	f.SetCellValue(sheetName, "A2", sanitizeExcelCell(data.Letterhead.Address))
	f.SetCellStyle(sheetName, "A2", lastCol+"2", addressStyle)

	// ── Row 4: bill label and date ──────────────────────────────────────

	if err := f.MergeCell(sheetName, "A4", "C4"); err != nil {
		return nil, fmt.Errorf("merge label: %w", err)
	}
	f.SetCellValue(sheetName, "A4", string(data.BillType))
	f.SetCellStyle(sheetName, "A4", "C4", labelStyle)

	if err := f.MergeCell(sheetName, "F4", lastCol+"4"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "F4", "Date: "+data.Date)
	f.SetCellStyle(sheetName, "F4", lastCol+"4", dateStyle)

	// ── Row 6: table header ─────────────────────────────────────────────

	headers := []string{"SL", "NAME", "CARD NO", "DESIGNATION", "TAKA", "SIGNATURE", "REMARKS"}
	for i, h := range headers {
		f.SetCellValue(sheetName, fmt.Sprintf("%s6", columns[i]), h)
	}
	f.SetCellStyle(sheetName, "A6", lastCol+"6", headerStyle)

	// ── Body rows (starting row 7) ──────────────────────────────────────

	row := 7
	for _, l := range data.Lines {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, l.Serial)
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(l.Name))
		f.SetCellValue(sheetName, "C"+rowStr, sanitizeExcelCell(l.CardNo))
		f.SetCellValue(sheetName, "D"+rowStr, sanitizeExcelCell(l.Designation))
		f.SetCellValue(sheetName, "E"+rowStr, l.Amount)
		f.SetCellValue(sheetName, "G"+rowStr, sanitizeExcelCell(l.Remarks))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, bodyStyle)
		row++
	}

	// ── Total row ───────────────────────────────────────────────────────

	totalRow := fmt.Sprintf("%d", row)
	f.SetCellValue(sheetName, "D"+totalRow, "TOTAL=")
	f.SetCellValue(sheetName, "E"+totalRow, data.Total)
	f.SetCellStyle(sheetName, "A"+totalRow, lastCol+totalRow, totalStyle)
	row++

	// ── Amount in words ─────────────────────────────────────────────────

	wordsRow := fmt.Sprintf("%d", row)
	if err := f.MergeCell(sheetName, "A"+wordsRow, lastCol+wordsRow); err != nil {
		return nil, fmt.Errorf("merge words: %w", err)
	}
	f.SetCellValue(sheetName, "A"+wordsRow, "In words:  "+data.AmountInWords)
	f.SetCellStyle(sheetName, "A"+wordsRow, lastCol+wordsRow, wordsStyle)

	// ── Signatures, four rows below ─────────────────────────────────────

	sigRow := fmt.Sprintf("%d", row+5)
	sigCells := [][2]string{{"A", "B"}, {"C", "E"}, {"F", "G"}}
	for i, cells := range sigCells {
		if err := f.MergeCell(sheetName, cells[0]+sigRow, cells[1]+sigRow); err != nil {
			return nil, fmt.Errorf("merge signature: %w", err)
		}
		f.SetCellValue(sheetName, cells[0]+sigRow, signatureCaptions[i])
		f.SetCellStyle(sheetName, cells[0]+sigRow, cells[1]+sigRow, signatureStyle)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1,
		}
	}
	return borders
}
