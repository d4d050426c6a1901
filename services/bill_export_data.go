package services

import (
	"errors"
	"strings"
)

// ErrEmptyBill is returned when a document is requested for a bill with no
// entries.
var ErrEmptyBill = errors.New("bill has no entries")

const (
	displayDateLayout = "02/01/2006"
	fileDateLayout    = "020106"
)

// Letterhead is the organisation block printed at the top of every bill.
type Letterhead struct {
	Name    string
	Address string
}

// BillExportLine is a single numbered row of the bill table.
type BillExportLine struct {
	Serial      int
	Name        string
	CardNo      string
	Designation string
	Amount      int
	Remarks     string
}

// BillExportData holds everything a DocumentRenderer needs.
type BillExportData struct {
	Letterhead Letterhead

	BillType BillType
	Date     string // DD/MM/YYYY
	FileDate string // DDMMYY

	Lines         []BillExportLine
	Total         int
	AmountInWords string
}

// BuildBillExportData finalizes a bill snapshot for rendering.
func BuildBillExportData(s BillSnapshot, letterhead Letterhead) (*BillExportData, error) {
	if len(s.Items) == 0 {
		return nil, ErrEmptyBill
	}

	lines := make([]BillExportLine, 0, len(s.Items))
	total := 0
	for i, item := range s.Items {
		lines = append(lines, BillExportLine{
			Serial:      i + 1,
			Name:        item.Name,
			CardNo:      item.CardNo,
			Designation: item.Designation,
			Amount:      item.Amount,
			Remarks:     item.Remarks,
		})
		total += item.Amount
	}

	return &BillExportData{
		Letterhead:    letterhead,
		BillType:      s.BillType,
		Date:          s.Date.Format(displayDateLayout),
		FileDate:      s.Date.Format(fileDateLayout),
		Lines:         lines,
		Total:         total,
		AmountInWords: AmountToWords(total),
	}, nil
}

// FileName is the download name for this bill with the given extension.
func (d *BillExportData) FileName(ext string) string {
	return strings.ReplaceAll(string(d.BillType)+"_"+d.FileDate, " ", "_") + ext
}
