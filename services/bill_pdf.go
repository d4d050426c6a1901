package services

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"

	"billmaker/metrics"
)

// The page uses a 100-column grid so column sizes read as percentages of
// the content width.
const (
	billGridSize       = 100
	billPageMarginMM   = 10.0
	billContentWidthMM = 210 - 2*billPageMarginMM
	billTypeLabelSize  = 12.0
	ptToMM             = 25.4 / 72
)

// Table column widths, in grid columns.
const (
	colSerial      = 6
	colName        = 24
	colCardNo      = 12
	colDesignation = 16
	colAmount      = 12
	colSignature   = 15
	colRemarks     = 15
)

// Signature captions, left to right.
var signatureCaptions = []string{"PREPARED BY", "STORE INCHARGE", "GENAREL MANAGER"}

// billPDFCompression zlib-compresses page streams. Tests turn it off to read
// the drawn text back.
var billPDFCompression = true

// PDFRenderer renders bills as A4 portrait PDFs. A nil Typeface, or one that
// cannot be used, renders with the built-in Helvetica.
type PDFRenderer struct {
	Typeface *Typeface
}

func (PDFRenderer) ContentType() string { return "application/pdf" }
func (PDFRenderer) Extension() string   { return ".pdf" }

// Render returns the PDF bytes for data.
func (r PDFRenderer) Render(data *BillExportData) ([]byte, error) {
	if data == nil || len(data.Lines) == 0 {
		return nil, ErrEmptyBill
	}

	if r.Typeface != nil {
		out, err := generateBillPDF(data, r.Typeface)
		if err == nil {
			return out, nil
		}
		slog.Warn("bill_pdf: custom typeface failed, rendering with default", "family", r.Typeface.Family, "error", err)
		metrics.TypefaceFallbacks.Inc()
	}

	return generateBillPDF(data, nil)
}

func generateBillPDF(data *BillExportData, tf *Typeface) (out []byte, err error) {
	// gofpdf panics on some malformed font files.
	defer func() {
		if rec := recover(); rec != nil {
			out, err = nil, fmt.Errorf("bill_pdf: render panicked: %v", rec)
		}
	}()

	b := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(billPageMarginMM).
		WithTopMargin(billPageMarginMM).
		WithRightMargin(billPageMarginMM).
		WithMaxGridSize(billGridSize).
		WithCompression(billPDFCompression)

	if tf != nil {
		fonts, err := repository.New().
			AddUTF8FontFromBytes(tf.Family, fontstyle.Normal, tf.Data).
			AddUTF8FontFromBytes(tf.Family, fontstyle.Bold, tf.Data).
			Load()
		if err != nil {
			return nil, fmt.Errorf("register typeface: %w", err)
		}
		b = b.WithCustomFonts(fonts).
			WithDefaultFont(&props.Font{Family: tf.Family, Style: fontstyle.Normal, Size: 10})
	}

	m := maroto.New(b.Build())

	if err := m.RegisterFooter(billSignatureRows()...); err != nil {
		return nil, fmt.Errorf("register signature footer: %w", err)
	}

	addBillLetterhead(m, data)
	addBillTitle(m, data)
	addBillTable(m, data)
	addBillAmountInWords(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate bill PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// addBillLetterhead adds the centered organisation name and address.
func addBillLetterhead(m core.Maroto, data *BillExportData) {
	m.AddRows(
		row.New(9).Add(
			col.New(billGridSize).Add(
				text.New(data.Letterhead.Name, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
		row.New(6).Add(
			col.New(billGridSize).Add(
				text.New(data.Letterhead.Address, props.Text{
					Size:  10,
					Align: align.Center,
				}),
			),
		),
	)

	m.AddRows(row.New(5))
}

// addBillTitle adds the bill type label with its underline and the date on
// the right.
func addBillTitle(m core.Maroto, data *BillExportData) {
	label := string(data.BillType)
	labelCols := labelGridColumns(label, billTypeLabelSize)

	m.AddRows(
		row.New(7).Add(
			col.New(labelCols).Add(
				text.New(label, props.Text{
					Size:  billTypeLabelSize,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(billGridSize-labelCols).Add(
				text.New("Date: "+data.Date, props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			),
		),
		row.New(1).Add(
			line.NewCol(labelCols, props.Line{Thickness: 0.4, SizePercent: 100}),
			col.New(billGridSize-labelCols),
		),
	)

	m.AddRows(row.New(4))
}

// addBillTable adds the header, one row per entry and the TOTAL= footer row.
func addBillTable(m core.Maroto, data *BillExportData) {
	cell := &props.Cell{
		BorderType:      border.Full,
		BorderThickness: 0.2,
		BorderColor:     &props.Color{Red: 0, Green: 0, Blue: 0},
	}
	headerCell := &props.Cell{
		BackgroundColor: &props.Color{Red: 230, Green: 230, Blue: 230},
		BorderType:      border.Full,
		BorderThickness: 0.2,
		BorderColor:     &props.Color{Red: 0, Green: 0, Blue: 0},
	}

	headerText := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Center, Top: 2}
	bodyText := props.Text{Size: 9, Align: align.Center, Top: 2}
	bodyTextLeft := props.Text{Size: 9, Align: align.Left, Top: 2, Left: 1.5}
	totalText := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Center, Top: 2}

	m.AddRows(
		row.New(8).Add(
			col.New(colSerial).Add(text.New("SL", headerText)).WithStyle(headerCell),
			col.New(colName).Add(text.New("NAME", headerText)).WithStyle(headerCell),
			col.New(colCardNo).Add(text.New("CARD NO", headerText)).WithStyle(headerCell),
			col.New(colDesignation).Add(text.New("DESIGNATION", headerText)).WithStyle(headerCell),
			col.New(colAmount).Add(text.New("TAKA", headerText)).WithStyle(headerCell),
			col.New(colSignature).Add(text.New("SIGNATURE", headerText)).WithStyle(headerCell),
			col.New(colRemarks).Add(text.New("REMARKS", headerText)).WithStyle(headerCell),
		),
	)

	for _, l := range data.Lines {
		m.AddRows(
			row.New(8).Add(
				col.New(colSerial).Add(text.New(strconv.Itoa(l.Serial), bodyText)).WithStyle(cell),
				col.New(colName).Add(text.New(l.Name, bodyTextLeft)).WithStyle(cell),
				col.New(colCardNo).Add(text.New(l.CardNo, bodyText)).WithStyle(cell),
				col.New(colDesignation).Add(text.New(l.Designation, bodyText)).WithStyle(cell),
				col.New(colAmount).Add(text.New(strconv.Itoa(l.Amount), bodyText)).WithStyle(cell),
				col.New(colSignature).WithStyle(cell),
				col.New(colRemarks).Add(text.New(l.Remarks, bodyTextLeft)).WithStyle(cell),
			),
		)
	}

	m.AddRows(
		row.New(8).Add(
			col.New(colSerial).WithStyle(cell),
			col.New(colName).WithStyle(cell),
			col.New(colCardNo).WithStyle(cell),
			col.New(colDesignation).Add(text.New("TOTAL=", totalText)).WithStyle(cell),
			col.New(colAmount).Add(text.New(strconv.Itoa(data.Total), totalText)).WithStyle(cell),
			col.New(colSignature).WithStyle(cell),
			col.New(colRemarks).WithStyle(cell),
		),
	)
}

// addBillAmountInWords adds the highlighted, bordered amount-in-words box.
func addBillAmountInWords(m core.Maroto, data *BillExportData) {
	box := &props.Cell{
		BackgroundColor: &props.Color{Red: 255, Green: 249, Blue: 196},
		BorderType:      border.Full,
		BorderThickness: 0.3,
		BorderColor:     &props.Color{Red: 0, Green: 0, Blue: 0},
	}

	m.AddRows(row.New(2))
	m.AddRows(
		row.New(9).Add(
			col.New(billGridSize).Add(
				text.New("In words:  "+data.AmountInWords, props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Left,
					Top:   2.5,
					Left:  2,
				}),
			).WithStyle(box),
		),
	)
}

// billSignatureRows builds the three signature blocks placed at the bottom
// of the page.
func billSignatureRows() []core.Row {
	widths := []int{33, 34, 33}

	lines := make([]core.Col, len(widths))
	captions := make([]core.Col, len(widths))
	for i, w := range widths {
		lines[i] = line.NewCol(w, props.Line{Thickness: 0.3, SizePercent: 70, OffsetPercent: 100})
		captions[i] = col.New(w).Add(text.New(signatureCaptions[i], props.Text{
			Size:  9,
			Style: fontstyle.Bold,
			Align: align.Center,
			Top:   1,
		}))
	}

	return []core.Row{
		row.New(6).Add(lines...),
		row.New(7).Add(captions...),
		row.New(8),
	}
}

// labelGridColumns returns how many grid columns the rendered label spans,
// so its underline matches the text width.
func labelGridColumns(label string, size float64) int {
	width := textWidthMM(label, size)
	cols := int(math.Ceil(width / billContentWidthMM * billGridSize))
	if cols < 1 {
		cols = 1
	}
	if maxCols := billGridSize - 20; cols > maxCols {
		cols = maxCols
	}
	return cols
}

// textWidthMM measures s set in Helvetica-Bold at size points.
func textWidthMM(s string, size float64) float64 {
	units := 0
	for _, r := range s {
		w, ok := helveticaBoldWidths[r]
		if !ok {
			w = 556
		}
		units += w
	}
	return float64(units) * size / 1000 * ptToMM
}

// helveticaBoldWidths holds glyph advance widths per 1000 em.
var helveticaBoldWidths = map[rune]int{
	' ': 278, '/': 278, '-': 333, '.': 278, '_': 556,
	'A': 722, 'B': 722, 'C': 722, 'D': 722, 'E': 667, 'F': 611, 'G': 778,
	'H': 722, 'I': 278, 'J': 556, 'K': 722, 'L': 611, 'M': 833, 'N': 722,
	'O': 778, 'P': 667, 'Q': 778, 'R': 722, 'S': 667, 'T': 611, 'U': 722,
	'V': 667, 'W': 944, 'X': 667, 'Y': 667, 'Z': 611,
}
