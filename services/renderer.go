package services

// DocumentRenderer turns finalized bill data into a downloadable artifact.
// Layout libraries stay behind this interface.
type DocumentRenderer interface {
	Render(data *BillExportData) ([]byte, error)
	ContentType() string
	Extension() string
}

var (
	_ DocumentRenderer = PDFRenderer{}
	_ DocumentRenderer = ExcelRenderer{}
)
