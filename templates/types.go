// Package templates renders the HTML of the bill maker. Components are
// templ components so handlers can render them as full pages or HTMX
// partials.
package templates

// BillRow is one rendered line of the bill table.
type BillRow struct {
	Serial      int
	ID          string
	Name        string
	CardNo      string
	Designation string
	Amount      int
	Remarks     string
}

// BillSectionData drives BillSection.
type BillSectionData struct {
	BillType      string
	DisplayDate   string // DD/MM/YYYY
	Rows          []BillRow
	Total         int
	AmountInWords string
}

// BillSectionID is the element BillSection replaces on every HTMX update.
const BillSectionID = "bill-section"

type EmployeeSuggestion struct {
	Name        string
	CardNo      string
	Designation string
}

// BillPageData drives the full page: letterhead, entry form, bill settings
// and the bill section.
type BillPageData struct {
	OrgName    string
	OrgAddress string

	BillTypes    []string
	Designations []string
	NightRates   []int

	SelectedType string
	NightRate    int
	ShowNight    bool
	Date         string // YYYY-MM-DD

	Section BillSectionData
}
