package handlers

import (
	"slices"
	"sync"
	"time"

	"billmaker/services"
	"billmaker/templates"
)

const formDateLayout = "2006-01-02"

// Workspace is the single bill being prepared plus the employee directory it
// feeds. All bill access goes through the workspace lock.
type Workspace struct {
	mu   sync.Mutex
	bill *services.Bill

	directory  *services.Directory
	letterhead services.Letterhead
	pdf        services.DocumentRenderer
	excel      services.DocumentRenderer
}

type WorkspaceOptions struct {
	Letterhead services.Letterhead
	NightRate  int
	Typeface   *services.Typeface
	// Today defaults to time.Now.
	Today func() time.Time
}

// NewWorkspace starts an empty Tiffin bill dated today.
func NewWorkspace(dir *services.Directory, opts WorkspaceOptions) *Workspace {
	today := time.Now
	if opts.Today != nil {
		today = opts.Today
	}
	y, m, d := today().Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.Local)

	return &Workspace{
		bill:       services.NewBill(services.BillTiffin, date, opts.NightRate, dir),
		directory:  dir,
		letterhead: opts.Letterhead,
		pdf:        services.PDFRenderer{Typeface: opts.Typeface},
		excel:      services.ExcelRenderer{},
	}
}

func (w *Workspace) Directory() *services.Directory {
	return w.directory
}

// update runs fn with the bill locked and returns the resulting section view.
func (w *Workspace) update(fn func(b *services.Bill) error) (templates.BillSectionData, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if fn != nil {
		if err := fn(w.bill); err != nil {
			return templates.BillSectionData{}, err
		}
	}
	return sectionData(w.bill.Snapshot()), nil
}

// apply runs an edit that cannot fail and returns the new section view.
func (w *Workspace) apply(fn func(b *services.Bill)) templates.BillSectionData {
	w.mu.Lock()
	defer w.mu.Unlock()

	fn(w.bill)
	return sectionData(w.bill.Snapshot())
}

// view returns the bill section as it stands.
func (w *Workspace) view() templates.BillSectionData {
	return sectionData(w.snapshot())
}

func (w *Workspace) snapshot() services.BillSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bill.Snapshot()
}

func sectionData(s services.BillSnapshot) templates.BillSectionData {
	rows := make([]templates.BillRow, len(s.Items))
	for i, item := range s.Items {
		rows[i] = templates.BillRow{
			Serial:      i + 1,
			ID:          item.ID,
			Name:        item.Name,
			CardNo:      item.CardNo,
			Designation: item.Designation,
			Amount:      item.Amount,
			Remarks:     item.Remarks,
		}
	}
	return templates.BillSectionData{
		BillType:      string(s.BillType),
		DisplayDate:   s.Date.Format("02/01/2006"),
		Rows:          rows,
		Total:         s.Total,
		AmountInWords: services.AmountToWords(s.Total),
	}
}

func (w *Workspace) pageData() templates.BillPageData {
	s := w.snapshot()

	billTypes := make([]string, 0, 4)
	for _, t := range services.BillTypes() {
		billTypes = append(billTypes, string(t))
	}

	nightRates := services.NightRateOptions()
	if !slices.Contains(nightRates, s.NightRate) {
		nightRates = append([]int{s.NightRate}, nightRates...)
	}

	return templates.BillPageData{
		OrgName:      w.letterhead.Name,
		OrgAddress:   w.letterhead.Address,
		BillTypes:    billTypes,
		Designations: []string{services.DesignationSO, services.DesignationLabour, services.DesignationExecutive},
		NightRates:   nightRates,
		SelectedType: string(s.BillType),
		NightRate:    s.NightRate,
		ShowNight:    s.BillType == services.BillNightEntertainment,
		Date:         s.Date.Format(formDateLayout),
		Section:      sectionData(s),
	}
}
