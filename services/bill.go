package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EmployeeUpserter records an employee seen on a bill entry.
type EmployeeUpserter interface {
	Upsert(e Employee) Employee
}

// LineItem is one employee's entry on the current bill. Amount is the only
// field that changes after creation.
type LineItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CardNo      string `json:"cardNo"`
	Designation string `json:"designation"`
	Amount      int    `json:"amount"`
	Remarks     string `json:"remarks"`
}

// BillSnapshot is a read-only copy of a bill's state.
type BillSnapshot struct {
	BillType  BillType   `json:"billType"`
	Date      time.Time  `json:"date"`
	NightRate int        `json:"nightRate"`
	Items     []LineItem `json:"items"`
	Total     int        `json:"total"`
}

// Bill accumulates line items under bill-wide parameters. It is not safe for
// concurrent use.
type Bill struct {
	billType  BillType
	date      time.Time
	nightRate int
	items     []LineItem
	directory EmployeeUpserter
}

// NewBill starts an empty bill. dir may be nil.
func NewBill(billType BillType, date time.Time, nightRate int, dir EmployeeUpserter) *Bill {
	return &Bill{
		billType:  billType,
		date:      date,
		nightRate: nightRate,
		directory: dir,
	}
}

func (b *Bill) BillType() BillType { return b.billType }
func (b *Bill) Date() time.Time    { return b.date }
func (b *Bill) NightRate() int     { return b.nightRate }

// AddItem appends an entry priced under the current parameters and reorders
// the bill by designation priority. Entries without a name or card number
// are rejected. The employee is upserted into the directory.
func (b *Bill) AddItem(name, cardNo, designation, remarks string) (LineItem, bool) {
	name = strings.TrimSpace(name)
	cardNo = strings.TrimSpace(cardNo)
	if name == "" || cardNo == "" {
		return LineItem{}, false
	}

	designation = strings.TrimSpace(designation)
	if designation == "" {
		designation = DesignationSO
	}

	item := LineItem{
		ID:          uuid.NewString(),
		Name:        name,
		CardNo:      cardNo,
		Designation: designation,
		Amount:      ComputeRate(b.billType, designation, b.nightRate),
		Remarks:     strings.TrimSpace(remarks),
	}

	b.items = append(b.items, item)
	b.sortItems()

	if b.directory != nil {
		b.directory.Upsert(Employee{
			Name:        item.Name,
			CardNo:      item.CardNo,
			Designation: item.Designation,
			DefaultRate: item.Amount,
		})
	}

	return item, true
}

func (b *Bill) sortItems() {
	sort.SliceStable(b.items, func(i, j int) bool {
		return DesignationPriority(b.items[i].Designation) < DesignationPriority(b.items[j].Designation)
	})
}

// RemoveItem deletes the entry with id, if present.
func (b *Bill) RemoveItem(id string) {
	for i := range b.items {
		if b.items[i].ID == id {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return
		}
	}
}

func (b *Bill) ClearAll() {
	b.items = nil
}

// SetBillType switches the bill category and reprices every entry.
func (b *Bill) SetBillType(t BillType) error {
	if _, err := ParseBillType(string(t)); err != nil {
		return err
	}
	b.billType = t
	b.Recompute()
	return nil
}

// SetNightRate changes the night overtime sub-rate and reprices every entry.
func (b *Bill) SetNightRate(rate int) error {
	if rate < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeRate, rate)
	}
	b.nightRate = rate
	b.Recompute()
	return nil
}

func (b *Bill) SetDate(date time.Time) {
	b.date = date
}

// Recompute reprices every entry from the current bill type and night rate.
func (b *Bill) Recompute() {
	for i := range b.items {
		b.items[i].Amount = ComputeRate(b.billType, b.items[i].Designation, b.nightRate)
	}
}

// Items returns a copy of the entries in bill order.
func (b *Bill) Items() []LineItem {
	out := make([]LineItem, len(b.items))
	copy(out, b.items)
	return out
}

func (b *Bill) Len() int {
	return len(b.items)
}

// Total sums the current entry amounts.
func (b *Bill) Total() int {
	total := 0
	for _, item := range b.items {
		total += item.Amount
	}
	return total
}

func (b *Bill) Snapshot() BillSnapshot {
	return BillSnapshot{
		BillType:  b.billType,
		Date:      b.date,
		NightRate: b.nightRate,
		Items:     b.Items(),
		Total:     b.Total(),
	}
}
