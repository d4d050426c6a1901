package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBillDate = time.Date(2026, time.January, 14, 0, 0, 0, 0, time.UTC)

func newTestBill(t *testing.T, billType BillType) (*Bill, *Directory) {
	t.Helper()
	dir := NewDirectory(NewMemoryStore(), "")
	return NewBill(billType, testBillDate, DefaultNightRate, dir), dir
}

func designations(items []LineItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Designation
	}
	return out
}

func names(items []LineItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}

func TestBill_AddItemTiffinThenHoliday(t *testing.T) {
	bill, _ := newTestBill(t, BillTiffin)

	item, ok := bill.AddItem("John Doe", "101", "S/O", "")
	require.True(t, ok)
	assert.Equal(t, 50, item.Amount)
	assert.NotEmpty(t, item.ID)

	require.NoError(t, bill.SetBillType(BillHoliday))

	items := bill.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 800, items[0].Amount)
	assert.Equal(t, item.ID, items[0].ID)
	assert.Equal(t, "S/O", items[0].Designation)
	assert.Equal(t, 800, bill.Total())
}

func TestBill_AddItemRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		person string
		cardNo string
	}{
		{"empty name", "", "101"},
		{"blank name", "   ", "101"},
		{"empty card", "John Doe", ""},
		{"blank card", "John Doe", "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bill, dir := newTestBill(t, BillTiffin)
			_, ok := bill.AddItem(tt.person, tt.cardNo, "S/O", "")
			assert.False(t, ok)
			assert.Equal(t, 0, bill.Len())
			assert.Equal(t, 0, dir.Len(), "rejected entry must not reach the directory")
		})
	}
}

func TestBill_AddItemTrimsCardNo(t *testing.T) {
	bill, dir := newTestBill(t, BillTiffin)

	item, ok := bill.AddItem("John Doe", "  101 ", "S/O", " late ")
	require.True(t, ok)
	assert.Equal(t, "101", item.CardNo)
	assert.Equal(t, "late", item.Remarks)

	emp, found := dir.Lookup("101")
	require.True(t, found)
	assert.Equal(t, "John Doe", emp.Name)
}

func TestBill_AddItemDefaultsDesignation(t *testing.T) {
	bill, _ := newTestBill(t, BillHoliday)

	item, ok := bill.AddItem("John Doe", "101", "", "")
	require.True(t, ok)
	assert.Equal(t, DesignationSO, item.Designation)
	assert.Equal(t, 800, item.Amount)
}

func TestBill_PriorityOrdering(t *testing.T) {
	bill, _ := newTestBill(t, BillTiffin)

	bill.AddItem("A", "1", "OTHER", "")
	bill.AddItem("B", "2", DesignationSO, "")
	bill.AddItem("C", "3", DesignationExecutive, "")
	bill.AddItem("D", "4", "OTHER", "")

	assert.Equal(t, []string{"C", "B", "A", "D"}, names(bill.Items()))
}

func TestBill_PriorityOrderingStableWithinTier(t *testing.T) {
	bill, _ := newTestBill(t, BillTiffin)

	bill.AddItem("L1", "1", DesignationLabour, "")
	bill.AddItem("S1", "2", DesignationSO, "")
	bill.AddItem("L2", "3", DesignationLabour, "")
	bill.AddItem("S2", "4", DesignationSO, "")
	bill.AddItem("E1", "5", DesignationExecutive, "")

	assert.Equal(t, []string{"E1", "S1", "S2", "L1", "L2"}, names(bill.Items()))
	assert.Equal(t,
		[]string{DesignationExecutive, DesignationSO, DesignationSO, DesignationLabour, DesignationLabour},
		designations(bill.Items()))
}

func TestBill_AddItemUpsertsDirectory(t *testing.T) {
	bill, dir := newTestBill(t, BillHoliday)

	bill.AddItem("John Doe", "101", DesignationSO, "")
	bill.AddItem("John D.", "101", DesignationLabour, "")

	require.Equal(t, 1, dir.Len())
	emp, ok := dir.Lookup("101")
	require.True(t, ok)
	assert.Equal(t, "John D.", emp.Name)
	assert.Equal(t, DesignationLabour, emp.Designation)
	assert.Equal(t, 600, emp.DefaultRate)

	// Both entries stay on the bill; the directory only keeps one record.
	assert.Equal(t, 2, bill.Len())
}

func TestBill_ItemsAreCopiedFromDirectory(t *testing.T) {
	bill, dir := newTestBill(t, BillTiffin)

	bill.AddItem("John Doe", "101", DesignationSO, "")
	dir.Upsert(Employee{Name: "Someone Else", CardNo: "101", Designation: DesignationLabour})

	items := bill.Items()
	assert.Equal(t, "John Doe", items[0].Name)
	assert.Equal(t, DesignationSO, items[0].Designation)
}

func TestBill_NilDirectory(t *testing.T) {
	bill := NewBill(BillTiffin, testBillDate, DefaultNightRate, nil)
	_, ok := bill.AddItem("John Doe", "101", DesignationSO, "")
	assert.True(t, ok)
	assert.Equal(t, 50, bill.Total())
}

func TestBill_RemoveItem(t *testing.T) {
	bill, _ := newTestBill(t, BillTiffin)
	first, _ := bill.AddItem("A", "1", DesignationSO, "")
	bill.AddItem("B", "2", DesignationSO, "")

	bill.RemoveItem(first.ID)
	assert.Equal(t, []string{"B"}, names(bill.Items()))

	bill.RemoveItem("does-not-exist")
	assert.Equal(t, 1, bill.Len())
}

func TestBill_ClearAll(t *testing.T) {
	bill, _ := newTestBill(t, BillTiffin)
	bill.AddItem("A", "1", DesignationSO, "")
	bill.AddItem("B", "2", DesignationSO, "")

	bill.ClearAll()
	assert.Equal(t, 0, bill.Len())
	assert.Equal(t, 0, bill.Total())
}

func TestBill_SetNightRateRecomputes(t *testing.T) {
	bill, _ := newTestBill(t, BillNightEntertainment)
	bill.AddItem("Labourer", "1", DesignationLabour, "")
	bill.AddItem("Officer", "2", DesignationSO, "")

	assert.Equal(t, 150+350, bill.Total())

	require.NoError(t, bill.SetNightRate(AlternateNightRate))
	assert.Equal(t, AlternateNightRate, bill.NightRate())
	assert.Equal(t, 150+250, bill.Total())
}

func TestBill_SetNightRateRejectsNegative(t *testing.T) {
	bill, _ := newTestBill(t, BillNightEntertainment)
	bill.AddItem("Officer", "2", DesignationSO, "")

	err := bill.SetNightRate(-1)
	assert.True(t, errors.Is(err, ErrNegativeRate))
	assert.Equal(t, DefaultNightRate, bill.NightRate())
	assert.Equal(t, 350, bill.Total())
}

func TestBill_SetBillTypeRejectsUnknown(t *testing.T) {
	bill, _ := newTestBill(t, BillHoliday)
	bill.AddItem("Officer", "2", DesignationSO, "")

	err := bill.SetBillType(BillType("LUNCH BILL"))
	assert.True(t, errors.Is(err, ErrUnknownBillType))
	assert.Equal(t, BillHoliday, bill.BillType())
	assert.Equal(t, 800, bill.Total())
}

func TestBill_RecomputeIdempotent(t *testing.T) {
	bill, _ := newTestBill(t, BillTiffin)
	bill.AddItem("A", "1", DesignationLabour, "")
	bill.AddItem("B", "2", DesignationSO, "")
	bill.AddItem("C", "3", DesignationExecutive, "")

	require.NoError(t, bill.SetBillType(BillNightEntertainment))
	once := bill.Items()

	require.NoError(t, bill.SetBillType(BillNightEntertainment))
	bill.Recompute()
	assert.Equal(t, once, bill.Items())
}

func TestBill_TotalTracksEveryChange(t *testing.T) {
	bill, _ := newTestBill(t, BillDailyLabour)
	a, _ := bill.AddItem("A", "1", DesignationLabour, "")
	bill.AddItem("B", "2", DesignationSO, "")
	assert.Equal(t, 1200, bill.Total())

	require.NoError(t, bill.SetBillType(BillHoliday))
	assert.Equal(t, 600+800, bill.Total())

	bill.RemoveItem(a.ID)
	assert.Equal(t, 800, bill.Total())
}

func TestBill_Snapshot(t *testing.T) {
	bill, _ := newTestBill(t, BillHoliday)
	bill.AddItem("A", "1", DesignationSO, "")

	snap := bill.Snapshot()
	assert.Equal(t, BillHoliday, snap.BillType)
	assert.Equal(t, testBillDate, snap.Date)
	assert.Equal(t, DefaultNightRate, snap.NightRate)
	assert.Equal(t, 800, snap.Total)
	require.Len(t, snap.Items, 1)

	snap.Items[0].Amount = 1
	assert.Equal(t, 800, bill.Total(), "snapshot must not alias bill state")
}
