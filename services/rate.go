// Package services provides the rate, directory, bill assembly and document
// export logic for payroll-style bills.
package services

import (
	"errors"
	"fmt"
	"strings"
)

// BillType is one of the fixed bill categories. Its value is used verbatim as
// the document label.
type BillType string

const (
	BillTiffin             BillType = "TIFFIN BILL"
	BillHoliday            BillType = "HOLIDAY BILL"
	BillDailyLabour        BillType = "DAILY LABOUR BILL"
	BillNightEntertainment BillType = "NIGHT ENTERTAINMENT BILL"
)

const (
	DefaultNightRate   = 350
	AlternateNightRate = 250
)

var (
	ErrUnknownBillType = errors.New("unknown bill type")
	ErrNegativeRate    = errors.New("rate must be zero or greater")
)

// BillTypes returns the bill types in display order.
func BillTypes() []BillType {
	return []BillType{BillTiffin, BillHoliday, BillDailyLabour, BillNightEntertainment}
}

// NightRateOptions returns the selectable night overtime sub-rates.
func NightRateOptions() []int {
	return []int{DefaultNightRate, AlternateNightRate}
}

// ParseBillType matches s against the known labels, ignoring case and
// surrounding whitespace.
func ParseBillType(s string) (BillType, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	for _, bt := range BillTypes() {
		if string(bt) == norm {
			return bt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBillType, s)
}

func isLabour(designation string) bool {
	return strings.Contains(designation, DesignationLabour)
}

// ComputeRate returns the per-entry amount in Taka for a designation under
// the given bill type. Unknown bill types yield 0.
func ComputeRate(billType BillType, designation string, nightRate int) int {
	switch billType {
	case BillTiffin:
		return 50
	case BillDailyLabour:
		return 600
	case BillHoliday:
		if isLabour(designation) {
			return 600
		}
		return 800
	case BillNightEntertainment:
		if isLabour(designation) {
			return 150
		}
		return nightRate
	default:
		return 0
	}
}
