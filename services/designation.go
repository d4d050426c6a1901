package services

import "strings"

const (
	DesignationLabour    = "LABOUR"
	DesignationSO        = "S/O"
	DesignationExecutive = "EXECUTIVE DIRECTOR"

	// ExecutiveCardNo always carries DesignationExecutive.
	ExecutiveCardNo = "418"
)

// EmployeeLookup finds a directory record by card number.
type EmployeeLookup interface {
	Lookup(cardNo string) (Employee, bool)
}

// DesignationPriority orders bill entries: the executive first, then S/O,
// then everyone else.
func DesignationPriority(designation string) int {
	switch designation {
	case DesignationExecutive:
		return 0
	case DesignationSO:
		return 1
	default:
		return 2
	}
}

// NormalizeDesignation collapses a stored designation to LABOUR or S/O.
func NormalizeDesignation(designation string) string {
	if strings.TrimSpace(designation) == DesignationLabour {
		return DesignationLabour
	}
	return DesignationSO
}

// ResolveDesignation returns the designation the entry form should show after
// the card-number field changes to cardNo, given the currently selected
// designation. Card 418 forces the executive title. Leaving 418 while the
// executive title is still selected falls back to S/O. A known card takes its
// normalized directory designation; the matching record is returned so the
// caller can prefill the name.
func ResolveDesignation(cardNo, current string, dir EmployeeLookup) (string, *Employee) {
	card := strings.TrimSpace(cardNo)

	var found *Employee
	if dir != nil && card != "" {
		if emp, ok := dir.Lookup(card); ok {
			found = &emp
		}
	}

	if card == ExecutiveCardNo {
		return DesignationExecutive, found
	}

	designation := current
	if designation == DesignationExecutive {
		designation = DesignationSO
	}
	if found != nil {
		designation = NormalizeDesignation(found.Designation)
	}
	return designation, found
}
