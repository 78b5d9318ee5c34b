// Package policy holds the pure business-rule predicates shared by the leave
// and expenditure workflows. Nothing here performs I/O.
package policy

import (
	"time"

	"github.com/shopspring/decimal"
)

// RangesOverlap reports whether the inclusive date intervals [aStart, aEnd]
// and [bStart, bEnd] intersect.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// InclusiveDayCount returns the number of calendar days covered by
// [start, end], counting both endpoints. A single-day leave is 1.
func InclusiveDayCount(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// AmountInRange reports whether amount lies within [min, max]. A nil bound is
// unbounded on that side.
func AmountInRange(amount decimal.Decimal, min, max *decimal.Decimal) bool {
	if min != nil && amount.LessThan(*min) {
		return false
	}
	if max != nil && amount.GreaterThan(*max) {
		return false
	}
	return true
}

// CompanyActive reports whether a company may spend at the given instant:
// the active flag is set and, when contract bounds exist, the instant falls
// inside [contractStart, contractEnd].
func CompanyActive(isActive bool, contractStart, contractEnd *time.Time, at time.Time) bool {
	if !isActive {
		return false
	}
	if contractStart != nil && at.Before(*contractStart) {
		return false
	}
	if contractEnd != nil && at.After(*contractEnd) {
		return false
	}
	return true
}
