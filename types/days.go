// Package types
package types

// DayRange is the requested look-back window. DayRangeMax requests the
// provider's longest available history.
type DayRange string

const (
	DayRange1   DayRange = "1"
	DayRange7   DayRange = "7"
	DayRange30  DayRange = "30"
	DayRangeMax DayRange = "max"
)

func ParseDayRange(s string) (DayRange, error) {
	switch DayRange(s) {
	case DayRange1, DayRange7, DayRange30, DayRangeMax:
		return DayRange(s), nil
	}
	return "", ErrInvalidDayRange
}

// Days maps the range onto a day count. DayRangeMax is pinned at a year,
// which is the longest window any upstream serves at daily granularity.
func (d DayRange) Days() int {
	switch d {
	case DayRange1:
		return 1
	case DayRange7:
		return 7
	case DayRange30:
		return 30
	default:
		return 365
	}
}
