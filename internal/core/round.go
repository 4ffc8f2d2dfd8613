// Package core provides the tracker domain types and the numeric
// conventions shared by every summary the server returns.
package core

import "math"

// MinutesToHours converts a minutes count to hours rounded to two
// decimal places, the form every time summary reports.
func MinutesToHours(minutes float64) float64 {
	return Round2(minutes / 60)
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Percentage returns part/total as a percentage rounded to one decimal
// place. A zero or negative total yields 0 rather than dividing by zero.
func Percentage(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return Round1(part / total * 100)
}
