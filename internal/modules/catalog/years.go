package catalog

import "time"

// YearSpan is how many calendar years the year list offers.
const YearSpan = 10

// YearsFor returns the year of now and the YearSpan-1 years before it,
// newest first.
func YearsFor(now time.Time) []int {
	current := now.Year()
	years := make([]int, YearSpan)
	for i := range years {
		years[i] = current - i
	}
	return years
}
