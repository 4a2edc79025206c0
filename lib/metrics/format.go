package metrics

import "fmt"

// FormatDuration renders seconds as "3h 45m".
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%dh %dm", total/3600, (total%3600)/60)
}

// CalculatePace returns minutes per mile, or 0 when there is no distance to divide by.
func CalculatePace(miles, seconds float64) float64 {
	if miles <= 0 {
		return 0
	}
	return seconds / 60 / miles
}
