package rn

import (
	"fmt"
	"strconv"
)

// FormatRNDatingResult renders a one-line summary for display.
func FormatRNDatingResult(r DatingResult) string {
	if !r.IsValid {
		msg := r.Error
		if msg == "" {
			msg = "Unable to calculate date"
		}
		return "Invalid RN: " + msg
	}

	rangeStr := strconv.Itoa(r.YearRange.Min)
	if r.YearRange.Min != r.YearRange.Max {
		rangeStr = fmt.Sprintf("%d-%d", r.YearRange.Min, r.YearRange.Max)
	}
	return fmt.Sprintf("Estimated: %.1f (%s) - %s confidence", r.CalculatedYear, rangeStr, r.Confidence)
}
