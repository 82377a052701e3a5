package rn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRNDatingResult_Valid(t *testing.T) {
	formatted := FormatRNDatingResult(AnalyzeRNDating(14806))

	assert.Contains(t, formatted, "Estimated")
	assert.Contains(t, formatted, "high confidence")
	assert.Equal(t, "Estimated: 1959.4 (1958-1960) - high confidence", formatted)
}

func TestFormatRNDatingResult_SingleYearRange(t *testing.T) {
	r := DatingResult{
		CalculatedYear: 1975,
		YearRange:      YearRange{Min: 1975, Max: 1975},
		Confidence:     ConfidenceHigh,
		IsValid:        true,
	}
	assert.Equal(t, "Estimated: 1975.0 (1975) - high confidence", FormatRNDatingResult(r))
}

func TestFormatRNDatingResult_Invalid(t *testing.T) {
	formatted := FormatRNDatingResult(AnalyzeRNDating(100))
	assert.Contains(t, formatted, "Invalid RN")
	assert.Equal(t, "Invalid RN: RN 100 is below minimum threshold (13670)", formatted)
}

func TestFormatRNDatingResult_InvalidWithoutMessage(t *testing.T) {
	assert.Equal(t, "Invalid RN: Unable to calculate date", FormatRNDatingResult(DatingResult{}))
}
