// Package rn dates vintage garments from the Registered Identification Number
// printed on U.S. care labels and cross-references a curated brand table.
//
// The estimate is a linear interpolation anchored at the first RN issued in
// 1959: year = (RN - 13670) / 2635 + 1959.
package rn

import (
	"errors"
	"fmt"
	"math"
)

const (
	MinRN            = 13670
	RNPerYear        = 2635
	BaseYear         = 1959
	MinPlausibleYear = 1958
	MaxPlausibleYear = 2030
	DefaultVariance  = 0.5

	Formula = "(RN - 13670) / 2635 + 1959"
)

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

var ErrInvalidRN = errors.New("invalid RN")

// InvalidRNError is returned for numbers below the formula's floor.
type InvalidRNError struct {
	RN int
}

func (e *InvalidRNError) Error() string {
	return fmt.Sprintf("Invalid RN number: %d. RN must be >= %d to use dating formula.", e.RN, MinRN)
}

func (e *InvalidRNError) Is(target error) bool {
	return target == ErrInvalidRN
}

type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type DatingResult struct {
	CalculatedYear float64    `json:"calculatedYear"`
	YearRange      YearRange  `json:"yearRange"`
	Confidence     Confidence `json:"confidence"`
	Formula        string     `json:"formula"`
	IsValid        bool       `json:"isValid"`
	Error          string     `json:"error,omitempty"`
}

// CalculateYearFromRN returns the unrounded manufacture year for rn.
func CalculateYearFromRN(rn int) (float64, error) {
	if rn < MinRN {
		return 0, &InvalidRNError{RN: rn}
	}
	return float64(rn-MinRN)/RNPerYear + BaseYear, nil
}

// GetYearRangeFromRN brackets the calculated year by variance on each side.
func GetYearRangeFromRN(rn int, variance float64) (YearRange, error) {
	year, err := CalculateYearFromRN(rn)
	if err != nil {
		return YearRange{}, err
	}
	return YearRange{
		Min: int(math.Floor(year - variance)),
		Max: int(math.Ceil(year + variance)),
	}, nil
}

// CalculateConfidence grades a range. The tight window is checked before the
// loose fallback, so a range matching both reports the tight result.
func CalculateConfidence(rn int, r YearRange) Confidence {
	if rn >= MinRN && rn <= 100000 && r.Min >= MinPlausibleYear && r.Max <= MaxPlausibleYear {
		width := r.Max - r.Min
		if width <= 2 {
			return ConfidenceHigh
		}
		if width <= 5 {
			return ConfidenceMedium
		}
	}
	if rn >= MinRN && r.Min >= 1950 && r.Max <= 2040 {
		return ConfidenceMedium
	}
	return ConfidenceLow
}

// AnalyzeRNDating is the non-failing entry point: every problem is reported
// through IsValid and Error.
func AnalyzeRNDating(rn int) DatingResult {
	if rn < MinRN {
		return invalidResult(fmt.Sprintf("RN %d is below minimum threshold (%d)", rn, MinRN))
	}

	year, err := CalculateYearFromRN(rn)
	if err != nil {
		return invalidResult(err.Error())
	}
	yearRange, err := GetYearRangeFromRN(rn, DefaultVariance)
	if err != nil {
		return invalidResult(err.Error())
	}

	valid := yearRange.Min >= MinPlausibleYear && yearRange.Max <= MaxPlausibleYear
	result := DatingResult{
		CalculatedYear: year,
		YearRange:      yearRange,
		Confidence:     CalculateConfidence(rn, yearRange),
		Formula:        Formula,
		IsValid:        valid,
	}
	if !valid {
		result.Confidence = ConfidenceLow
		result.Error = fmt.Sprintf("Calculated year %.2f is outside reasonable range", year)
	}
	return result
}

func invalidResult(msg string) DatingResult {
	return DatingResult{
		Confidence: ConfidenceLow,
		Formula:    Formula,
		Error:      msg,
	}
}
