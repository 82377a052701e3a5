package services

import (
	"errors"
	"grailhunter/internal/models"
	"grailhunter/internal/rn"
	"math"
)

var ErrNoRN = errors.New("Enter a valid RN number (e.g. 14806)")

type RNServiceInterface interface {
	Lookup(input string) (*models.RNLookup, error)
	Validate(number int, brand string) bool
	Brands() []rn.BrandEntry
}

type RNService struct{}

// Lookup parses a free-form label reading and dates it. Out-of-range numbers
// are not an error: the dating result carries the reason.
func (s *RNService) Lookup(input string) (*models.RNLookup, error) {
	number, ok := rn.ParseRNNumber(input)
	if !ok || number == 0 {
		return nil, ErrNoRN
	}

	dating := rn.AnalyzeRNDating(number)
	lookup := &models.RNLookup{
		Input:   input,
		RN:      number,
		Dating:  dating,
		Summary: rn.FormatRNDatingResult(dating),
	}
	if dating.IsValid {
		lookup.Year = int(math.Round(dating.CalculatedYear))
	}
	if entry, found := rn.LookupRN(number); found {
		lookup.BrandMatch = &entry
	}
	return lookup, nil
}

func (s *RNService) Validate(number int, brand string) bool {
	return rn.ValidateRNForBrand(number, brand)
}

func (s *RNService) Brands() []rn.BrandEntry {
	return rn.Brands()
}

func NewRNService() RNServiceInterface {
	return &RNService{}
}
