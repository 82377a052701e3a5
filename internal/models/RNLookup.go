package models

import "grailhunter/internal/rn"

// RNLookup is the answer to a care-label query.
type RNLookup struct {
	Input      string          `json:"input"`
	RN         int             `json:"rn"`
	Dating     rn.DatingResult `json:"dating"`
	Summary    string          `json:"summary"`
	Year       int             `json:"year,omitempty"`
	BrandMatch *rn.BrandEntry  `json:"brandMatch,omitempty"`
}

type RNValidation struct {
	RN    int    `json:"rn"`
	Brand string `json:"brand"`
	Valid bool   `json:"valid"`
}
