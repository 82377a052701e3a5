package rn

import (
	"strconv"
	"strings"
)

// BrandEntry is a known brand's registered identification number.
type BrandEntry struct {
	Brand string `json:"brand"`
	RN    int    `json:"rn"`
	Notes string `json:"notes,omitempty"`
}

// Champion and Hanes share 15763 in the upstream records; lookups by RN
// resolve to whichever entry comes first.
var knownRNs = []BrandEntry{
	{Brand: "Carhartt", RN: 14806, Notes: "Detroit Jacket, workwear staple"},
	{Brand: "Pendleton", RN: 29685, Notes: "Wool shirts and blankets"},
	{Brand: "Woolrich", RN: 15528, Notes: "Historic American outerwear"},
	{Brand: "Filson", RN: 29237, Notes: "Pacific Northwest heritage"},
	{Brand: "L.L.Bean", RN: 71341, Notes: "Maine outdoor brand"},
	{Brand: "Patagonia", RN: 51884, Notes: "Outdoor performance"},
	{Brand: "The North Face", RN: 61661, Notes: "Outdoor/mountain"},
	{Brand: "Nike", RN: 56323, Notes: "Athletic footwear & apparel"},
	{Brand: "Champion", RN: 15763, Notes: "Reverse Weave heritage"},
	{Brand: "Russell Athletic", RN: 15137, Notes: "Athletic basics"},
	{Brand: "Fruit of the Loom", RN: 14974, Notes: "Basics manufacturer"},
	{Brand: "Hanes", RN: 15763, Notes: "Basics and essentials"},
	{Brand: "Ralph Lauren", RN: 41381, Notes: "Polo Ralph Lauren"},
	{Brand: "Tommy Hilfiger", RN: 77806, Notes: "90s Americana"},
	{Brand: "Calvin Klein", RN: 36009, Notes: "American minimalism"},
	{Brand: "Liz Claiborne", RN: 52002, Notes: "American sportswear"},
	{Brand: "Eddie Bauer", RN: 18221, Notes: "Pacific Northwest outdoor"},
	{Brand: "J.Crew", RN: 77388, Notes: "Preppy American"},
}

// Brands returns a copy of the brand table in its curated order.
func Brands() []BrandEntry {
	out := make([]BrandEntry, len(knownRNs))
	copy(out, knownRNs)
	return out
}

// ParseRNNumber extracts an RN from free-form label text such as "RN 14806",
// "RN#14806" or "14806". Every non-digit is dropped before parsing, so separate
// digit runs are joined ("1 48 06" parses as 14806).
func ParseRNNumber(input string) (int, bool) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, input)
	if digits == "" {
		return 0, false
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// LookupRN returns the first brand registered under rn.
func LookupRN(rn int) (BrandEntry, bool) {
	for _, entry := range knownRNs {
		if entry.RN == rn {
			return entry, true
		}
	}
	return BrandEntry{}, false
}

// ValidateRNForBrand reports whether brand (case-insensitive) is known and
// registered under exactly rn.
func ValidateRNForBrand(rn int, brand string) bool {
	for _, entry := range knownRNs {
		if strings.EqualFold(entry.Brand, brand) {
			return entry.RN == rn
		}
	}
	return false
}
