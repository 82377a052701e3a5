package models

import (
	"strconv"
	"strings"
)

type StylingRequest struct {
	Brand string `json:"brand"`
	Name  string `json:"name"`
	Year  *int   `json:"year,omitempty"`
}

func (r *StylingRequest) Validate() error {
	if strings.TrimSpace(r.Brand) == "" || strings.TrimSpace(r.Name) == "" {
		return badRequest("Missing brand or name")
	}
	return nil
}

// YearLabel is the year for prompts, or "vintage" when unknown.
func (r *StylingRequest) YearLabel() string {
	if r.Year == nil {
		return "vintage"
	}
	return strconv.Itoa(*r.Year)
}

// CacheKey identifies equivalent requests regardless of case and padding.
func (r *StylingRequest) CacheKey() string {
	return "styling:" + strings.ToLower(strings.TrimSpace(r.Brand)) + "|" +
		strings.ToLower(strings.TrimSpace(r.Name)) + "|" + r.YearLabel()
}

type StylingAdvice struct {
	Advice    string   `json:"advice"`
	Pairings  []string `json:"pairings"`
	Occasions []string `json:"occasions"`
}
