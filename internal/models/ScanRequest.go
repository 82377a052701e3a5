package models

import "strings"

// MaxImageBase64Length bounds the encoded image (~4.5MB raw).
const MaxImageBase64Length = 8_000_000

type ScanRequest struct {
	ImageBase64 string `json:"imageBase64"`
}

func (r *ScanRequest) Validate() error {
	if r.ImageBase64 == "" {
		return badRequest("Missing or invalid imageBase64")
	}
	if len(r.ImageBase64) > MaxImageBase64Length {
		return tooLarge("Image too large (max ~4.5MB)")
	}
	return nil
}

// CleanBase64 drops a data URI prefix ("data:image/jpeg;base64,") if present.
func (r *ScanRequest) CleanBase64() string {
	parts := strings.SplitN(r.ImageBase64, ",", 3)
	if len(parts) > 1 && parts[1] != "" {
		return parts[1]
	}
	return r.ImageBase64
}
