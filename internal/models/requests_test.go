package models

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireStatus(t *testing.T, err error, status int) *RequestError {
	t.Helper()
	var re *RequestError
	require.True(t, errors.As(err, &re), "expected RequestError, got %v", err)
	assert.Equal(t, status, re.Status)
	return re
}

func TestScanRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ScanRequest{ImageBase64: "aGVsbG8="}).Validate())

	re := requireStatus(t, (&ScanRequest{}).Validate(), http.StatusBadRequest)
	assert.Equal(t, "Missing or invalid imageBase64", re.Error())

	big := &ScanRequest{ImageBase64: strings.Repeat("A", MaxImageBase64Length+1)}
	requireStatus(t, big.Validate(), http.StatusRequestEntityTooLarge)

	limit := &ScanRequest{ImageBase64: strings.Repeat("A", MaxImageBase64Length)}
	assert.NoError(t, limit.Validate())
}

func TestScanRequest_CleanBase64(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"data:image/jpeg;base64,QUJD", "QUJD"},
		{"QUJD", "QUJD"},
		{"prefix,", "prefix,"},
		{"a,b,c", "b"},
	}
	for _, tt := range tests {
		r := &ScanRequest{ImageBase64: tt.in}
		assert.Equal(t, tt.expected, r.CleanBase64(), tt.in)
	}
}

func TestAssistantRequest_Validate(t *testing.T) {
	assert.NoError(t, (&AssistantRequest{Prompt: "Is this Levi's Big E real?"}).Validate())

	re := requireStatus(t, (&AssistantRequest{Prompt: "   "}).Validate(), http.StatusBadRequest)
	assert.Equal(t, "Missing or invalid prompt", re.Message)

	requireStatus(t, (&AssistantRequest{Prompt: strings.Repeat("x", 4001)}).Validate(), http.StatusRequestEntityTooLarge)
	assert.NoError(t, (&AssistantRequest{Prompt: strings.Repeat("x", 4000)}).Validate())
	// counted in characters, not bytes
	assert.NoError(t, (&AssistantRequest{Prompt: strings.Repeat("é", 4000)}).Validate())
}

func TestStylingRequest_Validate(t *testing.T) {
	assert.NoError(t, (&StylingRequest{Brand: "Levi's", Name: "501"}).Validate())
	requireStatus(t, (&StylingRequest{Brand: "Levi's"}).Validate(), http.StatusBadRequest)
	requireStatus(t, (&StylingRequest{Name: "501"}).Validate(), http.StatusBadRequest)
}

func TestStylingRequest_YearLabelAndCacheKey(t *testing.T) {
	year := 1984
	withYear := &StylingRequest{Brand: " Levi's ", Name: "501", Year: &year}
	assert.Equal(t, "1984", withYear.YearLabel())
	assert.Equal(t, "styling:levi's|501|1984", withYear.CacheKey())

	noYear := &StylingRequest{Brand: "LEVI'S", Name: "501"}
	assert.Equal(t, "vintage", noYear.YearLabel())
	assert.Equal(t, "styling:levi's|501|vintage", noYear.CacheKey())
}

func TestStoresRequest_Validate(t *testing.T) {
	lat, lng := 40.7128, -74.0060
	zero := 0.0
	assert.NoError(t, (&StoresRequest{Lat: &lat, Lng: &lng}).Validate())
	assert.NoError(t, (&StoresRequest{Lat: &zero, Lng: &zero}).Validate())

	requireStatus(t, (&StoresRequest{Lat: &lat}).Validate(), http.StatusBadRequest)

	bad := 200.0
	requireStatus(t, (&StoresRequest{Lat: &bad, Lng: &lng}).Validate(), http.StatusBadRequest)
}
