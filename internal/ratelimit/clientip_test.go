package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		expected string
	}{
		{"absent", nil, UnknownClient},
		{"single address", []string{"1.2.3.4"}, "1.2.3.4"},
		{"proxy chain", []string{"1.2.3.4, 10.0.0.1"}, "1.2.3.4"},
		{"padded first hop", []string{"  5.6.7.8 ,10.0.0.1"}, "5.6.7.8"},
		{"empty value", []string{""}, UnknownClient},
		{"repeated header uses first line verbatim", []string{"9.9.9.9, 1.1.1.1", "2.2.2.2"}, "9.9.9.9, 1.1.1.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			for _, v := range tt.values {
				h.Add("X-Forwarded-For", v)
			}
			assert.Equal(t, tt.expected, ClientIP(h))
		})
	}
}

func TestClientAddress_TrustForwarded(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/scan", nil)
	r.RemoteAddr = "10.0.0.9:5555"
	r.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")

	assert.Equal(t, "1.2.3.4", ClientAddress(r, true))
	assert.Equal(t, "10.0.0.9", ClientAddress(r, false))
}

func TestClientAddress_TrustedWithoutHeaderIsUnknown(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/scan", nil)
	r.RemoteAddr = "10.0.0.9:5555"

	assert.Equal(t, UnknownClient, ClientAddress(r, true))
}

func TestClientAddress_RemoteAddrFallbacks(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/scan", nil)
	r.RemoteAddr = "no-port"
	assert.Equal(t, "no-port", ClientAddress(r, false))

	r.RemoteAddr = ""
	assert.Equal(t, UnknownClient, ClientAddress(r, false))
}
