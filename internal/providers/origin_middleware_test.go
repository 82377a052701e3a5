package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginMiddleware(t *testing.T) {
	h := OriginMiddleware([]string{"https://grailhunter.app/"}, dummyHandler())

	tests := []struct {
		name     string
		method   string
		origin   string
		expected int
	}{
		{"allowed origin", http.MethodPost, "https://grailhunter.app", http.StatusOK},
		{"no origin header", http.MethodPost, "", http.StatusOK},
		{"foreign origin", http.MethodPost, "https://evil.example", http.StatusForbidden},
		{"foreign origin on GET", http.MethodGet, "https://evil.example", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/assistant", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, tt.expected, rr.Code)
			if tt.expected == http.StatusForbidden {
				assert.JSONEq(t, `{"error":"Forbidden origin"}`, rr.Body.String())
			}
		})
	}
}

func TestOriginMiddleware_EmptyListDisablesCheck(t *testing.T) {
	h := OriginMiddleware(nil, dummyHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/scan", nil)
	req.Header.Set("Origin", "https://anything.example")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
