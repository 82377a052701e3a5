package ratelimit

import (
	"net"
	"net/http"
	"strings"
)

const UnknownClient = "unknown"

// ClientIP derives the rate-limit identity from X-Forwarded-For. A single
// header line yields its first comma-separated hop; repeated header lines
// yield the first line unchanged. Requests without the header share the
// "unknown" bucket.
func ClientIP(h http.Header) string {
	values := h.Values("X-Forwarded-For")
	switch len(values) {
	case 0:
		return UnknownClient
	case 1:
		first, _, _ := strings.Cut(values[0], ",")
		first = strings.TrimSpace(first)
		if first == "" {
			return UnknownClient
		}
		return first
	default:
		return values[0]
	}
}

// ClientAddress picks the key for r. With trustXFF the forwarded header wins;
// otherwise the connection's remote host is used.
func ClientAddress(r *http.Request, trustXFF bool) string {
	if trustXFF {
		return ClientIP(r.Header)
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return UnknownClient
}
