package ratelimit

const DefaultMax = 30

// Quotas maps an endpoint path to the number of requests a client may make
// per window. Paths not listed fall back to Default.
type Quotas struct {
	Endpoints map[string]int
	Default   int
}

func DefaultQuotas() Quotas {
	return Quotas{
		Endpoints: map[string]int{
			"/api/scan":      10,
			"/api/assistant": 20,
			"/api/stores":    15,
			"/api/styling":   20,
		},
		Default: DefaultMax,
	}
}

func (q Quotas) For(endpoint string) int {
	if limit, ok := q.Endpoints[endpoint]; ok {
		return limit
	}
	if q.Default > 0 {
		return q.Default
	}
	return DefaultMax
}
