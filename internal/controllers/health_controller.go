package controllers

import (
	"fmt"
	"go.uber.org/atomic"
	"grailhunter/internal/models"
	"grailhunter/internal/providers"
	"grailhunter/internal/ratelimit"
	"grailhunter/internal/services"
	"net/http"
	"time"
)

type HealthController struct {
	usage     services.UsageServiceInterface
	limiter   *ratelimit.Limiter
	genai     services.GenAIServiceInterface
	startTime time.Time
	draining  atomic.Bool
}

type healthResponse struct {
	Status        string               `json:"status"`
	Uptime        string               `json:"uptime"`
	UptimeSeconds float64              `json:"uptime_seconds"`
	BufferSize    int                  `json:"buffer_size"`
	TrackedKeys   int                  `json:"tracked_keys"`
	Simulation    bool                 `json:"simulation"`
	Decisions     models.EndpointUsage `json:"decisions"`
	UniqueClients map[string]uint64    `json:"unique_clients,omitempty"`
}

// Health answers 503 once shutdown has begun so load balancers stop routing.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		providers.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		BufferSize:    hc.usage.GetBufferSize(),
		TrackedKeys:   hc.limiter.Len(),
		Simulation:    hc.genai.Simulated(),
		Decisions:     hc.usage.Totals(),
		UniqueClients: hc.usage.UniqueClients(),
	}

	status := http.StatusOK
	if hc.draining.Load() {
		resp.Status = "draining"
		status = http.StatusServiceUnavailable
	}
	providers.WriteJSON(w, status, resp)
}

func (hc *HealthController) SetDraining() {
	hc.draining.Store(true)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(usage services.UsageServiceInterface, limiter *ratelimit.Limiter, genai services.GenAIServiceInterface) *HealthController {
	return &HealthController{
		usage:     usage,
		limiter:   limiter,
		genai:     genai,
		startTime: time.Now(),
	}
}
