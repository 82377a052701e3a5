package providers

import (
	"errors"
	"fmt"
	"github.com/gookit/validate"
	"grailhunter/internal/structures"
	"strings"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %s", v.Errors.String())
	}

	for endpoint, quota := range cv.conf.RateLimit.Endpoints {
		if !strings.HasPrefix(endpoint, "/") {
			return fmt.Errorf("invalid config: rate limit endpoint %q must start with /", endpoint)
		}
		if quota <= 0 {
			return fmt.Errorf("invalid config: rate limit for %s must be positive", endpoint)
		}
	}
	for _, origin := range cv.conf.Security.AllowedOrigins {
		if strings.TrimSpace(origin) == "" {
			return errors.New("invalid config: empty entry in security.allowedOrigins")
		}
	}
	if cv.conf.GenAI.RequestsPerSecond < 0 {
		return errors.New("invalid config: genai.requestsPerSecond must not be negative")
	}
	if cv.conf.Stats.Redis.Enabled && cv.conf.Stats.Redis.Addr == "" {
		return errors.New("invalid config: stats.redis.addr is required when redis is enabled")
	}
	return nil
}
