package controllers

import (
	"errors"
	json "github.com/goccy/go-json"
	"grailhunter/internal/models"
	"grailhunter/internal/providers"
	"grailhunter/internal/rn"
	"grailhunter/internal/services"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// RN answers are derived from static tables and never change while running.
const rnCacheTTL = 24 * time.Hour

type RNController struct {
	logger  providers.Logger
	service services.RNServiceInterface
	cache   providers.CacheProviderInterface
}

func NewRNController(logger providers.Logger, service services.RNServiceInterface, cache providers.CacheProviderInterface) *RNController {
	return &RNController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func (rc *RNController) writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrNoRN) {
		providers.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	rc.logger.Errorf(providers.TypeGet, "RN lookup failed: %v", err)
	providers.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
}

func (rc *RNController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := rc.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		rc.writeLookupError(w, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		providers.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	rc.cache.SetWithTTL(cacheKey, gson, rnCacheTTL)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// Lookup dates the RN found in ?q=. The cache key is the parsed number, so
// "RN 14806" and "14806" share an entry. Cached entries carry no input; it is
// echoed from the current request.
func (rc *RNController) Lookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	number, ok := rn.ParseRNNumber(q)
	if !ok || number == 0 {
		providers.WriteError(w, http.StatusBadRequest, services.ErrNoRN.Error())
		return
	}
	cacheKey := "rn:" + strconv.Itoa(number)

	if data, ok := rc.cache.Get(cacheKey); ok {
		var cached models.RNLookup
		if err := json.Unmarshal(data, &cached); err == nil {
			cached.Input = q
			providers.WriteJSON(w, http.StatusOK, cached)
			return
		}
		rc.logger.Warnf(providers.TypeGet, "Dropping unreadable cache entry %s", cacheKey)
	}

	lookup, err := rc.service.Lookup(q)
	if err != nil {
		rc.writeLookupError(w, err)
		return
	}

	entry := *lookup
	entry.Input = ""
	if gson, err := json.Marshal(entry); err == nil {
		rc.cache.SetWithTTL(cacheKey, gson, rnCacheTTL)
	}
	providers.WriteJSON(w, http.StatusOK, lookup)
}

func (rc *RNController) Validate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	number, ok := rn.ParseRNNumber(query.Get("rn"))
	brand := strings.TrimSpace(query.Get("brand"))
	if !ok || brand == "" {
		providers.WriteError(w, http.StatusBadRequest, "Missing rn or brand")
		return
	}
	providers.WriteJSON(w, http.StatusOK, models.RNValidation{
		RN:    number,
		Brand: brand,
		Valid: rc.service.Validate(number, brand),
	})
}

func (rc *RNController) Brands(w http.ResponseWriter, r *http.Request) {
	rc.serveFromCacheOrCompute(w, "rn:brands", func() (any, error) {
		return rc.service.Brands(), nil
	})
}
