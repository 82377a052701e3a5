package controllers

import (
	"errors"
	json "github.com/goccy/go-json"
	"grailhunter/internal/models"
	"grailhunter/internal/providers"
	"grailhunter/internal/services"
	"io"
	"net/http"
)

// maxRequestBodySize leaves headroom over the largest accepted image.
const maxRequestBodySize = models.MaxImageBase64Length + 1<<20

type ApiController struct {
	logger  providers.Logger
	service services.GenAIServiceInterface
}

func NewApiController(logger providers.Logger, service services.GenAIServiceInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
	}
}

type validatable interface {
	Validate() error
}

// decode reads a JSON body into payload and validates it. On failure the
// response is already written.
func (ac *ApiController) decode(w http.ResponseWriter, r *http.Request, payload validatable) bool {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			providers.WriteError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		providers.WriteError(w, http.StatusBadRequest, "Bad Request")
		return false
	}
	if err := json.Unmarshal(data, payload); err != nil {
		providers.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	if err := payload.Validate(); err != nil {
		ac.writeFailure(w, err, "Bad Request")
		return false
	}
	return true
}

// writeFailure maps request errors to their status and everything else to a
// 500 carrying fallback, so upstream details never reach the client.
func (ac *ApiController) writeFailure(w http.ResponseWriter, err error, fallback string) {
	var reqErr *models.RequestError
	if errors.As(err, &reqErr) {
		providers.WriteError(w, reqErr.Status, reqErr.Message)
		return
	}
	providers.WriteError(w, http.StatusInternalServerError, fallback)
}

func (ac *ApiController) Scan(w http.ResponseWriter, r *http.Request) {
	var payload models.ScanRequest
	if !ac.decode(w, r, &payload) {
		return
	}
	result, err := ac.service.Identify(r.Context(), &payload)
	if err != nil {
		ac.logger.Errorf(providers.TypePost, "[/api/scan] %v", err)
		ac.writeFailure(w, err, "Scan failed")
		return
	}
	providers.WriteJSON(w, http.StatusOK, result)
}

func (ac *ApiController) Assistant(w http.ResponseWriter, r *http.Request) {
	var payload models.AssistantRequest
	if !ac.decode(w, r, &payload) {
		return
	}
	reply, err := ac.service.Assist(r.Context(), &payload)
	if err != nil {
		ac.logger.Errorf(providers.TypePost, "[/api/assistant] %v", err)
		ac.writeFailure(w, err, "Assistant failed")
		return
	}
	providers.WriteJSON(w, http.StatusOK, reply)
}

func (ac *ApiController) Styling(w http.ResponseWriter, r *http.Request) {
	var payload models.StylingRequest
	if !ac.decode(w, r, &payload) {
		return
	}
	advice, err := ac.service.Styling(r.Context(), &payload)
	if err != nil {
		ac.logger.Errorf(providers.TypePost, "[/api/styling] %v", err)
		ac.writeFailure(w, err, "Styling generation failed")
		return
	}
	providers.WriteJSON(w, http.StatusOK, advice)
}

func (ac *ApiController) Stores(w http.ResponseWriter, r *http.Request) {
	var payload models.StoresRequest
	if !ac.decode(w, r, &payload) {
		return
	}
	stores, err := ac.service.Stores(r.Context(), &payload)
	if err != nil {
		ac.logger.Errorf(providers.TypePost, "[/api/stores] %v", err)
		ac.writeFailure(w, err, "Stores lookup failed")
		return
	}
	providers.WriteJSON(w, http.StatusOK, stores)
}
