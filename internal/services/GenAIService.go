package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
	"grailhunter/internal/models"
	"grailhunter/internal/providers"
	"grailhunter/internal/structures"
	"net/http"
	"time"
)

const (
	OpScan      = "scan"
	OpAssistant = "assistant"
	OpStyling   = "styling"
	OpStores    = "stores"

	defaultUpstreamTimeout = 45 * time.Second
	imageMimeType          = "image/jpeg"
)

var ErrUpstream = errors.New("upstream model call failed")

// ModelClient is the slice of the Gemini SDK the service needs.
type ModelClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// NewModelClient returns nil when no API key is configured; the service then
// answers from canned data.
func NewModelClient(conf *structures.Config, logger providers.Logger) (ModelClient, error) {
	if conf.GenAI.ApiKey == "" {
		logger.Warnf(providers.TypeApp, "GEMINI_API_KEY not configured, running in simulation mode")
		return nil, nil
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  conf.GenAI.ApiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	logger.Infof(providers.TypeApp, "GenAI client ready: model=%s maps=%s", conf.GenAI.Model, conf.GenAI.MapsModel)
	return client.Models, nil
}

type GenAIServiceInterface interface {
	Identify(ctx context.Context, req *models.ScanRequest) (*models.IdentificationResult, error)
	Assist(ctx context.Context, req *models.AssistantRequest) (*models.AssistantReply, error)
	Styling(ctx context.Context, req *models.StylingRequest) (*models.StylingAdvice, error)
	Stores(ctx context.Context, req *models.StoresRequest) ([]models.NearbyStore, error)
	Simulated() bool
}

type GenAIService struct {
	client         ModelClient
	model          string
	mapsModel      string
	timeout        time.Duration
	thinkingBudget int32
	throttle       *rate.Limiter
	cache          providers.CacheProviderInterface
	metrics        providers.MetricsProviderInterface
	logger         providers.Logger
}

func (s *GenAIService) Simulated() bool {
	return s.client == nil
}

func (s *GenAIService) Identify(ctx context.Context, req *models.ScanRequest) (*models.IdentificationResult, error) {
	if s.Simulated() {
		return simulatedScan(), nil
	}

	image, err := base64.StdEncoding.DecodeString(req.CleanBase64())
	if err != nil {
		return nil, &models.RequestError{Status: http.StatusBadRequest, Message: "Missing or invalid imageBase64"}
	}

	budget := s.thinkingBudget
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(forensicProtocolPrompt),
			genai.NewPartFromBytes(image, imageMimeType),
		}, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(expertSystemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    identificationSchema(),
		ThinkingConfig:    &genai.ThinkingConfig{ThinkingBudget: &budget},
	}

	resp, err := s.generate(ctx, OpScan, s.model, contents, config)
	if err != nil {
		return nil, err
	}
	result, err := decodeIdentification(resp.Text())
	if err != nil {
		s.metrics.IncUpstreamErrors(OpScan)
		return nil, err
	}
	return result, nil
}

func (s *GenAIService) Assist(ctx context.Context, req *models.AssistantRequest) (*models.AssistantReply, error) {
	if s.Simulated() {
		return &models.AssistantReply{Text: simulatedAssistantText, Links: []models.GroundingLink{}}, nil
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(assistantSystemInstruction, genai.RoleUser),
		Tools:             []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}
	resp, err := s.generate(ctx, OpAssistant, s.model, genai.Text(req.Prompt), config)
	if err != nil {
		return nil, err
	}

	reply := &models.AssistantReply{Text: resp.Text(), Links: []models.GroundingLink{}}
	for _, chunk := range groundingChunks(resp) {
		if chunk.Web == nil {
			continue
		}
		title := chunk.Web.Title
		if title == "" {
			title = "Source"
		}
		reply.Links = append(reply.Links, models.GroundingLink{Title: title, URI: chunk.Web.URI})
	}
	return reply, nil
}

// Styling answers from the cache when the same item was styled recently.
func (s *GenAIService) Styling(ctx context.Context, req *models.StylingRequest) (*models.StylingAdvice, error) {
	if s.Simulated() {
		return simulatedStyling(), nil
	}

	key := req.CacheKey()
	if data, ok := s.cache.Get(key); ok {
		advice := &models.StylingAdvice{}
		if err := json.Unmarshal(data, advice); err == nil {
			return advice, nil
		}
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   stylingSchema(),
	}
	resp, err := s.generate(ctx, OpStyling, s.model, genai.Text(stylingPrompt(req)), config)
	if err != nil {
		return nil, err
	}
	advice, err := decodeStyling(resp.Text())
	if err != nil {
		s.metrics.IncUpstreamErrors(OpStyling)
		return nil, err
	}

	if data, err := json.Marshal(advice); err == nil {
		s.cache.Set(key, data)
	}
	return advice, nil
}

// Stores never fails: an upstream error degrades to a placeholder list.
func (s *GenAIService) Stores(ctx context.Context, req *models.StoresRequest) ([]models.NearbyStore, error) {
	if s.Simulated() {
		return simulatedStores(), nil
	}

	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleMaps: &genai.GoogleMaps{}}},
		ToolConfig: &genai.ToolConfig{
			RetrievalConfig: &genai.RetrievalConfig{
				LatLng: &genai.LatLng{Latitude: req.Lat, Longitude: req.Lng},
			},
		},
	}
	resp, err := s.generate(ctx, OpStores, s.mapsModel, genai.Text(storesPrompt), config)
	if err != nil {
		s.logger.Warnf(providers.TypeApp, "Stores lookup degraded to placeholder: %v", err)
		return failedLookupStores(), nil
	}

	var stores []models.NearbyStore
	for _, chunk := range groundingChunks(resp) {
		if chunk.Maps == nil {
			continue
		}
		store := models.NearbyStore{Name: chunk.Maps.Title, URI: chunk.Maps.URI}
		if store.Name == "" {
			store.Name = "Unknown"
		}
		if store.URI == "" {
			store.URI = "#"
		}
		stores = append(stores, store)
	}
	if len(stores) == 0 {
		return emptyGroundingStores(), nil
	}
	return stores, nil
}

// generate waits for a throttle token, bounds the call with the configured
// timeout and records latency and failures per operation.
func (s *GenAIService) generate(ctx context.Context, op, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if s.throttle != nil {
		if err := s.throttle.Wait(ctx); err != nil {
			s.metrics.IncUpstreamErrors(op)
			return nil, fmt.Errorf("%w: %s throttled: %v", ErrUpstream, op, err)
		}
	}

	start := time.Now()
	resp, err := s.client.GenerateContent(ctx, model, contents, config)
	s.metrics.ObserveUpstreamDuration(op, time.Since(start))
	if err != nil {
		s.metrics.IncUpstreamErrors(op)
		s.logger.Errorf(providers.TypeApp, "GenAI %s failed: %v", op, err)
		return nil, fmt.Errorf("%w: %s: %v", ErrUpstream, op, err)
	}
	if resp == nil {
		s.metrics.IncUpstreamErrors(op)
		return nil, fmt.Errorf("%w: %s: empty response", ErrUpstream, op)
	}
	return resp, nil
}

func groundingChunks(resp *genai.GenerateContentResponse) []*genai.GroundingChunk {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil
	}
	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil {
		return nil
	}
	return meta.GroundingChunks
}

func NewGenAIService(
	conf *structures.Config,
	client ModelClient,
	cache providers.CacheProviderInterface,
	metrics providers.MetricsProviderInterface,
	logger providers.Logger,
) GenAIServiceInterface {
	timeout := conf.GenAI.Timeout
	if timeout <= 0 {
		timeout = defaultUpstreamTimeout
	}

	var throttle *rate.Limiter
	if conf.GenAI.RequestsPerSecond > 0 {
		burst := max(conf.GenAI.Burst, 1)
		throttle = rate.NewLimiter(rate.Limit(conf.GenAI.RequestsPerSecond), burst)
	}

	return &GenAIService{
		client:         client,
		model:          conf.GenAI.Model,
		mapsModel:      conf.GenAI.MapsModel,
		timeout:        timeout,
		thinkingBudget: conf.GenAI.ThinkingBudget,
		throttle:       throttle,
		cache:          cache,
		metrics:        metrics,
		logger:         logger,
	}
}
