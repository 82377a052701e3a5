package services

import (
	"errors"
	"fmt"
	"github.com/goccy/go-json"
	"github.com/spf13/cast"
	"grailhunter/internal/models"
	"strings"
)

var ErrMalformedResponse = errors.New("malformed model response")

// decodeIdentification turns the model's JSON into a result. Fields the model
// typed loosely (numbers as strings, percentages with a "%" suffix) are
// coerced rather than rejected.
func decodeIdentification(text string) (*models.IdentificationResult, error) {
	raw := map[string]any{}
	if err := json.Unmarshal([]byte(responseBody(text)), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	res := &models.IdentificationResult{
		Name:                cast.ToString(raw["name"]),
		Brand:               cast.ToString(raw["brand"]),
		Category:            cast.ToString(raw["category"]),
		Rarity:              cast.ToString(raw["rarity"]),
		Era:                 cast.ToString(raw["era"]),
		Confidence:          clampConfidence(toFloat(raw["confidence"])),
		EstimatedValue:      cast.ToString(raw["estimatedValue"]),
		ReasoningChain:      cast.ToString(raw["reasoningChain"]),
		AuthenticationNotes: cast.ToString(raw["authenticationNotes"]),
		IsAuthentic:         cast.ToBool(raw["isAuthentic"]),
		RedFlags:            toStrings(raw["redFlags"]),
		StylingAdvice:       cast.ToString(raw["stylingAdvice"]),
		PairingSuggestions:  toStrings(raw["pairingSuggestions"]),
		Occasions:           toStrings(raw["occasions"]),
		MaterialComposition: decodeComposition(raw["materialComposition"]),
	}
	if res.Name == "" && res.Brand == "" {
		return nil, fmt.Errorf("%w: missing name and brand", ErrMalformedResponse)
	}
	return res, nil
}

func decodeStyling(text string) (*models.StylingAdvice, error) {
	raw := map[string]any{}
	if err := json.Unmarshal([]byte(responseBody(text)), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	advice := &models.StylingAdvice{
		Advice:    cast.ToString(raw["advice"]),
		Pairings:  toStrings(raw["pairings"]),
		Occasions: toStrings(raw["occasions"]),
	}
	if advice.Advice == "" {
		return nil, fmt.Errorf("%w: missing advice", ErrMalformedResponse)
	}
	return advice, nil
}

// responseBody strips a markdown code fence some models wrap JSON in.
func responseBody(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// decodeComposition accepts either an object or a JSON string holding one.
// Unparseable input yields nil so the field is omitted.
func decodeComposition(v any) map[string]float64 {
	var obj map[string]any
	switch t := v.(type) {
	case map[string]any:
		obj = t
	case string:
		if strings.TrimSpace(t) == "" {
			return nil
		}
		if err := json.Unmarshal([]byte(t), &obj); err != nil {
			return nil
		}
	default:
		return nil
	}

	out := make(map[string]float64, len(obj))
	for material, share := range obj {
		f, err := cast.ToFloat64E(trimPercent(cast.ToString(share)))
		if err != nil {
			continue
		}
		out[material] = f
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func toFloat(v any) float64 {
	if s, ok := v.(string); ok {
		v = trimPercent(s)
	}
	return cast.ToFloat64(v)
}

func trimPercent(s string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
}

// clampConfidence maps a percentage to a fraction and bounds it to [0,1].
func clampConfidence(f float64) float64 {
	if f > 1 && f <= 100 {
		f /= 100
	}
	return min(max(f, 0), 1)
}

// toStrings never returns nil so arrays serialize as [] rather than null.
func toStrings(v any) []string {
	out := cast.ToStringSlice(v)
	if out == nil {
		return []string{}
	}
	return out
}
