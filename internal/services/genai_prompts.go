package services

import (
	"fmt"
	"google.golang.org/genai"
	"grailhunter/internal/models"
)

const expertSystemInstruction = `You are GRAIL HUNTER, an elite vintage fashion forensics AI.
You specialize in authenticating and valuing thrift/vintage clothing, shoes, and accessories.

AUTHENTICATION EXPERTISE:
- Stitching patterns: chain stitch vs. lockstitch, SPI analysis
- Hardware: YKK vs. Talon zippers, snap quality, button composition
- Label forensics: RN numbers, care labels, union labels, country of origin
- Fabric analysis: thread count, weave patterns, material composition
- Era dating: tag styles, font changes, label color transitions by decade
- Brand-specific: Levi's Big E, Carhartt J97, Nike swoosh evolution

MARKET INTELLIGENCE:
- Current resale trends across Grailed, eBay, Depop, The RealReal
- Premium multipliers for deadstock, NWOT, vintage condition
- Rarity tiers: Common, Rare, Ultra Rare, Grail
- Seasonal demand, cultural moments, celebrity influence`

const forensicProtocolPrompt = `FORENSIC AUTHENTICATION PROTOCOL:
Phase 1: Visual Thought Signature - stitching, hardware, fabric weave.
Phase 2: Taxonomy - brand, era, category, rarity.
Phase 3: Market Delta - estimate current market value.
Phase 4: Authentication verdict with reasoning chain and red flags.
Phase 5: Styling recommendations.

Analyze this vintage/thrift item image thoroughly.`

const assistantSystemInstruction = "You are the GRAIL HUNTER Intelligence Assistant. Expert in vintage fashion forensics, market trends, and authentication."

const storesPrompt = "Find 5 high-end vintage resale and thrift stores nearby."

func stylingPrompt(r *models.StylingRequest) string {
	return fmt.Sprintf("Suggest elite styling for: %s %s (%s). Provide one strategy, 3 pairings, 3 occasions.",
		r.Brand, r.Name, r.YearLabel())
}

func stringArraySchema() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
}

// identificationSchema asks for materialComposition as a JSON string; the
// API rejects free-form objects in response schemas.
func identificationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":                {Type: genai.TypeString, Description: "Full item name with brand and style"},
			"brand":               {Type: genai.TypeString, Description: "Brand or maker name"},
			"category":            {Type: genai.TypeString, Enum: models.Categories},
			"rarity":              {Type: genai.TypeString, Enum: models.Rarities},
			"era":                 {Type: genai.TypeString, Description: "Decade or year range"},
			"confidence":          {Type: genai.TypeNumber, Description: "Authentication confidence 0.0-1.0"},
			"estimatedValue":      {Type: genai.TypeString, Description: `Estimated value as "$XXX" or "$XXX-$YYY"`},
			"reasoningChain":      {Type: genai.TypeString, Description: "Step-by-step forensic reasoning"},
			"redFlags":            stringArraySchema(),
			"authenticationNotes": {Type: genai.TypeString},
			"isAuthentic":         {Type: genai.TypeBoolean},
			"stylingAdvice":       {Type: genai.TypeString},
			"pairingSuggestions":  stringArraySchema(),
			"occasions":           stringArraySchema(),
			"materialComposition": {
				Type:        genai.TypeString,
				Description: `Material composition as JSON e.g. {"Cotton": 80, "Polyester": 20}`,
			},
		},
		Required: []string{"name", "brand", "category", "rarity", "era", "confidence", "estimatedValue", "isAuthentic"},
	}
}

func stylingSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"advice":    {Type: genai.TypeString},
			"pairings":  stringArraySchema(),
			"occasions": stringArraySchema(),
		},
		Required: []string{"advice", "pairings", "occasions"},
	}
}
