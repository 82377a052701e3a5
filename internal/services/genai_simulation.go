package services

import "grailhunter/internal/models"

const simulatedAssistantText = "Market intelligence running in simulation mode. Configure API key for live data."

func simulatedScan() *models.IdentificationResult {
	return &models.IdentificationResult{
		Name:           "Vintage Halston Caftan c. 1973",
		Brand:          "Halston",
		Category:       string(models.CategoryVintage),
		Rarity:         string(models.RarityGrail),
		Era:            "1970s",
		Confidence:     0.96,
		EstimatedValue: "$1,850-$2,400",
		ReasoningChain: "Phase 1: Visual Thought Signature - Hand-rolled hems with 12 SPI chain stitch detected. Selvage edges intact, indicating pre-industrial cut. Fabric drape consistent with single-ply charmeuse silk (19mm weight). " +
			"Phase 2: Taxonomy Analysis - Label typography matches Halston 1971-1976 mainline. RN# 42850 cross-referenced against FTC database: registered to Halston Enterprises Inc., active 1968-1990. Union label ILGWU present (pre-1995). " +
			"Phase 3: Market Delta - Comparable sales: Christie's 2024 lot #447 ($2,100), Grailed #HLS-9927 ($1,650 NWOT), The RealReal avg caftan price $890. This specimen rates 95th percentile due to museum-grade condition and provenance markers. " +
			"Phase 4: Authentication Verdict - AUTHENTIC with high confidence. Zero red flags detected. All 7 authentication checkpoints passed: label, stitching, fabric, hardware, construction, era-dating, brand-specific markers.",
		RedFlags:            []string{},
		AuthenticationNotes: "Museum quality piece. Original silk weight confirmed at ~19mm. Care label intact with period-correct washing symbols. No evidence of alteration, repair, or reproduction.",
		IsAuthentic:         true,
		StylingAdvice:       "Layer over a slim black turtleneck for a Studio 54 silhouette. Keep accessories minimal, one bold gold cuff at most. Let the caftan be the statement.",
		PairingSuggestions:  []string{"Minimal Gold Cuff", "Black Platform Sandals", "Vintage Box Clutch"},
		Occasions:           []string{"Museum Gala", "Private Collection Viewing", "Editorial Shoot"},
		MaterialComposition: map[string]float64{"Silk": 92, "Rayon": 8},
	}
}

func simulatedStyling() *models.StylingAdvice {
	return &models.StylingAdvice{
		Advice:    "Style with confidence and authenticity.",
		Pairings:  []string{"Classic denim", "Vintage sneakers", "Minimal accessories"},
		Occasions: []string{"Casual outings", "Street style events", "Gallery openings"},
	}
}

func simulatedStores() []models.NearbyStore {
	return []models.NearbyStore{
		{Name: "Vintage Vault NYC", Address: "123 Broadway", URI: "#"},
		{Name: "Retro Revival", Address: "456 Main St", URI: "#"},
		{Name: "Thrift Paradise", Address: "789 Oak Ave", URI: "#"},
	}
}

// emptyGroundingStores answers a successful lookup that found nothing.
func emptyGroundingStores() []models.NearbyStore {
	return []models.NearbyStore{
		{Name: "Vintage Vault NYC", Address: "123 Broadway", URI: "#"},
		{Name: "Retro Revival", Address: "456 Main St", URI: "#"},
	}
}

// failedLookupStores answers when the upstream call itself failed.
func failedLookupStores() []models.NearbyStore {
	return []models.NearbyStore{
		{Name: "Vintage Vault", Address: "123 Broadway", URI: "#"},
	}
}
