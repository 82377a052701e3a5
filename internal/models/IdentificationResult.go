package models

type Category string

const (
	CategoryFootwear    Category = "Footwear"
	CategoryTops        Category = "Tops"
	CategoryBottoms     Category = "Bottoms"
	CategoryOuterwear   Category = "Outerwear"
	CategoryAccessories Category = "Accessories"
	CategoryVintage     Category = "Vintage"
	CategoryOther       Category = "Other"
)

var Categories = []string{
	string(CategoryFootwear), string(CategoryTops), string(CategoryBottoms), string(CategoryOuterwear),
	string(CategoryAccessories), string(CategoryVintage), string(CategoryOther),
}

type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityRare      Rarity = "Rare"
	RarityUltraRare Rarity = "Ultra Rare"
	RarityGrail     Rarity = "Grail"
)

var Rarities = []string{string(RarityCommon), string(RarityRare), string(RarityUltraRare), string(RarityGrail)}

// IdentificationResult is the forensic verdict for a scanned item.
type IdentificationResult struct {
	Name                string             `json:"name"`
	Brand               string             `json:"brand"`
	Category            string             `json:"category"`
	Rarity              string             `json:"rarity"`
	Era                 string             `json:"era"`
	Confidence          float64            `json:"confidence"`
	EstimatedValue      string             `json:"estimatedValue"`
	ReasoningChain      string             `json:"reasoningChain,omitempty"`
	AuthenticationNotes string             `json:"authenticationNotes,omitempty"`
	IsAuthentic         bool               `json:"isAuthentic"`
	RedFlags            []string           `json:"redFlags"`
	StylingAdvice       string             `json:"stylingAdvice,omitempty"`
	PairingSuggestions  []string           `json:"pairingSuggestions"`
	Occasions           []string           `json:"occasions"`
	MaterialComposition map[string]float64 `json:"materialComposition,omitempty"`
}
